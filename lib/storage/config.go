package storage

import (
	"net/url"
	"path/filepath"

	"github.com/pkg/errors"
)

// Config points to a storage backend; `file://<path>` opens an
// on-disk LevelDB, `memory://` an in-memory one.
type Config struct {
	Scheme string
	Path   string
}

func NewConfigFromString(s string) (*Config, error) {
	u, err := url.Parse(s)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse storage uri")
	}

	config := &Config{Scheme: u.Scheme}

	switch u.Scheme {
	case "file":
		path := filepath.Join(u.Host, u.Path)
		if len(path) < 1 {
			return nil, errors.Errorf("missing path in storage uri: '%s'", s)
		}
		config.Path = path
	case "memory":
	default:
		return nil, errors.Errorf("unsupported storage scheme: '%s'", u.Scheme)
	}

	return config, nil
}

func (c *Config) String() string {
	return (&url.URL{Scheme: c.Scheme, Path: c.Path}).String()
}
