package version

import "fmt"

var (
	// Version follows SemVer (https://semver.org) and is bumped by hand
	// at each release.
	Version string

	// GitCommit, GitState and BuildDate are injected by the build.
	GitCommit string
	GitState  string
	BuildDate string
)

func ToDetailVersion() string {
	return fmt.Sprintf("version=%s git=%s(%s) build=%s", Version, GitCommit, GitState, BuildDate)
}
