package common

import (
	"encoding/json"
	"fmt"
	"os"
	"reflect"
	"time"

	logging "github.com/inconshreveable/log15"

	"conclave.io/conclave/lib/errors"
)

var (
	DefaultLogLevel   logging.Lvl     = logging.LvlInfo
	DefaultLogHandler logging.Handler = logging.StreamHandler(os.Stdout, logging.TerminalFormat())
)

// SetLogging set the logger
func SetLogging(logger logging.Logger, level logging.Lvl, handler logging.Handler) {
	logger.SetHandler(logging.LvlFilterHandler(level, handler))
}

const badKeyName = "LOG15_ERROR"

// logValue renders one context value for the JSON log format. Coded
// errors and Serializable records keep their structured form; times
// are pinned to ISO8601 so log lines sort like the stored records.
func logValue(value interface{}) (result interface{}) {
	defer func() {
		if r := recover(); r != nil {
			if v := reflect.ValueOf(value); v.Kind() == reflect.Ptr && v.IsNil() {
				result = "nil"
				return
			}
			panic(r)
		}
	}()

	switch v := value.(type) {
	case *errors.Error:
		return v
	case Serializable, json.Marshaler:
		return v
	case time.Time:
		return FormatISO8601(v)
	case error:
		return v.Error()
	case fmt.Stringer:
		return v.String()
	}

	return value
}

// JsonFormatEx is a log15 format emitting one JSON object per record.
func JsonFormatEx(pretty, lineSeparated bool) logging.Format {
	marshal := json.Marshal
	if pretty {
		marshal = func(v interface{}) ([]byte, error) {
			return json.MarshalIndent(v, "", "    ")
		}
	}

	return logging.FormatFunc(func(r *logging.Record) []byte {
		props := map[string]interface{}{
			r.KeyNames.Time: r.Time,
			r.KeyNames.Lvl:  r.Lvl.String(),
			r.KeyNames.Msg:  r.Msg,
		}

		for i := 0; i < len(r.Ctx); i += 2 {
			k, ok := r.Ctx[i].(string)
			if !ok {
				props[badKeyName] = fmt.Sprintf("%+v is not a string key", r.Ctx[i])
				continue
			}
			props[k] = logValue(r.Ctx[i+1])
		}

		b, err := marshal(props)
		if err != nil {
			b, _ = marshal(map[string]string{badKeyName: err.Error()})
			return b
		}

		if lineSeparated {
			b = append(b, '\n')
		}

		return b
	})
}
