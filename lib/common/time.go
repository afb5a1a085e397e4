package common

import (
	"time"

	"conclave.io/conclave/lib/errors"
)

const (
	TIMEFORMAT_ISO8601 string = "2006-01-02T15:04:05.000000000Z07:00"

	// election cycles repeat every half year
	MonthsBetweenCycles uint64 = 6
)

func FormatISO8601(t time.Time) string {
	return t.Format(TIMEFORMAT_ISO8601)
}

func NowISO8601() string {
	return FormatISO8601(time.Now())
}

func ParseISO8601(s string) (time.Time, error) {
	return time.Parse(TIMEFORMAT_ISO8601, s)
}

// CycleDate is a wall-clock anchor for the election schedule. Only the
// month component moves between cycles; day-of-month and hour are held
// fixed, so `Day` is restricted to [1, 28] to stay valid in February.
type CycleDate struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
	Day   int        `json:"day"`
	Hour  int        `json:"hour"`
}

func (d CycleDate) IsValid() error {
	if d.Month < time.January || d.Month > time.December {
		return errors.InvalidCycleDate
	}
	if d.Day < 1 || d.Day > 28 {
		return errors.InvalidCycleDate
	}
	if d.Hour < 0 || d.Hour > 23 {
		return errors.InvalidCycleDate
	}

	return nil
}

// AddMonths moves the date forward by `n` months, carrying into the
// year as needed. Day and hour are untouched.
func (d CycleDate) AddMonths(n uint64) CycleDate {
	months := uint64(d.Month-time.January) + n

	d.Year += int(months / 12)
	d.Month = time.January + time.Month(months%12)

	return d
}

func (d CycleDate) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, d.Hour, 0, 0, 0, time.UTC)
}

func (d CycleDate) Unix() uint64 {
	return uint64(d.Time().Unix())
}
