package common

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"conclave.io/conclave/lib/errors"
)

func TestCycleDateIsValid(t *testing.T) {
	require.NoError(t, CycleDate{Year: 2022, Month: time.September, Day: 15, Hour: 12}.IsValid())

	// day 29 can fall outside February
	require.Equal(t, errors.InvalidCycleDate,
		CycleDate{Year: 2022, Month: time.January, Day: 29, Hour: 0}.IsValid())
	require.Equal(t, errors.InvalidCycleDate,
		CycleDate{Year: 2022, Month: time.January, Day: 0, Hour: 0}.IsValid())
	require.Equal(t, errors.InvalidCycleDate,
		CycleDate{Year: 2022, Month: time.Month(13), Day: 1, Hour: 0}.IsValid())
	require.Equal(t, errors.InvalidCycleDate,
		CycleDate{Year: 2022, Month: time.January, Day: 1, Hour: 24}.IsValid())
}

func TestCycleDateAddMonths(t *testing.T) {
	d := CycleDate{Year: 2022, Month: time.September, Day: 15, Hour: 12}

	// within the same year
	n := d.AddMonths(2)
	require.Equal(t, 2022, n.Year)
	require.Equal(t, time.November, n.Month)

	// rolls over into the next year, day and hour held fixed
	n = d.AddMonths(6)
	require.Equal(t, 2023, n.Year)
	require.Equal(t, time.March, n.Month)
	require.Equal(t, 15, n.Day)
	require.Equal(t, 12, n.Hour)

	// several years ahead
	n = d.AddMonths(30)
	require.Equal(t, 2025, n.Year)
	require.Equal(t, time.March, n.Month)

	// adding zero is the identity
	require.Equal(t, d, d.AddMonths(0))
}

func TestCycleDateUnix(t *testing.T) {
	d := CycleDate{Year: 2022, Month: time.September, Day: 15, Hour: 12}
	require.Equal(t, uint64(time.Date(2022, time.September, 15, 12, 0, 0, 0, time.UTC).Unix()), d.Unix())

	// the schedule is strictly increasing
	prev := d.Unix()
	for i := uint64(1); i < 10; i++ {
		next := d.AddMonths(MonthsBetweenCycles * i).Unix()
		require.True(t, next > prev)
		prev = next
	}
}

func TestManualClock(t *testing.T) {
	clock := NewManualClock(1000)
	require.Equal(t, uint64(1000), clock.Now())

	clock.Advance(500)
	require.Equal(t, uint64(1500), clock.Now())

	clock.Set(100)
	require.Equal(t, uint64(100), clock.Now())
}
