package cohort

import (
	"strings"

	"conclave.io/conclave/lib/errors"
)

// Cohort names one of the two alternating halves of the council. Each
// election cycle refills exactly one cohort; `cycle index mod 2` picks
// which one.
type Cohort uint

const (
	FIRST Cohort = iota
	SECOND
)

func OfCycle(cycleIndex uint64) Cohort {
	return Cohort(cycleIndex % 2)
}

func (c Cohort) Other() Cohort {
	if c == FIRST {
		return SECOND
	}
	return FIRST
}

func (c Cohort) IsValid() bool {
	return c == FIRST || c == SECOND
}

func (c Cohort) String() string {
	switch c {
	case FIRST:
		return "FIRST"
	case SECOND:
		return "SECOND"
	default:
		return ""
	}
}

func ParseCohort(s string) (Cohort, error) {
	switch strings.ToUpper(s) {
	case "FIRST", "0":
		return FIRST, nil
	case "SECOND", "1":
		return SECOND, nil
	default:
		return FIRST, errors.InvalidCohort
	}
}

// Tracker exposes the council's current cohort membership. The election
// core only ever reads it; membership changes are a side effect of a
// completed cycle being executed.
type Tracker interface {
	MembersOf(c Cohort) ([]string, error)
	CohortOf(address string) (Cohort, bool, error)
}
