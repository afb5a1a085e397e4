package common

import (
	"time"

	"conclave.io/conclave/lib/errors"
)

//
// Config carries every tunable of the election schedule. It is included
// in the Nominee Phase Controller and the Weighted Counting Engine and
// all window boundaries are derived from it.
//
// Durations are unix seconds, to match the clock of the host ledger.
//
type Config struct {
	// seats refilled per cycle; also the top-K cutoff of the run-off
	TargetMemberCount int

	// nominee phase voting window (contender registration)
	NomineeVotingDuration uint64
	// reviewer window after nominee voting closes
	VettingDuration uint64
	// run-off voting window
	MemberVotingDuration uint64
	// initial part of the run-off during which votes keep full weight
	FullWeightDuration uint64

	// scheduled start of cycle 0; cycle i starts 6*i months later
	FirstCycle CycleDate

	// Those fields are not election-related
	RateLimitRuleAPI RateLimitRule
}

func NewConfig() Config {
	p := Config{}

	p.TargetMemberCount = 6

	p.NomineeVotingDuration = uint64((7 * 24 * time.Hour).Seconds())
	p.VettingDuration = uint64((14 * 24 * time.Hour).Seconds())
	p.MemberVotingDuration = uint64((21 * 24 * time.Hour).Seconds())
	p.FullWeightDuration = uint64((7 * 24 * time.Hour).Seconds())

	p.FirstCycle = CycleDate{Year: 2022, Month: time.September, Day: 15, Hour: 12}

	p.RateLimitRuleAPI = NewRateLimitRule(RateLimitAPI)

	return p
}

func (p Config) IsValid() error {
	if p.TargetMemberCount < 1 {
		return errors.InvalidConfig
	}
	if p.NomineeVotingDuration < 1 || p.VettingDuration < 1 || p.MemberVotingDuration < 1 {
		return errors.InvalidConfig
	}
	if p.FullWeightDuration >= p.MemberVotingDuration {
		// the decay window would be empty and the weight function
		// would divide by zero
		return errors.InvalidConfig
	}

	return p.FirstCycle.IsValid()
}

// CycleStart returns the scheduled start of cycle `index`.
func (p Config) CycleStart(index uint64) uint64 {
	return p.FirstCycle.AddMonths(MonthsBetweenCycles * index).Unix()
}
