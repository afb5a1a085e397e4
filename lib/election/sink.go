package election

import (
	"conclave.io/conclave/lib/cohort"
)

// ResultSink receives the final ordered member list of a completed
// cycle, exactly once per cycle. The production sink is the timelock
// that carries out the rotation; CohortRotator is the built-in
// stand-in that swaps the cohort store directly.
type ResultSink interface {
	ExecuteElectionResult(nominees []string, c cohort.Cohort) error
}

// MemberElectionProposer opens the run-off when the compliant nominee
// set exceeds the target size. Implemented by the counting engine.
type MemberElectionProposer interface {
	ProposeMemberElection(cycleIndex uint64) (proposalID string, err error)
}

type CohortRotator struct {
	store *cohort.Store
}

func NewCohortRotator(store *cohort.Store) *CohortRotator {
	return &CohortRotator{store: store}
}

func (r *CohortRotator) ExecuteElectionResult(nominees []string, c cohort.Cohort) error {
	return r.store.Replace(c, nominees)
}

// Relayer is the owner-gated pass-through for arbitrary low-level
// calls; it is administrative surface, not election logic.
type Relayer interface {
	Call(target string, data []byte) error
}

type NopRelayer struct{}

func (NopRelayer) Call(string, []byte) error {
	return nil
}
