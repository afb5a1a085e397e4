package election

import (
	"encoding/json"
	"fmt"

	"conclave.io/conclave/lib/cohort"
	"conclave.io/conclave/lib/common"
	"conclave.io/conclave/lib/errors"
	"conclave.io/conclave/lib/storage"
)

// ElectionCycle is the per-cycle audit record. The storage should support,
//  * find by `Index`
//  * records survive cycle completion; nothing is ever deleted
//
// models
//  * 'cycle'
// 	- 'ec-cycle-<Index>': `ElectionCycle`
//  * 'count'
// 	- 'ec-count': number of cycles opened so far

const (
	ElectionCyclePrefix string = "ec-cycle-"
	ElectionCountKey    string = "ec-count"
)

type ElectionCycle struct {
	Index      uint64        `json:"index"`
	ProposalID string        `json:"proposal-id"`
	Cohort     cohort.Cohort `json:"cohort"`
	Confirmed  string        `json:"confirmed"` // created time, ISO8601

	// nominee phase windows, unix seconds
	VotingStart uint64 `json:"voting-start"`
	VotingEnd   uint64 `json:"voting-end"`
	VettingEnd  uint64 `json:"vetting-end"`

	// voting power snapshot reference, taken at voting open
	PowerCheckpoint uint64 `json:"power-checkpoint"`

	// nominee phase counters
	NomineeCount    uint64 `json:"nominee-count"`
	ExcludedCount   uint64 `json:"excluded-count"`
	ExclusionEvents uint64 `json:"exclusion-events"` // audit counter, never decremented

	// run-off, set only when compliant nominees exceed the target
	MemberProposalID  string `json:"member-proposal-id"`
	MemberVotingStart uint64 `json:"member-voting-start"`
	MemberVotingEnd   uint64 `json:"member-voting-end"`
	FullWeightEnd     uint64 `json:"full-weight-end"`
	NomineesWithVotes uint64 `json:"nominees-with-votes"`

	// outcome
	Finalized   bool     `json:"finalized"`
	Executed    bool     `json:"executed"`
	Failed      bool     `json:"failed"`
	FailureCode uint     `json:"failure-code,omitempty"`
	Elected     []string `json:"elected,omitempty"`
}

func (c ElectionCycle) Serialize() (encoded []byte, err error) {
	encoded, err = json.Marshal(c)
	return
}

func (c ElectionCycle) String() string {
	encoded, _ := json.MarshalIndent(c, "", "  ")
	return string(encoded)
}

func (c ElectionCycle) CompliantNomineeCount() uint64 {
	return c.NomineeCount - c.ExcludedCount
}

func (c ElectionCycle) IsActive() bool {
	return !c.Executed && !c.Failed
}

func (c ElectionCycle) VotingOpen(now uint64) bool {
	return now >= c.VotingStart && now <= c.VotingEnd
}

func (c ElectionCycle) VettingOpen(now uint64) bool {
	return now > c.VotingEnd && now <= c.VettingEnd
}

func (c ElectionCycle) VettingElapsed(now uint64) bool {
	return now > c.VettingEnd
}

func (c ElectionCycle) MemberVotingOpen(now uint64) bool {
	if len(c.MemberProposalID) < 1 {
		return false
	}
	return now >= c.MemberVotingStart && now <= c.MemberVotingEnd
}

// Phase derives the cycle's phase from the clock and the stored
// outcome; no transition is recorded for pure window boundaries.
func (c ElectionCycle) Phase(now uint64) Phase {
	switch {
	case c.Failed:
		return PhaseFAILED
	case c.Executed:
		return PhaseEXECUTED
	case len(c.MemberProposalID) > 0:
		return PhaseRUNOFF
	case c.VotingOpen(now):
		return PhaseVOTING
	case c.VettingOpen(now):
		return PhaseVETTING
	case c.VettingElapsed(now):
		return PhaseCOUNTING
	default:
		return PhaseNONE
	}
}

func (c ElectionCycle) Save(st *storage.LevelDBBackend) (err error) {
	key := GetElectionCycleKey(c.Index)

	var exists bool
	if exists, err = st.Has(key); err != nil {
		return
	}

	if exists {
		err = st.Set(key, c)
	} else {
		err = st.New(key, c)
	}

	return
}

func GetElectionCycleKey(index uint64) string {
	return fmt.Sprintf("%s%020d", ElectionCyclePrefix, index)
}

func ExistsElectionCycle(st *storage.LevelDBBackend, index uint64) (bool, error) {
	return st.Has(GetElectionCycleKey(index))
}

func GetElectionCycle(st *storage.LevelDBBackend, index uint64) (c ElectionCycle, err error) {
	if err = st.Get(GetElectionCycleKey(index), &c); err != nil {
		if err == errors.StorageRecordDoesNotExist {
			err = errors.CycleNotFound
		}
		return
	}

	return
}

// GetElectionCount returns the number of cycles opened so far; the most
// recent cycle, if any, has index `count - 1`.
func GetElectionCount(st *storage.LevelDBBackend) (count uint64, err error) {
	if err = st.Get(ElectionCountKey, &count); err != nil {
		if err == errors.StorageRecordDoesNotExist {
			return 0, nil
		}
		return
	}

	return
}

func SetElectionCount(st *storage.LevelDBBackend, count uint64) (err error) {
	var exists bool
	if exists, err = st.Has(ElectionCountKey); err != nil {
		return
	}

	if exists {
		err = st.Set(ElectionCountKey, count)
	} else {
		err = st.New(ElectionCountKey, count)
	}

	return
}

var _ common.Serializable = ElectionCycle{}
