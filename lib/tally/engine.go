package tally

import (
	"sync"

	"conclave.io/conclave/lib/common"
	"conclave.io/conclave/lib/common/observer"
	"conclave.io/conclave/lib/election"
	"conclave.io/conclave/lib/errors"
	"conclave.io/conclave/lib/metrics"
	"conclave.io/conclave/lib/storage"
)

// Engine is the weighted counting engine of the run-off phase. It
// accepts per-voter ballots that spread voting power across compliant
// nominees, converts raw votes into time-decayed weight and keeps the
// top-K nominees by weight.
type Engine struct {
	sync.Mutex

	st    *storage.LevelDBBackend
	clock common.Clock
	conf  common.Config
	power election.PowerSource
	sink  election.ResultSink
}

func NewEngine(
	st *storage.LevelDBBackend,
	clock common.Clock,
	conf common.Config,
	power election.PowerSource,
	sink election.ResultSink,
) (*Engine, error) {
	if err := conf.IsValid(); err != nil {
		return nil, err
	}

	return &Engine{
		st:    st,
		clock: clock,
		conf:  conf,
		power: power,
		sink:  sink,
	}, nil
}

// BallotReceipt is the audit payload emitted for every accepted
// ballot; running totals let an auditor reconstruct the tally.
type BallotReceipt struct {
	ReceiptID   string        `json:"receipt-id"`
	CycleIndex  uint64        `json:"cycle-index"`
	Voter       string        `json:"voter"`
	Nominee     string        `json:"nominee"`
	Votes       common.Amount `json:"votes"`
	Weight      common.Amount `json:"weight"`
	VotesUsed   common.Amount `json:"votes-used"`
	TotalWeight common.Amount `json:"total-weight"`
}

// ProposeMemberElection opens the run-off window for the cycle. It is
// the hand-off target of the Nominee Phase Controller and is not meant
// to be called twice.
func (e *Engine) ProposeMemberElection(cycleIndex uint64) (proposalID string, err error) {
	e.Lock()
	defer e.Unlock()

	var cycle election.ElectionCycle
	if cycle, err = election.GetElectionCycle(e.st, cycleIndex); err != nil {
		return
	}

	if !cycle.Finalized || !cycle.IsActive() {
		err = errors.CycleAlreadyFinalized
		return
	}
	if len(cycle.MemberProposalID) > 0 {
		err = errors.StorageRecordAlreadyExists
		return
	}

	now := e.clock.Now()
	cycle.MemberVotingStart = now
	cycle.MemberVotingEnd = now + e.conf.MemberVotingDuration
	cycle.FullWeightEnd = now + e.conf.FullWeightDuration
	cycle.MemberProposalID = common.MustMakeObjectHashString(struct {
		Index       uint64
		VotingStart uint64
	}{cycleIndex, now})

	if err = cycle.Save(e.st); err != nil {
		return
	}

	observer.ElectionObserver.Trigger(observer.EventMemberElection, cycle)

	log.Info("member election opened",
		"cycle", cycleIndex,
		"proposal", cycle.MemberProposalID,
		"voting-end", cycle.MemberVotingEnd,
		"full-weight-end", cycle.FullWeightEnd,
	)

	return cycle.MemberProposalID, nil
}

// CastBallot spends `votes` of the voter's snapshot power on one
// compliant nominee. The decayed weight is returned with the receipt.
func (e *Engine) CastBallot(cycleIndex uint64, voter, nominee string, votes common.Amount) (receipt BallotReceipt, err error) {
	e.Lock()
	defer e.Unlock()

	var cycle election.ElectionCycle
	if cycle, err = e.mostRecentCycle(cycleIndex); err != nil {
		return
	}

	now := e.clock.Now()
	if !cycle.MemberVotingOpen(now) || !cycle.IsActive() {
		err = errors.VotingNotOpen
		return
	}

	var record election.NomineeRecord
	if record, err = election.GetNomineeRecord(e.st, cycleIndex, nominee); err != nil {
		if err == errors.StorageRecordDoesNotExist {
			err = errors.NotCompliantNominee
		}
		return
	}
	if !record.IsCompliantNominee() {
		err = errors.NotCompliantNominee
		return
	}

	weight := VoteWeight(cycle.MemberVotingStart, cycle.FullWeightEnd, cycle.MemberVotingEnd, now, votes)
	if weight == 0 {
		err = errors.ZeroVoteWeight
		return
	}

	var available common.Amount
	if available, err = e.power.GetVotes(voter, cycle.PowerCheckpoint); err != nil {
		return
	}

	var ballot BallotState
	if ballot, err = GetBallotState(e.st, cycleIndex, voter); err != nil {
		return
	}

	var used common.Amount
	if used, err = ballot.VotesUsed.Add(votes); err != nil {
		return
	}
	if used > available {
		err = errors.InsufficientVotingPower.Clone().
			SetData("available", available).
			SetData("requested", used)
		return
	}

	var state NomineeWeightState
	var hasWeight bool
	if hasWeight, err = ExistsNomineeWeight(e.st, cycleIndex, nominee); err != nil {
		return
	}
	if hasWeight {
		if state, err = GetNomineeWeight(e.st, cycleIndex, nominee); err != nil {
			return
		}
	} else {
		// first weight makes the account a nominee with votes; the
		// order sequence bounds the top-K scan
		state = NomineeWeightState{
			CycleIndex:   cycleIndex,
			Address:      nominee,
			FirstVoteSeq: cycle.NomineesWithVotes,
			Confirmed:    common.NowISO8601(),
		}
		cycle.NomineesWithVotes++
	}

	if state.Weight, err = state.Weight.Add(weight); err != nil {
		return
	}

	ballot.VotesUsed = used
	if len(ballot.Confirmed) < 1 {
		ballot.Confirmed = common.NowISO8601()
	}

	var ts *storage.LevelDBBackend
	if ts, err = e.st.OpenTransaction(); err != nil {
		return
	}
	if err = ballot.Save(ts); err != nil {
		ts.Discard()
		return
	}
	if err = state.Save(ts); err != nil {
		ts.Discard()
		return
	}
	if err = cycle.Save(ts); err != nil {
		ts.Discard()
		return
	}
	if err = ts.Commit(); err != nil {
		ts.Discard()
		return
	}

	receipt = BallotReceipt{
		ReceiptID:   common.GetUniqueIDFromUUID(),
		CycleIndex:  cycleIndex,
		Voter:       voter,
		Nominee:     nominee,
		Votes:       votes,
		Weight:      weight,
		VotesUsed:   ballot.VotesUsed,
		TotalWeight: state.Weight,
	}

	observer.BallotObserver.Trigger(observer.EventBallotCast, receipt)
	observer.BallotObserver.Trigger(observer.CycleEvent(observer.EventBallotCast, cycleIndex), receipt)
	metrics.Tally.BallotsCast.Add(1)
	metrics.Tally.WeightTallied.Add(float64(weight))
	metrics.Tally.SetNomineesWithVotes(cycle.NomineesWithVotes)

	log.Debug("ballot cast",
		"cycle", cycleIndex, "voter", voter, "nominee", nominee,
		"votes", votes, "weight", weight, "total-weight", state.Weight)

	return
}

// Succeeded reports whether enough distinct nominees have received
// weight for the run-off to produce a full council cohort.
func (e *Engine) Succeeded(cycleIndex uint64) (bool, error) {
	cycle, err := election.GetElectionCycle(e.st, cycleIndex)
	if err != nil {
		return false, err
	}

	return cycle.NomineesWithVotes >= uint64(e.conf.TargetMemberCount), nil
}

// TopNominees ranks the nominees-with-votes set and returns the K
// leaders. The order is a deterministic total order: accumulated
// weight descending, then first-vote sequence ascending, then address
// ascending.
func (e *Engine) TopNominees(cycleIndex uint64) ([]string, error) {
	states, err := GetNomineesWithVotes(e.st, cycleIndex)
	if err != nil {
		return nil, err
	}

	target := e.conf.TargetMemberCount
	if len(states) < target {
		return nil, errors.InsufficientNomineesWithVotes.Clone().
			SetData("nominees-with-votes", len(states)).
			SetData("target", target)
	}

	SortByRank(states)

	top := make([]string, 0, target)
	for _, s := range states[:target] {
		top = append(top, s.Address)
	}

	return top, nil
}

// Finalize closes the run-off after its voting window elapsed and
// forwards the top-K members to the result sink, exactly once.
func (e *Engine) Finalize(cycleIndex uint64) (err error) {
	e.Lock()
	defer e.Unlock()

	var cycle election.ElectionCycle
	if cycle, err = e.mostRecentCycle(cycleIndex); err != nil {
		return
	}

	if len(cycle.MemberProposalID) < 1 {
		return errors.VotingNotOpen
	}
	if !cycle.IsActive() {
		return errors.CycleAlreadyFinalized
	}

	if e.clock.Now() <= cycle.MemberVotingEnd {
		return errors.VotingStillOpen
	}

	var top []string
	if top, err = e.TopNominees(cycleIndex); err != nil {
		if fail, ok := err.(*errors.Error); ok && fail.Code == errors.InsufficientNomineesWithVotes.Code {
			cycle.Failed = true
			cycle.FailureCode = fail.Code
			if saveErr := cycle.Save(e.st); saveErr != nil {
				return saveErr
			}

			observer.ElectionObserver.Trigger(observer.EventCycleFailed, cycle)
			metrics.Election.ElectionsFailed.Add(1)
		}
		return
	}

	if err = e.sink.ExecuteElectionResult(top, cycle.Cohort); err != nil {
		return
	}

	cycle.Executed = true
	cycle.Elected = top
	if err = cycle.Save(e.st); err != nil {
		return
	}

	observer.ElectionObserver.Trigger(observer.EventElectionExecuted, cycle)
	metrics.Election.ElectionsExecuted.Add(1)

	log.Info("run-off executed", "cycle", cycleIndex, "cohort", cycle.Cohort, "members", top)

	return
}

func (e *Engine) mostRecentCycle(cycleIndex uint64) (cycle election.ElectionCycle, err error) {
	var count uint64
	if count, err = election.GetElectionCount(e.st); err != nil {
		return
	}
	if count < 1 || cycleIndex != count-1 {
		err = errors.InvalidCycleIndex
		return
	}

	return election.GetElectionCycle(e.st, cycleIndex)
}
