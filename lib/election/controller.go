package election

import (
	"sync"

	"conclave.io/conclave/lib/cohort"
	"conclave.io/conclave/lib/common"
	"conclave.io/conclave/lib/common/observer"
	"conclave.io/conclave/lib/errors"
	"conclave.io/conclave/lib/metrics"
	"conclave.io/conclave/lib/storage"
)

// Controller runs the recurring nominee phase: it gates entry into a
// cycle, accepts contender registrations while voting is open, lets the
// reviewer edit the compliant set during vetting and routes the final
// decision at vetting close.
//
// Every operation re-validates its preconditions against stored state
// under the lock; callers may race freely.
type Controller struct {
	sync.Mutex

	st       *storage.LevelDBBackend
	clock    common.Clock
	conf     common.Config
	tracker  cohort.Tracker
	proposer MemberElectionProposer
	sink     ResultSink
	relayer  Relayer
}

func NewController(
	st *storage.LevelDBBackend,
	clock common.Clock,
	conf common.Config,
	tracker cohort.Tracker,
	proposer MemberElectionProposer,
	sink ResultSink,
) (*Controller, error) {
	if err := conf.IsValid(); err != nil {
		return nil, err
	}

	return &Controller{
		st:       st,
		clock:    clock,
		conf:     conf,
		tracker:  tracker,
		proposer: proposer,
		sink:     sink,
		relayer:  NopRelayer{},
	}, nil
}

func (c *Controller) SetRelayer(relayer Relayer) {
	c.relayer = relayer
}

// Propose rejects every direct request unconditionally; opening the
// next cycle is the only way an election request comes to exist.
func (c *Controller) Propose(proposer string, payload []byte) (string, error) {
	return "", errors.ProposalCreationForbidden
}

// OpenNextCycle opens voting for the next scheduled cycle. It fails
// while the previous cycle is still active, and before the scheduled
// start; the single-active-cycle rule is checked explicitly rather
// than left to the scheduling gap.
func (c *Controller) OpenNextCycle() (cycle ElectionCycle, err error) {
	c.Lock()
	defer c.Unlock()

	var index uint64
	if index, err = GetElectionCount(c.st); err != nil {
		return
	}

	if index > 0 {
		var prev ElectionCycle
		if prev, err = GetElectionCycle(c.st, index-1); err != nil {
			return
		}
		if prev.IsActive() {
			err = errors.CycleStillActive
			return
		}
	}

	now := c.clock.Now()
	if start := c.conf.CycleStart(index); now < start {
		err = errors.CycleNotYetScheduled.Clone().SetData("scheduled-start", start)
		return
	}

	votingEnd := now + c.conf.NomineeVotingDuration
	cycle = ElectionCycle{
		Index:           index,
		Cohort:          cohort.OfCycle(index),
		Confirmed:       common.NowISO8601(),
		VotingStart:     now,
		VotingEnd:       votingEnd,
		VettingEnd:      votingEnd + c.conf.VettingDuration,
		PowerCheckpoint: now,
	}
	// the request carries no executable payload; its identity is
	// derived from the cycle itself
	cycle.ProposalID = common.MustMakeObjectHashString(struct {
		Index       uint64
		VotingStart uint64
	}{index, now})

	var ts *storage.LevelDBBackend
	if ts, err = c.st.OpenTransaction(); err != nil {
		return
	}
	if err = cycle.Save(ts); err != nil {
		ts.Discard()
		return
	}
	if err = SetElectionCount(ts, index+1); err != nil {
		ts.Discard()
		return
	}
	if err = ts.Commit(); err != nil {
		ts.Discard()
		return
	}

	observer.ElectionObserver.Trigger(observer.EventCycleOpened, cycle)
	metrics.Election.CyclesOpened.Add(1)
	metrics.Election.SetActiveCycle(index)
	metrics.Election.SetContenders(0)

	log.Info("election cycle opened",
		"cycle", index,
		"cohort", cycle.Cohort,
		"proposal", cycle.ProposalID,
		"voting-end", cycle.VotingEnd,
		"vetting-end", cycle.VettingEnd,
	)

	return
}

// mostRecentCycle loads the cycle at `index` and rejects indexes other
// than the most recently opened cycle.
func (c *Controller) mostRecentCycle(index uint64) (cycle ElectionCycle, err error) {
	var count uint64
	if count, err = GetElectionCount(c.st); err != nil {
		return
	}
	if count < 1 || index != count-1 {
		err = errors.InvalidCycleIndex
		return
	}

	return GetElectionCycle(c.st, index)
}

// RegisterContender self-registers `account` for the cycle. Allowed
// only while voting is open and only for accounts not sitting in the
// opposite cohort.
func (c *Controller) RegisterContender(cycleIndex uint64, account string) (err error) {
	c.Lock()
	defer c.Unlock()

	var cycle ElectionCycle
	if cycle, err = c.mostRecentCycle(cycleIndex); err != nil {
		return
	}

	if !cycle.VotingOpen(c.clock.Now()) {
		return errors.VotingNotOpen
	}

	var exists bool
	if exists, err = ExistsNomineeRecord(c.st, cycleIndex, account); err != nil {
		return
	}
	if exists {
		return errors.AlreadyContender
	}

	if err = c.rejectOppositeCohortMember(cycle, account); err != nil {
		return
	}

	record := NomineeRecord{
		CycleIndex:  cycleIndex,
		Address:     account,
		IsContender: true,
		Seq:         cycle.NomineeCount,
		Confirmed:   common.NowISO8601(),
	}
	var ts *storage.LevelDBBackend
	if ts, err = c.st.OpenTransaction(); err != nil {
		return
	}
	if err = record.Save(ts); err != nil {
		ts.Discard()
		return
	}

	cycle.NomineeCount++
	if err = cycle.Save(ts); err != nil {
		ts.Discard()
		return
	}
	if err = ts.Commit(); err != nil {
		ts.Discard()
		return
	}

	observer.ElectionObserver.Trigger(observer.EventContenderAdded, record)
	observer.ElectionObserver.Trigger(observer.CycleEvent(observer.EventContenderAdded, cycleIndex), record)
	metrics.Election.SetContenders(cycle.NomineeCount)

	log.Info("contender registered", "cycle", cycleIndex, "account", account, "seq", record.Seq)

	return
}

// ExcludeNominee removes `account` from the compliant set. Reviewer
// only, vetting window only, at most once while excluded.
func (c *Controller) ExcludeNominee(cycleIndex uint64, caller, account string) (err error) {
	c.Lock()
	defer c.Unlock()

	var cycle ElectionCycle
	if cycle, err = c.vettingCycle(cycleIndex, caller); err != nil {
		return
	}

	var record NomineeRecord
	if record, err = GetNomineeRecord(c.st, cycleIndex, account); err != nil {
		if err == errors.StorageRecordDoesNotExist {
			err = errors.NotContender
		}
		return
	}
	if !record.IsContender {
		return errors.NotContender
	}
	if record.IsExcluded {
		return errors.AlreadyExcluded
	}

	record.IsExcluded = true
	if err = record.Save(c.st); err != nil {
		return
	}

	cycle.ExcludedCount++
	cycle.ExclusionEvents++
	if err = cycle.Save(c.st); err != nil {
		return
	}

	observer.ElectionObserver.Trigger(observer.EventNomineeExcluded, record)
	metrics.Election.Exclusions.Add(1)
	metrics.Election.SetCompliantNominees(cycle.CompliantNomineeCount())

	log.Info("nominee excluded", "cycle", cycleIndex, "account", account,
		"compliant", cycle.CompliantNomineeCount())

	return
}

// IncludeNominee reinstates a previously excluded nominee. The
// opposite-cohort check is repeated here because cohort membership may
// have changed since registration.
func (c *Controller) IncludeNominee(cycleIndex uint64, caller, account string) (err error) {
	c.Lock()
	defer c.Unlock()

	var cycle ElectionCycle
	if cycle, err = c.vettingCycle(cycleIndex, caller); err != nil {
		return
	}

	var record NomineeRecord
	if record, err = GetNomineeRecord(c.st, cycleIndex, account); err != nil {
		if err == errors.StorageRecordDoesNotExist {
			err = errors.NotContender
		}
		return
	}
	if record.IsCompliantNominee() {
		return errors.AlreadyCompliantNominee
	}
	if !record.IsExcluded {
		return errors.NotContender
	}

	if err = c.rejectOppositeCohortMember(cycle, account); err != nil {
		return
	}

	record.IsExcluded = false
	if err = record.Save(c.st); err != nil {
		return
	}

	cycle.ExcludedCount--
	if err = cycle.Save(c.st); err != nil {
		return
	}

	observer.ElectionObserver.Trigger(observer.EventNomineeIncluded, record)
	metrics.Election.Inclusions.Add(1)
	metrics.Election.SetCompliantNominees(cycle.CompliantNomineeCount())

	log.Info("nominee included", "cycle", cycleIndex, "account", account,
		"compliant", cycle.CompliantNomineeCount())

	return
}

// Finalize routes the cycle's outcome after the vetting window has
// elapsed. Callable by anyone; the three-way branch on the compliant
// nominee count happens exactly once.
func (c *Controller) Finalize(cycleIndex uint64) (err error) {
	c.Lock()
	defer c.Unlock()

	var cycle ElectionCycle
	if cycle, err = c.mostRecentCycle(cycleIndex); err != nil {
		return
	}

	if cycle.Finalized {
		return errors.CycleAlreadyFinalized
	}

	now := c.clock.Now()
	if cycle.VotingOpen(now) {
		return errors.VotingStillOpen
	}
	if !cycle.VettingElapsed(now) {
		return errors.VettingStillOpen
	}

	compliant := cycle.CompliantNomineeCount()
	target := uint64(c.conf.TargetMemberCount)

	switch {
	case compliant == target:
		var records []NomineeRecord
		if records, err = GetCompliantNominees(c.st, cycleIndex); err != nil {
			return
		}
		nominees := make([]string, 0, len(records))
		for _, r := range records {
			nominees = append(nominees, r.Address)
		}

		if err = c.sink.ExecuteElectionResult(nominees, cycle.Cohort); err != nil {
			return
		}

		cycle.Finalized = true
		cycle.Executed = true
		cycle.Elected = nominees
		if err = cycle.Save(c.st); err != nil {
			return
		}

		observer.ElectionObserver.Trigger(observer.EventElectionExecuted, cycle)
		metrics.Election.ElectionsExecuted.Add(1)

		log.Info("election executed without run-off",
			"cycle", cycleIndex, "cohort", cycle.Cohort, "members", nominees)

	case compliant > target:
		cycle.Finalized = true
		if err = cycle.Save(c.st); err != nil {
			return
		}

		var proposalID string
		if proposalID, err = c.proposer.ProposeMemberElection(cycleIndex); err != nil {
			return
		}

		log.Info("run-off opened",
			"cycle", cycleIndex, "compliant", compliant, "target", target,
			"member-proposal", proposalID)

	default:
		cycle.Finalized = true
		cycle.Failed = true
		cycle.FailureCode = errors.InsufficientCompliantNominees.Code
		if err = cycle.Save(c.st); err != nil {
			return
		}

		observer.ElectionObserver.Trigger(observer.EventCycleFailed, cycle)
		metrics.Election.ElectionsFailed.Add(1)

		log.Error("cycle failed: not enough compliant nominees",
			"cycle", cycleIndex, "compliant", compliant, "target", target)

		err = errors.InsufficientCompliantNominees.Clone().
			SetData("compliant", compliant).
			SetData("target", target)
	}

	return
}

// ChangeReviewer reassigns the designated reviewer. Owner only.
func (c *Controller) ChangeReviewer(caller, reviewer string) (err error) {
	c.Lock()
	defer c.Unlock()

	var roles Roles
	if roles, err = GetRoles(c.st); err != nil {
		return
	}
	if roles.Owner != caller {
		return errors.NotOwner
	}

	previous := roles.Reviewer
	roles.Reviewer = reviewer
	if err = roles.Save(c.st); err != nil {
		return
	}

	observer.RoleObserver.Trigger(observer.EventReviewerChanged, previous, reviewer)
	log.Info("reviewer changed", "previous", previous, "reviewer", reviewer)

	return
}

// TransferOwnership reassigns the owner. Owner only.
func (c *Controller) TransferOwnership(caller, owner string) (err error) {
	c.Lock()
	defer c.Unlock()

	var roles Roles
	if roles, err = GetRoles(c.st); err != nil {
		return
	}
	if roles.Owner != caller {
		return errors.NotOwner
	}

	previous := roles.Owner
	roles.Owner = owner
	if err = roles.Save(c.st); err != nil {
		return
	}

	observer.RoleObserver.Trigger(observer.EventOwnerChanged, previous, owner)
	log.Info("ownership transferred", "previous", previous, "owner", owner)

	return
}

// Relay passes an arbitrary low-level call through to the configured
// target. Owner only; not part of the election logic.
func (c *Controller) Relay(caller, target string, data []byte) (err error) {
	c.Lock()
	defer c.Unlock()

	var roles Roles
	if roles, err = GetRoles(c.st); err != nil {
		return
	}
	if roles.Owner != caller {
		return errors.NotOwner
	}

	log.Info("relay call", "target", target, "size", len(data))

	return c.relayer.Call(target, data)
}

// vettingCycle loads the most recent cycle and checks the reviewer
// role and the vetting window.
func (c *Controller) vettingCycle(cycleIndex uint64, caller string) (cycle ElectionCycle, err error) {
	var roles Roles
	if roles, err = GetRoles(c.st); err != nil {
		return
	}
	if roles.Reviewer != caller {
		err = errors.NotReviewer
		return
	}

	if cycle, err = c.mostRecentCycle(cycleIndex); err != nil {
		return
	}

	now := c.clock.Now()
	if cycle.VotingOpen(now) {
		err = errors.VotingStillOpen
		return
	}
	if cycle.VettingElapsed(now) {
		err = errors.VettingElapsed
		return
	}
	if cycle.Finalized {
		err = errors.CycleAlreadyFinalized
		return
	}

	return
}

func (c *Controller) rejectOppositeCohortMember(cycle ElectionCycle, account string) error {
	members, err := c.tracker.MembersOf(cycle.Cohort.Other())
	if err != nil {
		return err
	}

	if _, found := common.InStringArray(members, account); found {
		return errors.MemberOfOppositeCohort
	}

	return nil
}
