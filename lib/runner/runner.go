package runner

import (
	"time"

	"conclave.io/conclave/lib/common"
	"conclave.io/conclave/lib/election"
	"conclave.io/conclave/lib/errors"
	"conclave.io/conclave/lib/storage"
	"conclave.io/conclave/lib/tally"
)

// Runner drives the election schedule: it periodically opens the next
// cycle when its start time arrives and finalizes phases whose windows
// have elapsed. Each pass is a Tick; every transition it performs is
// re-validated by the controller and the engine, so a second runner on
// the same store is harmless.
type Runner struct {
	st     *storage.LevelDBBackend
	clock  common.Clock
	ctl    *election.Controller
	engine *tally.Engine

	interval time.Duration
	stop     chan struct{}
}

func NewRunner(
	st *storage.LevelDBBackend,
	clock common.Clock,
	ctl *election.Controller,
	engine *tally.Engine,
	interval time.Duration,
) *Runner {
	return &Runner{
		st:       st,
		clock:    clock,
		ctl:      ctl,
		engine:   engine,
		interval: interval,
		stop:     make(chan struct{}),
	}
}

// Start ticks until Stop is called.
func (r *Runner) Start() error {
	log.Info("election runner started", "interval", r.interval)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := r.Tick(); err != nil {
				log.Error("tick failed", "err", err)
			}
		case <-r.stop:
			return nil
		}
	}
}

func (r *Runner) Stop() {
	close(r.stop)
}

// Tick performs one scheduling pass.
func (r *Runner) Tick() error {
	count, err := election.GetElectionCount(r.st)
	if err != nil {
		return err
	}

	if count > 0 {
		cycle, err := election.GetElectionCycle(r.st, count-1)
		if err != nil {
			return err
		}
		if cycle.IsActive() {
			return r.advance(cycle)
		}
	}

	// no cycle, or the last one reached a terminal state
	_, err = r.ctl.OpenNextCycle()
	switch {
	case err == nil:
		return nil
	case errors.IsCode(err, errors.CycleNotYetScheduled):
		return nil
	default:
		return err
	}
}

// advance pushes one active cycle past any elapsed window.
func (r *Runner) advance(cycle election.ElectionCycle) error {
	now := r.clock.Now()

	if !cycle.Finalized {
		if !cycle.VettingElapsed(now) {
			return nil
		}

		err := r.ctl.Finalize(cycle.Index)
		if errors.IsCode(err, errors.InsufficientCompliantNominees) {
			// terminal for this cycle; the next tick schedules the next one
			log.Error("cycle failed at nominee phase", "cycle", cycle.Index, "err", err)
			return nil
		}
		return err
	}

	// the cycle finalized into a run-off but the hand-off never landed
	// (proposer error after the cycle was saved); re-issue it until the
	// run-off window exists
	if len(cycle.MemberProposalID) < 1 {
		if _, err := r.engine.ProposeMemberElection(cycle.Index); err != nil {
			return err
		}
		return nil
	}

	if now > cycle.MemberVotingEnd {
		err := r.engine.Finalize(cycle.Index)
		if errors.IsCode(err, errors.InsufficientNomineesWithVotes) {
			log.Error("cycle failed at run-off", "cycle", cycle.Index, "err", err)
			return nil
		}
		return err
	}

	return nil
}

