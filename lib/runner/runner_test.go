package runner

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"conclave.io/conclave/lib/cohort"
	"conclave.io/conclave/lib/common"
	"conclave.io/conclave/lib/election"
	"conclave.io/conclave/lib/errors"
	"conclave.io/conclave/lib/storage"
	"conclave.io/conclave/lib/tally"
)

type runnerFixture struct {
	st     *storage.LevelDBBackend
	clock  *common.ManualClock
	conf   common.Config
	store  *cohort.Store
	ctl    *election.Controller
	engine *tally.Engine
	runner *Runner
}

func newRunnerFixture(t *testing.T, powers map[string]common.Amount) *runnerFixture {
	st := storage.NewTestStorage()

	conf := common.NewConfig()
	conf.FirstCycle = common.CycleDate{Year: 2022, Month: time.September, Day: 15, Hour: 12}
	clock := common.NewManualClock(conf.CycleStart(0) - 1)

	store := cohort.NewStore(st)
	sink := election.NewCohortRotator(store)

	engine, err := tally.NewEngine(st, clock, conf, election.NewStaticPowerSource(powers), sink)
	require.NoError(t, err)

	ctl, err := election.NewController(st, clock, conf, store, engine, sink)
	require.NoError(t, err)
	require.NoError(t, election.Roles{Owner: "GOWNER", Reviewer: "GREVIEWER"}.Save(st))

	return &runnerFixture{
		st:     st,
		clock:  clock,
		conf:   conf,
		store:  store,
		ctl:    ctl,
		engine: engine,
		runner: NewRunner(st, clock, ctl, engine, time.Second),
	}
}

func (f *runnerFixture) currentCycle(t *testing.T) election.ElectionCycle {
	count, err := election.GetElectionCount(f.st)
	require.NoError(t, err)
	require.True(t, count > 0)

	cycle, err := election.GetElectionCycle(f.st, count-1)
	require.NoError(t, err)
	return cycle
}

func TestRunnerOpensScheduledCycle(t *testing.T) {
	f := newRunnerFixture(t, nil)

	// before the schedule nothing happens
	require.NoError(t, f.runner.Tick())
	count, err := election.GetElectionCount(f.st)
	require.NoError(t, err)
	require.Equal(t, uint64(0), count)

	f.clock.Set(f.conf.CycleStart(0))
	require.NoError(t, f.runner.Tick())

	cycle := f.currentCycle(t)
	require.Equal(t, uint64(0), cycle.Index)
	require.Equal(t, election.PhaseVOTING, cycle.Phase(f.clock.Now()))

	// a second tick leaves the open cycle alone
	require.NoError(t, f.runner.Tick())
	count, err = election.GetElectionCount(f.st)
	require.NoError(t, err)
	require.Equal(t, uint64(1), count)
}

func TestRunnerExecutesExactTargetCycle(t *testing.T) {
	f := newRunnerFixture(t, nil)

	f.clock.Set(f.conf.CycleStart(0))
	require.NoError(t, f.runner.Tick())

	var elected []string
	for i := 0; i < f.conf.TargetMemberCount; i++ {
		account := fmt.Sprintf("GCONTENDER%02d", i)
		require.NoError(t, f.ctl.RegisterContender(0, account))
		elected = append(elected, account)
	}

	cycle := f.currentCycle(t)

	// the vetting window is still open
	f.clock.Set(cycle.VettingEnd)
	require.NoError(t, f.runner.Tick())
	require.True(t, f.currentCycle(t).IsActive())

	f.clock.Set(cycle.VettingEnd + 1)
	require.NoError(t, f.runner.Tick())

	cycle = f.currentCycle(t)
	require.True(t, cycle.Executed)

	// the rotator replaced the refilled cohort
	members, err := f.store.MembersOf(cohort.FIRST)
	require.NoError(t, err)
	require.Equal(t, elected, members)
}

func TestRunnerFailsShortCycleAndSchedulesNext(t *testing.T) {
	f := newRunnerFixture(t, nil)

	f.clock.Set(f.conf.CycleStart(0))
	require.NoError(t, f.runner.Tick())
	require.NoError(t, f.ctl.RegisterContender(0, "GONLY"))

	cycle := f.currentCycle(t)
	f.clock.Set(cycle.VettingEnd + 1)

	// the shortfall is terminal but not a runner error
	require.NoError(t, f.runner.Tick())
	cycle = f.currentCycle(t)
	require.True(t, cycle.Failed)

	// the next scheduled cycle opens for the other cohort
	f.clock.Set(f.conf.CycleStart(1))
	require.NoError(t, f.runner.Tick())

	cycle = f.currentCycle(t)
	require.Equal(t, uint64(1), cycle.Index)
	require.Equal(t, cohort.SECOND, cycle.Cohort)
}

// faultyProposer fails the hand-off a configured number of times
// before delegating to the engine.
type faultyProposer struct {
	engine   *tally.Engine
	failures int
}

func (p *faultyProposer) ProposeMemberElection(cycleIndex uint64) (string, error) {
	if p.failures > 0 {
		p.failures--
		return "", errors.StorageCoreError
	}
	return p.engine.ProposeMemberElection(cycleIndex)
}

func TestRunnerRecoversInterruptedRunOffHandOff(t *testing.T) {
	st := storage.NewTestStorage()

	conf := common.NewConfig()
	conf.FirstCycle = common.CycleDate{Year: 2022, Month: time.September, Day: 15, Hour: 12}
	clock := common.NewManualClock(conf.CycleStart(0))

	store := cohort.NewStore(st)
	sink := election.NewCohortRotator(store)

	engine, err := tally.NewEngine(st, clock, conf, election.NewStaticPowerSource(nil), sink)
	require.NoError(t, err)

	proposer := &faultyProposer{engine: engine, failures: 1}
	ctl, err := election.NewController(st, clock, conf, store, proposer, sink)
	require.NoError(t, err)
	require.NoError(t, election.Roles{Owner: "GOWNER", Reviewer: "GREVIEWER"}.Save(st))

	r := NewRunner(st, clock, ctl, engine, time.Second)

	require.NoError(t, r.Tick())
	for i := 0; i < conf.TargetMemberCount+2; i++ {
		require.NoError(t, ctl.RegisterContender(0, fmt.Sprintf("GCONTENDER%02d", i)))
	}

	cycle, err := election.GetElectionCycle(st, 0)
	require.NoError(t, err)
	clock.Set(cycle.VettingEnd + 1)

	// the hand-off fails once: the cycle is saved finalized but no
	// run-off window exists yet
	require.Error(t, r.Tick())
	cycle, err = election.GetElectionCycle(st, 0)
	require.NoError(t, err)
	require.True(t, cycle.Finalized)
	require.True(t, cycle.IsActive())
	require.Empty(t, cycle.MemberProposalID)

	// the next pass re-issues the hand-off instead of leaving the
	// cycle stuck
	require.NoError(t, r.Tick())
	cycle, err = election.GetElectionCycle(st, 0)
	require.NoError(t, err)
	require.NotEmpty(t, cycle.MemberProposalID)
	require.True(t, cycle.IsActive())

	// later cycles are no longer blocked once this one completes
	require.Equal(t, election.PhaseRUNOFF, cycle.Phase(clock.Now()))
}

func TestRunnerDrivesRunOffToExecution(t *testing.T) {
	powers := map[string]common.Amount{}
	for i := 0; i < 8; i++ {
		powers[fmt.Sprintf("GVOTER%02d", i)] = 1000
	}
	f := newRunnerFixture(t, powers)

	f.clock.Set(f.conf.CycleStart(0))
	require.NoError(t, f.runner.Tick())

	for i := 0; i < f.conf.TargetMemberCount+2; i++ {
		require.NoError(t, f.ctl.RegisterContender(0, fmt.Sprintf("GCONTENDER%02d", i)))
	}

	cycle := f.currentCycle(t)
	f.clock.Set(cycle.VettingEnd + 1)
	require.NoError(t, f.runner.Tick())

	// the run-off is open now
	cycle = f.currentCycle(t)
	require.NotEmpty(t, cycle.MemberProposalID)
	require.True(t, cycle.IsActive())

	for i := 0; i < 8; i++ {
		_, err := f.engine.CastBallot(0, fmt.Sprintf("GVOTER%02d", i),
			fmt.Sprintf("GCONTENDER%02d", i), common.Amount(100+10*i))
		require.NoError(t, err)
	}

	f.clock.Set(cycle.MemberVotingEnd + 1)
	require.NoError(t, f.runner.Tick())

	cycle = f.currentCycle(t)
	require.True(t, cycle.Executed)
	require.Equal(t, 6, len(cycle.Elected))

	members, err := f.store.MembersOf(cohort.FIRST)
	require.NoError(t, err)
	require.Equal(t, cycle.Elected, members)
}
