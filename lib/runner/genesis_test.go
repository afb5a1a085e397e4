package runner

import (
	"io/ioutil"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"conclave.io/conclave/lib/cohort"
	"conclave.io/conclave/lib/common"
	"conclave.io/conclave/lib/election"
	"conclave.io/conclave/lib/storage"
)

const testGenesisYAML = `
owner: GOWNER
reviewer: GREVIEWER
first_cycle:
  year: 2022
  month: 9
  day: 15
  hour: 12
target_member_count: 6
cohorts:
  first:
    - GMEMBER00
    - GMEMBER01
  second:
    - GMEMBER02
voting_power:
  GVOTER00: 1000
  GVOTER01: 250
`

func writeTestGenesis(t *testing.T) string {
	f, err := ioutil.TempFile("", "genesis*.yml")
	require.NoError(t, err)
	t.Cleanup(func() { os.Remove(f.Name()) })

	_, err = f.WriteString(testGenesisYAML)
	require.NoError(t, err)
	require.NoError(t, f.Close())

	return f.Name()
}

func TestLoadGenesisConfig(t *testing.T) {
	conf, err := LoadGenesisConfig(writeTestGenesis(t))
	require.NoError(t, err)

	require.Equal(t, "GOWNER", conf.Owner)
	require.Equal(t, "GREVIEWER", conf.Reviewer)
	require.Equal(t, 6, conf.TargetMemberCount)
	require.Equal(t, []string{"GMEMBER00", "GMEMBER01"}, conf.Cohorts.First)
	require.Equal(t, uint64(1000), conf.VotingPower["GVOTER00"])

	electionConf, err := conf.Config()
	require.NoError(t, err)
	require.Equal(t, common.CycleDate{Year: 2022, Month: time.September, Day: 15, Hour: 12}, electionConf.FirstCycle)
}

func TestLoadGenesisConfigMissingFile(t *testing.T) {
	_, err := LoadGenesisConfig("/nonexistent/genesis.yml")
	require.Error(t, err)
}

func TestGenesisApply(t *testing.T) {
	st := storage.NewTestStorage()

	conf, err := LoadGenesisConfig(writeTestGenesis(t))
	require.NoError(t, err)
	require.NoError(t, conf.Apply(st))

	roles, err := election.GetRoles(st)
	require.NoError(t, err)
	require.Equal(t, "GOWNER", roles.Owner)
	require.Equal(t, "GREVIEWER", roles.Reviewer)

	store := cohort.NewStore(st)
	members, err := store.MembersOf(cohort.SECOND)
	require.NoError(t, err)
	require.Equal(t, []string{"GMEMBER02"}, members)

	power := election.NewStoragePowerSource(st)
	votes, err := power.GetVotes("GVOTER01", 0)
	require.NoError(t, err)
	require.Equal(t, common.Amount(250), votes)

	// unseeded accounts hold no power
	votes, err = power.GetVotes("GUNKNOWN", 0)
	require.NoError(t, err)
	require.Equal(t, common.Amount(0), votes)
}

func TestGenesisApplyRefusesExistingHistory(t *testing.T) {
	st := storage.NewTestStorage()
	require.NoError(t, election.SetElectionCount(st, 1))

	conf, err := LoadGenesisConfig(writeTestGenesis(t))
	require.NoError(t, err)
	require.Error(t, conf.Apply(st))
}
