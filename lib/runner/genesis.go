package runner

import (
	"io/ioutil"
	"time"

	"github.com/pkg/errors"
	yaml "gopkg.in/yaml.v2"

	"conclave.io/conclave/lib/cohort"
	"conclave.io/conclave/lib/common"
	"conclave.io/conclave/lib/election"
	"conclave.io/conclave/lib/storage"
)

// GenesisConfig is the one-time bootstrap document: the privileged
// roles, the sitting cohorts and the voting power snapshot.
type GenesisConfig struct {
	Owner    string `yaml:"owner"`
	Reviewer string `yaml:"reviewer"`

	FirstCycle struct {
		Year  int `yaml:"year"`
		Month int `yaml:"month"`
		Day   int `yaml:"day"`
		Hour  int `yaml:"hour"`
	} `yaml:"first_cycle"`

	TargetMemberCount int `yaml:"target_member_count"`

	Cohorts struct {
		First  []string `yaml:"first"`
		Second []string `yaml:"second"`
	} `yaml:"cohorts"`

	VotingPower map[string]uint64 `yaml:"voting_power"`
}

func LoadGenesisConfig(path string) (conf GenesisConfig, err error) {
	var body []byte
	if body, err = ioutil.ReadFile(path); err != nil {
		err = errors.Wrap(err, "failed to read genesis file")
		return
	}

	if err = yaml.UnmarshalStrict(body, &conf); err != nil {
		err = errors.Wrap(err, "failed to parse genesis file")
		return
	}

	return
}

// Config merges the genesis document into the default election config.
func (g GenesisConfig) Config() (common.Config, error) {
	conf := common.NewConfig()

	if g.TargetMemberCount > 0 {
		conf.TargetMemberCount = g.TargetMemberCount
	}
	if g.FirstCycle.Year > 0 {
		conf.FirstCycle = common.CycleDate{
			Year:  g.FirstCycle.Year,
			Month: time.Month(g.FirstCycle.Month),
			Day:   g.FirstCycle.Day,
			Hour:  g.FirstCycle.Hour,
		}
	}

	if err := conf.IsValid(); err != nil {
		return common.Config{}, err
	}

	return conf, nil
}

// Apply seeds the store. Roles and cohort membership are overwritten;
// a non-empty election history means the store has already been
// bootstrapped and Apply refuses to touch it.
func (g GenesisConfig) Apply(st *storage.LevelDBBackend) error {
	count, err := election.GetElectionCount(st)
	if err != nil {
		return err
	}
	if count > 0 {
		return errors.New("store already holds election cycles")
	}

	if len(g.Owner) < 1 || len(g.Reviewer) < 1 {
		return errors.New("genesis requires owner and reviewer")
	}

	roles := election.Roles{Owner: g.Owner, Reviewer: g.Reviewer}
	if err := roles.Save(st); err != nil {
		return err
	}

	store := cohort.NewStore(st)
	if err := store.Replace(cohort.FIRST, g.Cohorts.First); err != nil {
		return err
	}
	if err := store.Replace(cohort.SECOND, g.Cohorts.Second); err != nil {
		return err
	}

	for address, power := range g.VotingPower {
		if err := election.SetPower(st, address, common.Amount(power)); err != nil {
			return err
		}
	}

	log.Info("genesis applied",
		"owner", g.Owner,
		"reviewer", g.Reviewer,
		"first-cohort", len(g.Cohorts.First),
		"second-cohort", len(g.Cohorts.Second),
		"power-records", len(g.VotingPower),
	)

	return nil
}
