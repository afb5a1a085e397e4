package cohort

import (
	"fmt"

	"conclave.io/conclave/lib/common"
	"conclave.io/conclave/lib/common/observer"
	"conclave.io/conclave/lib/errors"
	"conclave.io/conclave/lib/storage"
)

// storage model
//  * 'members'
// 	- 'ch-members-<Cohort>': ordered []string of member addresses

const CohortMembersPrefix string = "ch-members-"

func GetCohortMembersKey(c Cohort) string {
	return fmt.Sprintf("%s%s", CohortMembersPrefix, c)
}

// Store is the LevelDB-backed Tracker. `Replace` swaps a whole cohort
// at once, which is how an executed election result lands.
type Store struct {
	st *storage.LevelDBBackend
}

func NewStore(st *storage.LevelDBBackend) *Store {
	return &Store{st: st}
}

func (s *Store) MembersOf(c Cohort) (members []string, err error) {
	if !c.IsValid() {
		err = errors.InvalidCohort
		return
	}

	if err = s.st.Get(GetCohortMembersKey(c), &members); err != nil {
		if err == errors.StorageRecordDoesNotExist {
			return nil, nil
		}
		return
	}

	return
}

func (s *Store) CohortOf(address string) (c Cohort, found bool, err error) {
	for _, c = range []Cohort{FIRST, SECOND} {
		var members []string
		if members, err = s.MembersOf(c); err != nil {
			return
		}
		if _, found = common.InStringArray(members, address); found {
			return
		}
	}

	return FIRST, false, nil
}

func (s *Store) Replace(c Cohort, members []string) (err error) {
	if !c.IsValid() {
		return errors.InvalidCohort
	}

	key := GetCohortMembersKey(c)

	var exists bool
	if exists, err = s.st.Has(key); err != nil {
		return
	}

	if exists {
		err = s.st.Set(key, members)
	} else {
		err = s.st.New(key, members)
	}
	if err == nil {
		observer.CohortObserver.Trigger(fmt.Sprintf("replaced-%s", c), members)
	}

	return
}
