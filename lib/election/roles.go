package election

import (
	"conclave.io/conclave/lib/storage"
)

// Roles holds the two privileged singleton accounts. They are stored
// explicitly and reassigned atomically; nothing in the election core
// treats any other account as privileged.
//
// models
//  * 'roles'
// 	- 'ec-roles': `Roles`

const RolesKey string = "ec-roles"

type Roles struct {
	Owner    string `json:"owner"`
	Reviewer string `json:"reviewer"`
}

func (r Roles) Save(st *storage.LevelDBBackend) (err error) {
	var exists bool
	if exists, err = st.Has(RolesKey); err != nil {
		return
	}

	if exists {
		err = st.Set(RolesKey, r)
	} else {
		err = st.New(RolesKey, r)
	}

	return
}

func GetRoles(st *storage.LevelDBBackend) (r Roles, err error) {
	err = st.Get(RolesKey, &r)
	return
}
