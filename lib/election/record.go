package election

import (
	"encoding/json"
	"fmt"

	"conclave.io/conclave/lib/errors"
	"conclave.io/conclave/lib/storage"
)

// NomineeRecord tracks one account through one cycle's nominee phase.
//
// models
//  * 'nominee'
// 	- 'ec-nominee-<Index>-<Address>': `NomineeRecord`
//  * 'order' (first-seen registration order)
// 	- 'ec-nominee-order-<Index>-<Seq>': `Address`

const (
	NomineeRecordPrefix string = "ec-nominee-"
	NomineeOrderPrefix  string = "ec-nominee-order-"
)

type NomineeRecord struct {
	CycleIndex  uint64 `json:"cycle-index"`
	Address     string `json:"address"`
	IsContender bool   `json:"is-contender"`
	IsExcluded  bool   `json:"is-excluded"`
	Seq         uint64 `json:"seq"`       // registration order within the cycle
	Confirmed   string `json:"confirmed"` // created time, ISO8601
}

func (r NomineeRecord) IsCompliantNominee() bool {
	return r.IsContender && !r.IsExcluded
}

func (r NomineeRecord) Serialize() (encoded []byte, err error) {
	encoded, err = json.Marshal(r)
	return
}

func (r NomineeRecord) Save(st *storage.LevelDBBackend) (err error) {
	key := GetNomineeRecordKey(r.CycleIndex, r.Address)

	var exists bool
	if exists, err = st.Has(key); err != nil {
		return
	}

	if exists {
		err = st.Set(key, r)
	} else {
		if err = st.New(key, r); err != nil {
			return
		}
		err = st.New(GetNomineeOrderKey(r.CycleIndex, r.Seq), r.Address)
	}

	return
}

func GetNomineeRecordKey(index uint64, address string) string {
	return fmt.Sprintf("%s%020d-%s", NomineeRecordPrefix, index, address)
}

func GetNomineeOrderKey(index uint64, seq uint64) string {
	return fmt.Sprintf("%s%020d-%020d", NomineeOrderPrefix, index, seq)
}

func ExistsNomineeRecord(st *storage.LevelDBBackend, index uint64, address string) (bool, error) {
	return st.Has(GetNomineeRecordKey(index, address))
}

func GetNomineeRecord(st *storage.LevelDBBackend, index uint64, address string) (r NomineeRecord, err error) {
	err = st.Get(GetNomineeRecordKey(index, address), &r)
	return
}

// GetNomineeRecords returns every nominee record of the cycle in
// first-seen registration order.
func GetNomineeRecords(st *storage.LevelDBBackend, index uint64) (records []NomineeRecord, err error) {
	iterFunc, closeFunc := st.GetIterator(fmt.Sprintf("%s%020d-", NomineeOrderPrefix, index), nil)
	defer closeFunc()

	for {
		item, hasNext := iterFunc()
		if !hasNext {
			break
		}

		var address string
		if err = json.Unmarshal(item.Value, &address); err != nil {
			err = errors.StorageCoreError
			return
		}

		var r NomineeRecord
		if r, err = GetNomineeRecord(st, index, address); err != nil {
			return
		}
		records = append(records, r)
	}

	return
}

// GetCompliantNominees filters the cycle's records down to the
// compliant nominee set, keeping the stable first-seen order.
func GetCompliantNominees(st *storage.LevelDBBackend, index uint64) (records []NomineeRecord, err error) {
	var all []NomineeRecord
	if all, err = GetNomineeRecords(st, index); err != nil {
		return
	}

	for _, r := range all {
		if r.IsCompliantNominee() {
			records = append(records, r)
		}
	}

	return
}
