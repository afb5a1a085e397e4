package tally

import (
	"encoding/json"
	"fmt"
	"sort"

	"conclave.io/conclave/lib/common"
	"conclave.io/conclave/lib/errors"
	"conclave.io/conclave/lib/storage"
)

// Run-off state, per cycle. Like the nominee records these are audit
// records: created lazily on first write, never deleted.
//
// models
//  * 'ballot' (per voter)
// 	- 'mt-ballot-<Index>-<Voter>': `BallotState`
//  * 'weight' (per nominee)
// 	- 'mt-weight-<Index>-<Address>': `NomineeWeightState`
//  * 'order' (nominees in first-vote order)
// 	- 'mt-order-<Index>-<Seq>': `Address`

const (
	BallotStatePrefix   string = "mt-ballot-"
	NomineeWeightPrefix string = "mt-weight-"
	NomineeOrderPrefix  string = "mt-order-"
)

type BallotState struct {
	CycleIndex uint64        `json:"cycle-index"`
	Voter      string        `json:"voter"`
	VotesUsed  common.Amount `json:"votes-used"`
	Confirmed  string        `json:"confirmed"` // created time, ISO8601
}

func (b BallotState) Save(st *storage.LevelDBBackend) (err error) {
	key := GetBallotStateKey(b.CycleIndex, b.Voter)

	var exists bool
	if exists, err = st.Has(key); err != nil {
		return
	}

	if exists {
		err = st.Set(key, b)
	} else {
		err = st.New(key, b)
	}

	return
}

func GetBallotStateKey(index uint64, voter string) string {
	return fmt.Sprintf("%s%020d-%s", BallotStatePrefix, index, voter)
}

// GetBallotState returns the voter's ballot state, or a fresh zero
// state when the voter has not cast anything yet.
func GetBallotState(st *storage.LevelDBBackend, index uint64, voter string) (b BallotState, err error) {
	if err = st.Get(GetBallotStateKey(index, voter), &b); err != nil {
		if err == errors.StorageRecordDoesNotExist {
			return BallotState{CycleIndex: index, Voter: voter}, nil
		}
		return
	}

	return
}

type NomineeWeightState struct {
	CycleIndex   uint64        `json:"cycle-index"`
	Address      string        `json:"address"`
	Weight       common.Amount `json:"weight"`
	FirstVoteSeq uint64        `json:"first-vote-seq"`
	Confirmed    string        `json:"confirmed"` // created time, ISO8601
}

func (w NomineeWeightState) Save(st *storage.LevelDBBackend) (err error) {
	key := GetNomineeWeightKey(w.CycleIndex, w.Address)

	var exists bool
	if exists, err = st.Has(key); err != nil {
		return
	}

	if exists {
		err = st.Set(key, w)
	} else {
		if err = st.New(key, w); err != nil {
			return
		}
		err = st.New(GetNomineeOrderKey(w.CycleIndex, w.FirstVoteSeq), w.Address)
	}

	return
}

func GetNomineeWeightKey(index uint64, address string) string {
	return fmt.Sprintf("%s%020d-%s", NomineeWeightPrefix, index, address)
}

func GetNomineeOrderKey(index uint64, seq uint64) string {
	return fmt.Sprintf("%s%020d-%020d", NomineeOrderPrefix, index, seq)
}

func ExistsNomineeWeight(st *storage.LevelDBBackend, index uint64, address string) (bool, error) {
	return st.Has(GetNomineeWeightKey(index, address))
}

func GetNomineeWeight(st *storage.LevelDBBackend, index uint64, address string) (w NomineeWeightState, err error) {
	err = st.Get(GetNomineeWeightKey(index, address), &w)
	return
}

// SortByRank orders weight states in place by the deterministic total
// order of the run-off: accumulated weight descending, then first-vote
// sequence ascending, then address ascending.
func SortByRank(states []NomineeWeightState) {
	sort.Slice(states, func(i, j int) bool {
		if states[i].Weight != states[j].Weight {
			return states[i].Weight > states[j].Weight
		}
		if states[i].FirstVoteSeq != states[j].FirstVoteSeq {
			return states[i].FirstVoteSeq < states[j].FirstVoteSeq
		}
		return states[i].Address < states[j].Address
	})
}

// GetNomineesWithVotes returns the weight state of every nominee that
// has received weight, in first-vote order.
func GetNomineesWithVotes(st *storage.LevelDBBackend, index uint64) (states []NomineeWeightState, err error) {
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

		var w NomineeWeightState
		if w, err = GetNomineeWeight(st, index, address); err != nil {
			return
		}
		states = append(states, w)
	}

	return
}
