package election

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru"

	"conclave.io/conclave/lib/common"
	"conclave.io/conclave/lib/errors"
	"conclave.io/conclave/lib/storage"
)

// PowerSource answers voting power lookups by account and checkpoint.
// The checkpoint is the one recorded on the cycle at voting open; the
// token implementing the power is an external collaborator.
type PowerSource interface {
	GetVotes(address string, checkpoint uint64) (common.Amount, error)
}

// StaticPowerSource serves a fixed table regardless of checkpoint.
// Used by tests and by deployments that feed a snapshot file.
type StaticPowerSource struct {
	powers map[string]common.Amount
}

func NewStaticPowerSource(powers map[string]common.Amount) *StaticPowerSource {
	p := map[string]common.Amount{}
	for address, power := range powers {
		p[address] = power
	}

	return &StaticPowerSource{powers: p}
}

func (s *StaticPowerSource) GetVotes(address string, checkpoint uint64) (common.Amount, error) {
	return s.powers[address], nil
}

// Snapshot voting power, seeded once at genesis.
//
// models
//  * 'power'
// 	- 'ec-power-<Address>': `common.Amount`

const PowerPrefix string = "ec-power-"

// StoragePowerSource reads the genesis-seeded snapshot from the
// election store. Accounts without a record hold no power.
type StoragePowerSource struct {
	st *storage.LevelDBBackend
}

func NewStoragePowerSource(st *storage.LevelDBBackend) *StoragePowerSource {
	return &StoragePowerSource{st: st}
}

func GetPowerKey(address string) string {
	return fmt.Sprintf("%s%s", PowerPrefix, address)
}

func SetPower(st *storage.LevelDBBackend, address string, power common.Amount) (err error) {
	key := GetPowerKey(address)

	var exists bool
	if exists, err = st.Has(key); err != nil {
		return
	}

	if exists {
		err = st.Set(key, power)
	} else {
		err = st.New(key, power)
	}

	return
}

func (s *StoragePowerSource) GetVotes(address string, checkpoint uint64) (power common.Amount, err error) {
	if err = s.st.Get(GetPowerKey(address), &power); err != nil {
		if err == errors.StorageRecordDoesNotExist {
			return 0, nil
		}
		return
	}

	return
}

// CachingPowerSource memoizes lookups per (account, checkpoint); power
// at a fixed checkpoint never changes, so entries are never stale.
type CachingPowerSource struct {
	source PowerSource
	cache  *lru.Cache
}

func NewCachingPowerSource(source PowerSource, size int) (*CachingPowerSource, error) {
	cache, err := lru.New(size)
	if err != nil {
		return nil, err
	}

	return &CachingPowerSource{source: source, cache: cache}, nil
}

func (s *CachingPowerSource) GetVotes(address string, checkpoint uint64) (common.Amount, error) {
	key := fmt.Sprintf("%s-%d", address, checkpoint)

	if cached, found := s.cache.Get(key); found {
		return cached.(common.Amount), nil
	}

	power, err := s.source.GetVotes(address, checkpoint)
	if err != nil {
		return 0, err
	}

	s.cache.Add(key, power)

	return power, nil
}
