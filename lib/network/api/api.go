package api

import (
	"fmt"

	"conclave.io/conclave/lib/common"
	"conclave.io/conclave/lib/storage"
)

// API Endpoint patterns
const (
	GetCycleHandlerPattern         = "/cycles/{index}"
	GetCycleNomineesHandlerPattern = "/cycles/{index}/nominees"
	GetCycleTallyHandlerPattern    = "/cycles/{index}/tally"
	GetCohortHandlerPattern        = "/cohorts/{cohort}"
	GetRolesHandlerPattern         = "/roles"
)

// NetworkHandlerAPI serves the read-only audit API over the election
// store. It never mutates state; every write goes through the
// controller or the counting engine.
type NetworkHandlerAPI struct {
	storage   *storage.LevelDBBackend
	clock     common.Clock
	urlPrefix string
}

func NewNetworkHandlerAPI(storage *storage.LevelDBBackend, clock common.Clock, urlPrefix string) *NetworkHandlerAPI {
	return &NetworkHandlerAPI{
		storage:   storage,
		clock:     clock,
		urlPrefix: urlPrefix,
	}
}

func (api NetworkHandlerAPI) HandlerURLPattern(pattern string) string {
	return fmt.Sprintf("%s%s", api.urlPrefix, pattern)
}
