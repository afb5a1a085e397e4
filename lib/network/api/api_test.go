package api

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"

	"conclave.io/conclave/lib/cohort"
	"conclave.io/conclave/lib/common"
	"conclave.io/conclave/lib/election"
	"conclave.io/conclave/lib/network/api/resource"
	"conclave.io/conclave/lib/storage"
	"conclave.io/conclave/lib/tally"
)

type apiFixture struct {
	st     *storage.LevelDBBackend
	clock  *common.ManualClock
	server *httptest.Server
}

func newAPIFixture(t *testing.T) *apiFixture {
	st := storage.NewTestStorage()
	clock := common.NewManualClock(uint64(time.Date(2022, time.September, 15, 12, 0, 0, 0, time.UTC).Unix()))

	apiHandler := NewNetworkHandlerAPI(st, clock, resource.APIPrefix+resource.APIVersionV1)

	router := mux.NewRouter()
	router.HandleFunc(apiHandler.HandlerURLPattern(GetCycleHandlerPattern), apiHandler.GetCycleHandler).Methods("GET")
	router.HandleFunc(apiHandler.HandlerURLPattern(GetCycleNomineesHandlerPattern), apiHandler.GetCycleNomineesHandler).Methods("GET")
	router.HandleFunc(apiHandler.HandlerURLPattern(GetCycleTallyHandlerPattern), apiHandler.GetCycleTallyHandler).Methods("GET")
	router.HandleFunc(apiHandler.HandlerURLPattern(GetCohortHandlerPattern), apiHandler.GetCohortHandler).Methods("GET")
	router.HandleFunc(apiHandler.HandlerURLPattern(GetRolesHandlerPattern), apiHandler.GetRolesHandler).Methods("GET")

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &apiFixture{st: st, clock: clock, server: server}
}

func (f *apiFixture) get(t *testing.T, path string) (int, map[string]interface{}) {
	resp, err := http.Get(f.server.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := ioutil.ReadAll(resp.Body)
	require.NoError(t, err)

	var decoded map[string]interface{}
	if len(body) > 0 {
		json.Unmarshal(body, &decoded)
	}

	return resp.StatusCode, decoded
}

func (f *apiFixture) seedCycle(t *testing.T) election.ElectionCycle {
	now := f.clock.Now()
	cycle := election.ElectionCycle{
		Index:           0,
		ProposalID:      "test-proposal",
		Cohort:          cohort.FIRST,
		Confirmed:       common.NowISO8601(),
		VotingStart:     now,
		VotingEnd:       now + 100,
		VettingEnd:      now + 200,
		PowerCheckpoint: now,
	}
	require.NoError(t, cycle.Save(f.st))
	require.NoError(t, election.SetElectionCount(f.st, 1))
	return cycle
}

func TestGetCycleHandler(t *testing.T) {
	f := newAPIFixture(t)
	f.seedCycle(t)

	status, body := f.get(t, "/api/v1/cycles/0")
	require.Equal(t, 200, status)
	require.Equal(t, float64(0), body["index"])
	require.Equal(t, "test-proposal", body["proposal_id"])
	require.Equal(t, "FIRST", body["cohort"])
	require.Equal(t, "VOTING", body["phase"])

	links := body["_links"].(map[string]interface{})
	self := links["self"].(map[string]interface{})
	require.Equal(t, "/api/v1/cycles/0", self["href"])

	// unknown cycle
	status, _ = f.get(t, "/api/v1/cycles/99")
	require.Equal(t, 404, status)

	// non-numeric index
	status, _ = f.get(t, "/api/v1/cycles/abc")
	require.Equal(t, 400, status)
}

func TestGetCycleNomineesHandler(t *testing.T) {
	f := newAPIFixture(t)
	f.seedCycle(t)

	for i := 0; i < 3; i++ {
		record := election.NomineeRecord{
			CycleIndex:  0,
			Address:     fmt.Sprintf("GNOMINEE%02d", i),
			IsContender: true,
			IsExcluded:  i == 1,
			Seq:         uint64(i),
			Confirmed:   common.NowISO8601(),
		}
		require.NoError(t, record.Save(f.st))
	}

	status, body := f.get(t, "/api/v1/cycles/0/nominees")
	require.Equal(t, 200, status)

	embedded := body["_embedded"].(map[string]interface{})
	records := embedded["records"].([]interface{})
	require.Equal(t, 3, len(records))

	first := records[0].(map[string]interface{})
	require.Equal(t, "GNOMINEE00", first["address"])
	require.Equal(t, true, first["is_compliant"])

	second := records[1].(map[string]interface{})
	require.Equal(t, true, second["is_excluded"])
	require.Equal(t, false, second["is_compliant"])
}

func TestGetCycleTallyHandler(t *testing.T) {
	f := newAPIFixture(t)
	f.seedCycle(t)

	weights := []common.Amount{50, 200, 100}
	for i, weight := range weights {
		state := tally.NomineeWeightState{
			CycleIndex:   0,
			Address:      fmt.Sprintf("GNOMINEE%02d", i),
			Weight:       weight,
			FirstVoteSeq: uint64(i),
			Confirmed:    common.NowISO8601(),
		}
		require.NoError(t, state.Save(f.st))
	}

	status, body := f.get(t, "/api/v1/cycles/0/tally")
	require.Equal(t, 200, status)

	embedded := body["_embedded"].(map[string]interface{})
	records := embedded["records"].([]interface{})
	require.Equal(t, 3, len(records))

	// ranked by weight descending
	first := records[0].(map[string]interface{})
	require.Equal(t, "GNOMINEE01", first["address"])
	require.Equal(t, float64(1), first["rank"])

	last := records[2].(map[string]interface{})
	require.Equal(t, "GNOMINEE00", last["address"])
}

func TestGetCohortHandler(t *testing.T) {
	f := newAPIFixture(t)

	store := cohort.NewStore(f.st)
	members := []string{"GMEMBER00", "GMEMBER01"}
	require.NoError(t, store.Replace(cohort.FIRST, members))

	status, body := f.get(t, "/api/v1/cohorts/FIRST")
	require.Equal(t, 200, status)
	require.Equal(t, "FIRST", body["cohort"])
	require.Equal(t, float64(2), body["size"])

	// an empty cohort is not an error
	status, body = f.get(t, "/api/v1/cohorts/SECOND")
	require.Equal(t, 200, status)
	require.Equal(t, float64(0), body["size"])

	status, _ = f.get(t, "/api/v1/cohorts/THIRD")
	require.Equal(t, 400, status)
}

func TestGetRolesHandler(t *testing.T) {
	f := newAPIFixture(t)

	require.NoError(t, election.Roles{Owner: "GOWNER", Reviewer: "GREVIEWER"}.Save(f.st))

	status, body := f.get(t, "/api/v1/roles")
	require.Equal(t, 200, status)
	require.Equal(t, "GOWNER", body["owner"])
	require.Equal(t, "GREVIEWER", body["reviewer"])
}
