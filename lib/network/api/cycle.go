package api

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"conclave.io/conclave/lib/common/observer"
	"conclave.io/conclave/lib/election"
	"conclave.io/conclave/lib/network/api/resource"
	"conclave.io/conclave/lib/network/httputils"
)

func parseCycleIndex(r *http.Request) (uint64, error) {
	vars := mux.Vars(r)
	return strconv.ParseUint(vars["index"], 10, 64)
}

func (api NetworkHandlerAPI) GetCycleHandler(w http.ResponseWriter, r *http.Request) {
	index, err := parseCycleIndex(r)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	cycle, err := election.GetElectionCycle(api.storage, index)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	if httputils.IsEventStream(r) {
		es := NewDefaultEventStream(w, r)
		es.Render(cycle)
		es.Run(observer.ElectionObserver, observer.CycleEvent(observer.EventContenderAdded, index))
		return
	}

	if err := httputils.WriteJSON(w, 200, resource.NewCycle(cycle, api.clock.Now())); err != nil {
		httputils.WriteJSONError(w, err)
	}
}

func (api NetworkHandlerAPI) GetCycleNomineesHandler(w http.ResponseWriter, r *http.Request) {
	index, err := parseCycleIndex(r)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	if _, err := election.GetElectionCycle(api.storage, index); err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	records, err := election.GetNomineeRecords(api.storage, index)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	list := resource.ResourceList{SelfLink: r.URL.Path}
	for _, record := range records {
		list.Resources = append(list.Resources, resource.NewNominee(record))
	}

	if err := httputils.WriteJSON(w, 200, list); err != nil {
		httputils.WriteJSONError(w, err)
	}
}
