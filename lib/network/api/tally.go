package api

import (
	"net/http"

	"conclave.io/conclave/lib/common/observer"
	"conclave.io/conclave/lib/election"
	"conclave.io/conclave/lib/network/api/resource"
	"conclave.io/conclave/lib/network/httputils"
	"conclave.io/conclave/lib/tally"
)

func (api NetworkHandlerAPI) GetCycleTallyHandler(w http.ResponseWriter, r *http.Request) {
	index, err := parseCycleIndex(r)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	if _, err := election.GetElectionCycle(api.storage, index); err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	if httputils.IsEventStream(r) {
		es := NewDefaultEventStream(w, r)
		es.Run(observer.BallotObserver, observer.CycleEvent(observer.EventBallotCast, index))
		return
	}

	states, err := tally.GetNomineesWithVotes(api.storage, index)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}
	tally.SortByRank(states)

	list := resource.ResourceList{SelfLink: r.URL.Path}
	for rank, state := range states {
		list.Resources = append(list.Resources, resource.NewNomineeWeight(state, rank+1))
	}

	if err := httputils.WriteJSON(w, 200, list); err != nil {
		httputils.WriteJSONError(w, err)
	}
}
