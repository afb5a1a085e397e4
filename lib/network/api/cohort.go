package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"conclave.io/conclave/lib/cohort"
	"conclave.io/conclave/lib/election"
	"conclave.io/conclave/lib/network/api/resource"
	"conclave.io/conclave/lib/network/httputils"
)

func (api NetworkHandlerAPI) GetCohortHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	c, err := cohort.ParseCohort(vars["cohort"])
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	store := cohort.NewStore(api.storage)
	members, err := store.MembersOf(c)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	if err := httputils.WriteJSON(w, 200, resource.NewCohortMembers(c, members)); err != nil {
		httputils.WriteJSONError(w, err)
	}
}

func (api NetworkHandlerAPI) GetRolesHandler(w http.ResponseWriter, r *http.Request) {
	roles, err := election.GetRoles(api.storage)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	if err := httputils.WriteJSON(w, 200, resource.NewRoles(roles)); err != nil {
		httputils.WriteJSONError(w, err)
	}
}
