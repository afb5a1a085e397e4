package resource

const (
	APIVersionV1 = "/v1"
	APIPrefix    = "/api"

	URLCycles        = APIPrefix + APIVersionV1 + "/cycles"
	URLCycle         = APIPrefix + APIVersionV1 + "/cycles/{index}"
	URLCycleNominees = APIPrefix + APIVersionV1 + "/cycles/{index}/nominees"
	URLCycleTally    = APIPrefix + APIVersionV1 + "/cycles/{index}/tally"
	URLCohorts       = APIPrefix + APIVersionV1 + "/cohorts/{cohort}"
	URLRoles         = APIPrefix + APIVersionV1 + "/roles"
)
