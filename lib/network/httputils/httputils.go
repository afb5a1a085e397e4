package httputils

import (
	"net/http"

	"conclave.io/conclave/lib/errors"
)

// IsEventStream checks request header accept is text/event-stream
func IsEventStream(r *http.Request) bool {
	if r.Header.Get("Accept") == "text/event-stream" {
		return true
	}
	return false
}

var (
	ErrorsToStatus = map[uint]int{
		errors.StorageRecordDoesNotExist.Code:     http.StatusNotFound,
		errors.StorageRecordAlreadyExists.Code:    http.StatusConflict,
		errors.StorageCoreError.Code:              http.StatusInternalServerError,
		errors.CycleNotFound.Code:                 http.StatusNotFound,
		errors.CycleNotYetScheduled.Code:          http.StatusBadRequest,
		errors.VotingNotOpen.Code:                 http.StatusBadRequest,
		errors.VotingStillOpen.Code:               http.StatusBadRequest,
		errors.VettingElapsed.Code:                http.StatusBadRequest,
		errors.VettingStillOpen.Code:              http.StatusBadRequest,
		errors.NotReviewer.Code:                   http.StatusForbidden,
		errors.NotOwner.Code:                      http.StatusForbidden,
		errors.CycleStillActive.Code:              http.StatusConflict,
		errors.AlreadyContender.Code:              http.StatusConflict,
		errors.AlreadyExcluded.Code:               http.StatusConflict,
		errors.AlreadyCompliantNominee.Code:       http.StatusConflict,
		errors.CycleAlreadyFinalized.Code:         http.StatusConflict,
		errors.ZeroVoteWeight.Code:                http.StatusBadRequest,
		errors.InsufficientVotingPower.Code:       http.StatusBadRequest,
		errors.ProposalCreationForbidden.Code:     http.StatusForbidden,
		errors.InvalidCycleIndex.Code:             http.StatusNotFound,
		errors.MemberOfOppositeCohort.Code:        http.StatusBadRequest,
		errors.NotCompliantNominee.Code:           http.StatusBadRequest,
		errors.NotContender.Code:                  http.StatusBadRequest,
		errors.InvalidCohort.Code:                 http.StatusBadRequest,
		errors.InsufficientCompliantNominees.Code: http.StatusBadRequest,
		errors.InsufficientNomineesWithVotes.Code: http.StatusBadRequest,
	}
)

func StatusCode(err error) int {
	if e, ok := err.(*errors.Error); ok {
		if status, found := ErrorsToStatus[e.Code]; found {
			return status
		}
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
