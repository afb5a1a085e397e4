package observer

import (
	"fmt"

	"github.com/GianlucaGuarini/go-observable"
)

var ElectionObserver = observable.New()
var BallotObserver = observable.New()
var CohortObserver = observable.New()
var RoleObserver = observable.New()

const (
	EventCycleOpened      = "cycle-opened"
	EventContenderAdded   = "contender-added"
	EventNomineeExcluded  = "nominee-excluded"
	EventNomineeIncluded  = "nominee-included"
	EventMemberElection   = "member-election-proposed"
	EventElectionExecuted = "election-executed"
	EventCycleFailed      = "cycle-failed"
	EventBallotCast       = "ballot-cast"
	EventReviewerChanged  = "reviewer-changed"
	EventOwnerChanged     = "owner-changed"
)

// CycleEvent scopes an event name to one election cycle, so consumers
// can listen to a single cycle's stream.
func CycleEvent(event string, cycleIndex uint64) string {
	return fmt.Sprintf("%s-cycle%d", event, cycleIndex)
}
