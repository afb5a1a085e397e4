package resource

import (
	"fmt"
	"strings"

	"github.com/nvellon/hal"

	"conclave.io/conclave/lib/election"
)

type Cycle struct {
	c   election.ElectionCycle
	now uint64
}

func NewCycle(c election.ElectionCycle, now uint64) *Cycle {
	return &Cycle{c: c, now: now}
}

func (c Cycle) GetMap() hal.Entry {
	entry := hal.Entry{
		"index":            c.c.Index,
		"proposal_id":      c.c.ProposalID,
		"cohort":           c.c.Cohort.String(),
		"phase":            c.c.Phase(c.now).String(),
		"voting_start":     c.c.VotingStart,
		"voting_end":       c.c.VotingEnd,
		"vetting_end":      c.c.VettingEnd,
		"power_checkpoint": c.c.PowerCheckpoint,
		"nominee_count":    c.c.NomineeCount,
		"excluded_count":   c.c.ExcludedCount,
		"exclusion_events": c.c.ExclusionEvents,
		"compliant_count":  c.c.CompliantNomineeCount(),
		"finalized":        c.c.Finalized,
		"executed":         c.c.Executed,
		"failed":           c.c.Failed,
		"confirmed":        c.c.Confirmed,
	}

	if len(c.c.MemberProposalID) > 0 {
		entry["member_proposal_id"] = c.c.MemberProposalID
		entry["member_voting_start"] = c.c.MemberVotingStart
		entry["member_voting_end"] = c.c.MemberVotingEnd
		entry["full_weight_end"] = c.c.FullWeightEnd
		entry["nominees_with_votes"] = c.c.NomineesWithVotes
	}
	if c.c.Failed {
		entry["failure_code"] = c.c.FailureCode
	}
	if len(c.c.Elected) > 0 {
		entry["elected"] = c.c.Elected
	}

	return entry
}

func (c Cycle) Resource() *hal.Resource {
	r := hal.NewResource(c, c.LinkSelf())
	r.AddLink("nominees", hal.NewLink(cycleURL(URLCycleNominees, c.c.Index)))
	r.AddLink("tally", hal.NewLink(cycleURL(URLCycleTally, c.c.Index)))
	return r
}

func (c Cycle) LinkSelf() string {
	return cycleURL(URLCycle, c.c.Index)
}

func cycleURL(pattern string, index uint64) string {
	return strings.Replace(pattern, "{index}", fmt.Sprintf("%d", index), -1)
}
