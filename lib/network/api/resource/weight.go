package resource

import (
	"github.com/nvellon/hal"

	"conclave.io/conclave/lib/tally"
)

type NomineeWeight struct {
	w    tally.NomineeWeightState
	rank int
}

func NewNomineeWeight(w tally.NomineeWeightState, rank int) *NomineeWeight {
	return &NomineeWeight{w: w, rank: rank}
}

func (n NomineeWeight) GetMap() hal.Entry {
	return hal.Entry{
		"cycle_index":    n.w.CycleIndex,
		"address":        n.w.Address,
		"weight":         n.w.Weight,
		"first_vote_seq": n.w.FirstVoteSeq,
		"rank":           n.rank,
		"confirmed":      n.w.Confirmed,
	}
}

func (n NomineeWeight) Resource() *hal.Resource {
	r := hal.NewResource(n, n.LinkSelf())
	r.AddLink("cycle", hal.NewLink(cycleURL(URLCycle, n.w.CycleIndex)))
	return r
}

func (n NomineeWeight) LinkSelf() string {
	return cycleURL(URLCycleTally, n.w.CycleIndex)
}
