package resource

import (
	"github.com/nvellon/hal"

	"conclave.io/conclave/lib/election"
)

type Nominee struct {
	r election.NomineeRecord
}

func NewNominee(r election.NomineeRecord) *Nominee {
	return &Nominee{r: r}
}

func (n Nominee) GetMap() hal.Entry {
	return hal.Entry{
		"cycle_index":  n.r.CycleIndex,
		"address":      n.r.Address,
		"is_contender": n.r.IsContender,
		"is_excluded":  n.r.IsExcluded,
		"is_compliant": n.r.IsCompliantNominee(),
		"seq":          n.r.Seq,
		"confirmed":    n.r.Confirmed,
	}
}

func (n Nominee) Resource() *hal.Resource {
	r := hal.NewResource(n, n.LinkSelf())
	r.AddLink("cycle", hal.NewLink(cycleURL(URLCycle, n.r.CycleIndex)))
	return r
}

func (n Nominee) LinkSelf() string {
	return cycleURL(URLCycleNominees, n.r.CycleIndex)
}
