package resource

import (
	"github.com/nvellon/hal"

	"conclave.io/conclave/lib/election"
)

type Roles struct {
	r election.Roles
}

func NewRoles(r election.Roles) *Roles {
	return &Roles{r: r}
}

func (r Roles) GetMap() hal.Entry {
	return hal.Entry{
		"owner":    r.r.Owner,
		"reviewer": r.r.Reviewer,
	}
}

func (r Roles) Resource() *hal.Resource {
	return hal.NewResource(r, r.LinkSelf())
}

func (r Roles) LinkSelf() string {
	return URLRoles
}
