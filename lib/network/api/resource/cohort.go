package resource

import (
	"strings"

	"github.com/nvellon/hal"

	"conclave.io/conclave/lib/cohort"
)

type CohortMembers struct {
	cohort  cohort.Cohort
	members []string
}

func NewCohortMembers(c cohort.Cohort, members []string) *CohortMembers {
	return &CohortMembers{cohort: c, members: members}
}

func (c CohortMembers) GetMap() hal.Entry {
	return hal.Entry{
		"cohort":  c.cohort.String(),
		"members": c.members,
		"size":    len(c.members),
	}
}

func (c CohortMembers) Resource() *hal.Resource {
	return hal.NewResource(c, c.LinkSelf())
}

func (c CohortMembers) LinkSelf() string {
	return strings.Replace(URLCohorts, "{cohort}", c.cohort.String(), -1)
}
