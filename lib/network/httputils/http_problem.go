package httputils

import (
	"net/http"

	"conclave.io/conclave/lib/errors"
)

const problemContentType = "application/problem+json"

// Problem is an RFC 7807 error payload.
type Problem struct {
	Type     string                 `json:"type"`
	Title    string                 `json:"title"`
	Status   int                    `json:"status,omitempty"`
	Detail   string                 `json:"detail,omitempty"`
	Instance string                 `json:"instance,omitempty"`
	Code     uint                   `json:"code,omitempty"`
	Data     map[string]interface{} `json:"data,omitempty"`
}

func NewStatusProblem(status int) Problem {
	return Problem{
		Type:   "about:blank",
		Title:  http.StatusText(status),
		Status: status,
	}
}

func NewDetailedStatusProblem(status int, detail string) Problem {
	p := NewStatusProblem(status)
	p.Detail = detail
	return p
}

func NewErrorProblem(err error, status int) Problem {
	p := NewStatusProblem(status)
	if e, ok := err.(*errors.Error); ok {
		p.Title = e.Message
		p.Code = e.Code
		p.Data = e.Data
	} else {
		p.Detail = err.Error()
	}

	return p
}

func (p Problem) SetInstance(instance string) Problem {
	p.Instance = instance
	return p
}
