// Package problem writes RFC 9457 problem+json responses.
package problem

import (
	"encoding/json"
	"net/http"
)

const ContentType = "application/problem+json"

// TypeBaseURI prefixes every problem type.
var TypeBaseURI = "https://wellness-forecast.dev/problems"

// requestIDHeader matches the header the logging middleware sets on responses.
const requestIDHeader = "X-Request-ID"

// Problem type slugs.
const (
	TypeBadRequest         = "bad-request"
	TypeNotFound           = "not-found"
	TypeConflict           = "conflict"
	TypeValidation         = "validation-error"
	TypeInternal           = "internal-error"
	TypeServiceUnavailable = "service-unavailable"
	TypeUpstream           = "upstream-error"
)

// Problem is a problem+json document. RequestID is an extension member
// copied from the response headers on Write.
type Problem struct {
	Type      string       `json:"type"`
	Title     string       `json:"title"`
	Status    int          `json:"status"`
	Detail    string       `json:"detail,omitempty"`
	Instance  string       `json:"instance,omitempty"`
	RequestID string       `json:"request_id,omitempty"`
	Errors    []FieldError `json:"errors,omitempty"`
}

// FieldError is a validation failure on a single field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// New builds a problem of the given type slug. An empty title defaults to
// the status text.
func New(status int, problemType, title, detail string) *Problem {
	if title == "" {
		title = http.StatusText(status)
	}
	return &Problem{
		Type:   TypeBaseURI + "/" + problemType,
		Title:  title,
		Status: status,
		Detail: detail,
	}
}

func (p *Problem) Error() string {
	if p.Detail == "" {
		return p.Title
	}
	return p.Title + ": " + p.Detail
}

func (p *Problem) WithErrors(errors []FieldError) *Problem {
	p.Errors = errors
	return p
}

// WithInstance sets the URI of the failing request.
func (p *Problem) WithInstance(instance string) *Problem {
	p.Instance = instance
	return p
}

func (p *Problem) Write(w http.ResponseWriter) {
	if p.RequestID == "" {
		p.RequestID = w.Header().Get(requestIDHeader)
	}
	w.Header().Set("Content-Type", ContentType)
	w.WriteHeader(p.Status)
	_ = json.NewEncoder(w).Encode(p)
}

func NotFound(detail string) *Problem {
	return New(http.StatusNotFound, TypeNotFound, "Not Found", detail)
}

func BadRequest(detail string) *Problem {
	return New(http.StatusBadRequest, TypeBadRequest, "Bad Request", detail)
}

func ValidationError(detail string, errors []FieldError) *Problem {
	return New(http.StatusUnprocessableEntity, TypeValidation, "Validation Error", detail).WithErrors(errors)
}

func Conflict(detail string) *Problem {
	return New(http.StatusConflict, TypeConflict, "Conflict", detail)
}

func InternalError(detail string) *Problem {
	return New(http.StatusInternalServerError, TypeInternal, "Internal Server Error", detail)
}

func ServiceUnavailable(detail string) *Problem {
	return New(http.StatusServiceUnavailable, TypeServiceUnavailable, "Service Unavailable", detail)
}

// UpstreamError reports a failed call to a dependency such as the LLM provider.
func UpstreamError(detail string) *Problem {
	return New(http.StatusBadGateway, TypeUpstream, "Upstream Error", detail)
}
