package errx

import (
	"errors"
	"net/http"
)

// Reserved Problem.Info keys. Fields with these names are not copied.
const (
	InfoErrorCode   = "errorCode"
	InfoErrorDomain = "errorDomain"
	InfoRawMessage  = "rawMessage"
)

// Problem is an RFC 7807 compatible body describing an error to clients.
type Problem struct {
	// Title is a short, human-readable summary of the error type.
	Title string `json:"title" yaml:"title"`
	// Status is the HTTP status code.
	Status int `json:"status" yaml:"status"`
	// Detail is a human-readable description of this occurrence.
	Detail string `json:"detail" yaml:"detail"`
	// Info carries the error code, raw template and placeholder values so
	// clients can localize the message.
	Info map[string]string `json:"info,omitempty" yaml:"info,omitempty"`
	// Errors carries the structured context of the error.
	Errors map[string]any `json:"errors,omitempty" yaml:"errors,omitempty"`
}

// ProblemFrom builds a Problem from any error. Errors that are not an
// errx.Error are reported as internal server errors without leaking their text.
func ProblemFrom(err error) Problem {
	var e *Error
	if err == nil || !errors.As(err, &e) {
		e = New(InternalServerError)
	}

	desc := e.Descriptor()
	status := desc.Status()
	if status == 0 {
		status = http.StatusInternalServerError
	}
	title := http.StatusText(status)
	if title == "" {
		title = InternalServerError.Message()
	}

	p := Problem{
		Title:  title,
		Status: status,
		Detail: desc.Render(e.fields),
		Info: map[string]string{
			InfoErrorCode:   desc.Code(),
			InfoErrorDomain: desc.Domain(),
			InfoRawMessage:  desc.Message(),
		},
	}
	for key, value := range e.fields {
		if key == InfoErrorCode || key == InfoErrorDomain || key == InfoRawMessage {
			continue
		}
		p.Info[key] = value
	}
	if len(e.context) > 0 {
		p.Errors = cloneContext(e.context)
	}
	return p
}
