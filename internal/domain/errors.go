package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrTransport network or backend failure of any fetch
	ErrTransport = errors.New("transport error")

	// ErrInvalidWindow working window outside of one day
	ErrInvalidWindow = errors.New("invalid working window")

	// ErrUnsupportedCurrency currency is not offered for display
	ErrUnsupportedCurrency = errors.New("unsupported currency")
)

// ValidationError client-side validation failure; Fields maps field name to reason
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.FieldNames(), ", ")
}

// FieldNames returns the offending fields sorted by name
func (e *ValidationError) FieldNames() []string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Add records a field failure
func (e *ValidationError) Add(field, reason string) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	e.Fields[field] = reason
}

// OrNil returns nil when no field failed
func (e *ValidationError) OrNil() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}

// FieldError backend messages attached to one field
type FieldError struct {
	Field    string
	Messages []string
}

// SubmissionRejected backend refused a booking request.
// FieldErrors and PageErrors keep the order the backend reported them in.
type SubmissionRejected struct {
	Message     string
	FieldErrors []FieldError
	PageErrors  []string
}

func (e *SubmissionRejected) Error() string {
	return fmt.Sprintf("submission rejected: %s (%d field errors, %d page errors)",
		e.Message, e.errorCount(), len(e.PageErrors))
}

// AddFieldError appends msg to field, keeping first-seen field order
func (e *SubmissionRejected) AddFieldError(field, msg string) {
	for i := range e.FieldErrors {
		if e.FieldErrors[i].Field == field {
			e.FieldErrors[i].Messages = append(e.FieldErrors[i].Messages, msg)
			return
		}
	}
	e.FieldErrors = append(e.FieldErrors, FieldError{Field: field, Messages: []string{msg}})
}

// AddPageError appends a page-level message
func (e *SubmissionRejected) AddPageError(msg string) {
	e.PageErrors = append(e.PageErrors, msg)
}

// HasDetails reports whether any field or page error is attached
func (e *SubmissionRejected) HasDetails() bool {
	return len(e.FieldErrors) > 0 || len(e.PageErrors) > 0
}

func (e *SubmissionRejected) errorCount() int {
	n := 0
	for _, fe := range e.FieldErrors {
		n += len(fe.Messages)
	}
	return n
}
