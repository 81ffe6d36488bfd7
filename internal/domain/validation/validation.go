// Package validation collects field-level input errors so that a request
// can be rejected with every problem listed at once.
package validation

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidInput is matched by every *Error.
var ErrInvalidInput = errors.New("invalid input")

type FieldError struct {
	Field  string
	Reason string
}

func (f FieldError) String() string {
	return f.Field + " " + f.Reason
}

// Error is a list of field problems. The zero value is ready to use.
type Error struct {
	Fields []FieldError
}

func (e *Error) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.String())
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *Error) Is(target error) bool {
	return target == ErrInvalidInput
}

func (e *Error) Add(field, format string, args ...any) {
	e.Fields = append(e.Fields, FieldError{Field: field, Reason: fmt.Sprintf(format, args...)})
}

// Required records field as missing when value is blank.
func (e *Error) Required(field, value string) {
	if strings.TrimSpace(value) == "" {
		e.Add(field, "is required")
	}
}

func (e *Error) Range(field string, value, min, max float64) {
	if value < min || value > max {
		e.Add(field, "must be between %g and %g", min, max)
	}
}

func (e *Error) OneOf(field, value string, allowed ...string) {
	for _, a := range allowed {
		if value == a {
			return
		}
	}
	e.Add(field, "must be one of %s", strings.Join(allowed, ", "))
}

// Err returns nil when nothing was recorded.
func (e *Error) Err() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

// Missing lists the fields that were recorded.
func (e *Error) Missing() []string {
	out := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		out = append(out, f.Field)
	}
	return out
}
