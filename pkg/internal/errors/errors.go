// Package errors defines shared error types for docfields.
package errors

import (
	"fmt"
	"strings"
)

// ErrorType is an enum for validation error categories.
type ErrorType string

// Error type constants.
const (
	ErrorTypeRequired     ErrorType = "required"      // Required field is missing or empty
	ErrorTypeConstraint   ErrorType = "constraint"    // Field rejected the value (bounds, pattern, choices, type)
	ErrorTypeUnknownField ErrorType = "unknown_field" // Key not declared by a strict schema
	ErrorTypeJSONDecode   ErrorType = "json_decode"   // JSON unmarshaling failed
	ErrorTypeStore        ErrorType = "store"         // Conversion to or from the store form failed
)

// ValidationError represents a validation error with location information.
type ValidationError struct {
	Loc     []string  `json:"loc"`     // Path to the field, e.g., ["address", "zip"]
	Message string    `json:"message"` // Human-readable error message
	Type    ErrorType `json:"type"`    // Error category
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	if len(e.Loc) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", strings.Join(e.Loc, "."), e.Message)
}

// ValidationErrors is a slice of ValidationError that implements error.
type ValidationErrors []ValidationError

// Error implements the error interface.
func (es ValidationErrors) Error() string {
	if len(es) == 0 {
		return "validation errors: (none)"
	}
	if len(es) == 1 {
		return es[0].Error()
	}
	var msgs []string
	for _, e := range es {
		msgs = append(msgs, e.Error())
	}
	return fmt.Sprintf("validation errors (%d): %s", len(es), strings.Join(msgs, "; "))
}

// Unwrap returns the errors as a slice for errors.As/errors.Is compatibility.
func (es ValidationErrors) Unwrap() []error {
	errs := make([]error, len(es))
	for i, e := range es {
		errs[i] = e
	}
	return errs
}

// HasType reports whether any error has the given type.
func (es ValidationErrors) HasType(t ErrorType) bool {
	for _, e := range es {
		if e.Type == t {
			return true
		}
	}
	return false
}

// Prefix returns a copy of es with prefix prepended to every location.
func (es ValidationErrors) Prefix(prefix ...string) ValidationErrors {
	out := make(ValidationErrors, len(es))
	for i, e := range es {
		loc := make([]string, 0, len(prefix)+len(e.Loc))
		loc = append(loc, prefix...)
		loc = append(loc, e.Loc...)
		out[i] = ValidationError{Loc: loc, Message: e.Message, Type: e.Type}
	}
	return out
}
