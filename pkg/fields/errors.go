package fields

import (
	"errors"
	"fmt"
)

// ErrConfig matches every ConfigError with errors.Is.
var ErrConfig = errors.New("fields: invalid field configuration")

// ConfigError reports a field that was declared with an unusable
// configuration. It is returned from Validate and Check regardless of the
// value being validated, and is meant to be fixed in the schema definition.
type ConfigError struct {
	Option string // Constraint key of the offending option, e.g. "pattern"
	Msg    string
	Err    error // Underlying engine error, if any
}

// Error returns the message verbatim.
func (e *ConfigError) Error() string {
	return e.Msg
}

// Unwrap returns the underlying engine error.
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrConfig.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}

func invalidRegex(err error) *ConfigError {
	return &ConfigError{Option: ConstraintPattern, Msg: "Invalid regex: " + err.Error(), Err: err}
}

func choicesNotIterable() *ConfigError {
	return &ConfigError{Option: ConstraintEnum, Msg: "'choices' must be an iterable"}
}

func negativeBound(option string) *ConfigError {
	return &ConfigError{Option: option, Msg: "'" + option + "' must be a non-negative integer"}
}

// StoreError reports a value that cannot be converted to or from the form
// kept in the document store.
type StoreError struct {
	Kind  string // Field kind
	Value any
	Err   error
}

func (e *StoreError) Error() string {
	msg := fmt.Sprintf("cannot convert %T for %s field", e.Value, e.Kind)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
