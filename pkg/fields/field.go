// Package fields provides declarative field descriptors for document records.
//
// A descriptor declares the shape of one named value slot: whether it is
// required, its default, the name it is stored under, and the type-specific
// constraints a value must satisfy. Descriptors are built once, at schema
// definition time, and are safe for concurrent use afterwards.
//
// Every descriptor answers two questions about a candidate value:
//
//	ok, err := f.Validate(v) // does v satisfy the constraints?
//	empty := f.IsEmpty(v)    // does v count as "nothing supplied"?
//
// A rejected value is reported as ok == false. A non-nil err always means the
// descriptor itself is misconfigured (see ConfigError) and never depends on v.
// Absent values (nil, or a nil pointer) are always valid: required-ness is
// enforced by the schema through IsEmpty, not by Validate.
package fields

import (
	"maps"

	"github.com/deepankarm/docfields/pkg/internal/reflectutil"
)

// Field kinds reported by Kind.
const (
	KindString    = "string"
	KindInt       = "int"
	KindFloat     = "float"
	KindDecimal   = "decimal"
	KindBoolean   = "boolean"
	KindDateTime  = "datetime"
	KindUUID      = "uuid"
	KindObjectID  = "objectid"
	KindReference = "reference"
	KindList      = "list"
	KindJSON      = "json"
	KindBinary    = "binary"
	KindEmbedded  = "embedded"
)

// Field is the contract every field descriptor implements.
type Field interface {
	// Kind names the descriptor type, e.g. "string".
	Kind() string
	// Validate reports whether value is acceptable. The error is non-nil only
	// for configuration errors.
	Validate(value any) (bool, error)
	// IsEmpty reports whether value counts as "no data" for required checks.
	IsEmpty(value any) bool
	// Check returns the descriptor's configuration error, if any.
	Check() error
	Required() bool
	// SourceName is the key used in the stored form. Empty means the
	// declared name is used.
	SourceName() string
	// Default returns a default value, producing a fresh one per call when
	// the default was declared with DefaultFunc.
	Default() (any, bool)
	// Constraints returns schema metadata keyed by the Constraint* constants.
	Constraints() map[string]any
}

// Storer is implemented by fields whose values need converting to or from the
// representation kept in the document store.
type Storer interface {
	ToStore(value any) (any, error)
	FromStore(value any) (any, error)
}

// Toucher is implemented by fields that refresh their value on every update.
type Toucher interface {
	// Touch returns the new value and whether the field wants one.
	Touch() (any, bool)
}

// Base holds the state shared by every field. Concrete descriptors embed it.
type Base struct {
	required     bool
	sourceName   string
	defaultValue any
	defaultFunc  func() any
	hasDefault   bool
	constraints  map[string]any
	configErr    error
}

// Required reports whether the field must carry a non-empty value.
func (b *Base) Required() bool {
	return b.required
}

// SourceName returns the stored name, or "" if it matches the declared one.
func (b *Base) SourceName() string {
	return b.sourceName
}

// Default returns the declared default value.
func (b *Base) Default() (any, bool) {
	if !b.hasDefault {
		return nil, false
	}
	if b.defaultFunc != nil {
		return b.defaultFunc(), true
	}
	return b.defaultValue, true
}

// Constraints returns a copy of the schema metadata.
func (b *Base) Constraints() map[string]any {
	return maps.Clone(b.constraints)
}

// IsEmpty treats only absent values as empty.
func (b *Base) IsEmpty(value any) bool {
	return reflectutil.IsAbsent(value)
}

// Check returns the first configuration error recorded while building.
func (b *Base) Check() error {
	return b.configErr
}

func (b *Base) setConstraint(key string, value any) {
	if b.constraints == nil {
		b.constraints = make(map[string]any)
	}
	b.constraints[key] = value
}

func (b *Base) fail(err *ConfigError) {
	if b.configErr == nil {
		b.configErr = err
	}
}

// Option configures the state shared by every field. Each constructor accepts
// it alongside the options specific to its type.
type Option func(*Base)

// Required marks the field as required.
func Required() Option {
	return func(b *Base) {
		b.required = true
	}
}

// Default sets an immutable default value. Use DefaultFunc for maps, slices
// and other values that must not be shared between records.
func Default(value any) Option {
	return func(b *Base) {
		b.defaultValue = value
		b.defaultFunc = nil
		b.hasDefault = true
		b.setConstraint(ConstraintDefault, value)
	}
}

// DefaultFunc sets a producer invoked each time a default is needed.
func DefaultFunc(fn func() any) Option {
	return func(b *Base) {
		if fn == nil {
			b.fail(&ConfigError{Option: ConstraintDefault, Msg: "default producer must not be nil"})
			return
		}
		b.defaultValue = nil
		b.defaultFunc = fn
		b.hasDefault = true
		delete(b.constraints, ConstraintDefault)
	}
}

// SourceName sets the key the field is stored under.
func SourceName(name string) Option {
	return func(b *Base) {
		b.sourceName = name
	}
}

// Description sets a human-readable description for generated schemas.
func Description(desc string) Option {
	return func(b *Base) {
		b.setConstraint(ConstraintDescription, desc)
	}
}

func (o Option) applyString(f *StringField)     { o(&f.Base) }
func (o Option) applyInt(f *IntField)           { o(&f.Base) }
func (o Option) applyFloat(f *FloatField)       { o(&f.Base) }
func (o Option) applyDecimal(f *DecimalField)   { o(&f.Base) }
func (o Option) applyDateTime(f *DateTimeField) { o(&f.Base) }
func (o Option) applyList(f *ListField)         { o(&f.Base) }
func (o Option) applyBinary(f *BinaryField)     { o(&f.Base) }
