// Package document composes field descriptors into record schemas.
//
// A Schema is an ordered set of named fields. It validates records, fills in
// defaults, and maps records to and from the BSON documents kept in the store:
//
//	users, err := document.New("users").
//		Field("_id", fields.ObjectID(fields.DefaultFunc(fields.NewObjectID))).
//		Field("name", fields.String(fields.Required(), fields.MaxLength(100))).
//		Field("role", fields.String(fields.Choices("admin", "user"), fields.Default("user"))).
//		Build()
//
//	rec := users.ApplyDefaults(document.Record{"name": "Ada"})
//	if err := users.Validate(rec); err != nil {
//		// ValidationErrors for rejected values, or a configuration error
//	}
package document

import (
	"fmt"

	"github.com/deepankarm/docfields/pkg/fields"
	"github.com/deepankarm/docfields/pkg/internal/errors"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Record is a document keyed by declared field names.
type Record map[string]any

// ValidationError is an alias for the shared error type.
type ValidationError = errors.ValidationError

// ValidationErrors is an alias for the shared error slice.
type ValidationErrors = errors.ValidationErrors

// ErrorType is an alias for the shared error category.
type ErrorType = errors.ErrorType

// Error categories reported in ValidationError.Type.
const (
	ErrorTypeRequired     = errors.ErrorTypeRequired
	ErrorTypeConstraint   = errors.ErrorTypeConstraint
	ErrorTypeUnknownField = errors.ErrorTypeUnknownField
	ErrorTypeJSONDecode   = errors.ErrorTypeJSONDecode
	ErrorTypeStore        = errors.ErrorTypeStore
)

// Schema is an immutable, ordered set of named fields.
type Schema struct {
	name     string
	strict   bool
	fields   *orderedmap.OrderedMap[string, fields.Field]
	bySource map[string]string // source name -> declared name
}

// Builder accumulates field declarations for a Schema.
type Builder struct {
	name   string
	strict bool
	fields *orderedmap.OrderedMap[string, fields.Field]
	err    error
}

// New starts a schema named name.
func New(name string) *Builder {
	return &Builder{
		name:   name,
		fields: orderedmap.New[string, fields.Field](),
	}
}

// Field declares a field. Declaration order is preserved.
func (b *Builder) Field(name string, f fields.Field) *Builder {
	if b.err != nil {
		return b
	}
	switch {
	case name == "":
		b.err = fmt.Errorf("schema %q: field name must not be empty", b.name)
	case f == nil:
		b.err = fmt.Errorf("schema %q: field %q has no descriptor", b.name, name)
	default:
		if _, present := b.fields.Set(name, f); present {
			b.err = fmt.Errorf("schema %q: duplicate field %q", b.name, name)
		}
	}
	return b
}

// Strict makes the schema reject keys it does not declare.
func (b *Builder) Strict() *Builder {
	b.strict = true
	return b
}

// Build checks every field's configuration and returns the schema.
func (b *Builder) Build() (*Schema, error) {
	if b.err != nil {
		return nil, b.err
	}
	s := &Schema{
		name:     b.name,
		strict:   b.strict,
		fields:   orderedmap.New[string, fields.Field](),
		bySource: make(map[string]string, b.fields.Len()),
	}
	for pair := b.fields.Oldest(); pair != nil; pair = pair.Next() {
		if err := pair.Value.Check(); err != nil {
			return nil, fmt.Errorf("schema %q: field %q: %w", b.name, pair.Key, err)
		}
		source := storedName(pair.Key, pair.Value)
		if other, ok := s.bySource[source]; ok {
			return nil, fmt.Errorf("schema %q: fields %q and %q share source name %q", b.name, other, pair.Key, source)
		}
		s.bySource[source] = pair.Key
		s.fields.Set(pair.Key, pair.Value)
	}
	return s, nil
}

// MustBuild is like Build but panics on error. It is meant for schemas
// declared as package-level variables.
func (b *Builder) MustBuild() *Schema {
	s, err := b.Build()
	if err != nil {
		panic(err)
	}
	return s
}

// Name returns the schema name.
func (s *Schema) Name() string {
	return s.name
}

// IsStrict reports whether undeclared keys are rejected.
func (s *Schema) IsStrict() bool {
	return s.strict
}

// Len returns the number of declared fields.
func (s *Schema) Len() int {
	return s.fields.Len()
}

// Names returns the declared field names in declaration order.
func (s *Schema) Names() []string {
	names := make([]string, 0, s.fields.Len())
	for pair := s.fields.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}
	return names
}

// Lookup returns the field declared as name.
func (s *Schema) Lookup(name string) (fields.Field, bool) {
	return s.fields.Get(name)
}

// Each calls fn for every field in declaration order.
func (s *Schema) Each(fn func(name string, f fields.Field)) {
	for pair := s.fields.Oldest(); pair != nil; pair = pair.Next() {
		fn(pair.Key, pair.Value)
	}
}

func storedName(name string, f fields.Field) string {
	if src := f.SourceName(); src != "" {
		return src
	}
	return name
}
