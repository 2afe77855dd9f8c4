package document

import (
	"errors"
	"fmt"

	"github.com/deepankarm/docfields/pkg/fields"
	"github.com/deepankarm/docfields/pkg/internal/reflectutil"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// EmbeddedField stores a nested record validated by its own schema.
// Violations inside the nested record are reported by Schema.Validate with
// dotted locations such as "address.zip".
type EmbeddedField struct {
	fields.Base
	schema *Schema
}

// Embedded creates a field holding a record of schema.
func Embedded(schema *Schema, opts ...fields.Option) *EmbeddedField {
	f := &EmbeddedField{schema: schema}
	for _, opt := range opts {
		opt(&f.Base)
	}
	return f
}

// Schema returns the nested schema.
func (f *EmbeddedField) Schema() *Schema {
	return f.schema
}

// Kind returns fields.KindEmbedded.
func (f *EmbeddedField) Kind() string {
	return fields.KindEmbedded
}

// Check reports a missing nested schema.
func (f *EmbeddedField) Check() error {
	if err := f.Base.Check(); err != nil {
		return err
	}
	if f.schema == nil {
		return &fields.ConfigError{Option: "schema", Msg: "embedded schema must not be nil"}
	}
	return nil
}

// Validate accepts absent values and records the nested schema accepts.
func (f *EmbeddedField) Validate(value any) (bool, error) {
	errs, err := f.validateRecord(value)
	if err != nil {
		return false, err
	}
	return len(errs) == 0, nil
}

// IsEmpty also treats a record without keys as empty.
func (f *EmbeddedField) IsEmpty(value any) bool {
	if reflectutil.IsAbsent(value) {
		return true
	}
	rec, ok := asRecord(value)
	return ok && len(rec) == 0
}

// ToStore converts the nested record to an ordered BSON document.
func (f *EmbeddedField) ToStore(value any) (any, error) {
	if reflectutil.IsAbsent(value) {
		return nil, nil
	}
	rec, ok := asRecord(value)
	if !ok {
		return nil, &fields.StoreError{Kind: fields.KindEmbedded, Value: value}
	}
	doc, err := f.schema.ToStore(rec)
	if err != nil {
		return nil, &fields.StoreError{Kind: fields.KindEmbedded, Value: value, Err: err}
	}
	return doc, nil
}

// FromStore converts a stored nested document back to a Record.
func (f *EmbeddedField) FromStore(value any) (any, error) {
	if reflectutil.IsAbsent(value) {
		return nil, nil
	}
	doc, ok := asDocument(value)
	if !ok {
		return nil, &fields.StoreError{Kind: fields.KindEmbedded, Value: value}
	}
	rec, err := f.schema.FromStore(doc)
	if err != nil {
		return nil, &fields.StoreError{Kind: fields.KindEmbedded, Value: value, Err: err}
	}
	return rec, nil
}

// validateRecord returns the nested violations, relative to this field.
func (f *EmbeddedField) validateRecord(value any) (ValidationErrors, error) {
	if reflectutil.IsAbsent(value) {
		return nil, nil
	}
	if err := f.Check(); err != nil {
		return nil, err
	}
	rec, ok := asRecord(value)
	if !ok {
		return ValidationErrors{{
			Message: fmt.Sprintf("invalid value for %s field", fields.KindEmbedded),
			Type:    ErrorTypeConstraint,
		}}, nil
	}
	err := f.schema.Validate(rec)
	if err == nil {
		return nil, nil
	}
	var errs ValidationErrors
	if errors.As(err, &errs) {
		return errs, nil
	}
	return nil, err
}

func asRecord(value any) (Record, bool) {
	switch v := value.(type) {
	case Record:
		return v, true
	case map[string]any:
		return Record(v), true
	case bson.M:
		return Record(v), true
	case bson.D:
		rec := make(Record, len(v))
		for _, e := range v {
			rec[e.Key] = e.Value
		}
		return rec, true
	}
	return nil, false
}

func asDocument(value any) (bson.D, bool) {
	switch v := value.(type) {
	case bson.D:
		return v, true
	case bson.M:
		return mapDocument(v), true
	case map[string]any:
		return mapDocument(v), true
	}
	return nil, false
}

func mapDocument(m map[string]any) bson.D {
	doc := make(bson.D, 0, len(m))
	for k, v := range m {
		doc = append(doc, bson.E{Key: k, Value: v})
	}
	return doc
}
