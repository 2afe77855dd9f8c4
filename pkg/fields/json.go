package fields

import (
	"encoding/json"

	"github.com/deepankarm/docfields/pkg/internal/reflectutil"
)

// JSONField stores any value encoding/json can marshal. It is kept in the
// store as JSON text.
type JSONField struct {
	Base
}

// JSON creates a free-form JSON field.
func JSON(opts ...Option) *JSONField {
	f := &JSONField{}
	for _, opt := range opts {
		opt(&f.Base)
	}
	return f
}

// Kind returns KindJSON.
func (f *JSONField) Kind() string {
	return KindJSON
}

// Validate accepts absent values and values that marshal to JSON.
func (f *JSONField) Validate(value any) (bool, error) {
	if reflectutil.IsAbsent(value) {
		return true, nil
	}
	if err := f.Check(); err != nil {
		return false, err
	}
	_, err := json.Marshal(value)
	return err == nil, nil
}

// ToStore marshals the value to JSON text.
func (f *JSONField) ToStore(value any) (any, error) {
	if reflectutil.IsAbsent(value) {
		return nil, nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return nil, &StoreError{Kind: KindJSON, Value: value, Err: err}
	}
	return string(data), nil
}

// FromStore decodes stored JSON text.
func (f *JSONField) FromStore(value any) (any, error) {
	if reflectutil.IsAbsent(value) {
		return nil, nil
	}
	s, ok := reflectutil.StringValue(value)
	if !ok {
		return nil, &StoreError{Kind: KindJSON, Value: value}
	}
	var out any
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		return nil, &StoreError{Kind: KindJSON, Value: value, Err: err}
	}
	return out, nil
}
