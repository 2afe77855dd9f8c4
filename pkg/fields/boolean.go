package fields

import (
	"reflect"

	"github.com/deepankarm/docfields/pkg/internal/reflectutil"
)

// BooleanField stores true or false.
type BooleanField struct {
	Base
}

// Boolean creates a boolean field.
func Boolean(opts ...Option) *BooleanField {
	f := &BooleanField{}
	for _, opt := range opts {
		opt(&f.Base)
	}
	return f
}

// Kind returns KindBoolean.
func (f *BooleanField) Kind() string {
	return KindBoolean
}

// Validate accepts absent values and values of bool kind.
func (f *BooleanField) Validate(value any) (bool, error) {
	if reflectutil.IsAbsent(value) {
		return true, nil
	}
	if err := f.Check(); err != nil {
		return false, err
	}
	return reflectutil.Indirect(value).Kind() == reflect.Bool, nil
}
