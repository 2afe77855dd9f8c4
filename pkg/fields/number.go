package fields

import (
	"math"
	"reflect"

	"github.com/deepankarm/docfields/pkg/internal/reflectutil"
)

// IntField stores whole numbers. Only Go integer kinds are accepted: floats,
// booleans and numeric strings are rejected.
type IntField struct {
	Base
	min, max       int64
	hasMin, hasMax bool
}

// IntOption configures an IntField.
type IntOption interface {
	applyInt(*IntField)
}

type intOption func(*IntField)

func (o intOption) applyInt(f *IntField) { o(f) }

// Int creates an integer field.
func Int(opts ...IntOption) *IntField {
	f := &IntField{}
	for _, opt := range opts {
		opt.applyInt(f)
	}
	return f
}

// MinInt rejects integers below n.
func MinInt(n int64) IntOption {
	return intOption(func(f *IntField) {
		f.min, f.hasMin = n, true
		f.setConstraint(ConstraintMinimum, n)
	})
}

// MaxInt rejects integers above n.
func MaxInt(n int64) IntOption {
	return intOption(func(f *IntField) {
		f.max, f.hasMax = n, true
		f.setConstraint(ConstraintMaximum, n)
	})
}

// Kind returns KindInt.
func (f *IntField) Kind() string {
	return KindInt
}

// Validate accepts absent values and integers within the configured bounds.
func (f *IntField) Validate(value any) (bool, error) {
	if reflectutil.IsAbsent(value) {
		return true, nil
	}
	if err := f.Check(); err != nil {
		return false, err
	}
	n, ok := reflectutil.Int64Value(value)
	if !ok {
		return false, nil
	}
	if f.hasMin && n < f.min {
		return false, nil
	}
	if f.hasMax && n > f.max {
		return false, nil
	}
	return true, nil
}

// ToStore widens the value to int64.
func (f *IntField) ToStore(value any) (any, error) {
	if reflectutil.IsAbsent(value) {
		return nil, nil
	}
	n, ok := reflectutil.Int64Value(value)
	if !ok {
		return nil, &StoreError{Kind: KindInt, Value: value}
	}
	return n, nil
}

// FromStore returns stored integers as int64.
func (f *IntField) FromStore(value any) (any, error) {
	if reflectutil.IsAbsent(value) {
		return nil, nil
	}
	if rv := reflect.ValueOf(value); !reflectutil.IsIntegerKind(rv.Kind()) {
		return nil, &StoreError{Kind: KindInt, Value: value}
	}
	return f.ToStore(value)
}

// FloatField stores floating point numbers. Integer kinds are accepted and
// widened; NaN is rejected.
type FloatField struct {
	Base
	min, max       float64
	hasMin, hasMax bool
}

// FloatOption configures a FloatField.
type FloatOption interface {
	applyFloat(*FloatField)
}

type floatOption func(*FloatField)

func (o floatOption) applyFloat(f *FloatField) { o(f) }

// Float creates a floating point field.
func Float(opts ...FloatOption) *FloatField {
	f := &FloatField{}
	for _, opt := range opts {
		opt.applyFloat(f)
	}
	return f
}

// MinFloat rejects numbers below v.
func MinFloat(v float64) FloatOption {
	return floatOption(func(f *FloatField) {
		if math.IsNaN(v) {
			f.fail(&ConfigError{Option: ConstraintMinimum, Msg: "'minimum' must not be NaN"})
			return
		}
		f.min, f.hasMin = v, true
		f.setConstraint(ConstraintMinimum, v)
	})
}

// MaxFloat rejects numbers above v.
func MaxFloat(v float64) FloatOption {
	return floatOption(func(f *FloatField) {
		if math.IsNaN(v) {
			f.fail(&ConfigError{Option: ConstraintMaximum, Msg: "'maximum' must not be NaN"})
			return
		}
		f.max, f.hasMax = v, true
		f.setConstraint(ConstraintMaximum, v)
	})
}

// Kind returns KindFloat.
func (f *FloatField) Kind() string {
	return KindFloat
}

// Validate accepts absent values and numbers within the configured bounds.
func (f *FloatField) Validate(value any) (bool, error) {
	if reflectutil.IsAbsent(value) {
		return true, nil
	}
	if err := f.Check(); err != nil {
		return false, err
	}
	v, ok := reflectutil.Float64Value(value)
	if !ok || math.IsNaN(v) {
		return false, nil
	}
	if f.hasMin && v < f.min {
		return false, nil
	}
	if f.hasMax && v > f.max {
		return false, nil
	}
	return true, nil
}

// ToStore widens the value to float64.
func (f *FloatField) ToStore(value any) (any, error) {
	if reflectutil.IsAbsent(value) {
		return nil, nil
	}
	v, ok := reflectutil.Float64Value(value)
	if !ok {
		return nil, &StoreError{Kind: KindFloat, Value: value}
	}
	return v, nil
}

// FromStore returns stored numbers as float64.
func (f *FloatField) FromStore(value any) (any, error) {
	return f.ToStore(value)
}
