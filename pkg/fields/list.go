package fields

import (
	"github.com/deepankarm/docfields/pkg/internal/reflectutil"
)

// ListField stores a sequence whose items are each validated by an item field.
//
//	tags := fields.List(fields.String(fields.MaxLength(20)), fields.MaxItems(10))
type ListField struct {
	Base
	item     Field
	minItems int // -1 when unset
	maxItems int // -1 when unset
}

// ListOption configures a ListField.
type ListOption interface {
	applyList(*ListField)
}

type listOption func(*ListField)

func (o listOption) applyList(f *ListField) { o(f) }

// List creates a list of item values.
func List(item Field, opts ...ListOption) *ListField {
	f := &ListField{item: item, minItems: -1, maxItems: -1}
	if item == nil {
		f.fail(&ConfigError{Option: "items", Msg: "list item field must not be nil"})
	}
	for _, opt := range opts {
		opt.applyList(f)
	}
	return f
}

// MinItems rejects lists with fewer than n items.
func MinItems(n int) ListOption {
	return listOption(func(f *ListField) {
		if n < 0 {
			f.fail(negativeBound(ConstraintMinItems))
			return
		}
		f.minItems = n
		f.setConstraint(ConstraintMinItems, n)
	})
}

// MaxItems rejects lists with more than n items.
func MaxItems(n int) ListOption {
	return listOption(func(f *ListField) {
		if n < 0 {
			f.fail(negativeBound(ConstraintMaxItems))
			return
		}
		f.maxItems = n
		f.setConstraint(ConstraintMaxItems, n)
	})
}

// Item returns the field validating each item.
func (f *ListField) Item() Field {
	return f.item
}

// Kind returns KindList.
func (f *ListField) Kind() string {
	return KindList
}

// Check reports the list's and the item field's configuration errors.
func (f *ListField) Check() error {
	if err := f.Base.Check(); err != nil {
		return err
	}
	return f.item.Check()
}

// Validate accepts absent values and slices or arrays whose length is within
// the bounds and whose every item the item field accepts.
func (f *ListField) Validate(value any) (bool, error) {
	if reflectutil.IsAbsent(value) {
		return true, nil
	}
	if err := f.Check(); err != nil {
		return false, err
	}
	items, ok := reflectutil.Sequence(value)
	if !ok {
		return false, nil
	}
	if f.minItems >= 0 && len(items) < f.minItems {
		return false, nil
	}
	if f.maxItems >= 0 && len(items) > f.maxItems {
		return false, nil
	}
	for _, item := range items {
		ok, err := f.item.Validate(item)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

// IsEmpty also treats a zero-length list as empty.
func (f *ListField) IsEmpty(value any) bool {
	if reflectutil.IsAbsent(value) {
		return true
	}
	items, ok := reflectutil.Sequence(value)
	return ok && len(items) == 0
}

// ToStore converts every item with the item field's Storer, if it has one.
func (f *ListField) ToStore(value any) (any, error) {
	return f.convert(value, func(s Storer, v any) (any, error) { return s.ToStore(v) })
}

// FromStore converts every stored item back with the item field's Storer.
func (f *ListField) FromStore(value any) (any, error) {
	return f.convert(value, func(s Storer, v any) (any, error) { return s.FromStore(v) })
}

func (f *ListField) convert(value any, fn func(Storer, any) (any, error)) (any, error) {
	if reflectutil.IsAbsent(value) {
		return nil, nil
	}
	items, ok := reflectutil.Sequence(value)
	if !ok {
		return nil, &StoreError{Kind: KindList, Value: value}
	}
	storer, hasStorer := f.item.(Storer)
	out := make([]any, len(items))
	for i, item := range items {
		if !hasStorer {
			out[i] = item
			continue
		}
		v, err := fn(storer, item)
		if err != nil {
			return nil, &StoreError{Kind: KindList, Value: value, Err: err}
		}
		out[i] = v
	}
	return out, nil
}
