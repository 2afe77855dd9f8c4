package fields

import (
	"time"

	"github.com/deepankarm/docfields/pkg/internal/reflectutil"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// DateTimeField stores points in time. Values must be time.Time.
// The store keeps UTC milliseconds; values read back are presented in the
// field's location (UTC unless Location is given).
type DateTimeField struct {
	Base
	autoNowOnUpdate bool
	loc             *time.Location
	now             func() time.Time
}

// DateTimeOption configures a DateTimeField.
type DateTimeOption interface {
	applyDateTime(*DateTimeField)
}

type dateTimeOption func(*DateTimeField)

func (o dateTimeOption) applyDateTime(f *DateTimeField) { o(f) }

// DateTime creates a date-time field.
func DateTime(opts ...DateTimeOption) *DateTimeField {
	f := &DateTimeField{loc: time.UTC, now: time.Now}
	f.setConstraint(ConstraintFormat, "date-time")
	for _, opt := range opts {
		opt.applyDateTime(f)
	}
	return f
}

// AutoNowOnInsert defaults the field to the current time.
func AutoNowOnInsert() DateTimeOption {
	return dateTimeOption(func(f *DateTimeField) {
		DefaultFunc(func() any { return f.current() })(&f.Base)
	})
}

// AutoNowOnUpdate refreshes the field to the current time whenever the
// owning record is touched.
func AutoNowOnUpdate() DateTimeOption {
	return dateTimeOption(func(f *DateTimeField) {
		f.autoNowOnUpdate = true
	})
}

// Location sets the location values are presented in.
func Location(loc *time.Location) DateTimeOption {
	return dateTimeOption(func(f *DateTimeField) {
		if loc == nil {
			f.fail(&ConfigError{Option: "location", Msg: "location must not be nil"})
			return
		}
		f.loc = loc
	})
}

// Clock replaces the time source used by the auto-now options.
func Clock(now func() time.Time) DateTimeOption {
	return dateTimeOption(func(f *DateTimeField) {
		if now != nil {
			f.now = now
		}
	})
}

func (f *DateTimeField) current() time.Time {
	return f.now().In(f.loc)
}

// Kind returns KindDateTime.
func (f *DateTimeField) Kind() string {
	return KindDateTime
}

// Validate accepts absent values and time.Time values.
func (f *DateTimeField) Validate(value any) (bool, error) {
	if reflectutil.IsAbsent(value) {
		return true, nil
	}
	if err := f.Check(); err != nil {
		return false, err
	}
	_, ok := toTime(value)
	return ok, nil
}

// IsEmpty also treats the zero time as empty.
func (f *DateTimeField) IsEmpty(value any) bool {
	if reflectutil.IsAbsent(value) {
		return true
	}
	t, ok := toTime(value)
	return ok && t.IsZero()
}

// Touch returns the current time when the field is declared AutoNowOnUpdate.
func (f *DateTimeField) Touch() (any, bool) {
	if !f.autoNowOnUpdate {
		return nil, false
	}
	return f.current(), true
}

// ToStore converts the value to bson.DateTime.
func (f *DateTimeField) ToStore(value any) (any, error) {
	if reflectutil.IsAbsent(value) {
		return nil, nil
	}
	t, ok := toTime(value)
	if !ok {
		return nil, &StoreError{Kind: KindDateTime, Value: value}
	}
	return bson.NewDateTimeFromTime(t), nil
}

// FromStore converts stored date-times to time.Time in the field's location.
func (f *DateTimeField) FromStore(value any) (any, error) {
	if reflectutil.IsAbsent(value) {
		return nil, nil
	}
	switch v := value.(type) {
	case bson.DateTime:
		return v.Time().In(f.loc), nil
	case time.Time:
		return v.In(f.loc), nil
	}
	return nil, &StoreError{Kind: KindDateTime, Value: value}
}

func toTime(value any) (time.Time, bool) {
	switch v := value.(type) {
	case time.Time:
		return v, true
	case *time.Time:
		return *v, true
	}
	return time.Time{}, false
}
