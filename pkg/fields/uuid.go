package fields

import (
	"github.com/deepankarm/docfields/pkg/internal/reflectutil"
	"github.com/google/uuid"
)

// UUIDField stores UUIDs. Values may be uuid.UUID or any string uuid.Parse
// accepts; they are stored in canonical string form.
type UUIDField struct {
	Base
}

// UUID creates a UUID field.
func UUID(opts ...Option) *UUIDField {
	f := &UUIDField{}
	f.setConstraint(ConstraintFormat, "uuid")
	for _, opt := range opts {
		opt(&f.Base)
	}
	return f
}

// NewUUID is a DefaultFunc producer for random UUIDs.
func NewUUID() any {
	return uuid.New()
}

// Kind returns KindUUID.
func (f *UUIDField) Kind() string {
	return KindUUID
}

// Validate accepts absent values, uuid.UUID and parseable UUID strings.
func (f *UUIDField) Validate(value any) (bool, error) {
	if reflectutil.IsAbsent(value) {
		return true, nil
	}
	if err := f.Check(); err != nil {
		return false, err
	}
	_, ok := toUUID(value)
	return ok, nil
}

// IsEmpty also treats "" and the nil UUID as empty.
func (f *UUIDField) IsEmpty(value any) bool {
	if reflectutil.IsAbsent(value) {
		return true
	}
	if s, ok := reflectutil.StringValue(value); ok && s == "" {
		return true
	}
	id, ok := toUUID(value)
	return ok && id == uuid.Nil
}

// ToStore returns the canonical string form.
func (f *UUIDField) ToStore(value any) (any, error) {
	if reflectutil.IsAbsent(value) {
		return nil, nil
	}
	id, ok := toUUID(value)
	if !ok {
		return nil, &StoreError{Kind: KindUUID, Value: value}
	}
	return id.String(), nil
}

// FromStore parses the stored string back into a uuid.UUID.
func (f *UUIDField) FromStore(value any) (any, error) {
	if reflectutil.IsAbsent(value) {
		return nil, nil
	}
	id, ok := toUUID(value)
	if !ok {
		return nil, &StoreError{Kind: KindUUID, Value: value}
	}
	return id, nil
}

func toUUID(value any) (uuid.UUID, bool) {
	switch v := value.(type) {
	case uuid.UUID:
		return v, true
	case *uuid.UUID:
		return *v, true
	}
	s, ok := reflectutil.StringValue(value)
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(s)
	return id, err == nil
}
