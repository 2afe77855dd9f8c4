package fields

import (
	"reflect"
	"strings"

	"github.com/deepankarm/docfields/pkg/internal/reflectutil"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// IDKey is the record key holding a document's identifier.
const IDKey = "_id"

const objectIDPattern = "^[0-9a-fA-F]{24}$"

// ObjectIDField stores BSON ObjectIDs. Values may be bson.ObjectID, a
// 24-digit hex string, or the ObjectID("...") form printed by the driver.
type ObjectIDField struct {
	Base
}

// ObjectID creates an ObjectID field.
func ObjectID(opts ...Option) *ObjectIDField {
	f := &ObjectIDField{}
	f.setConstraint(ConstraintPattern, objectIDPattern)
	for _, opt := range opts {
		opt(&f.Base)
	}
	return f
}

// NewObjectID is a DefaultFunc producer for fresh ObjectIDs.
func NewObjectID() any {
	return bson.NewObjectID()
}

// Kind returns KindObjectID.
func (f *ObjectIDField) Kind() string {
	return KindObjectID
}

// Validate accepts absent values and anything ParseObjectID accepts.
func (f *ObjectIDField) Validate(value any) (bool, error) {
	if reflectutil.IsAbsent(value) {
		return true, nil
	}
	if err := f.Check(); err != nil {
		return false, err
	}
	_, ok := ParseObjectID(value)
	return ok, nil
}

// IsEmpty also treats "" and the zero ObjectID as empty.
func (f *ObjectIDField) IsEmpty(value any) bool {
	return isEmptyObjectID(value)
}

// ToStore converts the value to bson.ObjectID.
func (f *ObjectIDField) ToStore(value any) (any, error) {
	return storeObjectID(KindObjectID, value)
}

// FromStore returns the stored bson.ObjectID.
func (f *ObjectIDField) FromStore(value any) (any, error) {
	return storeObjectID(KindObjectID, value)
}

// ReferenceField stores a reference to a document in another collection.
// Values may be anything ObjectIDField accepts, or the referenced record
// itself, in which case its "_id" must hold a valid ObjectID.
type ReferenceField struct {
	Base
	collection string
}

// Reference creates a reference to documents stored in collection.
func Reference(collection string, opts ...Option) *ReferenceField {
	f := &ReferenceField{collection: collection}
	if collection == "" {
		f.fail(&ConfigError{Option: ConstraintReference, Msg: "reference collection must not be empty"})
	}
	f.setConstraint(ConstraintReference, collection)
	f.setConstraint(ConstraintPattern, objectIDPattern)
	for _, opt := range opts {
		opt(&f.Base)
	}
	return f
}

// Collection returns the referenced collection name.
func (f *ReferenceField) Collection() string {
	return f.collection
}

// Kind returns KindReference.
func (f *ReferenceField) Kind() string {
	return KindReference
}

// Validate accepts absent values, ObjectIDs and records with a valid "_id".
func (f *ReferenceField) Validate(value any) (bool, error) {
	if reflectutil.IsAbsent(value) {
		return true, nil
	}
	if err := f.Check(); err != nil {
		return false, err
	}
	_, ok := referenceID(value)
	return ok, nil
}

// IsEmpty also treats "" and the zero ObjectID as empty.
func (f *ReferenceField) IsEmpty(value any) bool {
	if id, ok := recordID(value); ok {
		return isEmptyObjectID(id)
	}
	return isEmptyObjectID(value)
}

// ToStore keeps only the referenced ObjectID.
func (f *ReferenceField) ToStore(value any) (any, error) {
	if reflectutil.IsAbsent(value) {
		return nil, nil
	}
	id, ok := referenceID(value)
	if !ok {
		return nil, &StoreError{Kind: KindReference, Value: value}
	}
	return id, nil
}

// FromStore returns the stored bson.ObjectID.
func (f *ReferenceField) FromStore(value any) (any, error) {
	return storeObjectID(KindReference, value)
}

// ParseObjectID converts v to an ObjectID. It accepts bson.ObjectID, raw hex
// "67b8f1..." and the wrapped ObjectID("67b8f1...") form.
func ParseObjectID(v any) (bson.ObjectID, bool) {
	switch id := v.(type) {
	case bson.ObjectID:
		return id, true
	case *bson.ObjectID:
		if id == nil {
			return bson.ObjectID{}, false
		}
		return *id, true
	}
	s, ok := reflectutil.StringValue(v)
	if !ok {
		return bson.ObjectID{}, false
	}
	if oid, err := bson.ObjectIDFromHex(s); err == nil {
		return oid, true
	}
	if strings.HasPrefix(s, `ObjectID("`) && strings.HasSuffix(s, `")`) {
		hex := s[len(`ObjectID("`) : len(s)-len(`")`)]
		oid, err := bson.ObjectIDFromHex(hex)
		return oid, err == nil
	}
	return bson.ObjectID{}, false
}

func referenceID(value any) (bson.ObjectID, bool) {
	if id, ok := recordID(value); ok {
		return ParseObjectID(id)
	}
	return ParseObjectID(value)
}

// recordID returns the "_id" entry of a string-keyed map.
func recordID(value any) (any, bool) {
	rv := reflectutil.Indirect(value)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	id := rv.MapIndex(reflect.ValueOf(IDKey).Convert(rv.Type().Key()))
	if !id.IsValid() {
		return nil, true
	}
	return id.Interface(), true
}

func isEmptyObjectID(value any) bool {
	if reflectutil.IsAbsent(value) {
		return true
	}
	if s, ok := reflectutil.StringValue(value); ok && s == "" {
		return true
	}
	id, ok := ParseObjectID(value)
	return ok && id.IsZero()
}

func storeObjectID(kind string, value any) (any, error) {
	if reflectutil.IsAbsent(value) {
		return nil, nil
	}
	id, ok := ParseObjectID(value)
	if !ok {
		return nil, &StoreError{Kind: kind, Value: value}
	}
	return id, nil
}
