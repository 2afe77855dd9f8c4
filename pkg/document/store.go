package document

import (
	"github.com/deepankarm/docfields/pkg/fields"
	"github.com/deepankarm/docfields/pkg/internal/reflectutil"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// ToStore maps rec to the ordered BSON document kept in the store.
//
// Keys are the fields' source names, in declaration order. Absent values and
// undeclared keys are left out. Values are converted by fields implementing
// fields.Storer; conversion failures are reported as ValidationErrors of
// type ErrorTypeStore.
func (s *Schema) ToStore(rec Record) (bson.D, error) {
	doc := make(bson.D, 0, len(rec))
	var errs ValidationErrors
	for pair := s.fields.Oldest(); pair != nil; pair = pair.Next() {
		name, f := pair.Key, pair.Value
		value := rec[name]
		if reflectutil.IsAbsent(value) {
			continue
		}
		if storer, ok := f.(fields.Storer); ok {
			v, err := storer.ToStore(value)
			if err != nil {
				errs = append(errs, storeError(name, err))
				continue
			}
			value = v
		}
		doc = append(doc, bson.E{Key: storedName(name, f), Value: value})
	}
	if len(errs) > 0 {
		return nil, errs
	}
	return doc, nil
}

// FromStore maps a stored document back to a Record keyed by declared names.
// Keys no field is stored under are ignored.
func (s *Schema) FromStore(doc bson.D) (Record, error) {
	rec := make(Record, len(doc))
	var errs ValidationErrors
	for _, e := range doc {
		name, ok := s.bySource[e.Key]
		if !ok {
			continue
		}
		f, _ := s.fields.Get(name)
		value := e.Value
		if storer, ok := f.(fields.Storer); ok {
			v, err := storer.FromStore(value)
			if err != nil {
				errs = append(errs, storeError(name, err))
				continue
			}
			value = v
		}
		rec[name] = value
	}
	if len(errs) > 0 {
		return nil, errs
	}
	return rec, nil
}

func storeError(name string, err error) ValidationError {
	return ValidationError{
		Loc:     []string{name},
		Message: err.Error(),
		Type:    ErrorTypeStore,
	}
}
