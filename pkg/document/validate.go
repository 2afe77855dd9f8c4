package document

import (
	"fmt"
	"maps"
	"slices"

	"github.com/deepankarm/docfields/pkg/fields"
	"github.com/deepankarm/docfields/pkg/internal/reflectutil"
)

// Validate checks rec against every declared field.
//
// It returns nil when rec is acceptable, ValidationErrors listing every
// violation in declaration order, or, if a field is misconfigured, an error
// wrapping the *fields.ConfigError. Configuration errors stop validation.
func (s *Schema) Validate(rec Record) error {
	var errs ValidationErrors
	for pair := s.fields.Oldest(); pair != nil; pair = pair.Next() {
		name, f := pair.Key, pair.Value
		value := rec[name]

		if f.Required() && f.IsEmpty(value) {
			errs = append(errs, ValidationError{
				Loc:     []string{name},
				Message: "required field",
				Type:    ErrorTypeRequired,
			})
			continue
		}

		if emb, ok := f.(*EmbeddedField); ok {
			nested, err := emb.validateRecord(value)
			if err != nil {
				return fmt.Errorf("field %q: %w", name, err)
			}
			errs = append(errs, nested.Prefix(name)...)
			continue
		}

		ok, err := f.Validate(value)
		if err != nil {
			return fmt.Errorf("field %q: %w", name, err)
		}
		if !ok {
			errs = append(errs, ValidationError{
				Loc:     []string{name},
				Message: fmt.Sprintf("invalid value for %s field", f.Kind()),
				Type:    ErrorTypeConstraint,
			})
		}
	}

	if s.strict {
		for _, key := range slices.Sorted(maps.Keys(rec)) {
			if _, declared := s.fields.Get(key); !declared {
				errs = append(errs, ValidationError{
					Loc:     []string{key},
					Message: "unknown field",
					Type:    ErrorTypeUnknownField,
				})
			}
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ApplyDefaults returns a copy of rec with defaults filled in for every
// absent field. Producers declared with DefaultFunc run once per call.
func (s *Schema) ApplyDefaults(rec Record) Record {
	out := maps.Clone(rec)
	if out == nil {
		out = make(Record, s.fields.Len())
	}
	for pair := s.fields.Oldest(); pair != nil; pair = pair.Next() {
		name, f := pair.Key, pair.Value
		if emb, ok := f.(*EmbeddedField); ok {
			if nested, ok := asRecord(out[name]); ok {
				out[name] = emb.schema.ApplyDefaults(nested)
				continue
			}
		}
		if !reflectutil.IsAbsent(out[name]) {
			continue
		}
		if v, ok := f.Default(); ok {
			out[name] = v
		}
	}
	return out
}

// Touch returns a copy of rec with every auto-updating field refreshed.
// Call it before persisting a modified record.
func (s *Schema) Touch(rec Record) Record {
	out := maps.Clone(rec)
	if out == nil {
		out = make(Record)
	}
	for pair := s.fields.Oldest(); pair != nil; pair = pair.Next() {
		if t, ok := pair.Value.(fields.Toucher); ok {
			if v, ok := t.Touch(); ok {
				out[pair.Key] = v
			}
		}
	}
	return out
}
