package fields

import (
	"slices"
	"unicode/utf8"

	"github.com/deepankarm/docfields/pkg/internal/reflectutil"
)

// StringField stores text.
//
//	name := fields.String(fields.Required(), fields.MaxLength(255), fields.MinLength(1))
//
// Lengths are counted in characters (runes), not bytes. Bounds are checked
// independently, so a field declared with MinLength above MaxLength rejects
// every non-absent value.
type StringField struct {
	Base
	maxLength int // -1 when unset
	minLength int // -1 when unset
	choices   map[string]struct{}
	pattern   *pattern
}

// StringOption configures a StringField.
type StringOption interface {
	applyString(*StringField)
}

type stringOption func(*StringField)

func (o stringOption) applyString(f *StringField) { o(f) }

// String creates a text field.
func String(opts ...StringOption) *StringField {
	f := &StringField{maxLength: -1, minLength: -1}
	for _, opt := range opts {
		opt.applyString(f)
	}
	return f
}

// MaxLength rejects strings with more than n characters.
func MaxLength(n int) StringOption {
	return stringOption(func(f *StringField) {
		if n < 0 {
			f.fail(negativeBound(ConstraintMaxLength))
			return
		}
		f.maxLength = n
		f.setConstraint(ConstraintMaxLength, n)
	})
}

// MinLength rejects strings with fewer than n characters.
func MinLength(n int) StringOption {
	return stringOption(func(f *StringField) {
		if n < 0 {
			f.fail(negativeBound(ConstraintMinLength))
			return
		}
		f.minLength = n
		f.setConstraint(ConstraintMinLength, n)
	})
}

// Choices restricts the field to the given values.
func Choices(values ...string) StringOption {
	return stringOption(func(f *StringField) {
		f.setChoices(values)
	})
}

// ChoicesFrom restricts the field to the members of src, which may be a
// slice, an array, or a map whose keys are the allowed values. Any other src
// is a configuration error. Members that are not strings never match.
func ChoicesFrom(src any) StringOption {
	return stringOption(func(f *StringField) {
		items, ok := reflectutil.Iterable(src)
		if !ok {
			f.fail(choicesNotIterable())
			return
		}
		values := make([]string, 0, len(items))
		for _, item := range items {
			if s, ok := item.(string); ok {
				values = append(values, s)
			}
		}
		f.setChoices(values)
	})
}

// Pattern requires values to match the regular expression src, anchored at
// the start of the value. Add a trailing `$` to require a full match.
// An invalid src is reported as a ConfigError by Check and Validate.
// The ConstraintPattern metadata holds the start-anchored form, "^(?:src)".
func Pattern(src string) StringOption {
	return stringOption(func(f *StringField) {
		f.pattern = newPattern(src)
		f.setConstraint(ConstraintPattern, anchored(src))
	})
}

// Format sets a format hint for generated schemas, e.g. "email".
func Format(format string) StringOption {
	return stringOption(func(f *StringField) {
		f.setConstraint(ConstraintFormat, format)
	})
}

func (f *StringField) setChoices(values []string) {
	f.choices = make(map[string]struct{}, len(values))
	for _, v := range values {
		f.choices[v] = struct{}{}
	}
	f.setConstraint(ConstraintEnum, slices.Clone(values))
}

// URL creates a string field that only accepts http and https URLs.
func URL(opts ...StringOption) *StringField {
	preset := []StringOption{Pattern(`^https?://[^\s/$.?#].[^\s]*$`), Format("uri")}
	return String(append(preset, opts...)...)
}

// Email creates a string field that only accepts e-mail addresses.
func Email(opts ...StringOption) *StringField {
	preset := []StringOption{Pattern(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`), Format("email")}
	return String(append(preset, opts...)...)
}

// Kind returns KindString.
func (f *StringField) Kind() string {
	return KindString
}

// Check compiles the pattern and reports any configuration error.
func (f *StringField) Check() error {
	if err := f.Base.Check(); err != nil {
		return err
	}
	if f.pattern != nil {
		if _, err := f.pattern.compile(); err != nil {
			return err
		}
	}
	return nil
}

// Validate accepts absent values and strings satisfying every configured
// constraint. Non-string values are rejected without conversion.
//
// A configuration error is returned for every non-absent value, before the
// type and length checks run.
func (f *StringField) Validate(value any) (bool, error) {
	if reflectutil.IsAbsent(value) {
		return true, nil
	}
	if err := f.Check(); err != nil {
		return false, err
	}

	s, ok := reflectutil.StringValue(value)
	if !ok {
		return false, nil
	}

	n := utf8.RuneCountInString(s)
	if f.maxLength >= 0 && n > f.maxLength {
		return false, nil
	}
	if f.minLength >= 0 && n < f.minLength {
		return false, nil
	}

	if f.pattern != nil {
		matched, err := f.pattern.matchPrefix(s)
		if err != nil {
			return false, err
		}
		if !matched {
			return false, nil
		}
	}

	if f.choices != nil {
		if _, ok := f.choices[s]; !ok {
			return false, nil
		}
	}

	return true, nil
}

// IsEmpty reports absent values and the zero-length string as empty.
// Whitespace is data.
func (f *StringField) IsEmpty(value any) bool {
	if reflectutil.IsAbsent(value) {
		return true
	}
	s, ok := reflectutil.StringValue(value)
	return ok && s == ""
}
