package fields_test

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/deepankarm/docfields/pkg/fields"
)

type status string

func mustValidate(t *testing.T, f fields.Field, value any) bool {
	t.Helper()
	ok, err := f.Validate(value)
	if err != nil {
		t.Fatalf("Validate(%#v) returned configuration error: %v", value, err)
	}
	return ok
}

func TestStringField_Create(t *testing.T) {
	f := fields.String(fields.SourceName("test"), fields.MaxLength(200))

	if f.SourceName() != "test" {
		t.Errorf("SourceName() = %q, want %q", f.SourceName(), "test")
	}
	if got := f.Constraints()[fields.ConstraintMaxLength]; got != 200 {
		t.Errorf("maxLength constraint = %v, want 200", got)
	}
	if f.Kind() != fields.KindString {
		t.Errorf("Kind() = %q", f.Kind())
	}
	if f.Required() {
		t.Error("field should not be required by default")
	}
}

func TestStringField_EnforcesStrings(t *testing.T) {
	f := fields.String(fields.MaxLength(5))

	tests := []struct {
		name  string
		value any
	}{
		{"int", 1},
		{"float", 1.5},
		{"bool", true},
		{"bytes", []byte("abc")},
		{"slice", []string{"a"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if mustValidate(t, f, tt.value) {
				t.Errorf("Validate(%#v) = true, want false", tt.value)
			}
		})
	}
}

func TestStringField_AcceptsStringKinds(t *testing.T) {
	f := fields.String()
	s := "pointer"

	if !mustValidate(t, f, status("active")) {
		t.Error("named string type should be accepted")
	}
	if !mustValidate(t, f, &s) {
		t.Error("pointer to string should be accepted")
	}
}

func TestStringField_MaxLength(t *testing.T) {
	f := fields.String(fields.MaxLength(5))

	if !mustValidate(t, f, "-----") {
		t.Error("5 characters should be valid")
	}
	if mustValidate(t, f, strings.Repeat("-----", 2)) {
		t.Error("10 characters should be invalid")
	}
	if mustValidate(t, f, "------") {
		t.Error("6 characters should be invalid")
	}
}

func TestStringField_MinLength(t *testing.T) {
	f := fields.String(fields.MinLength(5))

	if !mustValidate(t, f, "------") {
		t.Error("6 characters should be valid")
	}
	if !mustValidate(t, f, "-----") {
		t.Error("5 characters should be valid")
	}
	if mustValidate(t, f, "----") {
		t.Error("4 characters should be invalid")
	}
}

func TestStringField_LengthCountsCharacters(t *testing.T) {
	f := fields.String(fields.MaxLength(3))

	// 3 runes, 6 bytes.
	if !mustValidate(t, f, "日本語") {
		t.Error("length must be counted in characters, not bytes")
	}
}

func TestStringField_BoundsAreIndependent(t *testing.T) {
	f := fields.String(fields.MinLength(5), fields.MaxLength(2))

	for _, v := range []string{"", "ab", "abcde"} {
		if mustValidate(t, f, v) {
			t.Errorf("Validate(%q) = true with min 5 and max 2", v)
		}
	}
}

func TestStringField_IsEmpty(t *testing.T) {
	f := fields.String()

	tests := []struct {
		name     string
		value    any
		expected bool
	}{
		{"nil", nil, true},
		{"typed nil", (*string)(nil), true},
		{"empty string", "", true},
		{"digits", "123", false},
		{"single space", " ", false},
		{"zero int", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.IsEmpty(tt.value); got != tt.expected {
				t.Errorf("IsEmpty(%#v) = %v, want %v", tt.value, got, tt.expected)
			}
		})
	}
}

func TestStringField_AbsentIsAlwaysValid(t *testing.T) {
	tests := []struct {
		name  string
		field *fields.StringField
	}{
		{"optional", fields.String()},
		{"required", fields.String(fields.Required())},
		{"bounded", fields.String(fields.MinLength(3), fields.MaxLength(1))},
		{"choices", fields.String(fields.Choices("one"))},
		{"invalid pattern", fields.String(fields.Pattern("]["))},
		{"non-iterable choices", fields.String(fields.ChoicesFrom(1))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := tt.field.Validate(nil)
			if !ok || err != nil {
				t.Errorf("Validate(nil) = (%v, %v), want (true, nil)", ok, err)
			}
		})
	}
}

func TestStringField_Choices(t *testing.T) {
	f := fields.String(fields.Choices("one", "two", "three"))

	if !mustValidate(t, f, "one") {
		t.Error("'one' should be valid")
	}
	if mustValidate(t, f, "four") {
		t.Error("'four' should be invalid")
	}
}

func TestStringField_ChoicesAreCopied(t *testing.T) {
	values := []string{"one", "two"}
	f := fields.String(fields.Choices(values...))
	values[0] = "changed"

	got, _ := f.Constraints()[fields.ConstraintEnum].([]string)
	if len(got) != 2 || got[0] != "one" || got[1] != "two" {
		t.Errorf("enum = %v, want [one two]", got)
	}
	if !mustValidate(t, f, "one") {
		t.Error("'one' should still be valid")
	}
}

func TestStringField_PatternConstraintIsAnchored(t *testing.T) {
	tests := []struct {
		field *fields.StringField
		want  string
	}{
		{fields.String(fields.Pattern("[a-z0-9]+")), "^(?:[a-z0-9]+)"},
		{fields.String(fields.Pattern("a|b")), "^(?:a|b)"},
		{fields.String(fields.Pattern("^a|b")), "^(?:^a|b)"},
		{fields.String(fields.Pattern(`^[a-z]+$`)), `^[a-z]+$`},
	}
	for _, tt := range tests {
		if got := tt.field.Constraints()[fields.ConstraintPattern]; got != tt.want {
			t.Errorf("pattern constraint = %v, want %q", got, tt.want)
		}
	}
}

func TestStringField_ChoicesFrom(t *testing.T) {
	tests := []struct {
		name    string
		choices any
		value   string
		want    bool
	}{
		{"slice member", []string{"one", "two"}, "two", true},
		{"slice non-member", []string{"one", "two"}, "four", false},
		{"array member", [2]string{"a", "b"}, "a", true},
		{"map keys", map[string]int{"x": 1}, "x", true},
		{"mixed slice", []any{1, "one"}, "one", true},
		{"mixed slice non-string never matches", []any{1}, "1", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := fields.String(fields.ChoicesFrom(tt.choices))
			if got := mustValidate(t, f, tt.value); got != tt.want {
				t.Errorf("Validate(%q) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestStringField_InvalidChoiceType(t *testing.T) {
	for _, value := range []any{"a", 1, ""} {
		_, err := fields.String(fields.ChoicesFrom(1)).Validate(value)
		if err == nil {
			t.Fatalf("Validate(%#v) should return a configuration error", value)
		}
		if err.Error() != "'choices' must be an iterable" {
			t.Errorf("error = %q, want %q", err.Error(), "'choices' must be an iterable")
		}
		if !errors.Is(err, fields.ErrConfig) {
			t.Error("error should match fields.ErrConfig")
		}
	}

	if err := fields.String(fields.ChoicesFrom("abc")).Check(); err == nil {
		t.Error("a string is not a collection of choices")
	}
}

func TestStringField_ValidRegex(t *testing.T) {
	f := fields.String(fields.Pattern("[a-z0-9]+"))

	tests := []struct {
		value string
		want  bool
	}{
		{"test1", true},
		{"Test1", false},
		{"test1 TRAILING", true}, // prefix match
		{" test1", false},        // anchored at start
		{"", false},
	}
	for _, tt := range tests {
		if got := mustValidate(t, f, tt.value); got != tt.want {
			t.Errorf("Validate(%q) = %v, want %v", tt.value, got, tt.want)
		}
	}
}

func TestStringField_InvalidRegex(t *testing.T) {
	_, err := fields.String(fields.Pattern("][")).Validate("a")
	if err == nil {
		t.Fatal("expected a configuration error")
	}
	if !strings.HasPrefix(err.Error(), "Invalid regex: ") {
		t.Errorf("error = %q, want prefix %q", err.Error(), "Invalid regex: ")
	}

	var cfgErr *fields.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("error should be a *fields.ConfigError, got %T", err)
	}
	if cfgErr.Option != fields.ConstraintPattern {
		t.Errorf("Option = %q, want %q", cfgErr.Option, fields.ConstraintPattern)
	}
	engineErr := errors.Unwrap(err)
	if engineErr == nil {
		t.Fatal("configuration error should wrap the engine error")
	}
	if err.Error() != "Invalid regex: "+engineErr.Error() {
		t.Errorf("error = %q, should carry engine message %q", err.Error(), engineErr.Error())
	}
	if !strings.Contains(err.Error(), "missing closing ]") {
		t.Errorf("error = %q, want the engine diagnostic", err.Error())
	}
}

func TestStringField_ConfigErrorIsIndependentOfValue(t *testing.T) {
	f := fields.String(fields.Pattern("("), fields.MaxLength(1))

	for _, value := range []any{"a", "too long", 42} {
		if _, err := f.Validate(value); err == nil {
			t.Errorf("Validate(%#v) should return the configuration error", value)
		}
	}
}

func TestStringField_NegativeBound(t *testing.T) {
	err := fields.String(fields.MaxLength(-1)).Check()
	if !errors.Is(err, fields.ErrConfig) {
		t.Fatalf("Check() = %v, want configuration error", err)
	}
	if err.Error() != "'maxLength' must be a non-negative integer" {
		t.Errorf("error = %q", err.Error())
	}
}

func TestStringField_ConcurrentFirstUse(t *testing.T) {
	f := fields.String(fields.Pattern(`^[a-z]+$`))
	bad := fields.String(fields.Pattern(`(`))

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, err := f.Validate("abc"); !ok || err != nil {
				t.Errorf("Validate = (%v, %v)", ok, err)
			}
			if _, err := bad.Validate("abc"); err == nil {
				t.Error("expected configuration error")
			}
		}()
	}
	wg.Wait()
}

func TestURLAndEmail(t *testing.T) {
	url := fields.URL()
	email := fields.Email(fields.MaxLength(20))

	tests := []struct {
		name  string
		field fields.Field
		value string
		want  bool
	}{
		{"https url", url, "https://example.com/a", true},
		{"not a url", url, "example.com", false},
		{"url with trailing space", url, "https://example.com /x", false},
		{"email", email, "john@example.com", true},
		{"email too long", email, "john.doe.smith@example.com", false},
		{"not an email", email, "john@", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mustValidate(t, tt.field, tt.value); got != tt.want {
				t.Errorf("Validate(%q) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}

	if url.Constraints()[fields.ConstraintFormat] != "uri" {
		t.Errorf("URL format = %v", url.Constraints()[fields.ConstraintFormat])
	}
}
