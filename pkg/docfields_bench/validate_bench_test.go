package docfields_bench

import (
	"testing"

	"github.com/deepankarm/docfields/pkg/document"
	"github.com/deepankarm/docfields/pkg/fields"
)

// ============================================================================
// Benchmark Fixtures
// ============================================================================

var simpleUser = document.New("SimpleUser").
	Field("name", fields.String(fields.Required(), fields.MinLength(1), fields.MaxLength(100))).
	Field("email", fields.Email(fields.Required())).
	Field("age", fields.Int(fields.MinInt(0), fields.MaxInt(150))).
	MustBuild()

var address = document.New("Address").
	Field("street", fields.String(fields.Required(), fields.MinLength(1))).
	Field("city", fields.String(fields.Required(), fields.MinLength(1))).
	Field("state", fields.String(fields.MinLength(2), fields.MaxLength(2))).
	Field("zip", fields.String(fields.Required(), fields.Pattern(`\d{5}`))).
	Field("country", fields.String(fields.Required(), fields.Choices("US", "CA", "MX"))).
	MustBuild()

var mediumUser = document.New("MediumUser").
	Field("_id", fields.ObjectID(fields.DefaultFunc(fields.NewObjectID))).
	Field("username", fields.String(fields.Required(), fields.MinLength(3), fields.MaxLength(20))).
	Field("email", fields.Email(fields.Required())).
	Field("first_name", fields.String(fields.Required(), fields.MaxLength(50))).
	Field("last_name", fields.String(fields.Required(), fields.MaxLength(50))).
	Field("age", fields.Int(fields.MinInt(0), fields.MaxInt(150))).
	Field("balance", fields.Decimal(fields.MinDecimal("0"))).
	Field("active", fields.Boolean(fields.Default(true))).
	Field("roles", fields.List(fields.String(fields.Choices("user", "admin")), fields.MinItems(1))).
	Field("address", document.Embedded(address, fields.Required())).
	Field("bio", fields.String(fields.MaxLength(500))).
	Strict().
	MustBuild()

func simpleRecord() document.Record {
	return document.Record{"name": "John Doe", "email": "john@example.com", "age": 30}
}

func mediumRecord() document.Record {
	return document.Record{
		"username":   "johndoe",
		"email":      "john@example.com",
		"first_name": "John",
		"last_name":  "Doe",
		"age":        30,
		"balance":    "120.50",
		"roles":      []string{"user", "admin"},
		"address": document.Record{
			"street":  "123 Main St",
			"city":    "New York",
			"state":   "NY",
			"zip":     "10001",
			"country": "US",
		},
		"bio": "Software engineer",
	}
}

// ============================================================================
// Benchmarks: Validation
// ============================================================================

func BenchmarkValidate_Simple(b *testing.B) {
	rec := simpleRecord()

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		if err := simpleUser.Validate(rec); err != nil {
			b.Fatalf("unexpected validation error: %v", err)
		}
	}
}

func BenchmarkValidate_Medium(b *testing.B) {
	rec := mediumUser.ApplyDefaults(mediumRecord())

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		if err := mediumUser.Validate(rec); err != nil {
			b.Fatalf("unexpected validation error: %v", err)
		}
	}
}

func BenchmarkValidate_Invalid(b *testing.B) {
	rec := document.Record{"name": "", "email": "not-an-email", "age": -1}

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		if err := simpleUser.Validate(rec); err == nil {
			b.Fatal("expected validation errors")
		}
	}
}

// ============================================================================
// Benchmarks: Field Types
// ============================================================================

func BenchmarkField_Email(b *testing.B) {
	f := fields.Email()

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		if ok, err := f.Validate("john.doe+test@example.com"); !ok || err != nil {
			b.Fatalf("Validate() = %v, %v", ok, err)
		}
	}
}

func BenchmarkField_Pattern(b *testing.B) {
	f := fields.String(fields.Pattern(`[A-Z]{3}-\d{4}`))

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		if ok, err := f.Validate("ABC-1234"); !ok || err != nil {
			b.Fatalf("Validate() = %v, %v", ok, err)
		}
	}
}

func BenchmarkField_Decimal(b *testing.B) {
	f := fields.Decimal(fields.MinDecimal("0"), fields.MaxDecimal("1000000"))

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		if ok, err := f.Validate("9999.99"); !ok || err != nil {
			b.Fatalf("Validate() = %v, %v", ok, err)
		}
	}
}

func BenchmarkField_List(b *testing.B) {
	f := fields.List(fields.Int(fields.MinInt(0)), fields.MaxItems(100))
	items := make([]int, 50)
	for i := range items {
		items[i] = i
	}

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		if ok, err := f.Validate(items); !ok || err != nil {
			b.Fatalf("Validate() = %v, %v", ok, err)
		}
	}
}
