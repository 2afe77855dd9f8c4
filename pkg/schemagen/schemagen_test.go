package schemagen_test

import (
	"encoding/json"
	"regexp"
	"strings"
	"testing"

	"github.com/deepankarm/docfields/pkg/document"
	"github.com/deepankarm/docfields/pkg/fields"
	"github.com/deepankarm/docfields/pkg/schemagen"
	"github.com/google/go-cmp/cmp"
	"github.com/invopop/jsonschema"
)

func productSchema() *document.Schema {
	dims := document.New("dims").
		Field("w", fields.Float(fields.MinFloat(0))).
		Field("h", fields.Float(fields.MinFloat(0))).
		Strict().
		MustBuild()
	return document.New("products").
		Field("_id", fields.ObjectID()).
		Field("name", fields.String(fields.Required(), fields.Description("Display name"), fields.MinLength(2), fields.MaxLength(50))).
		Field("status", fields.String(fields.Choices("draft", "live"), fields.Default("draft"))).
		Field("stock", fields.Int(fields.MinInt(0), fields.MaxInt(1000))).
		Field("price", fields.Decimal(fields.MinDecimal("0.01"))).
		Field("sku", fields.UUID()).
		Field("brand", fields.Reference("brands")).
		Field("tags", fields.List(fields.String(fields.MaxLength(10)), fields.MaxItems(5))).
		Field("dims", document.Embedded(dims, fields.Required())).
		Field("image", fields.Binary()).
		Field("extra", fields.JSON()).
		Field("launched", fields.DateTime()).
		Field("active", fields.Boolean()).
		Strict().
		MustBuild()
}

func TestGenerate(t *testing.T) {
	s := schemagen.Generate(productSchema())

	if s.Type != "object" || s.Title != "products" || s.Version != schemagen.Draft {
		t.Errorf("root = {type: %q, title: %q, $schema: %q}", s.Type, s.Title, s.Version)
	}
	if diff := cmp.Diff([]string{"name", "dims"}, s.Required); diff != "" {
		t.Errorf("required mismatch (-want +got):\n%s", diff)
	}
	if s.AdditionalProperties != jsonschema.FalseSchema {
		t.Error("strict schemas should forbid additional properties")
	}

	tests := []struct {
		field  string
		typ    string
		format string
	}{
		{"_id", "string", ""},
		{"name", "string", ""},
		{"stock", "integer", ""},
		{"price", "number", ""},
		{"sku", "string", "uuid"},
		{"brand", "string", ""},
		{"tags", "array", ""},
		{"dims", "object", ""},
		{"image", "string", ""},
		{"extra", "", ""},
		{"launched", "string", "date-time"},
		{"active", "boolean", ""},
	}
	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			prop, ok := s.Properties.Get(tt.field)
			if !ok {
				t.Fatalf("property %q missing", tt.field)
			}
			if prop.Type != tt.typ {
				t.Errorf("type = %q, want %q", prop.Type, tt.typ)
			}
			if prop.Format != tt.format {
				t.Errorf("format = %q, want %q", prop.Format, tt.format)
			}
		})
	}
}

func TestGenerate_Constraints(t *testing.T) {
	s := schemagen.Generate(productSchema())
	prop := func(name string) *jsonschema.Schema {
		p, _ := s.Properties.Get(name)
		return p
	}

	name := prop("name")
	if name.Description != "Display name" || *name.MinLength != 2 || *name.MaxLength != 50 {
		t.Errorf("name = %+v", name)
	}

	status := prop("status")
	if diff := cmp.Diff([]any{"draft", "live"}, status.Enum); diff != "" {
		t.Errorf("enum mismatch (-want +got):\n%s", diff)
	}
	if status.Default != "draft" {
		t.Errorf("default = %v", status.Default)
	}

	stock := prop("stock")
	if stock.Minimum != "0" || stock.Maximum != "1000" {
		t.Errorf("stock bounds = [%s, %s]", stock.Minimum, stock.Maximum)
	}
	if prop("price").Minimum != "0.01" {
		t.Errorf("price minimum = %s", prop("price").Minimum)
	}

	if prop("_id").Pattern != "^[0-9a-fA-F]{24}$" {
		t.Errorf("_id pattern = %q", prop("_id").Pattern)
	}
	if prop("brand").Extras["x-reference"] != "brands" {
		t.Errorf("brand extras = %v", prop("brand").Extras)
	}
	if prop("image").ContentEncoding != "base64" {
		t.Errorf("image contentEncoding = %q", prop("image").ContentEncoding)
	}

	tags := prop("tags")
	if *tags.MaxItems != 5 || tags.Items == nil || tags.Items.Type != "string" || *tags.Items.MaxLength != 10 {
		t.Errorf("tags = %+v", tags)
	}

	dims := prop("dims")
	if dims.Properties.Len() != 2 || dims.AdditionalProperties != jsonschema.FalseSchema {
		t.Errorf("dims = %+v", dims)
	}
	w, _ := dims.Properties.Get("w")
	if w.Type != "number" || w.Minimum != "0" {
		t.Errorf("dims.w = %+v", w)
	}
}

func TestGenerate_PatternIsAnchored(t *testing.T) {
	f := fields.String(fields.Pattern("[a-z0-9]+"))
	s := schemagen.Generate(document.New("codes").Field("code", f).MustBuild())
	prop, _ := s.Properties.Get("code")

	re, err := regexp.Compile(prop.Pattern)
	if err != nil {
		t.Fatalf("pattern %q does not compile: %v", prop.Pattern, err)
	}
	for _, value := range []string{"test1", "Test1", "test1 TRAILING", " test1"} {
		ok, err := f.Validate(value)
		if err != nil {
			t.Fatalf("Validate(%q) error: %v", value, err)
		}
		if got := re.MatchString(value); got != ok {
			t.Errorf("schema pattern %q matches %q = %v, field accepts = %v", prop.Pattern, value, got, ok)
		}
	}
	if re.MatchString("Test1") {
		t.Errorf("schema pattern %q should reject %q", prop.Pattern, "Test1")
	}
}

func TestGenerateJSON_PreservesOrder(t *testing.T) {
	out, err := schemagen.GenerateJSON(productSchema())
	if err != nil {
		t.Fatal(err)
	}

	last := -1
	for _, name := range []string{`"_id"`, `"name"`, `"status"`, `"stock"`, `"launched"`, `"active"`} {
		i := strings.Index(out, name)
		if i <= last {
			t.Fatalf("property %s out of declaration order", name)
		}
		last = i
	}
	if !json.Valid([]byte(out)) {
		t.Error("output is not valid JSON")
	}
}

func TestGenerateWithOptions(t *testing.T) {
	s := schemagen.GenerateWithOptions(productSchema(), schemagen.Options{
		Title:       "Product",
		Description: "A catalogue entry",
		ID:          "https://example.com/product.json",
	})
	if s.Title != "Product" || s.Description != "A catalogue entry" || s.ID != "https://example.com/product.json" {
		t.Errorf("root = %+v", s)
	}
}

func TestGenerateMap(t *testing.T) {
	m, err := schemagen.GenerateMap(productSchema())
	if err != nil {
		t.Fatal(err)
	}
	props, ok := m["properties"].(map[string]any)
	if !ok {
		t.Fatalf("properties = %T", m["properties"])
	}
	brand := props["brand"].(map[string]any)
	if brand["x-reference"] != "brands" {
		t.Errorf("brand = %v", brand)
	}
	if m["additionalProperties"] != false {
		t.Errorf("additionalProperties = %v", m["additionalProperties"])
	}
}
