// Package schemagen generates JSON Schema documents from document schemas.
package schemagen

import (
	"encoding/json"
	"fmt"

	"github.com/deepankarm/docfields/pkg/document"
	"github.com/deepankarm/docfields/pkg/fields"
	"github.com/invopop/jsonschema"
)

// Draft is the JSON Schema dialect of generated documents.
const Draft = "https://json-schema.org/draft/2020-12/schema"

// Options allows customizing schema generation
type Options struct {
	Title       string
	Description string
	// ID sets the "$id" of the generated schema.
	ID string
}

// Generate builds the JSON Schema for records of s. Properties are listed in
// declaration order under their declared names.
func Generate(s *document.Schema) *jsonschema.Schema {
	root := objectSchema(s)
	root.Version = Draft
	root.Title = s.Name()
	return root
}

// GenerateWithOptions generates schema with custom options
func GenerateWithOptions(s *document.Schema, opts Options) *jsonschema.Schema {
	root := Generate(s)
	if opts.Title != "" {
		root.Title = opts.Title
	}
	if opts.Description != "" {
		root.Description = opts.Description
	}
	if opts.ID != "" {
		root.ID = jsonschema.ID(opts.ID)
	}
	return root
}

// GenerateJSON generates JSON Schema as indented JSON text
func GenerateJSON(s *document.Schema) (string, error) {
	data, err := json.MarshalIndent(Generate(s), "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal schema: %w", err)
	}
	return string(data), nil
}

// GenerateMap generates the schema as a generic map, for embedding in
// larger documents such as OpenAPI specs.
func GenerateMap(s *document.Schema) (map[string]any, error) {
	data, err := json.Marshal(Generate(s))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("failed to unmarshal schema: %w", err)
	}
	return out, nil
}

func objectSchema(s *document.Schema) *jsonschema.Schema {
	obj := &jsonschema.Schema{
		Type:       "object",
		Properties: jsonschema.NewProperties(),
	}
	s.Each(func(name string, f fields.Field) {
		obj.Properties.Set(name, fieldSchema(f))
		if f.Required() {
			obj.Required = append(obj.Required, name)
		}
	})
	if s.IsStrict() {
		obj.AdditionalProperties = jsonschema.FalseSchema
	}
	return obj
}

func fieldSchema(f fields.Field) *jsonschema.Schema {
	var prop *jsonschema.Schema
	switch f := f.(type) {
	case *document.EmbeddedField:
		prop = objectSchema(f.Schema())
	case *fields.ListField:
		prop = &jsonschema.Schema{Type: "array", Items: fieldSchema(f.Item())}
	default:
		prop = &jsonschema.Schema{Type: jsonType(f.Kind())}
	}
	applyConstraints(prop, f.Constraints())
	return prop
}

// jsonType maps a field kind to the JSON type of its values on the wire.
// JSON fields accept any value and get no type.
func jsonType(kind string) string {
	switch kind {
	case fields.KindInt:
		return "integer"
	case fields.KindFloat, fields.KindDecimal:
		return "number"
	case fields.KindBoolean:
		return "boolean"
	case fields.KindJSON:
		return ""
	case fields.KindEmbedded:
		return "object"
	case fields.KindList:
		return "array"
	}
	return "string"
}
