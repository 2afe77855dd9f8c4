package schemagen

import (
	"encoding/json"
	"reflect"
	"strconv"

	"github.com/deepankarm/docfields/pkg/fields"
	"github.com/invopop/jsonschema"
)

// keywords copies each constraint onto the matching JSON Schema keyword.
// Values of an unexpected type are skipped.
var keywords = map[string]func(prop *jsonschema.Schema, v any){
	fields.ConstraintDescription: func(prop *jsonschema.Schema, v any) {
		prop.Description, _ = v.(string)
	},
	fields.ConstraintFormat: func(prop *jsonschema.Schema, v any) {
		prop.Format, _ = v.(string)
	},
	fields.ConstraintPattern: func(prop *jsonschema.Schema, v any) {
		prop.Pattern, _ = v.(string)
	},
	fields.ConstraintContentEncoding: func(prop *jsonschema.Schema, v any) {
		prop.ContentEncoding, _ = v.(string)
	},
	fields.ConstraintDefault: func(prop *jsonschema.Schema, v any) {
		prop.Default = v
	},
	fields.ConstraintMinimum: func(prop *jsonschema.Schema, v any) {
		prop.Minimum = jsonNumber(v)
	},
	fields.ConstraintMaximum: func(prop *jsonschema.Schema, v any) {
		prop.Maximum = jsonNumber(v)
	},
	fields.ConstraintMinLength: func(prop *jsonschema.Schema, v any) {
		prop.MinLength = count(v)
	},
	fields.ConstraintMaxLength: func(prop *jsonschema.Schema, v any) {
		prop.MaxLength = count(v)
	},
	fields.ConstraintMinItems: func(prop *jsonschema.Schema, v any) {
		prop.MinItems = count(v)
	},
	fields.ConstraintMaxItems: func(prop *jsonschema.Schema, v any) {
		prop.MaxItems = count(v)
	},
	fields.ConstraintEnum: func(prop *jsonschema.Schema, v any) {
		rv := reflect.ValueOf(v)
		if rv.Kind() != reflect.Slice {
			return
		}
		prop.Enum = make([]any, rv.Len())
		for i := range rv.Len() {
			prop.Enum[i] = rv.Index(i).Interface()
		}
	},
	fields.ConstraintReference: func(prop *jsonschema.Schema, v any) {
		if prop.Extras == nil {
			prop.Extras = make(map[string]any)
		}
		prop.Extras[fields.ConstraintReference] = v
	},
}

func applyConstraints(prop *jsonschema.Schema, constraints map[string]any) {
	for key, v := range constraints {
		if set, ok := keywords[key]; ok {
			set(prop, v)
		}
	}
}

func count(v any) *uint64 {
	n, ok := v.(int)
	if !ok || n < 0 {
		return nil
	}
	u := uint64(n)
	return &u
}

// jsonNumber renders integer, float and decimal-text bounds.
func jsonNumber(v any) json.Number {
	switch n := v.(type) {
	case int:
		return json.Number(strconv.Itoa(n))
	case int64:
		return json.Number(strconv.FormatInt(n, 10))
	case float64:
		return json.Number(strconv.FormatFloat(n, 'g', -1, 64))
	case string:
		return json.Number(n)
	}
	return ""
}
