package document

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"time"

	"github.com/deepankarm/docfields/pkg/fields"
)

// DecodeJSON parses a JSON object into a Record.
//
// JSON has no integer, date or binary types, so values are converted to the
// Go types the declared fields accept: integers to int64, RFC 3339 text to
// time.Time for date-time fields, base64 text to []byte for binary fields and
// number literals to exact decimal text for decimal fields. Values that cannot
// be converted are kept as decoded, for Validate to reject.
//
// Malformed input, a top-level null and data after the object are reported
// as ValidationErrors of type ErrorTypeJSONDecode.
func (s *Schema) DecodeJSON(data []byte) (Record, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, jsonDecodeError(err.Error())
	}
	if raw == nil {
		return nil, jsonDecodeError("expected a JSON object, got null")
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, jsonDecodeError("unexpected data after the JSON object")
	}
	return s.fromJSON(raw), nil
}

func jsonDecodeError(msg string) ValidationErrors {
	return ValidationErrors{{
		Loc:     []string{},
		Message: msg,
		Type:    ErrorTypeJSONDecode,
	}}
}

func (s *Schema) fromJSON(raw map[string]any) Record {
	rec := make(Record, len(raw))
	for key, value := range raw {
		if f, ok := s.fields.Get(key); ok {
			rec[key] = jsonValue(f, value)
		} else {
			rec[key] = plainJSON(value)
		}
	}
	return rec
}

func jsonValue(f fields.Field, value any) any {
	switch f := f.(type) {
	case *EmbeddedField:
		if m, ok := value.(map[string]any); ok && f.schema != nil {
			return f.schema.fromJSON(m)
		}
	case *fields.ListField:
		if items, ok := value.([]any); ok && f.Item() != nil {
			out := make([]any, len(items))
			for i, item := range items {
				out[i] = jsonValue(f.Item(), item)
			}
			return out
		}
	case *fields.DateTimeField:
		if s, ok := value.(string); ok {
			if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
				return t
			}
		}
	case *fields.BinaryField:
		if s, ok := value.(string); ok {
			if b, err := base64.StdEncoding.DecodeString(s); err == nil {
				return b
			}
		}
	case *fields.DecimalField:
		if n, ok := value.(json.Number); ok {
			return n.String()
		}
	}
	return plainJSON(value)
}

// plainJSON replaces json.Number with int64 where exact, float64 otherwise.
func plainJSON(value any) any {
	switch v := value.(type) {
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return n
		}
		if f, err := v.Float64(); err == nil {
			return f
		}
		return v.String()
	case map[string]any:
		for k, item := range v {
			v[k] = plainJSON(item)
		}
		return v
	case []any:
		for i, item := range v {
			v[i] = plainJSON(item)
		}
		return v
	}
	return value
}
