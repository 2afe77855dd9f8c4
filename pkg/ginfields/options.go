package ginfields

import "github.com/deepankarm/docfields/pkg/document"

// EndpointOption configures an endpoint spec
type EndpointOption func(*EndpointSpec)

// WithSummary sets the endpoint summary
func WithSummary(s string) EndpointOption {
	return func(spec *EndpointSpec) {
		spec.Summary = s
	}
}

// WithDescription sets the endpoint description
func WithDescription(d string) EndpointOption {
	return func(spec *EndpointSpec) {
		spec.Description = d
	}
}

// WithTags adds tags to the endpoint
func WithTags(tags ...string) EndpointOption {
	return func(spec *EndpointSpec) {
		spec.Tags = append(spec.Tags, tags...)
	}
}

// WithRequest sets the schema request bodies are validated against
func WithRequest(schema *document.Schema) EndpointOption {
	return func(spec *EndpointSpec) {
		spec.Request = schema
	}
}

// WithResponse documents a response body for a status code. A nil schema
// documents a response without a body.
func WithResponse(statusCode int, schema *document.Schema, description ...string) EndpointOption {
	desc := ""
	if len(description) > 0 {
		desc = description[0]
	}
	return func(spec *EndpointSpec) {
		if spec.Responses == nil {
			spec.Responses = make(map[int]ResponseSpec)
		}
		resp := spec.Responses[statusCode]
		resp.Schema = schema
		resp.Description = desc
		spec.Responses[statusCode] = resp
	}
}

// WithSkipValidation documents the request schema without enforcing it
func WithSkipValidation() EndpointOption {
	return func(spec *EndpointSpec) {
		spec.SkipValidation = true
	}
}

// WithDeprecated marks the endpoint as deprecated
func WithDeprecated() EndpointOption {
	return func(spec *EndpointSpec) {
		spec.Deprecated = true
	}
}

// WithRequestExamples adds examples for the request body
func WithRequestExamples(examples map[string]any) EndpointOption {
	return func(spec *EndpointSpec) {
		spec.RequestExamples = examples
	}
}

// WithResponseExamples adds examples for a specific response status code
func WithResponseExamples(statusCode int, examples map[string]any) EndpointOption {
	return func(spec *EndpointSpec) {
		if spec.Responses == nil {
			spec.Responses = make(map[int]ResponseSpec)
		}
		resp := spec.Responses[statusCode]
		resp.Examples = examples
		spec.Responses[statusCode] = resp
	}
}

// WithOperationID overrides the derived operation id
func WithOperationID(id string) EndpointOption {
	return func(spec *EndpointSpec) {
		spec.OperationID = id
	}
}
