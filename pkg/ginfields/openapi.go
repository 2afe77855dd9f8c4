package ginfields

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/deepankarm/docfields/pkg/document"
	"github.com/deepankarm/docfields/pkg/fields"
	"github.com/deepankarm/docfields/pkg/schemagen"
	"github.com/gin-gonic/gin"
	"github.com/untillpro/goutils/logger"
)

// OpenAPIVersion is the version of the generated documents.
const OpenAPIVersion = "3.1.0"

// Document is an OpenAPI document. Only the parts this package fills in are modelled.
type Document struct {
	OpenAPI    string              `json:"openapi"`
	Info       Info                `json:"info"`
	Paths      map[string]PathItem `json:"paths"`
	Components Components          `json:"components"`
}

// PathItem maps lower-case HTTP methods to operations.
type PathItem map[string]*Operation

type Operation struct {
	OperationID string              `json:"operationId,omitempty"`
	Summary     string              `json:"summary,omitempty"`
	Description string              `json:"description,omitempty"`
	Tags        []string            `json:"tags,omitempty"`
	Deprecated  bool                `json:"deprecated,omitempty"`
	Parameters  []Parameter         `json:"parameters,omitempty"`
	RequestBody *RequestBody        `json:"requestBody,omitempty"`
	Responses   map[string]Response `json:"responses"`
}

type Parameter struct {
	Name     string         `json:"name"`
	In       string         `json:"in"`
	Required bool           `json:"required"`
	Schema   map[string]any `json:"schema"`
}

type RequestBody struct {
	Required bool                 `json:"required"`
	Content  map[string]MediaType `json:"content"`
}

type Response struct {
	Description string               `json:"description"`
	Content     map[string]MediaType `json:"content,omitempty"`
}

type MediaType struct {
	Schema   map[string]any `json:"schema"`
	Examples map[string]any `json:"examples,omitempty"`
}

type Components struct {
	Schemas map[string]map[string]any `json:"schemas"`
}

// violation and failure describe the Failure body answered by Bind.
var violation = document.New("Violation").
	Field("loc", fields.List(fields.String(), fields.Required())).
	Field("message", fields.String(fields.Required())).
	Field("type", fields.String(fields.Required(), fields.Choices(
		string(document.ErrorTypeRequired),
		string(document.ErrorTypeConstraint),
		string(document.ErrorTypeUnknownField),
		string(document.ErrorTypeJSONDecode),
		string(document.ErrorTypeStore),
	))).
	MustBuild()

var failure = document.New("ValidationFailure").
	Field("error", fields.String(fields.Required())).
	Field("details", fields.List(document.Embedded(violation))).
	MustBuild()

// OpenAPIHandler returns a handler that serves the OpenAPI document
func (api *API) OpenAPIHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, api.GenerateOpenAPI())
	}
}

// MarshalOpenAPI returns the OpenAPI document as indented JSON
func (api *API) MarshalOpenAPI() ([]byte, error) {
	return json.MarshalIndent(api.GenerateOpenAPI(), "", "  ")
}

// GenerateOpenAPI builds the OpenAPI document. Every schema used by an
// endpoint is listed once under components and referenced by name.
func (api *API) GenerateOpenAPI() *Document {
	api.mu.RLock()
	defer api.mu.RUnlock()

	doc := &Document{
		OpenAPI:    OpenAPIVersion,
		Info:       api.info,
		Paths:      make(map[string]PathItem),
		Components: Components{Schemas: make(map[string]map[string]any)},
	}
	for _, endpoint := range api.endpoints {
		path := ConvertGinPathToOpenAPI(endpoint.Path)
		item, ok := doc.Paths[path]
		if !ok {
			item = make(PathItem)
			doc.Paths[path] = item
		}
		item[strings.ToLower(endpoint.Method)] = doc.operation(endpoint, path)
	}
	return doc
}

func (doc *Document) operation(endpoint *EndpointSpec, path string) *Operation {
	op := &Operation{
		OperationID: endpoint.OperationID,
		Summary:     endpoint.Summary,
		Description: endpoint.Description,
		Tags:        endpoint.Tags,
		Deprecated:  endpoint.Deprecated,
		Responses:   make(map[string]Response, len(endpoint.Responses)+1),
	}
	if op.OperationID == "" {
		op.OperationID = operationID(endpoint.Method, path)
	}
	for _, name := range ExtractPathParameters(path) {
		op.Parameters = append(op.Parameters, Parameter{
			Name:     name,
			In:       "path",
			Required: true,
			Schema:   map[string]any{"type": "string"},
		})
	}

	if endpoint.Request != nil {
		op.RequestBody = &RequestBody{
			Required: true,
			Content:  doc.content(endpoint.Request, endpoint.RequestExamples),
		}
	}
	for status, resp := range endpoint.Responses {
		r := Response{Description: resp.Description}
		if resp.Schema != nil {
			r.Content = doc.content(resp.Schema, resp.Examples)
		}
		op.Responses[strconv.Itoa(status)] = r
	}
	if endpoint.Request != nil && !endpoint.SkipValidation {
		code := strconv.Itoa(http.StatusBadRequest)
		if _, ok := op.Responses[code]; !ok {
			op.Responses[code] = Response{
				Description: "validation failed",
				Content:     doc.content(failure, nil),
			}
		}
	}
	return op
}

// content registers s under components and returns a JSON media type
// referencing it.
func (doc *Document) content(s *document.Schema, examples map[string]any) map[string]MediaType {
	if _, ok := doc.Components.Schemas[s.Name()]; !ok {
		m, err := schemagen.GenerateMap(s)
		if err != nil {
			logger.Error("schema", s.Name(), "cannot be described:", err)
			m = map[string]any{"type": "object"}
		}
		delete(m, "$schema")
		doc.Components.Schemas[s.Name()] = m
	}
	return map[string]MediaType{
		"application/json": {
			Schema:   map[string]any{"$ref": "#/components/schemas/" + s.Name()},
			Examples: examples,
		},
	}
}

// operationID derives an id such as "get_users_id" from the method and path.
func operationID(method, path string) string {
	parts := []string{strings.ToLower(method)}
	for _, seg := range strings.Split(path, "/") {
		seg = strings.Trim(seg, "{}")
		if seg != "" {
			parts = append(parts, seg)
		}
	}
	return strings.Join(parts, "_")
}

// ConvertGinPathToOpenAPI rewrites gin parameters as OpenAPI templates:
// /users/:id becomes /users/{id} and /files/*path becomes /files/{path}.
func ConvertGinPathToOpenAPI(ginPath string) string {
	segments := strings.Split(ginPath, "/")
	for i, seg := range segments {
		if strings.HasPrefix(seg, ":") || strings.HasPrefix(seg, "*") {
			segments[i] = "{" + seg[1:] + "}"
		}
	}
	return strings.Join(segments, "/")
}

// ExtractPathParameters lists the template names of an OpenAPI path in order.
func ExtractPathParameters(path string) []string {
	var params []string
	for _, seg := range strings.Split(path, "/") {
		if strings.HasPrefix(seg, "{") && strings.HasSuffix(seg, "}") {
			params = append(params, seg[1:len(seg)-1])
		}
	}
	return params
}
