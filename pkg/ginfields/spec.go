// Package ginfields binds gin request bodies to records validated by a
// document schema, and serves the OpenAPI description of the bound endpoints.
package ginfields

import (
	"sync"

	"github.com/deepankarm/docfields/pkg/document"
	"github.com/gin-gonic/gin"
)

// API collects the endpoints registered through it.
type API struct {
	mu        sync.RWMutex
	endpoints map[string]*EndpointSpec // "METHOD /path"
	info      Info
}

// Info is the info object of the generated document.
type Info struct {
	Title       string `json:"title"`
	Version     string `json:"version"`
	Description string `json:"description,omitempty"`
}

type EndpointSpec struct {
	Method         string
	Path           string
	OperationID    string
	Summary        string
	Description    string
	Tags           []string
	Deprecated     bool
	SkipValidation bool

	Request         *document.Schema
	Responses       map[int]ResponseSpec
	RequestExamples map[string]any
}

type ResponseSpec struct {
	Schema      *document.Schema
	Description string
	Examples    map[string]any
}

// New creates a new API instance
func New(title, version string, description ...string) *API {
	api := &API{
		endpoints: make(map[string]*EndpointSpec),
		info:      Info{Title: title, Version: version},
	}
	if len(description) > 0 {
		api.info.Description = description[0]
	}
	return api
}

// Endpoint registers an endpoint and returns the middleware validating its
// request body, if one was declared with WithRequest.
func (api *API) Endpoint(method, path string, opts ...EndpointOption) gin.HandlerFunc {
	spec := &EndpointSpec{
		Method:    method,
		Path:      path,
		Responses: make(map[int]ResponseSpec),
	}
	for _, opt := range opts {
		opt(spec)
	}

	api.mu.Lock()
	api.endpoints[method+" "+path] = spec
	api.mu.Unlock()

	if spec.SkipValidation || spec.Request == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return Bind(spec.Request)
}
