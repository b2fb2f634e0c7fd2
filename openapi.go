package apiroute

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/bjaus/apiroute/schema"
)

// OpenAPISpec is the top-level OpenAPI 3.0 document.
type OpenAPISpec struct {
	OpenAPI    string              `json:"openapi" yaml:"openapi"`
	Info       OpenAPIInfo         `json:"info" yaml:"info"`
	Servers    []Server            `json:"servers,omitempty" yaml:"servers,omitempty"`
	Paths      map[string]PathItem `json:"paths" yaml:"paths"`
	Components Components          `json:"components" yaml:"components"`
}

// OpenAPIInfo holds API metadata.
type OpenAPIInfo struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Version     string `json:"version" yaml:"version"`
}

// Server describes an API server.
type Server struct {
	URL         string `json:"url" yaml:"url"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Components holds reusable schemas and security schemes.
type Components struct {
	Schemas         map[string]JSONSchema     `json:"schemas" yaml:"schemas"`
	SecuritySchemes map[string]SecurityScheme `json:"securitySchemes" yaml:"securitySchemes"`
}

// SecurityScheme describes an authentication mechanism.
type SecurityScheme struct {
	Type         string `json:"type" yaml:"type"`
	Scheme       string `json:"scheme,omitempty" yaml:"scheme,omitempty"`
	BearerFormat string `json:"bearerFormat,omitempty" yaml:"bearerFormat,omitempty"`
	Name         string `json:"name,omitempty" yaml:"name,omitempty"`
	In           string `json:"in,omitempty" yaml:"in,omitempty"`
}

// PathItem maps lower-case HTTP methods to operations.
type PathItem map[string]Operation

// Operation describes a single API operation on a path.
type Operation struct {
	Summary     string        `json:"summary,omitempty" yaml:"summary,omitempty"`
	Tags        []string      `json:"tags,omitempty" yaml:"tags,omitempty"`
	OperationID string        `json:"operationId,omitempty" yaml:"operationId,omitempty"`
	Parameters  []Parameter   `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	RequestBody *RequestBody  `json:"requestBody,omitempty" yaml:"requestBody,omitempty"`
	Responses   OperationResp `json:"responses" yaml:"responses"`
}

// Parameter describes a single operation parameter.
type Parameter struct {
	Name        string     `json:"name" yaml:"name"`
	In          string     `json:"in" yaml:"in"`
	Description string     `json:"description,omitempty" yaml:"description,omitempty"`
	Required    bool       `json:"required,omitempty" yaml:"required,omitempty"`
	Schema      JSONSchema `json:"schema" yaml:"schema"`
}

// RequestBody describes the request body.
type RequestBody struct {
	Required bool                `json:"required" yaml:"required"`
	Content  map[string]MediaObj `json:"content" yaml:"content"`
}

// MediaObj is a media type object with an optional schema.
type MediaObj struct {
	Schema *JSONSchema `json:"schema,omitempty" yaml:"schema,omitempty"`
}

// OperationResp maps HTTP status codes to response objects.
type OperationResp map[string]ResponseObj

// ResponseObj describes a single response.
type ResponseObj struct {
	Description string `json:"description" yaml:"description"`
}

type docConfig struct {
	title       string
	version     string
	description string
	tag         string
	servers     []Server
	security    map[string]SecurityScheme
}

// DocOption configures Generate.
type DocOption func(*docConfig)

// WithTitle sets the API title.
func WithTitle(title string) DocOption {
	return func(c *docConfig) {
		c.title = title
	}
}

// WithVersion sets the API version.
func WithVersion(version string) DocOption {
	return func(c *docConfig) {
		c.version = version
	}
}

// WithDescription sets the API description.
func WithDescription(desc string) DocOption {
	return func(c *docConfig) {
		c.description = desc
	}
}

// WithTag sets the tag applied to every operation. Defaults to "General".
func WithTag(tag string) DocOption {
	return func(c *docConfig) {
		c.tag = tag
	}
}

// WithServers sets the servers array.
func WithServers(servers ...Server) DocOption {
	return func(c *docConfig) {
		c.servers = append(c.servers, servers...)
	}
}

// WithSecurityScheme adds a named security scheme next to the default
// bearerAuth scheme.
func WithSecurityScheme(name string, scheme SecurityScheme) DocOption {
	return func(c *docConfig) {
		c.security[name] = scheme
	}
}

// Generate builds an OpenAPI document from the registry and the schema
// catalogue. Every catalogue schema becomes a component schema. Descriptors
// Bind would reject are errors here too; so is a second descriptor for the
// same method and path.
func Generate(reg *Registry, cat *schema.Catalogue, opts ...DocOption) (*OpenAPISpec, error) {
	cfg := &docConfig{
		title:   "API",
		version: "1.0.0",
		tag:     "General",
		security: map[string]SecurityScheme{
			"bearerAuth": {Type: "http", Scheme: "bearer"},
		},
	}
	for _, opt := range opts {
		opt(cfg)
	}

	spec := &OpenAPISpec{
		OpenAPI: "3.0.0",
		Info: OpenAPIInfo{
			Title:       cfg.title,
			Description: cfg.description,
			Version:     cfg.version,
		},
		Servers: cfg.servers,
		Paths:   make(map[string]PathItem),
		Components: Components{
			Schemas:         make(map[string]JSONSchema),
			SecuritySchemes: cfg.security,
		},
	}

	for _, s := range cat.All() {
		spec.Components.Schemas[s.Name] = objectSchema(s)
	}

	for _, d := range reg.All() {
		if err := checkDescriptor(d); err != nil {
			return nil, err
		}

		path := toOpenAPIPath(d.Path)
		method := strings.ToLower(d.Method)

		item := spec.Paths[path]
		if item == nil {
			item = make(PathItem)
			spec.Paths[path] = item
		}
		if _, dup := item[method]; dup {
			return nil, fmt.Errorf("%w: %s %s", ErrDuplicateOperation, d.Method, d.Path)
		}
		item[method] = buildOperation(d, cat, cfg.tag)
	}

	return spec, nil
}

// buildOperation creates an Operation from a descriptor. Schema names that
// are not in the catalogue contribute nothing.
func buildOperation(d *Descriptor, cat *schema.Catalogue, tag string) Operation {
	op := Operation{
		Summary:     d.Summary,
		Tags:        []string{tag},
		OperationID: d.HandlerID,
		Responses: OperationResp{
			statusKey(http.StatusOK):         {Description: "Successful operation"},
			statusKey(http.StatusBadRequest): {Description: "Validation error"},
		},
	}

	if s, ok := lookupSchema(cat, d.ParamsSchema); ok {
		for _, f := range s.Fields {
			op.Parameters = append(op.Parameters, Parameter{
				Name:        f.Name,
				In:          "path",
				Description: f.Description,
				Required:    true,
				Schema:      fieldSchema(f),
			})
		}
	}

	if s, ok := lookupSchema(cat, d.QuerySchema); ok {
		for _, f := range s.Fields {
			op.Parameters = append(op.Parameters, Parameter{
				Name:        f.Name,
				In:          "query",
				Description: f.Description,
				Required:    f.Required,
				Schema:      fieldSchema(f),
			})
		}
	}

	if _, ok := lookupSchema(cat, d.BodySchema); ok {
		op.RequestBody = &RequestBody{
			Required: true,
			Content: map[string]MediaObj{
				"application/json": {Schema: &JSONSchema{Ref: componentRef(d.BodySchema)}},
			},
		}
	}

	return op
}

func lookupSchema(cat *schema.Catalogue, name string) (*schema.Schema, bool) {
	if name == "" {
		return nil, false
	}
	return cat.Lookup(name)
}

func statusKey(code int) string {
	return strconv.Itoa(code)
}
