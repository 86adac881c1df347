package spec

import "strings"

// Operation descriptors produced by the walker and consumed by emitters.

type HttpMethod string

const (
	GET     HttpMethod = "get"
	POST    HttpMethod = "post"
	PUT     HttpMethod = "put"
	PATCH   HttpMethod = "patch"
	DELETE  HttpMethod = "delete"
	HEAD    HttpMethod = "head"
	OPTIONS HttpMethod = "options"
	TRACE   HttpMethod = "trace"
)

// MethodOrder is the order in which the methods of one path item are visited.
var MethodOrder = []HttpMethod{GET, POST, PUT, PATCH, DELETE, HEAD, OPTIONS, TRACE}

// ParseMethod maps a case-insensitive method name to an HttpMethod.
func ParseMethod(s string) (HttpMethod, bool) {
	m := HttpMethod(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range MethodOrder {
		if known == m {
			return m, true
		}
	}
	return "", false
}

// Operation describes one (path, method) pair. It is built while walking the
// description and discarded once its artifacts are emitted.
type Operation struct {
	ID          string
	Method      HttpMethod
	Path        string
	Tag         string
	Summary     string
	Description string
	Deprecated  bool
	PathParams  []Param
	QueryParams []Param
	Body        *Body
	Responses   []Response
	// Skipped lists responses dropped because processing them failed.
	Skipped []SkippedResponse
}

// Param is a path or query parameter.
type Param struct {
	Name        string
	Type        string // integer, number, string, boolean, array
	Format      string
	ItemType    string // element type when Type is array
	GoType      string
	Required    bool
	Default     any
	Description string
}

// Body is the request body of an operation.
type Body struct {
	ContentType string
	Required    bool
	Schema      *Schema
	// Model is the registry name of the body model, or "" when the body
	// does not produce a named model (arrays of primitives, open maps).
	Model string
	// GoType is the Go type expression used in generated code.
	GoType string
}

// Response is one declared status code.
type Response struct {
	StatusCode  int
	Description string
	ContentType string // "" for content-less responses
	Schema      *Schema
	Model       string
	GoType      string
}

// HasContent reports whether the response carries a payload.
func (r Response) HasContent() bool { return r.Schema != nil }

// SkippedResponse records a response the walker could not process.
type SkippedResponse struct {
	Status string
	Err    error
}

const (
	ContentTypeJSON      = "application/json"
	ContentTypeMultipart = "multipart/form-data"
)
