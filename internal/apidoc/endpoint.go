// Package apidoc describes the HTTP surface as static endpoint descriptors and
// renders them into the OpenAPI document served at /schema/ and /swagger/.
package apidoc

import (
	"net/http"
	"sort"
	"strings"
)

// Envelope schema names referenced by derived error responses.
const (
	SchemaValidationError      = "ValidationError"
	SchemaUnauthenticatedError = "UnauthenticatedError"
	SchemaForbiddenError       = "ForbiddenError"
	SchemaNotFoundError        = "NotFoundError"
)

// Response documents one status code of an operation.
type Response struct {
	Description string
	// Schema names a component schema; empty means no body.
	Schema string
	// Paginated wraps Schema in the page object.
	Paginated bool
}

// Param documents a query or path parameter.
type Param struct {
	Name        string
	In          string
	Description string
	Type        string
	Required    bool
}

// Endpoint is the static description of one operation.
type Endpoint struct {
	Method       string
	Path         string
	OperationID  string
	Tag          string
	Description  string
	RequiresAuth bool
	// IsList marks collection reads, which never produce 404.
	IsList      bool
	Params      []Param
	RequestBody string
	// Declared holds the explicitly documented responses, success included.
	Declared map[int]Response
}

// HasPathID reports whether the endpoint addresses a record through a path
// parameter.
func (e Endpoint) HasPathID() bool {
	for _, p := range e.Params {
		if p.In == "path" {
			return true
		}
	}
	return strings.Contains(e.Path, "{")
}

// DeriveErrorCodes computes the error statuses an endpoint can produce from
// its static properties. Endpoints that already declare any 4xx response keep
// exactly what they declare.
func DeriveErrorCodes(e Endpoint) []int {
	var codes []int
	for code := range e.Declared {
		if code >= http.StatusBadRequest && code < http.StatusInternalServerError {
			codes = append(codes, code)
		}
	}
	if len(codes) > 0 {
		sort.Ints(codes)
		return codes
	}

	if e.Method != http.MethodGet {
		codes = append(codes, http.StatusBadRequest)
	}
	if e.RequiresAuth {
		codes = append(codes, http.StatusUnauthorized, http.StatusForbidden)
	}
	if !(e.Method == http.MethodGet && e.IsList) && e.HasPathID() {
		codes = append(codes, http.StatusNotFound)
	}
	return codes
}

var errorResponses = map[int]Response{
	http.StatusBadRequest:   {Description: "Validation error", Schema: SchemaValidationError},
	http.StatusUnauthorized: {Description: "Authentication credentials missing or invalid", Schema: SchemaUnauthenticatedError},
	http.StatusForbidden:    {Description: "Permission denied", Schema: SchemaForbiddenError},
	http.StatusNotFound:     {Description: "Not found", Schema: SchemaNotFoundError},
}

// Responses merges the declared responses with the derived error responses.
// A declared status is never replaced.
func Responses(e Endpoint) map[int]Response {
	out := make(map[int]Response, len(e.Declared)+4)
	for code, resp := range e.Declared {
		out[code] = resp
	}
	for _, code := range DeriveErrorCodes(e) {
		if _, ok := out[code]; ok {
			continue
		}
		out[code] = errorResponses[code]
	}
	return out
}
