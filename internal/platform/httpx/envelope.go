// Package httpx provides the JSON error envelope and HTTP response utilities
// shared by every API endpoint.
package httpx

import (
	"net/http"
	"strings"
)

// ErrorType classifies the failure band of an error response.
type ErrorType string

const (
	ValidationError ErrorType = "validation_error"
	ClientError     ErrorType = "client_error"
	ServerError     ErrorType = "server_error"
)

// NonFieldErrors is the attr used for validation problems not tied to a field.
const NonFieldErrors = "non_field_errors"

// ErrorItem is a single problem record inside an Envelope.
type ErrorItem struct {
	Code   string  `json:"code"`
	Detail string  `json:"detail"`
	Attr   *string `json:"attr"`
}

// Envelope is the body of every non-2xx response.
type Envelope struct {
	Type   ErrorType   `json:"type"`
	Errors []ErrorItem `json:"errors"`
}

// FieldError describes one invalid input field.
type FieldError struct {
	Field  string
	Code   string
	Detail string
}

// FieldErrors is an ordered collection of validation problems. The order is the
// order fields were declared or validated in.
type FieldErrors []FieldError

func (e FieldErrors) Error() string {
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		parts = append(parts, fe.Field+": "+fe.Detail)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Add appends a field problem.
func (e *FieldErrors) Add(field, code, detail string) {
	*e = append(*e, FieldError{Field: field, Code: code, Detail: detail})
}

// Has reports whether field already carries a problem.
func (e FieldErrors) Has(field string) bool {
	for _, fe := range e {
		if fe.Field == field {
			return true
		}
	}
	return false
}

// Err returns nil when no problem was collected.
func (e FieldErrors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

// Invalid builds a single-entry FieldErrors.
func Invalid(field, code, detail string) FieldErrors {
	return FieldErrors{{Field: field, Code: code, Detail: detail}}
}

// APIError is a non-validation failure with a fixed status code.
type APIError struct {
	Status int
	Code   string
	Detail string
}

func (e *APIError) Error() string {
	return e.Code + ": " + e.Detail
}

// NewAPIError constructs an APIError.
func NewAPIError(status int, code, detail string) *APIError {
	return &APIError{Status: status, Code: code, Detail: detail}
}

// Common client and server errors.
var (
	ErrNotAuthenticated = NewAPIError(http.StatusUnauthorized, "not_authenticated", "Authentication credentials were not provided.")
	ErrNotFound         = NewAPIError(http.StatusNotFound, "not_found", "Not found.")
	ErrInvalidPage      = NewAPIError(http.StatusNotFound, "not_found", "Invalid page.")
	ErrThrottled        = NewAPIError(http.StatusTooManyRequests, "throttled", "Request was throttled.")
	ErrBadHost          = NewAPIError(http.StatusBadRequest, "bad_host", "Invalid host header.")
	ErrTimeout          = NewAPIError(http.StatusGatewayTimeout, "timeout", "The request took too long to process.")
	ErrServer           = NewAPIError(http.StatusInternalServerError, "error", "A server error occurred.")
)

// PermissionDenied builds a 403 error carrying a rule message.
func PermissionDenied(detail string) *APIError {
	return NewAPIError(http.StatusForbidden, "permission_denied", detail)
}

// MethodNotAllowed builds a 405 error for method.
func MethodNotAllowed(method string) *APIError {
	return NewAPIError(http.StatusMethodNotAllowed, "method_not_allowed", `Method "`+method+`" not allowed.`)
}

// TypeForStatus returns the envelope type used for status.
func TypeForStatus(status int) ErrorType {
	switch {
	case status >= http.StatusInternalServerError:
		return ServerError
	case status == http.StatusBadRequest:
		return ValidationError
	default:
		return ClientError
	}
}

// NewValidationEnvelope converts field errors into an envelope, keeping order.
func NewValidationEnvelope(errs FieldErrors) Envelope {
	items := make([]ErrorItem, 0, len(errs))
	for _, fe := range errs {
		attr := fe.Field
		if attr == "" {
			attr = NonFieldErrors
		}
		items = append(items, ErrorItem{Code: fe.Code, Detail: fe.Detail, Attr: &attr})
	}
	return Envelope{Type: ValidationError, Errors: items}
}

// NewEnvelope wraps a single API error.
func NewEnvelope(err *APIError) Envelope {
	return Envelope{
		Type:   TypeForStatus(err.Status),
		Errors: []ErrorItem{{Code: err.Code, Detail: err.Detail}},
	}
}
