// Package vehicletypes exposes vehicle types (car, truck, ...) over /v1/types/.
package vehicletypes

import "github.com/garage-admin/garage/internal/shared"

// Type is a kind of vehicle.
type Type struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Listing declares the searchable and orderable columns.
var Listing = shared.ListSpec{
	Search:          []shared.Field{{Name: "name", Column: "t.name"}},
	Ordering:        []shared.Field{{Name: "id", Column: "t.id"}, {Name: "name", Column: "t.name"}},
	DefaultOrdering: []string{"t.id ASC"},
}

// TypeRequest is the body of POST and PUT requests.
type TypeRequest struct {
	Name *string `json:"name" validate:"required,notblank,max=100"`
}

// PatchTypeRequest is the body of PATCH requests.
type PatchTypeRequest struct {
	Name *string `json:"name" validate:"omitempty,notblank,max=100"`
}
