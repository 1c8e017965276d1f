// Package brands exposes vehicle brands over /v1/brands/.
package brands

import "github.com/garage-admin/garage/internal/shared"

// Brand is a vehicle make, e.g. Ford or Fiat. Names are unique ignoring case.
type Brand struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Listing declares the searchable and orderable columns.
var Listing = shared.ListSpec{
	Search:          []shared.Field{{Name: "name", Column: "b.name"}},
	Ordering:        []shared.Field{{Name: "id", Column: "b.id"}, {Name: "name", Column: "b.name"}},
	DefaultOrdering: []string{"b.name ASC", "b.id ASC"},
}
