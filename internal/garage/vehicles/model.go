// Package vehicles exposes client vehicles over /v1/vehicles/.
package vehicles

import (
	"github.com/garage-admin/garage/internal/garage/brands"
	"github.com/garage-admin/garage/internal/garage/clients"
	"github.com/garage-admin/garage/internal/garage/vehicletypes"
	"github.com/garage-admin/garage/internal/shared"
)

// Vehicle is the flat representation returned by writes.
type Vehicle struct {
	ID           int64  `json:"id"`
	Type         int64  `json:"type"`
	Brand        int64  `json:"brand"`
	Model        string `json:"model"`
	Year         int    `json:"year"`
	Color        string `json:"color"`
	LicensePlate string `json:"license_plate"`
	Kilometers   int    `json:"kilometers"`
	Client       int64  `json:"client"`
}

// Detail is the nested representation returned by list and retrieve.
type Detail struct {
	ID           int64             `json:"id"`
	Type         vehicletypes.Type `json:"type"`
	Brand        brands.Brand      `json:"brand"`
	Model        string            `json:"model"`
	Year         int               `json:"year"`
	Color        string            `json:"color"`
	LicensePlate string            `json:"license_plate"`
	Kilometers   int               `json:"kilometers"`
	Client       clients.Client    `json:"client"`
}

// Flat drops the nested objects.
func (d Detail) Flat() Vehicle {
	return Vehicle{
		ID: d.ID, Type: d.Type.ID, Brand: d.Brand.ID, Model: d.Model, Year: d.Year,
		Color: d.Color, LicensePlate: d.LicensePlate, Kilometers: d.Kilometers, Client: d.Client.ID,
	}
}

// Listing declares the searchable, orderable and filterable columns.
var Listing = shared.ListSpec{
	Search: []shared.Field{
		{Name: "brand__name", Column: "b.name"},
		{Name: "model", Column: "v.model"},
		{Name: "color", Column: "v.color"},
		{Name: "license_plate", Column: "v.license_plate"},
		{Name: "client__first_name", Column: "c.first_name"},
		{Name: "client__last_name", Column: "c.last_name"},
	},
	Ordering: []shared.Field{
		{Name: "id", Column: "v.id"},
		{Name: "year", Column: "v.year"},
		{Name: "kilometers", Column: "v.kilometers"},
	},
	Filters: []shared.Field{
		{Name: "client", Column: "v.client_id", Kind: shared.KindInt},
		{Name: "brand", Column: "v.brand_id", Kind: shared.KindInt},
		{Name: "type", Column: "v.type_id", Kind: shared.KindInt},
	},
	DefaultOrdering: []string{"v.id ASC"},
}
