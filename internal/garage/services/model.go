// Package services exposes repair records over /v1/services/.
package services

import (
	"time"

	"github.com/garage-admin/garage/internal/garage/vehicles"
	"github.com/garage-admin/garage/internal/shared"
)

// Service is one repair job on a vehicle, flat as returned by writes.
type Service struct {
	ID         int64         `json:"id"`
	Vehicle    int64         `json:"vehicle"`
	StartAt    time.Time     `json:"start_at"`
	FinishAt   *time.Time    `json:"finish_at"`
	Symptoms   *string       `json:"symptoms"`
	Repairs    *string       `json:"repairs"`
	Cost       *shared.Money `json:"cost"`
	IsPaid     bool          `json:"is_paid"`
	PaidDate   *shared.Date  `json:"paid_date"`
	Kilometers int           `json:"kilometers"`
}

// Detail nests the full vehicle and is returned by list and retrieve.
type Detail struct {
	ID         int64           `json:"id"`
	Vehicle    vehicles.Detail `json:"vehicle"`
	StartAt    time.Time       `json:"start_at"`
	FinishAt   *time.Time      `json:"finish_at"`
	Symptoms   *string         `json:"symptoms"`
	Repairs    *string         `json:"repairs"`
	Cost       *shared.Money   `json:"cost"`
	IsPaid     bool            `json:"is_paid"`
	PaidDate   *shared.Date    `json:"paid_date"`
	Kilometers int             `json:"kilometers"`
}

// Flat drops the nested vehicle.
func (d Detail) Flat() Service {
	return Service{
		ID: d.ID, Vehicle: d.Vehicle.ID, StartAt: d.StartAt, FinishAt: d.FinishAt,
		Symptoms: d.Symptoms, Repairs: d.Repairs, Cost: d.Cost, IsPaid: d.IsPaid,
		PaidDate: d.PaidDate, Kilometers: d.Kilometers,
	}
}

// Listing declares the searchable, orderable and filterable columns.
var Listing = shared.ListSpec{
	Search: []shared.Field{
		{Name: "vehicle__brand__name", Column: "b.name"},
		{Name: "vehicle__client__last_name", Column: "c.last_name"},
		{Name: "vehicle__client__first_name", Column: "c.first_name"},
		{Name: "vehicle__license_plate", Column: "v.license_plate"},
	},
	Ordering: []shared.Field{
		{Name: "id", Column: "s.id"},
		{Name: "start_at", Column: "s.start_at"},
		{Name: "finish_at", Column: "s.finish_at"},
	},
	Filters: []shared.Field{
		{Name: "is_paid", Column: "s.is_paid", Kind: shared.KindBool},
		{Name: "vehicle", Column: "s.vehicle_id", Kind: shared.KindInt},
	},
	DefaultOrdering: []string{"s.id ASC"},
}
