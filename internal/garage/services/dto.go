package services

import (
	"time"

	"github.com/garage-admin/garage/internal/shared"
)

// ServiceRequest is the body of POST and PUT requests.
type ServiceRequest struct {
	Vehicle    *int64        `json:"vehicle" validate:"required"`
	StartAt    *time.Time    `json:"start_at" validate:"required"`
	FinishAt   *time.Time    `json:"finish_at"`
	Symptoms   *string       `json:"symptoms"`
	Repairs    *string       `json:"repairs"`
	Cost       *shared.Money `json:"cost" validate:"omitempty,money"`
	IsPaid     *bool         `json:"is_paid"`
	PaidDate   *shared.Date  `json:"paid_date"`
	Kilometers *int          `json:"kilometers" validate:"required,min=-2147483648,max=2147483647"`
}

// PatchServiceRequest is the body of PATCH requests.
type PatchServiceRequest struct {
	Vehicle    *int64        `json:"vehicle"`
	StartAt    *time.Time    `json:"start_at"`
	FinishAt   *time.Time    `json:"finish_at"`
	Symptoms   *string       `json:"symptoms"`
	Repairs    *string       `json:"repairs"`
	Cost       *shared.Money `json:"cost" validate:"omitempty,money"`
	IsPaid     *bool         `json:"is_paid"`
	PaidDate   *shared.Date  `json:"paid_date"`
	Kilometers *int          `json:"kilometers" validate:"omitempty,min=-2147483648,max=2147483647"`
}

// Changes is the set of fields a write touches. Optional fields left out of
// a PUT keep their stored value, the same as null.
type Changes PatchServiceRequest

// Changes converts the request.
func (r ServiceRequest) Changes() Changes { return Changes(r) }

// Changes converts the request.
func (r PatchServiceRequest) Changes() Changes { return Changes(r) }

func (c Changes) apply(s *Service) {
	if c.Vehicle != nil {
		s.Vehicle = *c.Vehicle
	}
	if c.StartAt != nil {
		s.StartAt = *c.StartAt
	}
	if c.FinishAt != nil {
		s.FinishAt = c.FinishAt
	}
	if c.Symptoms != nil {
		s.Symptoms = c.Symptoms
	}
	if c.Repairs != nil {
		s.Repairs = c.Repairs
	}
	if c.Cost != nil {
		s.Cost = c.Cost
	}
	if c.IsPaid != nil {
		s.IsPaid = *c.IsPaid
	}
	if c.PaidDate != nil {
		s.PaidDate = c.PaidDate
	}
	if c.Kilometers != nil {
		s.Kilometers = *c.Kilometers
	}
}
