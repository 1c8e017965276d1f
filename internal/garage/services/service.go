package services

import (
	"context"

	"github.com/garage-admin/garage/internal/platform/httpx"
	"github.com/garage-admin/garage/internal/shared"
)

// ServiceManager holds the rules for repair records.
type ServiceManager struct {
	repo Repository
}

// NewServiceManager constructs the manager.
func NewServiceManager(repo Repository) *ServiceManager {
	return &ServiceManager{repo: repo}
}

func (m *ServiceManager) List(ctx context.Context, params shared.ListParams) ([]Detail, int, error) {
	return m.repo.List(ctx, params)
}

func (m *ServiceManager) Get(ctx context.Context, id int64) (Detail, error) {
	return m.repo.Get(ctx, id)
}

// Create stores a repair record on an existing vehicle.
func (m *ServiceManager) Create(ctx context.Context, c Changes) (Service, error) {
	var s Service
	c.apply(&s)
	if err := m.checkVehicle(ctx, s.Vehicle); err != nil {
		return Service{}, err
	}
	return m.repo.Create(ctx, s)
}

// Update applies c to record id.
func (m *ServiceManager) Update(ctx context.Context, id int64, c Changes) (Service, error) {
	current, err := m.repo.Get(ctx, id)
	if err != nil {
		return Service{}, err
	}
	s := current.Flat()
	c.apply(&s)
	if err := m.checkVehicle(ctx, s.Vehicle); err != nil {
		return Service{}, err
	}
	return m.repo.Update(ctx, s)
}

func (m *ServiceManager) Delete(ctx context.Context, id int64) error {
	return m.repo.Delete(ctx, id)
}

func (m *ServiceManager) checkVehicle(ctx context.Context, id int64) error {
	ok, err := m.repo.VehicleExists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return httpx.Invalid("vehicle", "does_not_exist", doesNotExist(id))
	}
	return nil
}
