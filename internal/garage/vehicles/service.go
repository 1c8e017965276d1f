package vehicles

import (
	"context"

	"github.com/garage-admin/garage/internal/shared"
)

// Service holds vehicle business rules.
type Service struct {
	repo Repository
}

// NewService constructs the service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, params shared.ListParams) ([]Detail, int, error) {
	return s.repo.List(ctx, params)
}

func (s *Service) Get(ctx context.Context, id int64) (Detail, error) {
	return s.repo.Get(ctx, id)
}

// Create stores a vehicle once its type, brand and client exist.
func (s *Service) Create(ctx context.Context, c Changes) (Vehicle, error) {
	var v Vehicle
	c.apply(&v)
	if err := s.checkReferences(ctx, v); err != nil {
		return Vehicle{}, err
	}
	return s.repo.Create(ctx, v)
}

// Update applies c to vehicle id.
func (s *Service) Update(ctx context.Context, id int64, c Changes) (Vehicle, error) {
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return Vehicle{}, err
	}
	v := current.Flat()
	c.apply(&v)
	if err := s.checkReferences(ctx, v); err != nil {
		return Vehicle{}, err
	}
	return s.repo.Update(ctx, v)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) checkReferences(ctx context.Context, v Vehicle) error {
	refs, err := s.repo.References(ctx, v)
	if err != nil {
		return err
	}
	return refs.check(v)
}
