package brands

import (
	"context"

	"github.com/garage-admin/garage/internal/shared"
)

// Service holds brand business rules.
type Service struct {
	repo Repository
}

// NewService constructs the service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, params shared.ListParams) ([]Brand, int, error) {
	return s.repo.List(ctx, params)
}

func (s *Service) Get(ctx context.Context, id int64) (Brand, error) {
	return s.repo.Get(ctx, id)
}

// Create stores a new brand after checking its name is free.
func (s *Service) Create(ctx context.Context, name string) (Brand, error) {
	name = normalizeName(name)
	if err := s.ensureNameFree(ctx, name, 0); err != nil {
		return Brand{}, err
	}
	return s.repo.Create(ctx, Brand{Name: name})
}

// Update renames brand id. A nil name keeps the current one.
func (s *Service) Update(ctx context.Context, id int64, name *string) (Brand, error) {
	b, err := s.repo.Get(ctx, id)
	if err != nil {
		return Brand{}, err
	}
	if name == nil {
		return b, nil
	}
	b.Name = normalizeName(*name)
	if err := s.ensureNameFree(ctx, b.Name, id); err != nil {
		return Brand{}, err
	}
	return s.repo.Update(ctx, b)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) ensureNameFree(ctx context.Context, name string, excludeID int64) error {
	taken, err := s.repo.NameTaken(ctx, shared.NaturalKey(name), excludeID)
	if err != nil {
		return err
	}
	if taken {
		return ErrNameTaken
	}
	return nil
}
