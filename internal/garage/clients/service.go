package clients

import (
	"context"

	"github.com/garage-admin/garage/internal/shared"
)

// Service holds client business rules.
type Service struct {
	repo Repository
}

// NewService constructs the service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, params shared.ListParams) ([]Client, int, error) {
	return s.repo.List(ctx, params)
}

func (s *Service) Get(ctx context.Context, id int64) (Client, error) {
	return s.repo.Get(ctx, id)
}

// Create registers a client on behalf of the principal.
func (s *Service) Create(ctx context.Context, c Changes, createdBy int64) (Client, error) {
	cl := Client{IsActive: true}
	c.apply(&cl)
	return s.repo.Create(ctx, cl, createdBy)
}

// Update applies c to client id.
func (s *Service) Update(ctx context.Context, id int64, c Changes) (Client, error) {
	cl, err := s.repo.Get(ctx, id)
	if err != nil {
		return Client{}, err
	}
	c.apply(&cl)
	return s.repo.Update(ctx, cl)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
