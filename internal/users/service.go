package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/garage-admin/garage/internal/auth"
	"github.com/garage-admin/garage/internal/platform/httpx"
	"github.com/garage-admin/garage/internal/shared"
)

// Service handles user business logic.
type Service struct {
	repo RepositoryPort
	hash func(string) (string, error)
}

// NewService builds Service instance.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo, hash: auth.HashPassword}
}

// List returns one page of users.
func (s *Service) List(ctx context.Context, params shared.ListParams) ([]User, int, error) {
	return s.repo.List(ctx, params)
}

// Get returns a single user.
func (s *Service) Get(ctx context.Context, id int64) (User, error) {
	return s.repo.Get(ctx, id)
}

// Create registers a regular account. Changes must carry email and password.
func (s *Service) Create(ctx context.Context, c Changes) (User, error) {
	if c.Email == nil || c.Password == nil {
		return User{}, errors.New("users: create requires email and password")
	}
	u := User{IsActive: true}
	c.apply(&u)
	return s.insert(ctx, u, *c.Password)
}

// CreateSuperuser registers a staff account with every privilege.
func (s *Service) CreateSuperuser(ctx context.Context, email, password, firstName, lastName string) (User, error) {
	var errs httpx.FieldErrors
	if email == "" {
		errs.Add("email", "required", "This field is required.")
	}
	if len(password) < 8 {
		errs.Add("password", "min_length", "Ensure this field has at least 8 characters.")
	}
	if err := errs.Err(); err != nil {
		return User{}, err
	}
	u := User{Email: email, FirstName: firstName, LastName: lastName, IsActive: true, IsStaff: true, IsSuperuser: true}
	return s.insert(ctx, u, password)
}

func (s *Service) insert(ctx context.Context, u User, password string) (User, error) {
	u.Email = shared.NormalizeEmail(u.Email)
	if err := s.ensureEmailFree(ctx, u.Email, 0); err != nil {
		return User{}, err
	}
	hash, err := s.hash(password)
	if err != nil {
		return User{}, err
	}
	u.PasswordHash = hash
	return s.repo.Create(ctx, u)
}

// Update applies c to the user. The password is rehashed only when present.
func (s *Service) Update(ctx context.Context, id int64, c Changes) (User, error) {
	u, err := s.repo.Get(ctx, id)
	if err != nil {
		return User{}, err
	}
	c.apply(&u)
	u.Email = shared.NormalizeEmail(u.Email)
	if c.Email != nil {
		if err := s.ensureEmailFree(ctx, u.Email, id); err != nil {
			return User{}, err
		}
	}
	if c.Password != nil {
		hash, err := s.hash(*c.Password)
		if err != nil {
			return User{}, err
		}
		u.PasswordHash = hash
	}
	return s.repo.Update(ctx, u)
}

// Delete removes the user.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) ensureEmailFree(ctx context.Context, email string, excludeID int64) error {
	taken, err := s.repo.EmailTaken(ctx, email, excludeID)
	if err != nil {
		return fmt.Errorf("users: check email: %w", err)
	}
	if taken {
		return ErrEmailTaken
	}
	return nil
}
