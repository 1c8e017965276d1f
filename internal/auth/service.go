package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/garage-admin/garage/internal/shared"
)

// Service wraps authentication business rules.
type Service struct {
	repo     Repository
	tokens   *TokenManager
	denylist Denylist
	now      func() time.Time
}

// NewService constructs a new Service.
func NewService(repo Repository, tokens *TokenManager, denylist Denylist) *Service {
	return &Service{repo: repo, tokens: tokens, denylist: denylist, now: time.Now}
}

// Login exchanges email/password credentials for a token pair. Unknown
// accounts, inactive accounts and wrong passwords are indistinguishable.
func (s *Service) Login(ctx context.Context, email, password string) (TokenPair, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return TokenPair{}, ErrNoActiveAccount
		}
		return TokenPair{}, fmt.Errorf("auth: find user: %w", err)
	}
	if !user.IsActive || !CheckPassword(user.PasswordHash, password) {
		return TokenPair{}, ErrNoActiveAccount
	}
	pair, err := s.tokens.GeneratePair(user.ID)
	if err != nil {
		return TokenPair{}, err
	}
	if err := s.repo.TouchLastLogin(ctx, user.ID, s.now()); err != nil {
		return TokenPair{}, fmt.Errorf("auth: touch last login: %w", err)
	}
	return pair, nil
}

// Refresh issues a new access token from a valid, unrevoked refresh token.
func (s *Service) Refresh(ctx context.Context, refresh string) (string, error) {
	claims, err := s.checkRefresh(ctx, refresh)
	if err != nil {
		return "", err
	}
	user, err := s.repo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return "", ErrNoActiveAccount
		}
		return "", fmt.Errorf("auth: find user: %w", err)
	}
	if !user.IsActive {
		return "", ErrNoActiveAccount
	}
	return s.tokens.GenerateAccess(user.ID)
}

// Revoke adds the refresh token to the denylist for its remaining lifetime.
func (s *Service) Revoke(ctx context.Context, refresh string) error {
	claims, err := s.checkRefresh(ctx, refresh)
	if err != nil {
		return err
	}
	return s.denylist.Add(ctx, claims.JTI, claims.ExpiresAt.Sub(s.now()))
}

// Authenticate resolves an access token into the request principal.
func (s *Service) Authenticate(ctx context.Context, access string) (*shared.Principal, error) {
	claims, err := s.tokens.ValidateAccess(access)
	if err != nil {
		return nil, ErrTokenNotValid
	}
	user, err := s.repo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("auth: find user: %w", err)
	}
	if !user.IsActive {
		return nil, ErrUserInactive
	}
	return &shared.Principal{ID: user.ID, Email: user.Email, IsStaff: user.IsStaff, IsActive: user.IsActive}, nil
}

func (s *Service) checkRefresh(ctx context.Context, refresh string) (*Claims, error) {
	claims, err := s.tokens.ValidateRefresh(refresh)
	if err != nil {
		return nil, ErrRefreshInvalid
	}
	revoked, err := s.denylist.Contains(ctx, claims.JTI)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, ErrBlacklisted
	}
	return claims, nil
}
