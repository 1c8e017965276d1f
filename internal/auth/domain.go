// Package auth issues and verifies bearer tokens for the API: the credential
// exchange, refresh and revocation endpoints, and the middleware that turns an
// access token into the request principal.
package auth

import (
	"net/http"
	"time"

	"github.com/garage-admin/garage/internal/platform/httpx"
)

// User is the account view needed for authentication.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	IsActive     bool
	IsStaff      bool
}

// TokenPair is the result of a successful credential exchange.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// Claims are the verified contents of a token.
type Claims struct {
	UserID    int64
	JTI       string
	ExpiresAt time.Time
}

// Client errors returned by the token endpoints and the bearer middleware.
var (
	ErrNoActiveAccount = httpx.NewAPIError(http.StatusUnauthorized, "no_active_account", "No active account found with the given credentials")
	ErrTokenNotValid   = httpx.NewAPIError(http.StatusUnauthorized, "token_not_valid", "Given token not valid for any token type")
	ErrRefreshInvalid  = httpx.NewAPIError(http.StatusUnauthorized, "token_not_valid", "Token is invalid or expired")
	ErrBlacklisted     = httpx.NewAPIError(http.StatusUnauthorized, "token_not_valid", "Token is blacklisted")
	ErrUserNotFound    = httpx.NewAPIError(http.StatusUnauthorized, "user_not_found", "User not found")
	ErrUserInactive    = httpx.NewAPIError(http.StatusUnauthorized, "user_inactive", "User is inactive")
	ErrBadHeader       = httpx.NewAPIError(http.StatusUnauthorized, "bad_authorization_header", "Invalid Authorization header. No credentials provided.")
)
