package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type tokenType string

const (
	accessTokenType  tokenType = "access"
	refreshTokenType tokenType = "refresh"
)

var (
	ErrTokenExpired      = errors.New("token has expired")
	ErrTokenInvalid      = errors.New("token is invalid")
	ErrTokenTypeMismatch = errors.New("wrong token type")
)

type garageClaims struct {
	jwt.RegisteredClaims
	UserID    int64     `json:"user_id"`
	TokenType tokenType `json:"token_type"`
}

// TokenConfig configures the TokenManager.
type TokenConfig struct {
	Secret     string
	Issuer     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// TokenManager signs and verifies HS256 access and refresh tokens.
type TokenManager struct {
	cfg TokenConfig
	now func() time.Time
}

// NewTokenManager constructs a TokenManager. The secret must not be empty.
func NewTokenManager(cfg TokenConfig) (*TokenManager, error) {
	if cfg.Secret == "" {
		return nil, errors.New("auth: JWT secret is required")
	}
	return &TokenManager{cfg: cfg, now: time.Now}, nil
}

// GeneratePair issues a fresh access/refresh pair for userID.
func (m *TokenManager) GeneratePair(userID int64) (TokenPair, error) {
	access, err := m.generate(userID, accessTokenType, m.cfg.AccessTTL)
	if err != nil {
		return TokenPair{}, fmt.Errorf("generating access token: %w", err)
	}
	refresh, err := m.generate(userID, refreshTokenType, m.cfg.RefreshTTL)
	if err != nil {
		return TokenPair{}, fmt.Errorf("generating refresh token: %w", err)
	}
	return TokenPair{Access: access, Refresh: refresh}, nil
}

// GenerateAccess issues a single access token for userID.
func (m *TokenManager) GenerateAccess(userID int64) (string, error) {
	return m.generate(userID, accessTokenType, m.cfg.AccessTTL)
}

// ValidateAccess verifies an access token.
func (m *TokenManager) ValidateAccess(token string) (*Claims, error) {
	return m.validate(token, accessTokenType)
}

// ValidateRefresh verifies a refresh token.
func (m *TokenManager) ValidateRefresh(token string) (*Claims, error) {
	return m.validate(token, refreshTokenType)
}

func (m *TokenManager) generate(userID int64, ttype tokenType, ttl time.Duration) (string, error) {
	now := m.now()
	claims := garageClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    m.cfg.Issuer,
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID:    userID,
		TokenType: ttype,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(m.cfg.Secret))
}

func (m *TokenManager) validate(tokenString string, expected tokenType) (*Claims, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&garageClaims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(m.cfg.Secret), nil
		},
		jwt.WithIssuer(m.cfg.Issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*garageClaims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}
	if claims.TokenType != expected {
		return nil, ErrTokenTypeMismatch
	}
	if claims.UserID == 0 || claims.ID == "" {
		return nil, ErrTokenInvalid
	}
	return &Claims{
		UserID:    claims.UserID,
		JTI:       claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
