package auth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garage-admin/garage/internal/auth"
	"github.com/garage-admin/garage/internal/platform/httpx"
	"github.com/garage-admin/garage/internal/shared"
	_ "github.com/garage-admin/garage/testing"
)

type stubRepo struct {
	users   map[int64]*auth.User
	touched []int64
}

func (s *stubRepo) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	for _, u := range s.users {
		if u.Email == shared.NormalizeEmail(email) {
			return u, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (s *stubRepo) FindByID(_ context.Context, id int64) (*auth.User, error) {
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return nil, shared.ErrNotFound
}

func (s *stubRepo) TouchLastLogin(_ context.Context, id int64, _ time.Time) error {
	s.touched = append(s.touched, id)
	return nil
}

type eventLog []string

func (l *eventLog) TokenEvent(operation, outcome string) {
	*l = append(*l, operation+":"+outcome)
}

type fixture struct {
	events  *eventLog
	repo    *stubRepo
	tokens  *auth.TokenManager
	service *auth.Service
	router  http.Handler
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	hash, err := auth.HashPassword("s3cret-pass")
	require.NoError(t, err)
	repo := &stubRepo{users: map[int64]*auth.User{
		1: {ID: 1, Email: "alice@example.com", PasswordHash: hash, IsActive: true, IsStaff: true},
		2: {ID: 2, Email: "bob@example.com", PasswordHash: hash, IsActive: false},
	}}
	tokens, err := auth.NewTokenManager(auth.TokenConfig{
		Secret: "test-secret", Issuer: "garage", AccessTTL: 5 * time.Minute, RefreshTTL: time.Hour,
	})
	require.NoError(t, err)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	service := auth.NewService(repo, tokens, auth.NewRedisDenylist(client))

	events := &eventLog{}
	r := chi.NewRouter()
	auth.NewHandler(nil, service).WithEvents(events).MountRoutes(r)
	r.Group(func(r chi.Router) {
		r.Use(auth.Authenticator{Service: service}.Middleware)
		r.Get("/me", func(w http.ResponseWriter, r *http.Request) {
			p := shared.PrincipalFromContext(r.Context())
			if p == nil {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			httpx.JSON(w, http.StatusOK, map[string]any{"id": p.ID})
		})
	})
	return &fixture{events: events, repo: repo, tokens: tokens, service: service, router: r}
}

func (f *fixture) post(t *testing.T, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func envelope(t *testing.T, rec *httptest.ResponseRecorder) httpx.Envelope {
	t.Helper()
	var env httpx.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestObtainTokenPair(t *testing.T) {
	f := newFixture(t)
	rec := f.post(t, "/token", `{"email":"ALICE@example.com","password":"s3cret-pass"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var pair auth.TokenPair
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &pair))
	assert.NotEmpty(t, pair.Access)
	assert.NotEmpty(t, pair.Refresh)
	assert.Equal(t, []int64{1}, f.repo.touched)

	claims, err := f.tokens.ValidateAccess(pair.Access)
	require.NoError(t, err)
	assert.Equal(t, int64(1), claims.UserID)
}

func TestObtainRejectsBadCredentials(t *testing.T) {
	f := newFixture(t)
	for _, body := range []string{
		`{"email":"alice@example.com","password":"wrong-pass"}`,
		`{"email":"bob@example.com","password":"s3cret-pass"}`,
		`{"email":"nobody@example.com","password":"s3cret-pass"}`,
	} {
		rec := f.post(t, "/token", body)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		env := envelope(t, rec)
		assert.Equal(t, httpx.ClientError, env.Type)
		assert.Equal(t, "no_active_account", env.Errors[0].Code)
		assert.Equal(t, httpx.AuthenticateHeader, rec.Header().Get("WWW-Authenticate"))
	}
}

func TestObtainRequiresFields(t *testing.T) {
	f := newFixture(t)
	rec := f.post(t, "/token", `{}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	env := envelope(t, rec)
	assert.Equal(t, httpx.ValidationError, env.Type)
	require.Len(t, env.Errors, 2)
	assert.Equal(t, "email", *env.Errors[0].Attr)
	assert.Equal(t, "password", *env.Errors[1].Attr)
	assert.Equal(t, "required", env.Errors[0].Code)
}

func TestRefreshAndBlacklist(t *testing.T) {
	f := newFixture(t)
	pair, err := f.tokens.GeneratePair(1)
	require.NoError(t, err)

	rec := f.post(t, "/token/refresh", `{"refresh":"`+pair.Refresh+`"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"access"`)

	rec = f.post(t, "/token/blacklist", `{"refresh":"`+pair.Refresh+`"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.post(t, "/token/refresh", `{"refresh":"`+pair.Refresh+`"}`)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Token is blacklisted", envelope(t, rec).Errors[0].Detail)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	f := newFixture(t)
	pair, err := f.tokens.GeneratePair(1)
	require.NoError(t, err)

	rec := f.post(t, "/token/refresh", `{"refresh":"`+pair.Access+`"}`)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Token is invalid or expired", envelope(t, rec).Errors[0].Detail)
}

func (f *fixture) get(t *testing.T, authorization string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func TestBearerMiddleware(t *testing.T) {
	f := newFixture(t)
	alice, err := f.tokens.GeneratePair(1)
	require.NoError(t, err)
	bob, err := f.tokens.GeneratePair(2)
	require.NoError(t, err)
	ghost, err := f.tokens.GeneratePair(99)
	require.NoError(t, err)

	assert.Equal(t, http.StatusNoContent, f.get(t, "").Code)
	assert.Equal(t, http.StatusOK, f.get(t, "Bearer "+alice.Access).Code)

	cases := map[string]string{
		"Bearer " + alice.Refresh: "token_not_valid",
		"Bearer garbage":          "token_not_valid",
		"Bearer " + bob.Access:    "user_inactive",
		"Bearer " + ghost.Access:  "user_not_found",
		"Bearer":                  "bad_authorization_header",
	}
	for header, code := range cases {
		rec := f.get(t, header)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, header)
		assert.Equal(t, code, envelope(t, rec).Errors[0].Code, header)
	}
}

func TestTokenManagerRejectsEmptySecret(t *testing.T) {
	_, err := auth.NewTokenManager(auth.TokenConfig{})
	assert.Error(t, err)
}

func TestTokenEventsRecorded(t *testing.T) {
	f := newFixture(t)
	f.post(t, "/token", `{"email":"alice@example.com","password":"s3cret-pass"}`)
	f.post(t, "/token", `{"email":"alice@example.com","password":"wrong-pass"}`)
	f.post(t, "/token/refresh", `{"refresh":"garbage"}`)

	assert.Equal(t, eventLog{"obtain:ok", "obtain:rejected", "refresh:rejected"}, *f.events)
}
