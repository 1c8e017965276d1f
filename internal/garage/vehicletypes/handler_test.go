package vehicletypes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garage-admin/garage/internal/platform/httpx"
	"github.com/garage-admin/garage/internal/rbac"
	"github.com/garage-admin/garage/internal/shared"
	_ "github.com/garage-admin/garage/testing"
)

type memoryRepo struct {
	types  []Type
	inUse  map[int64]bool
	nextID int64
}

func (m *memoryRepo) List(_ context.Context, params shared.ListParams) ([]Type, int, error) {
	return m.types, len(m.types), params.CheckPage(len(m.types))
}

func (m *memoryRepo) Get(_ context.Context, id int64) (Type, error) {
	for _, t := range m.types {
		if t.ID == id {
			return t, nil
		}
	}
	return Type{}, shared.ErrNotFound
}

func (m *memoryRepo) Create(_ context.Context, name string) (Type, error) {
	m.nextID++
	t := Type{ID: m.nextID, Name: name}
	m.types = append(m.types, t)
	return t, nil
}

func (m *memoryRepo) Update(_ context.Context, t Type) (Type, error) {
	for i := range m.types {
		if m.types[i].ID == t.ID {
			m.types[i] = t
			return t, nil
		}
	}
	return Type{}, shared.ErrNotFound
}

func (m *memoryRepo) Delete(_ context.Context, id int64) error {
	if m.inUse[id] {
		return ErrProtected
	}
	for i, t := range m.types {
		if t.ID == id {
			m.types = append(m.types[:i], m.types[i+1:]...)
			return nil
		}
	}
	return shared.ErrNotFound
}

func serve(repo Repository, p *shared.Principal, method, path, body string) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	r.Use(middleware.StripSlashes)
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req.WithContext(shared.ContextWithPrincipal(req.Context(), p)))
		})
	})
	NewHandler(nil, repo, httpx.Paging{Size: 10, MaxSize: 100}).MountRoutes(r, rbac.Middleware{})
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(method, path, strings.NewReader(body)))
	return rec
}

func TestTypesCRUD(t *testing.T) {
	repo := &memoryRepo{inUse: map[int64]bool{}}
	member := &shared.Principal{ID: 3, IsActive: true}
	staff := &shared.Principal{ID: 1, IsStaff: true, IsActive: true}

	rec := serve(repo, member, http.MethodPost, "/types/", `{"name":"Car"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"id":1,"name":"Car"}`, rec.Body.String())

	rec = serve(repo, member, http.MethodPatch, "/types/1/", `{"name":"Truck"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Truck", repo.types[0].Name)

	rec = serve(repo, member, http.MethodPatch, "/types/1/", `{}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Truck", repo.types[0].Name)

	rec = serve(repo, member, http.MethodGet, "/types/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"count":1,"next":null,"previous":null,"results":[{"id":1,"name":"Truck"}]}`, rec.Body.String())

	repo.inUse[1] = true
	rec = serve(repo, staff, http.MethodDelete, "/types/1/", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	var env httpx.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, "protected", env.Errors[0].Code)
	assert.Equal(t, httpx.NonFieldErrors, *env.Errors[0].Attr)

	repo.inUse[1] = false
	assert.Equal(t, http.StatusNoContent, serve(repo, staff, http.MethodDelete, "/types/1/", "").Code)
	assert.Equal(t, http.StatusNotFound, serve(repo, staff, http.MethodGet, "/types/1/", "").Code)
}

func TestTypesNonIntegerID(t *testing.T) {
	rec := serve(&memoryRepo{}, &shared.Principal{ID: 1}, http.MethodGet, "/types/car/", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
