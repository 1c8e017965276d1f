package clients

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

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
	clients map[int64]Client
	names   map[int64]string
	nextID  int64
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{clients: map[int64]Client{}, names: map[int64]string{7: "Ada Admin"}}
}

func (m *memoryRepo) List(_ context.Context, params shared.ListParams) ([]Client, int, error) {
	var out []Client
	for id := int64(1); id <= m.nextID; id++ {
		c, ok := m.clients[id]
		if !ok {
			continue
		}
		keep := true
		for _, f := range params.Filters {
			if f.Field.Name == "is_active" && f.Value != c.IsActive {
				keep = false
			}
		}
		if keep {
			out = append(out, c)
		}
	}
	return out, len(out), params.CheckPage(len(out))
}

func (m *memoryRepo) Get(_ context.Context, id int64) (Client, error) {
	c, ok := m.clients[id]
	if !ok {
		return Client{}, shared.ErrNotFound
	}
	return c, nil
}

func (m *memoryRepo) Create(_ context.Context, c Client, createdBy int64) (Client, error) {
	m.nextID++
	c.ID = m.nextID
	c.CreatedAt = time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	c.CreatedBy = &Creator{ID: createdBy, FullName: m.names[createdBy]}
	m.clients[c.ID] = c
	return c, nil
}

func (m *memoryRepo) Update(_ context.Context, c Client) (Client, error) {
	m.clients[c.ID] = c
	return c, nil
}

func (m *memoryRepo) Delete(_ context.Context, id int64) error {
	if _, ok := m.clients[id]; !ok {
		return shared.ErrNotFound
	}
	delete(m.clients, id)
	return nil
}

func serve(repo Repository, p *shared.Principal, method, path, body string) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	r.Use(middleware.StripSlashes)
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if p != nil {
				req = req.WithContext(shared.ContextWithPrincipal(req.Context(), p))
			}
			next.ServeHTTP(w, req)
		})
	})
	NewHandler(nil, NewService(repo), httpx.Paging{Size: 10, MaxSize: 100}).MountRoutes(r, rbac.Middleware{})
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(method, path, strings.NewReader(body)))
	return rec
}

var principal = &shared.Principal{ID: 7, IsActive: true}

func TestCreateClientRecordsCreator(t *testing.T) {
	repo := newMemoryRepo()
	rec := serve(repo, principal, http.MethodPost, "/clients/", `{"first_name":"John","last_name":"Doe","phone":"555-1234"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, map[string]any{"id": float64(7), "full_name": "Ada Admin"}, out["created_by"])
	assert.Equal(t, true, out["is_active"])
	assert.Equal(t, "555-1234", out["phone"])
	assert.Nil(t, out["company"])
	assert.Equal(t, "2024-01-02T03:04:05Z", out["created_at"])
}

func TestCreateClientValidation(t *testing.T) {
	rec := serve(newMemoryRepo(), principal, http.MethodPost, "/clients/", `{"first_name":"John","email":"nope","phone":"012345678901234567890"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	var env httpx.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	require.Len(t, env.Errors, 3)
	assert.Equal(t, "last_name", *env.Errors[0].Attr)
	assert.Equal(t, "email", *env.Errors[1].Attr)
	assert.Equal(t, "phone", *env.Errors[2].Attr)
	assert.Equal(t, "Ensure this field has no more than 20 characters.", env.Errors[2].Detail)
}

func TestPatchClientKeepsOtherFields(t *testing.T) {
	repo := newMemoryRepo()
	require.Equal(t, http.StatusCreated, serve(repo, principal, http.MethodPost, "/clients/", `{"first_name":"John","last_name":"Doe","city":"Lyon"}`).Code)

	rec := serve(repo, principal, http.MethodPatch, "/clients/1/", `{"is_active":false}`)
	require.Equal(t, http.StatusOK, rec.Code)
	c := repo.clients[1]
	assert.False(t, c.IsActive)
	require.NotNil(t, c.City)
	assert.Equal(t, "Lyon", *c.City)
	assert.Equal(t, "John", c.FirstName)
}

func TestListClientsFilter(t *testing.T) {
	repo := newMemoryRepo()
	serve(repo, principal, http.MethodPost, "/clients/", `{"first_name":"A","last_name":"A"}`)
	serve(repo, principal, http.MethodPost, "/clients/", `{"first_name":"B","last_name":"B","is_active":false}`)

	rec := serve(repo, principal, http.MethodGet, "/clients/?is_active=false", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var page shared.Page[Client]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Equal(t, 1, page.Count)
	assert.Equal(t, "B", page.Results[0].FirstName)

	rec = serve(repo, principal, http.MethodGet, "/clients/?is_active=maybe", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteClientRequiresStaff(t *testing.T) {
	repo := newMemoryRepo()
	serve(repo, principal, http.MethodPost, "/clients/", `{"first_name":"A","last_name":"A"}`)

	assert.Equal(t, http.StatusForbidden, serve(repo, principal, http.MethodDelete, "/clients/1/", "").Code)
	assert.Equal(t, http.StatusNoContent, serve(repo, &shared.Principal{ID: 1, IsStaff: true}, http.MethodDelete, "/clients/1/", "").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(repo, nil, http.MethodGet, "/clients/", "").Code)
}
