package users

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/suite"

	"github.com/garage-admin/garage/internal/platform/httpx"
	"github.com/garage-admin/garage/internal/rbac"
	"github.com/garage-admin/garage/internal/shared"
	_ "github.com/garage-admin/garage/testing"
)

type memoryRepo struct {
	users  map[int64]User
	nextID int64
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{users: map[int64]User{}, nextID: 1}
}

func (m *memoryRepo) List(_ context.Context, params shared.ListParams) ([]User, int, error) {
	var out []User
	for _, u := range m.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	total := len(out)
	if err := params.CheckPage(total); err != nil {
		return nil, 0, err
	}
	end := params.Offset() + params.Size
	if end > total {
		end = total
	}
	return out[params.Offset():end], total, nil
}

func (m *memoryRepo) Get(_ context.Context, id int64) (User, error) {
	u, ok := m.users[id]
	if !ok {
		return User{}, shared.ErrNotFound
	}
	return u, nil
}

func (m *memoryRepo) EmailTaken(_ context.Context, email string, excludeID int64) (bool, error) {
	for _, u := range m.users {
		if u.ID != excludeID && strings.EqualFold(u.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

func (m *memoryRepo) Create(_ context.Context, u User) (User, error) {
	u.ID = m.nextID
	m.nextID++
	m.users[u.ID] = u
	return u, nil
}

func (m *memoryRepo) Update(_ context.Context, u User) (User, error) {
	if _, ok := m.users[u.ID]; !ok {
		return User{}, shared.ErrNotFound
	}
	m.users[u.ID] = u
	return u, nil
}

func (m *memoryRepo) Delete(_ context.Context, id int64) error {
	if _, ok := m.users[id]; !ok {
		return shared.ErrNotFound
	}
	delete(m.users, id)
	return nil
}

type HandlerSuite struct {
	suite.Suite
	repo    *memoryRepo
	service *Service
	staff   User
	alice   User
	bob     User
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	s.repo = newMemoryRepo()
	s.service = NewService(s.repo)
	s.service.hash = func(p string) (string, error) { return "hashed:" + p, nil }

	ctx := context.Background()
	var err error
	s.staff, err = s.service.CreateSuperuser(ctx, "admin@example.com", "password123", "Ada", "Admin")
	s.Require().NoError(err)
	s.alice = s.mustCreate("alice@example.com", "Alice", "Smith")
	s.bob = s.mustCreate("bob@example.com", "Bob", "Jones")
}

func (s *HandlerSuite) mustCreate(email, first, last string) User {
	pw := "password123"
	u, err := s.service.Create(context.Background(), Changes{Email: &email, Password: &pw, FirstName: &first, LastName: &last})
	s.Require().NoError(err)
	return u
}

func (s *HandlerSuite) do(as *User, method, path, body string) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	r.Use(middleware.StripSlashes)
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if as != nil {
				p := &shared.Principal{ID: as.ID, Email: as.Email, IsStaff: as.IsStaff, IsActive: true}
				req = req.WithContext(shared.ContextWithPrincipal(req.Context(), p))
			}
			next.ServeHTTP(w, req)
		})
	})
	NewHandler(nil, s.service, httpx.Paging{Size: 2, MaxSize: 100}).MountRoutes(r, rbac.Middleware{})

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func (s *HandlerSuite) envelope(rec *httptest.ResponseRecorder) httpx.Envelope {
	var env httpx.Envelope
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func (s *HandlerSuite) TestUnauthenticated() {
	rec := s.do(nil, http.MethodGet, "/users/", "")
	s.Equal(http.StatusUnauthorized, rec.Code)
	env := s.envelope(rec)
	s.Equal(httpx.ClientError, env.Type)
	s.Equal("not_authenticated", env.Errors[0].Code)
}

func (s *HandlerSuite) TestListPaginates() {
	rec := s.do(&s.alice, http.MethodGet, "/users/", "")
	s.Require().Equal(http.StatusOK, rec.Code)

	var page shared.Page[User]
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &page))
	s.Equal(3, page.Count)
	s.Len(page.Results, 2)
	s.Require().NotNil(page.Next)
	s.Contains(*page.Next, "page=2")
	s.Nil(page.Previous)
	s.NotContains(rec.Body.String(), "password")

	rec = s.do(&s.alice, http.MethodGet, "/users/?page=9", "")
	s.Equal(http.StatusNotFound, rec.Code)
	s.Equal("Invalid page.", s.envelope(rec).Errors[0].Detail)
}

func (s *HandlerSuite) TestCreateValidation() {
	rec := s.do(&s.staff, http.MethodPost, "/users/", `{"email":"not-an-email","password":"short"}`)
	s.Require().Equal(http.StatusBadRequest, rec.Code)
	env := s.envelope(rec)
	s.Equal(httpx.ValidationError, env.Type)
	attrs := make([]string, 0, len(env.Errors))
	for _, e := range env.Errors {
		attrs = append(attrs, *e.Attr)
	}
	s.Equal([]string{"email", "password", "first_name", "last_name"}, attrs)
	s.Equal("min_length", env.Errors[1].Code)
}

func (s *HandlerSuite) TestCreateDuplicateEmailIgnoresCase() {
	before := len(s.repo.users)
	rec := s.do(&s.staff, http.MethodPost, "/users/",
		`{"email":"ALICE@example.com","password":"password123","first_name":"A","last_name":"S"}`)
	s.Require().Equal(http.StatusBadRequest, rec.Code)
	env := s.envelope(rec)
	s.Equal("unique", env.Errors[0].Code)
	s.Equal("user with this email already exists.", env.Errors[0].Detail)
	s.Equal("email", *env.Errors[0].Attr)
	s.Len(s.repo.users, before)
}

func (s *HandlerSuite) TestCreateNormalizesEmail() {
	rec := s.do(&s.staff, http.MethodPost, "/users/",
		`{"email":"Carol@Example.com","password":"password123","first_name":"Carol","last_name":"King"}`)
	s.Require().Equal(http.StatusCreated, rec.Code)
	var u User
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &u))
	s.Equal("carol@example.com", u.Email)
	s.True(u.IsActive)
	s.False(u.IsStaff)
}

func (s *HandlerSuite) TestSelfPatch() {
	rec := s.do(&s.alice, http.MethodPatch, "/users/"+itoa(s.alice.ID)+"/", `{"first_name":"Alicia"}`)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Equal("Alicia", s.repo.users[s.alice.ID].FirstName)
}

func (s *HandlerSuite) TestSelfPatchKeepsOwnEmail() {
	rec := s.do(&s.alice, http.MethodPatch, "/users/"+itoa(s.alice.ID)+"/", `{"email":"ALICE@example.com"}`)
	s.Equal(http.StatusOK, rec.Code)
}

func (s *HandlerSuite) TestPatchOtherForbidden() {
	rec := s.do(&s.alice, http.MethodPatch, "/users/"+itoa(s.bob.ID)+"/", `{"first_name":"X"}`)
	s.Require().Equal(http.StatusForbidden, rec.Code)
	env := s.envelope(rec)
	s.Equal(rbac.MessageDefault, env.Errors[0].Detail)
	s.Equal("Bob", s.repo.users[s.bob.ID].FirstName)
}

func (s *HandlerSuite) TestStaffPatchOther() {
	rec := s.do(&s.staff, http.MethodPatch, "/users/"+itoa(s.bob.ID)+"/", `{"password":"newpassword"}`)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Equal("hashed:newpassword", s.repo.users[s.bob.ID].PasswordHash)
}

func (s *HandlerSuite) TestDeleteOwnForbidden() {
	rec := s.do(&s.alice, http.MethodDelete, "/users/"+itoa(s.alice.ID)+"/", "")
	s.Require().Equal(http.StatusForbidden, rec.Code)
	s.Equal(rbac.MessageDeleteByAdmin, s.envelope(rec).Errors[0].Detail)
}

func (s *HandlerSuite) TestDeleteOtherForbiddenGeneric() {
	rec := s.do(&s.alice, http.MethodDelete, "/users/"+itoa(s.bob.ID)+"/", "")
	s.Require().Equal(http.StatusForbidden, rec.Code)
	s.Equal(rbac.MessageDefault, s.envelope(rec).Errors[0].Detail)
}

func (s *HandlerSuite) TestStaffDelete() {
	rec := s.do(&s.staff, http.MethodDelete, "/users/"+itoa(s.bob.ID)+"/", "")
	s.Equal(http.StatusNoContent, rec.Code)
	s.NotContains(s.repo.users, s.bob.ID)
}

func (s *HandlerSuite) TestRetrieveMissing() {
	rec := s.do(&s.staff, http.MethodGet, "/users/999/", "")
	s.Equal(http.StatusNotFound, rec.Code)
	s.Equal("not_found", s.envelope(rec).Errors[0].Code)
}

func (s *HandlerSuite) TestPutRequiresFullBody() {
	rec := s.do(&s.alice, http.MethodPut, "/users/"+itoa(s.alice.ID)+"/", `{"first_name":"A"}`)
	s.Require().Equal(http.StatusBadRequest, rec.Code)
	s.Equal("email", *s.envelope(rec).Errors[0].Attr)
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
