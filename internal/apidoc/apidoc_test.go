package apidoc

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"

	"github.com/garage-admin/garage/internal/shared"
)

func TestDeriveErrorCodes(t *testing.T) {
	idParam := []Param{{Name: "id", In: "path", Type: "integer", Required: true}}
	cases := []struct {
		name string
		e    Endpoint
		want []int
	}{
		{
			name: "authenticated list",
			e:    Endpoint{Method: http.MethodGet, Path: "/v1/brands/", RequiresAuth: true, IsList: true},
			want: []int{401, 403},
		},
		{
			name: "authenticated create",
			e:    Endpoint{Method: http.MethodPost, Path: "/v1/brands/", RequiresAuth: true},
			want: []int{400, 401, 403},
		},
		{
			name: "authenticated retrieve",
			e:    Endpoint{Method: http.MethodGet, Path: "/v1/brands/{id}/", RequiresAuth: true, Params: idParam},
			want: []int{401, 403, 404},
		},
		{
			name: "authenticated delete",
			e:    Endpoint{Method: http.MethodDelete, Path: "/v1/brands/{id}/", RequiresAuth: true, Params: idParam},
			want: []int{400, 401, 403, 404},
		},
		{
			name: "anonymous post",
			e:    Endpoint{Method: http.MethodPost, Path: "/token/"},
			want: []int{400},
		},
		{
			name: "declared 4xx kept untouched",
			e: Endpoint{Method: http.MethodPost, Path: "/token/", RequiresAuth: true, Declared: map[int]Response{
				200: {Description: "OK"},
				401: {Description: "Bad credentials", Schema: SchemaUnauthenticatedError},
			}},
			want: []int{401},
		},
		{
			name: "declared success only still derives",
			e: Endpoint{Method: http.MethodPut, Path: "/v1/types/{id}/", RequiresAuth: true, Params: idParam, Declared: map[int]Response{
				200: {Description: "OK"},
			}},
			want: []int{400, 401, 403, 404},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DeriveErrorCodes(tc.e))
		})
	}
}

func TestResponsesNeverReplaceDeclared(t *testing.T) {
	e := Endpoint{Method: http.MethodGet, Path: "/v1/users/{id}/", RequiresAuth: true,
		Declared: map[int]Response{200: {Description: "OK", Schema: "User"}}}
	resp := Responses(e)
	assert.Equal(t, "User", resp[200].Schema)
	assert.Equal(t, SchemaNotFoundError, resp[404].Schema)
	assert.Equal(t, SchemaForbiddenError, resp[403].Schema)
	_, has400 := resp[400]
	assert.False(t, has400)
}

func testResource() Resource {
	return Resource{
		Name: "brands", Singular: "brand", Tag: "Brands", Schema: "Brand", WriteSchema: "Brand", PageSize: 10,
		Listing: shared.ListSpec{
			Search:   []shared.Field{{Name: "name", Column: "b.name"}},
			Ordering: []shared.Field{{Name: "id", Column: "b.id"}, {Name: "name", Column: "b.name"}},
		},
	}
}

func TestResourceEndpoints(t *testing.T) {
	endpoints := testResource().Endpoints()
	require.Len(t, endpoints, 6)

	list := endpoints[0]
	assert.True(t, list.IsList)
	var descriptions = map[string]string{}
	for _, p := range list.Params {
		descriptions[p.Name] = p.Description
	}
	assert.Equal(t, "Search in name", descriptions["search"])
	assert.Equal(t, "Order by id, name", descriptions["ordering"])
	assert.Equal(t, "Number of results to return per page. Default: 10", descriptions["size"])

	destroy := endpoints[5]
	assert.Equal(t, http.MethodDelete, destroy.Method)
	assert.Contains(t, destroy.Description, "__To use this endpoint, you must be an admin user.__")
	assert.Equal(t, []int{400, 401, 403, 404}, DeriveErrorCodes(destroy))
}

func TestDocumentServesOpenAPI(t *testing.T) {
	doc := NewDocument(Info{Title: "Garage API", Version: "1.0.0"})
	doc.AddResource(testResource())
	doc.AddSchemas(Schema{Name: "Brand", Properties: []Property{
		{Name: "id", Type: "integer", ReadOnly: true},
		{Name: "name", Type: "string", MaxLength: 50, Required: true},
	}})

	rec := httptest.NewRecorder()
	doc.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/schema/", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var out struct {
		OpenAPI string `json:"openapi"`
		Paths   map[string]map[string]struct {
			Responses map[string]any `json:"responses"`
		} `json:"paths"`
		Components struct {
			Schemas map[string]any `json:"schemas"`
		} `json:"components"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, "3.0.3", out.OpenAPI)
	assert.Contains(t, out.Paths["/v1/brands/{id}/"]["delete"].Responses, "404")
	assert.NotContains(t, out.Paths["/v1/brands/"]["get"].Responses, "404")
	assert.Contains(t, out.Components.Schemas, SchemaValidationError)
	assert.Contains(t, out.Components.Schemas, "Brand")
	assert.JSONEq(t, string(rec.Body.Bytes()), doc.ReadDoc())
}

func TestRegisterReplacesDocument(t *testing.T) {
	first := NewDocument(Info{Title: "first", Version: "1"})
	first.Register()
	second := NewDocument(Info{Title: "second", Version: "1"})
	second.Register()

	raw, err := swag.ReadDoc()
	require.NoError(t, err)
	assert.Contains(t, raw, `"title":"second"`)
}
