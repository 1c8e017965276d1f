package apidoc

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/garage-admin/garage/internal/shared"
)

const adminOnlyNote = "\n\n__To use this endpoint, you must be an admin user.__"

// Resource describes a CRUD resource mounted under /v1.
type Resource struct {
	// Name is the URL segment, e.g. "brands".
	Name string
	// Singular is used in descriptions, e.g. "brand".
	Singular string
	Tag      string
	// Schema is the read representation; ListSchema overrides it for list and
	// retrieve responses when those are nested.
	Schema      string
	ListSchema  string
	WriteSchema string
	// PatchSchema documents partial updates.
	PatchSchema string
	Listing     shared.ListSpec
	PageSize    int
	// SelfOrAdmin documents that updates are limited to the caller's own record.
	SelfOrAdmin bool
}

// Endpoints expands r into its six standard operations.
func (r Resource) Endpoints() []Endpoint {
	collection := "/v1/" + r.Name + "/"
	item := collection + "{id}/"
	readSchema := r.Schema
	if r.ListSchema != "" {
		readSchema = r.ListSchema
	}
	patch := r.PatchSchema
	if patch == "" {
		patch = r.WriteSchema
	}
	idParam := Param{Name: "id", In: "path", Type: "integer", Required: true,
		Description: fmt.Sprintf("A unique integer value identifying this %s.", r.Singular)}
	plural := r.Name
	if r.Tag != "" {
		plural = strings.ToLower(r.Tag)
	}
	selfNote := ""
	if r.SelfOrAdmin {
		selfNote = "\n\nNon-admin users may only modify their own record."
	}

	return []Endpoint{
		{
			Method: http.MethodGet, Path: collection, OperationID: r.Name + "_list", Tag: r.Tag,
			Description: "List all " + plural + ".", RequiresAuth: true, IsList: true,
			Params:   r.listParams(),
			Declared: map[int]Response{http.StatusOK: {Description: "OK", Schema: readSchema, Paginated: true}},
		},
		{
			Method: http.MethodPost, Path: collection, OperationID: r.Name + "_create", Tag: r.Tag,
			Description: "Create a new " + r.Singular + ".", RequiresAuth: true, RequestBody: r.WriteSchema,
			Declared: map[int]Response{http.StatusCreated: {Description: "Created", Schema: r.Schema}},
		},
		{
			Method: http.MethodGet, Path: item, OperationID: r.Name + "_retrieve", Tag: r.Tag,
			Description: "Get a " + r.Singular + " by id", RequiresAuth: true, Params: []Param{idParam},
			Declared: map[int]Response{http.StatusOK: {Description: "OK", Schema: readSchema}},
		},
		{
			Method: http.MethodPut, Path: item, OperationID: r.Name + "_update", Tag: r.Tag,
			Description: "Update a " + r.Singular + " by id." + selfNote, RequiresAuth: true,
			Params: []Param{idParam}, RequestBody: r.WriteSchema,
			Declared: map[int]Response{http.StatusOK: {Description: "OK", Schema: r.Schema}},
		},
		{
			Method: http.MethodPatch, Path: item, OperationID: r.Name + "_partial_update", Tag: r.Tag,
			Description: "Partial update a " + r.Singular + " by id." + selfNote, RequiresAuth: true,
			Params: []Param{idParam}, RequestBody: patch,
			Declared: map[int]Response{http.StatusOK: {Description: "OK", Schema: r.Schema}},
		},
		{
			Method: http.MethodDelete, Path: item, OperationID: r.Name + "_destroy", Tag: r.Tag,
			Description: "Delete a " + r.Singular + " by id." + adminOnlyNote, RequiresAuth: true,
			Params:   []Param{idParam},
			Declared: map[int]Response{http.StatusNoContent: {Description: "No response body"}},
		},
	}
}

func (r Resource) listParams() []Param {
	params := []Param{
		{Name: "page", In: "query", Type: "integer", Description: "A page number within the paginated result set."},
		{Name: "size", In: "query", Type: "integer", Description: fmt.Sprintf("Number of results to return per page. Default: %d", r.PageSize)},
	}
	if names := r.Listing.SearchNames(); len(names) > 0 {
		params = append(params, Param{Name: "search", In: "query", Type: "string", Description: "Search in " + strings.Join(names, ", ")})
	}
	if names := r.Listing.OrderingNames(); len(names) > 0 {
		params = append(params, Param{Name: "ordering", In: "query", Type: "string", Description: "Order by " + strings.Join(names, ", ")})
	}
	for _, f := range r.Listing.Filters {
		typ := "string"
		switch f.Kind {
		case shared.KindInt:
			typ = "integer"
		case shared.KindBool:
			typ = "boolean"
		}
		params = append(params, Param{Name: f.Name, In: "query", Type: typ})
	}
	return params
}
