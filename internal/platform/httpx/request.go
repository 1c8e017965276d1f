package httpx

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/garage-admin/garage/internal/shared"
)

// Paging holds the default and maximum page sizes of list endpoints.
type Paging struct {
	Size    int
	MaxSize int
}

// Params parses the list query of r against spec.
func (p Paging) Params(r *http.Request, spec shared.ListSpec) (shared.ListParams, error) {
	return shared.ParseListParams(r.URL.Query(), spec, p.Size, p.MaxSize)
}

// PathID parses the {id} route parameter. Anything but a positive integer is
// reported as not found.
func PathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrNotFound
	}
	return id, nil
}
