package shared

import (
	"net/http"
	"strconv"
)

// Page is the paginated list response body.
type Page[T any] struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

// NewPage computes the page links for results of a list request.
func NewPage[T any](r *http.Request, params ListParams, total int, results []T) Page[T] {
	if results == nil {
		results = []T{}
	}
	page := Page[T]{Count: total, Results: results}
	if params.Page*params.Size < total {
		next := pageURL(r, params.Page+1)
		page.Next = &next
	}
	if params.Page > 1 {
		prev := pageURL(r, params.Page-1)
		page.Previous = &prev
	}
	return page
}

// pageURL rebuilds the absolute request URL pointing at page. The first page
// drops the page parameter entirely.
func pageURL(r *http.Request, page int) string {
	scheme := r.URL.Scheme
	if scheme == "" {
		scheme = "http"
		if r.TLS != nil {
			scheme = "https"
		}
	}
	u := *r.URL
	u.Scheme = scheme
	u.Host = r.Host
	q := u.Query()
	if page <= 1 {
		q.Del("page")
	} else {
		q.Set("page", strconv.Itoa(page))
	}
	u.RawQuery = q.Encode()
	return u.String()
}
