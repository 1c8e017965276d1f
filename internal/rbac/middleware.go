package rbac

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/garage-admin/garage/internal/platform/httpx"
	"github.com/garage-admin/garage/internal/shared"
)

// IDParam is the route parameter naming the target record.
const IDParam = "id"

// Middleware enforces authorization rules on resource routes.
type Middleware struct{}

// Require guards a resource with rules, evaluated in order. Anonymous requests
// are rejected with 401 before any rule runs.
func (m Middleware) Require(resource string, rules ...Rule) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal := shared.PrincipalFromContext(r.Context())
			if principal == nil {
				httpx.RespondError(w, httpx.ErrNotAuthenticated)
				return
			}
			req, ok := requestFrom(r, resource, principal)
			if !ok {
				httpx.RespondError(w, httpx.ErrNotFound)
				return
			}
			if d := Evaluate(req, rules...); !d.Allowed {
				httpx.RespondError(w, httpx.PermissionDenied(d.Message))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// requestFrom reads the action and target from the matched route. A target
// that is not an integer reports false.
func requestFrom(r *http.Request, resource string, principal *shared.Principal) (Request, bool) {
	req := Request{Principal: principal, Resource: resource}
	raw := chi.URLParam(r, IDParam)
	if raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return Request{}, false
		}
		req.TargetID = &id
	}
	req.Action = ActionFor(r.Method, req.TargetID != nil)
	return req, true
}
