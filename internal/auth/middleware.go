package auth

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/garage-admin/garage/internal/platform/httpx"
	"github.com/garage-admin/garage/internal/shared"
)

const bearerScheme = "bearer"

// Authenticator resolves bearer access tokens into the request principal.
type Authenticator struct {
	Service *Service
	Logger  *slog.Logger
}

// Middleware attaches the principal when a bearer token is present. Requests
// without credentials continue anonymously; authorization decides later
// whether that is acceptable. Invalid credentials are rejected with 401.
func (a Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := strings.TrimSpace(r.Header.Get("Authorization"))
		if header == "" {
			next.ServeHTTP(w, r)
			return
		}
		parts := strings.Fields(header)
		if !strings.EqualFold(parts[0], bearerScheme) {
			next.ServeHTTP(w, r)
			return
		}
		if len(parts) != 2 {
			httpx.RespondError(w, ErrBadHeader)
			return
		}
		principal, err := a.Service.Authenticate(r.Context(), parts[1])
		if err != nil {
			httpx.Fail(w, a.Logger, "authenticate", err)
			return
		}
		next.ServeHTTP(w, r.WithContext(shared.ContextWithPrincipal(r.Context(), principal)))
	})
}
