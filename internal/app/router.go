package app

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/garage-admin/garage/internal/apidoc"
	"github.com/garage-admin/garage/internal/auth"
	"github.com/garage-admin/garage/internal/observability"
	"github.com/garage-admin/garage/internal/platform/httpx"
	"github.com/garage-admin/garage/internal/rbac"
)

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// ResourceHandler is implemented by every /v1 resource handler.
type ResourceHandler interface {
	MountRoutes(r chi.Router, authz rbac.Middleware)
}

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger         *slog.Logger
	Config         *Config
	Pool           Pinger
	Metrics        *observability.Metrics
	Document       *apidoc.Document
	AuthHandler    *auth.Handler
	Authenticator  auth.Authenticator
	RBACMiddleware rbac.Middleware
	Resources      []ResourceHandler
}

// NewRouter constructs the chi.Router with the API defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}

	// Set before any Route call so sub-routers inherit them.
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		httpx.RespondError(w, httpx.ErrNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		httpx.RespondError(w, httpx.MethodNotAllowed(req.Method))
	})

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		if params.Pool != nil {
			ctx, cancel := context.WithTimeout(req.Context(), 2*time.Second)
			defer cancel()
			if err := params.Pool.Ping(ctx); err != nil {
				params.Logger.Error("health check", slog.Any("error", err))
				httpx.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
				return
			}
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}
	if params.Document != nil {
		params.Document.Register()
		r.Method(http.MethodGet, "/schema", params.Document)
		r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
	}

	if params.AuthHandler != nil {
		params.AuthHandler.MountRoutes(r)
	}

	r.Route("/v1", func(r chi.Router) {
		r.Use(params.Authenticator.Middleware)
		for _, h := range params.Resources {
			h.MountRoutes(r, params.RBACMiddleware)
		}
	})

	return r
}
