package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garage-admin/garage/internal/observability"
	"github.com/garage-admin/garage/internal/platform/httpx"
	"github.com/garage-admin/garage/internal/rbac"
	_ "github.com/garage-admin/garage/testing"
)

type fakePinger struct{ err error }

func (p fakePinger) Ping(context.Context) error { return p.err }

type widgets struct{}

func (widgets) MountRoutes(r chi.Router, authz rbac.Middleware) {
	r.Route("/widgets", func(r chi.Router) {
		r = r.With(authz.Require("widgets", rbac.DeleteOnlyByAdmin))
		r.Get("/", func(w http.ResponseWriter, _ *http.Request) { httpx.JSON(w, http.StatusOK, []string{}) })
	})
}

func newTestRouter(pinger Pinger) http.Handler {
	cfg := &Config{AppRequestTimeout: 0, AppRateLimit: 1000, PageSize: 10}
	return NewRouter(RouterParams{
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		Config:    cfg,
		Pool:      pinger,
		Metrics:   observability.NewMetrics(),
		Document:  NewDocument(cfg),
		Resources: []ResourceHandler{widgets{}},
	})
}

func do(h http.Handler, method, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, path, nil))
	return rec
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	_, err := LoadConfig()
	require.Error(t, err)

	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("PAGE_SIZE", "25")
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 25, cfg.PageSize)
	assert.Equal(t, "garage", cfg.JWTIssuer)
	assert.False(t, cfg.IsProduction())
}

func TestHealthz(t *testing.T) {
	rec := do(newTestRouter(fakePinger{}), http.MethodGet, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec = do(newTestRouter(fakePinger{err: errors.New("down")}), http.MethodGet, "/healthz")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestUnknownRouteUsesEnvelope(t *testing.T) {
	rec := do(newTestRouter(nil), http.MethodGet, "/nope/")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"type":"client_error","errors":[{"code":"not_found","detail":"Not found.","attr":null}]}`, rec.Body.String())
}

func TestMethodNotAllowedUsesEnvelope(t *testing.T) {
	rec := do(newTestRouter(nil), http.MethodPut, "/healthz")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Contains(t, rec.Body.String(), `Method \"PUT\" not allowed.`)
}

func TestV1RequiresAuthentication(t *testing.T) {
	rec := do(newTestRouter(nil), http.MethodGet, "/v1/widgets/")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, httpx.AuthenticateHeader, rec.Header().Get("WWW-Authenticate"))
	assert.Contains(t, rec.Body.String(), "not_authenticated")
}

func TestSchemaEndpoint(t *testing.T) {
	rec := do(newTestRouter(nil), http.MethodGet, "/schema/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"/v1/services/{id}/"`)
	assert.Contains(t, rec.Body.String(), `"/token/refresh/"`)
}

func TestRecovererWritesServerError(t *testing.T) {
	h := Recoverer(slog.New(slog.NewTextHandler(io.Discard, nil)))(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	rec := do(h, http.MethodGet, "/")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), `"type":"server_error"`)
}

func TestTimeoutWritesEnvelope(t *testing.T) {
	h := Timeout(10 * time.Millisecond)(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	rec := do(h, http.MethodGet, "/")
	assert.Equal(t, http.StatusGatewayTimeout, rec.Code)
	assert.JSONEq(t, `{"type":"server_error","errors":[{"code":"timeout","detail":"The request took too long to process.","attr":null}]}`, rec.Body.String())

	h = Timeout(10 * time.Millisecond)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
		httpx.RespondError(w, httpx.ErrServer)
	}))
	rec = do(h, http.MethodGet, "/")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "timeout")
}

func TestForwardedSchemeOnlyBehindTrustedProxy(t *testing.T) {
	echo := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, r.URL.Scheme)
	})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.URL.Scheme = ""
	req.Header.Set("X-Forwarded-Proto", "https")
	rec := httptest.NewRecorder()
	ForwardedScheme(echo).ServeHTTP(rec, req)
	assert.Equal(t, "https", rec.Body.String())

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	stack := func(cfg *Config) http.Handler {
		var h http.Handler = echo
		mws := MiddlewareStack(MiddlewareConfig{Logger: logger, Config: cfg})
		for i := len(mws) - 1; i >= 0; i-- {
			h = mws[i](h)
		}
		return h
	}
	for _, tc := range []struct {
		trust bool
		want  string
	}{{false, ""}, {true, "https"}} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.URL.Scheme = ""
		req.Header.Set("X-Forwarded-Proto", "https")
		rec := httptest.NewRecorder()
		stack(&Config{AppRateLimit: 1000, AppTrustProxy: tc.trust}).ServeHTTP(rec, req)
		assert.Equal(t, tc.want, rec.Body.String())
	}
}

func TestBadHostUsesEnvelope(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	var h http.Handler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	mws := MiddlewareStack(MiddlewareConfig{Logger: logger, Config: &Config{AppEnv: "production", AppRateLimit: 1000, AppAllowedHosts: []string{"api.example.com"}}})
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	req := httptest.NewRequest(http.MethodGet, "https://evil.test/", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"code":"bad_host"`)
}
