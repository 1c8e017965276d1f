package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/unrolled/secure"

	"github.com/garage-admin/garage/internal/observability"
	"github.com/garage-admin/garage/internal/platform/httpx"
)

// MiddlewareConfig aggregates dependencies shared by the middleware stack.
type MiddlewareConfig struct {
	Logger  *slog.Logger
	Config  *Config
	Metrics *observability.Metrics
}

// MiddlewareStack installs the API middleware chain.
func MiddlewareStack(cfg MiddlewareConfig) []func(http.Handler) http.Handler {
	opts := secure.Options{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
		ReferrerPolicy:     "strict-origin-when-cross-origin",
		SSLRedirect:        cfg.Config.IsProduction(),
		IsDevelopment:      !cfg.Config.IsProduction(),
	}
	if cfg.Config != nil {
		opts.AllowedHosts = cfg.Config.AppAllowedHosts
		if cfg.Config.AppTrustProxy {
			opts.SSLProxyHeaders = map[string]string{"X-Forwarded-Proto": "https"}
		}
	}
	secureMiddleware := secure.New(opts)
	secureMiddleware.SetBadHostHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		httpx.RespondError(w, httpx.ErrBadHost)
	}))

	timeout := 30 * time.Second
	if cfg.Config != nil && cfg.Config.AppRequestTimeout > 0 {
		timeout = cfg.Config.AppRequestTimeout
	}
	rate := 120
	if cfg.Config != nil && cfg.Config.AppRateLimit > 0 {
		rate = cfg.Config.AppRateLimit
	}

	var middlewares []func(http.Handler) http.Handler
	if cfg.Config != nil && cfg.Config.AppTrustProxy {
		middlewares = append(middlewares, middleware.RealIP, ForwardedScheme)
	}
	middlewares = append(middlewares,
		middleware.RequestID,
		Recoverer(cfg.Logger),
		Timeout(timeout),
		func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				// Rejections are either the bad host envelope or an HTTPS redirect.
				if err := secureMiddleware.Process(w, r); err != nil {
					cfg.Logger.Warn("secure headers blocked request", slog.Any("error", err))
					return
				}
				next.ServeHTTP(w, r)
			})
		},
		httprate.Limit(rate, time.Minute,
			httprate.WithKeyFuncs(httprate.KeyByIP),
			httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
				httpx.RespondError(w, httpx.ErrThrottled)
			}),
		),
	)
	if cfg.Metrics != nil {
		middlewares = append(middlewares, cfg.Metrics.Middleware)
	}
	middlewares = append(middlewares, RequestLogger(cfg.Logger), middleware.StripSlashes)
	return middlewares
}

// Recoverer turns panics into a logged server_error envelope.
func Recoverer(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				logger.Error("panic serving request",
					slog.String("path", r.URL.Path),
					slog.String("request_id", middleware.GetReqID(r.Context())),
					slog.Any("error", fmt.Sprint(rec)),
					slog.String("stack", string(debug.Stack())))
				httpx.RespondError(w, httpx.ErrServer)
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// Timeout bounds the request context by d. A handler that runs out of time
// without writing anything gets a 504 envelope.
func Timeout(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			defer func() {
				if errors.Is(ctx.Err(), context.DeadlineExceeded) && ww.Status() == 0 {
					httpx.RespondError(ww, httpx.ErrTimeout)
				}
			}()
			next.ServeHTTP(ww, r.WithContext(ctx))
		})
	}
}

// ForwardedScheme records the X-Forwarded-Proto scheme on the request URL.
// It is installed only behind a trusted proxy.
func ForwardedScheme(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch proto := strings.ToLower(r.Header.Get("X-Forwarded-Proto")); proto {
		case "http", "https":
			r.URL.Scheme = proto
		}
		next.ServeHTTP(w, r)
	})
}

// RequestLogger writes one access log line per request through logger.
func RequestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.RequestLogger(&middleware.DefaultLogFormatter{
		Logger:  slog.NewLogLogger(logger.Handler(), slog.LevelInfo),
		NoColor: true,
	})
}
