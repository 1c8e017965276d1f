package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/garage-admin/garage/internal/app"
	"github.com/garage-admin/garage/internal/auth"
	"github.com/garage-admin/garage/internal/garage/brands"
	"github.com/garage-admin/garage/internal/garage/clients"
	"github.com/garage-admin/garage/internal/garage/services"
	"github.com/garage-admin/garage/internal/garage/vehicles"
	"github.com/garage-admin/garage/internal/garage/vehicletypes"
	"github.com/garage-admin/garage/internal/observability"
	"github.com/garage-admin/garage/internal/platform/cache"
	"github.com/garage-admin/garage/internal/platform/db"
	"github.com/garage-admin/garage/internal/platform/httpx"
	"github.com/garage-admin/garage/internal/rbac"
	"github.com/garage-admin/garage/internal/users"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	dbpool, err := db.New(ctx, cfg.PGDSN, cfg.PGMaxConns)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbpool.Close()

	if cfg.MigrateOnStart {
		if err := migrateUp(dbpool, logger); err != nil {
			logger.Error("migrate", slog.Any("error", err))
			os.Exit(1)
		}
	}

	redisClient, err := cache.New(ctx, cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	tokens, err := auth.NewTokenManager(auth.TokenConfig{
		Secret:     cfg.JWTSecret,
		Issuer:     cfg.JWTIssuer,
		AccessTTL:  cfg.JWTAccessTTL,
		RefreshTTL: cfg.JWTRefreshTTL,
	})
	if err != nil {
		logger.Error("token manager", slog.Any("error", err))
		os.Exit(1)
	}

	metrics := observability.NewMetrics()
	paging := httpx.Paging{Size: cfg.PageSize, MaxSize: cfg.MaxPageSize}

	authService := auth.NewService(auth.NewRepository(dbpool), tokens, auth.NewRedisDenylist(redisClient))
	authHandler := auth.NewHandler(logger, authService).WithEvents(metrics)

	resources := []app.ResourceHandler{
		users.NewHandler(logger, users.NewService(users.NewRepository(dbpool)), paging),
		clients.NewHandler(logger, clients.NewService(clients.NewRepository(dbpool)), paging),
		brands.NewHandler(logger, brands.NewService(brands.NewRepository(dbpool)), paging),
		vehicletypes.NewHandler(logger, vehicletypes.NewRepository(dbpool), paging),
		vehicles.NewHandler(logger, vehicles.NewService(vehicles.NewRepository(dbpool)), paging),
		services.NewHandler(logger, services.NewServiceManager(services.NewRepository(dbpool)), paging),
	}

	router := app.NewRouter(app.RouterParams{
		Logger:         logger,
		Config:         cfg,
		Pool:           dbpool,
		Metrics:        metrics,
		Document:       app.NewDocument(cfg),
		AuthHandler:    authHandler,
		Authenticator:  auth.Authenticator{Service: authService, Logger: logger},
		RBACMiddleware: rbac.Middleware{},
		Resources:      resources,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
