// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the SyncBridge HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Open storage (PostgreSQL or SQLite) and run migrations.
//  4. Connect to Redis when configured.
//  5. Load the merchandise catalog.
//  6. Wire HTTP handlers.
//  7. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
//
// Running "api hash-password" instead reads a password from stdin and prints
// the bcrypt digest for ADMIN_PASSWORD_HASH.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/taibuivan/syncbridge/internal/admin"
	"github.com/taibuivan/syncbridge/internal/api"
	"github.com/taibuivan/syncbridge/internal/catalog"
	"github.com/taibuivan/syncbridge/internal/guardian"
	"github.com/taibuivan/syncbridge/internal/mission"
	"github.com/taibuivan/syncbridge/internal/order"
	"github.com/taibuivan/syncbridge/internal/platform/config"
	"github.com/taibuivan/syncbridge/internal/platform/constants"
	"github.com/taibuivan/syncbridge/internal/platform/middleware"
	"github.com/taibuivan/syncbridge/internal/transmission"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == hashPasswordCommand {
		if err := runHashPassword(os.Stdin, os.Stdout); err != nil {
			fmt.Fprintln(os.Stderr, "hash-password:", err)
			os.Exit(1)
		}
		return
	}

	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	log := newLogger(slog.LevelInfo)
	slog.SetDefault(log)

	log.Info("service_initializing", slog.String("version", constants.AppVersion))

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		log = newLogger(slog.LevelDebug)
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.String("storage_driver", cfg.StorageDriver),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. Storage ────────────────────────────────────────────────────────
	stores, err := openStorage(startupCtx, cfg, log)
	must(log, err, "open storage")
	defer stores.close()

	// ── 4. Redis ──────────────────────────────────────────────────────────
	throttle, cacheCheck, closeCache, err := openThrottle(startupCtx, cfg, log)
	must(log, err, "connect to redis")
	defer closeCache()

	// ── 5. Catalog ────────────────────────────────────────────────────────
	products, err := catalog.Load(cfg.CatalogPath)
	must(log, err, "load catalog")
	log.Info("catalog_loaded", slog.Any("products", products.Types()))

	// ── 6. Health handlers (wired with real dependency checkers) ──────────
	checks := []api.HealthCheck{stores.health}
	if cacheCheck != nil {
		checks = append(checks, *cacheCheck)
	}
	liveness, readiness := api.NewHealthHandlers(checks, log)

	// ── 7. Domain Wiring ──────────────────────────────────────────────────
	adminService := admin.NewService(
		admin.NewGate(cfg.AdminPassword, cfg.AdminPasswordHash),
		throttle,
		cfg.AdminMaxFailedAttempts,
		cfg.AdminLockoutWindow,
		log,
	)
	requireAdmin := middleware.RequireAdmin(adminService)

	guardianService := guardian.NewService(stores.guardians, log, cfg.MissionTotalDays)
	transmissionService := transmission.NewService(stores.transmissions, log, cfg.MissionTotalDays)
	orderService := order.NewService(stores.orders, guardianService, products, log)
	clock := mission.NewClock(cfg.MissionStartDate, cfg.MissionTotalDays)

	orderHandler := order.NewHandler(orderService, requireAdmin)

	// ── 8. HTTP Server ────────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:     liveness,
		Readiness:    readiness,
		Mission:      mission.NewHandler(clock),
		Guardian:     guardian.NewHandler(guardianService),
		Transmission: transmission.NewHandler(transmissionService, requireAdmin),
		Catalog:      catalog.NewHandler(products),
		Order:        orderHandler,
		Admin:        admin.NewHandler(adminService),
	}

	serverCtx, serverCancel := context.WithCancel(context.Background())
	defer serverCancel()

	server := api.NewServer(serverCtx, cfg, log, handlers)

	// ── 9. Graceful Shutdown ──────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		return
	}

	log.Info("server stopped cleanly")
}

// newLogger builds the JSON stdout logger tagged with the app name.
func newLogger(level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})).With(slog.String("app", "syncbridge"))
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
