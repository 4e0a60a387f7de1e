// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/taibuivan/syncbridge/internal/admin"
	"github.com/taibuivan/syncbridge/internal/catalog"
	"github.com/taibuivan/syncbridge/internal/guardian"
	"github.com/taibuivan/syncbridge/internal/mission"
	"github.com/taibuivan/syncbridge/internal/order"
	"github.com/taibuivan/syncbridge/internal/platform/config"
	"github.com/taibuivan/syncbridge/internal/platform/constants"
	"github.com/taibuivan/syncbridge/internal/platform/middleware"
	"github.com/taibuivan/syncbridge/internal/platform/respond"
	"github.com/taibuivan/syncbridge/internal/transmission"
)

// WelcomeMessage is returned by GET /api/.
const WelcomeMessage = "TheSyncBridge API - Welcome Guardian"

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
type Handlers struct {
	// Liveness is the /health handler, always 200 while the process runs.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler, 200 only when storage and cache answer.
	Readiness http.HandlerFunc

	Mission      *mission.Handler
	Guardian     *guardian.Handler
	Transmission *transmission.Handler
	Catalog      *catalog.Handler
	Order        *order.Handler
	Admin        *admin.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, h Handlers) *Server {
	r := NewRouter(context, cfg, log, h)

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// NewRouter builds the routing tree. It is separate from [NewServer] so the
// whole surface can be exercised with httptest.
func NewRouter(context context.Context, cfg *config.Config, log *slog.Logger, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	if cfg.TrustProxy {
		r.Use(middleware.TrustProxyHeaders())
	}
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(context))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Unauthenticated health checks for container orchestration.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Application API
	r.Route("/api", func(api chi.Router) {
		api.Get("/", welcome)

		api.Route("/mission", h.Mission.RegisterRoutes)
		api.Route("/guardians", h.Guardian.RegisterRoutes)
		api.Route("/certificate", h.Guardian.RegisterCertificateRoutes)
		api.Route("/transmissions", h.Transmission.RegisterRoutes)
		api.Route("/merchandise", h.Catalog.RegisterRoutes)
		api.Route("/cart", h.Order.RegisterCartRoutes)
		api.Route("/orders", h.Order.RegisterRoutes)
		api.Route("/admin", h.Admin.RegisterRoutes)
	})

	return r
}

func welcome(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, map[string]string{constants.FieldMessage: WelcomeMessage})
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server_starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
