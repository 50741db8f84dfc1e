package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/iho/shopledger/internal/adapter/http/handler"
	"github.com/iho/shopledger/internal/adapter/http/middleware"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	DashboardHandler *handler.DashboardHandler
	LedgerHandler    *handler.LedgerHandler
	ExportHandler    *handler.ExportHandler
	SnapshotHandler  *handler.SnapshotHandler
	HealthHandler    *handler.HealthHandler
	Logger           zerolog.Logger
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery)
	r.Use(middleware.Metrics)

	// Health and metrics endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/shops", func(r chi.Router) {
			r.Get("/", cfg.DashboardHandler.List)
			r.Get("/filters", cfg.DashboardHandler.FilterOptions)
			r.Get("/export", cfg.ExportHandler.Summary)
			r.Get("/export/bulk", cfg.ExportHandler.Bulk)
			r.Get("/{name}/ledger", cfg.LedgerHandler.Get)
			r.Get("/{name}/ledger/export", cfg.ExportHandler.ShopLedger)
		})

		// Snapshots require a configured database
		if cfg.SnapshotHandler != nil {
			r.Route("/snapshots", func(r chi.Router) {
				r.Post("/", cfg.SnapshotHandler.Create)
				r.Get("/", cfg.SnapshotHandler.List)
			})
		}
	})

	return r
}
