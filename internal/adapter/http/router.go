package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/hydrosur/fincore/internal/adapter/http/handler"
	"github.com/hydrosur/fincore/internal/adapter/http/middleware"
	"github.com/hydrosur/fincore/internal/domain"
	"github.com/hydrosur/fincore/internal/infrastructure/auth"
	"github.com/hydrosur/fincore/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	CashSessionHandler *handler.CashSessionHandler
	CreditHandler      *handler.CreditHandler
	VoucherHandler     *handler.VoucherHandler
	StatsHandler       *handler.StatsHandler
	HealthHandler      *handler.HealthHandler

	JWTManager  *auth.JWTManager
	AuthEnabled bool

	IdempotencyStore usecase.IdempotencyStore
	RateLimiter      *middleware.RateLimiter
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

	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	// Operational endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.AuthMiddleware(cfg.JWTManager, cfg.AuthEnabled))

		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore)
			r.Use(idempotencyMiddleware.Wrap)
		}

		// Cash drawer
		r.Route("/cash-sessions", func(r chi.Router) {
			r.Use(middleware.RequireRole(domain.RoleOperator))
			r.Post("/", cfg.CashSessionHandler.Open)
			r.Get("/", cfg.CashSessionHandler.History)
			r.Get("/current", cfg.CashSessionHandler.Current)
			r.Post("/movements", cfg.CashSessionHandler.RecordMovement)
			r.Post("/close", cfg.CashSessionHandler.Close)
			r.Get("/{id}", cfg.CashSessionHandler.Report)
		})

		// Credit accounts
		r.Route("/credits", func(r chi.Router) {
			r.Use(middleware.RequireRole(domain.RoleOperator))
			r.Post("/", cfg.CreditHandler.Create)
			r.Get("/overdue", cfg.CreditHandler.Overdue)
			r.Get("/{id}", cfg.CreditHandler.Get)
			r.Post("/{id}/payments", cfg.CreditHandler.ApplyPayment)
		})

		// Vouchers
		r.Route("/vouchers", func(r chi.Router) {
			r.With(middleware.RequireRole(domain.RoleDelivery)).
				Post("/", cfg.VoucherHandler.Create)
			r.With(middleware.RequireRole(domain.RoleOperator, domain.RoleDelivery, domain.RoleClient)).
				Get("/", cfg.VoucherHandler.List)
			r.With(middleware.RequireRole(domain.RoleOperator, domain.RoleDelivery, domain.RoleClient)).
				Get("/stats", cfg.VoucherHandler.Stats)
			r.With(middleware.RequireRole(domain.RoleOperator, domain.RoleDelivery, domain.RoleClient)).
				Get("/{id}", cfg.VoucherHandler.Get)
			r.With(middleware.RequireRole(domain.RoleDelivery, domain.RoleClient)).
				Post("/{id}/status", cfg.VoucherHandler.Transition)

			// Admin-only correction tooling
			r.With(middleware.RequireRole()).
				Post("/{id}/force-status", cfg.VoucherHandler.ForceSetStatus)
			r.With(middleware.RequireRole()).
				Get("/{id}/audit", cfg.VoucherHandler.AuditTrail)
		})

		// Per-client views
		r.Route("/clients/{clientID}", func(r chi.Router) {
			r.Use(middleware.RequireRole(domain.RoleOperator))
			r.Get("/credits", cfg.CreditHandler.ListByClient)
			r.Post("/vouchers/pay-all", cfg.VoucherHandler.PayAllPending)
		})

		// Reconciliation reports
		r.Route("/stats", func(r chi.Router) {
			r.Use(middleware.RequireRole(domain.RoleOperator))
			r.Get("/pending-by-client", cfg.StatsHandler.PendingByClient)
		})
	})

	return r
}
