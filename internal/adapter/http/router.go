package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/umair/tradeledger/internal/adapter/http/handler"
	"github.com/umair/tradeledger/internal/adapter/http/middleware"
	"github.com/umair/tradeledger/internal/infrastructure/auth"
	"github.com/umair/tradeledger/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	AuthHandler        *handler.AuthHandler
	PartyHandler       *handler.PartyHandler
	TransactionHandler *handler.TransactionHandler
	BillHandler        *handler.BillHandler
	SaleHandler        *handler.SaleHandler
	RecoveryHandler    *handler.RecoveryHandler
	ExpenseHandler     *handler.ExpenseHandler
	BankHandler        *handler.BankHandler
	HealthHandler      *handler.HealthHandler
	JWTManager         *auth.JWTManager
	IdempotencyStore   usecase.IdempotencyStore
	Logger             zerolog.Logger
	RateLimit          float64
	RateBurst          int
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery)
	r.Use(middleware.Metrics)

	if cfg.RateLimit > 0 {
		limiter := middleware.NewRateLimiter(cfg.RateLimit, cfg.RateBurst)
		r.Use(limiter.Limit)
	}

	// Unauthenticated endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", cfg.AuthHandler.Register)
		r.Post("/login", cfg.AuthHandler.Login)
	})

	// Company-scoped endpoints
	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.AuthMiddleware(cfg.JWTManager))

		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore)
			r.Use(idempotencyMiddleware.Wrap)
		}

		// Party ledger
		r.Route("/ledger", func(r chi.Router) {
			r.Post("/parties", cfg.PartyHandler.Create)
			r.Get("/parties", cfg.PartyHandler.List)
			r.Get("/parties/{id}", cfg.PartyHandler.Get)
			r.Put("/parties/{id}", cfg.PartyHandler.Update)
			r.Delete("/parties/{id}", cfg.PartyHandler.Delete)
			r.Get("/parties/{id}/statement", cfg.PartyHandler.Statement)
			r.Get("/parties/{partyId}/transactions", cfg.TransactionHandler.ListByParty)

			r.Post("/transactions", cfg.TransactionHandler.Create)
			r.Get("/transactions/{id}", cfg.TransactionHandler.Get)
			r.Put("/transactions/{id}", cfg.TransactionHandler.Update)
			r.Delete("/transactions/{id}", cfg.TransactionHandler.Delete)
		})

		// Bills
		r.Route("/bill", func(r chi.Router) {
			r.Post("/", cfg.BillHandler.Create)
			r.Get("/", cfg.BillHandler.List)
			r.Get("/template", cfg.BillHandler.LatestTemplate)
			r.Get("/{id}", cfg.BillHandler.Get)
			r.Put("/{id}", cfg.BillHandler.Update)
			r.Delete("/{id}", cfg.BillHandler.Delete)
		})

		// Sales
		r.Route("/sale", func(r chi.Router) {
			r.Post("/", cfg.SaleHandler.Create)
			r.Get("/", cfg.SaleHandler.List)
			r.Get("/{id}", cfg.SaleHandler.Get)
			r.Put("/{id}", cfg.SaleHandler.Update)
			r.Delete("/{id}", cfg.SaleHandler.Delete)
		})

		// Recoveries
		r.Route("/recovery", func(r chi.Router) {
			r.Post("/", cfg.RecoveryHandler.Create)
			r.Get("/", cfg.RecoveryHandler.List)
			r.Get("/{id}", cfg.RecoveryHandler.Get)
			r.Put("/{id}", cfg.RecoveryHandler.Update)
			r.Delete("/{id}", cfg.RecoveryHandler.Delete)
		})

		// Expense sheets
		r.Route("/expense-ledger", func(r chi.Router) {
			r.Post("/", cfg.ExpenseHandler.Create)
			r.Get("/", cfg.ExpenseHandler.List)
			r.Get("/{id}", cfg.ExpenseHandler.Get)
			r.Put("/{id}", cfg.ExpenseHandler.Update)
			r.Delete("/{id}", cfg.ExpenseHandler.Delete)
		})

		// Banks and the mirror ledger
		r.Route("/bank", func(r chi.Router) {
			r.Post("/", cfg.BankHandler.CreateBank)
			r.Get("/", cfg.BankHandler.ListBanks)
			r.Get("/statement", cfg.BankHandler.Statement)
			r.Get("/{id}", cfg.BankHandler.GetBank)
			r.Put("/{id}", cfg.BankHandler.UpdateBank)
			r.Delete("/{id}", cfg.BankHandler.DeleteBank)

			r.Post("/payment-methods", cfg.BankHandler.CreatePaymentMethod)
			r.Get("/payment-methods", cfg.BankHandler.ListPaymentMethods)
			r.Delete("/payment-methods/{id}", cfg.BankHandler.DeletePaymentMethod)

			r.Post("/transactions", cfg.BankHandler.CreateTransaction)
			r.Delete("/transactions/{id}", cfg.BankHandler.DeleteTransaction)
		})
	})

	return r
}
