package handler

import (
	"database/sql"
	"time"

	"github.com/njunio10/Convel-Controle/internal/infra/observability"
	"github.com/njunio10/Convel-Controle/internal/service"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Dependencies carries everything the router needs wired in.
type Dependencies struct {
	Logger         *zap.Logger
	Metrics        *observability.Metrics
	DB             *sql.DB
	AllowedOrigins []string

	Auth         *service.AuthService
	Transactions *service.TransactionService
	Clients      *service.ClientService
	Leads        *service.LeadService
	Finance      *service.FinanceService
}

// NewRouter builds the HTTP surface of the panel API.
func NewRouter(deps Dependencies) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Heartbeat("/ping"))
	r.Use(chimiddleware.Timeout(30 * time.Second))
	r.Use(observability.TracingMiddleware)
	r.Use(observability.ZapLoggerMiddleware(deps.Logger))
	r.Use(metricsMiddleware(deps.Metrics))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Ops endpoints.
	r.Get("/healthz", healthzHandler())
	r.Get("/readyz", readyzHandler(deps.DB))
	r.Handle("/metrics", promhttp.HandlerFor(deps.Metrics.Registry, promhttp.HandlerOpts{}))

	r.Get("/status", statusHandler(deps.Metrics))

	// Sessions.
	r.Post("/login", loginHandler(deps.Auth, deps.Logger))
	r.Post("/refresh", refreshHandler(deps.Auth, deps.Logger))
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware(deps.Auth, deps.Logger))
		r.Get("/me", meHandler(deps.Auth, deps.Logger))
		r.Post("/logout", logoutHandler(deps.Auth, deps.Logger))
	})

	// Ledger.
	r.Route("/transactions", func(r chi.Router) {
		r.Get("/", listTransactionsHandler(deps.Transactions, deps.Logger))
		r.Get("/summary", transactionSummaryHandler(deps.Transactions, deps.Logger))
		r.Post("/", createTransactionHandler(deps.Transactions, deps.Logger))
		r.Get("/{id}", getTransactionHandler(deps.Transactions, deps.Logger))
		r.Put("/{id}", updateTransactionHandler(deps.Transactions, deps.Logger))
		r.Patch("/{id}", updateTransactionHandler(deps.Transactions, deps.Logger))
		r.Delete("/{id}", deleteTransactionHandler(deps.Transactions, deps.Logger))
	})

	// Clients.
	r.Route("/clients", func(r chi.Router) {
		r.Get("/", listClientsHandler(deps.Clients, deps.Logger))
		r.Post("/", createClientHandler(deps.Clients, deps.Logger))
		r.Get("/{id}", getClientHandler(deps.Clients, deps.Logger))
		r.Put("/{id}", updateClientHandler(deps.Clients, deps.Logger))
		r.Patch("/{id}", updateClientHandler(deps.Clients, deps.Logger))
		r.Delete("/{id}", deleteClientHandler(deps.Clients, deps.Logger))
	})

	// Leads.
	r.Route("/leads", func(r chi.Router) {
		r.Get("/", listLeadsHandler(deps.Leads, deps.Logger))
		r.Post("/", createLeadHandler(deps.Leads, deps.Logger))
		r.Get("/{id}", getLeadHandler(deps.Leads, deps.Logger))
		r.Put("/{id}", updateLeadHandler(deps.Leads, deps.Logger))
		r.Patch("/{id}", updateLeadHandler(deps.Leads, deps.Logger))
		r.Patch("/{id}/status", updateLeadStatusHandler(deps.Leads, deps.Logger))
		r.Delete("/{id}", deleteLeadHandler(deps.Leads, deps.Logger))
	})

	// Payment provider proxy.
	r.Route("/asaas", func(r chi.Router) {
		r.Get("/payments", listPaymentsHandler(deps.Finance, deps.Logger))
		r.Get("/payments/{id}", getPaymentHandler(deps.Finance, deps.Logger))
		r.Post("/payments/{id}/confirm", confirmPaymentHandler(deps.Finance, deps.Logger))
		r.Get("/balance", getBalanceHandler(deps.Finance, deps.Logger))
		r.Get("/financial", getFinancialHandler(deps.Finance, deps.Logger))
		r.Get("/entries", getEntriesHandler(deps.Finance, deps.Logger))
		r.Get("/outflows", getOutflowsHandler(deps.Finance, deps.Logger))
	})

	return r
}
