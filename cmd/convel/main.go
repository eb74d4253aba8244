package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/njunio10/Convel-Controle/internal/config"
	"github.com/njunio10/Convel-Controle/internal/domain"
	"github.com/njunio10/Convel-Controle/internal/handler"
	"github.com/njunio10/Convel-Controle/internal/infra/asaas"
	"github.com/njunio10/Convel-Controle/internal/infra/cache"
	"github.com/njunio10/Convel-Controle/internal/infra/observability"
	"github.com/njunio10/Convel-Controle/internal/infra/postgres"
	"github.com/njunio10/Convel-Controle/internal/infra/resilience"
	"github.com/njunio10/Convel-Controle/internal/repository"
	"github.com/njunio10/Convel-Controle/internal/service"

	"go.uber.org/zap"
)

func main() {
	config.LoadDotEnv(".env")
	cfg := config.Load()

	logger := observability.NewLogger(cfg.LogLevel)
	defer logger.Sync()

	shutdownTracer, err := observability.InitTracer(cfg.OTLPEndpoint, "convel-controle")
	if err != nil {
		logger.Warn("tracing disabled", zap.Error(err))
		shutdownTracer = func(context.Context) error { return nil }
	}

	metrics := observability.NewMetrics()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	db, err := postgres.Connect(ctx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	ctx, cancel = context.WithTimeout(context.Background(), 15*time.Second)
	err = postgres.Bootstrap(ctx, db)
	cancel()
	if err != nil {
		logger.Fatal("failed to bootstrap schema", zap.Error(err))
	}

	resCfg := resilience.Config{
		MaxRetries:     cfg.MaxRetries,
		InitialBackoff: cfg.InitialBackoff,
		MaxConcurrency: cfg.MaxConcurrency,
	}
	asaasClient := asaas.NewClient(
		&http.Client{Timeout: cfg.HTTPTimeout},
		cfg.AsaasBaseURL,
		cfg.AsaasAPIKey,
		resilience.NewCircuitBreaker("asaas"),
		resCfg,
		logger,
	)

	userCache := cache.New[domain.AuthUser](cfg.CacheTTL)

	authSvc := service.NewAuthService(
		repository.NewUserRepository(db),
		userCache,
		cfg.JWTSecret,
		cfg.JWTAccessTTL,
		cfg.JWTRefreshTTL,
		metrics,
		logger,
	)
	transactionSvc := service.NewTransactionService(repository.NewTransactionRepository(db), logger)
	clientSvc := service.NewClientService(repository.NewClientRepository(db), logger)
	leadSvc := service.NewLeadService(repository.NewLeadRepository(db), logger)
	financeSvc := service.NewFinanceService(asaasClient, metrics, logger)

	router := handler.NewRouter(handler.Dependencies{
		Logger:         logger,
		Metrics:        metrics,
		DB:             db,
		AllowedOrigins: cfg.AllowedOrigins,
		Auth:           authSvc,
		Transactions:   transactionSvc,
		Clients:        clientSvc,
		Leads:          leadSvc,
		Finance:        financeSvc,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening",
			zap.Int("port", cfg.Port),
			zap.String("asaas_base_url", cfg.AsaasBaseURL),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	ctx, cancel = context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("forced shutdown", zap.Error(err))
	}
	if err := shutdownTracer(ctx); err != nil {
		logger.Warn("tracer shutdown failed", zap.Error(err))
	}
}
