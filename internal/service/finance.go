package service

import (
	"context"
	"time"

	"github.com/njunio10/Convel-Controle/internal/domain"
	"github.com/njunio10/Convel-Controle/internal/infra/asaas"
	"github.com/njunio10/Convel-Controle/internal/infra/observability"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var financeTracer = otel.Tracer("service/finance")

// PaymentProvider is the outbound payment-provider surface the finance
// service depends on. Timeouts, retries and the circuit breaker are the
// provider client's responsibility.
type PaymentProvider interface {
	ListPayments(ctx context.Context, filters asaas.PaymentFilters) ([]domain.PaymentRecord, error)
	GetPayment(ctx context.Context, paymentID string) (*domain.PaymentRecord, error)
	GetBalance(ctx context.Context) (*domain.AccountBalance, error)
	ConfirmPayment(ctx context.Context, paymentID string) (*domain.PaymentRecord, error)
}

// FinanceService proxies payment queries and builds the three-bucket
// financial report.
type FinanceService struct {
	provider PaymentProvider
	metrics  *observability.Metrics
	logger   *zap.Logger
}

// NewFinanceService creates the finance service with all dependencies injected.
func NewFinanceService(provider PaymentProvider, metrics *observability.Metrics, logger *zap.Logger) *FinanceService {
	return &FinanceService{provider: provider, metrics: metrics, logger: logger}
}

// ListPayments forwards one filtered page query. Provider faults are
// swallowed into an empty page: the listing endpoints prefer showing
// nothing over failing, which is deliberately more lenient than
// GetFinancial.
func (s *FinanceService) ListPayments(ctx context.Context, filters asaas.PaymentFilters) []domain.PaymentRecord {
	ctx, span := financeTracer.Start(ctx, "FinanceService.ListPayments")
	defer span.End()

	records, err := s.provider.ListPayments(ctx, filters)
	if err != nil {
		s.logger.Error("failed to list payments",
			zap.String("status_filter", filters.Status),
			zap.Error(err),
		)
		s.metrics.IncrProviderError("payments")
		return []domain.PaymentRecord{}
	}
	if records == nil {
		records = []domain.PaymentRecord{}
	}
	return records
}

// GetPayment fetches one payment. Absence covers both "not found" and
// "provider unreachable"; callers cannot tell them apart through this
// call alone.
func (s *FinanceService) GetPayment(ctx context.Context, paymentID string) *domain.PaymentRecord {
	ctx, span := financeTracer.Start(ctx, "FinanceService.GetPayment")
	defer span.End()

	record, err := s.provider.GetPayment(ctx, paymentID)
	if err != nil {
		s.logger.Error("failed to fetch payment",
			zap.String("payment_id", paymentID),
			zap.Error(err),
		)
		s.metrics.IncrProviderError("payment")
		return nil
	}
	return record
}

// GetBalance fetches the provider account balance with the same
// absence-on-fault pattern as GetPayment.
func (s *FinanceService) GetBalance(ctx context.Context) *domain.AccountBalance {
	ctx, span := financeTracer.Start(ctx, "FinanceService.GetBalance")
	defer span.End()

	balance, err := s.provider.GetBalance(ctx)
	if err != nil {
		s.logger.Error("failed to fetch balance", zap.Error(err))
		s.metrics.IncrProviderError("balance")
		return nil
	}
	return balance
}

// ConfirmPayment forwards the sandbox-only confirmation helper.
func (s *FinanceService) ConfirmPayment(ctx context.Context, paymentID string) (*domain.PaymentRecord, error) {
	ctx, span := financeTracer.Start(ctx, "FinanceService.ConfirmPayment")
	defer span.End()

	return s.provider.ConfirmPayment(ctx, paymentID)
}

// GetFinancial issues the three bucket queries (RECEIVED, PENDING,
// OVERDUE) concurrently, each a copy of the caller's filters with only
// the status overridden, and reduces them into one report.
//
// The aggregation is all-or-nothing: the join point waits for all three
// outcomes and a fault in any sub-query degrades the whole report to
// zero with an error note. Partial aggregation is not supported.
func (s *FinanceService) GetFinancial(ctx context.Context, filters asaas.PaymentFilters) *domain.FinancialReport {
	ctx, span := financeTracer.Start(ctx, "FinanceService.GetFinancial")
	defer span.End()

	start := time.Now()
	defer func() {
		s.metrics.RecordRequestDuration("financial", time.Since(start))
	}()

	var received, pending, overdue []domain.PaymentRecord

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		records, err := s.provider.ListPayments(gCtx, filters.WithStatus(domain.PaymentStatusReceived))
		if err != nil {
			return err
		}
		received = records
		return nil
	})
	g.Go(func() error {
		records, err := s.provider.ListPayments(gCtx, filters.WithStatus(domain.PaymentStatusPending))
		if err != nil {
			return err
		}
		pending = records
		return nil
	})
	g.Go(func() error {
		records, err := s.provider.ListPayments(gCtx, filters.WithStatus(domain.PaymentStatusOverdue))
		if err != nil {
			return err
		}
		overdue = records
		return nil
	})

	if err := g.Wait(); err != nil {
		s.logger.Error("financial aggregation degraded", zap.Error(err))
		s.metrics.IncrProviderError("financial")
		return domain.ZeroFinancialReport(err.Error())
	}

	receivedBucket := domain.NewFinancialBucket(received)
	pendingBucket := domain.NewFinancialBucket(pending)
	overdueBucket := domain.NewFinancialBucket(overdue)

	return &domain.FinancialReport{
		Entries: domain.FinancialEntries{
			Received: receivedBucket,
			Pending:  pendingBucket,
			Overdue:  overdueBucket,
		},
		Summary: domain.FinancialSummary{
			TotalReceived: receivedBucket.Total,
			TotalPending:  pendingBucket.Total,
			TotalOverdue:  overdueBucket.Total,
			TotalExpected: pendingBucket.Total + overdueBucket.Total,
		},
	}
}
