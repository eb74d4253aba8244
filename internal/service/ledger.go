package service

import (
	"context"
	"time"

	"github.com/njunio10/Convel-Controle/internal/domain"
	"github.com/njunio10/Convel-Controle/internal/repository"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

var ledgerTracer = otel.Tracer("service/ledger")

// TransactionStore is the persistence surface the ledger service needs.
type TransactionStore interface {
	List(ctx context.Context, f repository.TransactionFilter) ([]domain.Transaction, error)
	Get(ctx context.Context, id int64) (*domain.Transaction, error)
	Create(ctx context.Context, t *domain.Transaction) error
	Update(ctx context.Context, t *domain.Transaction) error
	Delete(ctx context.Context, id int64) error
	Summary(ctx context.Context, f repository.TransactionFilter) (*domain.TransactionSummary, error)
}

// TransactionInput is a validated create payload.
type TransactionInput struct {
	Description string
	Amount      float64
	Type        string
	Category    string
	Date        time.Time
}

// TransactionPatch carries only the fields present in an update payload.
type TransactionPatch struct {
	Description *string
	Amount      *float64
	Type        *string
	Category    *string
	Date        *time.Time
}

// TransactionService manages the local cash-flow ledger.
type TransactionService struct {
	store  TransactionStore
	logger *zap.Logger
}

func NewTransactionService(store TransactionStore, logger *zap.Logger) *TransactionService {
	return &TransactionService{store: store, logger: logger}
}

func (s *TransactionService) List(ctx context.Context, f repository.TransactionFilter) ([]domain.Transaction, error) {
	ctx, span := ledgerTracer.Start(ctx, "TransactionService.List")
	defer span.End()

	return s.store.List(ctx, f)
}

func (s *TransactionService) Get(ctx context.Context, id int64) (*domain.Transaction, error) {
	ctx, span := ledgerTracer.Start(ctx, "TransactionService.Get")
	defer span.End()

	return s.store.Get(ctx, id)
}

// Create stores a new entry. An absent date defaults to today.
func (s *TransactionService) Create(ctx context.Context, in TransactionInput) (*domain.Transaction, error) {
	ctx, span := ledgerTracer.Start(ctx, "TransactionService.Create")
	defer span.End()

	if in.Date.IsZero() {
		in.Date = repository.TodayDate()
	}

	t := &domain.Transaction{
		Description: in.Description,
		Amount:      in.Amount,
		Type:        in.Type,
		Category:    in.Category,
		Date:        in.Date,
	}
	if err := s.store.Create(ctx, t); err != nil {
		s.logger.Error("failed to create transaction", zap.Error(err))
		return nil, err
	}
	return t, nil
}

// Update loads the entry, applies the present fields and saves it back.
func (s *TransactionService) Update(ctx context.Context, id int64, patch TransactionPatch) (*domain.Transaction, error) {
	ctx, span := ledgerTracer.Start(ctx, "TransactionService.Update")
	defer span.End()

	t, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Description != nil {
		t.Description = *patch.Description
	}
	if patch.Amount != nil {
		t.Amount = *patch.Amount
	}
	if patch.Type != nil {
		t.Type = *patch.Type
	}
	if patch.Category != nil {
		t.Category = *patch.Category
	}
	if patch.Date != nil {
		t.Date = *patch.Date
	}

	if err := s.store.Update(ctx, t); err != nil {
		s.logger.Error("failed to update transaction", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	return t, nil
}

func (s *TransactionService) Delete(ctx context.Context, id int64) error {
	ctx, span := ledgerTracer.Start(ctx, "TransactionService.Delete")
	defer span.End()

	return s.store.Delete(ctx, id)
}

// Summary aggregates income, expense and balance over the same filter
// the listing uses.
func (s *TransactionService) Summary(ctx context.Context, f repository.TransactionFilter) (*domain.TransactionSummary, error) {
	ctx, span := ledgerTracer.Start(ctx, "TransactionService.Summary")
	defer span.End()

	return s.store.Summary(ctx, f)
}
