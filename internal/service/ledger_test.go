package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/njunio10/Convel-Controle/internal/domain"
	"github.com/njunio10/Convel-Controle/internal/repository"
	"github.com/njunio10/Convel-Controle/internal/service"

	"go.uber.org/zap"
)

type fakeTransactionStore struct {
	transactions map[int64]domain.Transaction
	nextID       int64
}

func newFakeTransactionStore() *fakeTransactionStore {
	return &fakeTransactionStore{transactions: map[int64]domain.Transaction{}, nextID: 1}
}

func (s *fakeTransactionStore) List(ctx context.Context, f repository.TransactionFilter) ([]domain.Transaction, error) {
	out := []domain.Transaction{}
	for _, t := range s.transactions {
		out = append(out, t)
	}
	return out, nil
}

func (s *fakeTransactionStore) Get(ctx context.Context, id int64) (*domain.Transaction, error) {
	t, ok := s.transactions[id]
	if !ok {
		return nil, &domain.ErrNotFound{Resource: "transaction", ID: "x"}
	}
	return &t, nil
}

func (s *fakeTransactionStore) Create(ctx context.Context, t *domain.Transaction) error {
	t.ID = s.nextID
	s.nextID++
	s.transactions[t.ID] = *t
	return nil
}

func (s *fakeTransactionStore) Update(ctx context.Context, t *domain.Transaction) error {
	if _, ok := s.transactions[t.ID]; !ok {
		return &domain.ErrNotFound{Resource: "transaction", ID: "x"}
	}
	s.transactions[t.ID] = *t
	return nil
}

func (s *fakeTransactionStore) Delete(ctx context.Context, id int64) error {
	delete(s.transactions, id)
	return nil
}

func (s *fakeTransactionStore) Summary(ctx context.Context, f repository.TransactionFilter) (*domain.TransactionSummary, error) {
	var sum domain.TransactionSummary
	for _, t := range s.transactions {
		if t.Type == "income" {
			sum.Income += t.Amount
		} else {
			sum.Expense += t.Amount
		}
	}
	sum.Balance = sum.Income - sum.Expense
	return &sum, nil
}

func TestTransactionCreateDefaultsDateToToday(t *testing.T) {
	svc := service.NewTransactionService(newFakeTransactionStore(), zap.NewNop())

	created, err := svc.Create(context.Background(), service.TransactionInput{
		Description: "Mensalidade",
		Amount:      100,
		Type:        "income",
		Category:    "servicos",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	today := repository.TodayDate()
	if !created.Date.Equal(today) {
		t.Fatalf("date = %v, want %v", created.Date, today)
	}
}

func TestTransactionCreateKeepsExplicitDate(t *testing.T) {
	svc := service.NewTransactionService(newFakeTransactionStore(), zap.NewNop())

	date := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	created, err := svc.Create(context.Background(), service.TransactionInput{
		Description: "Aluguel",
		Amount:      2500,
		Type:        "expense",
		Category:    "fixas",
		Date:        date,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !created.Date.Equal(date) {
		t.Fatalf("date = %v", created.Date)
	}
}

func TestTransactionUpdateAppliesOnlyPresentFields(t *testing.T) {
	store := newFakeTransactionStore()
	svc := service.NewTransactionService(store, zap.NewNop())

	created, _ := svc.Create(context.Background(), service.TransactionInput{
		Description: "Mensalidade",
		Amount:      100,
		Type:        "income",
		Category:    "servicos",
	})

	newAmount := 150.0
	updated, err := svc.Update(context.Background(), created.ID, service.TransactionPatch{Amount: &newAmount})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Amount != 150 {
		t.Errorf("amount = %v", updated.Amount)
	}
	if updated.Description != "Mensalidade" || updated.Type != "income" {
		t.Errorf("untouched fields changed: %+v", updated)
	}
}
