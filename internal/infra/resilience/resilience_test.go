package resilience_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/njunio10/Convel-Controle/internal/infra/resilience"
)

func testConfig() resilience.Config {
	return resilience.Config{
		MaxRetries:     3,
		InitialBackoff: time.Millisecond,
		MaxConcurrency: 2,
	}
}

func TestRetrySucceedsAfterFailures(t *testing.T) {
	attempts := 0
	err := resilience.RetryWithBackoff(context.Background(), testConfig(), func() error {
		attempts++
		if attempts < 3 {
			return errors.New("transient")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if attempts != 3 {
		t.Fatalf("expected 3 attempts, got %d", attempts)
	}
}

func TestRetryExhaustsAttempts(t *testing.T) {
	attempts := 0
	wantErr := errors.New("permanent")
	err := resilience.RetryWithBackoff(context.Background(), testConfig(), func() error {
		attempts++
		return wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected last error, got %v", err)
	}
	// initial attempt plus MaxRetries
	if attempts != 4 {
		t.Fatalf("expected 4 attempts, got %d", attempts)
	}
}

func TestRetryRespectsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	attempts := 0
	err := resilience.RetryWithBackoff(ctx, testConfig(), func() error {
		attempts++
		return errors.New("should not matter")
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if attempts != 0 {
		t.Fatalf("expected no attempts after cancel, got %d", attempts)
	}
}

func TestCircuitBreakerOpensAfterFailures(t *testing.T) {
	cb := resilience.NewCircuitBreaker("test")

	for i := 0; i < 5; i++ {
		_, _ = cb.Execute(func() (any, error) {
			return nil, errors.New("boom")
		})
	}

	_, err := cb.Execute(func() (any, error) {
		t.Fatal("breaker should be open")
		return nil, nil
	})
	if err == nil {
		t.Fatal("expected open-circuit error")
	}
}

func TestBulkheadLimitsConcurrency(t *testing.T) {
	b := resilience.NewBulkhead(1)

	if err := b.Acquire(context.Background()); err != nil {
		t.Fatalf("first acquire failed: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := b.Acquire(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded while full, got %v", err)
	}

	b.Release()
	if err := b.Acquire(context.Background()); err != nil {
		t.Fatalf("acquire after release failed: %v", err)
	}
}
