package asaas_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/njunio10/Convel-Controle/internal/domain"
	"github.com/njunio10/Convel-Controle/internal/infra/asaas"
	"github.com/njunio10/Convel-Controle/internal/infra/resilience"

	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.Handler) (*asaas.Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := resilience.Config{MaxRetries: 0, InitialBackoff: time.Millisecond, MaxConcurrency: 4}
	client := asaas.NewClient(srv.Client(), srv.URL, "test-key", resilience.NewCircuitBreaker("test"), cfg, zap.NewNop())
	return client, srv
}

func TestListPaymentsDecodesEnvelope(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/payments" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("access_token") != "test-key" {
			t.Errorf("missing access_token header")
		}
		if got := r.URL.Query().Get("status"); got != "RECEIVED" {
			t.Errorf("status query = %q", got)
		}
		w.Write([]byte(`{"object":"list","data":[{"id":"pay_1","value":150,"status":"RECEIVED"}]}`))
	}))

	records, err := client.ListPayments(context.Background(), asaas.PaymentFilters{Status: "RECEIVED"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 1 || records[0].ID != "pay_1" || records[0].Value != 150 {
		t.Fatalf("unexpected records: %+v", records)
	}
}

func TestListPaymentsDecodesBareArray(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":"pay_2","value":30}]`))
	}))

	records, err := client.ListPayments(context.Background(), asaas.PaymentFilters{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 1 || records[0].ID != "pay_2" {
		t.Fatalf("unexpected records: %+v", records)
	}
}

func TestListPaymentsServerError(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	_, err := client.ListPayments(context.Background(), asaas.PaymentFilters{})
	var external *domain.ErrExternalService
	if !errors.As(err, &external) {
		t.Fatalf("expected ErrExternalService, got %v", err)
	}
}

func TestGetPaymentNotFound(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	record, err := client.GetPayment(context.Background(), "pay_missing")
	if err != nil {
		t.Fatalf("404 must not be an error, got %v", err)
	}
	if record != nil {
		t.Fatalf("expected nil record, got %+v", record)
	}
}

func TestGetBalance(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/myAccount" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"object":"balance","balance":1234.56}`))
	}))

	balance, err := client.GetBalance(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if balance.Balance != 1234.56 {
		t.Fatalf("balance = %v", balance.Balance)
	}
}

func TestConfirmPaymentRefusesProduction(t *testing.T) {
	cfg := resilience.Config{MaxRetries: 0, InitialBackoff: time.Millisecond, MaxConcurrency: 1}
	client := asaas.NewClient(http.DefaultClient, "https://api.asaas.com/v3", "key", resilience.NewCircuitBreaker("test"), cfg, zap.NewNop())

	_, err := client.ConfirmPayment(context.Background(), "pay_1")
	var sandboxOnly *domain.ErrSandboxOnly
	if !errors.As(err, &sandboxOnly) {
		t.Fatalf("expected ErrSandboxOnly, got %v", err)
	}
}

func TestConfirmPaymentSandbox(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s", r.Method)
		}
		if r.URL.Path != "/sandbox-api/sandbox/payment/pay_1/confirm" {
			t.Errorf("path = %s", r.URL.Path)
		}
		w.Write([]byte(`{"id":"pay_1","status":"RECEIVED"}`))
	}))
	t.Cleanup(srv.Close)

	// The sandbox check looks at the base URL, so point a sandbox-looking
	// path prefix at the fake server.
	cfg := resilience.Config{MaxRetries: 0, InitialBackoff: time.Millisecond, MaxConcurrency: 1}
	client := asaas.NewClient(srv.Client(), srv.URL+"/sandbox-api", "key", resilience.NewCircuitBreaker("test"), cfg, zap.NewNop())

	record, err := client.ConfirmPayment(context.Background(), "pay_1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if record.Status != "RECEIVED" {
		t.Fatalf("status = %q", record.Status)
	}
}
