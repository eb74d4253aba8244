package observability_test

import (
	"testing"

	"github.com/njunio10/Convel-Controle/internal/infra/observability"
)

func TestGetOpsSnapshot(t *testing.T) {
	m := observability.NewMetrics()

	m.IncrRequest("success")
	m.IncrRequest("success")
	m.IncrRequest("error")
	m.IncrProviderError("payments")
	m.IncrProviderError("financial")

	snap := m.GetOpsSnapshot()
	if snap.RequestsOK != 2 {
		t.Errorf("RequestsOK = %d", snap.RequestsOK)
	}
	if snap.RequestsFailed != 1 {
		t.Errorf("RequestsFailed = %d", snap.RequestsFailed)
	}
	if snap.ProviderErrors != 2 {
		t.Errorf("ProviderErrors = %d", snap.ProviderErrors)
	}
}

func TestNewMetricsIsIsolated(t *testing.T) {
	a := observability.NewMetrics()
	b := observability.NewMetrics()

	a.IncrRequest("success")
	if snap := b.GetOpsSnapshot(); snap.RequestsOK != 0 {
		t.Fatalf("registries must be independent, got %d", snap.RequestsOK)
	}
}
