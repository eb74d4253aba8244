package asaas_test

import (
	"testing"

	"github.com/njunio10/Convel-Controle/internal/infra/asaas"
)

func TestValuesDropsEmptyFilters(t *testing.T) {
	f := asaas.PaymentFilters{
		Status:          "PENDING",
		PaymentDateFrom: "2026-01-01",
		Limit:           "100",
	}

	v := f.Values()
	if got := v.Get("status"); got != "PENDING" {
		t.Fatalf("status = %q", got)
	}
	if got := v.Get("paymentDate[ge]"); got != "2026-01-01" {
		t.Fatalf("paymentDate[ge] = %q", got)
	}
	if got := v.Get("limit"); got != "100" {
		t.Fatalf("limit = %q", got)
	}

	for _, key := range []string{"customer", "subscription", "installment", "billingType", "paymentDate", "paymentDate[le]", "dueDate[ge]", "dueDate[le]", "offset"} {
		if _, present := v[key]; present {
			t.Fatalf("empty filter %q should not be sent", key)
		}
	}
}

func TestWithStatusDoesNotMutateOriginal(t *testing.T) {
	base := asaas.PaymentFilters{Status: "", Customer: "cus_1"}

	derived := base.WithStatus("RECEIVED")
	if derived.Status != "RECEIVED" {
		t.Fatalf("derived status = %q", derived.Status)
	}
	if derived.Customer != "cus_1" {
		t.Fatalf("derived copy lost customer filter")
	}
	if base.Status != "" {
		t.Fatalf("base filters mutated: %q", base.Status)
	}
}
