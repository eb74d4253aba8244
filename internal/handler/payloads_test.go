package handler

import (
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/njunio10/Convel-Controle/internal/domain"
)

func jsonRequest(body string) *strings.Reader {
	return strings.NewReader(body)
}

func fieldErrors(t *testing.T, err error) map[string][]string {
	t.Helper()
	var verr *domain.ErrValidation
	if !errors.As(err, &verr) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	return verr.Fields
}

func TestParseClientCreateCamelCaseWins(t *testing.T) {
	r := httptest.NewRequest("POST", "/clients", jsonRequest(`{
		"name": "Acme",
		"responsibleName": "Maria",
		"responsible_name": "Ignorada",
		"email": "maria@acme.com",
		"phone": "11999999999",
		"origin": "indicacao",
		"referredBy": "João",
		"monthlyFee": 300
	}`))

	in, err := parseClientCreate(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if in.ResponsibleName != "Maria" {
		t.Fatalf("camelCase spelling must win, got %q", in.ResponsibleName)
	}
	if in.ReferredBy == nil || *in.ReferredBy != "João" {
		t.Fatalf("referredBy = %v", in.ReferredBy)
	}
	if in.MonthlyFee == nil || *in.MonthlyFee != 300 {
		t.Fatalf("monthlyFee = %v", in.MonthlyFee)
	}
}

func TestParseClientCreateSnakeCaseAlone(t *testing.T) {
	r := httptest.NewRequest("POST", "/clients", jsonRequest(`{
		"name": "Acme",
		"responsible_name": "Maria",
		"email": "maria@acme.com",
		"phone": "11999999999",
		"origin": "site",
		"monthly_fee": 0
	}`))

	in, err := parseClientCreate(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if in.ResponsibleName != "Maria" {
		t.Fatalf("responsible_name = %q", in.ResponsibleName)
	}
}

func TestParseClientCreateMissingFields(t *testing.T) {
	r := httptest.NewRequest("POST", "/clients", jsonRequest(`{"origin": "banner"}`))

	_, err := parseClientCreate(r)
	fields := fieldErrors(t, err)

	for _, want := range []string{"name", "responsible_name", "email", "phone", "origin", "monthly_fee"} {
		if len(fields[want]) == 0 {
			t.Errorf("expected error for field %q, got %v", want, fields)
		}
	}
}

func TestParseClientCreateRejectsBadEmail(t *testing.T) {
	r := httptest.NewRequest("POST", "/clients", jsonRequest(`{
		"name": "Acme",
		"responsible_name": "Maria",
		"email": "not-an-email",
		"phone": "11999999999",
		"origin": "site",
		"monthly_fee": 100
	}`))

	_, err := parseClientCreate(r)
	fields := fieldErrors(t, err)
	if len(fields["email"]) == 0 {
		t.Fatalf("expected email error, got %v", fields)
	}
}

func TestParseClientUpdateNullClearsNullableField(t *testing.T) {
	r := httptest.NewRequest("PUT", "/clients/1", jsonRequest(`{"notes": null}`))

	patch, err := parseClientUpdate(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !patch.Notes.Set || patch.Notes.Value != nil {
		t.Fatalf("explicit null must set the field to nil, got %+v", patch.Notes)
	}
	if patch.Name != nil {
		t.Fatalf("absent fields must stay nil, got %v", *patch.Name)
	}
}

func TestParseTransactionCreateValidation(t *testing.T) {
	r := httptest.NewRequest("POST", "/transactions", jsonRequest(`{
		"description": "Mensalidade",
		"amount": 0,
		"type": "transfer",
		"category": "servicos"
	}`))

	_, err := parseTransactionCreate(r)
	fields := fieldErrors(t, err)
	if len(fields["amount"]) == 0 {
		t.Errorf("amount below 0.01 must fail, got %v", fields)
	}
	if len(fields["type"]) == 0 {
		t.Errorf("type outside income/expense must fail, got %v", fields)
	}
}

func TestParseTransactionCreateDateOptional(t *testing.T) {
	r := httptest.NewRequest("POST", "/transactions", jsonRequest(`{
		"description": "Mensalidade",
		"amount": 100,
		"type": "income",
		"category": "servicos"
	}`))

	in, err := parseTransactionCreate(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !in.Date.IsZero() {
		t.Fatalf("absent date must stay zero for the service default, got %v", in.Date)
	}
}

func TestParseLeadCreateAllowsMissingEmail(t *testing.T) {
	r := httptest.NewRequest("POST", "/leads", jsonRequest(`{
		"name": "Prospect",
		"responsible_name": "Ana",
		"phone": "11988888888",
		"origin": "evento"
	}`))

	in, err := parseLeadCreate(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if in.Email != nil {
		t.Fatalf("email = %v", in.Email)
	}
	if in.Status != "" {
		t.Fatalf("status should stay empty for the service default, got %q", in.Status)
	}
}

func TestParseLeadStatusRejectsUnknown(t *testing.T) {
	r := httptest.NewRequest("PATCH", "/leads/1/status", jsonRequest(`{"status": "fechado"}`))

	_, err := parseLeadStatus(r)
	fields := fieldErrors(t, err)
	if len(fields["status"]) == 0 {
		t.Fatalf("expected status error, got %v", fields)
	}
}

func TestParseLoginRequiresCredentials(t *testing.T) {
	r := httptest.NewRequest("POST", "/login", jsonRequest(`{}`))

	_, err := parseLogin(r)
	fields := fieldErrors(t, err)
	if len(fields["email"]) == 0 || len(fields["password"]) == 0 {
		t.Fatalf("expected email and password errors, got %v", fields)
	}
}
