package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"github.com/njunio10/Convel-Controle/internal/domain"
	"github.com/njunio10/Convel-Controle/internal/service"
)

// Clients and leads accept both camelCase and snake_case spellings for
// a few fields. aliasKeys maps the alternate spelling to the canonical
// one; when both appear the camelCase value wins and the alternate key
// is discarded before validation, so the rest of the pipeline only ever
// sees canonical names.
var aliasKeys = map[string]string{
	"responsibleName": "responsible_name",
	"referredBy":      "referred_by",
	"monthlyFee":      "monthly_fee",
}

type rawPayload map[string]json.RawMessage

func decodeBody(r *http.Request) (rawPayload, error) {
	p := rawPayload{}
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		verr := &domain.ErrValidation{}
		verr.Add("body", "O corpo da requisição deve ser um JSON válido.")
		return nil, verr
	}
	return p, nil
}

func (p rawPayload) normalize() rawPayload {
	for alt, canonical := range aliasKeys {
		if v, ok := p[alt]; ok {
			p[canonical] = v
			delete(p, alt)
		}
	}
	return p
}

func isNull(raw json.RawMessage) bool {
	return strings.TrimSpace(string(raw)) == "null"
}

// decodeString reads p[key] as a string. present reports key presence,
// ok turns false when a type or length error was recorded, and a nil
// value with ok means JSON null.
func decodeString(verr *domain.ErrValidation, p rawPayload, key string, maxLen int) (val *string, present, ok bool) {
	raw, found := p[key]
	if !found {
		return nil, false, true
	}
	if isNull(raw) {
		return nil, true, true
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		verr.Add(key, fmt.Sprintf("O campo %s deve ser um texto.", key))
		return nil, true, false
	}
	if maxLen > 0 && len([]rune(s)) > maxLen {
		verr.Add(key, fmt.Sprintf("O campo %s não pode ter mais de %d caracteres.", key, maxLen))
		return nil, true, false
	}
	return &s, true, true
}

func decodeNumber(verr *domain.ErrValidation, p rawPayload, key string) (val *float64, present, ok bool) {
	raw, found := p[key]
	if !found {
		return nil, false, true
	}
	if isNull(raw) {
		return nil, true, true
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err != nil {
		verr.Add(key, fmt.Sprintf("O campo %s deve ser numérico.", key))
		return nil, true, false
	}
	return &n, true, true
}

func decodeDate(verr *domain.ErrValidation, p rawPayload, key string) (val *time.Time, present, ok bool) {
	s, present, ok := decodeString(verr, p, key, 0)
	if !present || !ok || s == nil {
		return nil, present, ok
	}
	t, err := time.Parse("2006-01-02", *s)
	if err != nil {
		verr.Add(key, fmt.Sprintf("O campo %s deve ser uma data no formato YYYY-MM-DD.", key))
		return nil, true, false
	}
	return &t, true, true
}

// requireString enforces presence of a non-empty string.
func requireString(verr *domain.ErrValidation, p rawPayload, key string, maxLen int) *string {
	val, present, ok := decodeString(verr, p, key, maxLen)
	if !ok {
		return nil
	}
	if !present || val == nil || strings.TrimSpace(*val) == "" {
		verr.Add(key, fmt.Sprintf("O campo %s é obrigatório.", key))
		return nil
	}
	return val
}

func requireNumber(verr *domain.ErrValidation, p rawPayload, key string) *float64 {
	val, present, ok := decodeNumber(verr, p, key)
	if !ok {
		return nil
	}
	if !present || val == nil {
		verr.Add(key, fmt.Sprintf("O campo %s é obrigatório.", key))
		return nil
	}
	return val
}

func requireIn(verr *domain.ErrValidation, p rawPayload, key string, allowed []string) *string {
	val := requireString(verr, p, key, 0)
	if val == nil {
		return nil
	}
	if !contains(allowed, *val) {
		verr.Add(key, fmt.Sprintf("O campo %s possui um valor inválido.", key))
		return nil
	}
	return val
}

// optionalString accepts an absent key but rejects null when present.
func optionalString(verr *domain.ErrValidation, p rawPayload, key string, maxLen int) *string {
	val, present, ok := decodeString(verr, p, key, maxLen)
	if !present || !ok {
		return nil
	}
	if val == nil {
		verr.Add(key, fmt.Sprintf("O campo %s deve ser um texto.", key))
		return nil
	}
	return val
}

func optionalIn(verr *domain.ErrValidation, p rawPayload, key string, allowed []string) *string {
	val := optionalString(verr, p, key, 0)
	if val == nil {
		return nil
	}
	if !contains(allowed, *val) {
		verr.Add(key, fmt.Sprintf("O campo %s possui um valor inválido.", key))
		return nil
	}
	return val
}

// nullableString accepts absence, null and strings, keeping the
// absent/null distinction for partial updates.
func nullableString(verr *domain.ErrValidation, p rawPayload, key string, maxLen int) service.OptString {
	val, present, ok := decodeString(verr, p, key, maxLen)
	if !present || !ok {
		return service.OptString{}
	}
	return service.OptString{Set: true, Value: val}
}

func checkEmail(verr *domain.ErrValidation, key string, val *string) *string {
	if val == nil {
		return nil
	}
	if _, err := mail.ParseAddress(*val); err != nil {
		verr.Add(key, fmt.Sprintf("O campo %s deve ser um e-mail válido.", key))
		return nil
	}
	return val
}

func checkMin(verr *domain.ErrValidation, key string, val *float64, min float64) *float64 {
	if val == nil {
		return nil
	}
	if *val < min {
		verr.Add(key, fmt.Sprintf("O campo %s deve ser no mínimo %v.", key, min))
		return nil
	}
	return val
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

var transactionTypes = []string{"income", "expense"}

func parseTransactionCreate(r *http.Request) (service.TransactionInput, error) {
	var in service.TransactionInput

	p, err := decodeBody(r)
	if err != nil {
		return in, err
	}

	verr := &domain.ErrValidation{}
	description := requireString(verr, p, "description", 255)
	amount := checkMin(verr, "amount", requireNumber(verr, p, "amount"), 0.01)
	txType := requireIn(verr, p, "type", transactionTypes)
	category := requireString(verr, p, "category", 100)
	date, _, _ := decodeDate(verr, p, "date")
	if verr.HasErrors() {
		return in, verr
	}

	in = service.TransactionInput{
		Description: *description,
		Amount:      *amount,
		Type:        *txType,
		Category:    *category,
	}
	if date != nil {
		in.Date = *date
	}
	return in, nil
}

func parseTransactionUpdate(r *http.Request) (service.TransactionPatch, error) {
	var patch service.TransactionPatch

	p, err := decodeBody(r)
	if err != nil {
		return patch, err
	}

	verr := &domain.ErrValidation{}
	patch.Description = optionalString(verr, p, "description", 255)
	if val, present, ok := decodeNumber(verr, p, "amount"); present && ok {
		if val == nil {
			verr.Add("amount", "O campo amount deve ser numérico.")
		} else {
			patch.Amount = checkMin(verr, "amount", val, 0.01)
		}
	}
	patch.Type = optionalIn(verr, p, "type", transactionTypes)
	patch.Category = optionalString(verr, p, "category", 100)
	if date, present, ok := decodeDate(verr, p, "date"); present && ok {
		if date == nil {
			verr.Add("date", "O campo date deve ser uma data no formato YYYY-MM-DD.")
		} else {
			patch.Date = date
		}
	}
	if verr.HasErrors() {
		return patch, verr
	}
	return patch, nil
}

func parseClientCreate(r *http.Request) (service.ClientInput, error) {
	var in service.ClientInput

	p, err := decodeBody(r)
	if err != nil {
		return in, err
	}
	p.normalize()

	verr := &domain.ErrValidation{}
	name := requireString(verr, p, "name", 255)
	responsible := requireString(verr, p, "responsible_name", 255)
	email := checkEmail(verr, "email", requireString(verr, p, "email", 255))
	phone := requireString(verr, p, "phone", 50)
	origin := requireIn(verr, p, "origin", domain.ClientOrigins)
	referredBy := nullableString(verr, p, "referred_by", 255)
	monthlyFee := checkMin(verr, "monthly_fee", requireNumber(verr, p, "monthly_fee"), 0)
	notes := nullableString(verr, p, "notes", 2000)
	if verr.HasErrors() {
		return in, verr
	}

	in = service.ClientInput{
		Name:            *name,
		ResponsibleName: *responsible,
		Email:           *email,
		Phone:           *phone,
		Origin:          *origin,
		ReferredBy:      referredBy.Value,
		MonthlyFee:      monthlyFee,
		Notes:           notes.Value,
	}
	return in, nil
}

func parseClientUpdate(r *http.Request) (service.ClientPatch, error) {
	var patch service.ClientPatch

	p, err := decodeBody(r)
	if err != nil {
		return patch, err
	}
	p.normalize()

	verr := &domain.ErrValidation{}
	patch.Name = optionalString(verr, p, "name", 255)
	patch.ResponsibleName = optionalString(verr, p, "responsible_name", 255)
	patch.Email = checkEmail(verr, "email", optionalString(verr, p, "email", 255))
	patch.Phone = optionalString(verr, p, "phone", 50)
	patch.Origin = optionalIn(verr, p, "origin", domain.ClientOrigins)
	patch.ReferredBy = nullableString(verr, p, "referred_by", 255)
	if val, present, ok := decodeNumber(verr, p, "monthly_fee"); present && ok {
		if val == nil {
			verr.Add("monthly_fee", "O campo monthly_fee deve ser numérico.")
		} else if checkMin(verr, "monthly_fee", val, 0) != nil {
			patch.MonthlyFee = service.OptFloat{Set: true, Value: val}
		}
	}
	patch.Notes = nullableString(verr, p, "notes", 2000)
	if verr.HasErrors() {
		return patch, verr
	}
	return patch, nil
}

func parseLeadCreate(r *http.Request) (service.LeadInput, error) {
	var in service.LeadInput

	p, err := decodeBody(r)
	if err != nil {
		return in, err
	}
	p.normalize()

	verr := &domain.ErrValidation{}
	name := requireString(verr, p, "name", 255)
	responsible := requireString(verr, p, "responsible_name", 255)
	email := nullableString(verr, p, "email", 255)
	email.Value = checkEmail(verr, "email", email.Value)
	phone := requireString(verr, p, "phone", 50)
	origin := requireIn(verr, p, "origin", domain.ClientOrigins)
	referredBy := nullableString(verr, p, "referred_by", 255)
	var status string
	if val, present, ok := decodeString(verr, p, "status", 0); present && ok && val != nil {
		if !contains(domain.LeadStatuses, *val) {
			verr.Add("status", "O campo status possui um valor inválido.")
		} else {
			status = *val
		}
	}
	notes := nullableString(verr, p, "notes", 2000)
	if verr.HasErrors() {
		return in, verr
	}

	in = service.LeadInput{
		Name:            *name,
		ResponsibleName: *responsible,
		Email:           email.Value,
		Phone:           *phone,
		Status:          status,
		Origin:          *origin,
		ReferredBy:      referredBy.Value,
		Notes:           notes.Value,
	}
	return in, nil
}

func parseLeadUpdate(r *http.Request) (service.LeadPatch, error) {
	var patch service.LeadPatch

	p, err := decodeBody(r)
	if err != nil {
		return patch, err
	}
	p.normalize()

	verr := &domain.ErrValidation{}
	patch.Name = optionalString(verr, p, "name", 255)
	patch.ResponsibleName = optionalString(verr, p, "responsible_name", 255)
	email := nullableString(verr, p, "email", 255)
	email.Value = checkEmail(verr, "email", email.Value)
	patch.Email = email
	patch.Phone = optionalString(verr, p, "phone", 50)
	patch.Status = optionalIn(verr, p, "status", domain.LeadStatuses)
	patch.Origin = optionalIn(verr, p, "origin", domain.ClientOrigins)
	patch.ReferredBy = nullableString(verr, p, "referred_by", 255)
	patch.Notes = nullableString(verr, p, "notes", 2000)
	if verr.HasErrors() {
		return patch, verr
	}
	return patch, nil
}

func parseLeadStatus(r *http.Request) (string, error) {
	p, err := decodeBody(r)
	if err != nil {
		return "", err
	}

	verr := &domain.ErrValidation{}
	status := requireIn(verr, p, "status", domain.LeadStatuses)
	if verr.HasErrors() {
		return "", verr
	}
	return *status, nil
}

func parseLogin(r *http.Request) (domain.LoginRequest, error) {
	var req domain.LoginRequest

	p, err := decodeBody(r)
	if err != nil {
		return req, err
	}

	verr := &domain.ErrValidation{}
	email := checkEmail(verr, "email", requireString(verr, p, "email", 255))
	password := requireString(verr, p, "password", 0)
	if verr.HasErrors() {
		return req, verr
	}

	req.Email = *email
	req.Password = *password
	return req, nil
}

func parseRefresh(r *http.Request) (string, error) {
	p, err := decodeBody(r)
	if err != nil {
		return "", err
	}

	verr := &domain.ErrValidation{}
	token := requireString(verr, p, "refreshToken", 0)
	if verr.HasErrors() {
		return "", verr
	}
	return *token, nil
}
