package handler

import (
	"strconv"
	"time"

	"github.com/njunio10/Convel-Controle/internal/domain"
)

// The SPA consumes camelCase JSON with string ids, dates as YYYY-MM-DD
// and timestamps as RFC 3339. These views translate the domain models
// into that shape.

type transactionView struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Type        string  `json:"type"`
	Category    string  `json:"category"`
	Date        string  `json:"date"`
	CreatedAt   string  `json:"createdAt"`
}

func newTransactionView(t domain.Transaction) transactionView {
	return transactionView{
		ID:          strconv.FormatInt(t.ID, 10),
		Description: t.Description,
		Amount:      t.Amount,
		Type:        t.Type,
		Category:    t.Category,
		Date:        t.Date.Format("2006-01-02"),
		CreatedAt:   t.CreatedAt.Format(time.RFC3339),
	}
}

func newTransactionViews(ts []domain.Transaction) []transactionView {
	out := make([]transactionView, 0, len(ts))
	for _, t := range ts {
		out = append(out, newTransactionView(t))
	}
	return out
}

type clientView struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	ResponsibleName string   `json:"responsibleName"`
	Email           string   `json:"email"`
	Phone           string   `json:"phone"`
	Origin          string   `json:"origin"`
	ReferredBy      *string  `json:"referredBy"`
	MonthlyFee      *float64 `json:"monthlyFee"`
	Notes           *string  `json:"notes"`
	CreatedAt       string   `json:"createdAt"`
}

func newClientView(c domain.Client) clientView {
	return clientView{
		ID:              strconv.FormatInt(c.ID, 10),
		Name:            c.Name,
		ResponsibleName: c.ResponsibleName,
		Email:           c.Email,
		Phone:           c.Phone,
		Origin:          c.Origin,
		ReferredBy:      c.ReferredBy,
		MonthlyFee:      c.MonthlyFee,
		Notes:           c.Notes,
		CreatedAt:       c.CreatedAt.Format(time.RFC3339),
	}
}

func newClientViews(cs []domain.Client) []clientView {
	out := make([]clientView, 0, len(cs))
	for _, c := range cs {
		out = append(out, newClientView(c))
	}
	return out
}

type leadView struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	ResponsibleName string  `json:"responsibleName"`
	Email           *string `json:"email"`
	Phone           string  `json:"phone"`
	Status          string  `json:"status"`
	Origin          string  `json:"origin"`
	ReferredBy      *string `json:"referredBy"`
	Notes           *string `json:"notes"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

func newLeadView(l domain.Lead) leadView {
	return leadView{
		ID:              strconv.FormatInt(l.ID, 10),
		Name:            l.Name,
		ResponsibleName: l.ResponsibleName,
		Email:           l.Email,
		Phone:           l.Phone,
		Status:          l.Status,
		Origin:          l.Origin,
		ReferredBy:      l.ReferredBy,
		Notes:           l.Notes,
		CreatedAt:       l.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       l.UpdatedAt.Format(time.RFC3339),
	}
}

func newLeadViews(ls []domain.Lead) []leadView {
	out := make([]leadView, 0, len(ls))
	for _, l := range ls {
		out = append(out, newLeadView(l))
	}
	return out
}
