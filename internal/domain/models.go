package domain

import "time"

// Transaction is a local cash-flow entry (income or expense).
type Transaction struct {
	ID          int64
	Description string
	Amount      float64
	Type        string // "income" or "expense"
	Category    string
	Date        time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TransactionSummary aggregates the filtered ledger.
type TransactionSummary struct {
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
	Balance float64 `json:"balance"`
}

// Client origins accepted by the API. "indicacao" is the only origin
// that keeps the referred_by field; any other origin clears it.
const OriginReferral = "indicacao"

// ClientOrigins lists the accepted origin values for clients and leads.
var ClientOrigins = []string{"promocao", "indicacao", "evento", "redes_sociais", "site", "outro"}

// Client is a paying customer of the business.
type Client struct {
	ID              int64
	Name            string
	ResponsibleName string
	Email           string
	Phone           string
	Origin          string
	ReferredBy      *string
	MonthlyFee      *float64
	Notes           *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// LeadStatuses lists the accepted lead pipeline statuses.
var LeadStatuses = []string{"novo", "em_contato", "convertido", "perdido"}

// Lead is a prospective client in the sales pipeline.
type Lead struct {
	ID              int64
	Name            string
	ResponsibleName string
	Email           *string
	Phone           string
	Status          string
	Origin          string
	ReferredBy      *string
	Notes           *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// User is a backoffice operator who can log into the panel.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// RefreshToken is a stored (hashed) refresh token for session rotation.
type RefreshToken struct {
	TokenHash string
	UserID    int64
	ExpiresAt time.Time
}
