package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/njunio10/Convel-Controle/internal/domain"
)

// TransactionFilter narrows ledger queries. Type is applied only when
// it is exactly "income" or "expense"; any other value is ignored.
// Dates are YYYY-MM-DD. When both bounds are present the query uses
// BETWEEN; a single bound uses a plain comparison. Both code paths are
// inclusive on the boundary dates.
type TransactionFilter struct {
	Type      string
	StartDate string
	EndDate   string
}

// buildTransactionWhere renders the filter as WHERE conditions with
// positional args starting at $1.
func buildTransactionWhere(f TransactionFilter) (string, []any) {
	where := []string{"1=1"}
	args := []any{}
	i := 1

	if f.Type == "income" || f.Type == "expense" {
		where = append(where, fmt.Sprintf("type = $%d", i))
		args = append(args, f.Type)
		i++
	}

	switch {
	case f.StartDate != "" && f.EndDate != "":
		where = append(where, fmt.Sprintf("date BETWEEN $%d AND $%d", i, i+1))
		args = append(args, f.StartDate, f.EndDate)
	case f.StartDate != "":
		where = append(where, fmt.Sprintf("date >= $%d", i))
		args = append(args, f.StartDate)
	case f.EndDate != "":
		where = append(where, fmt.Sprintf("date <= $%d", i))
		args = append(args, f.EndDate)
	}

	return strings.Join(where, " AND "), args
}

// TransactionRepository persists cash-flow entries.
type TransactionRepository struct {
	db *sql.DB
}

func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

const transactionColumns = "id, description, amount, type, category, date, created_at, updated_at"

func scanTransaction(row interface{ Scan(...any) error }) (*domain.Transaction, error) {
	var t domain.Transaction
	if err := row.Scan(&t.ID, &t.Description, &t.Amount, &t.Type, &t.Category, &t.Date, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}

// List returns filtered transactions, newest first.
func (r *TransactionRepository) List(ctx context.Context, f TransactionFilter) ([]domain.Transaction, error) {
	where, args := buildTransactionWhere(f)
	query := fmt.Sprintf(
		"SELECT %s FROM transactions WHERE %s ORDER BY date DESC, created_at DESC",
		transactionColumns, where,
	)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Transaction{}
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	return out, rows.Err()
}

// Get fetches one transaction by id.
func (r *TransactionRepository) Get(ctx context.Context, id int64) (*domain.Transaction, error) {
	query := fmt.Sprintf("SELECT %s FROM transactions WHERE id = $1", transactionColumns)
	t, err := scanTransaction(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, &domain.ErrNotFound{Resource: "transaction", ID: strconv.FormatInt(id, 10)}
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

// Create inserts a transaction and fills the generated fields.
func (r *TransactionRepository) Create(ctx context.Context, t *domain.Transaction) error {
	query := `INSERT INTO transactions (description, amount, type, category, date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`
	return r.db.QueryRowContext(ctx, query,
		t.Description, t.Amount, t.Type, t.Category, t.Date,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
}

// Update rewrites all mutable columns of a transaction.
func (r *TransactionRepository) Update(ctx context.Context, t *domain.Transaction) error {
	query := `UPDATE transactions
		SET description = $1, amount = $2, type = $3, category = $4, date = $5, updated_at = now()
		WHERE id = $6
		RETURNING updated_at`
	err := r.db.QueryRowContext(ctx, query,
		t.Description, t.Amount, t.Type, t.Category, t.Date, t.ID,
	).Scan(&t.UpdatedAt)
	if err == sql.ErrNoRows {
		return &domain.ErrNotFound{Resource: "transaction", ID: strconv.FormatInt(t.ID, 10)}
	}
	return err
}

// Delete removes a transaction.
func (r *TransactionRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM transactions WHERE id = $1", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &domain.ErrNotFound{Resource: "transaction", ID: strconv.FormatInt(id, 10)}
	}
	return nil
}

// Summary sums income and expense over the same filter used by List.
func (r *TransactionRepository) Summary(ctx context.Context, f TransactionFilter) (*domain.TransactionSummary, error) {
	where, args := buildTransactionWhere(f)
	query := fmt.Sprintf(`SELECT
		COALESCE(SUM(amount) FILTER (WHERE type = 'income'), 0),
		COALESCE(SUM(amount) FILTER (WHERE type = 'expense'), 0)
		FROM transactions WHERE %s`, where)

	var s domain.TransactionSummary
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&s.Income, &s.Expense); err != nil {
		return nil, err
	}
	s.Balance = s.Income - s.Expense
	return &s, nil
}

// TodayDate returns today's date truncated for the DATE column default.
func TodayDate() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
