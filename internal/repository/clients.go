package repository

import (
	"context"
	"database/sql"
	"strconv"

	"github.com/njunio10/Convel-Controle/internal/domain"
)

// ClientRepository persists clients.
type ClientRepository struct {
	db *sql.DB
}

func NewClientRepository(db *sql.DB) *ClientRepository {
	return &ClientRepository{db: db}
}

const clientColumns = "id, name, responsible_name, COALESCE(email, ''), phone, origin, referred_by, monthly_fee, notes, created_at, updated_at"

func scanClient(row interface{ Scan(...any) error }) (*domain.Client, error) {
	var c domain.Client
	if err := row.Scan(
		&c.ID, &c.Name, &c.ResponsibleName, &c.Email, &c.Phone, &c.Origin,
		&c.ReferredBy, &c.MonthlyFee, &c.Notes, &c.CreatedAt, &c.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &c, nil
}

// List returns all clients, newest first.
func (r *ClientRepository) List(ctx context.Context) ([]domain.Client, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+clientColumns+" FROM clients ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Client{}
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

// Get fetches one client by id.
func (r *ClientRepository) Get(ctx context.Context, id int64) (*domain.Client, error) {
	c, err := scanClient(r.db.QueryRowContext(ctx,
		"SELECT "+clientColumns+" FROM clients WHERE id = $1", id))
	if err == sql.ErrNoRows {
		return nil, &domain.ErrNotFound{Resource: "client", ID: strconv.FormatInt(id, 10)}
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Create inserts a client and fills the generated fields.
func (r *ClientRepository) Create(ctx context.Context, c *domain.Client) error {
	query := `INSERT INTO clients (name, responsible_name, email, phone, origin, referred_by, monthly_fee, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at`
	return r.db.QueryRowContext(ctx, query,
		c.Name, c.ResponsibleName, c.Email, c.Phone, c.Origin, c.ReferredBy, c.MonthlyFee, c.Notes,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

// Update rewrites all mutable columns of a client.
func (r *ClientRepository) Update(ctx context.Context, c *domain.Client) error {
	query := `UPDATE clients
		SET name = $1, responsible_name = $2, email = $3, phone = $4, origin = $5,
			referred_by = $6, monthly_fee = $7, notes = $8, updated_at = now()
		WHERE id = $9
		RETURNING updated_at`
	err := r.db.QueryRowContext(ctx, query,
		c.Name, c.ResponsibleName, c.Email, c.Phone, c.Origin, c.ReferredBy, c.MonthlyFee, c.Notes, c.ID,
	).Scan(&c.UpdatedAt)
	if err == sql.ErrNoRows {
		return &domain.ErrNotFound{Resource: "client", ID: strconv.FormatInt(c.ID, 10)}
	}
	return err
}

// Delete removes a client.
func (r *ClientRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM clients WHERE id = $1", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &domain.ErrNotFound{Resource: "client", ID: strconv.FormatInt(id, 10)}
	}
	return nil
}
