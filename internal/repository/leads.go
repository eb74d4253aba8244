package repository

import (
	"context"
	"database/sql"
	"strconv"

	"github.com/njunio10/Convel-Controle/internal/domain"
)

// LeadRepository persists sales leads.
type LeadRepository struct {
	db *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{db: db}
}

const leadColumns = "id, name, responsible_name, email, phone, status, origin, referred_by, notes, created_at, updated_at"

func scanLead(row interface{ Scan(...any) error }) (*domain.Lead, error) {
	var l domain.Lead
	if err := row.Scan(
		&l.ID, &l.Name, &l.ResponsibleName, &l.Email, &l.Phone, &l.Status,
		&l.Origin, &l.ReferredBy, &l.Notes, &l.CreatedAt, &l.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &l, nil
}

// List returns all leads, most recently touched first.
func (r *LeadRepository) List(ctx context.Context) ([]domain.Lead, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+leadColumns+" FROM leads ORDER BY updated_at DESC, created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Lead{}
	for rows.Next() {
		l, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *l)
	}
	return out, rows.Err()
}

// Get fetches one lead by id.
func (r *LeadRepository) Get(ctx context.Context, id int64) (*domain.Lead, error) {
	l, err := scanLead(r.db.QueryRowContext(ctx,
		"SELECT "+leadColumns+" FROM leads WHERE id = $1", id))
	if err == sql.ErrNoRows {
		return nil, &domain.ErrNotFound{Resource: "lead", ID: strconv.FormatInt(id, 10)}
	}
	if err != nil {
		return nil, err
	}
	return l, nil
}

// Create inserts a lead and fills the generated fields.
func (r *LeadRepository) Create(ctx context.Context, l *domain.Lead) error {
	query := `INSERT INTO leads (name, responsible_name, email, phone, status, origin, referred_by, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at`
	return r.db.QueryRowContext(ctx, query,
		l.Name, l.ResponsibleName, l.Email, l.Phone, l.Status, l.Origin, l.ReferredBy, l.Notes,
	).Scan(&l.ID, &l.CreatedAt, &l.UpdatedAt)
}

// Update rewrites all mutable columns of a lead.
func (r *LeadRepository) Update(ctx context.Context, l *domain.Lead) error {
	query := `UPDATE leads
		SET name = $1, responsible_name = $2, email = $3, phone = $4, status = $5,
			origin = $6, referred_by = $7, notes = $8, updated_at = now()
		WHERE id = $9
		RETURNING updated_at`
	err := r.db.QueryRowContext(ctx, query,
		l.Name, l.ResponsibleName, l.Email, l.Phone, l.Status, l.Origin, l.ReferredBy, l.Notes, l.ID,
	).Scan(&l.UpdatedAt)
	if err == sql.ErrNoRows {
		return &domain.ErrNotFound{Resource: "lead", ID: strconv.FormatInt(l.ID, 10)}
	}
	return err
}

// UpdateStatus moves a lead through the pipeline.
func (r *LeadRepository) UpdateStatus(ctx context.Context, id int64, status string) error {
	err := r.db.QueryRowContext(ctx,
		"UPDATE leads SET status = $1, updated_at = now() WHERE id = $2 RETURNING id",
		status, id,
	).Scan(&id)
	if err == sql.ErrNoRows {
		return &domain.ErrNotFound{Resource: "lead", ID: strconv.FormatInt(id, 10)}
	}
	return err
}

// Delete removes a lead.
func (r *LeadRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM leads WHERE id = $1", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &domain.ErrNotFound{Resource: "lead", ID: strconv.FormatInt(id, 10)}
	}
	return nil
}
