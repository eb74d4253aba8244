package repository

import (
	"context"
	"database/sql"
	"strconv"
	"time"

	"github.com/njunio10/Convel-Controle/internal/domain"
)

// UserRepository persists panel users and their refresh tokens.
type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// GetByEmail fetches a user by email. Returns (nil, nil) when absent so
// the auth service can answer with a uniform credentials error.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	err := r.db.QueryRowContext(ctx,
		"SELECT id, name, email, password_hash, created_at FROM users WHERE email = $1", email,
	).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByID fetches a user by id.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var u domain.User
	err := r.db.QueryRowContext(ctx,
		"SELECT id, name, email, password_hash, created_at FROM users WHERE id = $1", id,
	).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, &domain.ErrNotFound{Resource: "user", ID: strconv.FormatInt(id, 10)}
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// StoreRefreshToken saves a hashed refresh token.
func (r *UserRepository) StoreRefreshToken(ctx context.Context, userID int64, tokenHash string, expiresAt time.Time) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO refresh_tokens (token_hash, user_id, expires_at) VALUES ($1, $2, $3)",
		tokenHash, userID, expiresAt,
	)
	return err
}

// GetRefreshToken looks a stored token up by hash. (nil, nil) when absent.
func (r *UserRepository) GetRefreshToken(ctx context.Context, tokenHash string) (*domain.RefreshToken, error) {
	var t domain.RefreshToken
	err := r.db.QueryRowContext(ctx,
		"SELECT token_hash, user_id, expires_at FROM refresh_tokens WHERE token_hash = $1", tokenHash,
	).Scan(&t.TokenHash, &t.UserID, &t.ExpiresAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// RevokeRefreshToken deletes one stored token.
func (r *UserRepository) RevokeRefreshToken(ctx context.Context, tokenHash string) error {
	_, err := r.db.ExecContext(ctx,
		"DELETE FROM refresh_tokens WHERE token_hash = $1", tokenHash)
	return err
}

// RevokeAllRefreshTokens deletes every token of a user (logout).
func (r *UserRepository) RevokeAllRefreshTokens(ctx context.Context, userID int64) error {
	_, err := r.db.ExecContext(ctx,
		"DELETE FROM refresh_tokens WHERE user_id = $1", userID)
	return err
}
