// Package postgres opens the database connection and bootstraps the
// schema. The schema statements are idempotent so restarts are safe.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Connect opens a pgx-backed *sql.DB from a DATABASE_URL style DSN and
// verifies the connection.
func Connect(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return db, nil
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS transactions (
		id BIGSERIAL PRIMARY KEY,
		description VARCHAR(255) NOT NULL,
		amount NUMERIC(12,2) NOT NULL,
		type VARCHAR(20) NOT NULL,
		category VARCHAR(100) NOT NULL,
		date DATE NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS clients (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		responsible_name VARCHAR(255) NOT NULL,
		email VARCHAR(255),
		phone VARCHAR(50) NOT NULL,
		origin VARCHAR(30) NOT NULL,
		referred_by VARCHAR(255),
		monthly_fee NUMERIC(12,2),
		notes TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS leads (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		responsible_name VARCHAR(255) NOT NULL,
		email VARCHAR(255),
		phone VARCHAR(50) NOT NULL,
		status VARCHAR(30) NOT NULL DEFAULT 'novo',
		origin VARCHAR(30) NOT NULL DEFAULT 'outro',
		referred_by VARCHAR(255),
		notes TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		email VARCHAR(255) NOT NULL UNIQUE,
		password_hash VARCHAR(255) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS refresh_tokens (
		token_hash VARCHAR(64) PRIMARY KEY,
		user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		expires_at TIMESTAMPTZ NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_transactions_date ON transactions (date DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_refresh_tokens_user ON refresh_tokens (user_id)`,
}

// Bootstrap applies the schema.
func Bootstrap(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("bootstrap schema: %w", err)
		}
	}
	return nil
}
