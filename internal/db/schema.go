package db

import (
	"database/sql"
	"fmt"
)

// Schema statements are idempotent so EnsureSchema can run at every
// startup. Cash balances and share counts must never go negative; the
// CHECK constraints enforce that at the storage layer.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id SERIAL PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		cash_balance NUMERIC(18,2) NOT NULL CHECK (cash_balance >= 0),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS holdings (
		id SERIAL PRIMARY KEY,
		user_id INTEGER NOT NULL REFERENCES users(id),
		symbol TEXT NOT NULL,
		shares INTEGER NOT NULL CHECK (shares >= 0),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (user_id, symbol)
	)`,
	`CREATE TABLE IF NOT EXISTS history (
		id SERIAL PRIMARY KEY,
		user_id INTEGER NOT NULL REFERENCES users(id),
		holding_id INTEGER NOT NULL REFERENCES holdings(id),
		symbol TEXT NOT NULL,
		shares INTEGER NOT NULL,
		price NUMERIC(18,2) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_history_user_created
		ON history (user_id, created_at DESC)`,
}

// EnsureSchema creates the tables if they do not exist.
func EnsureSchema(database *sql.DB) error {
	for _, stmt := range schema {
		if _, err := database.Exec(stmt); err != nil {
			return fmt.Errorf("error applying schema: %w", err)
		}
	}
	return nil
}
