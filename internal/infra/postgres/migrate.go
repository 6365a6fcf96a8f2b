package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

// migrations are idempotent and applied in order at startup.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            UUID PRIMARY KEY,
		email         TEXT NOT NULL UNIQUE,
		name          TEXT NOT NULL,
		password_hash TEXT NOT NULL,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS refresh_tokens (
		id         UUID PRIMARY KEY,
		user_id    UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		token_hash TEXT NOT NULL UNIQUE,
		expires_at TIMESTAMPTZ NOT NULL,
		revoked    BOOLEAN NOT NULL DEFAULT false,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS wallets (
		id         UUID PRIMARY KEY,
		owner_id   UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		name       TEXT NOT NULL,
		kind       TEXT NOT NULL,
		balance    NUMERIC(20,2) NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS transactions (
		id           UUID PRIMARY KEY,
		owner_id     UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		wallet_id    UUID NOT NULL REFERENCES wallets(id),
		to_wallet_id UUID REFERENCES wallets(id),
		amount       NUMERIC(20,2) NOT NULL,
		kind         TEXT NOT NULL,
		category     TEXT NOT NULL,
		description  TEXT NOT NULL DEFAULT '',
		occurred_on  DATE NOT NULL,
		created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at   TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_transactions_owner_occurred
		ON transactions (owner_id, occurred_on)`,
	`CREATE INDEX IF NOT EXISTS idx_transactions_owner_category
		ON transactions (owner_id, category) WHERE kind = 'EXPENSE'`,
	`CREATE TABLE IF NOT EXISTS budgets (
		id           UUID PRIMARY KEY,
		owner_id     UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		category     TEXT NOT NULL,
		limit_amount NUMERIC(20,2) NOT NULL,
		period       TEXT NOT NULL,
		created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS debts (
		id          UUID PRIMARY KEY,
		owner_id    UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		name        TEXT NOT NULL,
		kind        TEXT NOT NULL,
		amount      NUMERIC(20,2) NOT NULL,
		due_date    DATE NOT NULL,
		paid        BOOLEAN NOT NULL DEFAULT false,
		description TEXT NOT NULL DEFAULT '',
		created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS assets (
		id         UUID PRIMARY KEY,
		owner_id   UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		name       TEXT NOT NULL,
		kind       TEXT NOT NULL,
		value      NUMERIC(20,2) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS categories (
		id       UUID PRIMARY KEY,
		owner_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		name     TEXT NOT NULL,
		kind     TEXT NOT NULL,
		UNIQUE (owner_id, name, kind)
	)`,
	`CREATE TABLE IF NOT EXISTS notifications (
		id         UUID PRIMARY KEY,
		owner_id   UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		title      TEXT NOT NULL,
		message    TEXT NOT NULL,
		severity   TEXT NOT NULL,
		category   TEXT NOT NULL DEFAULT '',
		budget_id  UUID,
		is_read    BOOLEAN NOT NULL DEFAULT false,
		read_at    TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_notifications_owner_unread
		ON notifications (owner_id, created_at DESC) WHERE NOT is_read`,
}

// Migrate applies the schema. Statements are idempotent so it is safe to run
// on every startup.
func Migrate(ctx context.Context, db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply migration %d: %w", i, err)
		}
	}
	return nil
}
