package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fintrack/fintrack-go/internal/domain"
	"github.com/fintrack/fintrack-go/internal/port"

	"github.com/shopspring/decimal"
)

// Store implements port.LedgerStore over a Postgres connection pool. The
// other repositories share the same pool but run outside units of work.
type Store struct {
	db *sql.DB
}

// NewStore creates the ledger store.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// WithinTx runs fn inside a database transaction. Any error from fn rolls
// the transaction back and is returned unchanged; commit errors are wrapped.
func (s *Store) WithinTx(ctx context.Context, fn func(tx port.LedgerTx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	ltx := &ledgerTx{tx: tx}
	if err := fn(ltx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && rbErr != sql.ErrTxDone {
			return fmt.Errorf("rollback after %w: %v", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// ledgerTx implements port.LedgerTx over one *sql.Tx.
type ledgerTx struct {
	tx *sql.Tx
}

func (t *ledgerTx) GetWalletForUpdate(ctx context.Context, ownerID, walletID string) (*domain.Wallet, error) {
	row := t.tx.QueryRowContext(ctx, `
		SELECT id, owner_id, name, kind, balance, created_at
		FROM wallets
		WHERE id = $1 AND owner_id = $2
		FOR UPDATE`, walletID, ownerID)

	var w domain.Wallet
	if err := row.Scan(&w.ID, &w.OwnerID, &w.Name, &w.Kind, &w.Balance, &w.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, &domain.ErrNotFound{Resource: "wallet", ID: walletID}
		}
		return nil, fmt.Errorf("lock wallet: %w", err)
	}
	return &w, nil
}

func (t *ledgerTx) ApplyWalletDelta(ctx context.Context, walletID string, delta decimal.Decimal) error {
	res, err := t.tx.ExecContext(ctx,
		`UPDATE wallets SET balance = balance + $1 WHERE id = $2`, delta, walletID)
	if err != nil {
		return fmt.Errorf("apply wallet delta: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("apply wallet delta: %w", err)
	}
	if n == 0 {
		return &domain.ErrNotFound{Resource: "wallet", ID: walletID}
	}
	return nil
}

func (t *ledgerTx) GetTransaction(ctx context.Context, ownerID, id string) (*domain.Transaction, error) {
	row := t.tx.QueryRowContext(ctx, `
		SELECT id, owner_id, wallet_id, to_wallet_id, amount, kind, category, description, occurred_on, created_at, updated_at
		FROM transactions
		WHERE id = $1 AND owner_id = $2`, id, ownerID)
	return scanTransaction(row)
}

func (t *ledgerTx) InsertTransaction(ctx context.Context, txn *domain.Transaction) error {
	_, err := t.tx.ExecContext(ctx, `
		INSERT INTO transactions (id, owner_id, wallet_id, to_wallet_id, amount, kind, category, description, occurred_on, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		txn.ID, txn.OwnerID, txn.WalletID, nullString(txn.ToWalletID),
		txn.Amount, txn.Kind, txn.Category, txn.Description,
		txn.OccurredOn, txn.CreatedAt, txn.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

func (t *ledgerTx) UpdateTransaction(ctx context.Context, txn *domain.Transaction) error {
	res, err := t.tx.ExecContext(ctx, `
		UPDATE transactions
		SET wallet_id = $1, to_wallet_id = $2, amount = $3, kind = $4,
			category = $5, description = $6, occurred_on = $7, updated_at = $8
		WHERE id = $9 AND owner_id = $10`,
		txn.WalletID, nullString(txn.ToWalletID), txn.Amount, txn.Kind,
		txn.Category, txn.Description, txn.OccurredOn, txn.UpdatedAt,
		txn.ID, txn.OwnerID)
	if err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}
	if n == 0 {
		return &domain.ErrNotFound{Resource: "transaction", ID: txn.ID}
	}
	return nil
}

func (t *ledgerTx) DeleteTransaction(ctx context.Context, id string) error {
	res, err := t.tx.ExecContext(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	if n == 0 {
		return &domain.ErrNotFound{Resource: "transaction", ID: id}
	}
	return nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (*domain.Transaction, error) {
	var txn domain.Transaction
	var toWallet sql.NullString
	err := row.Scan(&txn.ID, &txn.OwnerID, &txn.WalletID, &toWallet,
		&txn.Amount, &txn.Kind, &txn.Category, &txn.Description,
		&txn.OccurredOn, &txn.CreatedAt, &txn.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, &domain.ErrNotFound{Resource: "transaction"}
		}
		return nil, fmt.Errorf("scan transaction: %w", err)
	}
	txn.ToWalletID = toWallet.String
	return &txn, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
