package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fintrack/fintrack-go/internal/domain"
)

// WalletRepo implements port.WalletStore.
type WalletRepo struct {
	db *sql.DB
}

// NewWalletRepo creates the wallet repository.
func NewWalletRepo(db *sql.DB) *WalletRepo {
	return &WalletRepo{db: db}
}

func (r *WalletRepo) Get(ctx context.Context, ownerID, walletID string) (*domain.Wallet, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, owner_id, name, kind, balance, created_at
		FROM wallets
		WHERE id = $1 AND owner_id = $2`, walletID, ownerID)

	var w domain.Wallet
	if err := row.Scan(&w.ID, &w.OwnerID, &w.Name, &w.Kind, &w.Balance, &w.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, &domain.ErrNotFound{Resource: "wallet", ID: walletID}
		}
		return nil, fmt.Errorf("get wallet: %w", err)
	}
	return &w, nil
}

func (r *WalletRepo) List(ctx context.Context, ownerID string) ([]domain.Wallet, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, owner_id, name, kind, balance, created_at
		FROM wallets
		WHERE owner_id = $1
		ORDER BY created_at`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list wallets: %w", err)
	}
	defer rows.Close()

	wallets := []domain.Wallet{}
	for rows.Next() {
		var w domain.Wallet
		if err := rows.Scan(&w.ID, &w.OwnerID, &w.Name, &w.Kind, &w.Balance, &w.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan wallet: %w", err)
		}
		wallets = append(wallets, w)
	}
	return wallets, rows.Err()
}

func (r *WalletRepo) Create(ctx context.Context, wallet *domain.Wallet) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO wallets (id, owner_id, name, kind, balance, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		wallet.ID, wallet.OwnerID, wallet.Name, wallet.Kind, wallet.Balance, wallet.CreatedAt)
	if err != nil {
		return fmt.Errorf("create wallet: %w", err)
	}
	return nil
}

func (r *WalletRepo) Update(ctx context.Context, wallet *domain.Wallet) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE wallets SET name = $1, kind = $2
		WHERE id = $3 AND owner_id = $4`,
		wallet.Name, wallet.Kind, wallet.ID, wallet.OwnerID)
	if err != nil {
		return fmt.Errorf("update wallet: %w", err)
	}
	return requireAffected(res, "wallet", wallet.ID)
}

func (r *WalletRepo) Delete(ctx context.Context, ownerID, walletID string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM wallets WHERE id = $1 AND owner_id = $2`, walletID, ownerID)
	if err != nil {
		return fmt.Errorf("delete wallet: %w", err)
	}
	return requireAffected(res, "wallet", walletID)
}

// requireAffected converts a zero-row mutation into a not-found error.
func requireAffected(res sql.Result, resource, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return &domain.ErrNotFound{Resource: resource, ID: id}
	}
	return nil
}
