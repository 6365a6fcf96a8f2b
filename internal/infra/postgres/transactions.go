package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/fintrack/fintrack-go/internal/domain"

	"github.com/shopspring/decimal"
)

// TransactionRepo implements port.TransactionStore.
type TransactionRepo struct {
	db *sql.DB
}

// NewTransactionRepo creates the transaction repository.
func NewTransactionRepo(db *sql.DB) *TransactionRepo {
	return &TransactionRepo{db: db}
}

func (r *TransactionRepo) Get(ctx context.Context, ownerID, id string) (*domain.Transaction, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, owner_id, wallet_id, to_wallet_id, amount, kind, category, description, occurred_on, created_at, updated_at
		FROM transactions
		WHERE id = $1 AND owner_id = $2`, id, ownerID)
	return scanTransaction(row)
}

func (r *TransactionRepo) List(ctx context.Context, ownerID string, filter domain.TransactionFilter) ([]domain.Transaction, int, error) {
	where := []string{"owner_id = $1"}
	args := []any{ownerID}

	add := func(clause string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(clause, len(args)))
	}
	if filter.Kind != "" {
		add("kind = $%d", filter.Kind)
	}
	if filter.WalletID != "" {
		args = append(args, filter.WalletID)
		where = append(where, fmt.Sprintf("(wallet_id = $%d OR to_wallet_id = $%d)", len(args), len(args)))
	}
	if !filter.From.IsZero() {
		add("occurred_on >= $%d", filter.From)
	}
	if !filter.To.IsZero() {
		add("occurred_on <= $%d", filter.To)
	}
	cond := strings.Join(where, " AND ")

	var total int
	if err := r.db.QueryRowContext(ctx,
		"SELECT count(*) FROM transactions WHERE "+cond, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count transactions: %w", err)
	}

	page, pageSize := filter.Page, filter.PageSize
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	args = append(args, pageSize, (page-1)*pageSize)

	query := fmt.Sprintf(`
		SELECT id, owner_id, wallet_id, to_wallet_id, amount, kind, category, description, occurred_on, created_at, updated_at
		FROM transactions
		WHERE %s
		ORDER BY occurred_on DESC, created_at DESC
		LIMIT $%d OFFSET $%d`, cond, len(args)-1, len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	txns := []domain.Transaction{}
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, 0, err
		}
		txns = append(txns, *txn)
	}
	return txns, total, rows.Err()
}

func (r *TransactionRepo) SumExpenses(ctx context.Context, ownerID, category string, from, to time.Time) (decimal.Decimal, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT COALESCE(sum(amount), 0)
		FROM transactions
		WHERE owner_id = $1 AND kind = $2 AND category = $3
			AND occurred_on >= $4 AND occurred_on <= $5`,
		ownerID, domain.KindExpense, category, from, to)

	var total decimal.Decimal
	if err := row.Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("sum expenses: %w", err)
	}
	return total, nil
}

func (r *TransactionRepo) WindowTotals(ctx context.Context, ownerID string, from, to time.Time) (*domain.WindowTotals, error) {
	totals := &domain.WindowTotals{ExpenseByCategory: []domain.CategoryTotal{}}

	row := r.db.QueryRowContext(ctx, `
		SELECT
			COALESCE(sum(amount) FILTER (WHERE kind = $2), 0),
			COALESCE(sum(amount) FILTER (WHERE kind = $3), 0),
			count(*)
		FROM transactions
		WHERE owner_id = $1 AND occurred_on >= $4 AND occurred_on <= $5`,
		ownerID, domain.KindIncome, domain.KindExpense, from, to)
	if err := row.Scan(&totals.TotalIncome, &totals.TotalExpense, &totals.TransactionCount); err != nil {
		return nil, fmt.Errorf("window totals: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT category, sum(amount)
		FROM transactions
		WHERE owner_id = $1 AND kind = $2 AND occurred_on >= $3 AND occurred_on <= $4
		GROUP BY category
		ORDER BY sum(amount) DESC, category ASC`,
		ownerID, domain.KindExpense, from, to)
	if err != nil {
		return nil, fmt.Errorf("window category totals: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var ct domain.CategoryTotal
		if err := rows.Scan(&ct.Category, &ct.Total); err != nil {
			return nil, fmt.Errorf("scan category total: %w", err)
		}
		totals.ExpenseByCategory = append(totals.ExpenseByCategory, ct)
	}
	return totals, rows.Err()
}

func (r *TransactionRepo) CountForWallet(ctx context.Context, walletID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `
		SELECT count(*) FROM transactions
		WHERE wallet_id = $1 OR to_wallet_id = $1`, walletID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count wallet transactions: %w", err)
	}
	return n, nil
}
