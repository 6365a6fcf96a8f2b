package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/fintrack/fintrack-go/internal/domain"
)

// DebtRepo implements port.DebtStore.
type DebtRepo struct {
	db *sql.DB
}

// NewDebtRepo creates the debt repository.
func NewDebtRepo(db *sql.DB) *DebtRepo {
	return &DebtRepo{db: db}
}

const debtColumns = "id, owner_id, name, kind, amount, due_date, paid, description, created_at"

func (r *DebtRepo) Get(ctx context.Context, ownerID, id string) (*domain.Debt, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+debtColumns+" FROM debts WHERE id = $1 AND owner_id = $2", id, ownerID)

	var d domain.Debt
	if err := scanDebt(row, &d); err != nil {
		if err == sql.ErrNoRows {
			return nil, &domain.ErrNotFound{Resource: "debt", ID: id}
		}
		return nil, fmt.Errorf("get debt: %w", err)
	}
	return &d, nil
}

func (r *DebtRepo) List(ctx context.Context, ownerID string) ([]domain.Debt, error) {
	return r.query(ctx,
		"SELECT "+debtColumns+" FROM debts WHERE owner_id = $1 ORDER BY due_date", ownerID)
}

func (r *DebtRepo) ListUpcoming(ctx context.Context, ownerID string, after time.Time, limit int) ([]domain.Debt, error) {
	return r.query(ctx,
		"SELECT "+debtColumns+` FROM debts
		WHERE owner_id = $1 AND NOT paid AND due_date >= $2
		ORDER BY due_date
		LIMIT $3`, ownerID, after, limit)
}

func (r *DebtRepo) query(ctx context.Context, q string, args ...any) ([]domain.Debt, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query debts: %w", err)
	}
	defer rows.Close()

	debts := []domain.Debt{}
	for rows.Next() {
		var d domain.Debt
		if err := scanDebt(rows, &d); err != nil {
			return nil, fmt.Errorf("scan debt: %w", err)
		}
		debts = append(debts, d)
	}
	return debts, rows.Err()
}

func scanDebt(row rowScanner, d *domain.Debt) error {
	return row.Scan(&d.ID, &d.OwnerID, &d.Name, &d.Kind, &d.Amount,
		&d.DueDate, &d.Paid, &d.Description, &d.CreatedAt)
}

func (r *DebtRepo) Create(ctx context.Context, debt *domain.Debt) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO debts (id, owner_id, name, kind, amount, due_date, paid, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		debt.ID, debt.OwnerID, debt.Name, debt.Kind, debt.Amount,
		debt.DueDate, debt.Paid, debt.Description, debt.CreatedAt)
	if err != nil {
		return fmt.Errorf("create debt: %w", err)
	}
	return nil
}

func (r *DebtRepo) Update(ctx context.Context, debt *domain.Debt) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE debts SET name = $1, kind = $2, amount = $3, due_date = $4, paid = $5, description = $6
		WHERE id = $7 AND owner_id = $8`,
		debt.Name, debt.Kind, debt.Amount, debt.DueDate, debt.Paid, debt.Description,
		debt.ID, debt.OwnerID)
	if err != nil {
		return fmt.Errorf("update debt: %w", err)
	}
	return requireAffected(res, "debt", debt.ID)
}

func (r *DebtRepo) Delete(ctx context.Context, ownerID, id string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM debts WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete debt: %w", err)
	}
	return requireAffected(res, "debt", id)
}
