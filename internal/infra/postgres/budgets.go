package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fintrack/fintrack-go/internal/domain"
)

// BudgetRepo implements port.BudgetStore.
type BudgetRepo struct {
	db *sql.DB
}

// NewBudgetRepo creates the budget repository.
func NewBudgetRepo(db *sql.DB) *BudgetRepo {
	return &BudgetRepo{db: db}
}

const budgetColumns = "id, owner_id, category, limit_amount, period, created_at"

func (r *BudgetRepo) Get(ctx context.Context, ownerID, id string) (*domain.Budget, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+budgetColumns+" FROM budgets WHERE id = $1 AND owner_id = $2", id, ownerID)

	var b domain.Budget
	if err := row.Scan(&b.ID, &b.OwnerID, &b.Category, &b.LimitAmount, &b.Period, &b.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, &domain.ErrNotFound{Resource: "budget", ID: id}
		}
		return nil, fmt.Errorf("get budget: %w", err)
	}
	return &b, nil
}

func (r *BudgetRepo) List(ctx context.Context, ownerID string) ([]domain.Budget, error) {
	return r.query(ctx,
		"SELECT "+budgetColumns+" FROM budgets WHERE owner_id = $1 ORDER BY category, period", ownerID)
}

func (r *BudgetRepo) FindByCategory(ctx context.Context, ownerID, category string) ([]domain.Budget, error) {
	return r.query(ctx,
		"SELECT "+budgetColumns+" FROM budgets WHERE owner_id = $1 AND category = $2", ownerID, category)
}

func (r *BudgetRepo) query(ctx context.Context, q string, args ...any) ([]domain.Budget, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query budgets: %w", err)
	}
	defer rows.Close()

	budgets := []domain.Budget{}
	for rows.Next() {
		var b domain.Budget
		if err := rows.Scan(&b.ID, &b.OwnerID, &b.Category, &b.LimitAmount, &b.Period, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan budget: %w", err)
		}
		budgets = append(budgets, b)
	}
	return budgets, rows.Err()
}

func (r *BudgetRepo) Create(ctx context.Context, budget *domain.Budget) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO budgets (id, owner_id, category, limit_amount, period, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		budget.ID, budget.OwnerID, budget.Category, budget.LimitAmount, budget.Period, budget.CreatedAt)
	if err != nil {
		return fmt.Errorf("create budget: %w", err)
	}
	return nil
}

func (r *BudgetRepo) Update(ctx context.Context, budget *domain.Budget) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE budgets SET category = $1, limit_amount = $2, period = $3
		WHERE id = $4 AND owner_id = $5`,
		budget.Category, budget.LimitAmount, budget.Period, budget.ID, budget.OwnerID)
	if err != nil {
		return fmt.Errorf("update budget: %w", err)
	}
	return requireAffected(res, "budget", budget.ID)
}

func (r *BudgetRepo) Delete(ctx context.Context, ownerID, id string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM budgets WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete budget: %w", err)
	}
	return requireAffected(res, "budget", id)
}
