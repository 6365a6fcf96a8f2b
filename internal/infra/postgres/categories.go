package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fintrack/fintrack-go/internal/domain"

	"github.com/lib/pq"
)

// CategoryRepo implements port.CategoryStore.
type CategoryRepo struct {
	db *sql.DB
}

// NewCategoryRepo creates the category repository.
func NewCategoryRepo(db *sql.DB) *CategoryRepo {
	return &CategoryRepo{db: db}
}

func (r *CategoryRepo) List(ctx context.Context, ownerID string) ([]domain.Category, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, owner_id, name, kind
		FROM categories WHERE owner_id = $1 ORDER BY kind, name`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	categories := []domain.Category{}
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.OwnerID, &c.Name, &c.Kind); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *CategoryRepo) Create(ctx context.Context, category *domain.Category) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO categories (id, owner_id, name, kind)
		VALUES ($1, $2, $3, $4)`,
		category.ID, category.OwnerID, category.Name, category.Kind)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return &domain.ErrConflict{Message: "category already exists"}
		}
		return fmt.Errorf("create category: %w", err)
	}
	return nil
}

func (r *CategoryRepo) Update(ctx context.Context, category *domain.Category) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE categories SET name = $1, kind = $2
		WHERE id = $3 AND owner_id = $4`,
		category.Name, category.Kind, category.ID, category.OwnerID)
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	return requireAffected(res, "category", category.ID)
}

func (r *CategoryRepo) Delete(ctx context.Context, ownerID, id string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM categories WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return requireAffected(res, "category", id)
}
