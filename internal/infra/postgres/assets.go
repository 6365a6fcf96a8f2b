package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fintrack/fintrack-go/internal/domain"
)

// AssetRepo implements port.AssetStore.
type AssetRepo struct {
	db *sql.DB
}

// NewAssetRepo creates the asset repository.
func NewAssetRepo(db *sql.DB) *AssetRepo {
	return &AssetRepo{db: db}
}

func (r *AssetRepo) Get(ctx context.Context, ownerID, id string) (*domain.Asset, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, owner_id, name, kind, value, created_at
		FROM assets WHERE id = $1 AND owner_id = $2`, id, ownerID)

	var a domain.Asset
	if err := row.Scan(&a.ID, &a.OwnerID, &a.Name, &a.Kind, &a.Value, &a.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, &domain.ErrNotFound{Resource: "asset", ID: id}
		}
		return nil, fmt.Errorf("get asset: %w", err)
	}
	return &a, nil
}

func (r *AssetRepo) List(ctx context.Context, ownerID string) ([]domain.Asset, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, owner_id, name, kind, value, created_at
		FROM assets WHERE owner_id = $1 ORDER BY created_at`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list assets: %w", err)
	}
	defer rows.Close()

	assets := []domain.Asset{}
	for rows.Next() {
		var a domain.Asset
		if err := rows.Scan(&a.ID, &a.OwnerID, &a.Name, &a.Kind, &a.Value, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan asset: %w", err)
		}
		assets = append(assets, a)
	}
	return assets, rows.Err()
}

func (r *AssetRepo) Create(ctx context.Context, asset *domain.Asset) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO assets (id, owner_id, name, kind, value, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		asset.ID, asset.OwnerID, asset.Name, asset.Kind, asset.Value, asset.CreatedAt)
	if err != nil {
		return fmt.Errorf("create asset: %w", err)
	}
	return nil
}

func (r *AssetRepo) Update(ctx context.Context, asset *domain.Asset) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE assets SET name = $1, kind = $2, value = $3
		WHERE id = $4 AND owner_id = $5`,
		asset.Name, asset.Kind, asset.Value, asset.ID, asset.OwnerID)
	if err != nil {
		return fmt.Errorf("update asset: %w", err)
	}
	return requireAffected(res, "asset", asset.ID)
}

func (r *AssetRepo) Delete(ctx context.Context, ownerID, id string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM assets WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete asset: %w", err)
	}
	return requireAffected(res, "asset", id)
}
