package service

import (
	"context"
	"time"

	"github.com/fintrack/fintrack-go/internal/domain"
	"github.com/fintrack/fintrack-go/internal/port"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

var assetTracer = otel.Tracer("service/assets")

// Assets manages logged possessions.
type Assets struct {
	assets port.AssetStore
	logger *zap.Logger
}

// NewAssets creates the asset service.
func NewAssets(assets port.AssetStore, logger *zap.Logger) *Assets {
	return &Assets{assets: assets, logger: logger}
}

func (s *Assets) List(ctx context.Context, ownerID string) ([]domain.Asset, error) {
	ctx, span := assetTracer.Start(ctx, "Assets.List")
	defer span.End()

	return s.assets.List(ctx, ownerID)
}

// TotalValue sums the owner's asset values.
func (s *Assets) TotalValue(ctx context.Context, ownerID string) (decimal.Decimal, error) {
	ctx, span := assetTracer.Start(ctx, "Assets.TotalValue")
	defer span.End()

	assets, err := s.assets.List(ctx, ownerID)
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, a := range assets {
		total = total.Add(a.Value)
	}
	return total, nil
}

func (s *Assets) Create(ctx context.Context, ownerID string, input *domain.AssetInput) (*domain.Asset, error) {
	ctx, span := assetTracer.Start(ctx, "Assets.Create")
	defer span.End()

	if err := validateAssetInput(input); err != nil {
		return nil, err
	}

	asset := &domain.Asset{
		ID:        uuid.New().String(),
		OwnerID:   ownerID,
		Name:      input.Name,
		Kind:      input.Kind,
		Value:     input.Value,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.assets.Create(ctx, asset); err != nil {
		return nil, err
	}
	return asset, nil
}

func (s *Assets) Update(ctx context.Context, ownerID, assetID string, input *domain.AssetInput) (*domain.Asset, error) {
	ctx, span := assetTracer.Start(ctx, "Assets.Update")
	defer span.End()

	if err := validateAssetInput(input); err != nil {
		return nil, err
	}

	asset, err := s.assets.Get(ctx, ownerID, assetID)
	if err != nil {
		return nil, err
	}

	asset.Name = input.Name
	asset.Kind = input.Kind
	asset.Value = input.Value
	if err := s.assets.Update(ctx, asset); err != nil {
		return nil, err
	}
	return asset, nil
}

func (s *Assets) Delete(ctx context.Context, ownerID, assetID string) error {
	ctx, span := assetTracer.Start(ctx, "Assets.Delete")
	defer span.End()

	return s.assets.Delete(ctx, ownerID, assetID)
}

func validateAssetInput(input *domain.AssetInput) error {
	if input.Name == "" {
		return &domain.ErrValidation{Field: "name", Message: "required"}
	}
	if input.Value.IsNegative() {
		return &domain.ErrValidation{Field: "value", Message: "must not be negative"}
	}
	return nil
}
