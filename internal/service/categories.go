package service

import (
	"context"

	"github.com/fintrack/fintrack-go/internal/domain"
	"github.com/fintrack/fintrack-go/internal/port"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

var categoryTracer = otel.Tracer("service/categories")

// defaultCategories are seeded for every new user.
var defaultCategories = []struct {
	Name string
	Kind domain.TransactionKind
}{
	{"Salary", domain.KindIncome},
	{"Bonus", domain.KindIncome},
	{"Food", domain.KindExpense},
	{"Transport", domain.KindExpense},
	{"Shopping", domain.KindExpense},
	{"Bills", domain.KindExpense},
	{"Health", domain.KindExpense},
	{"Entertainment", domain.KindExpense},
}

// Categories manages user-scoped transaction categories.
type Categories struct {
	categories port.CategoryStore
	logger     *zap.Logger
}

// NewCategories creates the category service.
func NewCategories(categories port.CategoryStore, logger *zap.Logger) *Categories {
	return &Categories{categories: categories, logger: logger}
}

func (s *Categories) List(ctx context.Context, ownerID string) ([]domain.Category, error) {
	ctx, span := categoryTracer.Start(ctx, "Categories.List")
	defer span.End()

	return s.categories.List(ctx, ownerID)
}

func (s *Categories) Create(ctx context.Context, ownerID string, input *domain.CategoryInput) (*domain.Category, error) {
	ctx, span := categoryTracer.Start(ctx, "Categories.Create")
	defer span.End()

	if err := validateCategoryInput(input); err != nil {
		return nil, err
	}

	category := &domain.Category{
		ID:      uuid.New().String(),
		OwnerID: ownerID,
		Name:    input.Name,
		Kind:    input.Kind,
	}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *Categories) Update(ctx context.Context, ownerID, categoryID string, input *domain.CategoryInput) (*domain.Category, error) {
	ctx, span := categoryTracer.Start(ctx, "Categories.Update")
	defer span.End()

	if err := validateCategoryInput(input); err != nil {
		return nil, err
	}

	category := &domain.Category{
		ID:      categoryID,
		OwnerID: ownerID,
		Name:    input.Name,
		Kind:    input.Kind,
	}
	if err := s.categories.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *Categories) Delete(ctx context.Context, ownerID, categoryID string) error {
	ctx, span := categoryTracer.Start(ctx, "Categories.Delete")
	defer span.End()

	return s.categories.Delete(ctx, ownerID, categoryID)
}

// SeedDefaults creates the starter categories for a new user. Failures are
// logged but not fatal: registration should not break over seed data.
func (s *Categories) SeedDefaults(ctx context.Context, ownerID string) {
	for _, def := range defaultCategories {
		category := &domain.Category{
			ID:      uuid.New().String(),
			OwnerID: ownerID,
			Name:    def.Name,
			Kind:    def.Kind,
		}
		if err := s.categories.Create(ctx, category); err != nil {
			s.logger.Warn("seeding default category failed",
				zap.String("owner_id", ownerID),
				zap.String("name", def.Name),
				zap.Error(err),
			)
		}
	}
}

func validateCategoryInput(input *domain.CategoryInput) error {
	if input.Name == "" {
		return &domain.ErrValidation{Field: "name", Message: "required"}
	}
	if input.Kind != domain.KindIncome && input.Kind != domain.KindExpense {
		return &domain.ErrValidation{Field: "kind", Message: "must be INCOME or EXPENSE"}
	}
	return nil
}
