package service

import (
	"context"
	"time"

	"github.com/fintrack/fintrack-go/internal/domain"
	"github.com/fintrack/fintrack-go/internal/port"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

var budgetTracer = otel.Tracer("service/budgets")

// Budgets manages per-category spending limits and computes their progress.
// Progress uses the same WindowFor + SumExpenses pair as the ledger's
// threshold check, so the listing and the alert trigger cannot drift apart.
type Budgets struct {
	budgets      port.BudgetStore
	transactions port.TransactionStore
	logger       *zap.Logger
}

// NewBudgets creates the budget service.
func NewBudgets(budgets port.BudgetStore, transactions port.TransactionStore, logger *zap.Logger) *Budgets {
	return &Budgets{budgets: budgets, transactions: transactions, logger: logger}
}

// List returns the owner's budgets without progress.
func (s *Budgets) List(ctx context.Context, ownerID string) ([]domain.Budget, error) {
	ctx, span := budgetTracer.Start(ctx, "Budgets.List")
	defer span.End()

	return s.budgets.List(ctx, ownerID)
}

// ListWithProgress returns every budget enriched with spending for the
// window containing now. The reference time is an explicit parameter so the
// computation stays deterministic and testable.
func (s *Budgets) ListWithProgress(ctx context.Context, ownerID string, now time.Time) ([]domain.BudgetProgress, error) {
	ctx, span := budgetTracer.Start(ctx, "Budgets.ListWithProgress")
	defer span.End()
	span.SetAttributes(attribute.String("owner.id", ownerID))

	budgets, err := s.budgets.List(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	progress := make([]domain.BudgetProgress, 0, len(budgets))
	for _, budget := range budgets {
		window := domain.WindowFor(budget.Period, now)
		spent, err := s.transactions.SumExpenses(ctx, ownerID, budget.Category, window.Start, window.End)
		if err != nil {
			return nil, err
		}
		progress = append(progress, buildProgress(budget, spent))
	}
	return progress, nil
}

// buildProgress derives the display fields: remaining floors at zero and
// percentage clamps to 100. The unclamped value lives only in the ledger's
// threshold check.
func buildProgress(budget domain.Budget, spent decimal.Decimal) domain.BudgetProgress {
	remaining := budget.LimitAmount.Sub(spent)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}

	var pct int64
	if budget.LimitAmount.IsPositive() {
		pct = spent.Div(budget.LimitAmount).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
		if pct > 100 {
			pct = 100
		}
	}

	return domain.BudgetProgress{
		Budget:     budget,
		Spent:      spent,
		Remaining:  remaining,
		Percentage: pct,
	}
}

// Create validates and stores a new budget.
func (s *Budgets) Create(ctx context.Context, ownerID string, input *domain.BudgetInput) (*domain.Budget, error) {
	ctx, span := budgetTracer.Start(ctx, "Budgets.Create")
	defer span.End()

	if err := validateBudgetInput(input); err != nil {
		return nil, err
	}

	budget := &domain.Budget{
		ID:          uuid.New().String(),
		OwnerID:     ownerID,
		Category:    input.Category,
		LimitAmount: input.LimitAmount,
		Period:      input.Period,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.budgets.Create(ctx, budget); err != nil {
		return nil, err
	}

	s.logger.Info("budget created",
		zap.String("budget_id", budget.ID),
		zap.String("owner_id", ownerID),
		zap.String("category", budget.Category),
		zap.String("period", string(budget.Period)),
	)
	return budget, nil
}

// Update replaces a budget's fields.
func (s *Budgets) Update(ctx context.Context, ownerID, budgetID string, input *domain.BudgetInput) (*domain.Budget, error) {
	ctx, span := budgetTracer.Start(ctx, "Budgets.Update")
	defer span.End()

	if err := validateBudgetInput(input); err != nil {
		return nil, err
	}

	budget, err := s.budgets.Get(ctx, ownerID, budgetID)
	if err != nil {
		return nil, err
	}

	budget.Category = input.Category
	budget.LimitAmount = input.LimitAmount
	budget.Period = input.Period
	if err := s.budgets.Update(ctx, budget); err != nil {
		return nil, err
	}
	return budget, nil
}

// Delete removes a budget.
func (s *Budgets) Delete(ctx context.Context, ownerID, budgetID string) error {
	ctx, span := budgetTracer.Start(ctx, "Budgets.Delete")
	defer span.End()

	return s.budgets.Delete(ctx, ownerID, budgetID)
}

func validateBudgetInput(input *domain.BudgetInput) error {
	if input.Category == "" {
		return &domain.ErrValidation{Field: "category", Message: "required"}
	}
	if !input.LimitAmount.IsPositive() {
		return &domain.ErrValidation{Field: "limit_amount", Message: "must be positive"}
	}
	if input.Period == "" {
		input.Period = domain.PeriodMonthly
	}
	return nil
}
