package service

import (
	"context"
	"time"

	"github.com/fintrack/fintrack-go/internal/domain"
	"github.com/fintrack/fintrack-go/internal/port"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

var debtTracer = otel.Tracer("service/debts")

// Debts manages debts, receivables and upcoming bills.
type Debts struct {
	debts  port.DebtStore
	logger *zap.Logger
}

// NewDebts creates the debt service.
func NewDebts(debts port.DebtStore, logger *zap.Logger) *Debts {
	return &Debts{debts: debts, logger: logger}
}

func (s *Debts) List(ctx context.Context, ownerID string) ([]domain.Debt, error) {
	ctx, span := debtTracer.Start(ctx, "Debts.List")
	defer span.End()

	return s.debts.List(ctx, ownerID)
}

func (s *Debts) Create(ctx context.Context, ownerID string, input *domain.DebtInput) (*domain.Debt, error) {
	ctx, span := debtTracer.Start(ctx, "Debts.Create")
	defer span.End()

	if err := validateDebtInput(input); err != nil {
		return nil, err
	}

	debt := &domain.Debt{
		ID:          uuid.New().String(),
		OwnerID:     ownerID,
		Name:        input.Name,
		Kind:        input.Kind,
		Amount:      input.Amount,
		DueDate:     input.DueDate.Time,
		Description: input.Description,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.debts.Create(ctx, debt); err != nil {
		return nil, err
	}

	s.logger.Info("debt created",
		zap.String("debt_id", debt.ID),
		zap.String("owner_id", ownerID),
		zap.String("kind", string(debt.Kind)),
	)
	return debt, nil
}

func (s *Debts) Update(ctx context.Context, ownerID, debtID string, input *domain.DebtInput) (*domain.Debt, error) {
	ctx, span := debtTracer.Start(ctx, "Debts.Update")
	defer span.End()

	if err := validateDebtInput(input); err != nil {
		return nil, err
	}

	debt, err := s.debts.Get(ctx, ownerID, debtID)
	if err != nil {
		return nil, err
	}

	debt.Name = input.Name
	debt.Kind = input.Kind
	debt.Amount = input.Amount
	debt.DueDate = input.DueDate.Time
	debt.Description = input.Description
	if err := s.debts.Update(ctx, debt); err != nil {
		return nil, err
	}
	return debt, nil
}

// TogglePaid flips the paid flag.
func (s *Debts) TogglePaid(ctx context.Context, ownerID, debtID string) (*domain.Debt, error) {
	ctx, span := debtTracer.Start(ctx, "Debts.TogglePaid")
	defer span.End()

	debt, err := s.debts.Get(ctx, ownerID, debtID)
	if err != nil {
		return nil, err
	}

	debt.Paid = !debt.Paid
	if err := s.debts.Update(ctx, debt); err != nil {
		return nil, err
	}
	return debt, nil
}

func (s *Debts) Delete(ctx context.Context, ownerID, debtID string) error {
	ctx, span := debtTracer.Start(ctx, "Debts.Delete")
	defer span.End()

	return s.debts.Delete(ctx, ownerID, debtID)
}

func validateDebtInput(input *domain.DebtInput) error {
	if input.Name == "" {
		return &domain.ErrValidation{Field: "name", Message: "required"}
	}
	if input.Kind != domain.DebtOwed && input.Kind != domain.DebtReceivable {
		return &domain.ErrValidation{Field: "kind", Message: "must be DEBT or RECEIVABLE"}
	}
	if input.Amount.IsNegative() {
		return &domain.ErrValidation{Field: "amount", Message: "must not be negative"}
	}
	if input.DueDate.IsZero() {
		return &domain.ErrValidation{Field: "due_date", Message: "required"}
	}
	return nil
}
