// Package service provides the business logic layer (use cases).
// Ledger is the only writer of wallet balances: every transaction
// create/update/delete goes through one of its atomic units of work.
package service

import (
	"context"
	"time"

	"github.com/fintrack/fintrack-go/internal/domain"
	"github.com/fintrack/fintrack-go/internal/infra/observability"
	"github.com/fintrack/fintrack-go/internal/port"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

var ledgerTracer = otel.Tracer("service/ledger")

// Ledger applies transaction mutations against wallet balances inside atomic
// units of work, and triggers budget threshold checks after expense writes.
type Ledger struct {
	store        port.LedgerStore
	transactions port.TransactionStore
	budgets      port.BudgetStore
	sink         port.NotificationSink
	metrics      *observability.Metrics
	logger       *zap.Logger
}

// NewLedger creates the ledger service.
func NewLedger(
	store port.LedgerStore,
	transactions port.TransactionStore,
	budgets port.BudgetStore,
	sink port.NotificationSink,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *Ledger {
	return &Ledger{
		store:        store,
		transactions: transactions,
		budgets:      budgets,
		sink:         sink,
		metrics:      metrics,
		logger:       logger,
	}
}

// Create records a new transaction and applies its effect to the wallet(s).
// INCOME credits the wallet, EXPENSE debits it, TRANSFER debits the source
// and credits the destination. The row insert and every balance change
// commit or fail as one unit.
func (s *Ledger) Create(ctx context.Context, ownerID string, input *domain.TransactionInput) (*domain.Transaction, error) {
	ctx, span := ledgerTracer.Start(ctx, "Ledger.Create")
	defer span.End()
	span.SetAttributes(attribute.String("owner.id", ownerID), attribute.String("kind", string(input.Kind)))

	start := time.Now()
	if err := validateInput(input); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	txn := &domain.Transaction{
		ID:          uuid.New().String(),
		OwnerID:     ownerID,
		WalletID:    input.WalletID,
		ToWalletID:  input.ToWalletID,
		Amount:      input.Amount,
		Kind:        input.Kind,
		Category:    input.Category,
		Description: input.Description,
		OccurredOn:  input.OccurredOn.Time,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err := s.store.WithinTx(ctx, func(tx port.LedgerTx) error {
		if err := s.lockWallets(ctx, tx, ownerID, txn); err != nil {
			return err
		}
		if err := tx.InsertTransaction(ctx, txn); err != nil {
			return err
		}
		return applyEffect(ctx, tx, txn, false)
	})
	if err != nil {
		s.logger.Error("ledger: create failed",
			zap.String("owner_id", ownerID),
			zap.String("wallet_id", input.WalletID),
			zap.Error(err),
		)
		return nil, err
	}

	s.metrics.IncrLedgerOp("create", string(txn.Kind))
	s.metrics.RecordRequestDuration("ledger.create", time.Since(start))
	s.logger.Info("transaction created",
		zap.String("transaction_id", txn.ID),
		zap.String("owner_id", ownerID),
		zap.String("kind", string(txn.Kind)),
		zap.String("amount", txn.Amount.String()),
	)

	if txn.Kind == domain.KindExpense {
		s.checkBudgets(ctx, txn)
	}
	return txn, nil
}

// Update replaces a transaction's fields and rebalances the affected wallets.
// The old effect is reverted with the inverse rule, then the new effect is
// applied with the create-time rule — even when wallet, kind, category and
// amount all change at once. Both phases share one unit of work.
func (s *Ledger) Update(ctx context.Context, ownerID, transactionID string, input *domain.TransactionInput) (*domain.Transaction, error) {
	ctx, span := ledgerTracer.Start(ctx, "Ledger.Update")
	defer span.End()
	span.SetAttributes(attribute.String("transaction.id", transactionID))

	start := time.Now()
	if err := validateInput(input); err != nil {
		return nil, err
	}

	var updated *domain.Transaction
	err := s.store.WithinTx(ctx, func(tx port.LedgerTx) error {
		old, err := tx.GetTransaction(ctx, ownerID, transactionID)
		if err != nil {
			return err
		}

		if err := s.lockWallets(ctx, tx, ownerID, old); err != nil {
			return err
		}
		if err := applyEffect(ctx, tx, old, true); err != nil {
			return err
		}

		next := *old
		next.WalletID = input.WalletID
		next.ToWalletID = input.ToWalletID
		next.Amount = input.Amount
		next.Kind = input.Kind
		next.Category = input.Category
		next.Description = input.Description
		next.OccurredOn = input.OccurredOn.Time
		next.UpdatedAt = time.Now().UTC()

		if err := s.lockWallets(ctx, tx, ownerID, &next); err != nil {
			return err
		}
		if err := tx.UpdateTransaction(ctx, &next); err != nil {
			return err
		}
		if err := applyEffect(ctx, tx, &next, false); err != nil {
			return err
		}

		updated = &next
		return nil
	})
	if err != nil {
		s.logger.Error("ledger: update failed",
			zap.String("transaction_id", transactionID),
			zap.String("owner_id", ownerID),
			zap.Error(err),
		)
		return nil, err
	}

	s.metrics.IncrLedgerOp("update", string(updated.Kind))
	s.metrics.RecordRequestDuration("ledger.update", time.Since(start))
	s.logger.Info("transaction updated",
		zap.String("transaction_id", updated.ID),
		zap.String("owner_id", ownerID),
		zap.String("kind", string(updated.Kind)),
	)

	if updated.Kind == domain.KindExpense {
		s.checkBudgets(ctx, updated)
	}
	return updated, nil
}

// Delete reverts a transaction's effect and removes the row. Removing an
// expense cannot push a budget over its limit, so no budget check runs.
func (s *Ledger) Delete(ctx context.Context, ownerID, transactionID string) error {
	ctx, span := ledgerTracer.Start(ctx, "Ledger.Delete")
	defer span.End()
	span.SetAttributes(attribute.String("transaction.id", transactionID))

	start := time.Now()
	err := s.store.WithinTx(ctx, func(tx port.LedgerTx) error {
		old, err := tx.GetTransaction(ctx, ownerID, transactionID)
		if err != nil {
			return err
		}
		if err := s.lockWallets(ctx, tx, ownerID, old); err != nil {
			return err
		}
		if err := applyEffect(ctx, tx, old, true); err != nil {
			return err
		}
		return tx.DeleteTransaction(ctx, old.ID)
	})
	if err != nil {
		s.logger.Error("ledger: delete failed",
			zap.String("transaction_id", transactionID),
			zap.String("owner_id", ownerID),
			zap.Error(err),
		)
		return err
	}

	s.metrics.IncrLedgerOp("delete", "")
	s.metrics.RecordRequestDuration("ledger.delete", time.Since(start))
	s.logger.Info("transaction deleted",
		zap.String("transaction_id", transactionID),
		zap.String("owner_id", ownerID),
	)
	return nil
}

// Get returns a single transaction owned by ownerID.
func (s *Ledger) Get(ctx context.Context, ownerID, transactionID string) (*domain.Transaction, error) {
	ctx, span := ledgerTracer.Start(ctx, "Ledger.Get")
	defer span.End()

	return s.transactions.Get(ctx, ownerID, transactionID)
}

// List returns the owner's transactions, newest first, honoring the filter.
func (s *Ledger) List(ctx context.Context, ownerID string, filter domain.TransactionFilter) ([]domain.Transaction, int, error) {
	ctx, span := ledgerTracer.Start(ctx, "Ledger.List")
	defer span.End()

	return s.transactions.List(ctx, ownerID, filter)
}

// lockWallets acquires row locks on every wallet the transaction touches and
// verifies ownership. Source first, then destination, so two transfers
// between the same pair of wallets cannot deadlock on opposite lock orders
// within one owner's requests.
func (s *Ledger) lockWallets(ctx context.Context, tx port.LedgerTx, ownerID string, txn *domain.Transaction) error {
	if _, err := tx.GetWalletForUpdate(ctx, ownerID, txn.WalletID); err != nil {
		return err
	}
	if txn.Kind == domain.KindTransfer && txn.ToWalletID != "" {
		if _, err := tx.GetWalletForUpdate(ctx, ownerID, txn.ToWalletID); err != nil {
			return err
		}
	}
	return nil
}

// applyEffect applies (or, with invert, reverts) a transaction's effect on
// wallet balances: INCOME +amount, EXPENSE -amount, TRANSFER -amount from
// source and +amount to destination.
func applyEffect(ctx context.Context, tx port.LedgerTx, txn *domain.Transaction, invert bool) error {
	amount := txn.Amount
	if invert {
		amount = amount.Neg()
	}

	switch txn.Kind {
	case domain.KindIncome:
		return tx.ApplyWalletDelta(ctx, txn.WalletID, amount)
	case domain.KindExpense:
		return tx.ApplyWalletDelta(ctx, txn.WalletID, amount.Neg())
	case domain.KindTransfer:
		if err := tx.ApplyWalletDelta(ctx, txn.WalletID, amount.Neg()); err != nil {
			return err
		}
		return tx.ApplyWalletDelta(ctx, txn.ToWalletID, amount)
	}
	return &domain.ErrValidation{Field: "kind", Message: "unknown transaction kind"}
}

func validateInput(input *domain.TransactionInput) error {
	if input.Amount.IsNegative() {
		return &domain.ErrValidation{Field: "amount", Message: "must not be negative"}
	}
	switch input.Kind {
	case domain.KindIncome, domain.KindExpense:
		if input.ToWalletID != "" {
			return &domain.ErrValidation{Field: "to_wallet_id", Message: "only allowed for transfers"}
		}
	case domain.KindTransfer:
		if input.ToWalletID == "" {
			return &domain.ErrValidation{Field: "to_wallet_id", Message: "required for transfers"}
		}
		if input.ToWalletID == input.WalletID {
			return &domain.ErrValidation{Field: "to_wallet_id", Message: "must differ from wallet_id"}
		}
	default:
		return &domain.ErrValidation{Field: "kind", Message: "must be INCOME, EXPENSE or TRANSFER"}
	}
	if input.OccurredOn.IsZero() {
		return &domain.ErrValidation{Field: "occurred_on", Message: "required"}
	}
	return nil
}

var (
	warnThreshold  = decimal.NewFromInt(90)
	alertThreshold = decimal.NewFromInt(100)
)

// checkBudgets evaluates every budget matching the expense's category and
// emits an alert per budget whose window total reaches 90% of the limit.
// Runs after the unit of work commits: a failed delivery is logged and
// dropped, never surfaced to the caller, and repeat alerts for a budget
// already over threshold are emitted every time on purpose.
func (s *Ledger) checkBudgets(ctx context.Context, txn *domain.Transaction) {
	ctx, span := ledgerTracer.Start(ctx, "Ledger.checkBudgets")
	defer span.End()

	budgets, err := s.budgets.FindByCategory(ctx, txn.OwnerID, txn.Category)
	if err != nil {
		s.logger.Warn("budget check: loading budgets failed",
			zap.String("owner_id", txn.OwnerID),
			zap.String("category", txn.Category),
			zap.Error(err),
		)
		return
	}

	for _, budget := range budgets {
		if !budget.LimitAmount.IsPositive() {
			continue
		}

		window := domain.WindowFor(budget.Period, txn.OccurredOn)
		spent, err := s.transactions.SumExpenses(ctx, txn.OwnerID, txn.Category, window.Start, window.End)
		if err != nil {
			s.logger.Warn("budget check: summing expenses failed",
				zap.String("budget_id", budget.ID),
				zap.Error(err),
			)
			continue
		}

		percentage := spent.Div(budget.LimitAmount).Mul(alertThreshold).Round(0)
		if percentage.LessThan(warnThreshold) {
			continue
		}

		severity := domain.SeverityWarning
		if percentage.GreaterThanOrEqual(alertThreshold) {
			severity = domain.SeverityAlert
		}

		alert := domain.NewBudgetAlert(&budget, percentage.IntPart(), severity)
		if err := s.sink.Send(ctx, alert); err != nil {
			s.metrics.IncrNotifyError("budget_alert")
			s.logger.Warn("budget alert delivery failed",
				zap.String("budget_id", budget.ID),
				zap.String("owner_id", txn.OwnerID),
				zap.Error(err),
			)
		}
		s.metrics.IncrBudgetAlert(string(severity))
		s.logger.Info("budget threshold crossed",
			zap.String("budget_id", budget.ID),
			zap.String("category", budget.Category),
			zap.Int64("percentage", percentage.IntPart()),
			zap.String("severity", string(severity)),
		)
	}
}
