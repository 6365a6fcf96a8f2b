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

var walletTracer = otel.Tracer("service/wallets")

// WalletInput is the payload to create or update a wallet. The balance is
// only honored on create (the opening balance); afterwards balances move
// exclusively through the ledger.
type WalletInput struct {
	Name    string            `json:"name" validate:"required,max=255"`
	Kind    domain.WalletKind `json:"kind" validate:"required,oneof=CASH BANK E-WALLET"`
	Balance decimal.Decimal   `json:"balance"`
}

// Wallets manages wallet CRUD.
type Wallets struct {
	wallets      port.WalletStore
	transactions port.TransactionStore
	logger       *zap.Logger
}

// NewWallets creates the wallet service.
func NewWallets(wallets port.WalletStore, transactions port.TransactionStore, logger *zap.Logger) *Wallets {
	return &Wallets{wallets: wallets, transactions: transactions, logger: logger}
}

func (s *Wallets) List(ctx context.Context, ownerID string) ([]domain.Wallet, error) {
	ctx, span := walletTracer.Start(ctx, "Wallets.List")
	defer span.End()

	return s.wallets.List(ctx, ownerID)
}

func (s *Wallets) Get(ctx context.Context, ownerID, walletID string) (*domain.Wallet, error) {
	ctx, span := walletTracer.Start(ctx, "Wallets.Get")
	defer span.End()

	return s.wallets.Get(ctx, ownerID, walletID)
}

func (s *Wallets) Create(ctx context.Context, ownerID string, input *WalletInput) (*domain.Wallet, error) {
	ctx, span := walletTracer.Start(ctx, "Wallets.Create")
	defer span.End()

	if err := validateWalletInput(input); err != nil {
		return nil, err
	}
	if input.Balance.IsNegative() {
		return nil, &domain.ErrValidation{Field: "balance", Message: "opening balance must not be negative"}
	}

	wallet := &domain.Wallet{
		ID:        uuid.New().String(),
		OwnerID:   ownerID,
		Name:      input.Name,
		Kind:      input.Kind,
		Balance:   input.Balance,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.wallets.Create(ctx, wallet); err != nil {
		return nil, err
	}

	s.logger.Info("wallet created",
		zap.String("wallet_id", wallet.ID),
		zap.String("owner_id", ownerID),
		zap.String("kind", string(wallet.Kind)),
	)
	return wallet, nil
}

// Update renames or re-kinds a wallet. The balance field is ignored here:
// changing it would break the ledger invariant.
func (s *Wallets) Update(ctx context.Context, ownerID, walletID string, input *WalletInput) (*domain.Wallet, error) {
	ctx, span := walletTracer.Start(ctx, "Wallets.Update")
	defer span.End()

	if err := validateWalletInput(input); err != nil {
		return nil, err
	}

	wallet, err := s.wallets.Get(ctx, ownerID, walletID)
	if err != nil {
		return nil, err
	}

	wallet.Name = input.Name
	wallet.Kind = input.Kind
	if err := s.wallets.Update(ctx, wallet); err != nil {
		return nil, err
	}
	return wallet, nil
}

// Delete removes a wallet. Wallets that still have transactions referencing
// them are kept, so history and balances stay explainable.
func (s *Wallets) Delete(ctx context.Context, ownerID, walletID string) error {
	ctx, span := walletTracer.Start(ctx, "Wallets.Delete")
	defer span.End()

	if _, err := s.wallets.Get(ctx, ownerID, walletID); err != nil {
		return err
	}

	count, err := s.transactions.CountForWallet(ctx, walletID)
	if err != nil {
		return err
	}
	if count > 0 {
		return &domain.ErrConflict{Message: "cannot delete a wallet that still has transactions"}
	}

	return s.wallets.Delete(ctx, ownerID, walletID)
}

func validateWalletInput(input *WalletInput) error {
	if input.Name == "" {
		return &domain.ErrValidation{Field: "name", Message: "required"}
	}
	switch input.Kind {
	case domain.WalletCash, domain.WalletBank, domain.WalletEWallet:
		return nil
	}
	return &domain.ErrValidation{Field: "kind", Message: "must be CASH, BANK or E-WALLET"}
}
