package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fintrack/fintrack-go/internal/domain"
	"github.com/fintrack/fintrack-go/internal/service"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// fakeWalletStore backs the wallet service tests.
type fakeWalletStore struct {
	wallets map[string]*domain.Wallet
}

func newFakeWalletStore() *fakeWalletStore {
	return &fakeWalletStore{wallets: map[string]*domain.Wallet{}}
}

func (f *fakeWalletStore) Get(_ context.Context, ownerID, walletID string) (*domain.Wallet, error) {
	w, ok := f.wallets[walletID]
	if !ok || w.OwnerID != ownerID {
		return nil, &domain.ErrNotFound{Resource: "wallet", ID: walletID}
	}
	cp := *w
	return &cp, nil
}

func (f *fakeWalletStore) List(_ context.Context, ownerID string) ([]domain.Wallet, error) {
	out := []domain.Wallet{}
	for _, w := range f.wallets {
		if w.OwnerID == ownerID {
			out = append(out, *w)
		}
	}
	return out, nil
}

func (f *fakeWalletStore) Create(_ context.Context, w *domain.Wallet) error {
	cp := *w
	f.wallets[w.ID] = &cp
	return nil
}

func (f *fakeWalletStore) Update(_ context.Context, w *domain.Wallet) error {
	cp := *w
	f.wallets[w.ID] = &cp
	return nil
}

func (f *fakeWalletStore) Delete(_ context.Context, _, walletID string) error {
	delete(f.wallets, walletID)
	return nil
}

func TestWalletCreate_HonorsOpeningBalance(t *testing.T) {
	store := newFakeWalletStore()
	svc := service.NewWallets(store, newFakeLedger(), zap.NewNop())

	w, err := svc.Create(context.Background(), owner, &service.WalletInput{
		Name: "Checking", Kind: domain.WalletBank, Balance: decimal.NewFromInt(250_000),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !w.Balance.Equal(decimal.NewFromInt(250_000)) {
		t.Errorf("balance = %s, want 250000", w.Balance)
	}
}

func TestWalletUpdate_IgnoresBalance(t *testing.T) {
	store := newFakeWalletStore()
	svc := service.NewWallets(store, newFakeLedger(), zap.NewNop())

	w, err := svc.Create(context.Background(), owner, &service.WalletInput{
		Name: "Checking", Kind: domain.WalletBank, Balance: decimal.NewFromInt(100_000),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := svc.Update(context.Background(), owner, w.ID, &service.WalletInput{
		Name: "Main checking", Kind: domain.WalletBank, Balance: decimal.NewFromInt(999_999),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "Main checking" {
		t.Errorf("name = %s, want renamed", updated.Name)
	}
	if !updated.Balance.Equal(decimal.NewFromInt(100_000)) {
		t.Errorf("balance = %s, want unchanged 100000", updated.Balance)
	}
}

func TestWalletDelete_BlockedWhileTransactionsExist(t *testing.T) {
	store := newFakeWalletStore()
	ledger := newFakeLedger()
	svc := service.NewWallets(store, ledger, zap.NewNop())

	w, err := svc.Create(context.Background(), owner, &service.WalletInput{
		Name: "Checking", Kind: domain.WalletBank,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	ledger.txns["t1"] = &domain.Transaction{
		ID: "t1", OwnerID: owner, WalletID: w.ID,
		Amount: decimal.NewFromInt(10), Kind: domain.KindExpense,
		Category: "Food", OccurredOn: time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC),
	}

	err = svc.Delete(context.Background(), owner, w.ID)
	var conflict *domain.ErrConflict
	if !errors.As(err, &conflict) {
		t.Fatalf("expected conflict error, got %v", err)
	}

	// Once the transaction is gone the wallet can be deleted.
	delete(ledger.txns, "t1")
	if err := svc.Delete(context.Background(), owner, w.ID); err != nil {
		t.Fatalf("delete after clearing transactions: %v", err)
	}
}

func TestWalletCreate_Validation(t *testing.T) {
	svc := service.NewWallets(newFakeWalletStore(), newFakeLedger(), zap.NewNop())

	var validation *domain.ErrValidation
	if _, err := svc.Create(context.Background(), owner, &service.WalletInput{Kind: domain.WalletCash}); !errors.As(err, &validation) {
		t.Errorf("missing name: expected validation error, got %v", err)
	}
	if _, err := svc.Create(context.Background(), owner, &service.WalletInput{Name: "X", Kind: "CRYPTO"}); !errors.As(err, &validation) {
		t.Errorf("bad kind: expected validation error, got %v", err)
	}
	if _, err := svc.Create(context.Background(), owner, &service.WalletInput{
		Name: "X", Kind: domain.WalletCash, Balance: decimal.NewFromInt(-1),
	}); !errors.As(err, &validation) {
		t.Errorf("negative opening balance: expected validation error, got %v", err)
	}
}
