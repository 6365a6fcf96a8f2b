// Package port defines the interfaces (ports) for external dependencies.
// Following hexagonal architecture, these ports decouple the domain/service
// layer from concrete implementations.
package port

import (
	"context"
	"time"

	"github.com/fintrack/fintrack-go/internal/domain"

	"github.com/shopspring/decimal"
)

// LedgerTx is the transactional view of ledger storage. All methods operate
// inside one atomic unit of work: either every mutation issued through a
// LedgerTx commits, or none do. Wallet reads take a row lock so concurrent
// writers against the same wallet serialize in the store.
type LedgerTx interface {
	// GetWalletForUpdate fetches a wallet owned by ownerID and locks its row
	// for the remainder of the unit of work. Returns *domain.ErrNotFound if
	// the wallet does not exist or belongs to someone else.
	GetWalletForUpdate(ctx context.Context, ownerID, walletID string) (*domain.Wallet, error)

	// ApplyWalletDelta atomically increments (or, for negative deltas,
	// decrements) a wallet balance.
	ApplyWalletDelta(ctx context.Context, walletID string, delta decimal.Decimal) error

	GetTransaction(ctx context.Context, ownerID, id string) (*domain.Transaction, error)
	InsertTransaction(ctx context.Context, txn *domain.Transaction) error
	UpdateTransaction(ctx context.Context, txn *domain.Transaction) error
	DeleteTransaction(ctx context.Context, id string) error
}

// LedgerStore opens atomic units of work against the ledger.
type LedgerStore interface {
	// WithinTx runs fn inside one unit of work. If fn returns an error the
	// unit of work rolls back and the error is returned unchanged.
	WithinTx(ctx context.Context, fn func(tx LedgerTx) error) error
}

// WalletStore handles wallet reads and non-balance mutations. Balances are
// only ever changed through LedgerStore units of work.
type WalletStore interface {
	Get(ctx context.Context, ownerID, walletID string) (*domain.Wallet, error)
	List(ctx context.Context, ownerID string) ([]domain.Wallet, error)
	Create(ctx context.Context, wallet *domain.Wallet) error
	Update(ctx context.Context, wallet *domain.Wallet) error
	Delete(ctx context.Context, ownerID, walletID string) error
}

// TransactionStore handles transaction reads outside the unit of work.
type TransactionStore interface {
	Get(ctx context.Context, ownerID, id string) (*domain.Transaction, error)
	List(ctx context.Context, ownerID string, filter domain.TransactionFilter) ([]domain.Transaction, int, error)
	// SumExpenses returns the total of EXPENSE transactions for the owner and
	// category with occurred_on in the inclusive [from,to] range.
	SumExpenses(ctx context.Context, ownerID, category string, from, to time.Time) (decimal.Decimal, error)
	// WindowTotals aggregates all of the owner's transactions with occurred_on
	// in the inclusive [from,to] range. Unlike List it never pages, so the
	// sums and the count cover the whole window.
	WindowTotals(ctx context.Context, ownerID string, from, to time.Time) (*domain.WindowTotals, error)
	// CountForWallet reports how many transactions reference the wallet as
	// source or destination.
	CountForWallet(ctx context.Context, walletID string) (int, error)
}

// BudgetStore handles budget persistence.
type BudgetStore interface {
	Get(ctx context.Context, ownerID, id string) (*domain.Budget, error)
	List(ctx context.Context, ownerID string) ([]domain.Budget, error)
	// FindByCategory returns every budget the owner has for the exact
	// category; a user may hold several across different periods.
	FindByCategory(ctx context.Context, ownerID, category string) ([]domain.Budget, error)
	Create(ctx context.Context, budget *domain.Budget) error
	Update(ctx context.Context, budget *domain.Budget) error
	Delete(ctx context.Context, ownerID, id string) error
}

// NotificationSink receives budget alerts. Delivery is best-effort relative
// to the ledger mutation: implementations may fail without affecting the
// already-committed balance change.
type NotificationSink interface {
	Send(ctx context.Context, alert *domain.BudgetAlert) error
}

// NotificationStore handles persisted in-app notifications.
type NotificationStore interface {
	Insert(ctx context.Context, n *domain.Notification) error
	List(ctx context.Context, ownerID string, unreadOnly bool, page, pageSize int) ([]domain.Notification, error)
	MarkRead(ctx context.Context, ownerID, id string) error
	MarkAllRead(ctx context.Context, ownerID string) error
}

// DebtStore handles debts, receivables and bills.
type DebtStore interface {
	Get(ctx context.Context, ownerID, id string) (*domain.Debt, error)
	List(ctx context.Context, ownerID string) ([]domain.Debt, error)
	// ListUpcoming returns unpaid debts due on or after the reference date,
	// soonest first, capped at limit.
	ListUpcoming(ctx context.Context, ownerID string, after time.Time, limit int) ([]domain.Debt, error)
	Create(ctx context.Context, debt *domain.Debt) error
	Update(ctx context.Context, debt *domain.Debt) error
	Delete(ctx context.Context, ownerID, id string) error
}

// AssetStore handles logged assets.
type AssetStore interface {
	Get(ctx context.Context, ownerID, id string) (*domain.Asset, error)
	List(ctx context.Context, ownerID string) ([]domain.Asset, error)
	Create(ctx context.Context, asset *domain.Asset) error
	Update(ctx context.Context, asset *domain.Asset) error
	Delete(ctx context.Context, ownerID, id string) error
}

// CategoryStore handles user-scoped categories.
type CategoryStore interface {
	List(ctx context.Context, ownerID string) ([]domain.Category, error)
	Create(ctx context.Context, category *domain.Category) error
	Update(ctx context.Context, category *domain.Category) error
	Delete(ctx context.Context, ownerID, id string) error
}

// AuthStore handles users and refresh tokens.
type AuthStore interface {
	GetUserByID(ctx context.Context, id string) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	CreateUser(ctx context.Context, user *domain.User) error

	StoreRefreshToken(ctx context.Context, userID, tokenHash string, expiresAt time.Time) error
	GetRefreshToken(ctx context.Context, tokenHash string) (*domain.RefreshTokenRecord, error)
	RevokeRefreshToken(ctx context.Context, tokenHash string) error
	RevokeAllRefreshTokens(ctx context.Context, userID string) error
}

// Cache provides generic caching with TTL.
type Cache[T any] interface {
	Get(key string) (T, bool)
	Set(key string, value T)
	Delete(key string)
}
