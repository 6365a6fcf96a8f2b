// Package domain defines the core business entities for fintrack.
// These models are independent of storage and transport and represent the
// canonical data structures used throughout the service.
package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ============================================================
// Wallets
// ============================================================

// WalletKind classifies a wallet.
type WalletKind string

const (
	WalletCash    WalletKind = "CASH"
	WalletBank    WalletKind = "BANK"
	WalletEWallet WalletKind = "E-WALLET"
)

// Wallet is a named balance-holding account. Its balance always equals the
// initial balance plus the signed sum of all non-deleted transactions that
// reference it; it is mutated only through the ledger service.
type Wallet struct {
	ID        string          `json:"id"`
	OwnerID   string          `json:"owner_id"`
	Name      string          `json:"name"`
	Kind      WalletKind      `json:"kind"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt time.Time       `json:"created_at"`
}

// ============================================================
// Transactions
// ============================================================

// TransactionKind is the type of a ledger movement.
type TransactionKind string

const (
	KindIncome   TransactionKind = "INCOME"
	KindExpense  TransactionKind = "EXPENSE"
	KindTransfer TransactionKind = "TRANSFER"
)

// Transaction is a single recorded movement of money. ToWalletID is set
// only for transfers and always differs from WalletID.
type Transaction struct {
	ID          string          `json:"id"`
	OwnerID     string          `json:"owner_id"`
	WalletID    string          `json:"wallet_id"`
	ToWalletID  string          `json:"to_wallet_id,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Kind        TransactionKind `json:"kind"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	OccurredOn  time.Time       `json:"occurred_on"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// TransactionInput is the payload to create or fully replace a transaction.
type TransactionInput struct {
	WalletID    string          `json:"wallet_id" validate:"required"`
	ToWalletID  string          `json:"to_wallet_id,omitempty"`
	Amount      decimal.Decimal `json:"amount" validate:"required"`
	Kind        TransactionKind `json:"kind" validate:"required,oneof=INCOME EXPENSE TRANSFER"`
	Category    string          `json:"category" validate:"required"`
	Description string          `json:"description" validate:"required,max=255"`
	OccurredOn  Date            `json:"occurred_on" validate:"required"`
}

// TransactionFilter narrows a transaction listing.
type TransactionFilter struct {
	Kind     TransactionKind
	WalletID string
	From     time.Time
	To       time.Time
	Page     int
	PageSize int
}

// ============================================================
// Budgets
// ============================================================

// Budget is a per-category spending limit over a recurring period.
// Spent/remaining/percentage are derived on demand, never stored.
type Budget struct {
	ID          string          `json:"id"`
	OwnerID     string          `json:"owner_id"`
	Category    string          `json:"category"`
	LimitAmount decimal.Decimal `json:"limit_amount"`
	Period      BudgetPeriod    `json:"period"`
	CreatedAt   time.Time       `json:"created_at"`
}

// BudgetInput is the payload to create or update a budget.
type BudgetInput struct {
	Category    string          `json:"category" validate:"required,max=255"`
	LimitAmount decimal.Decimal `json:"limit_amount" validate:"required"`
	Period      BudgetPeriod    `json:"period" validate:"required,oneof=WEEKLY MONTHLY YEARLY"`
}

// BudgetProgress is a budget enriched with spending for the current window.
// Percentage is clamped to [0,100] for display.
type BudgetProgress struct {
	Budget
	Spent      decimal.Decimal `json:"spent"`
	Remaining  decimal.Decimal `json:"remaining"`
	Percentage int64           `json:"percentage"`
}

// BudgetAlert is emitted when an expense pushes a budget past its
// notification threshold. Percentage is the rounded, unclamped value.
type BudgetAlert struct {
	OwnerID    string        `json:"owner_id"`
	BudgetID   string        `json:"budget_id"`
	Category   string        `json:"category"`
	Period     BudgetPeriod  `json:"period"`
	Title      string        `json:"title"`
	Message    string        `json:"message"`
	Severity   AlertSeverity `json:"severity"`
	Percentage int64         `json:"percentage"`
}

// AlertSeverity distinguishes approaching-limit warnings from exceeded-limit alerts.
type AlertSeverity string

const (
	SeverityWarning AlertSeverity = "WARNING"
	SeverityAlert   AlertSeverity = "ALERT"
)

// NewBudgetAlert builds the alert payload for a budget whose window spending
// reached the given (rounded, unclamped) percentage of its limit.
func NewBudgetAlert(budget *Budget, percentage int64, severity AlertSeverity) *BudgetAlert {
	return &BudgetAlert{
		OwnerID:    budget.OwnerID,
		BudgetID:   budget.ID,
		Category:   budget.Category,
		Period:     budget.Period,
		Title:      "Budget warning",
		Message:    fmt.Sprintf("Spending for category '%s' has reached %d%% of the limit.", budget.Category, percentage),
		Severity:   severity,
		Percentage: percentage,
	}
}

// ============================================================
// Debts / Receivables
// ============================================================

// DebtKind distinguishes money owed from money expected.
type DebtKind string

const (
	DebtOwed       DebtKind = "DEBT"
	DebtReceivable DebtKind = "RECEIVABLE"
)

// Debt is a bill, debt, or receivable with a due date.
type Debt struct {
	ID          string          `json:"id"`
	OwnerID     string          `json:"owner_id"`
	Name        string          `json:"name"`
	Kind        DebtKind        `json:"kind"`
	Amount      decimal.Decimal `json:"amount"`
	DueDate     time.Time       `json:"due_date"`
	Paid        bool            `json:"paid"`
	Description string          `json:"description,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// DebtInput is the payload to create or update a debt.
type DebtInput struct {
	Name        string          `json:"name" validate:"required,max=255"`
	Kind        DebtKind        `json:"kind" validate:"required,oneof=DEBT RECEIVABLE"`
	Amount      decimal.Decimal `json:"amount" validate:"required"`
	DueDate     Date            `json:"due_date" validate:"required"`
	Description string          `json:"description,omitempty"`
}

// ============================================================
// Assets
// ============================================================

// Asset is a logged possession with an estimated value.
type Asset struct {
	ID        string          `json:"id"`
	OwnerID   string          `json:"owner_id"`
	Name      string          `json:"name"`
	Kind      string          `json:"kind"`
	Value     decimal.Decimal `json:"value"`
	CreatedAt time.Time       `json:"created_at"`
}

// AssetInput is the payload to create or update an asset.
type AssetInput struct {
	Name  string          `json:"name" validate:"required,max=255"`
	Kind  string          `json:"kind" validate:"required,max=64"`
	Value decimal.Decimal `json:"value" validate:"required"`
}

// ============================================================
// Categories
// ============================================================

// Category is a user-scoped transaction category.
type Category struct {
	ID      string          `json:"id"`
	OwnerID string          `json:"owner_id"`
	Name    string          `json:"name"`
	Kind    TransactionKind `json:"kind"`
}

// CategoryInput is the payload to create or update a category.
type CategoryInput struct {
	Name string          `json:"name" validate:"required,max=255"`
	Kind TransactionKind `json:"kind" validate:"required,oneof=INCOME EXPENSE"`
}

// ============================================================
// Notifications
// ============================================================

// Notification is a persisted in-app notification.
type Notification struct {
	ID        string        `json:"id"`
	OwnerID   string        `json:"owner_id"`
	Title     string        `json:"title"`
	Message   string        `json:"message"`
	Severity  AlertSeverity `json:"severity"`
	Category  string        `json:"category,omitempty"`
	BudgetID  string        `json:"budget_id,omitempty"`
	IsRead    bool          `json:"is_read"`
	ReadAt    *time.Time    `json:"read_at,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
}

// ============================================================
// Dashboard
// ============================================================

// DashboardStats aggregates the headline numbers for the current month.
type DashboardStats struct {
	TotalIncome      decimal.Decimal `json:"total_income"`
	TotalExpense     decimal.Decimal `json:"total_expense"`
	Balance          decimal.Decimal `json:"balance"`
	NetFlow          decimal.Decimal `json:"net_flow"`
	TransactionCount int             `json:"transaction_count"`
}

// CategoryTotal is spending per category.
type CategoryTotal struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
}

// WindowTotals aggregates every transaction in a date window, independent of
// listing pagination: per-kind sums, expense totals per category, and the
// overall row count.
type WindowTotals struct {
	TotalIncome       decimal.Decimal
	TotalExpense      decimal.Decimal
	ExpenseByCategory []CategoryTotal
	TransactionCount  int
}

// DashboardSummary is the full dashboard payload.
type DashboardSummary struct {
	Stats              DashboardStats   `json:"stats"`
	ExpenseByCategory  []CategoryTotal  `json:"expense_by_category"`
	BudgetProgress     []BudgetProgress `json:"budget_progress"`
	RecentTransactions []Transaction    `json:"recent_transactions"`
	Wallets            []Wallet         `json:"wallets"`
	UpcomingBills      []Debt           `json:"upcoming_bills"`
}

// ============================================================
// Users / Auth
// ============================================================

// User is a registered account holder.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// RegisterRequest is the body for POST /v1/auth/register.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,max=255"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginRequest is the body for POST /v1/auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse is returned by login and refresh.
type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
	UserID       string `json:"user_id"`
	Name         string `json:"name"`
}

// RefreshRequest is the body for POST /v1/auth/refresh.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RefreshTokenRecord is a stored, hashed refresh token.
type RefreshTokenRecord struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	TokenHash string    `json:"token_hash"`
	ExpiresAt time.Time `json:"expires_at"`
	Revoked   bool      `json:"revoked"`
}

// ============================================================
// Generic API wrappers
// ============================================================

// ListResponse wraps paginated list results.
type ListResponse[T any] struct {
	Data     []T  `json:"data"`
	Total    int  `json:"total"`
	Page     int  `json:"page"`
	PageSize int  `json:"page_size"`
	HasMore  bool `json:"has_more"`
}

// SuccessResponse wraps a successful mutation response.
type SuccessResponse struct {
	Message string `json:"message"`
	ID      string `json:"id,omitempty"`
}
