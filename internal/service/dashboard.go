package service

import (
	"context"
	"time"

	"github.com/fintrack/fintrack-go/internal/domain"
	"github.com/fintrack/fintrack-go/internal/infra/observability"
	"github.com/fintrack/fintrack-go/internal/port"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var dashboardTracer = otel.Tracer("service/dashboard")

const (
	recentTransactionLimit = 10
	upcomingBillLimit      = 5
)

// Dashboard aggregates the month's activity into one payload. The pieces
// are independent reads, so they are fetched concurrently and the result is
// cached for a short TTL keyed by owner and month.
type Dashboard struct {
	wallets      port.WalletStore
	transactions port.TransactionStore
	budgets      *Budgets
	debts        port.DebtStore
	cache        port.Cache[*domain.DashboardSummary]
	metrics      *observability.Metrics
	logger       *zap.Logger
}

// NewDashboard creates the dashboard service.
func NewDashboard(
	wallets port.WalletStore,
	transactions port.TransactionStore,
	budgets *Budgets,
	debts port.DebtStore,
	cache port.Cache[*domain.DashboardSummary],
	metrics *observability.Metrics,
	logger *zap.Logger,
) *Dashboard {
	return &Dashboard{
		wallets:      wallets,
		transactions: transactions,
		budgets:      budgets,
		debts:        debts,
		cache:        cache,
		metrics:      metrics,
		logger:       logger,
	}
}

// Summary builds the dashboard for the calendar month containing now.
// The reference time is an explicit parameter, matching the budget window
// convention.
func (s *Dashboard) Summary(ctx context.Context, ownerID string, now time.Time) (*domain.DashboardSummary, error) {
	ctx, span := dashboardTracer.Start(ctx, "Dashboard.Summary")
	defer span.End()
	span.SetAttributes(attribute.String("owner.id", ownerID))

	cacheKey := ownerID + ":" + now.UTC().Format("2006-01")
	if cached, ok := s.cache.Get(cacheKey); ok {
		s.metrics.IncrCacheHit("dashboard")
		return cached, nil
	}
	s.metrics.IncrCacheMiss("dashboard")

	window := domain.WindowFor(domain.PeriodMonthly, now)

	var (
		wallets  []domain.Wallet
		totals   *domain.WindowTotals
		recent   []domain.Transaction
		progress []domain.BudgetProgress
		upcoming []domain.Debt
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		wallets, err = s.wallets.List(gCtx, ownerID)
		return err
	})
	// Stats come from an unpaged aggregate; List only feeds the recent slice.
	g.Go(func() error {
		var err error
		totals, err = s.transactions.WindowTotals(gCtx, ownerID, window.Start, window.End)
		return err
	})
	g.Go(func() error {
		var err error
		recent, _, err = s.transactions.List(gCtx, ownerID, domain.TransactionFilter{
			From:     window.Start,
			To:       window.End,
			Page:     1,
			PageSize: recentTransactionLimit,
		})
		return err
	})
	g.Go(func() error {
		var err error
		progress, err = s.budgets.ListWithProgress(gCtx, ownerID, now)
		return err
	})
	g.Go(func() error {
		var err error
		upcoming, err = s.debts.ListUpcoming(gCtx, ownerID, now, upcomingBillLimit)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	summary := buildSummary(wallets, totals, recent, progress, upcoming)
	s.cache.Set(cacheKey, summary)
	return summary, nil
}

// Invalidate drops the cached summary for the owner's month, called after
// ledger writes so the dashboard does not serve stale balances.
func (s *Dashboard) Invalidate(ownerID string, now time.Time) {
	s.cache.Delete(ownerID + ":" + now.UTC().Format("2006-01"))
}

func buildSummary(wallets []domain.Wallet, totals *domain.WindowTotals, recent []domain.Transaction, progress []domain.BudgetProgress, upcoming []domain.Debt) *domain.DashboardSummary {
	balance := decimal.Zero
	for _, w := range wallets {
		balance = balance.Add(w.Balance)
	}

	return &domain.DashboardSummary{
		Stats: domain.DashboardStats{
			TotalIncome:      totals.TotalIncome,
			TotalExpense:     totals.TotalExpense,
			Balance:          balance,
			NetFlow:          totals.TotalIncome.Sub(totals.TotalExpense),
			TransactionCount: totals.TransactionCount,
		},
		ExpenseByCategory:  totals.ExpenseByCategory,
		BudgetProgress:     progress,
		RecentTransactions: recent,
		Wallets:            wallets,
		UpcomingBills:      upcoming,
	}
}
