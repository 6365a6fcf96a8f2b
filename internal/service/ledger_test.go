package service_test

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/fintrack/fintrack-go/internal/domain"
	"github.com/fintrack/fintrack-go/internal/infra/observability"
	"github.com/fintrack/fintrack-go/internal/port"
	"github.com/fintrack/fintrack-go/internal/service"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// --- Mocks ---

// fakeLedger is an in-memory ledger store. WithinTx snapshots the maps and
// restores them when fn fails, giving real rollback semantics.
type fakeLedger struct {
	mu      sync.Mutex
	wallets map[string]*domain.Wallet
	txns    map[string]*domain.Transaction
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{
		wallets: map[string]*domain.Wallet{},
		txns:    map[string]*domain.Transaction{},
	}
}

func (f *fakeLedger) addWallet(id, ownerID string, balance int64) {
	f.wallets[id] = &domain.Wallet{
		ID:      id,
		OwnerID: ownerID,
		Name:    id,
		Kind:    domain.WalletBank,
		Balance: decimal.NewFromInt(balance),
	}
}

func (f *fakeLedger) balance(t *testing.T, id string) decimal.Decimal {
	t.Helper()
	w, ok := f.wallets[id]
	if !ok {
		t.Fatalf("wallet %s not found", id)
	}
	return w.Balance
}

func (f *fakeLedger) WithinTx(_ context.Context, fn func(tx port.LedgerTx) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	walletSnap := map[string]*domain.Wallet{}
	for k, v := range f.wallets {
		cp := *v
		walletSnap[k] = &cp
	}
	txnSnap := map[string]*domain.Transaction{}
	for k, v := range f.txns {
		cp := *v
		txnSnap[k] = &cp
	}

	if err := fn(&fakeTx{store: f}); err != nil {
		f.wallets = walletSnap
		f.txns = txnSnap
		return err
	}
	return nil
}

type fakeTx struct {
	store *fakeLedger
}

func (t *fakeTx) GetWalletForUpdate(_ context.Context, ownerID, walletID string) (*domain.Wallet, error) {
	w, ok := t.store.wallets[walletID]
	if !ok || w.OwnerID != ownerID {
		return nil, &domain.ErrNotFound{Resource: "wallet", ID: walletID}
	}
	cp := *w
	return &cp, nil
}

func (t *fakeTx) ApplyWalletDelta(_ context.Context, walletID string, delta decimal.Decimal) error {
	w, ok := t.store.wallets[walletID]
	if !ok {
		return &domain.ErrNotFound{Resource: "wallet", ID: walletID}
	}
	w.Balance = w.Balance.Add(delta)
	return nil
}

func (t *fakeTx) GetTransaction(_ context.Context, ownerID, id string) (*domain.Transaction, error) {
	txn, ok := t.store.txns[id]
	if !ok || txn.OwnerID != ownerID {
		return nil, &domain.ErrNotFound{Resource: "transaction", ID: id}
	}
	cp := *txn
	return &cp, nil
}

func (t *fakeTx) InsertTransaction(_ context.Context, txn *domain.Transaction) error {
	cp := *txn
	t.store.txns[txn.ID] = &cp
	return nil
}

func (t *fakeTx) UpdateTransaction(_ context.Context, txn *domain.Transaction) error {
	if _, ok := t.store.txns[txn.ID]; !ok {
		return &domain.ErrNotFound{Resource: "transaction", ID: txn.ID}
	}
	cp := *txn
	t.store.txns[txn.ID] = &cp
	return nil
}

func (t *fakeTx) DeleteTransaction(_ context.Context, id string) error {
	if _, ok := t.store.txns[id]; !ok {
		return &domain.ErrNotFound{Resource: "transaction", ID: id}
	}
	delete(t.store.txns, id)
	return nil
}

// fakeLedger doubles as the read-side transaction store.

func (f *fakeLedger) Get(_ context.Context, ownerID, id string) (*domain.Transaction, error) {
	txn, ok := f.txns[id]
	if !ok || txn.OwnerID != ownerID {
		return nil, &domain.ErrNotFound{Resource: "transaction", ID: id}
	}
	cp := *txn
	return &cp, nil
}

func (f *fakeLedger) List(_ context.Context, ownerID string, filter domain.TransactionFilter) ([]domain.Transaction, int, error) {
	out := []domain.Transaction{}
	for _, txn := range f.txns {
		if txn.OwnerID != ownerID {
			continue
		}
		if filter.Kind != "" && txn.Kind != filter.Kind {
			continue
		}
		if filter.WalletID != "" && txn.WalletID != filter.WalletID && txn.ToWalletID != filter.WalletID {
			continue
		}
		if !filter.From.IsZero() && txn.OccurredOn.Before(filter.From) {
			continue
		}
		if !filter.To.IsZero() && txn.OccurredOn.After(filter.To) {
			continue
		}
		out = append(out, *txn)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OccurredOn.After(out[j].OccurredOn) })

	// Same paging contract as the real repository.
	total := len(out)
	page, pageSize := filter.Page, filter.PageSize
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}
	return out[start:end], total, nil
}

func (f *fakeLedger) WindowTotals(_ context.Context, ownerID string, from, to time.Time) (*domain.WindowTotals, error) {
	totals := &domain.WindowTotals{ExpenseByCategory: []domain.CategoryTotal{}}
	byCategory := map[string]decimal.Decimal{}

	for _, txn := range f.txns {
		if txn.OwnerID != ownerID || txn.OccurredOn.Before(from) || txn.OccurredOn.After(to) {
			continue
		}
		totals.TransactionCount++
		switch txn.Kind {
		case domain.KindIncome:
			totals.TotalIncome = totals.TotalIncome.Add(txn.Amount)
		case domain.KindExpense:
			totals.TotalExpense = totals.TotalExpense.Add(txn.Amount)
			byCategory[txn.Category] = byCategory[txn.Category].Add(txn.Amount)
		}
	}

	for name, total := range byCategory {
		totals.ExpenseByCategory = append(totals.ExpenseByCategory, domain.CategoryTotal{Category: name, Total: total})
	}
	sort.Slice(totals.ExpenseByCategory, func(i, j int) bool {
		a, b := totals.ExpenseByCategory[i], totals.ExpenseByCategory[j]
		if !a.Total.Equal(b.Total) {
			return a.Total.GreaterThan(b.Total)
		}
		return a.Category < b.Category
	})
	return totals, nil
}

func (f *fakeLedger) SumExpenses(_ context.Context, ownerID, category string, from, to time.Time) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, txn := range f.txns {
		if txn.OwnerID != ownerID || txn.Kind != domain.KindExpense || txn.Category != category {
			continue
		}
		if txn.OccurredOn.Before(from) || txn.OccurredOn.After(to) {
			continue
		}
		total = total.Add(txn.Amount)
	}
	return total, nil
}

func (f *fakeLedger) CountForWallet(_ context.Context, walletID string) (int, error) {
	n := 0
	for _, txn := range f.txns {
		if txn.WalletID == walletID || txn.ToWalletID == walletID {
			n++
		}
	}
	return n, nil
}

type fakeBudgetStore struct {
	budgets []domain.Budget
}

func (f *fakeBudgetStore) Get(_ context.Context, _, id string) (*domain.Budget, error) {
	for i := range f.budgets {
		if f.budgets[i].ID == id {
			return &f.budgets[i], nil
		}
	}
	return nil, &domain.ErrNotFound{Resource: "budget", ID: id}
}

func (f *fakeBudgetStore) List(_ context.Context, _ string) ([]domain.Budget, error) {
	return f.budgets, nil
}

func (f *fakeBudgetStore) FindByCategory(_ context.Context, ownerID, category string) ([]domain.Budget, error) {
	out := []domain.Budget{}
	for _, b := range f.budgets {
		if b.OwnerID == ownerID && b.Category == category {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBudgetStore) Create(_ context.Context, b *domain.Budget) error {
	f.budgets = append(f.budgets, *b)
	return nil
}

func (f *fakeBudgetStore) Update(_ context.Context, _ *domain.Budget) error { return nil }
func (f *fakeBudgetStore) Delete(_ context.Context, _, _ string) error      { return nil }

type recordSink struct {
	alerts []*domain.BudgetAlert
	err    error
}

func (s *recordSink) Send(_ context.Context, alert *domain.BudgetAlert) error {
	if s.err != nil {
		return s.err
	}
	s.alerts = append(s.alerts, alert)
	return nil
}

// --- Helpers ---

const owner = "owner-1"

func newLedger(store *fakeLedger, budgets *fakeBudgetStore, sink *recordSink) *service.Ledger {
	return service.NewLedger(store, store, budgets, sink, observability.NewMetrics(), zap.NewNop())
}

func expenseInput(wallet string, amount int64, category string) *domain.TransactionInput {
	return &domain.TransactionInput{
		WalletID:    wallet,
		Amount:      decimal.NewFromInt(amount),
		Kind:        domain.KindExpense,
		Category:    category,
		Description: "test expense",
		OccurredOn:  domain.NewDate(2026, time.March, 15),
	}
}

func assertBalance(t *testing.T, store *fakeLedger, wallet string, want int64) {
	t.Helper()
	got := store.balance(t, wallet)
	if !got.Equal(decimal.NewFromInt(want)) {
		t.Errorf("wallet %s: balance = %s, want %d", wallet, got, want)
	}
}

// --- Tests ---

func TestCreate_ExpenseDebitsWallet(t *testing.T) {
	store := newFakeLedger()
	store.addWallet("w1", owner, 1_000_000)
	svc := newLedger(store, &fakeBudgetStore{}, &recordSink{})

	txn, err := svc.Create(context.Background(), owner, expenseInput("w1", 200_000, "Food"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if txn.ID == "" {
		t.Error("expected generated transaction id")
	}
	assertBalance(t, store, "w1", 800_000)
}

func TestCreate_IncomeCreditsWallet(t *testing.T) {
	store := newFakeLedger()
	store.addWallet("w1", owner, 100_000)
	svc := newLedger(store, &fakeBudgetStore{}, &recordSink{})

	_, err := svc.Create(context.Background(), owner, &domain.TransactionInput{
		WalletID:    "w1",
		Amount:      decimal.NewFromInt(50_000),
		Kind:        domain.KindIncome,
		Category:    "Salary",
		Description: "pay",
		OccurredOn:  domain.NewDate(2026, time.March, 1),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	assertBalance(t, store, "w1", 150_000)
}

func TestCreate_TransferMovesBetweenWallets(t *testing.T) {
	store := newFakeLedger()
	store.addWallet("a", owner, 100_000)
	store.addWallet("b", owner, 0)
	svc := newLedger(store, &fakeBudgetStore{}, &recordSink{})

	txn, err := svc.Create(context.Background(), owner, &domain.TransactionInput{
		WalletID:    "a",
		ToWalletID:  "b",
		Amount:      decimal.NewFromInt(50_000),
		Kind:        domain.KindTransfer,
		Category:    "Transfer",
		Description: "move",
		OccurredOn:  domain.NewDate(2026, time.March, 10),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	assertBalance(t, store, "a", 50_000)
	assertBalance(t, store, "b", 50_000)

	// Deleting the transfer restores both sides.
	if err := svc.Delete(context.Background(), owner, txn.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	assertBalance(t, store, "a", 100_000)
	assertBalance(t, store, "b", 0)
	if len(store.txns) != 0 {
		t.Errorf("expected no transactions after delete, got %d", len(store.txns))
	}
}

func TestUpdate_RevertsThenReapplies(t *testing.T) {
	store := newFakeLedger()
	store.addWallet("w1", owner, 1_000_000)
	svc := newLedger(store, &fakeBudgetStore{}, &recordSink{})

	txn, err := svc.Create(context.Background(), owner, expenseInput("w1", 200_000, "Food"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	assertBalance(t, store, "w1", 800_000)

	_, err = svc.Update(context.Background(), owner, txn.ID, expenseInput("w1", 500_000, "Food"))
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	assertBalance(t, store, "w1", 500_000)
}

func TestUpdate_IdenticalValuesIsNoOp(t *testing.T) {
	store := newFakeLedger()
	store.addWallet("w1", owner, 1_000_000)
	svc := newLedger(store, &fakeBudgetStore{}, &recordSink{})

	txn, err := svc.Create(context.Background(), owner, expenseInput("w1", 200_000, "Food"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err = svc.Update(context.Background(), owner, txn.ID, expenseInput("w1", 200_000, "Food"))
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	assertBalance(t, store, "w1", 800_000)
}

func TestUpdate_KindChangeRebalances(t *testing.T) {
	store := newFakeLedger()
	store.addWallet("w1", owner, 1_000_000)
	svc := newLedger(store, &fakeBudgetStore{}, &recordSink{})

	txn, err := svc.Create(context.Background(), owner, expenseInput("w1", 200_000, "Food"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	assertBalance(t, store, "w1", 800_000)

	// Expense becomes income: revert the -200k, apply +200k.
	_, err = svc.Update(context.Background(), owner, txn.ID, &domain.TransactionInput{
		WalletID:    "w1",
		Amount:      decimal.NewFromInt(200_000),
		Kind:        domain.KindIncome,
		Category:    "Salary",
		Description: "reclassified",
		OccurredOn:  domain.NewDate(2026, time.March, 15),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	assertBalance(t, store, "w1", 1_200_000)
}

func TestUpdate_TransferDestinationChangeRebalances(t *testing.T) {
	store := newFakeLedger()
	store.addWallet("a", owner, 100_000)
	store.addWallet("b", owner, 0)
	store.addWallet("c", owner, 0)
	svc := newLedger(store, &fakeBudgetStore{}, &recordSink{})

	txn, err := svc.Create(context.Background(), owner, &domain.TransactionInput{
		WalletID:    "a",
		ToWalletID:  "b",
		Amount:      decimal.NewFromInt(40_000),
		Kind:        domain.KindTransfer,
		Category:    "Transfer",
		Description: "move",
		OccurredOn:  domain.NewDate(2026, time.March, 10),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err = svc.Update(context.Background(), owner, txn.ID, &domain.TransactionInput{
		WalletID:    "a",
		ToWalletID:  "c",
		Amount:      decimal.NewFromInt(40_000),
		Kind:        domain.KindTransfer,
		Category:    "Transfer",
		Description: "move",
		OccurredOn:  domain.NewDate(2026, time.March, 10),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	assertBalance(t, store, "a", 60_000)
	assertBalance(t, store, "b", 0)
	assertBalance(t, store, "c", 40_000)
}

func TestCreate_WalletNotFoundRollsBack(t *testing.T) {
	store := newFakeLedger()
	store.addWallet("a", owner, 100_000)
	svc := newLedger(store, &fakeBudgetStore{}, &recordSink{})

	_, err := svc.Create(context.Background(), owner, &domain.TransactionInput{
		WalletID:    "a",
		ToWalletID:  "missing",
		Amount:      decimal.NewFromInt(50_000),
		Kind:        domain.KindTransfer,
		Category:    "Transfer",
		Description: "move",
		OccurredOn:  domain.NewDate(2026, time.March, 10),
	})
	var notFound *domain.ErrNotFound
	if !errors.As(err, &notFound) {
		t.Fatalf("expected not found error, got %v", err)
	}
	assertBalance(t, store, "a", 100_000)
	if len(store.txns) != 0 {
		t.Errorf("expected no stored transactions, got %d", len(store.txns))
	}
}

func TestCreate_OtherOwnersWalletRejected(t *testing.T) {
	store := newFakeLedger()
	store.addWallet("w1", "someone-else", 100_000)
	svc := newLedger(store, &fakeBudgetStore{}, &recordSink{})

	_, err := svc.Create(context.Background(), owner, expenseInput("w1", 10_000, "Food"))
	var notFound *domain.ErrNotFound
	if !errors.As(err, &notFound) {
		t.Fatalf("expected not found error, got %v", err)
	}
	assertBalance(t, store, "w1", 100_000)
}

func TestCreate_ValidationErrors(t *testing.T) {
	store := newFakeLedger()
	store.addWallet("w1", owner, 100_000)
	svc := newLedger(store, &fakeBudgetStore{}, &recordSink{})

	cases := []struct {
		name  string
		input *domain.TransactionInput
	}{
		{"negative amount", &domain.TransactionInput{
			WalletID: "w1", Amount: decimal.NewFromInt(-5), Kind: domain.KindExpense,
			Category: "Food", Description: "x", OccurredOn: domain.NewDate(2026, time.March, 1),
		}},
		{"transfer to self", &domain.TransactionInput{
			WalletID: "w1", ToWalletID: "w1", Amount: decimal.NewFromInt(5), Kind: domain.KindTransfer,
			Category: "Transfer", Description: "x", OccurredOn: domain.NewDate(2026, time.March, 1),
		}},
		{"transfer without destination", &domain.TransactionInput{
			WalletID: "w1", Amount: decimal.NewFromInt(5), Kind: domain.KindTransfer,
			Category: "Transfer", Description: "x", OccurredOn: domain.NewDate(2026, time.March, 1),
		}},
		{"destination on expense", &domain.TransactionInput{
			WalletID: "w1", ToWalletID: "w2", Amount: decimal.NewFromInt(5), Kind: domain.KindExpense,
			Category: "Food", Description: "x", OccurredOn: domain.NewDate(2026, time.March, 1),
		}},
		{"unknown kind", &domain.TransactionInput{
			WalletID: "w1", Amount: decimal.NewFromInt(5), Kind: "LOAN",
			Category: "Food", Description: "x", OccurredOn: domain.NewDate(2026, time.March, 1),
		}},
		{"missing date", &domain.TransactionInput{
			WalletID: "w1", Amount: decimal.NewFromInt(5), Kind: domain.KindExpense,
			Category: "Food", Description: "x",
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), owner, tc.input)
			var validation *domain.ErrValidation
			if !errors.As(err, &validation) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
	assertBalance(t, store, "w1", 100_000)
}

func TestBudgetAlert_WarningThenAlert(t *testing.T) {
	store := newFakeLedger()
	store.addWallet("w1", owner, 10_000_000)
	budgets := &fakeBudgetStore{budgets: []domain.Budget{{
		ID:          "b1",
		OwnerID:     owner,
		Category:    "Food",
		LimitAmount: decimal.NewFromInt(1_000_000),
		Period:      domain.PeriodMonthly,
	}}}
	sink := &recordSink{}
	svc := newLedger(store, budgets, sink)

	// Two expenses, 60% of limit: no alert yet.
	for i := 0; i < 2; i++ {
		if _, err := svc.Create(context.Background(), owner, expenseInput("w1", 300_000, "Food")); err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	if len(sink.alerts) != 0 {
		t.Fatalf("expected no alerts at 60%%, got %d", len(sink.alerts))
	}

	// Third expense reaches 90%: WARNING.
	if _, err := svc.Create(context.Background(), owner, expenseInput("w1", 300_000, "Food")); err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(sink.alerts) != 1 {
		t.Fatalf("expected 1 alert at 90%%, got %d", len(sink.alerts))
	}
	if sink.alerts[0].Severity != domain.SeverityWarning {
		t.Errorf("severity = %s, want WARNING", sink.alerts[0].Severity)
	}
	if sink.alerts[0].Percentage != 90 {
		t.Errorf("percentage = %d, want 90", sink.alerts[0].Percentage)
	}

	// Fourth expense pushes to 110%: ALERT, with the unclamped percentage.
	if _, err := svc.Create(context.Background(), owner, expenseInput("w1", 200_000, "Food")); err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(sink.alerts) != 2 {
		t.Fatalf("expected 2 alerts, got %d", len(sink.alerts))
	}
	if sink.alerts[1].Severity != domain.SeverityAlert {
		t.Errorf("severity = %s, want ALERT", sink.alerts[1].Severity)
	}
	if sink.alerts[1].Percentage != 110 {
		t.Errorf("percentage = %d, want 110", sink.alerts[1].Percentage)
	}
}

func TestBudgetAlert_RepeatsAreNotSuppressed(t *testing.T) {
	store := newFakeLedger()
	store.addWallet("w1", owner, 10_000_000)
	budgets := &fakeBudgetStore{budgets: []domain.Budget{{
		ID: "b1", OwnerID: owner, Category: "Food",
		LimitAmount: decimal.NewFromInt(100_000), Period: domain.PeriodMonthly,
	}}}
	sink := &recordSink{}
	svc := newLedger(store, budgets, sink)

	for i := 0; i < 3; i++ {
		if _, err := svc.Create(context.Background(), owner, expenseInput("w1", 100_000, "Food")); err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	if len(sink.alerts) != 3 {
		t.Errorf("expected an alert per expense over the limit, got %d", len(sink.alerts))
	}
}

func TestBudgetAlert_MatchesWindowOfOccurrence(t *testing.T) {
	store := newFakeLedger()
	store.addWallet("w1", owner, 10_000_000)
	budgets := &fakeBudgetStore{budgets: []domain.Budget{{
		ID: "b1", OwnerID: owner, Category: "Food",
		LimitAmount: decimal.NewFromInt(100_000), Period: domain.PeriodMonthly,
	}}}
	sink := &recordSink{}
	svc := newLedger(store, budgets, sink)

	// An old expense in February fills that month's window.
	feb := &domain.TransactionInput{
		WalletID: "w1", Amount: decimal.NewFromInt(100_000), Kind: domain.KindExpense,
		Category: "Food", Description: "old", OccurredOn: domain.NewDate(2026, time.February, 10),
	}
	if _, err := svc.Create(context.Background(), owner, feb); err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(sink.alerts) != 1 {
		t.Fatalf("expected alert for February window, got %d", len(sink.alerts))
	}

	// A small March expense does not inherit February's spending.
	if _, err := svc.Create(context.Background(), owner, expenseInput("w1", 10_000, "Food")); err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(sink.alerts) != 1 {
		t.Errorf("March expense at 10%% should not alert, got %d alerts", len(sink.alerts))
	}
}

func TestBudgetAlert_SinkFailureDoesNotFailCreate(t *testing.T) {
	store := newFakeLedger()
	store.addWallet("w1", owner, 10_000_000)
	budgets := &fakeBudgetStore{budgets: []domain.Budget{{
		ID: "b1", OwnerID: owner, Category: "Food",
		LimitAmount: decimal.NewFromInt(100_000), Period: domain.PeriodMonthly,
	}}}
	sink := &recordSink{err: errors.New("redis down")}
	svc := newLedger(store, budgets, sink)

	if _, err := svc.Create(context.Background(), owner, expenseInput("w1", 100_000, "Food")); err != nil {
		t.Fatalf("create should succeed despite sink failure, got %v", err)
	}
	assertBalance(t, store, "w1", 9_900_000)
}

func TestDelete_ExpenseDoesNotTriggerBudgetCheck(t *testing.T) {
	store := newFakeLedger()
	store.addWallet("w1", owner, 10_000_000)
	budgets := &fakeBudgetStore{budgets: []domain.Budget{{
		ID: "b1", OwnerID: owner, Category: "Food",
		LimitAmount: decimal.NewFromInt(100_000), Period: domain.PeriodMonthly,
	}}}
	sink := &recordSink{}
	svc := newLedger(store, budgets, sink)

	txn, err := svc.Create(context.Background(), owner, expenseInput("w1", 100_000, "Food"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	before := len(sink.alerts)

	if err := svc.Delete(context.Background(), owner, txn.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(sink.alerts) != before {
		t.Errorf("delete must not emit alerts: got %d new", len(sink.alerts)-before)
	}
	assertBalance(t, store, "w1", 10_000_000)
}

func TestBudgetAlert_ZeroLimitSkipped(t *testing.T) {
	store := newFakeLedger()
	store.addWallet("w1", owner, 1_000_000)
	budgets := &fakeBudgetStore{budgets: []domain.Budget{{
		ID: "b1", OwnerID: owner, Category: "Food",
		LimitAmount: decimal.Zero, Period: domain.PeriodMonthly,
	}}}
	sink := &recordSink{}
	svc := newLedger(store, budgets, sink)

	if _, err := svc.Create(context.Background(), owner, expenseInput("w1", 100_000, "Food")); err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(sink.alerts) != 0 {
		t.Errorf("zero-limit budget must never alert, got %d", len(sink.alerts))
	}
}
