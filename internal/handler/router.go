package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/fintrack/fintrack-go/internal/infra/observability"
	"github.com/fintrack/fintrack-go/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("handler")

// Pinger reports storage liveness; satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Deps carries everything the router needs.
type Deps struct {
	Ledger        *service.Ledger
	Wallets       *service.Wallets
	Budgets       *service.Budgets
	Dashboard     *service.Dashboard
	Debts         *service.Debts
	Assets        *service.Assets
	Categories    *service.Categories
	Notifications *service.Notifications
	Auth          *service.Auth
	Metrics       *observability.Metrics
	DB            Pinger
	Logger        *zap.Logger
}

// NewRouter creates the HTTP router with all routes and middleware.
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()

	// --- Middleware ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(observability.ZapLoggerMiddleware(d.Logger))
	r.Use(observability.TracingMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/ping"))

	// --- Operational endpoints ---
	r.Get("/healthz", healthzHandler(d.DB, d.Logger))
	r.Get("/readyz", readyzHandler())
	r.Handle("/metrics", promhttp.HandlerFor(d.Metrics.Registry, promhttp.HandlerOpts{}))

	// --- API v1 ---
	r.Route("/v1", func(r chi.Router) {

		// Public auth endpoints
		r.Post("/auth/register", registerHandler(d.Auth, d.Logger))
		r.Post("/auth/login", loginHandler(d.Auth, d.Logger))
		r.Post("/auth/refresh", refreshHandler(d.Auth, d.Logger))

		// Everything below requires a valid access token.
		r.Group(func(r chi.Router) {
			r.Use(JWTAuthMiddleware(d.Auth, d.Logger))

			r.Post("/auth/logout", logoutHandler(d.Auth, d.Logger))

			// Transactions (the ledger)
			r.Get("/transactions", listTransactionsHandler(d.Ledger, d.Logger))
			r.Post("/transactions", createTransactionHandler(d.Ledger, d.Dashboard, d.Logger))
			r.Get("/transactions/{transactionId}", getTransactionHandler(d.Ledger, d.Logger))
			r.Put("/transactions/{transactionId}", updateTransactionHandler(d.Ledger, d.Dashboard, d.Logger))
			r.Delete("/transactions/{transactionId}", deleteTransactionHandler(d.Ledger, d.Dashboard, d.Logger))

			// Wallets
			r.Get("/wallets", listWalletsHandler(d.Wallets, d.Logger))
			r.Post("/wallets", createWalletHandler(d.Wallets, d.Logger))
			r.Get("/wallets/{walletId}", getWalletHandler(d.Wallets, d.Logger))
			r.Put("/wallets/{walletId}", updateWalletHandler(d.Wallets, d.Logger))
			r.Delete("/wallets/{walletId}", deleteWalletHandler(d.Wallets, d.Logger))

			// Budgets (list includes spending progress)
			r.Get("/budgets", listBudgetsHandler(d.Budgets, d.Logger))
			r.Post("/budgets", createBudgetHandler(d.Budgets, d.Logger))
			r.Put("/budgets/{budgetId}", updateBudgetHandler(d.Budgets, d.Logger))
			r.Delete("/budgets/{budgetId}", deleteBudgetHandler(d.Budgets, d.Logger))

			// Dashboard
			r.Get("/dashboard", dashboardHandler(d.Dashboard, d.Logger))

			// Debts / receivables
			r.Get("/debts", listDebtsHandler(d.Debts, d.Logger))
			r.Post("/debts", createDebtHandler(d.Debts, d.Logger))
			r.Put("/debts/{debtId}", updateDebtHandler(d.Debts, d.Logger))
			r.Post("/debts/{debtId}/toggle-paid", toggleDebtPaidHandler(d.Debts, d.Logger))
			r.Delete("/debts/{debtId}", deleteDebtHandler(d.Debts, d.Logger))

			// Assets
			r.Get("/assets", listAssetsHandler(d.Assets, d.Logger))
			r.Post("/assets", createAssetHandler(d.Assets, d.Logger))
			r.Put("/assets/{assetId}", updateAssetHandler(d.Assets, d.Logger))
			r.Delete("/assets/{assetId}", deleteAssetHandler(d.Assets, d.Logger))

			// Categories
			r.Get("/categories", listCategoriesHandler(d.Categories, d.Logger))
			r.Post("/categories", createCategoryHandler(d.Categories, d.Logger))
			r.Put("/categories/{categoryId}", updateCategoryHandler(d.Categories, d.Logger))
			r.Delete("/categories/{categoryId}", deleteCategoryHandler(d.Categories, d.Logger))

			// Notifications
			r.Get("/notifications", listNotificationsHandler(d.Notifications, d.Logger))
			r.Post("/notifications/read-all", markAllNotificationsReadHandler(d.Notifications, d.Logger))
			r.Post("/notifications/{notificationId}/read", markNotificationReadHandler(d.Notifications, d.Logger))

			// Metrics snapshot
			r.Get("/metrics/ledger", ledgerMetricsHandler(d.Metrics))
		})
	})

	return r
}

func healthzHandler(db Pinger, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			logger.Error("healthz: database unreachable", zap.Error(err))
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

func readyzHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

func ledgerMetricsHandler(metrics *observability.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, metrics.GetLedgerSnapshot())
	}
}
