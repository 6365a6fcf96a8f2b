package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fintrack/fintrack-go/internal/config"
	"github.com/fintrack/fintrack-go/internal/domain"
	"github.com/fintrack/fintrack-go/internal/handler"
	"github.com/fintrack/fintrack-go/internal/infra/cache"
	"github.com/fintrack/fintrack-go/internal/infra/notify"
	"github.com/fintrack/fintrack-go/internal/infra/observability"
	"github.com/fintrack/fintrack-go/internal/infra/postgres"
	"github.com/fintrack/fintrack-go/internal/infra/resilience"
	"github.com/fintrack/fintrack-go/internal/port"
	"github.com/fintrack/fintrack-go/internal/service"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	// --- Load .env file (for local development) ---
	_ = config.LoadDotEnv(".env")

	// --- Config ---
	cfg := config.Load()

	// --- Logger ---
	logger := observability.NewLogger(cfg.LogLevel)
	defer logger.Sync()

	logger.Info("configuration loaded",
		zap.Int("port", cfg.Port),
		zap.String("log_level", cfg.LogLevel),
		zap.Bool("redis_enabled", cfg.RedisAddr != ""),
		zap.Duration("cache_ttl", cfg.CacheTTL),
		zap.Int("max_retries", cfg.MaxRetries),
		zap.Duration("initial_backoff", cfg.InitialBackoff),
		zap.Duration("jwt_access_ttl", cfg.JWTAccessTTL),
		zap.Duration("jwt_refresh_ttl", cfg.JWTRefreshTTL),
	)

	// --- Tracing ---
	shutdown, err := observability.InitTracer(cfg.OTLPEndpoint, "fintrack")
	if err != nil {
		logger.Fatal("failed to init tracer", zap.Error(err))
	}
	defer shutdown(context.Background())

	// --- Metrics ---
	metrics := observability.NewMetrics()

	// --- Postgres ---
	ctx := context.Background()
	db, err := postgres.Open(ctx, cfg.DatabaseURL, postgres.PoolConfig{
		MaxOpenConns: cfg.DBMaxOpenConns,
		MaxIdleConns: cfg.DBMaxIdleConns,
		ConnLifetime: cfg.DBConnLifetime,
	})
	if err != nil {
		logger.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer db.Close()

	if cfg.MigrateOnStart {
		if err := postgres.Migrate(ctx, db); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
		logger.Info("migrations applied")
	}

	// --- Repositories ---
	ledgerStore := postgres.NewStore(db)
	walletRepo := postgres.NewWalletRepo(db)
	transactionRepo := postgres.NewTransactionRepo(db)
	budgetRepo := postgres.NewBudgetRepo(db)
	debtRepo := postgres.NewDebtRepo(db)
	assetRepo := postgres.NewAssetRepo(db)
	categoryRepo := postgres.NewCategoryRepo(db)
	notificationRepo := postgres.NewNotificationRepo(db)
	authRepo := postgres.NewAuthRepo(db)

	// --- Resilience ---
	resilienceCfg := resilience.Config{
		MaxRetries:     cfg.MaxRetries,
		InitialBackoff: cfg.InitialBackoff,
		MaxConcurrency: cfg.MaxConcurrency,
	}

	// --- Notification sinks ---
	sinks := []port.NotificationSink{notify.NewStoreSink(notificationRepo)}
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		defer redisClient.Close()
		sinks = append(sinks, notify.NewEventSink(redisClient, cfg.AlertStream, resilienceCfg))
		logger.Info("redis event sink enabled",
			zap.String("addr", cfg.RedisAddr),
			zap.String("stream", cfg.AlertStream),
		)
	}
	sink := notify.NewMultiSink(sinks...)

	// --- Cache ---
	dashboardCache := cache.New[*domain.DashboardSummary](cfg.CacheTTL)

	// --- Services ---
	ledgerSvc := service.NewLedger(ledgerStore, transactionRepo, budgetRepo, sink, metrics, logger)
	walletSvc := service.NewWallets(walletRepo, transactionRepo, logger)
	budgetSvc := service.NewBudgets(budgetRepo, transactionRepo, logger)
	debtSvc := service.NewDebts(debtRepo, logger)
	assetSvc := service.NewAssets(assetRepo, logger)
	categorySvc := service.NewCategories(categoryRepo, logger)
	notificationSvc := service.NewNotifications(notificationRepo, logger)
	dashboardSvc := service.NewDashboard(walletRepo, transactionRepo, budgetSvc, debtRepo, dashboardCache, metrics, logger)
	authSvc := service.NewAuth(authRepo, categorySvc, cfg.JWTSecret, cfg.JWTAccessTTL, cfg.JWTRefreshTTL, logger)

	// --- Router ---
	router := handler.NewRouter(handler.Deps{
		Ledger:        ledgerSvc,
		Wallets:       walletSvc,
		Budgets:       budgetSvc,
		Dashboard:     dashboardSvc,
		Debts:         debtSvc,
		Assets:        assetSvc,
		Categories:    categorySvc,
		Notifications: notificationSvc,
		Auth:          authSvc,
		Metrics:       metrics,
		DB:            db,
		Logger:        logger,
	})

	// --- Server ---
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// --- Graceful shutdown ---
	go func() {
		logger.Info("server starting", zap.Int("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("server shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("server forced shutdown", zap.Error(err))
	}

	logger.Info("server stopped")
}
