package handler

import (
	"net/http"

	"github.com/fintrack/fintrack-go/internal/domain"
	"github.com/fintrack/fintrack-go/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ============================================================
// Wallet Handlers
// ============================================================

func listWalletsHandler(svc *service.Wallets, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /wallets")
		defer span.End()

		wallets, err := svc.List(ctx, UserIDFromContext(ctx))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, wallets)
	}
}

func getWalletHandler(svc *service.Wallets, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /wallets/{walletId}")
		defer span.End()

		wallet, err := svc.Get(ctx, UserIDFromContext(ctx), chi.URLParam(r, "walletId"))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, wallet)
	}
}

func createWalletHandler(svc *service.Wallets, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /wallets")
		defer span.End()

		var input service.WalletInput
		if !decodeAndValidate(w, r, &input) {
			return
		}

		wallet, err := svc.Create(ctx, UserIDFromContext(ctx), &input)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusCreated, wallet)
	}
}

func updateWalletHandler(svc *service.Wallets, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "PUT /wallets/{walletId}")
		defer span.End()

		var input service.WalletInput
		if !decodeAndValidate(w, r, &input) {
			return
		}

		wallet, err := svc.Update(ctx, UserIDFromContext(ctx), chi.URLParam(r, "walletId"), &input)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, wallet)
	}
}

func deleteWalletHandler(svc *service.Wallets, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "DELETE /wallets/{walletId}")
		defer span.End()

		id := chi.URLParam(r, "walletId")
		if err := svc.Delete(ctx, UserIDFromContext(ctx), id); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, domain.SuccessResponse{Message: "wallet deleted", ID: id})
	}
}
