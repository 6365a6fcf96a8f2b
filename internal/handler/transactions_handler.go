package handler

import (
	"net/http"
	"time"

	"github.com/fintrack/fintrack-go/internal/domain"
	"github.com/fintrack/fintrack-go/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ============================================================
// Transaction (ledger) Handlers
// ============================================================

func listTransactionsHandler(svc *service.Ledger, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /transactions")
		defer span.End()

		ownerID := UserIDFromContext(ctx)
		page, pageSize := parsePagination(r)

		filter := domain.TransactionFilter{
			Kind:     domain.TransactionKind(r.URL.Query().Get("kind")),
			WalletID: r.URL.Query().Get("wallet_id"),
			Page:     page,
			PageSize: pageSize,
		}
		if v := r.URL.Query().Get("from"); v != "" {
			if t, err := time.Parse("2006-01-02", v); err == nil {
				filter.From = t
			}
		}
		if v := r.URL.Query().Get("to"); v != "" {
			if t, err := time.Parse("2006-01-02", v); err == nil {
				filter.To = t
			}
		}

		txns, total, err := svc.List(ctx, ownerID, filter)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, domain.ListResponse[domain.Transaction]{
			Data:     txns,
			Total:    total,
			Page:     page,
			PageSize: pageSize,
			HasMore:  page*pageSize < total,
		})
	}
}

func getTransactionHandler(svc *service.Ledger, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /transactions/{transactionId}")
		defer span.End()

		txn, err := svc.Get(ctx, UserIDFromContext(ctx), chi.URLParam(r, "transactionId"))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, txn)
	}
}

func createTransactionHandler(svc *service.Ledger, dash *service.Dashboard, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /transactions")
		defer span.End()

		var input domain.TransactionInput
		if !decodeAndValidate(w, r, &input) {
			return
		}

		ownerID := UserIDFromContext(ctx)
		txn, err := svc.Create(ctx, ownerID, &input)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		dash.Invalidate(ownerID, time.Now().UTC())
		writeJSON(w, http.StatusCreated, txn)
	}
}

func updateTransactionHandler(svc *service.Ledger, dash *service.Dashboard, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "PUT /transactions/{transactionId}")
		defer span.End()

		var input domain.TransactionInput
		if !decodeAndValidate(w, r, &input) {
			return
		}

		ownerID := UserIDFromContext(ctx)
		txn, err := svc.Update(ctx, ownerID, chi.URLParam(r, "transactionId"), &input)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		dash.Invalidate(ownerID, time.Now().UTC())
		writeJSON(w, http.StatusOK, txn)
	}
}

func deleteTransactionHandler(svc *service.Ledger, dash *service.Dashboard, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "DELETE /transactions/{transactionId}")
		defer span.End()

		ownerID := UserIDFromContext(ctx)
		id := chi.URLParam(r, "transactionId")
		if err := svc.Delete(ctx, ownerID, id); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		dash.Invalidate(ownerID, time.Now().UTC())
		writeJSON(w, http.StatusOK, domain.SuccessResponse{Message: "transaction deleted", ID: id})
	}
}
