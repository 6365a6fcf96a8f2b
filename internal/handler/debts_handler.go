package handler

import (
	"net/http"

	"github.com/fintrack/fintrack-go/internal/domain"
	"github.com/fintrack/fintrack-go/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ============================================================
// Debt / Receivable Handlers
// ============================================================

func listDebtsHandler(svc *service.Debts, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /debts")
		defer span.End()

		debts, err := svc.List(ctx, UserIDFromContext(ctx))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, debts)
	}
}

func createDebtHandler(svc *service.Debts, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /debts")
		defer span.End()

		var input domain.DebtInput
		if !decodeAndValidate(w, r, &input) {
			return
		}

		debt, err := svc.Create(ctx, UserIDFromContext(ctx), &input)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusCreated, debt)
	}
}

func updateDebtHandler(svc *service.Debts, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "PUT /debts/{debtId}")
		defer span.End()

		var input domain.DebtInput
		if !decodeAndValidate(w, r, &input) {
			return
		}

		debt, err := svc.Update(ctx, UserIDFromContext(ctx), chi.URLParam(r, "debtId"), &input)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, debt)
	}
}

func toggleDebtPaidHandler(svc *service.Debts, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /debts/{debtId}/toggle-paid")
		defer span.End()

		debt, err := svc.TogglePaid(ctx, UserIDFromContext(ctx), chi.URLParam(r, "debtId"))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, debt)
	}
}

func deleteDebtHandler(svc *service.Debts, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "DELETE /debts/{debtId}")
		defer span.End()

		id := chi.URLParam(r, "debtId")
		if err := svc.Delete(ctx, UserIDFromContext(ctx), id); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, domain.SuccessResponse{Message: "debt deleted", ID: id})
	}
}
