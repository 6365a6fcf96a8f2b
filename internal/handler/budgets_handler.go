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
// Budget Handlers
// ============================================================

// listBudgetsHandler returns budgets with spending progress for the window
// containing the current date.
func listBudgetsHandler(svc *service.Budgets, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /budgets")
		defer span.End()

		progress, err := svc.ListWithProgress(ctx, UserIDFromContext(ctx), time.Now().UTC())
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, progress)
	}
}

func createBudgetHandler(svc *service.Budgets, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /budgets")
		defer span.End()

		var input domain.BudgetInput
		if !decodeAndValidate(w, r, &input) {
			return
		}

		budget, err := svc.Create(ctx, UserIDFromContext(ctx), &input)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusCreated, budget)
	}
}

func updateBudgetHandler(svc *service.Budgets, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "PUT /budgets/{budgetId}")
		defer span.End()

		var input domain.BudgetInput
		if !decodeAndValidate(w, r, &input) {
			return
		}

		budget, err := svc.Update(ctx, UserIDFromContext(ctx), chi.URLParam(r, "budgetId"), &input)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, budget)
	}
}

func deleteBudgetHandler(svc *service.Budgets, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "DELETE /budgets/{budgetId}")
		defer span.End()

		id := chi.URLParam(r, "budgetId")
		if err := svc.Delete(ctx, UserIDFromContext(ctx), id); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, domain.SuccessResponse{Message: "budget deleted", ID: id})
	}
}
