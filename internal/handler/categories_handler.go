package handler

import (
	"net/http"

	"github.com/fintrack/fintrack-go/internal/domain"
	"github.com/fintrack/fintrack-go/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ============================================================
// Category Handlers
// ============================================================

func listCategoriesHandler(svc *service.Categories, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /categories")
		defer span.End()

		categories, err := svc.List(ctx, UserIDFromContext(ctx))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, categories)
	}
}

func createCategoryHandler(svc *service.Categories, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /categories")
		defer span.End()

		var input domain.CategoryInput
		if !decodeAndValidate(w, r, &input) {
			return
		}

		category, err := svc.Create(ctx, UserIDFromContext(ctx), &input)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusCreated, category)
	}
}

func updateCategoryHandler(svc *service.Categories, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "PUT /categories/{categoryId}")
		defer span.End()

		var input domain.CategoryInput
		if !decodeAndValidate(w, r, &input) {
			return
		}

		category, err := svc.Update(ctx, UserIDFromContext(ctx), chi.URLParam(r, "categoryId"), &input)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, category)
	}
}

func deleteCategoryHandler(svc *service.Categories, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "DELETE /categories/{categoryId}")
		defer span.End()

		id := chi.URLParam(r, "categoryId")
		if err := svc.Delete(ctx, UserIDFromContext(ctx), id); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, domain.SuccessResponse{Message: "category deleted", ID: id})
	}
}
