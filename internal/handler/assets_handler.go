package handler

import (
	"net/http"

	"github.com/fintrack/fintrack-go/internal/domain"
	"github.com/fintrack/fintrack-go/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ============================================================
// Asset Handlers
// ============================================================

func listAssetsHandler(svc *service.Assets, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /assets")
		defer span.End()

		ownerID := UserIDFromContext(ctx)
		assets, err := svc.List(ctx, ownerID)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		total, err := svc.TotalValue(ctx, ownerID)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"data":        assets,
			"total_value": total,
		})
	}
}

func createAssetHandler(svc *service.Assets, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /assets")
		defer span.End()

		var input domain.AssetInput
		if !decodeAndValidate(w, r, &input) {
			return
		}

		asset, err := svc.Create(ctx, UserIDFromContext(ctx), &input)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusCreated, asset)
	}
}

func updateAssetHandler(svc *service.Assets, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "PUT /assets/{assetId}")
		defer span.End()

		var input domain.AssetInput
		if !decodeAndValidate(w, r, &input) {
			return
		}

		asset, err := svc.Update(ctx, UserIDFromContext(ctx), chi.URLParam(r, "assetId"), &input)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, asset)
	}
}

func deleteAssetHandler(svc *service.Assets, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "DELETE /assets/{assetId}")
		defer span.End()

		id := chi.URLParam(r, "assetId")
		if err := svc.Delete(ctx, UserIDFromContext(ctx), id); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, domain.SuccessResponse{Message: "asset deleted", ID: id})
	}
}
