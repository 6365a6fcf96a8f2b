package handler

import (
	"net/http"
	"time"

	"github.com/fintrack/fintrack-go/internal/service"

	"go.uber.org/zap"
)

func dashboardHandler(svc *service.Dashboard, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /dashboard")
		defer span.End()

		summary, err := svc.Summary(ctx, UserIDFromContext(ctx), time.Now().UTC())
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, summary)
	}
}
