package handler

import (
	"net/http"

	"github.com/fintrack/fintrack-go/internal/domain"
	"github.com/fintrack/fintrack-go/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ============================================================
// Notification Handlers
// ============================================================

func listNotificationsHandler(svc *service.Notifications, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /notifications")
		defer span.End()

		page, pageSize := parsePagination(r)
		unreadOnly := r.URL.Query().Get("unread") == "true"

		notifications, err := svc.List(ctx, UserIDFromContext(ctx), unreadOnly, page, pageSize)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, notifications)
	}
}

func markNotificationReadHandler(svc *service.Notifications, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /notifications/{notificationId}/read")
		defer span.End()

		id := chi.URLParam(r, "notificationId")
		if err := svc.MarkRead(ctx, UserIDFromContext(ctx), id); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, domain.SuccessResponse{Message: "notification read", ID: id})
	}
}

func markAllNotificationsReadHandler(svc *service.Notifications, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /notifications/read-all")
		defer span.End()

		if err := svc.MarkAllRead(ctx, UserIDFromContext(ctx)); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, domain.SuccessResponse{Message: "all notifications read"})
	}
}
