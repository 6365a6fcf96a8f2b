package handler

import (
	"net/http"

	"github.com/fintrack/fintrack-go/internal/domain"
	"github.com/fintrack/fintrack-go/internal/service"

	"go.uber.org/zap"
)

// ============================================================
// Auth Handlers
// ============================================================

func registerHandler(svc *service.Auth, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /auth/register")
		defer span.End()

		var req domain.RegisterRequest
		if !decodeAndValidate(w, r, &req) {
			return
		}

		resp, err := svc.Register(ctx, &req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusCreated, resp)
	}
}

func loginHandler(svc *service.Auth, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /auth/login")
		defer span.End()

		var req domain.LoginRequest
		if !decodeAndValidate(w, r, &req) {
			return
		}

		resp, err := svc.Login(ctx, &req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func refreshHandler(svc *service.Auth, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /auth/refresh")
		defer span.End()

		var req domain.RefreshRequest
		if !decodeAndValidate(w, r, &req) {
			return
		}

		resp, err := svc.Refresh(ctx, &req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func logoutHandler(svc *service.Auth, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /auth/logout")
		defer span.End()

		if err := svc.Logout(ctx, UserIDFromContext(ctx)); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, domain.SuccessResponse{Message: "logged out"})
	}
}
