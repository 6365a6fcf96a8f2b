package service

import (
	"context"

	"github.com/fintrack/fintrack-go/internal/domain"
	"github.com/fintrack/fintrack-go/internal/port"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

var notifTracer = otel.Tracer("service/notifications")

// Notifications exposes the in-app notification feed that budget alerts
// land in.
type Notifications struct {
	store  port.NotificationStore
	logger *zap.Logger
}

// NewNotifications creates the notification service.
func NewNotifications(store port.NotificationStore, logger *zap.Logger) *Notifications {
	return &Notifications{store: store, logger: logger}
}

func (s *Notifications) List(ctx context.Context, ownerID string, unreadOnly bool, page, pageSize int) ([]domain.Notification, error) {
	ctx, span := notifTracer.Start(ctx, "Notifications.List")
	defer span.End()

	return s.store.List(ctx, ownerID, unreadOnly, page, pageSize)
}

func (s *Notifications) MarkRead(ctx context.Context, ownerID, notificationID string) error {
	ctx, span := notifTracer.Start(ctx, "Notifications.MarkRead")
	defer span.End()

	return s.store.MarkRead(ctx, ownerID, notificationID)
}

func (s *Notifications) MarkAllRead(ctx context.Context, ownerID string) error {
	ctx, span := notifTracer.Start(ctx, "Notifications.MarkAllRead")
	defer span.End()

	if err := s.store.MarkAllRead(ctx, ownerID); err != nil {
		return err
	}
	s.logger.Info("notifications marked read", zap.String("owner_id", ownerID))
	return nil
}
