// Package notify delivers budget alerts to their destinations: the in-app
// notification feed and, when configured, a Redis event stream.
package notify

import (
	"context"
	"errors"
	"time"

	"github.com/fintrack/fintrack-go/internal/domain"
	"github.com/fintrack/fintrack-go/internal/port"

	"github.com/google/uuid"
)

// StoreSink persists alerts as in-app notifications.
type StoreSink struct {
	store port.NotificationStore
}

// NewStoreSink creates a sink backed by the notification store.
func NewStoreSink(store port.NotificationStore) *StoreSink {
	return &StoreSink{store: store}
}

// Send writes the alert to the user's notification feed.
func (s *StoreSink) Send(ctx context.Context, alert *domain.BudgetAlert) error {
	return s.store.Insert(ctx, &domain.Notification{
		ID:        uuid.New().String(),
		OwnerID:   alert.OwnerID,
		Title:     alert.Title,
		Message:   alert.Message,
		Severity:  alert.Severity,
		Category:  alert.Category,
		BudgetID:  alert.BudgetID,
		CreatedAt: time.Now().UTC(),
	})
}

// MultiSink fans one alert out to several sinks. Every sink is attempted;
// errors are joined so one failing destination does not starve the others.
type MultiSink struct {
	sinks []port.NotificationSink
}

// NewMultiSink creates a fan-out sink.
func NewMultiSink(sinks ...port.NotificationSink) *MultiSink {
	return &MultiSink{sinks: sinks}
}

// Send delivers the alert to all sinks.
func (m *MultiSink) Send(ctx context.Context, alert *domain.BudgetAlert) error {
	var errs []error
	for _, s := range m.sinks {
		if err := s.Send(ctx, alert); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
