package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fintrack/fintrack-go/internal/domain"
	"github.com/fintrack/fintrack-go/internal/infra/resilience"

	"github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker"
)

// EventTypeBudgetAlert tags budget alert events on the stream.
const EventTypeBudgetAlert = "budget.alert"

// Event is the envelope written to the Redis stream.
type Event struct {
	Type      string              `json:"type"`
	Timestamp time.Time           `json:"timestamp"`
	Data      *domain.BudgetAlert `json:"data"`
}

// EventSink publishes budget alerts to a Redis stream so downstream
// consumers (push, email) can pick them up. Publishing goes through a
// bulkhead, circuit breaker and retry: Redis being down or slow must
// never block the ledger.
type EventSink struct {
	client   *redis.Client
	stream   string
	breaker  *gobreaker.CircuitBreaker
	bulkhead *resilience.Bulkhead
	retry    resilience.Config
}

// NewEventSink creates the Redis stream sink.
func NewEventSink(client *redis.Client, stream string, retry resilience.Config) *EventSink {
	return &EventSink{
		client:   client,
		stream:   stream,
		breaker:  resilience.NewCircuitBreaker("redis-events"),
		bulkhead: resilience.NewBulkhead(retry.MaxConcurrency),
		retry:    retry,
	}
}

// Send publishes the alert as a stream event.
func (s *EventSink) Send(ctx context.Context, alert *domain.BudgetAlert) error {
	payload, err := json.Marshal(Event{
		Type:      EventTypeBudgetAlert,
		Timestamp: time.Now().UTC(),
		Data:      alert,
	})
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	if err := s.bulkhead.Acquire(ctx); err != nil {
		return fmt.Errorf("publish budget alert: %w", err)
	}
	defer s.bulkhead.Release()

	_, err = s.breaker.Execute(func() (any, error) {
		return nil, resilience.RetryWithBackoff(ctx, s.retry, func() error {
			return s.client.XAdd(ctx, &redis.XAddArgs{
				Stream: s.stream,
				Values: map[string]any{"event": payload},
			}).Err()
		})
	})
	if err != nil {
		return fmt.Errorf("publish budget alert: %w", err)
	}
	return nil
}
