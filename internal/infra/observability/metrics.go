package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"
)

// Metrics holds all Prometheus metrics for the service.
type Metrics struct {
	// Registry is the Prometheus registry that owns these metrics.
	// Exposed so the /metrics endpoint can use it.
	Registry *prometheus.Registry

	requestDuration *prometheus.HistogramVec
	ledgerOps       *prometheus.CounterVec
	budgetAlerts    *prometheus.CounterVec
	notifyErrors    *prometheus.CounterVec
	cacheHits       *prometheus.CounterVec
	cacheMisses     *prometheus.CounterVec
}

// NewMetrics creates a dedicated Prometheus registry and registers all
// application metrics in it. Using a private registry avoids "duplicate
// collector" panics when NewMetrics is called more than once (e.g. in tests).
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,

		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "fintrack_request_duration_seconds",
				Help:    "Duration of requests by operation.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		ledgerOps: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fintrack_ledger_operations_total",
				Help: "Total ledger operations by op and transaction kind.",
			},
			[]string{"op", "kind"},
		),
		budgetAlerts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fintrack_budget_alerts_total",
				Help: "Total budget threshold alerts by severity.",
			},
			[]string{"severity"},
		),
		notifyErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fintrack_notify_errors_total",
				Help: "Total notification delivery failures by sink.",
			},
			[]string{"sink"},
		),
		cacheHits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fintrack_cache_hits_total",
				Help: "Total cache hits.",
			},
			[]string{"cache"},
		),
		cacheMisses: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fintrack_cache_misses_total",
				Help: "Total cache misses.",
			},
			[]string{"cache"},
		),
	}
}

// RecordRequestDuration records the duration of an operation.
func (m *Metrics) RecordRequestDuration(operation string, d time.Duration) {
	m.requestDuration.WithLabelValues(operation).Observe(d.Seconds())
}

// IncrLedgerOp increments the ledger operation counter.
func (m *Metrics) IncrLedgerOp(op, kind string) {
	m.ledgerOps.WithLabelValues(op, kind).Inc()
}

// IncrBudgetAlert increments the budget alert counter.
func (m *Metrics) IncrBudgetAlert(severity string) {
	m.budgetAlerts.WithLabelValues(severity).Inc()
}

// IncrNotifyError increments the notification failure counter.
func (m *Metrics) IncrNotifyError(sink string) {
	m.notifyErrors.WithLabelValues(sink).Inc()
}

// IncrCacheHit increments the cache hit counter.
func (m *Metrics) IncrCacheHit(cache string) {
	m.cacheHits.WithLabelValues(cache).Inc()
}

// IncrCacheMiss increments the cache miss counter.
func (m *Metrics) IncrCacheMiss(cache string) {
	m.cacheMisses.WithLabelValues(cache).Inc()
}

// LedgerSnapshot is a point-in-time view of the ledger counters, served by
// the GET /v1/metrics/ledger endpoint.
type LedgerSnapshot struct {
	Creates      int64   `json:"creates"`
	Updates      int64   `json:"updates"`
	Deletes      int64   `json:"deletes"`
	Warnings     int64   `json:"budget_warnings"`
	Alerts       int64   `json:"budget_alerts"`
	CacheHitRate float64 `json:"cache_hit_rate"`
}

// GetLedgerSnapshot gathers the current counter values.
// Prometheus counters expose cumulative values, so sums are over all kinds.
func (m *Metrics) GetLedgerSnapshot() *LedgerSnapshot {
	kinds := []string{"INCOME", "EXPENSE", "TRANSFER"}
	var creates, updates, deletes float64
	for _, k := range kinds {
		creates += getCounterValue(m.ledgerOps, "create", k)
		updates += getCounterValue(m.ledgerOps, "update", k)
		deletes += getCounterValue(m.ledgerOps, "delete", k)
	}

	hits := getCounterValue(m.cacheHits, "dashboard")
	misses := getCounterValue(m.cacheMisses, "dashboard")
	hitRate := float64(0)
	if hits+misses > 0 {
		hitRate = hits / (hits + misses)
	}

	return &LedgerSnapshot{
		Creates:      int64(creates),
		Updates:      int64(updates),
		Deletes:      int64(deletes),
		Warnings:     int64(getCounterValue(m.budgetAlerts, "WARNING")),
		Alerts:       int64(getCounterValue(m.budgetAlerts, "ALERT")),
		CacheHitRate: hitRate,
	}
}

// getCounterValue extracts the current float64 value from a CounterVec for the given labels.
func getCounterValue(cv *prometheus.CounterVec, labels ...string) float64 {
	counter := cv.WithLabelValues(labels...)
	m := &dto.Metric{}
	if err := counter.(prometheus.Metric).Write(m); err != nil {
		return 0
	}
	if m.Counter != nil && m.Counter.Value != nil {
		return *m.Counter.Value
	}
	return 0
}
