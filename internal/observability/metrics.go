package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"gorm.io/gorm"
)

var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cinegraph_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "cinegraph_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// RecommendationRunDuration records the duration of batch recommendation runs.
	RecommendationRunDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "cinegraph_recommendation_run_duration_seconds",
		Help:    "Duration of batch recommendation computations in seconds",
		Buckets: prometheus.ExponentialBuckets(0.01, 4, 8),
	})

	// RecommendationUsersProcessed counts users whose recommendation set was
	// replaced, by outcome.
	RecommendationUsersProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cinegraph_recommendation_users_processed_total",
		Help: "Total users processed by the recommendation batch, by outcome",
	}, []string{"outcome"})

	// PopularCacheRequests counts popular-film cache lookups by result.
	PopularCacheRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cinegraph_popular_cache_requests_total",
		Help: "Total popular-films cache lookups by result (hit/miss)",
	}, []string{"result"})

	// EventAppendFailures counts best-effort activity event appends that failed.
	EventAppendFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cinegraph_event_append_failures_total",
		Help: "Total activity event appends that failed, by event type",
	}, []string{"event_type"})
)

// DatabaseMetrics wraps DB access for recording query latency.
type DatabaseMetrics struct {
	db *gorm.DB
}

// NewDatabaseMetrics returns a new DatabaseMetrics instance.
func NewDatabaseMetrics(db *gorm.DB) *DatabaseMetrics {
	return &DatabaseMetrics{db: db}
}

// ObserveQuery records the latency of a database query.
func (m *DatabaseMetrics) ObserveQuery(operation, table string, start time.Time) {
	latency := time.Since(start).Seconds()
	DatabaseQueryLatency.WithLabelValues(operation, table).Observe(latency)
}

// TrackQuery returns a function that records query latency when called (e.g. defer).
func (m *DatabaseMetrics) TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		m.ObserveQuery(operation, table, start)
	}
}
