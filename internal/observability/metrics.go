// Package observability provides metrics and tracing.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "kanban_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// AuthFailures counts rejected authentication attempts by reason.
	AuthFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "kanban_auth_failures_total",
		Help: "Total number of rejected authentication attempts by reason",
	}, []string{"reason"})

	// TokenRefreshes counts successful refresh-token rotations.
	TokenRefreshes = promauto.NewCounter(prometheus.CounterOpts{
		Name: "kanban_token_refreshes_total",
		Help: "Total number of successful refresh-token rotations",
	})

	// BoardMutations counts successful create/update/delete operations by
	// entity and operation.
	BoardMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "kanban_board_mutations_total",
		Help: "Total number of board mutations by entity and operation",
	}, []string{"entity", "operation"})

	// DatabaseQueryLatency records database query latency by outcome.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "kanban_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"outcome"})
)

// ObserveQuery records the latency of a database query.
func ObserveQuery(outcome string, latencySeconds float64) {
	DatabaseQueryLatency.WithLabelValues(outcome).Observe(latencySeconds)
}
