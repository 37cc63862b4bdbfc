package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// AuthAttempts records authentication attempts by result (success|failure).
	AuthAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cowtracker_auth_attempts_total",
			Help: "Total number of authentication attempts",
		},
		[]string{"result"},
	)

	// CacheLookups counts response-cache lookups by tier and outcome (hit|miss).
	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cowtracker_cache_lookups_total",
			Help: "Response cache lookups by tier and outcome",
		},
		[]string{"tier", "outcome"},
	)

	// BindingCodes counts binding-code lifecycle events (issued|redeemed|revoked|expired).
	BindingCodes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cowtracker_binding_codes_total",
			Help: "Binding code lifecycle events",
		},
		[]string{"event"},
	)

	// APILatency measures HTTP request latencies.
	APILatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cowtracker_api_latency_seconds",
			Help:    "API endpoint latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)
