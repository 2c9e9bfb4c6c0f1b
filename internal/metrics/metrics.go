// Package metrics defines Prometheus metrics for the leasekit server.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "leasekit_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leasekit_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	ErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leasekit_errors_total",
			Help: "Total surfaced errors by code",
		},
		[]string{"code"},
	)

	// SnapshotFailures counts history snapshot writes that were suppressed.
	// The audit trail is best-effort, so this counter is the only place a
	// lost snapshot becomes visible.
	SnapshotFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "leasekit_history_snapshot_failures_total",
			Help: "Request history snapshots that failed to persist",
		},
	)
)

func init() {
	prometheus.MustRegister(RequestDuration, RequestsTotal, ErrorsTotal, SnapshotFailures)
}
