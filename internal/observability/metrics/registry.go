// Package metrics provides centralized Prometheus metrics for the relay.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics track the ingestion and admin endpoints
var (
	// HTTPRequestsTotal counts total HTTP requests by method, path, and status
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration measures HTTP request duration in seconds
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// HTTPResponseSize measures HTTP response body size in bytes
	HTTPResponseSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_response_size_bytes",
			Help:    "HTTP response size in bytes",
			Buckets: prometheus.ExponentialBuckets(100, 10, 6),
		},
		[]string{"method", "path"},
	)

	// HTTPRequestsInFlight is the number of requests currently being served
	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Current number of HTTP requests being served",
		},
	)
)

// Delivery metrics track the webhook send path
var (
	// DeliveryTotal counts Deliver calls by final outcome kind
	DeliveryTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "discord_delivery_total",
			Help: "Total number of webhook deliveries by outcome kind",
		},
		[]string{"kind"},
	)

	// DeliveryRetriesTotal counts the single transport retry when it fires
	DeliveryRetriesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "discord_delivery_retries_total",
			Help: "Total number of webhook transport retries",
		},
	)

	// DeliveryDuration measures a whole Deliver call including the retry wait
	DeliveryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "discord_delivery_duration_seconds",
			Help:    "Webhook delivery duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"kind"},
	)
)

// Event and activity log metrics
var (
	// EventsDispatchedTotal counts ingested events by tag and dispatch status
	EventsDispatchedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "events_dispatched_total",
			Help: "Total number of platform events dispatched",
		},
		[]string{"type", "status"}, // status: delivered, failed, skipped
	)

	// ActivityLogAppendFailures counts log rows that were dropped
	ActivityLogAppendFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "activity_log_append_failures_total",
			Help: "Total number of activity log entries that could not be stored",
		},
	)

	// PlatformLookupsTotal counts platform API lookups by resource and result
	PlatformLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "platform_lookups_total",
			Help: "Total number of platform API lookups",
		},
		[]string{"resource", "result"}, // result: ok, not_found, error
	)

	// DBQueryDuration measures database query duration
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 10),
		},
		[]string{"operation"},
	)

	// CircuitBreakerState is 0 closed, 1 half-open, 2 open
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)
)

// RecordHTTPRequest records an HTTP request with its metadata
func RecordHTTPRequest(method, path, status string, duration time.Duration, responseSize int) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
	if responseSize > 0 {
		HTTPResponseSize.WithLabelValues(method, path).Observe(float64(responseSize))
	}
}

// RecordDBQuery records the duration of a database operation such as "append_log".
func RecordDBQuery(operation string, duration time.Duration) {
	DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordBreakerState stores the numeric gobreaker state for a breaker.
func RecordBreakerState(name string, state int) {
	CircuitBreakerState.WithLabelValues(name).Set(float64(state))
}
