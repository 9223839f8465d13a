package auth

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	resultSuccess        = "success"
	resultFailure        = "failure"
	resultInvalidRequest = "invalid_request"

	rejectToken = "token"
	rejectRole  = "role"
	rejectNonce = "nonce"
)

var (
	// authRequestsTotal counts /auth/token attempts by result.
	authRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_requests_total",
			Help: "Total authentication requests by result",
		},
		[]string{"result"},
	)

	authDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "auth_duration_seconds",
			Help:    "Authentication duration",
			Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1.0},
		},
	)

	// adminRejectionsTotal counts admin requests refused before the handler.
	adminRejectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "admin_rejections_total",
			Help: "Admin requests rejected by reason",
		},
		[]string{"reason"}, // token | role | nonce
	)
)

// RecordAuthRequest records one /auth/token attempt.
func RecordAuthRequest(result string, d time.Duration) {
	authRequestsTotal.WithLabelValues(result).Inc()
	authDuration.Observe(d.Seconds())
}

// RecordRejection records a refused admin request.
func RecordRejection(reason string) {
	adminRejectionsTotal.WithLabelValues(reason).Inc()
}
