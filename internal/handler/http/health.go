// Package http holds the relay's shared middleware and its health and
// metrics endpoints. Route handlers live in subpackages.
package http

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"discord-logger/internal/handler/http/respond"

	"github.com/sony/gobreaker"
)

const (
	statusHealthy   = "healthy"
	statusDegraded  = "degraded"
	statusUnhealthy = "unhealthy"
)

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status    string                 `json:"status"`
	Timestamp string                 `json:"timestamp"`
	Checks    map[string]CheckStatus `json:"checks"`
	Version   string                 `json:"version"`
}

// CheckStatus is the result of one dependency check.
type CheckStatus struct {
	Status  string         `json:"status"`
	Message string         `json:"message,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

// PingFunc checks an optional dependency such as the redis settings store.
type PingFunc func(ctx context.Context) error

// HealthHandler reports the activity-log database, optional extra stores
// and circuit breaker states. Only a failed ping makes the relay unhealthy;
// an open breaker or a busy pool is reported as degraded.
type HealthHandler struct {
	DB       *sql.DB
	Pingers  map[string]PingFunc
	Breakers map[string]func() gobreaker.State
	Version  string
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	checks := make(map[string]CheckStatus, 1+len(h.Pingers)+len(h.Breakers))
	healthy := true

	if h.DB == nil {
		checks["database"] = CheckStatus{Status: statusUnhealthy, Message: "not configured"}
		healthy = false
	} else {
		c := checkDatabase(ctx, h.DB)
		checks["database"] = c
		healthy = healthy && c.Status != statusUnhealthy
	}

	for name, ping := range h.Pingers {
		if err := ping(ctx); err != nil {
			checks[name] = CheckStatus{Status: statusUnhealthy, Message: respond.SanitizeError(err)}
			healthy = false
			continue
		}
		checks[name] = CheckStatus{Status: statusHealthy}
	}

	for name, state := range h.Breakers {
		checks["breaker_"+name] = breakerCheck(state())
	}

	status, code := statusHealthy, http.StatusOK
	if !healthy {
		status, code = statusUnhealthy, http.StatusServiceUnavailable
	}

	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	respond.JSON(w, code, HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
		Version:   h.Version,
	})
}

func checkDatabase(ctx context.Context, db *sql.DB) CheckStatus {
	if err := db.PingContext(ctx); err != nil {
		return CheckStatus{Status: statusUnhealthy, Message: respond.SanitizeError(err)}
	}

	stats := db.Stats()
	details := map[string]any{
		"max_open_connections": stats.MaxOpenConnections,
		"open_connections":     stats.OpenConnections,
		"in_use":               stats.InUse,
		"idle":                 stats.Idle,
		"wait_count":           stats.WaitCount,
		"wait_duration_ms":     stats.WaitDuration.Milliseconds(),
	}

	// 0 は無制限
	if stats.MaxOpenConnections == 0 {
		return CheckStatus{
			Status:  statusDegraded,
			Message: "connection pool max connections not configured",
			Details: details,
		}
	}

	utilization := float64(stats.InUse) / float64(stats.MaxOpenConnections) * 100
	details["utilization_percent"] = utilization
	if utilization >= 80 {
		return CheckStatus{
			Status:  statusDegraded,
			Message: "connection pool utilization above 80%",
			Details: details,
		}
	}
	return CheckStatus{Status: statusHealthy, Details: details}
}

func breakerCheck(state gobreaker.State) CheckStatus {
	c := CheckStatus{Status: statusHealthy, Details: map[string]any{"state": state.String()}}
	if state != gobreaker.StateClosed {
		c.Status = statusDegraded
		c.Message = "circuit breaker " + state.String()
	}
	return c
}

// ReadyHandler answers the readiness probe: the relay is ready once the
// activity-log database answers a ping.
type ReadyHandler struct {
	DB *sql.DB
}

func (h *ReadyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if h.DB == nil {
		http.Error(w, "database not configured", http.StatusServiceUnavailable)
		return
	}
	if err := h.DB.PingContext(ctx); err != nil {
		http.Error(w, "database not ready", http.StatusServiceUnavailable)
		return
	}
	writePlain(w, "ready")
}

// LiveHandler answers the liveness probe.
type LiveHandler struct{}

func (LiveHandler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	writePlain(w, "alive")
}

func writePlain(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(body)); err != nil {
		slog.Default().Warn("failed to write probe response", slog.Any("error", err))
	}
}
