// Package admin serves the administrative surface: connection test,
// settings and the activity log viewer.
package admin

import (
	"context"
	"net/http"
	"time"

	"discord-logger/internal/domain/entity"

	"golang.org/x/time/rate"
)

// LogService is satisfied by *activity.Service.
type LogService interface {
	List(ctx context.Context, limit, offset int) ([]*entity.LogEntry, error)
	Recent(ctx context.Context) ([]*entity.LogEntry, error)
	Clear(ctx context.Context) error
	Stats(ctx context.Context) (entity.LogStats, error)
}

// SettingsService is satisfied by *settings.Service.
type SettingsService interface {
	Save(ctx context.Context, key, value string) error
	All(ctx context.Context) (map[string]string, error)
	Load(ctx context.Context) (entity.DeliveryConfig, error)
}

// Deliverer is satisfied by *delivery.Engine.
type Deliverer interface {
	Deliver(ctx context.Context, msg entity.Message, cfg entity.DeliveryConfig) entity.Outcome
}

// NewTestLimiter allows one connection test every two seconds with a
// burst of three.
func NewTestLimiter() *rate.Limiter {
	return rate.NewLimiter(rate.Every(2*time.Second), 3)
}

// Register mounts every admin route behind guard.
func Register(mux *http.ServeMux, guard func(http.Handler) http.Handler, logs LogService, settings SettingsService, engine Deliverer, limiter *rate.Limiter) {
	if limiter == nil {
		limiter = NewTestLimiter()
	}
	mux.Handle("POST /admin/test-connection", guard(TestConnectionHandler{Engine: engine, Settings: settings, Limiter: limiter}))
	mux.Handle("POST /admin/settings", guard(SaveSettingHandler{Svc: settings}))
	mux.Handle("GET /admin/settings", guard(GetSettingsHandler{Svc: settings}))
	mux.Handle("GET /admin/settings/validate", guard(ValidateHandler{}))
	mux.Handle("GET /admin/logs", guard(LogsHandler{Svc: logs}))
	mux.Handle("POST /admin/logs/clear", guard(ClearLogsHandler{Svc: logs}))
	mux.Handle("GET /admin/logs/stats", guard(StatsHandler{Svc: logs}))
	mux.Handle("GET /admin/dashboard", guard(DashboardHandler{Svc: logs}))
}
