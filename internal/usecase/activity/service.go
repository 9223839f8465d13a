// Package activity provides the activity log use cases: best-effort
// appends from the delivery path and the admin read/clear/stats operations.
package activity

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"discord-logger/internal/domain/entity"
	"discord-logger/internal/observability/metrics"
	"discord-logger/internal/repository"
)

const (
	// MaxListLimit is the most entries one List call returns.
	MaxListLimit = 50
	// DashboardLimit is the size of the recent activity feed.
	DashboardLimit = 10

	appendTimeout = 5 * time.Second
)

// Service wraps the activity log repository.
type Service struct {
	Repo repository.ActivityLogRepository
}

// Append stores entry. Failures are logged and counted but never returned,
// so a broken log store cannot change a delivery outcome. The write survives
// cancellation of ctx.
func (s *Service) Append(ctx context.Context, entry *entity.LogEntry) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), appendTimeout)
	defer cancel()

	if err := s.Repo.Append(ctx, entry); err != nil {
		metrics.RecordActivityLogAppendFailure()
		slog.ErrorContext(ctx, "failed to append activity log entry",
			slog.String("type", string(entry.Type)),
			slog.String("message", entry.Message),
			slog.Any("error", err))
	}
}

// List returns up to limit entries newest first. limit is clamped to
// 1..MaxListLimit (0 means MaxListLimit); a negative offset is treated as 0.
func (s *Service) List(ctx context.Context, limit, offset int) ([]*entity.LogEntry, error) {
	if limit <= 0 || limit > MaxListLimit {
		limit = MaxListLimit
	}
	if offset < 0 {
		offset = 0
	}
	entries, err := s.Repo.List(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list activity log: %w", err)
	}
	return entries, nil
}

// Recent returns the dashboard feed.
func (s *Service) Recent(ctx context.Context) ([]*entity.LogEntry, error) {
	return s.List(ctx, DashboardLimit, 0)
}

// Clear removes every entry. Clearing an empty log succeeds.
func (s *Service) Clear(ctx context.Context) error {
	if err := s.Repo.Clear(ctx); err != nil {
		return fmt.Errorf("clear activity log: %w", err)
	}
	slog.InfoContext(ctx, "activity log cleared")
	return nil
}

// Stats returns total, success and error counts.
func (s *Service) Stats(ctx context.Context) (entity.LogStats, error) {
	st, err := s.Repo.Stats(ctx)
	if err != nil {
		return entity.LogStats{}, fmt.Errorf("activity log stats: %w", err)
	}
	return st, nil
}
