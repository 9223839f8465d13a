package repository

import (
	"context"

	"discord-logger/internal/domain/entity"
)

// ActivityLogRepository stores one row per delivery attempt.
// Rows are never updated and never deleted one at a time.
type ActivityLogRepository interface {
	Append(ctx context.Context, entry *entity.LogEntry) error
	// List returns entries newest first.
	List(ctx context.Context, limit, offset int) ([]*entity.LogEntry, error)
	// Clear removes every entry in one statement.
	Clear(ctx context.Context) error
	Stats(ctx context.Context) (entity.LogStats, error)
}
