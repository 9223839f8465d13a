package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"discord-logger/internal/domain/entity"
	"discord-logger/internal/observability/metrics"
	"discord-logger/internal/repository"
	"discord-logger/internal/resilience/circuitbreaker"
)

type ActivityLogRepo struct{ db *circuitbreaker.DBCircuitBreaker }

func NewActivityLogRepo(db *circuitbreaker.DBCircuitBreaker) repository.ActivityLogRepository {
	return &ActivityLogRepo{db: db}
}

func (repo *ActivityLogRepo) Append(ctx context.Context, e *entity.LogEntry) error {
	defer observe("activity_log_append", time.Now())

	const query = `
INSERT INTO discord_logs (type, kind, message, details, timestamp, user_id)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id`
	ts := e.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	args := []interface{}{
		string(e.Type), nullString(string(e.Kind)), e.Message, nullString(e.Details),
		ts.UTC(), nullInt64(e.ActorID),
	}
	if err := repo.db.QueryRowScan(ctx, query, args, &e.ID); err != nil {
		return fmt.Errorf("Append: %w", err)
	}
	return nil
}

func (repo *ActivityLogRepo) List(ctx context.Context, limit, offset int) ([]*entity.LogEntry, error) {
	defer observe("activity_log_list", time.Now())

	const query = `
SELECT id, type, kind, message, details, timestamp, user_id
FROM discord_logs
ORDER BY timestamp DESC, id DESC
LIMIT $1 OFFSET $2`
	rows, err := repo.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	defer func() { _ = rows.Close() }()

	entries := make([]*entity.LogEntry, 0, limit)
	for rows.Next() {
		var (
			e       entity.LogEntry
			typ     string
			kind    sql.NullString
			details sql.NullString
			userID  sql.NullInt64
		)
		if err := rows.Scan(&e.ID, &typ, &kind, &e.Message, &details, &e.Timestamp, &userID); err != nil {
			return nil, fmt.Errorf("List: %w", err)
		}
		e.Type = entity.LogType(typ)
		e.Kind = entity.OutcomeKind(kind.String)
		e.Details = details.String
		if userID.Valid {
			id := userID.Int64
			e.ActorID = &id
		}
		entries = append(entries, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	return entries, nil
}

// Clear truncates the table in one statement.
func (repo *ActivityLogRepo) Clear(ctx context.Context) error {
	defer observe("activity_log_clear", time.Now())

	if _, err := repo.db.ExecContext(ctx, `TRUNCATE TABLE discord_logs`); err != nil {
		return fmt.Errorf("Clear: %w", err)
	}
	return nil
}

func (repo *ActivityLogRepo) Stats(ctx context.Context) (entity.LogStats, error) {
	defer observe("activity_log_stats", time.Now())

	const query = `
SELECT COUNT(*),
       COUNT(*) FILTER (WHERE type = 'success'),
       COUNT(*) FILTER (WHERE type = 'error')
FROM discord_logs`
	var st entity.LogStats
	if err := repo.db.QueryRowScan(ctx, query, nil, &st.Total, &st.Success, &st.Error); err != nil {
		return entity.LogStats{}, fmt.Errorf("Stats: %w", err)
	}
	return st, nil
}

/* ──── ヘルパ ──── */

func observe(op string, start time.Time) {
	metrics.RecordDBQuery(op, time.Since(start))
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullInt64(p *int64) sql.NullInt64 {
	if p == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *p, Valid: true}
}
