package db

import (
	"context"
	"database/sql"
	"fmt"

	"discord-logger/internal/domain/entity"
)

// MigrateUp creates the activity log and option tables. Every statement is
// idempotent so it runs on each start.
func MigrateUp(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS discord_logs (
    id        BIGSERIAL PRIMARY KEY,
    type      VARCHAR(20) NOT NULL,
    kind      VARCHAR(32),
    message   TEXT NOT NULL,
    details   TEXT,
    timestamp TIMESTAMPTZ NOT NULL DEFAULT now(),
    user_id   BIGINT
)`); err != nil {
		return fmt.Errorf("create discord_logs: %w", err)
	}

	// ログビューアは timestamp DESC で読む
	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_discord_logs_type ON discord_logs(type)`,
		`CREATE INDEX IF NOT EXISTS idx_discord_logs_timestamp ON discord_logs(timestamp DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_discord_logs_user_id ON discord_logs(user_id)`,
	}
	for _, idx := range indexes {
		if _, err := db.ExecContext(ctx, idx); err != nil {
			return fmt.Errorf("create index: %w", err)
		}
	}

	if _, err := db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS options (
    option_name  VARCHAR(191) PRIMARY KEY,
    option_value TEXT NOT NULL DEFAULT '',
    updated_at   TIMESTAMPTZ NOT NULL DEFAULT now()
)`); err != nil {
		return fmt.Errorf("create options: %w", err)
	}

	// 初回起動時のみデフォルトのボット名を入れる
	if _, err := db.ExecContext(ctx,
		`INSERT INTO options (option_name, option_value) VALUES ($1, $2) ON CONFLICT (option_name) DO NOTHING`,
		entity.SettingBotName, entity.DefaultBotName,
	); err != nil {
		return fmt.Errorf("seed options: %w", err)
	}

	return nil
}

// MigrateDown drops everything MigrateUp created, including all log rows.
func MigrateDown(ctx context.Context, db *sql.DB) error {
	dropStatements := []string{
		`DROP TABLE IF EXISTS discord_logs`,
		`DROP TABLE IF EXISTS options`,
	}
	for _, stmt := range dropStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
