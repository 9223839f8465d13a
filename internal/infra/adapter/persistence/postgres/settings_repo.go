package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"discord-logger/internal/repository"
	"discord-logger/internal/resilience/circuitbreaker"
)

type SettingsRepo struct{ db *circuitbreaker.DBCircuitBreaker }

func NewSettingsRepo(db *circuitbreaker.DBCircuitBreaker) repository.SettingsRepository {
	return &SettingsRepo{db: db}
}

func (repo *SettingsRepo) Get(ctx context.Context, key string) (string, error) {
	defer observe("settings_get", time.Now())

	const query = `SELECT option_value FROM options WHERE option_name = $1`
	var v string
	err := repo.db.QueryRowScan(ctx, query, []interface{}{key}, &v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("Get: %w", err)
	}
	return v, nil
}

func (repo *SettingsRepo) Set(ctx context.Context, key, value string) error {
	defer observe("settings_set", time.Now())

	const query = `
INSERT INTO options (option_name, option_value, updated_at)
VALUES ($1, $2, now())
ON CONFLICT (option_name) DO UPDATE
SET option_value = EXCLUDED.option_value, updated_at = now()`
	if _, err := repo.db.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("Set: %w", err)
	}
	return nil
}

func (repo *SettingsRepo) SetIfAbsent(ctx context.Context, key, value string) error {
	defer observe("settings_set_if_absent", time.Now())

	const query = `
INSERT INTO options (option_name, option_value, updated_at)
VALUES ($1, $2, now())
ON CONFLICT (option_name) DO NOTHING`
	if _, err := repo.db.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("SetIfAbsent: %w", err)
	}
	return nil
}

func (repo *SettingsRepo) All(ctx context.Context) (map[string]string, error) {
	defer observe("settings_all", time.Now())

	rows, err := repo.db.QueryContext(ctx, `SELECT option_name, option_value FROM options`)
	if err != nil {
		return nil, fmt.Errorf("All: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := make(map[string]string, 3)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, fmt.Errorf("All: %w", err)
		}
		out[k] = v
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("All: %w", err)
	}
	return out, nil
}
