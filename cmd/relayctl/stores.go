package main

import (
	"context"
	"database/sql"
	"log/slog"

	goredis "github.com/redis/go-redis/v9"

	"discord-logger/internal/config"
	pgRepo "discord-logger/internal/infra/adapter/persistence/postgres"
	redisRepo "discord-logger/internal/infra/adapter/persistence/redis"
	"discord-logger/internal/infra/db"
	"discord-logger/internal/resilience/circuitbreaker"
	"discord-logger/internal/usecase/activity"
	"discord-logger/internal/usecase/delivery"
	"discord-logger/internal/usecase/settings"
)

// stores is what the subcommands operate on.
type stores struct {
	DB       *sql.DB
	Settings *settings.Service
	Activity *activity.Service
	Engine   *delivery.Engine
	closers  []func() error
}

func (s *stores) Close(logger *slog.Logger) {
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			logger.Warn("failed to close store", slog.Any("error", err))
		}
	}
}

// opener builds stores from cfg. Tests replace it with in-memory stores.
type opener func(ctx context.Context, cfg *config.Config) (*stores, error)

// openStores connects to the same database and option store the relay uses.
// Migrations are left to the migrate subcommand.
func openStores(ctx context.Context, cfg *config.Config) (*stores, error) {
	database, err := db.Open(ctx, cfg.DB.URL, db.ConnectionConfig{
		MaxOpenConns:    2,
		MaxIdleConns:    1,
		ConnMaxLifetime: cfg.DB.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.DB.ConnMaxIdleTime,
	})
	if err != nil {
		return nil, err
	}
	s := &stores{DB: database, closers: []func() error{database.Close}}
	dbcb := circuitbreaker.NewDBCircuitBreaker(database)

	if cfg.SettingsBackend == config.BackendRedis {
		var client *goredis.Client
		client, err = redisRepo.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			s.Close(slog.Default())
			return nil, err
		}
		s.closers = append(s.closers, client.Close)
		s.Settings = &settings.Service{Repo: redisRepo.NewSettingsRepo(client, redisRepo.DefaultKey)}
	} else {
		s.Settings = &settings.Service{Repo: pgRepo.NewSettingsRepo(dbcb)}
	}

	s.Activity = &activity.Service{Repo: pgRepo.NewActivityLogRepo(dbcb)}
	s.Engine = delivery.NewEngine(s.Activity, cfg.Site)
	return s, nil
}
