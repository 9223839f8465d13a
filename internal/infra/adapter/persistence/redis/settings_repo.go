// Package redis stores the webhook options in a Redis hash for deployments
// that run several relay instances without a shared database.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"discord-logger/internal/observability/metrics"
	"discord-logger/internal/repository"
	"discord-logger/internal/resilience/circuitbreaker"
)

// DefaultKey is the hash holding every option.
const DefaultKey = "discord_logger:options"

type SettingsRepo struct {
	client *goredis.Client
	key    string
	cb     *circuitbreaker.CircuitBreaker
}

// NewClient connects and pings Redis.
func NewClient(ctx context.Context, addr, password string, db int) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connecting to Redis: %w", err)
	}
	return client, nil
}

// NewSettingsRepo stores options under key (DefaultKey when empty).
func NewSettingsRepo(client *goredis.Client, key string) repository.SettingsRepository {
	if key == "" {
		key = DefaultKey
	}
	return &SettingsRepo{
		client: client,
		key:    key,
		cb:     circuitbreaker.New(circuitbreaker.RedisConfig()),
	}
}

func (r *SettingsRepo) Get(ctx context.Context, field string) (string, error) {
	defer observe("redis_settings_get", time.Now())

	var v string
	err := r.cb.Run(func() error {
		var err error
		v, err = r.client.HGet(ctx, r.key, field).Result()
		if errors.Is(err, goredis.Nil) {
			v = ""
			return nil
		}
		return err
	})
	if err != nil {
		return "", fmt.Errorf("getting option %s: %w", field, err)
	}
	return v, nil
}

func (r *SettingsRepo) Set(ctx context.Context, field, value string) error {
	defer observe("redis_settings_set", time.Now())

	if err := r.cb.Run(func() error {
		return r.client.HSet(ctx, r.key, field, value).Err()
	}); err != nil {
		return fmt.Errorf("storing option %s: %w", field, err)
	}
	return nil
}

func (r *SettingsRepo) SetIfAbsent(ctx context.Context, field, value string) error {
	defer observe("redis_settings_set_if_absent", time.Now())

	if err := r.cb.Run(func() error {
		return r.client.HSetNX(ctx, r.key, field, value).Err()
	}); err != nil {
		return fmt.Errorf("seeding option %s: %w", field, err)
	}
	return nil
}

func (r *SettingsRepo) All(ctx context.Context) (map[string]string, error) {
	defer observe("redis_settings_all", time.Now())

	var out map[string]string
	err := r.cb.Run(func() error {
		var err error
		out, err = r.client.HGetAll(ctx, r.key).Result()
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("listing options: %w", err)
	}
	return out, nil
}

func observe(op string, start time.Time) {
	metrics.RecordDBQuery(op, time.Since(start))
}
