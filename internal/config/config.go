// Package config loads the relay's settings from the environment and the
// optional YAML file.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/url"
	"time"

	"discord-logger/internal/domain/entity"
	"discord-logger/internal/usecase/format"
)

const (
	BackendPostgres = "postgres"
	BackendRedis    = "redis"

	minSigningSecret = 16
	minJWTSecret     = 32
)

// DB holds the activity-log pool settings.
type DB struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// Redis is used when SettingsBackend is BackendRedis.
type Redis struct {
	Addr     string
	Password string
	DB       int
}

// Platform is the REST API the event adapters read from.
type Platform struct {
	BaseURL     string
	User        string
	AppPassword string
	Timeout     time.Duration
}

// Config is the complete relay configuration.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	Version         string
	ShutdownTimeout time.Duration

	DB              DB
	SettingsBackend string
	Redis           Redis

	Site     entity.Site
	Platform Platform

	EventSigningSecret string
	JWTSecret          string
	AdminUser          string
	AdminPassword      string
	// AdminUserID is the platform user id recorded on admin-triggered log
	// entries. Zero records no actor.
	AdminUserID int64

	// EnabledEvents restricts dispatch; empty enables every known tag.
	EnabledEvents []entity.EventType

	// Warnings lists values that fell back to defaults.
	Warnings []string
}

// Load reads the process environment.
func Load() (*Config, error) {
	return load(nil)
}

// load reads variables through lookup (os.LookupEnv when nil).
func load(lookup func(string) (string, bool)) (*Config, error) {
	env := newEnvLoader(lookup)

	cfg := &Config{
		HTTPAddr:        env.String("HTTP_ADDR", ":8080"),
		LogLevel:        env.String("LOG_LEVEL", "info"),
		Version:         env.String("VERSION", "dev"),
		ShutdownTimeout: env.Duration("SHUTDOWN_TIMEOUT", 15*time.Second, ValidatePositiveDuration),
		DB: DB{
			URL:             env.String("DATABASE_URL", ""),
			MaxOpenConns:    env.Int("DB_MAX_OPEN_CONNS", 10, ValidateIntRange(1, 1000)),
			MaxIdleConns:    env.Int("DB_MAX_IDLE_CONNS", 5, ValidateIntRange(0, 1000)),
			ConnMaxLifetime: env.Duration("DB_CONN_MAX_LIFETIME", time.Hour, ValidatePositiveDuration),
			ConnMaxIdleTime: env.Duration("DB_CONN_MAX_IDLE_TIME", 15*time.Minute, ValidatePositiveDuration),
		},
		SettingsBackend: env.String("SETTINGS_BACKEND", BackendPostgres),
		Redis: Redis{
			Addr:     env.String("REDIS_ADDR", "localhost:6379"),
			Password: env.String("REDIS_PASSWORD", ""),
			DB:       env.Int("REDIS_DB", 0, ValidateIntRange(0, 15)),
		},
		Platform: Platform{
			BaseURL:     env.String("PLATFORM_BASE_URL", ""),
			User:        env.String("PLATFORM_USER", ""),
			AppPassword: env.String("PLATFORM_APP_PASSWORD", ""),
			Timeout:     env.Duration("PLATFORM_TIMEOUT", 10*time.Second, ValidatePositiveDuration),
		},
		EventSigningSecret: env.String("EVENT_SIGNING_SECRET", ""),
		JWTSecret:          env.String("JWT_SECRET", ""),
		AdminUser:          env.String("ADMIN_USER", ""),
		AdminPassword:      env.String("ADMIN_USER_PASSWORD", ""),
		AdminUserID:        int64(env.Int("ADMIN_USER_ID", 0, ValidateIntRange(0, math.MaxInt32))),
	}

	if path := env.String("RELAY_CONFIG_FILE", ""); path != "" {
		f, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		cfg.Site = entity.Site{Name: f.Site.Name, URL: f.Site.URL}
		for _, t := range f.Events.Enabled {
			cfg.EnabledEvents = append(cfg.EnabledEvents, entity.EventType(t))
		}
	}

	cfg.Site.Name = env.String("SITE_NAME", cfg.Site.Name)
	cfg.Site.URL = env.String("SITE_URL", cfg.Site.URL)
	if list := env.List("ENABLED_EVENTS"); list != nil {
		cfg.EnabledEvents = cfg.EnabledEvents[:0]
		for _, t := range list {
			cfg.EnabledEvents = append(cfg.EnabledEvents, entity.EventType(t))
		}
	}

	cfg.Warnings = env.warnings
	for _, w := range env.warnings {
		slog.Warn("configuration fallback", slog.String("warning", w))
	}
	recordLoad(env.fallback)
	return cfg, nil
}

// ValidateStore checks what every binary needs to reach the stores.
func (c *Config) ValidateStore() error {
	var errs []error
	if c.DB.URL == "" {
		errs = append(errs, errors.New("DATABASE_URL is required"))
	}
	switch c.SettingsBackend {
	case BackendPostgres:
	case BackendRedis:
		if c.Redis.Addr == "" {
			errs = append(errs, errors.New("REDIS_ADDR is required when SETTINGS_BACKEND=redis"))
		}
	default:
		errs = append(errs, fmt.Errorf("SETTINGS_BACKEND must be %q or %q, got %q", BackendPostgres, BackendRedis, c.SettingsBackend))
	}
	if c.DB.MaxIdleConns > c.DB.MaxOpenConns {
		errs = append(errs, errors.New("DB_MAX_IDLE_CONNS must not exceed DB_MAX_OPEN_CONNS"))
	}
	return errors.Join(errs...)
}

// Validate checks everything the relay server needs and reports all
// problems at once.
func (c *Config) Validate() error {
	errs := []error{c.ValidateStore()}

	if u, err := url.Parse(c.Platform.BaseURL); c.Platform.BaseURL == "" || err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, errors.New("PLATFORM_BASE_URL must be an absolute URL"))
	}
	if len(c.EventSigningSecret) < minSigningSecret {
		errs = append(errs, fmt.Errorf("EVENT_SIGNING_SECRET must be at least %d bytes", minSigningSecret))
	}
	if len(c.JWTSecret) < minJWTSecret {
		errs = append(errs, fmt.Errorf("JWT_SECRET must be at least %d bytes", minJWTSecret))
	}
	if c.AdminUser == "" || c.AdminPassword == "" {
		errs = append(errs, errors.New("ADMIN_USER and ADMIN_USER_PASSWORD are required"))
	}
	for _, t := range c.EnabledEvents {
		if !format.Supports(t) {
			errs = append(errs, fmt.Errorf("enabled event %q is not a known event type", t))
		}
	}
	return errors.Join(errs...)
}
