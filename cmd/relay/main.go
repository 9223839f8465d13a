// Command relay receives lifecycle events from the platform, formats them as
// Discord embeds and serves the admin API.
package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"golang.org/x/sync/errgroup"

	"discord-logger/internal/config"
	"discord-logger/internal/infra/db"
	"discord-logger/internal/infra/platform"
	"discord-logger/internal/observability/logging"
	"discord-logger/internal/repository"
	"discord-logger/internal/resilience/circuitbreaker"

	pgRepo "discord-logger/internal/infra/adapter/persistence/postgres"
	redisRepo "discord-logger/internal/infra/adapter/persistence/redis"

	"discord-logger/internal/usecase/activity"
	"discord-logger/internal/usecase/delivery"
	"discord-logger/internal/usecase/events"
	"discord-logger/internal/usecase/settings"

	hhttp "discord-logger/internal/handler/http"
	"discord-logger/internal/handler/http/admin"
	hauth "discord-logger/internal/handler/http/auth"
	"discord-logger/internal/handler/http/ingest"
	"discord-logger/internal/handler/http/requestid"
	"discord-logger/internal/observability/tracing"
)

const (
	maxEventBody  = 1 << 20
	readHeaderMax = 10 * time.Second
	// adminSlack is the admin route budget on top of one full delivery.
	adminSlack = 10 * time.Second
)

// ServerComponents holds everything runServer needs to start and stop.
type ServerComponents struct {
	Handler  http.Handler
	Database *sql.DB
	Redis    *goredis.Client
	Tracer   *sdktrace.TracerProvider
}

func main() {
	logger := initLogger()
	cfg := loadConfig(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	components := setupServer(ctx, logger, cfg)
	defer closeComponents(logger, components)

	if err := runServer(ctx, logger, cfg, components); err != nil {
		logger.Error("server failed", slog.Any("error", err))
		os.Exit(1)
	}
}

// initLogger installs the JSON logger as the default before configuration
// is loaded, so fallback warnings are logged in the same format.
func initLogger() *slog.Logger {
	logger := logging.NewLogger(os.Getenv("LOG_LEVEL"))
	slog.SetDefault(logger)
	return logger
}

// loadConfig exits before anything else starts if the environment is unusable.
func loadConfig(logger *slog.Logger) *config.Config {
	cfg, err := config.Load()
	if err == nil {
		err = cfg.Validate()
	}
	if err != nil {
		logger.Error("invalid configuration", slog.Any("error", err))
		os.Exit(1)
	}
	return cfg
}

// initTracer installs a process-wide tracer provider and the W3C propagator.
// Spans stay in process; trace ids still reach logs and X-Trace-Id.
func initTracer(cfg *config.Config) *sdktrace.TracerProvider {
	res := resource.NewSchemaless(
		attribute.String("service.name", tracing.InstrumentationName),
		attribute.String("service.version", cfg.Version),
	)
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.AlwaysSample())),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
	return tp
}

// initDatabase opens the pool and runs migrations.
func initDatabase(ctx context.Context, logger *slog.Logger, cfg *config.Config) *sql.DB {
	database, err := db.Open(ctx, cfg.DB.URL, db.ConnectionConfig{
		MaxOpenConns:    cfg.DB.MaxOpenConns,
		MaxIdleConns:    cfg.DB.MaxIdleConns,
		ConnMaxLifetime: cfg.DB.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.DB.ConnMaxIdleTime,
	})
	if err != nil {
		logger.Error("failed to open database", slog.Any("error", err))
		os.Exit(1)
	}
	if err := db.MigrateUp(ctx, database); err != nil {
		logger.Error("failed to migrate database", slog.Any("error", err))
		os.Exit(1)
	}
	return database
}

// initSettingsStore picks the option store named by SETTINGS_BACKEND. The
// returned client is nil for the postgres backend.
func initSettingsStore(ctx context.Context, logger *slog.Logger, cfg *config.Config, dbcb *circuitbreaker.DBCircuitBreaker) (repository.SettingsRepository, *goredis.Client) {
	if cfg.SettingsBackend != config.BackendRedis {
		return pgRepo.NewSettingsRepo(dbcb), nil
	}
	client, err := redisRepo.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		logger.Error("failed to connect to redis", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("settings stored in redis",
		slog.String("addr", cfg.Redis.Addr),
		slog.Int("db", cfg.Redis.DB))
	return redisRepo.NewSettingsRepo(client, redisRepo.DefaultKey), client
}

// setupServer wires storage, use cases and routes.
func setupServer(ctx context.Context, logger *slog.Logger, cfg *config.Config) *ServerComponents {
	tp := initTracer(cfg)
	database := initDatabase(ctx, logger, cfg)
	dbcb := circuitbreaker.NewDBCircuitBreaker(database)

	settingsRepo, redisClient := initSettingsStore(ctx, logger, cfg, dbcb)
	settingsSvc := &settings.Service{Repo: settingsRepo}
	if err := settingsSvc.SeedDefaults(ctx); err != nil {
		logger.Error("failed to seed default settings", slog.Any("error", err))
		os.Exit(1)
	}

	activitySvc := &activity.Service{Repo: pgRepo.NewActivityLogRepo(dbcb)}
	engine := delivery.NewEngine(activitySvc, cfg.Site)

	platformClient, err := platform.New(platform.Config{
		BaseURL:     cfg.Platform.BaseURL,
		User:        cfg.Platform.User,
		AppPassword: cfg.Platform.AppPassword,
		Timeout:     cfg.Platform.Timeout,
	}, nil)
	if err != nil {
		logger.Error("failed to create platform client", slog.Any("error", err))
		os.Exit(1)
	}

	dispatcher := events.NewDispatcher(events.DefaultRegistry(), platformClient, settingsSvc, engine,
		events.WithEnabled(cfg.EnabledEvents...))

	authn, err := hauth.New(hauth.Config{
		Secret:        []byte(cfg.JWTSecret),
		AdminUser:     cfg.AdminUser,
		AdminPassword: cfg.AdminPassword,
		ActorID:       cfg.AdminUserID,
	})
	if err != nil {
		logger.Error("failed to create authenticator", slog.Any("error", err))
		os.Exit(1)
	}

	mux := http.NewServeMux()
	mux.Handle("POST /events", hhttp.LimitRequestBody(maxEventBody)(&ingest.Handler{
		Dispatcher: dispatcher,
		Secret:     []byte(cfg.EventSigningSecret),
		Timeout:    ingest.DispatchTimeout(engine.MaxDuration()),
	}))
	mux.Handle("POST /auth/token", hhttp.LimitRequestBody(64<<10)(authn.TokenHandler()))

	adminTimeout := engine.MaxDuration() + adminSlack
	guard := func(h http.Handler) http.Handler {
		return hhttp.Timeout(adminTimeout)(authn.RequireAdmin(h))
	}
	admin.Register(mux, guard, activitySvc, settingsSvc, engine, admin.NewTestLimiter())

	health := &hhttp.HealthHandler{
		DB:      database,
		Version: cfg.Version,
		Breakers: map[string]func() gobreaker.State{
			"database":     dbcb.State,
			"platform_api": platformClient.BreakerState,
		},
	}
	if redisClient != nil {
		health.Pingers = map[string]hhttp.PingFunc{
			"redis": func(ctx context.Context) error { return redisClient.Ping(ctx).Err() },
		}
	}
	mux.Handle("GET /health", health)
	mux.Handle("GET /ready", &hhttp.ReadyHandler{DB: database})
	mux.Handle("GET /live", hhttp.LiveHandler{})
	mux.Handle("GET /metrics", hhttp.MetricsHandler())

	if len(cfg.EnabledEvents) > 0 {
		logger.Info("event types restricted", slog.Int("enabled", len(cfg.EnabledEvents)))
	}

	return &ServerComponents{
		Handler:  applyMiddleware(logger, mux),
		Database: database,
		Redis:    redisClient,
		Tracer:   tp,
	}
}

// applyMiddleware wraps the mux. Order: Request ID → Tracing → Logging →
// Recovery → Metrics → Input validation.
func applyMiddleware(logger *slog.Logger, handler http.Handler) http.Handler {
	return hhttp.Chain(handler,
		requestid.Middleware,
		tracing.Middleware,
		hhttp.Logging(logger),
		hhttp.Recover(logger),
		hhttp.MetricsMiddleware,
		hhttp.InputValidation(),
	)
}

// runServer serves until ctx is cancelled, then drains in-flight requests
// for at most cfg.ShutdownTimeout.
func runServer(ctx context.Context, logger *slog.Logger, cfg *config.Config, c *ServerComponents) error {
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           c.Handler,
		ReadHeaderTimeout: readHeaderMax,
		BaseContext: func(_ net.Listener) context.Context {
			return context.WithoutCancel(ctx)
		},
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("server starting",
			slog.String("addr", cfg.HTTPAddr),
			slog.String("version", cfg.Version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("server forced to shutdown", slog.Any("error", err))
			return err
		}
		logger.Info("server exited")
		return nil
	})
	return g.Wait()
}

func closeComponents(logger *slog.Logger, c *ServerComponents) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := c.Tracer.Shutdown(ctx); err != nil {
		logger.Warn("failed to shutdown tracer provider", slog.Any("error", err))
	}
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			logger.Warn("failed to close redis", slog.Any("error", err))
		}
	}
	if err := c.Database.Close(); err != nil {
		logger.Error("failed to close database", slog.Any("error", err))
	}
}
