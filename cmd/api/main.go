// Copyright (c) 2026 FutureKey. All rights reserved.

// Command api is the entry point for the FutureKey HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis when configured, otherwise fall back to a local rate limiter.
//  5. Run database migrations (idempotent) when enabled.
//  6. Wire repositories, services and HTTP handlers.
//  7. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	goredis "github.com/redis/go-redis/v9"

	"github.com/huyhoang189/futurekey-be-sub002/internal/api"
	"github.com/huyhoang189/futurekey-be-sub002/internal/core/career"
	"github.com/huyhoang189/futurekey-be-sub002/internal/core/location"
	"github.com/huyhoang189/futurekey-be-sub002/internal/core/overview"
	"github.com/huyhoang189/futurekey-be-sub002/internal/core/question"
	"github.com/huyhoang189/futurekey-be-sub002/internal/core/school"
	"github.com/huyhoang189/futurekey-be-sub002/internal/platform/config"
	"github.com/huyhoang189/futurekey-be-sub002/internal/platform/constants"
	"github.com/huyhoang189/futurekey-be-sub002/internal/platform/metrics"
	"github.com/huyhoang189/futurekey-be-sub002/internal/platform/middleware"
	"github.com/huyhoang189/futurekey-be-sub002/internal/platform/migration"
	pgstore "github.com/huyhoang189/futurekey-be-sub002/internal/platform/postgres"
	redisstore "github.com/huyhoang189/futurekey-be-sub002/internal/platform/redis"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	log := newLogger(slog.LevelInfo)
	log.Info("service_initializing", slog.String("version", constants.AppVersion))

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		log = newLogger(slog.LevelDebug)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.Bool("redis", cfg.HasRedis()),
	)

	// Process lifetime context, cancelled on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	startupCtx, startupCancel := context.WithTimeout(ctx, constants.StartupTimeout)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, pgstore.PoolOptions{
		MaxConns: cfg.DBMaxConns,
		MinConns: cfg.DBMinConns,
	}, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing_postgres_pool")
		pool.Close()
	}()
	must(log, metrics.RegisterPool(pool), "register pool metrics")

	health := api.HealthDependencies{
		CheckDatabase: func(ctx context.Context) error {
			return pgstore.Ping(ctx, pool)
		},
	}

	// ── 4. Redis / Rate Limiter ───────────────────────────────────────────
	var limiter middleware.Limiter
	if cfg.HasRedis() {
		var rdb *goredis.Client
		rdb, err = redisstore.NewClient(startupCtx, cfg.RedisURL, log)
		must(log, err, "connect to redis")
		defer func() {
			log.Info("closing_redis_client")
			if cerr := rdb.Close(); cerr != nil {
				log.Error("redis_close_failed", slog.Any("error", cerr))
			}
		}()

		health.CheckCache = func(ctx context.Context) error {
			return redisstore.Ping(ctx, rdb)
		}
		limiter = middleware.NewRedisLimiter(rdb, cfg.RateLimitBurst, constants.RateLimitWindow)
	} else {
		local := middleware.NewLocalLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
		go local.Run(ctx)
		limiter = local
		log.Warn("redis_not_configured", slog.String("rate_limiter", "local"))
	}

	// ── 5. Migrations ─────────────────────────────────────────────────────
	if cfg.RunMigrations {
		must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")
	}

	// ── 6. Domain Wiring ──────────────────────────────────────────────────
	locationRepository := location.NewPostgresRepository(pool)
	careerRepository := career.NewPostgresRepository(pool)
	schoolRepository := school.NewPostgresRepository(pool)
	questionRepository := question.NewPostgresRepository(pool)
	overviewRepository := overview.NewPostgresRepository(pool)

	liveness, readiness := api.NewHealthHandlers(health, log)

	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Location:  location.NewHandler(location.NewService(locationRepository, locationRepository, log)),
		Career:    career.NewHandler(career.NewService(careerRepository, careerRepository, log)),
		School:    school.NewHandler(school.NewService(schoolRepository, schoolRepository, log)),
		Question:  question.NewHandler(question.NewService(questionRepository, log)),
		Overview:  overview.NewHandler(overview.NewService(overviewRepository, log)),
	}

	server := api.NewServer(cfg, log, limiter, handlers)

	// ── 7. Graceful Shutdown ──────────────────────────────────────────────
	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case <-ctx.Done():
		log.Info("shutdown_signal_received")
	case err := <-serverErr:
		log.Error("server_startup_failed", slog.Any("error", err))
	}

	log.Info("shutting_down_server", slog.Duration("timeout", constants.ShutdownTimeout))

	if err := server.Shutdown(constants.ShutdownTimeout); err != nil {
		log.Error("shutdown_failed", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server_stopped_cleanly")
}

// newLogger builds the JSON logger, tags every entry with the app name and
// installs it as the slog default.
func newLogger(level slog.Level) *slog.Logger {
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})).With(slog.String("app", constants.AppName))

	slog.SetDefault(log)
	return log
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is limited to startup wiring. After startup, all errors are returned
// and handled explicitly.
func must(log *slog.Logger, err error, step string) {
	if err != nil {
		log.Error("startup_failure",
			slog.String("step", step),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
