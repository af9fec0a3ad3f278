// Copyright (c) 2026 FutureKey. All rights reserved.

// Package postgres provides the process-wide PostgreSQL connection pool and the
// small query-building helpers shared by every repository.
//
// # Architecture
//
// This package is part of the Infrastructure layer. One [pgxpool.Pool] is
// created at startup, injected into every repository, and closed on shutdown.
package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/huyhoang189/futurekey-be-sub002/internal/platform/constants"
)

const (
	maxConnLifetime   = 60 * time.Minute
	maxConnIdleTime   = 10 * time.Minute
	healthCheckPeriod = 1 * time.Minute
	connectTimeout    = 5 * time.Second
	pingTimeout       = 2 * time.Second
)

// PoolOptions sizes the pool. Zero values fall back to the defaults below.
type PoolOptions struct {
	MaxConns int32
	MinConns int32

	// StatementTimeout is sent as a runtime parameter on every connection.
	StatementTimeout time.Duration
}

// DefaultPoolOptions leaves room for one overview request (eleven concurrent
// counters) next to regular CRUD traffic.
var DefaultPoolOptions = PoolOptions{
	MaxConns:         25,
	MinConns:         5,
	StatementTimeout: constants.GlobalRequestTimeout,
}

func (o PoolOptions) withDefaults() PoolOptions {
	if o.MaxConns <= 0 {
		o.MaxConns = DefaultPoolOptions.MaxConns
	}
	if o.MinConns <= 0 || o.MinConns > o.MaxConns {
		o.MinConns = min(DefaultPoolOptions.MinConns, o.MaxConns)
	}
	if o.StatementTimeout <= 0 {
		o.StatementTimeout = DefaultPoolOptions.StatementTimeout
	}
	return o
}

// NewPool creates and validates a new PostgreSQL connection pool.
//
// # Parameters
//   - ctx: Context for the initial connection attempt.
//   - dsn: A libpq-compatible connection string or postgres:// URL.
//   - options: Pool sizing and per-connection statement timeout.
//   - logger: Structured logger for pool-level events.
func NewPool(ctx context.Context, dsn string, options PoolOptions, logger *slog.Logger) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: invalid DSN: %w", err)
	}

	options = options.withDefaults()

	poolConfig.MaxConns = options.MaxConns
	poolConfig.MinConns = options.MinConns
	poolConfig.MaxConnLifetime = maxConnLifetime
	poolConfig.MaxConnIdleTime = maxConnIdleTime
	poolConfig.HealthCheckPeriod = healthCheckPeriod
	poolConfig.ConnConfig.ConnectTimeout = connectTimeout

	// Sent in the startup packet, so no extra round-trip per connection.
	poolConfig.ConnConfig.RuntimeParams["application_name"] = constants.AppName
	poolConfig.ConnConfig.RuntimeParams["statement_timeout"] = strconv.FormatInt(options.StatementTimeout.Milliseconds(), 10)

	connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(connectCtx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to create pool: %w", err)
	}

	if err := Ping(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}

	logger.Info("postgres_pool_connected",
		slog.String("host", poolConfig.ConnConfig.Host),
		slog.String("database", poolConfig.ConnConfig.Database),
		slog.Int("max_conns", int(options.MaxConns)),
		slog.Duration("statement_timeout", options.StatementTimeout),
	)

	return pool, nil
}

// Ping verifies that the PostgreSQL connection pool is healthy.
func Ping(ctx context.Context, pool *pgxpool.Pool) error {
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := pool.Ping(pingCtx); err != nil {
		return fmt.Errorf("postgres: ping failed: %w", err)
	}

	return nil
}
