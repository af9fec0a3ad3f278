// Package testdb starts a throwaway PostgreSQL container for store
// integration tests and applies the repository migrations to it.
//
// Tests that use it carry the "integration" build tag and need a Docker daemon:
//
//	go test -tags integration ./...
package testdb

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/huyhoang189/futurekey-be-sub002/internal/platform/migration"
	pgstore "github.com/huyhoang189/futurekey-be-sub002/internal/platform/postgres"
)

var (
	shared     *Postgres
	sharedOnce sync.Once
	sharedErr  error
)

// Postgres is a migrated database plus a pool connected to it.
type Postgres struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	DSN       string
}

// Shared returns one container per test binary. Tests sharing it must not run
// in parallel and should call [Postgres.Truncate] before seeding. The
// testcontainers reaper removes the container when the binary exits.
func Shared(t *testing.T) *Postgres {
	t.Helper()

	sharedOnce.Do(func() {
		shared, sharedErr = start(context.Background())
	})
	require.NoError(t, sharedErr, "start postgres container")

	return shared
}

func start(ctx context.Context) (*Postgres, error) {
	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("futurekey"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		return nil, err
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, err
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	if err := migration.RunUp(dsn, migrationsPath(), logger); err != nil {
		return nil, err
	}

	pool, err := pgstore.NewPool(ctx, dsn, pgstore.PoolOptions{MaxConns: 5, MinConns: 1}, logger)
	if err != nil {
		return nil, err
	}

	return &Postgres{Container: container, Pool: pool, DSN: dsn}, nil
}

// Truncate empties the given tables and everything referencing them.
func (p *Postgres) Truncate(t *testing.T, tables ...string) {
	t.Helper()

	_, err := p.Pool.Exec(context.Background(), "TRUNCATE "+strings.Join(tables, ", ")+" CASCADE")
	require.NoError(t, err)
}

// migrationsPath resolves data/migrations relative to this source file so
// tests work from any package directory.
func migrationsPath() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "..", "..", "..", "data", "migrations")
}
