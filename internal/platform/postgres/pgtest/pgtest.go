// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pgtest provides a migrated PostgreSQL pool for store tests.
//
// TEST_DATABASE_URL selects a disposable database. When it is unset a
// PostgreSQL container is started once per test binary through
// testcontainers-go; tests are skipped only when Docker is unreachable or
// `go test -short` is used. Every call truncates the library tables, and a session advisory lock keeps
// packages run in parallel by `go test ./...` from interleaving.
package pgtest

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/taibuivan/ranoberead/internal/platform/migration"
	"github.com/taibuivan/ranoberead/internal/platform/postgres"
)

// EnvDatabaseURL names the variable holding the test database DSN.
const EnvDatabaseURL = "TEST_DATABASE_URL"

// containerImage is the PostgreSQL image started when no database URL is set.
const containerImage = "postgres:16-alpine"

// lockKey is an arbitrary application-wide advisory lock id.
const lockKey = 7_240_001

var (
	migrateOnce sync.Once
	migrateErr  error

	containerOnce sync.Once
	containerDSN  string
	containerErr  error
)

// New returns a pool connected to a freshly truncated, fully migrated database.
// The pool is closed when the test finishes.
func New(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := databaseURL(t)
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	migrateOnce.Do(func() {
		migrateErr = migration.RunUp(dsn, migrationsPath(), logger)
	})
	if migrateErr != nil {
		t.Fatalf("pgtest: migrate: %v", migrateErr)
	}

	ctx := context.Background()

	pool, err := postgres.NewPool(ctx, dsn, logger)
	if err != nil {
		t.Fatalf("pgtest: connect: %v", err)
	}

	// Hold the lock on a dedicated connection for the whole test
	lockConn, err := pool.Acquire(ctx)
	if err != nil {
		pool.Close()
		t.Fatalf("pgtest: acquire: %v", err)
	}
	if _, err := lockConn.Exec(ctx, "SELECT pg_advisory_lock($1)", lockKey); err != nil {
		lockConn.Release()
		pool.Close()
		t.Fatalf("pgtest: lock: %v", err)
	}

	t.Cleanup(func() {
		_, _ = lockConn.Exec(context.Background(), "SELECT pg_advisory_unlock($1)", lockKey)
		lockConn.Release()
		pool.Close()
	})

	if _, err := pool.Exec(ctx, "TRUNCATE library.bookmark, library.chapter, library.work RESTART IDENTITY CASCADE"); err != nil {
		t.Fatalf("pgtest: truncate: %v", err)
	}

	return pool
}

// databaseURL prefers TEST_DATABASE_URL and falls back to a shared container.
// The container is reaped by testcontainers when the test binary exits.
func databaseURL(t *testing.T) string {
	t.Helper()

	if dsn := os.Getenv(EnvDatabaseURL); dsn != "" {
		return dsn
	}
	if testing.Short() {
		t.Skipf("%s not set and -short given; skipping PostgreSQL store test", EnvDatabaseURL)
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	containerOnce.Do(func() {
		ctx := context.Background()

		container, err := tcpostgres.Run(ctx, containerImage,
			tcpostgres.WithDatabase("ranoberead"),
			tcpostgres.WithUsername("ranoberead"),
			tcpostgres.WithPassword("ranoberead"),
			tcpostgres.BasicWaitStrategies(),
		)
		if err != nil {
			containerErr = err
			return
		}
		containerDSN, containerErr = container.ConnectionString(ctx, "sslmode=disable")
	})
	if containerErr != nil {
		t.Fatalf("pgtest: start container: %v", containerErr)
	}
	return containerDSN
}

// migrationsPath resolves data/migrations relative to this source file so tests
// work from any package directory.
func migrationsPath() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "..", "..", "..", "..", "data", "migrations")
}
