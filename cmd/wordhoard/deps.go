// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Wordhoard Contributors

package main

import (
	"context"
	"net/http"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/wordhoard/wordhoard/internal/httpapi"
	"github.com/wordhoard/wordhoard/internal/observability"
	"github.com/wordhoard/wordhoard/internal/store"
)

// Pool is the database surface the serve command wires into the
// repositories. pgxpool.Pool satisfies it in production; pgxmock in tests.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Close()
}

// APIServer is the lifecycle surface of the HTTP API server.
type APIServer interface {
	Start() (<-chan error, error)
	Stop(ctx context.Context) error
	Addr() string
}

// ObservabilityServer is the lifecycle surface of the metrics server.
type ObservabilityServer interface {
	Start() (<-chan error, error)
	Stop(ctx context.Context) error
	Addr() string
	Metrics() *observability.Metrics
}

// ServeDeps contains injectable dependencies for the serve command.
// Zero-value fields fall back to production implementations.
type ServeDeps struct {
	// Connect opens the database pool.
	Connect func(ctx context.Context, dsn string) (Pool, error)

	// Migrate applies pending migrations against the database.
	Migrate func(databaseURL string) error

	// APIServerFactory creates the API server.
	APIServerFactory func(addr string, handler http.Handler) APIServer

	// ObservabilityServerFactory creates the metrics server.
	ObservabilityServerFactory func(addr string, ready observability.ReadinessChecker) ObservabilityServer
}

// defaultConnect opens a production pgxpool connection.
func defaultConnect(ctx context.Context, dsn string) (Pool, error) {
	return store.Connect(ctx, dsn)
}

func (d *ServeDeps) applyDefaults() {
	if d.Connect == nil {
		d.Connect = defaultConnect
	}
	if d.Migrate == nil {
		d.Migrate = runMigrations
	}
	if d.APIServerFactory == nil {
		d.APIServerFactory = func(addr string, handler http.Handler) APIServer {
			return httpapi.NewServer(addr, handler)
		}
	}
	if d.ObservabilityServerFactory == nil {
		d.ObservabilityServerFactory = func(addr string, ready observability.ReadinessChecker) ObservabilityServer {
			return observability.NewServer(addr, ready)
		}
	}
}

// runMigrations applies all pending migrations and closes the migrator.
func runMigrations(databaseURL string) error {
	migrator, err := store.NewMigrator(databaseURL)
	if err != nil {
		return err
	}
	defer func() { _ = migrator.Close() }()
	return migrator.Up()
}
