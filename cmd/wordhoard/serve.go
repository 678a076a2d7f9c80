// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Wordhoard Contributors

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/wordhoard/wordhoard/internal/auth"
	authpg "github.com/wordhoard/wordhoard/internal/auth/postgres"
	"github.com/wordhoard/wordhoard/internal/config"
	"github.com/wordhoard/wordhoard/internal/httpapi"
	"github.com/wordhoard/wordhoard/internal/logging"
	"github.com/wordhoard/wordhoard/internal/observability"
	"github.com/wordhoard/wordhoard/internal/word"
	wordpg "github.com/wordhoard/wordhoard/internal/word/postgres"
)

const shutdownTimeout = 5 * time.Second

// NewServeCmd creates the serve subcommand.
func NewServeCmd() *cobra.Command {
	var autoMigrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the dictionary API server",
		Long: `Start the HTTP API server, optionally applying pending database
migrations first. Configuration comes from flags, environment variables,
and the --config file.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServeWithDeps(cmd, nil, autoMigrate)
		},
	}

	cmd.Flags().String("listen", ":8000", "HTTP API listen address")
	cmd.Flags().String("metrics-listen", "", "metrics/health HTTP address (empty = disabled)")
	cmd.Flags().String("log-format", "json", "log format (json or text)")
	cmd.Flags().BoolVar(&autoMigrate, "auto-migrate", true, "apply pending migrations on startup")

	return cmd
}

// runServeWithDeps starts the server with injectable dependencies.
// If deps is nil, default implementations are used.
func runServeWithDeps(cmd *cobra.Command, deps *ServeDeps, autoMigrate bool) error {
	if deps == nil {
		deps = &ServeDeps{}
	}
	deps.applyDefaults()

	cfg, err := config.Load(configFile, cmd.Flags())
	if err != nil {
		return err
	}

	logging.SetDefault("wordhoard", version, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if autoMigrate {
		if err := deps.Migrate(cfg.DatabaseURL); err != nil {
			return fmt.Errorf("failed to apply migrations: %w", err)
		}
		slog.Info("migrations applied")
	}

	pool, err := deps.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	slog.Info("connected to database")

	tokens, err := auth.NewTokenService([]byte(cfg.TokenSecret), cfg.TokenTTL)
	if err != nil {
		return fmt.Errorf("failed to set up token service: %w", err)
	}

	authSvc := auth.NewService(authpg.NewUserRepository(pool), auth.NewArgon2idHasher(), tokens)
	wordSvc := word.NewService(wordpg.NewWordRepository(pool))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Start observability server if configured
	var obsServer ObservabilityServer
	var metrics *observability.Metrics
	if cfg.MetricsListen != "" {
		obsServer = deps.ObservabilityServerFactory(cfg.MetricsListen, func() bool { return true })
		metrics = obsServer.Metrics()
		obsErrChan, obsErr := obsServer.Start()
		if obsErr != nil {
			return fmt.Errorf("failed to start observability server: %w", obsErr)
		}
		go monitorServerErrors(ctx, cancel, obsErrChan, "observability")
	}

	api := httpapi.NewAPI(authSvc, wordSvc, tokens, slog.Default(), metrics)
	apiServer := deps.APIServerFactory(cfg.Listen, api.Router())

	apiErrChan, err := apiServer.Start()
	if err != nil {
		stopObservability(obsServer)
		return fmt.Errorf("failed to start api server: %w", err)
	}
	go monitorServerErrors(ctx, cancel, apiErrChan, "api")

	cmd.Println("Wordhoard server started")
	slog.Info("server ready", "listen", apiServer.Addr(), "metrics_listen", cfg.MetricsListen)

	<-ctx.Done()
	slog.Info("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := apiServer.Stop(shutdownCtx); err != nil {
		slog.Warn("error stopping api server", "error", err)
	}
	if obsServer != nil {
		if err := obsServer.Stop(shutdownCtx); err != nil {
			slog.Warn("error stopping observability server", "error", err)
		}
	}

	slog.Info("shutdown complete")
	return nil
}

func stopObservability(obsServer ObservabilityServer) {
	if obsServer == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := obsServer.Stop(ctx); err != nil {
		slog.Warn("failed to stop observability server during cleanup", "error", err)
	}
}

// monitorServerErrors watches a server error channel and cancels the main
// context if an error arrives, triggering graceful shutdown.
func monitorServerErrors(ctx context.Context, cancel context.CancelFunc, errChan <-chan error, name string) {
	select {
	case err, ok := <-errChan:
		if ok && err != nil {
			slog.Error("server failed", "server", name, "error", err)
			cancel()
		}
	case <-ctx.Done():
	}
}
