// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Wordhoard Contributors

package main

import (
	"os"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/wordhoard/wordhoard/internal/store"
)

// migrateConfig holds configuration for the migrate subcommand.
type migrateConfig struct {
	down  bool
	steps int
	force int
}

// NewMigrateCmd creates the migrate subcommand.
func NewMigrateCmd() *cobra.Command {
	cfg := &migrateConfig{}

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		Long: `Apply pending database migrations against the PostgreSQL database.
With --down all migrations are rolled back; --steps moves a relative
number of versions; --force marks a version without running anything.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMigrate(cmd, cfg)
		},
	}

	cmd.Flags().BoolVar(&cfg.down, "down", false, "roll back all migrations")
	cmd.Flags().IntVar(&cfg.steps, "steps", 0, "migrate a relative number of versions (negative = down)")
	cmd.Flags().IntVar(&cfg.force, "force", -1, "force the schema version without running migrations")

	return cmd
}

func runMigrate(cmd *cobra.Command, cfg *migrateConfig) error {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return oops.Code("CONFIG_INVALID").Errorf("DATABASE_URL environment variable is required")
	}

	migrator, err := store.NewMigrator(databaseURL)
	if err != nil {
		return oops.Code("DB_CONNECT_FAILED").With("operation", "create migrator").Wrap(err)
	}
	defer func() { _ = migrator.Close() }()

	switch {
	case cfg.force >= 0:
		cmd.Printf("Forcing schema version %d...\n", cfg.force)
		err = migrator.Force(cfg.force)
	case cfg.steps != 0:
		cmd.Printf("Migrating %d step(s)...\n", cfg.steps)
		err = migrator.Steps(cfg.steps)
	case cfg.down:
		cmd.Println("Rolling back all migrations...")
		err = migrator.Down()
	default:
		cmd.Println("Running migrations...")
		err = migrator.Up()
	}
	if err != nil {
		return oops.Code("MIGRATION_FAILED").Wrap(err)
	}

	version, dirty, err := migrator.Version()
	if err == nil {
		cmd.Printf("Schema version: %d (dirty: %v)\n", version, dirty)
	}

	cmd.Println("Migrations completed successfully")
	return nil
}
