// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Wordhoard Contributors

package main

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/wordhoard/wordhoard/internal/auth"
	authpg "github.com/wordhoard/wordhoard/internal/auth/postgres"
)

// Default timeout for the seed-admin command.
const defaultSeedTimeout = 30 * time.Second

// seedConfig holds configuration for the seed-admin command.
type seedConfig struct {
	email    string
	password string
	timeout  time.Duration
}

// SeedDeps contains injectable dependencies for the seed-admin command.
type SeedDeps struct {
	Connect func(ctx context.Context, dsn string) (Pool, error)
}

// NewSeedAdminCmd creates the seed-admin subcommand.
func NewSeedAdminCmd() *cobra.Command {
	cfg := &seedConfig{}

	cmd := &cobra.Command{
		Use:   "seed-admin",
		Short: "Create an administrator account",
		Long: `Creates an administrator account with the given credentials.
This command is idempotent - if the email is already registered the
existing account is left untouched.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSeedAdmin(cmd, cfg, nil)
		},
	}

	cmd.Flags().StringVar(&cfg.email, "email", "", "administrator email (required)")
	cmd.Flags().StringVar(&cfg.password, "password", "", "administrator password (or WORDHOARD_ADMIN_PASSWORD)")
	cmd.Flags().DurationVar(&cfg.timeout, "timeout", defaultSeedTimeout, "timeout for database operations (e.g., 30s, 1m)")
	//nolint:errcheck // flag is registered above
	cmd.MarkFlagRequired("email")

	return cmd
}

func runSeedAdmin(cmd *cobra.Command, cfg *seedConfig, deps *SeedDeps) error {
	if deps == nil {
		deps = &SeedDeps{}
	}
	if deps.Connect == nil {
		deps.Connect = defaultConnect
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return oops.Code("CONFIG_INVALID").Errorf("DATABASE_URL environment variable is required")
	}

	password := cfg.password
	if password == "" {
		password = os.Getenv("WORDHOARD_ADMIN_PASSWORD")
	}

	if err := auth.ValidateEmail(cfg.email); err != nil {
		return err
	}
	if err := auth.ValidatePassword(password); err != nil {
		return err
	}

	// Use cmd.Context() to respect SIGINT/SIGTERM signals
	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.timeout)
	defer cancel()

	cmd.Println("Connecting to database...")
	pool, err := deps.Connect(ctx, databaseURL)
	if err != nil {
		return oops.Code("DB_CONNECT_FAILED").With("operation", "connect to database").Wrap(err)
	}
	defer pool.Close()

	hash, err := auth.NewArgon2idHasher().Hash(password)
	if err != nil {
		return oops.Code("SEED_FAILED").With("operation", "hash password").Wrap(err)
	}

	user := &auth.User{
		Email:        cfg.email,
		PasswordHash: hash,
		IsAdmin:      true,
	}
	if err := authpg.NewUserRepository(pool).Create(ctx, user); err != nil {
		if errors.Is(err, auth.ErrEmailTaken) {
			cmd.Println("Administrator account already exists, nothing to do")
			return nil
		}
		return oops.Code("SEED_FAILED").With("operation", "insert admin").Wrap(err)
	}

	cmd.Printf("Administrator account created (id %d)\n", user.ID)
	return nil
}

