// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Wordhoard Contributors

package main

import (
	"github.com/spf13/cobra"
)

// Global flags available to all subcommands.
var configFile string

// NewRootCmd creates the root command for the wordhoard CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wordhoard",
		Short: "Wordhoard - a crowd-moderated dictionary server",
		Long: `Wordhoard is a dictionary backend where anyone can submit words
and administrators moderate what enters the public catalogue.`,
	}

	// Global flag for config file path
	cmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path")

	// Add subcommands
	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewMigrateCmd())
	cmd.AddCommand(NewSeedAdminCmd())

	return cmd
}
