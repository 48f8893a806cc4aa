// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/olegiv/localelab/internal/version"
)

// newRootCmd builds the command tree. Running without a subcommand serves
// the site.
func newRootCmd() *cobra.Command {
	var envFiles []string

	root := &cobra.Command{
		Use:   "localelab",
		Short: "Bilingual Markdown blog server",
		Long: `Locale Lab serves an English/Spanish blog from a directory of Markdown
files, with per-post language fallback, a contact form relayed by email,
and a sitemap with hreflang alternates.

Configuration is read from LL_* environment variables and .env files.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Missing .env files are fine; variables may come from the environment.
			if len(envFiles) == 0 {
				_ = godotenv.Load()
				return nil
			}
			if err := godotenv.Load(envFiles...); err != nil {
				return fmt.Errorf("loading env files: %w", err)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
	root.PersistentFlags().StringSliceVar(&envFiles, "env-file", nil, "env files to load (default .env if present)")

	root.AddCommand(newServeCmd(), newCheckCmd(), newVersionCmd())
	return root
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "serve",
		Aliases: []string{"s"},
		Short:   "Start the HTTP server",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context())
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), version.Get().String())
			return err
		},
	}
}
