// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/cobra"

	"github.com/olegiv/localelab/internal/content"
	"github.com/olegiv/localelab/internal/logging"
	"github.com/olegiv/localelab/internal/markdown"
)

// errCheckFailed is returned when at least one content file is invalid.
var errCheckFailed = errors.New("content check failed")

// checkEnv is the subset of configuration the check command needs. It does
// not require LL_SECRET_KEY.
type checkEnv struct {
	ContentDir string `env:"LL_CONTENT_DIR" envDefault:"./content/blog"`
	LogLevel   string `env:"LL_LOG_LEVEL" envDefault:"warn"`
}

func newCheckCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate every content file",
		Long: `Load the content directory, validate front matter and translations,
and render every article body. Each malformed file is reported; the exit
status is 1 when any problem is found.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var cfg checkEnv
			if err := env.Parse(&cfg); err != nil {
				return fmt.Errorf("parsing config: %w", err)
			}
			if dir == "" {
				dir = cfg.ContentDir
			}
			return runCheck(cmd.Context(), cmd.OutOrStdout(), os.DirFS(dir), dir, cfg.LogLevel)
		},
	}
	cmd.Flags().StringVarP(&dir, "dir", "d", "", "content directory (default $LL_CONTENT_DIR or ./content/blog)")
	return cmd
}

// runCheck loads and renders all content under fsys, writing a report to out.
func runCheck(ctx context.Context, out io.Writer, fsys fs.FS, label, logLevel string) error {
	logger := logging.New(logLevel, "text", os.Stderr)
	loader := content.NewLoader(fsys, content.LoaderOptions{Logger: logger})

	entries, err := loader.LoadAll(ctx)
	if err != nil {
		var verr *content.ValidationError
		if !errors.As(err, &verr) {
			return fmt.Errorf("loading %s: %w", label, err)
		}
		for _, f := range verr.Files {
			_, _ = fmt.Fprintf(out, "%s\n", f.Path)
			for _, p := range f.Problems {
				_, _ = fmt.Fprintf(out, "  - %s\n", p)
			}
		}
		_, _ = fmt.Fprintf(out, "%d invalid file(s) in %s\n", len(verr.Files), label)
		return errCheckFailed
	}

	renderer := markdown.New(markdown.Options{Logger: logger})
	failed := 0
	for _, e := range entries {
		if _, err := renderer.Render(ctx, e.Body); err != nil {
			failed++
			_, _ = fmt.Fprintf(out, "%s\n  - rendering body: %v\n", e.Path, err)
		}
	}
	if failed > 0 {
		_, _ = fmt.Fprintf(out, "%d file(s) failed to render in %s\n", failed, label)
		return errCheckFailed
	}

	groups := content.GroupByTranslationKey(entries)
	_, _ = fmt.Fprintf(out, "%d entries in %d posts: ok\n", len(entries), len(groups))
	return nil
}
