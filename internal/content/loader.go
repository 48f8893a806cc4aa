// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// DefaultExtensions are the article file extensions picked up by the loader.
var DefaultExtensions = []string{".md", ".mdx"}

// LoaderOptions configures a Loader.
type LoaderOptions struct {
	// Extensions of article files; defaults to DefaultExtensions.
	Extensions []string

	// Workers bounds concurrent file parsing (0 = 8).
	Workers int

	Logger *slog.Logger
}

// Loader reads every article under a content root and caches the result.
// The first successful LoadAll performs I/O; later calls return the cached
// entries until Invalidate or Reload is called.
type Loader struct {
	fsys       fs.FS
	extensions []string
	workers    int
	logger     *slog.Logger

	entries atomic.Pointer[[]Entry]
	loads   atomic.Int64
	group   singleflight.Group
}

// NewLoader creates a loader over fsys, typically os.DirFS(contentDir).
func NewLoader(fsys fs.FS, opts LoaderOptions) *Loader {
	if len(opts.Extensions) == 0 {
		opts.Extensions = DefaultExtensions
	}
	if opts.Workers <= 0 {
		opts.Workers = 8
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Loader{
		fsys:       fsys,
		extensions: opts.Extensions,
		workers:    opts.Workers,
		logger:     opts.Logger,
	}
}

// LoadAll returns every entry sorted by PublishedAt, most recent first.
// Concurrent first calls share one load, which runs to completion even if
// the caller that started it goes away; each caller stops waiting when its
// own ctx is done. A failed load is not cached.
// The returned slice is shared and must not be modified.
func (l *Loader) LoadAll(ctx context.Context) ([]Entry, error) {
	if cached := l.entries.Load(); cached != nil {
		return *cached, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	loadCtx := context.WithoutCancel(ctx)
	ch := l.group.DoChan("load", func() (any, error) {
		if cached := l.entries.Load(); cached != nil {
			return *cached, nil
		}
		entries, err := l.load(loadCtx)
		if err != nil {
			return nil, err
		}
		l.entries.Store(&entries)
		return entries, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]Entry), nil
	}
}

// Reload reads the content tree again and replaces the cache only when the
// new content is valid; on error the previous entries stay in place.
func (l *Loader) Reload(ctx context.Context) error {
	v, err, _ := l.group.Do("reload", func() (any, error) {
		return l.load(ctx)
	})
	if err != nil {
		return err
	}
	entries := v.([]Entry)
	l.entries.Store(&entries)
	return nil
}

// Invalidate drops the cached entries; the next LoadAll reads from disk.
func (l *Loader) Invalidate() {
	l.entries.Store(nil)
}

// Loaded reports whether entries are cached.
func (l *Loader) Loaded() bool {
	return l.entries.Load() != nil
}

// Loads returns how many times the content tree has been read.
func (l *Loader) Loads() int64 {
	return l.loads.Load()
}

type parseResult struct {
	entry    Entry
	problems []string
}

func (l *Loader) load(ctx context.Context) ([]Entry, error) {
	start := time.Now()
	l.loads.Add(1)

	paths, err := l.articlePaths()
	if err != nil {
		return nil, fmt.Errorf("scanning content: %w", err)
	}

	results := make([]parseResult, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.workers)
	for i, p := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = l.parseFile(p)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var (
		entries  = make([]Entry, 0, len(results))
		failures []FileError
	)
	for i, res := range results {
		if len(res.problems) > 0 {
			failures = append(failures, FileError{Path: paths[i], Problems: res.problems})
			continue
		}
		entries = append(entries, res.entry)
	}
	failures = append(failures, duplicateTranslations(entries)...)
	if len(failures) > 0 {
		return nil, &ValidationError{Files: failures}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].PublishedAt.After(entries[j].PublishedAt)
	})

	l.logger.Info("content loaded",
		"entries", len(entries),
		"duration", time.Since(start).Round(time.Millisecond))
	return entries, nil
}

// articlePaths lists article files in lexical order.
func (l *Loader) articlePaths() ([]string, error) {
	var paths []string
	err := fs.WalkDir(l.fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if p != "." && strings.HasPrefix(d.Name(), ".") {
				return fs.SkipDir
			}
			return nil
		}
		if l.isArticle(p) {
			paths = append(paths, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)
	return paths, nil
}

func (l *Loader) isArticle(p string) bool {
	ext := strings.ToLower(path.Ext(p))
	for _, e := range l.extensions {
		if ext == e {
			return true
		}
	}
	return false
}

func (l *Loader) parseFile(p string) parseResult {
	data, err := fs.ReadFile(l.fsys, p)
	if err != nil {
		return parseResult{problems: []string{err.Error()}}
	}

	meta, body, _, err := SplitFrontMatter(string(data))
	if err != nil {
		return parseResult{problems: []string{err.Error()}}
	}

	entry, problems := parseEntry(meta, body, p)
	return parseResult{entry: entry, problems: problems}
}

// duplicateTranslations reports entries that declare the same translation
// key and language as an earlier entry.
func duplicateTranslations(entries []Entry) []FileError {
	type pair struct {
		key  string
		lang string
	}
	seen := make(map[pair]string, len(entries))
	var failures []FileError
	for _, e := range entries {
		k := pair{e.TranslationKey, string(e.Language)}
		if first, ok := seen[k]; ok {
			failures = append(failures, FileError{
				Path: e.Path,
				Problems: []string{fmt.Sprintf("translation %q already has a %s entry in %s",
					e.TranslationKey, e.Language, first)},
			})
			continue
		}
		seen[k] = e.Path
	}
	return failures
}
