// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import (
	"context"
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"strings"
	"testing/fstest"
	"time"

	"github.com/olegiv/localelab/internal/i18n"
)

// article is a minimal valid content file for tests.
type article struct {
	slug        string
	key         string
	lang        string
	title       string
	description string
	published   string
	updated     string
	tags        []string
	body        string
}

func (a article) source() string {
	var b strings.Builder
	b.WriteString("---\n")
	fmt.Fprintf(&b, "title: %q\n", a.titleOr())
	fmt.Fprintf(&b, "description: %q\n", a.descriptionOr())
	fmt.Fprintf(&b, "slug: %s\n", a.slug)
	if a.key != "" {
		fmt.Fprintf(&b, "translationKey: %s\n", a.key)
	}
	fmt.Fprintf(&b, "language: %s\n", a.lang)
	fmt.Fprintf(&b, "publishedAt: %s\n", a.published)
	if a.updated != "" {
		fmt.Fprintf(&b, "updatedAt: %s\n", a.updated)
	}
	if len(a.tags) > 0 {
		b.WriteString("tags:\n")
		for _, tag := range a.tags {
			fmt.Fprintf(&b, "  - %s\n", tag)
		}
	}
	b.WriteString("---\n\n")
	if a.body != "" {
		b.WriteString(a.body)
	} else {
		b.WriteString("Body of " + a.slug + ".")
	}
	b.WriteString("\n")
	return b.String()
}

func (a article) titleOr() string {
	if a.title != "" {
		return a.title
	}
	return "Title " + a.slug
}

func (a article) descriptionOr() string {
	if a.description != "" {
		return a.description
	}
	return "A description of " + a.slug
}

func contentFS(files map[string]article) fstest.MapFS {
	fsys := fstest.MapFS{}
	for name, a := range files {
		fsys[name] = &fstest.MapFile{Data: []byte(a.source())}
	}
	return fsys
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestLoader(fsys fstest.MapFS) *Loader {
	return NewLoader(fsys, LoaderOptions{Logger: quietLogger()})
}

func date(s string) time.Time {
	t, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return t
}

// stubRenderer echoes the source wrapped in a paragraph, or fails with err.
type stubRenderer struct {
	err   error
	calls int
}

func (r *stubRenderer) Render(_ context.Context, source string) (template.HTML, error) {
	r.calls++
	if r.err != nil {
		return "", r.err
	}
	return template.HTML("<p>" + template.HTMLEscapeString(source) + "</p>"), nil
}

func entry(slug, key string, lang i18n.Locale, published string) Entry {
	return Entry{
		Slug:           slug,
		TranslationKey: key,
		Language:       lang,
		Title:          "Title " + slug,
		Description:    "Description of " + slug,
		PublishedAt:    date(published),
		Tags:           []string{},
		Body:           "Body of " + slug,
		Path:           string(lang) + "/" + slug + ".md",
	}
}
