// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package markdown renders article bodies to sanitized HTML.
package markdown

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"regexp"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	gmutil "github.com/yuin/goldmark/util"

	"github.com/olegiv/localelab/internal/cache"
)

const cacheKeyPrefix = "md:"

// Options configures a Renderer.
type Options struct {
	// Cache stores rendered HTML by source hash. Nil disables caching.
	Cache cache.Cache

	// TTL of cached HTML; zero uses the cache default.
	TTL time.Duration

	Logger *slog.Logger
}

// Renderer converts GitHub-flavored Markdown with footnotes into HTML.
// Headings get stable IDs and wrap their text in a link to themselves.
// Raw HTML in the source is allowed and then sanitized.
type Renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
	cache  cache.Cache
	ttl    time.Duration
	logger *slog.Logger
}

// New creates a Renderer.
func New(opts Options) *Renderer {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM, extension.Footnote),
			goldmark.WithParserOptions(
				parser.WithAutoHeadingID(),
				parser.WithASTTransformers(gmutil.Prioritized(headingLinker{}, 500)),
			),
			goldmark.WithRendererOptions(gmhtml.WithUnsafe()),
		),
		policy: newPolicy(),
		cache:  opts.Cache,
		ttl:    opts.TTL,
		logger: opts.Logger,
	}
}

// Render returns the sanitized HTML for source.
func (r *Renderer) Render(ctx context.Context, source string) (template.HTML, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	key := cacheKey(source)
	if r.cache != nil {
		cached, err := r.cache.Get(ctx, key)
		if err == nil {
			return template.HTML(cached), nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			r.logger.Debug("render cache lookup failed", "error", err)
		}
	}

	var buf bytes.Buffer
	if err := r.md.Convert([]byte(source), &buf); err != nil {
		return "", fmt.Errorf("converting markdown: %w", err)
	}
	out := r.policy.SanitizeBytes(buf.Bytes())

	if r.cache != nil {
		if err := r.cache.Set(ctx, key, out, r.ttl); err != nil {
			r.logger.Warn("failed to cache rendered html", "error", err)
		}
	}
	//nolint:gosec // G203: output is sanitized by the bluemonday policy above
	return template.HTML(out), nil
}

func cacheKey(source string) string {
	sum := sha256.Sum256([]byte(source))
	return cacheKeyPrefix + hex.EncodeToString(sum[:])
}

var (
	allowedClass = regexp.MustCompile(`^(footnotes|footnote-ref|footnote-backref|task-list-item|language-[\w+#-]+)$`)
	allowedRole  = regexp.MustCompile(`^doc-(noteref|backlink|endnotes)$`)
)

// newPolicy extends the UGC policy with what GFM and footnote output needs.
func newPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	// nofollow only on external links; heading and footnote anchors stay plain.
	p.RequireNoFollowOnLinks(false)
	p.RequireNoFollowOnFullyQualifiedLinks(true)
	p.AllowAttrs("class").Matching(allowedClass).Globally()
	p.AllowAttrs("role").Matching(allowedRole).Globally()
	p.AllowAttrs("type").Matching(regexp.MustCompile(`^checkbox$`)).OnElements("input")
	p.AllowAttrs("checked", "disabled").OnElements("input")
	p.AllowStyles("text-align").MatchingEnum("left", "center", "right").OnElements("th", "td")
	return p
}

// headingLinker wraps the content of every heading with an ID in a link to
// that ID.
type headingLinker struct{}

func (headingLinker) Transform(doc *ast.Document, _ text.Reader, _ parser.Context) {
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}

		raw, ok := h.AttributeString("id")
		if !ok {
			return ast.WalkSkipChildren, nil
		}
		id, ok := raw.([]byte)
		if !ok || len(id) == 0 || containsLink(h) {
			return ast.WalkSkipChildren, nil
		}

		link := ast.NewLink()
		link.Destination = append([]byte("#"), id...)
		for c := h.FirstChild(); c != nil; {
			next := c.NextSibling()
			h.RemoveChild(h, c)
			link.AppendChild(link, c)
			c = next
		}
		h.AppendChild(h, link)
		return ast.WalkSkipChildren, nil
	})
}

func containsLink(n ast.Node) bool {
	found := false
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering && (c.Kind() == ast.KindLink || c.Kind() == ast.KindAutoLink) {
			found = true
			return ast.WalkStop, nil
		}
		return ast.WalkContinue, nil
	})
	return found
}

var footnotesOpen = regexp.MustCompile(`<div class="footnotes"[^>]*>`)

// WithFootnotesHeading inserts a visually hidden, localized heading at the
// start of the footnotes section, if html has one.
func WithFootnotesHeading(html template.HTML, heading string) template.HTML {
	s := string(html)
	loc := footnotesOpen.FindStringIndex(s)
	if loc == nil || heading == "" {
		return html
	}
	h := `<h2 id="footnote-label" class="sr-only">` + template.HTMLEscapeString(heading) + `</h2>`
	//nolint:gosec // G203: heading is escaped and the surrounding html is already sanitized
	return template.HTML(s[:loc[1]] + h + s[loc[1]:])
}
