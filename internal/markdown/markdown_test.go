// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package markdown

import (
	"context"
	"html/template"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/localelab/internal/cache"
)

func render(t *testing.T, r *Renderer, src string) string {
	t.Helper()
	out, err := r.Render(context.Background(), src)
	require.NoError(t, err)
	return string(out)
}

func newRenderer(c cache.Cache) *Renderer {
	return New(Options{Cache: c, Logger: slog.New(slog.NewTextHandler(io.Discard, nil))})
}

func TestRenderHeadingsAreSelfLinked(t *testing.T) {
	out := render(t, newRenderer(nil), "## Hello World\n\nText.")

	assert.Contains(t, out, `id="hello-world"`)
	assert.Contains(t, out, `<a href="#hello-world">Hello World</a></h2>`)
}

func TestRenderHeadingWithLinkIsNotWrapped(t *testing.T) {
	out := render(t, newRenderer(nil), "## See [docs](https://example.com)\n")

	assert.Equal(t, 1, strings.Count(out, "<a "), "nested anchors are not produced")
	assert.Contains(t, out, `href="https://example.com"`)
}

func TestRenderNoFollowOnlyOnExternalLinks(t *testing.T) {
	out := render(t, newRenderer(nil), "Claim.[^1] See [docs](https://example.com) and [contact](/contact).\n\n[^1]: Source.\n")

	assert.Contains(t, out, `<a href="https://example.com" rel="nofollow">docs</a>`)
	assert.Contains(t, out, `<a href="/contact">contact</a>`)
	assert.Equal(t, 1, strings.Count(out, "nofollow"), "footnote refs and backrefs are in-page links")
}

func TestRenderGFM(t *testing.T) {
	src := strings.Join([]string{
		"| Name | Value |",
		"| :--- | ----: |",
		"| a | 1 |",
		"",
		"~~gone~~ and https://example.org",
		"",
		"- [x] done",
		"- [ ] todo",
	}, "\n")

	out := render(t, newRenderer(nil), src)

	assert.Contains(t, out, "<table>")
	assert.Contains(t, out, "<del>gone</del>")
	assert.Contains(t, out, `href="https://example.org"`)
	assert.Contains(t, out, `type="checkbox"`)
}

func TestRenderFootnotes(t *testing.T) {
	out := render(t, newRenderer(nil), "Claim.[^1]\n\n[^1]: Source.\n")

	assert.Contains(t, out, `class="footnote-ref"`)
	assert.Contains(t, out, `class="footnote-backref"`)
	assert.Contains(t, out, `role="doc-endnotes"`)
	assert.Contains(t, out, "Source.")
}

func TestRenderSanitizesRawHTML(t *testing.T) {
	src := "Hello <script>alert(1)</script><b onclick=\"steal()\">bold</b>\n\n<iframe src=\"https://evil.test\"></iframe>\n"

	out := render(t, newRenderer(nil), src)

	assert.NotContains(t, out, "<script")
	assert.NotContains(t, out, "onclick")
	assert.NotContains(t, out, "<iframe")
	assert.Contains(t, out, "<b>bold</b>")
}

func TestRenderCodeBlockKeepsLanguageClass(t *testing.T) {
	out := render(t, newRenderer(nil), "```go\nfmt.Println(1)\n```\n")

	assert.Contains(t, out, `class="language-go"`)
}

func TestRenderUsesCache(t *testing.T) {
	mc := cache.NewMemoryCache(cache.MemoryCacheOptions{DefaultTTL: time.Minute})
	defer func() { _ = mc.Close() }()
	r := newRenderer(mc)

	first := render(t, r, "# Cached")
	second := render(t, r, "# Cached")

	assert.Equal(t, first, second)
	stats := mc.Stats()
	assert.Equal(t, int64(1), stats.Sets)
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, 1, stats.Items)
}

func TestRenderCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newRenderer(nil).Render(ctx, "# Hi")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRenderEmpty(t *testing.T) {
	assert.Empty(t, strings.TrimSpace(render(t, newRenderer(nil), "")))
}

func TestWithFootnotesHeading(t *testing.T) {
	out := render(t, newRenderer(nil), "Claim.[^1]\n\n[^1]: Source.\n")

	withHeading := string(WithFootnotesHeading(template.HTML(out), "Notas <al pie>"))
	assert.Contains(t, withHeading, `<h2 id="footnote-label" class="sr-only">Notas &lt;al pie&gt;</h2>`)
	assert.Less(t, strings.Index(withHeading, `class="footnotes"`), strings.Index(withHeading, "footnote-label"))

	plain := template.HTML("<p>No notes.</p>")
	assert.Equal(t, plain, WithFootnotesHeading(plain, "Footnotes"))
	assert.Equal(t, template.HTML(out), WithFootnotesHeading(template.HTML(out), ""))
}
