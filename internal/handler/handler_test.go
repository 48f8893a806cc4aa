// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"errors"
	"html/template"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"

	"github.com/olegiv/localelab/internal/cache"
	"github.com/olegiv/localelab/internal/contact"
	"github.com/olegiv/localelab/internal/content"
	"github.com/olegiv/localelab/internal/i18n"
	"github.com/olegiv/localelab/internal/markdown"
	"github.com/olegiv/localelab/internal/middleware"
	"github.com/olegiv/localelab/internal/render"
	"github.com/olegiv/localelab/internal/seo"
	"github.com/olegiv/localelab/internal/version"
	"github.com/olegiv/localelab/web"
)

const testSiteURL = "https://example.com"

func testContentFS() fstest.MapFS {
	return fstest.MapFS{
		"en/hello.md": {Data: []byte(`---
title: "Hello world"
description: "A greeting in two languages."
slug: hello
translationKey: hello
language: en
publishedAt: 2024-02-01
tags:
  - Go
  - Product Ops
---

Hello readers.[^1]

[^1]: A footnote.
`)},
		"es/hola.md": {Data: []byte(`---
title: "Hola mundo"
description: "Un saludo en dos idiomas."
slug: hola
translationKey: hello
language: es
publishedAt: 2024-02-02
updatedAt: 2024-03-05
tags:
  - Go
---

Hola lectores.
`)},
		"en/only-en.md": {Data: []byte(`---
title: "English only"
description: "This post has no translation."
slug: only-en
language: en
publishedAt: 2023-06-01
tags:
  - Research
---

Only in English.
`)},
	}
}

// stubSubmitter records submissions and returns err.
type stubSubmitter struct {
	mu    sync.Mutex
	forms []contact.Form
	err   error
}

func (s *stubSubmitter) Submit(_ context.Context, f contact.Form) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.forms = append(s.forms, f)
	return "ref-1", s.err
}

func (s *stubSubmitter) submitted() []contact.Form {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]contact.Form(nil), s.forms...)
}

// failingRenderer fails every body render.
type failingRenderer struct{}

func (failingRenderer) Render(context.Context, string) (template.HTML, error) {
	return "", errors.New("boom")
}

type testEnv struct {
	router    http.Handler
	loader    *content.Loader
	submitter *stubSubmitter
	cache     cache.Cache
}

type envOption func(*envConfig)

type envConfig struct {
	files    fstest.MapFS
	renderer content.Renderer
	limiter  *middleware.RateLimiter
}

func withFiles(files fstest.MapFS) envOption {
	return func(c *envConfig) { c.files = files }
}

func withBodyRenderer(r content.Renderer) envOption {
	return func(c *envConfig) { c.renderer = r }
}

func withLimiter(l *middleware.RateLimiter) envOption {
	return func(c *envConfig) { c.limiter = l }
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestEnv(t *testing.T, opts ...envOption) *testEnv {
	t.Helper()

	mc := cache.NewMemoryCache(cache.MemoryCacheOptions{})
	t.Cleanup(func() { _ = mc.Close() })

	cfg := envConfig{files: testContentFS()}
	for _, o := range opts {
		o(&cfg)
	}
	if cfg.renderer == nil {
		cfg.renderer = markdown.New(markdown.Options{Cache: mc, Logger: discardLogger()})
	}

	logger := discardLogger()
	catalog, err := i18n.NewCatalog(i18n.English)
	require.NoError(t, err)

	templates, err := fs.Sub(web.Templates, "templates")
	require.NoError(t, err)
	renderer, err := render.New(render.Config{
		TemplatesFS: templates,
		Catalog:     catalog,
		Site: seo.SiteConfig{
			SiteName:        "Locale Lab",
			SiteURL:         testSiteURL,
			SiteDescription: "Bilingual field notes.",
		},
	})
	require.NoError(t, err)

	static, err := fs.Sub(web.Static, "static")
	require.NoError(t, err)

	loader := content.NewLoader(cfg.files, content.LoaderOptions{Logger: logger})
	posts := content.NewService(loader, cfg.renderer, i18n.English)
	submitter := &stubSubmitter{}

	router := NewRouter(RouterOptions{
		Blog:     NewBlogHandler(posts, catalog, renderer, logger),
		Contact:  NewContactHandler(catalog, renderer, submitter, cfg.limiter, logger),
		Health:   NewHealthHandler(loader, mc, version.Info{Version: "test"}),
		SEO:      NewSEOHandler(posts, testSiteURL, false, logger),
		Static:   static,
		Fallback: i18n.English,
		CSRF:     middleware.DefaultCSRFConfig([]byte(strings.Repeat("k", 32)), testSiteURL, false),
		Security: middleware.DefaultSecurityHeadersConfig(false),
		Logger:   logger,
	})

	return &testEnv{router: router, loader: loader, submitter: submitter, cache: mc}
}

// do serves a request through the router.
func (e *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func newGet(target string) *http.Request {
	return httptest.NewRequest(http.MethodGet, target, nil)
}

func (e *testEnv) get(target string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := newGet(target)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return e.do(req)
}

func findCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}
