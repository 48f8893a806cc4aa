// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package handler provides the HTTP handlers and router of the site.
package handler

import (
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/olegiv/localelab/internal/i18n"
	"github.com/olegiv/localelab/internal/middleware"
)

// staticMaxAge is the Cache-Control max-age of embedded assets, one year.
const staticMaxAge = 31536000

// RouterOptions wires handlers and middleware into a router.
type RouterOptions struct {
	Blog    *BlogHandler
	Contact *ContactHandler
	Health  *HealthHandler
	SEO     *SEOHandler

	// Static serves /static/*; nil disables asset routes.
	Static fs.FS

	Fallback       i18n.Locale
	CSRF           middleware.CSRFConfig
	Security       middleware.SecurityHeadersConfig
	RequestTimeout time.Duration
	IsDev          bool
	Logger         *slog.Logger
}

// NewRouter builds the site's chi router.
func NewRouter(opts RouterOptions) http.Handler {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 30 * time.Second
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(opts.Logger))
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.GetHead)
	r.Use(middleware.Timeout(opts.RequestTimeout))
	r.Use(middleware.StripTrailingSlash)
	r.Use(middleware.SecurityHeaders(opts.Security))

	// Machine endpoints: no locale negotiation, no CSRF.
	r.Get(RouteHealth, opts.Health.Health)
	r.Get(RouteSitemap, opts.SEO.Sitemap)
	r.Get(RouteRobots, opts.SEO.Robots)

	if opts.Static != nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(opts.Static)))
		r.Handle(RouteStatic, middleware.StaticCache(staticMaxAge, opts.IsDev)(static))
	}

	r.Group(func(r chi.Router) {
		r.Use(middleware.Language(opts.Fallback))
		r.Use(middleware.ThemeFromCookie)
		r.Use(middleware.CSRF(opts.CSRF))

		r.Get(RouteRoot, opts.Blog.Home)
		r.Get(RouteBlog, opts.Blog.Blog)
		r.Get(RouteBlogTag, opts.Blog.Tag)
		r.Get(RouteBlogPost, opts.Blog.Post)

		r.Get(RouteContact, opts.Contact.Page)
		r.Post(RouteContact, opts.Contact.Submit)

		r.Post(RoutePreferencesLanguage, SetLanguage)
		r.Post(RoutePreferencesTheme, SetTheme)

		r.Get(RouteAPIPosts, opts.Blog.Posts)
		r.Get(RouteAPIPost, opts.Blog.PostJSON)
		r.Post(RouteAPIContact, opts.Contact.API)

		r.NotFound(opts.Blog.NotFound)
	})

	return r
}
