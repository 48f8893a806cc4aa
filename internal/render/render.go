// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package render executes the site's HTML templates.
package render

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/olegiv/localelab/internal/content"
	"github.com/olegiv/localelab/internal/i18n"
	"github.com/olegiv/localelab/internal/middleware"
	"github.com/olegiv/localelab/internal/seo"
	"github.com/olegiv/localelab/internal/util"
)

// DefaultSiteName is used when Config.Site has no name.
const DefaultSiteName = "Locale Lab"

const (
	baseLayout  = "layouts/base.html"
	partialsDir = "partials"
	pagesDir    = "pages"
)

// Renderer handles template rendering with caching.
type Renderer struct {
	templates map[string]*template.Template
	catalog   *i18n.Catalog
	site      seo.SiteConfig
	isDev     bool
}

// Config holds renderer configuration.
type Config struct {
	TemplatesFS fs.FS
	Catalog     *i18n.Catalog
	Site        seo.SiteConfig
	IsDev       bool
}

// New creates a new Renderer with parsed templates.
func New(cfg Config) (*Renderer, error) {
	if cfg.Catalog == nil {
		return nil, fmt.Errorf("render: catalog is required")
	}
	if cfg.Site.SiteName == "" {
		cfg.Site.SiteName = DefaultSiteName
	}

	r := &Renderer{
		templates: make(map[string]*template.Template),
		catalog:   cfg.Catalog,
		site:      cfg.Site,
		isDev:     cfg.IsDev,
	}
	if err := r.parseTemplates(cfg.TemplatesFS); err != nil {
		return nil, err
	}
	return r, nil
}

// parseTemplates parses every page under pages/ together with the base
// layout and all partials.
func (r *Renderer) parseTemplates(templatesFS fs.FS) error {
	partials, err := templateFiles(templatesFS, partialsDir)
	if err != nil {
		return fmt.Errorf("getting partials: %w", err)
	}
	pages, err := templateFiles(templatesFS, pagesDir)
	if err != nil {
		return fmt.Errorf("getting pages: %w", err)
	}
	if len(pages) == 0 {
		return fmt.Errorf("no page templates in %s/", pagesDir)
	}

	for _, page := range pages {
		name := strings.TrimSuffix(path.Base(page), ".html")

		files := []string{baseLayout}
		files = append(files, partials...)
		files = append(files, page)

		tmpl, err := template.New("").Funcs(r.templateFuncs()).ParseFS(templatesFS, files...)
		if err != nil {
			return fmt.Errorf("parsing template %s: %w", name, err)
		}
		r.templates[name] = tmpl
	}
	return nil
}

// templateFiles returns all .html files in a directory. A missing directory
// yields no files.
func templateFiles(templatesFS fs.FS, dir string) ([]string, error) {
	entries, err := fs.ReadDir(templatesFS, dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".html") {
			files = append(files, path.Join(dir, entry.Name()))
		}
	}
	return files, nil
}

// Has reports whether a page template exists.
func (r *Renderer) Has(name string) bool {
	_, ok := r.templates[name]
	return ok
}

// templateFuncs returns custom template functions.
func (r *Renderer) templateFuncs() template.FuncMap {
	return template.FuncMap{
		"formatDate": func(t time.Time, l i18n.Locale) string {
			return r.catalog.FormatDate(t, l)
		},
		"isoDate": func(t time.Time) string {
			return t.Format("2006-01-02")
		},
		"deref": func(t *time.Time) time.Time {
			if t == nil {
				return time.Time{}
			}
			return *t
		},
		"languageName": func(l, target i18n.Locale) string {
			return r.catalog.LanguageName(l, target)
		},
		"fallbackNotice": func(d *i18n.Dictionary, l i18n.Locale) string {
			return d.FallbackNotice(d.LanguageName(l))
		},
		"fallbackBadge": func(d *i18n.Dictionary, l i18n.Locale) string {
			return d.FallbackBadge(d.LanguageName(l))
		},
		"tagSlug": util.Slugify,
		"upper":   strings.ToUpper,
		"locales": func() []i18n.Locale {
			return i18n.Locales
		},
		"card": func(d TemplateData, post content.Summary) Card {
			return Card{Post: post, Dict: d.Dict, Locale: d.Locale}
		},
	}
}

// Card is the data of the post_card partial.
type Card struct {
	Post   content.Summary
	Dict   *i18n.Dictionary
	Locale i18n.Locale
}

// TemplateData holds data passed to templates. Request-derived fields are
// filled in by Render; Meta is built from Title and Description when nil.
type TemplateData struct {
	Title          string
	Description    string
	NoIndex        bool
	Meta           *seo.Meta
	StructuredData template.JS
	Data           any

	SiteName    string
	Path        string
	Locale      i18n.Locale
	Theme       middleware.Theme
	Dict        *i18n.Dictionary
	CurrentYear int
	IsDev       bool
}

// Site returns the SEO site settings.
func (r *Renderer) Site() seo.SiteConfig {
	return r.site
}

// Languages returns the supported locales as strings.
func Languages() []string {
	out := make([]string, len(i18n.Locales))
	for i, l := range i18n.Locales {
		out[i] = l.String()
	}
	return out
}

// Render renders a page template with the given status code.
func (r *Renderer) Render(w http.ResponseWriter, req *http.Request, status int, name string, data TemplateData) error {
	tmpl, ok := r.templates[name]
	if !ok {
		return fmt.Errorf("template %s not found", name)
	}

	data.Locale = middleware.GetLocale(req)
	data.Theme = middleware.GetTheme(req)
	data.Dict = r.catalog.Dictionary(data.Locale)
	data.SiteName = r.site.SiteName
	data.Path = req.URL.Path
	data.CurrentYear = time.Now().Year()
	data.IsDev = r.isDev
	if data.Meta == nil {
		data.Meta = seo.BuildMeta(&seo.PageData{
			Title:       data.Title,
			Description: data.Description,
			Path:        data.Path,
			Locale:      data.Locale.String(),
			Languages:   Languages(),
			NoIndex:     data.NoIndex || status >= http.StatusBadRequest,
		}, &r.site)
	}

	// Render to buffer first to catch errors.
	buf := new(bytes.Buffer)
	if err := tmpl.ExecuteTemplate(buf, "base", data); err != nil {
		return fmt.Errorf("executing template %s: %w", name, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Language", data.Locale.String())
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		slog.WarnContext(req.Context(), "writing response", "template", name, "error", err)
	}
	return nil
}
