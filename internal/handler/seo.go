// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/olegiv/localelab/internal/content"
	"github.com/olegiv/localelab/internal/render"
	"github.com/olegiv/localelab/internal/seo"
	"github.com/olegiv/localelab/internal/util"
)

// SEOHandler serves sitemap.xml and robots.txt.
type SEOHandler struct {
	posts       *content.Service
	siteURL     string
	disallowAll bool
	logger      *slog.Logger
}

// NewSEOHandler creates a new SEO handler. disallowAll blocks every crawler,
// which suits non-production deployments.
func NewSEOHandler(posts *content.Service, siteURL string, disallowAll bool, logger *slog.Logger) *SEOHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &SEOHandler{posts: posts, siteURL: siteURL, disallowAll: disallowAll, logger: logger}
}

// Sitemap handles GET /sitemap.xml requests.
func (h *SEOHandler) Sitemap(w http.ResponseWriter, r *http.Request) {
	groups, err := h.posts.Groups(r.Context())
	if err != nil {
		logAndInternalError(w, r, "failed to load posts for sitemap", "error", err)
		return
	}

	posts, tags := sitemapEntries(groups)
	data, err := seo.GenerateSitemap(h.siteURL, render.Languages(), posts, tags)
	if err != nil {
		logAndInternalError(w, r, "failed to build sitemap", "error", err)
		return
	}

	w.Header().Set("Content-Type", contentTypeXML)
	if _, err := w.Write(data); err != nil {
		h.logger.WarnContext(r.Context(), "writing sitemap", "error", err)
	}
}

// sitemapEntries returns one entry per post group and one per tag slug.
// A tag's lastmod is the newest post carrying it.
func sitemapEntries(groups []content.Group) ([]seo.SitemapPost, []seo.SitemapTag) {
	posts := make([]seo.SitemapPost, 0, len(groups))
	tagDates := make(map[string]time.Time)

	for i := range groups {
		g := &groups[i]
		langs := g.Languages()
		languages := make([]string, len(langs))
		for j, l := range langs {
			languages[j] = l.String()
		}
		modified := g.LastModified()
		posts = append(posts, seo.SitemapPost{
			Slug:      g.CanonicalSlug,
			UpdatedAt: modified,
			Languages: languages,
		})

		for _, e := range g.Entries {
			for _, t := range e.Tags {
				slug := util.Slugify(t)
				if slug == "" {
					continue
				}
				if modified.After(tagDates[slug]) {
					tagDates[slug] = modified
				}
			}
		}
	}

	tags := make([]seo.SitemapTag, 0, len(tagDates))
	for slug, updated := range tagDates {
		tags = append(tags, seo.SitemapTag{Slug: slug, UpdatedAt: updated})
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i].Slug < tags[j].Slug })
	return posts, tags
}

// Robots handles GET /robots.txt requests.
func (h *SEOHandler) Robots(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", contentTypeText)
	if _, err := w.Write([]byte(seo.GenerateRobots(h.siteURL, h.disallowAll))); err != nil {
		h.logger.WarnContext(r.Context(), "writing robots.txt", "error", err)
	}
}
