// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/localelab/internal/content"
	"github.com/olegiv/localelab/internal/i18n"
	"github.com/olegiv/localelab/internal/markdown"
	"github.com/olegiv/localelab/internal/middleware"
	"github.com/olegiv/localelab/internal/render"
	"github.com/olegiv/localelab/internal/seo"
	"github.com/olegiv/localelab/internal/util"
)

// homeLatestPosts is the number of posts on the landing page.
const homeLatestPosts = 3

// homePage is the data of the home template.
type homePage struct {
	Posts []content.Summary
}

// blogPage is the data of the blog template. Tag is empty on the full listing.
type blogPage struct {
	Posts []content.Summary
	Tag   string
}

// postPage is the data of the post template.
type postPage struct {
	Post    content.Detail
	Content template.HTML
}

// BlogHandler serves the landing page, the blog listings and posts.
type BlogHandler struct {
	posts    *content.Service
	catalog  *i18n.Catalog
	renderer *render.Renderer
	logger   *slog.Logger
}

// NewBlogHandler creates a new blog handler.
func NewBlogHandler(posts *content.Service, catalog *i18n.Catalog, renderer *render.Renderer, logger *slog.Logger) *BlogHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &BlogHandler{
		posts:    posts,
		catalog:  catalog,
		renderer: renderer,
		logger:   logger,
	}
}

// Home handles GET / requests.
func (h *BlogHandler) Home(w http.ResponseWriter, r *http.Request) {
	locale := middleware.GetLocale(r)
	summaries, err := h.posts.Summaries(r.Context(), locale)
	if err != nil {
		renderServerError(w, r, h.renderer, h.catalog, "failed to load posts", err)
		return
	}
	if len(summaries) > homeLatestPosts {
		summaries = summaries[:homeLatestPosts]
	}

	dict := h.catalog.Dictionary(locale)
	site := h.renderer.Site()
	page(w, r, h.renderer, http.StatusOK, "home", render.TemplateData{
		Description:    dict.Home.HeroBody,
		StructuredData: seo.BuildWebSiteSchema(&site, render.Languages()),
		Data:           homePage{Posts: summaries},
	})
}

// Blog handles GET /blog requests.
func (h *BlogHandler) Blog(w http.ResponseWriter, r *http.Request) {
	locale := middleware.GetLocale(r)
	summaries, err := h.posts.Summaries(r.Context(), locale)
	if err != nil {
		renderServerError(w, r, h.renderer, h.catalog, "failed to load posts", err)
		return
	}

	dict := h.catalog.Dictionary(locale)
	page(w, r, h.renderer, http.StatusOK, "blog", render.TemplateData{
		Title:       dict.Blog.Title,
		Description: dict.Blog.Description,
		Data:        blogPage{Posts: summaries},
	})
}

// Tag handles GET /blog/tag/{tag} requests.
func (h *BlogHandler) Tag(w http.ResponseWriter, r *http.Request) {
	tag := chi.URLParam(r, "tag")
	if !util.IsValidSlug(tag) {
		renderNotFound(w, r, h.renderer, h.catalog)
		return
	}

	locale := middleware.GetLocale(r)
	summaries, err := h.posts.SummariesByTag(r.Context(), locale, tag)
	if err != nil {
		renderServerError(w, r, h.renderer, h.catalog, "failed to load posts", err)
		return
	}

	name := tagName(summaries, tag)
	dict := h.catalog.Dictionary(locale)
	page(w, r, h.renderer, http.StatusOK, "blog", render.TemplateData{
		Title:       dict.Blog.TagTitle + ": " + name,
		Description: dict.Blog.Description,
		NoIndex:     len(summaries) == 0,
		Data:        blogPage{Posts: summaries, Tag: name},
	})
}

// tagName returns the display form of a tag slug as written in the posts.
func tagName(summaries []content.Summary, slug string) string {
	for _, s := range summaries {
		for _, t := range s.Tags {
			if util.Slugify(t) == slug {
				return t
			}
		}
	}
	return slug
}

// Post handles GET /blog/{slug} requests.
func (h *BlogHandler) Post(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	locale := middleware.GetLocale(r)

	post, err := h.posts.Post(r.Context(), slug, locale)
	if err != nil {
		if errors.Is(err, content.ErrNotFound) {
			renderNotFound(w, r, h.renderer, h.catalog)
			return
		}
		renderServerError(w, r, h.renderer, h.catalog, "failed to load post", err)
		return
	}

	dict := h.catalog.Dictionary(locale)
	site := h.renderer.Site()
	meta := postMetaData(post, r.URL.Path)

	page(w, r, h.renderer, http.StatusOK, "post", render.TemplateData{
		Title:          post.Title,
		Description:    post.Description,
		Meta:           seo.BuildMeta(meta, &site),
		StructuredData: seo.BuildArticleSchema(meta, &site, post.Tags),
		Data: postPage{
			Post:    post,
			Content: markdown.WithFootnotesHeading(post.Content, dict.Footnotes.Heading),
		},
	})
}

// postMetaData describes a post for meta tags and structured data. The page
// language is the one actually displayed, not the one requested.
func postMetaData(post content.Detail, path string) *seo.PageData {
	languages := make([]string, len(post.AvailableLanguages))
	for i, l := range post.AvailableLanguages {
		languages[i] = l.String()
	}
	published := post.PublishedAt
	return &seo.PageData{
		Title:       post.Title,
		Description: post.Description,
		Body:        string(post.Content),
		Path:        path,
		Locale:      post.ActiveLanguage.String(),
		Languages:   languages,
		Image:       post.HeroImage,
		ImageAlt:    post.HeroImageAlt,
		PublishedAt: &published,
		ModifiedAt:  post.UpdatedAt,
		IsArticle:   true,
	}
}

// NotFound renders the localized 404 page for unmatched routes.
func (h *BlogHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	renderNotFound(w, r, h.renderer, h.catalog)
}

// Posts handles GET /api/posts requests. The ?lang= parameter selects the
// locale; the negotiated locale is used otherwise.
func (h *BlogHandler) Posts(w http.ResponseWriter, r *http.Request) {
	locale := middleware.GetLocale(r)
	summaries, err := h.posts.Summaries(r.Context(), locale)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to load posts", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"locale": locale,
		"posts":  summaries,
	})
}

// PostJSON handles GET /api/posts/{slug} requests.
func (h *BlogHandler) PostJSON(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	post, err := h.posts.Post(r.Context(), slug, middleware.GetLocale(r))
	if err != nil {
		if errors.Is(err, content.ErrNotFound) {
			writeJSONError(w, http.StatusNotFound, "Post not found")
			return
		}
		h.logger.ErrorContext(r.Context(), "failed to load post", "slug", slug, "error", err)
		writeJSONError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	writeJSON(w, http.StatusOK, post)
}
