// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import (
	"context"
	"html/template"
	"time"

	"github.com/olegiv/localelab/internal/i18n"
)

// Renderer turns an article body into HTML. Implementations must not keep
// state between calls beyond caching.
type Renderer interface {
	Render(ctx context.Context, source string) (template.HTML, error)
}

// Summary is the list view of a resolved post.
type Summary struct {
	Slug               string        `json:"slug"`
	Title              string        `json:"title"`
	Description        string        `json:"description"`
	PublishedAt        time.Time     `json:"publishedAt"`
	UpdatedAt          *time.Time    `json:"updatedAt,omitempty"`
	AvailableLanguages []i18n.Locale `json:"availableLanguages"`
	ActiveLanguage     i18n.Locale   `json:"activeLanguage"`
	IsFallback         bool          `json:"isFallback"`
	Tags               []string      `json:"tags"`
	HeroImage          string        `json:"heroImage,omitempty"`
	HeroImageAlt       string        `json:"heroImageAlt,omitempty"`
}

// Detail is a summary plus the rendered article body.
type Detail struct {
	Summary
	Content template.HTML `json:"content"`
}

// ToSummary projects a resolved view. The slug is the group's canonical slug,
// which may differ from the chosen entry's own slug.
func ToSummary(v ResolvedView) Summary {
	e := v.Entry
	return Summary{
		Slug:               v.Group.CanonicalSlug,
		Title:              e.Title,
		Description:        e.Description,
		PublishedAt:        e.PublishedAt,
		UpdatedAt:          e.UpdatedAt,
		AvailableLanguages: v.AvailableLanguages,
		ActiveLanguage:     v.LanguageUsed,
		IsFallback:         v.IsFallback,
		Tags:               e.Tags,
		HeroImage:          e.HeroImage,
		HeroImageAlt:       e.HeroImageAlt,
	}
}

// ToDetail projects a resolved view and renders its body. Renderer failures
// are returned as *RenderError.
func ToDetail(ctx context.Context, v ResolvedView, r Renderer) (Detail, error) {
	summary := ToSummary(v)
	html, err := r.Render(ctx, v.Entry.Body)
	if err != nil {
		return Detail{}, &RenderError{Slug: summary.Slug, Language: v.LanguageUsed, Err: err}
	}
	return Detail{Summary: summary, Content: html}, nil
}
