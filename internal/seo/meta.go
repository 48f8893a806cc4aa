// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package seo builds meta tags, structured data, sitemaps and robots.txt.
package seo

import (
	"encoding/json"
	"html/template"
	"strings"
	"time"
)

// Meta holds all SEO meta tag data for a page.
type Meta struct {
	Title         string
	Description   string
	Canonical     string
	OGTitle       string
	OGDescription string
	OGImage       string
	OGImageAlt    string
	OGType        string // website or article
	OGSiteName    string
	OGURL         string
	OGLocale      string
	Robots        string
	TwitterCard   string
	Alternates    []AlternateLink
}

// PageData contains page information for building meta tags.
type PageData struct {
	Title       string
	Description string
	Body        string // HTML body, used when Description is empty
	Path        string // site-relative path, e.g. /blog/hello
	Locale      string
	Languages   []string // languages the page is available in
	Image       string
	ImageAlt    string
	PublishedAt *time.Time
	ModifiedAt  *time.Time
	IsArticle   bool
	NoIndex     bool
}

// SiteConfig contains site-wide settings for SEO.
type SiteConfig struct {
	SiteName        string
	SiteURL         string
	SiteDescription string
	DefaultOGImage  string
}

var ogLocales = map[string]string{
	"en": "en_US",
	"es": "es_ES",
}

// BuildMeta creates a Meta struct from page and site data with proper fallbacks.
// A nil page yields the homepage defaults.
func BuildMeta(page *PageData, site *SiteConfig) *Meta {
	siteURL := strings.TrimSuffix(site.SiteURL, "/")
	meta := &Meta{
		OGType:      "website",
		TwitterCard: "summary_large_image",
		OGSiteName:  site.SiteName,
	}

	if page == nil {
		meta.Title = site.SiteName
		meta.OGTitle = site.SiteName
		meta.Description = site.SiteDescription
		meta.OGDescription = site.SiteDescription
		meta.Canonical = siteURL + "/"
		meta.OGURL = meta.Canonical
		meta.Robots = "index,follow"
		meta.OGImage = makeAbsoluteURL(site.DefaultOGImage, siteURL)
		return meta
	}

	if page.IsArticle {
		meta.OGType = "article"
	}

	meta.Title = page.Title
	meta.OGTitle = page.Title
	if meta.Title == "" {
		meta.Title = site.SiteName
		meta.OGTitle = site.SiteName
	}

	switch {
	case page.Description != "":
		meta.Description = page.Description
	case page.Body != "":
		meta.Description = truncateText(stripHTML(page.Body), 160)
	default:
		meta.Description = site.SiteDescription
	}
	meta.OGDescription = meta.Description

	if page.Image != "" {
		meta.OGImage = makeAbsoluteURL(page.Image, siteURL)
		meta.OGImageAlt = page.ImageAlt
	} else {
		meta.OGImage = makeAbsoluteURL(site.DefaultOGImage, siteURL)
	}

	path := page.Path
	if path == "" {
		path = "/"
	}
	meta.Canonical = siteURL + path
	meta.OGURL = meta.Canonical
	meta.OGLocale = ogLocales[page.Locale]
	meta.Alternates = alternates(meta.Canonical, page.Languages)
	meta.Robots = buildRobotsDirective(page.NoIndex, false)

	return meta
}

// buildRobotsDirective creates the robots meta content from noindex/nofollow flags.
func buildRobotsDirective(noIndex, noFollow bool) string {
	parts := []string{"index", "follow"}
	if noIndex {
		parts[0] = "noindex"
	}
	if noFollow {
		parts[1] = "nofollow"
	}
	return strings.Join(parts, ",")
}

// ArticleSchema represents JSON-LD Article structured data.
type ArticleSchema struct {
	Context          string     `json:"@context"`
	Type             string     `json:"@type"`
	Headline         string     `json:"headline"`
	Description      string     `json:"description,omitempty"`
	Image            string     `json:"image,omitempty"`
	InLanguage       string     `json:"inLanguage,omitempty"`
	DatePublished    string     `json:"datePublished,omitempty"`
	DateModified     string     `json:"dateModified,omitempty"`
	Keywords         string     `json:"keywords,omitempty"`
	Publisher        *OrgSchema `json:"publisher,omitempty"`
	MainEntityOfPage string     `json:"mainEntityOfPage,omitempty"`
}

// OrgSchema represents JSON-LD Organization structured data.
type OrgSchema struct {
	Type string `json:"@type"`
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
}

// WebSiteSchema represents JSON-LD WebSite structured data for homepage.
type WebSiteSchema struct {
	Context     string   `json:"@context"`
	Type        string   `json:"@type"`
	Name        string   `json:"name"`
	URL         string   `json:"url"`
	Description string   `json:"description,omitempty"`
	InLanguage  []string `json:"inLanguage,omitempty"`
}

// BuildArticleSchema creates JSON-LD Article structured data for a post.
func BuildArticleSchema(page *PageData, site *SiteConfig, keywords []string) template.JS {
	if page == nil {
		return ""
	}
	siteURL := strings.TrimSuffix(site.SiteURL, "/")

	article := ArticleSchema{
		Context:          "https://schema.org",
		Type:             "BlogPosting",
		Headline:         page.Title,
		Description:      page.Description,
		Image:            makeAbsoluteURL(page.Image, siteURL),
		InLanguage:       page.Locale,
		Keywords:         strings.Join(keywords, ", "),
		MainEntityOfPage: siteURL + page.Path,
		Publisher: &OrgSchema{
			Type: "Organization",
			Name: site.SiteName,
			URL:  siteURL,
		},
	}
	if page.PublishedAt != nil {
		article.DatePublished = page.PublishedAt.UTC().Format(time.RFC3339)
	}
	if page.ModifiedAt != nil {
		article.DateModified = page.ModifiedAt.UTC().Format(time.RFC3339)
	}

	return marshalJSONLD(article)
}

// BuildWebSiteSchema creates JSON-LD WebSite structured data.
func BuildWebSiteSchema(site *SiteConfig, languages []string) template.JS {
	return marshalJSONLD(WebSiteSchema{
		Context:     "https://schema.org",
		Type:        "WebSite",
		Name:        site.SiteName,
		URL:         strings.TrimSuffix(site.SiteURL, "/") + "/",
		Description: site.SiteDescription,
		InLanguage:  languages,
	})
}

// marshalJSONLD marshals structured data to JSON-LD script tag content.
// json.Marshal escapes <, > and & so the output cannot close the script tag.
func marshalJSONLD(v any) template.JS {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return ""
	}
	//nolint:gosec // G203: JSON encoding escapes HTML-significant characters
	return template.JS(data)
}

// stripHTML removes HTML tags from a string.
func stripHTML(html string) string {
	var result strings.Builder
	inTag := false
	for _, r := range html {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
			result.WriteRune(' ')
		case !inTag:
			result.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(result.String()), " ")
}

// truncateText truncates text to maxLen runes at a word boundary.
func truncateText(text string, maxLen int) string {
	text = strings.TrimSpace(text)
	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}

	truncated := string(runes[:maxLen])
	if lastSpace := strings.LastIndex(truncated, " "); lastSpace > len(truncated)/2 {
		truncated = truncated[:lastSpace]
	}
	return strings.TrimSpace(truncated) + "..."
}

// makeAbsoluteURL ensures a URL is absolute by prepending site URL if needed.
func makeAbsoluteURL(u, siteURL string) string {
	if u == "" {
		return ""
	}
	if strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://") {
		return u
	}
	siteURL = strings.TrimSuffix(siteURL, "/")
	if !strings.HasPrefix(u, "/") {
		u = "/" + u
	}
	return siteURL + u
}
