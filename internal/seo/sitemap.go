// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package seo

import (
	"encoding/xml"
	"net/url"
	"strings"
	"time"
)

// Sitemap XML namespaces.
const (
	XMLNamespace      = "http://www.sitemaps.org/schemas/sitemap/0.9"
	XHTMLNamespace    = "http://www.w3.org/1999/xhtml"
	xDefaultHreflang  = "x-default"
	languageQueryName = "lang"
)

// ChangeFreq represents the change frequency of a URL.
type ChangeFreq string

// Valid change frequency values.
const (
	ChangeFreqDaily   ChangeFreq = "daily"
	ChangeFreqWeekly  ChangeFreq = "weekly"
	ChangeFreqMonthly ChangeFreq = "monthly"
)

// AlternateLink is an xhtml:link pointing at a language version of a URL.
type AlternateLink struct {
	Rel      string `xml:"rel,attr"`
	Hreflang string `xml:"hreflang,attr"`
	Href     string `xml:"href,attr"`
}

// SitemapURL represents a single URL entry in the sitemap.
type SitemapURL struct {
	Loc        string          `xml:"loc"`
	LastMod    string          `xml:"lastmod,omitempty"`
	ChangeFreq ChangeFreq      `xml:"changefreq,omitempty"`
	Priority   string          `xml:"priority,omitempty"`
	Alternates []AlternateLink `xml:"xhtml:link"`
}

// Sitemap represents the complete sitemap document.
type Sitemap struct {
	XMLName    xml.Name     `xml:"urlset"`
	XMLNS      string       `xml:"xmlns,attr"`
	XMLNSXHTML string       `xml:"xmlns:xhtml,attr"`
	URLs       []SitemapURL `xml:"url"`
}

// SitemapPost contains data needed to add a post to the sitemap.
type SitemapPost struct {
	Slug      string
	UpdatedAt time.Time
	Languages []string
}

// SitemapTag contains data needed to add a tag listing to the sitemap.
type SitemapTag struct {
	Slug      string
	UpdatedAt time.Time
}

// SitemapBuilder builds sitemap XML. Every URL carries one alternate per
// site language, addressed with the ?lang= query parameter.
type SitemapBuilder struct {
	siteURL   string
	languages []string
	urls      []SitemapURL
}

// NewSitemapBuilder creates a new sitemap builder.
func NewSitemapBuilder(siteURL string, languages []string) *SitemapBuilder {
	return &SitemapBuilder{
		siteURL:   strings.TrimSuffix(siteURL, "/"),
		languages: languages,
		urls:      make([]SitemapURL, 0),
	}
}

func (b *SitemapBuilder) add(path string, lastMod time.Time, freq ChangeFreq, priority string, languages []string) {
	loc := b.siteURL + path
	u := SitemapURL{
		Loc:        loc,
		ChangeFreq: freq,
		Priority:   priority,
		Alternates: alternates(loc, languages),
	}
	if !lastMod.IsZero() {
		u.LastMod = lastMod.UTC().Format(time.RFC3339)
	}
	b.urls = append(b.urls, u)
}

// AddHomepage adds the homepage to the sitemap.
func (b *SitemapBuilder) AddHomepage(lastMod time.Time) {
	b.add("/", lastMod, ChangeFreqDaily, "1.0", b.languages)
}

// AddBlogIndex adds the blog listing to the sitemap.
func (b *SitemapBuilder) AddBlogIndex(lastMod time.Time) {
	b.add("/blog", lastMod, ChangeFreqDaily, "0.9", b.languages)
}

// AddContact adds the contact page to the sitemap.
func (b *SitemapBuilder) AddContact() {
	b.add("/contact", time.Time{}, ChangeFreqMonthly, "0.5", b.languages)
}

// AddPost adds a post to the sitemap. Alternates list only the languages the
// post is written in.
func (b *SitemapBuilder) AddPost(post SitemapPost) {
	b.add("/blog/"+url.PathEscape(post.Slug), post.UpdatedAt, ChangeFreqWeekly, "0.8", post.Languages)
}

// AddPosts adds multiple posts to the sitemap.
func (b *SitemapBuilder) AddPosts(posts []SitemapPost) {
	for _, p := range posts {
		b.AddPost(p)
	}
}

// AddTag adds a tag listing page to the sitemap.
func (b *SitemapBuilder) AddTag(tag SitemapTag) {
	b.add("/blog/tag/"+url.PathEscape(tag.Slug), tag.UpdatedAt, ChangeFreqWeekly, "0.5", b.languages)
}

// AddTags adds multiple tags to the sitemap.
func (b *SitemapBuilder) AddTags(tags []SitemapTag) {
	for _, t := range tags {
		b.AddTag(t)
	}
}

// Build generates the sitemap XML.
func (b *SitemapBuilder) Build() ([]byte, error) {
	sitemap := Sitemap{
		XMLNS:      XMLNamespace,
		XMLNSXHTML: XHTMLNamespace,
		URLs:       b.urls,
	}

	output := []byte(xml.Header)
	xmlBytes, err := xml.MarshalIndent(sitemap, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(output, xmlBytes...), nil
}

// LanguageURL returns loc with the lang query parameter set.
func LanguageURL(loc, lang string) string {
	u, err := url.Parse(loc)
	if err != nil {
		return loc
	}
	q := u.Query()
	q.Set(languageQueryName, lang)
	u.RawQuery = q.Encode()
	return u.String()
}

func alternates(loc string, languages []string) []AlternateLink {
	if len(languages) == 0 {
		return nil
	}
	links := make([]AlternateLink, 0, len(languages)+1)
	for _, lang := range languages {
		links = append(links, AlternateLink{Rel: "alternate", Hreflang: lang, Href: LanguageURL(loc, lang)})
	}
	return append(links, AlternateLink{Rel: "alternate", Hreflang: xDefaultHreflang, Href: loc})
}

// GenerateSitemap builds a sitemap of the home page, the blog index, the
// contact page, every post and every tag listing.
func GenerateSitemap(siteURL string, languages []string, posts []SitemapPost, tags []SitemapTag) ([]byte, error) {
	var newest time.Time
	for _, p := range posts {
		if p.UpdatedAt.After(newest) {
			newest = p.UpdatedAt
		}
	}

	builder := NewSitemapBuilder(siteURL, languages)
	builder.AddHomepage(newest)
	builder.AddBlogIndex(newest)
	builder.AddContact()
	builder.AddPosts(posts)
	builder.AddTags(tags)
	return builder.Build()
}
