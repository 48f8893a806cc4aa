// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

// Route pattern constants for chi router registration.
const (
	// RouteRoot is the root path.
	RouteRoot = "/"
	// RouteBlog is the blog listing route.
	RouteBlog = "/blog"
	// RouteBlogTag lists posts with a tag.
	RouteBlogTag = "/blog/tag/{tag}"
	// RouteBlogPost is a single post.
	RouteBlogPost = "/blog/{slug}"
	// RouteContact is the contact page.
	RouteContact = "/contact"

	// RoutePreferencesLanguage sets the language cookie.
	RoutePreferencesLanguage = "/preferences/language"
	// RoutePreferencesTheme sets the theme cookie.
	RoutePreferencesTheme = "/preferences/theme"

	// RouteAPIPosts lists post summaries as JSON.
	RouteAPIPosts = "/api/posts"
	// RouteAPIPost returns a single post as JSON.
	RouteAPIPost = "/api/posts/{slug}"
	// RouteAPIContact accepts JSON contact submissions.
	RouteAPIContact = "/api/contact"

	// RouteHealth is the health check.
	RouteHealth = "/health"
	// RouteSitemap is the XML sitemap.
	RouteSitemap = "/sitemap.xml"
	// RouteRobots is robots.txt.
	RouteRobots = "/robots.txt"
	// RouteStatic serves embedded assets.
	RouteStatic = "/static/*"
)

// Content types.
const (
	contentTypeJSON = "application/json"
	contentTypeXML  = "application/xml; charset=utf-8"
	contentTypeText = "text/plain; charset=utf-8"
)

// maxJSONBody bounds JSON request bodies.
const maxJSONBody = 64 << 10
