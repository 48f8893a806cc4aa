// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package middleware provides HTTP middleware for locale and theme
// negotiation, security headers, CSRF protection and rate limiting.
package middleware

import (
	"context"
	"net/http"
	"sync/atomic"

	"github.com/olegiv/localelab/internal/i18n"
	"github.com/olegiv/localelab/internal/logging"
)

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

// Context keys set by this package.
const (
	ContextKeyLocale ContextKey = "locale"
	ContextKeyTheme  ContextKey = "theme"
)

// preferenceCookieMaxAge is the lifetime of language and theme cookies.
const preferenceCookieMaxAge = 365 * 24 * 60 * 60

var secureCookies atomic.Bool

// InitCookies marks preference cookies Secure outside development.
func InitCookies(isDev bool) {
	secureCookies.Store(!isDev)
}

// Language creates middleware that negotiates the request locale.
// Priority order:
//  1. Query parameter ?lang=xx (explicit switch, also updates the cookie)
//  2. The lang cookie
//  3. The Accept-Language header
//  4. fallback
func Language(fallback i18n.Locale) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			locale, fromQuery := negotiate(r, fallback)
			if fromQuery {
				SetLanguageCookie(w, locale)
			}

			ctx := context.WithValue(r.Context(), ContextKeyLocale, locale)
			ctx = logging.WithLocale(ctx, locale.String())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func negotiate(r *http.Request, fallback i18n.Locale) (i18n.Locale, bool) {
	if q := r.URL.Query().Get("lang"); q != "" {
		if l, ok := i18n.ParseLocale(q); ok {
			return l, true
		}
	}

	var cookie string
	if c, err := r.Cookie(i18n.CookieName); err == nil {
		cookie = c.Value
	}
	return i18n.Negotiate(cookie, r.Header.Get("Accept-Language"), fallback), false
}

// GetLocale returns the request locale set by Language, or the default
// locale when the middleware did not run.
func GetLocale(r *http.Request) i18n.Locale {
	if l, ok := r.Context().Value(ContextKeyLocale).(i18n.Locale); ok {
		return l
	}
	return i18n.DefaultLocale
}

// SetLanguageCookie stores the language preference for one year.
func SetLanguageCookie(w http.ResponseWriter, locale i18n.Locale) {
	setPreferenceCookie(w, i18n.CookieName, locale.String())
}

func setPreferenceCookie(w http.ResponseWriter, name, value string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   preferenceCookieMaxAge,
		HttpOnly: true,
		Secure:   secureCookies.Load(),
		SameSite: http.SameSiteLaxMode,
	})
}
