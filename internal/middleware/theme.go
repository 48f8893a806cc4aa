// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"context"
	"net/http"
	"strings"
)

// Theme is a color scheme preference.
type Theme string

// Supported themes.
const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"

	DefaultTheme = ThemeLight
)

// ThemeCookieName is the cookie holding the theme preference.
const ThemeCookieName = "theme"

// ParseTheme returns the theme named by s, if supported.
func ParseTheme(s string) (Theme, bool) {
	switch Theme(strings.ToLower(strings.TrimSpace(s))) {
	case ThemeLight:
		return ThemeLight, true
	case ThemeDark:
		return ThemeDark, true
	default:
		return "", false
	}
}

// Toggle returns the other theme.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// ThemeFromCookie reads the theme cookie into the request context.
// Unknown or missing values resolve to DefaultTheme.
func ThemeFromCookie(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		theme := DefaultTheme
		if c, err := r.Cookie(ThemeCookieName); err == nil {
			if t, ok := ParseTheme(c.Value); ok {
				theme = t
			}
		}
		ctx := context.WithValue(r.Context(), ContextKeyTheme, theme)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetTheme returns the request theme, or DefaultTheme.
func GetTheme(r *http.Request) Theme {
	if t, ok := r.Context().Value(ContextKeyTheme).(Theme); ok {
		return t
	}
	return DefaultTheme
}

// SetThemeCookie stores the theme preference for one year.
func SetThemeCookie(w http.ResponseWriter, theme Theme) {
	setPreferenceCookie(w, ThemeCookieName, string(theme))
}
