// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package i18n provides the site locales, locale negotiation and the
// per-locale copy dictionaries.
package i18n

import (
	"strings"

	"golang.org/x/text/language"
)

// Locale is a supported site language code.
type Locale string

// Supported locales.
const (
	English Locale = "en"
	Spanish Locale = "es"
)

// DefaultLocale is the locale used when nothing better is known.
const DefaultLocale = English

// Locales lists the supported locales in display order.
var Locales = []Locale{English, Spanish}

// CookieName is the cookie holding the visitor's language preference.
const CookieName = "lang"

// String implements fmt.Stringer.
func (l Locale) String() string {
	return string(l)
}

// Valid reports whether l is one of the supported locales.
func (l Locale) Valid() bool {
	for _, supported := range Locales {
		if l == supported {
			return true
		}
	}
	return false
}

// IsLocale reports whether s names a supported locale exactly.
func IsLocale(s string) bool {
	return Locale(s).Valid()
}

// ParseLocale maps a language code or tag (e.g. "ES", "es-MX") to a
// supported locale.
func ParseLocale(s string) (Locale, bool) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return "", false
	}
	if l := Locale(s); l.Valid() {
		return l, true
	}

	tag, err := language.Parse(s)
	if err != nil {
		return "", false
	}
	base, _ := tag.Base()
	if l := Locale(base.String()); l.Valid() {
		return l, true
	}
	return "", false
}

// ParseLocaleOr is ParseLocale with a fallback for unknown codes.
func ParseLocaleOr(s string, fallback Locale) Locale {
	if l, ok := ParseLocale(s); ok {
		return l
	}
	return fallback
}

// Negotiate picks the request locale from the preference cookie, then the
// Accept-Language header, then the fallback.
func Negotiate(cookie, acceptLanguage string, fallback Locale) Locale {
	if IsLocale(cookie) {
		return Locale(cookie)
	}
	if l, ok := MatchAcceptLanguage(acceptLanguage); ok {
		return l
	}
	return fallback
}

// MatchAcceptLanguage returns the first supported primary language in the
// header's order of preference.
func MatchAcceptLanguage(header string) (Locale, bool) {
	if strings.TrimSpace(header) == "" {
		return "", false
	}

	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil {
		// Malformed header: take the entries in written order.
		for _, part := range strings.Split(header, ",") {
			code, _, _ := strings.Cut(part, ";")
			if l, ok := ParseLocale(code); ok {
				return l, true
			}
		}
		return "", false
	}

	for _, tag := range tags {
		base, _ := tag.Base()
		if l := Locale(base.String()); l.Valid() {
			return l, true
		}
	}
	return "", false
}
