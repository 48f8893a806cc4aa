// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/olegiv/localelab/internal/i18n"
	"github.com/olegiv/localelab/internal/middleware"
	"github.com/olegiv/localelab/internal/util"
)

// SetLanguage handles POST /preferences/language. An unsupported value
// leaves the cookie untouched.
func SetLanguage(w http.ResponseWriter, r *http.Request) {
	if locale, ok := i18n.ParseLocale(r.PostFormValue("lang")); ok {
		middleware.SetLanguageCookie(w, locale)
	}
	redirectBack(w, r)
}

// SetTheme handles POST /preferences/theme. An unsupported value leaves the
// cookie untouched.
func SetTheme(w http.ResponseWriter, r *http.Request) {
	if theme, ok := middleware.ParseTheme(r.PostFormValue("theme")); ok {
		middleware.SetThemeCookie(w, theme)
	}
	redirectBack(w, r)
}

// redirectBack sends the visitor back to the page they came from. The
// ?lang= parameter is dropped so it cannot override the new cookie.
func redirectBack(w http.ResponseWriter, r *http.Request) {
	target := util.LocalRedirect(r.Referer(), r.Host, RouteRoot)
	http.Redirect(w, r, stripLangParam(target), http.StatusSeeOther)
}

func stripLangParam(target string) string {
	path, query, ok := strings.Cut(target, "?")
	if !ok {
		return target
	}
	values, err := url.ParseQuery(query)
	if err != nil {
		return path
	}
	values.Del(i18n.CookieName)
	if enc := values.Encode(); enc != "" {
		return path + "?" + enc
	}
	return path
}
