// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/olegiv/localelab/internal/i18n"
)

func serveLanguage(t *testing.T, req *http.Request) (i18n.Locale, *httptest.ResponseRecorder) {
	t.Helper()

	var got i18n.Locale
	handler := Language(i18n.English)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = GetLocale(r)
	}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return got, rec
}

func TestLanguage_Priority(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		cookie     string
		acceptLang string
		want       i18n.Locale
		wantCookie bool
	}{
		{name: "fallback", target: "/", want: i18n.English},
		{name: "accept-language", target: "/", acceptLang: "es-MX,en;q=0.5", want: i18n.Spanish},
		{name: "unsupported accept-language", target: "/", acceptLang: "de-DE", want: i18n.English},
		{name: "cookie beats header", target: "/", cookie: "en", acceptLang: "es", want: i18n.English},
		{name: "invalid cookie ignored", target: "/", cookie: "fr", acceptLang: "es", want: i18n.Spanish},
		{name: "query beats cookie", target: "/?lang=es", cookie: "en", want: i18n.Spanish, wantCookie: true},
		{name: "invalid query ignored", target: "/?lang=xx", cookie: "es", want: i18n.Spanish},
		{name: "query is case-insensitive", target: "/blog?lang=ES", want: i18n.Spanish, wantCookie: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: i18n.CookieName, Value: tt.cookie})
			}
			if tt.acceptLang != "" {
				req.Header.Set("Accept-Language", tt.acceptLang)
			}

			got, rec := serveLanguage(t, req)
			if got != tt.want {
				t.Errorf("locale = %q, want %q", got, tt.want)
			}

			cookies := rec.Result().Cookies()
			if tt.wantCookie && len(cookies) != 1 {
				t.Fatalf("expected language cookie, got %d cookies", len(cookies))
			}
			if !tt.wantCookie && len(cookies) != 0 {
				t.Errorf("unexpected cookies: %v", cookies)
			}
		})
	}
}

func TestGetLocale_WithoutMiddleware(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := GetLocale(req); got != i18n.DefaultLocale {
		t.Errorf("GetLocale() = %q, want %q", got, i18n.DefaultLocale)
	}
}

func TestSetLanguageCookie(t *testing.T) {
	InitCookies(false)
	t.Cleanup(func() { InitCookies(true) })

	rec := httptest.NewRecorder()
	SetLanguageCookie(rec, i18n.Spanish)

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("got %d cookies, want 1", len(cookies))
	}
	c := cookies[0]
	if c.Name != i18n.CookieName || c.Value != "es" {
		t.Errorf("cookie = %s=%s", c.Name, c.Value)
	}
	if c.Path != "/" {
		t.Errorf("Path = %q, want /", c.Path)
	}
	if c.MaxAge != 365*24*60*60 {
		t.Errorf("MaxAge = %d, want one year", c.MaxAge)
	}
	if !c.HttpOnly || !c.Secure {
		t.Errorf("HttpOnly = %v, Secure = %v", c.HttpOnly, c.Secure)
	}
	if c.SameSite != http.SameSiteLaxMode {
		t.Errorf("SameSite = %v, want Lax", c.SameSite)
	}
}

func TestTheme(t *testing.T) {
	tests := []struct {
		cookie string
		want   Theme
	}{
		{"", ThemeLight},
		{"dark", ThemeDark},
		{"DARK", ThemeDark},
		{"light", ThemeLight},
		{"sepia", ThemeLight},
	}

	for _, tt := range tests {
		t.Run(tt.cookie, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: ThemeCookieName, Value: tt.cookie})
			}

			var got Theme
			ThemeFromCookie(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = GetTheme(r)
			})).ServeHTTP(httptest.NewRecorder(), req)

			if got != tt.want {
				t.Errorf("theme = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestThemeToggle(t *testing.T) {
	if ThemeLight.Toggle() != ThemeDark || ThemeDark.Toggle() != ThemeLight {
		t.Error("Toggle should switch between light and dark")
	}
}

func TestSetThemeCookie(t *testing.T) {
	rec := httptest.NewRecorder()
	SetThemeCookie(rec, ThemeDark)

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != ThemeCookieName || cookies[0].Value != "dark" {
		t.Errorf("cookies = %v", cookies)
	}
}
