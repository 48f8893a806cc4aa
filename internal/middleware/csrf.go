// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"log/slog"
	"net/http"
	"net/url"

	"filippo.io/csrf/gorilla"
)

// CSRFConfig holds configuration for CSRF protection.
// filippo.io/csrf/gorilla checks Fetch metadata and Origin headers, so no
// token cookie or hidden form field is involved.
type CSRFConfig struct {
	// AuthKey is derived from LL_SECRET_KEY.
	AuthKey []byte

	// ErrorHandler is called when CSRF validation fails.
	ErrorHandler http.Handler

	// TrustedOrigins are host[:port] values allowed to post cross-origin.
	TrustedOrigins []string
}

// DefaultCSRFConfig trusts the configured site host and, in development,
// the usual localhost addresses.
func DefaultCSRFConfig(authKey []byte, siteURL string, isDev bool) CSRFConfig {
	cfg := CSRFConfig{AuthKey: authKey}

	if u, err := url.Parse(siteURL); err == nil && u.Host != "" {
		cfg.TrustedOrigins = append(cfg.TrustedOrigins, u.Host)
	}
	if isDev {
		cfg.TrustedOrigins = append(cfg.TrustedOrigins, "localhost:8080", "127.0.0.1:8080")
	}
	return cfg
}

// CSRF returns a middleware that provides CSRF protection.
func CSRF(cfg CSRFConfig) func(http.Handler) http.Handler {
	var opts []csrf.Option

	if cfg.ErrorHandler != nil {
		opts = append(opts, csrf.ErrorHandler(cfg.ErrorHandler))
	} else {
		opts = append(opts, csrf.ErrorHandler(http.HandlerFunc(csrfErrorHandler)))
	}
	if len(cfg.TrustedOrigins) > 0 {
		opts = append(opts, csrf.TrustedOrigins(cfg.TrustedOrigins))
	}

	return csrf.Protect(cfg.AuthKey, opts...)
}

// CSRFFailureReason returns why the request was rejected, or "unknown".
func CSRFFailureReason(r *http.Request) string {
	if reason := csrf.FailureReason(r); reason != nil {
		return reason.Error()
	}
	return "unknown"
}

func csrfErrorHandler(w http.ResponseWriter, r *http.Request) {
	slog.WarnContext(r.Context(), "CSRF validation failed",
		"reason", CSRFFailureReason(r),
		"method", r.Method,
		"path", r.URL.Path,
		"origin", r.Header.Get("Origin"),
		"sec_fetch_site", r.Header.Get("Sec-Fetch-Site"),
	)
	http.Error(w, "Forbidden - CSRF validation failed", http.StatusForbidden)
}
