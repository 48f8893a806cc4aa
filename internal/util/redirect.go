// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import (
	"net/url"
	"strings"
)

// LocalRedirect returns the path (and query) of target when it points at
// host or is already relative, and fallback otherwise. It prevents open
// redirects (CWE-601) when bouncing visitors back to their Referer.
func LocalRedirect(target, host, fallback string) string {
	if target == "" {
		return fallback
	}

	u, err := url.Parse(strings.ReplaceAll(target, "\\", "/"))
	if err != nil {
		return fallback
	}
	if u.Host != "" && !strings.EqualFold(u.Host, host) {
		return fallback
	}
	if u.Scheme != "" && u.Scheme != "http" && u.Scheme != "https" {
		return fallback
	}

	path := u.EscapedPath()
	if path == "" {
		path = "/"
	}
	if !strings.HasPrefix(path, "/") || strings.HasPrefix(path, "//") {
		return fallback
	}
	if u.RawQuery != "" {
		path += "?" + u.RawQuery
	}
	return path
}
