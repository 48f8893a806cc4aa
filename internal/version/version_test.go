// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package version

import "testing"

func TestInfoString(t *testing.T) {
	tests := []struct {
		name string
		info Info
		want string
	}{
		{"version only", Info{Version: "dev"}, "localelab dev"},
		{"with commit", Info{Version: "v1.0.0", GitCommit: "abc1234"}, "localelab v1.0.0 (abc1234)"},
		{
			"full",
			Info{Version: "v1.0.0", GitCommit: "abc1234", BuildTime: "2025-01-30T12:00:00Z"},
			"localelab v1.0.0 (abc1234) built 2025-01-30T12:00:00Z",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.info.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGet_Ldflags(t *testing.T) {
	oldVersion, oldCommit, oldTime := version, gitCommit, buildTime
	t.Cleanup(func() { version, gitCommit, buildTime = oldVersion, oldCommit, oldTime })

	version, gitCommit, buildTime = "v2.0.0", "def5678", "2026-01-01T00:00:00Z"

	info := Get()
	if info.Version != "v2.0.0" {
		t.Errorf("Version = %q, want %q", info.Version, "v2.0.0")
	}
	if info.GitCommit != "def5678" {
		t.Errorf("GitCommit = %q, want %q", info.GitCommit, "def5678")
	}
	if info.BuildTime != "2026-01-01T00:00:00Z" {
		t.Errorf("BuildTime = %q, want %q", info.BuildTime, "2026-01-01T00:00:00Z")
	}
}

func TestShortCommit(t *testing.T) {
	if got := shortCommit("0123456789abcdef"); got != "0123456" {
		t.Errorf("shortCommit() = %q, want %q", got, "0123456")
	}
	if got := shortCommit("abc"); got != "abc" {
		t.Errorf("shortCommit() = %q, want %q", got, "abc")
	}
}
