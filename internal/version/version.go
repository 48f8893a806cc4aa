// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package version provides build-time version information.
package version

import (
	"fmt"
	"runtime/debug"
)

// Set via -ldflags "-X github.com/olegiv/localelab/internal/version.version=...".
var (
	version   = "dev"
	gitCommit = ""
	buildTime = ""
)

// Info contains build-time version information injected via ldflags.
type Info struct {
	Version   string `json:"version"`              // Semantic version from git tags (e.g., "v1.2.3")
	GitCommit string `json:"git_commit,omitempty"` // Short git commit hash (e.g., "abc1234")
	BuildTime string `json:"build_time,omitempty"` // Build timestamp in RFC3339 format
}

// Get returns the version of the running binary. A binary built without
// ldflags reports the VCS revision recorded by the Go toolchain.
func Get() Info {
	info := Info{Version: version, GitCommit: gitCommit, BuildTime: buildTime}
	if info.GitCommit != "" {
		return info
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, s := range bi.Settings {
			switch s.Key {
			case "vcs.revision":
				info.GitCommit = shortCommit(s.Value)
			case "vcs.time":
				if info.BuildTime == "" {
					info.BuildTime = s.Value
				}
			}
		}
	}
	return info
}

func shortCommit(rev string) string {
	if len(rev) > 7 {
		return rev[:7]
	}
	return rev
}

// String formats the info for the version command.
func (i Info) String() string {
	s := "localelab " + i.Version
	if i.GitCommit != "" {
		s += fmt.Sprintf(" (%s)", i.GitCommit)
	}
	if i.BuildTime != "" {
		s += " built " + i.BuildTime
	}
	return s
}
