// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package seo

import (
	"strings"
	"testing"
)

func TestRobotsBuilderBuildDefault(t *testing.T) {
	content := NewRobotsBuilder(RobotsConfig{SiteURL: "https://example.com"}).Build()

	if !strings.HasPrefix(content, "User-agent: *\n") {
		t.Error("Build() should start with 'User-agent: *'")
	}
	for _, path := range DefaultDisallowPaths {
		if !strings.Contains(content, "Disallow: "+path+"\n") {
			t.Errorf("Build() should disallow %q", path)
		}
	}
	if !strings.Contains(content, "Allow: /\n") {
		t.Error("Build() should contain 'Allow: /'")
	}
	if !strings.HasSuffix(content, "\nSitemap: https://example.com/sitemap.xml\n") {
		t.Errorf("Build() should end with the sitemap reference:\n%s", content)
	}
}

func TestRobotsBuilderBuildDisallowAll(t *testing.T) {
	content := NewRobotsBuilder(RobotsConfig{SiteURL: "https://example.com", DisallowAll: true}).Build()

	if content != "User-agent: *\nDisallow: /\n" {
		t.Errorf("Build() = %q", content)
	}
}

func TestRobotsBuilderBuildExtraRules(t *testing.T) {
	tests := []struct {
		name  string
		rules string
	}{
		{"without newline", "User-agent: GPTBot\nDisallow: /"},
		{"with newline", "User-agent: GPTBot\nDisallow: /\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content := NewRobotsBuilder(RobotsConfig{ExtraRules: tt.rules}).Build()
			if !strings.Contains(content, "\nUser-agent: GPTBot\nDisallow: /\n") {
				t.Errorf("Build() = %q", content)
			}
			if strings.Contains(content, "Sitemap:") {
				t.Error("Build() without site URL should not reference a sitemap")
			}
		})
	}
}

func TestRobotsBuilderBuildCustomDisallowPaths(t *testing.T) {
	content := NewRobotsBuilder(RobotsConfig{DisallowPaths: []string{"/drafts"}}).Build()
	if !strings.Contains(content, "Disallow: /api/\n") || !strings.Contains(content, "Disallow: /drafts\n") {
		t.Errorf("Build() = %q", content)
	}
}

func TestGenerateRobots(t *testing.T) {
	content := GenerateRobots("https://example.com/", false)
	if !strings.Contains(content, "Sitemap: https://example.com/sitemap.xml") {
		t.Errorf("GenerateRobots() = %q", content)
	}
}
