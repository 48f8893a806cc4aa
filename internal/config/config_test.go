// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/olegiv/localelab/internal/i18n"
)

const testSecret = "test-secret-key-32-bytes-long!!!"

func setEnv(t *testing.T, key, value string) {
	t.Helper()
	if err := os.Setenv(key, value); err != nil {
		t.Fatalf("failed to set %s: %v", key, err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	os.Clearenv()
	setEnv(t, "LL_SECRET_KEY", testSecret)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.ContentDir != "./content/blog" {
		t.Errorf("ContentDir = %q, want %q", cfg.ContentDir, "./content/blog")
	}
	if cfg.ServerHost != "localhost" {
		t.Errorf("ServerHost = %q, want %q", cfg.ServerHost, "localhost")
	}
	if cfg.ServerPort != 8080 {
		t.Errorf("ServerPort = %d, want %d", cfg.ServerPort, 8080)
	}
	if cfg.Env != "development" {
		t.Errorf("Env = %q, want %q", cfg.Env, "development")
	}
	if cfg.LogLevel != "info" || cfg.LogFormat != "text" {
		t.Errorf("LogLevel/LogFormat = %q/%q, want info/text", cfg.LogLevel, cfg.LogFormat)
	}
	if cfg.Locale() != i18n.English {
		t.Errorf("Locale() = %q, want %q", cfg.Locale(), i18n.English)
	}
	if cfg.CacheTTLDuration() != time.Hour {
		t.Errorf("CacheTTLDuration() = %v, want 1h", cfg.CacheTTLDuration())
	}
	if cfg.RequestTimeout != 30*time.Second {
		t.Errorf("RequestTimeout = %v, want 30s", cfg.RequestTimeout)
	}
	if cfg.Email.Port != 587 {
		t.Errorf("Email.Port = %d, want 587", cfg.Email.Port)
	}
	if cfg.Email.Configured() {
		t.Error("Email.Configured() = true with no email settings")
	}
	if cfg.WatchContent {
		t.Error("WatchContent should default to false")
	}
}

func TestLoad_CustomValues(t *testing.T) {
	os.Clearenv()
	setEnv(t, "LL_SECRET_KEY", testSecret)
	setEnv(t, "LL_CONTENT_DIR", "/srv/content")
	setEnv(t, "LL_SERVER_HOST", "0.0.0.0")
	setEnv(t, "LL_SERVER_PORT", "3000")
	setEnv(t, "LL_ENV", "production")
	setEnv(t, "LL_LOG_FORMAT", "json")
	setEnv(t, "LL_DEFAULT_LOCALE", "es")
	setEnv(t, "LL_SITE_URL", "https://localelab.example")
	setEnv(t, "LL_WATCH_CONTENT", "true")
	setEnv(t, "LL_CONTENT_RELOAD_SCHEDULE", "*/15 * * * *")
	setEnv(t, "LL_REQUEST_TIMEOUT", "5s")
	setEnv(t, "LL_EMAIL_SERVER_HOST", "smtp.example.com")
	setEnv(t, "LL_EMAIL_SERVER_PORT", "465")
	setEnv(t, "LL_EMAIL_SERVER_USER", "mailer")
	setEnv(t, "LL_EMAIL_SERVER_PASSWORD", "hunter2")
	setEnv(t, "LL_EMAIL_FROM", "site@example.com")
	setEnv(t, "LL_EMAIL_TO", "owner@example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.ContentDir != "/srv/content" {
		t.Errorf("ContentDir = %q", cfg.ContentDir)
	}
	if cfg.ServerAddr() != "0.0.0.0:3000" {
		t.Errorf("ServerAddr() = %q", cfg.ServerAddr())
	}
	if cfg.IsDevelopment() {
		t.Error("IsDevelopment() = true in production")
	}
	if cfg.Locale() != i18n.Spanish {
		t.Errorf("Locale() = %q, want es", cfg.Locale())
	}
	if !cfg.WatchContent || cfg.ContentReloadSchedule != "*/15 * * * *" {
		t.Errorf("content reload settings not parsed: %v %q", cfg.WatchContent, cfg.ContentReloadSchedule)
	}
	if cfg.RequestTimeout != 5*time.Second {
		t.Errorf("RequestTimeout = %v, want 5s", cfg.RequestTimeout)
	}
	if !cfg.Email.Configured() || cfg.Email.Port != 465 || cfg.Email.To != "owner@example.com" {
		t.Errorf("Email = %+v", cfg.Email)
	}
}

func TestLoad_RequiredSecretKey(t *testing.T) {
	os.Clearenv()

	if _, err := Load(); err == nil {
		t.Fatal("Load() should fail when LL_SECRET_KEY is not set")
	}
}

func TestLoad_SecretKeyTooShort(t *testing.T) {
	tests := []struct {
		name   string
		secret string
	}{
		{"empty", ""},
		{"short", "short"},
		{"31_bytes", "1234567890123456789012345678901"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Clearenv()
			setEnv(t, "LL_SECRET_KEY", tt.secret)

			if _, err := Load(); err == nil {
				t.Fatalf("Load() should fail with %d-byte secret", len(tt.secret))
			}
		})
	}
}

func TestLoad_WeakSecretRejected(t *testing.T) {
	for _, weak := range knownWeakSecrets {
		os.Clearenv()
		setEnv(t, "LL_SECRET_KEY", weak)

		_, err := Load()
		if err == nil || !strings.Contains(err.Error(), "known default value") {
			t.Errorf("Load() with %q: err = %v, want known default error", weak, err)
		}
	}
}

func TestValidate_ReportsEveryProblem(t *testing.T) {
	cfg := Config{
		SecretKey:             testSecret,
		Env:                   "staging",
		LogFormat:             "xml",
		DefaultLocale:         "fr",
		ServerPort:            0,
		SiteURL:               "localelab.example",
		ContentReloadSchedule: "every minute",
		ContactRatePerMinute:  0,
		ContactBurst:          1,
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() = nil, want errors")
	}
	for _, want := range []string{
		"LL_ENV", "LL_LOG_FORMAT", "LL_DEFAULT_LOCALE", "LL_SERVER_PORT",
		"LL_SITE_URL", "LL_CONTENT_RELOAD_SCHEDULE", "LL_CONTACT_RATE_PER_MINUTE",
	} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("Validate() error does not mention %s: %v", want, err)
		}
	}
}

func TestConfig_IsDevelopment(t *testing.T) {
	tests := []struct {
		env  string
		want bool
	}{
		{"development", true},
		{"production", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			cfg := Config{Env: tt.env}
			if got := cfg.IsDevelopment(); got != tt.want {
				t.Errorf("IsDevelopment() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHasMinimumEntropy(t *testing.T) {
	if hasMinimumEntropy("aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa") {
		t.Error("single character class should be low entropy")
	}
	if !hasMinimumEntropy(testSecret) {
		t.Error("lowercase, digits and symbols should pass")
	}
}
