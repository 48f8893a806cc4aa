// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package config loads application settings from the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/olegiv/localelab/internal/i18n"
	"github.com/olegiv/localelab/internal/scheduler"
)

// knownWeakSecrets contains example secrets that must never be used.
var knownWeakSecrets = []string{
	"change-me-to-32-byte-secret-key!",
	"REPLACE_WITH_YOUR_OWN_SECRET_KEY!",
}

// MinSecretKeyLength is the minimum length of LL_SECRET_KEY in bytes.
const MinSecretKeyLength = 32

// Config holds the application configuration loaded from environment variables.
type Config struct {
	ContentDir string `env:"LL_CONTENT_DIR" envDefault:"./content/blog"`
	ServerHost string `env:"LL_SERVER_HOST" envDefault:"localhost"`
	ServerPort int    `env:"LL_SERVER_PORT" envDefault:"8080"`
	Env        string `env:"LL_ENV" envDefault:"development"`
	LogLevel   string `env:"LL_LOG_LEVEL" envDefault:"info"`
	LogFormat  string `env:"LL_LOG_FORMAT" envDefault:"text"`
	SiteURL    string `env:"LL_SITE_URL" envDefault:"http://localhost:8080"`

	DefaultLocale string `env:"LL_DEFAULT_LOCALE" envDefault:"en"`
	SecretKey     string `env:"LL_SECRET_KEY,required"`

	// Content reloading
	WatchContent          bool   `env:"LL_WATCH_CONTENT" envDefault:"false"`
	ContentReloadSchedule string `env:"LL_CONTENT_RELOAD_SCHEDULE"` // cron spec, empty = disabled

	// Render cache
	RedisURL     string `env:"LL_REDIS_URL"`
	CachePrefix  string `env:"LL_CACHE_PREFIX" envDefault:"localelab:"`
	CacheTTL     int    `env:"LL_CACHE_TTL" envDefault:"3600"` // seconds
	CacheMaxSize int    `env:"LL_CACHE_MAX_SIZE" envDefault:"1000"`

	RequestTimeout time.Duration `env:"LL_REQUEST_TIMEOUT" envDefault:"30s"`

	// Contact form
	ContactRatePerMinute int `env:"LL_CONTACT_RATE_PER_MINUTE" envDefault:"5"`
	ContactBurst         int `env:"LL_CONTACT_BURST" envDefault:"3"`

	Email EmailConfig `envPrefix:"LL_EMAIL_"`
}

// EmailConfig holds SMTP delivery settings for the contact form.
type EmailConfig struct {
	Host     string `env:"SERVER_HOST"`
	Port     int    `env:"SERVER_PORT" envDefault:"587"`
	User     string `env:"SERVER_USER"`
	Password string `env:"SERVER_PASSWORD"`
	From     string `env:"FROM"`
	To       string `env:"TO"`
}

// Configured reports whether every setting needed to send mail is present.
func (e EmailConfig) Configured() bool {
	return e.Host != "" && e.User != "" && e.Password != "" && e.From != "" && e.To != ""
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// Locale returns the configured fallback locale.
func (c Config) Locale() i18n.Locale {
	return i18n.Locale(c.DefaultLocale)
}

// CacheTTLDuration returns CacheTTL as a duration.
func (c Config) CacheTTLDuration() time.Duration {
	return time.Duration(c.CacheTTL) * time.Second
}

// Load parses environment variables and returns a validated Config.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if !hasMinimumEntropy(cfg.SecretKey) {
		slog.Warn("LL_SECRET_KEY has low character diversity; " +
			"consider generating a random secret with: openssl rand -base64 32")
	}
	return cfg, nil
}

// Validate checks values env tags cannot express. All problems are reported.
func (c *Config) Validate() error {
	var errs []error

	if len(c.SecretKey) < MinSecretKeyLength {
		errs = append(errs, fmt.Errorf("LL_SECRET_KEY must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinSecretKeyLength, len(c.SecretKey)))
	}
	for _, weak := range knownWeakSecrets {
		if c.SecretKey == weak {
			errs = append(errs, errors.New("LL_SECRET_KEY is a known default value and must not be used; "+
				"generate a secure secret with: openssl rand -base64 32"))
		}
	}

	if !i18n.IsLocale(c.DefaultLocale) {
		errs = append(errs, fmt.Errorf("LL_DEFAULT_LOCALE %q is not supported (want one of %v)",
			c.DefaultLocale, i18n.Locales))
	}
	if c.Env != "development" && c.Env != "production" {
		errs = append(errs, fmt.Errorf("LL_ENV must be development or production, got %q", c.Env))
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("LL_LOG_FORMAT must be text or json, got %q", c.LogFormat))
	}
	if c.ServerPort < 1 || c.ServerPort > 65535 {
		errs = append(errs, fmt.Errorf("LL_SERVER_PORT %d is out of range", c.ServerPort))
	}

	if u, err := url.Parse(c.SiteURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, fmt.Errorf("LL_SITE_URL must be an absolute http(s) URL, got %q", c.SiteURL))
	}

	if c.ContentReloadSchedule != "" {
		if err := scheduler.ValidateSchedule(c.ContentReloadSchedule); err != nil {
			errs = append(errs, fmt.Errorf("LL_CONTENT_RELOAD_SCHEDULE: %w", err))
		}
	}

	if c.CacheTTL < 0 || c.CacheMaxSize < 0 {
		errs = append(errs, errors.New("LL_CACHE_TTL and LL_CACHE_MAX_SIZE must not be negative"))
	}
	if c.ContactRatePerMinute < 1 || c.ContactBurst < 1 {
		errs = append(errs, errors.New("LL_CONTACT_RATE_PER_MINUTE and LL_CONTACT_BURST must be positive"))
	}

	return errors.Join(errs...)
}

// hasMinimumEntropy checks that a secret contains at least 3 character classes
// (lowercase, uppercase, digits, special characters).
func hasMinimumEntropy(s string) bool {
	charTypes := 0
	if strings.ContainsAny(s, "abcdefghijklmnopqrstuvwxyz") {
		charTypes++
	}
	if strings.ContainsAny(s, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
		charTypes++
	}
	if strings.ContainsAny(s, "0123456789") {
		charTypes++
	}
	if strings.ContainsAny(s, "!@#$%^&*()-_=+[]{}|;:,.<>?/~`'\"\\") {
		charTypes++
	}
	return charTypes >= 3
}
