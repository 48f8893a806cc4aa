// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package cache provides the byte cache used for rendered article HTML,
// backed by process memory or Redis.
package cache

import (
	"context"
	"log/slog"
	"time"
)

// Cache is a byte cache. All implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the value for key, or ErrCacheMiss.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key. A zero ttl uses the cache default.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	Delete(ctx context.Context, key string) error

	// Clear removes every entry owned by the cache.
	Clear(ctx context.Context) error

	// Stats returns counters since creation or the last reset.
	Stats() Stats

	Close() error
}

// Error is a cache error constant.
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	// ErrCacheMiss indicates the key was not found or has expired.
	ErrCacheMiss Error = "cache miss"

	// ErrCacheClosed indicates the cache has been closed.
	ErrCacheClosed Error = "cache closed"
)

// Backend names reported in Stats.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// Stats holds cache statistics.
type Stats struct {
	Backend string  `json:"backend"`
	Hits    int64   `json:"hits"`
	Misses  int64   `json:"misses"`
	Sets    int64   `json:"sets"`
	Items   int     `json:"items"`
	HitRate float64 `json:"hitRate"`
}

func hitRate(hits, misses int64) float64 {
	total := hits + misses
	if total == 0 {
		return 0
	}
	return float64(hits) / float64(total) * 100
}

// Config selects and tunes a cache backend.
type Config struct {
	// RedisURL enables the Redis backend, e.g. redis://localhost:6379/0.
	RedisURL string

	// Prefix namespaces Redis keys.
	Prefix string

	DefaultTTL time.Duration

	// MaxSize bounds the number of memory entries (0 = unlimited).
	MaxSize int

	// CleanupInterval for expired memory entries (0 = no janitor).
	CleanupInterval time.Duration
}

// New creates the cache described by cfg. When RedisURL is set but Redis
// cannot be reached, New logs a warning and returns a memory cache.
func New(cfg Config, logger *slog.Logger) Cache {
	if logger == nil {
		logger = slog.Default()
	}

	if cfg.RedisURL != "" {
		rc, err := NewRedisCache(RedisCacheOptions{
			URL:        cfg.RedisURL,
			Prefix:     cfg.Prefix,
			DefaultTTL: cfg.DefaultTTL,
		})
		if err == nil {
			logger.Info("using redis cache", "prefix", rc.prefix)
			return rc
		}
		logger.Warn("redis unavailable, falling back to memory cache", "error", err)
	}

	return NewMemoryCache(MemoryCacheOptions{
		DefaultTTL:      cfg.DefaultTTL,
		MaxSize:         cfg.MaxSize,
		CleanupInterval: cfg.CleanupInterval,
	})
}
