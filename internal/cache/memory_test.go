// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"
)

func newTestMemoryCache(maxSize int) *MemoryCache {
	return NewMemoryCache(MemoryCacheOptions{
		DefaultTTL: time.Hour,
		MaxSize:    maxSize,
	})
}

func TestMemoryCache_BasicOperations(t *testing.T) {
	cache := newTestMemoryCache(100)
	defer func() { _ = cache.Close() }()
	ctx := context.Background()

	if err := cache.Set(ctx, "key1", []byte("value1"), 0); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	val, err := cache.Get(ctx, "key1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(val) != "value1" {
		t.Errorf("expected value1, got %s", string(val))
	}

	if err := cache.Delete(ctx, "key1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := cache.Get(ctx, "key1"); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("expected ErrCacheMiss, got %v", err)
	}
}

func TestMemoryCache_Expiration(t *testing.T) {
	cache := newTestMemoryCache(0)
	defer func() { _ = cache.Close() }()
	ctx := context.Background()

	if err := cache.Set(ctx, "short", []byte("v"), 20*time.Millisecond); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if _, err := cache.Get(ctx, "short"); err != nil {
		t.Fatalf("expected hit before expiry, got %v", err)
	}

	time.Sleep(40 * time.Millisecond)

	if _, err := cache.Get(ctx, "short"); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("expected ErrCacheMiss after expiry, got %v", err)
	}
	if items := cache.Stats().Items; items != 0 {
		t.Errorf("expected expired entry to be removed, have %d items", items)
	}
}

func TestMemoryCache_Clear(t *testing.T) {
	cache := newTestMemoryCache(0)
	defer func() { _ = cache.Close() }()
	ctx := context.Background()

	for i := range 5 {
		_ = cache.Set(ctx, fmt.Sprintf("k%d", i), []byte("v"), 0)
	}
	if err := cache.Clear(ctx); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if items := cache.Stats().Items; items != 0 {
		t.Errorf("expected 0 items after Clear, got %d", items)
	}
}

func TestMemoryCache_MaxSizeEvictsSoonestExpiry(t *testing.T) {
	cache := newTestMemoryCache(2)
	defer func() { _ = cache.Close() }()
	ctx := context.Background()

	_ = cache.Set(ctx, "long", []byte("1"), time.Hour)
	_ = cache.Set(ctx, "short", []byte("2"), time.Minute)
	_ = cache.Set(ctx, "new", []byte("3"), time.Hour)

	if items := cache.Stats().Items; items != 2 {
		t.Fatalf("expected 2 items, got %d", items)
	}
	if _, err := cache.Get(ctx, "short"); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("expected the soonest-expiring entry to be evicted, got %v", err)
	}
	if _, err := cache.Get(ctx, "long"); err != nil {
		t.Errorf("expected long to survive, got %v", err)
	}
}

func TestMemoryCache_OverwriteAtCapacity(t *testing.T) {
	cache := newTestMemoryCache(1)
	defer func() { _ = cache.Close() }()
	ctx := context.Background()

	_ = cache.Set(ctx, "only", []byte("a"), 0)
	_ = cache.Set(ctx, "only", []byte("b"), 0)

	val, err := cache.Get(ctx, "only")
	if err != nil || string(val) != "b" {
		t.Errorf("expected overwrite to keep the key, got %q, %v", val, err)
	}
}

func TestMemoryCache_Stats(t *testing.T) {
	cache := newTestMemoryCache(0)
	defer func() { _ = cache.Close() }()
	ctx := context.Background()

	_ = cache.Set(ctx, "a", []byte("1"), 0)
	_, _ = cache.Get(ctx, "a")
	_, _ = cache.Get(ctx, "a")
	_, _ = cache.Get(ctx, "missing")

	stats := cache.Stats()
	if stats.Backend != BackendMemory {
		t.Errorf("expected backend %q, got %q", BackendMemory, stats.Backend)
	}
	if stats.Hits != 2 || stats.Misses != 1 || stats.Sets != 1 || stats.Items != 1 {
		t.Errorf("unexpected stats: %+v", stats)
	}
	if stats.HitRate < 66 || stats.HitRate > 67 {
		t.Errorf("expected hit rate ~66.7, got %f", stats.HitRate)
	}
}

func TestMemoryCache_ConcurrentAccess(t *testing.T) {
	cache := newTestMemoryCache(50)
	defer func() { _ = cache.Close() }()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range 100 {
				key := fmt.Sprintf("key-%d-%d", i, j%10)
				_ = cache.Set(ctx, key, []byte("v"), 0)
				_, _ = cache.Get(ctx, key)
				if j%7 == 0 {
					_ = cache.Delete(ctx, key)
				}
			}
		}()
	}
	wg.Wait()

	if items := cache.Stats().Items; items > 50 {
		t.Errorf("expected at most 50 items, got %d", items)
	}
}

func TestMemoryCache_ValueCopy(t *testing.T) {
	cache := newTestMemoryCache(0)
	defer func() { _ = cache.Close() }()
	ctx := context.Background()

	original := []byte("original")
	_ = cache.Set(ctx, "k", original, 0)
	original[0] = 'X'

	got, _ := cache.Get(ctx, "k")
	if string(got) != "original" {
		t.Errorf("stored value changed with caller's slice: %q", got)
	}

	got[0] = 'Y'
	again, _ := cache.Get(ctx, "k")
	if string(again) != "original" {
		t.Errorf("stored value changed with returned slice: %q", again)
	}
}

func TestMemoryCache_Close(t *testing.T) {
	cache := NewMemoryCache(MemoryCacheOptions{CleanupInterval: time.Millisecond})
	ctx := context.Background()

	if err := cache.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := cache.Close(); err != nil {
		t.Fatalf("second Close failed: %v", err)
	}
	if err := cache.Set(ctx, "k", []byte("v"), 0); !errors.Is(err, ErrCacheClosed) {
		t.Errorf("expected ErrCacheClosed from Set, got %v", err)
	}
	if _, err := cache.Get(ctx, "k"); !errors.Is(err, ErrCacheClosed) {
		t.Errorf("expected ErrCacheClosed from Get, got %v", err)
	}
}

func TestNew_MemoryByDefault(t *testing.T) {
	c := New(Config{DefaultTTL: time.Minute}, nil)
	defer func() { _ = c.Close() }()

	if _, ok := c.(*MemoryCache); !ok {
		t.Fatalf("expected *MemoryCache, got %T", c)
	}
}

func TestNew_FallsBackWhenRedisUnreachable(t *testing.T) {
	c := New(Config{RedisURL: "redis://127.0.0.1:1/0", DefaultTTL: time.Minute}, nil)
	defer func() { _ = c.Close() }()

	if c.Stats().Backend != BackendMemory {
		t.Errorf("expected memory fallback, got %q", c.Stats().Backend)
	}
}
