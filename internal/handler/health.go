// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/olegiv/localelab/internal/cache"
	"github.com/olegiv/localelab/internal/content"
	"github.com/olegiv/localelab/internal/version"
)

// Health check states.
const (
	statusHealthy  = "healthy"
	statusDegraded = "degraded"
)

// HealthHandler handles health check requests.
type HealthHandler struct {
	loader    *content.Loader
	cache     cache.Cache
	version   version.Info
	startTime time.Time
}

// NewHealthHandler creates a new health handler. c may be nil when rendering
// is uncached.
func NewHealthHandler(loader *content.Loader, c cache.Cache, v version.Info) *HealthHandler {
	return &HealthHandler{
		loader:    loader,
		cache:     c,
		version:   v,
		startTime: time.Now(),
	}
}

// HealthStatus represents the overall health status.
type HealthStatus struct {
	Status    string           `json:"status"`
	Timestamp time.Time        `json:"timestamp"`
	Uptime    string           `json:"uptime"`
	Version   version.Info     `json:"version"`
	Checks    map[string]Check `json:"checks"`
	Cache     *cache.Stats     `json:"cache,omitempty"`
	System    *SystemInfo      `json:"system,omitempty"`
}

// Check represents a single health check result.
type Check struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// SystemInfo contains system-level information.
type SystemInfo struct {
	GoVersion    string `json:"go_version"`
	NumGoroutine int    `json:"num_goroutines"`
	NumCPU       int    `json:"num_cpus"`
	MemAlloc     string `json:"mem_alloc"`
	MemSys       string `json:"mem_sys"`
}

// Health handles GET /health requests. The service is degraded until content
// has loaded successfully. Pass ?verbose=true for runtime details.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	contentCheck := h.checkContent()

	status := HealthStatus{
		Status:    contentCheck.Status,
		Timestamp: time.Now().UTC(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
		Version:   h.version,
		Checks:    map[string]Check{"content": contentCheck},
	}
	if h.cache != nil {
		stats := h.cache.Stats()
		status.Cache = &stats
	}
	if r.URL.Query().Get("verbose") == "true" {
		status.System = getSystemInfo()
	}

	code := http.StatusOK
	if status.Status != statusHealthy {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, status)
}

func (h *HealthHandler) checkContent() Check {
	if !h.loader.Loaded() {
		return Check{Status: statusDegraded, Message: "content not loaded"}
	}
	return Check{Status: statusHealthy, Message: fmt.Sprintf("%d loads", h.loader.Loads())}
}

func getSystemInfo() *SystemInfo {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	return &SystemInfo{
		GoVersion:    runtime.Version(),
		NumGoroutine: runtime.NumGoroutine(),
		NumCPU:       runtime.NumCPU(),
		MemAlloc:     formatBytes(m.Alloc),
		MemSys:       formatBytes(m.Sys),
	}
}

// formatBytes converts bytes to a human-readable string.
func formatBytes(bytes uint64) string {
	const (
		KB = 1024
		MB = KB * 1024
		GB = MB * 1024
	)

	switch {
	case bytes >= GB:
		return fmt.Sprintf("%.2f GB", float64(bytes)/GB)
	case bytes >= MB:
		return fmt.Sprintf("%.2f MB", float64(bytes)/MB)
	case bytes >= KB:
		return fmt.Sprintf("%.2f KB", float64(bytes)/KB)
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}
