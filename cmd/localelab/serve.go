// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/olegiv/localelab/internal/cache"
	"github.com/olegiv/localelab/internal/config"
	"github.com/olegiv/localelab/internal/contact"
	"github.com/olegiv/localelab/internal/content"
	"github.com/olegiv/localelab/internal/handler"
	"github.com/olegiv/localelab/internal/i18n"
	"github.com/olegiv/localelab/internal/logging"
	"github.com/olegiv/localelab/internal/markdown"
	"github.com/olegiv/localelab/internal/middleware"
	"github.com/olegiv/localelab/internal/render"
	"github.com/olegiv/localelab/internal/scheduler"
	"github.com/olegiv/localelab/internal/seo"
	"github.com/olegiv/localelab/internal/version"
	"github.com/olegiv/localelab/web"
)

const (
	// watchDebounce collapses bursts of file events into one reload.
	watchDebounce = 250 * time.Millisecond
	// cacheCleanupInterval is how often expired memory cache entries are dropped.
	cacheCleanupInterval = 5 * time.Minute
	reloadJobTimeout     = 2 * time.Minute
	shutdownTimeout      = 30 * time.Second

	contentReloadJob = "content-reload"
)

func runServe(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stdout)
	slog.SetDefault(logger)
	middleware.InitCookies(cfg.IsDevelopment())

	info := version.Get()
	slog.Info("starting localelab", "version", info.Version, "commit", info.GitCommit, "env", cfg.Env)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	catalog, err := i18n.NewCatalog(cfg.Locale())
	if err != nil {
		return fmt.Errorf("loading dictionaries: %w", err)
	}

	renderCache := cache.New(cache.Config{
		RedisURL:        cfg.RedisURL,
		Prefix:          cfg.CachePrefix,
		DefaultTTL:      cfg.CacheTTLDuration(),
		MaxSize:         cfg.CacheMaxSize,
		CleanupInterval: cacheCleanupInterval,
	}, logger)
	defer func() {
		if err := renderCache.Close(); err != nil {
			slog.Error("error closing cache", "error", err)
		}
	}()

	loader := content.NewLoader(os.DirFS(cfg.ContentDir), content.LoaderOptions{Logger: logger})
	posts := content.NewService(loader, markdown.New(markdown.Options{
		Cache:  renderCache,
		TTL:    cfg.CacheTTLDuration(),
		Logger: logger,
	}), cfg.Locale())

	// Invalid content is fatal in production. In development the server
	// starts anyway so the watcher can pick up the fix.
	if _, err := loader.LoadAll(ctx); err != nil {
		if !cfg.IsDevelopment() {
			return fmt.Errorf("loading content from %s: %w", cfg.ContentDir, err)
		}
		slog.Error("content failed to load", "dir", cfg.ContentDir, "error", err)
	}

	templatesFS, err := fs.Sub(web.Templates, "templates")
	if err != nil {
		return fmt.Errorf("loading templates: %w", err)
	}
	staticFS, err := fs.Sub(web.Static, "static")
	if err != nil {
		return fmt.Errorf("loading static assets: %w", err)
	}

	site := seo.SiteConfig{
		SiteName:        render.DefaultSiteName,
		SiteURL:         cfg.SiteURL,
		SiteDescription: catalog.Dictionary(cfg.Locale()).Home.HeroBody,
	}
	renderer, err := render.New(render.Config{
		TemplatesFS: templatesFS,
		Catalog:     catalog,
		Site:        site,
		IsDev:       cfg.IsDevelopment(),
	})
	if err != nil {
		return fmt.Errorf("creating renderer: %w", err)
	}

	var mailer contact.Mailer
	smtpCfg := contact.SMTPConfig{
		Host:     cfg.Email.Host,
		Port:     cfg.Email.Port,
		User:     cfg.Email.User,
		Password: cfg.Email.Password,
	}
	if cfg.Email.Configured() {
		mailer = contact.NewSMTPMailer(smtpCfg)
	} else {
		slog.Warn("email delivery is not configured; contact submissions will fail",
			"hint", "set LL_EMAIL_SERVER_HOST, LL_EMAIL_SERVER_USER, LL_EMAIL_SERVER_PASSWORD, LL_EMAIL_FROM and LL_EMAIL_TO")
	}
	relay := contact.NewRelay(mailer, cfg.Email.From, cfg.Email.To, logger)

	router := handler.NewRouter(handler.RouterOptions{
		Blog: handler.NewBlogHandler(posts, catalog, renderer, logger),
		Contact: handler.NewContactHandler(catalog, renderer, relay,
			middleware.NewRateLimiter(cfg.ContactRatePerMinute, cfg.ContactBurst), logger),
		Health:         handler.NewHealthHandler(loader, renderCache, info),
		SEO:            handler.NewSEOHandler(posts, cfg.SiteURL, cfg.IsDevelopment(), logger),
		Static:         staticFS,
		Fallback:       cfg.Locale(),
		CSRF:           middleware.DefaultCSRFConfig([]byte(cfg.SecretKey), cfg.SiteURL, cfg.IsDevelopment()),
		Security:       middleware.DefaultSecurityHeadersConfig(cfg.IsDevelopment()),
		RequestTimeout: cfg.RequestTimeout,
		IsDev:          cfg.IsDevelopment(),
		Logger:         logger,
	})

	if cfg.WatchContent {
		watcher, err := content.NewWatcher(cfg.ContentDir, loader, watchDebounce, logger)
		if err != nil {
			return fmt.Errorf("watching content: %w", err)
		}
		watcher.OnReload(func(err error) {
			if err == nil {
				slog.Debug("content snapshot replaced", "loads", loader.Loads())
			}
		})
		go func() {
			if err := watcher.Run(ctx); err != nil {
				slog.Error("content watcher stopped", "error", err)
			}
		}()
	}

	var sched *scheduler.Scheduler
	if cfg.ContentReloadSchedule != "" {
		sched = scheduler.New(logger)
		sched.SetJobTimeout(reloadJobTimeout)
		if err := sched.AddJob(contentReloadJob, cfg.ContentReloadSchedule, loader.Reload); err != nil {
			return fmt.Errorf("scheduling content reload: %w", err)
		}
		sched.Start()
		for _, job := range sched.Jobs() {
			slog.Info("scheduled job", "name", job.Name, "schedule", job.Schedule, "next_run", job.NextRun)
		}
	}

	// SIGHUP reloads content on demand.
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)
	go reloadOnHangup(ctx, hup, loader, sched)

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.RequestTimeout + 10*time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "site", cfg.SiteURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
	}

	slog.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if sched != nil {
		if err := sched.Stop(shutdownCtx); err != nil {
			slog.Error("error stopping scheduler", "error", err)
		}
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}

func reloadOnHangup(ctx context.Context, hup <-chan os.Signal, loader *content.Loader, sched *scheduler.Scheduler) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-hup:
			slog.Info("reloading content on SIGHUP")
			if sched != nil {
				// The job logs its own failures.
				_ = sched.Trigger(contentReloadJob)
				continue
			}
			if err := loader.Reload(ctx); err != nil {
				slog.Error("content reload failed, keeping previous content", "error", err)
			}
		}
	}
}
