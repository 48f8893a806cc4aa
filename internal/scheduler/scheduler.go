// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package scheduler runs named background jobs on cron schedules.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// DefaultJobTimeout bounds a single job run.
const DefaultJobTimeout = 2 * time.Minute

// parser accepts standard five-field expressions and descriptors such as
// @hourly or @every 10m.
var parser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// ValidateSchedule reports whether spec is a valid cron expression.
func ValidateSchedule(spec string) error {
	if _, err := parser.Parse(spec); err != nil {
		return fmt.Errorf("invalid cron expression %q: %w", spec, err)
	}
	return nil
}

// JobFunc is the work of a job. The context is cancelled when the job times
// out or the scheduler stops.
type JobFunc func(ctx context.Context) error

// registeredJob holds metadata about a registered cron job.
type registeredJob struct {
	name     string
	schedule string
	entryID  cron.EntryID
	run      func()

	mu      sync.Mutex
	lastRun time.Time
	lastErr error
	runs    int
}

// JobInfo is the public view of a registered job.
type JobInfo struct {
	Name      string
	Schedule  string
	LastRun   time.Time
	NextRun   time.Time
	LastError string
	Runs      int
}

// Scheduler runs jobs on cron schedules. Overlapping runs of the same job
// are skipped and panics are recovered.
type Scheduler struct {
	cron    *cron.Cron
	logger  *slog.Logger
	timeout time.Duration

	ctx    context.Context
	cancel context.CancelFunc

	mu   sync.RWMutex
	jobs map[string]*registeredJob
}

// New creates a new scheduler instance.
func New(logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	ctx, cancel := context.WithCancel(context.Background())
	cl := cronLogger{logger: logger}
	return &Scheduler{
		cron: cron.New(
			cron.WithParser(parser),
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		logger:  logger,
		timeout: DefaultJobTimeout,
		ctx:     ctx,
		cancel:  cancel,
		jobs:    make(map[string]*registeredJob),
	}
}

// SetJobTimeout changes the per-run timeout of jobs added afterwards.
func (s *Scheduler) SetJobTimeout(d time.Duration) {
	if d > 0 {
		s.timeout = d
	}
}

// AddJob registers fn under name on schedule spec.
func (s *Scheduler) AddJob(name, spec string, fn JobFunc) error {
	if err := ValidateSchedule(spec); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.jobs[name]; exists {
		return fmt.Errorf("job already registered: %s", name)
	}

	job := &registeredJob{name: name, schedule: spec}
	timeout := s.timeout
	job.run = func() {
		ctx, cancel := context.WithTimeout(s.ctx, timeout)
		defer cancel()

		start := time.Now()
		err := fn(ctx)

		job.mu.Lock()
		job.lastRun = start
		job.lastErr = err
		job.runs++
		job.mu.Unlock()

		if err != nil {
			s.logger.Error("scheduled job failed", "job", name, "error", err)
			return
		}
		s.logger.Debug("scheduled job finished", "job", name, "duration", time.Since(start).Round(time.Millisecond))
	}

	id, err := s.cron.AddFunc(spec, job.run)
	if err != nil {
		return fmt.Errorf("adding job %s: %w", name, err)
	}
	job.entryID = id
	s.jobs[name] = job
	return nil
}

// Trigger runs a job immediately in the calling goroutine.
func (s *Scheduler) Trigger(name string) error {
	s.mu.RLock()
	job, ok := s.jobs[name]
	s.mu.RUnlock()
	if !ok {
		return fmt.Errorf("job not found: %s", name)
	}

	job.run()

	job.mu.Lock()
	defer job.mu.Unlock()
	return job.lastErr
}

// Jobs returns every registered job sorted by name.
func (s *Scheduler) Jobs() []JobInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	infos := make([]JobInfo, 0, len(s.jobs))
	for _, job := range s.jobs {
		info := JobInfo{
			Name:     job.name,
			Schedule: job.schedule,
			NextRun:  s.cron.Entry(job.entryID).Next,
		}
		job.mu.Lock()
		info.LastRun = job.lastRun
		info.Runs = job.runs
		if job.lastErr != nil {
			info.LastError = job.lastErr.Error()
		}
		job.mu.Unlock()
		infos = append(infos, info)
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos
}

// Start begins running jobs in the background.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("scheduler started", "jobs", len(s.cron.Entries()))
}

// Stop cancels running jobs and waits for them to return or for ctx to end.
func (s *Scheduler) Stop(ctx context.Context) error {
	s.cancel()
	done := s.cron.Stop()
	select {
	case <-done.Done():
		s.logger.Info("scheduler stopped")
		return nil
	case <-ctx.Done():
		return fmt.Errorf("stopping scheduler: %w", ctx.Err())
	}
}

// cronLogger adapts slog to cron.Logger.
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error("cron: "+msg, append(keysAndValues, "error", err)...)
}
