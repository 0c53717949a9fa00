// Package watcher runs reconciliation on a schedule so a long-running
// process notices day and month boundaries without user input.
package watcher

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/alexanderramin/streakhq/internal/reconcile"
)

const (
	DefaultSchedule = "@every 15m"
	// MidnightSchedule fires just after local midnight so the new day is
	// picked up even when the periodic tick is far away.
	MidnightSchedule = "5 0 * * *"
)

// Reconciler is the part of the Store the watcher drives.
type Reconciler interface {
	Reconcile(ctx context.Context) (reconcile.Report, error)
}

type Watcher struct {
	rec    Reconciler
	cron   *cron.Cron
	logger *slog.Logger
	ctx    atomic.Pointer[context.Context]
	runs   atomic.Int64
}

type Option func(*config)

type config struct {
	loc    *time.Location
	logger *slog.Logger
}

func WithLocation(loc *time.Location) Option {
	return func(c *config) { c.loc = loc }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *config) { c.logger = l }
}

// New registers rec on schedule (DefaultSchedule when empty) and on
// MidnightSchedule. Overlapping runs are skipped.
func New(rec Reconciler, schedule string, opts ...Option) (*Watcher, error) {
	cfg := config{loc: time.Local, logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(&cfg)
	}
	if schedule == "" {
		schedule = DefaultSchedule
	}

	w := &Watcher{rec: rec, logger: cfg.logger}
	w.cron = cron.New(
		cron.WithLocation(cfg.loc),
		cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
	)
	if _, err := w.cron.AddFunc(schedule, func() { w.tick("periodic") }); err != nil {
		return nil, fmt.Errorf("invalid watch schedule %q: %w", schedule, err)
	}
	if _, err := w.cron.AddFunc(MidnightSchedule, func() { w.tick("midnight") }); err != nil {
		return nil, fmt.Errorf("registering midnight job: %w", err)
	}
	return w, nil
}

// Run reconciles once, then on schedule until ctx is cancelled. It waits
// for a running job to finish before returning.
func (w *Watcher) Run(ctx context.Context) error {
	w.ctx.Store(&ctx)
	w.Trigger(ctx, "start")
	w.cron.Start()
	<-ctx.Done()
	<-w.cron.Stop().Done()
	return nil
}

// Trigger reconciles immediately and logs what changed.
func (w *Watcher) Trigger(ctx context.Context, reason string) {
	w.runs.Add(1)
	report, err := w.rec.Reconcile(ctx)
	if err != nil {
		w.logger.Error("scheduled reconcile failed", "trigger", reason, "error", err)
		return
	}
	if !report.Changed() {
		w.logger.Debug("reconcile: nothing to do", "trigger", reason)
		return
	}
	w.logger.Info("reconciled",
		"trigger", reason,
		"shields_refilled", report.ShieldsRefilled,
		"shield_days", len(report.ShieldDays),
		"streaks_broken", len(report.StreaksBroken),
		"tasks_reopened", len(report.TasksReopened),
	)
}

// Runs is how many reconciliations have been attempted.
func (w *Watcher) Runs() int64 {
	return w.runs.Load()
}

// Next reports when the next scheduled job fires.
func (w *Watcher) Next() time.Time {
	var next time.Time
	for _, e := range w.cron.Entries() {
		if !e.Next.IsZero() && (next.IsZero() || e.Next.Before(next)) {
			next = e.Next
		}
	}
	return next
}

func (w *Watcher) tick(reason string) {
	ctx := context.Background()
	if p := w.ctx.Load(); p != nil {
		ctx = *p
	}
	w.Trigger(ctx, reason)
}
