package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/alexanderramin/streakhq/internal/domain"
	"github.com/alexanderramin/streakhq/internal/intelligence"
	"github.com/alexanderramin/streakhq/internal/ops"
	"github.com/alexanderramin/streakhq/internal/persist"
	"github.com/alexanderramin/streakhq/internal/reconcile"
)

var ErrNotOpen = errors.New("store is not open")

// Store owns the current snapshot. Every change goes through it: the new
// snapshot is kept in memory, written to the local store, queued for the
// cloud and announced to subscribers.
type Store struct {
	persist   Persister
	suggester intelligence.SuggestionService
	observer  UseCaseObserver
	logger    *slog.Logger
	now       func() time.Time

	mu      sync.Mutex
	snap    domain.Snapshot
	open    bool
	nextSub int
	subs    map[int]func(Change)
}

type StoreOption func(*Store)

func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) { s.now = now }
}

func WithObserver(obs UseCaseObserver) StoreOption {
	return func(s *Store) { s.observer = useCaseObserverOrNoop(obs) }
}

func WithLogger(l *slog.Logger) StoreOption {
	return func(s *Store) { s.logger = l }
}

func WithSuggestions(svc intelligence.SuggestionService) StoreOption {
	return func(s *Store) { s.suggester = svc }
}

func NewStore(p Persister, opts ...StoreOption) *Store {
	s := &Store{
		persist:  p,
		observer: NoopUseCaseObserver{},
		logger:   slog.New(slog.DiscardHandler),
		now:      time.Now,
		subs:     make(map[int]func(Change)),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.suggester == nil {
		s.suggester = intelligence.NewSuggestionService(nil, false, s.logger)
	}
	return s
}

// Open loads the stored snapshot, overlays the signed-in user's cloud copy
// when there is one, reconciles against the clock and writes the result
// back under the current key.
func (s *Store) Open(ctx context.Context) (source persist.Source, err error) {
	started := time.Now()
	fields := map[string]any{}
	defer func() { s.observe(ctx, "open", started, fields, err) }()

	now := s.now()
	loaded, err := s.persist.Load(ctx, now)
	if err != nil {
		return "", fmt.Errorf("opening store: %w", err)
	}
	remote, found, err := s.persist.LoadCloud(ctx, loaded.Snapshot, now)
	switch {
	case err != nil:
		// Offline or a broken blob: keep working from local data.
		s.logger.Warn("cloud load on open failed", "error", err)
	case found:
		loaded.Snapshot = remote
		loaded.Source = persist.SourceCloud
	}
	snap, report := reconcile.Run(loaded.Snapshot, now)
	fields["source"] = string(loaded.Source)
	fields["reconciled"] = report.Changed()

	s.mu.Lock()
	s.snap = snap
	s.open = true
	s.mu.Unlock()

	if err := s.persist.SaveLocal(ctx, snap); err != nil {
		return loaded.Source, fmt.Errorf("saving opened snapshot: %w", err)
	}
	return loaded.Source, nil
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() domain.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap.Clone()
}

// Now is the Store's clock, exposed so callers compute "today" the same way.
func (s *Store) Now() time.Time {
	return s.now()
}

// Subscribe registers fn for every change and returns a func that removes it.
// fn runs on the goroutine that made the change, after the Store lock is
// released.
func (s *Store) Subscribe(fn func(Change)) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// Reconcile applies calendar catch-up for the current time. Nothing is
// written when the snapshot is already current.
func (s *Store) Reconcile(ctx context.Context) (report reconcile.Report, err error) {
	started := time.Now()
	fields := map[string]any{}
	defer func() { s.observe(ctx, "reconcile", started, fields, err) }()

	s.mu.Lock()
	if !s.open {
		s.mu.Unlock()
		return reconcile.Report{}, ErrNotOpen
	}
	next, report := reconcile.Run(s.snap, s.now())
	if !report.Changed() {
		s.mu.Unlock()
		fields["changed"] = false
		return report, nil
	}
	fields["changed"] = true
	fields["shields_used"] = len(report.ShieldDays)
	fields["tasks_reopened"] = len(report.TasksReopened)
	res := ops.Result{Snapshot: next, Effects: []domain.Effect{}, Notices: reconcileNotices(report)}
	_, err = s.commitLocked(ctx, "reconcile", res)
	return report, err
}

func reconcileNotices(r reconcile.Report) []string {
	var out []string
	if r.ShieldsRefilled {
		out = append(out, fmt.Sprintf("New month: +%d shields per category", domain.MonthlyShieldRefill))
	}
	for _, d := range r.ShieldDays {
		out = append(out, fmt.Sprintf("Shield saved %s on %s", d.Category, d.DateISO))
	}
	if out == nil {
		out = []string{}
	}
	return out
}

// apply runs op against the current snapshot and commits its result.
func (s *Store) apply(ctx context.Context, name string, fields map[string]any, op func(domain.Snapshot, time.Time) (ops.Result, error)) (res ops.Result, err error) {
	started := time.Now()
	defer func() {
		if err == nil {
			fields["effects"] = len(res.Effects)
		}
		s.observe(ctx, name, started, fields, err)
	}()

	s.mu.Lock()
	if !s.open {
		s.mu.Unlock()
		return ops.Result{}, ErrNotOpen
	}
	res, err = op(s.snap, s.now())
	if err != nil {
		s.mu.Unlock()
		return ops.Result{}, err
	}
	return s.commitLocked(ctx, name, res)
}

// commitLocked installs res.Snapshot, persists it and notifies subscribers.
// It must be called with s.mu held and releases it. A local save failure is
// returned, but the in-memory state has already moved on.
func (s *Store) commitLocked(ctx context.Context, reason string, res ops.Result) (ops.Result, error) {
	s.snap = res.Snapshot
	saveErr := s.persist.SaveLocal(ctx, s.snap)
	s.persist.ScheduleCloudSave(s.snap)
	out := s.publishLocked(reason, res)
	if saveErr != nil {
		s.logger.Error("local save failed", "reason", reason, "error", saveErr)
		return out, fmt.Errorf("saving locally: %w", saveErr)
	}
	return out, nil
}

// publishLocked releases s.mu and hands the installed snapshot to
// subscribers.
func (s *Store) publishLocked(reason string, res ops.Result) ops.Result {
	subs := s.subscribersLocked()
	out := ops.Result{Snapshot: s.snap.Clone(), Effects: res.Effects, Notices: res.Notices}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(Change{Reason: reason, Snapshot: out.Snapshot.Clone(), Effects: out.Effects, Notices: out.Notices})
	}
	return out
}

func (s *Store) subscribersLocked() []func(Change) {
	ids := make([]int, 0, len(s.subs))
	for id := range s.subs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	fns := make([]func(Change), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, s.subs[id])
	}
	return fns
}

func (s *Store) observe(ctx context.Context, name string, started time.Time, fields map[string]any, err error) {
	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      name,
		StartedAt: started,
		Duration:  time.Since(started),
		Success:   err == nil,
		Err:       err,
		Fields:    fields,
	})
}

// Flush waits for pending cloud saves.
func (s *Store) Flush(ctx context.Context) error {
	return s.persist.Flush(ctx)
}
