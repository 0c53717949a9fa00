// Package persist moves snapshots between memory, the local store and the
// cloud blob store. The local store is the source of truth; cloud saves are
// debounced and best-effort.
package persist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/alexanderramin/streakhq/internal/auth"
	"github.com/alexanderramin/streakhq/internal/db"
	"github.com/alexanderramin/streakhq/internal/domain"
	"github.com/alexanderramin/streakhq/internal/migrate"
	"github.com/alexanderramin/streakhq/internal/repository"
)

// CurrentKey is where the current schema is stored locally.
const CurrentKey = "streakhq_data_v3"

// LegacyKeys are tried in order when CurrentKey is missing or unreadable.
var LegacyKeys = []string{"streakhq_data_v2", "streakhq_data"}

const (
	DefaultDebounce    = 2 * time.Second
	DefaultBackupLimit = 20
)

var (
	ErrNoSession     = errors.New("no active session")
	ErrCloudDisabled = errors.New("cloud sync is not configured")
)

// Source says where Load found the snapshot.
type Source string

const (
	SourceCurrent Source = "current"
	SourceLegacy  Source = "legacy"
	SourceSeed    Source = "seed"
	SourceCloud   Source = "cloud"
)

type LoadResult struct {
	Snapshot domain.Snapshot
	Source   Source
	Key      string
}

// SessionSource reports the signed-in user, or nil.
type SessionSource interface {
	Current(ctx context.Context) (*auth.Session, error)
}

type Adapter struct {
	uow         db.UnitOfWork
	kv          repository.KVRepo
	backups     repository.BackupRepo
	cloud       repository.CloudRepo
	sessions    SessionSource
	debounce    time.Duration
	backupLimit int
	logger      *slog.Logger
	now         func() time.Time

	mu       sync.Mutex
	timer    *time.Timer
	pending  *domain.Snapshot
	inflight sync.WaitGroup
}

type Option func(*Adapter)

// WithCloud enables cloud saves for whoever sessions reports as signed in.
func WithCloud(cloud repository.CloudRepo, sessions SessionSource) Option {
	return func(a *Adapter) {
		a.cloud = cloud
		a.sessions = sessions
	}
}

func WithDebounce(d time.Duration) Option {
	return func(a *Adapter) { a.debounce = d }
}

func WithLogger(l *slog.Logger) Option {
	return func(a *Adapter) { a.logger = l }
}

func WithBackupLimit(n int) Option {
	return func(a *Adapter) { a.backupLimit = n }
}

func WithClock(now func() time.Time) Option {
	return func(a *Adapter) { a.now = now }
}

// NewAdapter builds an adapter over the local database. uow must wrap the
// same database as conn.
func NewAdapter(conn db.DBTX, uow db.UnitOfWork, opts ...Option) *Adapter {
	a := &Adapter{
		uow:         uow,
		kv:          repository.NewSQLiteKVRepo(conn),
		backups:     repository.NewSQLiteBackupRepo(conn),
		debounce:    DefaultDebounce,
		backupLimit: DefaultBackupLimit,
		logger:      slog.New(slog.DiscardHandler),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// CloudEnabled reports whether a cloud store is configured.
func (a *Adapter) CloudEnabled() bool {
	return a.cloud != nil
}

// Load reads the local snapshot, falling back through the legacy keys and
// finally to a fresh seed. Unreadable blobs are logged and skipped; only a
// storage failure is returned as an error.
func (a *Adapter) Load(ctx context.Context, now time.Time) (LoadResult, error) {
	keys := append([]string{CurrentKey}, LegacyKeys...)
	for _, key := range keys {
		raw, err := a.kv.Get(ctx, key)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				continue
			}
			return LoadResult{}, fmt.Errorf("loading %s: %w", key, err)
		}
		snap, err := migrate.Migrate([]byte(raw), now)
		if err != nil {
			a.logger.Warn("skipping unreadable snapshot", "key", key, "error", err)
			continue
		}
		source := SourceCurrent
		if key != CurrentKey {
			source = SourceLegacy
			a.logger.Info("recovered snapshot from legacy key", "key", key)
		}
		return LoadResult{Snapshot: snap, Source: source, Key: key}, nil
	}
	a.logger.Info("no stored snapshot, starting from seed")
	return LoadResult{Snapshot: domain.NewSeed(now), Source: SourceSeed}, nil
}

// SaveLocal writes s under CurrentKey.
func (a *Adapter) SaveLocal(ctx context.Context, s domain.Snapshot) error {
	return saveTo(ctx, a.kv, s)
}

func saveTo(ctx context.Context, kv repository.KVRepo, s domain.Snapshot) error {
	b, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	if err := kv.Put(ctx, CurrentKey, string(b)); err != nil {
		return fmt.Errorf("saving snapshot: %w", err)
	}
	return nil
}

// Replace archives prev as a backup and stores next in one transaction. It
// is used for destructive replaces such as reset and import.
func (a *Adapter) Replace(ctx context.Context, prev, next domain.Snapshot, reason string) error {
	prevJSON, err := json.Marshal(prev)
	if err != nil {
		return fmt.Errorf("encoding backup: %w", err)
	}
	userID := ""
	if sess := a.session(ctx); sess != nil {
		userID = sess.UserID
	}

	return a.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		backups := repository.NewSQLiteBackupRepo(tx)
		b := &repository.Backup{Reason: reason, UserID: userID, Data: prevJSON, CreatedAt: a.now()}
		if err := backups.Create(ctx, b); err != nil {
			return fmt.Errorf("archiving snapshot: %w", err)
		}
		if err := saveTo(ctx, repository.NewSQLiteKVRepo(tx), next); err != nil {
			return err
		}
		if a.backupLimit > 0 {
			if _, err := backups.Prune(ctx, a.backupLimit); err != nil {
				return fmt.Errorf("pruning backups: %w", err)
			}
		}
		return nil
	})
}

// Backups lists archived snapshots, newest first.
func (a *Adapter) Backups(ctx context.Context, limit int) ([]repository.Backup, error) {
	return a.backups.List(ctx, limit)
}

// ScheduleCloudSave queues s for the cloud. Calls within the debounce window
// collapse into one save of the latest snapshot.
func (a *Adapter) ScheduleCloudSave(s domain.Snapshot) {
	if a.cloud == nil {
		return
	}
	snap := s.Clone()

	a.mu.Lock()
	defer a.mu.Unlock()
	a.pending = &snap
	if a.timer != nil {
		a.timer.Stop()
	}
	a.timer = time.AfterFunc(a.debounce, a.fire)
}

func (a *Adapter) fire() {
	a.mu.Lock()
	snap := a.pending
	a.pending = nil
	a.timer = nil
	if snap != nil {
		a.inflight.Add(1)
	}
	a.mu.Unlock()

	if snap == nil {
		return
	}
	defer a.inflight.Done()
	if err := a.PushCloud(context.Background(), *snap); err != nil && !errors.Is(err, ErrNoSession) {
		a.logger.Error("cloud save failed", "error", err)
	}
}

// Flush runs any pending cloud save now and waits for saves in flight.
func (a *Adapter) Flush(ctx context.Context) error {
	a.mu.Lock()
	snap := a.pending
	a.pending = nil
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
	a.mu.Unlock()

	var err error
	if snap != nil {
		err = a.PushCloud(ctx, *snap)
		if errors.Is(err, ErrNoSession) {
			err = nil
		}
	}
	a.inflight.Wait()
	return err
}

// PushCloud saves s for the current user right away.
func (a *Adapter) PushCloud(ctx context.Context, s domain.Snapshot) error {
	if a.cloud == nil {
		return ErrCloudDisabled
	}
	sess := a.session(ctx)
	if sess == nil {
		return ErrNoSession
	}
	b, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	rec := repository.CloudRecord{UserID: sess.UserID, Data: b, UpdatedAt: a.now()}
	if err := a.cloud.Save(ctx, rec); err != nil {
		return fmt.Errorf("pushing snapshot: %w", err)
	}
	a.logger.Debug("cloud save", "user", sess.UserID, "bytes", len(b))
	return nil
}

// LoadCloud fetches the current user's cloud snapshot and overlays local
// settings onto it. found is false when there is no session or the user has
// never saved; local is returned unchanged then.
func (a *Adapter) LoadCloud(ctx context.Context, local domain.Snapshot, now time.Time) (snap domain.Snapshot, found bool, err error) {
	if a.cloud == nil {
		return local, false, nil
	}
	sess := a.session(ctx)
	if sess == nil {
		return local, false, nil
	}
	rec, err := a.cloud.Load(ctx, sess.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return local, false, nil
		}
		return local, false, fmt.Errorf("loading cloud snapshot: %w", err)
	}
	remote, err := migrate.Migrate(rec.Data, now)
	if err != nil {
		return local, false, fmt.Errorf("decoding cloud snapshot: %w", err)
	}
	remote.Settings = MergeSettings(local.Settings, remote.Settings)
	return remote, true, nil
}

func (a *Adapter) session(ctx context.Context) *auth.Session {
	if a.sessions == nil {
		return nil
	}
	sess, err := a.sessions.Current(ctx)
	if err != nil {
		a.logger.Warn("reading session", "error", err)
		return nil
	}
	return sess
}
