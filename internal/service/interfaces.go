package service

import (
	"context"
	"time"

	"github.com/alexanderramin/streakhq/internal/auth"
	"github.com/alexanderramin/streakhq/internal/domain"
	"github.com/alexanderramin/streakhq/internal/persist"
	"github.com/alexanderramin/streakhq/internal/repository"
)

// Persister is the storage the Store writes through. *persist.Adapter
// implements it.
type Persister interface {
	Load(ctx context.Context, now time.Time) (persist.LoadResult, error)
	SaveLocal(ctx context.Context, s domain.Snapshot) error
	ScheduleCloudSave(s domain.Snapshot)
	Replace(ctx context.Context, prev, next domain.Snapshot, reason string) error
	LoadCloud(ctx context.Context, local domain.Snapshot, now time.Time) (domain.Snapshot, bool, error)
	PushCloud(ctx context.Context, s domain.Snapshot) error
	Flush(ctx context.Context) error
	Backups(ctx context.Context, limit int) ([]repository.Backup, error)
}

// SessionNotifier pushes sign-in and sign-out events. *auth.Provider
// implements it.
type SessionNotifier interface {
	Subscribe(fn func(*auth.Session)) func()
}

// Change is delivered to Store subscribers after every state change.
type Change struct {
	Reason   string
	Snapshot domain.Snapshot
	Effects  []domain.Effect
	Notices  []string
}
