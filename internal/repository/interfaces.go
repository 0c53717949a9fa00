package repository

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a lookup matches nothing. It is a normal
// outcome, distinct from a storage failure.
var ErrNotFound = errors.New("not found")

// KVRepo stores opaque string values under string keys.
type KVRepo interface {
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Backup is a snapshot archived before a destructive replace.
type Backup struct {
	ID        int64
	Reason    string
	UserID    string
	Data      []byte
	CreatedAt time.Time
}

type BackupRepo interface {
	Create(ctx context.Context, b *Backup) error
	Get(ctx context.Context, id int64) (*Backup, error)
	List(ctx context.Context, limit int) ([]Backup, error)
	Prune(ctx context.Context, keep int) (int64, error)
}

// CloudRecord is one user's remote snapshot document.
type CloudRecord struct {
	UserID    string
	Data      []byte
	UpdatedAt time.Time
}

// CloudRepo is the remote blob store keyed by user id. Load returns
// ErrNotFound when the user has never saved.
type CloudRepo interface {
	Load(ctx context.Context, userID string) (*CloudRecord, error)
	Save(ctx context.Context, rec CloudRecord) error
}
