package db_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/streakhq/internal/db"
)

func openUoW(t *testing.T) (*sql.DB, *db.SQLiteUnitOfWork) {
	t.Helper()
	database, err := db.OpenDB(db.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return database, db.NewSQLiteUnitOfWork(database)
}

func putKey(ctx context.Context, tx db.DBTX, key string) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO kv_store (key, value, updated_at) VALUES (?, '{}', '2026-05-10T09:00:00Z')`, key)
	return err
}

func hasKey(t *testing.T, database *sql.DB, key string) bool {
	t.Helper()
	var n int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM kv_store WHERE key = ?`, key).Scan(&n))
	return n == 1
}

func TestWithinTx_CommitOnSuccess(t *testing.T) {
	database, uow := openUoW(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		return putKey(ctx, tx, "k1")
	})
	require.NoError(t, err)
	assert.True(t, hasKey(t, database, "k1"))
}

func TestWithinTx_RollbackOnError(t *testing.T) {
	database, uow := openUoW(t)
	boom := errors.New("deliberate failure")

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if err := putKey(ctx, tx, "k2"); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.False(t, hasKey(t, database, "k2"))
}

func TestWithinTx_RollbackOnPanic(t *testing.T) {
	database, uow := openUoW(t)

	assert.Panics(t, func() {
		_ = uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
			_ = putKey(ctx, tx, "k3")
			panic("boom")
		})
	})
	assert.False(t, hasKey(t, database, "k3"))
}
