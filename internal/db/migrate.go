package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate applies every schema statement. Statements are written to be safe
// to re-run on an up-to-date database.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Columns added by ALTER TABLE already exist on re-run.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	// Local snapshot blobs under versioned keys, plus the session token.
	`CREATE TABLE IF NOT EXISTS kv_store (
		key        TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	// Snapshots archived before a destructive replace (import, reset).
	`CREATE TABLE IF NOT EXISTS snapshot_backups (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		reason     TEXT NOT NULL,
		data       TEXT NOT NULL,
		created_at TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_snapshot_backups_created ON snapshot_backups(created_at)`,
	`ALTER TABLE snapshot_backups ADD COLUMN user_id TEXT`,

	// Cloud blob store for the sqlite cloud driver: one document per user.
	`CREATE TABLE IF NOT EXISTS user_data (
		user_id    TEXT PRIMARY KEY,
		data       TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,
}
