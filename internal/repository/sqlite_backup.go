package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/streakhq/internal/db"
)

// SQLiteBackupRepo implements BackupRepo over the snapshot_backups table.
type SQLiteBackupRepo struct {
	db db.DBTX
}

func NewSQLiteBackupRepo(conn db.DBTX) *SQLiteBackupRepo {
	return &SQLiteBackupRepo{db: conn}
}

func (r *SQLiteBackupRepo) Create(ctx context.Context, b *Backup) error {
	query := `INSERT INTO snapshot_backups (reason, data, created_at, user_id) VALUES (?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query, b.Reason, string(b.Data), formatStoredTime(b.CreatedAt), nullableString(b.UserID))
	if err != nil {
		return fmt.Errorf("inserting backup: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading backup id: %w", err)
	}
	b.ID = id
	return nil
}

func (r *SQLiteBackupRepo) Get(ctx context.Context, id int64) (*Backup, error) {
	query := `SELECT id, reason, data, created_at, user_id FROM snapshot_backups WHERE id = ?`
	b, err := scanBackup(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("backup %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning backup %d: %w", id, err)
	}
	return b, nil
}

// List returns the newest backups first.
func (r *SQLiteBackupRepo) List(ctx context.Context, limit int) ([]Backup, error) {
	query := `SELECT id, reason, data, created_at, user_id FROM snapshot_backups
		ORDER BY id DESC LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("listing backups: %w", err)
	}
	defer rows.Close()

	var out []Backup
	for rows.Next() {
		b, err := scanBackup(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning backup: %w", err)
		}
		out = append(out, *b)
	}
	return out, rows.Err()
}

// Prune deletes all but the newest keep backups.
func (r *SQLiteBackupRepo) Prune(ctx context.Context, keep int) (int64, error) {
	query := `DELETE FROM snapshot_backups WHERE id NOT IN (
		SELECT id FROM snapshot_backups ORDER BY id DESC LIMIT ?)`
	res, err := r.db.ExecContext(ctx, query, keep)
	if err != nil {
		return 0, fmt.Errorf("pruning backups: %w", err)
	}
	return res.RowsAffected()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBackup(row rowScanner) (*Backup, error) {
	var (
		b         Backup
		data      string
		createdAt string
		userID    sql.NullString
	)
	if err := row.Scan(&b.ID, &b.Reason, &data, &createdAt, &userID); err != nil {
		return nil, err
	}
	b.Data = []byte(data)
	b.CreatedAt = parseStoredTime(createdAt)
	b.UserID = stringOrEmpty(userID)
	return &b, nil
}
