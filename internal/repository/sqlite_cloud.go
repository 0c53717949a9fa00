package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/streakhq/internal/db"
)

// SQLiteCloudRepo implements CloudRepo over a user_data table in SQLite. It
// backs the "sqlite" cloud driver: a shared file that several machines can
// reach, or a local stand-in when no hosted database is configured.
type SQLiteCloudRepo struct {
	db db.DBTX
}

func NewSQLiteCloudRepo(conn db.DBTX) *SQLiteCloudRepo {
	return &SQLiteCloudRepo{db: conn}
}

func (r *SQLiteCloudRepo) Load(ctx context.Context, userID string) (*CloudRecord, error) {
	var (
		rec       CloudRecord
		data      string
		updatedAt string
	)
	query := `SELECT user_id, data, updated_at FROM user_data WHERE user_id = ?`
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&rec.UserID, &data, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("cloud data for %s: %w", userID, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning cloud data for %s: %w", userID, err)
	}
	rec.Data = []byte(data)
	rec.UpdatedAt = parseStoredTime(updatedAt)
	return &rec, nil
}

func (r *SQLiteCloudRepo) Save(ctx context.Context, rec CloudRecord) error {
	query := `INSERT INTO user_data (user_id, data, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`
	if _, err := r.db.ExecContext(ctx, query, rec.UserID, string(rec.Data), formatStoredTime(rec.UpdatedAt)); err != nil {
		return fmt.Errorf("saving cloud data for %s: %w", rec.UserID, err)
	}
	return nil
}
