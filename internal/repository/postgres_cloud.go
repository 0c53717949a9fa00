package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/alexanderramin/streakhq/internal/db"
)

// PostgresCloudRepo implements CloudRepo against a hosted Postgres user_data
// table with a JSONB document per user.
type PostgresCloudRepo struct {
	db db.DBTX
}

func NewPostgresCloudRepo(conn db.DBTX) *PostgresCloudRepo {
	return &PostgresCloudRepo{db: conn}
}

func (r *PostgresCloudRepo) Load(ctx context.Context, userID string) (*CloudRecord, error) {
	var (
		rec       CloudRecord
		data      []byte
		updatedAt time.Time
	)
	query := `SELECT user_id, data, updated_at FROM user_data WHERE user_id = $1`
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&rec.UserID, &data, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("cloud data for %s: %w", userID, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning cloud data for %s: %w", userID, describePQ(err))
	}
	rec.Data = data
	rec.UpdatedAt = updatedAt
	return &rec, nil
}

func (r *PostgresCloudRepo) Save(ctx context.Context, rec CloudRecord) error {
	updatedAt := rec.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now()
	}
	query := `INSERT INTO user_data (user_id, data, updated_at) VALUES ($1, $2::jsonb, $3)
		ON CONFLICT (user_id) DO UPDATE SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at`
	if _, err := r.db.ExecContext(ctx, query, rec.UserID, string(rec.Data), updatedAt.UTC()); err != nil {
		return fmt.Errorf("saving cloud data for %s: %w", rec.UserID, describePQ(err))
	}
	return nil
}

// describePQ adds the Postgres error class to driver errors so logs say
// whether the table is missing or the document was rejected.
func describePQ(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}
	return fmt.Errorf("%s (%s): %w", pqErr.Code.Name(), pqErr.Code, err)
}
