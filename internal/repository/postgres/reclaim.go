package postgres

import (
	"context"
	"database/sql"
	"time"

	"rentride-backend/internal/repository"
)

type reclaimRepository struct {
	db *sql.DB
}

func NewReclaimRepository(db *sql.DB) repository.ReclaimRepository {
	return &reclaimRepository{db: db}
}

func (r *reclaimRepository) Cancel(ctx context.Context, bookingID string) error {
	// Idempotent: the row may already be gone because the reclaim fired or
	// was cancelled earlier.
	_, err := r.db.ExecContext(ctx, `DELETE FROM booking_reclaims WHERE booking_id = $1`, bookingID)
	return err
}

func (r *reclaimRepository) ClaimDue(ctx context.Context, now time.Time, limit int32) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT booking_id FROM booking_reclaims WHERE due_at <= $1 ORDER BY due_at LIMIT $2`,
		now, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
