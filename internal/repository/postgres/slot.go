package postgres

import (
	"context"
	"database/sql"
	"time"

	"rentride-backend/internal/domain"
	"rentride-backend/internal/repository"
)

type slotRepository struct {
	db *sql.DB
}

func NewSlotRepository(db *sql.DB) repository.SlotRepository {
	return &slotRepository{db: db}
}

func (r *slotRepository) ListActive(ctx context.Context, vehicleID string, after time.Time) ([]domain.BookedSlot, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, vehicle_id, time_from, time_to, created_at, updated_at
		 FROM booked_slots WHERE vehicle_id = $1 AND time_to > $2 ORDER BY time_from`,
		vehicleID, after)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var slots []domain.BookedSlot
	for rows.Next() {
		var s domain.BookedSlot
		if err := rows.Scan(&s.ID, &s.VehicleID, &s.TimeFrom, &s.TimeTo, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		slots = append(slots, s)
	}
	return slots, rows.Err()
}

// releaseSlots removes the vehicle's entries contained in the window. Both
// the reclaim teardown and the cancellation unit release through here, inside
// their own transactions. Removing nothing is success.
func releaseSlots(ctx context.Context, tx *sql.Tx, vehicleID string, from, to time.Time) (int64, error) {
	res, err := tx.ExecContext(ctx,
		`DELETE FROM booked_slots WHERE vehicle_id = $1 AND time_from >= $2 AND time_to <= $3`,
		vehicleID, from, to)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// DeleteOrphans removes slot entries no active booking accounts for: the
// safety sweep behind the reclaim and cancellation teardowns.
func (r *slotRepository) DeleteOrphans(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM booked_slots s
		 WHERE NOT EXISTS (
		     SELECT 1 FROM bookings b
		     JOIN booking_details bd ON bd.booking_id = b.id
		     WHERE bd.vehicle_id = s.vehicle_id
		       AND b.time_start <= s.time_from AND s.time_to <= b.time_end
		       AND b.status IN ('UNPAID','PENDING','CONFIRMED','DELIVERED','RECEIVED_BY_CUSTOMER')
		 )`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
