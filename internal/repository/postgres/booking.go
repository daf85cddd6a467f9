package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"time"

	"rentride-backend/internal/domain"
	"rentride-backend/internal/repository"

	"github.com/google/uuid"
)

type bookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(db *sql.DB) repository.BookingRepository {
	return &bookingRepository{db: db}
}

const bookingColumns = `id, renter_id, time_start, time_end, total_cents, discount_cents, coupon_id, penalty_type, penalty_value, min_cancel_hours, txn_code, status, created_at, updated_at`

func scanBooking(row interface{ Scan(...any) error }, b *domain.Booking) error {
	return row.Scan(&b.ID, &b.RenterID, &b.TimeStart, &b.TimeEnd, &b.TotalCents, &b.DiscountCents,
		&b.CouponID, &b.PenaltyType, &b.PenaltyValue, &b.MinCancelHours, &b.TxnCode, &b.Status,
		&b.CreatedAt, &b.UpdatedAt)
}

func (r *bookingRepository) CreateWithDetails(ctx context.Context, b *domain.Booking, reclaimDueAt time.Time) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Lock vehicles in sorted-ID order so concurrent multi-vehicle bookings
	// cannot deadlock each other.
	vehicleIDs := make([]string, 0, len(b.Details))
	for _, d := range b.Details {
		vehicleIDs = append(vehicleIDs, d.VehicleID)
	}
	sort.Strings(vehicleIDs)
	for _, vid := range vehicleIDs {
		var locked string
		err := tx.QueryRowContext(ctx, `SELECT id FROM vehicles WHERE id = $1 FOR UPDATE`, vid).Scan(&locked)
		if err == sql.ErrNoRows {
			return domain.E(domain.CodeNotFound, "vehicle not found: "+vid, domain.ErrNotFound)
		}
		if err != nil {
			return err
		}

		// Overlap check runs under the vehicle lock, so the second caller
		// always observes the first caller's slot before deciding.
		var conflicts int
		err = tx.QueryRowContext(ctx,
			`SELECT count(*) FROM booked_slots WHERE vehicle_id = $1 AND time_from < $3 AND $2 < time_to`,
			vid, b.TimeStart, b.TimeEnd).Scan(&conflicts)
		if err != nil {
			return err
		}
		if conflicts > 0 {
			return domain.E(domain.CodeSlotConflict,
				fmt.Sprintf("vehicle already reserved between %s and %s",
					b.TimeStart.Format(time.RFC3339), b.TimeEnd.Format(time.RFC3339)),
				domain.ErrSlotConflict)
		}
	}

	now := time.Now()
	_, err = tx.ExecContext(ctx,
		`INSERT INTO bookings (`+bookingColumns+`) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)`,
		b.ID, b.RenterID, b.TimeStart, b.TimeEnd, b.TotalCents, b.DiscountCents, b.CouponID,
		b.PenaltyType, b.PenaltyValue, b.MinCancelHours, b.TxnCode, b.Status, now, now)
	if err != nil {
		return err
	}
	b.CreatedAt = now
	b.UpdatedAt = now

	for i := range b.Details {
		d := &b.Details[i]
		d.BookingID = b.ID
		_, err = tx.ExecContext(ctx,
			`INSERT INTO booking_details (id, booking_id, vehicle_id, cost_cents, driver_fee_cents) VALUES ($1,$2,$3,$4,$5)`,
			d.ID, d.BookingID, d.VehicleID, d.CostCents, d.DriverFeeCents)
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO booked_slots (id, vehicle_id, time_from, time_to, created_at, updated_at) VALUES ($1,$2,$3,$4,$5,$6)`,
			uuid.NewString(), d.VehicleID, b.TimeStart, b.TimeEnd, now, now)
		if err != nil {
			return err
		}
	}

	// The reclaim entry commits with the booking, so the worker can never
	// fire before the booking row is durably visible.
	_, err = tx.ExecContext(ctx,
		`INSERT INTO booking_reclaims (booking_id, due_at, created_at) VALUES ($1,$2,$3)`,
		b.ID, reclaimDueAt, now)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *bookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	b := &domain.Booking{}
	err := scanBooking(r.db.QueryRowContext(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, id), b)
	if err == sql.ErrNoRows {
		return nil, domain.E(domain.CodeNotFound, "booking not found: "+id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, booking_id, vehicle_id, cost_cents, driver_fee_cents FROM booking_details WHERE booking_id = $1`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var d domain.BookingDetail
		if err := rows.Scan(&d.ID, &d.BookingID, &d.VehicleID, &d.CostCents, &d.DriverFeeCents); err != nil {
			return nil, err
		}
		b.Details = append(b.Details, d)
	}
	return b, rows.Err()
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, id string, from, to domain.BookingStatus) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE bookings SET status = $1, updated_at = $2 WHERE id = $3 AND status = $4`,
		to, time.Now(), id, from)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.E(domain.CodeIllegalTransition,
			"booking is no longer in "+string(from), domain.ErrIllegalTransition)
	}
	return nil
}

func (r *bookingRepository) HasActiveOverlap(ctx context.Context, renterID string, from, to time.Time) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT count(*) FROM bookings
		 WHERE renter_id = $1 AND status IN ('UNPAID','PENDING','CONFIRMED')
		   AND time_start < $3 AND $2 < time_end`,
		renterID, from, to).Scan(&count)
	return count > 0, err
}

func (r *bookingRepository) ListByRenter(ctx context.Context, renterID, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	return r.list(ctx, `renter_id = $1`, renterID, status, page, pageSize)
}

func (r *bookingRepository) ListByProvider(ctx context.Context, providerID, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	filter := `id IN (SELECT bd.booking_id FROM booking_details bd JOIN vehicles v ON v.id = bd.vehicle_id WHERE v.provider_id = $1)`
	return r.list(ctx, filter, providerID, status, page, pageSize)
}

func (r *bookingRepository) list(ctx context.Context, filter, filterArg, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	offset := (page - 1) * pageSize
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE ` + filter
	args := []interface{}{filterArg}
	argIdx := 2
	if status != "" {
		query += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, status)
		argIdx++
	}

	var count int32
	countQuery := "SELECT count(*) FROM (" + query + ") as sub"
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		var b domain.Booking
		if err := scanBooking(rows, &b); err != nil {
			return nil, 0, err
		}
		bookings = append(bookings, b)
	}
	return bookings, count, rows.Err()
}

func (r *bookingRepository) ReclaimIfUnpaid(ctx context.Context, id string) (bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	var b domain.Booking
	err = scanBooking(tx.QueryRowContext(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE id = $1 FOR UPDATE`, id), &b)
	if err == sql.ErrNoRows {
		// Already gone; just drop the queue entry.
		if _, err := tx.ExecContext(ctx, `DELETE FROM booking_reclaims WHERE booking_id = $1`, id); err != nil {
			return false, err
		}
		return false, tx.Commit()
	}
	if err != nil {
		return false, err
	}

	if b.Status != domain.BookingStatusUnpaid {
		// Payment raced the timer and won; the fire is a no-op.
		if _, err := tx.ExecContext(ctx, `DELETE FROM booking_reclaims WHERE booking_id = $1`, id); err != nil {
			return false, err
		}
		return false, tx.Commit()
	}

	vehicleIDs, err := detailVehicleIDs(ctx, tx, id)
	if err != nil {
		return false, err
	}

	// The teardown is all-or-nothing: a failed release aborts the
	// transaction (lib/pq refuses further statements after an error), the
	// queue entry survives the rollback, and the next poll retries.
	for _, vid := range vehicleIDs {
		if _, err := releaseSlots(ctx, tx, vid, b.TimeStart, b.TimeEnd); err != nil {
			return false, err
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM booking_details WHERE booking_id = $1`, id); err != nil {
		return false, err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM bookings WHERE id = $1`, id); err != nil {
		return false, err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM booking_reclaims WHERE booking_id = $1`, id); err != nil {
		return false, err
	}
	if err := tx.Commit(); err != nil {
		return false, err
	}
	return true, nil
}

func detailVehicleIDs(ctx context.Context, tx *sql.Tx, bookingID string) ([]string, error) {
	rows, err := tx.QueryContext(ctx,
		`SELECT vehicle_id FROM booking_details WHERE booking_id = $1`, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var vid string
		if err := rows.Scan(&vid); err != nil {
			return nil, err
		}
		ids = append(ids, vid)
	}
	return ids, rows.Err()
}
