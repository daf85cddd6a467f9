package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"rentride-backend/internal/domain"
	"rentride-backend/internal/repository"

	"github.com/lib/pq"
)

type settlementRepository struct {
	db *sql.DB
}

func NewSettlementRepository(db *sql.DB) repository.SettlementRepository {
	return &settlementRepository{db: db}
}

func (r *settlementRepository) ConfirmPayment(ctx context.Context, bookingID, txnCode string, contract *domain.Contract) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now()
	res, err := tx.ExecContext(ctx,
		`UPDATE bookings SET status = $1, txn_code = $2, updated_at = $3 WHERE id = $4 AND status = $5`,
		domain.BookingStatusPending, txnCode, now, bookingID, domain.BookingStatusUnpaid)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.E(domain.CodeIllegalTransition,
			"booking is not awaiting payment", domain.ErrIllegalTransition)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO contracts (id, booking_id, provider_id, status, cost_settlement_cents, created_at, updated_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		contract.ID, contract.BookingID, contract.ProviderID, contract.Status,
		contract.CostSettlementCents, now, now)
	if err != nil {
		return fmt.Errorf("create contract: %w", err)
	}

	// Disarm the reclaim before this transaction commits PENDING; the
	// reclaimer's own status gate covers the window in between.
	if _, err := tx.ExecContext(ctx, `DELETE FROM booking_reclaims WHERE booking_id = $1`, bookingID); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *settlementRepository) FinalizeReturn(ctx context.Context, bookingID string, final *domain.FinalContract, payout *domain.WalletTransaction) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// A second confirmation must report the duplicate, not trip over the
	// status gate of an already-completed booking, so the check comes first.
	var existing int
	err = tx.QueryRowContext(ctx,
		`SELECT count(*) FROM final_contracts WHERE contract_id = $1`, final.ContractID).Scan(&existing)
	if err != nil {
		return err
	}
	if existing > 0 {
		return domain.E(domain.CodeDuplicateFinalContract,
			"final contract already exists for contract "+final.ContractID,
			domain.ErrDuplicateFinalContract)
	}

	now := time.Now()
	// RECEIVED_BY_CUSTOMER -> RETURNED. Zero rows is fine: a booking already
	// at RETURNED from an earlier attempt resumes at the next gate.
	_, err = tx.ExecContext(ctx,
		`UPDATE bookings SET status = $1, updated_at = $2 WHERE id = $3 AND status = $4`,
		domain.BookingStatusReturned, now, bookingID, domain.BookingStatusReceivedByCustomer)
	if err != nil {
		return err
	}

	res, err := tx.ExecContext(ctx,
		`UPDATE bookings SET status = $1, updated_at = $2 WHERE id = $3 AND status = $4`,
		domain.BookingStatusCompleted, now, bookingID, domain.BookingStatusReturned)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.E(domain.CodeIllegalTransition,
			"booking is not ready to complete", domain.ErrIllegalTransition)
	}

	res, err = tx.ExecContext(ctx,
		`UPDATE contracts SET status = $1, cost_settlement_cents = $2, updated_at = $3
		 WHERE id = $4 AND status IN ($5, $6)`,
		domain.ContractStatusFinished, final.CostSettlementCents, now,
		final.ContractID, domain.ContractStatusProcessing, domain.ContractStatusRenting)
	if err != nil {
		return err
	}
	n, err = res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.E(domain.CodeIllegalTransition,
			"contract is already closed", domain.ErrIllegalTransition)
	}

	// final_contracts.contract_id is unique, which catches a racing second
	// confirmation that slipped past the count above.
	_, err = tx.ExecContext(ctx,
		`INSERT INTO final_contracts (id, contract_id, time_finish, cost_settlement_cents, note, created_at)
		 VALUES ($1,$2,$3,$4,$5,$6)`,
		final.ID, final.ContractID, final.TimeFinish, final.CostSettlementCents, final.Note, now)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.E(domain.CodeDuplicateFinalContract,
				"final contract already exists for contract "+final.ContractID,
				domain.ErrDuplicateFinalContract)
		}
		return fmt.Errorf("create final contract: %w", err)
	}

	// The payout commits with the completion; a failed posting rolls the
	// whole settlement back so a retry starts clean.
	if err := postWalletTxn(ctx, tx, payout); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *settlementRepository) CancelBooking(ctx context.Context, bookingID string, expected domain.BookingStatus, penaltyCents int64, postings []domain.WalletTransaction) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var b domain.Booking
	err = scanBooking(tx.QueryRowContext(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE id = $1 FOR UPDATE`, bookingID), &b)
	if err == sql.ErrNoRows {
		return domain.E(domain.CodeNotFound, "booking not found: "+bookingID, domain.ErrNotFound)
	}
	if err != nil {
		return err
	}
	// The postings were priced against the status the caller read; a payment
	// (or anything else) that committed in between invalidates them even
	// when the new status is itself cancellable.
	if b.Status != expected {
		return domain.E(domain.CodeIllegalTransition,
			"booking moved from "+string(expected)+" to "+string(b.Status)+" during cancellation",
			domain.ErrIllegalTransition)
	}
	if !b.Status.CanTransitionTo(domain.BookingStatusCancelled) {
		return domain.E(domain.CodeIllegalTransition,
			"booking cannot be cancelled from "+string(b.Status), domain.ErrIllegalTransition)
	}

	now := time.Now()
	vehicleIDs, err := detailVehicleIDs(ctx, tx, bookingID)
	if err != nil {
		return err
	}
	for _, vid := range vehicleIDs {
		if _, err := releaseSlots(ctx, tx, vid, b.TimeStart, b.TimeEnd); err != nil {
			return err
		}
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE bookings SET status = $1, assessed_penalty_cents = $2, updated_at = $3 WHERE id = $4`,
		domain.BookingStatusCancelled, penaltyCents, now, bookingID)
	if err != nil {
		return err
	}

	// No contract exists for an UNPAID cancellation; zero rows is fine.
	_, err = tx.ExecContext(ctx,
		`UPDATE contracts SET status = $1, updated_at = $2 WHERE booking_id = $3 AND status IN ($4, $5)`,
		domain.ContractStatusCancelled, now, bookingID,
		domain.ContractStatusProcessing, domain.ContractStatusRenting)
	if err != nil {
		return err
	}

	for i := range postings {
		p := &postings[i]
		if err := postWalletTxn(ctx, tx, p); err != nil {
			return err
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM booking_reclaims WHERE booking_id = $1`, bookingID); err != nil {
		return err
	}
	return tx.Commit()
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
