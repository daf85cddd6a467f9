package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"rentride-backend/internal/domain"
	"rentride-backend/internal/repository"
)

type contractRepository struct {
	db *sql.DB
}

func NewContractRepository(db *sql.DB) repository.ContractRepository {
	return &contractRepository{db: db}
}

const contractColumns = `id, booking_id, provider_id, status, cost_settlement_cents, created_at, updated_at`

func (r *contractRepository) GetByBookingID(ctx context.Context, bookingID string) (*domain.Contract, error) {
	c := &domain.Contract{}
	err := r.db.QueryRowContext(ctx,
		`SELECT `+contractColumns+` FROM contracts WHERE booking_id = $1`, bookingID).
		Scan(&c.ID, &c.BookingID, &c.ProviderID, &c.Status, &c.CostSettlementCents, &c.CreatedAt, &c.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, domain.E(domain.CodeNotFound, "no contract for booking "+bookingID, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *contractRepository) UpdateStatus(ctx context.Context, id string, from, to domain.ContractStatus) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE contracts SET status = $1, updated_at = $2 WHERE id = $3 AND status = $4`,
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
			fmt.Sprintf("contract is no longer in %s", from), domain.ErrIllegalTransition)
	}
	return nil
}

func (r *contractRepository) ListByProvider(ctx context.Context, providerID string, page, pageSize int32) ([]domain.Contract, int32, error) {
	offset := (page - 1) * pageSize

	var count int32
	err := r.db.QueryRowContext(ctx,
		`SELECT count(*) FROM contracts WHERE provider_id = $1`, providerID).Scan(&count)
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT `+contractColumns+` FROM contracts WHERE provider_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		providerID, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var contracts []domain.Contract
	for rows.Next() {
		var c domain.Contract
		if err := rows.Scan(&c.ID, &c.BookingID, &c.ProviderID, &c.Status, &c.CostSettlementCents, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, 0, err
		}
		contracts = append(contracts, c)
	}
	return contracts, count, rows.Err()
}

func (r *contractRepository) GetFinalByContractID(ctx context.Context, contractID string) (*domain.FinalContract, error) {
	f := &domain.FinalContract{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, contract_id, time_finish, cost_settlement_cents, note, created_at
		 FROM final_contracts WHERE contract_id = $1`, contractID).
		Scan(&f.ID, &f.ContractID, &f.TimeFinish, &f.CostSettlementCents, &f.Note, &f.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, domain.E(domain.CodeNotFound, "no final contract for contract "+contractID, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return f, nil
}
