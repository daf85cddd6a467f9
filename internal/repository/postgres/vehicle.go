package postgres

import (
	"context"
	"database/sql"

	"rentride-backend/internal/domain"
	"rentride-backend/internal/repository"
)

type vehicleRepository struct {
	db *sql.DB
}

func NewVehicleRepository(db *sql.DB) repository.VehicleRepository {
	return &vehicleRepository{db: db}
}

func (r *vehicleRepository) GetByID(ctx context.Context, id string) (*domain.Vehicle, error) {
	v := &domain.Vehicle{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, provider_id, type, license_plate, cost_per_day_cents, driver_fee_cents, status, created_at, updated_at
		 FROM vehicles WHERE id = $1`, id).
		Scan(&v.ID, &v.ProviderID, &v.Type, &v.LicensePlate, &v.CostPerDayCents, &v.DriverFeeCents, &v.Status, &v.CreatedAt, &v.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, domain.E(domain.CodeNotFound, "vehicle not found: "+id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}
