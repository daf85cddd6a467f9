package postgres

import (
	"context"
	"database/sql"
	"time"

	"rentride-backend/internal/domain"
	"rentride-backend/internal/repository"
)

type couponRepository struct {
	db *sql.DB
}

func NewCouponRepository(db *sql.DB) repository.CouponRepository {
	return &couponRepository{db: db}
}

func (r *couponRepository) GetByID(ctx context.Context, id string) (*domain.Coupon, error) {
	c := &domain.Coupon{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, discount_percent, COALESCE(description, ''), time_expired, status, created_at, updated_at
		 FROM coupons WHERE id = $1`, id).
		Scan(&c.ID, &c.Name, &c.DiscountPercent, &c.Description, &c.TimeExpired, &c.Status, &c.CreatedAt, &c.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, domain.E(domain.CodeCouponNotFound, "coupon not found: "+id, domain.ErrCouponNotFound)
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *couponRepository) ExpirePast(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE coupons SET status = $1, updated_at = $2 WHERE status = $3 AND time_expired <= $4`,
		domain.CouponStatusExpired, now, domain.CouponStatusValid, now)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
