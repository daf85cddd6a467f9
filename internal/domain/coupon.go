package domain

import "time"

type CouponStatus string

const (
	CouponStatusValid   CouponStatus = "VALID"
	CouponStatusExpired CouponStatus = "EXPIRED"
)

// Coupon applies a percentage discount to a booking total.
type Coupon struct {
	ID              string       `json:"id"`
	Name            string       `json:"name"`
	DiscountPercent int64        `json:"discount_percent"`
	Description     string       `json:"description"`
	TimeExpired     time.Time    `json:"time_expired"`
	Status          CouponStatus `json:"status"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
}

// Usable reports whether the coupon can still be applied at now.
func (c *Coupon) Usable(now time.Time) bool {
	return c.Status == CouponStatusValid && now.Before(c.TimeExpired)
}
