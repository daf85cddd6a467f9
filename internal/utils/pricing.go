package utils

import (
	"time"

	"rentride-backend/internal/domain"
)

// RentalQuote is the per-vehicle line cost for a booking window.
type RentalQuote struct {
	Days          int64
	CostCents     int64
	DriverFeeCents int64
	TotalCents    int64
}

// RentalDays converts a half-open window to billable days: any started
// 24-hour block counts as a full day, with a minimum of one.
func RentalDays(start, end time.Time) int64 {
	if !start.Before(end) {
		return 0
	}
	hours := end.Sub(start).Hours()
	days := int64(hours / 24)
	if hours > float64(days)*24 {
		days++
	}
	if days < 1 {
		days = 1
	}
	return days
}

// QuoteVehicle prices one vehicle for the window from its day rate, adding
// the driver fee when a driver is requested.
func QuoteVehicle(v *domain.Vehicle, start, end time.Time, withDriver bool) RentalQuote {
	days := RentalDays(start, end)
	q := RentalQuote{
		Days:      days,
		CostCents: days * v.CostPerDayCents,
	}
	if withDriver {
		q.DriverFeeCents = days * v.DriverFeeCents
	}
	q.TotalCents = q.CostCents + q.DriverFeeCents
	return q
}

// ApplyDiscount returns the discount amount for a percent-based coupon.
func ApplyDiscount(totalCents, discountPercent int64) int64 {
	if discountPercent <= 0 {
		return 0
	}
	if discountPercent > 100 {
		discountPercent = 100
	}
	return totalCents * discountPercent / 100
}
