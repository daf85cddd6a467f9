package domain

import "time"

// BookedSlot is one reserved half-open interval [TimeFrom, TimeTo) for a
// vehicle. Created atomically with its booking; deleted when the booking is
// cancelled or reclaimed.
type BookedSlot struct {
	ID        string    `json:"id"`
	VehicleID string    `json:"vehicle_id"`
	TimeFrom  time.Time `json:"time_from"`
	TimeTo    time.Time `json:"time_to"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IntervalsOverlap is the half-open overlap test. Boundary-touching windows
// (a ends exactly when b starts) do not overlap.
func IntervalsOverlap(aFrom, aTo, bFrom, bTo time.Time) bool {
	return aFrom.Before(bTo) && bFrom.Before(aTo)
}
