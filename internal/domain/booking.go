package domain

import (
	"time"
)

type BookingStatus string

const (
	BookingStatusUnpaid             BookingStatus = "UNPAID"
	BookingStatusPending            BookingStatus = "PENDING"
	BookingStatusConfirmed          BookingStatus = "CONFIRMED"
	BookingStatusDelivered          BookingStatus = "DELIVERED"
	BookingStatusReceivedByCustomer BookingStatus = "RECEIVED_BY_CUSTOMER"
	BookingStatusReturned           BookingStatus = "RETURNED"
	BookingStatusCompleted          BookingStatus = "COMPLETED"
	BookingStatusCancelled          BookingStatus = "CANCELLED"
)

// AllBookingStatuses lists every status in lifecycle order.
var AllBookingStatuses = []BookingStatus{
	BookingStatusUnpaid,
	BookingStatusPending,
	BookingStatusConfirmed,
	BookingStatusDelivered,
	BookingStatusReceivedByCustomer,
	BookingStatusReturned,
	BookingStatusCompleted,
	BookingStatusCancelled,
}

// bookingTransitions is the canonical transition table. Cancellation is only
// reachable before the vehicle leaves the provider's hands; once delivered, the
// booking can only move forward to RETURNED/COMPLETED.
var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusUnpaid:             {BookingStatusPending, BookingStatusCancelled},
	BookingStatusPending:            {BookingStatusConfirmed, BookingStatusCancelled},
	BookingStatusConfirmed:          {BookingStatusDelivered, BookingStatusCancelled},
	BookingStatusDelivered:          {BookingStatusReceivedByCustomer},
	BookingStatusReceivedByCustomer: {BookingStatusReturned},
	BookingStatusReturned:           {BookingStatusCompleted},
	BookingStatusCompleted:          {},
	BookingStatusCancelled:          {},
}

// CanTransitionTo reports whether target is reachable from s in one step.
func (s BookingStatus) CanTransitionTo(target BookingStatus) bool {
	for _, t := range bookingTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transition is legal.
func (s BookingStatus) IsTerminal() bool {
	return len(bookingTransitions[s]) == 0
}

// HoldsSlots reports whether a booking in this status must still own its
// slot-ledger entries.
func (s BookingStatus) HoldsSlots() bool {
	switch s {
	case BookingStatusUnpaid, BookingStatusPending, BookingStatusConfirmed,
		BookingStatusDelivered, BookingStatusReceivedByCustomer:
		return true
	}
	return false
}

type PenaltyType string

const (
	PenaltyTypeFixed   PenaltyType = "FIXED"
	PenaltyTypePercent PenaltyType = "PERCENT"
)

type Booking struct {
	ID             string        `json:"id"`
	RenterID       string        `json:"renter_id"`
	TimeStart      time.Time     `json:"time_start"`
	TimeEnd        time.Time     `json:"time_end"`
	TotalCents     int64         `json:"total_cents"`
	DiscountCents  int64         `json:"discount_cents"`
	CouponID       *string       `json:"coupon_id,omitempty"`
	PenaltyType    PenaltyType   `json:"penalty_type"`
	PenaltyValue   int64         `json:"penalty_value"`
	MinCancelHours int32         `json:"min_cancel_hours"`
	TxnCode        string        `json:"txn_code"`
	Status         BookingStatus `json:"status"`
	Details        []BookingDetail `json:"details,omitempty"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

type BookingDetail struct {
	ID            string `json:"id"`
	BookingID     string `json:"booking_id"`
	VehicleID     string `json:"vehicle_id"`
	CostCents     int64  `json:"cost_cents"`
	DriverFeeCents int64 `json:"driver_fee_cents"`
}

// TransitionTo moves the booking to target if the transition table allows it,
// stamping UpdatedAt. The caller persists the change.
func (b *Booking) TransitionTo(target BookingStatus) error {
	if !b.Status.CanTransitionTo(target) {
		return &Error{
			Code:    CodeIllegalTransition,
			Message: "booking cannot move from " + string(b.Status) + " to " + string(target),
			Err:     ErrIllegalTransition,
		}
	}
	b.Status = target
	b.UpdatedAt = time.Now()
	return nil
}

// PenaltyCents computes the cancellation penalty from the booking's stored
// penalty terms. Zero when no penalty term applies.
func (b *Booking) PenaltyCents() int64 {
	switch b.PenaltyType {
	case PenaltyTypeFixed:
		return b.PenaltyValue
	case PenaltyTypePercent:
		return b.TotalCents * b.PenaltyValue / 100
	}
	return 0
}

// PenaltyApplies reports whether cancelling at now is inside the booking's
// minimum-cancel window.
func (b *Booking) PenaltyApplies(now time.Time) bool {
	if b.MinCancelHours <= 0 {
		return false
	}
	return b.TimeStart.Sub(now) < time.Duration(b.MinCancelHours)*time.Hour
}
