package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBookingStatusTransitions(t *testing.T) {
	allowed := map[BookingStatus][]BookingStatus{
		BookingStatusUnpaid:             {BookingStatusPending, BookingStatusCancelled},
		BookingStatusPending:            {BookingStatusConfirmed, BookingStatusCancelled},
		BookingStatusConfirmed:          {BookingStatusDelivered, BookingStatusCancelled},
		BookingStatusDelivered:          {BookingStatusReceivedByCustomer},
		BookingStatusReceivedByCustomer: {BookingStatusReturned},
		BookingStatusReturned:           {BookingStatusCompleted},
		BookingStatusCompleted:          {},
		BookingStatusCancelled:          {},
	}

	// Check every ordered pair so nothing illegal sneaks through.
	for _, from := range AllBookingStatuses {
		for _, to := range AllBookingStatuses {
			want := false
			for _, a := range allowed[from] {
				if a == to {
					want = true
				}
			}
			assert.Equal(t, want, from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
}

func TestBookingStatusIsTerminal(t *testing.T) {
	for _, s := range AllBookingStatuses {
		terminal := s == BookingStatusCompleted || s == BookingStatusCancelled
		assert.Equal(t, terminal, s.IsTerminal(), "status %s", s)
	}
}

func TestBookingStatusHoldsSlots(t *testing.T) {
	holding := []BookingStatus{
		BookingStatusUnpaid, BookingStatusPending, BookingStatusConfirmed,
		BookingStatusDelivered, BookingStatusReceivedByCustomer,
	}
	released := []BookingStatus{
		BookingStatusReturned, BookingStatusCompleted, BookingStatusCancelled,
	}
	for _, s := range holding {
		assert.True(t, s.HoldsSlots(), "status %s", s)
	}
	for _, s := range released {
		assert.False(t, s.HoldsSlots(), "status %s", s)
	}
}

func TestBookingTransitionTo(t *testing.T) {
	b := &Booking{Status: BookingStatusUnpaid}

	assert.NoError(t, b.TransitionTo(BookingStatusPending))
	assert.Equal(t, BookingStatusPending, b.Status)

	err := b.TransitionTo(BookingStatusCompleted)
	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrIllegalTransition))
	assert.Equal(t, CodeIllegalTransition, CodeOf(err))
	// Status is unchanged after a rejected transition.
	assert.Equal(t, BookingStatusPending, b.Status)
}

func TestBookingPenaltyCents(t *testing.T) {
	tests := []struct {
		name    string
		booking Booking
		want    int64
	}{
		{"fixed", Booking{PenaltyType: PenaltyTypeFixed, PenaltyValue: 2500, TotalCents: 10000}, 2500},
		{"percent", Booking{PenaltyType: PenaltyTypePercent, PenaltyValue: 30, TotalCents: 10000}, 3000},
		{"no penalty type", Booking{TotalCents: 10000}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.booking.PenaltyCents())
		})
	}
}

func TestBookingPenaltyApplies(t *testing.T) {
	now := time.Now()
	b := Booking{MinCancelHours: 24, TimeStart: now.Add(48 * time.Hour)}
	assert.False(t, b.PenaltyApplies(now))

	b.TimeStart = now.Add(12 * time.Hour)
	assert.True(t, b.PenaltyApplies(now))

	// No minimum-cancel window means cancellation is always free.
	b.MinCancelHours = 0
	assert.False(t, b.PenaltyApplies(now))
}

func TestIntervalsOverlap(t *testing.T) {
	base := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)
	at := func(h int) time.Time { return base.Add(time.Duration(h) * time.Hour) }

	tests := []struct {
		name                   string
		aFrom, aTo, bFrom, bTo time.Time
		want                   bool
	}{
		{"disjoint before", at(0), at(2), at(3), at(5), false},
		{"disjoint after", at(3), at(5), at(0), at(2), false},
		{"touching boundary", at(0), at(2), at(2), at(4), false},
		{"touching boundary reversed", at(2), at(4), at(0), at(2), false},
		{"partial overlap", at(0), at(3), at(2), at(5), true},
		{"contained", at(1), at(2), at(0), at(5), true},
		{"identical", at(0), at(2), at(0), at(2), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IntervalsOverlap(tt.aFrom, tt.aTo, tt.bFrom, tt.bTo))
		})
	}
}
