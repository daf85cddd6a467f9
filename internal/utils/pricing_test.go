package utils

import (
	"testing"
	"time"

	"rentride-backend/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestRentalDays(t *testing.T) {
	base := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		start    time.Time
		end      time.Time
		expected int64
	}{
		{"Four hours rounds up to one day", base, base.Add(4 * time.Hour), 1},
		{"Exactly one day", base, base.Add(24 * time.Hour), 1},
		{"One day plus an hour rounds up", base, base.Add(25 * time.Hour), 2},
		{"Exactly three days", base, base.Add(72 * time.Hour), 3},
		{"Inverted window is zero", base.Add(time.Hour), base, 0},
		{"Empty window is zero", base, base, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, RentalDays(tt.start, tt.end))
		})
	}
}

func TestQuoteVehicle(t *testing.T) {
	vehicle := &domain.Vehicle{
		ID:              "v1",
		CostPerDayCents: 12000,
		DriverFeeCents:  3000,
	}
	start := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	end := time.Date(2024, 6, 1, 14, 0, 0, 0, time.UTC)

	t.Run("Without driver", func(t *testing.T) {
		q := QuoteVehicle(vehicle, start, end, false)
		assert.Equal(t, int64(1), q.Days)
		assert.Equal(t, int64(12000), q.CostCents)
		assert.Equal(t, int64(0), q.DriverFeeCents)
		assert.Equal(t, int64(12000), q.TotalCents)
	})

	t.Run("With driver", func(t *testing.T) {
		q := QuoteVehicle(vehicle, start, end, true)
		assert.Equal(t, int64(3000), q.DriverFeeCents)
		assert.Equal(t, int64(15000), q.TotalCents)
	})

	t.Run("Multi-day", func(t *testing.T) {
		q := QuoteVehicle(vehicle, start, start.Add(49*time.Hour), false)
		assert.Equal(t, int64(3), q.Days)
		assert.Equal(t, int64(36000), q.TotalCents)
	})
}

func TestApplyDiscount(t *testing.T) {
	assert.Equal(t, int64(0), ApplyDiscount(10000, 0))
	assert.Equal(t, int64(1000), ApplyDiscount(10000, 10))
	assert.Equal(t, int64(10000), ApplyDiscount(10000, 150))
	assert.Equal(t, int64(0), ApplyDiscount(10000, -5))
}
