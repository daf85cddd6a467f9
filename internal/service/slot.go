package service

import (
	"context"
	"time"

	"rentride-backend/internal/domain"
	"rentride-backend/internal/repository"
)

type slotService struct {
	slotRepo repository.SlotRepository
}

func NewSlotService(slotRepo repository.SlotRepository) SlotService {
	return &slotService{slotRepo: slotRepo}
}

// ListActive returns the vehicle's booked intervals ending after the given
// instant, so callers can render availability without seeing who booked.
func (s *slotService) ListActive(ctx context.Context, vehicleID string, after time.Time) ([]domain.BookedSlot, error) {
	if after.IsZero() {
		after = time.Now()
	}
	return s.slotRepo.ListActive(ctx, vehicleID, after)
}
