package service

import (
	"context"
	"sync"
	"time"

	"rentride-backend/internal/logger"
	"rentride-backend/internal/repository"
)

const reclaimBatchSize = 100

type reclaimService struct {
	bookingRepo repository.BookingRepository
	reclaimRepo repository.ReclaimRepository
	noteSvc     NotificationService
	interval    time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func NewReclaimService(
	bookingRepo repository.BookingRepository,
	reclaimRepo repository.ReclaimRepository,
	noteSvc NotificationService,
	interval time.Duration,
) ReclaimService {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &reclaimService{
		bookingRepo: bookingRepo,
		reclaimRepo: reclaimRepo,
		noteSvc:     noteSvc,
		interval:    interval,
	}
}

func (s *reclaimService) Cancel(ctx context.Context, bookingID string) error {
	return s.reclaimRepo.Cancel(ctx, bookingID)
}

// ReclaimDue drains every due queue entry once and returns how many bookings
// were actually torn down. Entries whose booking paid in the meantime are
// dropped without teardown; per-booking failures are logged and the drain
// continues.
func (s *reclaimService) ReclaimDue(ctx context.Context) int {
	reclaimed := 0
	for {
		ids, err := s.reclaimRepo.ClaimDue(ctx, time.Now(), reclaimBatchSize)
		if err != nil {
			logger.Error("Failed to claim due reclaims", "error", err)
			return reclaimed
		}
		if len(ids) == 0 {
			return reclaimed
		}
		processed := 0
		for _, id := range ids {
			// Pre-fetched so the renter can still be notified after the
			// teardown deletes the row. A missing booking is fine (notify is
			// skipped), but the failure is worth a trace.
			booking, err := s.bookingRepo.GetByID(ctx, id)
			if err != nil {
				logger.Debug("Booking lookup before reclaim failed", "booking_id", id, "error", err)
			}
			torn, err := s.bookingRepo.ReclaimIfUnpaid(ctx, id)
			if err != nil {
				logger.Error("Failed to reclaim abandoned booking", "booking_id", id, "error", err)
				continue
			}
			processed++
			if !torn {
				logger.Debug("Reclaim skipped, booking no longer unpaid", "booking_id", id)
				continue
			}
			reclaimed++
			logger.Info("Abandoned booking reclaimed", "booking_id", id)
			if booking != nil {
				s.noteSvc.Notify(ctx, booking.RenterID, "Booking Expired",
					"Your unpaid booking was released because payment did not arrive in time", map[string]string{
						"type":       "BOOKING_RECLAIMED",
						"booking_id": id,
					})
			}
		}
		// Failed entries stay queued for the next poll. If the whole batch
		// failed, a re-query would return the same IDs, so stop here.
		if len(ids) < reclaimBatchSize || processed == 0 {
			return reclaimed
		}
	}
}

// Start launches the polling worker. Calling Start on a running service is a
// no-op.
func (s *reclaimService) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.done = make(chan struct{})

	go func() {
		defer close(s.done)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		logger.Info("Reclaim worker started", "interval", s.interval)
		for {
			select {
			case <-ctx.Done():
				logger.Info("Reclaim worker stopped")
				return
			case <-ticker.C:
				s.ReclaimDue(ctx)
			}
		}
	}()
}

// Stop shuts the worker down and waits for the in-flight drain to finish.
func (s *reclaimService) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
}
