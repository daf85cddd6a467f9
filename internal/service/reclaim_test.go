package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"rentride-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestReclaimService_ReclaimDue(t *testing.T) {
	ctx := context.Background()

	t.Run("Drains Due Entries", func(t *testing.T) {
		bookingRepo := new(MockBookingRepo)
		reclaimRepo := new(MockReclaimRepo)
		noteSvc := new(MockNotificationService)
		svc := NewReclaimService(bookingRepo, reclaimRepo, noteSvc, time.Second)

		reclaimRepo.On("ClaimDue", ctx, mock.AnythingOfType("time.Time"), int32(100)).Return([]string{"book-1", "book-2"}, nil)
		bookingRepo.On("GetByID", ctx, "book-1").Return(&domain.Booking{ID: "book-1", RenterID: "renter-1"}, nil)
		bookingRepo.On("GetByID", ctx, "book-2").Return(&domain.Booking{ID: "book-2", RenterID: "renter-2"}, nil)
		bookingRepo.On("ReclaimIfUnpaid", ctx, "book-1").Return(true, nil)
		// book-2 paid while queued; teardown is skipped.
		bookingRepo.On("ReclaimIfUnpaid", ctx, "book-2").Return(false, nil)
		noteSvc.On("Notify", ctx, "renter-1", mock.Anything, mock.Anything, mock.Anything).Return()

		assert.Equal(t, 1, svc.ReclaimDue(ctx))
		noteSvc.AssertNumberOfCalls(t, "Notify", 1)
	})

	t.Run("Continues Past Failures", func(t *testing.T) {
		bookingRepo := new(MockBookingRepo)
		reclaimRepo := new(MockReclaimRepo)
		noteSvc := new(MockNotificationService)
		svc := NewReclaimService(bookingRepo, reclaimRepo, noteSvc, time.Second)

		reclaimRepo.On("ClaimDue", ctx, mock.AnythingOfType("time.Time"), int32(100)).Return([]string{"book-1", "book-2"}, nil)
		bookingRepo.On("GetByID", ctx, mock.Anything).Return(&domain.Booking{ID: "book-1", RenterID: "renter-1"}, nil)
		bookingRepo.On("ReclaimIfUnpaid", ctx, "book-1").Return(false, errors.New("deadlock detected"))
		bookingRepo.On("ReclaimIfUnpaid", ctx, "book-2").Return(true, nil)
		noteSvc.On("Notify", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return()

		assert.Equal(t, 1, svc.ReclaimDue(ctx))
	})

	t.Run("Missing Booking Still Torn Down", func(t *testing.T) {
		bookingRepo := new(MockBookingRepo)
		reclaimRepo := new(MockReclaimRepo)
		noteSvc := new(MockNotificationService)
		svc := NewReclaimService(bookingRepo, reclaimRepo, noteSvc, time.Second)

		reclaimRepo.On("ClaimDue", ctx, mock.AnythingOfType("time.Time"), int32(100)).Return([]string{"book-1"}, nil)
		// The snapshot read is only for the notification; its failure must not
		// block the teardown.
		bookingRepo.On("GetByID", ctx, "book-1").Return(nil,
			domain.E(domain.CodeNotFound, "booking not found", domain.ErrNotFound))
		bookingRepo.On("ReclaimIfUnpaid", ctx, "book-1").Return(true, nil)

		assert.Equal(t, 1, svc.ReclaimDue(ctx))
		noteSvc.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Fully Failing Batch Stops The Drain", func(t *testing.T) {
		bookingRepo := new(MockBookingRepo)
		reclaimRepo := new(MockReclaimRepo)
		svc := NewReclaimService(bookingRepo, reclaimRepo, new(MockNotificationService), time.Second)

		ids := make([]string, 100)
		for i := range ids {
			ids[i] = "book-1"
		}
		reclaimRepo.On("ClaimDue", ctx, mock.AnythingOfType("time.Time"), int32(100)).Return(ids, nil)
		bookingRepo.On("GetByID", ctx, "book-1").Return(&domain.Booking{ID: "book-1", RenterID: "renter-1"}, nil)
		bookingRepo.On("ReclaimIfUnpaid", ctx, "book-1").Return(false, errors.New("connection refused"))

		// A full batch of failures would re-claim the same IDs forever; the
		// drain must hand them to the next poll instead.
		assert.Equal(t, 0, svc.ReclaimDue(ctx))
		reclaimRepo.AssertNumberOfCalls(t, "ClaimDue", 1)
	})

	t.Run("Empty Queue", func(t *testing.T) {
		bookingRepo := new(MockBookingRepo)
		reclaimRepo := new(MockReclaimRepo)
		svc := NewReclaimService(bookingRepo, reclaimRepo, new(MockNotificationService), time.Second)

		reclaimRepo.On("ClaimDue", ctx, mock.AnythingOfType("time.Time"), int32(100)).Return([]string{}, nil)

		assert.Equal(t, 0, svc.ReclaimDue(ctx))
		bookingRepo.AssertNotCalled(t, "ReclaimIfUnpaid", mock.Anything, mock.Anything)
	})
}

func TestReclaimService_StartStop(t *testing.T) {
	bookingRepo := new(MockBookingRepo)
	reclaimRepo := new(MockReclaimRepo)
	svc := NewReclaimService(bookingRepo, reclaimRepo, new(MockNotificationService), 10*time.Millisecond)

	reclaimRepo.On("ClaimDue", mock.Anything, mock.AnythingOfType("time.Time"), int32(100)).Return([]string{}, nil)

	svc.Start(context.Background())
	// Start is idempotent while running.
	svc.Start(context.Background())
	time.Sleep(50 * time.Millisecond)
	svc.Stop()
	// Stop after stop is a no-op.
	svc.Stop()

	reclaimRepo.AssertCalled(t, "ClaimDue", mock.Anything, mock.AnythingOfType("time.Time"), int32(100))
}

func TestReclaimService_Cancel(t *testing.T) {
	reclaimRepo := new(MockReclaimRepo)
	svc := NewReclaimService(new(MockBookingRepo), reclaimRepo, new(MockNotificationService), time.Second)

	reclaimRepo.On("Cancel", mock.Anything, "book-1").Return(nil)
	assert.NoError(t, svc.Cancel(context.Background(), "book-1"))
}
