package jobs

import (
	"context"
	"time"

	"rentride-backend/internal/logger"
)

// ReclaimAbandonedBookings drains the reclaim queue once, tearing down every
// unpaid booking whose payment window has lapsed. The background worker
// normally handles this; the cron pass is a safety net for downtime.
func (jr *JobRunner) ReclaimAbandonedBookings() {
	jr.runWithRecovery("ReclaimAbandonedBookings", func() {
		ctx := context.Background()
		count := jr.services.Reclaim.ReclaimDue(ctx)
		logger.Info("Reclaimed abandoned bookings", "count", count)
	})
}

// ReconcileOrphanedSlots deletes slot-ledger entries whose booking no longer
// holds slots. Orphans only appear if a reclaim teardown partially failed, so
// a non-zero count is worth investigating.
func (jr *JobRunner) ReconcileOrphanedSlots() {
	jr.runWithRecovery("ReconcileOrphanedSlots", func() {
		ctx := context.Background()
		count, err := jr.store.SlotRepository.DeleteOrphans(ctx)
		if err != nil {
			logger.Error("Failed to reconcile orphaned slots", "error", err)
			return
		}
		if count > 0 {
			logger.Warn("Removed orphaned booked slots", "count", count)
		} else {
			logger.Info("No orphaned booked slots found")
		}
	})
}

// ExpireCoupons flips VALID coupons past their expiry to EXPIRED.
func (jr *JobRunner) ExpireCoupons() {
	jr.runWithRecovery("ExpireCoupons", func() {
		ctx := context.Background()
		count, err := jr.store.CouponRepository.ExpirePast(ctx, time.Now())
		if err != nil {
			logger.Error("Failed to expire coupons", "error", err)
			return
		}
		logger.Info("Expired coupons", "count", count)
	})
}
