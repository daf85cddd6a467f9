package jobs

import (
	"context"
	"time"

	"rentride-backend/internal/logger"
)

const readNotificationRetention = 30 * 24 * time.Hour

// PurgeReadNotifications deletes read notifications older than the retention
// window.
func (jr *JobRunner) PurgeReadNotifications() {
	jr.runWithRecovery("PurgeReadNotifications", func() {
		ctx := context.Background()
		cutoff := time.Now().Add(-readNotificationRetention)
		count, err := jr.store.NotificationRepository.PurgeRead(ctx, cutoff)
		if err != nil {
			logger.Error("Failed to purge read notifications", "error", err)
			return
		}
		logger.Info("Purged read notifications", "count", count, "older_than", cutoff)
	})
}
