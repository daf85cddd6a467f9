package service

import (
	"context"

	"rentride-backend/internal/domain"
	"rentride-backend/internal/logger"
	"rentride-backend/internal/repository"

	"github.com/google/uuid"
)

type notificationService struct {
	noteRepo repository.NotificationRepository
}

func NewNotificationService(noteRepo repository.NotificationRepository) NotificationService {
	return &notificationService{noteRepo: noteRepo}
}

// Notify stores an in-app notification. Delivery is best effort: a failure is
// logged and swallowed so it can never roll back the operation that emitted
// it.
func (s *notificationService) Notify(ctx context.Context, userID, title, message string, attributes map[string]string) {
	note := &domain.Notification{
		ID:         uuid.NewString(),
		UserID:     userID,
		Title:      title,
		Message:    message,
		Attributes: attributes,
	}
	if err := s.noteRepo.Create(ctx, note); err != nil {
		logger.Error("Failed to store notification", "user_id", userID, "title", title, "error", err)
	}
}

func (s *notificationService) List(ctx context.Context, userID string, limit, offset int32) ([]domain.Notification, int32, error) {
	return s.noteRepo.List(ctx, userID, limit, offset)
}

func (s *notificationService) MarkAsRead(ctx context.Context, id, userID string) error {
	return s.noteRepo.MarkAsRead(ctx, id, userID)
}
