package service

import (
	"context"

	"chorebank-backend/internal/domain"
	"chorebank-backend/internal/logger"
	"chorebank-backend/internal/push"
	"chorebank-backend/internal/repository"
)

type notificationService struct {
	store  repository.Store
	sender push.Sender
}

func NewNotificationService(store repository.Store, sender push.Sender) NotificationService {
	return &notificationService{store: store, sender: sender}
}

// Notify persists the in-app record and pushes to the device. Both paths
// are best-effort: a lost notification never fails a money movement.
func (s *notificationService) Notify(ctx context.Context, userID int32, role domain.Role, deviceToken, title, message string, attrs map[string]string) {
	note := &domain.Notification{
		UserID:     userID,
		Role:       role,
		Title:      title,
		Message:    message,
		Attributes: attrs,
	}
	if err := s.store.Notifications().Create(ctx, note); err != nil {
		logger.Error("Failed to persist notification", "user_id", userID, "title", title, "error", err)
	}
	if err := s.sender.Send(ctx, deviceToken, title, message, attrs); err != nil {
		logger.Error("Failed to push notification", "user_id", userID, "title", title, "error", err)
	}
}

func (s *notificationService) GetNotifications(ctx context.Context, userID int32, role domain.Role, page, pageSize int32) ([]domain.Notification, int32, error) {
	offset := (page - 1) * pageSize
	return s.store.Notifications().List(ctx, userID, role, pageSize, offset)
}

func (s *notificationService) MarkAsRead(ctx context.Context, userID, notificationID int32) error {
	return s.store.Notifications().MarkAsRead(ctx, notificationID, userID)
}
