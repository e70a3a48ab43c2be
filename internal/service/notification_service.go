package service

import (
	"context"

	"kanban/internal/models"
	"kanban/internal/repository"
)

// NotificationService exposes the polled inbox. Rows are originated by the
// task and comment services; clients can only list, flip the read flag, and
// delete their own rows.
type NotificationService struct {
	notificationRepo repository.NotificationRepository
}

type ListNotificationsInput struct {
	UserID uint
	Limit  int
	Offset int
}

type SetNotificationReadInput struct {
	UserID         uint
	NotificationID uint
	Read           bool
}

type DeleteNotificationInput struct {
	UserID         uint
	NotificationID uint
}

func NewNotificationService(notificationRepo repository.NotificationRepository) *NotificationService {
	return &NotificationService{notificationRepo: notificationRepo}
}

func (s *NotificationService) ListNotifications(ctx context.Context, in ListNotificationsInput) ([]*models.Notification, error) {
	return s.notificationRepo.ListByUser(ctx, in.UserID, in.Limit, in.Offset)
}

// SetRead flips the read flag. Another user's row reads as missing, not
// forbidden.
func (s *NotificationService) SetRead(ctx context.Context, in SetNotificationReadInput) (*models.Notification, error) {
	notification, err := s.notificationRepo.GetByID(ctx, in.NotificationID)
	if err != nil {
		return nil, notFoundOr(err, "Notification", in.NotificationID)
	}
	if notification.UserID != in.UserID {
		return nil, models.NewNotFoundError("Notification", in.NotificationID)
	}

	notification.Read = in.Read
	if err := s.notificationRepo.Update(ctx, notification); err != nil {
		return nil, err
	}
	return notification, nil
}

func (s *NotificationService) DeleteNotification(ctx context.Context, in DeleteNotificationInput) error {
	notification, err := s.notificationRepo.GetByID(ctx, in.NotificationID)
	if err != nil {
		return notFoundOr(err, "Notification", in.NotificationID)
	}
	if notification.UserID != in.UserID {
		return models.NewNotFoundError("Notification", in.NotificationID)
	}
	return s.notificationRepo.Delete(ctx, in.NotificationID)
}
