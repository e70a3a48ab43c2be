package server

import (
	"kanban/internal/models"
	"kanban/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetNotifications handles GET /api/notifications, newest first.
func (s *Server) GetNotifications(c *fiber.Ctx) error {
	pagination := parsePagination(c, 50)

	notifications, err := s.notificationService.ListNotifications(c.Context(), service.ListNotificationsInput{
		UserID: currentUserID(c),
		Limit:  pagination.Limit,
		Offset: pagination.Offset,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(notifications)
}

// SetNotificationRead handles PATCH /api/notifications/:id
func (s *Server) SetNotificationRead(c *fiber.Ctx) error {
	notificationID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Read *bool `json:"read"`
	}
	if err := c.BodyParser(&req); err != nil || req.Read == nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewFieldValidationError("read", "read is required"))
	}

	notification, err := s.notificationService.SetRead(c.Context(), service.SetNotificationReadInput{
		UserID:         currentUserID(c),
		NotificationID: notificationID,
		Read:           *req.Read,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(notification)
}

// DeleteNotification handles DELETE /api/notifications/:id
func (s *Server) DeleteNotification(c *fiber.Ctx) error {
	notificationID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.notificationService.DeleteNotification(c.Context(), service.DeleteNotificationInput{
		UserID:         currentUserID(c),
		NotificationID: notificationID,
	}); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
