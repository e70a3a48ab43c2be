package server

import (
	"kanban/internal/models"
	"kanban/internal/observability"
	"kanban/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateComment handles POST /api/comments. The authenticated user is always
// the author regardless of the request body.
func (s *Server) CreateComment(c *fiber.Ctx) error {
	var req struct {
		TaskID uint   `json:"task_id"`
		Text   string `json:"text"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.TaskID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewFieldValidationError("task_id", "task_id is required"))
	}

	comment, err := s.commentService.CreateComment(c.Context(), service.CreateCommentInput{
		UserID: currentUserID(c),
		TaskID: req.TaskID,
		Text:   req.Text,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	observability.BoardMutations.WithLabelValues("comment", "create").Inc()
	return c.Status(fiber.StatusCreated).JSON(comment)
}

// GetComments handles GET /api/comments?task_id=N, oldest first.
func (s *Server) GetComments(c *fiber.Ctx) error {
	taskID, err := s.parseQueryID(c, "task_id")
	if err != nil {
		return nil
	}

	comments, err := s.commentService.ListComments(c.Context(), service.ListCommentsInput{
		UserID:          currentUserID(c),
		TaskID:          taskID,
		IncludeInactive: includeInactive(c),
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(comments)
}

// GetComment handles GET /api/comments/:id
func (s *Server) GetComment(c *fiber.Ctx) error {
	commentID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	comment, err := s.commentService.GetComment(c.Context(), service.GetCommentInput{
		UserID:          currentUserID(c),
		CommentID:       commentID,
		IncludeInactive: includeInactive(c),
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(comment)
}

// UpdateComment handles PUT/PATCH /api/comments/:id
func (s *Server) UpdateComment(c *fiber.Ctx) error {
	commentID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Text     *string `json:"text"`
		IsActive *bool   `json:"is_active"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	comment, err := s.commentService.UpdateComment(c.Context(), service.UpdateCommentInput{
		UserID:    currentUserID(c),
		CommentID: commentID,
		Text:      req.Text,
		IsActive:  req.IsActive,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	observability.BoardMutations.WithLabelValues("comment", "update").Inc()
	return c.JSON(comment)
}

// DeleteComment handles DELETE /api/comments/:id
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	commentID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.commentService.DeleteComment(c.Context(), service.DeleteCommentInput{
		UserID:    currentUserID(c),
		CommentID: commentID,
	}); err != nil {
		return respondServiceError(c, err)
	}

	observability.BoardMutations.WithLabelValues("comment", "delete").Inc()
	return c.SendStatus(fiber.StatusNoContent)
}
