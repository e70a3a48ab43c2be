package server

import (
	"kanban/internal/models"
	"kanban/internal/observability"
	"kanban/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateColumn handles POST /api/columns
func (s *Server) CreateColumn(c *fiber.Ctx) error {
	var req struct {
		ProjectID uint   `json:"project_id"`
		Name      string `json:"name"`
		Position  int    `json:"order"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.ProjectID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewFieldValidationError("project_id", "project_id is required"))
	}

	column, err := s.columnService.CreateColumn(c.Context(), service.CreateColumnInput{
		UserID:    currentUserID(c),
		ProjectID: req.ProjectID,
		Name:      req.Name,
		Position:  req.Position,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	observability.BoardMutations.WithLabelValues("column", "create").Inc()
	return c.Status(fiber.StatusCreated).JSON(column)
}

// GetColumns handles GET /api/columns?project_id=N, ordered by board position.
func (s *Server) GetColumns(c *fiber.Ctx) error {
	projectID, err := s.parseQueryID(c, "project_id")
	if err != nil {
		return nil
	}

	columns, err := s.columnService.ListColumns(c.Context(), service.ListColumnsInput{
		UserID:          currentUserID(c),
		ProjectID:       projectID,
		IncludeInactive: includeInactive(c),
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(columns)
}

// GetColumn handles GET /api/columns/:id
func (s *Server) GetColumn(c *fiber.Ctx) error {
	columnID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	column, err := s.columnService.GetColumn(c.Context(), service.GetColumnInput{
		UserID:          currentUserID(c),
		ColumnID:        columnID,
		IncludeInactive: includeInactive(c),
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(column)
}

// UpdateColumn handles PUT/PATCH /api/columns/:id
func (s *Server) UpdateColumn(c *fiber.Ctx) error {
	columnID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Name     *string `json:"name"`
		Position *int    `json:"order"`
		IsActive *bool   `json:"is_active"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	column, err := s.columnService.UpdateColumn(c.Context(), service.UpdateColumnInput{
		UserID:   currentUserID(c),
		ColumnID: columnID,
		Name:     req.Name,
		Position: req.Position,
		IsActive: req.IsActive,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	observability.BoardMutations.WithLabelValues("column", "update").Inc()
	return c.JSON(column)
}

// DeleteColumn handles DELETE /api/columns/:id with task and comment cascade.
func (s *Server) DeleteColumn(c *fiber.Ctx) error {
	columnID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.columnService.DeleteColumn(c.Context(), service.DeleteColumnInput{
		UserID:   currentUserID(c),
		ColumnID: columnID,
	}); err != nil {
		return respondServiceError(c, err)
	}

	observability.BoardMutations.WithLabelValues("column", "delete").Inc()
	return c.SendStatus(fiber.StatusNoContent)
}
