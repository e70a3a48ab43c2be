package server

import (
	"bytes"
	"encoding/json"
	"time"

	"kanban/internal/models"
	"kanban/internal/observability"
	"kanban/internal/service"

	"github.com/gofiber/fiber/v2"
)

var jsonNull = []byte("null")

// CreateTask handles POST /api/tasks. The authenticated user is recorded as
// the creator regardless of the request body.
func (s *Server) CreateTask(c *fiber.Ctx) error {
	var req struct {
		ColumnID    uint       `json:"column_id"`
		Title       string     `json:"title"`
		Description string     `json:"description"`
		Position    int        `json:"order"`
		Due         *time.Time `json:"due"`
		AssignedID  *uint      `json:"assigned_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.ColumnID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewFieldValidationError("column_id", "column_id is required"))
	}

	task, err := s.taskService.CreateTask(c.Context(), service.CreateTaskInput{
		UserID:      currentUserID(c),
		ColumnID:    req.ColumnID,
		Title:       req.Title,
		Description: req.Description,
		Position:    req.Position,
		Due:         req.Due,
		AssignedID:  req.AssignedID,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	observability.BoardMutations.WithLabelValues("task", "create").Inc()
	return c.Status(fiber.StatusCreated).JSON(task)
}

// GetTasks handles GET /api/tasks?column_id=N, ordered by board position.
func (s *Server) GetTasks(c *fiber.Ctx) error {
	columnID, err := s.parseQueryID(c, "column_id")
	if err != nil {
		return nil
	}

	tasks, err := s.taskService.ListTasks(c.Context(), service.ListTasksInput{
		UserID:          currentUserID(c),
		ColumnID:        columnID,
		IncludeInactive: includeInactive(c),
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(tasks)
}

// GetTask handles GET /api/tasks/:id
func (s *Server) GetTask(c *fiber.Ctx) error {
	taskID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	task, err := s.taskService.GetTask(c.Context(), service.GetTaskInput{
		UserID:          currentUserID(c),
		TaskID:          taskID,
		IncludeInactive: includeInactive(c),
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(task)
}

// UpdateTask handles PUT/PATCH /api/tasks/:id. An explicit JSON null on "due"
// or "assigned_id" clears the field; an absent field leaves it untouched.
func (s *Server) UpdateTask(c *fiber.Ctx) error {
	taskID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		ColumnID    *uint           `json:"column_id"`
		Title       *string         `json:"title"`
		Description *string         `json:"description"`
		Position    *int            `json:"order"`
		Due         json.RawMessage `json:"due"`
		AssignedID  json.RawMessage `json:"assigned_id"`
		IsActive    *bool           `json:"is_active"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	in := service.UpdateTaskInput{
		UserID:      currentUserID(c),
		TaskID:      taskID,
		ColumnID:    req.ColumnID,
		Title:       req.Title,
		Description: req.Description,
		Position:    req.Position,
		IsActive:    req.IsActive,
	}

	if len(req.Due) > 0 {
		if bytes.Equal(req.Due, jsonNull) {
			in.ClearDue = true
		} else {
			var due time.Time
			if err := json.Unmarshal(req.Due, &due); err != nil {
				return models.RespondWithError(c, fiber.StatusBadRequest,
					models.NewFieldValidationError("due", "Invalid due date"))
			}
			in.Due = &due
		}
	}
	if len(req.AssignedID) > 0 {
		if bytes.Equal(req.AssignedID, jsonNull) {
			in.Unassign = true
		} else {
			var assignedID uint
			if err := json.Unmarshal(req.AssignedID, &assignedID); err != nil {
				return models.RespondWithError(c, fiber.StatusBadRequest,
					models.NewFieldValidationError("assigned_id", "Invalid assigned_id"))
			}
			in.AssignedID = &assignedID
		}
	}

	task, err := s.taskService.UpdateTask(c.Context(), in)
	if err != nil {
		return respondServiceError(c, err)
	}

	observability.BoardMutations.WithLabelValues("task", "update").Inc()
	return c.JSON(task)
}

// DeleteTask handles DELETE /api/tasks/:id with comment cascade.
func (s *Server) DeleteTask(c *fiber.Ctx) error {
	taskID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.taskService.DeleteTask(c.Context(), service.DeleteTaskInput{
		UserID: currentUserID(c),
		TaskID: taskID,
	}); err != nil {
		return respondServiceError(c, err)
	}

	observability.BoardMutations.WithLabelValues("task", "delete").Inc()
	return c.SendStatus(fiber.StatusNoContent)
}
