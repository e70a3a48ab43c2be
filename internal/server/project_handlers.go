package server

import (
	"kanban/internal/models"
	"kanban/internal/observability"
	"kanban/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateProject handles POST /api/projects. The authenticated user becomes
// the owner regardless of the request body.
func (s *Server) CreateProject(c *fiber.Ctx) error {
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	project, err := s.projectService.CreateProject(c.Context(), service.CreateProjectInput{
		OwnerID:     currentUserID(c),
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	observability.BoardMutations.WithLabelValues("project", "create").Inc()
	return c.Status(fiber.StatusCreated).JSON(project)
}

// GetProjects handles GET /api/projects. Only projects the user owns or is a
// member of are returned; soft-deleted rows require ?include_inactive=true.
func (s *Server) GetProjects(c *fiber.Ctx) error {
	projects, err := s.projectService.ListProjects(c.Context(), service.ListProjectsInput{
		UserID:          currentUserID(c),
		IncludeInactive: includeInactive(c),
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(projects)
}

// GetProject handles GET /api/projects/:id
func (s *Server) GetProject(c *fiber.Ctx) error {
	projectID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	project, err := s.projectService.GetProject(c.Context(), service.GetProjectInput{
		UserID:          currentUserID(c),
		ProjectID:       projectID,
		IncludeInactive: includeInactive(c),
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(project)
}

// UpdateProject handles PUT/PATCH /api/projects/:id. Owner only. Setting
// is_active toggles soft deletion.
func (s *Server) UpdateProject(c *fiber.Ctx) error {
	projectID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
		IsActive    *bool   `json:"is_active"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	project, err := s.projectService.UpdateProject(c.Context(), service.UpdateProjectInput{
		UserID:      currentUserID(c),
		ProjectID:   projectID,
		Name:        req.Name,
		Description: req.Description,
		IsActive:    req.IsActive,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	observability.BoardMutations.WithLabelValues("project", "update").Inc()
	return c.JSON(project)
}

// DeleteProject handles DELETE /api/projects/:id. Owner only; hard delete
// with full board cascade.
func (s *Server) DeleteProject(c *fiber.Ctx) error {
	projectID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.projectService.DeleteProject(c.Context(), service.DeleteProjectInput{
		UserID:    currentUserID(c),
		ProjectID: projectID,
	}); err != nil {
		return respondServiceError(c, err)
	}

	observability.BoardMutations.WithLabelValues("project", "delete").Inc()
	return c.SendStatus(fiber.StatusNoContent)
}

// AddProjectMember handles POST /api/projects/:id/members. Owner only.
func (s *Server) AddProjectMember(c *fiber.Ctx) error {
	projectID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		UserID uint `json:"user_id"`
	}
	if err := c.BodyParser(&req); err != nil || req.UserID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewFieldValidationError("user_id", "user_id is required"))
	}

	if err := s.projectService.AddMember(c.Context(), service.MemberInput{
		UserID:    currentUserID(c),
		ProjectID: projectID,
		MemberID:  req.UserID,
	}); err != nil {
		return respondServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// RemoveProjectMember handles DELETE /api/projects/:id/members/:userId. Owner only.
func (s *Server) RemoveProjectMember(c *fiber.Ctx) error {
	projectID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	memberID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	if err := s.projectService.RemoveMember(c.Context(), service.MemberInput{
		UserID:    currentUserID(c),
		ProjectID: projectID,
		MemberID:  memberID,
	}); err != nil {
		return respondServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
