package server

import (
	"github.com/gofiber/fiber/v2"
)

// GetMyProfile handles GET /api/users/me
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	user, err := s.userService.GetUser(c.Context(), currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(user)
}

// DeleteMyAccount handles DELETE /api/users/me. Owned projects and their
// boards go with the account.
func (s *Server) DeleteMyAccount(c *fiber.Ctx) error {
	if err := s.userService.DeleteAccount(c.Context(), currentUserID(c)); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetUsers handles GET /api/users, for member pickers.
func (s *Server) GetUsers(c *fiber.Ctx) error {
	pagination := parsePagination(c, 50)

	users, err := s.userService.ListUsers(c.Context(), pagination.Limit, pagination.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(users)
}

// GetUser handles GET /api/users/:id
func (s *Server) GetUser(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	user, err := s.userService.GetUser(c.Context(), userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(user)
}
