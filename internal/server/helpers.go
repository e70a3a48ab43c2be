package server

import (
	"errors"

	"kanban/internal/models"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper.  Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// Pagination holds parsed limit/offset query parameters.
type Pagination struct {
	Limit  int
	Offset int
}

const (
	maxPaginationLimit = 100
)

// parsePagination extracts limit and offset query parameters with the given default limit.
func parsePagination(c *fiber.Ctx, defaultLimit int) Pagination {
	limit := c.QueryInt("limit", defaultLimit)
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxPaginationLimit {
		limit = maxPaginationLimit
	}

	offset := c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}

	return Pagination{
		Limit:  limit,
		Offset: offset,
	}
}

// parseID extracts a route parameter by name as a positive uint.
// On failure it writes a 400 JSON response and returns errResponseWritten.
// Callers should check: if err != nil { return nil }
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		label := "ID"
		if param == "userId" {
			label = "user ID"
		}
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid "+label))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// parseQueryID extracts a required query parameter as a positive uint.
// On failure it writes a 400 JSON response and returns errResponseWritten.
func (s *Server) parseQueryID(c *fiber.Ctx, param string) (uint, error) {
	id := c.QueryInt(param, 0)
	if id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Query parameter '"+param+"' is required"))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// includeInactive reports whether the request asked for the audit view that
// includes soft-deleted rows.
func includeInactive(c *fiber.Ctx) bool {
	return c.QueryBool("include_inactive", false)
}

// currentUserID returns the authenticated user ID placed by AuthRequired.
func currentUserID(c *fiber.Ctx) uint {
	return c.Locals("userID").(uint)
}

// respondServiceError maps service-layer errors onto HTTP statuses.
func respondServiceError(c *fiber.Ctx, err error) error {
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		switch appErr.Code {
		case models.CodeValidation:
			return models.RespondWithError(c, fiber.StatusBadRequest, appErr)
		case models.CodeUnauthorized:
			return models.RespondWithError(c, fiber.StatusUnauthorized, appErr)
		case models.CodeForbidden:
			return models.RespondWithError(c, fiber.StatusForbidden, appErr)
		case models.CodeNotFound:
			return models.RespondWithError(c, fiber.StatusNotFound, appErr)
		}
	}
	return models.RespondWithError(c, fiber.StatusInternalServerError,
		models.NewInternalError(err))
}
