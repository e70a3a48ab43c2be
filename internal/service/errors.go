// Package service implements the CRUD business logic for the board hierarchy:
// input validation, server-side defaults, and per-object authorization checks
// in front of the repositories.
package service

import (
	"errors"

	"kanban/internal/authz"
	"kanban/internal/models"

	"gorm.io/gorm"
)

// notFoundOr translates store/authz lookup failures into the external
// NOT_FOUND shape; anything else passes through for the 500 path.
func notFoundOr(err error, resource string, id interface{}) error {
	if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, authz.ErrNotFound) {
		return models.NewNotFoundError(resource, id)
	}
	return err
}

// isDuplicate reports a unique-constraint violation, surfaced by GORM's
// TranslateError on postgres and sqlite alike.
func isDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
