package service

import (
	"context"

	"kanban/internal/authz"
	"kanban/internal/models"
	"kanban/internal/repository"
)

// ColumnService owns column CRUD within a project board.
type ColumnService struct {
	columnRepo repository.ColumnRepository
	authorizer *authz.Authorizer
}

type CreateColumnInput struct {
	UserID    uint
	ProjectID uint
	Name      string
	Position  int
}

type ListColumnsInput struct {
	UserID          uint
	ProjectID       uint
	IncludeInactive bool
}

type GetColumnInput struct {
	UserID          uint
	ColumnID        uint
	IncludeInactive bool
}

type UpdateColumnInput struct {
	UserID   uint
	ColumnID uint
	Name     *string
	Position *int
	IsActive *bool
}

type DeleteColumnInput struct {
	UserID   uint
	ColumnID uint
}

func NewColumnService(columnRepo repository.ColumnRepository, authorizer *authz.Authorizer) *ColumnService {
	return &ColumnService{columnRepo: columnRepo, authorizer: authorizer}
}

// CreateColumn creates a column in a project the caller can access. A caller
// without visibility on the target project fails the write rather than
// silently associating a column with it.
func (s *ColumnService) CreateColumn(ctx context.Context, in CreateColumnInput) (*models.Column, error) {
	if in.Name == "" {
		return nil, models.NewFieldValidationError("name", "Name is required")
	}
	if in.Position < 0 {
		return nil, models.NewFieldValidationError("order", "Order must not be negative")
	}

	decision, err := s.authorizer.Decide(ctx, authz.KindProject, in.ProjectID, in.UserID)
	if err != nil {
		return nil, notFoundOr(err, "Project", in.ProjectID)
	}
	if !decision.Visible {
		return nil, models.NewNotFoundError("Project", in.ProjectID)
	}

	column := &models.Column{
		ProjectID: in.ProjectID,
		Name:      in.Name,
		Position:  in.Position,
		IsActive:  true,
	}
	if err := s.columnRepo.Create(ctx, column); err != nil {
		if isDuplicate(err) {
			return nil, models.NewFieldValidationError("order", "Order is already taken in this project")
		}
		return nil, err
	}
	return column, nil
}

func (s *ColumnService) ListColumns(ctx context.Context, in ListColumnsInput) ([]*models.Column, error) {
	decision, err := s.authorizer.Decide(ctx, authz.KindProject, in.ProjectID, in.UserID)
	if err != nil {
		return nil, notFoundOr(err, "Project", in.ProjectID)
	}
	if !decision.Visible {
		return nil, models.NewNotFoundError("Project", in.ProjectID)
	}
	if in.IncludeInactive {
		return s.columnRepo.ListAllByProject(ctx, in.ProjectID)
	}
	return s.columnRepo.ListByProject(ctx, in.ProjectID)
}

func (s *ColumnService) GetColumn(ctx context.Context, in GetColumnInput) (*models.Column, error) {
	decision, err := s.authorizer.Decide(ctx, authz.KindColumn, in.ColumnID, in.UserID)
	if err != nil {
		return nil, notFoundOr(err, "Column", in.ColumnID)
	}
	if !decision.Visible {
		return nil, models.NewNotFoundError("Column", in.ColumnID)
	}
	if in.IncludeInactive {
		return s.columnRepo.GetByIDAny(ctx, in.ColumnID)
	}
	column, err := s.columnRepo.GetByID(ctx, in.ColumnID)
	if err != nil {
		return nil, notFoundOr(err, "Column", in.ColumnID)
	}
	return column, nil
}

func (s *ColumnService) UpdateColumn(ctx context.Context, in UpdateColumnInput) (*models.Column, error) {
	decision, err := s.authorizer.Decide(ctx, authz.KindColumn, in.ColumnID, in.UserID)
	if err != nil {
		return nil, notFoundOr(err, "Column", in.ColumnID)
	}
	if !decision.Visible {
		return nil, models.NewNotFoundError("Column", in.ColumnID)
	}
	if !decision.Mutable {
		return nil, models.NewForbiddenError("Project membership required to update columns")
	}

	column, err := s.columnRepo.GetByIDAny(ctx, in.ColumnID)
	if err != nil {
		return nil, notFoundOr(err, "Column", in.ColumnID)
	}

	if in.Name != nil {
		if *in.Name == "" {
			return nil, models.NewFieldValidationError("name", "Name is required")
		}
		column.Name = *in.Name
	}
	if in.Position != nil {
		if *in.Position < 0 {
			return nil, models.NewFieldValidationError("order", "Order must not be negative")
		}
		column.Position = *in.Position
	}
	if in.IsActive != nil {
		column.IsActive = *in.IsActive
	}

	if err := s.columnRepo.Update(ctx, column); err != nil {
		if isDuplicate(err) {
			return nil, models.NewFieldValidationError("order", "Order is already taken in this project")
		}
		return nil, err
	}
	return column, nil
}

func (s *ColumnService) DeleteColumn(ctx context.Context, in DeleteColumnInput) error {
	decision, err := s.authorizer.Decide(ctx, authz.KindColumn, in.ColumnID, in.UserID)
	if err != nil {
		return notFoundOr(err, "Column", in.ColumnID)
	}
	if !decision.Visible {
		return models.NewNotFoundError("Column", in.ColumnID)
	}
	if !decision.Mutable {
		return models.NewForbiddenError("Project membership required to delete columns")
	}
	return s.columnRepo.Delete(ctx, in.ColumnID)
}
