package service

import (
	"context"

	"kanban/internal/authz"
	"kanban/internal/models"
	"kanban/internal/repository"
)

// ProjectService owns project CRUD and membership management.
type ProjectService struct {
	projectRepo repository.ProjectRepository
	userRepo    repository.UserRepository
	authorizer  *authz.Authorizer
}

type CreateProjectInput struct {
	OwnerID     uint
	Name        string
	Description string
}

type ListProjectsInput struct {
	UserID          uint
	IncludeInactive bool
}

type GetProjectInput struct {
	UserID          uint
	ProjectID       uint
	IncludeInactive bool
}

type UpdateProjectInput struct {
	UserID      uint
	ProjectID   uint
	Name        *string
	Description *string
	IsActive    *bool
}

type DeleteProjectInput struct {
	UserID    uint
	ProjectID uint
}

type MemberInput struct {
	UserID    uint
	ProjectID uint
	MemberID  uint
}

func NewProjectService(
	projectRepo repository.ProjectRepository,
	userRepo repository.UserRepository,
	authorizer *authz.Authorizer,
) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		userRepo:    userRepo,
		authorizer:  authorizer,
	}
}

// CreateProject creates a project owned by the requesting identity. The owner
// is never taken from client input.
func (s *ProjectService) CreateProject(ctx context.Context, in CreateProjectInput) (*models.Project, error) {
	if in.Name == "" {
		return nil, models.NewFieldValidationError("name", "Name is required")
	}
	if len(in.Name) > 100 {
		return nil, models.NewFieldValidationError("name", "Name too long (max 100 characters)")
	}

	project := &models.Project{
		Name:        in.Name,
		Description: in.Description,
		OwnerID:     in.OwnerID,
		IsActive:    true,
	}
	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, err
	}
	return s.projectRepo.GetByID(ctx, project.ID)
}

func (s *ProjectService) ListProjects(ctx context.Context, in ListProjectsInput) ([]*models.Project, error) {
	if in.IncludeInactive {
		return s.projectRepo.ListAllForUser(ctx, in.UserID)
	}
	return s.projectRepo.ListForUser(ctx, in.UserID)
}

func (s *ProjectService) GetProject(ctx context.Context, in GetProjectInput) (*models.Project, error) {
	decision, err := s.authorizer.Decide(ctx, authz.KindProject, in.ProjectID, in.UserID)
	if err != nil {
		return nil, notFoundOr(err, "Project", in.ProjectID)
	}
	if !decision.Visible {
		return nil, models.NewNotFoundError("Project", in.ProjectID)
	}
	if in.IncludeInactive {
		return s.projectRepo.GetByIDAny(ctx, in.ProjectID)
	}
	project, err := s.projectRepo.GetByID(ctx, in.ProjectID)
	if err != nil {
		return nil, notFoundOr(err, "Project", in.ProjectID)
	}
	return project, nil
}

func (s *ProjectService) UpdateProject(ctx context.Context, in UpdateProjectInput) (*models.Project, error) {
	decision, err := s.authorizer.Decide(ctx, authz.KindProject, in.ProjectID, in.UserID)
	if err != nil {
		return nil, notFoundOr(err, "Project", in.ProjectID)
	}
	if !decision.Visible {
		return nil, models.NewNotFoundError("Project", in.ProjectID)
	}
	if !decision.Mutable {
		return nil, models.NewForbiddenError("Only the project owner may update the project")
	}

	// Any-state read so a soft-deleted project can be restored.
	project, err := s.projectRepo.GetByIDAny(ctx, in.ProjectID)
	if err != nil {
		return nil, notFoundOr(err, "Project", in.ProjectID)
	}

	if in.Name != nil {
		if *in.Name == "" {
			return nil, models.NewFieldValidationError("name", "Name is required")
		}
		project.Name = *in.Name
	}
	if in.Description != nil {
		project.Description = *in.Description
	}
	if in.IsActive != nil {
		project.IsActive = *in.IsActive
	}

	if err := s.projectRepo.Update(ctx, project); err != nil {
		return nil, err
	}
	return s.projectRepo.GetByIDAny(ctx, in.ProjectID)
}

func (s *ProjectService) DeleteProject(ctx context.Context, in DeleteProjectInput) error {
	decision, err := s.authorizer.Decide(ctx, authz.KindProject, in.ProjectID, in.UserID)
	if err != nil {
		return notFoundOr(err, "Project", in.ProjectID)
	}
	if !decision.Visible {
		return models.NewNotFoundError("Project", in.ProjectID)
	}
	if !decision.Mutable {
		return models.NewForbiddenError("Only the project owner may delete the project")
	}
	return s.projectRepo.Delete(ctx, in.ProjectID)
}

// AddMember grants a user membership. Owner only; the owner themselves is
// implicitly privileged and never stored as a member row.
func (s *ProjectService) AddMember(ctx context.Context, in MemberInput) error {
	decision, err := s.authorizer.Decide(ctx, authz.KindProject, in.ProjectID, in.UserID)
	if err != nil {
		return notFoundOr(err, "Project", in.ProjectID)
	}
	if !decision.Visible {
		return models.NewNotFoundError("Project", in.ProjectID)
	}
	if !decision.Mutable {
		return models.NewForbiddenError("Only the project owner may manage members")
	}

	member, err := s.userRepo.GetByID(ctx, in.MemberID)
	if err != nil {
		return notFoundOr(err, "User", in.MemberID)
	}

	project, err := s.projectRepo.GetByIDAny(ctx, in.ProjectID)
	if err != nil {
		return notFoundOr(err, "Project", in.ProjectID)
	}
	if project.OwnerID == member.ID {
		return models.NewFieldValidationError("user_id", "The owner already has full access")
	}

	if err := s.projectRepo.AddMember(ctx, in.ProjectID, in.MemberID); err != nil {
		if isDuplicate(err) {
			return models.NewFieldValidationError("user_id", "User is already a member")
		}
		return err
	}
	return nil
}

func (s *ProjectService) RemoveMember(ctx context.Context, in MemberInput) error {
	decision, err := s.authorizer.Decide(ctx, authz.KindProject, in.ProjectID, in.UserID)
	if err != nil {
		return notFoundOr(err, "Project", in.ProjectID)
	}
	if !decision.Visible {
		return models.NewNotFoundError("Project", in.ProjectID)
	}
	if !decision.Mutable {
		return models.NewForbiddenError("Only the project owner may manage members")
	}
	return s.projectRepo.RemoveMember(ctx, in.ProjectID, in.MemberID)
}
