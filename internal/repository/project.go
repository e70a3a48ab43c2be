package repository

import (
	"context"

	"kanban/internal/models"

	"gorm.io/gorm"
)

// ProjectRepository defines interface for project operations.
//
// Reads come in two policies: the default methods see only active rows
// (is_active = true); the *Any/*All variants see everything and exist for
// explicit administrative/audit access. Soft-deleting a project is an Update
// of IsActive; Delete is a hard, cascading removal.
type ProjectRepository interface {
	Create(ctx context.Context, project *models.Project) error
	GetByID(ctx context.Context, id uint) (*models.Project, error)
	GetByIDAny(ctx context.Context, id uint) (*models.Project, error)
	ListForUser(ctx context.Context, userID uint) ([]*models.Project, error)
	ListAllForUser(ctx context.Context, userID uint) ([]*models.Project, error)
	Update(ctx context.Context, project *models.Project) error
	Delete(ctx context.Context, id uint) error
	AddMember(ctx context.Context, projectID, userID uint) error
	RemoveMember(ctx context.Context, projectID, userID uint) error
}

type projectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{db: db}
}

func (r *projectRepository) Create(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).Create(project).Error
}

func (r *projectRepository) GetByID(ctx context.Context, id uint) (*models.Project, error) {
	var project models.Project
	err := r.db.WithContext(ctx).
		Preload("Owner").
		Preload("Memberships.User").
		Where("is_active = ?", true).
		First(&project, id).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *projectRepository) GetByIDAny(ctx context.Context, id uint) (*models.Project, error) {
	var project models.Project
	err := r.db.WithContext(ctx).
		Preload("Owner").
		Preload("Memberships.User").
		First(&project, id).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// ListForUser returns active projects the user owns or is a member of.
// The union is a single DISTINCT query so an owner who is also listed as a
// member yields one row, not two.
func (r *projectRepository) ListForUser(ctx context.Context, userID uint) ([]*models.Project, error) {
	return r.listForUser(ctx, userID, false)
}

// ListAllForUser is the audit view: same membership scoping, inactive rows included.
func (r *projectRepository) ListAllForUser(ctx context.Context, userID uint) ([]*models.Project, error) {
	return r.listForUser(ctx, userID, true)
}

func (r *projectRepository) listForUser(ctx context.Context, userID uint, includeInactive bool) ([]*models.Project, error) {
	var projects []*models.Project
	q := r.db.WithContext(ctx).
		Distinct("projects.*").
		Joins("LEFT JOIN project_memberships ON project_memberships.project_id = projects.id AND project_memberships.user_id = ?", userID).
		Where("projects.owner_id = ? OR project_memberships.user_id = ?", userID, userID)
	if !includeInactive {
		q = q.Where("projects.is_active = ?", true)
	}
	err := q.Order("projects.name").Find(&projects).Error
	return projects, err
}

func (r *projectRepository) Update(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).Save(project).Error
}

func (r *projectRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return deleteProjectCascade(tx, id)
	})
}

func (r *projectRepository) AddMember(ctx context.Context, projectID, userID uint) error {
	membership := &models.ProjectMembership{ProjectID: projectID, UserID: userID}
	return r.db.WithContext(ctx).Create(membership).Error
}

func (r *projectRepository) RemoveMember(ctx context.Context, projectID, userID uint) error {
	return r.db.WithContext(ctx).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Delete(&models.ProjectMembership{}).Error
}

// deleteProjectCascade hard-deletes a project and its columns, tasks, comments
// and memberships inside the caller's transaction. Kept explicit rather than
// relying on database-level ON DELETE so the contract holds on every backend
// the test suite runs against.
func deleteProjectCascade(tx *gorm.DB, projectID uint) error {
	var columnIDs []uint
	if err := tx.Model(&models.Column{}).Where("project_id = ?", projectID).Pluck("id", &columnIDs).Error; err != nil {
		return err
	}
	if len(columnIDs) > 0 {
		if err := deleteTasksCascade(tx, columnIDs); err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", projectID).Delete(&models.Column{}).Error; err != nil {
			return err
		}
	}
	if err := tx.Where("project_id = ?", projectID).Delete(&models.ProjectMembership{}).Error; err != nil {
		return err
	}
	return tx.Delete(&models.Project{}, projectID).Error
}

// deleteTasksCascade removes all tasks in the given columns together with
// their comments.
func deleteTasksCascade(tx *gorm.DB, columnIDs []uint) error {
	var taskIDs []uint
	if err := tx.Model(&models.Task{}).Where("column_id IN ?", columnIDs).Pluck("id", &taskIDs).Error; err != nil {
		return err
	}
	if len(taskIDs) > 0 {
		if err := tx.Where("task_id IN ?", taskIDs).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("id IN ?", taskIDs).Delete(&models.Task{}).Error; err != nil {
			return err
		}
	}
	return nil
}
