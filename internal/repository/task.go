package repository

import (
	"context"

	"kanban/internal/models"

	"gorm.io/gorm"
)

// TaskRepository defines interface for task operations. Default reads are
// active-only; the *Any/*All variants include soft-deleted rows.
type TaskRepository interface {
	Create(ctx context.Context, task *models.Task) error
	GetByID(ctx context.Context, id uint) (*models.Task, error)
	GetByIDAny(ctx context.Context, id uint) (*models.Task, error)
	ListByColumn(ctx context.Context, columnID uint) ([]*models.Task, error)
	ListAllByColumn(ctx context.Context, columnID uint) ([]*models.Task, error)
	Update(ctx context.Context, task *models.Task) error
	Delete(ctx context.Context, id uint) error
}

type taskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) Create(ctx context.Context, task *models.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

func (r *taskRepository) GetByID(ctx context.Context, id uint) (*models.Task, error) {
	var task models.Task
	err := r.db.WithContext(ctx).
		Preload("Assigned").
		Preload("CreatedBy").
		Where("is_active = ?", true).
		First(&task, id).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *taskRepository) GetByIDAny(ctx context.Context, id uint) (*models.Task, error) {
	var task models.Task
	err := r.db.WithContext(ctx).
		Preload("Assigned").
		Preload("CreatedBy").
		First(&task, id).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *taskRepository) ListByColumn(ctx context.Context, columnID uint) ([]*models.Task, error) {
	return r.listByColumn(ctx, columnID, false)
}

func (r *taskRepository) ListAllByColumn(ctx context.Context, columnID uint) ([]*models.Task, error) {
	return r.listByColumn(ctx, columnID, true)
}

func (r *taskRepository) listByColumn(ctx context.Context, columnID uint, includeInactive bool) ([]*models.Task, error) {
	var tasks []*models.Task
	q := r.db.WithContext(ctx).
		Preload("Assigned").
		Where("column_id = ?", columnID)
	if !includeInactive {
		q = q.Where("is_active = ?", true)
	}
	err := q.Order("position").Find(&tasks).Error
	return tasks, err
}

func (r *taskRepository) Update(ctx context.Context, task *models.Task) error {
	return r.db.WithContext(ctx).Save(task).Error
}

func (r *taskRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Task{}, id).Error
	})
}
