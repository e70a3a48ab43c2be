package repository

import (
	"context"

	"kanban/internal/models"

	"gorm.io/gorm"
)

// ColumnRepository defines interface for column operations. Default reads are
// active-only; the *Any/*All variants include soft-deleted rows.
type ColumnRepository interface {
	Create(ctx context.Context, column *models.Column) error
	GetByID(ctx context.Context, id uint) (*models.Column, error)
	GetByIDAny(ctx context.Context, id uint) (*models.Column, error)
	ListByProject(ctx context.Context, projectID uint) ([]*models.Column, error)
	ListAllByProject(ctx context.Context, projectID uint) ([]*models.Column, error)
	Update(ctx context.Context, column *models.Column) error
	Delete(ctx context.Context, id uint) error
}

type columnRepository struct {
	db *gorm.DB
}

// NewColumnRepository creates a new ColumnRepository
func NewColumnRepository(db *gorm.DB) ColumnRepository {
	return &columnRepository{db: db}
}

func (r *columnRepository) Create(ctx context.Context, column *models.Column) error {
	return r.db.WithContext(ctx).Create(column).Error
}

func (r *columnRepository) GetByID(ctx context.Context, id uint) (*models.Column, error) {
	var column models.Column
	err := r.db.WithContext(ctx).Where("is_active = ?", true).First(&column, id).Error
	if err != nil {
		return nil, err
	}
	return &column, nil
}

func (r *columnRepository) GetByIDAny(ctx context.Context, id uint) (*models.Column, error) {
	var column models.Column
	if err := r.db.WithContext(ctx).First(&column, id).Error; err != nil {
		return nil, err
	}
	return &column, nil
}

func (r *columnRepository) ListByProject(ctx context.Context, projectID uint) ([]*models.Column, error) {
	return r.listByProject(ctx, projectID, false)
}

func (r *columnRepository) ListAllByProject(ctx context.Context, projectID uint) ([]*models.Column, error) {
	return r.listByProject(ctx, projectID, true)
}

func (r *columnRepository) listByProject(ctx context.Context, projectID uint, includeInactive bool) ([]*models.Column, error) {
	var columns []*models.Column
	q := r.db.WithContext(ctx).Where("project_id = ?", projectID)
	if !includeInactive {
		q = q.Where("is_active = ?", true)
	}
	err := q.Order("position").Find(&columns).Error
	return columns, err
}

func (r *columnRepository) Update(ctx context.Context, column *models.Column) error {
	return r.db.WithContext(ctx).Save(column).Error
}

func (r *columnRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deleteTasksCascade(tx, []uint{id}); err != nil {
			return err
		}
		return tx.Delete(&models.Column{}, id).Error
	})
}
