package repository

import (
	"context"

	"kanban/internal/models"

	"gorm.io/gorm"
)

// CommentRepository defines interface for comment operations. Default reads
// are active-only; the *Any/*All variants include soft-deleted rows.
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id uint) (*models.Comment, error)
	GetByIDAny(ctx context.Context, id uint) (*models.Comment, error)
	ListByTask(ctx context.Context, taskID uint) ([]*models.Comment, error)
	ListAllByTask(ctx context.Context, taskID uint) ([]*models.Comment, error)
	Update(ctx context.Context, comment *models.Comment) error
	Delete(ctx context.Context, id uint) error
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *commentRepository) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("is_active = ?", true).
		First(&comment, id).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) GetByIDAny(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).Preload("Author").First(&comment, id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) ListByTask(ctx context.Context, taskID uint) ([]*models.Comment, error) {
	return r.listByTask(ctx, taskID, false)
}

func (r *commentRepository) ListAllByTask(ctx context.Context, taskID uint) ([]*models.Comment, error) {
	return r.listByTask(ctx, taskID, true)
}

func (r *commentRepository) listByTask(ctx context.Context, taskID uint, includeInactive bool) ([]*models.Comment, error) {
	var comments []*models.Comment
	q := r.db.WithContext(ctx).Preload("Author").Where("task_id = ?", taskID)
	if !includeInactive {
		q = q.Where("is_active = ?", true)
	}
	// Oldest first: comments read as a conversation thread.
	err := q.Order("created_at asc").Find(&comments).Error
	return comments, err
}

func (r *commentRepository) Update(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Save(comment).Error
}

func (r *commentRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Comment{}, id).Error
}
