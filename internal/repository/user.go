// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"

	"kanban/internal/models"

	"gorm.io/gorm"
)

// UserRepository defines interface for user operations
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	List(ctx context.Context, limit, offset int) ([]models.User, error)
	Delete(ctx context.Context, id uint) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).
		Select("id", "username", "email", "created_at", "updated_at").
		Order("username").
		Limit(limit).Offset(offset).
		Find(&users).Error
	return users, err
}

// Delete removes the user and everything that must not outlive them: owned
// projects (with their full board cascade), authored comments, notifications
// and memberships. Tasks the user created or was assigned to survive with the
// reference nulled. Runs in one transaction so partial cascades never commit.
func (r *userRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ownedIDs []uint
		if err := tx.Model(&models.Project{}).Where("owner_id = ?", id).Pluck("id", &ownedIDs).Error; err != nil {
			return err
		}
		for _, projectID := range ownedIDs {
			if err := deleteProjectCascade(tx, projectID); err != nil {
				return err
			}
		}

		if err := tx.Model(&models.Task{}).Where("assigned_id = ?", id).
			Update("assigned_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Task{}).Where("created_by_id = ?", id).
			Update("created_by_id", nil).Error; err != nil {
			return err
		}

		if err := tx.Where("author_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.Notification{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.ProjectMembership{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.User{}, id).Error
	})
}
