package service

import (
	"context"

	"kanban/internal/models"
	"kanban/internal/repository"
)

// UserService exposes account lookups and self-deletion.
type UserService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

func (s *UserService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "User", id)
	}
	return user, nil
}

func (s *UserService) ListUsers(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.userRepo.List(ctx, limit, offset)
}

// DeleteAccount removes the identity and cascades per the schema contract:
// owned projects, authored comments, notifications and memberships go with
// the user; tasks they created or were assigned keep living with the
// reference nulled.
func (s *UserService) DeleteAccount(ctx context.Context, userID uint) error {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return notFoundOr(err, "User", userID)
	}
	return s.userRepo.Delete(ctx, userID)
}
