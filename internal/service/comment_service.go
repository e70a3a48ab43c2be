package service

import (
	"context"
	"fmt"
	"log/slog"

	"kanban/internal/authz"
	"kanban/internal/middleware"
	"kanban/internal/models"
	"kanban/internal/repository"
)

const maxCommentLen = 10000

// CommentService owns comment CRUD and originates comment notifications.
type CommentService struct {
	commentRepo      repository.CommentRepository
	taskRepo         repository.TaskRepository
	notificationRepo repository.NotificationRepository
	authorizer       *authz.Authorizer
}

type CreateCommentInput struct {
	UserID uint
	TaskID uint
	Text   string
}

type ListCommentsInput struct {
	UserID          uint
	TaskID          uint
	IncludeInactive bool
}

type GetCommentInput struct {
	UserID          uint
	CommentID       uint
	IncludeInactive bool
}

type UpdateCommentInput struct {
	UserID    uint
	CommentID uint
	Text      *string
	IsActive  *bool
}

type DeleteCommentInput struct {
	UserID    uint
	CommentID uint
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	taskRepo repository.TaskRepository,
	notificationRepo repository.NotificationRepository,
	authorizer *authz.Authorizer,
) *CommentService {
	return &CommentService{
		commentRepo:      commentRepo,
		taskRepo:         taskRepo,
		notificationRepo: notificationRepo,
		authorizer:       authorizer,
	}
}

// CreateComment creates a comment authored by the requesting identity on a
// task the identity can see. The author is never taken from client input.
func (s *CommentService) CreateComment(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	if in.Text == "" {
		return nil, models.NewFieldValidationError("text", "Text is required")
	}
	if len(in.Text) > maxCommentLen {
		return nil, models.NewFieldValidationError("text", "Comment too long (max 10000 characters)")
	}

	decision, err := s.authorizer.Decide(ctx, authz.KindTask, in.TaskID, in.UserID)
	if err != nil {
		return nil, notFoundOr(err, "Task", in.TaskID)
	}
	if !decision.Visible {
		return nil, models.NewNotFoundError("Task", in.TaskID)
	}

	comment := &models.Comment{
		TaskID:   in.TaskID,
		AuthorID: in.UserID,
		Text:     in.Text,
		IsActive: true,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	s.notifyTaskWatchers(ctx, in.TaskID, in.UserID)

	return s.commentRepo.GetByID(ctx, comment.ID)
}

func (s *CommentService) ListComments(ctx context.Context, in ListCommentsInput) ([]*models.Comment, error) {
	decision, err := s.authorizer.Decide(ctx, authz.KindTask, in.TaskID, in.UserID)
	if err != nil {
		return nil, notFoundOr(err, "Task", in.TaskID)
	}
	if !decision.Visible {
		return nil, models.NewNotFoundError("Task", in.TaskID)
	}
	if in.IncludeInactive {
		return s.commentRepo.ListAllByTask(ctx, in.TaskID)
	}
	return s.commentRepo.ListByTask(ctx, in.TaskID)
}

func (s *CommentService) GetComment(ctx context.Context, in GetCommentInput) (*models.Comment, error) {
	decision, err := s.authorizer.Decide(ctx, authz.KindComment, in.CommentID, in.UserID)
	if err != nil {
		return nil, notFoundOr(err, "Comment", in.CommentID)
	}
	if !decision.Visible {
		return nil, models.NewNotFoundError("Comment", in.CommentID)
	}
	if in.IncludeInactive {
		return s.commentRepo.GetByIDAny(ctx, in.CommentID)
	}
	comment, err := s.commentRepo.GetByID(ctx, in.CommentID)
	if err != nil {
		return nil, notFoundOr(err, "Comment", in.CommentID)
	}
	return comment, nil
}

func (s *CommentService) UpdateComment(ctx context.Context, in UpdateCommentInput) (*models.Comment, error) {
	decision, err := s.authorizer.Decide(ctx, authz.KindComment, in.CommentID, in.UserID)
	if err != nil {
		return nil, notFoundOr(err, "Comment", in.CommentID)
	}
	if !decision.Visible {
		return nil, models.NewNotFoundError("Comment", in.CommentID)
	}
	if !decision.Mutable {
		return nil, models.NewForbiddenError("Project membership required to update comments")
	}

	comment, err := s.commentRepo.GetByIDAny(ctx, in.CommentID)
	if err != nil {
		return nil, notFoundOr(err, "Comment", in.CommentID)
	}

	if in.Text != nil {
		if *in.Text == "" {
			return nil, models.NewFieldValidationError("text", "Text is required")
		}
		if len(*in.Text) > maxCommentLen {
			return nil, models.NewFieldValidationError("text", "Comment too long (max 10000 characters)")
		}
		comment.Text = *in.Text
	}
	if in.IsActive != nil {
		comment.IsActive = *in.IsActive
	}

	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}
	return s.commentRepo.GetByIDAny(ctx, in.CommentID)
}

func (s *CommentService) DeleteComment(ctx context.Context, in DeleteCommentInput) error {
	decision, err := s.authorizer.Decide(ctx, authz.KindComment, in.CommentID, in.UserID)
	if err != nil {
		return notFoundOr(err, "Comment", in.CommentID)
	}
	if !decision.Visible {
		return models.NewNotFoundError("Comment", in.CommentID)
	}
	if !decision.Mutable {
		return models.NewForbiddenError("Project membership required to delete comments")
	}
	return s.commentRepo.Delete(ctx, in.CommentID)
}

// notifyTaskWatchers notifies the task's creator and assignee about a new
// comment, skipping the commenter. Failed inserts are logged and dropped.
func (s *CommentService) notifyTaskWatchers(ctx context.Context, taskID, commenterID uint) {
	task, err := s.taskRepo.GetByIDAny(ctx, taskID)
	if err != nil {
		middleware.Logger.ErrorContext(ctx, "failed to load task for comment notification",
			slog.Uint64("task_id", uint64(taskID)),
			slog.String("error", err.Error()),
		)
		return
	}

	recipients := map[uint]bool{}
	if task.CreatedByID != nil {
		recipients[*task.CreatedByID] = true
	}
	if task.AssignedID != nil {
		recipients[*task.AssignedID] = true
	}
	delete(recipients, commenterID)

	for userID := range recipients {
		notification := &models.Notification{
			UserID:  userID,
			Message: fmt.Sprintf("New comment on task %q", task.Title),
		}
		if err := s.notificationRepo.Create(ctx, notification); err != nil {
			middleware.Logger.ErrorContext(ctx, "failed to create comment notification",
				slog.Uint64("user_id", uint64(userID)),
				slog.String("error", err.Error()),
			)
		}
	}
}
