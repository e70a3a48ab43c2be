package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"kanban/internal/authz"
	"kanban/internal/middleware"
	"kanban/internal/models"
	"kanban/internal/repository"
)

// TaskService owns task CRUD and originates assignment notifications.
type TaskService struct {
	taskRepo         repository.TaskRepository
	userRepo         repository.UserRepository
	notificationRepo repository.NotificationRepository
	authorizer       *authz.Authorizer
}

type CreateTaskInput struct {
	UserID      uint
	ColumnID    uint
	Title       string
	Description string
	Position    int
	Due         *time.Time
	AssignedID  *uint
}

type ListTasksInput struct {
	UserID          uint
	ColumnID        uint
	IncludeInactive bool
}

type GetTaskInput struct {
	UserID          uint
	TaskID          uint
	IncludeInactive bool
}

type UpdateTaskInput struct {
	UserID      uint
	TaskID      uint
	ColumnID    *uint
	Title       *string
	Description *string
	Position    *int
	Due         *time.Time
	ClearDue    bool
	AssignedID  *uint
	Unassign    bool
	IsActive    *bool
}

type DeleteTaskInput struct {
	UserID uint
	TaskID uint
}

func NewTaskService(
	taskRepo repository.TaskRepository,
	userRepo repository.UserRepository,
	notificationRepo repository.NotificationRepository,
	authorizer *authz.Authorizer,
) *TaskService {
	return &TaskService{
		taskRepo:         taskRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
		authorizer:       authorizer,
	}
}

// CreateTask creates a task in a column the caller can access. The creator is
// always the requesting identity, regardless of client input.
func (s *TaskService) CreateTask(ctx context.Context, in CreateTaskInput) (*models.Task, error) {
	if in.Title == "" {
		return nil, models.NewFieldValidationError("title", "Title is required")
	}
	if len(in.Title) > 200 {
		return nil, models.NewFieldValidationError("title", "Title too long (max 200 characters)")
	}
	if in.Position < 0 {
		return nil, models.NewFieldValidationError("order", "Order must not be negative")
	}

	decision, err := s.authorizer.Decide(ctx, authz.KindColumn, in.ColumnID, in.UserID)
	if err != nil {
		return nil, notFoundOr(err, "Column", in.ColumnID)
	}
	if !decision.Visible {
		return nil, models.NewNotFoundError("Column", in.ColumnID)
	}

	if in.AssignedID != nil {
		if _, err := s.userRepo.GetByID(ctx, *in.AssignedID); err != nil {
			return nil, models.NewFieldValidationError("assigned_id", "Assigned user does not exist")
		}
	}

	creatorID := in.UserID
	task := &models.Task{
		ColumnID:    in.ColumnID,
		Title:       in.Title,
		Description: in.Description,
		Position:    in.Position,
		Due:         in.Due,
		AssignedID:  in.AssignedID,
		CreatedByID: &creatorID,
		IsActive:    true,
	}
	if err := s.taskRepo.Create(ctx, task); err != nil {
		if isDuplicate(err) {
			return nil, models.NewFieldValidationError("order", "Order is already taken in this column")
		}
		return nil, err
	}

	if task.AssignedID != nil && *task.AssignedID != in.UserID {
		s.notifyAssignment(ctx, *task.AssignedID, task.Title)
	}

	return s.taskRepo.GetByID(ctx, task.ID)
}

func (s *TaskService) ListTasks(ctx context.Context, in ListTasksInput) ([]*models.Task, error) {
	decision, err := s.authorizer.Decide(ctx, authz.KindColumn, in.ColumnID, in.UserID)
	if err != nil {
		return nil, notFoundOr(err, "Column", in.ColumnID)
	}
	if !decision.Visible {
		return nil, models.NewNotFoundError("Column", in.ColumnID)
	}
	if in.IncludeInactive {
		return s.taskRepo.ListAllByColumn(ctx, in.ColumnID)
	}
	return s.taskRepo.ListByColumn(ctx, in.ColumnID)
}

func (s *TaskService) GetTask(ctx context.Context, in GetTaskInput) (*models.Task, error) {
	decision, err := s.authorizer.Decide(ctx, authz.KindTask, in.TaskID, in.UserID)
	if err != nil {
		return nil, notFoundOr(err, "Task", in.TaskID)
	}
	if !decision.Visible {
		return nil, models.NewNotFoundError("Task", in.TaskID)
	}
	if in.IncludeInactive {
		return s.taskRepo.GetByIDAny(ctx, in.TaskID)
	}
	task, err := s.taskRepo.GetByID(ctx, in.TaskID)
	if err != nil {
		return nil, notFoundOr(err, "Task", in.TaskID)
	}
	return task, nil
}

func (s *TaskService) UpdateTask(ctx context.Context, in UpdateTaskInput) (*models.Task, error) {
	decision, err := s.authorizer.Decide(ctx, authz.KindTask, in.TaskID, in.UserID)
	if err != nil {
		return nil, notFoundOr(err, "Task", in.TaskID)
	}
	if !decision.Visible {
		return nil, models.NewNotFoundError("Task", in.TaskID)
	}
	if !decision.Mutable {
		return nil, models.NewForbiddenError("Project membership required to update tasks")
	}

	task, err := s.taskRepo.GetByIDAny(ctx, in.TaskID)
	if err != nil {
		return nil, notFoundOr(err, "Task", in.TaskID)
	}

	previousAssignee := task.AssignedID

	if in.ColumnID != nil && *in.ColumnID != task.ColumnID {
		// Moving across columns re-checks access against the target column's
		// project; both boards must be visible to the caller.
		targetDecision, err := s.authorizer.Decide(ctx, authz.KindColumn, *in.ColumnID, in.UserID)
		if err != nil {
			return nil, notFoundOr(err, "Column", *in.ColumnID)
		}
		if !targetDecision.Visible {
			return nil, models.NewNotFoundError("Column", *in.ColumnID)
		}
		task.ColumnID = *in.ColumnID
	}
	if in.Title != nil {
		if *in.Title == "" {
			return nil, models.NewFieldValidationError("title", "Title is required")
		}
		task.Title = *in.Title
	}
	if in.Description != nil {
		task.Description = *in.Description
	}
	if in.Position != nil {
		if *in.Position < 0 {
			return nil, models.NewFieldValidationError("order", "Order must not be negative")
		}
		task.Position = *in.Position
	}
	if in.ClearDue {
		task.Due = nil
	} else if in.Due != nil {
		task.Due = in.Due
	}
	if in.Unassign {
		task.AssignedID = nil
	} else if in.AssignedID != nil {
		if _, err := s.userRepo.GetByID(ctx, *in.AssignedID); err != nil {
			return nil, models.NewFieldValidationError("assigned_id", "Assigned user does not exist")
		}
		task.AssignedID = in.AssignedID
	}
	if in.IsActive != nil {
		task.IsActive = *in.IsActive
	}

	// The preloaded association would resurrect the old assignee on Save.
	task.Assigned = nil
	task.CreatedBy = nil

	if err := s.taskRepo.Update(ctx, task); err != nil {
		if isDuplicate(err) {
			return nil, models.NewFieldValidationError("order", "Order is already taken in this column")
		}
		return nil, err
	}

	if task.AssignedID != nil && *task.AssignedID != in.UserID &&
		(previousAssignee == nil || *previousAssignee != *task.AssignedID) {
		s.notifyAssignment(ctx, *task.AssignedID, task.Title)
	}

	return s.taskRepo.GetByIDAny(ctx, in.TaskID)
}

func (s *TaskService) DeleteTask(ctx context.Context, in DeleteTaskInput) error {
	decision, err := s.authorizer.Decide(ctx, authz.KindTask, in.TaskID, in.UserID)
	if err != nil {
		return notFoundOr(err, "Task", in.TaskID)
	}
	if !decision.Visible {
		return models.NewNotFoundError("Task", in.TaskID)
	}
	if !decision.Mutable {
		return models.NewForbiddenError("Project membership required to delete tasks")
	}
	return s.taskRepo.Delete(ctx, in.TaskID)
}

// notifyAssignment inserts the assignee's inbox row. A failed insert never
// fails the task write; it is logged and dropped.
func (s *TaskService) notifyAssignment(ctx context.Context, assigneeID uint, title string) {
	notification := &models.Notification{
		UserID:  assigneeID,
		Message: fmt.Sprintf("You were assigned to task %q", title),
	}
	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		middleware.Logger.ErrorContext(ctx, "failed to create assignment notification",
			slog.Uint64("assignee_id", uint64(assigneeID)),
			slog.String("error", err.Error()),
		)
	}
}
