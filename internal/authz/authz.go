// Package authz implements per-object access control for the board hierarchy.
//
// Every entity below Project derives its access boundary by walking up to the
// owning project: Comment -> Task -> Column -> Project. The walk happens fresh
// on every check because membership can change between a list call and the
// mutation that follows it.
package authz

import (
	"context"
	"errors"

	"kanban/internal/models"

	"gorm.io/gorm"
)

// Kind tags the entity variant a Decision is being made for.
type Kind int

const (
	KindProject Kind = iota
	KindColumn
	KindTask
	KindComment
	KindNotification
)

// Decision reports what the identity may do with one object.
type Decision struct {
	Visible bool
	Mutable bool
}

// ErrNotFound is returned when the object (or part of its ownership chain)
// does not exist. Callers typically surface it the same way as a failed
// visibility check.
var ErrNotFound = errors.New("authz: object not found")

// Authorizer evaluates visibility and mutation predicates against the store.
type Authorizer struct {
	db *gorm.DB
}

// NewAuthorizer creates an Authorizer bound to the given database handle.
func NewAuthorizer(db *gorm.DB) *Authorizer {
	return &Authorizer{db: db}
}

// Decide maps (kind, object, identity) to a Decision, one case per entity kind.
func (a *Authorizer) Decide(ctx context.Context, kind Kind, objectID, userID uint) (Decision, error) {
	switch kind {
	case KindProject:
		return a.decideProject(ctx, objectID, userID)
	case KindColumn:
		return a.decideColumn(ctx, objectID, userID)
	case KindTask:
		return a.decideTask(ctx, objectID, userID)
	case KindComment:
		return a.decideComment(ctx, objectID, userID)
	case KindNotification:
		return a.decideNotification(ctx, objectID, userID)
	default:
		return Decision{}, errors.New("authz: unknown entity kind")
	}
}

// ProjectRole reports whether the identity owns or is a member of a project.
func (a *Authorizer) ProjectRole(ctx context.Context, projectID, userID uint) (isOwner, isMember bool, err error) {
	var ownerID uint
	err = a.db.WithContext(ctx).
		Model(&models.Project{}).
		Where("id = ?", projectID).
		Pluck("owner_id", &ownerID).Error
	if err != nil {
		return false, false, err
	}
	if ownerID == 0 {
		return false, false, ErrNotFound
	}
	if ownerID == userID {
		return true, false, nil
	}

	var count int64
	err = a.db.WithContext(ctx).
		Model(&models.ProjectMembership{}).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Count(&count).Error
	if err != nil {
		return false, false, err
	}
	return false, count > 0, nil
}

func (a *Authorizer) decideProject(ctx context.Context, projectID, userID uint) (Decision, error) {
	isOwner, isMember, err := a.ProjectRole(ctx, projectID, userID)
	if err != nil {
		return Decision{}, err
	}
	// Only the owner may update or delete the project row itself.
	return Decision{Visible: isOwner || isMember, Mutable: isOwner}, nil
}

func (a *Authorizer) decideColumn(ctx context.Context, columnID, userID uint) (Decision, error) {
	projectID, err := a.columnProject(ctx, columnID)
	if err != nil {
		return Decision{}, err
	}
	return a.memberDecision(ctx, projectID, userID)
}

func (a *Authorizer) decideTask(ctx context.Context, taskID, userID uint) (Decision, error) {
	projectID, err := a.taskProject(ctx, taskID)
	if err != nil {
		return Decision{}, err
	}
	return a.memberDecision(ctx, projectID, userID)
}

func (a *Authorizer) decideComment(ctx context.Context, commentID, userID uint) (Decision, error) {
	var comment models.Comment
	err := a.db.WithContext(ctx).
		Select("id", "task_id", "author_id").
		First(&comment, commentID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Decision{}, ErrNotFound
	}
	if err != nil {
		return Decision{}, err
	}

	projectID, err := a.taskProject(ctx, comment.TaskID)
	if err != nil {
		return Decision{}, err
	}
	decision, err := a.memberDecision(ctx, projectID, userID)
	if err != nil {
		return Decision{}, err
	}
	// The author can always see their own comment; mutation still requires
	// project membership, matching the project-scoped mutation predicate.
	if comment.AuthorID == userID {
		decision.Visible = true
	}
	return decision, nil
}

func (a *Authorizer) decideNotification(ctx context.Context, notificationID, userID uint) (Decision, error) {
	var ownerID uint
	err := a.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("id = ?", notificationID).
		Pluck("user_id", &ownerID).Error
	if err != nil {
		return Decision{}, err
	}
	if ownerID == 0 {
		return Decision{}, ErrNotFound
	}
	own := ownerID == userID
	return Decision{Visible: own, Mutable: own}, nil
}

// memberDecision is the shared predicate for everything below the project:
// owners and members may both read and mutate.
func (a *Authorizer) memberDecision(ctx context.Context, projectID, userID uint) (Decision, error) {
	isOwner, isMember, err := a.ProjectRole(ctx, projectID, userID)
	if err != nil {
		return Decision{}, err
	}
	allowed := isOwner || isMember
	return Decision{Visible: allowed, Mutable: allowed}, nil
}

func (a *Authorizer) columnProject(ctx context.Context, columnID uint) (uint, error) {
	var projectID uint
	err := a.db.WithContext(ctx).
		Model(&models.Column{}).
		Where("id = ?", columnID).
		Pluck("project_id", &projectID).Error
	if err != nil {
		return 0, err
	}
	if projectID == 0 {
		return 0, ErrNotFound
	}
	return projectID, nil
}

// taskProject resolves a task's owning project through its column.
func (a *Authorizer) taskProject(ctx context.Context, taskID uint) (uint, error) {
	var projectID uint
	err := a.db.WithContext(ctx).
		Model(&models.Task{}).
		Joins("JOIN columns ON columns.id = tasks.column_id").
		Where("tasks.id = ?", taskID).
		Pluck("columns.project_id", &projectID).Error
	if err != nil {
		return 0, err
	}
	if projectID == 0 {
		return 0, ErrNotFound
	}
	return projectID, nil
}
