package authz

import (
	"context"
	"testing"

	"kanban/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type fixture struct {
	db         *gorm.DB
	authorizer *Authorizer
	owner      models.User
	member     models.User
	stranger   models.User
	project    models.Project
	column     models.Column
	task       models.Task
	comment    models.Comment
}

func setupFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.ProjectMembership{},
		&models.Column{},
		&models.Task{},
		&models.Comment{},
		&models.Notification{},
	))

	f := &fixture{db: db, authorizer: NewAuthorizer(db)}

	f.owner = models.User{Username: "owner", Email: "owner@example.com", Password: "pw"}
	f.member = models.User{Username: "member", Email: "member@example.com", Password: "pw"}
	f.stranger = models.User{Username: "stranger", Email: "stranger@example.com", Password: "pw"}
	require.NoError(t, db.Create(&f.owner).Error)
	require.NoError(t, db.Create(&f.member).Error)
	require.NoError(t, db.Create(&f.stranger).Error)

	f.project = models.Project{Name: "Board", OwnerID: f.owner.ID, IsActive: true}
	require.NoError(t, db.Create(&f.project).Error)
	require.NoError(t, db.Create(&models.ProjectMembership{
		ProjectID: f.project.ID, UserID: f.member.ID,
	}).Error)

	f.column = models.Column{ProjectID: f.project.ID, Name: "To Do", Position: 0, IsActive: true}
	require.NoError(t, db.Create(&f.column).Error)

	f.task = models.Task{ColumnID: f.column.ID, Title: "Task", Position: 0, CreatedByID: &f.owner.ID, IsActive: true}
	require.NoError(t, db.Create(&f.task).Error)

	f.comment = models.Comment{TaskID: f.task.ID, AuthorID: f.member.ID, Text: "hi", IsActive: true}
	require.NoError(t, db.Create(&f.comment).Error)

	return f
}

func TestDecideProject(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	owner, err := f.authorizer.Decide(ctx, KindProject, f.project.ID, f.owner.ID)
	require.NoError(t, err)
	assert.Equal(t, Decision{Visible: true, Mutable: true}, owner)

	member, err := f.authorizer.Decide(ctx, KindProject, f.project.ID, f.member.ID)
	require.NoError(t, err)
	assert.Equal(t, Decision{Visible: true, Mutable: false}, member)

	stranger, err := f.authorizer.Decide(ctx, KindProject, f.project.ID, f.stranger.ID)
	require.NoError(t, err)
	assert.Equal(t, Decision{Visible: false, Mutable: false}, stranger)
}

func TestDecideProject_Missing(t *testing.T) {
	f := setupFixture(t)

	_, err := f.authorizer.Decide(context.Background(), KindProject, 9999, f.owner.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDecideColumnAndTask_MembersMayMutate(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	for _, kind := range []Kind{KindColumn, KindTask} {
		objectID := f.column.ID
		if kind == KindTask {
			objectID = f.task.ID
		}

		owner, err := f.authorizer.Decide(ctx, kind, objectID, f.owner.ID)
		require.NoError(t, err)
		assert.Equal(t, Decision{Visible: true, Mutable: true}, owner)

		member, err := f.authorizer.Decide(ctx, kind, objectID, f.member.ID)
		require.NoError(t, err)
		assert.Equal(t, Decision{Visible: true, Mutable: true}, member)

		stranger, err := f.authorizer.Decide(ctx, kind, objectID, f.stranger.ID)
		require.NoError(t, err)
		assert.Equal(t, Decision{Visible: false, Mutable: false}, stranger)
	}
}

func TestDecideComment_ChainResolvesThroughTask(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	member, err := f.authorizer.Decide(ctx, KindComment, f.comment.ID, f.member.ID)
	require.NoError(t, err)
	assert.Equal(t, Decision{Visible: true, Mutable: true}, member)

	stranger, err := f.authorizer.Decide(ctx, KindComment, f.comment.ID, f.stranger.ID)
	require.NoError(t, err)
	assert.Equal(t, Decision{Visible: false, Mutable: false}, stranger)
}

func TestDecideComment_AuthorKeepsVisibilityAfterLeavingProject(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	// The member authored the comment, then their membership is removed.
	require.NoError(t, f.db.
		Where("project_id = ? AND user_id = ?", f.project.ID, f.member.ID).
		Delete(&models.ProjectMembership{}).Error)

	decision, err := f.authorizer.Decide(ctx, KindComment, f.comment.ID, f.member.ID)
	require.NoError(t, err)
	assert.True(t, decision.Visible)
	assert.False(t, decision.Mutable)
}

func TestDecideNotification_OwnRowsOnly(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	notification := models.Notification{UserID: f.member.ID, Message: "hello"}
	require.NoError(t, f.db.Create(&notification).Error)

	own, err := f.authorizer.Decide(ctx, KindNotification, notification.ID, f.member.ID)
	require.NoError(t, err)
	assert.Equal(t, Decision{Visible: true, Mutable: true}, own)

	other, err := f.authorizer.Decide(ctx, KindNotification, notification.ID, f.owner.ID)
	require.NoError(t, err)
	assert.Equal(t, Decision{Visible: false, Mutable: false}, other)
}

func TestDecide_MissingChainParent(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	_, err := f.authorizer.Decide(ctx, KindColumn, 9999, f.owner.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = f.authorizer.Decide(ctx, KindTask, 9999, f.owner.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = f.authorizer.Decide(ctx, KindComment, 9999, f.owner.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
