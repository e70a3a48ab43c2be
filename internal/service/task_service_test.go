package service

import (
	"context"
	"testing"
	"time"

	"kanban/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTask_ForcesCreator(t *testing.T) {
	env := setupEnv(t)
	_, column, _ := env.board(t)
	ctx := context.Background()

	task, err := env.tasks.CreateTask(ctx, CreateTaskInput{
		UserID:   env.member.ID,
		ColumnID: column.ID,
		Title:    "New task",
		Position: 1,
	})
	require.NoError(t, err)
	require.NotNil(t, task.CreatedByID)
	assert.Equal(t, env.member.ID, *task.CreatedByID)
}

func TestCreateTask_AssignmentNotifies(t *testing.T) {
	env := setupEnv(t)
	_, column, _ := env.board(t)
	ctx := context.Background()

	_, err := env.tasks.CreateTask(ctx, CreateTaskInput{
		UserID:     env.owner.ID,
		ColumnID:   column.ID,
		Title:      "Assigned task",
		Position:   1,
		AssignedID: &env.member.ID,
	})
	require.NoError(t, err)

	var notifications []models.Notification
	require.NoError(t, env.db.Where("user_id = ?", env.member.ID).Find(&notifications).Error)
	require.Len(t, notifications, 1)
	assert.Contains(t, notifications[0].Message, "Assigned task")
	assert.False(t, notifications[0].Read)
}

func TestCreateTask_SelfAssignmentDoesNotNotify(t *testing.T) {
	env := setupEnv(t)
	_, column, _ := env.board(t)
	ctx := context.Background()

	_, err := env.tasks.CreateTask(ctx, CreateTaskInput{
		UserID:     env.owner.ID,
		ColumnID:   column.ID,
		Title:      "Own task",
		Position:   1,
		AssignedID: &env.owner.ID,
	})
	require.NoError(t, err)

	var count int64
	require.NoError(t, env.db.Model(&models.Notification{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreateTask_UnknownAssignee(t *testing.T) {
	env := setupEnv(t)
	_, column, _ := env.board(t)
	ctx := context.Background()

	missing := uint(9999)
	_, err := env.tasks.CreateTask(ctx, CreateTaskInput{
		UserID:     env.owner.ID,
		ColumnID:   column.ID,
		Title:      "Bad assignee",
		Position:   1,
		AssignedID: &missing,
	})
	assertAppErrorCode(t, err, models.CodeValidation)
}

func TestCreateTask_DuplicatePosition(t *testing.T) {
	env := setupEnv(t)
	_, column, _ := env.board(t)
	ctx := context.Background()

	_, err := env.tasks.CreateTask(ctx, CreateTaskInput{
		UserID:   env.owner.ID,
		ColumnID: column.ID,
		Title:    "Clash",
		Position: 0, // fixture task occupies 0
	})
	assertAppErrorCode(t, err, models.CodeValidation)
}

func TestUpdateTask_ReassignmentNotifiesNewAssigneeOnly(t *testing.T) {
	env := setupEnv(t)
	_, _, task := env.board(t)
	ctx := context.Background()

	_, err := env.tasks.UpdateTask(ctx, UpdateTaskInput{
		UserID:     env.owner.ID,
		TaskID:     task.ID,
		AssignedID: &env.member.ID,
	})
	require.NoError(t, err)

	// Saving again with the same assignee must not notify twice.
	_, err = env.tasks.UpdateTask(ctx, UpdateTaskInput{
		UserID:     env.owner.ID,
		TaskID:     task.ID,
		AssignedID: &env.member.ID,
	})
	require.NoError(t, err)

	var count int64
	require.NoError(t, env.db.Model(&models.Notification{}).
		Where("user_id = ?", env.member.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestUpdateTask_ClearDueAndUnassign(t *testing.T) {
	env := setupEnv(t)
	_, _, task := env.board(t)
	ctx := context.Background()

	due := time.Now().Add(24 * time.Hour)
	updated, err := env.tasks.UpdateTask(ctx, UpdateTaskInput{
		UserID:     env.owner.ID,
		TaskID:     task.ID,
		Due:        &due,
		AssignedID: &env.member.ID,
	})
	require.NoError(t, err)
	require.NotNil(t, updated.Due)
	require.NotNil(t, updated.AssignedID)

	cleared, err := env.tasks.UpdateTask(ctx, UpdateTaskInput{
		UserID:   env.owner.ID,
		TaskID:   task.ID,
		ClearDue: true,
		Unassign: true,
	})
	require.NoError(t, err)
	assert.Nil(t, cleared.Due)
	assert.Nil(t, cleared.AssignedID)
}

func TestUpdateTask_MoveAcrossColumns(t *testing.T) {
	env := setupEnv(t)
	project, _, task := env.board(t)
	ctx := context.Background()

	target := &models.Column{ProjectID: project.ID, Name: "Done", Position: 1, IsActive: true}
	require.NoError(t, env.db.Create(target).Error)

	moved, err := env.tasks.UpdateTask(ctx, UpdateTaskInput{
		UserID:   env.member.ID,
		TaskID:   task.ID,
		ColumnID: &target.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, target.ID, moved.ColumnID)
}

func TestUpdateTask_MoveToInvisibleColumn(t *testing.T) {
	env := setupEnv(t)
	_, _, task := env.board(t)
	ctx := context.Background()

	// A column in a project the caller cannot see.
	foreign := &models.Project{Name: "Foreign", OwnerID: env.stranger.ID, IsActive: true}
	require.NoError(t, env.db.Create(foreign).Error)
	foreignColumn := &models.Column{ProjectID: foreign.ID, Name: "X", Position: 0, IsActive: true}
	require.NoError(t, env.db.Create(foreignColumn).Error)

	_, err := env.tasks.UpdateTask(ctx, UpdateTaskInput{
		UserID:   env.owner.ID,
		TaskID:   task.ID,
		ColumnID: &foreignColumn.ID,
	})
	assertAppErrorCode(t, err, models.CodeNotFound)
}

func TestTaskVisibility(t *testing.T) {
	env := setupEnv(t)
	_, _, task := env.board(t)
	ctx := context.Background()

	_, err := env.tasks.GetTask(ctx, GetTaskInput{UserID: env.stranger.ID, TaskID: task.ID})
	assertAppErrorCode(t, err, models.CodeNotFound)

	got, err := env.tasks.GetTask(ctx, GetTaskInput{UserID: env.member.ID, TaskID: task.ID})
	require.NoError(t, err)
	assert.Equal(t, task.ID, got.ID)
}
