package service

import (
	"context"
	"strings"
	"testing"

	"kanban/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateComment_ForcesAuthor(t *testing.T) {
	env := setupEnv(t)
	_, _, task := env.board(t)
	ctx := context.Background()

	comment, err := env.comments.CreateComment(ctx, CreateCommentInput{
		UserID: env.member.ID,
		TaskID: task.ID,
		Text:   "Looks good",
	})
	require.NoError(t, err)
	assert.Equal(t, env.member.ID, comment.AuthorID)
	assert.True(t, comment.IsActive)
}

func TestCreateComment_Validation(t *testing.T) {
	env := setupEnv(t)
	_, _, task := env.board(t)
	ctx := context.Background()

	_, err := env.comments.CreateComment(ctx, CreateCommentInput{
		UserID: env.member.ID,
		TaskID: task.ID,
	})
	assertAppErrorCode(t, err, models.CodeValidation)

	_, err = env.comments.CreateComment(ctx, CreateCommentInput{
		UserID: env.member.ID,
		TaskID: task.ID,
		Text:   strings.Repeat("x", maxCommentLen+1),
	})
	assertAppErrorCode(t, err, models.CodeValidation)
}

func TestCreateComment_StrangerSeesNotFound(t *testing.T) {
	env := setupEnv(t)
	_, _, task := env.board(t)
	ctx := context.Background()

	_, err := env.comments.CreateComment(ctx, CreateCommentInput{
		UserID: env.stranger.ID,
		TaskID: task.ID,
		Text:   "hi",
	})
	assertAppErrorCode(t, err, models.CodeNotFound)
}

func TestCreateComment_NotifiesWatchersExceptCommenter(t *testing.T) {
	env := setupEnv(t)
	_, _, task := env.board(t)
	ctx := context.Background()

	// Task created by owner, assigned to member; the member comments.
	task.AssignedID = &env.member.ID
	require.NoError(t, env.db.Save(task).Error)

	_, err := env.comments.CreateComment(ctx, CreateCommentInput{
		UserID: env.member.ID,
		TaskID: task.ID,
		Text:   "On it",
	})
	require.NoError(t, err)

	var notifications []models.Notification
	require.NoError(t, env.db.Find(&notifications).Error)
	require.Len(t, notifications, 1)
	assert.Equal(t, env.owner.ID, notifications[0].UserID)
	assert.Contains(t, notifications[0].Message, task.Title)
}

func TestCreateComment_CreatorCommentingNotifiesAssigneeOnly(t *testing.T) {
	env := setupEnv(t)
	_, _, task := env.board(t)
	ctx := context.Background()

	task.AssignedID = &env.member.ID
	require.NoError(t, env.db.Save(task).Error)

	_, err := env.comments.CreateComment(ctx, CreateCommentInput{
		UserID: env.owner.ID,
		TaskID: task.ID,
		Text:   "Any update?",
	})
	require.NoError(t, err)

	var notifications []models.Notification
	require.NoError(t, env.db.Find(&notifications).Error)
	require.Len(t, notifications, 1)
	assert.Equal(t, env.member.ID, notifications[0].UserID)
}

func TestUpdateComment_AuthorAfterLeavingProject(t *testing.T) {
	env := setupEnv(t)
	project, _, task := env.board(t)
	ctx := context.Background()

	comment, err := env.comments.CreateComment(ctx, CreateCommentInput{
		UserID: env.member.ID,
		TaskID: task.ID,
		Text:   "Mine",
	})
	require.NoError(t, err)

	require.NoError(t, env.projects.RemoveMember(ctx, MemberInput{
		UserID:    env.owner.ID,
		ProjectID: project.ID,
		MemberID:  env.member.ID,
	}))

	// The author still sees their comment but can no longer edit it.
	got, err := env.comments.GetComment(ctx, GetCommentInput{
		UserID:    env.member.ID,
		CommentID: comment.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, comment.ID, got.ID)

	text := "Edited"
	_, err = env.comments.UpdateComment(ctx, UpdateCommentInput{
		UserID:    env.member.ID,
		CommentID: comment.ID,
		Text:      &text,
	})
	assertAppErrorCode(t, err, models.CodeForbidden)
}

func TestListComments_OldestFirst(t *testing.T) {
	env := setupEnv(t)
	_, _, task := env.board(t)
	ctx := context.Background()

	for _, text := range []string{"first", "second", "third"} {
		_, err := env.comments.CreateComment(ctx, CreateCommentInput{
			UserID: env.owner.ID,
			TaskID: task.ID,
			Text:   text,
		})
		require.NoError(t, err)
	}

	comments, err := env.comments.ListComments(ctx, ListCommentsInput{
		UserID: env.member.ID,
		TaskID: task.ID,
	})
	require.NoError(t, err)
	require.Len(t, comments, 3)
	assert.Equal(t, "first", comments[0].Text)
	assert.Equal(t, "third", comments[2].Text)
}

func TestDeleteComment_MemberMayDelete(t *testing.T) {
	env := setupEnv(t)
	_, _, task := env.board(t)
	ctx := context.Background()

	comment, err := env.comments.CreateComment(ctx, CreateCommentInput{
		UserID: env.owner.ID,
		TaskID: task.ID,
		Text:   "To remove",
	})
	require.NoError(t, err)

	require.NoError(t, env.comments.DeleteComment(ctx, DeleteCommentInput{
		UserID:    env.member.ID,
		CommentID: comment.ID,
	}))

	var count int64
	require.NoError(t, env.db.Model(&models.Comment{}).Count(&count).Error)
	assert.Zero(t, count)
}
