package service

import (
	"context"
	"testing"

	"kanban/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateProject_ForcesOwner(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	project, err := env.projects.CreateProject(ctx, CreateProjectInput{
		OwnerID: env.owner.ID,
		Name:    "My Board",
	})
	require.NoError(t, err)
	assert.Equal(t, env.owner.ID, project.OwnerID)
	assert.True(t, project.IsActive)
}

func TestCreateProject_Validation(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	_, err := env.projects.CreateProject(ctx, CreateProjectInput{OwnerID: env.owner.ID})
	assertAppErrorCode(t, err, models.CodeValidation)
}

func TestGetProject_StrangerSeesNotFound(t *testing.T) {
	env := setupEnv(t)
	project, _, _ := env.board(t)
	ctx := context.Background()

	_, err := env.projects.GetProject(ctx, GetProjectInput{
		UserID:    env.stranger.ID,
		ProjectID: project.ID,
	})
	assertAppErrorCode(t, err, models.CodeNotFound)
}

func TestUpdateProject_MemberForbidden(t *testing.T) {
	env := setupEnv(t)
	project, _, _ := env.board(t)
	ctx := context.Background()

	name := "Renamed"
	_, err := env.projects.UpdateProject(ctx, UpdateProjectInput{
		UserID:    env.member.ID,
		ProjectID: project.ID,
		Name:      &name,
	})
	assertAppErrorCode(t, err, models.CodeForbidden)
}

func TestUpdateProject_SoftDeleteAndRestore(t *testing.T) {
	env := setupEnv(t)
	project, _, _ := env.board(t)
	ctx := context.Background()

	inactive := false
	_, err := env.projects.UpdateProject(ctx, UpdateProjectInput{
		UserID:    env.owner.ID,
		ProjectID: project.ID,
		IsActive:  &inactive,
	})
	require.NoError(t, err)

	// Default read policy no longer sees it.
	_, err = env.projects.GetProject(ctx, GetProjectInput{
		UserID:    env.owner.ID,
		ProjectID: project.ID,
	})
	assertAppErrorCode(t, err, models.CodeNotFound)

	// The audit view still does, and the owner can restore from it.
	got, err := env.projects.GetProject(ctx, GetProjectInput{
		UserID:          env.owner.ID,
		ProjectID:       project.ID,
		IncludeInactive: true,
	})
	require.NoError(t, err)
	assert.False(t, got.IsActive)

	active := true
	restored, err := env.projects.UpdateProject(ctx, UpdateProjectInput{
		UserID:    env.owner.ID,
		ProjectID: project.ID,
		IsActive:  &active,
	})
	require.NoError(t, err)
	assert.True(t, restored.IsActive)
}

func TestDeleteProject_OnlyOwner(t *testing.T) {
	env := setupEnv(t)
	project, _, _ := env.board(t)
	ctx := context.Background()

	err := env.projects.DeleteProject(ctx, DeleteProjectInput{
		UserID:    env.member.ID,
		ProjectID: project.ID,
	})
	assertAppErrorCode(t, err, models.CodeForbidden)

	require.NoError(t, env.projects.DeleteProject(ctx, DeleteProjectInput{
		UserID:    env.owner.ID,
		ProjectID: project.ID,
	}))

	var count int64
	require.NoError(t, env.db.Model(&models.Project{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestAddMember(t *testing.T) {
	env := setupEnv(t)
	project, _, _ := env.board(t)
	ctx := context.Background()

	// Owner cannot be added as a member.
	err := env.projects.AddMember(ctx, MemberInput{
		UserID:    env.owner.ID,
		ProjectID: project.ID,
		MemberID:  env.owner.ID,
	})
	assertAppErrorCode(t, err, models.CodeValidation)

	// Adding an existing member reports a validation error, not a crash.
	err = env.projects.AddMember(ctx, MemberInput{
		UserID:    env.owner.ID,
		ProjectID: project.ID,
		MemberID:  env.member.ID,
	})
	assertAppErrorCode(t, err, models.CodeValidation)

	// A member cannot manage membership.
	err = env.projects.AddMember(ctx, MemberInput{
		UserID:    env.member.ID,
		ProjectID: project.ID,
		MemberID:  env.stranger.ID,
	})
	assertAppErrorCode(t, err, models.CodeForbidden)

	// The owner can.
	require.NoError(t, env.projects.AddMember(ctx, MemberInput{
		UserID:    env.owner.ID,
		ProjectID: project.ID,
		MemberID:  env.stranger.ID,
	}))

	// Unknown user.
	err = env.projects.AddMember(ctx, MemberInput{
		UserID:    env.owner.ID,
		ProjectID: project.ID,
		MemberID:  9999,
	})
	assertAppErrorCode(t, err, models.CodeNotFound)
}

func TestRemoveMember_RevokesAccess(t *testing.T) {
	env := setupEnv(t)
	project, _, _ := env.board(t)
	ctx := context.Background()

	require.NoError(t, env.projects.RemoveMember(ctx, MemberInput{
		UserID:    env.owner.ID,
		ProjectID: project.ID,
		MemberID:  env.member.ID,
	}))

	_, err := env.projects.GetProject(ctx, GetProjectInput{
		UserID:    env.member.ID,
		ProjectID: project.ID,
	})
	assertAppErrorCode(t, err, models.CodeNotFound)
}

func TestListProjects_ScopedToCaller(t *testing.T) {
	env := setupEnv(t)
	env.board(t)
	ctx := context.Background()

	owned, err := env.projects.ListProjects(ctx, ListProjectsInput{UserID: env.owner.ID})
	require.NoError(t, err)
	assert.Len(t, owned, 1)

	joined, err := env.projects.ListProjects(ctx, ListProjectsInput{UserID: env.member.ID})
	require.NoError(t, err)
	assert.Len(t, joined, 1)

	none, err := env.projects.ListProjects(ctx, ListProjectsInput{UserID: env.stranger.ID})
	require.NoError(t, err)
	assert.Empty(t, none)
}
