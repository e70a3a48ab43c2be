package service

import (
	"context"
	"testing"

	"kanban/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetUser(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	user, err := env.users.GetUser(ctx, env.owner.ID)
	require.NoError(t, err)
	assert.Equal(t, "owner", user.Username)

	_, err = env.users.GetUser(ctx, 9999)
	assertAppErrorCode(t, err, models.CodeNotFound)
}

func TestListUsers_Pagination(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	users, err := env.users.ListUsers(ctx, 2, 0)
	require.NoError(t, err)
	assert.Len(t, users, 2)

	rest, err := env.users.ListUsers(ctx, 2, 2)
	require.NoError(t, err)
	assert.Len(t, rest, 1)
}

func TestDeleteAccount_CascadesOwnedBoards(t *testing.T) {
	env := setupEnv(t)
	env.board(t)
	ctx := context.Background()

	require.NoError(t, env.users.DeleteAccount(ctx, env.owner.ID))

	var count int64
	require.NoError(t, env.db.Model(&models.Project{}).Count(&count).Error)
	assert.Zero(t, count)

	err := env.users.DeleteAccount(ctx, env.owner.ID)
	assertAppErrorCode(t, err, models.CodeNotFound)
}
