package service

import (
	"context"
	"testing"

	"kanban/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (env *testEnv) notify(t *testing.T, userID uint, message string) *models.Notification {
	t.Helper()
	notification := &models.Notification{UserID: userID, Message: message}
	require.NoError(t, env.db.Create(notification).Error)
	return notification
}

func TestListNotifications_OwnRowsNewestFirst(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	env.notify(t, env.member.ID, "older")
	env.notify(t, env.member.ID, "newer")
	env.notify(t, env.owner.ID, "not yours")

	notifications, err := env.notifications.ListNotifications(ctx, ListNotificationsInput{
		UserID: env.member.ID,
		Limit:  50,
	})
	require.NoError(t, err)
	require.Len(t, notifications, 2)
	for _, n := range notifications {
		assert.Equal(t, env.member.ID, n.UserID)
	}
}

func TestSetNotificationRead_Toggle(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	row := env.notify(t, env.member.ID, "ping")

	updated, err := env.notifications.SetRead(ctx, SetNotificationReadInput{
		UserID:         env.member.ID,
		NotificationID: row.ID,
		Read:           true,
	})
	require.NoError(t, err)
	assert.True(t, updated.Read)

	updated, err = env.notifications.SetRead(ctx, SetNotificationReadInput{
		UserID:         env.member.ID,
		NotificationID: row.ID,
		Read:           false,
	})
	require.NoError(t, err)
	assert.False(t, updated.Read)
}

func TestSetNotificationRead_OtherUsersRow(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	row := env.notify(t, env.owner.ID, "private")

	_, err := env.notifications.SetRead(ctx, SetNotificationReadInput{
		UserID:         env.member.ID,
		NotificationID: row.ID,
		Read:           true,
	})
	assertAppErrorCode(t, err, models.CodeNotFound)
}

func TestDeleteNotification(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	row := env.notify(t, env.member.ID, "done with this")

	err := env.notifications.DeleteNotification(ctx, DeleteNotificationInput{
		UserID:         env.owner.ID,
		NotificationID: row.ID,
	})
	assertAppErrorCode(t, err, models.CodeNotFound)

	require.NoError(t, env.notifications.DeleteNotification(ctx, DeleteNotificationInput{
		UserID:         env.member.ID,
		NotificationID: row.ID,
	}))

	var count int64
	require.NoError(t, env.db.Model(&models.Notification{}).Count(&count).Error)
	assert.Zero(t, count)
}
