package service

import (
	"context"
	"testing"

	"anoa.com/placementportal/internal/entity"
	notifRepo "anoa.com/placementportal/internal/modules/notification/repository"
	"anoa.com/placementportal/internal/testutil"
	"anoa.com/placementportal/pkg/apperror"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePage(t *testing.T) {
	tests := []struct {
		limit, offset         int
		wantLimit, wantOffset int
	}{
		{0, 0, DefaultPageSize, 0},
		{-5, -1, DefaultPageSize, 0},
		{10, 30, 10, 30},
		{MaxPageSize + 1, 0, MaxPageSize, 0},
	}
	for _, tt := range tests {
		limit, offset := NormalizePage(tt.limit, tt.offset)
		assert.Equal(t, tt.wantLimit, limit)
		assert.Equal(t, tt.wantOffset, offset)
	}
}

func TestChannel(t *testing.T) {
	assert.Equal(t, "user_notifications:abc", Channel("abc"))
}

func TestNotificationsAreScopedToRecipient(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewNotificationService(notifRepo.NewNotificationRepository(db), nil)
	ctx := context.Background()

	alice, bob := uuid.New(), uuid.New()
	for i := 0; i < 3; i++ {
		require.NoError(t, svc.CreateNotification(ctx, &entity.Notification{
			UserID:  alice,
			ActorID: bob,
			Type:    entity.NotificationApplicationReceived,
			Message: "new application",
		}))
	}
	bobs := &entity.Notification{UserID: bob, ActorID: alice, Type: entity.NotificationApplicationStatus, Message: "shortlisted"}
	require.NoError(t, svc.CreateNotification(ctx, bobs))

	list, err := svc.GetNotifications(ctx, alice, 2, 0)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	list, err = svc.GetNotifications(ctx, alice, 0, 0)
	require.NoError(t, err)
	require.Len(t, list, 3)

	unread, err := svc.UnreadCount(ctx, alice)
	require.NoError(t, err)
	assert.EqualValues(t, 3, unread)

	// another user's notification cannot be touched
	err = svc.MarkAsRead(ctx, alice, bobs.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	require.NoError(t, svc.MarkAsRead(ctx, alice, list[0].ID))
	unread, err = svc.UnreadCount(ctx, alice)
	require.NoError(t, err)
	assert.EqualValues(t, 2, unread)

	require.NoError(t, svc.MarkAllAsRead(ctx, alice))
	unread, err = svc.UnreadCount(ctx, alice)
	require.NoError(t, err)
	assert.Zero(t, unread)

	unread, err = svc.UnreadCount(ctx, bob)
	require.NoError(t, err)
	assert.EqualValues(t, 1, unread)
}
