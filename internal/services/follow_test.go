package services

import (
	"testing"

	"yatube/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (f *fixture) following(t *testing.T, viewer, author *models.User) bool {
	t.Helper()
	ok, err := f.svc.Follows.IsFollowing(f.ctx, viewer, author)
	require.NoError(t, err)
	return ok
}

func TestFollow_Idempotent(t *testing.T) {
	f := setup(t)
	author := f.user(t, "leo")
	reader := f.user(t, "anna")

	require.NoError(t, f.svc.Follows.Follow(f.ctx, reader, author))
	require.NoError(t, f.svc.Follows.Follow(f.ctx, reader, author))

	var count int64
	f.db.Model(&models.Follow{}).Count(&count)
	assert.EqualValues(t, 1, count)
	assert.True(t, f.following(t, reader, author))
	assert.False(t, f.following(t, author, reader))

	following, err := f.svc.Follows.FollowingCount(f.ctx, reader)
	require.NoError(t, err)
	assert.EqualValues(t, 1, following)

	// Only the first follow notifies.
	assert.EqualValues(t, 1, f.svc.Notifications.UnreadCount(f.ctx, author))
}

func TestFollow_SelfIsNoop(t *testing.T) {
	f := setup(t)
	user := f.user(t, "leo")

	require.NoError(t, f.svc.Follows.Follow(f.ctx, user, user))

	var count int64
	f.db.Model(&models.Follow{}).Count(&count)
	assert.EqualValues(t, 0, count)
	assert.False(t, f.following(t, user, user))
}

func TestFollow_Unfollow(t *testing.T) {
	f := setup(t)
	author := f.user(t, "leo")
	reader := f.user(t, "anna")

	require.NoError(t, f.svc.Follows.Follow(f.ctx, reader, author))
	require.NoError(t, f.svc.Follows.Unfollow(f.ctx, reader, author))
	assert.False(t, f.following(t, reader, author))

	// Removing a missing edge is fine.
	require.NoError(t, f.svc.Follows.Unfollow(f.ctx, reader, author))
	followers, err := f.svc.Follows.FollowerCount(f.ctx, author)
	require.NoError(t, err)
	assert.EqualValues(t, 0, followers)
	assert.False(t, f.following(t, nil, author))
}
