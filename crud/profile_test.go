package crud

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"warbler/domain"
	"warbler/errs"
)

// TestProfileScenario walks the full story: ana signs up and warbles, bo
// signs up, follows ana and likes her message, then views her profile.
func TestProfileScenario(t *testing.T) {
	s := testServices(t)
	ctx := context.Background()

	ana := signupUser(t, s, "ana", "ana@x.com")
	message := postMessage(t, s, ana, "hello world")
	bo := signupUser(t, s, "bo", "bo@x.com")

	require.NoError(t, s.Follow.Create(ctx, &domain.Follow{FollowedUserID: ana.ID, FollowerUserID: bo.ID}))
	require.NoError(t, s.Like.Create(ctx, &domain.Like{UserID: bo.ID, MessageID: message.ID}))

	followers, err := s.Follow.Followers(ctx, ana.ID)
	require.NoError(t, err)
	require.Len(t, followers, 1)
	assert.Equal(t, bo.ID, followers[0].ID)

	likedMessages, err := s.Like.LikedMessages(ctx, bo.ID)
	require.NoError(t, err)
	require.Len(t, likedMessages, 1)
	assert.Equal(t, message.ID, likedMessages[0].ID)

	followedBy, err := s.Follow.IsFollowedBy(ctx, ana.ID, bo.ID)
	require.NoError(t, err)
	assert.True(t, followedBy)

	profile, err := s.Profile.Profile(ctx, "ana", bo.ID)
	require.NoError(t, err)
	assert.Equal(t, ana.ID, profile.User.ID)
	assert.Equal(t, 1, profile.FollowerCount)
	assert.Equal(t, 0, profile.FollowingCount)
	assert.True(t, profile.ViewerFollows)
	require.Len(t, profile.Messages, 1)
	assert.Equal(t, "hello world", profile.Messages[0].Text)
	assert.True(t, profile.Messages[0].Liked)
}

func TestProfileAnonymousViewer(t *testing.T) {
	s := testServices(t)
	ctx := context.Background()

	ana := signupUser(t, s, "ana", "ana@x.com")
	message := postMessage(t, s, ana, "hello world")
	bo := signupUser(t, s, "bo", "bo@x.com")
	require.NoError(t, s.Like.Create(ctx, &domain.Like{UserID: bo.ID, MessageID: message.ID}))

	profile, err := s.Profile.Profile(ctx, "ana", 0)
	require.NoError(t, err)
	assert.False(t, profile.ViewerFollows)
	require.Len(t, profile.Messages, 1)
	assert.False(t, profile.Messages[0].Liked, "anonymous viewers have no like state")
}

func TestProfileOwnView(t *testing.T) {
	s := testServices(t)
	ctx := context.Background()

	ana := signupUser(t, s, "ana", "ana@x.com")
	postMessage(t, s, ana, "hello world")

	profile, err := s.Profile.Profile(ctx, "ana", ana.ID)
	require.NoError(t, err)
	assert.False(t, profile.ViewerFollows, "a user never follows themselves")
}

func TestProfileUnknownUser(t *testing.T) {
	s := testServices(t)

	_, err := s.Profile.Profile(context.Background(), "nobody", 0)
	require.Error(t, err)
	assert.Equal(t, errs.ENOTFOUND, errs.ErrorCode(err))
}
