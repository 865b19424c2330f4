package crud

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"warbler/domain"
	"warbler/errs"
)

func TestCreateMessage(t *testing.T) {
	s := testServices(t)
	ctx := context.Background()
	ana := signupUser(t, s, "ana", "ana@x.com")

	message := &domain.Message{UserID: ana.ID, Text: "hello world"}
	require.NoError(t, s.Message.Create(ctx, message))

	assert.NotZero(t, message.ID)
	assert.False(t, message.Timestamp.IsZero(), "timestamp should be set at creation")

	found, err := s.Message.ByID(ctx, message.ID)
	require.NoError(t, err)
	assert.Equal(t, "hello world", found.Text)
	assert.Equal(t, ana.ID, found.UserID)
}

func TestCreateMessageLengthBoundary(t *testing.T) {
	s := testServices(t)
	ctx := context.Background()
	ana := signupUser(t, s, "ana", "ana@x.com")

	ok := &domain.Message{UserID: ana.ID, Text: strings.Repeat("x", 140)}
	require.NoError(t, s.Message.Create(ctx, ok))

	tooLong := &domain.Message{UserID: ana.ID, Text: strings.Repeat("x", 141)}
	err := s.Message.Create(ctx, tooLong)
	require.Error(t, err)
	assert.Equal(t, errs.EINVALID, errs.ErrorCode(err))
}

func TestCreateMessageCountsRunesNotBytes(t *testing.T) {
	s := testServices(t)
	ctx := context.Background()
	ana := signupUser(t, s, "ana", "ana@x.com")

	// 140 two-byte runes are 280 bytes but still a valid message.
	message := &domain.Message{UserID: ana.ID, Text: strings.Repeat("ä", 140)}
	require.NoError(t, s.Message.Create(ctx, message))
}

func TestCreateMessageValidation(t *testing.T) {
	s := testServices(t)
	ctx := context.Background()
	ana := signupUser(t, s, "ana", "ana@x.com")

	err := s.Message.Create(ctx, &domain.Message{UserID: ana.ID, Text: "   "})
	require.Error(t, err)
	assert.Equal(t, errs.EINVALID, errs.ErrorCode(err))

	err = s.Message.Create(ctx, &domain.Message{Text: "no owner"})
	require.Error(t, err)
	assert.Equal(t, errs.EINVALID, errs.ErrorCode(err))
}

func TestCreateMessageForMissingUser(t *testing.T) {
	s := testServices(t)
	ctx := context.Background()

	err := s.Message.Create(ctx, &domain.Message{UserID: 9999, Text: "ghost post"})
	require.Error(t, err)
	assert.Equal(t, errs.ENOTFOUND, errs.ErrorCode(err))
}

func TestMessagesByUserNewestFirst(t *testing.T) {
	s := testServices(t)
	ctx := context.Background()
	ana := signupUser(t, s, "ana", "ana@x.com")

	first := postMessage(t, s, ana, "first")
	second := postMessage(t, s, ana, "second")
	second.Timestamp = first.Timestamp.Add(time.Second)
	require.NoError(t, s.db.Save(second).Error)

	messages, err := s.Message.ByUserID(ctx, ana.ID)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, "second", messages[0].Text)
	assert.Equal(t, "first", messages[1].Text)
}

func TestDeleteMessageCascadesLikes(t *testing.T) {
	s := testServices(t)
	ctx := context.Background()
	ana := signupUser(t, s, "ana", "ana@x.com")
	bo := signupUser(t, s, "bo", "bo@x.com")

	message := postMessage(t, s, ana, "soon gone")
	require.NoError(t, s.Like.Create(ctx, &domain.Like{UserID: bo.ID, MessageID: message.ID}))

	require.NoError(t, s.Message.Delete(ctx, message))

	assert.EqualValues(t, 0, countRows(t, s, &domain.Like{}, "message_id = ?", message.ID))
	_, err := s.Message.ByID(ctx, message.ID)
	assert.Equal(t, errs.ENOTFOUND, errs.ErrorCode(err))

	// The liker still exists.
	_, err = s.User.ByID(ctx, bo.ID)
	require.NoError(t, err)
}
