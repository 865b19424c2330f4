package crud

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"warbler/domain"
	"warbler/errs"
)

func TestSignupThenAuthenticate(t *testing.T) {
	s := testServices(t)
	ctx := context.Background()

	user := &domain.User{
		Username: "ana",
		Email:    "Ana@X.com ",
		Password: "hunter2hunter2",
	}
	require.NoError(t, s.User.Signup(ctx, user))

	assert.NotZero(t, user.ID)
	assert.Equal(t, "ana@x.com", user.Email, "email should be normalized")
	assert.Equal(t, domain.DefaultImageURL, user.ImageURL)
	assert.Equal(t, domain.DefaultHeaderImageURL, user.HeaderImageURL)
	assert.Empty(t, user.Password, "plaintext must be cleared after hashing")
	assert.NotEmpty(t, user.PasswordHash)
	assert.NotEqual(t, "hunter2hunter2", user.PasswordHash)

	found, err := s.User.Authenticate(ctx, "ana", "hunter2hunter2")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)
	assert.Equal(t, "ana", found.Username)
	assert.Equal(t, "ana@x.com", found.Email)
}

func TestSignupHashesDifferEveryTime(t *testing.T) {
	s := testServices(t)
	ctx := context.Background()

	a := &domain.User{Username: "a", Email: "a@x.com", Password: "same password"}
	b := &domain.User{Username: "b", Email: "b@x.com", Password: "same password"}
	require.NoError(t, s.User.Signup(ctx, a))
	require.NoError(t, s.User.Signup(ctx, b))

	// bcrypt salts each digest, so identical passwords never share a hash.
	assert.NotEqual(t, a.PasswordHash, b.PasswordHash)
}

func TestAuthenticateFailuresAreIndistinguishable(t *testing.T) {
	s := testServices(t)
	ctx := context.Background()
	signupUser(t, s, "ana", "ana@x.com")

	_, wrongPassword := s.User.Authenticate(ctx, "ana", "not it")
	_, unknownUser := s.User.Authenticate(ctx, "nobody", "correct horse")

	require.Error(t, wrongPassword)
	require.Error(t, unknownUser)
	assert.Equal(t, errs.EUNAUTHORIZED, errs.ErrorCode(wrongPassword))
	assert.Equal(t, errs.EUNAUTHORIZED, errs.ErrorCode(unknownUser))
	assert.Equal(t, errs.ErrorMessage(wrongPassword), errs.ErrorMessage(unknownUser))
}

func TestSignupDuplicateUsernameConflicts(t *testing.T) {
	s := testServices(t)
	ctx := context.Background()
	signupUser(t, s, "ana", "ana@x.com")

	dup := &domain.User{Username: "ana", Email: "other@x.com", Password: "correct horse"}
	err := s.User.Signup(ctx, dup)
	require.Error(t, err)
	assert.Equal(t, errs.ECONFLICT, errs.ErrorCode(err))
}

func TestSignupDuplicateEmailConflicts(t *testing.T) {
	s := testServices(t)
	ctx := context.Background()
	signupUser(t, s, "ana", "ana@x.com")

	dup := &domain.User{Username: "other", Email: "ana@x.com", Password: "correct horse"}
	err := s.User.Signup(ctx, dup)
	require.Error(t, err)
	assert.Equal(t, errs.ECONFLICT, errs.ErrorCode(err))
}

func TestSignupValidation(t *testing.T) {
	s := testServices(t)
	ctx := context.Background()

	tests := []struct {
		name string
		user domain.User
	}{
		{"missing username", domain.User{Email: "a@x.com", Password: "correct horse"}},
		{"missing email", domain.User{Username: "a", Password: "correct horse"}},
		{"malformed email", domain.User{Username: "a", Email: "not-an-email", Password: "correct horse"}},
		{"missing password", domain.User{Username: "a", Email: "a@x.com"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user := tt.user
			err := s.User.Signup(ctx, &user)
			require.Error(t, err)
			assert.Equal(t, errs.EINVALID, errs.ErrorCode(err))
		})
	}
}

func TestUsernameAndEmailTaken(t *testing.T) {
	s := testServices(t)
	ctx := context.Background()
	signupUser(t, s, "ana", "ana@x.com")

	taken, err := s.User.UsernameTaken(ctx, "ana")
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = s.User.UsernameTaken(ctx, "bo")
	require.NoError(t, err)
	assert.False(t, taken)

	taken, err = s.User.EmailTaken(ctx, "ana@x.com")
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = s.User.EmailTaken(ctx, "bo@x.com")
	require.NoError(t, err)
	assert.False(t, taken)
}

func TestDeleteUserCascades(t *testing.T) {
	s := testServices(t)
	ctx := context.Background()

	ana := signupUser(t, s, "ana", "ana@x.com")
	bo := signupUser(t, s, "bo", "bo@x.com")

	message := postMessage(t, s, ana, "hello world")
	require.NoError(t, s.Follow.Create(ctx, &domain.Follow{FollowedUserID: ana.ID, FollowerUserID: bo.ID}))
	require.NoError(t, s.Follow.Create(ctx, &domain.Follow{FollowedUserID: bo.ID, FollowerUserID: ana.ID}))
	require.NoError(t, s.Like.Create(ctx, &domain.Like{UserID: bo.ID, MessageID: message.ID}))
	require.NoError(t, s.Like.Create(ctx, &domain.Like{UserID: ana.ID, MessageID: message.ID}))

	require.NoError(t, s.User.Delete(ctx, ana.ID))

	// Ana's messages, both directions of her follows, and every like touching
	// her or her messages are gone in the same statement.
	assert.EqualValues(t, 0, countRows(t, s, &domain.Message{}, ""))
	assert.EqualValues(t, 0, countRows(t, s, &domain.Follow{}, ""))
	assert.EqualValues(t, 0, countRows(t, s, &domain.Like{}, ""))

	// Bo is untouched.
	_, err := s.User.ByID(ctx, bo.ID)
	require.NoError(t, err)

	_, err = s.User.ByID(ctx, ana.ID)
	assert.Equal(t, errs.ENOTFOUND, errs.ErrorCode(err))
}

func TestDeleteFollowerCascadesEdgeOnly(t *testing.T) {
	s := testServices(t)
	ctx := context.Background()

	ana := signupUser(t, s, "ana", "ana@x.com")
	bo := signupUser(t, s, "bo", "bo@x.com")
	require.NoError(t, s.Follow.Create(ctx, &domain.Follow{FollowedUserID: ana.ID, FollowerUserID: bo.ID}))

	// Deleting the follower removes the edge but not the followed user.
	require.NoError(t, s.User.Delete(ctx, bo.ID))
	assert.EqualValues(t, 0, countRows(t, s, &domain.Follow{}, ""))
	_, err := s.User.ByID(ctx, ana.ID)
	require.NoError(t, err)
}

func TestUpdateUserProfileFields(t *testing.T) {
	s := testServices(t)
	ctx := context.Background()

	ana := signupUser(t, s, "ana", "ana@x.com")
	ana.Bio = "warbling about warblers"
	ana.Location = "the canopy"
	require.NoError(t, s.User.Update(ctx, ana))

	found, err := s.User.ByUsername(ctx, "ana")
	require.NoError(t, err)
	assert.Equal(t, "warbling about warblers", found.Bio)
	assert.Equal(t, "the canopy", found.Location)
	assert.NotEmpty(t, found.PasswordHash, "update without a new password keeps the hash")
}
