package domain

import "context"

// Follow is a directed edge between two users: the follower follows the
// followed. The ordered pair is the primary key, so at most one edge can
// exist per pair. Deleting either user deletes the edge.
//
// The edge is a plain two-column table. Users carry no follower/following
// slices; the list reads below join through this table instead.
type Follow struct {
	FollowedUserID int `json:"followed_user_id" gorm:"primaryKey;autoIncrement:false"`
	FollowerUserID int `json:"follower_user_id" gorm:"primaryKey;autoIncrement:false"`

	FollowedUser User `json:"-" gorm:"foreignKey:FollowedUserID;constraint:OnDelete:CASCADE"`
	FollowerUser User `json:"-" gorm:"foreignKey:FollowerUserID;constraint:OnDelete:CASCADE"`
}

// FollowService is a set of methods to manipulate and work with the Follow model.
type FollowService interface {
	// Create inserts the edge. Following yourself is rejected, inserting an
	// edge that already exists fails with ECONFLICT, and referencing a user
	// that doesn't exist fails with ENOTFOUND.
	Create(ctx context.Context, follow *Follow) error

	// Delete removes the edge if it exists. Deleting an absent edge is a no-op.
	Delete(ctx context.Context, follow *Follow) error

	// IsFollowing reports whether follower follows followed.
	IsFollowing(ctx context.Context, followerID, followedID int) (bool, error)

	// IsFollowedBy reports whether other follows user. It is the mirror of
	// IsFollowing.
	IsFollowedBy(ctx context.Context, userID, otherID int) (bool, error)

	// Following returns all users that the given user follows.
	Following(ctx context.Context, userID int) ([]User, error)

	// Followers returns all users that follow the given user.
	Followers(ctx context.Context, userID int) ([]User, error)

	CountFollowing(ctx context.Context, userID int) (int, error)
	CountFollowers(ctx context.Context, userID int) (int, error)
}
