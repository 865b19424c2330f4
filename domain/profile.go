package domain

import "context"

// ProfileMessage is a message decorated with the viewing user's like status.
type ProfileMessage struct {
	Message
	Liked bool `json:"liked"`
}

// Profile is the read model for a user's profile page: the user, their
// messages, their follow counts, and whether the viewing user follows them.
type Profile struct {
	User           User             `json:"user"`
	Messages       []ProfileMessage `json:"messages"`
	FollowerCount  int              `json:"follower_count"`
	FollowingCount int              `json:"following_count"`
	ViewerFollows  bool             `json:"viewer_follows"`
}

// ProfileService composes the store read operations into view models.
// It holds no state of its own.
type ProfileService interface {
	// Profile assembles the profile of the named user as seen by the viewer.
	// A viewerID of 0 means an anonymous viewer: no like flags, no follow flag.
	Profile(ctx context.Context, username string, viewerID int) (*Profile, error)
}
