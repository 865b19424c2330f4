package crud

import (
	"context"

	"warbler/domain"
)

// ProfileService composes the read operations of the other stores into the
// view models the web layer renders. It holds no state beyond the stores.
// It implements the domain.ProfileService interface.
type ProfileService struct {
	users    *UserService
	messages *MessageService
	follows  *FollowService
	likes    *LikeService
}

// NewProfileService returns an instance of ProfileService composing the given stores.
func NewProfileService(us *UserService, ms *MessageService, fs *FollowService, ls *LikeService) *ProfileService {
	return &ProfileService{
		users:    us,
		messages: ms,
		follows:  fs,
		likes:    ls,
	}
}

// Ensure the ProfileService struct properly implements the domain.ProfileService interface.
// If it does not, then this expression becomes invalid and won't compile.
var _ domain.ProfileService = &ProfileService{}

// Profile assembles the profile page data of the named user: the user record,
// their messages, their follower and following counts, and, when viewerID is
// not 0, whether the viewer follows them and which messages the viewer likes.
func (ps *ProfileService) Profile(ctx context.Context, username string, viewerID int) (*domain.Profile, error) {
	user, err := ps.users.ByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	messages, err := ps.messages.ByUserID(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	followerCount, err := ps.follows.CountFollowers(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	followingCount, err := ps.follows.CountFollowing(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	profile := &domain.Profile{
		User:           *user,
		Messages:       make([]domain.ProfileMessage, 0, len(messages)),
		FollowerCount:  followerCount,
		FollowingCount: followingCount,
	}

	if viewerID > 0 && viewerID != user.ID {
		follows, err := ps.follows.IsFollowing(ctx, viewerID, user.ID)
		if err != nil {
			return nil, err
		}
		profile.ViewerFollows = follows
	}

	for _, message := range messages {
		pm := domain.ProfileMessage{Message: message}
		if viewerID > 0 {
			liked, err := ps.likes.IsLiked(ctx, viewerID, message.ID)
			if err != nil {
				return nil, err
			}
			pm.Liked = liked
		}
		profile.Messages = append(profile.Messages, pm)
	}

	return profile, nil
}
