package crud

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"warbler/domain"
	"warbler/errs"
)

// FollowService manages Follows.
// It implements the domain.FollowService interface.
type FollowService struct {
	followValidator
}

// followValidator runs validations on incoming Follow data.
// On success, it passes the data on to followGorm.
// Otherwise, it returns the error of the validation that has failed.
type followValidator struct {
	followGorm
}

// followGorm runs CRUD operations on the database using incoming Follow data.
// It assumes that data has been validated. On success, it returns nil.
// Otherwise, it returns the error of the operation that has failed.
type followGorm struct {
	db *gorm.DB
}

// NewFollowService returns an instance of FollowService.
func NewFollowService(db *gorm.DB) *FollowService {
	return &FollowService{
		followValidator{
			followGorm{
				db: db,
			},
		},
	}
}

// Ensure the FollowService struct properly implements the domain.FollowService interface.
// If it does not, then this expression becomes invalid and won't compile.
var _ domain.FollowService = &FollowService{}

// WithTx returns a copy of the service bound to the given transaction.
func (fs *FollowService) WithTx(tx *gorm.DB) *FollowService {
	clone := *fs
	clone.followGorm = followGorm{db: tx}
	return &clone
}

// Create runs validations needed for creating new Follow database records.
// It does not check whether the edge already exists; the composite primary
// key on the follows table reports the duplicate, which also settles the
// race of two concurrent follows for the same pair.
func (fv *followValidator) Create(ctx context.Context, follow *domain.Follow) error {
	err := runFollowValFns(follow,
		fv.idsValid,
		fv.followedIsNotFollower)
	if err != nil {
		return err
	}
	return fv.followGorm.Create(ctx, follow)
}

// Delete removes the edge if it exists. Unfollowing someone the user does
// not follow affects zero rows and is not an error.
func (fv *followValidator) Delete(ctx context.Context, follow *domain.Follow) error {
	err := runFollowValFns(follow, fv.idsValid)
	if err != nil {
		return err
	}
	return fv.followGorm.Delete(ctx, follow)
}

// runFollowValFns runs any number of functions of type followValFn on the passed in Follow object.
// If none of them returns an error, it returns nil. Otherwise, it returns the respective error.
func runFollowValFns(follow *domain.Follow, fns ...followValFn) error {
	for _, fn := range fns {
		if err := fn(follow); err != nil {
			return err
		}
	}
	return nil
}

// A followValFn is any function that takes in a pointer to a domain.Follow object and returns an error.
type followValFn func(follow *domain.Follow) error

// idsValid ensures that both user ids of the edge are set.
func (fv *followValidator) idsValid(follow *domain.Follow) error {
	if follow.FollowerUserID <= 0 || follow.FollowedUserID <= 0 {
		return errs.Errorf(errs.EINVALID, "Invalid user id.")
	}
	return nil
}

// followedIsNotFollower makes sure a user is not following themselves.
// The schema alone would allow the pair, so the rule lives here.
func (fv *followValidator) followedIsNotFollower(follow *domain.Follow) error {
	if follow.FollowerUserID == follow.FollowedUserID {
		return errs.Errorf(errs.EINVALID, "You cannot follow yourself.")
	}
	return nil
}

// IsFollowing reports whether an edge (followed=followedID, follower=followerID) exists.
func (fg *followGorm) IsFollowing(ctx context.Context, followerID, followedID int) (bool, error) {
	var count int64
	err := fg.db.WithContext(ctx).
		Model(&domain.Follow{}).
		Where("followed_user_id = ? AND follower_user_id = ?", followedID, followerID).
		Count(&count).Error
	return count > 0, err
}

// IsFollowedBy reports whether other follows user. It is the mirror of IsFollowing.
func (fg *followGorm) IsFollowedBy(ctx context.Context, userID, otherID int) (bool, error) {
	return fg.IsFollowing(ctx, otherID, userID)
}

// Following returns all users the given user follows,
// joined through the follows table.
func (fg *followGorm) Following(ctx context.Context, userID int) ([]domain.User, error) {
	var users []domain.User
	err := fg.db.WithContext(ctx).
		Joins("JOIN follows ON follows.followed_user_id = users.id").
		Where("follows.follower_user_id = ?", userID).
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

// Followers returns all users that follow the given user,
// joined through the follows table.
func (fg *followGorm) Followers(ctx context.Context, userID int) ([]domain.User, error) {
	var users []domain.User
	err := fg.db.WithContext(ctx).
		Joins("JOIN follows ON follows.follower_user_id = users.id").
		Where("follows.followed_user_id = ?", userID).
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

// CountFollowing returns the number of users the given user follows.
func (fg *followGorm) CountFollowing(ctx context.Context, userID int) (int, error) {
	var count int64
	err := fg.db.WithContext(ctx).
		Model(&domain.Follow{}).
		Where("follower_user_id = ?", userID).
		Count(&count).Error
	return int(count), err
}

// CountFollowers returns the number of users that follow the given user.
func (fg *followGorm) CountFollowers(ctx context.Context, userID int) (int, error) {
	var count int64
	err := fg.db.WithContext(ctx).
		Model(&domain.Follow{}).
		Where("followed_user_id = ?", userID).
		Count(&count).Error
	return int(count), err
}

// Create stores the edge in a new database record. A duplicate pair trips
// the composite primary key and comes back as an ECONFLICT error; an id
// pointing at a deleted user trips a foreign key and comes back as ENOTFOUND.
func (fg *followGorm) Create(ctx context.Context, follow *domain.Follow) error {
	err := fg.db.WithContext(ctx).Omit(clause.Associations).Create(follow).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return errs.Errorf(errs.ECONFLICT, "You already follow this user.")
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return errs.Errorf(errs.ENOTFOUND, "The user to be followed does not exist.")
	}
	return err
}

// Delete removes the database record matching the edge, if there is one.
func (fg *followGorm) Delete(ctx context.Context, follow *domain.Follow) error {
	return fg.db.WithContext(ctx).
		Where("followed_user_id = ? AND follower_user_id = ?", follow.FollowedUserID, follow.FollowerUserID).
		Delete(&domain.Follow{}).Error
}
