package crud

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"warbler/domain"
	"warbler/errs"
)

// LikeService manages Likes.
// It implements the domain.LikeService interface.
type LikeService struct {
	likeValidator
}

// likeValidator runs validations on incoming Like data.
// On success, it passes the data on to likeGorm.
// Otherwise, it returns the error of the validation that has failed.
type likeValidator struct {
	likeGorm
}

// likeGorm runs CRUD operations on the database using incoming Like data.
// It assumes that data has been validated. On success, it returns nil.
// Otherwise, it returns the error of the operation that has failed.
type likeGorm struct {
	db *gorm.DB
}

// NewLikeService returns an instance of LikeService.
func NewLikeService(db *gorm.DB) *LikeService {
	return &LikeService{
		likeValidator{
			likeGorm{
				db: db,
			},
		},
	}
}

// Ensure the LikeService struct properly implements the domain.LikeService interface.
// If it does not, then this expression becomes invalid and won't compile.
var _ domain.LikeService = &LikeService{}

// WithTx returns a copy of the service bound to the given transaction.
func (ls *LikeService) WithTx(tx *gorm.DB) *LikeService {
	clone := *ls
	clone.likeGorm = likeGorm{db: tx}
	return &clone
}

// Create runs validations needed for creating new Like database records.
// Duplicate likes are not pre-checked; the composite primary key on the
// likes table reports them, which also settles the race of two concurrent
// likes for the same pair.
func (lv *likeValidator) Create(ctx context.Context, like *domain.Like) error {
	err := runLikeValFns(like, lv.idsValid)
	if err != nil {
		return err
	}
	return lv.likeGorm.Create(ctx, like)
}

// Delete removes the edge if it exists. Unliking a message the user has not
// liked affects zero rows and is not an error.
func (lv *likeValidator) Delete(ctx context.Context, like *domain.Like) error {
	err := runLikeValFns(like, lv.idsValid)
	if err != nil {
		return err
	}
	return lv.likeGorm.Delete(ctx, like)
}

// runLikeValFns runs any number of functions of type likeValFn on the passed in Like object.
// If none of them returns an error, it returns nil. Otherwise, it returns the respective error.
func runLikeValFns(like *domain.Like, fns ...likeValFn) error {
	for _, fn := range fns {
		if err := fn(like); err != nil {
			return err
		}
	}
	return nil
}

// A likeValFn is any function that takes in a pointer to a domain.Like object and returns an error.
type likeValFn func(like *domain.Like) error

// idsValid ensures that both ids of the edge are set.
func (lv *likeValidator) idsValid(like *domain.Like) error {
	if like.UserID <= 0 || like.MessageID <= 0 {
		return errs.Errorf(errs.EINVALID, "Invalid like data.")
	}
	return nil
}

// IsLiked reports whether an edge (user, message) exists.
func (lg *likeGorm) IsLiked(ctx context.Context, userID, messageID int) (bool, error) {
	var count int64
	err := lg.db.WithContext(ctx).
		Model(&domain.Like{}).
		Where("user_id = ? AND message_id = ?", userID, messageID).
		Count(&count).Error
	return count > 0, err
}

// LikedMessages returns all messages the given user has liked,
// joined through the likes table, newest first.
func (lg *likeGorm) LikedMessages(ctx context.Context, userID int) ([]domain.Message, error) {
	var messages []domain.Message
	err := lg.db.WithContext(ctx).
		Joins("JOIN likes ON likes.message_id = messages.id").
		Where("likes.user_id = ?", userID).
		Order("messages.timestamp desc").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

// Create stores the edge in a new database record. A duplicate pair trips
// the composite primary key and comes back as an ECONFLICT error; an id
// pointing at a deleted user or message trips a foreign key and comes back
// as ENOTFOUND.
func (lg *likeGorm) Create(ctx context.Context, like *domain.Like) error {
	err := lg.db.WithContext(ctx).Omit(clause.Associations).Create(like).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return errs.Errorf(errs.ECONFLICT, "You already like this message.")
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return errs.Errorf(errs.ENOTFOUND, "The liked message does not exist.")
	}
	return err
}

// Delete removes the database record matching the edge, if there is one.
func (lg *likeGorm) Delete(ctx context.Context, like *domain.Like) error {
	return lg.db.WithContext(ctx).
		Where("user_id = ? AND message_id = ?", like.UserID, like.MessageID).
		Delete(&domain.Like{}).Error
}
