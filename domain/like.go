package domain

import "context"

// Like is an edge between a user and a message they like. The pair is the
// primary key, so a user can like a message at most once. Deleting the user
// or the message deletes the edge.
type Like struct {
	UserID    int `json:"user_id" gorm:"primaryKey;autoIncrement:false"`
	MessageID int `json:"message_id" gorm:"primaryKey;autoIncrement:false"`

	User    User    `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Message Message `json:"-" gorm:"foreignKey:MessageID;constraint:OnDelete:CASCADE"`
}

// LikeService is a set of methods to manipulate and work with the Like model.
type LikeService interface {
	// Create inserts the edge. Liking a message twice fails with ECONFLICT,
	// liking a message that doesn't exist fails with ENOTFOUND.
	Create(ctx context.Context, like *Like) error

	// Delete removes the edge if it exists. Deleting an absent edge is a no-op.
	Delete(ctx context.Context, like *Like) error

	IsLiked(ctx context.Context, userID, messageID int) (bool, error)

	// LikedMessages returns all messages the given user has liked.
	LikedMessages(ctx context.Context, userID int) ([]Message, error)
}
