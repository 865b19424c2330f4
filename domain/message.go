package domain

import (
	"context"
	"time"
)

// MessageMaxLength is the maximum number of characters (runes) in a warble.
const MessageMaxLength = 140

// Message is a single post, a "warble". It belongs to exactly one user and is
// destroyed when that user is deleted.
type Message struct {
	ID        int       `json:"id" gorm:"primaryKey"`
	Text      string    `json:"text" gorm:"size:140;not null"`
	Timestamp time.Time `json:"timestamp" gorm:"not null"`
	UserID    int       `json:"user_id" gorm:"not null;index"`

	User User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// MessageService is a set of methods to manipulate and work with the Message model.
type MessageService interface {
	Create(ctx context.Context, message *Message) error
	ByID(ctx context.Context, id int) (*Message, error)
	ByUserID(ctx context.Context, userID int) ([]Message, error)

	// Delete removes the message record. The database cascades the delete to
	// the message's likes.
	Delete(ctx context.Context, message *Message) error
}
