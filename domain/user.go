package domain

import (
	"context"
	"time"
)

// DefaultImageURL is the profile picture given to users who don't upload one.
const DefaultImageURL = "https://icon-library.com/images/default-user-icon/default-user-icon-28.jpg"

// DefaultHeaderImageURL is the header picture given to users who don't upload one.
const DefaultHeaderImageURL = "https://images.unsplash.com/photo-1519751138087-5bf79df62d5b?ixlib=rb-4.0.3&ixid=MnwxMjA3fDB8MHxwaG90by1wYWdlfHx8fGVufDB8fHx8&auto=format&fit=crop&w=2070&q=80"

// User is an account in the system. The Password field only ever holds the
// plaintext password submitted on signup or login. It is never written to the
// database and gets cleared as soon as the PasswordHash has been computed.
type User struct {
	ID             int    `json:"id" gorm:"primaryKey"`
	Email          string `json:"email" gorm:"size:50;not null;uniqueIndex"`
	Username       string `json:"username" gorm:"size:30;not null;uniqueIndex"`
	ImageURL       string `json:"image_url" gorm:"size:255;not null"`
	HeaderImageURL string `json:"header_image_url" gorm:"size:255;not null"`
	Bio            string `json:"bio" gorm:"not null;default:''"`
	Location       string `json:"location" gorm:"size:30;not null;default:''"`
	Password       string `json:"password,omitempty" gorm:"-"`
	PasswordHash   string `json:"-" gorm:"size:100;not null"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserService is a set of methods to manipulate and work with the User model.
type UserService interface {
	// Signup hashes the user's password and inserts the record. Uniqueness of
	// username and email is not pre-checked; the database's unique indexes
	// reject duplicates at commit time with an ECONFLICT error.
	Signup(ctx context.Context, user *User) error

	// Authenticate returns the user matching the credentials. An unknown
	// username and a wrong password produce the same EUNAUTHORIZED error, so
	// a caller cannot tell which of the two it was.
	Authenticate(ctx context.Context, username, password string) (*User, error)

	UsernameTaken(ctx context.Context, username string) (bool, error)
	EmailTaken(ctx context.Context, email string) (bool, error)

	ByID(ctx context.Context, id int) (*User, error)
	ByUsername(ctx context.Context, username string) (*User, error)

	Update(ctx context.Context, user *User) error

	// Delete removes the user record. The database cascades the delete to the
	// user's messages, both directions of their follows, and their likes.
	Delete(ctx context.Context, id int) error
}
