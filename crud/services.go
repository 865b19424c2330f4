package crud

import (
	"context"

	"gorm.io/gorm"
)

// A ServicesConfig is any function that takes in a pointer to a Services
// object and returns an error. It's basically just wrapping the constructor
// method of any given crud service. It exists to be able to easily create
// the crud services using functional options in main.go.
type ServicesConfig func(*Services) error

// Services is a container object holding pointers to all the crud services.
// The crud services all share the database connection provided by Services.
type Services struct {
	db      *gorm.DB
	User    *UserService
	Message *MessageService
	Follow  *FollowService
	Like    *LikeService
	Profile *ProfileService
}

// NewServices returns a new Services object, containing any crud services
// it's told to create by one of the passed in ServicesConfig functions.
// It shares the passed in database connection with any crud service it creates.
func NewServices(db *gorm.DB, cfgs ...ServicesConfig) (*Services, error) {
	s := Services{
		db: db,
	}
	for _, cfg := range cfgs {
		if err := cfg(&s); err != nil {
			return nil, err
		}
	}
	return &s, nil
}

// WithUser wraps the constructor of UserService, NewUserService.
func WithUser(pepper string) ServicesConfig {
	return func(s *Services) error {
		s.User = NewUserService(s.db, pepper)
		return nil
	}
}

// WithMessage wraps the constructor of MessageService, NewMessageService.
func WithMessage() ServicesConfig {
	return func(s *Services) error {
		s.Message = NewMessageService(s.db)
		return nil
	}
}

// WithFollow wraps the constructor of FollowService, NewFollowService.
func WithFollow() ServicesConfig {
	return func(s *Services) error {
		s.Follow = NewFollowService(s.db)
		return nil
	}
}

// WithLike wraps the constructor of LikeService, NewLikeService.
func WithLike() ServicesConfig {
	return func(s *Services) error {
		s.Like = NewLikeService(s.db)
		return nil
	}
}

// WithProfile wraps the constructor of ProfileService, NewProfileService.
// It must come after WithUser, WithMessage, WithFollow and WithLike, since
// the profile service composes reads from all four stores.
func WithProfile() ServicesConfig {
	return func(s *Services) error {
		s.Profile = NewProfileService(s.User, s.Message, s.Follow, s.Like)
		return nil
	}
}

// Transaction runs fn inside a single database transaction. The Services
// passed to fn is a view of this container with every store rebound to that
// transaction, so all operations inside fn share one session. The transaction
// commits when fn returns nil and rolls back when it returns an error.
//
// This is the request-scoped unit of work: the web layer wraps each mutating
// request in one Transaction call.
func (s *Services) Transaction(ctx context.Context, fn func(tx *Services) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(s.withDB(tx))
	})
}

// withDB returns a copy of the container with every store bound to db.
func (s *Services) withDB(db *gorm.DB) *Services {
	tx := &Services{db: db}
	if s.User != nil {
		tx.User = s.User.WithTx(db)
	}
	if s.Message != nil {
		tx.Message = s.Message.WithTx(db)
	}
	if s.Follow != nil {
		tx.Follow = s.Follow.WithTx(db)
	}
	if s.Like != nil {
		tx.Like = s.Like.WithTx(db)
	}
	if s.Profile != nil {
		tx.Profile = NewProfileService(tx.User, tx.Message, tx.Follow, tx.Like)
	}
	return tx
}
