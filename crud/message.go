package crud

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"warbler/domain"
	"warbler/errs"
)

// MessageService manages Messages.
// It implements the domain.MessageService interface.
type MessageService struct {
	messageValidator
}

// messageValidator runs validations on incoming Message data.
// On success, it passes the data on to messageGorm.
// Otherwise, it returns the error of the validation that has failed.
type messageValidator struct {
	messageGorm
}

// messageGorm runs CRUD operations on the database using incoming Message data.
// It assumes that data has been validated. On success, it returns nil.
// Otherwise, it returns the error of the operation that has failed.
type messageGorm struct {
	db *gorm.DB
}

// NewMessageService returns an instance of MessageService.
func NewMessageService(db *gorm.DB) *MessageService {
	return &MessageService{
		messageValidator{
			messageGorm{
				db: db,
			},
		},
	}
}

// Ensure the MessageService struct properly implements the domain.MessageService interface.
// If it does not, then this expression becomes invalid and won't compile.
var _ domain.MessageService = &MessageService{}

// WithTx returns a copy of the service bound to the given transaction.
func (ms *MessageService) WithTx(tx *gorm.DB) *MessageService {
	clone := *ms
	clone.messageGorm = messageGorm{db: tx}
	return &clone
}

// Create runs validations needed for creating new Message database records.
func (mv *messageValidator) Create(ctx context.Context, message *domain.Message) error {
	err := runMessageValFns(message,
		mv.userIDValid,
		mv.textRequired,
		mv.textMaxLength,
		mv.timestampSetIfUnset)
	if err != nil {
		return err
	}
	return mv.messageGorm.Create(ctx, message)
}

// Delete runs validations needed for deleting existing Message database records.
func (mv *messageValidator) Delete(ctx context.Context, message *domain.Message) error {
	err := runMessageValFns(message, mv.idValid)
	if err != nil {
		return err
	}
	return mv.messageGorm.Delete(ctx, message)
}

// runMessageValFns runs any number of functions of type messageValFn on the passed in Message object.
// If none of them returns an error, it returns nil. Otherwise, it returns the respective error.
func runMessageValFns(message *domain.Message, fns ...messageValFn) error {
	for _, fn := range fns {
		if err := fn(message); err != nil {
			return err
		}
	}
	return nil
}

// A messageValFn is any function that takes in a pointer to a domain.Message object and returns an error.
type messageValFn func(message *domain.Message) error

// userIDValid ensures that the userId is not empty.
func (mv *messageValidator) userIDValid(message *domain.Message) error {
	if message.UserID <= 0 {
		return errs.Errorf(errs.EINVALID, "A user id is required.")
	}
	return nil
}

// idValid makes sure that the passed in ID of a Message to be deleted is greater than 0.
func (mv *messageValidator) idValid(message *domain.Message) error {
	if message.ID <= 0 {
		return errs.Errorf(errs.EINVALID, "Invalid message id.")
	}
	return nil
}

// textRequired makes sure that the message's text is not empty.
func (mv *messageValidator) textRequired(message *domain.Message) error {
	if strings.TrimSpace(message.Text) == "" {
		return errs.Errorf(errs.EINVALID, "Message text must not be empty.")
	}
	return nil
}

// textMaxLength makes sure that the message's text does not exceed the maximum length.
func (mv *messageValidator) textMaxLength(message *domain.Message) error {
	if utf8.RuneCountInString(message.Text) > domain.MessageMaxLength {
		return errs.Errorf(errs.EINVALID, "Message text max length is %d characters.", domain.MessageMaxLength)
	}
	return nil
}

// timestampSetIfUnset sets the message's timestamp to the current time if none is provided.
func (mv *messageValidator) timestampSetIfUnset(message *domain.Message) error {
	if message.Timestamp.IsZero() {
		message.Timestamp = time.Now().UTC()
	}
	return nil
}

// ByID retrieves a single Message by ID.
func (mg *messageGorm) ByID(ctx context.Context, id int) (*domain.Message, error) {
	var message domain.Message
	err := mg.db.WithContext(ctx).First(&message, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.Errorf(errs.ENOTFOUND, "The message does not exist.")
		}
		return nil, err
	}
	return &message, nil
}

// ByUserID retrieves all messages of a user, newest first.
func (mg *messageGorm) ByUserID(ctx context.Context, userID int) ([]domain.Message, error) {
	var messages []domain.Message
	err := mg.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("timestamp desc").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

// Create stores the data from the Message object in a new database record.
// Posting as a user that doesn't exist trips the foreign key and comes back
// as an ENOTFOUND error.
func (mg *messageGorm) Create(ctx context.Context, message *domain.Message) error {
	err := mg.db.WithContext(ctx).Omit(clause.Associations).Create(message).Error
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return errs.Errorf(errs.ENOTFOUND, "The posting user does not exist.")
	}
	return err
}

// Delete removes a message record. The foreign key on likes is declared
// ON DELETE CASCADE, so the database removes the message's likes in the
// same statement.
func (mg *messageGorm) Delete(ctx context.Context, message *domain.Message) error {
	return mg.db.WithContext(ctx).Delete(&domain.Message{}, message.ID).Error
}
