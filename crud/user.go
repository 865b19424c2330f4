package crud

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"warbler/domain"
	"warbler/errs"
)

// UserService manages Users and the credential side of the authentication
// system: it hashes passwords on signup and verifies them on login.
// It implements the domain.UserService interface.
type UserService struct {
	userValidator
}

// userValidator runs validations on incoming User data.
// On success, it passes the data on to userGorm.
// Otherwise, it returns the error of the validation that has failed.
type userValidator struct {
	pepper     string
	emailRegex *regexp.Regexp
	userGorm
}

// userGorm runs CRUD operations on the database using incoming User data.
// It assumes that data has been validated. On success, it returns nil.
// Otherwise, it returns the error of the operation that has failed.
type userGorm struct {
	db *gorm.DB
}

// NewUserService returns an instance of UserService.
func NewUserService(db *gorm.DB, pepper string) *UserService {
	return &UserService{
		userValidator{
			pepper:     pepper,
			emailRegex: regexp.MustCompile(`^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,16}$`),
			userGorm: userGorm{
				db: db,
			},
		},
	}
}

// Ensure the UserService struct properly implements the domain.UserService interface.
// If it does not, then this expression becomes invalid and won't compile.
var _ domain.UserService = &UserService{}

// WithTx returns a copy of the service bound to the given transaction.
func (us *UserService) WithTx(tx *gorm.DB) *UserService {
	clone := *us
	clone.userGorm = userGorm{db: tx}
	return &clone
}

// Signup runs the validations needed for creating new User database records.
// It hashes the user's password and fills in the default profile images.
// Username and email uniqueness is not checked here; the unique indexes on
// the users table reject duplicates when the record is inserted.
func (uv *userValidator) Signup(ctx context.Context, user *domain.User) error {
	err := runUserValFns(user,
		uv.usernameRequired,
		uv.emailNormalize,
		uv.emailRequired,
		uv.emailFormat,
		uv.passwordRequired,
		uv.passwordBcrypt,
		uv.passwordHashRequired,
		uv.imageDefaults)
	if err != nil {
		return err
	}
	return uv.userGorm.Create(ctx, user)
}

// Authenticate checks a submitted username and password for existence and
// correctness. A username that doesn't exist and a password that doesn't
// match return the identical error, so callers (and their users) can't
// probe which usernames are registered.
func (uv *userValidator) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	found, err := uv.userGorm.ByUsername(ctx, username)
	if err != nil {
		if errs.ErrorCode(err) == errs.ENOTFOUND {
			return nil, errs.Errorf(errs.EUNAUTHORIZED, "Invalid credentials.")
		}
		return nil, err
	}
	err = bcrypt.CompareHashAndPassword([]byte(found.PasswordHash), []byte(password+uv.pepper))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, errs.Errorf(errs.EUNAUTHORIZED, "Invalid credentials.")
		}
		// Any other bcrypt error means the stored digest is corrupt.
		return nil, err
	}
	return found, nil
}

// Update runs the validations needed for updating a User record in the
// database. It re-hashes the password only if a new one is provided.
func (uv *userValidator) Update(ctx context.Context, user *domain.User) error {
	err := runUserValFns(user,
		uv.usernameRequired,
		uv.emailNormalize,
		uv.emailRequired,
		uv.emailFormat,
		uv.passwordBcrypt,
		uv.passwordHashRequired)
	if err != nil {
		return err
	}
	return uv.userGorm.Update(ctx, user)
}

// Delete runs the validations needed for deleting a User record.
func (uv *userValidator) Delete(ctx context.Context, id int) error {
	if id <= 0 {
		return errs.Errorf(errs.EINVALID, "Invalid user id.")
	}
	return uv.userGorm.Delete(ctx, id)
}

// runUserValFns runs any number of functions of type userValFn on the passed in User object.
// If none of them returns an error, it returns nil. Otherwise, it returns the respective error.
func runUserValFns(user *domain.User, fns ...userValFn) error {
	for _, fn := range fns {
		if err := fn(user); err != nil {
			return err
		}
	}
	return nil
}

// A userValFn is any function that takes in a pointer to a domain.User object and returns an error.
type userValFn func(user *domain.User) error

// usernameRequired makes sure that the username is not the empty string.
func (uv *userValidator) usernameRequired(user *domain.User) error {
	if strings.TrimSpace(user.Username) == "" {
		return errs.Errorf(errs.EINVALID, "A username is required.")
	}
	return nil
}

// emailNormalize converts the email to all lowercase and trims its whitespaces.
func (uv *userValidator) emailNormalize(user *domain.User) error {
	user.Email = strings.ToLower(user.Email)
	user.Email = strings.TrimSpace(user.Email)
	return nil
}

// emailRequired makes sure that the email is not the empty string.
func (uv *userValidator) emailRequired(user *domain.User) error {
	if user.Email == "" {
		return errs.Errorf(errs.EINVALID, "An email address is required.")
	}
	return nil
}

// emailFormat makes sure that a provided email address matches a predefined regex pattern.
func (uv *userValidator) emailFormat(user *domain.User) error {
	if user.Email == "" {
		return nil
	}
	if !uv.emailRegex.MatchString(user.Email) {
		return errs.Errorf(errs.EINVALID, "The email address is invalid.")
	}
	return nil
}

// passwordRequired makes sure that the user's password is not the empty string.
func (uv *userValidator) passwordRequired(user *domain.User) error {
	if user.Password == "" {
		return errs.Errorf(errs.EINVALID, "A password is required.")
	}
	return nil
}

// passwordBcrypt hashes a user's password with a predefined pepper, if the
// Password field is not the empty string. bcrypt salts every digest itself,
// so hashing the same password twice yields two different digests. It then
// clears the plaintext on the user object for security reasons.
func (uv *userValidator) passwordBcrypt(user *domain.User) error {
	if user.Password == "" {
		return nil
	}
	pwBytes := []byte(user.Password + uv.pepper)
	hashedBytes, err := bcrypt.GenerateFromPassword(pwBytes, bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hashedBytes)
	user.Password = ""
	return nil
}

// passwordHashRequired makes sure that the user's password hash is not the empty string.
func (uv *userValidator) passwordHashRequired(user *domain.User) error {
	if user.PasswordHash == "" {
		return errs.Errorf(errs.EINVALID, "A password is required.")
	}
	return nil
}

// imageDefaults fills in the placeholder profile images if none are provided.
func (uv *userValidator) imageDefaults(user *domain.User) error {
	if user.ImageURL == "" {
		user.ImageURL = domain.DefaultImageURL
	}
	if user.HeaderImageURL == "" {
		user.HeaderImageURL = domain.DefaultHeaderImageURL
	}
	return nil
}

// UsernameTaken reports whether a user record with the given username exists.
func (ug *userGorm) UsernameTaken(ctx context.Context, username string) (bool, error) {
	var count int64
	err := ug.db.WithContext(ctx).
		Model(&domain.User{}).
		Where("username = ?", username).
		Count(&count).Error
	return count > 0, err
}

// EmailTaken reports whether a user record with the given email exists.
func (ug *userGorm) EmailTaken(ctx context.Context, email string) (bool, error) {
	var count int64
	err := ug.db.WithContext(ctx).
		Model(&domain.User{}).
		Where("email = ?", email).
		Count(&count).Error
	return count > 0, err
}

// ByID retrieves a User database record by ID.
func (ug *userGorm) ByID(ctx context.Context, id int) (*domain.User, error) {
	var user domain.User
	err := ug.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.Errorf(errs.ENOTFOUND, "The user does not exist.")
		}
		return nil, err
	}
	return &user, nil
}

// ByUsername retrieves a User database record by username.
func (ug *userGorm) ByUsername(ctx context.Context, username string) (*domain.User, error) {
	var user domain.User
	err := ug.db.WithContext(ctx).First(&user, "username = ?", username).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.Errorf(errs.ENOTFOUND, "The user does not exist.")
		}
		return nil, err
	}
	return &user, nil
}

// Create stores the data from the User object in a new database record.
// A duplicate username or email trips one of the unique indexes and comes
// back as an ECONFLICT error.
func (ug *userGorm) Create(ctx context.Context, user *domain.User) error {
	err := ug.db.WithContext(ctx).Create(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return errs.Errorf(errs.ECONFLICT, "The username or email address is already taken.")
	}
	return err
}

// Update saves changes to an existing user record in the database.
func (ug *userGorm) Update(ctx context.Context, user *domain.User) error {
	err := ug.db.WithContext(ctx).Save(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return errs.Errorf(errs.ECONFLICT, "The username or email address is already taken.")
	}
	return err
}

// Delete removes a user record. The foreign keys on messages, follows and
// likes are declared ON DELETE CASCADE, so the database removes all of the
// user's dependent rows in the same statement.
func (ug *userGorm) Delete(ctx context.Context, id int) error {
	return ug.db.WithContext(ctx).Delete(&domain.User{}, id).Error
}
