package errs

import (
	"errors"
	"fmt"
)

// Application error codes. They describe the kind of failure in a transport
// agnostic way; the http package maps them to status codes.
const (
	// ECONFLICT is returned when a unique constraint rejects an insert, e.g.
	// a duplicate username, email, follow edge or like edge.
	ECONFLICT = "conflict"
	// EINTERNAL is the catch-all for unexpected errors. Its message is never
	// shown to end users.
	EINTERNAL = "internal"
	// EINVALID is returned when input is rejected before reaching storage,
	// e.g. a message over 140 characters or a self-follow.
	EINVALID = "invalid"
	// ENOTFOUND is returned when a referenced entity does not exist.
	ENOTFOUND = "not_found"
	// EUNAUTHORIZED is the single outcome of a failed authentication. Unknown
	// username and wrong password deliberately produce the same error.
	EUNAUTHORIZED = "unauthorized"
)

// Error is an application error with a machine-readable code and a
// human-readable message that is safe to show to end users.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("warbler error: code=%s message=%s", e.Code, e.Message)
}

// Errorf constructs an Error with the given code and formatted message.
func Errorf(code string, format string, args ...interface{}) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// ErrorCode unwraps an application error and returns its code.
// Non-application errors count as EINTERNAL.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	}
	if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors get a generic message so internals don't leak.
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	}
	if errors.As(err, &e) {
		return e.Message
	}
	return "An internal error has occurred."
}
