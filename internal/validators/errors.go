package validators

import "errors"

// Validation errors describing why a credential value was rejected.
// Their messages are surfaced verbatim to the user as the rejection reason.
var (
	ErrUsernameTooShort   = errors.New("username must be at least 3 characters long")
	ErrUsernameWhitespace = errors.New("username cannot contain spaces")
	ErrUsernameCharset    = errors.New("username can only contain letters, numbers, underscores, or dashes")

	ErrPasswordTooShort = errors.New("password must be at least 6 characters long")
	ErrPasswordNoDigit  = errors.New("password must contain at least one number")
	ErrPasswordNoLetter = errors.New("password must contain at least one letter")
)
