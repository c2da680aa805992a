// Package validators provides the credential format rules enforced before
// any account is persisted.
//
// All rules are pure functions with no I/O: they are advisory gates invoked
// by the auth service ahead of the store mutation, so a rejected value never
// produces a partial write.
package validators

import "unicode"

const (
	minUsernameLen = 3
	minPasswordLen = 6
)

// ValidateUsername checks a candidate username against the account naming
// rules: at least 3 characters, no whitespace, and only ASCII letters,
// digits, underscores, or dashes.
//
// Returns nil when the username is acceptable, or one of the package's
// sentinel errors describing the first violated rule.
func ValidateUsername(username string) error {
	if len(username) < minUsernameLen {
		return ErrUsernameTooShort
	}

	for _, r := range username {
		if unicode.IsSpace(r) {
			return ErrUsernameWhitespace
		}
		if !isUsernameRune(r) {
			return ErrUsernameCharset
		}
	}

	return nil
}

// ValidatePassword checks a candidate password against the minimum strength
// rules: at least 6 characters, at least one digit, and at least one letter.
//
// Returns nil when the password is acceptable, or one of the package's
// sentinel errors describing the first violated rule.
func ValidatePassword(password string) error {
	if len(password) < minPasswordLen {
		return ErrPasswordTooShort
	}

	hasDigit := false
	hasLetter := false
	for _, r := range password {
		if unicode.IsDigit(r) {
			hasDigit = true
		}
		if unicode.IsLetter(r) {
			hasLetter = true
		}
	}

	if !hasDigit {
		return ErrPasswordNoDigit
	}
	if !hasLetter {
		return ErrPasswordNoLetter
	}

	return nil
}

func isUsernameRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z':
		return true
	case r >= 'A' && r <= 'Z':
		return true
	case r >= '0' && r <= '9':
		return true
	case r == '_' || r == '-':
		return true
	}
	return false
}
