package service

import "errors"

var (
	// ErrInvalidCredentials is returned by Login for an unknown username and
	// for a wrong password alike, so callers cannot distinguish the two.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrUsernameTaken is returned by Register when the username is already
	// registered.
	ErrUsernameTaken = errors.New("username already exists")

	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("record not found")
)
