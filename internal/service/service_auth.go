package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/secopslab/secwatch/internal/logger"
	"github.com/secopslab/secwatch/internal/passhash"
	"github.com/secopslab/secwatch/internal/store"
	"github.com/secopslab/secwatch/internal/validators"
	"github.com/secopslab/secwatch/models"
)

// authService is the concrete implementation of AuthService.
// It validates credentials, hashes passwords with bcrypt, and delegates
// persistence to a UserRepository.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	// hasher produces and verifies password hashes. Hash parameters are
	// embedded in the stored blob, so verification needs no extra state.
	hasher passhash.Hasher

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs an AuthService wired to the given UserRepository
// and password hasher.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewAuthService(userRepository store.UserRepository, hasher passhash.Hasher, logger *logger.Logger) AuthService {
	return &authService{
		userRepository: userRepository,
		hasher:         hasher,
		logger:         logger,
	}
}

// Register creates a new account.
//
// Username and password are validated first, then the username is checked
// for availability. The pre-check only short-circuits the common case; the
// storage unique constraint remains the authority, so a concurrent
// registration of the same username still surfaces as ErrUsernameTaken.
// An unrecognized or empty role becomes the regular user role.
func (s *authService) Register(ctx context.Context, username, password, role string) error {
	log := logger.FromContext(ctx)

	if err := validators.ValidateUsername(username); err != nil {
		return err
	}
	if err := validators.ValidatePassword(password); err != nil {
		return err
	}

	_, err := s.userRepository.FindUserByUsername(ctx, username)
	if err == nil {
		return ErrUsernameTaken
	}
	if !errors.Is(err, store.ErrUserNotFound) {
		log.Err(err).Str("func", "*authService.Register").Msg("error checking username availability")
		return fmt.Errorf("check username: %w", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		log.Err(err).Str("func", "*authService.Register").Msg("error hashing password")
		return fmt.Errorf("hash password: %w", err)
	}

	_, err = s.userRepository.CreateUser(ctx, models.User{
		Username:     username,
		PasswordHash: hash,
		Role:         models.ParseRole(role),
	})
	if err != nil {
		if errors.Is(err, store.ErrUsernameTaken) {
			return ErrUsernameTaken
		}

		log.Err(err).Str("func", "*authService.Register").Msg("error creating user")
		return fmt.Errorf("create user: %w", err)
	}

	log.Info().Str("func", "*authService.Register").Str("username", username).Msg("user registered")
	return nil
}

// Login verifies the credentials and returns the account's role.
//
// A missing account and a failed hash comparison produce the same
// ErrInvalidCredentials, so the response does not reveal which usernames
// exist.
func (s *authService) Login(ctx context.Context, username, password string) (models.Role, error) {
	log := logger.FromContext(ctx)

	user, err := s.userRepository.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return "", ErrInvalidCredentials
		}

		log.Err(err).Str("func", "*authService.Login").Msg("error looking up user")
		return "", fmt.Errorf("find user: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return "", ErrInvalidCredentials
	}

	log.Info().Str("func", "*authService.Login").Str("username", username).Str("role", string(user.Role)).Msg("user logged in")
	return user.Role, nil
}

// RemoveUser deletes the account with the given username.
// Returns true iff an account was removed.
func (s *authService) RemoveUser(ctx context.Context, username string) (bool, error) {
	log := logger.FromContext(ctx)

	removed, err := s.userRepository.DeleteUserByUsername(ctx, username)
	if err != nil {
		log.Err(err).Str("func", "*authService.RemoveUser").Msg("error removing user")
		return false, fmt.Errorf("remove user: %w", err)
	}

	return removed, nil
}
