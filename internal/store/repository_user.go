package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/secopslab/secwatch/internal/logger"
	"github.com/secopslab/secwatch/models"
)

// userRepository is the SQL-backed implementation of [UserRepository].
// It handles credential record creation, lookup, and removal against the
// "users" table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured tracing of database interactions.
type userRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database handle and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// CreateUser persists a new credential record and returns the fully
// populated [models.User] with the server-assigned surrogate ID.
//
// The unique constraint on username is the authoritative conflict signal:
//   - unique violation → [ErrUsernameTaken]
//   - any other driver-level error → wrapped as "unexpected DB error"
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.Builder().
		Insert(user.TableName()).
		Columns("username", "password_hash", "role").
		Values(user.Username, user.PasswordHash, string(user.Role)).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error building insert query")
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	row := r.db.QueryRowContext(ctx, query, args...)
	if err := row.Scan(&user.ID); err != nil {
		if r.db.Classify(err) == UniqueViolation {
			log.Debug().Str("func", "*userRepository.CreateUser").Str("username", user.Username).Msg("username already exists")
			return models.User{}, ErrUsernameTaken
		}

		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error inserting user")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return user, nil
}

// CreateUserIfAbsent inserts the credential record unless a record with the
// same username already exists. The duplicate case is detected from the
// statement's own outcome (ON CONFLICT DO NOTHING plus RETURNING), not a
// separate existence pre-check, so re-running a migration batch is
// race-free and costs one round trip per record.
//
// Returns (id, true, nil) on a fresh insert and (0, false, nil) when the
// username was already present.
func (r *userRepository) CreateUserIfAbsent(ctx context.Context, user models.User) (int64, bool, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.Builder().
		Insert(user.TableName()).
		Columns("username", "password_hash", "role").
		Values(user.Username, user.PasswordHash, string(user.Role)).
		Suffix("ON CONFLICT (username) DO NOTHING RETURNING id").
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUserIfAbsent").Msg("error building insert query")
		return 0, false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var id int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// conflict path: the insert affected no rows
			return 0, false, nil
		}

		log.Err(err).Str("func", "*userRepository.CreateUserIfAbsent").Msg("error inserting user")
		return 0, false, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return id, true, nil
}

// FindUserByUsername retrieves the credential record matching username.
//
// Returns [ErrUserNotFound] when no record matches; any other failure is
// wrapped as an unexpected DB error.
func (r *userRepository) FindUserByUsername(ctx context.Context, username string) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.Builder().
		Select("id", "username", "password_hash", "role").
		From(models.User{}.TableName()).
		Where("username = ?", username).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*userRepository.FindUserByUsername").Msg("error building select query")
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var foundUser models.User
	var role string
	row := r.db.QueryRowContext(ctx, query, args...)
	if err := row.Scan(&foundUser.ID, &foundUser.Username, &foundUser.PasswordHash, &role); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}

		log.Err(err).Str("func", "*userRepository.FindUserByUsername").Msg("error scanning user row")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	// legacy records may predate the role column's enforcement
	foundUser.Role = models.ParseRole(role)

	return foundUser, nil
}

// DeleteUserByUsername removes the credential record matching username.
// Returns true iff a row was removed.
func (r *userRepository) DeleteUserByUsername(ctx context.Context, username string) (bool, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.Builder().
		Delete(models.User{}.TableName()).
		Where("username = ?", username).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*userRepository.DeleteUserByUsername").Msg("error building delete query")
		return false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.DeleteUserByUsername").Msg("error deleting user")
		return false, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	rowsAffected, _ := result.RowsAffected()
	return rowsAffected > 0, nil
}
