package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"bidhouse/internal/logger"
	"bidhouse/models"

	"github.com/jackc/pgerrcode"
)

// userRepository is the PostgreSQL-backed implementation of [UserRepository].
// It handles account creation, lookup, and partial profile updates against
// the "users" table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// CreateUser persists a new account and returns it with the
// server-assigned UserID.
//
// Error handling:
//   - PostgreSQL unique_violation (23505) → [ErrEmailAlreadyExists].
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createUser, user.Email, user.FirstName, user.LastName, user.PasswordHash)

	if err := row.Scan(&user.UserID); err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Str("email", user.Email).Msg("error creating user")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.User{}, ErrEmailAlreadyExists
		default:
			return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	return user, nil
}

// GetUserByID retrieves one account by its internal identifier.
// Returns [ErrUserNotFound] when no row matches.
func (r *userRepository) GetUserByID(ctx context.Context, userID int64) (models.User, error) {
	return r.getUser(ctx, getUserByID, userID)
}

// GetUserByEmail retrieves one account by its unique email.
// Returns [ErrUserNotFound] when no row matches.
func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	return r.getUser(ctx, getUserByEmail, email)
}

func (r *userRepository) getUser(ctx context.Context, query string, arg any) (models.User, error) {
	log := logger.FromContext(ctx)

	var user models.User
	row := r.db.QueryRowContext(ctx, query, arg)

	if err := row.Scan(&user.UserID, &user.Email, &user.FirstName, &user.LastName, &user.PasswordHash, &user.ImageRef); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}
		log.Err(err).Str("func", "*userRepository.getUser").Msg("error scanning user row")
		return models.User{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return user, nil
}

// UpdateUser applies the non-nil patch fields to the user's row. The
// passwordHash argument is the already-verified replacement hash, or empty
// when the password is unchanged.
//
// Reports whether any row was updated. An empty patch is a no-op and
// reports false without touching the database.
func (r *userRepository) UpdateUser(ctx context.Context, userID int64, patch models.UserPatch, passwordHash string) (bool, error) {
	log := logger.FromContext(ctx)

	query, args, ok, err := buildUpdateUserQuery(userID, patch, passwordHash)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.UpdateUser").Int64("user_id", userID).Msg("failed to build update query")
		return false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	if !ok {
		return false, nil
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.UpdateUser").Int64("user_id", userID).Msg("failed to execute update")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return false, ErrEmailAlreadyExists
		default:
			return false, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return affected > 0, nil
}
