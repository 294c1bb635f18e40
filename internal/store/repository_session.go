package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"bidhouse/internal/logger"
	"bidhouse/models"
)

// sessionRepository is the PostgreSQL-backed implementation of
// [SessionRepository]. Sessions live in their own token-keyed table; the
// unique constraint on user_id is what makes "one live token per user" a
// database invariant rather than a service convention.
type sessionRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewSessionRepository constructs a [SessionRepository] backed by the
// provided database connection and logger.
func NewSessionRepository(db *DB, logger *logger.Logger) SessionRepository {
	logger.Debug().Msg("creating session repository")
	return &sessionRepository{
		db:     db,
		logger: logger,
	}
}

// SaveSession stores the session. The upsert keyed on user_id atomically
// replaces whatever token the user held before, so a prior token stops
// resolving the instant the new one is issued.
func (r *sessionRepository) SaveSession(ctx context.Context, session models.Session) error {
	log := logger.FromContext(ctx)

	if _, err := r.db.ExecContext(ctx, saveSession, session.Token, session.UserID); err != nil {
		log.Err(err).Str("func", "*sessionRepository.SaveSession").Int64("user_id", session.UserID).Msg("failed to save session")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// GetSessionByToken resolves a bearer token to its session.
// Absence is an explicit result ([ErrSessionNotFound]), never a panic or a
// zero-value session.
func (r *sessionRepository) GetSessionByToken(ctx context.Context, token string) (models.Session, error) {
	log := logger.FromContext(ctx)

	var session models.Session
	row := r.db.QueryRowContext(ctx, getSessionByToken, token)

	if err := row.Scan(&session.Token, &session.UserID, &session.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Session{}, ErrSessionNotFound
		}
		log.Err(err).Str("func", "*sessionRepository.GetSessionByToken").Msg("error scanning session row")
		return models.Session{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return session, nil
}

// DeleteSessionByToken revokes the session identified by token.
// Returns [ErrSessionNotFound] when the token named no live session.
func (r *sessionRepository) DeleteSessionByToken(ctx context.Context, token string) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, deleteSessionByToken, token)
	if err != nil {
		log.Err(err).Str("func", "*sessionRepository.DeleteSessionByToken").Msg("failed to delete session")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrSessionNotFound
	}

	return nil
}

// DeleteSessionByUser revokes whatever session the user holds. Revoking a
// user with no live session is a no-op, not an error.
func (r *sessionRepository) DeleteSessionByUser(ctx context.Context, userID int64) error {
	log := logger.FromContext(ctx)

	if _, err := r.db.ExecContext(ctx, deleteSessionByUser, userID); err != nil {
		log.Err(err).Str("func", "*sessionRepository.DeleteSessionByUser").Int64("user_id", userID).Msg("failed to delete session")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}
