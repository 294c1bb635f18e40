package service

import (
	"context"
	"fmt"
	"strings"

	"bidhouse/internal/logger"
	"bidhouse/internal/store"
	"bidhouse/models"

	"golang.org/x/crypto/bcrypt"
)

// userService serves user profiles on top of the user repository.
type userService struct {
	userRepository store.UserRepository

	logger *logger.Logger
}

// NewUserService constructs a UserService wired to the given repository.
func NewUserService(users store.UserRepository, logger *logger.Logger) UserService {
	return &userService{
		userRepository: users,
		logger:         logger,
	}
}

// GetUser returns the user's profile. The email is part of the result
// only when the viewer is the account owner; everyone else gets the
// public projection.
func (s *userService) GetUser(ctx context.Context, userID, viewerID int64) (models.User, error) {
	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		return models.User{}, err
	}

	return user.Public(viewerID), nil
}

// UpdateUser applies a partial profile update.
//
// Only the account owner may update (ErrNotOwner otherwise). A password
// change must carry the current password; a missing or wrong proof fails
// with ErrInvalidDataProvided / ErrWrongPassword before anything is
// written. Reports whether any field actually changed.
func (s *userService) UpdateUser(ctx context.Context, userID, actorID int64, patch models.UserPatch) (bool, error) {
	log := logger.FromContext(ctx)

	if actorID != userID {
		return false, ErrNotOwner
	}

	if patch.Empty() {
		return false, nil
	}

	if patch.Email != nil && !strings.Contains(*patch.Email, "@") {
		return false, ErrInvalidDataProvided
	}

	var passwordHash string
	if patch.Password != nil {
		if *patch.Password == "" || patch.CurrentPassword == nil {
			return false, ErrInvalidDataProvided
		}

		current, err := s.userRepository.GetUserByID(ctx, userID)
		if err != nil {
			return false, err
		}

		if err := bcrypt.CompareHashAndPassword([]byte(current.PasswordHash), []byte(*patch.CurrentPassword)); err != nil {
			log.Err(err).Int64("user_id", userID).Msg("current password proof failed")
			return false, ErrWrongPassword
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(*patch.Password), bcrypt.DefaultCost)
		if err != nil {
			return false, fmt.Errorf("password hashing failed: %w", err)
		}
		passwordHash = string(hash)
	}

	return s.userRepository.UpdateUser(ctx, userID, patch, passwordHash)
}
