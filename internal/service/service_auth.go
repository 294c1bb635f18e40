package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"bidhouse/internal/logger"
	"bidhouse/internal/store"
	"bidhouse/models"

	"golang.org/x/crypto/bcrypt"
)

// tokenBytes is the entropy of a session token: 32 random bytes, encoded
// as 43 base64url characters.
const tokenBytes = 32

// authService is the concrete implementation of AuthService.
// It handles registration, credential verification, and the opaque
// session-token lifecycle, using bcrypt for password hashing and a
// token-keyed session table for the single-live-session-per-user rule.
type authService struct {
	userRepository    store.UserRepository
	sessionRepository store.SessionRepository

	logger *logger.Logger
}

// NewAuthService constructs an AuthService wired to the given
// repositories.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewAuthService(users store.UserRepository, sessions store.SessionRepository, logger *logger.Logger) AuthService {
	return &authService{
		userRepository:    users,
		sessionRepository: sessions,
		logger:            logger,
	}
}

// Register creates a new account.
//
// It validates that every field is present and the email is plausibly an
// email, hashes the password with bcrypt, and delegates persistence to the
// UserRepository.
//
// Returns the persisted user (with a server-assigned UserID) or:
//   - ErrInvalidDataProvided if a required field is missing or malformed.
//   - store.ErrEmailAlreadyExists if the email is taken.
func (a *authService) Register(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	if req.Email == "" || !strings.Contains(req.Email, "@") ||
		req.FirstName == "" || req.LastName == "" || req.Password == "" {
		log.Error().Str("email", req.Email).Msg("invalid registration data provided")
		return models.User{}, ErrInvalidDataProvided
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("password hashing failed: %w", err)
	}

	user := models.User{
		Email:        req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PasswordHash: string(hash),
	}

	registeredUser, err := a.userRepository.CreateUser(ctx, user)
	if err != nil {
		log.Err(err).Str("email", req.Email).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	return registeredUser, nil
}

// Login authenticates an existing user and issues a fresh session token.
//
// The token overwrite is atomic at the storage layer: the moment the new
// token is saved, any token previously issued to the same user stops
// resolving.
//
// Returns the user id and token or:
//   - ErrInvalidDataProvided if email or password is empty.
//   - store.ErrUserNotFound / ErrWrongPassword on bad credentials.
func (a *authService) Login(ctx context.Context, req models.LoginRequest) (models.LoginResult, error) {
	log := logger.FromContext(ctx)

	if req.Email == "" || req.Password == "" {
		log.Error().Msg("invalid login data provided")
		return models.LoginResult{}, ErrInvalidDataProvided
	}

	foundUser, err := a.userRepository.GetUserByEmail(ctx, req.Email)
	if err != nil {
		log.Err(err).Str("email", req.Email).Msg("user search by email failed")
		return models.LoginResult{}, fmt.Errorf("user search by email failed: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(foundUser.PasswordHash), []byte(req.Password)); err != nil {
		log.Err(err).Int64("id", foundUser.UserID).Msg("wrong password")
		return models.LoginResult{}, ErrWrongPassword
	}

	token, err := generateToken()
	if err != nil {
		return models.LoginResult{}, fmt.Errorf("token generation failed: %w", err)
	}

	session := models.Session{
		Token:  token,
		UserID: foundUser.UserID,
	}
	if err := a.sessionRepository.SaveSession(ctx, session); err != nil {
		log.Err(err).Int64("id", foundUser.UserID).Msg("session save failed")
		return models.LoginResult{}, err
	}

	return models.LoginResult{
		UserID: foundUser.UserID,
		Token:  token,
	}, nil
}

// Logout revokes the presented token. An unknown token surfaces as
// store.ErrSessionNotFound.
func (a *authService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return store.ErrSessionNotFound
	}

	return a.sessionRepository.DeleteSessionByToken(ctx, token)
}

// Resolve maps a bearer token to the authenticated user id. Absence is a
// typed result (store.ErrSessionNotFound), never a panic and never a
// zero id.
func (a *authService) Resolve(ctx context.Context, token string) (int64, error) {
	if token == "" {
		return 0, store.ErrSessionNotFound
	}

	session, err := a.sessionRepository.GetSessionByToken(ctx, token)
	if err != nil {
		if errors.Is(err, store.ErrSessionNotFound) {
			return 0, err
		}
		return 0, fmt.Errorf("session lookup failed: %w", err)
	}

	return session.UserID, nil
}

// Revoke clears whatever session the user holds. Revoking a user with no
// live session is a no-op.
func (a *authService) Revoke(ctx context.Context, userID int64) error {
	return a.sessionRepository.DeleteSessionByUser(ctx, userID)
}

// generateToken produces a cryptographically unpredictable opaque token.
func generateToken() (string, error) {
	raw := make([]byte, tokenBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}

	return base64.RawURLEncoding.EncodeToString(raw), nil
}
