package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/favorites-service/internal/auth"
	"github.com/spec-kit/favorites-service/internal/config"
	"github.com/spec-kit/favorites-service/internal/domain"
	"github.com/spec-kit/favorites-service/internal/events"
	"github.com/spec-kit/favorites-service/internal/repository"
	apperrors "github.com/spec-kit/favorites-service/pkg/util"
)

// AuthService coordinates signup, login and password flows.
type AuthService struct {
	users      repository.UserRepository
	tokenMgr   *auth.TokenManager
	bcryptCost int
	dispatcher events.Dispatcher
}

// AuthDependencies encapsulates requirements for the auth service.
type AuthDependencies struct {
	UserRepo   repository.UserRepository
	Dispatcher events.Dispatcher
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:      deps.UserRepo,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		bcryptCost: cfg.Auth.BcryptCost,
		dispatcher: deps.Dispatcher,
	}
}

// Signup creates a new account and issues its first token. The email check
// here races with concurrent signups; the unique index on users(email) is
// the backstop and surfaces as the same conflict.
func (s *AuthService) Signup(ctx context.Context, email, password string) (*domain.User, string, time.Time, error) {
	email = NormalizeEmail(email)

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, "", time.Time{}, apperrors.NewConflict("DUPLICATE_EMAIL", "email already registered")
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, "", time.Time{}, apperrors.NewPersistenceError(err)
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, "", time.Time{}, apperrors.NewCryptoError(err)
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleStandard,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, "", time.Time{}, apperrors.NewConflict("DUPLICATE_EMAIL", "email already registered")
		}
		return nil, "", time.Time{}, apperrors.NewPersistenceError(err)
	}

	token, exp, err := s.tokenMgr.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, "", time.Time{}, apperrors.NewTokenIssuanceError(err)
	}

	s.publish(ctx, events.Event{
		Type:    events.EventUserRegistered,
		UserID:  user.ID,
		Payload: events.UserRegisteredPayload{Email: user.Email},
	})
	return user, token, exp, nil
}

// Login authenticates a user and issues a fresh token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, time.Time, error) {
	user, err := s.users.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", time.Time{}, apperrors.NewInvalidCredentials()
		}
		return nil, "", time.Time{}, apperrors.NewPersistenceError(err)
	}

	match, err := auth.ComparePassword(user.PasswordHash, password)
	if err != nil {
		return nil, "", time.Time{}, apperrors.NewCryptoError(err)
	}
	if !match {
		return nil, "", time.Time{}, apperrors.NewInvalidCredentials()
	}

	token, exp, err := s.tokenMgr.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, "", time.Time{}, apperrors.NewTokenIssuanceError(err)
	}
	return user, token, exp, nil
}

// ChangePassword verifies the current password before storing a new hash.
// The new password must differ from the current one.
func (s *AuthService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("user")
		}
		return apperrors.NewPersistenceError(err)
	}

	match, err := auth.ComparePassword(user.PasswordHash, currentPassword)
	if err != nil {
		return apperrors.NewCryptoError(err)
	}
	if !match {
		return apperrors.NewInvalidCredentials()
	}

	if newPassword == currentPassword {
		return apperrors.NewValidationError("new password must differ from the current one", nil)
	}

	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return apperrors.NewCryptoError(err)
	}

	if err := s.users.UpdatePassword(ctx, userID, hash); err != nil {
		return apperrors.NewPersistenceError(err)
	}
	return nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *AuthService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, event)
}

// NormalizeEmail trims surrounding whitespace and lowercases the address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
