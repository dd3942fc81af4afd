package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"panel/internal/models"
	"panel/internal/repository"
)

const (
	bcryptCost        = 10
	minPasswordLength = 6
)

type AuthService interface {
	Login(ctx context.Context, username, password string) (string, error)
	Profile(ctx context.Context, userID string) (*models.User, error)
	UpdateProfile(ctx context.Context, userID string, update models.ProfileUpdate) (*models.User, error)
	UpdateAvatar(ctx context.Context, userID, avatar string) (*models.User, error)
	CheckPassword(ctx context.Context, userID, candidate string) (bool, error)
	ChangePassword(ctx context.Context, userID, current, newPassword string) error
}

type authService struct {
	users  repository.UserRepository
	tokens *TokenService
	logger *zap.Logger
}

func NewAuthService(users repository.UserRepository, tokens *TokenService, logger *zap.Logger) AuthService {
	return &authService{users: users, tokens: tokens, logger: logger}
}

// Login verifies the credentials and issues a bearer token. An unknown
// username and a wrong password produce the same error so the response
// leaks nothing about which usernames exist.
func (s *authService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrInvalidCredentials
		}
		s.logger.Error("Failed to get user by username", zap.Error(err))
		return "", storeErr(err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", ErrInvalidCredentials
	}

	tokenString, err := s.tokens.Issue(user.ID, user.Username)
	if err != nil {
		s.logger.Error("Failed to sign token", zap.Error(err))
		return "", err
	}

	s.logger.Info("User logged in", zap.String("username", user.Username))
	return tokenString, nil
}

func (s *authService) Profile(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, storeErr(err)
	}
	return user, nil
}

func (s *authService) UpdateProfile(ctx context.Context, userID string, update models.ProfileUpdate) (*models.User, error) {
	user, err := s.users.UpdateProfile(ctx, userID, update)
	if err != nil {
		return nil, storeErr(err)
	}
	return user, nil
}

// UpdateAvatar persists an embedded image. Only data-URI image payloads are
// accepted; anything else is rejected before touching the store.
func (s *authService) UpdateAvatar(ctx context.Context, userID, avatar string) (*models.User, error) {
	if avatar == "" || !strings.HasPrefix(avatar, "data:image") {
		return nil, ErrInvalidInput
	}

	user, err := s.users.UpdateAvatar(ctx, userID, avatar)
	if err != nil {
		return nil, storeErr(err)
	}
	return user, nil
}

func (s *authService) CheckPassword(ctx context.Context, userID, candidate string) (bool, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return false, storeErr(err)
	}
	return bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(candidate)) == nil, nil
}

// ChangePassword re-verifies the current password with the same error policy
// as Login, enforces the minimum length on the new one, then persists a
// fresh hash. Tokens issued before the change remain valid until expiry.
func (s *authService) ChangePassword(ctx context.Context, userID, current, newPassword string) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return storeErr(err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)) != nil {
		return ErrInvalidCredentials
	}

	if len(newPassword) < minPasswordLength {
		return ErrInvalidInput
	}

	hash, err := HashPassword(newPassword)
	if err != nil {
		s.logger.Error("Failed to hash password", zap.Error(err))
		return err
	}

	if err := s.users.UpdatePasswordHash(ctx, userID, hash); err != nil {
		return storeErr(err)
	}

	s.logger.Info("Password changed", zap.String("username", user.Username))
	return nil
}

// HashPassword produces a bcrypt hash of the password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
