package auth

import (
	"context"
	"fmt"

	"billbook/internal/core/apperror"
	"billbook/internal/core/tx"
	"billbook/pkg/logger"
)

// Service provides authentication business logic.
type Service struct {
	repo      Repository
	jwt       *JWTService
	txManager tx.Manager
}

// NewService creates a new auth service.
func NewService(repo Repository, jwt *JWTService, txManager tx.Manager) *Service {
	return &Service{repo: repo, jwt: jwt, txManager: txManager}
}

// Register creates a new user account.
func (s *Service) Register(ctx context.Context, username, password string, isAdmin bool) (*User, error) {
	existing, err := s.repo.GetByUsername(ctx, username)
	if err != nil && !apperror.IsNotFound(err) {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewDuplicate("user", "username", username)
	}

	user, err := NewUser(username, password)
	if err != nil {
		return nil, err
	}
	user.IsAdmin = isAdmin

	if err := user.Validate(ctx); err != nil {
		return nil, err
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Create(ctx, user)
	})
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	logger.Info(ctx, "user registered", "username", username, "admin", isAdmin)
	return user, nil
}

// Login verifies credentials and issues a session token.
// Invalid username and invalid password return the same error, so the
// endpoint does not leak which usernames exist.
func (s *Service) Login(ctx context.Context, creds Credentials) (*Session, error) {
	user, err := s.repo.GetByUsername(ctx, creds.Username)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewUnauthorized("invalid username or password")
		}
		return nil, err
	}

	if !user.CheckPassword(creds.Password) {
		return nil, apperror.NewUnauthorized("invalid username or password")
	}

	if err := user.CanLogin(); err != nil {
		return nil, err
	}

	user.RecordLogin()
	if err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Update(ctx, user)
	}); err != nil {
		return nil, fmt.Errorf("record login: %w", err)
	}

	token, expiresAt, err := s.jwt.GenerateAccessToken(user)
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "user logged in", "username", user.Username)
	return &Session{
		AccessToken: token,
		ExpiresAt:   expiresAt,
		TokenType:   "Bearer",
	}, nil
}

// ChangePassword replaces a user's password after verifying the old one.
func (s *Service) ChangePassword(ctx context.Context, username, oldPassword, newPassword string) error {
	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if apperror.IsNotFound(err) {
			return apperror.NewNotFound("user", username)
		}
		return err
	}

	if !user.CheckPassword(oldPassword) {
		return apperror.NewUnauthorized("current password is incorrect")
	}

	hash, err := HashPassword(newPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = hash

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Update(ctx, user)
	})
}
