// Package auth_repo provides the PostgreSQL implementation of the user
// repository.
package auth_repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"billbook/internal/core/apperror"
	"billbook/internal/core/id"
	"billbook/internal/domain/auth"
	"billbook/internal/infrastructure/storage/postgres"
)

// UserRepo implements auth.Repository.
type UserRepo struct {
	txManager *postgres.TxManager
}

// NewUserRepo creates a new user repository.
func NewUserRepo(txManager *postgres.TxManager) *UserRepo {
	return &UserRepo{txManager: txManager}
}

var _ auth.Repository = (*UserRepo)(nil)

// Create creates a new user.
func (r *UserRepo) Create(ctx context.Context, user *auth.User) error {
	q := r.txManager.GetQuerier(ctx)

	query := `
		INSERT INTO users (
			id, username, password_hash, is_admin, is_active, created_at
		) VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := q.Exec(ctx, query,
		user.ID, user.Username, user.PasswordHash,
		user.IsAdmin, user.IsActive, user.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}

	return nil
}

// GetByID retrieves user by ID.
func (r *UserRepo) GetByID(ctx context.Context, userID id.ID) (*auth.User, error) {
	q := r.txManager.GetQuerier(ctx)

	query := `
		SELECT id, username, password_hash, is_admin, is_active,
		       last_login_at, created_at
		FROM users
		WHERE id = $1
	`

	var user auth.User
	err := q.QueryRow(ctx, query, userID).Scan(
		&user.ID, &user.Username, &user.PasswordHash,
		&user.IsAdmin, &user.IsActive, &user.LastLoginAt, &user.CreatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, apperror.NewNotFound("user", userID.String())
	}
	if err != nil {
		return nil, fmt.Errorf("query user: %w", err)
	}

	return &user, nil
}

// GetByUsername retrieves user by username.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*auth.User, error) {
	q := r.txManager.GetQuerier(ctx)

	query := `
		SELECT id, username, password_hash, is_admin, is_active,
		       last_login_at, created_at
		FROM users
		WHERE username = $1
	`

	var user auth.User
	err := q.QueryRow(ctx, query, username).Scan(
		&user.ID, &user.Username, &user.PasswordHash,
		&user.IsAdmin, &user.IsActive, &user.LastLoginAt, &user.CreatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, apperror.NewNotFound("user", username)
	}
	if err != nil {
		return nil, fmt.Errorf("query user: %w", err)
	}

	return &user, nil
}

// Update updates user data.
func (r *UserRepo) Update(ctx context.Context, user *auth.User) error {
	q := r.txManager.GetQuerier(ctx)

	query := `
		UPDATE users SET
			password_hash = $2,
			is_admin = $3,
			is_active = $4,
			last_login_at = $5
		WHERE id = $1
	`

	result, err := q.Exec(ctx, query,
		user.ID, user.PasswordHash, user.IsAdmin, user.IsActive, user.LastLoginAt,
	)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("user", user.ID.String())
	}

	return nil
}
