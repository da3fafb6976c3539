package dto

import (
	"time"

	"billbook/internal/domain/auth"
)

// LoginRequest is the request body for obtaining an access token.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest is the request body for creating a user account.
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3"`
	Password string `json:"password" binding:"required,min=8"`
	IsAdmin  bool   `json:"isAdmin"`
}

// ChangePasswordRequest is the request body for rotating a password.
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}

// SessionResponse carries an issued access token.
type SessionResponse struct {
	AccessToken string    `json:"accessToken"`
	ExpiresAt   time.Time `json:"expiresAt"`
	TokenType   string    `json:"tokenType"`
}

// FromSession creates response DTO from an issued session.
func FromSession(s *auth.Session) *SessionResponse {
	return &SessionResponse{
		AccessToken: s.AccessToken,
		ExpiresAt:   s.ExpiresAt,
		TokenType:   s.TokenType,
	}
}

// UserResponse is the response body for a user account.
type UserResponse struct {
	ID          string     `json:"id"`
	Username    string     `json:"username"`
	IsAdmin     bool       `json:"isAdmin"`
	IsActive    bool       `json:"isActive"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// FromUser creates response DTO from a user account.
func FromUser(u *auth.User) *UserResponse {
	return &UserResponse{
		ID:          u.ID.String(),
		Username:    u.Username,
		IsAdmin:     u.IsAdmin,
		IsActive:    u.IsActive,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
	}
}
