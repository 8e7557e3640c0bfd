// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"
	"time"

	"storefront/internal/domain/entity"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new account.
// Accounts created through this path are always customers; admin accounts
// come from the bootstrap command only.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// LoginInput defines the data required to log in. Identifier is matched
// against both email and username.
type LoginInput struct {
	Identifier string
	Password   string
}

// ChangePasswordInput defines the data required to change a password.
type ChangePasswordInput struct {
	UserID          uint
	CurrentPassword string
	NewPassword     string
}

// --- Output DTOs ---

// RegisterOutput returns the newly created account's basic information.
type RegisterOutput struct {
	User *entity.User
}

// LoginOutput returns the issued token pair after a successful login.
type LoginOutput struct {
	AccessToken  string
	RefreshToken string
	User         *entity.User
}

// RefreshOutput returns the rotated token pair.
type RefreshOutput struct {
	AccessToken  string
	RefreshToken string
}

// SessionInfo describes one stored refresh token session.
type SessionInfo struct {
	ID        uint
	UserID    uint
	Revoked   bool
	Active    bool
	ExpiresAt time.Time
	CreatedAt time.Time
}

// AuthUsecase defines the interface for authentication and account
// management operations.
type AuthUsecase interface {
	// Register creates a new customer account.
	Register(ctx context.Context, input RegisterInput) (*RegisterOutput, error)

	// Login verifies credentials and issues a fresh token pair. The refresh
	// token's hash is stored server-side.
	Login(ctx context.Context, input LoginInput) (*LoginOutput, error)

	// Refresh rotates a valid refresh token: the presented token is revoked
	// and a new pair is issued. A token that cannot be matched against a
	// stored active session is rejected.
	Refresh(ctx context.Context, rawRefreshToken string) (*RefreshOutput, error)

	// Logout revokes the session matching the presented refresh token. It
	// succeeds even when no session matches, so callers learn nothing about
	// which tokens exist.
	Logout(ctx context.Context, rawRefreshToken string) error

	// ChangePassword verifies the current password and replaces it.
	ChangePassword(ctx context.Context, input ChangePasswordInput) error

	// ListUsers returns all accounts. Admin only at the delivery layer.
	ListUsers(ctx context.Context) ([]*entity.User, error)

	// ListSessions returns all stored refresh token sessions, newest first.
	ListSessions(ctx context.Context) ([]*SessionInfo, error)

	// RevokeSession revokes a session by its record id.
	RevokeSession(ctx context.Context, sessionID uint) error
}
