package repository

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/pkg/errors"
)

// Domain-specific errors for refresh token persistence.
var (
	// ErrRefreshTokenNotFound is returned when a refresh token record is not found.
	ErrRefreshTokenNotFound = errors.New("refresh token not found")
)

// RefreshTokenRepository defines the interface for refresh token session
// management. Raw token values never reach this layer; callers store and
// match against one-way hashes only.
type RefreshTokenRepository interface {
	// Create persists a new refresh token record for a user session.
	Create(ctx context.Context, token *entity.RefreshToken) error

	// FindByID retrieves a refresh token record by its unique ID.
	FindByID(ctx context.Context, id uint) (*entity.RefreshToken, error)

	// FindActive retrieves all non-revoked, non-expired token records.
	// Matching a presented raw token is a linear scan over this set with a
	// constant-time hash verification per candidate; there is deliberately
	// no plaintext-indexed lookup.
	FindActive(ctx context.Context) ([]*entity.RefreshToken, error)

	// List returns all token records ordered by creation, newest first.
	List(ctx context.Context) ([]*entity.RefreshToken, error)

	// Revoke flips the revoked flag on a record. The flag is monotonic.
	Revoke(ctx context.Context, id uint) error

	// DeleteInactive removes rows that are expired or revoked. Used by the
	// maintenance worker; returns the number of rows removed.
	DeleteInactive(ctx context.Context) (int64, error)
}
