package service

import (
	"time"

	"storefront/internal/domain/entity"
)

// TokenService defines the interface for minting and validating signed
// tokens. This abstracts the JWT details from the use cases: issuing a
// session, verifying an access token statelessly, and checking a refresh
// token's signature and expiry.
type TokenService interface {
	// SignAccessToken mints a short-lived access token carrying the user's
	// id, email and role.
	SignAccessToken(user *entity.User) (string, error)

	// SignRefreshToken mints a long-lived refresh token carrying only the
	// user's id.
	SignRefreshToken(userID uint) (string, error)

	// VerifyAccessToken checks signature and expiry of an access token and
	// returns its claims. No database lookup happens here.
	VerifyAccessToken(raw string) (*entity.AccessClaims, error)

	// VerifyRefreshToken checks signature and expiry of a refresh token
	// and returns its claims.
	VerifyRefreshToken(raw string) (*entity.RefreshClaims, error)

	// RefreshTokenDuration returns the configured refresh token lifetime.
	// Stored expiry timestamps are derived from this value, not from the
	// token's own exp claim.
	RefreshTokenDuration() time.Duration
}
