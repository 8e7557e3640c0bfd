package entity

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// RefreshToken is the server-side record proving a refresh token was
// legitimately issued. Only a one-way hash of the raw token is stored, so a
// database leak does not directly yield usable credentials. The revoked flag
// is monotonic: once true it never flips back.
type RefreshToken struct {
	ID        uint      // The unique ID for this token record.
	UserID    uint      // Links this session to the User it belongs to.
	TokenHash string    // Slow, salted hash of the raw refresh token. The raw value is never stored.
	Revoked   bool      // Set on rotation or logout; revoked tokens are excluded from matching.
	ExpiresAt time.Time // Expiry computed from the configured TTL, independent of the signed claim.
	CreatedAt time.Time // Timestamp of when this session was created.
}

// Active reports whether the token can still be exchanged.
func (t *RefreshToken) Active(now time.Time) bool {
	return !t.Revoked && t.ExpiresAt.After(now)
}

// AccessClaims is the payload embedded in a signed access token. It is
// ephemeral: trusted on signature alone, never persisted.
type AccessClaims struct {
	UserID uint   `json:"id"`
	Email  string `json:"email"`
	Role   Role   `json:"role"`
	jwt.RegisteredClaims
}

// RefreshClaims is the minimal payload embedded in a signed refresh token.
type RefreshClaims struct {
	UserID uint `json:"id"`
	jwt.RegisteredClaims
}

// TokenPair is the result of issuing or rotating a session.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}
