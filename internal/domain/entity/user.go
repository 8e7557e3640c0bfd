// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"
)

// User is the identity record for anyone who can authenticate against the
// catalog API. Passwords are never stored in plaintext; only the bcrypt
// hash is persisted.
type User struct {
	ID           uint      // Auto-incrementing primary key.
	Username     string    // Unique login name.
	Email        string    // Unique contact email, also accepted as a login identifier.
	PasswordHash string    // bcrypt hash of the user's password.
	Role         Role      // Either "admin" or "customer".
	CreatedAt    time.Time // Timestamp of when this account was created.
	UpdatedAt    time.Time // Timestamp of the last modification.
}
