// Package service defines interfaces for core, stateless domain logic.
// These services encapsulate business rules that don't naturally fit within a single entity.
package service

// PasswordHasher defines the interface for password hashing and verification.
// This abstracts the underlying hashing algorithm (e.g., bcrypt), keeping the domain pure.
// The same slow, salted primitive protects both login passwords and stored
// refresh-token hashes.
type PasswordHasher interface {
	// Hash generates a salted hash from a plaintext password.
	Hash(password string) (string, error)

	// Check compares a plaintext password with a hash to see if they match.
	Check(password, hash string) bool

	// HashToken generates a salted hash of a raw token value. Tokens can
	// exceed bcrypt's input limit, so implementations digest them first.
	HashToken(raw string) (string, error)

	// CheckToken compares a raw token value with a stored token hash.
	CheckToken(raw, hash string) bool
}
