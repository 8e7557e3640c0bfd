// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/pkg/errors"
)

// Domain-specific errors for user persistence.
var (
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrDuplicateUser is returned when username or email collides with an existing row.
	ErrDuplicateUser = errors.New("username or email already taken")
)

// UserRepository defines the interface for user identity persistence.
type UserRepository interface {
	// Create persists a new user. Unique constraints on username and email
	// surface as ErrDuplicateUser.
	Create(ctx context.Context, user *entity.User) error

	// FindByID retrieves a user by primary key.
	FindByID(ctx context.Context, id uint) (*entity.User, error)

	// FindByIdentifier retrieves a user whose email OR username equals the
	// given identifier. Login accepts either.
	FindByIdentifier(ctx context.Context, identifier string) (*entity.User, error)

	// List returns all users ordered by id.
	List(ctx context.Context) ([]*entity.User, error)

	// UpdatePassword replaces the stored password hash for a user.
	UpdatePassword(ctx context.Context, id uint, passwordHash string) error
}
