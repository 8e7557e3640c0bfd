package repository

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/pkg/errors"
)

// Domain-specific errors for category persistence.
var (
	// ErrCategoryNotFound is returned when a category is not found.
	ErrCategoryNotFound = errors.New("category not found")
	// ErrDuplicateCategory is returned when the unique name constraint is violated.
	ErrDuplicateCategory = errors.New("category name already exists")
)

// CategoryRepository defines the interface for category persistence.
// Reads exclude soft-deleted rows unless stated otherwise.
type CategoryRepository interface {
	// Create persists a new category. A duplicate name surfaces as
	// ErrDuplicateCategory.
	Create(ctx context.Context, category *entity.Category) error

	// FindByID retrieves a non-deleted category by primary key.
	FindByID(ctx context.Context, id uint) (*entity.Category, error)

	// FindByName retrieves a non-deleted category by its unique name.
	FindByName(ctx context.Context, name string) (*entity.Category, error)

	// List returns all non-deleted categories ordered by id.
	List(ctx context.Context) ([]*entity.Category, error)

	// Update persists changes to name and description.
	Update(ctx context.Context, category *entity.Category) error

	// SoftDelete marks the category deleted. The row remains and can be
	// restored.
	SoftDelete(ctx context.Context, id uint) error

	// Restore clears the deletion marker on a soft-deleted category.
	Restore(ctx context.Context, id uint) error

	// FindAnyByID retrieves a category by primary key including
	// soft-deleted rows. Used by restore.
	FindAnyByID(ctx context.Context, id uint) (*entity.Category, error)
}
