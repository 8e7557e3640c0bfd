package repository

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/pkg/errors"
)

// Domain-specific errors for product persistence.
var (
	// ErrProductNotFound is returned when a product is not found.
	ErrProductNotFound = errors.New("product not found")
)

// ProductRepository defines the interface for product persistence.
// Reads exclude soft-deleted rows.
type ProductRepository interface {
	// Create persists a new product.
	Create(ctx context.Context, product *entity.Product) error

	// FindByID retrieves a product with its category and sizes preloaded.
	FindByID(ctx context.Context, id uint) (*entity.Product, error)

	// List returns all non-deleted products with category and sizes
	// preloaded, ordered by display order then id.
	List(ctx context.Context) ([]*entity.Product, error)

	// Update persists changes to a product.
	Update(ctx context.Context, product *entity.Product) error

	// SoftDelete marks the product deleted.
	SoftDelete(ctx context.Context, id uint) error
}
