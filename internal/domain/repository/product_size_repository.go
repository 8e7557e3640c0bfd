package repository

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/pkg/errors"
)

// Domain-specific errors for product size persistence.
var (
	// ErrProductSizeNotFound is returned when a size variant is not found.
	ErrProductSizeNotFound = errors.New("product size not found")
)

// ProductSizeRepository defines the interface for size variant persistence.
type ProductSizeRepository interface {
	// Create persists a new size variant.
	Create(ctx context.Context, size *entity.ProductSize) error

	// FindByID retrieves a size variant by primary key.
	FindByID(ctx context.Context, id uint) (*entity.ProductSize, error)

	// ListByProduct returns all size variants of a product in creation order.
	ListByProduct(ctx context.Context, productID uint) ([]*entity.ProductSize, error)

	// ListUniqueSizes returns the distinct size names across the catalog,
	// sorted ascending.
	ListUniqueSizes(ctx context.Context) ([]string, error)

	// Update persists changes to a size variant.
	Update(ctx context.Context, size *entity.ProductSize) error

	// Delete removes a size variant. Variants are not soft-deleted.
	Delete(ctx context.Context, id uint) error
}
