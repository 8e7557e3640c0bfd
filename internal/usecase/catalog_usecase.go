package usecase

import (
	"context"

	"storefront/internal/domain/entity"
)

// --- Input DTOs ---

// CategoryInput defines the data for creating or updating a category.
type CategoryInput struct {
	Name        string
	Description string
}

// ProductInput defines the data for creating or updating a product.
type ProductInput struct {
	Name         string
	Description  string
	Price        float64
	Image        string
	CategoryID   *uint
	DisplayOrder int
}

// ProductSizeInput defines the data for creating or updating a size variant.
type ProductSizeInput struct {
	Size  string
	Price float64
	Image string
}

// CategoryUsecase defines the interface for category management.
// Every mutation triggers a snapshot export after commit.
type CategoryUsecase interface {
	CreateCategory(ctx context.Context, input CategoryInput) (*entity.Category, error)
	GetCategory(ctx context.Context, id uint) (*entity.Category, error)
	ListCategories(ctx context.Context) ([]*entity.Category, error)
	UpdateCategory(ctx context.Context, id uint, input CategoryInput) (*entity.Category, error)
	// DeleteCategory soft-deletes the category. Products keep their
	// category reference and resolve it again on restore.
	DeleteCategory(ctx context.Context, id uint) error
	// RestoreCategory brings a soft-deleted category back.
	RestoreCategory(ctx context.Context, id uint) (*entity.Category, error)
}

// ProductUsecase defines the interface for product and size variant
// management. Every mutation triggers a snapshot export after commit.
type ProductUsecase interface {
	CreateProduct(ctx context.Context, input ProductInput) (*entity.Product, error)
	GetProduct(ctx context.Context, id uint) (*entity.Product, error)
	ListProducts(ctx context.Context) ([]*entity.Product, error)
	UpdateProduct(ctx context.Context, id uint, input ProductInput) (*entity.Product, error)
	// DeleteProduct soft-deletes the product. Its size variants stay in
	// place but disappear from the snapshot with the product.
	DeleteProduct(ctx context.Context, id uint) error

	AddProductSize(ctx context.Context, productID uint, input ProductSizeInput) (*entity.ProductSize, error)
	ListProductSizes(ctx context.Context, productID uint) ([]*entity.ProductSize, error)
	UpdateProductSize(ctx context.Context, productID, sizeID uint, input ProductSizeInput) (*entity.ProductSize, error)
	DeleteProductSize(ctx context.Context, productID, sizeID uint) error

	// ListUniqueSizes returns the distinct size names used anywhere in the
	// catalog, sorted ascending.
	ListUniqueSizes(ctx context.Context) ([]string, error)
}
