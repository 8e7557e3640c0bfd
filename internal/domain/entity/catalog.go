package entity

import (
	"time"
)

// Category groups products. Deletion is always soft: DeletedAt is set and
// the row disappears from default reads until restored.
type Category struct {
	ID          uint
	Name        string // Unique across non-deleted categories.
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time
}

// Product is a catalog item. The Category association is optional and the
// Image field stores a path whose basename is what the exported snapshot
// exposes.
type Product struct {
	ID           uint
	Name         string
	Description  string
	Price        float64
	Image        string // Path or URL of the primary image; empty when unset.
	CategoryID   *uint
	Category     *Category // Loaded on demand; nil when the product has no category.
	DisplayOrder int
	Sizes        []ProductSize
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    *time.Time
}

// ProductSize is a size variant of a product with its own price and
// optional image. Rows are removed when the owning product is hard-deleted
// (cascade), but product deletion in this API is soft.
type ProductSize struct {
	ID        uint
	ProductID uint
	Size      string
	Price     float64
	Image     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
