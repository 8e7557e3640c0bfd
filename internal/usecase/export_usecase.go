package usecase

import (
	"context"

	"storefront/internal/domain/entity"
)

// ExportResult describes a completed snapshot export.
type ExportResult struct {
	Path          string
	Version       int64
	ProductCount  int
	CategoryCount int
}

// ExportUsecase defines the interface for publishing the catalog snapshot.
type ExportUsecase interface {
	// Export regenerates the snapshot document from the database and
	// writes it out, returning what was written.
	Export(ctx context.Context) (*ExportResult, error)

	// ExportAfterMutation regenerates the snapshot after a successful
	// catalog mutation. Failures are logged and swallowed so the mutation
	// that already committed still succeeds from the caller's view.
	ExportAfterMutation(ctx context.Context)

	// SetCarouselVisibility toggles the carousel flag stored only in the
	// snapshot document, bumping its version.
	SetCarouselVisibility(ctx context.Context, visible bool) (*ExportResult, error)

	// Document assembles the snapshot from the database on demand without
	// writing it to disk. Serves the public export read.
	Document(ctx context.Context) (*entity.Snapshot, error)
}
