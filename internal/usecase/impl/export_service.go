// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/infra/snapshot"
	"storefront/internal/usecase"

	"github.com/pkg/errors"
)

// exportService implements the ExportUsecase interface. It is the single
// writer of the snapshot document; the version guard below assumes that.
type exportService struct {
	txManager repository.TransactionManager
	store     *snapshot.Store
	logger    *slog.Logger

	// versionMu serializes exports so the written version is strictly
	// increasing even when two mutations land in the same millisecond.
	versionMu   sync.Mutex
	lastVersion int64
}

// NewExportService is the constructor for exportService.
func NewExportService(
	txManager repository.TransactionManager,
	store *snapshot.Store,
	logger *slog.Logger,
) usecase.ExportUsecase {
	return &exportService{
		txManager: txManager,
		store:     store,
		logger:    logger,
	}
}

func (srv *exportService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Export regenerates the snapshot document from the database and writes it.
func (srv *exportService) Export(ctx context.Context) (*usecase.ExportResult, error) {
	srv.versionMu.Lock()
	defer srv.versionMu.Unlock()

	result, err := srv.export(ctx)
	if err != nil {
		srv.log(ctx).Error("Failed to export snapshot", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to export snapshot")
	}
	srv.log(ctx).Info("Exported snapshot",
		slog.String("path", result.Path),
		slog.Int64("version", result.Version),
		slog.Int("products", result.ProductCount),
		slog.Int("categories", result.CategoryCount))

	return result, nil
}

// ExportAfterMutation regenerates the snapshot after a committed catalog
// mutation. The mutation already succeeded, so an export failure is logged
// and swallowed rather than turned into a request error.
func (srv *exportService) ExportAfterMutation(ctx context.Context) {
	if _, err := srv.Export(ctx); err != nil {
		srv.log(ctx).Warn("Snapshot export after mutation failed", slog.Any("error", err))
	}
}

// SetCarouselVisibility rewrites the snapshot with the carousel flag
// flipped. The flag lives only in the document, so this is a full
// re-export with the new value overriding the carried-forward one.
func (srv *exportService) SetCarouselVisibility(ctx context.Context, visible bool) (*usecase.ExportResult, error) {
	srv.versionMu.Lock()
	defer srv.versionMu.Unlock()

	value := "false"
	if visible {
		value = "true"
	}

	result, err := srv.exportWithOverrides(ctx, map[string]string{entity.SettingShowCarousel: value})
	if err != nil {
		srv.log(ctx).Error("Failed to update carousel visibility", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to update carousel visibility")
	}
	srv.log(ctx).Info("Updated carousel visibility",
		slog.String("show_carousel", value),
		slog.Int64("version", result.Version))

	return result, nil
}

// Document assembles a fresh snapshot for direct reads without touching
// the file on disk. The carousel flag is still carried forward from the
// written document, matching what a subsequent export would publish.
func (srv *exportService) Document(ctx context.Context) (*entity.Snapshot, error) {
	srv.versionMu.Lock()
	defer srv.versionMu.Unlock()

	categories, products, settings, err := srv.readCatalog(ctx)
	if err != nil {
		return nil, err
	}

	return srv.assemble(categories, products, settings, nil), nil
}

func (srv *exportService) export(ctx context.Context) (*usecase.ExportResult, error) {
	return srv.exportWithOverrides(ctx, nil)
}

// readCatalog loads everything the snapshot projects in one transaction.
func (srv *exportService) readCatalog(ctx context.Context) ([]*entity.Category, []*entity.Product, []*entity.Setting, error) {
	var (
		categories []*entity.Category
		products   []*entity.Product
		settings   []*entity.Setting
	)

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var err error
		if categories, err = repoFactory.CategoryRepo().List(ctx); err != nil {
			return errors.Wrap(err, "failed to list categories")
		}
		if products, err = repoFactory.ProductRepo().List(ctx); err != nil {
			return errors.Wrap(err, "failed to list products")
		}
		if settings, err = repoFactory.SettingsRepo().List(ctx); err != nil {
			return errors.Wrap(err, "failed to list settings")
		}

		return nil
	})
	if err != nil {
		return nil, nil, nil, errors.Wrap(domainerrors.ErrStore, err.Error())
	}

	return categories, products, settings, nil
}

// exportWithOverrides does the read-merge-write cycle. Callers hold
// versionMu.
func (srv *exportService) exportWithOverrides(ctx context.Context, overrides map[string]string) (*usecase.ExportResult, error) {
	categories, products, settings, err := srv.readCatalog(ctx)
	if err != nil {
		return nil, err
	}

	snap := srv.assemble(categories, products, settings, overrides)

	path, err := srv.store.Write(snap)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrStore, err.Error())
	}

	return &usecase.ExportResult{
		Path:          path,
		Version:       snap.Version,
		ProductCount:  len(snap.Products),
		CategoryCount: len(snap.Categories),
	}, nil
}

func (srv *exportService) assemble(
	categories []*entity.Category,
	products []*entity.Product,
	settings []*entity.Setting,
	overrides map[string]string,
) *entity.Snapshot {
	now := time.Now()

	snap := &entity.Snapshot{
		Version:     srv.nextVersion(now),
		LastUpdated: now.UTC().Format(time.RFC3339),
		Settings:    srv.mergeSettings(settings, overrides),
		Categories:  make([]entity.SnapshotCategory, 0, len(categories)),
		Products:    make([]entity.SnapshotProduct, 0, len(products)),
	}

	for _, category := range categories {
		snap.Categories = append(snap.Categories, entity.SnapshotCategory{
			ID:          category.ID,
			Name:        category.Name,
			Description: category.Description,
		})
	}

	for _, product := range products {
		snap.Products = append(snap.Products, srv.projectProduct(product))
	}

	return snap
}

// mergeSettings flattens the settings table into the snapshot map and
// carries forward document-only keys from the previous export. The
// carousel flag defaults to "false" when no previous document exists.
func (srv *exportService) mergeSettings(settings []*entity.Setting, overrides map[string]string) map[string]string {
	merged := map[string]string{entity.SettingShowCarousel: "false"}

	if previous, err := srv.store.Read(); err == nil {
		if v, ok := previous.Settings[entity.SettingShowCarousel]; ok {
			merged[entity.SettingShowCarousel] = v
		}
	}

	for _, setting := range settings {
		merged[setting.Key] = setting.Value
	}

	for key, value := range overrides {
		merged[key] = value
	}

	return merged
}

func (srv *exportService) projectProduct(product *entity.Product) entity.SnapshotProduct {
	p := entity.SnapshotProduct{
		ID:          product.ID,
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price,
		Image:       imageBasename(product.Image),
		CategoryID:  product.CategoryID,
		Sizes:       make([]entity.SnapshotSize, 0, len(product.Sizes)),
	}

	if product.Category != nil {
		p.Category = &entity.SnapshotCategoryRef{
			ID:   product.Category.ID,
			Name: product.Category.Name,
		}
	}

	for _, size := range product.Sizes {
		p.Sizes = append(p.Sizes, entity.SnapshotSize{
			ID:    size.ID,
			Size:  size.Size,
			Price: size.Price,
			Image: imageBasename(size.Image),
		})
	}

	return p
}

// nextVersion returns the export time in Unix milliseconds, bumped past
// the previous value when two exports land in the same millisecond.
func (srv *exportService) nextVersion(now time.Time) int64 {
	version := now.UnixMilli()
	if version <= srv.lastVersion {
		version = srv.lastVersion + 1
	}
	srv.lastVersion = version

	return version
}

// imageBasename reduces a stored image path to its file name, which is all
// the static storefront needs to build its own URL. Empty paths become
// JSON null.
func imageBasename(path string) *string {
	if path == "" {
		return nil
	}
	base := filepath.Base(path)

	return &base
}
