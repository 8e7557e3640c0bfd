package impl

import (
	"context"
	"log/slog"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/usecase"

	"github.com/pkg/errors"
)

// categoryService implements the CategoryUsecase interface.
type categoryService struct {
	txManager repository.TransactionManager
	exporter  usecase.ExportUsecase
	logger    *slog.Logger
}

// NewCategoryService is the constructor for categoryService.
func NewCategoryService(
	txManager repository.TransactionManager,
	exporter usecase.ExportUsecase,
	logger *slog.Logger,
) usecase.CategoryUsecase {
	return &categoryService{
		txManager: txManager,
		exporter:  exporter,
		logger:    logger,
	}
}

func (srv *categoryService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateCategory creates a category and re-exports the snapshot.
func (srv *categoryService) CreateCategory(ctx context.Context, input usecase.CategoryInput) (*entity.Category, error) {
	if input.Name == "" {
		return nil, errors.Wrap(domainerrors.ErrValidation, "category name is required")
	}

	category := &entity.Category{
		Name:        input.Name,
		Description: input.Description,
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.CategoryRepo().Create(ctx, category); err != nil {
			if errors.Is(err, repository.ErrDuplicateCategory) {
				return errors.Wrap(domainerrors.ErrConflict, "category name already exists")
			}

			return errors.Wrap(err, "failed to create category")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to create category", slog.Any("error", err), slog.String("name", input.Name))

		return nil, err
	}
	srv.log(ctx).Info("Created category", slog.Uint64("category_id", uint64(category.ID)))

	srv.exporter.ExportAfterMutation(ctx)

	return category, nil
}

// GetCategory retrieves a single non-deleted category.
func (srv *categoryService) GetCategory(ctx context.Context, id uint) (*entity.Category, error) {
	var category *entity.Category

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var err error
		category, err = repoFactory.CategoryRepo().FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrCategoryNotFound) {
				return errors.Wrap(domainerrors.ErrNotFound, "category not found")
			}

			return errors.Wrap(err, "failed to find category")
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return category, nil
}

// ListCategories returns all non-deleted categories.
func (srv *categoryService) ListCategories(ctx context.Context) ([]*entity.Category, error) {
	var categories []*entity.Category

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var err error
		categories, err = repoFactory.CategoryRepo().List(ctx)
		if err != nil {
			return errors.Wrap(err, "failed to list categories")
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return categories, nil
}

// UpdateCategory updates name and description, then re-exports.
func (srv *categoryService) UpdateCategory(ctx context.Context, id uint, input usecase.CategoryInput) (*entity.Category, error) {
	if input.Name == "" {
		return nil, errors.Wrap(domainerrors.ErrValidation, "category name is required")
	}

	var category *entity.Category

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		categoryRepo := repoFactory.CategoryRepo()

		existing, err := categoryRepo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrCategoryNotFound) {
				return errors.Wrap(domainerrors.ErrNotFound, "category not found")
			}

			return errors.Wrap(err, "failed to find category")
		}

		existing.Name = input.Name
		existing.Description = input.Description
		if err := categoryRepo.Update(ctx, existing); err != nil {
			if errors.Is(err, repository.ErrDuplicateCategory) {
				return errors.Wrap(domainerrors.ErrConflict, "category name already exists")
			}

			return errors.Wrap(err, "failed to update category")
		}
		category = existing

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to update category", slog.Any("error", err), slog.Uint64("category_id", uint64(id)))

		return nil, err
	}
	srv.log(ctx).Info("Updated category", slog.Uint64("category_id", uint64(id)))

	srv.exporter.ExportAfterMutation(ctx)

	return category, nil
}

// DeleteCategory soft-deletes the category, then re-exports. Products keep
// their category id; the snapshot simply stops embedding the category.
func (srv *categoryService) DeleteCategory(ctx context.Context, id uint) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.CategoryRepo().SoftDelete(ctx, id); err != nil {
			if errors.Is(err, repository.ErrCategoryNotFound) {
				return errors.Wrap(domainerrors.ErrNotFound, "category not found")
			}

			return errors.Wrap(err, "failed to delete category")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to delete category", slog.Any("error", err), slog.Uint64("category_id", uint64(id)))

		return err
	}
	srv.log(ctx).Info("Deleted category", slog.Uint64("category_id", uint64(id)))

	srv.exporter.ExportAfterMutation(ctx)

	return nil
}

// RestoreCategory clears the deletion marker on a soft-deleted category,
// then re-exports.
func (srv *categoryService) RestoreCategory(ctx context.Context, id uint) (*entity.Category, error) {
	var category *entity.Category

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		categoryRepo := repoFactory.CategoryRepo()

		existing, err := categoryRepo.FindAnyByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrCategoryNotFound) {
				return errors.Wrap(domainerrors.ErrNotFound, "category not found")
			}

			return errors.Wrap(err, "failed to find category")
		}
		if existing.DeletedAt == nil {
			return errors.Wrap(domainerrors.ErrValidation, "category is not deleted")
		}

		if err := categoryRepo.Restore(ctx, id); err != nil {
			return errors.Wrap(err, "failed to restore category")
		}

		existing.DeletedAt = nil
		category = existing

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to restore category", slog.Any("error", err), slog.Uint64("category_id", uint64(id)))

		return nil, err
	}
	srv.log(ctx).Info("Restored category", slog.Uint64("category_id", uint64(id)))

	srv.exporter.ExportAfterMutation(ctx)

	return category, nil
}
