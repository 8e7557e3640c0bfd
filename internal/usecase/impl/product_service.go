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

// productService implements the ProductUsecase interface.
type productService struct {
	txManager repository.TransactionManager
	exporter  usecase.ExportUsecase
	logger    *slog.Logger
}

// NewProductService is the constructor for productService.
func NewProductService(
	txManager repository.TransactionManager,
	exporter usecase.ExportUsecase,
	logger *slog.Logger,
) usecase.ProductUsecase {
	return &productService{
		txManager: txManager,
		exporter:  exporter,
		logger:    logger,
	}
}

func (srv *productService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func validateProductInput(input usecase.ProductInput) error {
	if input.Name == "" {
		return errors.Wrap(domainerrors.ErrValidation, "product name is required")
	}
	if input.Price < 0 {
		return errors.Wrap(domainerrors.ErrValidation, "price must not be negative")
	}

	return nil
}

func validateSizeInput(input usecase.ProductSizeInput) error {
	if input.Size == "" {
		return errors.Wrap(domainerrors.ErrValidation, "size name is required")
	}
	if input.Price < 0 {
		return errors.Wrap(domainerrors.ErrValidation, "price must not be negative")
	}

	return nil
}

// CreateProduct creates a product and re-exports the snapshot. A category
// reference must point at an existing non-deleted category.
func (srv *productService) CreateProduct(ctx context.Context, input usecase.ProductInput) (*entity.Product, error) {
	if err := validateProductInput(input); err != nil {
		return nil, err
	}

	product := &entity.Product{
		Name:         input.Name,
		Description:  input.Description,
		Price:        input.Price,
		Image:        input.Image,
		CategoryID:   input.CategoryID,
		DisplayOrder: input.DisplayOrder,
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := srv.checkCategoryRef(ctx, repoFactory, input.CategoryID); err != nil {
			return err
		}

		if err := repoFactory.ProductRepo().Create(ctx, product); err != nil {
			return errors.Wrap(err, "failed to create product")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to create product", slog.Any("error", err), slog.String("name", input.Name))

		return nil, err
	}
	srv.log(ctx).Info("Created product", slog.Uint64("product_id", uint64(product.ID)))

	srv.exporter.ExportAfterMutation(ctx)

	return product, nil
}

// GetProduct retrieves a product with category and sizes.
func (srv *productService) GetProduct(ctx context.Context, id uint) (*entity.Product, error) {
	var product *entity.Product

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var err error
		product, err = repoFactory.ProductRepo().FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return errors.Wrap(domainerrors.ErrNotFound, "product not found")
			}

			return errors.Wrap(err, "failed to find product")
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return product, nil
}

// ListProducts returns all non-deleted products ordered for display.
func (srv *productService) ListProducts(ctx context.Context) ([]*entity.Product, error) {
	var products []*entity.Product

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var err error
		products, err = repoFactory.ProductRepo().List(ctx)
		if err != nil {
			return errors.Wrap(err, "failed to list products")
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return products, nil
}

// UpdateProduct replaces the product's fields, then re-exports.
func (srv *productService) UpdateProduct(ctx context.Context, id uint, input usecase.ProductInput) (*entity.Product, error) {
	if err := validateProductInput(input); err != nil {
		return nil, err
	}

	var product *entity.Product

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		productRepo := repoFactory.ProductRepo()

		existing, err := productRepo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return errors.Wrap(domainerrors.ErrNotFound, "product not found")
			}

			return errors.Wrap(err, "failed to find product")
		}

		if err := srv.checkCategoryRef(ctx, repoFactory, input.CategoryID); err != nil {
			return err
		}

		existing.Name = input.Name
		existing.Description = input.Description
		existing.Price = input.Price
		existing.Image = input.Image
		existing.CategoryID = input.CategoryID
		existing.DisplayOrder = input.DisplayOrder

		if err := productRepo.Update(ctx, existing); err != nil {
			return errors.Wrap(err, "failed to update product")
		}

		// Re-read so the returned product carries fresh associations.
		product, err = productRepo.FindByID(ctx, id)
		if err != nil {
			return errors.Wrap(err, "failed to reload product")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to update product", slog.Any("error", err), slog.Uint64("product_id", uint64(id)))

		return nil, err
	}
	srv.log(ctx).Info("Updated product", slog.Uint64("product_id", uint64(id)))

	srv.exporter.ExportAfterMutation(ctx)

	return product, nil
}

// DeleteProduct soft-deletes the product, then re-exports.
func (srv *productService) DeleteProduct(ctx context.Context, id uint) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.ProductRepo().SoftDelete(ctx, id); err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return errors.Wrap(domainerrors.ErrNotFound, "product not found")
			}

			return errors.Wrap(err, "failed to delete product")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to delete product", slog.Any("error", err), slog.Uint64("product_id", uint64(id)))

		return err
	}
	srv.log(ctx).Info("Deleted product", slog.Uint64("product_id", uint64(id)))

	srv.exporter.ExportAfterMutation(ctx)

	return nil
}

// AddProductSize creates a size variant on a product, then re-exports.
func (srv *productService) AddProductSize(ctx context.Context, productID uint, input usecase.ProductSizeInput) (*entity.ProductSize, error) {
	if err := validateSizeInput(input); err != nil {
		return nil, err
	}

	size := &entity.ProductSize{
		ProductID: productID,
		Size:      input.Size,
		Price:     input.Price,
		Image:     input.Image,
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if _, err := repoFactory.ProductRepo().FindByID(ctx, productID); err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return errors.Wrap(domainerrors.ErrNotFound, "product not found")
			}

			return errors.Wrap(err, "failed to find product")
		}

		if err := repoFactory.ProductSizeRepo().Create(ctx, size); err != nil {
			return errors.Wrap(err, "failed to create product size")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to add product size", slog.Any("error", err), slog.Uint64("product_id", uint64(productID)))

		return nil, err
	}
	srv.log(ctx).Info("Added product size", slog.Uint64("size_id", uint64(size.ID)))

	srv.exporter.ExportAfterMutation(ctx)

	return size, nil
}

// ListProductSizes returns a product's size variants in creation order.
func (srv *productService) ListProductSizes(ctx context.Context, productID uint) ([]*entity.ProductSize, error) {
	var sizes []*entity.ProductSize

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if _, err := repoFactory.ProductRepo().FindByID(ctx, productID); err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return errors.Wrap(domainerrors.ErrNotFound, "product not found")
			}

			return errors.Wrap(err, "failed to find product")
		}

		var err error
		sizes, err = repoFactory.ProductSizeRepo().ListByProduct(ctx, productID)
		if err != nil {
			return errors.Wrap(err, "failed to list product sizes")
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return sizes, nil
}

// UpdateProductSize updates a size variant, then re-exports. The variant
// must belong to the product named in the path.
func (srv *productService) UpdateProductSize(ctx context.Context, productID, sizeID uint, input usecase.ProductSizeInput) (*entity.ProductSize, error) {
	if err := validateSizeInput(input); err != nil {
		return nil, err
	}

	var size *entity.ProductSize

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		sizeRepo := repoFactory.ProductSizeRepo()

		existing, err := srv.findOwnedSize(ctx, sizeRepo, productID, sizeID)
		if err != nil {
			return err
		}

		existing.Size = input.Size
		existing.Price = input.Price
		existing.Image = input.Image

		if err := sizeRepo.Update(ctx, existing); err != nil {
			return errors.Wrap(err, "failed to update product size")
		}
		size = existing

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to update product size", slog.Any("error", err), slog.Uint64("size_id", uint64(sizeID)))

		return nil, err
	}
	srv.log(ctx).Info("Updated product size", slog.Uint64("size_id", uint64(sizeID)))

	srv.exporter.ExportAfterMutation(ctx)

	return size, nil
}

// DeleteProductSize removes a size variant, then re-exports.
func (srv *productService) DeleteProductSize(ctx context.Context, productID, sizeID uint) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		sizeRepo := repoFactory.ProductSizeRepo()

		if _, err := srv.findOwnedSize(ctx, sizeRepo, productID, sizeID); err != nil {
			return err
		}

		if err := sizeRepo.Delete(ctx, sizeID); err != nil {
			return errors.Wrap(err, "failed to delete product size")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to delete product size", slog.Any("error", err), slog.Uint64("size_id", uint64(sizeID)))

		return err
	}
	srv.log(ctx).Info("Deleted product size", slog.Uint64("size_id", uint64(sizeID)))

	srv.exporter.ExportAfterMutation(ctx)

	return nil
}

// ListUniqueSizes returns the distinct size names across the catalog.
func (srv *productService) ListUniqueSizes(ctx context.Context) ([]string, error) {
	var sizes []string

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var err error
		sizes, err = repoFactory.ProductSizeRepo().ListUniqueSizes(ctx)
		if err != nil {
			return errors.Wrap(err, "failed to list unique sizes")
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return sizes, nil
}

// checkCategoryRef rejects references to missing or soft-deleted
// categories. A nil reference is fine; products may be uncategorized.
func (srv *productService) checkCategoryRef(ctx context.Context, repoFactory repository.RepositoryFactory, categoryID *uint) error {
	if categoryID == nil {
		return nil
	}

	if _, err := repoFactory.CategoryRepo().FindByID(ctx, *categoryID); err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return errors.Wrap(domainerrors.ErrValidation, "category does not exist")
		}

		return errors.Wrap(err, "failed to check category")
	}

	return nil
}

func (srv *productService) findOwnedSize(ctx context.Context, sizeRepo repository.ProductSizeRepository, productID, sizeID uint) (*entity.ProductSize, error) {
	existing, err := sizeRepo.FindByID(ctx, sizeID)
	if err != nil {
		if errors.Is(err, repository.ErrProductSizeNotFound) {
			return nil, errors.Wrap(domainerrors.ErrNotFound, "product size not found")
		}

		return nil, errors.Wrap(err, "failed to find product size")
	}
	if existing.ProductID != productID {
		return nil, errors.Wrap(domainerrors.ErrNotFound, "product size not found on this product")
	}

	return existing, nil
}
