package sqlite

import (
	"context"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"
	"storefront/internal/errors"
	"storefront/internal/infra/persistence/model"

	"gorm.io/gorm"
)

type productSizeRepository struct {
	db *gorm.DB
}

// NewProductSizeRepository creates a GORM-backed product size repository.
func NewProductSizeRepository(db *gorm.DB) repository.ProductSizeRepository {
	return &productSizeRepository{db: db}
}

func (r *productSizeRepository) Create(ctx context.Context, size *entity.ProductSize) error {
	m := model.ProductSizeFromEntity(size)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return errors.Wrap(err, "create product size")
	}
	size.ID = m.ID
	size.CreatedAt = m.CreatedAt
	size.UpdatedAt = m.UpdatedAt

	return nil
}

func (r *productSizeRepository) FindByID(ctx context.Context, id uint) (*entity.ProductSize, error) {
	var m model.ProductSize
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProductSizeNotFound
		}
		return nil, errors.Wrap(err, "find product size by id")
	}

	return m.ToEntity(), nil
}

func (r *productSizeRepository) ListByProduct(ctx context.Context, productID uint) ([]*entity.ProductSize, error) {
	var ms []model.ProductSize
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("id").
		Find(&ms).Error
	if err != nil {
		return nil, errors.Wrap(err, "list product sizes")
	}

	sizes := make([]*entity.ProductSize, 0, len(ms))
	for i := range ms {
		sizes = append(sizes, ms[i].ToEntity())
	}

	return sizes, nil
}

func (r *productSizeRepository) ListUniqueSizes(ctx context.Context) ([]string, error) {
	var sizes []string
	err := r.db.WithContext(ctx).
		Model(&model.ProductSize{}).
		Distinct("size").
		Order("size").
		Pluck("size", &sizes).Error
	if err != nil {
		return nil, errors.Wrap(err, "list unique sizes")
	}

	return sizes, nil
}

func (r *productSizeRepository) Update(ctx context.Context, size *entity.ProductSize) error {
	result := r.db.WithContext(ctx).
		Model(&model.ProductSize{}).
		Where("id = ?", size.ID).
		Updates(map[string]any{
			"size":  size.Size,
			"price": size.Price,
			"image": size.Image,
		})
	if result.Error != nil {
		return errors.Wrap(result.Error, "update product size")
	}
	if result.RowsAffected == 0 {
		return repository.ErrProductSizeNotFound
	}

	return nil
}

func (r *productSizeRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&model.ProductSize{}, id)
	if result.Error != nil {
		return errors.Wrap(result.Error, "delete product size")
	}
	if result.RowsAffected == 0 {
		return repository.ErrProductSizeNotFound
	}

	return nil
}
