package sqlite

import (
	"context"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"
	"storefront/internal/errors"
	"storefront/internal/infra/persistence/model"

	"gorm.io/gorm"
)

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a GORM-backed product repository.
func NewProductRepository(db *gorm.DB) repository.ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(ctx context.Context, product *entity.Product) error {
	m := model.ProductFromEntity(product)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return errors.Wrap(err, "create product")
	}
	product.ID = m.ID
	product.CreatedAt = m.CreatedAt
	product.UpdatedAt = m.UpdatedAt

	return nil
}

func (r *productRepository) FindByID(ctx context.Context, id uint) (*entity.Product, error) {
	var m model.Product
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Sizes", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		First(&m, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProductNotFound
		}
		return nil, errors.Wrap(err, "find product by id")
	}

	return m.ToEntity(), nil
}

func (r *productRepository) List(ctx context.Context) ([]*entity.Product, error) {
	var ms []model.Product
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Sizes", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Order("display_order, id").
		Find(&ms).Error
	if err != nil {
		return nil, errors.Wrap(err, "list products")
	}

	products := make([]*entity.Product, 0, len(ms))
	for i := range ms {
		products = append(products, ms[i].ToEntity())
	}

	return products, nil
}

func (r *productRepository) Update(ctx context.Context, product *entity.Product) error {
	result := r.db.WithContext(ctx).
		Model(&model.Product{}).
		Where("id = ?", product.ID).
		Updates(map[string]any{
			"name":          product.Name,
			"description":   product.Description,
			"price":         product.Price,
			"image":         product.Image,
			"category_id":   product.CategoryID,
			"display_order": product.DisplayOrder,
		})
	if result.Error != nil {
		return errors.Wrap(result.Error, "update product")
	}
	if result.RowsAffected == 0 {
		return repository.ErrProductNotFound
	}

	return nil
}

func (r *productRepository) SoftDelete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&model.Product{}, id)
	if result.Error != nil {
		return errors.Wrap(result.Error, "soft delete product")
	}
	if result.RowsAffected == 0 {
		return repository.ErrProductNotFound
	}

	return nil
}
