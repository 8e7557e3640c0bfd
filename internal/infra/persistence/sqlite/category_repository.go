package sqlite

import (
	"context"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"
	"storefront/internal/errors"
	"storefront/internal/infra/persistence/model"

	"gorm.io/gorm"
)

type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a GORM-backed category repository.
func NewCategoryRepository(db *gorm.DB) repository.CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(ctx context.Context, category *entity.Category) error {
	m := model.CategoryFromEntity(category)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return repository.ErrDuplicateCategory
		}
		return errors.Wrap(err, "create category")
	}
	category.ID = m.ID
	category.CreatedAt = m.CreatedAt
	category.UpdatedAt = m.UpdatedAt

	return nil
}

func (r *categoryRepository) FindByID(ctx context.Context, id uint) (*entity.Category, error) {
	var m model.Category
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCategoryNotFound
		}
		return nil, errors.Wrap(err, "find category by id")
	}

	return m.ToEntity(), nil
}

func (r *categoryRepository) FindByName(ctx context.Context, name string) (*entity.Category, error) {
	var m model.Category
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCategoryNotFound
		}
		return nil, errors.Wrap(err, "find category by name")
	}

	return m.ToEntity(), nil
}

func (r *categoryRepository) List(ctx context.Context) ([]*entity.Category, error) {
	var ms []model.Category
	if err := r.db.WithContext(ctx).Order("id").Find(&ms).Error; err != nil {
		return nil, errors.Wrap(err, "list categories")
	}

	categories := make([]*entity.Category, 0, len(ms))
	for i := range ms {
		categories = append(categories, ms[i].ToEntity())
	}

	return categories, nil
}

func (r *categoryRepository) Update(ctx context.Context, category *entity.Category) error {
	result := r.db.WithContext(ctx).
		Model(&model.Category{}).
		Where("id = ?", category.ID).
		Updates(map[string]any{
			"name":        category.Name,
			"description": category.Description,
		})
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return repository.ErrDuplicateCategory
		}
		return errors.Wrap(result.Error, "update category")
	}
	if result.RowsAffected == 0 {
		return repository.ErrCategoryNotFound
	}

	return nil
}

func (r *categoryRepository) SoftDelete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&model.Category{}, id)
	if result.Error != nil {
		return errors.Wrap(result.Error, "soft delete category")
	}
	if result.RowsAffected == 0 {
		return repository.ErrCategoryNotFound
	}

	return nil
}

func (r *categoryRepository) Restore(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).
		Unscoped().
		Model(&model.Category{}).
		Where("id = ?", id).
		Update("deleted_at", nil)
	if result.Error != nil {
		return errors.Wrap(result.Error, "restore category")
	}
	if result.RowsAffected == 0 {
		return repository.ErrCategoryNotFound
	}

	return nil
}

func (r *categoryRepository) FindAnyByID(ctx context.Context, id uint) (*entity.Category, error) {
	var m model.Category
	if err := r.db.WithContext(ctx).Unscoped().First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCategoryNotFound
		}
		return nil, errors.Wrap(err, "find category by id unscoped")
	}

	return m.ToEntity(), nil
}
