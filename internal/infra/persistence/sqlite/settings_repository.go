package sqlite

import (
	"context"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"
	"storefront/internal/errors"
	"storefront/internal/infra/persistence/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type settingsRepository struct {
	db *gorm.DB
}

// NewSettingsRepository creates a GORM-backed settings repository.
func NewSettingsRepository(db *gorm.DB) repository.SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) FindByKey(ctx context.Context, key string) (*entity.Setting, error) {
	var m model.Setting
	if err := r.db.WithContext(ctx).Where("key = ?", key).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrSettingNotFound
		}
		return nil, errors.Wrap(err, "find setting by key")
	}

	return m.ToEntity(), nil
}

func (r *settingsRepository) List(ctx context.Context) ([]*entity.Setting, error) {
	var ms []model.Setting
	if err := r.db.WithContext(ctx).Order("key").Find(&ms).Error; err != nil {
		return nil, errors.Wrap(err, "list settings")
	}

	settings := make([]*entity.Setting, 0, len(ms))
	for i := range ms {
		settings = append(settings, ms[i].ToEntity())
	}

	return settings, nil
}

func (r *settingsRepository) Upsert(ctx context.Context, setting *entity.Setting) error {
	m := model.SettingFromEntity(setting)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(m).Error
	if err != nil {
		return errors.Wrap(err, "upsert setting")
	}
	setting.ID = m.ID
	setting.UpdatedAt = m.UpdatedAt

	return nil
}
