package usecase

import (
	"context"

	"storefront/internal/domain/entity"
)

// SettingValue is the read result for a single setting. Value is nil when
// no row exists for the key; the storefront treats absent settings as
// unset rather than as errors.
type SettingValue struct {
	Key   string
	Value *string
}

// SettingsUsecase defines the interface for site settings management.
// Changing a key the storefront renders from the snapshot (whatsapp
// number, price visibility) triggers an export.
type SettingsUsecase interface {
	// GetSetting retrieves a setting by key. A missing key is not an
	// error; it yields a nil Value.
	GetSetting(ctx context.Context, key string) (*SettingValue, error)
	ListSettings(ctx context.Context) ([]*entity.Setting, error)
	UpsertSetting(ctx context.Context, key, value string) (*entity.Setting, error)
}
