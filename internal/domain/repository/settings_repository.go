package repository

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/pkg/errors"
)

// Domain-specific errors for settings persistence.
var (
	// ErrSettingNotFound is returned when a setting key has no row.
	ErrSettingNotFound = errors.New("setting not found")
)

// SettingsRepository defines the interface for site settings persistence.
type SettingsRepository interface {
	// FindByKey retrieves a setting by its unique key.
	FindByKey(ctx context.Context, key string) (*entity.Setting, error)

	// List returns all settings.
	List(ctx context.Context) ([]*entity.Setting, error)

	// Upsert creates the setting or replaces its value if the key exists.
	Upsert(ctx context.Context, setting *entity.Setting) error
}
