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

// settingsService implements the SettingsUsecase interface.
type settingsService struct {
	txManager repository.TransactionManager
	exporter  usecase.ExportUsecase
	logger    *slog.Logger
}

// NewSettingsService is the constructor for settingsService.
func NewSettingsService(
	txManager repository.TransactionManager,
	exporter usecase.ExportUsecase,
	logger *slog.Logger,
) usecase.SettingsUsecase {
	return &settingsService{
		txManager: txManager,
		exporter:  exporter,
		logger:    logger,
	}
}

func (srv *settingsService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// GetSetting retrieves a setting by key. A key with no row resolves to a
// nil value so the storefront can treat it as unset.
func (srv *settingsService) GetSetting(ctx context.Context, key string) (*usecase.SettingValue, error) {
	result := &usecase.SettingValue{Key: key}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		setting, err := repoFactory.SettingsRepo().FindByKey(ctx, key)
		if err != nil {
			if errors.Is(err, repository.ErrSettingNotFound) {
				return nil
			}

			return errors.Wrap(err, "failed to find setting")
		}
		result.Value = &setting.Value

		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// ListSettings returns all settings.
func (srv *settingsService) ListSettings(ctx context.Context) ([]*entity.Setting, error) {
	var settings []*entity.Setting

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var err error
		settings, err = repoFactory.SettingsRepo().List(ctx)
		if err != nil {
			return errors.Wrap(err, "failed to list settings")
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return settings, nil
}

// UpsertSetting creates or replaces a setting. Keys the storefront renders
// from the snapshot trigger an export after commit.
func (srv *settingsService) UpsertSetting(ctx context.Context, key, value string) (*entity.Setting, error) {
	if key == "" {
		return nil, errors.Wrap(domainerrors.ErrValidation, "setting key is required")
	}

	setting := &entity.Setting{Key: key, Value: value}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.SettingsRepo().Upsert(ctx, setting); err != nil {
			return errors.Wrap(err, "failed to upsert setting")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to upsert setting", slog.Any("error", err), slog.String("key", key))

		return nil, err
	}
	srv.log(ctx).Info("Upserted setting", slog.String("key", key))

	if exportedSettingKey(key) {
		srv.exporter.ExportAfterMutation(ctx)
	}

	return setting, nil
}

// exportedSettingKey reports whether the storefront renders the key from
// the snapshot document, requiring an immediate re-export.
func exportedSettingKey(key string) bool {
	switch key {
	case entity.SettingWhatsAppNumber, entity.SettingShowPrices:
		return true
	default:
		return false
	}
}
