package impl

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/errors"
	"storefront/internal/usecase"
)

func newSettingsFixture(t *testing.T) (usecase.SettingsUsecase, *spyExporter) {
	t.Helper()

	store := newMemStore()
	exporter := &spyExporter{}

	return NewSettingsService(newMemTxManager(store), exporter, newDiscardLogger()), exporter
}

func TestSettingsService_UpsertCreatesAndReplaces(t *testing.T) {
	svc, _ := newSettingsFixture(t)

	created, err := svc.UpsertSetting(context.Background(), "store_name", "Corner Shop")
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	_, err = svc.UpsertSetting(context.Background(), "store_name", "New Name")
	require.NoError(t, err)

	got, err := svc.GetSetting(context.Background(), "store_name")
	require.NoError(t, err)
	require.NotNil(t, got.Value)
	assert.Equal(t, "New Name", *got.Value)

	listed, err := svc.ListSettings(context.Background())
	require.NoError(t, err)
	assert.Len(t, listed, 1)
}

func TestSettingsService_ExportOnlyForSnapshotKeys(t *testing.T) {
	svc, exporter := newSettingsFixture(t)

	_, err := svc.UpsertSetting(context.Background(), "store_name", "Corner Shop")
	require.NoError(t, err)
	assert.Zero(t, exporter.mutationExports(), "plain settings do not trigger export")

	_, err = svc.UpsertSetting(context.Background(), "whatsapp_number", "+123")
	require.NoError(t, err)
	assert.Equal(t, 1, exporter.mutationExports())

	_, err = svc.UpsertSetting(context.Background(), "show_prices", "false")
	require.NoError(t, err)
	assert.Equal(t, 2, exporter.mutationExports())
}

func TestSettingsService_GetMissingKeyResolvesToNilValue(t *testing.T) {
	svc, _ := newSettingsFixture(t)

	got, err := svc.GetSetting(context.Background(), "nope")
	require.NoError(t, err)
	assert.Equal(t, "nope", got.Key)
	assert.Nil(t, got.Value)
}

func TestSettingsService_UpsertRejectsEmptyKey(t *testing.T) {
	svc, _ := newSettingsFixture(t)

	_, err := svc.UpsertSetting(context.Background(), "", "x")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrValidation))
}
