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

func newCategoryFixture(t *testing.T) (usecase.CategoryUsecase, *memStore, *spyExporter) {
	t.Helper()

	store := newMemStore()
	exporter := &spyExporter{}
	svc := NewCategoryService(newMemTxManager(store), exporter, newDiscardLogger())

	return svc, store, exporter
}

func TestCategoryService_CreateTriggersExport(t *testing.T) {
	svc, _, exporter := newCategoryFixture(t)

	category, err := svc.CreateCategory(context.Background(), usecase.CategoryInput{Name: "Drinks"})
	require.NoError(t, err)
	assert.NotZero(t, category.ID)
	assert.Equal(t, 1, exporter.mutationExports())
}

func TestCategoryService_CreateRejectsEmptyName(t *testing.T) {
	svc, store, exporter := newCategoryFixture(t)

	_, err := svc.CreateCategory(context.Background(), usecase.CategoryInput{Name: ""})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrValidation))
	assert.Empty(t, store.categories, "nothing persisted")
	assert.Zero(t, exporter.mutationExports(), "no export on failed mutation")
}

func TestCategoryService_CreateRejectsDuplicateName(t *testing.T) {
	svc, _, _ := newCategoryFixture(t)

	_, err := svc.CreateCategory(context.Background(), usecase.CategoryInput{Name: "Drinks"})
	require.NoError(t, err)

	_, err = svc.CreateCategory(context.Background(), usecase.CategoryInput{Name: "Drinks"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrConflict))
}

func TestCategoryService_SoftDeleteAndRestore(t *testing.T) {
	svc, _, exporter := newCategoryFixture(t)

	category, err := svc.CreateCategory(context.Background(), usecase.CategoryInput{Name: "Drinks"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteCategory(context.Background(), category.ID))

	_, err = svc.GetCategory(context.Background(), category.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrNotFound), "deleted category is hidden from reads")

	restored, err := svc.RestoreCategory(context.Background(), category.ID)
	require.NoError(t, err)
	assert.Nil(t, restored.DeletedAt)

	got, err := svc.GetCategory(context.Background(), category.ID)
	require.NoError(t, err)
	assert.Equal(t, "Drinks", got.Name)

	// create + delete + restore
	assert.Equal(t, 3, exporter.mutationExports())
}

func TestCategoryService_RestoreRejectsLiveCategory(t *testing.T) {
	svc, _, _ := newCategoryFixture(t)

	category, err := svc.CreateCategory(context.Background(), usecase.CategoryInput{Name: "Drinks"})
	require.NoError(t, err)

	_, err = svc.RestoreCategory(context.Background(), category.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrValidation))
}

func TestCategoryService_UpdateMissingCategory(t *testing.T) {
	svc, _, exporter := newCategoryFixture(t)

	_, err := svc.UpdateCategory(context.Background(), 42, usecase.CategoryInput{Name: "X"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrNotFound))
	assert.Zero(t, exporter.mutationExports())
}
