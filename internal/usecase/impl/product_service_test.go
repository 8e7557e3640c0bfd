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

func newProductFixture(t *testing.T) (usecase.ProductUsecase, usecase.CategoryUsecase, *spyExporter) {
	t.Helper()

	store := newMemStore()
	exporter := &spyExporter{}
	txManager := newMemTxManager(store)

	return NewProductService(txManager, exporter, newDiscardLogger()),
		NewCategoryService(txManager, exporter, newDiscardLogger()),
		exporter
}

func TestProductService_CreateWithCategory(t *testing.T) {
	products, categories, exporter := newProductFixture(t)

	category, err := categories.CreateCategory(context.Background(), usecase.CategoryInput{Name: "Drinks"})
	require.NoError(t, err)

	product, err := products.CreateProduct(context.Background(), usecase.ProductInput{
		Name:       "Cola",
		Price:      2.5,
		CategoryID: &category.ID,
	})
	require.NoError(t, err)
	assert.NotZero(t, product.ID)
	assert.Equal(t, 2, exporter.mutationExports())
}

func TestProductService_CreateRejectsNegativePrice(t *testing.T) {
	products, _, exporter := newProductFixture(t)

	_, err := products.CreateProduct(context.Background(), usecase.ProductInput{
		Name:  "Cola",
		Price: -1,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrValidation))
	assert.Zero(t, exporter.mutationExports())

	listed, err := products.ListProducts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, listed, "rejected product is not persisted")
}

func TestProductService_CreateRejectsMissingCategory(t *testing.T) {
	products, _, _ := newProductFixture(t)

	missing := uint(99)
	_, err := products.CreateProduct(context.Background(), usecase.ProductInput{
		Name:       "Cola",
		Price:      1,
		CategoryID: &missing,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrValidation))
}

func TestProductService_ListOrdersByDisplayOrder(t *testing.T) {
	products, _, _ := newProductFixture(t)

	_, err := products.CreateProduct(context.Background(), usecase.ProductInput{Name: "B", DisplayOrder: 2})
	require.NoError(t, err)
	_, err = products.CreateProduct(context.Background(), usecase.ProductInput{Name: "A", DisplayOrder: 1})
	require.NoError(t, err)

	listed, err := products.ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, "A", listed[0].Name)
	assert.Equal(t, "B", listed[1].Name)
}

func TestProductService_SoftDeleteHidesProduct(t *testing.T) {
	products, _, _ := newProductFixture(t)

	product, err := products.CreateProduct(context.Background(), usecase.ProductInput{Name: "Cola", Price: 1})
	require.NoError(t, err)

	require.NoError(t, products.DeleteProduct(context.Background(), product.ID))

	_, err = products.GetProduct(context.Background(), product.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrNotFound))

	err = products.DeleteProduct(context.Background(), product.ID)
	require.Error(t, err, "double delete reports not found")
}

func TestProductService_SizeLifecycle(t *testing.T) {
	products, _, exporter := newProductFixture(t)

	product, err := products.CreateProduct(context.Background(), usecase.ProductInput{Name: "Cola", Price: 1})
	require.NoError(t, err)

	size, err := products.AddProductSize(context.Background(), product.ID, usecase.ProductSizeInput{
		Size:  "L",
		Price: 3,
	})
	require.NoError(t, err)
	assert.NotZero(t, size.ID)

	updated, err := products.UpdateProductSize(context.Background(), product.ID, size.ID, usecase.ProductSizeInput{
		Size:  "XL",
		Price: 4,
	})
	require.NoError(t, err)
	assert.Equal(t, "XL", updated.Size)

	sizes, err := products.ListProductSizes(context.Background(), product.ID)
	require.NoError(t, err)
	require.Len(t, sizes, 1)

	require.NoError(t, products.DeleteProductSize(context.Background(), product.ID, size.ID))

	sizes, err = products.ListProductSizes(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Empty(t, sizes)

	// product create + size add + size update + size delete
	assert.Equal(t, 4, exporter.mutationExports())
}

func TestProductService_SizeMustBelongToProduct(t *testing.T) {
	products, _, _ := newProductFixture(t)

	first, err := products.CreateProduct(context.Background(), usecase.ProductInput{Name: "Cola", Price: 1})
	require.NoError(t, err)
	second, err := products.CreateProduct(context.Background(), usecase.ProductInput{Name: "Tea", Price: 1})
	require.NoError(t, err)

	size, err := products.AddProductSize(context.Background(), first.ID, usecase.ProductSizeInput{Size: "L", Price: 2})
	require.NoError(t, err)

	_, err = products.UpdateProductSize(context.Background(), second.ID, size.ID, usecase.ProductSizeInput{Size: "M", Price: 2})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrNotFound))
}

func TestProductService_ListUniqueSizes(t *testing.T) {
	products, _, _ := newProductFixture(t)

	cola, err := products.CreateProduct(context.Background(), usecase.ProductInput{Name: "Cola", Price: 1})
	require.NoError(t, err)
	tea, err := products.CreateProduct(context.Background(), usecase.ProductInput{Name: "Tea", Price: 1})
	require.NoError(t, err)

	for _, spec := range []struct {
		productID uint
		name      string
	}{
		{cola.ID, "L"}, {cola.ID, "M"}, {tea.ID, "L"},
	} {
		_, err := products.AddProductSize(context.Background(), spec.productID, usecase.ProductSizeInput{
			Size:  spec.name,
			Price: 1,
		})
		require.NoError(t, err)
	}

	names, err := products.ListUniqueSizes(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"L", "M"}, names)
}
