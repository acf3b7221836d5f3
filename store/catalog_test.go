package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"easyfood/catalog"
	"easyfood/models"
)

func TestSeedCatalogIfEmpty(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, st.SeedCatalogIfEmpty(ctx, testCatalog()))

	var count int64
	require.NoError(t, st.db.Model(&models.Product{}).Count(&count).Error)
	assert.EqualValues(t, 3, count)

	// Re-seeding with a different catalog is a no-op once rows exist.
	require.NoError(t, st.SeedCatalogIfEmpty(ctx, []catalog.Restaurant{
		{ID: "rest-z", Menu: []catalog.MenuItem{{ID: "p99", Name: "Other"}}},
	}))
	require.NoError(t, st.db.Model(&models.Product{}).Count(&count).Error)
	assert.EqualValues(t, 3, count)

	product, err := st.ProductByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "Fanesca", product.Name)
	assert.Equal(t, "rest-a", product.RestaurantID)
	assert.Equal(t, "2.00", product.Price.StringFixed(2))
	assert.True(t, product.Available)
}

func TestProductsFilters(t *testing.T) {
	st := newSeededStore(t)
	ctx := context.Background()

	all, err := st.Products(ctx, "rest-a", "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	tipico, err := st.Products(ctx, "rest-a", "Tipico")
	require.NoError(t, err)
	require.Len(t, tipico, 1)
	assert.Equal(t, "p1", tipico[0].ID)

	none, err := st.Products(ctx, "rest-a", "Sushi")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestProductByIDNotFound(t *testing.T) {
	st := newSeededStore(t)
	_, err := st.ProductByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDefaultCatalogSeeds(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	restaurants := catalog.Default()
	require.NotEmpty(t, restaurants)
	require.NoError(t, st.SeedCatalogIfEmpty(ctx, restaurants))

	for _, r := range restaurants {
		products, err := st.Products(ctx, r.ID, "")
		require.NoError(t, err)
		assert.Len(t, products, len(r.Menu))
	}
}
