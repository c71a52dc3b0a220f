package store

import (
	"context"
	"database/sql"
	"testing"

	"github.com/elarafragrance/elara-backend/internal/entity"
	gerr "github.com/elarafragrance/elara-backend/internal/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func toNullInt32(id int) sql.NullInt32 {
	return sql.NullInt32{Int32: int32(id), Valid: true}
}

func TestProducts(t *testing.T) {
	db := newTestDB(t)
	ps := db.Products()
	ctx := context.Background()

	catId, err := ps.AddCategory(ctx, "Eau de Parfum")
	require.NoError(t, err)

	var productId int

	t.Run("AddProduct", func(t *testing.T) {
		productId, err = ps.AddProduct(ctx, &entity.ProductInsert{
			ProductBody: entity.ProductBody{
				Name:       "Velvet Iris 50ml",
				Price:      decimal.NewFromInt(95),
				Stock:      20,
				CategoryId: toNullInt32(catId),
				Gender:     entity.Women,
			},
		})
		require.NoError(t, err)
		assert.Greater(t, productId, 0)
	})

	t.Run("GetProductById", func(t *testing.T) {
		prd, err := ps.GetProductById(ctx, productId)
		require.NoError(t, err)
		assert.Equal(t, "Velvet Iris 50ml", prd.Name)
		assert.Equal(t, "Eau de Parfum", prd.DisplayCategory())

		_, err = ps.GetProductById(ctx, 999999)
		assert.ErrorIs(t, err, gerr.ErrProductNotFound)
	})

	t.Run("FilterByGender", func(t *testing.T) {
		_, err := ps.AddProduct(ctx, &entity.ProductInsert{
			ProductBody: entity.ProductBody{
				Name:   "Cedar Atlas 50ml",
				Price:  decimal.NewFromInt(85),
				Stock:  15,
				Gender: entity.Men,
			},
		})
		require.NoError(t, err)

		products, count, err := ps.GetProductsPaged(ctx, 10, 0, entity.SortByCreatedAt, entity.Descending, &entity.ProductFilter{
			Gender: entity.Women,
		})
		require.NoError(t, err)
		assert.Equal(t, 1, count)
		require.Len(t, products, 1)
		assert.Equal(t, "Velvet Iris 50ml", products[0].Name)
	})

	t.Run("ArchiveHidesFromListing", func(t *testing.T) {
		require.NoError(t, ps.ArchiveProductById(ctx, productId, true))

		_, count, err := ps.GetProductsPaged(ctx, 10, 0, entity.SortByCreatedAt, entity.Descending, nil)
		require.NoError(t, err)
		assert.Equal(t, 1, count)

		_, count, err = ps.GetProductsPaged(ctx, 10, 0, entity.SortByCreatedAt, entity.Descending, &entity.ProductFilter{
			ShowArchived: true,
		})
		require.NoError(t, err)
		assert.Equal(t, 2, count)

		require.NoError(t, ps.ArchiveProductById(ctx, productId, false))
	})

	t.Run("LowStock", func(t *testing.T) {
		lowId, err := ps.AddProduct(ctx, &entity.ProductInsert{
			ProductBody: entity.ProductBody{
				Name:   "Santal Dusk 30ml",
				Price:  decimal.NewFromInt(60),
				Stock:  3,
				Gender: entity.Unisex,
			},
		})
		require.NoError(t, err)

		low, err := ps.GetLowStockProducts(ctx, 10, 5)
		require.NoError(t, err)
		require.Len(t, low, 1)
		assert.Equal(t, lowId, low[0].Id)
	})

	t.Run("DeleteCategoryUncategorizes", func(t *testing.T) {
		require.NoError(t, ps.DeleteCategoryById(ctx, catId))

		prd, err := ps.GetProductById(ctx, productId)
		require.NoError(t, err)
		assert.Equal(t, entity.UncategorizedLabel, prd.DisplayCategory())
	})
}
