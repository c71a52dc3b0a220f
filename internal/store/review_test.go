package store

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/elarafragrance/elara-backend/internal/entity"
	gerr "github.com/elarafragrance/elara-backend/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReviews(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	customerId := seedCustomer(t, db)
	productId := seedProduct(t, db, "Bois Sauvage 100ml", 140, 6)

	t.Run("UpsertReview", func(t *testing.T) {
		err := db.Review().UpsertReview(ctx, &entity.ReviewInsert{
			ProductId: productId,
			AccountId: customerId,
			Rating:    4,
			Comment:   sql.NullString{String: "warm and woody", Valid: true},
		})
		require.NoError(t, err)

		reviews, err := db.Review().GetProductReviews(ctx, productId, 10, 0)
		require.NoError(t, err)
		require.Len(t, reviews, 1)
		assert.Equal(t, 4, reviews[0].Rating)
		assert.Equal(t, "warm and woody", reviews[0].Comment.String)
		require.True(t, reviews[0].CustomerName.Valid)
		assert.Equal(t, "Test Customer", reviews[0].CustomerName.String)
	})

	t.Run("UpsertReplacesExisting", func(t *testing.T) {
		err := db.Review().UpsertReview(ctx, &entity.ReviewInsert{
			ProductId: productId,
			AccountId: customerId,
			Rating:    5,
		})
		require.NoError(t, err)

		reviews, err := db.Review().GetProductReviews(ctx, productId, 10, 0)
		require.NoError(t, err)
		require.Len(t, reviews, 1)
		assert.Equal(t, 5, reviews[0].Rating)
		assert.False(t, reviews[0].Comment.Valid)
	})

	t.Run("RatingOutOfRange", func(t *testing.T) {
		err := db.Review().UpsertReview(ctx, &entity.ReviewInsert{
			ProductId: productId,
			AccountId: customerId,
			Rating:    6,
		})
		assert.Error(t, err)
	})

	t.Run("GetReviewsSince", func(t *testing.T) {
		reviews, err := db.Review().GetReviewsSince(ctx, time.Now().Add(-time.Hour))
		require.NoError(t, err)
		require.Len(t, reviews, 1)

		reviews, err = db.Review().GetReviewsSince(ctx, time.Now().Add(time.Hour))
		require.NoError(t, err)
		assert.Empty(t, reviews)
	})

	t.Run("DeleteReview", func(t *testing.T) {
		reviews, err := db.Review().GetProductReviews(ctx, productId, 10, 0)
		require.NoError(t, err)
		require.Len(t, reviews, 1)

		require.NoError(t, db.Review().DeleteReviewById(ctx, reviews[0].Id))
		assert.ErrorIs(t, db.Review().DeleteReviewById(ctx, reviews[0].Id), gerr.ErrReviewNotFound)
	})
}
