package store

import (
	"context"
	"testing"
	"time"

	"github.com/elarafragrance/elara-backend/internal/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

var promoSale = &entity.PromoCodeInsert{
	Code:       "ELARA10",
	Discount:   decimal.NewFromInt(10),
	Start:      time.Now().Add(-time.Hour),
	Expiration: time.Now().Add(time.Hour * 24),
	Allowed:    true,
}

var promoDisabled = &entity.PromoCodeInsert{
	Code:       "disabled",
	Discount:   decimal.NewFromInt(10),
	Start:      time.Now().Add(-time.Hour),
	Expiration: time.Now().Add(time.Hour * 24),
	Allowed:    false,
}

var promoExpired = &entity.PromoCodeInsert{
	Code:       "expired",
	Discount:   decimal.NewFromInt(10),
	Start:      time.Now().Add(-time.Hour * 48),
	Expiration: time.Now().Add(time.Hour * -24),
	Allowed:    true,
}

func TestPromo(t *testing.T) {
	db := newTestDB(t)
	ps := db.Promo()
	ctx := context.Background()

	t.Run("AddPromo", func(t *testing.T) {
		assert.NoError(t, ps.AddPromo(ctx, promoSale))
		assert.NoError(t, ps.AddPromo(ctx, promoDisabled))
		assert.NoError(t, ps.AddPromo(ctx, promoExpired))
	})

	t.Run("ListPromos", func(t *testing.T) {
		promos, err := ps.ListPromos(ctx, 10, 0, entity.Ascending)
		assert.NoError(t, err)
		assert.Len(t, promos, 3)
	})

	t.Run("CacheReflectsInserts", func(t *testing.T) {
		promo, ok := db.Cache().GetPromoByCode("ELARA10")
		assert.True(t, ok)
		assert.True(t, promo.IsAllowed(time.Now()))

		// the cached expiration is the day-truncated value the row holds, so
		// validity agrees with a freshly warmed cache
		assert.Equal(t, startOfDay(promoSale.Expiration), promo.Expiration)

		promo, ok = db.Cache().GetPromoByCode("disabled")
		assert.True(t, ok)
		assert.False(t, promo.IsAllowed(time.Now()))
	})

	t.Run("DisablePromoCode", func(t *testing.T) {
		assert.NoError(t, ps.DisablePromoCode(ctx, "ELARA10"))
		promo, ok := db.Cache().GetPromoByCode("ELARA10")
		assert.True(t, ok)
		assert.False(t, promo.IsAllowed(time.Now()))
	})

	t.Run("DeletePromoCode", func(t *testing.T) {
		assert.NoError(t, ps.DeletePromoCode(ctx, "expired"))
		_, ok := db.Cache().GetPromoByCode("expired")
		assert.False(t, ok)
	})
}
