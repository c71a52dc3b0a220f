package store

import (
	"context"
	"fmt"
	"time"

	"github.com/elarafragrance/elara-backend/internal/dependency"
	"github.com/elarafragrance/elara-backend/internal/entity"
)

type promoStore struct {
	*MYSQLStore
}

// Promo returns an object implementing Promo interface
func (ms *MYSQLStore) Promo() dependency.Promo {
	return &promoStore{
		MYSQLStore: ms,
	}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.UTC().Location())
}

func (ms *MYSQLStore) AddPromo(ctx context.Context, promo *entity.PromoCodeInsert) error {
	expiration := startOfDay(promo.Expiration)
	id, err := ExecNamedLastId(ctx, ms.DB(), `
	INSERT INTO promo_code (code, discount, start, expiration, allowed) VALUES
		(:code, :discount, :start, :expiration, :allowed)`, map[string]any{
		"code":       promo.Code,
		"discount":   promo.Discount,
		"start":      promo.Start,
		"expiration": expiration,
		"allowed":    promo.Allowed,
	})
	if err != nil {
		return fmt.Errorf("failed to add promo code: %w", err)
	}
	// cache exactly what the row holds so validity checks agree before and
	// after a restart
	cached := *promo
	cached.Expiration = expiration
	ms.cache.AddPromo(entity.PromoCode{
		Id:              id,
		PromoCodeInsert: cached,
	})

	return nil
}

func (ms *MYSQLStore) ListPromos(ctx context.Context, limit, offset int, orderFactor entity.OrderFactor) ([]entity.PromoCode, error) {
	query := fmt.Sprintf(`
	SELECT * FROM promo_code
	ORDER BY id %s
	LIMIT :limit OFFSET :offset`, orderFactor.String())

	promos, err := QueryListNamed[entity.PromoCode](ctx, ms.DB(), query, map[string]interface{}{
		"limit":  limit,
		"offset": offset,
	})
	if err != nil {
		return nil, fmt.Errorf("can't get PromoCode list: %w", err)
	}

	return promos, nil
}

func (ms *MYSQLStore) DeletePromoCode(ctx context.Context, code string) error {
	err := ExecNamed(ctx, ms.DB(), `DELETE FROM promo_code WHERE code = :code`, map[string]any{
		"code": code,
	})
	if err != nil {
		return fmt.Errorf("failed to delete promo code: %w", err)
	}
	ms.cache.DeletePromo(code)

	return nil
}

func (ms *MYSQLStore) DisablePromoCode(ctx context.Context, code string) error {
	err := ExecNamed(ctx, ms.DB(), `UPDATE promo_code SET allowed = false WHERE code = :code`, map[string]any{
		"code": code,
	})
	if err != nil {
		return fmt.Errorf("failed to disable promo code: %w", err)
	}
	ms.cache.DisablePromo(code)

	return nil
}
