package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PromoCode represents the promo_code table
type PromoCode struct {
	Id int `db:"id"`
	PromoCodeInsert
}

func (pc *PromoCode) IsAllowed(now time.Time) bool {
	return pc.Allowed && pc.Expiration.After(now) && pc.Start.Before(now)
}

// SubtotalWithPromo applies the percent discount to the subtotal.
func (pc *PromoCode) SubtotalWithPromo(subtotal decimal.Decimal) decimal.Decimal {
	if pc.Discount.Equals(decimal.Zero) {
		return subtotal.Round(2)
	}
	return subtotal.Mul(decimal.NewFromInt(100).Sub(pc.Discount).Div(decimal.NewFromInt(100))).Round(2)
}

type PromoCodeInsert struct {
	Code       string          `db:"code" valid:"required"`
	Discount   decimal.Decimal `db:"discount"`
	Start      time.Time       `db:"start"`
	Expiration time.Time       `db:"expiration"`
	Allowed    bool            `db:"allowed"`
}

func (pc *PromoCode) DiscountDecimal() decimal.Decimal {
	return pc.Discount.Round(2)
}
