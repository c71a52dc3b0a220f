package entity

import (
	"database/sql"
	"time"
)

const (
	MinRating = 1
	MaxRating = 5
)

// Review represents the review table. Reviews are independent of orders:
// analytics only counts them, never joins them to order status.
type Review struct {
	Id        int       `db:"id"`
	CreatedAt time.Time `db:"created_at"`
	ReviewInsert
	// CustomerName is joined from the account table for display.
	CustomerName sql.NullString `db:"customer_name"`
}

type ReviewInsert struct {
	ProductId int            `db:"product_id" valid:"required"`
	AccountId int            `db:"account_id" valid:"required"`
	Rating    int            `db:"rating" valid:"required,range(1|5)"`
	Comment   sql.NullString `db:"comment" valid:"-"`
}

func IsValidRating(r int) bool {
	return r >= MinRating && r <= MaxRating
}
