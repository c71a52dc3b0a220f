package entity

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// Category represents the category table
type Category struct {
	Id   int    `db:"id"`
	Name string `db:"name" valid:"required"`
}

// UncategorizedLabel is used wherever a product without a category is displayed.
const UncategorizedLabel = "Uncategorized"

type GenderEnum string

const (
	Men    GenderEnum = "MEN"
	Women  GenderEnum = "WOMEN"
	Unisex GenderEnum = "UNISEX"
)

func (ge GenderEnum) String() string {
	switch ge {
	case Men, Women, Unisex:
		return string(ge)
	default:
		return string(Unisex)
	}
}

// ValidGenders is a set of valid product gender tags.
var ValidGenders = map[GenderEnum]bool{
	Men:    true,
	Women:  true,
	Unisex: true,
}

func IsValidGender(g GenderEnum) bool {
	return ValidGenders[g]
}

type ProductBody struct {
	Name        string              `db:"name" valid:"required"`
	Description sql.NullString      `db:"description" valid:"-"`
	Price       decimal.Decimal     `db:"price" valid:"required"`
	Stock       int                 `db:"stock" valid:"-"`
	CategoryId  sql.NullInt32       `db:"category_id" valid:"-"`
	Gender      GenderEnum          `db:"gender" valid:"-"`
	Archived    bool                `db:"archived" valid:"-"`
	ImageURL    sql.NullString      `db:"image_url" valid:"-"`
	Blurhash    sql.NullString      `db:"blurhash" valid:"-"`
	SalePrice   decimal.NullDecimal `db:"sale_price" valid:"-"`
}

func (pb *ProductBody) PriceDecimal() decimal.Decimal {
	return pb.Price.Round(2)
}

// EffectivePrice returns the sale price when one is set, the regular price otherwise.
func (pb *ProductBody) EffectivePrice() decimal.Decimal {
	if pb.SalePrice.Valid && pb.SalePrice.Decimal.GreaterThan(decimal.Zero) {
		return pb.SalePrice.Decimal.Round(2)
	}
	return pb.PriceDecimal()
}

// Product represents the product table
type Product struct {
	Id        int       `db:"id"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
	ProductBody
	// CategoryName is joined from the category table; empty when uncategorized.
	CategoryName sql.NullString `db:"category_name"`
}

func (p *Product) DisplayCategory() string {
	if p.CategoryName.Valid && p.CategoryName.String != "" {
		return p.CategoryName.String
	}
	return UncategorizedLabel
}

type ProductInsert struct {
	ProductBody
}

// SortFactor is a product list sort column.
type SortFactor string

const (
	SortByCreatedAt SortFactor = "created_at"
	SortByPrice     SortFactor = "price"
	SortByName      SortFactor = "name"
)

var validSortFactors = map[SortFactor]bool{
	SortByCreatedAt: true,
	SortByPrice:     true,
	SortByName:      true,
}

func (sf SortFactor) String() string {
	if validSortFactors[sf] {
		return string(sf)
	}
	return string(SortByCreatedAt)
}

// OrderFactor is a sort direction.
type OrderFactor string

const (
	Ascending  OrderFactor = "ASC"
	Descending OrderFactor = "DESC"
)

func (of OrderFactor) String() string {
	if of == Ascending {
		return string(Ascending)
	}
	return string(Descending)
}

// ProductFilter narrows product listings.
type ProductFilter struct {
	CategoryId   int
	Gender       GenderEnum
	ShowArchived bool
}
