package cache

import (
	"github.com/elarafragrance/elara-backend/internal/dependency"
	"github.com/elarafragrance/elara-backend/internal/entity"
)

// Cache holds the small dictionary-like tables that are read on nearly every
// request: categories and promo codes. It is populated once at startup and
// kept in sync by the store on writes.
type Cache struct {
	Category *CategoryCache
	Promo    *PromoCache
}

func NewCache(categories []entity.Category, promos []entity.PromoCode) dependency.Cache {
	return &Cache{
		Category: newCategoryCache(categories),
		Promo:    newPromoCache(promos),
	}
}

// category
func (c *Cache) GetCategoryById(id int) (*entity.Category, bool) {
	return c.Category.GetCategoryById(id)
}
func (c *Cache) GetCategoryByName(name string) (entity.Category, bool) {
	return c.Category.GetCategoryByName(name)
}
func (c *Cache) AddCategory(category entity.Category) {
	c.Category.AddCategory(category)
}
func (c *Cache) DeleteCategory(id int) {
	c.Category.DeleteCategory(id)
}

// promo
func (c *Cache) GetPromoById(id int) (*entity.PromoCode, bool) {
	return c.Promo.GetPromoById(id)
}
func (c *Cache) GetPromoByCode(code string) (entity.PromoCode, bool) {
	return c.Promo.GetPromoByCode(code)
}
func (c *Cache) AddPromo(promo entity.PromoCode) {
	c.Promo.AddPromo(promo)
}
func (c *Cache) DeletePromo(code string) {
	c.Promo.DeletePromo(code)
}
func (c *Cache) DisablePromo(code string) {
	c.Promo.DisablePromo(code)
}
