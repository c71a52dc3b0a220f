package cache

import (
	"strings"
	"sync"

	"github.com/elarafragrance/elara-backend/internal/entity"
)

// PromoCache definition
type PromoCache struct {
	IdCache   map[int]entity.PromoCode
	CodeCache map[string]entity.PromoCode
	Mutex     sync.RWMutex
}

func newPromoCache(promos []entity.PromoCode) *PromoCache {
	c := &PromoCache{
		IdCache:   make(map[int]entity.PromoCode),
		CodeCache: make(map[string]entity.PromoCode),
	}
	c.Mutex.Lock()
	defer c.Mutex.Unlock()

	for _, promo := range promos {
		c.IdCache[promo.Id] = promo
		c.CodeCache[strings.ToUpper(promo.Code)] = promo
	}
	return c
}

// GetPromoById fetches a PromoCode by id from PromoCache
func (c *PromoCache) GetPromoById(id int) (*entity.PromoCode, bool) {
	c.Mutex.RLock()
	defer c.Mutex.RUnlock()

	promo, found := c.IdCache[id]
	return &promo, found
}

// GetPromoByCode fetches a PromoCode by code from PromoCache
func (c *PromoCache) GetPromoByCode(code string) (entity.PromoCode, bool) {
	c.Mutex.RLock()
	defer c.Mutex.RUnlock()

	promo, found := c.CodeCache[strings.ToUpper(code)]
	return promo, found
}

func (c *PromoCache) AddPromo(promo entity.PromoCode) {
	c.Mutex.Lock()
	defer c.Mutex.Unlock()

	c.IdCache[promo.Id] = promo
	c.CodeCache[strings.ToUpper(promo.Code)] = promo
}

func (c *PromoCache) DeletePromo(code string) {
	c.Mutex.Lock()
	defer c.Mutex.Unlock()

	promo, found := c.CodeCache[strings.ToUpper(code)]
	if !found {
		return
	}
	delete(c.CodeCache, strings.ToUpper(code))
	delete(c.IdCache, promo.Id)
}

func (c *PromoCache) DisablePromo(code string) {
	c.Mutex.Lock()
	defer c.Mutex.Unlock()

	promo, found := c.CodeCache[strings.ToUpper(code)]
	if !found {
		return
	}
	promo.Allowed = false
	c.CodeCache[strings.ToUpper(code)] = promo
	c.IdCache[promo.Id] = promo
}
