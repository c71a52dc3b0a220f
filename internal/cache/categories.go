package cache

import (
	"strings"
	"sync"

	"github.com/elarafragrance/elara-backend/internal/entity"
)

// CategoryCache definition
type CategoryCache struct {
	IdCache   map[int]entity.Category
	NameCache map[string]entity.Category
	Mutex     sync.RWMutex
}

func newCategoryCache(categories []entity.Category) *CategoryCache {
	c := &CategoryCache{
		IdCache:   make(map[int]entity.Category),
		NameCache: make(map[string]entity.Category),
	}
	c.Mutex.Lock()
	defer c.Mutex.Unlock()

	for _, category := range categories {
		c.IdCache[category.Id] = category
		c.NameCache[strings.ToLower(category.Name)] = category
	}
	return c
}

// GetCategoryById fetches a Category by id from CategoryCache
func (c *CategoryCache) GetCategoryById(id int) (*entity.Category, bool) {
	c.Mutex.RLock()
	defer c.Mutex.RUnlock()

	category, found := c.IdCache[id]
	return &category, found
}

// GetCategoryByName fetches a Category by name from CategoryCache
func (c *CategoryCache) GetCategoryByName(name string) (entity.Category, bool) {
	c.Mutex.RLock()
	defer c.Mutex.RUnlock()

	category, found := c.NameCache[strings.ToLower(name)]
	return category, found
}

func (c *CategoryCache) AddCategory(category entity.Category) {
	c.Mutex.Lock()
	defer c.Mutex.Unlock()

	c.IdCache[category.Id] = category
	c.NameCache[strings.ToLower(category.Name)] = category
}

func (c *CategoryCache) DeleteCategory(id int) {
	c.Mutex.Lock()
	defer c.Mutex.Unlock()

	category, found := c.IdCache[id]
	if !found {
		return
	}
	delete(c.IdCache, id)
	delete(c.NameCache, strings.ToLower(category.Name))
}
