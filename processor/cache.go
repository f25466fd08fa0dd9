package processor

import (
	"sync"

	"go-mindfit/types"
)

// Cache holds the most recent analysis for readers such as HTTP handlers.
// Analyses are never mutated after RunPipeline returns, so readers share the
// pointer; Store swaps it atomically with respect to Latest.
type Cache struct {
	mu     sync.RWMutex
	latest *types.Analysis
}

func NewCache() *Cache {
	return &Cache{}
}

func (c *Cache) Store(a *types.Analysis) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.latest = a
}

func (c *Cache) Latest() (*types.Analysis, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.latest, c.latest != nil
}
