// Package cache keeps simplified country outlines between relocations so a
// drag only pays for translation.
package cache

import (
	"sync"

	"github.com/paulmach/orb"

	"github.com/truesize/engine/internal/simplify"
	"github.com/truesize/engine/pkg/core"
)

type outlineKey struct {
	id        string
	tolerance float64
}

// OutlineCache maps (country id, tolerance) to a simplified outline. Cached
// geometries are shared; callers must not modify them.
type OutlineCache struct {
	mu       sync.RWMutex
	outlines map[outlineKey]orb.Geometry
	hits     int
	misses   int
}

func NewOutlineCache() *OutlineCache {
	return &OutlineCache{
		outlines: make(map[outlineKey]orb.Geometry),
	}
}

// Get retrieves a cached outline
func (c *OutlineCache) Get(id string, tolerance float64) (orb.Geometry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	g, ok := c.outlines[outlineKey{id, tolerance}]
	return g, ok
}

// Set stores an outline
func (c *OutlineCache) Set(id string, tolerance float64, g orb.Geometry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.outlines[outlineKey{id, tolerance}] = g
}

// Simplified returns country's outline simplified at tolerance, computing
// and storing it on a miss.
func (c *OutlineCache) Simplified(country core.Country, tolerance float64) orb.Geometry {
	key := outlineKey{country.ID, tolerance}

	c.mu.Lock()
	defer c.mu.Unlock()
	if g, ok := c.outlines[key]; ok {
		c.hits++
		return g
	}
	c.misses++
	g := simplify.Simplify(country.Geometry, tolerance)
	c.outlines[key] = g
	return g
}

// Delete drops every tolerance cached for id
func (c *OutlineCache) Delete(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.outlines {
		if k.id == id {
			delete(c.outlines, k)
		}
	}
}

// Reset clears all outlines from the cache
func (c *OutlineCache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.outlines = make(map[outlineKey]orb.Geometry)
	c.hits, c.misses = 0, 0
}

func (c *OutlineCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.outlines)
}

// Stats returns the hit and miss counts of Simplified.
func (c *OutlineCache) Stats() (hits, misses int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses
}
