// Package nfp computes no-fit-polygons and inner-fit-polygons used to
// derive the exact set of valid placements for a piece against a set of
// already-placed obstacles, with a hit/miss-counted cache keyed on piece
// shape rather than identity.
package nfp

import (
	"fmt"
	"hash/fnv"
	"sync"

	"polynest/internal/geom"
)

// CacheStats reports cumulative cache activity, mirroring the original
// NFPManager's hit/miss/entry counters.
type CacheStats struct {
	Hits         int
	Misses       int
	TotalEntries int
}

type cacheKey struct {
	a, b uint64
}

// Cache memoizes computed NFPs keyed on the shape of the two input
// pieces, not their caller-assigned ids, so repeated packing of
// identical shapes at different positions reuses one cache entry.
type Cache struct {
	mu      sync.Mutex
	entries map[cacheKey]geom.Polygon
	hits    int
	misses  int
}

// NewCache returns an empty NFP cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[cacheKey]geom.Polygon)}
}

// Stats returns a snapshot of the cache's hit/miss/size counters.
func (c *Cache) Stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return CacheStats{Hits: c.hits, Misses: c.misses, TotalEntries: len(c.entries)}
}

// Clear empties the cache without resetting the hit/miss counters.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[cacheKey]geom.Polygon)
}

// Get returns the cached no-fit-polygon of b orbiting stationary piece a,
// computing and caching it on a miss.
func (c *Cache) Get(a, b geom.Polygon) geom.Polygon {
	return c.getOrCompute(a, b)
}

// getOrCompute returns the cached NFP for (a, b) in a-stationary,
// b-orbiting orientation, computing and storing it on a miss.
func (c *Cache) getOrCompute(a, b geom.Polygon) geom.Polygon {
	key := cacheKey{a: pieceHash(a), b: pieceHash(b)}
	// Entries hold the NFP of a moved to the origin; it is translated to a's
	// actual position on the way out, so one entry serves every position.
	offset := a.BBox().Min.Sub(geom.Point{})

	c.mu.Lock()
	if v, ok := c.entries[key]; ok {
		c.hits++
		c.mu.Unlock()
		return v.Translate(offset)
	}
	c.misses++
	c.mu.Unlock()

	result := computeNFP(a.PlaceAt(0, 0), b)

	c.mu.Lock()
	c.entries[key] = result
	c.mu.Unlock()
	return result.Translate(offset)
}

// pieceHash hashes a piece's normalized shape: its outer ring translated
// so its bbox min corner sits at the origin, its vertex count, area, and
// rotation. Two pieces with identical hashes are treated as
// shape-equivalent for caching purposes, matching NFPManager's
// generatePieceHash, which hashes the actual normalized vertex
// coordinates rather than just bbox dimensions — two distinct outlines
// sharing a vertex count, area, and bbox must not collide.
func pieceHash(p geom.Polygon) uint64 {
	h := fnv.New64a()
	bb := p.BBox()
	fmt.Fprintf(h, "%d|%.9f|%.2f", p.VertexCount(), p.Area(), p.Rotation())
	for _, v := range p.OuterRing() {
		fmt.Fprintf(h, "|%.6f,%.6f", v.X-bb.Min.X, v.Y-bb.Min.Y)
	}
	return h.Sum64()
}
