package worldgen

import (
	"sync"
	"sync/atomic"

	"voxelgen/internal/core"
)

// ChunkGen is the cached per-chunk generation state: the structure instances
// anchored inside the chunk, planned at most once. The pointer is nil until
// planning has run; an empty non-nil slice means planning ran and found
// nothing.
type ChunkGen struct {
	pos        core.ChunkPos
	structures atomic.Pointer[[]PendingStructure]
}

// Cache memoizes per-column and per-chunk generation state by position.
// Lookups are optimistic: a read lock first, then a write lock with a
// re-check, so the hot path of an already-cached position never contends on
// the write lock.
type Cache struct {
	columnsMu sync.RWMutex
	columns   map[core.ColumnCoord]*ColumnGen

	chunksMu sync.RWMutex
	chunks   map[core.ChunkPos]*ChunkGen
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{
		columns: make(map[core.ColumnCoord]*ColumnGen),
		chunks:  make(map[core.ChunkPos]*ChunkGen),
	}
}

// column returns the cached cell for the column, creating it if missing.
// The returned cell is shared: all goroutines asking for the same position
// get the same instance until it is evicted.
func (c *Cache) column(pos core.ColumnCoord) *ColumnGen {
	c.columnsMu.RLock()
	cell := c.columns[pos]
	c.columnsMu.RUnlock()
	if cell != nil {
		return cell
	}

	c.columnsMu.Lock()
	defer c.columnsMu.Unlock()
	if cell := c.columns[pos]; cell != nil {
		return cell
	}
	cell = &ColumnGen{pos: pos}
	c.columns[pos] = cell
	return cell
}

// chunk returns the cached cell for the chunk, creating it if missing.
func (c *Cache) chunk(pos core.ChunkPos) *ChunkGen {
	c.chunksMu.RLock()
	cell := c.chunks[pos]
	c.chunksMu.RUnlock()
	if cell != nil {
		return cell
	}

	c.chunksMu.Lock()
	defer c.chunksMu.Unlock()
	if cell := c.chunks[pos]; cell != nil {
		return cell
	}
	cell = &ChunkGen{pos: pos}
	c.chunks[pos] = cell
	return cell
}

// Cleanup evicts cached state outside the retention window around center:
// columns beyond hRadius in horizontal chunk distance, chunks beyond either
// hRadius horizontally or vRadius vertically. Retained entries keep their
// identity. The maps are rebuilt so the memory of evicted regions is
// actually returned rather than lingering in map buckets.
func (c *Cache) Cleanup(center core.ChunkPos, hRadius, vRadius int32) {
	h2 := hRadius * hRadius

	c.columnsMu.Lock()
	columns := make(map[core.ColumnCoord]*ColumnGen, len(c.columns))
	for pos, cell := range c.columns {
		dx, dz := pos.X-center.X, pos.Z-center.Z
		if dx*dx+dz*dz <= h2 {
			columns[pos] = cell
		}
	}
	c.columns = columns
	c.columnsMu.Unlock()

	c.chunksMu.Lock()
	chunks := make(map[core.ChunkPos]*ChunkGen, len(c.chunks))
	for pos, cell := range c.chunks {
		dx, dy, dz := pos.X-center.X, pos.Y-center.Y, pos.Z-center.Z
		if dx*dx+dz*dz <= h2 && dy >= -vRadius && dy <= vRadius {
			chunks[pos] = cell
		}
	}
	c.chunks = chunks
	c.chunksMu.Unlock()
}

// ColumnCount returns the number of cached column cells.
func (c *Cache) ColumnCount() int {
	c.columnsMu.RLock()
	defer c.columnsMu.RUnlock()
	return len(c.columns)
}

// ChunkCount returns the number of cached chunk cells.
func (c *Cache) ChunkCount() int {
	c.chunksMu.RLock()
	defer c.chunksMu.RUnlock()
	return len(c.chunks)
}
