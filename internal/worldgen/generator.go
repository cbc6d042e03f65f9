package worldgen

import (
	"fmt"
	"io"

	"voxelgen/internal/core"
	"voxelgen/internal/noise"
	"voxelgen/internal/profiling"
	"voxelgen/pkg/structfile"
)

// Default vertical generation range in chunk coordinates, inclusive.
const (
	DefaultMinChunkY = -4
	DefaultMaxChunkY = 4
)

// structureReach is how far, in chunk columns, a structure's anchor may be
// from a chunk it writes into. Before a chunk is assembled, structure
// planning is forced for every anchor chunk within this horizontal reach,
// so cross-chunk structures are complete no matter which of their chunks
// generates first. Template half-extents must stay below reach*32 blocks.
const structureReach = 2

// Options configures a Generator. The zero value of any field selects its
// default.
type Options struct {
	// MinChunkY and MaxChunkY bound generation vertically, in chunk
	// coordinates. Both zero selects the default range.
	MinChunkY, MaxChunkY int32

	// Templates overrides the embedded structure templates.
	Templates map[string]*structfile.Structure
}

// Generator produces world chunks. One Generator serves a whole world; all
// methods are safe for concurrent use, and output is a pure function of the
// seed and position regardless of call order or parallelism.
type Generator struct {
	seed       int64
	registry   *Registry
	biomeMap   *BiomeMap
	cache      *Cache
	structures *StructureRegistry
	templates  *TemplateSet

	// heightJitter drives the probe offsets of the height lattice. A small
	// rotation of mixers decorrelates the x and z draws of chained probes.
	heightJitter [4]noise.Mixer

	minChunkY, maxChunkY int32
}

// New creates a generator for the given world seed with default options.
func New(seed int64) (*Generator, error) {
	return NewWithOptions(seed, Options{})
}

// NewWithOptions creates a generator for the given world seed.
func NewWithOptions(seed int64, opts Options) (*Generator, error) {
	templates, err := compileOptions(opts)
	if err != nil {
		return nil, err
	}

	seq := noise.NewSeedSeq(seed)
	registry, err := NewRegistry(seq, templates)
	if err != nil {
		return nil, fmt.Errorf("building biome registry: %w", err)
	}

	g := &Generator{
		seed:       seed,
		registry:   registry,
		biomeMap:   NewBiomeMap(seq, registry),
		cache:      NewCache(),
		structures: NewStructureRegistry(),
		templates:  templates,
		minChunkY:  opts.MinChunkY,
		maxChunkY:  opts.MaxChunkY,
	}
	for i := range g.heightJitter {
		g.heightJitter[i] = noise.NewMixer(seq)
	}
	if g.minChunkY == 0 && g.maxChunkY == 0 {
		g.minChunkY, g.maxChunkY = DefaultMinChunkY, DefaultMaxChunkY
	}
	if g.minChunkY > g.maxChunkY {
		return nil, fmt.Errorf("invalid vertical range [%d, %d]", g.minChunkY, g.maxChunkY)
	}
	return g, nil
}

func compileOptions(opts Options) (*TemplateSet, error) {
	if opts.Templates != nil {
		return CompileTemplates(opts.Templates)
	}
	return loadEmbeddedTemplates()
}

// Seed returns the world seed the generator was created with.
func (g *Generator) Seed() int64 { return g.seed }

// Registry returns the generator's biome registry.
func (g *Generator) Registry() *Registry { return g.registry }

// Generate produces the chunk at the given position. Chunks outside the
// vertical range are empty. The result is freshly allocated and owned by
// the caller; the memoized column and structure state behind it is shared.
func (g *Generator) Generate(pos core.ChunkPos) *core.Chunk {
	defer profiling.Track("worldgen.Generate")()

	chunk := core.NewChunk()
	if pos.Y < g.minChunkY || pos.Y > g.maxChunkY {
		return chunk
	}

	col := g.cache.column(pos.Column())
	view := ColumnView{
		Coord:   col.pos,
		Biomes:  g.columnBiomes(col),
		Heights: g.columnHeights(col),
	}

	for _, id := range view.Biomes.Unique {
		g.registry.Info(id).Behavior.PlaceBaseTerrain(pos, view, chunk)
	}

	g.ensureStructuresAround(pos)
	g.structures.WriteChunk(pos, chunk)
	return chunk
}

// ensureStructuresAround forces structure planning for every chunk that
// could anchor a structure reaching into pos: all columns within
// structureReach, over the chunk rows their surface envelope spans.
func (g *Generator) ensureStructuresAround(pos core.ChunkPos) {
	for dz := int32(-structureReach); dz <= structureReach; dz++ {
		for dx := int32(-structureReach); dx <= structureReach; dx++ {
			col := g.cache.column(core.ColumnCoord{X: pos.X + dx, Z: pos.Z + dz})
			view := ColumnView{
				Coord:   col.pos,
				Biomes:  g.columnBiomes(col),
				Heights: g.columnHeights(col),
			}

			loY := max(core.FloorDiv(view.Heights.Min, core.ChunkSide), g.minChunkY)
			hiY := min(core.FloorDiv(view.Heights.Max, core.ChunkSide), g.maxChunkY)
			for cy := loY; cy <= hiY; cy++ {
				g.ensureChunkStructures(core.ChunkPos{X: col.pos.X, Y: cy, Z: col.pos.Z}, view)
			}
		}
	}
}

// ensureChunkStructures plans the structures anchored in the chunk and
// guarantees they sit in the shared registry before returning. Concurrent
// planners race benignly: results are identical and the CAS keeps one.
// Registration must happen before the cell is published — a reader of the
// published cell assumes the registry already holds its structures — and
// happens again on every revisit, because registry cleanup runs
// independently of the cell maps and may have dropped the entries.
// Re-registration is idempotent under the (anchor, template id) keys.
func (g *Generator) ensureChunkStructures(pos core.ChunkPos, view ColumnView) {
	cell := g.cache.chunk(pos)
	if planned := cell.structures.Load(); planned != nil {
		g.structures.RegisterAll(*planned)
		return
	}

	var planned []PendingStructure
	for _, id := range view.Biomes.Unique {
		g.registry.Info(id).Behavior.RegisterStructures(pos, view, &planned)
	}

	g.structures.RegisterAll(planned)
	cell.structures.CompareAndSwap(nil, &planned)
}

// RequestCleanup evicts memoized state outside a retention window around
// center: columns beyond hRadius chunks horizontally, chunks and planned
// structures beyond hRadius horizontally or vRadius vertically. Anything
// evicted is recomputed identically on the next visit.
func (g *Generator) RequestCleanup(center core.ChunkPos, hRadius, vRadius int32) {
	defer profiling.Track("worldgen.Cleanup")()
	g.cache.Cleanup(center, hRadius, vRadius)
	g.structures.Cleanup(center, hRadius, vRadius)
}

// CacheStats reports the current cache population, for logging.
func (g *Generator) CacheStats() (columns, chunks, structures int) {
	return g.cache.ColumnCount(), g.cache.ChunkCount(), g.structures.PendingCount()
}

// DebugInfo writes a human-readable description of the generation state at
// a world position: owning cell, climate, biome, surface height and the
// biome's configuration.
func (g *Generator) DebugInfo(w io.Writer, x, y, z int32) {
	cx, cz := g.biomeMap.CellAt(x, z)
	climate := g.biomeMap.ClimateAt(x, z)
	id := g.biomeMap.Sample(x, z)

	col := g.cache.column(core.ColumnCoord{X: core.FloorDiv(x, core.ChunkSide), Z: core.FloorDiv(z, core.ChunkSide)})
	heights := g.columnHeights(col)
	h := heights.Heights[core.ColumnPosFromWorld(x, z).Index()]

	fmt.Fprintf(w, "pos=(%d, %d, %d) chunk=%v\n", x, y, z, core.ChunkPosFromWorld(x, y, z))
	fmt.Fprintf(w, "biome cell=(%d, %d) climate: cont=%.2f temp=%.2f hum=%.2f\n",
		cx, cz, climate.Continentality, climate.Temperature, climate.Humidity)
	fmt.Fprintf(w, "surface height=%d (column %d..%d)\n", h, heights.Min, heights.Max)
	fmt.Fprintf(w, "biome=%s: ", id)
	g.registry.Info(id).Behavior.DescribeTo(w)
	columns, chunks, pending := g.CacheStats()
	fmt.Fprintf(w, "cache: %d columns, %d chunks, %d pending structures\n", columns, chunks, pending)
}
