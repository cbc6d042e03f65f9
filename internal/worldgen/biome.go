// Package worldgen implements the deterministic terrain pipeline: climate
// and biome resolution, memoized per-column generation stages, base terrain
// placement and structure planting. Everything derives from a single world
// seed; generating the same chunk twice, on any goroutine, in any order,
// yields identical blocks.
package worldgen

import (
	"io"

	"voxelgen/internal/core"
)

// BiomeID identifies a biome in the registry. The set is closed at compile
// time so biome grids can be stored as bytes.
type BiomeID uint8

const (
	// BiomeVoid is the fallback when no biome's climate gate matches. It
	// generates nothing.
	BiomeVoid BiomeID = iota
	BiomeOcean
	BiomePlains
	BiomeOakForest
	BiomePineForest
	BiomeDesert
	BiomeMountain

	biomeCount
)

var biomeNames = [biomeCount]string{
	BiomeVoid:       "void",
	BiomeOcean:      "ocean",
	BiomePlains:     "plains",
	BiomeOakForest:  "oak_forest",
	BiomePineForest: "pine_forest",
	BiomeDesert:     "desert",
	BiomeMountain:   "mountain",
}

func (id BiomeID) String() string {
	if id >= biomeCount {
		return "invalid"
	}
	return biomeNames[id]
}

// ClimateRange is an inclusive interval over one climate axis.
type ClimateRange struct {
	Min, Max float64
}

// FullClimateRange accepts the whole nominal climate span.
func FullClimateRange() ClimateRange {
	return ClimateRange{Min: -1, Max: 1}
}

// Contains reports whether v falls inside the range.
func (r ClimateRange) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Behavior is how a biome expresses itself in the world. Implementations
// must be pure with respect to their inputs: the same position and column
// data always produce the same output.
type Behavior interface {
	// Height returns the biome's ideal surface height at a world (x, z)
	// position, before cross-biome blending.
	Height(x, z int32) float64

	// PlaceBaseTerrain writes the biome's ground blocks into the chunk for
	// every column cell owned by this biome.
	PlaceBaseTerrain(pos core.ChunkPos, col ColumnView, chunk *core.Chunk)

	// RegisterStructures appends the structures this biome plants whose
	// anchors fall inside the given chunk.
	RegisterStructures(pos core.ChunkPos, col ColumnView, out *[]PendingStructure)

	// DescribeTo writes a human-readable summary for debug output.
	DescribeTo(w io.Writer)
}

// BiomeInfo is one registry entry: the climate gate that makes the biome a
// candidate, its selection weight among candidates, and its behavior.
type BiomeInfo struct {
	ID   BiomeID
	Name string

	Continentality ClimateRange
	Temperature    ClimateRange
	Humidity       ClimateRange

	Weight   uint32
	Behavior Behavior
}

// Allows reports whether the climate point passes this biome's gate.
func (b *BiomeInfo) Allows(c Climate) bool {
	return b.Continentality.Contains(c.Continentality) &&
		b.Temperature.Contains(c.Temperature) &&
		b.Humidity.Contains(c.Humidity)
}

// Registry holds every biome, indexed by BiomeID.
type Registry struct {
	infos [biomeCount]BiomeInfo
}

// Info returns the entry for the given biome.
func (r *Registry) Info(id BiomeID) *BiomeInfo {
	if id >= biomeCount {
		return &r.infos[BiomeVoid]
	}
	return &r.infos[id]
}

// voidBehavior generates nothing. It backs BiomeVoid and any unknown id.
type voidBehavior struct{}

func (voidBehavior) Height(x, z int32) float64 { return 0 }

func (voidBehavior) PlaceBaseTerrain(pos core.ChunkPos, col ColumnView, chunk *core.Chunk) {}

func (voidBehavior) RegisterStructures(pos core.ChunkPos, col ColumnView, out *[]PendingStructure) {
}

func (voidBehavior) DescribeTo(w io.Writer) {
	io.WriteString(w, "void biome, generates nothing\n")
}
