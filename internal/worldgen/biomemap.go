package worldgen

import "voxelgen/internal/noise"

// Biome cell layout: the plane is cut into jittered Voronoi cells, warped by
// a low-frequency displacement field so cell borders meander instead of
// tracing the underlying lattice.
const (
	biomeCellScale    = 1.0 / 48
	biomeRoughness    = 2.0
	biomeDisplacement = 1.0 / 8
)

// BiomeMap resolves a world (x, z) position to its biome. The resolution is
// two-step: find the displaced Voronoi cell owning the position, then pick
// one biome for the whole cell by a weighted draw among the biomes whose
// climate gates match the cell's climate.
type BiomeMap struct {
	registry *Registry
	climate  climateMap
	cells    noise.Voronoi2
	warpX    noise.Simplex2
	warpZ    noise.Simplex2
	choose   noise.Mixer
}

// NewBiomeMap creates a biome map drawing all its noise state from seq.
func NewBiomeMap(seq *noise.SeedSeq, registry *Registry) *BiomeMap {
	return &BiomeMap{
		registry: registry,
		climate:  newClimateMap(seq),
		cells:    noise.NewVoronoi2(seq),
		warpX:    noise.NewSimplex2(seq),
		warpZ:    noise.NewSimplex2(seq),
		choose:   noise.NewMixer(seq),
	}
}

// CellAt returns the lattice coordinate of the biome cell owning the world
// position.
func (m *BiomeMap) CellAt(wx, wz int32) (int32, int32) {
	x := float64(wx) * biomeCellScale
	z := float64(wz) * biomeCellScale
	dx := m.warpX.Sample(x*biomeRoughness, z*biomeRoughness) * biomeDisplacement
	dz := m.warpZ.Sample(x*biomeRoughness, z*biomeRoughness) * biomeDisplacement
	return m.cells.Cell(x+dx, z+dz)
}

// ClimateAt returns the climate of the cell owning the world position.
func (m *BiomeMap) ClimateAt(wx, wz int32) Climate {
	cx, cz := m.CellAt(wx, wz)
	return m.climate.at(cx, cz)
}

// Sample returns the biome at the world position.
func (m *BiomeMap) Sample(wx, wz int32) BiomeID {
	cx, cz := m.CellAt(wx, wz)
	return m.cellBiome(cx, cz)
}

// cellBiome picks the biome of a cell: gate every registered biome against
// the cell climate, then draw by weight using a hash of the cell coordinate
// as the roll. Unknown climates fall back to BiomeVoid.
func (m *BiomeMap) cellBiome(cx, cz int32) BiomeID {
	climate := m.climate.at(cx, cz)

	var total uint64
	for id := BiomeVoid + 1; id < biomeCount; id++ {
		if info := m.registry.Info(id); info.Allows(climate) {
			total += uint64(info.Weight)
		}
	}
	if total == 0 {
		return BiomeVoid
	}

	roll := m.choose.Mix2(uint64(cx), uint64(cz)) % total
	for id := BiomeVoid + 1; id < biomeCount; id++ {
		info := m.registry.Info(id)
		if !info.Allows(climate) {
			continue
		}
		if roll < uint64(info.Weight) {
			return id
		}
		roll -= uint64(info.Weight)
	}
	return BiomeVoid
}
