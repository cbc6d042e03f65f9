package worldgen

import (
	"fmt"
	"io"

	"voxelgen/internal/core"
	"voxelgen/internal/noise"
)

// SeaLevel is the world height at and below which exposed air fills with
// water.
const SeaLevel = 0

// reliefNoise is one octave of a biome's surface relief.
type reliefNoise struct {
	n         noise.Octave2
	amplitude float64
	frequency float64
}

// propSpec is a decorative block scattered on the surface with probability
// 1 in chance per cell.
type propSpec struct {
	block  core.BlockType
	chance uint64
	roll   noise.Mixer
}

// structureSpec is a family of templates planted with probability 1 in
// chance per surface cell. Template and orientation are drawn from separate
// hashes of the anchor.
type structureSpec struct {
	templates []*Template
	chance    uint64
	roll      noise.Mixer
	pick      noise.Mixer
	orient    noise.Mixer
}

// StandardBiome is the layered-terrain behavior shared by every concrete
// biome: a surface block over a band of dirt over deep underground, with
// optional beaches, ore pockets, surface props and structures. Biomes differ
// only in the block palette, height profile and decoration tables they are
// built with.
type StandardBiome struct {
	id   BiomeID
	name string

	surface     core.BlockType
	dirt        core.BlockType
	underground core.BlockType
	beach       core.BlockType // 0 disables beaches

	dirtMin, dirtMax int32
	dirtNoise        noise.Simplex2

	baseHeight float64
	relief     []reliefNoise

	oreBlock     core.BlockType // 0 disables ore
	oreThreshold float64
	oreNoise     noise.Simplex3

	props      []propSpec
	structures []structureSpec
}

const dirtNoiseScale = 0.125

// Height returns the biome's ideal surface height: the base level plus the
// relief octaves.
func (b *StandardBiome) Height(x, z int32) float64 {
	h := b.baseHeight
	for _, r := range b.relief {
		h += r.amplitude * r.n.Sample(float64(x)*r.frequency, float64(z)*r.frequency)
	}
	return h
}

// dirtDepth returns the thickness of the dirt band at a world position.
func (b *StandardBiome) dirtDepth(wx, wz int32) int32 {
	if b.dirtMax <= b.dirtMin {
		return b.dirtMin
	}
	v := b.dirtNoise.Sample(float64(wx)*dirtNoiseScale, float64(wz)*dirtNoiseScale)
	d := b.dirtMin + int32((v*0.5+0.5)*float64(b.dirtMax-b.dirtMin+1))
	if d > b.dirtMax {
		d = b.dirtMax
	}
	return d
}

// PlaceBaseTerrain writes the biome's ground layers into the chunk for every
// column cell this biome owns: surface block at the height, dirt beneath,
// underground below that, water filling exposed air up to sea level, and a
// prop roll on the block above dry surface.
func (b *StandardBiome) PlaceBaseTerrain(pos core.ChunkPos, col ColumnView, chunk *core.Chunk) {
	ox, oy, oz := pos.Origin()
	for p := range core.ColumnPositions {
		if col.Biomes.IDs[p.Index()] != b.id {
			continue
		}
		h := col.Heights.Heights[p.Index()]
		wx, wz := ox+p.X(), oz+p.Z()
		dirt := b.dirtDepth(wx, wz)

		for ly := int32(0); ly < core.ChunkSide; ly++ {
			wy := oy + ly
			block := core.BlockTypeAir
			switch {
			case wy > h:
				switch {
				case wy <= SeaLevel:
					block = core.BlockTypeWater
				case wy == h+1 && h >= SeaLevel:
					block = b.rollProp(wx, wz)
				}
			case wy == h:
				block = b.surfaceBlock(h)
			case wy > h-dirt:
				block = b.dirt
			default:
				block = b.underground
				if b.oreBlock != 0 && b.oreNoise.Sample(float64(wx)*0.2, float64(wy)*0.2, float64(wz)*0.2) > b.oreThreshold {
					block = b.oreBlock
				}
			}
			if block != core.BlockTypeAir {
				chunk.Set(core.NewLocalPos(p.X(), ly, p.Z()), block)
			}
		}
	}
}

// surfaceBlock picks the top block at a surface height, swapping in the
// beach block near and below sea level.
func (b *StandardBiome) surfaceBlock(h int32) core.BlockType {
	if b.beach != 0 && h <= SeaLevel+2 {
		return b.beach
	}
	return b.surface
}

// rollProp returns the prop placed on a surface cell, or air. Earlier
// entries in the prop table shadow later ones.
func (b *StandardBiome) rollProp(wx, wz int32) core.BlockType {
	for _, p := range b.props {
		if p.roll.Mix2(uint64(wx), uint64(wz))%p.chance == 0 {
			return p.block
		}
	}
	return core.BlockTypeAir
}

// RegisterStructures plans this biome's structures anchored on surface cells
// inside the given chunk. The anchor sits on the surface block; templates
// build upward from it. Underwater surfaces plant nothing.
func (b *StandardBiome) RegisterStructures(pos core.ChunkPos, col ColumnView, out *[]PendingStructure) {
	ox, oy, oz := pos.Origin()
	for p := range core.ColumnPositions {
		if col.Biomes.IDs[p.Index()] != b.id {
			continue
		}
		h := col.Heights.Heights[p.Index()]
		if h < oy || h >= oy+core.ChunkSide || h <= SeaLevel {
			continue
		}
		wx, wz := ox+p.X(), oz+p.Z()
		for _, set := range b.structures {
			if set.roll.Mix2(uint64(wx), uint64(wz))%set.chance != 0 {
				continue
			}
			tmpl := set.templates[set.pick.Mix2(uint64(wx), uint64(wz))%uint64(len(set.templates))]
			*out = append(*out, PendingStructure{
				Anchor:    [3]int32{wx, h, wz},
				Template:  tmpl,
				Transform: TransformFromHash(set.orient.Mix2(uint64(wx), uint64(wz))),
			})
		}
	}
}

// DescribeTo writes a debug summary of the biome's configuration.
func (b *StandardBiome) DescribeTo(w io.Writer) {
	fmt.Fprintf(w, "%s: surface=%v base_height=%.1f relief_octaves=%d props=%d structure_sets=%d\n",
		b.name, b.surface, b.baseHeight, len(b.relief), len(b.props), len(b.structures))
}
