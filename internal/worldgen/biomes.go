package worldgen

import (
	"fmt"

	"voxelgen/internal/core"
	"voxelgen/internal/noise"
)

// biomeBuilder assembles a StandardBiome, drawing every noise source from
// the registry's seed sequence in a fixed order so the built biome is a
// function of the world seed alone.
type biomeBuilder struct {
	b         *StandardBiome
	seq       *noise.SeedSeq
	templates *TemplateSet
	err       error
}

func newBiome(id BiomeID, seq *noise.SeedSeq, templates *TemplateSet) *biomeBuilder {
	return &biomeBuilder{
		b: &StandardBiome{
			id:          id,
			name:        id.String(),
			surface:     core.BlockTypeGrass,
			dirt:        core.BlockTypeDirt,
			underground: core.BlockTypeStone,
			dirtMin:     2,
			dirtMax:     4,
			dirtNoise:   noise.NewSimplex2(seq),
			oreNoise:    noise.NewSimplex3(seq),
		},
		seq:       seq,
		templates: templates,
	}
}

func (bb *biomeBuilder) blocks(surface, dirt, underground core.BlockType) *biomeBuilder {
	bb.b.surface, bb.b.dirt, bb.b.underground = surface, dirt, underground
	return bb
}

func (bb *biomeBuilder) beach(block core.BlockType) *biomeBuilder {
	bb.b.beach = block
	return bb
}

func (bb *biomeBuilder) dirtDepth(min, max int32) *biomeBuilder {
	bb.b.dirtMin, bb.b.dirtMax = min, max
	return bb
}

func (bb *biomeBuilder) baseHeight(h float64) *biomeBuilder {
	bb.b.baseHeight = h
	return bb
}

func (bb *biomeBuilder) relief(amplitude, frequency float64) *biomeBuilder {
	bb.b.relief = append(bb.b.relief, reliefNoise{
		n:         noise.NewOctave2(bb.seq),
		amplitude: amplitude,
		frequency: frequency,
	})
	return bb
}

func (bb *biomeBuilder) ore(block core.BlockType, threshold float64) *biomeBuilder {
	bb.b.oreBlock, bb.b.oreThreshold = block, threshold
	return bb
}

func (bb *biomeBuilder) prop(block core.BlockType, chance uint64) *biomeBuilder {
	bb.b.props = append(bb.b.props, propSpec{
		block:  block,
		chance: chance,
		roll:   noise.NewMixer(bb.seq),
	})
	return bb
}

func (bb *biomeBuilder) structureSet(chance uint64, names ...string) *biomeBuilder {
	spec := structureSpec{
		chance: chance,
		roll:   noise.NewMixer(bb.seq),
		pick:   noise.NewMixer(bb.seq),
		orient: noise.NewMixer(bb.seq),
	}
	for _, name := range names {
		t, ok := bb.templates.Lookup(name)
		if !ok {
			if bb.err == nil {
				bb.err = fmt.Errorf("biome %s: unknown structure template %q", bb.b.name, name)
			}
			return bb
		}
		spec.templates = append(spec.templates, t)
	}
	bb.b.structures = append(bb.b.structures, spec)
	return bb
}

func (bb *biomeBuilder) build() (*StandardBiome, error) {
	return bb.b, bb.err
}

// NewRegistry builds the biome registry for a world. Biomes are constructed
// in BiomeID order from the shared seed sequence; changing the order or the
// tables below changes every world.
func NewRegistry(seq *noise.SeedSeq, templates *TemplateSet) (*Registry, error) {
	r := &Registry{}
	r.infos[BiomeVoid] = BiomeInfo{
		ID:       BiomeVoid,
		Name:     BiomeVoid.String(),
		Behavior: voidBehavior{},
	}

	type def struct {
		id              BiomeID
		cont, temp, hum ClimateRange
		weight          uint32
		build           func(*biomeBuilder) *biomeBuilder
	}

	// Climate gates must cover the whole climate space: continentality
	// below zero is always ocean, and plains accept any land climate, so
	// no cell ever falls through to void.
	defs := []def{
		{
			id:     BiomeOcean,
			cont:   ClimateRange{Min: -1, Max: 0},
			temp:   FullClimateRange(),
			hum:    FullClimateRange(),
			weight: 100,
			build: func(bb *biomeBuilder) *biomeBuilder {
				return bb.
					blocks(core.BlockTypeSand, core.BlockTypeSand, core.BlockTypeStone).
					dirtDepth(3, 6).
					baseHeight(-14).
					relief(8, 1.0/96).
					relief(3, 1.0/24)
			},
		},
		{
			id:     BiomePlains,
			cont:   ClimateRange{Min: 0, Max: 1},
			temp:   FullClimateRange(),
			hum:    FullClimateRange(),
			weight: 100,
			build: func(bb *biomeBuilder) *biomeBuilder {
				return bb.
					beach(core.BlockTypeSand).
					baseHeight(6).
					relief(3, 1.0/64).
					relief(1.5, 1.0/20).
					prop(core.BlockTypeDaffodil, 48).
					prop(core.BlockTypePebbles, 96).
					structureSet(2048, "boulder_small", "boulder_mossy").
					structureSet(6144, "lil_house").
					structureSet(24576, "village")
			},
		},
		{
			id:     BiomeOakForest,
			cont:   ClimateRange{Min: 0, Max: 1},
			temp:   ClimateRange{Min: -0.4, Max: 0.6},
			hum:    ClimateRange{Min: -0.2, Max: 1},
			weight: 100,
			build: func(bb *biomeBuilder) *biomeBuilder {
				return bb.
					beach(core.BlockTypeSand).
					baseHeight(8).
					relief(4, 1.0/48).
					relief(2, 1.0/16).
					prop(core.BlockTypeDaffodil, 128).
					structureSet(40, "oak_tree_small", "oak_tree_large").
					structureSet(1536, "boulder_mossy")
			},
		},
		{
			id:     BiomePineForest,
			cont:   ClimateRange{Min: 0, Max: 1},
			temp:   ClimateRange{Min: -1, Max: 0.1},
			hum:    FullClimateRange(),
			weight: 80,
			build: func(bb *biomeBuilder) *biomeBuilder {
				return bb.
					blocks(core.BlockTypePodzol, core.BlockTypeDirt, core.BlockTypeStone).
					beach(core.BlockTypeGravel).
					baseHeight(10).
					relief(5, 1.0/56).
					relief(2, 1.0/18).
					prop(core.BlockTypePebbles, 112).
					structureSet(36, "pine_tree_small", "pine_tree_large").
					structureSet(1024, "boulder_small")
			},
		},
		{
			id:     BiomeDesert,
			cont:   ClimateRange{Min: 0, Max: 1},
			temp:   ClimateRange{Min: 0.1, Max: 1},
			hum:    ClimateRange{Min: -1, Max: 0.1},
			weight: 80,
			build: func(bb *biomeBuilder) *biomeBuilder {
				return bb.
					blocks(core.BlockTypeSand, core.BlockTypeSand, core.BlockTypeSandstone).
					dirtDepth(3, 7).
					baseHeight(7).
					relief(4, 1.0/80).
					relief(1.5, 1.0/28).
					prop(core.BlockTypePebbles, 80)
			},
		},
		{
			id:     BiomeMountain,
			cont:   ClimateRange{Min: 0.4, Max: 1},
			temp:   FullClimateRange(),
			hum:    FullClimateRange(),
			weight: 60,
			build: func(bb *biomeBuilder) *biomeBuilder {
				return bb.
					blocks(core.BlockTypeStone, core.BlockTypeStone, core.BlockTypeStone).
					beach(core.BlockTypeGravel).
					dirtDepth(4, 8).
					baseHeight(26).
					relief(24, 1.0/128).
					relief(9, 1.0/40).
					relief(3, 1.0/14).
					ore(core.BlockTypeDiamondOre, 0.82).
					structureSet(512, "boulder_small", "boulder_mossy")
			},
		},
	}

	for _, d := range defs {
		b, err := d.build(newBiome(d.id, seq, templates)).build()
		if err != nil {
			return nil, err
		}
		r.infos[d.id] = BiomeInfo{
			ID:             d.id,
			Name:           d.id.String(),
			Continentality: d.cont,
			Temperature:    d.temp,
			Humidity:       d.hum,
			Weight:         d.weight,
			Behavior:       b,
		}
	}
	return r, nil
}
