package worldgen

import (
	"testing"

	"voxelgen/internal/core"
)

func TestColumnStagesMemoized(t *testing.T) {
	g, err := New(17)
	if err != nil {
		t.Fatal(err)
	}

	col := g.cache.column(core.ColumnCoord{X: 2, Z: -1})
	if g.columnBiomes(col) != g.columnBiomes(col) {
		t.Error("biome stage was recomputed instead of memoized")
	}
	if g.columnHeights(col) != g.columnHeights(col) {
		t.Error("height stage was recomputed instead of memoized")
	}
}

func TestBiomeStageUniqueMatchesGrid(t *testing.T) {
	g, err := New(23)
	if err != nil {
		t.Fatal(err)
	}

	stage := g.columnBiomes(g.cache.column(core.ColumnCoord{X: 0, Z: 0}))

	var inGrid [biomeCount]bool
	for _, id := range stage.IDs {
		inGrid[id] = true
	}
	var inUnique [biomeCount]bool
	for _, id := range stage.Unique {
		if inUnique[id] {
			t.Fatalf("biome %s listed twice in unique set", id)
		}
		inUnique[id] = true
	}
	for id := BiomeID(0); id < biomeCount; id++ {
		if inGrid[id] != inUnique[id] {
			t.Fatalf("unique set disagrees with grid for biome %s", id)
		}
	}
	if len(stage.Unique) == 0 {
		t.Fatal("column has no biomes at all")
	}
}

func TestHeightEnvelopeCoversCells(t *testing.T) {
	g, err := New(29)
	if err != nil {
		t.Fatal(err)
	}

	stage := g.columnHeights(g.cache.column(core.ColumnCoord{X: -3, Z: 4}))
	for _, h := range stage.Heights {
		if h < stage.Min || h > stage.Max {
			t.Fatalf("height %d outside envelope [%d, %d]", h, stage.Min, stage.Max)
		}
	}
}

func TestHeightContinuity(t *testing.T) {
	g, err := New(31)
	if err != nil {
		t.Fatal(err)
	}

	// Sample a long strip crossing a column border. Interpolated heights
	// may step a few blocks per cell but never cliff, including at the
	// seam between independently computed columns.
	left := g.columnHeights(g.cache.column(core.ColumnCoord{X: 0, Z: 0}))
	right := g.columnHeights(g.cache.column(core.ColumnCoord{X: 1, Z: 0}))

	heightAt := func(x int32) int32 {
		if x < core.ChunkSide {
			return left.Heights[core.NewColumnPos(x, 10).Index()]
		}
		return right.Heights[core.NewColumnPos(x-core.ChunkSide, 10).Index()]
	}

	const maxStep = 24
	for x := int32(1); x < 2*core.ChunkSide; x++ {
		d := heightAt(x) - heightAt(x - 1)
		if d < -maxStep || d > maxStep {
			t.Fatalf("height cliff of %d blocks between x=%d and x=%d", d, x-1, x)
		}
	}
}

func TestSmoothstep(t *testing.T) {
	if smoothstep(0) != 0 || smoothstep(1) != 1 {
		t.Fatal("smoothstep endpoints are wrong")
	}
	prev := 0.0
	for i := 1; i <= 10; i++ {
		v := smoothstep(float64(i) / 10)
		if v < prev {
			t.Fatalf("smoothstep not monotonic at t=%v", float64(i)/10)
		}
		prev = v
	}
}
