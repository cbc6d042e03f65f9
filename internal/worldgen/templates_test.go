package worldgen

import (
	"testing"

	"voxelgen/internal/core"
)

func TestEmbeddedTemplatesCompile(t *testing.T) {
	set, err := loadEmbeddedTemplates()
	if err != nil {
		t.Fatal(err)
	}

	for _, name := range []string{
		"oak_tree_small", "oak_tree_large",
		"pine_tree_small", "pine_tree_large",
		"boulder_small", "boulder_mossy",
		"lil_house", "village",
	} {
		if _, ok := set.Lookup(name); !ok {
			t.Errorf("embedded template %q missing", name)
		}
	}
}

func TestVillageSpansMultipleChunks(t *testing.T) {
	set, err := loadEmbeddedTemplates()
	if err != nil {
		t.Fatal(err)
	}
	v, ok := set.Lookup("village")
	if !ok {
		t.Fatal("no village template")
	}
	if width := v.Max[0] - v.Min[0] + 1; width <= core.ChunkSide {
		t.Errorf("village is %d blocks wide, expected to exceed one chunk", width)
	}
	if width := v.Max[0] - v.Min[0] + 1; width > structureReach*core.ChunkSide {
		t.Errorf("village is %d blocks wide, beyond the planning reach", width)
	}
}

func TestTemplateIdsAreStable(t *testing.T) {
	a, err := loadEmbeddedTemplates()
	if err != nil {
		t.Fatal(err)
	}
	b, err := loadEmbeddedTemplates()
	if err != nil {
		t.Fatal(err)
	}
	if a.Len() != b.Len() {
		t.Fatalf("template counts differ: %d != %d", a.Len(), b.Len())
	}
	for name, ta := range a.byName {
		tb, ok := b.Lookup(name)
		if !ok || ta.ID != tb.ID {
			t.Fatalf("template %q id not stable across loads", name)
		}
	}
}
