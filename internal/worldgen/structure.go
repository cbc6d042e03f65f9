package worldgen

import (
	"fmt"
	"sort"
	"sync"

	"voxelgen/internal/core"
	"voxelgen/pkg/structfile"
)

// Template is a compiled structure template: block names resolved to types
// and a stable numeric id assigned by compile order. Immutable after
// compilation.
type Template struct {
	Name     string
	ID       uint32
	Min, Max [3]int32
	Edits    []TemplateEdit
}

// TemplateEdit is one block write at an offset from the anchor.
type TemplateEdit struct {
	X, Y, Z int32
	Block   core.BlockType
}

// TemplateSet holds the compiled templates of a world.
type TemplateSet struct {
	byName map[string]*Template
}

// CompileTemplates resolves loaded structure files into templates. Ids are
// assigned in name order so the same file set always compiles to the same
// ids regardless of load order.
func CompileTemplates(files map[string]*structfile.Structure) (*TemplateSet, error) {
	set := &TemplateSet{byName: make(map[string]*Template, len(files))}
	for i, name := range structfile.Names(files) {
		src := files[name]
		t := &Template{
			Name:  src.Name,
			ID:    uint32(i),
			Min:   src.Min,
			Max:   src.Max,
			Edits: make([]TemplateEdit, len(src.Edits)),
		}
		for j, e := range src.Edits {
			block, ok := core.BlockTypeByName(e.Block)
			if !ok {
				return nil, fmt.Errorf("structure %q: unknown block %q", src.Name, e.Block)
			}
			t.Edits[j] = TemplateEdit{X: e.Pos[0], Y: e.Pos[1], Z: e.Pos[2], Block: block}
		}
		set.byName[t.Name] = t
	}
	return set, nil
}

// Lookup returns the template with the given name.
func (s *TemplateSet) Lookup(name string) (*Template, bool) {
	t, ok := s.byName[name]
	return t, ok
}

// Len returns the number of compiled templates.
func (s *TemplateSet) Len() int { return len(s.byName) }

// Transform is a horizontal symmetry applied to a structure instance: a
// quarter-turn count in the low two bits plus an optional X mirror.
type Transform uint8

const transformMirror Transform = 1 << 2

// TransformFromHash derives a transform from a position hash.
func TransformFromHash(h uint64) Transform {
	t := Transform(h & 3)
	if h>>2&1 == 1 {
		t |= transformMirror
	}
	return t
}

// Apply maps an anchor-relative (x, z) offset through the transform.
func (t Transform) Apply(x, z int32) (int32, int32) {
	if t&transformMirror != 0 {
		x = -x
	}
	switch t & 3 {
	case 1:
		x, z = -z, x
	case 2:
		x, z = -x, -z
	case 3:
		x, z = z, -x
	}
	return x, z
}

func (t Transform) String() string {
	s := fmt.Sprintf("rot%d", 90*int(t&3))
	if t&transformMirror != 0 {
		s += "+mirror"
	}
	return s
}

// PendingStructure is a planned structure instance: a template anchored at a
// world position with a transform. Instances are planned when their anchor
// chunk is first considered and applied lazily to every chunk their bounds
// intersect.
type PendingStructure struct {
	Anchor    [3]int32
	Template  *Template
	Transform Transform
}

// StructureKey deduplicates instances: re-planting the same template at the
// same anchor replaces the previous instance instead of stacking a second
// one.
type StructureKey struct {
	Anchor [3]int32
	ID     uint32
}

// Key returns the instance's dedup key.
func (p *PendingStructure) Key() StructureKey {
	return StructureKey{Anchor: p.Anchor, ID: p.Template.ID}
}

// Bounds returns the instance's world-space bounding box, inclusive on both
// ends.
func (p *PendingStructure) Bounds() (min, max [3]int32) {
	x0, z0 := p.Transform.Apply(p.Template.Min[0], p.Template.Min[2])
	x1, z1 := p.Transform.Apply(p.Template.Max[0], p.Template.Max[2])
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	if z0 > z1 {
		z0, z1 = z1, z0
	}
	min = [3]int32{p.Anchor[0] + x0, p.Anchor[1] + p.Template.Min[1], p.Anchor[2] + z0}
	max = [3]int32{p.Anchor[0] + x1, p.Anchor[1] + p.Template.Max[1], p.Anchor[2] + z1}
	return min, max
}

// intersectsChunk reports whether the instance's bounds touch the chunk.
func (p *PendingStructure) intersectsChunk(pos core.ChunkPos) bool {
	min, max := p.Bounds()
	ox, oy, oz := pos.Origin()
	return max[0] >= ox && min[0] < ox+core.ChunkSide &&
		max[1] >= oy && min[1] < oy+core.ChunkSide &&
		max[2] >= oz && min[2] < oz+core.ChunkSide
}

// writeTo applies the instance's edits that fall inside the chunk.
func (p *PendingStructure) writeTo(pos core.ChunkPos, chunk *core.Chunk) {
	for _, e := range p.Template.Edits {
		x, z := p.Transform.Apply(e.X, e.Z)
		lp, ok := core.CheckedLocalPos(pos, p.Anchor[0]+x, p.Anchor[1]+e.Y, p.Anchor[2]+z)
		if !ok {
			continue
		}
		chunk.Set(lp, e.Block)
	}
}

// StructureRegistry is the world's shared set of planned structure
// instances, keyed for dedup. All methods are safe for concurrent use.
type StructureRegistry struct {
	mu      sync.RWMutex
	pending map[StructureKey]PendingStructure
}

// NewStructureRegistry returns an empty registry.
func NewStructureRegistry() *StructureRegistry {
	return &StructureRegistry{pending: make(map[StructureKey]PendingStructure)}
}

// Register plans one instance, replacing any previous instance with the
// same anchor and template.
func (r *StructureRegistry) Register(p PendingStructure) {
	r.mu.Lock()
	r.pending[p.Key()] = p
	r.mu.Unlock()
}

// RegisterAll plans a batch under one lock acquisition.
func (r *StructureRegistry) RegisterAll(batch []PendingStructure) {
	if len(batch) == 0 {
		return
	}
	r.mu.Lock()
	for _, p := range batch {
		r.pending[p.Key()] = p
	}
	r.mu.Unlock()
}

// PendingCount returns the number of planned instances.
func (r *StructureRegistry) PendingCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.pending)
}

// WriteChunk applies every planned instance whose bounds intersect the
// chunk. Overlapping instances are applied in key order so the outcome does
// not depend on map iteration order.
func (r *StructureRegistry) WriteChunk(pos core.ChunkPos, chunk *core.Chunk) {
	r.mu.RLock()
	var hits []PendingStructure
	for _, p := range r.pending {
		if p.intersectsChunk(pos) {
			hits = append(hits, p)
		}
	}
	r.mu.RUnlock()

	sort.Slice(hits, func(i, j int) bool {
		a, b := hits[i].Key(), hits[j].Key()
		if a.Anchor != b.Anchor {
			if a.Anchor[0] != b.Anchor[0] {
				return a.Anchor[0] < b.Anchor[0]
			}
			if a.Anchor[1] != b.Anchor[1] {
				return a.Anchor[1] < b.Anchor[1]
			}
			return a.Anchor[2] < b.Anchor[2]
		}
		return a.ID < b.ID
	})

	for i := range hits {
		hits[i].writeTo(pos, chunk)
	}
}

// Cleanup drops planned instances anchored outside the retention window:
// horizontal chunk distance beyond hRadius or vertical beyond vRadius from
// the center. Instances near live chunks survive so re-generated neighbors
// keep seeing them; dropped ones are re-planned deterministically if their
// region is ever revisited.
func (r *StructureRegistry) Cleanup(center core.ChunkPos, hRadius, vRadius int32) {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := make(map[StructureKey]PendingStructure, len(r.pending))
	for k, p := range r.pending {
		cp := core.ChunkPosFromWorld(p.Anchor[0], p.Anchor[1], p.Anchor[2])
		dx, dy, dz := cp.X-center.X, cp.Y-center.Y, cp.Z-center.Z
		if dx*dx+dz*dz <= hRadius*hRadius && dy >= -vRadius && dy <= vRadius {
			kept[k] = p
		}
	}
	r.pending = kept
}
