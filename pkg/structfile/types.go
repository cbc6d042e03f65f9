// Package structfile loads declarative structure templates: a bounding box
// plus a list of block edits relative to the structure's anchor. Templates
// are plain JSON so they can be authored by hand and embedded or shipped as
// loose assets.
package structfile

import "fmt"

// Edit places one block at an offset from the structure's anchor.
type Edit struct {
	Pos   [3]int32 `json:"pos"`
	Block string   `json:"block"`
}

// Structure is a loaded structure template.
type Structure struct {
	Name  string   `json:"name"`
	Min   [3]int32 `json:"min"`
	Max   [3]int32 `json:"max"`
	Edits []Edit   `json:"edits"`
}

// Validate checks that the bounding box is well formed and that every edit
// falls inside it.
func (s *Structure) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("structure has no name")
	}
	for axis := 0; axis < 3; axis++ {
		if s.Min[axis] > s.Max[axis] {
			return fmt.Errorf("structure %q: min exceeds max on axis %d", s.Name, axis)
		}
	}
	for i, e := range s.Edits {
		for axis := 0; axis < 3; axis++ {
			if e.Pos[axis] < s.Min[axis] || e.Pos[axis] > s.Max[axis] {
				return fmt.Errorf("structure %q: edit %d at %v is outside bounds", s.Name, i, e.Pos)
			}
		}
		if e.Block == "" {
			return fmt.Errorf("structure %q: edit %d has no block", s.Name, i)
		}
	}
	return nil
}
