package noise

import "math"

// Voronoi2 partitions the plane into irregular cells. Each integer lattice
// cell owns one feature point jittered inside it; Cell returns the lattice
// coordinate of the nearest feature point, scanning the 3x3 neighborhood
// around the query.
type Voronoi2 struct {
	jx, jy Mixer
}

// NewVoronoi2 creates a cell partition seeded from the sequence.
func NewVoronoi2(seq *SeedSeq) Voronoi2 {
	return Voronoi2{
		jx: NewMixer(seq),
		jy: NewMixer(seq),
	}
}

// point returns the jittered feature point of lattice cell (cx, cy), as an
// offset in [0, 1) on each axis from the cell's corner.
func (v Voronoi2) point(cx, cy int32) (float64, float64) {
	return Unit(v.jx.Mix2(uint64(cx), uint64(cy))),
		Unit(v.jy.Mix2(uint64(cx), uint64(cy)))
}

// Cell returns the lattice coordinate of the cell owning (x, y).
func (v Voronoi2) Cell(x, y float64) (int32, int32) {
	xi := int32(math.Floor(x))
	yi := int32(math.Floor(y))
	xf := x - float64(xi)
	yf := y - float64(yi)

	best := math.Inf(1)
	var bx, by int32
	for dy := int32(-1); dy <= 1; dy++ {
		for dx := int32(-1); dx <= 1; dx++ {
			px, py := v.point(xi+dx, yi+dy)
			ox := float64(dx) + px - xf
			oy := float64(dy) + py - yf
			if d := ox*ox + oy*oy; d < best {
				best = d
				bx, by = xi+dx, yi+dy
			}
		}
	}
	return bx, by
}
