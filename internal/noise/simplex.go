package noise

import (
	"math"

	"github.com/aquilax/go-perlin"
	opensimplex "github.com/ojrac/opensimplex-go"
)

// Simplex2 is a seeded 2D coherent noise field with output in roughly
// [-1, 1].
type Simplex2 struct {
	n opensimplex.Noise
}

// NewSimplex2 creates a 2D simplex field seeded from the sequence.
func NewSimplex2(seq *SeedSeq) Simplex2 {
	return Simplex2{n: opensimplex.New(seq.Next())}
}

// Sample evaluates the field at (x, y).
func (s Simplex2) Sample(x, y float64) float64 {
	return s.n.Eval2(x, y)
}

// Simplex3 is the 3D analogue of Simplex2.
type Simplex3 struct {
	n opensimplex.Noise
}

// NewSimplex3 creates a 3D simplex field seeded from the sequence.
func NewSimplex3(seq *SeedSeq) Simplex3 {
	return Simplex3{n: opensimplex.New(seq.Next())}
}

// Sample evaluates the field at (x, y, z).
func (s Simplex3) Sample(x, y, z float64) float64 {
	return s.n.Eval3(x, y, z)
}

// Fractal2 sums octaves of a Simplex2 field with halving amplitude and
// doubling frequency. Output stays in roughly [-2, 2] for 6 octaves.
type Fractal2 struct {
	octaves []Simplex2
}

// NewFractal2 creates a fractal field with the given octave count.
func NewFractal2(seq *SeedSeq, octaves int) Fractal2 {
	f := Fractal2{octaves: make([]Simplex2, octaves)}
	for i := range f.octaves {
		f.octaves[i] = NewSimplex2(seq)
	}
	return f
}

// Sample evaluates the fractal field at (x, y).
func (f Fractal2) Sample(x, y float64) float64 {
	sum := 0.0
	amp := 1.0
	freq := 1.0
	for _, oct := range f.octaves {
		sum += oct.Sample(x*freq, y*freq) * amp
		amp *= 0.5
		freq *= 2.0
	}
	return sum
}

// Octave2 is a Perlin-based detail noise used for per-biome surface relief.
// Its character is visibly different from the simplex fields, which keeps
// local relief from correlating with the climate maps.
type Octave2 struct {
	p *perlin.Perlin
}

// NewOctave2 creates a Perlin detail field seeded from the sequence.
func NewOctave2(seq *SeedSeq) Octave2 {
	return Octave2{p: perlin.NewPerlin(2, 2, 3, seq.Next())}
}

// Sample evaluates the field at (x, y), clamped to [-1, 1].
func (o Octave2) Sample(x, y float64) float64 {
	return math.Max(-1, math.Min(1, o.p.Noise2D(x, y)))
}
