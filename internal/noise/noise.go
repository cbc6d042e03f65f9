// Package noise provides the seeded, deterministic noise primitives used by
// the world generator. Everything here is a pure function of its inputs and
// the seed it was constructed with, so values may be sampled from any
// goroutine without synchronization.
package noise

// splitmix64 is the SplitMix64 output function. It is used to fan a single
// 64-bit seed out into independent sub-seeds.
func splitmix64(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}

// SeedSeq derives a stream of independent sub-seeds from a root seed.
//
// Registry construction draws every noise source's seed from one SeedSeq, so
// the entire generator state is a function of the single world seed.
type SeedSeq struct {
	state uint64
}

// NewSeedSeq creates a seed sequence rooted at the given world seed.
func NewSeedSeq(seed int64) *SeedSeq {
	return &SeedSeq{state: uint64(seed)}
}

// NextUint64 returns the next sub-seed in the stream.
func (s *SeedSeq) NextUint64() uint64 {
	s.state += 0x9e3779b97f4a7c15
	return splitmix64(s.state)
}

// Next returns the next sub-seed as an int64, for seeding third-party noise
// sources.
func (s *SeedSeq) Next() int64 {
	return int64(s.NextUint64())
}

// Mixer hashes two integer coordinates into a uniformly distributed uint64.
//
// It is the pure stand-in for a random roll keyed by position: the same
// (a, b) pair always mixes to the same value, which is what makes prop and
// structure placement reproducible.
type Mixer struct {
	init   uint64
	fa, fb uint64
}

// NewMixer draws a mixer state from the seed sequence.
func NewMixer(seq *SeedSeq) Mixer {
	return Mixer{
		init: seq.NextUint64(),
		// Odd multipliers so the maps are bijective on uint64.
		fa: seq.NextUint64() | 1,
		fb: seq.NextUint64() | 1,
	}
}

// Mix2 mixes the two coordinates into a single hash value.
func (m Mixer) Mix2(a, b uint64) uint64 {
	r := m.init
	r = ((r << 5) | (r >> 59)) ^ a
	r *= m.fa
	r = ((r << 5) | (r >> 59)) ^ b
	r *= m.fb
	return splitmix64(r)
}

// Unit converts a hash value to a float64 in [0, 1).
func Unit(h uint64) float64 {
	return float64(h>>11) / (1 << 53)
}
