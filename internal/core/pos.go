package core

import "fmt"

// ChunkSide is the side length of a chunk in blocks. Chunks are cubes.
const ChunkSide = 32

// ChunkSize is the total number of blocks in a chunk.
const ChunkSize = ChunkSide * ChunkSide * ChunkSide

// ColumnArea is the number of cells in one horizontal slice of a chunk,
// which is also the size of the per-column biome and height grids.
const ColumnArea = ChunkSide * ChunkSide

// ChunkPos is a 3D chunk coordinate.
type ChunkPos struct {
	X, Y, Z int32
}

// Column returns the column this chunk belongs to.
func (p ChunkPos) Column() ColumnCoord {
	return ColumnCoord{X: p.X, Z: p.Z}
}

// Origin returns the world-space block coordinate of the chunk's minimum
// corner.
func (p ChunkPos) Origin() (x, y, z int32) {
	return p.X * ChunkSide, p.Y * ChunkSide, p.Z * ChunkSide
}

func (p ChunkPos) String() string {
	return fmt.Sprintf("(%d, %d, %d)", p.X, p.Y, p.Z)
}

// ColumnCoord is a 2D chunk-column coordinate: all chunks sharing (X, Z).
type ColumnCoord struct {
	X, Z int32
}

// Origin returns the world-space block coordinate of the column's minimum
// corner.
func (c ColumnCoord) Origin() (x, z int32) {
	return c.X * ChunkSide, c.Z * ChunkSide
}

func (c ColumnCoord) String() string {
	return fmt.Sprintf("(%d, %d)", c.X, c.Z)
}

// localMask selects one 5-bit axis of a packed local position.
const localMask = ChunkSide - 1

// LocalPos is a block position within a chunk, packed into a single index
// that is guaranteed to be less than ChunkSize.
//
// The packing formula is index = x + y*32 + z*32*32, so every value of the
// underlying index below ChunkSize is a valid position: the factories below
// are the only constructors and they enforce the bound, which lets all
// downstream indexing go unchecked.
type LocalPos uint16

// NewLocalPos creates a LocalPos from local coordinates.
//
// Out-of-bounds coordinates are a programmer error and panic.
func NewLocalPos(x, y, z int32) LocalPos {
	if uint32(x) >= ChunkSide || uint32(y) >= ChunkSide || uint32(z) >= ChunkSide {
		panic(fmt.Sprintf("local position out of bounds: (%d, %d, %d)", x, y, z))
	}
	return LocalPos(x | y<<5 | z<<10)
}

// LocalPosFromWorld converts a world-space block position to the local
// position within its containing chunk.
func LocalPosFromWorld(x, y, z int32) LocalPos {
	return LocalPos(x&localMask | y&localMask<<5 | z&localMask<<10)
}

// CheckedLocalPos converts world coordinates to a local position of the
// chunk at pos, reporting ok=false when the world position falls outside
// that chunk.
func CheckedLocalPos(pos ChunkPos, x, y, z int32) (LocalPos, bool) {
	lx := x - pos.X*ChunkSide
	ly := y - pos.Y*ChunkSide
	lz := z - pos.Z*ChunkSide
	if uint32(lx) >= ChunkSide || uint32(ly) >= ChunkSide || uint32(lz) >= ChunkSide {
		return 0, false
	}
	return LocalPos(lx | ly<<5 | lz<<10), true
}

// X returns the local X coordinate.
func (p LocalPos) X() int32 { return int32(p) & localMask }

// Y returns the local Y coordinate.
func (p LocalPos) Y() int32 { return int32(p) >> 5 & localMask }

// Z returns the local Z coordinate.
func (p LocalPos) Z() int32 { return int32(p) >> 10 & localMask }

// Index returns the flat block index, guaranteed to be less than ChunkSize.
func (p LocalPos) Index() int { return int(p) }

// Column returns the column-local position sharing this position's X and Z.
func (p LocalPos) Column() ColumnPos {
	return ColumnPos(p.X() | p.Z()<<5)
}

// LocalPositions iterates over every local position of a chunk.
func LocalPositions(yield func(LocalPos) bool) {
	for i := 0; i < ChunkSize; i++ {
		if !yield(LocalPos(i)) {
			return
		}
	}
}

// ColumnPos is a cell position within a chunk column, packed as
// index = x + z*32 and guaranteed to be less than ColumnArea.
type ColumnPos uint16

// NewColumnPos creates a ColumnPos from column-local coordinates.
//
// Out-of-bounds coordinates are a programmer error and panic.
func NewColumnPos(x, z int32) ColumnPos {
	if uint32(x) >= ChunkSide || uint32(z) >= ChunkSide {
		panic(fmt.Sprintf("column position out of bounds: (%d, %d)", x, z))
	}
	return ColumnPos(x | z<<5)
}

// ColumnPosFromWorld converts a world-space (x, z) position to the cell
// position within its containing column.
func ColumnPosFromWorld(x, z int32) ColumnPos {
	return ColumnPos(x&localMask | z&localMask<<5)
}

// X returns the column-local X coordinate.
func (p ColumnPos) X() int32 { return int32(p) & localMask }

// Z returns the column-local Z coordinate.
func (p ColumnPos) Z() int32 { return int32(p) >> 5 & localMask }

// Index returns the flat cell index, guaranteed to be less than ColumnArea.
func (p ColumnPos) Index() int { return int(p) }

// ColumnPositions iterates over every cell position of a column.
func ColumnPositions(yield func(ColumnPos) bool) {
	for i := 0; i < ColumnArea; i++ {
		if !yield(ColumnPos(i)) {
			return
		}
	}
}

// FloorDiv divides a by b rounding towards negative infinity.
func FloorDiv(a, b int32) int32 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

// ChunkPosFromWorld returns the chunk containing the world-space block
// position.
func ChunkPosFromWorld(x, y, z int32) ChunkPos {
	return ChunkPos{
		X: FloorDiv(x, ChunkSide),
		Y: FloorDiv(y, ChunkSide),
		Z: FloorDiv(z, ChunkSide),
	}
}
