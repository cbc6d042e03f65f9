package core

// Chunk is a 32x32x32 cube of block data.
//
// The backing array is allocated on the first non-air write, so empty chunks
// (common above the surface and deep underground) cost a single pointer.
type Chunk struct {
	blocks *[ChunkSize]BlockType
}

// NewChunk returns an empty chunk.
func NewChunk() *Chunk {
	return &Chunk{}
}

// Get returns the block at the given local position.
func (c *Chunk) Get(pos LocalPos) BlockType {
	if c.blocks == nil {
		return BlockTypeAir
	}
	return c.blocks[pos.Index()]
}

// Set writes the block at the given local position.
func (c *Chunk) Set(pos LocalPos, b BlockType) {
	if c.blocks == nil {
		if b == BlockTypeAir {
			return
		}
		c.blocks = new([ChunkSize]BlockType)
	}
	c.blocks[pos.Index()] = b
}

// IsEmpty reports whether the chunk has never held a non-air block.
func (c *Chunk) IsEmpty() bool {
	return c.blocks == nil
}
