package core

// BlockType identifies a block variant.
type BlockType uint8

const (
	BlockTypeAir BlockType = iota
	BlockTypeStone
	BlockTypeDirt
	BlockTypeGrass
	BlockTypeSand
	BlockTypeSandstone
	BlockTypeGravel
	BlockTypePodzol
	BlockTypeWater
	BlockTypeDiamondOre
	BlockTypePebbles
	BlockTypeDaffodil
	BlockTypeOakLog
	BlockTypeOakLeaves
	BlockTypePineLog
	BlockTypePineLeaves
	BlockTypePlanks
	BlockTypeCobblestone

	blockTypeCount
)

// BlockInfo describes the static properties of a block type.
type BlockInfo struct {
	Name        string
	Solid       bool
	Transparent bool
}

// blockInfos is indexed by the BlockType ordinal. Built once, never mutated,
// so it is safe to read from any goroutine without synchronization.
var blockInfos = [blockTypeCount]BlockInfo{
	BlockTypeAir:         {Name: "air", Solid: false, Transparent: true},
	BlockTypeStone:       {Name: "stone", Solid: true},
	BlockTypeDirt:        {Name: "dirt", Solid: true},
	BlockTypeGrass:       {Name: "grass", Solid: true},
	BlockTypeSand:        {Name: "sand", Solid: true},
	BlockTypeSandstone:   {Name: "sandstone", Solid: true},
	BlockTypeGravel:      {Name: "gravel", Solid: true},
	BlockTypePodzol:      {Name: "podzol", Solid: true},
	BlockTypeWater:       {Name: "water", Solid: false, Transparent: true},
	BlockTypeDiamondOre:  {Name: "diamond_ore", Solid: true},
	BlockTypePebbles:     {Name: "pebbles", Solid: false, Transparent: true},
	BlockTypeDaffodil:    {Name: "daffodil", Solid: false, Transparent: true},
	BlockTypeOakLog:      {Name: "oak_log", Solid: true},
	BlockTypeOakLeaves:   {Name: "oak_leaves", Solid: true, Transparent: true},
	BlockTypePineLog:     {Name: "pine_log", Solid: true},
	BlockTypePineLeaves:  {Name: "pine_leaves", Solid: true, Transparent: true},
	BlockTypePlanks:      {Name: "planks", Solid: true},
	BlockTypeCobblestone: {Name: "cobblestone", Solid: true},
}

var blockNames = func() map[string]BlockType {
	m := make(map[string]BlockType, blockTypeCount)
	for id := BlockType(0); id < blockTypeCount; id++ {
		m[blockInfos[id].Name] = id
	}
	return m
}()

// Info returns the static properties of the block type.
func (b BlockType) Info() *BlockInfo {
	if b >= blockTypeCount {
		return &blockInfos[BlockTypeAir]
	}
	return &blockInfos[b]
}

// String returns the block's registered name.
func (b BlockType) String() string {
	return b.Info().Name
}

// BlockTypeByName resolves a registered block name to its type.
func BlockTypeByName(name string) (BlockType, bool) {
	id, ok := blockNames[name]
	return id, ok
}
