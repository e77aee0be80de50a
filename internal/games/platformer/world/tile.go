// Package world holds the static side of the platformer: typed tiles, the
// per-level TileGrid, and the LevelDirectory decoded from the delimited
// world text format.
package world

import (
	"fmt"

	"github.com/vovakirdan/tile-platformer/internal/core"
)

// TileType tags a tile cell. Only solid types take part in collision.
type TileType uint8

const (
	TileBackground TileType = iota // 'Z'
	TileSolidA                     // 'a'
	TileSolidB                     // 'b'
)

// tileCodes maps each TileType to its wire character.
var tileCodes = [...]byte{
	TileBackground: 'Z',
	TileSolidA:     'a',
	TileSolidB:     'b',
}

// ParseTileType decodes a wire character into a TileType.
func ParseTileType(c byte) (TileType, bool) {
	switch c {
	case 'Z':
		return TileBackground, true
	case 'a':
		return TileSolidA, true
	case 'b':
		return TileSolidB, true
	default:
		return TileBackground, false
	}
}

// Code returns the wire character for the tile type.
func (t TileType) Code() byte {
	if int(t) >= len(tileCodes) {
		return tileCodes[TileBackground]
	}
	return tileCodes[t]
}

// Solid reports whether the tile type blocks movement.
func (t TileType) Solid() bool {
	return t == TileSolidA || t == TileSolidB
}

// String returns a human-readable name for the tile type.
func (t TileType) String() string {
	switch t {
	case TileBackground:
		return "Background"
	case TileSolidA:
		return "SolidA"
	case TileSolidB:
		return "SolidB"
	default:
		return fmt.Sprintf("TileType(%d)", uint8(t))
	}
}

// Tile is one materialized cell of a TileGrid, positioned in world pixels.
type Tile struct {
	X, Y float64 // Top-left corner in world pixels (y grows downward)
	Size float64 // Edge length, uniform per level
	Type TileType
	Row  int // Grid row, 0 = bottom of the screen
	Col  int // Grid column, 0 = left of the screen
}

// Bounds returns the tile's bounding box.
func (t Tile) Bounds() core.RectF {
	return core.NewRectF(t.X, t.Y, t.Size, t.Size)
}

// Solid reports whether this tile blocks movement.
func (t Tile) Solid() bool {
	return t.Type.Solid()
}
