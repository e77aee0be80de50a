package world

import (
	"fmt"
	"iter"
	"math"

	"github.com/vovakirdan/tile-platformer/internal/core"
)

// Viewport is the visible screen area in world pixels.
type Viewport struct {
	W float64
	H float64
}

// TileGrid is the materialized tile array of the active level.
// It is immutable once built and rebuilt in full on every level change.
type TileGrid struct {
	coord  Coord
	view   Viewport
	layout Layout
	tiles  [][]Tile // tiles[row][col], row 0 = bottom
}

// Build materializes the level at c for the given viewport.
func Build(d *Directory, c Coord, view Viewport) (*TileGrid, error) {
	layout, err := d.Layout(c)
	if err != nil {
		return nil, err
	}
	if view.W <= 0 || view.H <= 0 {
		return nil, fmt.Errorf("world: invalid viewport %vx%v", view.W, view.H)
	}
	return NewTileGrid(c, layout, view), nil
}

// NewTileGrid materializes a decoded layout. Background tiles are kept so the
// renderer can fill the level background.
func NewTileGrid(c Coord, layout Layout, view Viewport) *TileGrid {
	g := &TileGrid{
		coord:  c,
		view:   view,
		layout: layout,
		tiles:  make([][]Tile, layout.Height()),
	}

	size := g.TileSize()
	for row, types := range layout.Rows {
		g.tiles[row] = make([]Tile, len(types))
		for col, t := range types {
			g.tiles[row][col] = Tile{
				X:    float64(col) * size,
				Y:    view.H - size*float64(row+1),
				Size: size,
				Type: t,
				Row:  row,
				Col:  col,
			}
		}
	}
	return g
}

// Coord returns the directory coordinate this grid was built from.
func (g *TileGrid) Coord() Coord {
	return g.coord
}

// Viewport returns the screen area the grid was laid out for.
func (g *TileGrid) Viewport() Viewport {
	return g.view
}

// CountX returns the number of tiles per row.
func (g *TileGrid) CountX() int {
	return g.layout.Width()
}

// Rows returns the number of tile rows.
func (g *TileGrid) Rows() int {
	return g.layout.Height()
}

// TileSize returns the edge length of a tile, derived from the screen width
// and the row length. It may be fractional.
func (g *TileGrid) TileSize() float64 {
	if g.CountX() == 0 {
		return 0
	}
	return g.view.W / float64(g.CountX())
}

// At returns the tile at (row, col).
func (g *TileGrid) At(row, col int) (Tile, bool) {
	if row < 0 || row >= len(g.tiles) || col < 0 || col >= len(g.tiles[row]) {
		return Tile{}, false
	}
	return g.tiles[row][col], true
}

// All yields every tile, row by row from the bottom.
func (g *TileGrid) All() iter.Seq[Tile] {
	return func(yield func(Tile) bool) {
		for _, row := range g.tiles {
			for _, t := range row {
				if !yield(t) {
					return
				}
			}
		}
	}
}

// Solids returns every solid tile in the grid.
func (g *TileGrid) Solids() []Tile {
	var out []Tile
	for t := range g.All() {
		if t.Solid() {
			out = append(out, t)
		}
	}
	return out
}

// Window returns the solid tiles that can overlap box: the cells under the
// box plus one tile of margin on each side. Passing the box swept over a
// tick's movement gives the full candidate set for that tick.
func (g *TileGrid) Window(box core.RectF) []Tile {
	size := g.TileSize()
	if size <= 0 {
		return nil
	}

	colMin := int(math.Floor(box.X/size)) - 1
	colMax := int(math.Floor(box.Right()/size)) + 1
	rowMin := int(math.Floor((g.view.H-box.Bottom())/size)) - 1
	rowMax := int(math.Floor((g.view.H-box.Y)/size)) + 1

	rowMin = max(rowMin, 0)
	rowMax = min(rowMax, len(g.tiles)-1)
	colMin = max(colMin, 0)
	colMax = min(colMax, g.CountX()-1)

	var out []Tile
	for row := rowMin; row <= rowMax; row++ {
		for col := colMin; col <= colMax; col++ {
			if t := g.tiles[row][col]; t.Solid() {
				out = append(out, t)
			}
		}
	}
	return out
}

// Layout returns the decoded tile types the grid was built from.
func (g *TileGrid) Layout() Layout {
	return g.layout
}

// Encode serializes the grid's tile types to the level wire format.
func (g *TileGrid) Encode() string {
	return g.layout.Encode()
}
