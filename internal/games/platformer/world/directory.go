package world

import (
	"errors"
	"fmt"
	"strings"
)

// Separators of the world text format.
const (
	RowSeparator     = "|" // between rows of the directory
	LevelSeparator   = "-" // between levels within a directory row
	TileRowSeparator = "/" // between tile rows within a level
)

// ErrMalformedLevelData is returned when world text cannot be decoded or a
// requested level does not exist.
var ErrMalformedLevelData = errors.New("world: malformed level data")

// Coord addresses a level in the directory.
type Coord struct {
	Row int
	Col int
}

// String returns a string representation of the coordinate.
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Layout is the decoded tile-type matrix of one level.
// Rows[0] is the bottom row of the screen.
type Layout struct {
	Rows [][]TileType
}

// Width returns the number of tiles per row (tile_count_x).
func (l Layout) Width() int {
	if len(l.Rows) == 0 {
		return 0
	}
	return len(l.Rows[0])
}

// Height returns the number of tile rows.
func (l Layout) Height() int {
	return len(l.Rows)
}

// Encode serializes the layout back to the level wire format.
func (l Layout) Encode() string {
	var sb strings.Builder
	sb.Grow(l.Height() * (l.Width() + 1))
	for i, row := range l.Rows {
		if i > 0 {
			sb.WriteString(TileRowSeparator)
		}
		for _, t := range row {
			sb.WriteByte(t.Code())
		}
	}
	return sb.String()
}

// Equal returns true if both layouts have the same shape and tile types.
func (l Layout) Equal(other Layout) bool {
	if l.Height() != other.Height() {
		return false
	}
	for i := range l.Rows {
		if len(l.Rows[i]) != len(other.Rows[i]) {
			return false
		}
		for j := range l.Rows[i] {
			if l.Rows[i][j] != other.Rows[i][j] {
				return false
			}
		}
	}
	return true
}

// ParseLayout decodes a single level ("row/row/row").
func ParseLayout(level string) (Layout, error) {
	if level == "" {
		return Layout{}, fmt.Errorf("%w: empty level", ErrMalformedLevelData)
	}

	parts := strings.Split(level, TileRowSeparator)
	rows := make([][]TileType, len(parts))
	width := len(parts[0])

	for i, part := range parts {
		if part == "" {
			return Layout{}, fmt.Errorf("%w: tile row %d is empty", ErrMalformedLevelData, i)
		}
		if len(part) != width {
			return Layout{}, fmt.Errorf("%w: tile row %d has %d tiles, expected %d",
				ErrMalformedLevelData, i, len(part), width)
		}

		row := make([]TileType, width)
		for j := 0; j < len(part); j++ {
			t, ok := ParseTileType(part[j])
			if !ok {
				return Layout{}, fmt.Errorf("%w: unknown tile code %q at row %d column %d",
					ErrMalformedLevelData, part[j], i, j)
			}
			row[j] = t
		}
		rows[i] = row
	}

	return Layout{Rows: rows}, nil
}

// Directory is the 2D grid of levels making up a world.
// Directory rows may hold different numbers of levels.
type Directory struct {
	levels [][]Layout
}

// Parse decodes a whole world blob. Every level is decoded eagerly so that a
// malformed world fails before play starts.
func Parse(data string) (*Directory, error) {
	data = strings.TrimSpace(data)
	if data == "" {
		return nil, fmt.Errorf("%w: empty world", ErrMalformedLevelData)
	}

	rowParts := strings.Split(data, RowSeparator)
	levels := make([][]Layout, len(rowParts))

	for r, rowPart := range rowParts {
		levelParts := strings.Split(rowPart, LevelSeparator)
		levels[r] = make([]Layout, len(levelParts))

		for c, levelPart := range levelParts {
			layout, err := ParseLayout(levelPart)
			if err != nil {
				return nil, fmt.Errorf("level %v: %w", Coord{Row: r, Col: c}, err)
			}
			levels[r][c] = layout
		}
	}

	return &Directory{levels: levels}, nil
}

// NewDirectory builds a directory from already decoded layouts.
func NewDirectory(levels [][]Layout) *Directory {
	return &Directory{levels: levels}
}

// Rows returns the number of directory rows.
func (d *Directory) Rows() int {
	return len(d.levels)
}

// Columns returns the number of levels in a directory row, or 0 if the row
// does not exist.
func (d *Directory) Columns(row int) int {
	if row < 0 || row >= len(d.levels) {
		return 0
	}
	return len(d.levels[row])
}

// Has reports whether a level exists at the coordinate.
func (d *Directory) Has(c Coord) bool {
	return c.Col >= 0 && c.Col < d.Columns(c.Row)
}

// Layout returns the level at the coordinate.
func (d *Directory) Layout(c Coord) (Layout, error) {
	if !d.Has(c) {
		return Layout{}, fmt.Errorf("%w: no level at %v", ErrMalformedLevelData, c)
	}
	return d.levels[c.Row][c.Col], nil
}

// LevelCount returns the total number of levels in the world.
func (d *Directory) LevelCount() int {
	n := 0
	for _, row := range d.levels {
		n += len(row)
	}
	return n
}

// Encode serializes the whole world back to the wire format.
func (d *Directory) Encode() string {
	var sb strings.Builder
	for r, row := range d.levels {
		if r > 0 {
			sb.WriteString(RowSeparator)
		}
		for c, layout := range row {
			if c > 0 {
				sb.WriteString(LevelSeparator)
			}
			sb.WriteString(layout.Encode())
		}
	}
	return sb.String()
}
