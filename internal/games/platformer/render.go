package platformer

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tile-platformer/internal/core"
	"github.com/vovakirdan/tile-platformer/internal/games/platformer/world"
)

// Visual characters for rendering
const (
	ActorChar      = '█'
	BackgroundChar = '·'
)

// Minimum playfield in terminal cells.
const (
	minCols = 16
	minRows = 6
)

// tileGlyph selects the glyph and color for a tile type.
func tileGlyph(t world.TileType) (rune, core.Color) {
	switch t {
	case world.TileSolidA:
		return '█', core.ColorGreen
	case world.TileSolidB:
		return '▓', core.ColorOrange
	default:
		return BackgroundChar, core.ColorGray
	}
}

// Render draws the active level, the actor and the status line.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	cols, rows := dst.Width(), dst.Height()-1 // last row is the status line
	if cols < minCols || rows < minRows {
		g.renderTooSmall(dst)
		return
	}

	f := g.Frame()
	p := newProjection(g.view, cols, rows)

	// Background first, solids over it, actor last. Background tiles only
	// mark their top-left cell so the level grid stays readable.
	for t := range f.Grid.All() {
		if t.Solid() {
			continue
		}
		r, c := tileGlyph(t.Type)
		cell := p.cells(t.Bounds())
		dst.SetColored(cell.X, cell.Y, r, c)
	}
	for t := range f.Grid.All() {
		if !t.Solid() {
			continue
		}
		r, c := tileGlyph(t.Type)
		dst.DrawRectColored(p.cells(t.Bounds()).Intersect(p.field()), r, c)
	}
	dst.DrawRectColored(p.cells(f.Actor.Box).Intersect(p.field()), ActorChar, core.ColorPink)

	g.renderStatus(dst, f)

	if f.Paused {
		g.drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}
	if g.err != nil {
		g.drawCenteredMessage(dst, "SIMULATION STOPPED", "Press Q to quit")
	}
}

// renderStatus draws the world, level and movement state on the last row.
func (g *Game) renderStatus(dst *core.Screen, f Frame) {
	state := "airborne"
	if f.Actor.Grounded {
		state = "grounded"
	}
	status := fmt.Sprintf(" %s  level %v  visited %d  %s ", f.World, f.Level, f.Visited, state)
	dst.DrawText(0, dst.Height()-1, status)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	msg := "Window too small"
	y := dst.Height() / 2
	dst.DrawTextCentered(y, msg)
	dst.DrawTextCentered(y+1, "Please resize terminal")
}

// drawCenteredMessage draws a message box in the center of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRectColored(core.NewRect(boxX, boxY, boxW, boxH), ' ', core.ColorDefault)
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	dst.DrawText(boxX+(boxW-len(title))/2, boxY+1, title)
	dst.DrawText(boxX+(boxW-len(subtitle))/2, boxY+3, subtitle)
}

// projection maps world pixels onto the terminal playfield. World space is
// already y-down, so only scaling is needed.
type projection struct {
	sx, sy     float64 // world pixels per cell
	cols, rows int
}

func newProjection(view world.Viewport, cols, rows int) projection {
	return projection{
		sx:   view.W / float64(cols),
		sy:   view.H / float64(rows),
		cols: cols,
		rows: rows,
	}
}

// cells converts a world box to the cells it covers, at least one cell.
// Edges are rounded so adjacent tiles tile the playfield without gaps.
func (p projection) cells(b core.RectF) core.Rect {
	x0 := int(math.Round(b.X / p.sx))
	x1 := int(math.Round(b.Right() / p.sx))
	y0 := int(math.Round(b.Y / p.sy))
	y1 := int(math.Round(b.Bottom() / p.sy))
	return core.NewRect(x0, y0, max(x1-x0, 1), max(y1-y0, 1))
}

// field is the playfield above the status line.
func (p projection) field() core.Rect {
	return core.NewRect(0, 0, p.cols, p.rows)
}
