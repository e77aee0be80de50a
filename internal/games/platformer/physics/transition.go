package physics

import (
	"fmt"

	"github.com/vovakirdan/tile-platformer/internal/games/platformer/world"
)

// Edge identifies a screen edge crossed by the actor's center.
type Edge int

const (
	EdgeLeft Edge = iota
	EdgeRight
	EdgeTop
	EdgeBottom
)

// String returns a human-readable name for the edge.
func (e Edge) String() string {
	switch e {
	case EdgeLeft:
		return "left"
	case EdgeRight:
		return "right"
	case EdgeTop:
		return "top"
	case EdgeBottom:
		return "bottom"
	default:
		return "unknown"
	}
}

// step returns the directory offset for moving through the edge.
// Directory row 0 is the top of the world, so leaving through the top
// moves to the previous row.
func (e Edge) step() (dRow, dCol int) {
	switch e {
	case EdgeLeft:
		return 0, -1
	case EdgeRight:
		return 0, 1
	case EdgeTop:
		return -1, 0
	default:
		return 1, 0
	}
}

// EventKind distinguishes a level change from a world-edge clamp.
type EventKind int

const (
	EventTransition EventKind = iota
	EventClamp
)

// Event describes what happened when the actor crossed a screen edge.
type Event struct {
	Kind EventKind
	Edge Edge
	From world.Coord
	To   world.Coord // Equal to From for clamps
}

// Transitions streams levels in and out as the actor crosses screen edges.
type Transitions struct {
	dir    *world.Directory
	view   world.Viewport
	tuning Tuning
}

// NewTransitions creates a transition manager over the given world.
func NewTransitions(dir *world.Directory, view world.Viewport, t Tuning) *Transitions {
	return &Transitions{dir: dir, view: view, tuning: t}
}

// SetDirectory swaps the world used for adjacency lookups.
func (m *Transitions) SetDirectory(dir *world.Directory) {
	m.dir = dir
}

// Apply checks the four screen edges against the actor's center, in the
// order left, right, top, bottom. It returns the grid that is active
// afterwards, which is a freshly built grid if a transition happened.
func (m *Transitions) Apply(a *Actor, grid *world.TileGrid) (*world.TileGrid, []Event, error) {
	var events []Event

	for _, edge := range []Edge{EdgeLeft, EdgeRight, EdgeTop, EdgeBottom} {
		if !m.crossed(a, edge) {
			continue
		}

		from := grid.Coord()
		dRow, dCol := edge.step()
		to := world.Coord{Row: from.Row + dRow, Col: from.Col + dCol}

		if !m.dir.Has(to) {
			m.clamp(a, edge)
			events = append(events, Event{Kind: EventClamp, Edge: edge, From: from, To: from})
			continue
		}

		next, err := world.Build(m.dir, to, m.view)
		if err != nil {
			return grid, events, fmt.Errorf("physics: entering level %v: %w", to, err)
		}
		grid = next
		a.Resize(grid.TileSize(), m.tuning)
		m.enter(a, edge)
		events = append(events, Event{Kind: EventTransition, Edge: edge, From: from, To: to})
	}

	return grid, events, nil
}

// crossed reports whether the actor's center is past the edge.
func (m *Transitions) crossed(a *Actor, edge Edge) bool {
	cx, cy := a.Box.Center()
	switch edge {
	case EdgeLeft:
		return cx < 0
	case EdgeRight:
		return cx > m.view.W
	case EdgeTop:
		return cy < 0
	default:
		return cy > m.view.H
	}
}

// enter places the actor one pixel inside the edge opposite to the one it
// left through. Horizontal moves stop horizontal motion; vertical moves keep
// the fall or jump going.
func (m *Transitions) enter(a *Actor, edge Edge) {
	switch edge {
	case EdgeLeft:
		a.Box.X = m.view.W - a.Box.W/2 - 1
		a.Vel = 0
	case EdgeRight:
		a.Box.X = -a.Box.W/2 + 1
		a.Vel = 0
	case EdgeTop:
		a.Box.Y = m.view.H - a.Box.H/2 - 1
	case EdgeBottom:
		a.Box.Y = -a.Box.H/2 + 1
	}
}

// clamp holds the actor's center on a world edge. Velocity is untouched.
func (m *Transitions) clamp(a *Actor, edge Edge) {
	switch edge {
	case EdgeLeft:
		a.Box.X = -a.Box.W / 2
	case EdgeRight:
		a.Box.X = m.view.W - a.Box.W/2
	case EdgeTop:
		a.Box.Y = -a.Box.H / 2
	case EdgeBottom:
		a.Box.Y = m.view.H - a.Box.H/2
	}
}
