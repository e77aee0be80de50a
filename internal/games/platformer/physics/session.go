package physics

import (
	"fmt"

	"github.com/vovakirdan/tile-platformer/internal/core"
	"github.com/vovakirdan/tile-platformer/internal/games/platformer/world"
)

// TickResult summarizes one simulation tick.
type TickResult struct {
	Contact Contact
	Events  []Event
	Level   world.Coord
}

// Session owns the mutable simulation state of one play-through: the actor,
// the active grid (whose coordinate is the level cursor) and the set of
// visited levels. It is driven by a single tick loop and is not safe for
// concurrent use.
type Session struct {
	tuning      Tuning
	view        world.Viewport
	dir         *world.Directory
	controller  *Controller
	resolver    Resolver
	transitions *Transitions

	grid    *world.TileGrid
	actor   Actor
	visited map[world.Coord]bool
	ticks   uint64
}

// NewSession creates a session positioned at the first level.
func NewSession(dir *world.Directory, view world.Viewport, t Tuning) (*Session, error) {
	s := &Session{
		tuning:      t,
		view:        view,
		dir:         dir,
		controller:  NewController(t),
		resolver:    NewResolver(),
		transitions: NewTransitions(dir, view, t),
	}
	if err := s.Reset(); err != nil {
		return nil, err
	}
	return s, nil
}

// Reset moves the actor back to the center of level (0,0) at rest.
func (s *Session) Reset() error {
	grid, err := world.Build(s.dir, world.Coord{}, s.view)
	if err != nil {
		return err
	}

	s.grid = grid
	s.actor = s.spawn(grid)
	s.visited = map[world.Coord]bool{grid.Coord(): true}
	s.ticks = 0
	return nil
}

// spawn returns an actor at rest, centered on screen and sized for grid.
func (s *Session) spawn(grid *world.TileGrid) Actor {
	size := grid.TileSize()
	w := size * s.tuning.ActorWidthRatio
	h := size * s.tuning.ActorHeightRatio
	return Actor{Box: core.NewRectF(s.view.W/2-w/2, s.view.H/2-h/2, w, h)}
}

// Tick advances the simulation by one fixed step:
// velocities, collision, then level transitions.
func (s *Session) Tick(in Input) (TickResult, error) {
	s.ticks++

	s.controller.Step(&s.actor, in, s.grid.TileSize())

	window := s.grid.Window(s.actor.Swept())
	contact, err := s.resolver.Resolve(&s.actor, window)
	if err != nil {
		return TickResult{Level: s.grid.Coord()}, fmt.Errorf("tick %d in level %v: %w", s.ticks, s.grid.Coord(), err)
	}

	grid, events, err := s.transitions.Apply(&s.actor, s.grid)
	if err != nil {
		return TickResult{Contact: contact, Level: s.grid.Coord()}, err
	}
	s.grid = grid
	s.visited[grid.Coord()] = true

	return TickResult{Contact: contact, Events: events, Level: grid.Coord()}, nil
}

// ReplaceWorld swaps in a new world. The level cursor stays where it is,
// clamped into the new directory when the world shrank. An actor that the
// edit left inside solid tiles is moved back to the spawn point of the level.
func (s *Session) ReplaceWorld(dir *world.Directory) error {
	at := clampCoord(dir, s.grid.Coord())

	grid, err := world.Build(dir, at, s.view)
	if err != nil {
		return err
	}

	s.dir = dir
	s.transitions.SetDirectory(dir)
	s.grid = grid
	s.actor.Resize(grid.TileSize(), s.tuning)
	if embedded(s.actor.Box, grid) {
		s.actor = s.spawn(grid)
	}
	s.visited = map[world.Coord]bool{at: true}
	return nil
}

// clampCoord moves c onto the nearest existing directory cell.
func clampCoord(dir *world.Directory, c world.Coord) world.Coord {
	if dir.Has(c) {
		return c
	}
	c.Row = max(min(c.Row, dir.Rows()-1), 0)
	c.Col = max(min(c.Col, dir.Columns(c.Row)-1), 0)
	return c
}

// embedded reports whether box overlaps any solid tile of grid.
func embedded(box core.RectF, grid *world.TileGrid) bool {
	for _, t := range grid.Window(box) {
		if overlaps(box, t) {
			return true
		}
	}
	return false
}

// Actor returns a copy of the actor state.
func (s *Session) Actor() Actor {
	return s.actor
}

// Grid returns the active tile grid.
func (s *Session) Grid() *world.TileGrid {
	return s.grid
}

// Level returns the coordinate of the active level.
func (s *Session) Level() world.Coord {
	return s.grid.Coord()
}

// Directory returns the world being played.
func (s *Session) Directory() *world.Directory {
	return s.dir
}

// Viewport returns the visible screen area in world pixels.
func (s *Session) Viewport() world.Viewport {
	return s.view
}

// Visited returns how many distinct levels have been entered.
func (s *Session) Visited() int {
	return len(s.visited)
}

// Ticks returns the number of ticks simulated since the last reset.
func (s *Session) Ticks() uint64 {
	return s.ticks
}
