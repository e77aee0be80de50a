package platformer

import (
	"github.com/vovakirdan/tile-platformer/internal/games/platformer/physics"
	"github.com/vovakirdan/tile-platformer/internal/games/platformer/world"
)

// Frame is the state an external renderer needs after a tick: the actor box
// and the active grid. The grid is immutable, so it is shared, not copied.
type Frame struct {
	Tick    uint64
	World   string
	Level   world.Coord
	Actor   physics.Actor
	Grid    *world.TileGrid
	Visited int
	Paused  bool
}

// Frame returns the current render handoff.
func (g *Game) Frame() Frame {
	return Frame{
		Tick:    g.session.Ticks(),
		World:   g.worldName,
		Level:   g.session.Level(),
		Actor:   g.session.Actor(),
		Grid:    g.session.Grid(),
		Visited: g.session.Visited(),
		Paused:  g.paused,
	}
}
