// Package physics implements the per-tick platformer simulation: input and
// gravity integration, axis-separated collision against the active TileGrid,
// and level streaming when the actor leaves the screen.
//
// World space is screen space: x grows right, y grows down. Vertical
// velocity is positive upward, so it is integrated as y -= Grav.
package physics

import (
	"errors"

	"github.com/vovakirdan/tile-platformer/internal/core"
)

// ErrInvalidActorPlacement is returned when the actor cannot be separated
// from solid geometry, which means it was placed inside a wall.
var ErrInvalidActorPlacement = errors.New("physics: invalid actor placement")

// Tuning holds the immutable per-tick movement constants in world pixels.
type Tuning struct {
	RunPeak      float64 // Maximum horizontal speed while running
	SprintPeak   float64 // Maximum horizontal speed while sprinting
	Acceleration float64 // Horizontal speed change per tick, also used as friction
	JumpImpulse  float64 // Vertical velocity set by a jump
	Gravity      float64 // Vertical velocity lost per tick

	ActorWidthRatio  float64 // Actor width as a multiple of the tile size
	ActorHeightRatio float64 // Actor height as a multiple of the tile size
}

// Input is the per-tick control snapshot consumed by the simulation.
type Input struct {
	Left   bool
	Right  bool
	Jump   bool
	Sprint bool
}

// InputFromFrame converts a platform input frame into a control snapshot.
func InputFromFrame(f core.InputFrame) Input {
	return Input{
		Left:   f.Has(core.ActionLeft),
		Right:  f.Has(core.ActionRight),
		Jump:   f.Has(core.ActionJump),
		Sprint: f.Has(core.ActionSprint),
	}
}

// Actor is the player: a box with horizontal (Vel) and vertical (Grav)
// velocity. Grounded is the result of the most recent collision pass.
type Actor struct {
	Box      core.RectF
	Vel      float64
	Grav     float64
	Grounded bool
}

// Resize sets the actor's size from the tile size, keeping its center fixed.
func (a *Actor) Resize(tileSize float64, t Tuning) {
	w := tileSize * t.ActorWidthRatio
	h := tileSize * t.ActorHeightRatio
	if w == a.Box.W && h == a.Box.H {
		return
	}
	cx, cy := a.Box.Center()
	a.Box = core.NewRectF(cx-w/2, cy-h/2, w, h)
}

// Swept returns the box covering the actor's current position and the
// position it would reach with its current velocities.
func (a *Actor) Swept() core.RectF {
	return a.Box.Union(a.Box.Translate(a.Vel, -a.Grav))
}
