package physics

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tile-platformer/internal/core"
	"github.com/vovakirdan/tile-platformer/internal/games/platformer/world"
)

// contactEpsilon absorbs float rounding when a box rests exactly on a tile edge.
const contactEpsilon = 1e-6

// Contact reports which sides of the actor were blocked during a tick.
type Contact struct {
	Grounded bool // Falling motion was stopped by a floor
	Ceiling  bool // Rising motion was stopped by a ceiling
	Wall     bool // Horizontal motion was stopped
}

// Resolver moves the actor one tick against solid tiles using an
// axis-separated sweep: X, then Y, then a final X correction. Overlap is
// removed by stepping back one unit at a time, the last step covering only
// the remaining penetration so the actor comes to rest touching the tile.
type Resolver struct {
	unit float64
}

// NewResolver creates a resolver that backs off one world pixel per step.
func NewResolver() Resolver {
	return Resolver{unit: 1}
}

// Resolve applies the actor's velocities to its box and separates it from
// the given tiles. Non-solid tiles are ignored. On return the actor does not
// overlap any solid tile on both axes, or ErrInvalidActorPlacement is returned.
func (r Resolver) Resolve(a *Actor, tiles []world.Tile) (Contact, error) {
	var contact Contact

	// Horizontal move.
	a.Box.X += a.Vel
	if a.Vel != 0 {
		for _, t := range tiles {
			if !t.Solid() || !overlaps(a.Box, t) {
				continue
			}
			if err := r.backOffX(&a.Box, t, -sign(a.Vel)); err != nil {
				return contact, err
			}
			contact.Wall = true
		}
	}

	// Vertical move. Positive Grav is upward, which is -y.
	a.Box.Y -= a.Grav
	if a.Grav != 0 {
		hit := false
		for _, t := range tiles {
			if !t.Solid() || !overlaps(a.Box, t) {
				continue
			}
			if err := r.backOffY(&a.Box, t, sign(a.Grav)); err != nil {
				return contact, err
			}
			hit = true
		}
		if hit {
			if a.Grav < 0 {
				contact.Grounded = true
			} else {
				contact.Ceiling = true
			}
			a.Grav = 0
		}
	}

	// Horizontal correction after the vertical move.
	for _, t := range tiles {
		if !t.Solid() || !overlaps(a.Box, t) {
			continue
		}
		if a.Vel == 0 {
			return contact, fmt.Errorf("%w: embedded in tile (%d,%d) with no motion to resolve",
				ErrInvalidActorPlacement, t.Row, t.Col)
		}
		if err := r.backOffX(&a.Box, t, -sign(a.Vel)); err != nil {
			return contact, err
		}
		contact.Wall = true
	}
	// Wall contact in either X pass ends horizontal motion.
	if contact.Wall {
		a.Vel = 0
	}

	for _, t := range tiles {
		if t.Solid() && overlaps(a.Box, t) {
			return contact, fmt.Errorf("%w: still overlapping tile (%d,%d) after resolution",
				ErrInvalidActorPlacement, t.Row, t.Col)
		}
	}

	a.Grounded = contact.Grounded
	return contact, nil
}

// backOffX steps box along dir until it no longer overlaps t on the x axis.
func (r Resolver) backOffX(box *core.RectF, t world.Tile, dir float64) error {
	limit := r.stepLimit(box.W, t.Size)
	for i := 0; overlapX(*box, t); i++ {
		if i >= limit {
			return fmt.Errorf("%w: x correction against tile (%d,%d) did not terminate",
				ErrInvalidActorPlacement, t.Row, t.Col)
		}
		var remaining float64
		if dir < 0 {
			remaining = box.Right() - t.X
		} else {
			remaining = t.X + t.Size - box.X
		}
		if remaining <= r.unit {
			if dir < 0 {
				box.X = t.X - box.W
			} else {
				box.X = t.X + t.Size
			}
			continue
		}
		box.X += dir * r.unit
	}
	return nil
}

// backOffY steps box along dir until it no longer overlaps t on the y axis.
func (r Resolver) backOffY(box *core.RectF, t world.Tile, dir float64) error {
	limit := r.stepLimit(box.H, t.Size)
	for i := 0; overlapY(*box, t); i++ {
		if i >= limit {
			return fmt.Errorf("%w: y correction against tile (%d,%d) did not terminate",
				ErrInvalidActorPlacement, t.Row, t.Col)
		}
		var remaining float64
		if dir < 0 {
			remaining = box.Bottom() - t.Y
		} else {
			remaining = t.Y + t.Size - box.Y
		}
		if remaining <= r.unit {
			if dir < 0 {
				box.Y = t.Y - box.H
			} else {
				box.Y = t.Y + t.Size
			}
			continue
		}
		box.Y += dir * r.unit
	}
	return nil
}

// stepLimit bounds a back-off loop: separation never needs to travel further
// than the actor extent plus the tile size.
func (r Resolver) stepLimit(extent, tileSize float64) int {
	return int(math.Ceil((extent+tileSize)/r.unit)) + 2
}

func overlapX(box core.RectF, t world.Tile) bool {
	return box.Right()-t.X > contactEpsilon && t.X+t.Size-box.X > contactEpsilon
}

func overlapY(box core.RectF, t world.Tile) bool {
	return box.Bottom()-t.Y > contactEpsilon && t.Y+t.Size-box.Y > contactEpsilon
}

func overlaps(box core.RectF, t world.Tile) bool {
	return overlapX(box, t) && overlapY(box, t)
}

func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}
