package physics

import (
	"testing"

	"github.com/vovakirdan/tile-platformer/internal/games/platformer/world"
)

// wideLevel has five tiles per row, so its tiles are twice the size of
// floorLevel's on the test viewport.
func wideLevel() string {
	return level("aaaaa", "ZZZZZ", "ZZZZZ", "ZZZZZ", "ZZZZZ")
}

func buildAt(t *testing.T, d *world.Directory, c world.Coord) *world.TileGrid {
	t.Helper()
	g, err := world.Build(d, c, testView)
	if err != nil {
		t.Fatalf("Build(%v) failed: %v", c, err)
	}
	return g
}

func actorAt(x, y, w, h float64) Actor {
	a := Actor{}
	a.Box.X, a.Box.Y, a.Box.W, a.Box.H = x, y, w, h
	return a
}

func TestTransitionRightEntersNextLevel(t *testing.T) {
	d := mustDirectory(t, floorLevel()+world.LevelSeparator+wideLevel())
	m := NewTransitions(d, testView, testTuning())

	a := actorAt(94, 70, 13, 20) // center x = 100.5
	a.Vel, a.Grav = 4, -1

	grid, events, err := m.Apply(&a, buildAt(t, d, world.Coord{}))
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	if grid.Coord() != (world.Coord{Row: 0, Col: 1}) {
		t.Fatalf("level = %v, expected (0,1)", grid.Coord())
	}
	if len(events) != 1 || events[0].Kind != EventTransition || events[0].Edge != EdgeRight {
		t.Fatalf("events = %+v, expected one right transition", events)
	}

	// Resized to the wider level's tiles around the old center.
	if a.Box.W != 26 || a.Box.H != 40 {
		t.Errorf("size = %vx%v, expected 26x40", a.Box.W, a.Box.H)
	}
	if a.Box.X != -a.Box.W/2+1 {
		t.Errorf("X = %v, expected %v", a.Box.X, -a.Box.W/2+1)
	}
	if a.Box.Y != 60 {
		t.Errorf("Y = %v, expected 60", a.Box.Y)
	}
	if a.Vel != 0 {
		t.Errorf("Vel = %v, expected 0 after a horizontal transition", a.Vel)
	}
	if a.Grav != -1 {
		t.Errorf("Grav = %v, expected -1 to be kept", a.Grav)
	}
}

func TestTransitionLeftEntersPreviousLevel(t *testing.T) {
	d := mustDirectory(t, floorLevel()+world.LevelSeparator+wideLevel())
	m := NewTransitions(d, testView, testTuning())

	a := actorAt(-14, 40, 26, 40) // center x = -1
	a.Vel = -4

	grid, _, err := m.Apply(&a, buildAt(t, d, world.Coord{Row: 0, Col: 1}))
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	if grid.Coord() != (world.Coord{}) {
		t.Fatalf("level = %v, expected (0,0)", grid.Coord())
	}
	if a.Box.W != 13 || a.Box.H != 20 {
		t.Errorf("size = %vx%v, expected 13x20", a.Box.W, a.Box.H)
	}
	if a.Box.X != 100-6.5-1 {
		t.Errorf("X = %v, expected %v", a.Box.X, 100-6.5-1)
	}
	if a.Vel != 0 {
		t.Errorf("Vel = %v, expected 0", a.Vel)
	}
}

func TestTransitionVertical(t *testing.T) {
	d := mustDirectory(t, floorLevel()+world.RowSeparator+floorLevel())
	m := NewTransitions(d, testView, testTuning())

	// Falling out of the bottom of the top row.
	a := actorAt(40, 91, 13, 20) // center y = 101
	a.Grav = -3

	grid, events, err := m.Apply(&a, buildAt(t, d, world.Coord{}))
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if grid.Coord() != (world.Coord{Row: 1, Col: 0}) {
		t.Fatalf("level = %v, expected (1,0)", grid.Coord())
	}
	if len(events) != 1 || events[0].Edge != EdgeBottom {
		t.Fatalf("events = %+v, expected one bottom transition", events)
	}
	if a.Box.Y != -10+1 {
		t.Errorf("Y = %v, expected -9", a.Box.Y)
	}
	if a.Grav != -3 {
		t.Errorf("Grav = %v, expected -3 to be kept", a.Grav)
	}

	// Jumping out of the top of the lower row.
	a = actorAt(40, -11, 13, 20) // center y = -1
	a.Grav = 5

	grid, _, err = m.Apply(&a, grid)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if grid.Coord() != (world.Coord{}) {
		t.Fatalf("level = %v, expected (0,0)", grid.Coord())
	}
	if a.Box.Y != 100-10-1 {
		t.Errorf("Y = %v, expected 89", a.Box.Y)
	}
	if a.Grav != 5 {
		t.Errorf("Grav = %v, expected 5 to be kept", a.Grav)
	}
}

func TestTransitionClampsAtWorldEdge(t *testing.T) {
	tests := []struct {
		name  string
		actor Actor
		wantX float64
		wantY float64
		edge  Edge
	}{
		{"left", actorAt(-7, 40, 13, 20), -6.5, 40, EdgeLeft},
		{"right", actorAt(94, 40, 13, 20), 93.5, 40, EdgeRight},
		{"top", actorAt(40, -11, 13, 20), 40, -10, EdgeTop},
		{"bottom", actorAt(40, 91, 13, 20), 40, 90, EdgeBottom},
	}

	d := mustDirectory(t, floorLevel())
	m := NewTransitions(d, testView, testTuning())

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a := tc.actor
			a.Vel, a.Grav = 3, -2

			grid, events, err := m.Apply(&a, buildAt(t, d, world.Coord{}))
			if err != nil {
				t.Fatalf("Apply failed: %v", err)
			}
			if grid.Coord() != (world.Coord{}) {
				t.Errorf("level = %v, expected to stay at (0,0)", grid.Coord())
			}
			if len(events) != 1 || events[0].Kind != EventClamp || events[0].Edge != tc.edge {
				t.Errorf("events = %+v, expected one %v clamp", events, tc.edge)
			}
			if a.Box.X != tc.wantX || a.Box.Y != tc.wantY {
				t.Errorf("position = (%v, %v), expected (%v, %v)", a.Box.X, a.Box.Y, tc.wantX, tc.wantY)
			}
			if a.Vel != 3 || a.Grav != -2 {
				t.Errorf("velocity = (%v, %v), expected clamp to keep (3, -2)", a.Vel, a.Grav)
			}
		})
	}
}

func TestTransitionMissingColumnClamps(t *testing.T) {
	// The second row has only one level, so (1,1) does not exist.
	d := mustDirectory(t, floorLevel()+world.LevelSeparator+floorLevel()+world.RowSeparator+floorLevel())
	m := NewTransitions(d, testView, testTuning())

	a := actorAt(40, 91, 13, 20)
	a.Grav = -4

	grid, events, err := m.Apply(&a, buildAt(t, d, world.Coord{Row: 0, Col: 1}))
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if grid.Coord() != (world.Coord{Row: 0, Col: 1}) {
		t.Errorf("level = %v, expected to stay at (0,1)", grid.Coord())
	}
	if len(events) != 1 || events[0].Kind != EventClamp {
		t.Errorf("events = %+v, expected one clamp", events)
	}
	if a.Box.Y != 90 {
		t.Errorf("Y = %v, expected 90", a.Box.Y)
	}
	if a.Grav != -4 {
		t.Errorf("Grav = %v, expected -4", a.Grav)
	}
}

func TestTransitionInsideScreenDoesNothing(t *testing.T) {
	d := mustDirectory(t, floorLevel()+world.LevelSeparator+floorLevel())
	m := NewTransitions(d, testView, testTuning())

	// Center exactly on the edge is not past it.
	a := actorAt(93.5, 40, 13, 20)
	before := a

	grid, events, err := m.Apply(&a, buildAt(t, d, world.Coord{}))
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if grid.Coord() != (world.Coord{}) || len(events) != 0 || a != before {
		t.Errorf("expected no change, got level %v events %+v actor %+v", grid.Coord(), events, a)
	}
}
