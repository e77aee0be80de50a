package world

import (
	"errors"
	"math"
	"testing"

	"github.com/vovakirdan/tile-platformer/internal/core"
)

func buildGrid(t *testing.T, data string, view Viewport) *TileGrid {
	t.Helper()
	d, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	g, err := Build(d, Coord{}, view)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return g
}

func TestBuildTilePlacement(t *testing.T) {
	// Row 0 is the bottom row of the screen.
	g := buildGrid(t, "aaaa/ZZZb/ZZZZ", Viewport{W: 400, H: 300})

	if g.CountX() != 4 || g.Rows() != 3 {
		t.Fatalf("grid is %dx%d, expected 4x3", g.CountX(), g.Rows())
	}
	if g.TileSize() != 100 {
		t.Errorf("TileSize() = %v, expected 100", g.TileSize())
	}

	bottomLeft, ok := g.At(0, 0)
	if !ok {
		t.Fatal("At(0, 0) missing")
	}
	if bottomLeft.X != 0 || bottomLeft.Y != 200 || bottomLeft.Type != TileSolidA {
		t.Errorf("At(0, 0) = %+v, expected solid A at (0, 200)", bottomLeft)
	}

	tile, _ := g.At(1, 3)
	if tile.X != 300 || tile.Y != 100 || tile.Type != TileSolidB {
		t.Errorf("At(1, 3) = %+v, expected solid B at (300, 100)", tile)
	}

	if _, ok := g.At(3, 0); ok {
		t.Error("At(3, 0) should be out of range")
	}
}

func TestBuildFractionalTileSize(t *testing.T) {
	g := buildGrid(t, "aaa/ZZZ", Viewport{W: 100, H: 90})

	size := g.TileSize()
	if math.Abs(size-100.0/3.0) > 1e-9 {
		t.Errorf("TileSize() = %v, expected 33.33...", size)
	}

	tile, _ := g.At(0, 2)
	if math.Abs(tile.X-2*size) > 1e-9 || math.Abs(tile.Y-(90-size)) > 1e-9 {
		t.Errorf("At(0, 2) = %+v, unexpected position", tile)
	}
}

func TestBuildMissingLevel(t *testing.T) {
	d, err := Parse("ZZ/aa")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if _, err := Build(d, Coord{Row: 0, Col: 1}, Viewport{W: 100, H: 100}); !errors.Is(err, ErrMalformedLevelData) {
		t.Errorf("Build of missing level error = %v, expected ErrMalformedLevelData", err)
	}
}

func TestBackgroundTilesMaterialized(t *testing.T) {
	g := buildGrid(t, "aZ/ZZ", Viewport{W: 100, H: 100})

	count := 0
	for range g.All() {
		count++
	}
	if count != 4 {
		t.Errorf("All() yielded %d tiles, expected 4", count)
	}

	if solids := g.Solids(); len(solids) != 1 {
		t.Errorf("Solids() returned %d tiles, expected 1", len(solids))
	}
}

func TestWindowOnlySolidNeighbours(t *testing.T) {
	// 10x10 grid of 10px tiles, solid floor on row 0 and a far-away block.
	data := "aaaaaaaaaa/ZZZZZZZZZZ/ZZZZZZZZZZ/ZZZZZZZZZZ/ZZZZZZZZZZ/" +
		"ZZZZZZZZZZ/ZZZZZZZZZZ/ZZZZZZZZZZ/ZZZZZZZZZZ/ZZZZZZZZZa"
	g := buildGrid(t, data, Viewport{W: 100, H: 100})

	// Box sitting on the floor near the left edge.
	box := core.NewRectF(12, 70, 10, 20)
	window := g.Window(box)

	if len(window) == 0 {
		t.Fatal("Window() should include the floor below the box")
	}
	for _, tile := range window {
		if !tile.Solid() {
			t.Errorf("Window() returned non-solid tile %+v", tile)
		}
		if tile.Row == 9 {
			t.Errorf("Window() returned distant tile %+v", tile)
		}
		if tile.Col < 0 || tile.Col > 3 {
			t.Errorf("Window() returned tile outside margin %+v", tile)
		}
	}
}

func TestGridEncodeRoundTrip(t *testing.T) {
	data := "abZ/ZZb/aaa"
	g := buildGrid(t, data, Viewport{W: 30, H: 30})

	if g.Encode() != data {
		t.Errorf("Encode() = %q, expected %q", g.Encode(), data)
	}

	again := buildGrid(t, g.Encode(), Viewport{W: 30, H: 30})
	if !again.Layout().Equal(g.Layout()) {
		t.Error("re-parsed grid layout differs")
	}
	for tile := range g.All() {
		other, _ := again.At(tile.Row, tile.Col)
		if other != tile {
			t.Errorf("tile %+v differs after round trip: %+v", tile, other)
		}
	}
}
