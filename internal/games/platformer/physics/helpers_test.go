package physics

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tile-platformer/internal/games/platformer/world"
)

var testView = world.Viewport{W: 100, H: 100}

func testTuning() Tuning {
	return Tuning{
		RunPeak:          4,
		SprintPeak:       6,
		Acceleration:     1,
		JumpImpulse:      8,
		Gravity:          0.5,
		ActorWidthRatio:  1.3,
		ActorHeightRatio: 2,
	}
}

// level joins tile rows given bottom row first.
func level(rows ...string) string {
	return strings.Join(rows, world.TileRowSeparator)
}

// floorLevel is a 10x10 level with a solid bottom row.
func floorLevel() string {
	rows := []string{"aaaaaaaaaa"}
	for i := 0; i < 9; i++ {
		rows = append(rows, "ZZZZZZZZZZ")
	}
	return level(rows...)
}

func mustDirectory(t *testing.T, data string) *world.Directory {
	t.Helper()
	d, err := world.Parse(data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return d
}

func mustGrid(t *testing.T, data string) *world.TileGrid {
	t.Helper()
	g, err := world.Build(mustDirectory(t, data), world.Coord{}, testView)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return g
}

func overlapsAny(a Actor, tiles []world.Tile) (world.Tile, bool) {
	for _, tile := range tiles {
		if tile.Solid() && overlaps(a.Box, tile) {
			return tile, true
		}
	}
	return world.Tile{}, false
}
