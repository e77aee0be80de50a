package platformer

import (
	"errors"
	"strings"
	"testing"

	"github.com/vovakirdan/tile-platformer/internal/config"
	"github.com/vovakirdan/tile-platformer/internal/core"
	"github.com/vovakirdan/tile-platformer/internal/games/platformer/physics"
	"github.com/vovakirdan/tile-platformer/internal/games/platformer/world"
	"github.com/vovakirdan/tile-platformer/internal/registry"
)

// flatLevel is a 16x9 level with a solid floor, matching the default
// 960x540 screen with 60 pixel tiles.
func flatLevel() string {
	rows := []string{"aaaaaaaaaaaaaaaa"}
	for i := 0; i < 8; i++ {
		rows = append(rows, "ZZZZZZZZZZZZZZZZ")
	}
	return strings.Join(rows, world.TileRowSeparator)
}

func newTestGame(t *testing.T, data string) *Game {
	t.Helper()
	var dir *world.Directory
	if data != "" {
		var err error
		if dir, err = world.Parse(data); err != nil {
			t.Fatalf("Parse failed: %v", err)
		}
	}
	g, err := New(registry.Options{World: dir, WorldName: "test"})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	g.Reset(core.DefaultConfig())
	return g
}

// scriptedInput is a fixed input pattern that runs, turns and jumps.
func scriptedInput(i int) core.InputFrame {
	in := core.NewInputFrame()
	if (i/120)%2 == 0 {
		in.Set(core.ActionRight)
	} else {
		in.Set(core.ActionLeft)
	}
	if i%37 == 0 {
		in.Set(core.ActionJump)
	}
	if i%200 < 50 {
		in.Set(core.ActionSprint)
	}
	return in
}

func embedded(a physics.Actor, grid *world.TileGrid) bool {
	const eps = 1e-6
	for _, tile := range grid.Solids() {
		b := tile.Bounds()
		if a.Box.Right()-b.X > eps && b.Right()-a.Box.X > eps &&
			a.Box.Bottom()-b.Y > eps && b.Bottom()-a.Box.Y > eps {
			return true
		}
	}
	return false
}

func TestGameDeterminism(t *testing.T) {
	g1 := newTestGame(t, "")
	g2 := newTestGame(t, "")

	for i := 0; i < 600; i++ {
		r1 := g1.Step(scriptedInput(i))
		r2 := g2.Step(scriptedInput(i))
		if r1.Err != nil || r2.Err != nil {
			t.Fatalf("tick %d: unexpected errors %v, %v", i, r1.Err, r2.Err)
		}
	}

	f1, f2 := g1.Frame(), g2.Frame()
	if f1.Actor != f2.Actor {
		t.Errorf("Determinism failed: actors differ. Run1=%+v, Run2=%+v", f1.Actor, f2.Actor)
	}
	if f1.Level != f2.Level || f1.Visited != f2.Visited || f1.Tick != f2.Tick {
		t.Errorf("Determinism failed: %v/%d/%d vs %v/%d/%d",
			f1.Level, f1.Visited, f1.Tick, f2.Level, f2.Visited, f2.Tick)
	}
}

func TestBuiltinWorldsPlay(t *testing.T) {
	names := BuiltinNames()
	if len(names) == 0 {
		t.Fatal("no built-in worlds")
	}

	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			dir, err := LoadBuiltin(name)
			if err != nil {
				t.Fatalf("LoadBuiltin failed: %v", err)
			}
			g, err := New(registry.Options{World: dir, WorldName: name})
			if err != nil {
				t.Fatalf("New failed: %v", err)
			}
			g.Reset(core.DefaultConfig())

			for i := 0; i < 1200; i++ {
				if res := g.Step(scriptedInput(i)); res.Err != nil {
					t.Fatalf("tick %d: %v", i, res.Err)
				}
				f := g.Frame()
				if embedded(f.Actor, f.Grid) {
					t.Fatalf("tick %d: actor %+v embedded in level %v", i, f.Actor.Box, f.Level)
				}
			}
		})
	}

	if _, err := LoadBuiltin("missing"); err == nil {
		t.Error("expected an error for an unknown built-in world")
	}
}

func TestScoreCountsVisitedLevels(t *testing.T) {
	g := newTestGame(t, flatLevel()+world.LevelSeparator+flatLevel())

	if g.State().Score != 1 {
		t.Fatalf("initial Score = %d, expected 1", g.State().Score)
	}

	right := core.FrameOf(core.ActionRight)
	for i := 0; i < 600; i++ {
		if res := g.Step(right); res.Err != nil {
			t.Fatalf("tick %d: %v", i, res.Err)
		}
	}

	if g.Frame().Level != (world.Coord{Row: 0, Col: 1}) {
		t.Errorf("Level = %v, expected (0,1)", g.Frame().Level)
	}
	if g.State().Score != 2 {
		t.Errorf("Score = %d, expected 2", g.State().Score)
	}
}

func TestGamePause(t *testing.T) {
	g := newTestGame(t, flatLevel())

	res := g.Step(core.FrameOf(core.ActionPause))
	if !res.State.Paused {
		t.Fatal("expected game to be paused")
	}

	before := g.Frame()
	for i := 0; i < 10; i++ {
		g.Step(core.FrameOf(core.ActionRight))
	}
	if g.Frame().Actor != before.Actor || g.Frame().Tick != before.Tick {
		t.Error("simulation advanced while paused")
	}

	res = g.Step(core.FrameOf(core.ActionPause))
	if res.State.Paused {
		t.Error("expected game to resume")
	}
}

func TestGameRestart(t *testing.T) {
	g := newTestGame(t, flatLevel())
	start := g.Frame().Actor

	for i := 0; i < 50; i++ {
		g.Step(core.FrameOf(core.ActionRight, core.ActionSprint))
	}
	if g.Frame().Actor == start {
		t.Fatal("actor did not move")
	}

	g.Step(core.FrameOf(core.ActionRestart))

	f := g.Frame()
	if f.Actor != start {
		t.Errorf("after restart actor = %+v, expected %+v", f.Actor, start)
	}
	if f.Tick != 0 {
		t.Errorf("after restart Tick = %d, expected 0", f.Tick)
	}
}

func TestGameStopsOnSimulationError(t *testing.T) {
	g := newTestGame(t, flatLevel())
	g.err = physics.ErrInvalidActorPlacement

	res := g.Step(core.FrameOf(core.ActionRight))
	if !errors.Is(res.Err, physics.ErrInvalidActorPlacement) {
		t.Errorf("Err = %v, expected ErrInvalidActorPlacement", res.Err)
	}
	if !res.State.GameOver {
		t.Error("expected GameOver after a simulation error")
	}
}

func TestReloadWorld(t *testing.T) {
	g := newTestGame(t, flatLevel()+world.LevelSeparator+flatLevel())
	right := core.FrameOf(core.ActionRight)
	for i := 0; i < 600 && g.Frame().Level == (world.Coord{}); i++ {
		g.Step(right)
	}

	edited, err := world.Parse(flatLevel() + world.LevelSeparator + flatLevel() + world.LevelSeparator + flatLevel())
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if err := g.ReloadWorld(edited); err != nil {
		t.Fatalf("ReloadWorld failed: %v", err)
	}
	if g.Frame().Level != (world.Coord{Row: 0, Col: 1}) {
		t.Errorf("Level = %v, expected reload to keep (0,1)", g.Frame().Level)
	}
	if g.Frame().Grid.Encode() != flatLevel() {
		t.Error("active grid does not match the reloaded world")
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := config.DefaultPlatformerConfig()
	cfg.Screen.Width = 0

	if _, err := New(registry.Options{Config: cfg}); err == nil {
		t.Error("expected an error for an invalid config")
	}
}

func TestRegistered(t *testing.T) {
	if !registry.Exists(GameID) {
		t.Fatalf("%q is not registered", GameID)
	}
	g, err := registry.Create(GameID, registry.Options{})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if g.Title() != GameTitle {
		t.Errorf("Title = %q, expected %q", g.Title(), GameTitle)
	}
}

func TestRender(t *testing.T) {
	g := newTestGame(t, flatLevel())
	screen := core.NewScreen(80, 24)
	g.Render(screen)

	// 960x540 world on an 80x23 playfield: 12x~23.5 pixels per cell.
	if cell := screen.GetCell(40, 11); cell.Rune != ActorChar || cell.Color != core.ColorPink {
		t.Errorf("actor cell = %+v, expected pink %q", cell, ActorChar)
	}
	if cell := screen.GetCell(5, 21); cell.Rune != '█' || cell.Color != core.ColorGreen {
		t.Errorf("floor cell = %+v, expected green block", cell)
	}
	if cell := screen.GetCell(0, 0); cell.Rune != BackgroundChar {
		t.Errorf("top-left cell = %+v, expected background marker", cell)
	}

	status := screen.Row(23)
	for _, want := range []string{"test", "level (0,0)", "visited 1", "airborne"} {
		if !strings.Contains(status, want) {
			t.Errorf("status line %q missing %q", status, want)
		}
	}
}

func TestRenderTooSmall(t *testing.T) {
	g := newTestGame(t, flatLevel())
	screen := core.NewScreen(10, 4)
	g.Render(screen)

	if !strings.Contains(screen.String(), "too") {
		t.Errorf("expected a too-small message, got %q", screen.String())
	}
}
