// Package platformer implements a tile-based side-scrolling platformer.
// The player runs and jumps through a grid of single-screen levels; walking
// off a screen edge streams in the adjacent level.
package platformer

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tile-platformer/internal/core"
	"github.com/vovakirdan/tile-platformer/internal/games/platformer/physics"
	"github.com/vovakirdan/tile-platformer/internal/games/platformer/world"
	"github.com/vovakirdan/tile-platformer/internal/registry"
)

const (
	GameID    = "platformer"
	GameTitle = "Tile Platformer"
)

// Game adapts a physics.Session to the platform's Game interface.
type Game struct {
	worldName string
	view      world.Viewport
	logger    *log.Logger

	session *physics.Session
	config  core.RuntimeConfig
	paused  bool
	err     error // Set once the simulation can no longer continue
}

// New creates a game over the world in opts, or the default built-in world.
func New(opts registry.Options) (*Game, error) {
	opts = opts.WithDefaults()
	if err := opts.Config.Validate(); err != nil {
		return nil, err
	}

	dir, name := opts.World, opts.WorldName
	if dir == nil {
		var err error
		if dir, err = LoadBuiltin(DefaultWorld); err != nil {
			return nil, err
		}
		name = DefaultWorld
	}
	if name == "" {
		name = "untitled"
	}

	view := world.Viewport{W: opts.Config.Screen.Width, H: opts.Config.Screen.Height}

	session, err := physics.NewSession(dir, view, opts.Config.Tuning())
	if err != nil {
		return nil, fmt.Errorf("platformer: starting world %q: %w", name, err)
	}

	opts.Logger.Info("world loaded", "world", name, "rows", dir.Rows(), "levels", dir.LevelCount())

	return &Game{
		worldName: name,
		view:      view,
		logger:    opts.Logger,
		session:   session,
		config:    core.DefaultConfig(),
	}, nil
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return GameTitle
}

// Reset puts the player back at the start of the first level.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.config = cfg
	g.paused = false
	g.err = g.session.Reset()
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.err != nil {
		return core.StepResult{State: g.State(), Err: g.err}
	}

	if in.Has(core.ActionRestart) {
		g.Reset(g.config)
		return core.StepResult{State: g.State(), Err: g.err}
	}

	// Handle pause toggle
	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}

	if g.paused {
		return core.StepResult{State: g.State()}
	}

	res, err := g.session.Tick(physics.InputFromFrame(in))
	if err != nil {
		g.err = err
		g.logger.Error("simulation stopped", "world", g.worldName, "err", err)
		return core.StepResult{State: g.State(), Err: err}
	}

	for _, ev := range res.Events {
		switch ev.Kind {
		case physics.EventTransition:
			g.logger.Info("level transition", "from", ev.From, "to", ev.To, "edge", ev.Edge)
		case physics.EventClamp:
			g.logger.Debug("world edge", "level", ev.From, "edge", ev.Edge)
		}
	}

	return core.StepResult{State: g.State()}
}

// ReloadWorld swaps in an edited world without restarting the session.
func (g *Game) ReloadWorld(dir *world.Directory) error {
	if err := g.session.ReplaceWorld(dir); err != nil {
		return err
	}
	g.logger.Info("world reloaded", "world", g.worldName, "level", g.session.Level(), "levels", dir.LevelCount())
	return nil
}

// Err returns the error that stopped the simulation, if any.
func (g *Game) Err() error {
	return g.err
}

// State returns the current game state. Score counts distinct levels visited.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.session.Visited(),
		GameOver: g.err != nil,
		Paused:   g.paused,
	}
}

// Register the game with the registry
func init() {
	registry.Register(GameID, GameTitle, func(opts registry.Options) (registry.Game, error) {
		g, err := New(opts)
		if err != nil {
			return nil, err
		}
		return g, nil
	})
}
