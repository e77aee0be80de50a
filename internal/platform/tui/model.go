package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tile-platformer/internal/config"
	"github.com/vovakirdan/tile-platformer/internal/core"
	"github.com/vovakirdan/tile-platformer/internal/registry"
)

// RunOptions configures a game model.
type RunOptions struct {
	HoldTicks int           // Ticks a movement key stays held after its last press
	Watcher   *WorldWatcher // Optional; edits to the world file are reloaded in place
	Logger    *log.Logger   // nil discards
	AllowBack bool          // Enables the back-to-menu key while paused
}

// Model is the Bubble Tea model for running a game.
// The bottom terminal row is reserved for the key help line.
type Model struct {
	game      registry.Game
	screen    *core.Screen
	config    core.RuntimeConfig
	held      *HeldKeys
	keys      KeyMap
	help      help.Model
	watcher   *WorldWatcher
	logger    *log.Logger
	gameState core.GameState
	err       error
	quitting  bool
	back      bool
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts RunOptions) Model {
	if opts.HoldTicks <= 0 {
		opts.HoldTicks = config.DefaultPlatformerConfig().Input.HoldTicks
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	keys := DefaultKeyMap()
	keys.Back.SetEnabled(opts.AllowBack)

	h := help.New()
	h.Width = cfg.ScreenW

	return Model{
		game:    game,
		screen:  core.NewScreen(cfg.ScreenW, playRows(cfg.ScreenH)),
		config:  cfg,
		held:    NewHeldKeys(opts.HoldTicks),
		keys:    keys,
		help:    h,
		watcher: opts.Watcher,
		logger:  opts.Logger,
	}
}

// playRows is the number of rows left for the game above the help line.
func playRows(height int) int {
	return max(height-1, 1)
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tea.Batch(tickCmd(m.config.TickRate), waitForWorld(m.watcher))
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()

	case worldChangedMsg:
		return m.handleWorldChange(WorldChange(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	case key.Matches(msg, m.keys.Back):
		if m.gameState.Paused {
			m.back = true
			return m, tea.Quit
		}
		return m, nil
	}

	for _, a := range m.keys.Actions(msg) {
		m.held.Press(a)
	}
	return m, nil
}

// handleResize follows the terminal size. The world is scaled to the screen,
// so the session keeps running.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, playRows(msg.Height))
	m.help.Width = msg.Width
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.err != nil {
		return m, nil
	}

	result := m.game.Step(m.held.Frame())
	m.held.Advance()
	m.gameState = result.State

	if result.Err != nil {
		m.err = result.Err
		m.held.Release()
		return m, tea.Quit
	}

	return m, tickCmd(m.config.TickRate)
}

// handleWorldChange swaps in an edited world. Broken edits are logged and
// the running world is kept.
func (m Model) handleWorldChange(change WorldChange) (tea.Model, tea.Cmd) {
	next := waitForWorld(m.watcher)

	if change.Err != nil {
		m.logger.Warn("world reload skipped", "path", change.Path, "err", change.Err)
		return m, next
	}

	reloader, ok := m.game.(registry.WorldReloader)
	if !ok {
		m.logger.Warn("game does not support world reload", "game", m.game.ID())
		return m, next
	}
	if err := reloader.ReloadWorld(change.World); err != nil {
		m.logger.Warn("world reload failed", "path", change.Path, "err", err)
	}
	return m, next
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	base, err := config.DataDir()
	if err != nil {
		m.logger.Warn("screenshot skipped", "err", err)
		return
	}
	dir := filepath.Join(base, "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot skipped", "err", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot failed", "path", path, "err", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.screen.Clear()
	m.game.Render(m.screen)

	return RenderScreen(m.screen) + "\n" + m.help.View(m.keys)
}

// Err returns the simulation error that ended the game, if any.
func (m Model) Err() error {
	return m.err
}

// IsQuitting returns true if the user asked to quit.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if the user asked to return to the world menu.
func (m Model) BackToMenu() bool {
	return m.back
}

// Run starts the Bubble Tea program for game and blocks until it ends.
// A simulation error that stopped the game is returned.
func Run(game registry.Game, cfg core.RuntimeConfig, opts RunOptions) error {
	p := tea.NewProgram(NewModel(game, cfg, opts), tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return err
	}
	if m, ok := final.(Model); ok && m.err != nil {
		return m.err
	}
	return nil
}
