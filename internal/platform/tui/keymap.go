package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tile-platformer/internal/core"
)

// KeyMap defines the in-game key bindings.
type KeyMap struct {
	Left        key.Binding
	Right       key.Binding
	SprintLeft  key.Binding
	SprintRight key.Binding
	Jump        key.Binding
	Pause       key.Binding
	Restart     key.Binding
	Screenshot  key.Binding
	Back        key.Binding
	Quit        key.Binding
}

// ShortHelp returns key bindings for the short help view. Quit and Pause
// come first so narrow terminals still show them.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit, k.Pause, k.Left, k.Right, k.Jump, k.Restart}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.SprintLeft, k.SprintRight, k.Jump},
		{k.Pause, k.Restart, k.Screenshot, k.Back, k.Quit},
	}
}

// DefaultKeyMap returns the default game bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "a"),
			key.WithHelp("←/a", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d"),
			key.WithHelp("→/d", "right"),
		),
		SprintLeft: key.NewBinding(
			key.WithKeys("shift+left", "A"),
			key.WithHelp("⇧←/A", "sprint left"),
		),
		SprintRight: key.NewBinding(
			key.WithKeys("shift+right", "D"),
			key.WithHelp("⇧→/D", "sprint"),
		),
		Jump: key.NewBinding(
			key.WithKeys("up", "w", " "),
			key.WithHelp("↑/w/space", "jump"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p", "esc"),
			key.WithHelp("p", "pause"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
		Back: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "worlds"),
			key.WithDisabled(),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Actions translates a key message to game actions.
// Sprint keys produce a direction plus ActionSprint.
func (k KeyMap) Actions(msg tea.KeyMsg) []core.Action {
	switch {
	case key.Matches(msg, k.SprintLeft):
		return []core.Action{core.ActionLeft, core.ActionSprint}
	case key.Matches(msg, k.SprintRight):
		return []core.Action{core.ActionRight, core.ActionSprint}
	case key.Matches(msg, k.Left):
		return []core.Action{core.ActionLeft}
	case key.Matches(msg, k.Right):
		return []core.Action{core.ActionRight}
	case key.Matches(msg, k.Jump):
		return []core.Action{core.ActionJump}
	case key.Matches(msg, k.Pause):
		return []core.Action{core.ActionPause}
	case key.Matches(msg, k.Restart):
		return []core.Action{core.ActionRestart}
	case key.Matches(msg, k.Quit):
		return []core.Action{core.ActionQuit}
	}
	return nil
}

// MenuKeyMap defines the key bindings for the world picker.
type MenuKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k MenuKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k MenuKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Select, k.Quit}}
}

// DefaultMenuKeyMap returns the default world picker bindings.
func DefaultMenuKeyMap() MenuKeyMap {
	return MenuKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k", "w"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j", "s"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "play"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c", "esc"),
			key.WithHelp("q", "quit"),
		),
	}
}
