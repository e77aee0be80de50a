package tui

import (
	"slices"
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tile-platformer/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestKeyMapActions(t *testing.T) {
	keys := DefaultKeyMap()

	tests := []struct {
		name string
		msg  tea.KeyMsg
		want []core.Action
	}{
		{"left arrow", tea.KeyMsg{Type: tea.KeyLeft}, []core.Action{core.ActionLeft}},
		{"a", runeKey('a'), []core.Action{core.ActionLeft}},
		{"right arrow", tea.KeyMsg{Type: tea.KeyRight}, []core.Action{core.ActionRight}},
		{"d", runeKey('d'), []core.Action{core.ActionRight}},
		{"shift+left", tea.KeyMsg{Type: tea.KeyShiftLeft}, []core.Action{core.ActionLeft, core.ActionSprint}},
		{"shift+right", tea.KeyMsg{Type: tea.KeyShiftRight}, []core.Action{core.ActionRight, core.ActionSprint}},
		{"A", runeKey('A'), []core.Action{core.ActionLeft, core.ActionSprint}},
		{"D", runeKey('D'), []core.Action{core.ActionRight, core.ActionSprint}},
		{"up", tea.KeyMsg{Type: tea.KeyUp}, []core.Action{core.ActionJump}},
		{"w", runeKey('w'), []core.Action{core.ActionJump}},
		{"space", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, []core.Action{core.ActionJump}},
		{"p", runeKey('p'), []core.Action{core.ActionPause}},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, []core.Action{core.ActionPause}},
		{"r", runeKey('r'), []core.Action{core.ActionRestart}},
		{"q", runeKey('q'), []core.Action{core.ActionQuit}},
		{"unbound", runeKey('z'), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := keys.Actions(tt.msg)
			if !slices.Equal(got, tt.want) {
				t.Errorf("Actions(%q) = %v, expected %v", tt.msg.String(), got, tt.want)
			}
		})
	}
}

func TestKeyMapHelp(t *testing.T) {
	keys := DefaultKeyMap()
	if len(keys.ShortHelp()) == 0 {
		t.Error("ShortHelp is empty")
	}
	for i, group := range keys.FullHelp() {
		if len(group) == 0 {
			t.Errorf("FullHelp group %d is empty", i)
		}
	}
	if keys.Back.Enabled() {
		t.Error("Back should be disabled until a menu is attached")
	}
}

func TestShortHelpKeepsQuitVisible(t *testing.T) {
	keys := DefaultKeyMap()

	for _, width := range []int{40, 60, 80, 120} {
		h := help.New()
		h.Width = width
		line := h.View(keys)
		for _, want := range []string{"quit", "pause"} {
			if !strings.Contains(line, want) {
				t.Errorf("width %d: help %q missing %q", width, line, want)
			}
		}
	}
}
