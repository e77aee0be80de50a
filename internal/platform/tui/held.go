package tui

import "github.com/vovakirdan/tile-platformer/internal/core"

// HeldKeys turns terminal key presses into held controls. Terminals repeat
// a key while it is down and never report its release, so a movement key
// counts as held for holdTicks ticks after its last press. Other actions
// last for a single tick.
type HeldKeys struct {
	holdTicks int
	remaining map[core.Action]int
	once      core.InputFrame
}

// NewHeldKeys creates a tracker with the given hold window in ticks.
func NewHeldKeys(holdTicks int) *HeldKeys {
	if holdTicks < 1 {
		holdTicks = 1
	}
	return &HeldKeys{
		holdTicks: holdTicks,
		remaining: make(map[core.Action]int),
		once:      core.NewInputFrame(),
	}
}

// Press records a key press for an action.
func (h *HeldKeys) Press(a core.Action) {
	switch a {
	case core.ActionLeft:
		delete(h.remaining, core.ActionRight)
		delete(h.remaining, core.ActionSprint)
		h.remaining[a] = h.holdTicks
	case core.ActionRight:
		delete(h.remaining, core.ActionLeft)
		delete(h.remaining, core.ActionSprint)
		h.remaining[a] = h.holdTicks
	case core.ActionJump, core.ActionSprint:
		h.remaining[a] = h.holdTicks
	case core.ActionNone:
	default:
		h.once.Set(a)
	}
}

// Frame returns the actions active for the coming tick.
func (h *HeldKeys) Frame() core.InputFrame {
	f := h.once.Clone()
	for a := range h.remaining {
		f.Set(a)
	}
	return f
}

// Advance ends the current tick: one-shot actions are dropped and held
// actions age by one tick.
func (h *HeldKeys) Advance() {
	h.once.Clear()
	for a, n := range h.remaining {
		if n <= 1 {
			delete(h.remaining, a)
			continue
		}
		h.remaining[a] = n - 1
	}
}

// Release drops every held and pending action.
func (h *HeldKeys) Release() {
	h.once.Clear()
	clear(h.remaining)
}
