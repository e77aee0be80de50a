package core

import (
	"slices"
	"testing"
)

func TestInputFrame(t *testing.T) {
	f := FrameOf(ActionRight, ActionJump)

	tests := []struct {
		action Action
		want   bool
	}{
		{ActionRight, true},
		{ActionJump, true},
		{ActionLeft, false},
		{ActionSprint, false},
		{ActionNone, false},
		{Action(200), false},
	}
	for _, tc := range tests {
		if got := f.Has(tc.action); got != tc.want {
			t.Errorf("Has(%v) = %v, expected %v", tc.action, got, tc.want)
		}
	}

	if got := f.Actions(); !slices.Equal(got, []Action{ActionRight, ActionJump}) {
		t.Errorf("Actions() = %v", got)
	}
	if f.String() != "Right+Jump" {
		t.Errorf("String() = %q, expected Right+Jump", f.String())
	}
}

func TestInputFrameCloneIsIndependent(t *testing.T) {
	f := FrameOf(ActionLeft)
	c := f.Clone()
	f.Clear()

	if !f.Empty() {
		t.Error("Clear left actions set")
	}
	if !c.Has(ActionLeft) {
		t.Error("clone changed when the original was cleared")
	}
	if f.String() != "None" {
		t.Errorf("empty String() = %q, expected None", f.String())
	}
}

func TestInputFrameIgnoresInvalidActions(t *testing.T) {
	var f InputFrame
	f.Set(ActionNone)
	f.Set(Action(31))
	if !f.Empty() {
		t.Errorf("invalid actions were recorded: %v", f.Actions())
	}
}

func TestActionString(t *testing.T) {
	if ActionSprint.String() != "Sprint" {
		t.Errorf("ActionSprint.String() = %q", ActionSprint.String())
	}
	if Action(99).String() != "Unknown" {
		t.Errorf("Action(99).String() = %q", Action(99).String())
	}
}
