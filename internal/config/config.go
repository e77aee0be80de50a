// Package config provides YAML-based configuration loading for the
// platformer: screen size, movement tuning, actor proportions and input
// handling.
package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tile-platformer/internal/games/platformer/physics"
)

// PlatformerConfig contains all configuration for the platformer.
type PlatformerConfig struct {
	Screen  ScreenConfig  `yaml:"screen"`
	Physics PhysicsConfig `yaml:"physics"`
	Actor   ActorConfig   `yaml:"actor"`
	Input   InputConfig   `yaml:"input"`
}

// ScreenConfig defines the world-space screen size in pixels.
// Tile sizes are derived from the width and each level's row length.
type ScreenConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// PhysicsConfig defines movement constants relative to the screen size.
// Speeds are the screen dimension divided by the given divisor.
type PhysicsConfig struct {
	RunDivisor          float64 `yaml:"run_divisor"`          // screen width / run peak
	SprintDivisor       float64 `yaml:"sprint_divisor"`       // screen width / sprint peak
	AccelerationDivisor float64 `yaml:"acceleration_divisor"` // screen width / acceleration
	JumpDivisor         float64 `yaml:"jump_divisor"`         // screen height / jump impulse
	Gravity             float64 `yaml:"gravity"`              // absolute, per tick
}

// ActorConfig defines the player's size as multiples of the tile size.
type ActorConfig struct {
	WidthRatio  float64 `yaml:"width_ratio"`
	HeightRatio float64 `yaml:"height_ratio"`
}

// InputConfig defines how terminal key events become held controls.
type InputConfig struct {
	// HoldTicks is how long a key counts as held after its last press.
	// Terminals report key repeats, not key releases.
	HoldTicks int `yaml:"hold_ticks"`
}

// Validate rejects configurations the simulation cannot run with.
func (c PlatformerConfig) Validate() error {
	var errs []error

	positive := func(name string, v float64) {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %v", name, v))
		}
	}

	positive("screen.width", c.Screen.Width)
	positive("screen.height", c.Screen.Height)
	positive("physics.run_divisor", c.Physics.RunDivisor)
	positive("physics.sprint_divisor", c.Physics.SprintDivisor)
	positive("physics.acceleration_divisor", c.Physics.AccelerationDivisor)
	positive("physics.jump_divisor", c.Physics.JumpDivisor)
	positive("physics.gravity", c.Physics.Gravity)
	positive("actor.width_ratio", c.Actor.WidthRatio)
	positive("actor.height_ratio", c.Actor.HeightRatio)

	if c.Input.HoldTicks < 1 {
		errs = append(errs, fmt.Errorf("input.hold_ticks must be at least 1, got %d", c.Input.HoldTicks))
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid platformer config: %w", err)
	}
	return nil
}

// Tuning derives the absolute per-tick movement constants.
func (c PlatformerConfig) Tuning() physics.Tuning {
	return physics.Tuning{
		RunPeak:          c.Screen.Width / c.Physics.RunDivisor,
		SprintPeak:       c.Screen.Width / c.Physics.SprintDivisor,
		Acceleration:     c.Screen.Width / c.Physics.AccelerationDivisor,
		JumpImpulse:      c.Screen.Height / c.Physics.JumpDivisor,
		Gravity:          c.Physics.Gravity,
		ActorWidthRatio:  c.Actor.WidthRatio,
		ActorHeightRatio: c.Actor.HeightRatio,
	}
}
