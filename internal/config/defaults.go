package config

import (
	_ "embed"
)

//go:embed defaults/platformer.yaml
var defaultPlatformerYAML []byte

// DefaultPlatformerConfig returns the default platformer configuration.
func DefaultPlatformerConfig() PlatformerConfig {
	return PlatformerConfig{
		Screen: ScreenConfig{
			Width:  960,
			Height: 540,
		},
		Physics: PhysicsConfig{
			RunDivisor:          200,
			SprintDivisor:       150,
			AccelerationDivisor: 575,
			JumpDivisor:         55,
			Gravity:             0.4,
		},
		Actor: ActorConfig{
			WidthRatio:  1.3,
			HeightRatio: 2,
		},
		Input: InputConfig{
			HoldTicks: 18,
		},
	}
}

// GetDefaultYAML returns the embedded default platformer YAML.
func GetDefaultYAML() []byte {
	return defaultPlatformerYAML
}
