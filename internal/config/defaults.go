package config

import (
	_ "embed"
)

//go:embed defaults/invaders.yaml
var defaultInvadersYAML []byte

// DefaultInvadersConfig returns the reference arcade layout and tuning.
func DefaultInvadersConfig() InvadersConfig {
	return InvadersConfig{
		Playfield: PlayfieldConfig{
			MinX: -14,
			MaxX: 14,
			MinZ: -15,
			MaxZ: 2,
		},
		Ship: ShipConfig{
			Lives:        3,
			Radius:       1.0,
			Velocity:     20,
			Z:            0,
			RecoveryTime: 1.0,
		},
		Invaders: InvaderConfig{
			Rows:         4,
			Columns:      8,
			Spacing:      2.0,
			Radius:       0.75,
			Points:       40,
			Velocity:     1.0,
			DropDistance: 1.0,
		},
		Blocks: BlockConfig{
			Groups:       3,
			GroupSpacing: 10,
			OriginX:      -10,
			Z:            -2,
			Radius:       0.5,
		},
		Shots: ShotConfig{
			Velocity: 10,
		},
		Explosions: ExplosionConfig{
			LiveTime: 1.0,
		},
		Difficulty: DifficultyConfig{
			InitialMultiplier: 1.0,
			WaveIncrement:     0.2,
			FireChance:        0.01,
		},
	}
}

// DefaultYAML returns the embedded default YAML, e.g. for `invaders config`.
func DefaultYAML() []byte {
	return defaultInvadersYAML
}
