// Package config provides YAML-based game configuration loading and
// difficulty management for the invaders game.
package config

// InvadersConfig contains all tunables of the simulation.
type InvadersConfig struct {
	Playfield  PlayfieldConfig  `yaml:"playfield"`
	Ship       ShipConfig       `yaml:"ship"`
	Invaders   InvaderConfig    `yaml:"invaders"`
	Blocks     BlockConfig      `yaml:"blocks"`
	Shots      ShotConfig       `yaml:"shots"`
	Explosions ExplosionConfig  `yaml:"explosions"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// PlayfieldConfig defines the playfield rectangle on the X/Z plane.
type PlayfieldConfig struct {
	MinX float64 `yaml:"min_x"`
	MaxX float64 `yaml:"max_x"`
	MinZ float64 `yaml:"min_z"`
	MaxZ float64 `yaml:"max_z"`
}

// ShipConfig defines the player ship.
type ShipConfig struct {
	Lives    int     `yaml:"lives"`
	Radius   float64 `yaml:"radius"`
	Velocity float64 `yaml:"velocity"` // Units per second at scale 1
	Z        float64 `yaml:"z"`        // Fixed depth of the ship row

	// RecoveryTime is how long the ship stays exploding after a hit, in
	// seconds. Zero keeps it exploding until the next wave starts.
	RecoveryTime float64 `yaml:"recovery_time"`
}

// InvaderConfig defines the invader grid and its marching pattern.
type InvaderConfig struct {
	Rows         int     `yaml:"rows"`
	Columns      int     `yaml:"columns"`
	Spacing      float64 `yaml:"spacing"`
	Radius       float64 `yaml:"radius"`
	Points       int     `yaml:"points"`
	Velocity     float64 `yaml:"velocity"`      // Units per second before the wave multiplier
	DropDistance float64 `yaml:"drop_distance"` // How far the grid descends at each edge
}

// BlockConfig defines the destructible shields.
type BlockConfig struct {
	Groups       int     `yaml:"groups"`
	GroupSpacing float64 `yaml:"group_spacing"`
	OriginX      float64 `yaml:"origin_x"` // Center of the first group
	Z            float64 `yaml:"z"`        // Depth of the front row of each group
	Radius       float64 `yaml:"radius"`
}

// ShotConfig defines projectile travel.
type ShotConfig struct {
	Velocity float64 `yaml:"velocity"`
}

// ExplosionConfig defines the explosion lifetime.
type ExplosionConfig struct {
	LiveTime float64 `yaml:"live_time"`
}

// DifficultyConfig defines the wave difficulty curve.
type DifficultyConfig struct {
	InitialMultiplier float64 `yaml:"initial_multiplier"`
	WaveIncrement     float64 `yaml:"wave_increment"` // Added to the multiplier on each cleared wave
	FireChance        float64 `yaml:"fire_chance"`    // Per-frame enemy fire probability at multiplier 1
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a CLI string to a preset. Unknown values yield "".
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	default:
		return ""
	}
}

// InitialMultiplierForPreset returns the starting multiplier for a preset.
func InitialMultiplierForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.7
	case DifficultyHard:
		return 1.6
	default:
		return 1.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// Presets returns every named preset in menu order.
func Presets() []DifficultyPreset {
	return []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed}
}

// ScoreKey returns the score table key for a preset. Normal play and the
// unadjusted config share the plain "invaders" table.
func ScoreKey(preset DifficultyPreset) string {
	if preset == "" || preset == DifficultyNormal {
		return "invaders"
	}
	return "invaders-" + string(preset)
}
