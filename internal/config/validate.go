package config

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid invaders config")

// Validate checks that the configuration describes a playable simulation.
// It is a construction-time check; nothing at update time can fail.
func (c InvadersConfig) Validate() error {
	p := c.Playfield
	if p.MinX >= p.MaxX {
		return invalid("playfield min_x %.2f must be below max_x %.2f", p.MinX, p.MaxX)
	}
	if p.MinZ >= p.MaxZ {
		return invalid("playfield min_z %.2f must be below max_z %.2f", p.MinZ, p.MaxZ)
	}
	if c.Ship.Z < p.MinZ || c.Ship.Z > p.MaxZ {
		return invalid("ship z %.2f outside playfield", c.Ship.Z)
	}

	if c.Ship.Lives <= 0 {
		return invalid("ship lives must be positive, got %d", c.Ship.Lives)
	}
	if c.Invaders.Rows <= 0 || c.Invaders.Columns <= 0 {
		return invalid("invader grid must be non-empty, got %dx%d", c.Invaders.Rows, c.Invaders.Columns)
	}
	if c.Blocks.Groups < 0 {
		return invalid("block groups must not be negative, got %d", c.Blocks.Groups)
	}

	radii := []struct {
		name string
		v    float64
	}{
		{"ship radius", c.Ship.Radius},
		{"invader radius", c.Invaders.Radius},
		{"block radius", c.Blocks.Radius},
	}
	for _, r := range radii {
		if r.v <= 0 {
			return invalid("%s must be positive, got %.2f", r.name, r.v)
		}
	}

	if c.Ship.Velocity < 0 || c.Invaders.Velocity < 0 || c.Shots.Velocity <= 0 {
		return invalid("velocities must be non-negative and shot velocity positive")
	}
	if c.Explosions.LiveTime <= 0 {
		return invalid("explosion live_time must be positive, got %.2f", c.Explosions.LiveTime)
	}
	if c.Ship.RecoveryTime < 0 {
		return invalid("ship recovery_time must not be negative, got %.2f", c.Ship.RecoveryTime)
	}

	d := c.Difficulty
	if d.InitialMultiplier <= 0 {
		return invalid("initial_multiplier must be positive, got %.2f", d.InitialMultiplier)
	}
	if d.WaveIncrement < 0 {
		return invalid("wave_increment must not be negative, got %.2f", d.WaveIncrement)
	}
	if d.FireChance < 0 || d.FireChance > 1 {
		return invalid("fire_chance must be within [0, 1], got %.3f", d.FireChance)
	}
	return nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("config: %w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}
