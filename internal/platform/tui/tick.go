// Package tui provides the Bubble Tea front end for the invaders game.
// It maps keys to actions, drives the screen machine on a fixed tick, and
// renders screen buffers to the terminal.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// maxDelta caps the simulated time of one tick after a stall.
const maxDelta = 0.1

// TickMsg is sent to trigger a simulation tick.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// frameDelta returns the seconds between two ticks, clamped to (0, maxDelta].
// The first tick, with no previous time, uses fallback.
func frameDelta(prev, now time.Time, fallback float64) float64 {
	if prev.IsZero() {
		return fallback
	}
	d := now.Sub(prev).Seconds()
	if d <= 0 {
		return fallback
	}
	return min(d, maxDelta)
}
