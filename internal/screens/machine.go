package screens

import (
	"fmt"

	"github.com/vovakirdan/tui-invaders/internal/core"
	"github.com/vovakirdan/tui-invaders/internal/registry"
)

// Machine drives the current screen and replaces it when it finishes.
// Screens are never re-entered: every transition builds a fresh instance.
type Machine struct {
	ctx     *registry.Context
	current registry.ID
	screen  registry.Screen
}

// NewMachine creates a machine positioned on the main menu.
func NewMachine(ctx *registry.Context) (*Machine, error) {
	s, err := registry.Create(registry.MainMenu, ctx)
	if err != nil {
		return nil, fmt.Errorf("screens: %w", err)
	}
	return &Machine{ctx: ctx, current: registry.MainMenu, screen: s}, nil
}

// Current returns the tag of the active screen.
func (m *Machine) Current() registry.ID { return m.current }

// Screen returns the active screen.
func (m *Machine) Screen() registry.Screen { return m.screen }

// Context returns the shared context.
func (m *Machine) Context() *registry.Context { return m.ctx }

// Update advances the active screen by one frame and performs at most one
// transition. An error means the next screen could not be constructed; the
// machine then stays on the finished screen.
func (m *Machine) Update(delta float64, in core.InputFrame) error {
	m.screen.Update(delta, in)
	if !m.screen.IsDone() {
		return nil
	}

	next := Next(m.current, m.screen)
	s, err := registry.Create(next, m.ctx)
	if err != nil {
		return fmt.Errorf("screens: transition %s -> %s: %w", m.current, next, err)
	}

	m.screen.Dispose()
	m.ctx.Log().Info("screen transition", "from", m.current, "to", next)
	m.current, m.screen = next, s
	return nil
}

// Draw clears dst and renders the active screen.
func (m *Machine) Draw(dst *core.Screen, delta float64) {
	dst.Clear()
	m.screen.Draw(dst, delta)
}

// Close disposes the active screen.
func (m *Machine) Close() {
	m.screen.Dispose()
}

// Next returns the screen that follows a finished screen.
func Next(current registry.ID, finished registry.Screen) registry.ID {
	switch current {
	case registry.MainMenu:
		if menu, ok := finished.(*MainMenu); ok {
			return menu.Next()
		}
		return registry.GameLoop
	case registry.GameLoop:
		return registry.GameOver
	case registry.GameOver, registry.Demo:
		return registry.MainMenu
	}
	return registry.MainMenu
}
