package tui

import (
	"os"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-invaders/internal/config"
	"github.com/vovakirdan/tui-invaders/internal/core"
	"github.com/vovakirdan/tui-invaders/internal/registry"
	"github.com/vovakirdan/tui-invaders/internal/screens"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	cfg := config.DefaultInvadersConfig()
	cfg.Difficulty.FireChance = 0

	rt := core.DefaultConfig()
	rt.Seed = 1
	ctx := &registry.Context{Runtime: rt, Game: cfg, GameID: "invaders"}

	machine, err := screens.NewMachine(ctx)
	if err != nil {
		t.Fatalf("NewMachine failed: %v", err)
	}
	t.Cleanup(machine.Close)

	m := NewModel(machine)
	m.screenshotDir = t.TempDir()
	return m
}

func step(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, expected Model", next)
	}
	return nm, cmd
}

func TestModelStartsGame(t *testing.T) {
	m := newTestModel(t)
	if m.Init() == nil {
		t.Fatal("Init should start the tick loop")
	}

	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, cmd := step(t, m, TickMsg(time.Now()))
	if cmd == nil {
		t.Error("tick should schedule the next tick")
	}
	if m.machine.Current() != registry.GameLoop {
		t.Fatalf("current = %s, expected %s", m.machine.Current(), registry.GameLoop)
	}

	if view := m.View(); !strings.Contains(view, "SCORE") {
		t.Errorf("game view should show the HUD, got %q", view)
	}
}

func TestModelHeldSteering(t *testing.T) {
	m := newTestModel(t)
	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = step(t, m, TickMsg(time.Now()))

	gl, ok := m.machine.Screen().(*screens.GameLoop)
	if !ok {
		t.Fatalf("screen is %T, expected *screens.GameLoop", m.machine.Screen())
	}
	x0 := gl.Simulation().Ship().Transform.Position.X

	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	m, _ = step(t, m, TickMsg(time.Now()))
	m, _ = step(t, m, TickMsg(time.Now()))
	x1 := gl.Simulation().Ship().Transform.Position.X
	if x1 >= x0 {
		t.Fatalf("ship x = %f after steering left from %f", x1, x0)
	}

	// Long after the last key event the hold has expired
	_, _ = step(t, m, TickMsg(time.Now().Add(time.Second)))
	if x2 := gl.Simulation().Ship().Transform.Position.X; x2 != x1 {
		t.Errorf("ship x = %f, expected to stay at %f once the hold expires", x2, x1)
	}
}

func TestModelQuit(t *testing.T) {
	m := newTestModel(t)
	m, cmd := step(t, m, runeKey('q'))
	if cmd == nil {
		t.Fatal("q should return a quit command")
	}
	if !m.quitting {
		t.Error("model should be quitting")
	}
	if m.View() != "" {
		t.Error("quitting model should render nothing")
	}
}

func TestModelResize(t *testing.T) {
	m := newTestModel(t)
	m, _ = step(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})

	if m.screen.Width() != 100 || m.screen.Height() != 29 {
		t.Errorf("screen = %dx%d, expected 100x29", m.screen.Width(), m.screen.Height())
	}
	rt := m.machine.Context().Runtime
	if rt.ScreenW != 100 || rt.ScreenH != 30 {
		t.Errorf("runtime size = %dx%d, expected 100x30", rt.ScreenW, rt.ScreenH)
	}
}

func TestModelScreenshot(t *testing.T) {
	m := newTestModel(t)
	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})

	entries, err := os.ReadDir(m.screenshotDir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("found %d screenshots, expected 1", len(entries))
	}
	if name := entries[0].Name(); !strings.HasPrefix(name, "main-menu_") {
		t.Errorf("screenshot name = %q, expected main-menu_ prefix", name)
	}
}
