package tui

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-invaders/internal/core"
	"github.com/vovakirdan/tui-invaders/internal/registry"
	"github.com/vovakirdan/tui-invaders/internal/screens"
)

// Model is the Bubble Tea model that drives the screen machine.
type Model struct {
	machine       *screens.Machine
	keys          *KeyMapper
	help          help.Model
	screen        *core.Screen
	inputFrame    core.InputFrame
	tickRate      int
	lastTick      time.Time
	delta         float64
	screenshotDir string
	err           error
	quitting      bool
}

// NewModel creates a model around an existing machine.
func NewModel(machine *screens.Machine) Model {
	rt := machine.Context().Runtime

	dir := ""
	if home, err := os.UserHomeDir(); err == nil {
		dir = filepath.Join(home, ".invaders", "screenshots")
	}

	return Model{
		machine:       machine,
		keys:          NewKeyMapper(DefaultKeyMap(), DefaultHold),
		help:          help.New(),
		screen:        core.NewScreen(rt.ScreenW, max(rt.ScreenH-1, 1)),
		inputFrame:    core.NewInputFrame(),
		tickRate:      rt.TickRate,
		delta:         rt.FrameDelta(),
		screenshotDir: dir,
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.tickRate)
}

// Err returns the error that stopped the model, if any.
func (m Model) Err() error {
	return m.err
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Keys().Screenshot) {
		if err := m.saveScreenshot(); err != nil {
			m.machine.Context().Log().Warn("screenshot failed", "error", err)
		}
		return m, nil
	}

	if m.keys.MapKeyToFrame(msg, time.Now(), &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// handleResize processes window resize events. One row is kept for help.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	ctx := m.machine.Context()
	ctx.Runtime.ScreenW = msg.Width
	ctx.Runtime.ScreenH = msg.Height

	m.screen.Resize(msg.Width, max(msg.Height-1, 1))
	m.help.Width = msg.Width
	return m, nil
}

// handleTick advances the machine by the time since the previous tick.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	m.delta = frameDelta(m.lastTick, now, m.machine.Context().Runtime.FrameDelta())
	m.lastTick = now

	m.keys.ApplyHeld(now, &m.inputFrame)
	before := m.machine.Current()
	err := m.machine.Update(m.delta, m.inputFrame)
	m.inputFrame.Clear()

	if err != nil {
		m.err = err
		m.quitting = true
		return m, tea.Quit
	}

	// Steering never leaks into the next screen
	if m.machine.Current() != before {
		m.keys.Release()
	}

	return m, tickCmd(m.tickRate)
}

// saveScreenshot writes the current frame as plain text.
func (m *Model) saveScreenshot() error {
	if m.screenshotDir == "" {
		return errors.New("no screenshot directory")
	}
	m.machine.Draw(m.screen, m.delta)

	if err := os.MkdirAll(m.screenshotDir, 0o755); err != nil {
		return err
	}

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.machine.Current(), timestamp)
	path := filepath.Join(m.screenshotDir, filename)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		return err
	}

	m.machine.Context().Log().Info("screenshot saved", "path", path)
	return nil
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.machine.Draw(m.screen, m.delta)
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys.Keys()))
}

// Run plays the game in the local terminal until the player quits.
func Run(ctx *registry.Context) error {
	machine, err := screens.NewMachine(ctx)
	if err != nil {
		return err
	}
	defer machine.Close()

	p := tea.NewProgram(NewModel(machine), tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(Model); ok && fm.err != nil {
		return fm.err
	}
	return nil
}
