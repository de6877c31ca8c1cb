package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-invaders/internal/core"
)

// DefaultHold is how long a left/right press keeps steering. Terminals report
// key presses and auto-repeats but never releases, so movement is held for a
// short window after the last event.
const DefaultHold = 180 * time.Millisecond

// KeyMap defines the key bindings for play.
type KeyMap struct {
	Left       key.Binding
	Right      key.Binding
	Fire       key.Binding
	Confirm    key.Binding
	Demo       key.Binding
	Back       key.Binding
	Screenshot key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Fire, k.Confirm, k.Demo, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Fire},
		{k.Confirm, k.Demo, k.Back},
		{k.Screenshot, k.Quit},
	}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "a", "h"),
			key.WithHelp("←/a", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d", "l"),
			key.WithHelp("→/d", "right"),
		),
		Fire: key.NewBinding(
			key.WithKeys(" ", "up", "w", "k"),
			key.WithHelp("space", "fire"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "start"),
		),
		Demo: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "3d demo"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc", "back"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// KeyMapper translates Bubble Tea key messages to screen actions and keeps
// steering alive between key repeats.
type KeyMapper struct {
	keys       KeyMap
	hold       time.Duration
	leftUntil  time.Time
	rightUntil time.Time
}

// NewKeyMapper creates a key mapper with the given bindings and hold window.
func NewKeyMapper(keys KeyMap, hold time.Duration) *KeyMapper {
	return &KeyMapper{keys: keys, hold: hold}
}

// Keys returns the bindings, e.g. for a help view.
func (km *KeyMapper) Keys() KeyMap {
	return km.keys
}

// MapKey translates a key message to an action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	switch {
	case key.Matches(msg, km.keys.Quit):
		return core.ActionNone, true
	case key.Matches(msg, km.keys.Left):
		return core.ActionLeft, false
	case key.Matches(msg, km.keys.Right):
		return core.ActionRight, false
	case key.Matches(msg, km.keys.Fire):
		return core.ActionFire, false
	case key.Matches(msg, km.keys.Confirm):
		return core.ActionConfirm, false
	case key.Matches(msg, km.keys.Demo):
		return core.ActionAlternate, false
	case key.Matches(msg, km.keys.Back):
		return core.ActionBack, false
	}
	return core.ActionNone, false
}

// MapKeyToFrame updates an input frame based on a key message received at now.
// Steering keys start a hold window; the opposite direction cancels it.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, now time.Time, frame *core.InputFrame) bool {
	action, isQuit := km.MapKey(msg)
	switch action {
	case core.ActionNone:
	case core.ActionLeft:
		km.leftUntil = now.Add(km.hold)
		km.rightUntil = time.Time{}
		frame.Set(action)
	case core.ActionRight:
		km.rightUntil = now.Add(km.hold)
		km.leftUntil = time.Time{}
		frame.Set(action)
	default:
		frame.Set(action)
	}
	return isQuit
}

// ApplyHeld adds steering actions whose hold window is still open at now.
func (km *KeyMapper) ApplyHeld(now time.Time, frame *core.InputFrame) {
	if now.Before(km.leftUntil) {
		frame.Set(core.ActionLeft)
	}
	if now.Before(km.rightUntil) {
		frame.Set(core.ActionRight)
	}
}

// Release cancels any held steering.
func (km *KeyMapper) Release() {
	km.leftUntil = time.Time{}
	km.rightUntil = time.Time{}
}
