package tui

import (
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-invaders/internal/core"
)

var _ help.KeyMap = KeyMap{}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper(DefaultKeyMap(), DefaultHold)

	tests := []struct {
		name   string
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{"left arrow", tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft, false},
		{"a", runeKey('a'), core.ActionLeft, false},
		{"right arrow", tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight, false},
		{"d", runeKey('d'), core.ActionRight, false},
		{"space", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.ActionFire, false},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionConfirm, false},
		{"tab", tea.KeyMsg{Type: tea.KeyTab}, core.ActionAlternate, false},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack, false},
		{"q", runeKey('q'), core.ActionNone, true},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionNone, true},
		{"unbound", runeKey('z'), core.ActionNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, quit := km.MapKey(tt.msg)
			if action != tt.action || quit != tt.quit {
				t.Errorf("MapKey(%q) = (%v, %v), expected (%v, %v)", tt.msg.String(), action, quit, tt.action, tt.quit)
			}
		})
	}
}

func TestHoldWindow(t *testing.T) {
	km := NewKeyMapper(DefaultKeyMap(), 100*time.Millisecond)
	t0 := time.Unix(1000, 0)

	frame := core.NewInputFrame()
	km.MapKeyToFrame(tea.KeyMsg{Type: tea.KeyLeft}, t0, &frame)
	if !frame.Has(core.ActionLeft) {
		t.Fatal("left press should set ActionLeft immediately")
	}

	held := core.NewInputFrame()
	km.ApplyHeld(t0.Add(50*time.Millisecond), &held)
	if !held.Has(core.ActionLeft) {
		t.Error("left should still be held inside the window")
	}

	expired := core.NewInputFrame()
	km.ApplyHeld(t0.Add(150*time.Millisecond), &expired)
	if expired.Any() {
		t.Errorf("hold should expire, got %v", expired.Actions)
	}
}

func TestOppositeDirectionCancelsHold(t *testing.T) {
	km := NewKeyMapper(DefaultKeyMap(), 100*time.Millisecond)
	t0 := time.Unix(1000, 0)

	frame := core.NewInputFrame()
	km.MapKeyToFrame(tea.KeyMsg{Type: tea.KeyLeft}, t0, &frame)
	km.MapKeyToFrame(tea.KeyMsg{Type: tea.KeyRight}, t0.Add(10*time.Millisecond), &frame)

	held := core.NewInputFrame()
	km.ApplyHeld(t0.Add(20*time.Millisecond), &held)
	if held.Has(core.ActionLeft) || !held.Has(core.ActionRight) {
		t.Errorf("held = %v, expected only right", held.Actions)
	}

	km.Release()
	released := core.NewInputFrame()
	km.ApplyHeld(t0.Add(20*time.Millisecond), &released)
	if released.Any() {
		t.Errorf("Release should clear holds, got %v", released.Actions)
	}
}

func TestFireIsNotHeld(t *testing.T) {
	km := NewKeyMapper(DefaultKeyMap(), DefaultHold)
	t0 := time.Unix(1000, 0)

	frame := core.NewInputFrame()
	km.MapKeyToFrame(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, t0, &frame)
	if !frame.Has(core.ActionFire) {
		t.Fatal("space should fire")
	}

	held := core.NewInputFrame()
	km.ApplyHeld(t0.Add(time.Millisecond), &held)
	if held.Any() {
		t.Errorf("fire should not repeat, got %v", held.Actions)
	}
}
