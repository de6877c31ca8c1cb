package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-invaders/internal/storage"
)

// fakeLister records which tables were read.
type fakeLister struct {
	scores map[string][]storage.ScoreEntry
	reads  []string
	err    error
}

func (f *fakeLister) TopScores(gameID string, _ int) ([]storage.ScoreEntry, error) {
	f.reads = append(f.reads, gameID)
	if f.err != nil {
		return nil, f.err
	}
	return f.scores[gameID], nil
}

func TestBoards(t *testing.T) {
	expected := []string{"invaders", "invaders-easy", "invaders-hard", "invaders-fixed"}
	boards := Boards()
	if len(boards) != len(expected) {
		t.Fatalf("got %d boards, expected %d", len(boards), len(expected))
	}
	for i, key := range expected {
		if boards[i].Key != key {
			t.Errorf("board %d key = %q, expected %q", i, boards[i].Key, key)
		}
	}
	if boards[0].Title != "Normal" || boards[2].Title != "Hard" {
		t.Errorf("unexpected titles %q, %q", boards[0].Title, boards[2].Title)
	}
}

func TestScoreboardNavigation(t *testing.T) {
	lister := &fakeLister{scores: map[string][]storage.ScoreEntry{
		"invaders": {
			{Score: 900, Wave: 4, CreatedAt: time.Date(2026, 1, 2, 15, 4, 0, 0, time.UTC)},
			{Score: 300, Wave: 2, CreatedAt: time.Date(2026, 1, 3, 9, 0, 0, 0, time.UTC)},
		},
	}}
	m := NewScoreboardModel(lister, 100, 30)

	rows := m.table.Rows()
	if len(rows) != 2 {
		t.Fatalf("table has %d rows, expected 2", len(rows))
	}
	if rows[0][0] != "#1" || rows[0][1] != "900" || rows[0][2] != "4" {
		t.Errorf("first row = %v, expected rank #1 score 900 wave 4", rows[0])
	}
	if !strings.Contains(m.View(), "HIGH SCORES - Normal") {
		t.Error("view should title the normal board")
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(ScoreboardModel)
	if m.boards[m.cursor].Key != "invaders-easy" {
		t.Errorf("tab selected %q, expected invaders-easy", m.boards[m.cursor].Key)
	}
	if len(m.table.Rows()) != 0 {
		t.Error("easy board should be empty")
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m = next.(ScoreboardModel)
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m = next.(ScoreboardModel)
	if m.boards[m.cursor].Key != "invaders-fixed" {
		t.Errorf("shift+tab should wrap to invaders-fixed, got %q", m.boards[m.cursor].Key)
	}

	expectedReads := []string{"invaders", "invaders-easy", "invaders", "invaders-fixed"}
	if strings.Join(lister.reads, ",") != strings.Join(expectedReads, ",") {
		t.Errorf("reads = %v, expected %v", lister.reads, expectedReads)
	}
}

func TestScoreboardBackAndQuit(t *testing.T) {
	m := NewScoreboardModel(nil, 60, 20)
	if !strings.Contains(m.View(), "No scores recorded yet") {
		t.Error("view without a store should show the empty message")
	}

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	back := next.(ScoreboardModel)
	if cmd == nil || !back.IsGoingBack() || back.IsQuitting() {
		t.Error("esc should leave the scoreboard as back")
	}

	next, cmd = m.Update(runeKey('q'))
	quit := next.(ScoreboardModel)
	if cmd == nil || !quit.IsQuitting() {
		t.Error("q should quit the scoreboard")
	}
}

func TestScoreboardLoadError(t *testing.T) {
	m := NewScoreboardModel(&fakeLister{err: errors.New("disk on fire")}, 100, 30)
	if view := m.View(); !strings.Contains(view, "disk on fire") {
		t.Errorf("view should report the load error, got %q", view)
	}
}
