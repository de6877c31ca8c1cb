package tui

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-invaders/internal/core"
)

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(12, 2)
	s.DrawTextColor(0, 0, "SCORE", core.ColorBrightWhite)
	s.DrawTextColor(6, 0, "00042", core.ColorYellow)
	s.SetColor(3, 1, 'A', core.ColorBrightGreen)
	s.SetColor(4, 1, 'Z', core.Color(200)) // Unknown color renders unstyled

	out := RenderScreen(s)
	for _, want := range []string{"SCORE", "00042", "A", "Z"} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered output %q should contain %q", out, want)
		}
	}
	if n := strings.Count(out, "\n"); n != 1 {
		t.Errorf("rendered output has %d newlines, expected 1", n)
	}
}

func TestCenterText(t *testing.T) {
	tests := []struct {
		text     string
		width    int
		expected string
	}{
		{"ab", 6, "  ab"},
		{"abc", 6, " abc"},
		{"toolong", 4, "toolong"},
	}

	for _, tt := range tests {
		if got := centerText(tt.text, tt.width); got != tt.expected {
			t.Errorf("centerText(%q, %d) = %q, expected %q", tt.text, tt.width, got, tt.expected)
		}
	}
}
