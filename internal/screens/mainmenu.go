package screens

import (
	"fmt"

	"github.com/vovakirdan/tui-invaders/internal/core"
	"github.com/vovakirdan/tui-invaders/internal/registry"
)

// titleArt is the banner shown on the main menu.
var titleArt = []string{
	"╦╔╗╔╦  ╦╔═╗╔╦╗╔═╗╦═╗╔═╗",
	"║║║║╚╗╔╝╠═╣ ║║║╣ ╠╦╝╚═╗",
	"╩╝╚╝ ╚╝ ╩ ╩═╩╝╚═╝╩╚═╚═╝",
}

// promptBlink is the half-period of the blinking start prompt, in seconds.
const promptBlink = 0.5

// MainMenu waits for the player to start a game or open the demo.
type MainMenu struct {
	ctx       *registry.Context
	highScore int
	elapsed   float64
	next      registry.ID
	done      bool
}

// NewMainMenu creates the main menu and looks up the stored high score.
func NewMainMenu(ctx *registry.Context) (registry.Screen, error) {
	m := &MainMenu{ctx: ctx, next: registry.GameLoop}
	if ctx.Store != nil {
		high, err := ctx.Store.HighScore(ctx.GameID)
		if err != nil {
			ctx.Log().Warn("cannot load high score", "error", err)
		}
		m.highScore = high
	}
	return m, nil
}

// Update implements registry.Screen.
func (m *MainMenu) Update(delta float64, in core.InputFrame) {
	m.elapsed += delta
	if m.done {
		return
	}

	switch {
	case in.Has(core.ActionConfirm), in.Has(core.ActionFire):
		m.next = registry.GameLoop
		m.done = true
	case in.Has(core.ActionAlternate):
		m.next = registry.Demo
		m.done = true
	}
}

// Draw implements registry.Screen.
func (m *MainMenu) Draw(dst *core.Screen, _ float64) {
	h := dst.Height()
	top := max((h-len(titleArt)-9)/2, 0)

	for i, line := range titleArt {
		dst.DrawTextCentered(top+i, line, core.ColorBrightGreen)
	}

	parade := "W  M  W  M  W  M  W  M"
	if int(m.elapsed/promptBlink)%2 == 1 {
		parade = "M  W  M  W  M  W  M  W"
	}
	dst.DrawTextCentered(top+len(titleArt)+1, parade, core.ColorBrightMagenta)

	y := top + len(titleArt) + 3
	if int(m.elapsed/promptBlink)%2 == 0 {
		dst.DrawTextCentered(y, "PRESS ENTER TO START", core.ColorBrightWhite)
	}
	dst.DrawTextCentered(y+2, "TAB  3D demo", core.ColorGray)
	dst.DrawTextCentered(y+3, "←/→ move   SPACE fire   Q quit", core.ColorGray)

	if m.highScore > 0 {
		dst.DrawTextCentered(y+5, fmt.Sprintf("HIGH SCORE %05d", m.highScore), core.ColorBrightYellow)
	}
}

// IsDone implements registry.Screen.
func (m *MainMenu) IsDone() bool { return m.done }

// Dispose implements registry.Screen.
func (m *MainMenu) Dispose() {}

// Next returns the screen the player picked.
func (m *MainMenu) Next() registry.ID { return m.next }

func init() {
	registry.Register(registry.MainMenu, NewMainMenu)
}
