package screens

import (
	"fmt"

	"github.com/vovakirdan/tui-invaders/internal/core"
	"github.com/vovakirdan/tui-invaders/internal/registry"
)

// inputGuard is how long GameOver ignores input, so a fire key still held
// from the last frame of play does not skip the summary.
const inputGuard = 0.75

type textLine struct {
	text  string
	color core.Color
}

// GameOver records the finished game and shows the final score.
// Any input after the guard period returns to the main menu.
type GameOver struct {
	result    registry.Result
	highScore int
	newRecord bool
	saved     bool
	elapsed   float64
	done      bool
}

// NewGameOver saves the last result. Storage failures are logged and the
// summary is shown regardless.
func NewGameOver(ctx *registry.Context) (registry.Screen, error) {
	g := &GameOver{result: ctx.Last, highScore: ctx.Last.Score}

	if ctx.Store != nil {
		prev, err := ctx.Store.HighScore(ctx.GameID)
		if err != nil {
			ctx.Log().Warn("cannot load high score", "error", err)
		}
		if _, err := ctx.Store.SaveScore(ctx.GameID, ctx.Last.Score, ctx.Last.Wave); err != nil {
			ctx.Log().Warn("cannot save score", "error", err, "score", ctx.Last.Score)
		} else {
			g.saved = true
		}
		g.highScore = max(prev, ctx.Last.Score)
		g.newRecord = ctx.Last.Score > prev
	}

	return g, nil
}

// Update implements registry.Screen.
func (g *GameOver) Update(delta float64, in core.InputFrame) {
	g.elapsed += delta
	if g.elapsed >= inputGuard && in.Any() {
		g.done = true
	}
}

// Draw implements registry.Screen.
func (g *GameOver) Draw(dst *core.Screen, _ float64) {
	lines := []textLine{
		{"G A M E   O V E R", core.ColorBrightRed},
		{"", core.ColorDefault},
		{fmt.Sprintf("SCORE  %05d", g.result.Score), core.ColorBrightWhite},
		{fmt.Sprintf("WAVE   %d", g.result.Wave), core.ColorBrightCyan},
		{fmt.Sprintf("BEST   %05d", g.highScore), core.ColorBrightYellow},
	}
	if g.newRecord {
		lines = append(lines, textLine{"NEW HIGH SCORE!", core.ColorBrightGreen})
	}

	boxW := 28
	boxH := len(lines) + 4
	box := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)
	dst.DrawBox(box, core.ColorGray)
	for i, l := range lines {
		dst.DrawTextCentered(box.Y+2+i, l.text, l.color)
	}

	if g.elapsed >= inputGuard {
		dst.DrawTextCentered(box.Bottom()+1, "press any key", core.ColorGray)
	}
}

// IsDone implements registry.Screen.
func (g *GameOver) IsDone() bool { return g.done }

// Dispose implements registry.Screen.
func (g *GameOver) Dispose() {}

// Saved reports whether the result reached the score store.
func (g *GameOver) Saved() bool { return g.saved }

func init() {
	registry.Register(registry.GameOver, NewGameOver)
}
