// Package screens implements the screen state machine: the main menu, the
// gameplay loop wrapping one Simulation, the game over summary, and a 3D
// point-cloud demo. Screens draw into a core.Screen and never touch the
// terminal directly.
package screens

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/tui-invaders/internal/config"
	"github.com/vovakirdan/tui-invaders/internal/core"
	"github.com/vovakirdan/tui-invaders/internal/games/invaders"
)

// Glyphs used on the playfield.
const (
	ShipGlyph        = 'A'
	ShipHitGlyph     = 'X'
	BlockGlyph       = '█'
	ShipShotGlyph    = '|'
	InvaderShotGlyph = '!'
	LifeGlyph        = '♥'
)

// invaderGlyphs alternate with the invader's spin phase.
var invaderGlyphs = [...]rune{'W', 'M'}

// explosionGlyphs run from the flash to the fading smoke.
var explosionGlyphs = [...]rune{'@', '*', '+', '·'}

// Minimum screen size for the playfield.
const (
	minFieldW = 32
	minFieldH = 14
)

// Viewport maps playfield X/Z coordinates onto a rectangle of cells.
// X grows to the right, Z grows toward the bottom of the screen.
type Viewport struct {
	Rect  core.Rect
	Field config.PlayfieldConfig
}

// Cell returns the screen cell for a playfield position. Positions outside
// the playfield map outside Rect.
func (v Viewport) Cell(p core.Vec3) (x, y int) {
	fx := (p.X - v.Field.MinX) / (v.Field.MaxX - v.Field.MinX)
	fz := (p.Z - v.Field.MinZ) / (v.Field.MaxZ - v.Field.MinZ)
	x = v.Rect.X + int(math.Round(fx*float64(v.Rect.W-1)))
	y = v.Rect.Y + int(math.Round(fz*float64(v.Rect.H-1)))
	return x, y
}

func (v Viewport) plot(dst *core.Screen, p core.Vec3, r rune, c core.Color) {
	x, y := v.Cell(p)
	if v.Rect.Contains(x, y) {
		dst.SetColor(x, y, r, c)
	}
}

// fieldLayout returns the bordered playfield box and the viewport inside it,
// leaving row 0 for the HUD.
func fieldLayout(dst *core.Screen, field config.PlayfieldConfig) (core.Rect, Viewport) {
	box := core.NewRect(0, 1, dst.Width(), dst.Height()-1)
	inner := core.NewRect(box.X+1, box.Y+1, box.W-2, box.H-2)
	return box, Viewport{Rect: inner, Field: field}
}

// tooSmall reports whether dst cannot hold the playfield and draws a hint if so.
func tooSmall(dst *core.Screen) bool {
	if dst.Width() >= minFieldW && dst.Height() >= minFieldH {
		return false
	}
	dst.DrawTextCentered(dst.Height()/2-1, "Window too small", core.ColorYellow)
	dst.DrawTextCentered(dst.Height()/2+1, fmt.Sprintf("Need %dx%d", minFieldW, minFieldH), core.ColorGray)
	return true
}

// drawHUD draws score, wave and remaining lives on row 0.
func drawHUD(dst *core.Screen, score, wave, lives int) {
	dst.DrawTextColor(1, 0, fmt.Sprintf("SCORE %05d", score), core.ColorBrightWhite)
	dst.DrawTextCentered(0, fmt.Sprintf("WAVE %d", wave), core.ColorBrightCyan)

	livesText := "LIVES " + strings.Repeat(string(LifeGlyph), max(lives, 0))
	dst.DrawTextColor(dst.Width()-len([]rune(livesText))-1, 0, livesText, core.ColorBrightRed)
}

// drawSimulation renders every entity of sim inside the viewport.
// Ships blink while exploding when blink is set.
func drawSimulation(dst *core.Screen, v Viewport, sim *invaders.Simulation, blink bool) {
	for b := range sim.Blocks() {
		v.plot(dst, b.Transform.Position, BlockGlyph, core.ColorGreen)
	}

	for inv := range sim.Invaders() {
		glyph := invaderGlyphs[int(inv.Phase()*float64(len(invaderGlyphs)))%len(invaderGlyphs)]
		v.plot(dst, inv.Transform.Position, glyph, core.ColorBrightMagenta)
	}

	for sh := range sim.Shots() {
		if sh.IsInvaderShot {
			v.plot(dst, sh.Transform.Position, InvaderShotGlyph, core.ColorOrange)
		} else {
			v.plot(dst, sh.Transform.Position, ShipShotGlyph, core.ColorBrightYellow)
		}
	}

	liveTime := sim.Config().Explosions.LiveTime
	for e := range sim.Explosions() {
		frame := e.Frame(liveTime)
		glyph := explosionGlyphs[frame*len(explosionGlyphs)/invaders.ExplosionFrames]
		v.plot(dst, e.Transform.Position, glyph, core.ColorYellow)
	}

	ship := sim.Ship()
	switch {
	case !ship.Exploding:
		v.plot(dst, ship.Transform.Position, ShipGlyph, core.ColorBrightCyan)
	case blink:
		v.plot(dst, ship.Transform.Position, ShipHitGlyph, core.ColorRed)
	}
}
