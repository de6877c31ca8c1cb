package screens

import (
	"fmt"
	"time"

	"github.com/vovakirdan/tui-invaders/internal/core"
	"github.com/vovakirdan/tui-invaders/internal/games/invaders"
	"github.com/vovakirdan/tui-invaders/internal/registry"
)

// Display timings, in seconds.
const (
	hitFlash   = 0.15 // Border flash after an explosion
	shipBlink  = 0.1  // Half-period of the exploding ship blink
	waveBanner = 2.0  // How long "WAVE n" stays on screen
)

// flashListener turns explosion notifications into a border flash.
type flashListener struct {
	flash float64
}

func (f *flashListener) OnShot() {}

func (f *flashListener) OnExplosion() { f.flash = hitFlash }

// GameLoop owns one Simulation for the lifetime of a game. It finishes when
// the ship has no lives left.
type GameLoop struct {
	ctx   *registry.Context
	sim   *invaders.Simulation
	flash *flashListener

	elapsed    float64
	wave       int
	bannerTime float64
	done       bool
}

// NewGameLoop starts a new game. A zero runtime seed is replaced by the clock.
func NewGameLoop(ctx *registry.Context) (registry.Screen, error) {
	seed := ctx.Runtime.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	flash := &flashListener{}
	sim, err := invaders.New(ctx.Game, seed, invaders.Listeners(ctx.Sound, flash))
	if err != nil {
		return nil, fmt.Errorf("screens: cannot start game: %w", err)
	}

	ctx.Log().Info("game started", "seed", seed, "invaders", sim.InvaderCount(), "lives", sim.Lives())

	return &GameLoop{
		ctx:        ctx,
		sim:        sim,
		flash:      flash,
		wave:       sim.Wave(),
		bannerTime: waveBanner,
	}, nil
}

// Update applies the frame's intents, then advances the simulation.
func (g *GameLoop) Update(delta float64, in core.InputFrame) {
	if g.done {
		return
	}
	g.elapsed += delta
	g.flash.flash = max(g.flash.flash-delta, 0)
	g.bannerTime = max(g.bannerTime-delta, 0)

	scale := in.MoveScale()
	if in.Has(core.ActionLeft) {
		g.sim.MoveShipLeft(delta, scale)
	}
	if in.Has(core.ActionRight) {
		g.sim.MoveShipRight(delta, scale)
	}
	if in.Has(core.ActionFire) {
		g.sim.Shoot()
	}

	g.sim.Update(delta)

	if w := g.sim.Wave(); w != g.wave {
		g.ctx.Log().Info("wave cleared", "wave", g.wave, "score", g.sim.Score(), "multiplier", g.sim.Multiplier())
		g.wave = w
		g.bannerTime = waveBanner
	}

	if g.sim.Lives() <= 0 {
		g.done = true
		g.ctx.Last = registry.Result{Score: g.sim.Score(), Wave: g.sim.Wave()}
		g.ctx.Log().Info("game over", "score", g.sim.Score(), "wave", g.sim.Wave(), "duration", g.elapsed)
	}
}

// Draw implements registry.Screen.
func (g *GameLoop) Draw(dst *core.Screen, _ float64) {
	if tooSmall(dst) {
		return
	}

	drawHUD(dst, g.sim.Score(), g.sim.Wave(), g.sim.Lives())

	box, view := fieldLayout(dst, g.sim.Config().Playfield)
	border := core.ColorGray
	if g.flash.flash > 0 {
		border = core.ColorRed
	}
	dst.DrawBox(box, border)

	blink := int(g.elapsed/shipBlink)%2 == 0
	drawSimulation(dst, view, g.sim, blink)

	if g.bannerTime > 0 {
		dst.DrawTextCentered(view.Rect.Y+view.Rect.H/2, fmt.Sprintf("WAVE %d", g.wave), core.ColorBrightWhite)
	}
}

// IsDone implements registry.Screen.
func (g *GameLoop) IsDone() bool { return g.done }

// Dispose drops the simulation; the game cannot be resumed.
func (g *GameLoop) Dispose() {
	g.sim = nil
}

// Simulation exposes the running simulation.
func (g *GameLoop) Simulation() *invaders.Simulation { return g.sim }

func init() {
	registry.Register(registry.GameLoop, NewGameLoop)
}
