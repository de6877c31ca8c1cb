package invaders

import (
	"math"

	"github.com/vovakirdan/tui-invaders/internal/core"
)

// ShotID identifies a shot for the lifetime of a Simulation. Zero is never assigned.
type ShotID uint64

// ExplosionFrames is the number of animation frames an explosion cycles through,
// laid out as a 4x4 sprite sheet.
const ExplosionFrames = 16

// invaderSpin is how fast invaders rotate around their own axis, in degrees
// per second at multiplier 1.
const invaderSpin = 90.0

// Ship is the player-controlled ship.
type Ship struct {
	Transform core.Transform
	Lives     int
	Exploding bool

	explodeTime float64 // Seconds spent exploding since the last hit
}

// newShip creates a ship at the near edge facing the invaders.
func newShip(pos core.Vec3, lives int) Ship {
	return Ship{
		Transform: core.Transform{Position: pos, Yaw: 180},
		Lives:     lives,
	}
}

// update advances the recovery timer. A zero recovery time keeps the ship
// exploding until the simulation replaces it at the next wave.
func (s *Ship) update(delta, recoveryTime float64) {
	if !s.Exploding || recoveryTime <= 0 {
		return
	}
	s.explodeTime += delta
	if s.explodeTime > recoveryTime {
		s.Exploding = false
		s.explodeTime = 0
	}
}

// hit applies one ship-damaging event.
func (s *Ship) hit() {
	s.Lives--
	s.Exploding = true
	s.explodeTime = 0
}

// marchState is the phase of an invader's left/down/right sweep.
type marchState int

const (
	marchLeft marchState = iota
	marchDown
	marchRight
)

// Invader is one member of the invader grid.
type Invader struct {
	Transform core.Transform

	state         marchState
	wasLastLeft   bool
	movedDistance float64
}

// newInvader creates an invader that starts halfway through its first left sweep,
// so a grid centered on x=0 stays inside a playfield whose half-width is reach.
func newInvader(pos core.Vec3, reach float64) Invader {
	return Invader{
		Transform:     core.Transform{Position: pos},
		state:         marchLeft,
		wasLastLeft:   true,
		movedDistance: reach / 2,
	}
}

// update marches the invader and spins it. Speed already includes the
// wave multiplier.
func (inv *Invader) update(delta, speed, reach, drop, multiplier float64) {
	step := delta * speed
	inv.movedDistance += step

	switch inv.state {
	case marchLeft:
		inv.Transform.Translate(core.V3(-step, 0, 0))
		if inv.movedDistance > reach {
			inv.state = marchDown
			inv.movedDistance = 0
			inv.wasLastLeft = true
		}
	case marchRight:
		inv.Transform.Translate(core.V3(step, 0, 0))
		if inv.movedDistance > reach {
			inv.state = marchDown
			inv.movedDistance = 0
			inv.wasLastLeft = false
		}
	case marchDown:
		inv.Transform.Translate(core.V3(0, 0, step))
		if inv.movedDistance > drop {
			if inv.wasLastLeft {
				inv.state = marchRight
			} else {
				inv.state = marchLeft
			}
			inv.movedDistance = 0
		}
	}

	inv.Transform.Rotate(multiplier * delta * invaderSpin)
}

// Phase returns the invader's animation phase in [0, 1).
func (inv Invader) Phase() float64 {
	return inv.Transform.Yaw / 360
}

// Block is a static, destructible piece of a shield.
type Block struct {
	Transform core.Transform
}

// Shot is a projectile travelling along the Z axis.
type Shot struct {
	ID            ShotID
	Transform     core.Transform
	Direction     float64 // -1 toward the far edge (ship shots), +1 toward the ship
	IsInvaderShot bool
	HasLeftField  bool
}

// newShot creates a shot at pos. Invader shots travel toward the near edge.
func newShot(id ShotID, pos core.Vec3, isInvaderShot bool) Shot {
	dir := -1.0
	if isInvaderShot {
		dir = 1.0
	}
	return Shot{
		ID:            id,
		Transform:     core.Transform{Position: pos},
		Direction:     dir,
		IsInvaderShot: isInvaderShot,
	}
}

// update moves the shot and flags it once it leaves [minZ, maxZ].
func (s *Shot) update(delta, velocity, minZ, maxZ float64) {
	s.Transform.Translate(core.V3(0, 0, s.Direction*delta*velocity))
	z := s.Transform.Position.Z
	if z > maxZ || z < minZ {
		s.HasLeftField = true
	}
}

// Explosion is a short-lived visual marker left at an impact point.
type Explosion struct {
	Transform core.Transform
	AliveTime float64
}

// update ages the explosion.
func (e *Explosion) update(delta float64) {
	e.AliveTime += delta
}

// Frame returns the animation frame in [0, ExplosionFrames) for a given lifetime.
func (e Explosion) Frame(liveTime float64) int {
	if liveTime <= 0 {
		return ExplosionFrames - 1
	}
	f := int(math.Floor(e.AliveTime / liveTime * ExplosionFrames))
	return core.Clamp(f, 0, ExplosionFrames-1)
}
