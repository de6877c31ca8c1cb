package invaders

import (
	"slices"

	"github.com/vovakirdan/tui-invaders/internal/core"
)

// collides reports whether a point lies strictly within radius of a target's
// center. Shots have no radius of their own; the target's radius decides.
func collides(target, point core.Vec3, radius float64) bool {
	return target.Dst(point) < radius
}

// Each pass below acts on the first qualifying candidate in collection order
// and then stops scanning for that shot or entity.

// checkShipCollision handles invader shots and invaders reaching the ship.
// An exploding ship cannot take further damage.
func (s *Simulation) checkShipCollision() {
	if s.ship.Exploding {
		return
	}

	shipPos := s.ship.Transform.Position
	radius := s.cfg.Ship.Radius

	for i := range s.shots {
		shot := &s.shots[i]
		if !shot.IsInvaderShot || shot.HasLeftField {
			continue
		}
		if collides(shipPos, shot.Transform.Position, radius) {
			shot.HasLeftField = true
			s.ship.hit()
			s.explode(shipPos)
			s.listener.OnExplosion()
			break
		}
	}
	s.pruneShots()

	if s.ship.Exploding {
		return
	}

	for i, inv := range s.invaders {
		invPos := inv.Transform.Position
		if collides(invPos, shipPos, radius) {
			s.invaders = slices.Delete(s.invaders, i, i+1)
			s.ship.hit()
			s.explode(invPos)
			s.explode(shipPos)
			s.listener.OnExplosion()
			break
		}
	}
}

// checkInvaderCollision lets the ship shot destroy at most one invader.
func (s *Simulation) checkInvaderCollision() {
	idx := s.shipShotIndex()
	if idx < 0 {
		return
	}

	shot := &s.shots[idx]
	shotPos := shot.Transform.Position
	for i, inv := range s.invaders {
		invPos := inv.Transform.Position
		if collides(invPos, shotPos, s.cfg.Invaders.Radius) {
			shot.HasLeftField = true
			s.invaders = slices.Delete(s.invaders, i, i+1)
			s.explode(invPos)
			s.listener.OnExplosion()
			s.score += s.cfg.Invaders.Points
			break
		}
	}
	s.pruneShots()
}

// checkBlockCollision lets every shot, from either side, destroy at most one block.
func (s *Simulation) checkBlockCollision() {
	for i := range s.shots {
		shot := &s.shots[i]
		if shot.HasLeftField {
			continue
		}
		shotPos := shot.Transform.Position
		for j, b := range s.blocks {
			blockPos := b.Transform.Position
			if collides(blockPos, shotPos, s.cfg.Blocks.Radius) {
				shot.HasLeftField = true
				s.blocks = slices.Delete(s.blocks, j, j+1)
				s.explode(blockPos)
				s.listener.OnExplosion()
				break
			}
		}
	}
	s.pruneShots()
}
