// Package invaders implements the authoritative simulation of an invaders
// arcade game: a ship defends against a marching invader grid from behind
// destructible blocks. It contains pure logic with no terminal, audio or
// rendering dependencies; screens drive it one frame at a time.
package invaders

import (
	"fmt"
	"iter"
	"math/rand"
	"slices"

	"github.com/vovakirdan/tui-invaders/internal/config"
	"github.com/vovakirdan/tui-invaders/internal/core"
)

// shieldShape lists block offsets (dx, dz) relative to a group's front center.
var shieldShape = [...]struct{ dx, dz float64 }{
	{-1, 0},
	{-1, -1},
	{0, -1},
	{1, -1},
	{1, 0},
}

// Simulation owns every entity of one game and advances them per frame.
// It is not safe for concurrent use; all calls must come from the frame loop.
type Simulation struct {
	cfg        config.InvadersConfig
	difficulty *config.DifficultyManager
	rng        *rand.Rand
	listener   Listener

	ship       Ship
	invaders   []Invader
	blocks     []Block
	shots      []Shot
	explosions []Explosion

	shipShot   ShotID // Zero when the ship has no shot in flight
	nextShotID ShotID

	multiplier float64
	score      int
	wave       int
}

// New validates cfg and creates a simulation with the first wave populated.
// A nil listener is replaced by NopListener.
func New(cfg config.InvadersConfig, seed int64, listener Listener) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invaders: %w", err)
	}
	if listener == nil {
		listener = NopListener{}
	}

	difficulty := config.NewDifficultyManager(cfg.Difficulty)
	s := &Simulation{
		cfg:        cfg,
		difficulty: difficulty,
		rng:        rand.New(rand.NewSource(seed)), //nolint:gosec // Gameplay randomness
		listener:   listener,
		multiplier: difficulty.InitialMultiplier(),
		wave:       1,
	}
	s.populate()
	return s, nil
}

// populate lays out a fresh wave: invader grid, shields and a new ship.
func (s *Simulation) populate() {
	ic := s.cfg.Invaders
	pf := s.cfg.Playfield

	s.ship = newShip(core.V3(0, 0, s.cfg.Ship.Z), s.cfg.Ship.Lives)

	originX := -float64(ic.Columns-1) * ic.Spacing / 2
	s.invaders = make([]Invader, 0, ic.Rows*ic.Columns)
	for row := 0; row < ic.Rows; row++ {
		for column := 0; column < ic.Columns; column++ {
			pos := core.V3(originX+float64(column)*ic.Spacing, 0, pf.MinZ+float64(row)*ic.Spacing)
			s.invaders = append(s.invaders, newInvader(pos, pf.MaxX))
		}
	}

	bc := s.cfg.Blocks
	s.blocks = make([]Block, 0, bc.Groups*len(shieldShape))
	for group := 0; group < bc.Groups; group++ {
		cx := bc.OriginX + float64(group)*bc.GroupSpacing
		for _, off := range shieldShape {
			pos := core.V3(cx+off.dx, 0, bc.Z+off.dz)
			s.blocks = append(s.blocks, Block{Transform: core.Transform{Position: pos}})
		}
	}
}

// Update advances the simulation by delta seconds. Motion is applied before
// collisions, so every check sees post-move positions.
func (s *Simulation) Update(delta float64) {
	s.ship.update(delta, s.cfg.Ship.RecoveryTime)
	s.updateInvaders(delta)
	s.updateShots(delta)
	s.updateExplosions(delta)
	s.checkShipCollision()
	s.checkInvaderCollision()
	s.checkBlockCollision()
	s.checkNextWave()
}

func (s *Simulation) updateInvaders(delta float64) {
	speed := s.difficulty.Speed(s.cfg.Invaders.Velocity, s.multiplier)
	for i := range s.invaders {
		s.invaders[i].update(delta, speed, s.cfg.Playfield.MaxX, s.cfg.Invaders.DropDistance, s.multiplier)
	}
}

func (s *Simulation) updateShots(delta float64) {
	pf := s.cfg.Playfield
	for i := range s.shots {
		s.shots[i].update(delta, s.cfg.Shots.Velocity, pf.MinZ, pf.MaxZ)
	}
	s.pruneShots()

	// One draw per frame regardless of delta.
	if s.rng.Float64() < s.difficulty.FireChance(s.multiplier) && len(s.invaders) > 0 {
		shooter := s.invaders[s.rng.Intn(len(s.invaders))]
		s.addShot(shooter.Transform.Position, true)
		s.listener.OnShot()
	}
}

func (s *Simulation) updateExplosions(delta float64) {
	for i := range s.explosions {
		s.explosions[i].update(delta)
	}
	liveTime := s.cfg.Explosions.LiveTime
	s.explosions = slices.DeleteFunc(s.explosions, func(e Explosion) bool {
		return e.AliveTime > liveTime
	})
}

// checkNextWave starts a new wave once the grid is cleared and the ship survives.
// Score, ship position and lives carry over.
func (s *Simulation) checkNextWave() {
	if len(s.invaders) > 0 || s.ship.Lives <= 0 {
		return
	}

	pos := s.ship.Transform.Position
	lives := s.ship.Lives

	s.blocks = nil
	s.shots = nil
	s.shipShot = 0
	s.populate()

	s.ship.Transform.Position = pos
	s.ship.Lives = lives
	s.multiplier = s.difficulty.NextMultiplier(s.multiplier)
	s.wave++
}

// MoveShipLeft moves the ship toward min_x, clamped to the playfield.
// Ignored while the ship is exploding.
func (s *Simulation) MoveShipLeft(delta, scale float64) {
	s.moveShip(-delta * s.cfg.Ship.Velocity * scale)
}

// MoveShipRight moves the ship toward max_x, clamped to the playfield.
// Ignored while the ship is exploding.
func (s *Simulation) MoveShipRight(delta, scale float64) {
	s.moveShip(delta * s.cfg.Ship.Velocity * scale)
}

func (s *Simulation) moveShip(dx float64) {
	if s.ship.Exploding {
		return
	}
	pos := &s.ship.Transform.Position
	pos.X = core.ClampF(pos.X+dx, s.cfg.Playfield.MinX, s.cfg.Playfield.MaxX)
}

// Shoot fires the ship shot from the ship's position toward the far edge.
// Ignored while a ship shot is in flight or the ship is exploding.
func (s *Simulation) Shoot() {
	if s.shipShot != 0 || s.ship.Exploding {
		return
	}
	s.shipShot = s.addShot(s.ship.Transform.Position, false)
	s.listener.OnShot()
}

// addShot appends a new shot and returns its ID.
func (s *Simulation) addShot(pos core.Vec3, isInvaderShot bool) ShotID {
	s.nextShotID++
	s.shots = append(s.shots, newShot(s.nextShotID, pos, isInvaderShot))
	return s.nextShotID
}

// pruneShots removes every shot flagged HasLeftField and drops the ship shot
// reference if its shot was among them.
func (s *Simulation) pruneShots() {
	shipShotGone := false
	s.shots = slices.DeleteFunc(s.shots, func(sh Shot) bool {
		if sh.HasLeftField && sh.ID == s.shipShot {
			shipShotGone = true
		}
		return sh.HasLeftField
	})
	if shipShotGone {
		s.shipShot = 0
	}
}

// shipShotIndex returns the index of the ship shot in the shot collection, or -1.
func (s *Simulation) shipShotIndex() int {
	if s.shipShot == 0 {
		return -1
	}
	return slices.IndexFunc(s.shots, func(sh Shot) bool { return sh.ID == s.shipShot })
}

// explode records an explosion at pos.
func (s *Simulation) explode(pos core.Vec3) {
	s.explosions = append(s.explosions, Explosion{Transform: core.Transform{Position: pos}})
}

// Ship returns a copy of the ship.
func (s *Simulation) Ship() Ship {
	return s.ship
}

// ShipShot returns the ship shot in flight, if any.
func (s *Simulation) ShipShot() (Shot, bool) {
	i := s.shipShotIndex()
	if i < 0 {
		return Shot{}, false
	}
	return s.shots[i], true
}

// Invaders iterates over copies of the live invaders in collection order.
func (s *Simulation) Invaders() iter.Seq[Invader] {
	return func(yield func(Invader) bool) {
		for _, inv := range s.invaders {
			if !yield(inv) {
				return
			}
		}
	}
}

// Blocks iterates over copies of the remaining blocks.
func (s *Simulation) Blocks() iter.Seq[Block] {
	return func(yield func(Block) bool) {
		for _, b := range s.blocks {
			if !yield(b) {
				return
			}
		}
	}
}

// Shots iterates over copies of the shots in flight.
func (s *Simulation) Shots() iter.Seq[Shot] {
	return func(yield func(Shot) bool) {
		for _, sh := range s.shots {
			if !yield(sh) {
				return
			}
		}
	}
}

// Explosions iterates over copies of the active explosions.
func (s *Simulation) Explosions() iter.Seq[Explosion] {
	return func(yield func(Explosion) bool) {
		for _, e := range s.explosions {
			if !yield(e) {
				return
			}
		}
	}
}

// InvaderCount returns the number of live invaders.
func (s *Simulation) InvaderCount() int { return len(s.invaders) }

// BlockCount returns the number of remaining blocks.
func (s *Simulation) BlockCount() int { return len(s.blocks) }

// ShotCount returns the number of shots in flight.
func (s *Simulation) ShotCount() int { return len(s.shots) }

// ExplosionCount returns the number of active explosions.
func (s *Simulation) ExplosionCount() int { return len(s.explosions) }

// Score returns the points earned so far. It is never reset between waves.
func (s *Simulation) Score() int { return s.score }

// Wave returns the current wave, starting at 1.
func (s *Simulation) Wave() int { return s.wave }

// Lives returns the ship's remaining lives.
func (s *Simulation) Lives() int { return s.ship.Lives }

// Multiplier returns the current difficulty multiplier.
func (s *Simulation) Multiplier() float64 { return s.multiplier }

// Config returns the configuration the simulation was built with.
func (s *Simulation) Config() config.InvadersConfig { return s.cfg }
