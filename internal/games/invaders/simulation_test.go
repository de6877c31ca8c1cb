package invaders

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/vovakirdan/tui-invaders/internal/config"
	"github.com/vovakirdan/tui-invaders/internal/core"
)

// recorder counts listener notifications.
type recorder struct {
	shots      int
	explosions int
}

func (r *recorder) OnShot()      { r.shots++ }
func (r *recorder) OnExplosion() { r.explosions++ }

// quietConfig is the reference layout with random enemy fire disabled.
func quietConfig() config.InvadersConfig {
	cfg := config.DefaultInvadersConfig()
	cfg.Difficulty.FireChance = 0
	return cfg
}

func newTestSim(t *testing.T, cfg config.InvadersConfig) (*Simulation, *recorder) {
	t.Helper()
	rec := &recorder{}
	s, err := New(cfg, 42, rec)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	return s, rec
}

func placeInvaders(s *Simulation, positions ...core.Vec3) {
	s.invaders = s.invaders[:0]
	for _, p := range positions {
		s.invaders = append(s.invaders, newInvader(p, s.cfg.Playfield.MaxX))
	}
}

func shipShotCount(s *Simulation) int {
	n := 0
	for sh := range s.Shots() {
		if !sh.IsInvaderShot {
			n++
		}
	}
	return n
}

func TestNewSimulationLayout(t *testing.T) {
	s, _ := newTestSim(t, config.DefaultInvadersConfig())

	if s.InvaderCount() != 32 {
		t.Errorf("InvaderCount() = %d, expected 32 (4 rows x 8 columns)", s.InvaderCount())
	}
	if s.BlockCount() != 15 {
		t.Errorf("BlockCount() = %d, expected 15 (3 groups x 5)", s.BlockCount())
	}
	if s.Lives() <= 0 {
		t.Errorf("Lives() = %d, expected > 0", s.Lives())
	}
	if s.Score() != 0 {
		t.Errorf("Score() = %d, expected 0", s.Score())
	}
	if s.Wave() != 1 {
		t.Errorf("Wave() = %d, expected 1", s.Wave())
	}
	if s.Multiplier() != 1.0 {
		t.Errorf("Multiplier() = %f, expected 1.0", s.Multiplier())
	}
	if s.ShotCount() != 0 || s.ExplosionCount() != 0 {
		t.Error("fresh simulation should have no shots or explosions")
	}
	if _, ok := s.ShipShot(); ok {
		t.Error("fresh simulation should have no ship shot")
	}

	ship := s.Ship()
	if ship.Exploding {
		t.Error("fresh ship should not be exploding")
	}
	if ship.Transform.Position != core.V3(0, 0, 0) {
		t.Errorf("ship position = %v, expected origin", ship.Transform.Position)
	}
}

func TestReferenceGridPositions(t *testing.T) {
	s, _ := newTestSim(t, config.DefaultInvadersConfig())

	// First invader is the left end of the far row, as in the arcade layout
	first := s.invaders[0].Transform.Position
	if first != core.V3(-7, 0, -15) {
		t.Errorf("first invader at %v, expected (-7, 0, -15)", first)
	}
	last := s.invaders[len(s.invaders)-1].Transform.Position
	if last != core.V3(7, 0, -9) {
		t.Errorf("last invader at %v, expected (7, 0, -9)", last)
	}

	expectedBlocks := []core.Vec3{
		core.V3(-11, 0, -2), core.V3(-11, 0, -3), core.V3(-10, 0, -3), core.V3(-9, 0, -3), core.V3(-9, 0, -2),
	}
	for i, want := range expectedBlocks {
		if got := s.blocks[i].Transform.Position; got != want {
			t.Errorf("block %d at %v, expected %v", i, got, want)
		}
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := config.DefaultInvadersConfig()
	cfg.Invaders.Columns = 0

	s, err := New(cfg, 1, nil)
	if err == nil {
		t.Fatal("New() should fail for an empty grid")
	}
	if s != nil {
		t.Error("New() should not return a simulation on error")
	}
	if !errors.Is(err, config.ErrInvalidConfig) {
		t.Errorf("error should wrap ErrInvalidConfig, got %v", err)
	}
}

func TestShootSingleShipShot(t *testing.T) {
	s, rec := newTestSim(t, quietConfig())

	s.Shoot()
	if s.ShotCount() != 1 {
		t.Fatalf("ShotCount() = %d after Shoot, expected 1", s.ShotCount())
	}
	shot, ok := s.ShipShot()
	if !ok {
		t.Fatal("ShipShot() should be set after Shoot")
	}
	if shot.IsInvaderShot {
		t.Error("ship shot should not be an invader shot")
	}
	if shot.Transform.Position != s.Ship().Transform.Position {
		t.Errorf("ship shot spawned at %v, expected ship position", shot.Transform.Position)
	}
	if shot.Direction >= 0 {
		t.Errorf("ship shot direction = %f, expected toward min_z", shot.Direction)
	}

	s.Shoot()
	if s.ShotCount() != 1 {
		t.Errorf("ShotCount() = %d after second Shoot, expected 1", s.ShotCount())
	}
	if rec.shots != 1 {
		t.Errorf("listener saw %d shots, expected 1", rec.shots)
	}
}

func TestShootWhileExplodingIsIgnored(t *testing.T) {
	s, rec := newTestSim(t, quietConfig())
	s.ship.Exploding = true

	s.Shoot()
	if s.ShotCount() != 0 {
		t.Errorf("Shoot while exploding created %d shots", s.ShotCount())
	}
	if rec.shots != 0 {
		t.Error("Shoot while exploding should not notify")
	}
}

func TestMoveShip(t *testing.T) {
	s, _ := newTestSim(t, quietConfig())

	s.MoveShipRight(0.1, 1)
	if x := s.Ship().Transform.Position.X; math.Abs(x-2) > 1e-9 {
		t.Errorf("after MoveShipRight(0.1, 1) x = %f, expected 2", x)
	}

	s.MoveShipLeft(0.1, 2)
	if x := s.Ship().Transform.Position.X; math.Abs(x+2) > 1e-9 {
		t.Errorf("after MoveShipLeft(0.1, 2) x = %f, expected -2", x)
	}

	// Hard clamp at both edges
	s.MoveShipLeft(10, 1)
	if x := s.Ship().Transform.Position.X; x != -14 {
		t.Errorf("left clamp x = %f, expected -14", x)
	}
	s.MoveShipRight(10, 1)
	if x := s.Ship().Transform.Position.X; x != 14 {
		t.Errorf("right clamp x = %f, expected 14", x)
	}
}

func TestMoveWhileExplodingIsIgnored(t *testing.T) {
	s, _ := newTestSim(t, quietConfig())
	s.ship.Exploding = true
	before := s.Ship().Transform.Position

	s.MoveShipLeft(0.5, 1)
	s.MoveShipRight(0.2, 3)

	if after := s.Ship().Transform.Position; after != before {
		t.Errorf("exploding ship moved from %v to %v", before, after)
	}
}

func TestShipShotLeavesField(t *testing.T) {
	s, _ := newTestSim(t, quietConfig())

	s.Shoot()
	s.shots[0].Transform.Position = core.V3(13, 0, -14.95)

	s.Update(0.1)

	if s.ShotCount() != 0 {
		t.Errorf("ShotCount() = %d, shot past min_z should be removed in the same Update", s.ShotCount())
	}
	if _, ok := s.ShipShot(); ok {
		t.Error("ship shot reference should be cleared when its shot leaves the field")
	}

	s.Shoot()
	if s.ShotCount() != 1 {
		t.Error("ship should be able to fire again after its shot left the field")
	}
}

func TestInvaderShotLeavesField(t *testing.T) {
	s, _ := newTestSim(t, quietConfig())
	s.addShot(core.V3(13, 0, 1.95), true)

	s.Update(0.1)

	if s.ShotCount() != 0 {
		t.Errorf("ShotCount() = %d, invader shot past max_z should be removed", s.ShotCount())
	}
}

func TestShotCollisionFirstMatch(t *testing.T) {
	s, rec := newTestSim(t, quietConfig())

	// Two invaders equidistant from the shot, plus a closer one later in order
	placeInvaders(s,
		core.V3(-0.5, 0, -5),
		core.V3(0.5, 0, -5),
		core.V3(0, 0, -5.2),
	)
	s.Shoot()
	s.shots[0].Transform.Position = core.V3(0, 0, -5)

	s.checkInvaderCollision()

	if s.InvaderCount() != 2 {
		t.Fatalf("InvaderCount() = %d, expected exactly one invader removed", s.InvaderCount())
	}
	if got := s.invaders[0].Transform.Position; got != core.V3(0.5, 0, -5) {
		t.Errorf("remaining first invader at %v, the earlier equidistant invader should be removed", got)
	}
	if s.Score() != 40 {
		t.Errorf("Score() = %d, expected 40", s.Score())
	}
	if s.ShotCount() != 0 {
		t.Error("ship shot should be consumed by the hit")
	}
	if _, ok := s.ShipShot(); ok {
		t.Error("ship shot reference should be cleared after a hit")
	}
	if s.ExplosionCount() != 1 || rec.explosions != 1 {
		t.Errorf("expected one explosion, got %d entities and %d notifications", s.ExplosionCount(), rec.explosions)
	}
}

func TestShotHitsInvaderDuringUpdate(t *testing.T) {
	cfg := quietConfig()
	cfg.Invaders.Velocity = 0
	s, _ := newTestSim(t, cfg)
	s.blocks = nil

	placeInvaders(s, core.V3(-0.3, 0, -5), core.V3(0.3, 0, -5))
	s.Shoot()
	// Post-move position (z = -5) is what gets tested
	s.shots[0].Transform.Position = core.V3(0, 0, -4.9)

	s.Update(0.01)

	if s.InvaderCount() != 1 {
		t.Fatalf("InvaderCount() = %d, expected 1", s.InvaderCount())
	}
	if s.invaders[0].Transform.Position.X != 0.3 {
		t.Error("the earlier invader in iteration order should be the one removed")
	}
}

func TestInvaderShotsDoNotHitInvaders(t *testing.T) {
	s, _ := newTestSim(t, quietConfig())
	placeInvaders(s, core.V3(0, 0, -5))
	s.addShot(core.V3(0, 0, -5), true)

	s.checkInvaderCollision()

	if s.InvaderCount() != 1 {
		t.Error("invader shots must not destroy invaders")
	}
}

func TestInvaderCollidesWithShip(t *testing.T) {
	cfg := quietConfig()
	cfg.Invaders.Velocity = 0
	s, rec := newTestSim(t, cfg)

	invPos := core.V3(0.5, 0, 0)
	placeInvaders(s, core.V3(-10, 0, -12), invPos)
	livesBefore := s.Lives()

	s.Update(0.001)

	if s.Lives() != livesBefore-1 {
		t.Errorf("Lives() = %d, expected %d", s.Lives(), livesBefore-1)
	}
	if s.InvaderCount() != 1 {
		t.Errorf("InvaderCount() = %d, expected the colliding invader removed", s.InvaderCount())
	}
	if !s.Ship().Exploding {
		t.Error("ship should be exploding after a collision")
	}
	if s.ExplosionCount() < 1 {
		t.Fatal("collision should create at least one explosion")
	}
	found := false
	for e := range s.Explosions() {
		if e.Transform.Position == invPos {
			found = true
		}
	}
	if !found {
		t.Error("an explosion should be positioned at the collision point")
	}
	if rec.explosions != 1 {
		t.Errorf("listener saw %d explosions, expected 1", rec.explosions)
	}
}

func TestInvaderShotHitsShip(t *testing.T) {
	s, rec := newTestSim(t, quietConfig())
	s.addShot(core.V3(0, 0, -0.5), true)

	s.Update(0.01)

	if s.Lives() != 2 {
		t.Errorf("Lives() = %d, expected 2", s.Lives())
	}
	if !s.Ship().Exploding {
		t.Error("ship should be exploding")
	}
	if s.ShotCount() != 0 {
		t.Error("the hitting shot should be removed")
	}
	if rec.explosions != 1 {
		t.Errorf("listener saw %d explosions, expected 1", rec.explosions)
	}
}

func TestExplodingShipTakesNoDamage(t *testing.T) {
	cfg := quietConfig()
	cfg.Invaders.Velocity = 0
	s, _ := newTestSim(t, cfg)
	s.ship.hit()
	lives := s.Lives()

	s.addShot(core.V3(0, 0, -0.5), true)
	placeInvaders(s, core.V3(-10, 0, -12), core.V3(0.2, 0, 0))

	s.Update(0.01)

	if s.Lives() != lives {
		t.Errorf("Lives() = %d, exploding ship should not lose another life", s.Lives())
	}
	if s.InvaderCount() != 2 {
		t.Error("invader overlapping an exploding ship should not be consumed")
	}
}

func TestOneLifePerFrame(t *testing.T) {
	cfg := quietConfig()
	cfg.Invaders.Velocity = 0
	s, _ := newTestSim(t, cfg)

	// Both an invader shot and an invader reach the ship in the same frame
	s.addShot(core.V3(0, 0, -0.5), true)
	placeInvaders(s, core.V3(-10, 0, -12), core.V3(0.2, 0, 0))

	s.Update(0.01)

	if s.Lives() != 2 {
		t.Errorf("Lives() = %d, expected exactly one life lost", s.Lives())
	}
}

func TestShipRecovery(t *testing.T) {
	cfg := quietConfig()
	cfg.Ship.RecoveryTime = 1.0
	s, _ := newTestSim(t, cfg)
	s.ship.hit()

	s.Update(0.6)
	if !s.Ship().Exploding {
		t.Fatal("ship should still be exploding before recovery_time elapses")
	}
	s.Update(0.6)
	if s.Ship().Exploding {
		t.Fatal("ship should recover after recovery_time")
	}

	before := s.Ship().Transform.Position
	s.MoveShipRight(0.1, 1)
	if s.Ship().Transform.Position == before {
		t.Error("recovered ship should move again")
	}
}

// With recovery_time 0 the exploding flag is only cleared by the next wave.
func TestExplodingTerminalUntilNextWave(t *testing.T) {
	cfg := quietConfig()
	cfg.Ship.RecoveryTime = 0
	s, _ := newTestSim(t, cfg)
	s.ship.hit()

	for range 600 {
		s.Update(1.0 / 60.0)
	}
	if !s.Ship().Exploding {
		t.Fatal("ship should stay exploding mid-wave when recovery_time is 0")
	}

	s.invaders = nil
	s.Update(1.0 / 60.0)

	if s.Wave() != 2 {
		t.Fatalf("Wave() = %d, expected 2", s.Wave())
	}
	if s.Ship().Exploding {
		t.Error("wave reset should clear the exploding flag")
	}
}

func TestShotHitsBlock(t *testing.T) {
	s, rec := newTestSim(t, quietConfig())
	target := s.blocks[2].Transform.Position

	s.Shoot()
	s.shots[0].Transform.Position = target

	s.checkBlockCollision()

	if s.BlockCount() != 14 {
		t.Errorf("BlockCount() = %d, expected 14", s.BlockCount())
	}
	if s.ShotCount() != 0 {
		t.Error("shot should be consumed by the block")
	}
	if _, ok := s.ShipShot(); ok {
		t.Error("ship shot reference should be cleared when a block absorbs it")
	}
	for b := range s.Blocks() {
		if b.Transform.Position == target {
			t.Error("hit block should be removed")
		}
	}
	if rec.explosions != 1 {
		t.Errorf("listener saw %d explosions, expected 1", rec.explosions)
	}
}

func TestInvaderShotHitsBlock(t *testing.T) {
	s, _ := newTestSim(t, quietConfig())
	target := s.blocks[0].Transform.Position
	s.addShot(target.Add(core.V3(0.1, 0, 0)), true)
	s.addShot(target.Add(core.V3(-0.1, 0, 0)), true)

	s.checkBlockCollision()

	// Each shot destroys at most one block; the second shot finds the next block out of range
	if s.BlockCount() != 14 {
		t.Errorf("BlockCount() = %d, expected 14", s.BlockCount())
	}
	if s.ShotCount() != 1 {
		t.Errorf("ShotCount() = %d, expected the second shot to survive", s.ShotCount())
	}
}

func TestRandomEnemyFire(t *testing.T) {
	cfg := config.DefaultInvadersConfig()
	cfg.Difficulty.FireChance = 1
	s, rec := newTestSim(t, cfg)

	s.Update(0.001)

	invaderShots := 0
	for sh := range s.Shots() {
		if !sh.IsInvaderShot {
			continue
		}
		invaderShots++
		onInvader := false
		for inv := range s.Invaders() {
			if inv.Transform.Position == sh.Transform.Position {
				onInvader = true
			}
		}
		if !onInvader {
			t.Errorf("enemy shot at %v should spawn at an invader", sh.Transform.Position)
		}
	}
	if invaderShots != 1 {
		t.Errorf("expected exactly one enemy shot per frame, got %d", invaderShots)
	}
	if rec.shots != 1 {
		t.Errorf("listener saw %d shots, expected 1", rec.shots)
	}
}

func TestNoEnemyFireWithoutInvaders(t *testing.T) {
	cfg := config.DefaultInvadersConfig()
	cfg.Difficulty.FireChance = 1
	s, _ := newTestSim(t, cfg)
	s.invaders = nil
	s.ship.Lives = 0 // Keep the wave from resetting

	s.Update(0.01)

	if s.ShotCount() != 0 {
		t.Errorf("ShotCount() = %d, no enemy fire expected without invaders", s.ShotCount())
	}
}

func TestWaveTransition(t *testing.T) {
	s, _ := newTestSim(t, quietConfig())

	s.MoveShipRight(0.25, 1)
	s.blocks = s.blocks[:7]
	s.ship.Lives = 2
	posBefore := s.Ship().Transform.Position

	// Shoot down every invader one by one
	for s.InvaderCount() > 0 {
		s.Shoot()
		idx := s.shipShotIndex()
		if idx < 0 {
			t.Fatal("ship shot should be available between hits")
		}
		s.shots[idx].Transform.Position = s.invaders[0].Transform.Position
		s.checkInvaderCollision()
	}
	scoreBefore := s.Score()
	if scoreBefore != 32*40 {
		t.Fatalf("Score() = %d, expected %d", scoreBefore, 32*40)
	}

	s.addShot(core.V3(5, 0, -8), true)
	s.Update(0.001)

	if s.Wave() != 2 {
		t.Errorf("Wave() = %d, expected 2", s.Wave())
	}
	if s.InvaderCount() != 32 {
		t.Errorf("InvaderCount() = %d, expected 32", s.InvaderCount())
	}
	if s.BlockCount() != 15 {
		t.Errorf("BlockCount() = %d, expected 15", s.BlockCount())
	}
	if s.ShotCount() != 0 {
		t.Errorf("ShotCount() = %d, shots should be cleared", s.ShotCount())
	}
	if _, ok := s.ShipShot(); ok {
		t.Error("ship shot reference should be detached")
	}
	if s.Score() != scoreBefore {
		t.Errorf("Score() = %d, expected %d preserved", s.Score(), scoreBefore)
	}
	if s.Lives() != 2 {
		t.Errorf("Lives() = %d, expected 2 preserved", s.Lives())
	}
	if s.Ship().Transform.Position != posBefore {
		t.Errorf("ship position = %v, expected %v preserved", s.Ship().Transform.Position, posBefore)
	}
	if math.Abs(s.Multiplier()-1.2) > 1e-9 {
		t.Errorf("Multiplier() = %f, expected 1.2", s.Multiplier())
	}
}

func TestNoWaveTransitionWithoutLives(t *testing.T) {
	s, _ := newTestSim(t, quietConfig())
	s.invaders = nil
	s.ship.Lives = 0

	s.Update(0.01)

	if s.Wave() != 1 {
		t.Errorf("Wave() = %d, a dead ship must not advance the wave", s.Wave())
	}
	if s.InvaderCount() != 0 {
		t.Error("grid should not be repopulated for a dead ship")
	}
}

func TestFixedDifficultyKeepsMultiplier(t *testing.T) {
	cfg := quietConfig()
	config.ApplyPreset(&cfg, config.DifficultyFixed)
	s, _ := newTestSim(t, cfg)

	s.invaders = nil
	s.Update(0.01)

	if s.Wave() != 2 {
		t.Fatalf("Wave() = %d, expected 2", s.Wave())
	}
	if s.Multiplier() != 1.0 {
		t.Errorf("Multiplier() = %f, fixed preset should not scale", s.Multiplier())
	}
}

func TestExplosionsExpire(t *testing.T) {
	s, _ := newTestSim(t, quietConfig())
	s.explode(core.V3(1, 0, 1))

	s.Update(0.5)
	if s.ExplosionCount() != 1 {
		t.Fatal("explosion should still be alive at half its lifetime")
	}
	s.Update(0.6)
	if s.ExplosionCount() != 0 {
		t.Error("explosion should expire after live_time")
	}
}

func TestInvadersMarchWithMultiplier(t *testing.T) {
	s, _ := newTestSim(t, quietConfig())
	start := s.invaders[0].Transform.Position

	s.multiplier = 2
	s.Update(1)

	got := s.invaders[0].Transform.Position
	if math.Abs(got.X-(start.X-2)) > 1e-9 {
		t.Errorf("invader x = %f, expected %f at double speed", got.X, start.X-2)
	}
}

// Random intents over many frames must never leave more than one ship shot,
// and the ship shot reference must always point into the shot collection.
func TestShipShotInvariantUnderRandomPlay(t *testing.T) {
	cfg := config.DefaultInvadersConfig()
	cfg.Difficulty.FireChance = 0.2
	s, _ := newTestSim(t, cfg)
	rng := rand.New(rand.NewSource(7)) //nolint:gosec // Test input

	const delta = 1.0 / 60.0
	for frame := 0; frame < 5000 && s.Lives() > 0; frame++ {
		wasExploding := s.Ship().Exploding
		before := s.Ship().Transform.Position

		switch rng.Intn(4) {
		case 0:
			s.MoveShipLeft(delta, 1)
		case 1:
			s.MoveShipRight(delta, 1)
		case 2:
			s.Shoot()
			s.Shoot()
		}
		if wasExploding && s.Ship().Transform.Position != before {
			t.Fatalf("frame %d: exploding ship moved", frame)
		}

		s.Update(delta)

		if n := shipShotCount(s); n > 1 {
			t.Fatalf("frame %d: %d ship shots in flight", frame, n)
		}
		if s.shipShot != 0 && s.shipShotIndex() < 0 {
			t.Fatalf("frame %d: ship shot reference points at a removed shot", frame)
		}
		for sh := range s.Shots() {
			if sh.HasLeftField {
				t.Fatalf("frame %d: shot %d flagged as left but still present", frame, sh.ID)
			}
			z := sh.Transform.Position.Z
			if z < cfg.Playfield.MinZ || z > cfg.Playfield.MaxZ {
				t.Fatalf("frame %d: shot at z=%f outside playfield", frame, z)
			}
		}
	}
}
