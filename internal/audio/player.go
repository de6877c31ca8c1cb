// Package audio synthesizes the game's sound cues with beep and plays them
// through the system speaker. Player implements invaders.Listener.
package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/tui-invaders/internal/games/invaders"
)

// SampleRate is the output rate of every cue.
const SampleRate = beep.SampleRate(44100)

// maxVoices caps how many cues may overlap; extra cues are dropped.
const maxVoices = 8

// Player queues cues on a shared mixer. Notifications never block on audio:
// before Initialize succeeds, and after Close, they are dropped.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	initialized bool
}

var _ invaders.Listener = (*Player)(nil)

// NewPlayer creates a player with a linear volume in [0, 1].
func NewPlayer(volume float64) *Player {
	return &Player{
		mixer:  &beep.Mixer{},
		volume: min(max(volume, 0), 1),
	}
}

// Initialize opens the speaker and starts the mixer.
func (p *Player) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}

	if err := speaker.Init(SampleRate, SampleRate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("audio: cannot open speaker: %w", err)
	}

	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// OnShot implements invaders.Listener.
func (p *Player) OnShot() {
	p.play(ShotSound(SampleRate, p.volume))
}

// OnExplosion implements invaders.Listener.
func (p *Player) OnExplosion() {
	p.play(ExplosionSound(SampleRate, p.volume))
}

func (p *Player) play(s beep.Streamer) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized || p.volume <= 0 {
		return
	}

	speaker.Lock()
	if p.mixer.Len() < maxVoices {
		p.mixer.Add(s)
	}
	speaker.Unlock()
}

// Close silences pending cues and releases the speaker.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}

	speaker.Clear()
	speaker.Close()
	p.initialized = false
}
