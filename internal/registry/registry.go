// Package registry provides the closed set of screens and their factories.
// Screens register themselves in init() functions, allowing the state machine
// to construct the next screen from its tag without hardcoded dependencies.
package registry

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-invaders/internal/config"
	"github.com/vovakirdan/tui-invaders/internal/core"
	"github.com/vovakirdan/tui-invaders/internal/games/invaders"
)

// ID tags one screen of the fixed set the state machine moves between.
type ID int

const (
	MainMenu ID = iota
	GameLoop
	GameOver
	Demo
)

// String returns a human-readable name for the screen.
func (id ID) String() string {
	switch id {
	case MainMenu:
		return "main-menu"
	case GameLoop:
		return "game-loop"
	case GameOver:
		return "game-over"
	case Demo:
		return "demo"
	default:
		return fmt.Sprintf("screen(%d)", int(id))
	}
}

// IDs returns every screen tag in declaration order.
func IDs() []ID {
	return []ID{MainMenu, GameLoop, GameOver, Demo}
}

// Screen is the contract every state of the machine implements.
// Screens contain no terminal code; the platform maps keys to actions,
// drives timing, and displays the screen buffer.
type Screen interface {
	// Update consumes one frame of input and advances the screen by delta seconds.
	Update(delta float64, in core.InputFrame)

	// Draw renders the screen into dst. It must not change screen state.
	// The buffer is pre-cleared before this call.
	Draw(dst *core.Screen, delta float64)

	// IsDone reports that the machine should move on to the next screen.
	IsDone() bool

	// Dispose releases resources owned by the screen. Called exactly once,
	// right before the next screen is constructed.
	Dispose()
}

// ScoreStore persists finished games. *storage.Store satisfies it.
type ScoreStore interface {
	SaveScore(gameID string, score, wave int) (int64, error)
	HighScore(gameID string) (int, error)
}

// Result is the outcome of the last finished game, handed from GameLoop to GameOver.
type Result struct {
	Score int
	Wave  int
}

// Context is the shared top-level state handed to every screen factory.
// It outlives individual screens; a machine owns exactly one.
type Context struct {
	Runtime core.RuntimeConfig
	Game    config.InvadersConfig
	GameID  string // Score table key, e.g. "invaders" or "invaders-hard"

	Store  ScoreStore        // May be nil when persistence is disabled
	Sound  invaders.Listener // May be nil when muted
	Logger *log.Logger

	Last Result
}

// Log returns the context logger, or a discarding one when none is set.
func (c *Context) Log() *log.Logger {
	if c.Logger == nil {
		c.Logger = log.New(io.Discard)
	}
	return c.Logger
}

// Factory creates a fresh screen for the given context.
type Factory func(ctx *Context) (Screen, error)

var (
	factories = make(map[ID]Factory)
	mu        sync.RWMutex
)

// Register adds a screen factory to the registry.
// Typically called from a screen's init() function.
// Panics if a factory for the same ID is already registered.
func Register(id ID, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: screen %s already registered", id))
	}

	factories[id] = f
}

// Create constructs a new screen by its ID.
// Returns an error if the ID is not registered or the factory fails.
func Create(id ID, ctx *Context) (Screen, error) {
	mu.RLock()
	f, ok := factories[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown screen %s", id)
	}

	s, err := f(ctx)
	if err != nil {
		return nil, fmt.Errorf("registry: cannot create %s: %w", id, err)
	}
	return s, nil
}

// Exists checks if a screen with the given ID is registered.
func Exists(id ID) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
