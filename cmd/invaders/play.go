package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-invaders/internal/audio"
	"github.com/vovakirdan/tui-invaders/internal/core"
	"github.com/vovakirdan/tui-invaders/internal/platform/tui"
	"github.com/vovakirdan/tui-invaders/internal/registry"
	"github.com/vovakirdan/tui-invaders/internal/storage"
)

// soundVolume is the linear volume of every cue.
const soundVolume = 0.6

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Start the game in the current terminal.

Controls:
  Left/A, Right/D - Move ship
  Space           - Fire
  Enter           - Start game / continue
  Tab             - 3D demo (from the main menu)
  Esc/B           - Back
  Ctrl+S          - Screenshot to ~/.invaders/screenshots
  Q/Ctrl+C        - Quit

Difficulty options:
  easy   - Slower first wave
  normal - Reference pacing
  hard   - Faster first wave, faster progression
  fixed  - No progression between waves

Each difficulty keeps its own high score table.

Examples:
  invaders play
  invaders play --difficulty easy
  invaders play --config ./my-invaders.yaml
  invaders play --mute --log-file invaders.log --log-level debug`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, _ []string) {
	if err := play(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func play() error {
	// The alternate screen owns the terminal, so logs only go to --log-file
	logger, closeLog, err := newLogger(io.Discard, "invaders")
	if err != nil {
		return err
	}
	defer closeLog()

	game, gameID, err := loadGameConfig()
	if err != nil {
		return err
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}

	ctx := &registry.Context{
		Runtime: core.RuntimeConfig{
			ScreenW:  width,
			ScreenH:  height,
			TickRate: flagFPS,
			Seed:     flagSeed,
		},
		Game:   game,
		GameID: gameID,
		Logger: logger,
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		// Continue without storage - game still works
		logger.Warn("could not open scores database", "error", err)
	} else {
		defer store.Close()
		ctx.Store = store
	}

	if !flagMute {
		player := audio.NewPlayer(soundVolume)
		if err := player.Initialize(); err != nil {
			logger.Warn("sound disabled", "error", err)
		} else {
			defer player.Close()
			ctx.Sound = player
		}
	}

	logger.Info("starting", "scores", gameID, "fps", flagFPS, "seed", flagSeed)
	if err := tui.Run(ctx); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
