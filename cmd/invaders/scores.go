package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-invaders/internal/config"
	"github.com/vovakirdan/tui-invaders/internal/platform/tui"
	"github.com/vovakirdan/tui-invaders/internal/storage"
)

var (
	flagScoresPlain bool
	flagScoresAll   bool
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [difficulty]",
	Short: "Show high scores",
	Long: `Display high scores for a difficulty (default: normal).

On a terminal this opens an interactive table where tab switches between
difficulties. Otherwise, or with --plain, the top 10 are printed as text.

Examples:
  invaders scores
  invaders scores hard --plain
  invaders scores easy --all
  invaders scores fixed --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagScoresPlain, "plain", false, "Print as text even on a terminal")
	scoresCmd.Flags().BoolVar(&flagScoresAll, "all", false, "Print every recorded score")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all scores of the difficulty")
}

func runScores(_ *cobra.Command, args []string) {
	preset := config.DifficultyNormal
	if len(args) == 1 {
		preset = config.ParsePreset(args[0])
		if preset == "" {
			fmt.Fprintf(os.Stderr, "Error: unknown difficulty %q\n", args[0])
			os.Exit(1)
		}
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if err := showScores(store, preset); err != nil {
		store.Close()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func showScores(store *storage.Store, preset config.DifficultyPreset) error {
	gameID := config.ScoreKey(preset)

	switch {
	case flagScoresClear:
		if err := store.ClearScores(gameID); err != nil {
			return err
		}
		fmt.Printf("Cleared %s scores.\n", preset)
		return nil

	case flagScoresAll:
		scores, err := store.AllScores(gameID)
		if err != nil {
			return err
		}
		printScores(os.Stdout, scores)
		return nil
	}

	fd := int(os.Stdout.Fd())
	if !flagScoresPlain && term.IsTerminal(fd) {
		width, height, err := term.GetSize(fd)
		if err != nil {
			width, height = 80, 24
		}
		_, err = tui.RunScoreboard(store, width, height)
		return err
	}

	scores, err := store.TopScores(gameID, 10)
	if err != nil {
		return err
	}
	stats, err := store.Stats(gameID)
	if err != nil {
		return err
	}

	fmt.Printf("High Scores - %s\n\n", preset)
	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'invaders play' to set the first high score!")
		return nil
	}

	printScores(os.Stdout, scores)
	printStats(os.Stdout, stats)
	return nil
}

// printScores writes a ranked score listing.
func printScores(w io.Writer, scores []storage.ScoreEntry) {
	fmt.Fprintf(w, "  %-4s  %-10s  %-4s  %s\n", "Rank", "Score", "Wave", "Date")
	fmt.Fprintf(w, "  %-4s  %-10s  %-4s  %s\n", "----", "-----", "----", "----")
	for i, entry := range scores {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Fprintf(w, "  %-4d  %-10d  %-4d  %s\n", i+1, entry.Score, entry.Wave, dateStr)
	}
}

// printStats writes the summary under a listing.
func printStats(w io.Writer, stats *storage.GameStats) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Best: %d, furthest wave: %d\n", stats.HighScore, stats.BestWave)
	fmt.Fprintf(w, "Games: %d, average %.0f\n", stats.GamesCount, stats.AvgScore)
}
