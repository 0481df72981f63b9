package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/chicken-invaders/internal/platform/tui"
	"github.com/vovakirdan/chicken-invaders/internal/registry"
	"github.com/vovakirdan/chicken-invaders/internal/session"
	"github.com/vovakirdan/chicken-invaders/internal/storage"
)

var (
	flagScoresAll   bool
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show high scores",
	Long: `Display the top 10 runs for a mode.

Without a mode on an interactive terminal, opens the scoreboard.
Otherwise prints a plain table (default mode: invaders).

Examples:
  invaders scores
  invaders scores invaders_campaign
  invaders scores invaders --all | less
  invaders scores invaders_campaign --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagScoresAll, "all", false, "List every recorded run instead of the top 10")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all recorded runs for the mode")
}

// modeRuns returns the runs to list for a mode: the top 10, or all of them.
func modeRuns(store *storage.Store, modeID string, all bool) ([]storage.ScoreEntry, error) {
	if all {
		return store.AllScores(modeID)
	}
	return store.TopScores(modeID, 10)
}

func runScores(cmd *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if len(args) == 0 && !flagScoresClear && term.IsTerminal(int(os.Stdout.Fd())) {
		cfg := runtimeConfig()
		if _, err := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return
	}

	modeID := session.ModeEndless
	if len(args) > 0 {
		modeID = args[0]
	}
	if !registry.Exists(modeID) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", modeID)
		fmt.Fprintln(os.Stderr, "Run 'invaders list' to see available modes.")
		return
	}

	game, err := registry.Create(modeID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		return
	}

	if flagScoresClear {
		if err := store.ClearScores(modeID); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing scores: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Cleared all runs for %s.\n", game.Title())
		return
	}

	scores, err := modeRuns(store, modeID, flagScoresAll)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		return
	}

	fmt.Printf("High Scores - %s\n", game.Title())
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'invaders play %s' to set the first high score!\n", modeID)
		return
	}

	fmt.Printf("  %-4s  %-10s  %-5s  %-10s  %s\n", "Rank", "Score", "Wave", "Outcome", "Date")
	fmt.Printf("  %-4s  %-10s  %-5s  %-10s  %s\n", "----", "-----", "----", "-------", "----")

	for i, entry := range scores {
		outcome := entry.Outcome
		if outcome == "" {
			outcome = "-"
		}
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-10d  %-5d  %-10s  %s\n", i+1, entry.Score, entry.Wave, outcome, dateStr)
	}

	fmt.Println()
	if stats, err := store.GetModeStats(modeID); err == nil && stats != nil {
		fmt.Printf("Best: %d   Runs: %d   Avg: %.0f   Best wave: %d   Victories: %d\n",
			stats.HighScore, stats.GamesCount, stats.AvgScore, stats.BestWave, stats.Victories)
	}
}
