package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/chicken-invaders/internal/core"
	"github.com/vovakirdan/chicken-invaders/internal/platform/tui"
	"github.com/vovakirdan/chicken-invaders/internal/registry"
	"github.com/vovakirdan/chicken-invaders/internal/session"
)

var flagCampaign bool

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a mode",
	Long: `Start playing the specified mode (default: invaders).

Controls:
  Left/Right, A/D, H/L  - Move the ship
  Space/Up/W/K          - Fire
  Enter                 - Start / confirm
  P/Esc                 - Pause / resume
  B                     - End the run while paused, menu after game over
  R                     - Restart after game over or victory
  Ctrl+S                - Save a screenshot
  Q/Ctrl+C              - Quit

Difficulty options:
  easy   - Enemies start slow and speed up with score
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty, progresses to max
  fixed  - No progression, stays at config's initial level

Examples:
  invaders play
  invaders play --campaign
  invaders play invaders --difficulty hard
  invaders play --config ./my-invaders.yaml --seed 42`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagCampaign, "campaign", false, "Play the campaign (ends in victory after the last wave)")
}

func runPlay(cmd *cobra.Command, args []string) {
	modeID := session.ModeEndless
	if flagCampaign {
		modeID = session.ModeCampaign
	}
	if len(args) > 0 {
		modeID = args[0]
	}

	if !registry.Exists(modeID) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", modeID)
		fmt.Fprintln(os.Stderr, "Run 'invaders list' to see available modes.")
		os.Exit(1)
	}

	_, cleanup, err := setupLocal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	game, err := registry.Create(modeID)
	if err != nil {
		cleanup()
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	runErr := tui.Run(game, runtimeConfig())

	// Close store before potential exit
	cleanup()

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// runtimeConfig builds the runtime config from the terminal size and flags.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}
