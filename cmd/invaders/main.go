// invaders is a terminal chicken invaders shooter.
//
// Usage:
//
//	invaders list              - List available modes
//	invaders play [mode]       - Play a mode (default: invaders)
//	invaders menu              - Pick a mode interactively
//	invaders serve             - Start SSH server for remote play
//	invaders scores [mode]     - Show high scores
//	invaders sim               - Run a headless autopilot game
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 30)
//	--seed <value>       - Set RNG seed for reproducible gameplay
//	--db <path>          - Set database path (default: ~/.invaders/scores.db)
//	--config <path>      - Custom gameplay config YAML
//	--difficulty <name>  - Difficulty preset: easy, normal, hard, fixed
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/chicken-invaders/internal/config"
	"github.com/vovakirdan/chicken-invaders/internal/session"
	"github.com/vovakirdan/chicken-invaders/internal/storage"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "invaders",
	Short: "Chicken Invaders - a shooter for your terminal",
	Long: `Chicken Invaders is a terminal shooter. Waves of chickens march
across the sky dropping eggs; shoot them down, catch power-ups and
survive as long as you can.

Available commands:
  list     - Show all modes
  play     - Play a mode directly
  menu     - Interactive mode picker
  serve    - Start SSH server for remote play
  scores   - View high scores
  sim      - Headless autopilot run

Examples:
  invaders play
  invaders play invaders_campaign --difficulty hard
  invaders serve --ssh :2222
  invaders sim --ticks 5000 --seed 42`,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.invaders/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom gameplay config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simCmd)
}

// loadGameConfig reads the gameplay config and applies the difficulty preset.
func loadGameConfig() (config.InvadersConfig, error) {
	preset, ok := config.ParsePreset(flagDifficulty)
	if !ok {
		return config.InvadersConfig{}, fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", flagDifficulty)
	}

	cfg, err := config.LoadInvaders(flagConfig)
	if err != nil {
		return cfg, err
	}
	config.ApplyInvadersPreset(&cfg, preset)
	return cfg, nil
}

// openLogFile returns a logger writing to ~/.invaders/invaders.log so the
// full-screen UI stays clean. Falls back to discarding logs.
func openLogFile() (*log.Logger, func()) {
	home, err := os.UserHomeDir()
	if err == nil {
		dir := filepath.Join(home, ".invaders")
		if err = os.MkdirAll(dir, 0o755); err == nil {
			f, openErr := os.OpenFile(filepath.Join(dir, "invaders.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
			if openErr == nil {
				return session.NewLogger(f, flagLogLevel), func() { f.Close() }
			}
		}
	}
	return session.NewLogger(io.Discard, flagLogLevel), func() {}
}

// setupLocal loads config, opens storage and wires session dependencies for
// interactive play. The returned cleanup closes what was opened.
func setupLocal() (*storage.Store, func(), error) {
	cfg, err := loadGameConfig()
	if err != nil {
		return nil, nil, err
	}

	logger, closeLog := openLogFile()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("could not open scores database", "error", err)
		// Continue without storage - game still works
		store = nil
	}

	session.SetDeps(session.Deps{
		Config:    cfg,
		ScoresFor: session.StoreScores(store),
		Logger:    logger,
	})

	cleanup := func() {
		if store != nil {
			store.Close()
		}
		closeLog()
	}
	return store, cleanup, nil
}
