// tetris-desktop plays the game in a window.
//
// Usage:
//
//	tetris-desktop [--continue] [--difficulty easy|normal|hard|fixed]
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/soliskit/tetris/internal/config"
	"github.com/soliskit/tetris/internal/games/tetris"
	"github.com/soliskit/tetris/internal/platform/desktop"
	"github.com/soliskit/tetris/internal/storage"
)

var (
	flagDBPath     string
	flagSeed       int64
	flagConfig     string
	flagDifficulty string
	flagContinue   bool
	flagCellSize   int
	flagDebug      bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tetris-desktop",
	Short: "Tetris in a desktop window",
	Long: `Play Tetris in a desktop window. Saved sessions and scores are
shared with the terminal version.

Controls:
  Left/Right/A/D  - Move
  Up/W            - Rotate
  Down/S          - Soft drop
  Space/Z         - Hold
  P               - Pause / resume
  N / C           - New game / Continue
  Esc/Q           - Quit (the game is saved)`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	rootCmd.Flags().StringVar(&flagDBPath, "db", "~/.tetris/tetris.db", "Path to game database")
	rootCmd.Flags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.Flags().BoolVar(&flagContinue, "continue", false, "Continue the saved game")
	rootCmd.Flags().IntVar(&flagCellSize, "cell-size", 24, "Board cell size in pixels")
	rootCmd.Flags().BoolVar(&flagDebug, "debug", false, "Log to stderr at debug level")
}

func run(_ *cobra.Command, _ []string) error {
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return err
	}
	cfg, source, err := config.Resolve(flagConfig)
	if err != nil {
		return err
	}
	config.ApplyPreset(&cfg, preset)
	if err := cfg.Validate(); err != nil {
		return err
	}

	var w io.Writer = io.Discard
	if flagDebug {
		w = os.Stderr
	}
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "tetris-desktop",
	})
	if flagDebug {
		logger.SetLevel(log.DebugLevel)
	}
	logger.Debug("config loaded", "source", source)

	var kv tetris.KV
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open database: %v\n", err)
		kv = storage.NewMemory()
	} else {
		kv = store
		defer store.Close()
	}

	engine, err := tetris.New(cfg,
		tetris.WithStore(tetris.NewKVSessionStore(kv, "")),
		tetris.WithLogger(logger),
		tetris.WithSeed(flagSeed),
	)
	if err != nil {
		return err
	}

	if flagContinue {
		engine.ContinueGame()
	}
	if engine.State() != tetris.StatePlaying {
		engine.NewGame()
	}

	return desktop.Run(engine, desktop.Options{
		CellSize: flagCellSize,
		Store:    store,
		Logger:   logger,
	})
}
