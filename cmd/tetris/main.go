// tetris is a falling-block puzzle game for the terminal.
//
// Usage:
//
//	tetris play              - Play a game (continues a saved one with --continue)
//	tetris menu              - Start the title menu
//	tetris scores            - Show finished-game high scores
//	tetris session           - Show or clear the saved session
//	tetris config            - Print the effective configuration
//	tetris serve             - Start SSH server for remote play
//
// Global flags:
//
//	--db <path>        - Set database path (default: ~/.tetris/tetris.db)
//	--seed <value>     - Set RNG seed for reproducible piece sequences
//	--config <path>    - Load game configuration from a YAML file
//	--difficulty <p>   - Difficulty preset: easy, normal, hard, fixed
//	--debug            - Log at debug level
//	--log-file <path>  - Write logs to a file
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/soliskit/tetris/internal/config"
	"github.com/soliskit/tetris/internal/core"
	"github.com/soliskit/tetris/internal/platform/tui"
	"github.com/soliskit/tetris/internal/storage"
)

var (
	// Global flags
	flagDBPath     string
	flagSeed       int64
	flagConfig     string
	flagDifficulty string
	flagDebug      bool
	flagLogFile    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tetris",
	Short: "Tetris - falling blocks in your terminal",
	Long: `Tetris is a falling-block puzzle game for the terminal.

Games in progress are saved when you pause or quit, and after every
line clear, so you can continue them later.

Available commands:
  play     - Play a game directly
  menu     - Title menu (new game, continue, high scores)
  scores   - View finished-game high scores
  session  - Show or clear the saved session
  config   - Print the effective configuration
  serve    - Start SSH server for remote play

Examples:
  tetris play
  tetris play --continue
  tetris menu --difficulty hard
  tetris serve --ssh :2222`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.tetris/tetris.db", "Path to game database")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Log at debug level")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(sessionCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(serveCmd)
}

// newLogger builds the logger. Without --log-file, logs go to fallback;
// interactive commands pass io.Discard to keep the alt screen clean.
// The returned function closes the log file.
func newLogger(fallback io.Writer) (*log.Logger, func(), error) {
	w := fallback
	closeFn := func() {}

	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		w = f
		closeFn = func() { f.Close() }
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "tetris",
	})
	if flagDebug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger, closeFn, nil
}

// loadConfig loads the game configuration, applies --difficulty and
// reports which file it came from.
func loadConfig() (config.TetrisConfig, string, error) {
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return config.TetrisConfig{}, "", err
	}

	cfg, source, err := config.Resolve(flagConfig)
	if err != nil {
		return cfg, source, err
	}
	config.ApplyPreset(&cfg, preset)
	return cfg, source, cfg.Validate()
}

// newEnv loads configuration and opens the database for an interactive
// command. When the database cannot be opened the game still runs with an
// in-memory store. The returned function releases everything.
func newEnv() (tui.Env, func(), error) {
	cfg, source, err := loadConfig()
	if err != nil {
		return tui.Env{}, nil, err
	}

	logger, closeLog, err := newLogger(io.Discard)
	if err != nil {
		return tui.Env{}, nil, err
	}
	logger.Debug("config loaded", "source", source, "board", fmt.Sprintf("%dx%d", cfg.Board.Columns, cfg.Board.Rows))

	env := tui.Env{
		Config: cfg,
		Seed:   flagSeed,
		Logger: logger,
	}
	if home, homeErr := os.UserHomeDir(); homeErr == nil {
		env.ScreenshotDir = filepath.Join(home, ".tetris", "screenshots")
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open database: %v\n", err)
		logger.Warn("could not open database", "err", err)
		// Continue without storage - game still works
		env.KV = storage.NewMemory()
	} else {
		env.Store = store
	}

	cleanup := func() {
		if store != nil {
			store.Close()
		}
		closeLog()
	}
	return env, cleanup, nil
}

// runtimeConfig returns the terminal size and seed.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.Seed = flagSeed
	return cfg
}
