package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/soliskit/tetris/internal/core"
	"github.com/soliskit/tetris/internal/platform/tui"
)

var (
	flagNew      bool
	flagContinue bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game",
	Long: `Start playing directly, without the title menu.

Controls:
  Left/Right/A/D  - Move
  Up/W            - Rotate
  Down/S          - Soft drop
  Space/Z         - Hold
  P               - Pause / resume
  N               - New game
  C               - Continue saved game
  Ctrl+S          - Screenshot
  Q/Ctrl+C        - Quit (the game is saved)

Difficulty options:
  easy   - Slow gravity (1000ms at level 1)
  normal - Default gravity (700ms at level 1)
  hard   - Fast gravity (450ms at level 1)
  fixed  - Use the configured value as is

Examples:
  tetris play
  tetris play --continue
  tetris play --difficulty hard
  tetris play --config ./my-tetris.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagNew, "new", false, "Start a new game immediately")
	playCmd.Flags().BoolVar(&flagContinue, "continue", false, "Continue the saved game")
}

func runPlay(_ *cobra.Command, _ []string) error {
	if flagNew && flagContinue {
		return errors.New("--new and --continue are mutually exclusive")
	}

	env, cleanup, err := newEnv()
	if err != nil {
		return err
	}
	defer cleanup()

	start := core.ActionNewGame
	if flagContinue {
		start = core.ActionContinue
	}

	return tui.Run(env, runtimeConfig(), start)
}
