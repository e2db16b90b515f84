package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/soliskit/tetris/internal/core"
	"github.com/soliskit/tetris/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the title menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select.
Leaving a game (Esc) returns to the menu, where it can be continued.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  N / C        - New game / Continue
  Tab          - High scores
  Q            - Quit

Examples:
  tetris menu
  tetris menu --difficulty easy
  tetris menu --db ./tetris.db`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	env, cleanup, err := newEnv()
	if err != nil {
		return err
	}
	defer cleanup()

	cfg := runtimeConfig()

	// Menu loop
	for {
		// Show menu and get selection
		menuResult, err := tui.RunMenu(env, cfg)
		if err != nil {
			return err
		}

		// Update config with any size changes
		cfg = menuResult.Config

		switch menuResult.Choice {
		case tui.ChoiceScoreboard:
			goBack, sbErr := tui.RunScoreboard(env.Store, env.PlayerName(), cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if !goBack {
				return nil // User quit from scoreboard
			}

		case tui.ChoiceNewGame, tui.ChoiceContinue:
			start := core.ActionNewGame
			if menuResult.Choice == tui.ChoiceContinue {
				start = core.ActionContinue
			}

			// Fresh seed for each game unless one was given
			if flagSeed == 0 {
				env.Seed = time.Now().UnixNano()
			}

			if err := tui.Run(env, cfg, start); err != nil {
				fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
			}

		default:
			return nil
		}

		// Loop back to menu
	}
}
