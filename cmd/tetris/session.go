package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/soliskit/tetris/internal/games/tetris"
	"github.com/soliskit/tetris/internal/storage"
)

var (
	flagClear  bool
	flagPlayer string
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Show or clear the saved session",
	Long: `Show the game saved for continuing, or delete it with --clear.

Sessions of SSH players are stored under their user name; select one
with --player.

Examples:
  tetris session
  tetris session --clear
  tetris session --player alice`,
	Args: cobra.NoArgs,
	RunE: runSession,
}

func init() {
	sessionCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the saved session")
	sessionCmd.Flags().StringVar(&flagPlayer, "player", "", "SSH user whose session to use")
}

func runSession(cmd *cobra.Command, _ []string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer store.Close()

	sessions := tetris.NewKVSessionStore(store, flagPlayer)
	out := cmd.OutOrStdout()

	if flagClear {
		if err := sessions.ClearSession(); err != nil {
			return err
		}
		fmt.Fprintln(out, "Saved session cleared.")
		return nil
	}

	high, err := sessions.LoadHighScore()
	if err != nil {
		return err
	}

	rec, err := sessions.LoadSession()
	if err != nil {
		return err
	}
	if rec == nil {
		fmt.Fprintln(out, "No saved session.")
		fmt.Fprintf(out, "Best: %d\n", high)
		return nil
	}

	fmt.Fprintln(out, "Saved session")
	fmt.Fprintf(out, "  Score:   %d\n", rec.Score)
	fmt.Fprintf(out, "  Level:   %d\n", rec.Level)
	fmt.Fprintf(out, "  Lines:   %d\n", rec.LinesCleared)
	fmt.Fprintf(out, "  Pieces:  %d\n", rec.PiecesLocked)
	if rec.HeldTetromino != nil {
		fmt.Fprintf(out, "  Held:    %s\n", rec.HeldTetromino.Color)
	}
	fmt.Fprintf(out, "Best: %d\n", high)

	if err := rec.Validate(cfg); err != nil {
		fmt.Fprintf(out, "\nThis session cannot be continued: %v\n", err)
	}
	return nil
}
