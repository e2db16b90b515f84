package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/soliskit/tetris/internal/storage"
)

var (
	flagLimit        int
	flagClearScores  bool
	flagScoresPlayer string
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores",
	Long: `Display the top finished-game scores.

Examples:
  tetris scores
  tetris scores --limit 25
  tetris scores --player alice
  tetris scores --clear`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", storage.DefaultScoreLimit, "Number of scores to show")
	scoresCmd.Flags().BoolVar(&flagClearScores, "clear", false, "Delete the score history")
	scoresCmd.Flags().StringVar(&flagScoresPlayer, "player", "", "Only show games by this player")
}

func runScores(cmd *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer store.Close()

	out := cmd.OutOrStdout()

	if flagClearScores {
		if err := store.ClearScores(); err != nil {
			return err
		}
		fmt.Fprintln(out, "Score history cleared.")
		return nil
	}

	scores, err := store.PlayerScores(flagScoresPlayer, flagLimit)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	title := "High Scores - Tetris"
	if flagScoresPlayer != "" {
		title += " - " + flagScoresPlayer
	}
	fmt.Fprintln(out, title)
	fmt.Fprintln(out)

	if len(scores) == 0 {
		fmt.Fprintln(out, "No scores recorded yet.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Play 'tetris play' to set the first high score!")
		return nil
	}

	const row = "  %-4v  %-12v  %-8v  %-5v  %-5v  %v\n"
	fmt.Fprintf(out, row, "Rank", "Player", "Score", "Level", "Lines", "Date")
	fmt.Fprintf(out, row, "----", "------", "-----", "-----", "-----", "----")
	for i, e := range scores {
		fmt.Fprintf(out, row, i+1, e.Player, e.Score, e.Level, e.Lines, e.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.PlayerStats(flagScoresPlayer)
	if err != nil {
		return fmt.Errorf("retrieving stats: %w", err)
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Best: %d  Games: %d  Avg: %.0f\n", stats.HighScore, stats.GamesCount, stats.AvgScore)
	return nil
}
