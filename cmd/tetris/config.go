package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/soliskit/tetris/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the game configuration after the config file search and
the difficulty preset are applied.

Search order: --config, ~/.tetris/configs/tetris.yaml,
./configs/tetris.yaml, built-in defaults.

Examples:
  tetris config
  tetris config --difficulty hard > ~/.tetris/configs/tetris.yaml`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func runConfig(cmd *cobra.Command, _ []string) error {
	cfg, source, err := loadConfig()
	if err != nil {
		return err
	}

	data, err := config.Marshal(cfg)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "# source: %s\n", source)
	if flagDifficulty != "" {
		fmt.Fprintf(out, "# difficulty: %s\n", flagDifficulty)
	}
	fmt.Fprint(out, string(data))
	return nil
}
