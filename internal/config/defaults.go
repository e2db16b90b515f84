package config

import (
	_ "embed"
)

//go:embed defaults/tetris.yaml
var defaultTetrisYAML []byte

// DefaultTetrisConfig returns the default game configuration.
func DefaultTetrisConfig() TetrisConfig {
	return TetrisConfig{
		Board: BoardConfig{
			Rows:    20,
			Columns: 10,
		},
		Spawn: SpawnConfig{
			Row:    0,
			Column: 0,
		},
		Timing: TimingConfig{
			StandardDropMS: 700,
			QuickDropRatio: 0.1,
		},
		Scoring: ScoringConfig{
			LineScores:     []int{0, 100, 300, 500, 800},
			PointsPerLevel: 1000,
		},
		Rules: RulesConfig{
			StrictHoldSwap: true,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultTetrisYAML
}
