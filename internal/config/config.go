// Package config provides YAML-based game configuration loading and
// difficulty presets.
package config

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// ErrInvalidConfig is returned by Validate for unusable configurations.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// TetrisConfig contains all configuration for the game engine.
type TetrisConfig struct {
	Board   BoardConfig   `yaml:"board"`
	Spawn   SpawnConfig   `yaml:"spawn"`
	Timing  TimingConfig  `yaml:"timing"`
	Scoring ScoringConfig `yaml:"scoring"`
	Rules   RulesConfig   `yaml:"rules"`
}

// BoardConfig defines the playfield dimensions.
type BoardConfig struct {
	Rows    int `yaml:"rows"`
	Columns int `yaml:"columns"`
}

// SpawnConfig defines where new pieces appear.
type SpawnConfig struct {
	Row    int `yaml:"row"`
	Column int `yaml:"column"`
}

// TimingConfig defines the gravity timer.
type TimingConfig struct {
	StandardDropMS int     `yaml:"standard_drop_ms"`
	QuickDropRatio float64 `yaml:"quick_drop_ratio"`
}

// ScoringConfig defines line-clear points and level progression.
type ScoringConfig struct {
	LineScores     []int `yaml:"line_scores"`
	PointsPerLevel int   `yaml:"points_per_level"`
}

// RulesConfig toggles rule variants.
type RulesConfig struct {
	StrictHoldSwap bool `yaml:"strict_hold_swap"`
}

// StandardDropInterval returns the level 1 gravity interval.
func (c TetrisConfig) StandardDropInterval() time.Duration {
	return time.Duration(c.Timing.StandardDropMS) * time.Millisecond
}

// QuickDropInterval returns the soft drop interval.
func (c TetrisConfig) QuickDropInterval() time.Duration {
	return time.Duration(math.Round(float64(c.StandardDropInterval()) * c.Timing.QuickDropRatio))
}

// Validate checks that the configuration can drive a game.
func (c TetrisConfig) Validate() error {
	switch {
	case c.Board.Rows < 4 || c.Board.Columns < 4:
		return fmt.Errorf("%w: board must be at least 4x4, got %dx%d",
			ErrInvalidConfig, c.Board.Rows, c.Board.Columns)
	case c.Spawn.Row < 0 || c.Spawn.Column < 0 || c.Spawn.Row >= c.Board.Rows || c.Spawn.Column >= c.Board.Columns:
		return fmt.Errorf("%w: spawn (%d,%d) outside the board",
			ErrInvalidConfig, c.Spawn.Row, c.Spawn.Column)
	case c.Timing.StandardDropMS <= 0:
		return fmt.Errorf("%w: standard_drop_ms must be positive", ErrInvalidConfig)
	case c.Timing.QuickDropRatio <= 0 || c.Timing.QuickDropRatio > 1:
		return fmt.Errorf("%w: quick_drop_ratio must be in (0, 1], got %v",
			ErrInvalidConfig, c.Timing.QuickDropRatio)
	case len(c.Scoring.LineScores) == 0:
		return fmt.Errorf("%w: line_scores must not be empty", ErrInvalidConfig)
	case c.Scoring.PointsPerLevel <= 0:
		return fmt.Errorf("%w: points_per_level must be positive", ErrInvalidConfig)
	}
	for i, s := range c.Scoring.LineScores {
		if s < 0 {
			return fmt.Errorf("%w: line_scores[%d] is negative", ErrInvalidConfig, i)
		}
	}
	return nil
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)
