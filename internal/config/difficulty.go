package config

import "fmt"

// DropIntervalForPreset returns the level 1 gravity interval in
// milliseconds for a difficulty preset. Zero means keep the configured value.
func DropIntervalForPreset(preset DifficultyPreset) int {
	switch preset {
	case DifficultyEasy:
		return 1000
	case DifficultyNormal:
		return 700
	case DifficultyHard:
		return 450
	default:
		return 0
	}
}

// ParsePreset converts a flag value into a preset.
// An empty string selects DifficultyFixed so the loaded file is used as is.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "":
		return DifficultyFixed, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", s)
	}
}

// ApplyPreset modifies the config based on a difficulty preset.
func ApplyPreset(cfg *TetrisConfig, preset DifficultyPreset) {
	if ms := DropIntervalForPreset(preset); ms > 0 {
		cfg.Timing.StandardDropMS = ms
	}
}
