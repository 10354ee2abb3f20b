package config

import (
	"fmt"
	"strings"
	"time"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// Presets lists the accepted difficulty names in display order.
var Presets = []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed}

// ParsePreset validates a difficulty name. The empty string means normal.
func ParsePreset(name string) (DifficultyPreset, error) {
	if name == "" {
		return DifficultyNormal, nil
	}
	p := DifficultyPreset(strings.ToLower(name))
	for _, known := range Presets {
		if p == known {
			return p, nil
		}
	}
	return "", fmt.Errorf("config: unknown difficulty %q", name)
}

// StepForPreset returns how much each cleared line shortens the gravity
// interval under the preset.
func StepForPreset(preset DifficultyPreset) time.Duration {
	switch preset {
	case DifficultyEasy:
		return 10 * time.Millisecond
	case DifficultyHard:
		return 40 * time.Millisecond
	case DifficultyFixed:
		return 0
	default:
		return 20 * time.Millisecond
	}
}

// IsFixedPreset returns true if the preset disables speed progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// ApplyPreset modifies the config based on a difficulty preset. The starting
// interval stays at speed.base; only the per-line step changes.
func ApplyPreset(cfg *BlockfallConfig, preset DifficultyPreset) {
	cfg.Difficulty = preset
	cfg.Speed.Step = StepForPreset(preset)
}
