package config

import (
	_ "embed"
	"time"

	"github.com/vovakirdan/blockfall/internal/tetris"
)

//go:embed defaults/blockfall.yaml
var defaultBlockfallYAML []byte

// DefaultBlockfallConfig returns the default blockfall configuration.
func DefaultBlockfallConfig() BlockfallConfig {
	return BlockfallConfig{
		Board: BoardConfig{
			Width:  10,
			Height: 20,
		},
		Speed: SpeedConfig{
			Base:  time.Second,
			Step:  20 * time.Millisecond,
			Floor: 20 * time.Millisecond,
		},
		Generator: GeneratorConfig{
			Memory: tetris.DefaultMemory,
		},
		Difficulty: DifficultyNormal,
	}
}

// MiniBlockfallConfig returns the configuration of the smallest playable
// board.
func MiniBlockfallConfig() BlockfallConfig {
	cfg := DefaultBlockfallConfig()
	cfg.Board = BoardConfig{Width: tetris.MinWidth, Height: tetris.MinHeight}
	return cfg
}
