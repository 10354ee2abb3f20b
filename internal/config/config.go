// Package config provides YAML-based game configuration loading and
// difficulty presets for blockfall.
package config

import (
	"time"

	"github.com/vovakirdan/blockfall/internal/tetris"
)

// BlockfallConfig contains all configuration for a blockfall game.
type BlockfallConfig struct {
	Board      BoardConfig      `yaml:"board"`
	Speed      SpeedConfig      `yaml:"speed"`
	Generator  GeneratorConfig  `yaml:"generator"`
	Difficulty DifficultyPreset `yaml:"difficulty"`
}

// BoardConfig defines the visible playfield size.
type BoardConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// SpeedConfig defines the gravity curve. The interval for a score is
// base - score*step, never below floor.
type SpeedConfig struct {
	Base  time.Duration `yaml:"base"`
	Step  time.Duration `yaml:"step"`
	Floor time.Duration `yaml:"floor"`
}

// Curve converts the config into the engine's speed curve.
func (s SpeedConfig) Curve() tetris.Speed {
	return tetris.Speed{Base: s.Base, Step: s.Step, Floor: s.Floor}
}

// GeneratorConfig defines piece generation parameters.
type GeneratorConfig struct {
	// Memory is how many recent shapes are excluded from the next draw.
	Memory int `yaml:"memory"`
}

// EngineOptions returns the tetris options that realize this config.
func (c BlockfallConfig) EngineOptions() []tetris.Option {
	return []tetris.Option{
		tetris.WithSpeed(c.Speed.Curve()),
		tetris.WithMemory(c.Generator.Memory),
	}
}
