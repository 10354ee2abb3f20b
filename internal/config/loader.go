package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/blockfall/internal/tetris"
)

// FileName is the config file looked up in the user and local config
// directories.
const FileName = "blockfall.yaml"

// LoadBlockfall returns the configuration from customPath when given; a
// missing or broken custom file is an error. Otherwise the first readable,
// valid file among SearchPaths wins, then the embedded default. Keys a file
// leaves out keep their default values.
func LoadBlockfall(customPath string) (BlockfallConfig, error) {
	if customPath != "" {
		cfg, err := parseFile(customPath)
		if err != nil {
			return BlockfallConfig{}, fmt.Errorf("config: %s: %w", customPath, err)
		}
		return cfg, nil
	}

	for _, path := range SearchPaths() {
		if cfg, err := parseFile(path); err == nil {
			return cfg, nil
		}
	}

	if cfg, err := Parse(defaultBlockfallYAML); err == nil {
		return cfg, nil
	}
	return DefaultBlockfallConfig(), nil
}

// SearchPaths lists the files LoadBlockfall tries when no path is given:
// ~/.blockfall/configs/blockfall.yaml, then ./configs/blockfall.yaml.
func SearchPaths() []string {
	var paths []string
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".blockfall", "configs", FileName))
	}
	return append(paths, filepath.Join("configs", FileName))
}

func parseFile(path string) (BlockfallConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return BlockfallConfig{}, err
	}
	return Parse(data)
}

// presetKeys records whether a document names a difficulty and whether it
// also pins speed.step.
type presetKeys struct {
	Difficulty string `yaml:"difficulty"`
	Speed      struct {
		Step *time.Duration `yaml:"step"`
	} `yaml:"speed"`
}

// Parse decodes YAML over the default configuration and validates the result.
// A difficulty without an explicit speed.step sets the step from the preset.
func Parse(data []byte) (BlockfallConfig, error) {
	cfg := DefaultBlockfallConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return BlockfallConfig{}, err
	}

	var keys presetKeys
	if err := yaml.Unmarshal(data, &keys); err != nil {
		return BlockfallConfig{}, err
	}
	if keys.Difficulty != "" {
		// Unknown names are reported by Validate.
		if p, err := ParsePreset(keys.Difficulty); err == nil {
			cfg.Difficulty = p
			if keys.Speed.Step == nil {
				cfg.Speed.Step = StepForPreset(p)
			}
		}
	}

	if err := cfg.Validate(); err != nil {
		return BlockfallConfig{}, err
	}
	return cfg, nil
}

// Validate checks that the config describes a game the engine can run.
func (c BlockfallConfig) Validate() error {
	var errs []error
	if err := tetris.ValidateSize(c.Board.Width, c.Board.Height); err != nil {
		errs = append(errs, err)
	}
	if c.Speed.Floor <= 0 {
		errs = append(errs, fmt.Errorf("speed.floor must be positive, got %s", c.Speed.Floor))
	}
	if c.Speed.Base < c.Speed.Floor {
		errs = append(errs, fmt.Errorf("speed.base %s is below speed.floor %s", c.Speed.Base, c.Speed.Floor))
	}
	if c.Speed.Step < 0 {
		errs = append(errs, fmt.Errorf("speed.step must not be negative, got %s", c.Speed.Step))
	}
	if c.Generator.Memory < 0 || c.Generator.Memory >= tetris.ShapeCount {
		errs = append(errs, fmt.Errorf("generator.memory must be in [0, %d), got %d", tetris.ShapeCount, c.Generator.Memory))
	}
	if c.Difficulty != "" {
		if _, err := ParsePreset(string(c.Difficulty)); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: invalid: %w", err)
	}
	return nil
}
