package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockfall/internal/config"
	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/games/blockfall"
	"github.com/vovakirdan/blockfall/internal/platform/tui"
	"github.com/vovakirdan/blockfall/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a variant picker menu",
	Long: `Start blockfall in interactive menu mode.

Use arrow keys or j/k to pick a board, Left/Right to change the difficulty
and Enter to play. After a game ends, you return to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Left/Right   - Change difficulty
  Enter/Space  - Play
  Tab          - High scores
  Q            - Quit

Examples:
  blockfall menu
  blockfall menu --fps 30
  blockfall menu --db ./scores.db`,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "err", err)
		store = nil
	} else {
		defer store.Close()
	}

	width, height := terminalSize()
	rc := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	base := blockfall.Settings()
	start, err := config.ParsePreset(string(base.Difficulty))
	if err != nil {
		return err
	}
	preset := start

	for {
		result, err := tui.RunMenu(store, rc, preset)
		if err != nil {
			return err
		}
		rc = result.Config
		preset = result.Difficulty

		if result.Quit {
			return nil
		}

		if result.WantsScoreboard {
			goBack, err := tui.RunScoreboard(store, rc.ScreenW, rc.ScreenH)
			if err != nil {
				return err
			}
			if goBack {
				continue
			}
			return nil
		}

		if result.GameID == "" {
			return nil
		}

		// Keep the configured speed curve unless the menu changed the preset.
		cfg := base
		if preset != start {
			config.ApplyPreset(&cfg, preset)
		}
		game, err := blockfall.Create(result.GameID, cfg)
		if err != nil {
			logger.Error("create game", "game", result.GameID, "err", err)
			continue
		}

		// A fixed --seed replays the same game every time.
		if flagSeed == 0 {
			rc.Seed = time.Now().UnixNano()
		}

		if err := tui.Run(game, store, rc, tui.WithLogger(logger)); err != nil {
			logger.Error("running game", "err", err)
		}
	}
}
