package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/games/blockfall"
	"github.com/vovakirdan/blockfall/internal/platform/tui"
	"github.com/vovakirdan/blockfall/internal/storage"
)

var (
	flagWidth  int
	flagHeight int
)

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play a game",
	Long: `Start playing blockfall. The variant defaults to the 10x20 board.

Controls:
  Left/A, Right/D  - Move the piece
  Up/W             - Rotate clockwise
  Space/Down/S     - Drop to the floor
  P                - Pause / resume
  R                - Restart (after game over)
  Ctrl+S           - Save a screenshot to ~/.blockfall/screenshots
  Q/Ctrl+C         - Quit

Difficulty options (line clears shorten the fall interval by):
  easy   - 10ms per line
  normal - 20ms per line
  hard   - 40ms per line
  fixed  - no speed-up

Examples:
  blockfall play
  blockfall play blockfall_mini
  blockfall play --difficulty hard
  blockfall play --width 12 --height 24
  blockfall play --config ./my-blockfall.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagWidth, "width", 0, "Board width in cells (overrides config)")
	playCmd.Flags().IntVar(&flagHeight, "height", 0, "Board height in cells (overrides config)")
}

// terminalSize returns the size of stdout, or 80x24 if it is not a terminal.
func terminalSize() (int, int) {
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		return w, h
	}
	return 80, 24
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := blockfall.ID
	if len(args) == 1 {
		gameID = args[0]
	}

	cfg := blockfall.Settings()
	if flagWidth > 0 {
		cfg.Board.Width = flagWidth
	}
	if flagHeight > 0 {
		cfg.Board.Height = flagHeight
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if gameID == blockfall.MiniID && (flagWidth > 0 || flagHeight > 0) {
		logger.Warn("board size flags are ignored by the mini variant")
	}

	game, err := blockfall.Create(gameID, cfg)
	if err != nil {
		return fmt.Errorf("%w (run 'blockfall list' to see variants)", err)
	}

	width, height := terminalSize()
	rc := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "err", err)
		store = nil
	} else {
		defer store.Close()
	}

	logger.Debug("starting game", "game", gameID, "seed", rc.Seed, "fps", rc.TickRate)
	if err := tui.Run(game, store, rc, tui.WithLogger(logger)); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
