package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/games/blockfall"
	"github.com/vovakirdan/blockfall/internal/storage"
)

var (
	flagSimVariant string
	flagSimTicks   int
	flagSimEvery   int
	flagSimGames   int
	flagSimFormat  string
	flagSimSave    bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a headless game driven by an autopilot",
	Long: `Run blockfall without a terminal UI. A seeded autopilot presses keys,
gravity follows the simulated frame clock, and the final state is printed.
The same --seed always produces the same result.

Examples:
  blockfall simulate --seed 7
  blockfall simulate --seed 7 --games 10 --format yaml
  blockfall simulate --variant blockfall_mini --every 2 -v`,
	Args: cobra.NoArgs,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().StringVar(&flagSimVariant, "variant", blockfall.ID, "Variant to simulate")
	simulateCmd.Flags().IntVar(&flagSimTicks, "ticks", 200_000, "Maximum frames per game")
	simulateCmd.Flags().IntVar(&flagSimEvery, "every", 6, "Autopilot acts once every N frames")
	simulateCmd.Flags().IntVar(&flagSimGames, "games", 1, "Number of games to play")
	simulateCmd.Flags().StringVar(&flagSimFormat, "format", "text", "Output format: text or yaml")
	simulateCmd.Flags().BoolVar(&flagSimSave, "save", false, "Record finished games in the scores database")
}

// simReport is the outcome of one simulated game.
type simReport struct {
	Game       int            `yaml:"game"`
	Seed       int64          `yaml:"seed"`
	Frames     int            `yaml:"frames"`
	ClockMS    int64          `yaml:"clock_ms"`
	State      string         `yaml:"state"`
	Score      int            `yaml:"score"`
	Lines      int            `yaml:"lines"`
	Pieces     int            `yaml:"pieces"`
	IntervalMS int64          `yaml:"interval_ms"`
	Stats      map[string]int `yaml:"stats"`
	Board      []string       `yaml:"board"`
}

func runSimulate(_ *cobra.Command, _ []string) error {
	if flagSimFormat != "text" && flagSimFormat != "yaml" {
		return fmt.Errorf("unknown format %q", flagSimFormat)
	}

	game, err := blockfall.Create(flagSimVariant, blockfall.Settings())
	if err != nil {
		return err
	}
	game.SetLogger(logger.WithPrefix("engine"))

	var store *storage.Store
	if flagSimSave {
		store, err = storage.Open(flagDBPath)
		if err != nil {
			return fmt.Errorf("opening scores database: %w", err)
		}
		defer store.Close()
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	reports := make([]simReport, 0, flagSimGames)
	for i := range flagSimGames {
		r := simulate(game, seed+int64(i), i+1)
		reports = append(reports, r)
		logger.Info("game finished", "game", r.Game, "seed", r.Seed, "state", r.State,
			"score", r.Score, "pieces", r.Pieces, "frames", r.Frames)

		if store != nil && r.Score > 0 {
			w, h := game.BoardSize()
			if _, err := store.SaveScore(storage.ScoreEntry{
				GameID: game.ID(),
				Player: "autopilot",
				Score:  r.Score,
				Lines:  r.Lines,
				Pieces: r.Pieces,
				Width:  w,
				Height: h,
			}); err != nil {
				return err
			}
		}
	}

	if flagSimFormat == "yaml" {
		enc := yaml.NewEncoder(os.Stdout)
		enc.SetIndent(2)
		if err := enc.Encode(reports); err != nil {
			return err
		}
		return enc.Close()
	}

	for _, r := range reports {
		printReport(r)
	}
	return nil
}

// simulate plays one game until it ends or the frame budget runs out.
func simulate(game *blockfall.Game, seed int64, n int) simReport {
	w, h := game.BoardSize()
	game.Reset(core.RuntimeConfig{
		ScreenW:  4*w + 40,
		ScreenH:  h + 10,
		TickRate: flagFPS,
		Seed:     seed,
	})

	pilot := blockfall.NewAutopilot(seed, flagSimEvery)
	frames := 0
	for frames < flagSimTicks {
		frames++
		result := game.Step(pilot.Next())
		for _, ev := range result.Events {
			logger.Debug("event", "frame", frames, "event", ev)
		}
		if result.State.GameOver {
			break
		}
	}

	snap := game.Snapshot()
	eng := game.Engine()
	stats := make(map[string]int)
	for s, count := range eng.Stats() {
		stats[s.String()] = count
	}

	b := eng.Board()
	board := make([]string, 0, eng.Height())
	for y := eng.Height() - 1; y >= 0; y-- {
		board = append(board, b.RowString(y))
	}

	return simReport{
		Game:       n,
		Seed:       seed,
		Frames:     frames,
		ClockMS:    snap.Clock,
		State:      snap.Engine.State.String(),
		Score:      snap.Engine.Score,
		Lines:      snap.Engine.Lines,
		Pieces:     snap.Engine.Pieces,
		IntervalMS: snap.Engine.Interval,
		Stats:      stats,
		Board:      board,
	}
}

func printReport(r simReport) {
	fmt.Printf("Game %d (seed %d): %s after %d frames (%s simulated)\n",
		r.Game, r.Seed, r.State, r.Frames, time.Duration(r.ClockMS)*time.Millisecond)
	fmt.Printf("  score %d  lines %d  pieces %d  interval %dms\n", r.Score, r.Lines, r.Pieces, r.IntervalMS)
	fmt.Println("  +" + strings.Repeat("-", len(r.Board[0])) + "+")
	for _, row := range r.Board {
		fmt.Println("  |" + row + "|")
	}
	fmt.Println("  +" + strings.Repeat("-", len(r.Board[0])) + "+")
	fmt.Println()
}
