// blockfall is a falling-block puzzle game for the terminal.
//
// Usage:
//
//	blockfall list              - List available board variants
//	blockfall play [variant]    - Play a game
//	blockfall menu              - Start menu to pick a variant interactively
//	blockfall serve             - Start SSH server for remote play
//	blockfall scores [variant]  - Show high scores
//	blockfall simulate          - Run a headless autopilot game
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.blockfall/scores.db)
//	--config <path>       - Use a custom blockfall.yaml
//	--difficulty <preset> - easy, normal, hard or fixed
package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockfall/internal/config"
	"github.com/vovakirdan/blockfall/internal/games/blockfall"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagVerbose    bool
)

var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	Prefix:          "blockfall",
})

func main() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "blockfall",
	Short: "Blockfall - a falling-block puzzle in your terminal",
	Long: `Blockfall drops four-cell pieces onto a grid. Fill a row to remove it;
every removed row scores a point and makes the pieces fall faster. The game
ends when the stack reaches the top.

Available commands:
  list      - Show board variants
  play      - Play a variant directly
  menu      - Interactive variant picker
  serve     - Start SSH server for remote play
  scores    - View high scores
  simulate  - Run a headless game driven by an autopilot

Examples:
  blockfall play
  blockfall play blockfall_mini --difficulty hard
  blockfall menu
  blockfall serve --ssh :2222
  blockfall simulate --seed 42 --ticks 20000`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.blockfall/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom blockfall.yaml")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simulateCmd)
}

// setup loads the game configuration shared by every command and hands it
// to the game package so registry-created games pick it up.
func setup(_ *cobra.Command, _ []string) error {
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}
	log.SetDefault(logger)

	if flagFPS <= 0 {
		flagFPS = 60
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	blockfall.Configure(cfg)
	logger.Debug("config loaded",
		"board", cfg.Board.Width, "height", cfg.Board.Height,
		"difficulty", cfg.Difficulty, "memory", cfg.Generator.Memory)
	return nil
}

// loadConfig reads blockfall.yaml and applies the --difficulty flag.
func loadConfig() (config.BlockfallConfig, error) {
	cfg, err := config.LoadBlockfall(flagConfig)
	if err != nil {
		return config.BlockfallConfig{}, err
	}

	if flagDifficulty != "" {
		preset, err := config.ParsePreset(flagDifficulty)
		if err != nil {
			return config.BlockfallConfig{}, err
		}
		config.ApplyPreset(&cfg, preset)
	}

	return cfg, nil
}
