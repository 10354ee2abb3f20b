package main

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockfall/internal/games/blockfall"
	"github.com/vovakirdan/blockfall/internal/registry"
	"github.com/vovakirdan/blockfall/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresStats bool
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [variant]",
	Short: "Show high scores",
	Long: `Display the top high scores for a variant (default: blockfall).

Examples:
  blockfall scores
  blockfall scores blockfall_mini --limit 20
  blockfall scores --stats
  blockfall scores blockfall_mini --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVarP(&flagScoresLimit, "limit", "n", storage.DefaultLimit, "Number of scores to show")
	scoresCmd.Flags().BoolVar(&flagScoresStats, "stats", false, "Show aggregate statistics for every variant")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all scores of the variant")
}

func runScores(_ *cobra.Command, args []string) error {
	gameID := blockfall.ID
	if len(args) == 1 {
		gameID = args[0]
	}

	if !flagScoresStats && !registry.Exists(gameID) {
		return fmt.Errorf("unknown variant %q (run 'blockfall list' to see variants)", gameID)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	switch {
	case flagScoresStats:
		return printStats(store)
	case flagScoresClear:
		if err := store.ClearScores(gameID); err != nil {
			return err
		}
		logger.Info("scores cleared", "game", gameID)
		return nil
	}

	scores, err := store.TopScores(gameID, flagScoresLimit)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}
	fmt.Printf("High Scores - %s\n", game.Title())
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'blockfall play %s' to set the first high score!\n", gameID)
		return nil
	}

	t := newTable("Rank", "Player", "Score", "Lines", "Pieces", "Board", "Date")
	for i, e := range scores {
		player := e.Player
		if player == "" {
			player = "-"
		}
		t.Row(
			strconv.Itoa(i+1), player,
			strconv.Itoa(e.Score), strconv.Itoa(e.Lines), strconv.Itoa(e.Pieces),
			fmt.Sprintf("%dx%d", e.Width, e.Height),
			e.CreatedAt.Format("2006-01-02 15:04"),
		)
	}
	fmt.Println(t.Render())

	fmt.Println()
	fmt.Printf("Best: %d\n", scores[0].Score)
	return nil
}

func printStats(store *storage.Store) error {
	stats, err := store.GetAllGamesStats()
	if err != nil {
		return err
	}
	if len(stats) == 0 {
		fmt.Println("No games recorded yet.")
		return nil
	}

	ids := make([]string, 0, len(stats))
	for id := range stats {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	t := newTable("Variant", "Games", "Best", "Average", "Lines", "Last played")
	for _, id := range ids {
		st := stats[id]
		t.Row(
			id, strconv.Itoa(st.GamesCount), strconv.Itoa(st.HighScore),
			fmt.Sprintf("%.1f", st.AvgScore), strconv.FormatInt(st.TotalLines, 10),
			st.LastPlayed.Format("2006-01-02 15:04"),
		)
	}
	fmt.Println(t.Render())
	return nil
}

// newTable returns a borderless-column table with a bold header row.
func newTable(headers ...string) *table.Table {
	header := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderColumn(false).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		})
}
