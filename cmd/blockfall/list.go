package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockfall/internal/games/blockfall"
	"github.com/vovakirdan/blockfall/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all board variants",
	Long:  `Shows the registered blockfall variants and their board sizes.`,
	Run: func(cmd *cobra.Command, _ []string) {
		out := cmd.OutOrStdout()
		games := registry.List()
		if len(games) == 0 {
			fmt.Fprintln(out, "No variants registered.")
			return
		}

		settings := blockfall.Settings()
		t := newTable("ID", "Board", "Title")
		for _, g := range games {
			board := "-"
			if game, err := blockfall.Create(g.ID, settings); err == nil {
				w, h := game.BoardSize()
				board = fmt.Sprintf("%dx%d", w, h)
			}
			t.Row(g.ID, board, g.Title)
		}

		fmt.Fprintln(out, t.Render())
		fmt.Fprintln(out, "Run 'blockfall play <id>' to play.")
	},
}
