// ABOUTME: List command for displaying notes.
// ABOUTME: Orders by recency, or by search relevance with --search.

package main

import (
	"fmt"

	"github.com/harper/listahan/internal/ui"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List notes",
	Long:    `List notes, most recently modified first. With --search, exact title matches come first, then title matches, then content matches.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		searchFlag, _ := cmd.Flags().GetString("search")
		limitFlag, _ := cmd.Flags().GetInt("limit")

		shown := 0
		for note := range repo.FilteredView(searchFlag) {
			if limitFlag > 0 && shown == limitFlag {
				break
			}
			fmt.Print(ui.FormatNoteListItem(note))
			shown++
		}

		if shown == 0 {
			fmt.Println("No notes found.")
		}
		return nil
	},
}

func init() {
	listCmd.Flags().StringP("search", "s", "", "search query")
	listCmd.Flags().IntP("limit", "n", 20, "number of results (0 for all)")
	rootCmd.AddCommand(listCmd)
}
