// ABOUTME: Remove command for deleting notes.
// ABOUTME: Asks the same confirmation the TUI shows unless --force is given.

package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/harper/listahan/internal/ui"
	"github.com/spf13/cobra"
)

var rmCmd = &cobra.Command{
	Use:   "rm <id-prefix>",
	Short: "Remove a note",
	Long:  `Delete a note permanently.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")

		note, err := repo.Find(args[0])
		if err != nil {
			return fmt.Errorf("failed to get note: %w", err)
		}
		if err := repo.RequestDelete(note.ID); err != nil {
			return err
		}

		if !force {
			req, _ := repo.Pending()
			fmt.Print(ui.FormatDialog(req.Dialog(), note.Title))
			reader := bufio.NewReader(os.Stdin)
			response, _ := reader.ReadString('\n')
			response = strings.TrimSpace(strings.ToLower(response))
			if response != "y" && response != "yes" {
				repo.Cancel()
				fmt.Println("Cancelled.")
				return nil
			}
		}

		if err := repo.Confirm(); err != nil {
			return fmt.Errorf("failed to delete note: %w", err)
		}

		fmt.Println(ui.Success(fmt.Sprintf("Deleted note %s", note.ShortID())))
		return nil
	},
}

func init() {
	rmCmd.Flags().BoolP("force", "f", false, "skip confirmation")
	rootCmd.AddCommand(rmCmd)
}
