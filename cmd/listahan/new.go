// ABOUTME: New command for creating notes.
// ABOUTME: Takes title and content inline, from a file, or from $EDITOR.

package main

import (
	"fmt"
	"os"

	"github.com/harper/listahan/internal/models"
	"github.com/harper/listahan/internal/ui"
	"github.com/spf13/cobra"
)

var newCmd = &cobra.Command{
	Use:   "new [title]",
	Short: "Create a new note",
	Long: `Create a new note. Without a title it is named "Untitled Note".
Content comes from --content, --file, or $EDITOR with --edit.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		contentFlag, _ := cmd.Flags().GetString("content")
		fileFlag, _ := cmd.Flags().GetString("file")
		editFlag, _ := cmd.Flags().GetBool("edit")

		var content *string
		switch {
		case fileFlag != "":
			data, err := os.ReadFile(fileFlag) //nolint:gosec // User-specified file path is expected CLI behavior
			if err != nil {
				return fmt.Errorf("failed to read file: %w", err)
			}
			s := string(data)
			content = &s
		case contentFlag != "":
			content = &contentFlag
		case editFlag:
			s, err := openEditor("")
			if err != nil {
				return fmt.Errorf("failed to open editor: %w", err)
			}
			content = &s
		}

		var title *string
		if len(args) == 1 {
			title = &args[0]
		}

		note, err := createNote(title, content)
		if err != nil {
			return err
		}

		fmt.Println(ui.Success(fmt.Sprintf("Created note %s", note.ShortID())))
		return nil
	},
}

// createNote creates a note and, when fields are given, saves them into it.
func createNote(title, content *string) (models.Note, error) {
	note, err := repo.CreateNote()
	if err != nil {
		return models.Note{}, fmt.Errorf("failed to create note: %w", err)
	}
	if title == nil && content == nil {
		return note, nil
	}

	if title != nil {
		if err := repo.EditTitle(*title); err != nil {
			return note, err
		}
	}
	if content != nil {
		if err := repo.EditContent(*content); err != nil {
			return note, err
		}
	}
	if err := repo.SaveSelected(); err != nil {
		return note, fmt.Errorf("failed to save note: %w", err)
	}
	saved, _ := repo.Selected()
	return saved, nil
}

func init() {
	newCmd.Flags().StringP("content", "c", "", "note content (inline)")
	newCmd.Flags().String("file", "", "read content from file")
	newCmd.Flags().BoolP("edit", "e", false, "write content in $EDITOR")
	rootCmd.AddCommand(newCmd)
}
