// ABOUTME: Edit command for modifying existing notes.
// ABOUTME: Takes new fields inline or opens the content in $EDITOR, then saves.

package main

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/harper/listahan/internal/ui"
	"github.com/spf13/cobra"
)

var editCmd = &cobra.Command{
	Use:   "edit <id-prefix>",
	Short: "Edit a note",
	Long:  `Change a note's title or content. Without --title or --content the content opens in $EDITOR.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		note, err := repo.Find(args[0])
		if err != nil {
			return fmt.Errorf("failed to get note: %w", err)
		}

		title, content := note.Title, note.Content
		titleSet := cmd.Flags().Changed("title")
		contentSet := cmd.Flags().Changed("content")
		if titleSet {
			title, _ = cmd.Flags().GetString("title")
		}
		if contentSet {
			content, _ = cmd.Flags().GetString("content")
		}
		if !titleSet && !contentSet {
			content, err = openEditor(note.Content)
			if err != nil {
				return fmt.Errorf("failed to open editor: %w", err)
			}
		}

		if title == note.Title && content == note.Content {
			fmt.Println("No changes made.")
			return nil
		}

		if _, err := repo.SelectNote(note.ID); err != nil {
			return fmt.Errorf("failed to open note: %w", err)
		}
		if err := repo.EditTitle(title); err != nil {
			return err
		}
		if err := repo.EditContent(content); err != nil {
			return err
		}
		if err := repo.SaveSelected(); err != nil {
			return fmt.Errorf("failed to update note: %w", err)
		}

		fmt.Println(ui.Success(fmt.Sprintf("Updated note %s", note.ShortID())))
		return nil
	},
}

func openEditor(initial string) (string, error) {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "vim"
	}

	tmpFile, err := os.CreateTemp("", "listahan-*.md")
	if err != nil {
		return "", err
	}
	defer func() {
		_ = os.Remove(tmpFile.Name()) // Best-effort cleanup
	}()

	if initial != "" {
		if _, err := tmpFile.WriteString(initial); err != nil {
			_ = tmpFile.Close()
			return "", fmt.Errorf("failed to write initial content: %w", err)
		}
	}
	if err := tmpFile.Close(); err != nil {
		return "", fmt.Errorf("failed to close temp file: %w", err)
	}

	cmd := exec.Command(editor, tmpFile.Name()) //nolint:gosec // Launching $EDITOR is expected CLI behavior
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return "", err
	}

	data, err := os.ReadFile(tmpFile.Name())
	if err != nil {
		return "", err
	}

	return string(data), nil
}

func init() {
	editCmd.Flags().StringP("title", "t", "", "new title")
	editCmd.Flags().StringP("content", "c", "", "new content")
	rootCmd.AddCommand(editCmd)
}
