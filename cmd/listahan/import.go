// ABOUTME: Import command for restoring notes from backup.
// ABOUTME: Accepts JSON/YAML exports, raw stored arrays, and markdown files or directories.

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/harper/listahan/internal/models"
	"github.com/harper/listahan/internal/store"
	"github.com/harper/listahan/internal/ui"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var importCmd = &cobra.Command{
	Use:   "import <path>",
	Short: "Import notes",
	Long: `Import notes from a JSON or YAML export, or from markdown files.
Notes whose ids already exist are skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]

		info, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("failed to stat path: %w", err)
		}

		var notes []models.Note
		switch {
		case info.IsDir():
			notes, err = readMarkdownDir(path)
		case strings.HasSuffix(path, ".json"):
			notes, err = readJSON(path)
		case strings.HasSuffix(path, ".yaml"), strings.HasSuffix(path, ".yml"):
			notes, err = readYAML(path)
		default:
			var note models.Note
			note, err = readMarkdownFile(path)
			notes = []models.Note{note}
		}
		if err != nil {
			return err
		}

		added, err := repo.Import(notes)
		if err != nil {
			return err
		}

		msg := fmt.Sprintf("Imported %d notes", added)
		if skipped := len(notes) - added; skipped > 0 {
			msg += fmt.Sprintf(" (%d already present)", skipped)
		}
		fmt.Println(ui.Success(msg))
		return nil
	},
}

// readJSON accepts an export envelope or a bare array in the stored format.
func readJSON(path string) ([]models.Note, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-specified file path is expected CLI behavior
	if err != nil {
		return nil, err
	}

	raw := bytes.TrimSpace(data)
	if !bytes.HasPrefix(raw, []byte("[")) {
		var envelope struct {
			Notes json.RawMessage `json:"notes"`
		}
		if err := json.Unmarshal(raw, &envelope); err != nil {
			return nil, fmt.Errorf("failed to parse export: %w", err)
		}
		raw = envelope.Notes
	}
	return decodeNotes(raw)
}

func readYAML(path string) ([]models.Note, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-specified file path is expected CLI behavior
	if err != nil {
		return nil, err
	}

	var export ExportData
	if err := yaml.Unmarshal(data, &export); err != nil {
		return nil, fmt.Errorf("failed to parse export: %w", err)
	}

	// Round-trip through JSON so YAML imports get the same entry validation.
	raw, err := json.Marshal(export.Notes)
	if err != nil {
		return nil, err
	}
	return decodeNotes(raw)
}

func decodeNotes(raw []byte) ([]models.Note, error) {
	notes, dropped, err := store.Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to read notes: %w", err)
	}
	if dropped > 0 {
		fmt.Println(ui.Warning(fmt.Sprintf("skipped %d malformed note(s)", dropped)))
	}
	return notes, nil
}

func readMarkdownDir(dir string) ([]models.Note, error) {
	var notes []models.Note

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !strings.HasSuffix(path, ".md") {
			return nil
		}

		note, err := readMarkdownFile(path)
		if err != nil {
			fmt.Println(ui.Warning(fmt.Sprintf("failed to import %s: %v", path, err)))
			return nil
		}
		notes = append(notes, note)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return notes, nil
}

func readMarkdownFile(path string) (models.Note, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-specified file path is expected CLI behavior
	if err != nil {
		return models.Note{}, err
	}

	content := string(data)
	var fm frontmatter

	// Try to parse frontmatter
	if strings.HasPrefix(content, "---\n") {
		parts := strings.SplitN(content, "---\n", 3)
		if len(parts) >= 3 {
			if err := yaml.Unmarshal([]byte(parts[1]), &fm); err == nil {
				content = parts[2]
			}
		}
	}

	note := models.NewNote(time.Now())
	if fm.ID != "" {
		note.ID = fm.ID
	}
	note.Title = fm.Title
	if note.Title == "" {
		note.Title = strings.TrimSuffix(filepath.Base(path), ".md")
	}
	note.Content = strings.TrimPrefix(content, "\n")
	if !fm.Modified.IsZero() {
		note.LastModified = fm.Modified
	}
	note.LastSaved = fm.Saved
	return note, nil
}

func init() {
	rootCmd.AddCommand(importCmd)
}
