// ABOUTME: Export command for backing up notes.
// ABOUTME: Supports JSON, YAML and markdown-with-frontmatter formats.

package main

import (
	"encoding/json"
	"fmt"
	"io"
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

const exportVersion = "1.0"

// ExportData wraps notes in their persisted shape so imports run through the same validation.
type ExportData struct {
	ExportedAt time.Time        `json:"exported_at" yaml:"exported_at"`
	Version    string           `json:"version" yaml:"version"`
	Notes      []store.NoteData `json:"notes" yaml:"notes"`
}

// frontmatter is the YAML header of a markdown export.
type frontmatter struct {
	ID       string     `yaml:"id"`
	Title    string     `yaml:"title"`
	Modified time.Time  `yaml:"modified"`
	Saved    *time.Time `yaml:"saved,omitempty"`
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export notes",
	Long:  `Export notes to JSON, YAML, or a directory of markdown files.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		outputPath, _ := cmd.Flags().GetString("output")
		notePrefix, _ := cmd.Flags().GetString("note")

		var notes []models.Note
		if notePrefix != "" {
			note, err := repo.Find(notePrefix)
			if err != nil {
				return fmt.Errorf("failed to get note: %w", err)
			}
			notes = append(notes, note)
		} else {
			notes = repo.Notes()
		}

		switch format {
		case "json", "yaml":
			return exportData(notes, format, outputPath)
		case "md":
			return exportMarkdown(notes, outputPath)
		default:
			return fmt.Errorf("unknown format: %s", format)
		}
	},
}

func newExportData(notes []models.Note) ExportData {
	export := ExportData{
		ExportedAt: time.Now(),
		Version:    exportVersion,
		Notes:      make([]store.NoteData, 0, len(notes)),
	}
	for _, n := range notes {
		export.Notes = append(export.Notes, store.FromModel(n))
	}
	return export
}

func exportData(notes []models.Note, format, outputPath string) error {
	export := newExportData(notes)

	var data []byte
	var err error
	if format == "yaml" {
		data, err = yaml.Marshal(export)
	} else {
		data, err = json.MarshalIndent(export, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to encode export: %w", err)
	}

	if outputPath == "" || outputPath == "-" {
		fmt.Println(string(data))
		return nil
	}

	if err := os.WriteFile(outputPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	fmt.Println(ui.Success(fmt.Sprintf("Exported %d notes to %s", len(notes), outputPath)))
	return nil
}

func exportMarkdown(notes []models.Note, outputDir string) error {
	if outputDir == "" {
		outputDir = "export"
	}

	if err := os.MkdirAll(outputDir, 0750); err != nil {
		return err
	}

	used := make(map[string]bool, len(notes))
	for _, n := range notes {
		name := sanitizeFilename(n.Title)
		if name == "" || used[name] {
			name = strings.TrimSpace(name + " " + n.ShortID())
		}
		used[name] = true

		f, err := os.Create(filepath.Join(outputDir, name+".md")) //nolint:gosec // Output directory is user-specified
		if err != nil {
			return err
		}
		err = writeMarkdown(f, n)
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
		if err != nil {
			return fmt.Errorf("failed to write %s: %w", name, err)
		}
	}

	fmt.Println(ui.Success(fmt.Sprintf("Exported %d notes to %s", len(notes), outputDir)))
	return nil
}

func writeMarkdown(w io.Writer, n models.Note) error {
	header, err := yaml.Marshal(frontmatter{
		ID:       n.ID,
		Title:    n.Title,
		Modified: n.LastModified,
		Saved:    n.LastSaved,
	})
	if err != nil {
		return err
	}

	var sb strings.Builder
	sb.WriteString("---\n")
	sb.Write(header)
	sb.WriteString("---\n\n")
	sb.WriteString(n.Content)

	_, err = io.WriteString(w, sb.String())
	return err
}

func sanitizeFilename(name string) string {
	// Replace unsafe characters
	replacer := strings.NewReplacer(
		"/", "-", "\\", "-", ":", "-", "*", "-",
		"?", "-", "\"", "-", "<", "-", ">", "-", "|", "-",
	)
	name = strings.TrimSpace(replacer.Replace(name))
	if r := []rune(name); len(r) > 100 {
		name = string(r[:100])
	}
	return name
}

func init() {
	exportCmd.Flags().StringP("format", "f", "json", "export format (json|yaml|md)")
	exportCmd.Flags().StringP("output", "o", "", "output path")
	exportCmd.Flags().StringP("note", "n", "", "single note ID to export")
	rootCmd.AddCommand(exportCmd)
}
