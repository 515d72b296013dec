// ABOUTME: Tests for export and import helpers.
// ABOUTME: Covers markdown frontmatter round trips and JSON envelope parsing.

package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/harper/listahan/internal/models"
)

func TestMarkdownRoundTrip(t *testing.T) {
	saved := time.UnixMilli(1_700_000_500_000).UTC()
	note := models.Note{
		ID:           "note-123456",
		Title:        "Trip: Lisbon",
		Content:      "# Packing\n\n- passport\n",
		LastModified: saved,
		LastSaved:    &saved,
	}

	var sb strings.Builder
	if err := writeMarkdown(&sb, note); err != nil {
		t.Fatalf("failed to write markdown: %v", err)
	}

	path := filepath.Join(t.TempDir(), "trip.md")
	if err := os.WriteFile(path, []byte(sb.String()), 0600); err != nil {
		t.Fatal(err)
	}

	got, err := readMarkdownFile(path)
	if err != nil {
		t.Fatalf("failed to read markdown: %v", err)
	}
	if got.ID != note.ID || got.Title != note.Title || got.Content != note.Content {
		t.Errorf("round trip mismatch: %+v", got)
	}
	if !got.LastModified.Equal(saved) {
		t.Errorf("expected modified %v, got %v", saved, got.LastModified)
	}
	if got.LastSaved == nil || !got.LastSaved.Equal(saved) {
		t.Errorf("expected saved %v, got %v", saved, got.LastSaved)
	}
}

func TestReadMarkdownWithoutFrontmatter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plain note.md")
	if err := os.WriteFile(path, []byte("just text"), 0600); err != nil {
		t.Fatal(err)
	}

	got, err := readMarkdownFile(path)
	if err != nil {
		t.Fatalf("failed to read markdown: %v", err)
	}
	if got.Title != "plain note" {
		t.Errorf("expected title from filename, got %q", got.Title)
	}
	if got.ID == "" {
		t.Error("expected a generated id")
	}
	if got.LastSaved != nil {
		t.Error("expected unsaved note")
	}
}

func TestReadJSONFormats(t *testing.T) {
	dir := t.TempDir()
	entry := `{"id":"a1","title":"A","content":"x","lastModified":1700000000000,"lastSaved":null}`

	bare := filepath.Join(dir, "bare.json")
	if err := os.WriteFile(bare, []byte("["+entry+`,{"id":"broken"}]`), 0600); err != nil {
		t.Fatal(err)
	}
	notes, err := readJSON(bare)
	if err != nil {
		t.Fatalf("failed to read bare array: %v", err)
	}
	if len(notes) != 1 || notes[0].ID != "a1" {
		t.Errorf("expected one valid note, got %+v", notes)
	}

	wrapped := filepath.Join(dir, "export.json")
	if err := os.WriteFile(wrapped, []byte(`{"version":"1.0","notes":[`+entry+`]}`), 0600); err != nil {
		t.Fatal(err)
	}
	notes, err = readJSON(wrapped)
	if err != nil {
		t.Fatalf("failed to read envelope: %v", err)
	}
	if len(notes) != 1 || notes[0].Title != "A" {
		t.Errorf("unexpected notes: %+v", notes)
	}
}

func TestReadJSONRejectsNonArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte(`{"notes": {"id": "x"}}`), 0600); err != nil {
		t.Fatal(err)
	}

	if _, err := readJSON(path); err == nil {
		t.Error("expected error for non-array notes")
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := map[string]string{
		"a/b:c":      "a-b-c",
		"  spaced  ": "spaced",
		"plain":      "plain",
	}
	for in, want := range tests {
		if got := sanitizeFilename(in); got != want {
			t.Errorf("sanitizeFilename(%q) = %q, want %q", in, got, want)
		}
	}
}
