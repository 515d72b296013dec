// ABOUTME: JSON encoding of the note collection stored under one key.
// ABOUTME: Decoding validates each entry's shape and drops malformed ones.

package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/harper/listahan/internal/models"
)

// NoteData is the persisted form of a note. Timestamps are unix milliseconds.
type NoteData struct {
	ID           string `json:"id" yaml:"id"`
	Title        string `json:"title" yaml:"title"`
	Content      string `json:"content" yaml:"content"`
	LastModified int64  `json:"lastModified" yaml:"lastModified"`
	LastSaved    *int64 `json:"lastSaved" yaml:"lastSaved"`
}

// ToModel converts NoteData to a models.Note.
func (n NoteData) ToModel() models.Note {
	note := models.Note{
		ID:           n.ID,
		Title:        n.Title,
		Content:      n.Content,
		LastModified: time.UnixMilli(n.LastModified),
	}
	if n.LastSaved != nil {
		saved := time.UnixMilli(*n.LastSaved)
		note.LastSaved = &saved
	}
	return note
}

// FromModel creates NoteData from a models.Note.
func FromModel(note models.Note) NoteData {
	data := NoteData{
		ID:           note.ID,
		Title:        note.Title,
		Content:      note.Content,
		LastModified: note.LastModified.UnixMilli(),
	}
	if note.LastSaved != nil {
		saved := note.LastSaved.UnixMilli()
		data.LastSaved = &saved
	}
	return data
}

// Encode serializes the collection in order.
func Encode(notes []models.Note) ([]byte, error) {
	records := make([]NoteData, 0, len(notes))
	for _, n := range notes {
		records = append(records, FromModel(n))
	}
	data, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("marshal notes: %w", err)
	}
	return data, nil
}

// Decode parses a stored collection. A value that is not a JSON array yields ErrCorruptData.
// Entries with missing or mistyped fields, and repeated ids, are skipped and counted in dropped.
func Decode(raw []byte) (notes []models.Note, dropped int, err error) {
	var entries []any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&entries); err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrCorruptData, err)
	}
	if dec.More() {
		return nil, 0, fmt.Errorf("%w: trailing data", ErrCorruptData)
	}
	if entries == nil {
		// literal null
		return nil, 0, fmt.Errorf("%w: not an array", ErrCorruptData)
	}

	notes = make([]models.Note, 0, len(entries))
	seen := make(map[string]bool, len(entries))
	for _, entry := range entries {
		data, ok := validEntry(entry)
		if !ok || seen[data.ID] {
			dropped++
			continue
		}
		seen[data.ID] = true
		notes = append(notes, data.ToModel())
	}
	return notes, dropped, nil
}

func validEntry(entry any) (NoteData, bool) {
	obj, ok := entry.(map[string]any)
	if !ok {
		return NoteData{}, false
	}

	var data NoteData
	if data.ID, ok = obj["id"].(string); !ok || data.ID == "" {
		return NoteData{}, false
	}
	if data.Title, ok = obj["title"].(string); !ok {
		return NoteData{}, false
	}
	if data.Content, ok = obj["content"].(string); !ok {
		return NoteData{}, false
	}
	modified, ok := millis(obj["lastModified"])
	if !ok {
		return NoteData{}, false
	}
	data.LastModified = modified

	saved, present := obj["lastSaved"]
	if !present {
		return NoteData{}, false
	}
	if saved != nil {
		ms, ok := millis(saved)
		if !ok {
			return NoteData{}, false
		}
		data.LastSaved = &ms
	}
	return data, true
}

// millis accepts only integral numbers that fit in an int64.
func millis(v any) (int64, bool) {
	n, ok := v.(json.Number)
	if !ok {
		return 0, false
	}
	ms, err := strconv.ParseInt(n.String(), 10, 64)
	if err != nil {
		return 0, false
	}
	return ms, true
}
