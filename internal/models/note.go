// ABOUTME: Note model representing a single persisted note.
// ABOUTME: Provides constructor, defaults, and timestamp helpers.

package models

import (
	"time"

	"github.com/google/uuid"
)

// DefaultTitle is the title given to freshly created notes.
const DefaultTitle = "Untitled Note"

type Note struct {
	ID           string
	Title        string
	Content      string
	LastModified time.Time
	// LastSaved is nil until the note has been explicitly saved.
	LastSaved *time.Time
}

// NewNote returns an unsaved note with a random id, the default title and empty content.
func NewNote(now time.Time) Note {
	return Note{
		ID:           NewID(),
		Title:        DefaultTitle,
		LastModified: now,
	}
}

// NewID returns a fresh opaque note identifier.
func NewID() string {
	return uuid.NewString()
}

// Saved reports whether the note has ever been durably written by an explicit save.
func (n Note) Saved() bool {
	return n.LastSaved != nil
}

// MarkSaved stamps both timestamps. LastModified never moves backwards.
func (n *Note) MarkSaved(now time.Time) {
	if now.Before(n.LastModified) {
		now = n.LastModified
	}
	n.LastModified = now
	saved := now
	n.LastSaved = &saved
}

// ShortID returns the first six characters of the id for display.
func (n Note) ShortID() string {
	if len(n.ID) <= 6 {
		return n.ID
	}
	return n.ID[:6]
}
