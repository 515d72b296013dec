// ABOUTME: Persistence adapter storing the whole note collection under one key.
// ABOUTME: Load never fails the caller; writes report ErrWriteFailure.

package store

import (
	"errors"
	"fmt"

	"github.com/harper/listahan/internal/logger"
	"github.com/harper/listahan/internal/models"
)

// NotesKey is the fixed key holding the serialized collection.
const NotesKey = "notes"

// LoadReport describes conditions Load recovered from.
type LoadReport struct {
	Unavailable bool // no durable store; an empty collection was returned
	Corrupt     bool // stored value was unreadable and the slot was reset
	Dropped     int  // malformed entries skipped
	Compacted   bool // cleaned collection was written back
}

// Clean reports whether the load needed no recovery.
func (r LoadReport) Clean() bool {
	return !r.Unavailable && !r.Corrupt && r.Dropped == 0
}

type Adapter struct {
	kv      KV
	key     string
	compact bool
	log     logger.Logger
}

// AdapterOption configures an Adapter.
type AdapterOption func(*Adapter)

// WithKey overrides the storage key.
func WithKey(key string) AdapterOption {
	return func(a *Adapter) {
		a.key = key
	}
}

// WithCompaction rewrites the collection on load when malformed entries were dropped.
func WithCompaction(enabled bool) AdapterOption {
	return func(a *Adapter) {
		a.compact = enabled
	}
}

// WithLogger sets the logger used for recovered load conditions.
func WithLogger(log logger.Logger) AdapterOption {
	return func(a *Adapter) {
		a.log = log
	}
}

// NewAdapter wraps kv. A nil kv yields an adapter whose store is unavailable.
func NewAdapter(kv KV, opts ...AdapterOption) *Adapter {
	a := &Adapter{
		kv:      kv,
		key:     NotesKey,
		compact: true,
		log:     logger.Nop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Available reports whether a durable store is present and usable.
func (a *Adapter) Available() bool {
	return a.kv != nil && a.kv.Available()
}

// Load returns the stored collection in order. It always returns a usable (possibly empty)
// slice; anything it had to recover from is described by the report.
func (a *Adapter) Load() ([]models.Note, LoadReport) {
	var report LoadReport
	if !a.Available() {
		report.Unavailable = true
		return []models.Note{}, report
	}

	raw, err := a.kv.Get(a.key)
	if errors.Is(err, ErrKeyNotFound) {
		return []models.Note{}, report
	}
	if err != nil {
		a.log.Warn("notes slot unreadable", logger.String("key", a.key), logger.Error(err))
		report.Unavailable = true
		return []models.Note{}, report
	}

	notes, dropped, err := Decode(raw)
	if err != nil {
		report.Corrupt = true
		a.log.Warn("notes slot corrupt, resetting", logger.String("key", a.key), logger.Error(err))
		if err := a.kv.Set(a.key, []byte("[]")); err != nil {
			a.log.Error("reset notes slot", logger.Error(err))
		}
		return []models.Note{}, report
	}

	report.Dropped = dropped
	if dropped > 0 {
		a.log.Warn("dropped malformed notes", logger.String("key", a.key), logger.Int("dropped", dropped))
		if a.compact {
			if err := a.write(notes); err != nil {
				a.log.Error("compact notes slot", logger.Error(err))
			} else {
				report.Compacted = true
			}
		}
	}
	return notes, report
}

// SaveAll replaces the stored collection.
func (a *Adapter) SaveAll(notes []models.Note) error {
	return a.write(notes)
}

// SaveOne replaces the stored note with the same id.
func (a *Adapter) SaveOne(note models.Note) error {
	notes, err := a.current()
	if err != nil {
		return err
	}

	found := false
	for i := range notes {
		if notes[i].ID == note.ID {
			notes[i] = note
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("save note %s: %w", note.ID, ErrNoteNotFound)
	}
	return a.write(notes)
}

// DeleteOne removes the note with id. Removing an absent id succeeds.
func (a *Adapter) DeleteOne(id string) error {
	notes, err := a.current()
	if err != nil {
		return err
	}

	kept := notes[:0]
	for _, n := range notes {
		if n.ID != id {
			kept = append(kept, n)
		}
	}
	return a.write(kept)
}

// current loads for a read-modify-write, refusing to proceed without a store.
func (a *Adapter) current() ([]models.Note, error) {
	notes, report := a.Load()
	if report.Unavailable {
		return nil, ErrStorageUnavailable
	}
	return notes, nil
}

func (a *Adapter) write(notes []models.Note) error {
	if !a.Available() {
		return fmt.Errorf("%w: %w", ErrWriteFailure, ErrStorageUnavailable)
	}
	data, err := Encode(notes)
	if err != nil {
		return err
	}
	if err := a.kv.Set(a.key, data); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteFailure, err)
	}
	return nil
}
