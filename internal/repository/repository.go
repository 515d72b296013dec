// ABOUTME: Note repository holding session state over the persistence adapter.
// ABOUTME: Owns selection, working copy, dirty flag, and the confirmation gate.

package repository

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/harper/listahan/internal/confirm"
	"github.com/harper/listahan/internal/logger"
	"github.com/harper/listahan/internal/models"
	"github.com/harper/listahan/internal/store"
)

var (
	ErrNoSelection = errors.New("no note selected")
	ErrNoPending   = errors.New("no confirmation pending")
)

// Persister is the storage the repository writes through.
type Persister interface {
	Load() ([]models.Note, store.LoadReport)
	SaveAll(notes []models.Note) error
	DeleteOne(id string) error
}

// Repository is not safe for concurrent use; drive it from one goroutine.
type Repository struct {
	store Persister
	log   logger.Logger
	now   func() time.Time
	newID func() string

	notes      []models.Note
	selectedID string
	title      string
	content    string
	dirty      bool
	query      string
	gate       confirm.Gate
}

// Option configures a Repository.
type Option func(*Repository)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(r *Repository) {
		r.now = now
	}
}

// WithIDGenerator overrides note id generation.
func WithIDGenerator(gen func() string) Option {
	return func(r *Repository) {
		r.newID = gen
	}
}

// WithLogger sets the repository logger.
func WithLogger(log logger.Logger) Option {
	return func(r *Repository) {
		r.log = log
	}
}

// New creates an empty repository. Call Reload to populate it from storage.
func New(p Persister, opts ...Option) *Repository {
	r := &Repository{
		store: p,
		log:   logger.Nop(),
		now:   time.Now,
		newID: models.NewID,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Reload refreshes the collection from storage. A selection whose note vanished is cleared.
func (r *Repository) Reload() store.LoadReport {
	notes, report := r.store.Load()
	r.notes = notes
	if r.selectedID != "" && r.indexOf(r.selectedID) < 0 {
		r.clearSelection()
	}
	r.log.Debug("notes loaded", logger.Int("count", len(notes)), logger.Bool("clean", report.Clean()))
	return report
}

// CreateNote adds a fresh note at the front, persists the collection and selects it.
func (r *Repository) CreateNote() (models.Note, error) {
	note := models.NewNote(r.now())
	note.ID = r.uniqueID()

	updated := make([]models.Note, 0, len(r.notes)+1)
	updated = append(updated, note)
	updated = append(updated, r.notes...)

	if err := r.store.SaveAll(updated); err != nil {
		return models.Note{}, fmt.Errorf("create note: %w", err)
	}
	r.notes = updated
	r.load(note)
	r.log.Debug("note created", logger.String("id", note.ID))
	return note, nil
}

// SelectNote switches the selection to id. With unsaved edits it does not switch; it raises a
// switch confirmation instead and returns false.
func (r *Repository) SelectNote(id string) (bool, error) {
	i := r.indexOf(id)
	if i < 0 {
		return false, fmt.Errorf("select note %s: %w", id, store.ErrNoteNotFound)
	}
	if id == r.selectedID {
		return true, nil
	}
	if r.selectedID != "" && r.dirty {
		r.gate.Request(confirm.Request{Target: r.notes[i], Intent: confirm.IntentSwitch})
		return false, nil
	}
	r.load(r.notes[i])
	return true, nil
}

// EditContent replaces the working copy's content.
func (r *Repository) EditContent(text string) error {
	if r.selectedID == "" {
		return ErrNoSelection
	}
	r.content = text
	r.dirty = true
	return nil
}

// EditTitle replaces the working copy's title.
func (r *Repository) EditTitle(text string) error {
	if r.selectedID == "" {
		return ErrNoSelection
	}
	r.title = text
	r.dirty = true
	return nil
}

// SaveSelected writes the working copy back. It does nothing without a selection. If the
// write fails the note keeps its previous timestamps and the working copy stays dirty.
func (r *Repository) SaveSelected() error {
	i := r.indexOf(r.selectedID)
	if i < 0 {
		return nil
	}

	note := r.notes[i]
	note.Title = r.title
	note.Content = r.content
	note.MarkSaved(r.now())

	updated := slices.Clone(r.notes)
	updated[i] = note
	if err := r.store.SaveAll(updated); err != nil {
		return fmt.Errorf("save note %s: %w", note.ID, err)
	}
	r.notes = updated
	r.dirty = false
	r.log.Debug("note saved", logger.String("id", note.ID))
	return nil
}

// Revert reloads the working copy from the stored version of the selection and clears dirty.
// It does nothing without a selection.
func (r *Repository) Revert() {
	if i := r.indexOf(r.selectedID); i >= 0 {
		r.load(r.notes[i])
	}
}

// RequestDelete raises a delete confirmation for id regardless of dirty state.
func (r *Repository) RequestDelete(id string) error {
	i := r.indexOf(id)
	if i < 0 {
		return fmt.Errorf("delete note %s: %w", id, store.ErrNoteNotFound)
	}
	r.gate.Request(confirm.Request{Target: r.notes[i], Intent: confirm.IntentDelete})
	return nil
}

// Pending returns the confirmation awaiting a decision.
func (r *Repository) Pending() (confirm.Request, bool) {
	return r.gate.Pending()
}

// Cancel drops the pending confirmation and leaves everything else untouched.
func (r *Repository) Cancel() {
	r.gate.Cancel()
}

// Confirm carries out the pending request. The gate returns to idle even if the action fails.
func (r *Repository) Confirm() error {
	if r.gate.Idle() {
		return ErrNoPending
	}
	req, _ := r.gate.Resolve()

	switch req.Intent {
	case confirm.IntentDelete:
		return r.deleteNote(req.Target.ID)
	case confirm.IntentSwitch:
		i := r.indexOf(req.Target.ID)
		if i < 0 {
			return fmt.Errorf("switch to note %s: %w", req.Target.ID, store.ErrNoteNotFound)
		}
		r.load(r.notes[i])
		return nil
	default:
		return fmt.Errorf("unknown intent %v", req.Intent)
	}
}

func (r *Repository) deleteNote(id string) error {
	if err := r.store.DeleteOne(id); err != nil {
		return fmt.Errorf("delete note %s: %w", id, err)
	}
	r.notes = slices.DeleteFunc(slices.Clone(r.notes), func(n models.Note) bool {
		return n.ID == id
	})
	if r.selectedID == id {
		r.clearSelection()
	}
	r.log.Debug("note deleted", logger.String("id", id))
	return nil
}

// Import appends notes whose ids are not already present and persists once.
// It returns how many notes were added.
func (r *Repository) Import(notes []models.Note) (int, error) {
	updated := slices.Clone(r.notes)
	seen := make(map[string]bool, len(updated)+len(notes))
	for _, n := range updated {
		seen[n.ID] = true
	}

	added := 0
	for _, n := range notes {
		if n.ID == "" || seen[n.ID] {
			continue
		}
		seen[n.ID] = true
		updated = append(updated, n)
		added++
	}
	if added == 0 {
		return 0, nil
	}

	if err := r.store.SaveAll(updated); err != nil {
		return 0, fmt.Errorf("import notes: %w", err)
	}
	r.notes = updated
	return added, nil
}

// Notes returns a copy of the collection in stored order.
func (r *Repository) Notes() []models.Note {
	return slices.Clone(r.notes)
}

// Selected returns the stored version of the selected note.
func (r *Repository) Selected() (models.Note, bool) {
	i := r.indexOf(r.selectedID)
	if i < 0 {
		return models.Note{}, false
	}
	return r.notes[i], true
}

// Working returns the in-progress title and content of the selection.
func (r *Repository) Working() (title, content string) {
	return r.title, r.content
}

// Dirty reports whether the working copy has unsaved edits.
func (r *Repository) Dirty() bool {
	return r.dirty
}

// SetQuery stores the session search string used by View.
func (r *Repository) SetQuery(q string) {
	r.query = q
}

// Query returns the session search string.
func (r *Repository) Query() string {
	return r.query
}

func (r *Repository) load(n models.Note) {
	r.selectedID = n.ID
	r.title = n.Title
	r.content = n.Content
	r.dirty = false
}

func (r *Repository) clearSelection() {
	r.selectedID = ""
	r.title = ""
	r.content = ""
	r.dirty = false
}

func (r *Repository) indexOf(id string) int {
	if id == "" {
		return -1
	}
	return slices.IndexFunc(r.notes, func(n models.Note) bool {
		return n.ID == id
	})
}

func (r *Repository) uniqueID() string {
	for {
		id := r.newID()
		if id != "" && r.indexOf(id) < 0 {
			return id
		}
	}
}
