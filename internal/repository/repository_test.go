// ABOUTME: Tests for repository session state and confirmation routing.
// ABOUTME: Exercises create/select/edit/save/delete flows over an in-memory store.

package repository

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/harper/listahan/internal/confirm"
	"github.com/harper/listahan/internal/models"
	"github.com/harper/listahan/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type clock struct {
	t time.Time
}

func (c *clock) now() time.Time {
	c.t = c.t.Add(time.Second)
	return c.t
}

// flakyKV wraps a memory store and can be told to reject writes.
type flakyKV struct {
	*store.MemoryKV
	fail bool
}

func (f *flakyKV) Set(key string, value []byte) error {
	if f.fail {
		return errors.New("quota exceeded")
	}
	return f.MemoryKV.Set(key, value)
}

type fixture struct {
	repo    *Repository
	adapter *store.Adapter
	kv      *flakyKV
	clock   *clock
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()
	kv := &flakyKV{MemoryKV: store.NewMemory()}
	adapter := store.NewAdapter(kv)
	c := &clock{t: time.UnixMilli(1_700_000_000_000)}
	opts = append([]Option{WithClock(c.now)}, opts...)
	repo := New(adapter, opts...)
	repo.Reload()
	return &fixture{repo: repo, adapter: adapter, kv: kv, clock: c}
}

func (f *fixture) stored(t *testing.T) []models.Note {
	t.Helper()
	notes, report := f.adapter.Load()
	require.True(t, report.Clean(), "unexpected load report %+v", report)
	return notes
}

func TestCreateNote(t *testing.T) {
	f := newFixture(t)

	note, err := f.repo.CreateNote()
	require.NoError(t, err)

	assert.NotEmpty(t, note.ID)
	assert.Equal(t, "Untitled Note", note.Title)
	assert.Empty(t, note.Content)
	assert.Nil(t, note.LastSaved)

	sel, ok := f.repo.Selected()
	require.True(t, ok)
	assert.Equal(t, note.ID, sel.ID)
	title, content := f.repo.Working()
	assert.Equal(t, "Untitled Note", title)
	assert.Empty(t, content)
	assert.False(t, f.repo.Dirty())

	stored := f.stored(t)
	require.Len(t, stored, 1)
	assert.Equal(t, note.ID, stored[0].ID)
}

func TestCreateNotePrepends(t *testing.T) {
	f := newFixture(t)
	first, _ := f.repo.CreateNote()
	second, _ := f.repo.CreateNote()

	notes := f.repo.Notes()
	require.Len(t, notes, 2)
	assert.Equal(t, second.ID, notes[0].ID)
	assert.Equal(t, first.ID, notes[1].ID)
}

func TestCreateNoteUniqueID(t *testing.T) {
	ids := []string{"same", "same", "other"}
	next := 0
	gen := func() string {
		id := ids[next]
		next++
		return id
	}
	f := newFixture(t, WithIDGenerator(gen))

	a, err := f.repo.CreateNote()
	require.NoError(t, err)
	b, err := f.repo.CreateNote()
	require.NoError(t, err)

	assert.Equal(t, "same", a.ID)
	assert.Equal(t, "other", b.ID)
}

func TestCreateNoteWriteFailure(t *testing.T) {
	f := newFixture(t)
	f.kv.fail = true

	_, err := f.repo.CreateNote()

	assert.ErrorIs(t, err, store.ErrWriteFailure)
	assert.Empty(t, f.repo.Notes())
	_, ok := f.repo.Selected()
	assert.False(t, ok)
}

func TestEditRequiresSelection(t *testing.T) {
	f := newFixture(t)

	assert.ErrorIs(t, f.repo.EditContent("x"), ErrNoSelection)
	assert.ErrorIs(t, f.repo.EditTitle("x"), ErrNoSelection)
	assert.False(t, f.repo.Dirty())
}

func TestEditMarksDirtyUntilSave(t *testing.T) {
	f := newFixture(t)
	_, _ = f.repo.CreateNote()

	require.NoError(t, f.repo.EditContent("draft"))
	assert.True(t, f.repo.Dirty())

	require.NoError(t, f.repo.EditTitle("Title"))
	assert.True(t, f.repo.Dirty())

	require.NoError(t, f.repo.SaveSelected())
	assert.False(t, f.repo.Dirty())
}

func TestRevertDiscardsRejectedEdits(t *testing.T) {
	f := newFixture(t)
	_, err := f.repo.CreateNote()
	require.NoError(t, err)
	require.NoError(t, f.repo.EditTitle("Orig"))
	require.NoError(t, f.repo.SaveSelected())

	f.kv.fail = true
	require.NoError(t, f.repo.EditTitle("REJECTED"))
	require.Error(t, f.repo.SaveSelected())
	require.True(t, f.repo.Dirty())

	f.repo.Revert()

	assert.False(t, f.repo.Dirty())
	title, _ := f.repo.Working()
	assert.Equal(t, "Orig", title)
}

func TestRevertWithoutSelection(t *testing.T) {
	f := newFixture(t)

	f.repo.Revert()

	_, ok := f.repo.Selected()
	assert.False(t, ok)
	assert.False(t, f.repo.Dirty())
}

func TestSaveScenarioAndReload(t *testing.T) {
	f := newFixture(t)
	note, err := f.repo.CreateNote()
	require.NoError(t, err)

	require.NoError(t, f.repo.EditTitle("Shopping"))
	require.NoError(t, f.repo.EditContent("milk, eggs"))
	require.NoError(t, f.repo.SaveSelected())

	fresh := New(f.adapter)
	require.True(t, fresh.Reload().Clean())
	notes := fresh.Notes()
	require.Len(t, notes, 1)
	loaded := notes[0]
	assert.Equal(t, note.ID, loaded.ID)
	assert.Equal(t, "Shopping", loaded.Title)
	assert.Equal(t, "milk, eggs", loaded.Content)
	require.NotNil(t, loaded.LastSaved)
	assert.True(t, loaded.LastSaved.Equal(loaded.LastModified))
	assert.True(t, loaded.LastModified.After(note.LastModified))
	assert.False(t, fresh.Dirty())
}

func TestSaveWithoutSelectionIsNoop(t *testing.T) {
	f := newFixture(t)
	f.kv.fail = true

	assert.NoError(t, f.repo.SaveSelected())
}

func TestSaveWriteFailureKeepsDirty(t *testing.T) {
	f := newFixture(t)
	note, _ := f.repo.CreateNote()
	require.NoError(t, f.repo.EditContent("precious"))
	f.kv.fail = true

	err := f.repo.SaveSelected()

	assert.ErrorIs(t, err, store.ErrWriteFailure)
	assert.True(t, f.repo.Dirty())
	sel, _ := f.repo.Selected()
	assert.Nil(t, sel.LastSaved)
	assert.Empty(t, sel.Content)
	assert.True(t, sel.LastModified.Equal(note.LastModified))
	_, content := f.repo.Working()
	assert.Equal(t, "precious", content)
}

func TestSelectNoteClean(t *testing.T) {
	f := newFixture(t)
	a, _ := f.repo.CreateNote()
	require.NoError(t, f.repo.EditTitle("A title"))
	require.NoError(t, f.repo.SaveSelected())
	b, _ := f.repo.CreateNote()

	switched, err := f.repo.SelectNote(a.ID)
	require.NoError(t, err)
	assert.True(t, switched)

	sel, _ := f.repo.Selected()
	assert.Equal(t, a.ID, sel.ID)
	title, _ := f.repo.Working()
	assert.Equal(t, "A title", title)
	_, pending := f.repo.Pending()
	assert.False(t, pending)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestSelectNoteUnknown(t *testing.T) {
	f := newFixture(t)

	_, err := f.repo.SelectNote("nope")

	assert.ErrorIs(t, err, store.ErrNoteNotFound)
}

func TestSelectSameNoteWhileDirty(t *testing.T) {
	f := newFixture(t)
	a, _ := f.repo.CreateNote()
	require.NoError(t, f.repo.EditContent("x"))

	switched, err := f.repo.SelectNote(a.ID)

	require.NoError(t, err)
	assert.True(t, switched)
	assert.True(t, f.repo.Dirty())
	_, pending := f.repo.Pending()
	assert.False(t, pending)
}

func TestSwitchScenario(t *testing.T) {
	f := newFixture(t)
	b, _ := f.repo.CreateNote()
	a, _ := f.repo.CreateNote()
	require.NoError(t, f.repo.EditContent("half-written"))

	switched, err := f.repo.SelectNote(b.ID)
	require.NoError(t, err)
	assert.False(t, switched)

	req, ok := f.repo.Pending()
	require.True(t, ok)
	assert.Equal(t, confirm.IntentSwitch, req.Intent)
	assert.Equal(t, b.ID, req.Target.ID)

	// selection and working copy untouched while pending
	sel, _ := f.repo.Selected()
	assert.Equal(t, a.ID, sel.ID)
	_, content := f.repo.Working()
	assert.Equal(t, "half-written", content)

	f.repo.Cancel()
	sel, _ = f.repo.Selected()
	assert.Equal(t, a.ID, sel.ID)
	_, content = f.repo.Working()
	assert.Equal(t, "half-written", content)
	assert.True(t, f.repo.Dirty())

	_, _ = f.repo.SelectNote(b.ID)
	require.NoError(t, f.repo.Confirm())

	sel, _ = f.repo.Selected()
	assert.Equal(t, b.ID, sel.ID)
	assert.False(t, f.repo.Dirty())
	_, pending := f.repo.Pending()
	assert.False(t, pending)

	for _, n := range f.stored(t) {
		assert.NotEqual(t, "half-written", n.Content, "discarded edits must not be persisted")
	}
}

func TestRequestDeleteAlwaysConfirms(t *testing.T) {
	f := newFixture(t)
	a, _ := f.repo.CreateNote()

	require.NoError(t, f.repo.RequestDelete(a.ID))

	req, ok := f.repo.Pending()
	require.True(t, ok)
	assert.Equal(t, confirm.IntentDelete, req.Intent)
	assert.Equal(t, a.ID, req.Target.ID)
	assert.Len(t, f.repo.Notes(), 1)
}

func TestRequestDeleteUnknown(t *testing.T) {
	f := newFixture(t)

	assert.ErrorIs(t, f.repo.RequestDelete("ghost"), store.ErrNoteNotFound)
}

func TestConfirmDeleteSelected(t *testing.T) {
	f := newFixture(t)
	keep, _ := f.repo.CreateNote()
	doomed, _ := f.repo.CreateNote()
	require.NoError(t, f.repo.EditContent("unsaved"))

	require.NoError(t, f.repo.RequestDelete(doomed.ID))
	require.NoError(t, f.repo.Confirm())

	notes := f.repo.Notes()
	require.Len(t, notes, 1)
	assert.Equal(t, keep.ID, notes[0].ID)
	stored := f.stored(t)
	require.Len(t, stored, 1)
	assert.Equal(t, keep.ID, stored[0].ID)

	_, ok := f.repo.Selected()
	assert.False(t, ok)
	title, content := f.repo.Working()
	assert.Empty(t, title)
	assert.Empty(t, content)
	assert.False(t, f.repo.Dirty())
}

func TestConfirmDeleteOther(t *testing.T) {
	f := newFixture(t)
	other, _ := f.repo.CreateNote()
	current, _ := f.repo.CreateNote()
	require.NoError(t, f.repo.EditContent("keep me"))

	require.NoError(t, f.repo.RequestDelete(other.ID))
	require.NoError(t, f.repo.Confirm())

	sel, ok := f.repo.Selected()
	require.True(t, ok)
	assert.Equal(t, current.ID, sel.ID)
	assert.True(t, f.repo.Dirty())
	_, content := f.repo.Working()
	assert.Equal(t, "keep me", content)
}

func TestCancelDeleteLeavesState(t *testing.T) {
	f := newFixture(t)
	a, _ := f.repo.CreateNote()
	require.NoError(t, f.repo.EditTitle("draft title"))
	before := f.repo.Notes()

	require.NoError(t, f.repo.RequestDelete(a.ID))
	f.repo.Cancel()

	assert.Equal(t, before, f.repo.Notes())
	sel, _ := f.repo.Selected()
	assert.Equal(t, a.ID, sel.ID)
	title, _ := f.repo.Working()
	assert.Equal(t, "draft title", title)
	assert.True(t, f.repo.Dirty())
	assert.Len(t, f.stored(t), 1)
}

func TestConfirmDeleteWriteFailure(t *testing.T) {
	f := newFixture(t)
	a, _ := f.repo.CreateNote()
	require.NoError(t, f.repo.RequestDelete(a.ID))
	f.kv.fail = true

	err := f.repo.Confirm()

	assert.ErrorIs(t, err, store.ErrWriteFailure)
	assert.Len(t, f.repo.Notes(), 1)
	_, ok := f.repo.Selected()
	assert.True(t, ok)
	_, pending := f.repo.Pending()
	assert.False(t, pending)
}

func TestConfirmWithoutPending(t *testing.T) {
	f := newFixture(t)

	assert.ErrorIs(t, f.repo.Confirm(), ErrNoPending)
}

func TestLastRequestWins(t *testing.T) {
	f := newFixture(t)
	a, _ := f.repo.CreateNote()
	b, _ := f.repo.CreateNote()

	require.NoError(t, f.repo.RequestDelete(a.ID))
	require.NoError(t, f.repo.RequestDelete(b.ID))
	require.NoError(t, f.repo.Confirm())

	notes := f.repo.Notes()
	require.Len(t, notes, 1)
	assert.Equal(t, a.ID, notes[0].ID)
}

func TestLastModifiedMonotonic(t *testing.T) {
	f := newFixture(t)
	_, _ = f.repo.CreateNote()
	require.NoError(t, f.repo.SaveSelected())
	first, _ := f.repo.Selected()

	f.clock.t = f.clock.t.Add(-time.Hour)
	require.NoError(t, f.repo.EditContent("later edit"))
	require.NoError(t, f.repo.SaveSelected())
	second, _ := f.repo.Selected()

	assert.False(t, second.LastModified.Before(first.LastModified))
}

func TestReloadClearsVanishedSelection(t *testing.T) {
	f := newFixture(t)
	a, _ := f.repo.CreateNote()
	require.NoError(t, f.adapter.DeleteOne(a.ID))

	f.repo.Reload()

	_, ok := f.repo.Selected()
	assert.False(t, ok)
}

func TestReloadUnavailable(t *testing.T) {
	repo := New(store.NewAdapter(nil))

	report := repo.Reload()

	assert.True(t, report.Unavailable)
	assert.Empty(t, repo.Notes())
	_, err := repo.CreateNote()
	assert.ErrorIs(t, err, store.ErrStorageUnavailable)
}

func TestImport(t *testing.T) {
	f := newFixture(t)
	existing, _ := f.repo.CreateNote()

	added, err := f.repo.Import([]models.Note{
		existing,
		{ID: "imported-1", Title: "One", LastModified: time.UnixMilli(10)},
		{ID: "imported-1", Title: "Dup", LastModified: time.UnixMilli(10)},
		{ID: "", Title: "No id"},
	})

	require.NoError(t, err)
	assert.Equal(t, 1, added)
	assert.Len(t, f.stored(t), 2)

	added, err = f.repo.Import([]models.Note{existing})
	require.NoError(t, err)
	assert.Zero(t, added)
}

func ExampleRepository_FilteredView() {
	repo := New(store.NewAdapter(store.NewMemory()))
	repo.Reload()
	for _, title := range []string{"groceries", "Shopping list", "shopping"} {
		_, _ = repo.CreateNote()
		_ = repo.EditTitle(title)
		_ = repo.SaveSelected()
	}

	for n := range repo.FilteredView("Shopping") {
		fmt.Println(n.Title)
	}
	// Output:
	// shopping
	// Shopping list
}
