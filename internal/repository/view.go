// ABOUTME: Filtered, ranked view over the note collection and id lookups.
// ABOUTME: Ranking puts exact title matches first, then title matches, then content matches.

package repository

import (
	"errors"
	"fmt"
	"iter"
	"slices"
	"strings"

	"github.com/harper/listahan/internal/models"
	"github.com/harper/listahan/internal/store"
)

var (
	ErrPrefixTooShort  = errors.New("prefix must be at least 6 characters")
	ErrAmbiguousPrefix = errors.New("prefix matches multiple notes")
)

const minPrefixLen = 6

// Match tiers, best first.
const (
	tierExactTitle = iota
	tierTitle
	tierContent
)

// FilteredView returns notes whose title or content contains query, ignoring case. An empty
// query matches everything and orders purely by recency. Otherwise notes are ranked by tier
// (exact title, title substring, content only) and by LastModified descending within a tier;
// equal timestamps keep collection order.
//
// The collection is captured when FilteredView is called. Filtering and sorting happen when the
// sequence is ranged over, and every range starts from the beginning.
func (r *Repository) FilteredView(query string) iter.Seq[models.Note] {
	snapshot := slices.Clone(r.notes)
	return func(yield func(models.Note) bool) {
		for _, n := range rank(snapshot, query) {
			if !yield(n) {
				return
			}
		}
	}
}

// View is FilteredView over the session query.
func (r *Repository) View() iter.Seq[models.Note] {
	return r.FilteredView(r.query)
}

type ranked struct {
	note models.Note
	tier int
}

func rank(notes []models.Note, query string) []models.Note {
	q := strings.ToLower(query)

	matches := make([]ranked, 0, len(notes))
	for _, n := range notes {
		tier, ok := matchTier(n, q)
		if ok {
			matches = append(matches, ranked{note: n, tier: tier})
		}
	}

	slices.SortStableFunc(matches, func(a, b ranked) int {
		if a.tier != b.tier {
			return a.tier - b.tier
		}
		return b.note.LastModified.Compare(a.note.LastModified)
	})

	out := make([]models.Note, len(matches))
	for i, m := range matches {
		out[i] = m.note
	}
	return out
}

func matchTier(n models.Note, q string) (int, bool) {
	if q == "" {
		return tierTitle, true
	}
	title := strings.ToLower(n.Title)
	switch {
	case strings.Contains(title, q):
		// Padding around the title does not stop an exact match, but the query itself must
		// still occur in the title.
		if strings.TrimSpace(title) == strings.TrimSpace(q) {
			return tierExactTitle, true
		}
		return tierTitle, true
	case strings.Contains(strings.ToLower(n.Content), q):
		return tierContent, true
	default:
		return 0, false
	}
}

// Find resolves a full id or a unique id prefix of at least six characters.
func (r *Repository) Find(idOrPrefix string) (models.Note, error) {
	if i := r.indexOf(idOrPrefix); i >= 0 {
		return r.notes[i], nil
	}
	if len(idOrPrefix) < minPrefixLen {
		return models.Note{}, ErrPrefixTooShort
	}

	var matches []models.Note
	for _, n := range r.notes {
		if strings.HasPrefix(n.ID, idOrPrefix) {
			matches = append(matches, n)
		}
	}
	if len(matches) == 0 {
		return models.Note{}, store.ErrNoteNotFound
	}
	if len(matches) > 1 {
		return models.Note{}, fmt.Errorf("%w: %d matches", ErrAmbiguousPrefix, len(matches))
	}
	return matches[0], nil
}
