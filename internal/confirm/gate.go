// ABOUTME: Single-slot confirmation gate for discarding and destructive actions.
// ABOUTME: Holds at most one pending request; a newer request replaces the older one.

package confirm

import "github.com/harper/listahan/internal/models"

// Intent is the action waiting on the user's decision.
type Intent int

const (
	// IntentSwitch discards unsaved edits and switches selection to the target.
	IntentSwitch Intent = iota + 1
	// IntentDelete removes the target note.
	IntentDelete
)

func (i Intent) String() string {
	switch i {
	case IntentSwitch:
		return "switch"
	case IntentDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// Request is a pending decision about one note.
type Request struct {
	Target models.Note
	Intent Intent
}

// Dialog is what a confirmation view shows for a request.
type Dialog struct {
	Title       string
	Message     string
	ConfirmText string
	CancelText  string
}

// Dialog returns the texts for presenting r.
func (r Request) Dialog() Dialog {
	if r.Intent == IntentDelete {
		return Dialog{
			Title:       "Delete Note",
			Message:     "Are you sure you want to delete this note? This action cannot be undone.",
			ConfirmText: "Delete",
			CancelText:  "Cancel",
		}
	}
	return Dialog{
		Title:       "Unsaved Changes",
		Message:     "You have unsaved changes. Do you want to discard them?",
		ConfirmText: "Discard",
		CancelText:  "Cancel",
	}
}

// Gate is either idle or holding one pending request. The zero value is idle.
type Gate struct {
	pending *Request
}

// Request moves the gate to pending. Last request wins.
func (g *Gate) Request(r Request) {
	g.pending = &r
}

// Pending returns the held request, if any.
func (g *Gate) Pending() (Request, bool) {
	if g.pending == nil {
		return Request{}, false
	}
	return *g.pending, true
}

// Resolve takes the pending request and returns the gate to idle.
func (g *Gate) Resolve() (Request, bool) {
	r, ok := g.Pending()
	g.pending = nil
	return r, ok
}

// Cancel drops any pending request.
func (g *Gate) Cancel() {
	g.pending = nil
}

// Idle reports whether nothing is pending.
func (g *Gate) Idle() bool {
	return g.pending == nil
}
