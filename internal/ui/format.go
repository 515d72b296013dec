// ABOUTME: Terminal UI formatting for listahan output.
// ABOUTME: Uses glamour for note content and fatih/color for styling.

package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/fatih/color"
	"github.com/harper/listahan/internal/confirm"
	"github.com/harper/listahan/internal/models"
	"github.com/harper/listahan/internal/store"
)

const timeLayout = "2006-01-02 15:04"

var (
	faint  = color.New(color.Faint).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
)

func FormatNoteListItem(note models.Note) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("  %s  %s\n", faint(note.ShortID()), bold(displayTitle(note.Title))))
	sb.WriteString(fmt.Sprintf("         %s %s\n",
		faint("Modified:"),
		faint(note.LastModified.Format(timeLayout))))

	return sb.String()
}

func FormatNoteContent(content string) (string, error) {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		// Fallback to raw content if renderer fails
		return content, nil //nolint:nilerr // Intentional fallback
	}

	out, err := renderer.Render(content)
	if err != nil {
		return content, nil //nolint:nilerr // Intentional fallback
	}
	return out, nil
}

func FormatNoteHeader(note models.Note) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%s\n", bold(displayTitle(note.Title))))
	sb.WriteString(fmt.Sprintf("%s %s\n", faint("ID:"), faint(note.ID)))
	sb.WriteString(fmt.Sprintf("%s %s\n", faint("Modified:"), faint(note.LastModified.Format(timeLayout))))
	sb.WriteString(fmt.Sprintf("%s %s\n", faint("Saved:"), faint(SavedLabel(note))))

	sb.WriteString(Separator())
	return sb.String()
}

// SavedLabel describes when a note was last explicitly saved.
func SavedLabel(note models.Note) string {
	if !note.Saved() {
		return "never"
	}
	return note.LastSaved.Format(timeLayout)
}

// FormatDialog renders a confirmation prompt for line-oriented input.
func FormatDialog(d confirm.Dialog, subject string) string {
	return fmt.Sprintf("%s\n%s %s\n%s ",
		bold(d.Title),
		d.Message,
		cyan(fmt.Sprintf("(%q)", subject)),
		faint(fmt.Sprintf("[%s: y / %s: N]", d.ConfirmText, d.CancelText)))
}

// FormatLoadReport describes recovered storage conditions, or "" when the load was clean.
func FormatLoadReport(r store.LoadReport) string {
	var parts []string
	if r.Unavailable {
		parts = append(parts, "storage unavailable, starting empty")
	}
	if r.Corrupt {
		parts = append(parts, "stored notes were corrupt and have been reset")
	}
	if r.Dropped > 0 {
		msg := fmt.Sprintf("skipped %d malformed note(s)", r.Dropped)
		if r.Compacted {
			msg += " and compacted storage"
		}
		parts = append(parts, msg)
	}
	if len(parts) == 0 {
		return ""
	}
	return Warning(strings.Join(parts, "; "))
}

func Separator() string {
	return faint(strings.Repeat("─", 50)) + "\n"
}

func Success(msg string) string {
	return color.New(color.FgGreen).Sprint("✓ ") + msg
}

func Error(msg string) string {
	return color.New(color.FgRed).Sprint("✗ ") + msg
}

func Warning(msg string) string {
	return yellow("! ") + msg
}

func displayTitle(title string) string {
	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}
