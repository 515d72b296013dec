// ABOUTME: Pane layout policy for the TUI.
// ABOUTME: Pure function of terminal size and selection state; holds no repository state.

package tui

// CompactWidth is the terminal width below which only one pane is shown.
const CompactWidth = 80

const (
	minSidebarWidth = 28
	maxSidebarWidth = 44
	minContentH     = 10
	chromeH         = 3
)

// Layout describes which panes to draw and how large.
type Layout struct {
	Compact      bool
	ShowSidebar  bool
	ShowEditor   bool
	SidebarWidth int
	EditorWidth  int
	Height       int
}

// IsCompact reports whether width calls for the single-pane layout.
func IsCompact(width int) bool {
	return width < CompactWidth
}

// ComputeLayout decides pane visibility. In compact mode the sidebar is hidden while a note
// is selected unless the user is browsing the list.
func ComputeLayout(width, height int, hasSelection, browsing bool) Layout {
	l := Layout{
		Compact: IsCompact(width),
		Height:  max(minContentH, height-chromeH),
	}

	if !l.Compact {
		l.ShowSidebar = true
		l.ShowEditor = true
		l.SidebarWidth = max(minSidebarWidth, min(maxSidebarWidth, width/3))
		l.EditorWidth = max(20, width-l.SidebarWidth)
		return l
	}

	if hasSelection && !browsing {
		l.ShowEditor = true
		l.EditorWidth = width
		return l
	}
	l.ShowSidebar = true
	l.SidebarWidth = width
	return l
}
