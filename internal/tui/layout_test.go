// ABOUTME: Tests for the pane layout policy.
// ABOUTME: Covers wide and compact terminals with and without a selection.

package tui

import "testing"

func TestComputeLayoutWide(t *testing.T) {
	l := ComputeLayout(120, 40, true, false)

	if l.Compact {
		t.Error("expected wide layout")
	}
	if !l.ShowSidebar || !l.ShowEditor {
		t.Errorf("expected both panes, got %+v", l)
	}
	if l.SidebarWidth != 40 {
		t.Errorf("expected sidebar width 40, got %d", l.SidebarWidth)
	}
	if l.SidebarWidth+l.EditorWidth != 120 {
		t.Errorf("expected panes to fill width, got %d+%d", l.SidebarWidth, l.EditorWidth)
	}
}

func TestComputeLayoutSidebarClamp(t *testing.T) {
	if l := ComputeLayout(81, 40, false, false); l.SidebarWidth != minSidebarWidth {
		t.Errorf("expected min sidebar width, got %d", l.SidebarWidth)
	}
	if l := ComputeLayout(300, 40, false, false); l.SidebarWidth != maxSidebarWidth {
		t.Errorf("expected max sidebar width, got %d", l.SidebarWidth)
	}
}

func TestComputeLayoutCompact(t *testing.T) {
	tests := []struct {
		name         string
		hasSelection bool
		browsing     bool
		wantSidebar  bool
		wantEditor   bool
	}{
		{"no selection", false, false, true, false},
		{"selection hides sidebar", true, false, false, true},
		{"browsing with selection", true, true, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := ComputeLayout(60, 30, tt.hasSelection, tt.browsing)
			if !l.Compact {
				t.Fatal("expected compact layout")
			}
			if l.ShowSidebar != tt.wantSidebar || l.ShowEditor != tt.wantEditor {
				t.Errorf("got sidebar=%v editor=%v", l.ShowSidebar, l.ShowEditor)
			}
		})
	}
}

func TestComputeLayoutMinHeight(t *testing.T) {
	if l := ComputeLayout(100, 5, false, false); l.Height != minContentH {
		t.Errorf("expected min height %d, got %d", minContentH, l.Height)
	}
}

func TestIsCompactBoundary(t *testing.T) {
	if !IsCompact(79) {
		t.Error("expected 79 to be compact")
	}
	if IsCompact(80) {
		t.Error("expected 80 to be wide")
	}
}
