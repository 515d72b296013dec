// ABOUTME: Bubbletea model for the interactive note browser and editor.
// ABOUTME: Routes every intent through the repository; the dialog mirrors its pending confirmation.

package tui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/harper/listahan/internal/confirm"
	"github.com/harper/listahan/internal/logger"
	"github.com/harper/listahan/internal/models"
	"github.com/harper/listahan/internal/repository"
	"github.com/harper/listahan/internal/store"
	"github.com/harper/listahan/internal/ui"
)

type focusArea int

const (
	focusList focusArea = iota
	focusSearch
	focusTitle
	focusEditor
)

const (
	buttonConfirm = 0
	buttonCancel  = 1
)

const dateLayout = "2006-01-02 15:04"

type Model struct {
	repo *repository.Repository
	log  logger.Logger

	width  int
	height int
	layout Layout

	focus    focusArea
	browsing bool
	cursor   int

	search textinput.Model
	title  textinput.Model
	editor textarea.Model

	dialogFocus int

	help     help.Model
	keys     KeyMap
	showHelp bool

	status string
}

// New builds the model over an already loaded repository. report describes that load.
func New(repo *repository.Repository, log logger.Logger, report store.LoadReport) Model {
	if log == nil {
		log = logger.Nop()
	}

	search := textinput.New()
	search.Placeholder = "Search notes..."
	search.Prompt = "/ "
	search.SetValue(repo.Query())

	title := textinput.New()
	title.Placeholder = "Title"
	title.Prompt = ""
	title.CharLimit = 0

	ta := textarea.New()
	ta.Placeholder = "Write your note..."
	ta.ShowLineNumbers = false
	ta.Prompt = ""
	ta.CharLimit = 0

	h := help.New()
	h.ShowAll = false

	m := Model{
		repo:        repo,
		log:         log,
		focus:       focusList,
		browsing:    true,
		search:      search,
		title:       title,
		editor:      ta,
		dialogFocus: buttonCancel,
		help:        h,
		keys:        DefaultKeyMap(),
		status:      loadStatus(report),
	}
	m.syncWorking()
	m.relayout()
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := m.handle(msg)
	m.relayout()
	return m, cmd
}

func (m *Model) handle(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Force) {
			return tea.Quit
		}
		if _, ok := m.repo.Pending(); ok {
			m.updateDialog(msg)
			return nil
		}
		if key.Matches(msg, m.keys.Save) {
			m.save()
			return nil
		}

		switch m.focus {
		case focusSearch:
			return m.updateSearch(msg)
		case focusTitle, focusEditor:
			return m.updateEditing(msg)
		default:
			return m.updateList(msg)
		}
	}
	return nil
}

// ---------- key handling ----------

func (m *Model) updateDialog(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		m.confirm()
	case key.Matches(msg, m.keys.Cancel):
		m.cancel()
	case key.Matches(msg, m.keys.Toggle):
		m.dialogFocus = 1 - m.dialogFocus
	case key.Matches(msg, m.keys.Accept):
		if m.dialogFocus == buttonConfirm {
			m.confirm()
		} else {
			m.cancel()
		}
	}
}

func (m *Model) updateList(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp

	case key.Matches(msg, m.keys.Up):
		m.cursor = max(m.cursor-1, 0)

	case key.Matches(msg, m.keys.Down):
		m.cursor = min(m.cursor+1, max(len(m.visible())-1, 0))

	case key.Matches(msg, m.keys.Open):
		if n, ok := m.atCursor(); ok {
			return m.open(n.ID)
		}

	case key.Matches(msg, m.keys.New):
		note, err := m.repo.CreateNote()
		if err != nil {
			m.status = "create error: " + err.Error()
			return nil
		}
		m.syncWorking()
		m.cursorTo(note.ID)
		m.status = "Created note " + note.ShortID()
		return m.focusOn(focusTitle)

	case key.Matches(msg, m.keys.Delete):
		if n, ok := m.atCursor(); ok {
			if err := m.repo.RequestDelete(n.ID); err != nil {
				m.status = "delete error: " + err.Error()
				return nil
			}
			m.dialogFocus = buttonCancel
		}

	case key.Matches(msg, m.keys.Search):
		return m.focusOn(focusSearch)

	case key.Matches(msg, m.keys.Tab):
		if _, ok := m.repo.Selected(); ok {
			return m.focusOn(focusTitle)
		}
		return m.focusOn(focusSearch)
	}
	return nil
}

func (m *Model) updateSearch(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Open), key.Matches(msg, m.keys.Tab):
		return m.focusOn(focusList)
	}

	var cmd tea.Cmd
	before := m.search.Value()
	m.search, cmd = m.search.Update(msg)
	if after := m.search.Value(); after != before {
		m.repo.SetQuery(after)
		m.cursor = 0
	}
	return cmd
}

func (m *Model) updateEditing(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Back):
		return m.focusOn(focusList)
	case key.Matches(msg, m.keys.Tab):
		if m.focus == focusTitle {
			return m.focusOn(focusEditor)
		}
		return m.focusOn(focusList)
	}

	var cmd tea.Cmd
	if m.focus == focusTitle {
		before := m.title.Value()
		m.title, cmd = m.title.Update(msg)
		if after := m.title.Value(); after != before {
			m.report(m.repo.EditTitle(after))
		}
		return cmd
	}

	before := m.editor.Value()
	m.editor, cmd = m.editor.Update(msg)
	if after := m.editor.Value(); after != before {
		m.report(m.repo.EditContent(after))
	}
	return cmd
}

// ---------- actions ----------

func (m *Model) open(id string) tea.Cmd {
	switched, err := m.repo.SelectNote(id)
	if err != nil {
		m.status = "open error: " + err.Error()
		return nil
	}
	if !switched {
		m.dialogFocus = buttonCancel
		return nil
	}
	m.syncWorking()
	return m.focusOn(focusEditor)
}

func (m *Model) save() {
	sel, ok := m.repo.Selected()
	if !ok {
		return
	}
	if err := m.repo.SaveSelected(); err != nil {
		m.status = "save error: " + err.Error()
		m.log.Error("save failed", logger.String("id", sel.ID), logger.Error(err))
		return
	}
	m.cursorTo(sel.ID)
	m.status = "Saved"
}

func (m *Model) confirm() {
	req, ok := m.repo.Pending()
	if !ok {
		return
	}
	if err := m.repo.Confirm(); err != nil {
		m.status = fmt.Sprintf("%s error: %v", req.Intent, err)
		m.log.Error("confirm failed", logger.String("intent", req.Intent.String()), logger.Error(err))
		return
	}

	switch req.Intent {
	case confirm.IntentDelete:
		m.status = "Deleted: " + req.Target.Title
		m.syncWorking()
		m.clampCursor()
		if _, ok := m.repo.Selected(); !ok {
			m.focusOn(focusList)
		}
	case confirm.IntentSwitch:
		m.status = "Discarded changes"
		m.syncWorking()
		m.cursorTo(req.Target.ID)
		m.focusOn(focusEditor)
	}
}

func (m *Model) cancel() {
	m.repo.Cancel()
	m.status = "Cancelled"
}

func (m *Model) report(err error) {
	if err != nil {
		m.status = "edit error: " + err.Error()
	}
}

// ---------- helpers ----------

func (m *Model) focusOn(f focusArea) tea.Cmd {
	m.focus = f
	m.search.Blur()
	m.title.Blur()
	m.editor.Blur()

	switch f {
	case focusSearch:
		return m.search.Focus()
	case focusTitle:
		m.browsing = false
		return m.title.Focus()
	case focusEditor:
		m.browsing = false
		return m.editor.Focus()
	default:
		m.browsing = true
		return nil
	}
}

// syncWorking copies the repository working copy into the input widgets.
func (m *Model) syncWorking() {
	title, content := m.repo.Working()
	m.title.SetValue(title)
	m.editor.SetValue(content)
}

func (m *Model) relayout() {
	_, hasSelection := m.repo.Selected()
	m.layout = ComputeLayout(m.width, m.height, hasSelection, m.browsing)

	m.search.Width = max(m.layout.SidebarWidth-8, 1)
	m.title.Width = max(m.layout.EditorWidth-6, 1)
	m.editor.SetWidth(max(m.layout.EditorWidth-4, 1))
	m.editor.SetHeight(max(m.layout.Height-6, 3))
	m.clampCursor()
}

func (m Model) visible() []models.Note {
	return slices.Collect(m.repo.View())
}

func (m Model) atCursor() (models.Note, bool) {
	notes := m.visible()
	if m.cursor < 0 || m.cursor >= len(notes) {
		return models.Note{}, false
	}
	return notes[m.cursor], true
}

func (m *Model) cursorTo(id string) {
	if i := slices.IndexFunc(m.visible(), func(n models.Note) bool { return n.ID == id }); i >= 0 {
		m.cursor = i
	}
}

func (m *Model) clampCursor() {
	m.cursor = max(0, min(m.cursor, len(m.visible())-1))
}

func loadStatus(r store.LoadReport) string {
	switch {
	case r.Unavailable:
		return "Storage unavailable: changes will not be kept"
	case r.Corrupt:
		return "Stored notes were unreadable and have been reset"
	case r.Dropped > 0:
		return fmt.Sprintf("Skipped %d malformed note(s)", r.Dropped)
	default:
		return ""
	}
}

// ---------- rendering ----------

var (
	border = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240"))

	titleStyle   = lipgloss.NewStyle().Bold(true)
	blurStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	focusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	dirtyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	dangerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("231")).Background(lipgloss.Color("160")).Padding(0, 1)
	buttonStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Background(lipgloss.Color("238")).Padding(0, 1)
	focusedStyle = lipgloss.NewStyle().Underline(true).Bold(true)
	modalStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("205")).Padding(1, 2)
)

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "loading..."
	}

	if req, ok := m.repo.Pending(); ok {
		return m.renderDialog(req)
	}

	var panes []string
	if m.layout.ShowSidebar {
		panes = append(panes, m.renderSidebar())
	}
	if m.layout.ShowEditor {
		panes = append(panes, m.renderEditor())
	}

	root := lipgloss.JoinHorizontal(lipgloss.Top, panes...)
	return lipgloss.JoinVertical(lipgloss.Left, root, m.renderStatus(), m.renderHelp())
}

func (m Model) renderSidebar() string {
	header := titleStyle.Render("listahan") + " " + blurStyle.Render(fmt.Sprintf("• %d notes", len(m.repo.Notes())))
	if m.focus == focusList {
		header = titleStyle.Render("listahan") + " " + focusStyle.Render(fmt.Sprintf("• %d notes", len(m.repo.Notes())))
	}

	innerW := max(m.layout.SidebarWidth-4, 1)
	rows := max((m.layout.Height-6)/2, 1)

	notes := m.visible()
	sel, _ := m.repo.Selected()
	start := max(0, m.cursor-rows+1)
	end := min(len(notes), start+rows)

	var sb strings.Builder
	sb.WriteString(header + "\n")
	sb.WriteString(m.search.View() + "\n\n")
	if len(notes) == 0 {
		sb.WriteString(blurStyle.Render("No notes. Press 'n' to create one."))
	}
	for i := start; i < end; i++ {
		n := notes[i]
		marker := "  "
		if i == m.cursor {
			marker = focusStyle.Render("› ")
		}
		name := truncate(n.Title, innerW-4)
		if n.ID == sel.ID {
			name = titleStyle.Render(name)
			if m.repo.Dirty() {
				name += dirtyStyle.Render(" •")
			}
		}
		sb.WriteString(marker + name + "\n")
		sb.WriteString("  " + blurStyle.Render(n.LastModified.Format(dateLayout)) + "\n")
	}

	box := border.Width(max(m.layout.SidebarWidth-2, 1)).Height(m.layout.Height - 2).Padding(0, 1)
	if m.focus == focusList || m.focus == focusSearch {
		box = box.BorderForeground(lipgloss.Color("205"))
	}
	return box.Render(sb.String())
}

func (m Model) renderEditor() string {
	box := border.Width(max(m.layout.EditorWidth-2, 1)).Height(m.layout.Height - 2).Padding(0, 1)
	if m.focus == focusTitle || m.focus == focusEditor {
		box = box.BorderForeground(lipgloss.Color("205"))
	}

	sel, ok := m.repo.Selected()
	if !ok {
		return box.Render(blurStyle.Render("Select a note or press 'n' to create one."))
	}

	body := m.editor.View()
	if m.focus == focusList && !m.repo.Dirty() {
		body = renderPreview(sel.Content)
	}
	return box.Render(m.title.View() + "\n" + m.renderMeta(sel) + "\n\n" + body)
}

// renderPreview shows stored content as markdown while browsing.
func renderPreview(content string) string {
	if strings.TrimSpace(content) == "" {
		return blurStyle.Render("Empty note. Press enter to edit.")
	}
	out, _ := ui.FormatNoteContent(content)
	return strings.Trim(out, "\n")
}

func (m Model) renderMeta(sel models.Note) string {
	meta := blurStyle.Render("Modified " + sel.LastModified.Format(dateLayout) + " · Saved " + ui.SavedLabel(sel))
	if m.repo.Dirty() {
		meta += " " + dirtyStyle.Render("· unsaved changes")
	}
	return meta
}

func (m Model) renderStatus() string {
	return statusStyle.Padding(0, 1).Render(m.status)
}

func (m Model) renderHelp() string {
	var keys help.KeyMap = m.keys
	switch {
	case m.hasPending():
		keys = dialogKeyMap{KeyMap: m.keys}
	case m.focus == focusTitle || m.focus == focusEditor:
		keys = editKeyMap{KeyMap: m.keys}
	}
	return lipgloss.NewStyle().Padding(0, 1).Render(m.help.View(keys))
}

func (m Model) renderDialog(req confirm.Request) string {
	d := req.Dialog()

	confirmStyle := buttonStyle
	if req.Intent == confirm.IntentDelete {
		confirmStyle = dangerStyle
	}
	cancelStyle := buttonStyle
	if m.dialogFocus == buttonConfirm {
		confirmStyle = confirmStyle.Inherit(focusedStyle)
	} else {
		cancelStyle = cancelStyle.Inherit(focusedStyle)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(d.Title))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Width(min(50, max(m.width-8, 10))).Render(d.Message))
	b.WriteString("\n\n")
	b.WriteString(confirmStyle.Render(d.ConfirmText))
	b.WriteString("  ")
	b.WriteString(cancelStyle.Render(d.CancelText))
	b.WriteString("\n\n")
	b.WriteString(m.renderHelp())

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modalStyle.Render(b.String()))
}

func (m Model) hasPending() bool {
	_, ok := m.repo.Pending()
	return ok
}

func truncate(s string, width int) string {
	if width <= 1 || lipgloss.Width(s) <= width {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && lipgloss.Width(string(r))+1 > width {
		r = r[:len(r)-1]
	}
	return string(r) + "…"
}
