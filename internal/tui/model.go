// Package tui is the terminal front end: a single Bubble Tea screen listing
// the projects of the target document with sort, search, selection,
// deletion and save.
package tui

import (
	"context"
	"fmt"

	"claude-config-editor/internal/app"
	"claude-config-editor/internal/db"
	"claude-config-editor/internal/document"
	"claude-config-editor/internal/theme"
	"claude-config-editor/internal/view"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Model is the Bubble Tea model of the projects screen.
type Model struct {
	app    *app.App
	styles theme.Styles
	keys   KeyMap
	help   HelpModel
	footer help.Model
	search textinput.Model

	// copy writes to the system clipboard; tests replace it.
	copy func(string) error

	width  int
	height int
	err    error
	status string

	doc     *document.Document
	entries []view.Entry // document order, carries the selection
	summary view.Summary
	sort    view.SortState

	cursor        int
	offset        int
	searching     bool
	confirmDelete bool
	quitArmed     bool
	dirty         bool
	saving        bool
}

// ---------------------------------------------------------------------------
// Model constructor
// ---------------------------------------------------------------------------

// NewModel creates the projects screen. The sort order and search term are
// restored from the persisted UI state.
func NewModel(a *app.App) Model {
	styles := theme.DefaultStyles()
	keys := DefaultKeyMap()

	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "filter by path"
	ti.CharLimit = 256

	m := Model{
		app:    a,
		styles: styles,
		keys:   keys,
		help:   NewHelpModel(keys, styles),
		footer: help.New(),
		search: ti,
		copy:   clipboard.WriteAll,
		sort:   view.DefaultSort(),
	}

	if st := a.State(); st != nil {
		if k, err := view.ParseSortKey(st.SortKey); err == nil {
			m.sort.Key = k
		}
		if d, err := view.ParseDirection(st.SortDir); err == nil {
			m.sort.Dir = d
		}
		m.search.SetValue(st.Search)
	}
	return m
}

// ---------------------------------------------------------------------------
// tea.Model interface
// ---------------------------------------------------------------------------

// Init loads the document.
func (m Model) Init() tea.Cmd {
	return m.loadCmd()
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.footer.Width = msg.Width
		m.clampCursor()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case DocumentLoadedMsg:
		m.doc = msg.Doc
		m.entries = view.Derive(msg.Doc)
		m.summary = view.Summarize(msg.Doc)
		m.dirty = false
		m.err = nil
		m.status = fmt.Sprintf("Loaded %d projects from %s", len(m.entries), m.app.Store().Path())
		m.clampCursor()
		return m, nil

	case DocumentSavedMsg:
		m.saving = false
		m.dirty = false
		m.err = nil
		if msg.Result.BackedUp {
			m.status = fmt.Sprintf("Saved %s (backup: %s)", view.FormatSize(msg.Result.Bytes), msg.Result.BackupPath)
		} else {
			m.status = fmt.Sprintf("Saved %s", view.FormatSize(msg.Result.Bytes))
		}
		return m, nil

	case ErrorMsg:
		m.saving = false
		m.err = msg.Err
		return m, nil

	case StatusMsg:
		m.err = nil
		m.status = string(msg)
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// ctrl+c always quits.
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	// Any key dismisses the help overlay.
	if m.help.Visible() {
		m.help.Toggle()
		return m, nil
	}

	if m.confirmDelete {
		switch {
		case key.Matches(msg, m.keys.Confirm):
			m.confirmDelete = false
			m.deleteSelected()
		case key.Matches(msg, m.keys.Cancel):
			m.confirmDelete = false
			m.status = "Delete cancelled"
		}
		return m, nil
	}

	if m.searching {
		return m.handleSearchKey(msg)
	}

	if key.Matches(msg, m.keys.Quit) {
		if m.dirty && !m.quitArmed {
			m.quitArmed = true
			m.status = "Unsaved changes. Press q again to quit, w to save."
			return m, nil
		}
		return m, tea.Quit
	}
	m.quitArmed = false

	switch {
	case key.Matches(msg, m.keys.Help):
		m.help.Toggle()

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		m.clampCursor()

	case key.Matches(msg, m.keys.Down):
		m.cursor++
		m.clampCursor()

	case key.Matches(msg, m.keys.Toggle):
		if e, ok := m.current(); ok {
			view.Toggle(m.entries, e.Path)
		}

	case key.Matches(msg, m.keys.SortPath):
		m.setSort(view.SortPath)
	case key.Matches(msg, m.keys.SortHistory):
		m.setSort(view.SortHistory)
	case key.Matches(msg, m.keys.SortSize):
		m.setSort(view.SortSize)

	case key.Matches(msg, m.keys.Search):
		m.searching = true
		return m, m.search.Focus()

	case key.Matches(msg, m.keys.SelectAll):
		view.SelectAll(m.entries, m.search.Value())
		m.status = fmt.Sprintf("%d selected", len(view.SelectedPaths(m.entries)))

	case key.Matches(msg, m.keys.DeselectAll):
		view.DeselectAll(m.entries, m.search.Value())
		m.status = fmt.Sprintf("%d selected", len(view.SelectedPaths(m.entries)))

	case key.Matches(msg, m.keys.SelectTop):
		view.SelectLargest(m.entries, view.TopN)
		m.status = fmt.Sprintf("Selected the %d largest projects", len(view.SelectedPaths(m.entries)))

	case key.Matches(msg, m.keys.Delete):
		if n := len(view.SelectedPaths(m.entries)); n == 0 {
			m.status = "Nothing selected"
		} else {
			m.confirmDelete = true
		}

	case key.Matches(msg, m.keys.Save):
		return m, m.saveCmd()

	case key.Matches(msg, m.keys.Reload):
		return m, m.loadCmd()

	case key.Matches(msg, m.keys.Copy):
		return m, m.copyCmd()
	}
	return m, nil
}

// handleSearchKey edits the search term. The list filters as you type;
// enter keeps the term, esc clears it.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.searching = false
		m.search.Blur()
		m.persistState()
		return m, nil
	case tea.KeyEsc:
		m.searching = false
		m.search.Blur()
		m.search.SetValue("")
		m.cursor = 0
		m.clampCursor()
		m.persistState()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.cursor = 0
	m.clampCursor()
	return m, cmd
}

// ---------------------------------------------------------------------------
// Commands
// ---------------------------------------------------------------------------

func (m Model) loadCmd() tea.Cmd {
	a := m.app
	return func() tea.Msg {
		doc, err := a.Load(context.Background())
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return DocumentLoadedMsg{Doc: doc}
	}
}

// saveCmd writes a snapshot of the working document, so edits made while the
// save runs do not race with it.
func (m *Model) saveCmd() tea.Cmd {
	if m.doc == nil || m.saving {
		return nil
	}
	data, err := m.doc.Encode()
	if err != nil {
		m.err = fmt.Errorf("tui: save: %w", err)
		return nil
	}
	snapshot, err := document.Parse(data)
	if err != nil {
		m.err = fmt.Errorf("tui: save: %w", err)
		return nil
	}
	m.saving = true
	m.status = "Saving..."

	a := m.app
	return func() tea.Msg {
		res, err := a.Save(context.Background(), snapshot, db.SourceTUI)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return DocumentSavedMsg{Result: res}
	}
}

// copyCmd puts the indented JSON of the project under the cursor on the
// clipboard.
func (m Model) copyCmd() tea.Cmd {
	e, ok := m.current()
	if !ok || m.doc == nil {
		return nil
	}
	projects, ok := m.doc.Projects()
	if !ok {
		return nil
	}
	raw, ok := projects.Get(e.Path)
	if !ok {
		return nil
	}
	pretty, err := document.Indent(raw)
	if err != nil {
		return func() tea.Msg { return ErrorMsg{Err: fmt.Errorf("tui: copy: %w", err)} }
	}

	write := m.copy
	return func() tea.Msg {
		if err := write(string(pretty)); err != nil {
			return ErrorMsg{Err: fmt.Errorf("tui: copy: %w", err)}
		}
		return StatusMsg(fmt.Sprintf("Copied %s (%s)", e.Path, view.FormatSize(len(pretty))))
	}
}

// ---------------------------------------------------------------------------
// Internal helpers
// ---------------------------------------------------------------------------

// visible returns the entries passing the search, in display order.
func (m Model) visible() []view.Entry {
	return view.Sort(view.Filter(m.entries, m.search.Value()), m.sort)
}

// current returns the entry under the cursor.
func (m Model) current() (view.Entry, bool) {
	rows := m.visible()
	if m.cursor < 0 || m.cursor >= len(rows) {
		return view.Entry{}, false
	}
	return rows[m.cursor], true
}

func (m *Model) setSort(k view.SortKey) {
	m.sort = m.sort.Toggle(k)
	m.status = fmt.Sprintf("Sorted by %s %s", m.sort.Key, m.sort.Dir)
	m.persistState()
}

// persistState copies the sort and search into the App's state, which is
// written when the App closes.
func (m *Model) persistState() {
	st := m.app.State()
	if st == nil {
		return
	}
	st.SortKey = string(m.sort.Key)
	st.SortDir = string(m.sort.Dir)
	st.Search = m.search.Value()
}

func (m *Model) deleteSelected() {
	remaining, removed, err := view.DeleteSelected(m.doc, m.entries)
	if err != nil {
		m.err = err
		return
	}
	m.entries = remaining
	m.summary = view.Summarize(m.doc)
	if len(removed) > 0 {
		m.dirty = true
	}
	m.status = fmt.Sprintf("Deleted %d projects. Press w to save.", len(removed))
	m.clampCursor()
}

// clampCursor keeps the cursor on a visible row and scrolls the window so
// the cursor stays on screen.
func (m *Model) clampCursor() {
	n := len(m.visible())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}

	rows := m.listHeight()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+rows {
		m.offset = m.cursor - rows + 1
	}
	if m.offset > max(0, n-rows) {
		m.offset = max(0, n-rows)
	}
}

// renderStatusBar builds the single-line bar at the bottom of the viewport.
func (m Model) renderStatusBar() string {
	var left string
	if m.err != nil {
		left = m.styles.Error.Render(fmt.Sprintf(" Error: %s", m.err.Error()))
	} else if m.status != "" {
		left = m.styles.Success.Render(fmt.Sprintf(" %s", m.status))
	}

	right := lipgloss.NewStyle().
		Foreground(theme.ColorMuted).
		Render("? help ")

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	bar := lipgloss.JoinHorizontal(lipgloss.Top, left, spacer, right)

	return m.styles.StatusBar.Width(m.width).Render(bar)
}
