package tui

import (
	"fmt"

	"claude-config-editor/internal/view"

	"github.com/charmbracelet/lipgloss"
)

const (
	historyWidth = 8
	sizeWidth    = 11
	maxHints     = 2
	// cursor, checkbox and column gaps
	rowChrome = 2 + 4 + 2 + 2
)

// View renders the projects screen with an optional help overlay and status
// bar.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}
	if m.help.Visible() {
		return m.help.View(m.width, m.height)
	}

	var sections []string
	sections = append(sections, m.renderHeader())
	sections = append(sections, m.renderSummary()...)
	if m.showSearch() {
		sections = append(sections, m.search.View())
	}
	sections = append(sections, m.renderColumns())
	sections = append(sections, m.renderRows()...)

	if m.confirmDelete {
		n := len(view.SelectedPaths(m.entries))
		sections = append(sections, m.styles.Confirm.Render(fmt.Sprintf("Delete %d selected projects? (y/n)", n)))
	} else {
		sections = append(sections, m.footer.ShortHelpView(m.keys.ShortHelp()))
	}
	sections = append(sections, m.renderStatusBar())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// listHeight is the number of project rows that fit between the header
// sections and the footer.
func (m Model) listHeight() int {
	if m.height <= 0 {
		return len(m.entries) + 1
	}
	used := 1 + 1 + 1 + 1 + 1 // header, summary, columns, footer, status
	used += min(len(m.summary.Hints), maxHints)
	if m.showSearch() {
		used++
	}
	return max(1, m.height-used)
}

func (m Model) showSearch() bool {
	return m.searching || m.search.Value() != ""
}

func (m Model) renderHeader() string {
	title := "Claude Config Editor"
	if m.app != nil {
		title += "  " + m.app.Store().Path()
	}
	header := m.styles.Header.Render(title)
	if m.dirty {
		header += " " + m.styles.Dirty.Render("[modified]")
	}
	return header
}

func (m Model) renderSummary() []string {
	if m.doc == nil {
		return []string{m.styles.Summary.Render("Loading...")}
	}
	s := m.summary
	lines := []string{m.styles.Summary.Render(fmt.Sprintf(
		"%d projects · %d selected · %d MCP servers · %s · %d startups",
		s.Projects, len(view.SelectedPaths(m.entries)), s.MCPServers, view.FormatSize(s.TotalBytes), s.Startups))}
	for i, h := range s.Hints {
		if i == maxHints {
			break
		}
		lines = append(lines, m.styles.Hint.Render(h))
	}
	return lines
}

func (m Model) pathWidth() int {
	return max(10, m.width-rowChrome-historyWidth-sizeWidth)
}

func (m Model) renderColumns() string {
	arrow := func(k view.SortKey) string {
		if m.sort.Key != k {
			return ""
		}
		if m.sort.Dir == view.Asc {
			return " ▲"
		}
		return " ▼"
	}
	line := fmt.Sprintf("%7s%-*s  %*s %*s",
		"",
		m.pathWidth(), "Path"+arrow(view.SortPath),
		historyWidth, "History"+arrow(view.SortHistory),
		sizeWidth, "Size"+arrow(view.SortSize))
	return m.styles.ColHeader.Render(line)
}

func (m Model) renderRows() []string {
	rows := m.visible()
	if len(rows) == 0 {
		msg := "No projects."
		if m.search.Value() != "" {
			msg = fmt.Sprintf("No projects match %q.", m.search.Value())
		}
		return []string{m.styles.Summary.Render(msg)}
	}

	end := min(len(rows), m.offset+m.listHeight())
	start := min(m.offset, end)
	out := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		out = append(out, m.renderRow(rows[i], i == m.cursor))
	}
	return out
}

func (m Model) renderRow(e view.Entry, focused bool) string {
	box := "[ ]"
	if e.Selected {
		box = m.styles.Checked.Render("[x]")
	}
	size := m.styles.SizeStyle(string(view.ClassifySize(e.SizeBytes))).
		Width(sizeWidth).
		Align(lipgloss.Right).
		Render(view.FormatSize(e.SizeBytes))

	line := fmt.Sprintf("%s %-*s  %*d %s",
		box,
		m.pathWidth(), truncateLeft(e.Path, m.pathWidth()),
		historyWidth, e.HistoryCount,
		size)

	if focused {
		return m.styles.ListItemSelected.Render("> " + line)
	}
	return m.styles.ListItem.Render("  " + line)
}

// truncateLeft shortens s to width runes, keeping the end of the path.
func truncateLeft(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width <= 1 {
		return string(r[len(r)-width:])
	}
	return "…" + string(r[len(r)-width+1:])
}
