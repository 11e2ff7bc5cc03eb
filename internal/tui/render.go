package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/denismitr/estatebook/view"
)

const (
	cellWidth   = 22
	statusWidth = 16
	actionsHint = "e edit · d delete"
)

func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(m.viewTabs())
	b.WriteString("\n\n")

	if m.forms.Active() {
		b.WriteString(modalStyle.Render(m.forms.Form().View()))
		b.WriteString("\n")
		b.WriteString(m.viewMessage())
		b.WriteString(m.help.View(formHelp(m.keys)))
		return b.String()
	}

	b.WriteString(m.viewToolbar())
	b.WriteString("\n\n")
	b.WriteString(m.viewTable())
	b.WriteString("\n")

	if p := m.pending; p != nil {
		b.WriteString(promptStyle.Render(fmt.Sprintf("Delete %s record %d? (y/N)", p.dataset.Title(), p.index+1)))
		b.WriteString("\n")
	}

	b.WriteString(m.viewMessage())
	b.WriteString(m.help.View(browseHelp(m.keys)))
	return b.String()
}

func (m *Model) viewTabs() string {
	tabs := make([]string, 0, len(m.tabs))
	for i, t := range m.tabs {
		label := fmt.Sprintf("%s (%d)", t.dataset.Tab(), m.store.Len(t.dataset))
		if i == m.active {
			tabs = append(tabs, activeTabStyle.Render(label))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m *Model) viewToolbar() string {
	t := m.tab()

	search := mutedStyle.Render("/ " + placeholder(t.query.Search, "search all fields"))
	if m.searching {
		search = m.search.View()
	}

	return search + "   " + mutedStyle.Render("status: ") + t.statusLabel()
}

func (m *Model) viewTable() string {
	t := m.tab()

	var b strings.Builder
	header := make([]string, 0, len(t.table.Columns))
	for i, c := range t.table.Columns {
		header = append(header, pad(c, columnWidth(i, len(t.table.Columns))))
	}
	b.WriteString(headerStyle.Render(strings.Join(header, " ")))
	b.WriteString("\n")

	if len(t.table.Rows) == 0 {
		b.WriteString(mutedStyle.Render("no records"))
		b.WriteString("\n")
		return b.String()
	}

	for i, row := range t.table.Rows {
		b.WriteString(m.viewRow(row, i == t.cursor))
		b.WriteString("\n")
	}

	return b.String()
}

func (m *Model) viewRow(row view.Row, selected bool) string {
	cells := make([]string, 0, len(row.Cells))
	for _, c := range row.Cells {
		cells = append(cells, pad(c, cellWidth))
	}

	line := strings.Join(cells, " ")
	if selected {
		line = selectedStyle.Render(line)
	}

	status := lipgloss.NewStyle().Width(statusWidth).Render(badge(row))
	actions := ""
	if selected {
		actions = mutedStyle.Render(actionsHint)
	}

	return line + " " + status + " " + actions
}

func (m *Model) viewMessage() string {
	if m.message == "" {
		return ""
	}
	if m.failed {
		return errorStyle.Render(m.message) + "\n"
	}
	return mutedStyle.Render(m.message) + "\n"
}

func columnWidth(i, n int) int {
	if i == n-2 {
		return statusWidth
	}
	return cellWidth
}

// pad fits s on one line of exactly w cells.
func pad(s string, w int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if r := []rune(s); len(r) > w {
		s = string(r[:w-1]) + "…"
	}
	return lipgloss.NewStyle().Width(w).Render(s)
}

func placeholder(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
