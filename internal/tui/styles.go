package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/denismitr/estatebook/view"
)

var (
	activeTabStyle   = lipgloss.NewStyle().Bold(true).Padding(0, 2).Foreground(lipgloss.Color("230")).Background(lipgloss.Color("62"))
	inactiveTabStyle = lipgloss.NewStyle().Padding(0, 2).Foreground(lipgloss.Color("245"))
	headerStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252")).Underline(true)
	selectedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	mutedStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	promptStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	modalStyle       = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("62")).Padding(1, 2)
)

var badgeStyles = map[view.Badge]lipgloss.Style{
	view.Neutral: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	view.Open:    lipgloss.NewStyle().Foreground(lipgloss.Color("16")).Background(lipgloss.Color("42")).Padding(0, 1),
	view.Closed:  lipgloss.NewStyle().Foreground(lipgloss.Color("16")).Background(lipgloss.Color("39")).Padding(0, 1),
	view.Lost:    lipgloss.NewStyle().Foreground(lipgloss.Color("231")).Background(lipgloss.Color("160")).Padding(0, 1),
}

func badge(row view.Row) string {
	return badgeStyles[row.Badge].Render(row.StatusText())
}
