package tui

import "github.com/charmbracelet/lipgloss"

var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#2D3150")).
			Padding(0, 1).
			Bold(true)

	CellStyle = lipgloss.NewStyle().
			Width(5).
			Align(lipgloss.Center).
			Foreground(lipgloss.Color("#FAFAFA"))

	CursorStyle = CellStyle.
			Background(lipgloss.Color("#1E2130")).
			Underline(true)

	XStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00C6C6")).
			Bold(true)

	OStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF3A3A")).
			Bold(true)

	StatusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true)
)
