package tui

import "github.com/charmbracelet/lipgloss"

// Palette
const (
	colorAccent  = "#1E90FF"
	colorOK      = "#2FBF71"
	colorFail    = "#E5484D"
	colorMuted   = "#6E6E6E"
	colorText    = "#F5F5F5"
	colorOutline = "#3B82F6"
)

var (
	TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colorAccent)).
		MarginTop(1)

	StatusStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colorOK))

	ErrorStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colorFail))

	InfoStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colorMuted))

	// BoxStyle frames the final research result.
	BoxStyle = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(colorOutline)).
		Padding(1, 2).
		MarginTop(1)

	HighlightStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colorText)).
		Background(lipgloss.Color(colorAccent)).
		Padding(0, 1)
)
