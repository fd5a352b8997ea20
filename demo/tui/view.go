package tui

import "strings"

// View implements tea.Model interface
func (m Model) View() string {
	var b strings.Builder

	// Title
	b.WriteString(TitleStyle.Render("🔬 Deep Research Demo"))
	b.WriteString("\n\n")

	// Current state
	b.WriteString(m.getStateText())
	b.WriteString("\n\n")

	// Results
	if m.State == StateComplete && m.Results != nil {
		resultBox := m.formatResults()
		b.WriteString(BoxStyle.Render(resultBox))
		b.WriteString("\n\n")
	}

	// Help text
	switch m.State {
	case StateInput:
		b.WriteString(InfoStyle.Render("Type a query and press Enter | Esc or Ctrl+C to quit"))
	case StateComplete, StateError:
		b.WriteString(HighlightStyle.Render("Press 'q' or Ctrl+C to exit"))
	default:
		b.WriteString(InfoStyle.Render("Press 'q' or Ctrl+C to quit"))
	}

	return b.String()
}
