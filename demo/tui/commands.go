package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// startResearch creates a command to submit the research request
func startResearch(client *ResearchClient, query string, style int) tea.Cmd {
	return func() tea.Msg {
		id, err := client.StartResearch(query, style)
		return ResearchStartedMsg{
			ResearchID: id,
			Err:        err,
		}
	}
}

// pollResults creates a command to fetch the current job state
func pollResults(client *ResearchClient, id string) tea.Cmd {
	return func() tea.Msg {
		results, err := client.GetResults(id)
		return ResultsUpdateMsg{
			Results: results,
			Err:     err,
		}
	}
}

// tickCmd creates a command that ticks every 2s for polling
func tickCmd() tea.Cmd {
	return tea.Tick(2*time.Second, func(t time.Time) tea.Msg {
		return TickMsg{Time: t}
	})
}
