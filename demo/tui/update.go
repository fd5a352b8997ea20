package tui

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
)

// Update implements tea.Model interface
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case ResearchStartedMsg:
		return m.handleResearchStarted(msg)
	case ResultsUpdateMsg:
		return m.handleResultsUpdate(msg)
	case TickMsg:
		if m.State == StatePolling {
			return m, pollResults(m.Client, m.ResearchID)
		}
		return m, nil
	}
	return m, nil
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "q":
		if m.State != StateInput {
			return m, tea.Quit
		}
	case "esc":
		return m, tea.Quit
	}

	if m.State != StateInput {
		return m, nil
	}

	switch msg.Type {
	case tea.KeyEnter:
		if m.Query == "" {
			return m, nil
		}
		m.State = StateSubmitting
		return m, startResearch(m.Client, m.Query, m.Style)
	case tea.KeyBackspace:
		if len(m.Query) > 0 {
			runes := []rune(m.Query)
			m.Query = string(runes[:len(runes)-1])
		}
		return m, nil
	case tea.KeySpace:
		m.Query += " "
		return m, nil
	case tea.KeyRunes:
		// Bare digits switch the content style when the query is empty
		if m.Query == "" && len(msg.Runes) == 1 {
			switch msg.Runes[0] {
			case '1', '2', '3':
				m.Style = int(msg.Runes[0] - '0')
				return m, nil
			}
		}
		m.Query += string(msg.Runes)
		return m, nil
	}
	return m, nil
}

// handleResearchStarted processes the submission acknowledgement
func (m Model) handleResearchStarted(msg ResearchStartedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.State = StateError
		m.Err = msg.Err
		return m, nil
	}
	m.ResearchID = msg.ResearchID
	m.JobStatus = "queued"
	m.State = StatePolling
	return m, tea.Batch(pollResults(m.Client, m.ResearchID), tickCmd())
}

// handleResultsUpdate processes a polled job state
func (m Model) handleResultsUpdate(msg ResultsUpdateMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.State = StateError
		m.Err = msg.Err
		return m, nil
	}

	m.JobStatus = msg.Results.Status
	switch msg.Results.Status {
	case "completed":
		m.Results = msg.Results
		m.State = StateComplete
		return m, nil
	case "error":
		m.State = StateError
		m.Err = errors.New(msg.Results.Error)
		return m, nil
	}
	return m, tickCmd()
}
