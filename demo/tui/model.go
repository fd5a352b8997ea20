package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// State represents the application state machine
type State string

const (
	StateInput      State = "input"
	StateSubmitting State = "submitting"
	StatePolling    State = "polling"
	StateComplete   State = "complete"
	StateError      State = "error"
)

// ResultsResponse is the JSON response from the research service. Fields
// are populated according to the job's status.
type ResultsResponse struct {
	ResearchID string `json:"research_id"`
	Status     string `json:"status"`
	Message    string `json:"message,omitempty"`
	Error      string `json:"error,omitempty"`
	Query      struct {
		Original  string `json:"original"`
		Optimized string `json:"optimized"`
	} `json:"query,omitempty"`
	FactCheck struct {
		Report string `json:"report"`
	} `json:"fact_check,omitempty"`
	Content struct {
		Style string `json:"style"`
		Draft string `json:"draft"`
	} `json:"content,omitempty"`
	References []string `json:"references,omitempty"`
}

// Model represents the TUI client state (thin client)
type Model struct {
	// Research service client
	Client *ResearchClient

	// User input
	Query string
	Style int

	// Local UI state (synced from the service)
	State      State
	ResearchID string
	JobStatus  string
	Results    *ResultsResponse
	Err        error
}

// NewModel creates a new TUI model
func NewModel(serverURL string) Model {
	return Model{
		Client: NewResearchClient(serverURL),
		Style:  1,
		State:  StateInput,
	}
}

// Init implements tea.Model interface
func (m Model) Init() tea.Cmd {
	return nil
}

var styleNames = map[int]string{
	1: "blog post",
	2: "detailed report",
	3: "executive summary",
}

// getStateText returns the appropriate state message
func (m Model) getStateText() string {
	switch m.State {
	case StateInput:
		return HighlightStyle.Render("🔎 What should I research?") + "\n\n" +
			fmt.Sprintf("Query: %s█\n", m.Query) +
			InfoStyle.Render(fmt.Sprintf("Style: %s (press 1-3 to change)", styleNames[m.Style]))
	case StateSubmitting:
		return StatusStyle.Render("📤 Submitting research request...")
	case StatePolling:
		switch m.JobStatus {
		case "queued":
			return StatusStyle.Render(fmt.Sprintf("⏳ Queued (ID: %s)...", m.ResearchID))
		default:
			return StatusStyle.Render(fmt.Sprintf("⚙️  Researching (ID: %s)...", m.ResearchID))
		}
	case StateComplete:
		return HighlightStyle.Render("✅ COMPLETE")
	case StateError:
		errMsg := "Unknown error"
		if m.Err != nil {
			errMsg = m.Err.Error()
		}
		return ErrorStyle.Render(fmt.Sprintf("❌ Error: %v", errMsg))
	default:
		return ""
	}
}

// formatResults formats the completed research for display
func (m Model) formatResults() string {
	results := m.Results
	var b strings.Builder

	b.WriteString(HighlightStyle.Render("Research Result"))
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("Query: %s\n", results.Query.Original))
	b.WriteString(fmt.Sprintf("Optimized: %s\n", InfoStyle.Render(results.Query.Optimized)))
	b.WriteString(fmt.Sprintf("Style: %s\n\n", StatusStyle.Render(results.Content.Style)))

	if results.Content.Draft != "" {
		draftPreview := results.Content.Draft
		if len(draftPreview) > 600 {
			draftPreview = draftPreview[:600] + "..."
		}
		b.WriteString(fmt.Sprintf("Draft Preview:\n%s\n\n", InfoStyle.Render(draftPreview)))
	}

	if len(results.References) > 0 {
		b.WriteString("References:\n")
		for _, ref := range results.References {
			b.WriteString(InfoStyle.Render("  " + ref))
			b.WriteString("\n")
		}
	}

	return b.String()
}
