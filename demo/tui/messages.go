package tui

import "time"

// Messages for the tea program (polling-based)

// ResearchStartedMsg is sent after submitting a research request
type ResearchStartedMsg struct {
	ResearchID string
	Err        error
}

// ResultsUpdateMsg is sent when we receive job state from the service
type ResultsUpdateMsg struct {
	Results *ResultsResponse
	Err     error
}

// TickMsg is sent periodically to trigger polling
type TickMsg struct {
	Time time.Time
}
