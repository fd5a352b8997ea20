package tui

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ResearchClient is a thin HTTP client for the research service API
type ResearchClient struct {
	baseURL string
	client  *http.Client
}

// NewResearchClient creates a new research service client
func NewResearchClient(baseURL string) *ResearchClient {
	return &ResearchClient{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// StartResearch submits a research query and returns the assigned research id
func (c *ResearchClient) StartResearch(query string, style int) (string, error) {
	body, err := json.Marshal(map[string]interface{}{
		"query": query,
		"style": style,
	})
	if err != nil {
		return "", err
	}

	resp, err := c.client.Post(c.baseURL+"/research/start", "application/json", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to start research: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("server returned %d: %s", resp.StatusCode, string(raw))
	}

	var ack struct {
		ResearchID string `json:"research_id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&ack); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	return ack.ResearchID, nil
}

// GetResults fetches the current state of a research job
func (c *ResearchClient) GetResults(id string) (*ResultsResponse, error) {
	resp, err := c.client.Get(c.baseURL + "/research/results/" + id)
	if err != nil {
		return nil, fmt.Errorf("failed to get results: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, string(raw))
	}

	var results ResultsResponse
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &results, nil
}
