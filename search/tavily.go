package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"deepresearch/config"
)

// TavilyClient implements Provider using the Tavily Search API.
// Docs: https://docs.tavily.com/docs/rest-api/api-reference
// Endpoint: POST https://api.tavily.com/search
// Request: {"query": "...", "search_depth": "basic|advanced", "max_results": N}
// Response: {"results": [{"url": "...", "title": "...", "content": "..."}]}
type TavilyClient struct {
	apiKey   string
	endpoint string
	client   *http.Client
}

// NewTavilyClient creates a Tavily search client.
func NewTavilyClient(apiKey string) *TavilyClient {
	return &TavilyClient{
		apiKey: apiKey,
		client: &http.Client{Timeout: config.SearchTimeout},
	}
}

// NewDefaultProvider returns a Tavily provider when TAVILY_API_KEY is set,
// nil otherwise.
func NewDefaultProvider() Provider {
	if key := os.Getenv("TAVILY_API_KEY"); key != "" {
		return NewTavilyClient(key)
	}
	return nil
}

func (t *TavilyClient) Search(ctx context.Context, query string, opts Options) ([]Result, error) {
	endpoint := t.endpoint
	if endpoint == "" {
		endpoint = "https://api.tavily.com/search"
	}

	depth := opts.Depth
	if depth == "" {
		depth = DepthBasic
	}
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = config.ResearchMaxResults
	}

	payload := map[string]interface{}{
		"query":        query,
		"search_depth": string(depth),
		"max_results":  maxResults,
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", t.apiKey))

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var body map[string]interface{}
		_ = json.NewDecoder(resp.Body).Decode(&body)
		return nil, fmt.Errorf("tavily search error: status %d: %v", resp.StatusCode, body)
	}

	var parsed struct {
		Results []Result `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, err
	}
	return parsed.Results, nil
}

var _ Provider = (*TavilyClient)(nil)
