package search

import (
	"context"
	"fmt"
	"strings"
)

// Depth selects how thorough a search should be.
type Depth string

const (
	DepthBasic    Depth = "basic"
	DepthAdvanced Depth = "advanced"
)

// Result is a single ranked search result.
type Result struct {
	URL     string `json:"url"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Options tunes a single search call.
type Options struct {
	Depth      Depth
	MaxResults int
}

// Provider maps a text query to ranked results.
type Provider interface {
	Search(ctx context.Context, query string, opts Options) ([]Result, error)
}

// FormatResults renders results into the Source/Title/Content evidence block
// consumed by summarization and verification prompts. Reference extraction
// later scans this exact layout for "Source:" lines.
func FormatResults(results []Result) string {
	blocks := make([]string, 0, len(results))
	for _, r := range results {
		url := r.URL
		if url == "" {
			url = "Unknown"
		}
		title := r.Title
		if title == "" {
			title = "No title"
		}
		content := r.Content
		if content == "" {
			content = "No content"
		}
		blocks = append(blocks, fmt.Sprintf("Source: %s\nTitle: %s\nContent: %s", url, title, content))
	}
	return strings.Join(blocks, "\n\n")
}
