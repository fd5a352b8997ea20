package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"deepresearch/config"
)

// GroqClient implements Client using the Groq OpenAI-compatible Chat
// Completions API.
// Docs: https://console.groq.com/docs/api-reference#chat
// Endpoint: POST https://api.groq.com/openai/v1/chat/completions
// Request: {"model": "...", "messages": [{"role": "user", "content": "..."}]}
// Response: {"choices": [{"message": {"content": "..."}}]}
type GroqClient struct {
	apiKey   string
	model    string
	endpoint string
	client   *http.Client
}

// NewGroqClient creates a Groq-backed chat client. An empty model selects
// the default from config.
func NewGroqClient(apiKey, model string) *GroqClient {
	if model == "" {
		model = config.DefaultGroqModel
	}
	return &GroqClient{
		apiKey: apiKey,
		model:  model,
		client: &http.Client{Timeout: config.GenerateTimeout},
	}
}

func (g *GroqClient) ModelName() string { return g.model }

func (g *GroqClient) Generate(ctx context.Context, prompt string) (string, error) {
	endpoint := g.endpoint
	if endpoint == "" {
		endpoint = "https://api.groq.com/openai/v1/chat/completions"
	}

	payload := map[string]interface{}{
		"model": g.model,
		"messages": []map[string]string{
			{"role": "user", "content": prompt},
		},
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", g.apiKey))

	resp, err := g.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var body map[string]interface{}
		_ = json.NewDecoder(resp.Body).Decode(&body)
		return "", fmt.Errorf("groq chat error: status %d: %v", resp.StatusCode, body)
	}

	var parsed struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", err
	}
	if len(parsed.Choices) == 0 {
		return "", errors.New("groq chat returned no choices")
	}
	return parsed.Choices[0].Message.Content, nil
}

var _ Client = (*GroqClient)(nil)
