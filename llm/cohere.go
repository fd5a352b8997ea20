package llm

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/http"

	cohere "github.com/cohere-ai/cohere-go/v2"
	cohereclient "github.com/cohere-ai/cohere-go/v2/client"

	"deepresearch/config"
)

// CohereClient implements Client using the Cohere Chat API.
// Docs: https://docs.cohere.com/reference/chat
// SDK: github.com/cohere-ai/cohere-go/v2
type CohereClient struct {
	client *cohereclient.Client
	model  string
}

// NewCohereClient creates a Cohere-backed chat client. An empty model
// selects the default from config.
func NewCohereClient(apiKey, model string) *CohereClient {
	if model == "" {
		model = config.DefaultCohereModel
	}
	// Force HTTP/1.1 to avoid HTTP/2 protocol errors seen against the
	// Cohere endpoint.
	httpClient := &http.Client{
		Timeout: config.GenerateTimeout,
		Transport: &http.Transport{
			TLSNextProto:      make(map[string]func(authority string, c *tls.Conn) http.RoundTripper),
			ForceAttemptHTTP2: false,
		},
	}
	client := cohereclient.NewClient(
		cohereclient.WithToken(apiKey),
		cohereclient.WithHTTPClient(httpClient),
	)
	return &CohereClient{client: client, model: model}
}

func (c *CohereClient) ModelName() string { return c.model }

func (c *CohereClient) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, config.GenerateTimeout)
	defer cancel()

	resp, err := c.client.Chat(ctx, &cohere.ChatRequest{
		Model:   &c.model,
		Message: prompt,
	})
	if err != nil {
		return "", fmt.Errorf("cohere chat error: %w", err)
	}
	if resp == nil {
		return "", errors.New("cohere chat returned empty response")
	}
	return resp.Text, nil
}

var _ Client = (*CohereClient)(nil)
