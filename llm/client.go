package llm

import (
	"context"
	"os"
	"strings"
)

// Client abstracts a text completion model. Implementations return the raw
// model output for a rendered prompt.
type Client interface {
	Generate(ctx context.Context, prompt string) (string, error)
	ModelName() string
}

// Models groups the two named model slots used by the pipeline. Both slots
// may point at the same underlying client.
type Models struct {
	// Generation produces research summaries, reports and drafts.
	Generation Client
	// Verification extracts and fact-checks claims. A different, more
	// trusted model can be plugged in here.
	Verification Client
}

// NewDefaultModels returns model slots configured from the environment.
// Cohere is preferred when COHERE_API_KEY is set, otherwise Groq when
// GROQ_API_KEY is set. Returns nil when neither is configured.
func NewDefaultModels() *Models {
	var client Client

	if key := os.Getenv("COHERE_API_KEY"); key != "" {
		model := strings.TrimSpace(os.Getenv("COHERE_MODEL"))
		client = NewCohereClient(key, model)
	} else if key := os.Getenv("GROQ_API_KEY"); key != "" {
		model := strings.TrimSpace(os.Getenv("GROQ_MODEL"))
		client = NewGroqClient(key, model)
	}

	if client == nil {
		return nil
	}

	return &Models{Generation: client, Verification: client}
}
