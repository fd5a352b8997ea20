package llm

import "context"

// StubClient is a scripted Client for tests. The response function receives
// the rendered prompt and decides what the "model" says.
type StubClient struct {
	Name    string
	Respond func(prompt string) (string, error)
}

// NewStubClient wraps a response function in a Client.
func NewStubClient(respond func(prompt string) (string, error)) *StubClient {
	return &StubClient{Name: "stub", Respond: respond}
}

func (s *StubClient) ModelName() string {
	if s.Name == "" {
		return "stub"
	}
	return s.Name
}

func (s *StubClient) Generate(ctx context.Context, prompt string) (string, error) {
	return s.Respond(prompt)
}

var _ Client = (*StubClient)(nil)
