package retrieval

import (
	"context"
	"strings"
	"testing"
)

type fakeEmbedder struct {
	vectors map[string][]float32
	calls   int
}

func (f *fakeEmbedder) ModelName() string { return "fake-embed" }

func (f *fakeEmbedder) EmbedTexts(texts []string) ([][]float32, error) {
	f.calls++
	out := make([][]float32, len(texts))
	for i, text := range texts {
		if v, ok := f.vectors[text]; ok {
			out[i] = v
		} else {
			out[i] = []float32{1, 1, 1}
		}
	}
	return out, nil
}

func TestNilPipelineIsDisabled(t *testing.T) {
	if p := NewPipeline(nil); p != nil {
		t.Fatalf("NewPipeline(nil) = %v; want nil", p)
	}

	var p *Pipeline
	text, err := p.RelevantContext(context.Background(), "q")
	if err != nil || text != "" {
		t.Fatalf("nil pipeline RelevantContext = %q, %v; want empty, nil", text, err)
	}
	p.RemoveDocument("doc")
	if _, err := p.IngestPDF(context.Background(), "doc", "x.pdf"); err == nil {
		t.Fatal("nil pipeline IngestPDF should fail")
	}
}

func TestRelevantContextReturnsBestChunks(t *testing.T) {
	embedder := &fakeEmbedder{vectors: map[string][]float32{
		"solar panel efficiency": {1, 0, 0},
	}}
	p := NewPipeline(embedder)
	p.index.Add("doc", []string{"solar chunk", "wind chunk", "unrelated chunk"}, [][]float32{
		{0.9, 0.1, 0},
		{0.5, 0.5, 0},
		{0, 0, 1},
	})

	text, err := p.RelevantContext(context.Background(), "solar panel efficiency")
	if err != nil {
		t.Fatalf("RelevantContext returned error: %v", err)
	}

	// The orthogonal chunk scores zero and is dropped.
	chunks := strings.Split(text, "\n\n")
	if len(chunks) != 2 {
		t.Fatalf("got %d chunks: %q", len(chunks), text)
	}
	if chunks[0] != "solar chunk" || chunks[1] != "wind chunk" {
		t.Errorf("chunk order = %v; want best match first", chunks)
	}
}

func TestRelevantContextEmptyIndexSkipsEmbedding(t *testing.T) {
	embedder := &fakeEmbedder{}
	p := NewPipeline(embedder)

	text, err := p.RelevantContext(context.Background(), "anything")
	if err != nil || text != "" {
		t.Fatalf("RelevantContext = %q, %v; want empty, nil", text, err)
	}
	if embedder.calls != 0 {
		t.Errorf("embedder called %d times on an empty index", embedder.calls)
	}
}
