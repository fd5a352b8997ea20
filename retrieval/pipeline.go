package retrieval

import (
	"context"
	"fmt"
	"strings"

	"deepresearch/config"
)

// Pipeline turns uploaded PDFs into retrieval context for the research
// workflow. A nil *Pipeline is a valid, disabled provider: every context
// lookup returns empty text.
type Pipeline struct {
	embedder EmbeddingsProvider
	index    *Index
}

// NewPipeline creates a retrieval pipeline around an embeddings provider.
// Returns nil when the provider is nil, which disables retrieval.
func NewPipeline(embedder EmbeddingsProvider) *Pipeline {
	if embedder == nil {
		return nil
	}
	return &Pipeline{embedder: embedder, index: NewIndex()}
}

// IngestPDF extracts, chunks and embeds a PDF file, storing the chunks
// under the document id. Returns the number of chunks stored.
func (p *Pipeline) IngestPDF(ctx context.Context, docID, path string) (int, error) {
	if p == nil {
		return 0, fmt.Errorf("retrieval is not configured")
	}

	text, err := ExtractPDFText(path)
	if err != nil {
		return 0, err
	}

	chunks := ChunkText(text, config.ChunkSize, config.ChunkOverlap)
	if len(chunks) == 0 {
		return 0, fmt.Errorf("no chunks produced from %s", path)
	}

	vectors, err := p.embedder.EmbedTexts(chunks)
	if err != nil {
		return 0, fmt.Errorf("embed chunks: %w", err)
	}

	p.index.Add(docID, chunks, vectors)
	return len(chunks), nil
}

// RemoveDocument drops a document's chunks from the index.
func (p *Pipeline) RemoveDocument(docID string) {
	if p == nil {
		return
	}
	p.index.Remove(docID)
}

// RelevantContext returns the concatenated top-k chunks for the query, or
// empty text when retrieval is disabled or the index is empty.
func (p *Pipeline) RelevantContext(ctx context.Context, query string) (string, error) {
	if p == nil || p.index.Count() == 0 {
		return "", nil
	}

	vectors, err := p.embedder.EmbedTexts([]string{query})
	if err != nil {
		return "", fmt.Errorf("embed query: %w", err)
	}
	if len(vectors) == 0 {
		return "", nil
	}

	chunks := p.index.Query(vectors[0], config.TopKChunks)
	return strings.Join(chunks, "\n\n"), nil
}
