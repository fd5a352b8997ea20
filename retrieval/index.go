package retrieval

import (
	"math"
	"sort"
	"sync"
)

// chunkEntry is one embedded document chunk held by the index.
type chunkEntry struct {
	docID   string
	content string
	vector  []float32
}

// Index is an in-memory vector index over document chunks. Safe for
// concurrent ingestion and querying.
type Index struct {
	mu      sync.RWMutex
	entries []chunkEntry
}

// NewIndex creates an empty index.
func NewIndex() *Index {
	return &Index{}
}

// Add stores embedded chunks for a document.
func (ix *Index) Add(docID string, contents []string, vectors [][]float32) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	for i, content := range contents {
		ix.entries = append(ix.entries, chunkEntry{
			docID:   docID,
			content: content,
			vector:  vectors[i],
		})
	}
}

// Remove drops every chunk belonging to the document.
func (ix *Index) Remove(docID string) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	kept := ix.entries[:0]
	for _, e := range ix.entries {
		if e.docID != docID {
			kept = append(kept, e)
		}
	}
	ix.entries = kept
}

// Count returns the number of stored chunks.
func (ix *Index) Count() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.entries)
}

// Query returns the contents of the k chunks most similar to the query
// vector, best first.
func (ix *Index) Query(vector []float32, k int) []string {
	if k <= 0 {
		return nil
	}

	ix.mu.RLock()
	defer ix.mu.RUnlock()

	type scored struct {
		content    string
		similarity float32
	}
	candidates := make([]scored, 0, len(ix.entries))
	for _, e := range ix.entries {
		sim := cosineSimilarity(vector, e.vector)
		if sim <= 0 {
			continue
		}
		candidates = append(candidates, scored{content: e.content, similarity: sim})
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].similarity > candidates[j].similarity
	})
	if len(candidates) > k {
		candidates = candidates[:k]
	}

	out := make([]string, len(candidates))
	for i, c := range candidates {
		out[i] = c.content
	}
	return out
}

// cosineSimilarity computes the cosine of the angle between two vectors.
// Mismatched or zero-length vectors score zero.
func cosineSimilarity(a, b []float32) float32 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(normA) * math.Sqrt(normB)))
}
