package retrieval

import (
	"strings"
	"testing"
)

func TestChunkTextShortInput(t *testing.T) {
	chunks := ChunkText("short text", 100, 20)
	if len(chunks) != 1 || chunks[0] != "short text" {
		t.Fatalf("chunks = %v; want the whole text as one chunk", chunks)
	}
}

func TestChunkTextEmptyInput(t *testing.T) {
	if chunks := ChunkText("", 100, 20); len(chunks) != 0 {
		t.Fatalf("chunks = %v; want none", chunks)
	}
	if chunks := ChunkText("anything", 0, 0); chunks != nil {
		t.Fatalf("size 0 should produce no chunks, got %v", chunks)
	}
}

func TestChunkTextBreaksOnWhitespace(t *testing.T) {
	text := strings.Repeat("word ", 100) // 500 chars of whole words
	chunks := ChunkText(text, 120, 20)

	if len(chunks) < 3 {
		t.Fatalf("got %d chunks; want several", len(chunks))
	}
	for i, chunk := range chunks {
		if len(chunk) > 120 {
			t.Errorf("chunk %d length %d exceeds size", i, len(chunk))
		}
		for _, w := range strings.Fields(chunk) {
			if w != "word" {
				t.Fatalf("chunk %d split a word: %q", i, w)
			}
		}
	}
}

func TestChunkTextCoversAllContent(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 200; i++ {
		b.WriteString("token")
		b.WriteByte(byte('0' + i%10))
		b.WriteByte(' ')
	}
	text := strings.TrimSpace(b.String())

	chunks := ChunkText(text, 100, 30)
	joined := strings.Join(chunks, " ")
	for _, w := range strings.Fields(text) {
		if !strings.Contains(joined, w) {
			t.Fatalf("word %q missing from chunks", w)
		}
	}
}

func TestChunkTextTerminatesOnUnbrokenInput(t *testing.T) {
	// No whitespace anywhere: the chunker must still make progress.
	text := strings.Repeat("x", 5000)
	chunks := ChunkText(text, 100, 99)
	if len(chunks) == 0 {
		t.Fatal("no chunks produced")
	}
	total := 0
	for _, c := range chunks {
		total += len(c)
	}
	if total < len(text) {
		t.Errorf("chunks cover %d of %d characters", total, len(text))
	}
}
