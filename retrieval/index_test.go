package retrieval

import "testing"

func TestIndexQueryRanksBySimilarity(t *testing.T) {
	ix := NewIndex()
	ix.Add("doc-1", []string{"about cats", "about dogs"}, [][]float32{
		{1, 0, 0},
		{0, 1, 0},
	})
	ix.Add("doc-2", []string{"about birds"}, [][]float32{
		{0.9, 0.1, 0},
	})

	got := ix.Query([]float32{1, 0, 0}, 2)
	if len(got) != 2 {
		t.Fatalf("got %d results; want 2", len(got))
	}
	if got[0] != "about cats" {
		t.Errorf("best match = %q; want %q", got[0], "about cats")
	}
	if got[1] != "about birds" {
		t.Errorf("second match = %q; want %q", got[1], "about birds")
	}
}

func TestIndexQueryDropsOrthogonalChunks(t *testing.T) {
	ix := NewIndex()
	ix.Add("doc", []string{"unrelated"}, [][]float32{{0, 1}})

	if got := ix.Query([]float32{1, 0}, 5); len(got) != 0 {
		t.Errorf("orthogonal chunk returned: %v", got)
	}
	if got := ix.Query([]float32{1, 0}, 0); got != nil {
		t.Errorf("k=0 should return nothing, got %v", got)
	}
}

func TestIndexRemove(t *testing.T) {
	ix := NewIndex()
	ix.Add("keep", []string{"a"}, [][]float32{{1}})
	ix.Add("drop", []string{"b", "c"}, [][]float32{{1}, {1}})

	if ix.Count() != 3 {
		t.Fatalf("count = %d; want 3", ix.Count())
	}
	ix.Remove("drop")
	if ix.Count() != 1 {
		t.Fatalf("count after remove = %d; want 1", ix.Count())
	}
	got := ix.Query([]float32{1}, 5)
	if len(got) != 1 || got[0] != "a" {
		t.Errorf("remaining chunks = %v; want [a]", got)
	}
}

func TestCosineSimilarity(t *testing.T) {
	cases := []struct {
		name string
		a, b []float32
		want float32
	}{
		{"identical", []float32{1, 2, 3}, []float32{1, 2, 3}, 1},
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 0},
		{"mismatched lengths", []float32{1, 2}, []float32{1}, 0},
		{"zero vector", []float32{0, 0}, []float32{1, 1}, 0},
		{"empty", nil, nil, 0},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := cosineSimilarity(c.a, c.b)
			if diff := got - c.want; diff > 1e-6 || diff < -1e-6 {
				t.Errorf("cosineSimilarity = %v; want %v", got, c.want)
			}
		})
	}
}
