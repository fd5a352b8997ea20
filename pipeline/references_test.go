package pipeline

import (
	"testing"

	"deepresearch/search"
	"deepresearch/types"
)

func evidence(urls ...string) string {
	results := make([]search.Result, 0, len(urls))
	for _, u := range urls {
		results = append(results, search.Result{URL: u, Title: "t", Content: "c"})
	}
	return search.FormatResults(results)
}

func TestExtractReferences(t *testing.T) {
	cases := []struct {
		name    string
		records []types.VerificationRecord
		want    []string
	}{
		{
			name:    "no records",
			records: nil,
			want:    nil,
		},
		{
			name: "empty evidence",
			records: []types.VerificationRecord{
				{Claim: "c", VerificationData: ""},
			},
			want: nil,
		},
		{
			name: "ordering follows records then in-text order",
			records: []types.VerificationRecord{
				{VerificationData: evidence("https://a.example/1", "https://b.example/2")},
				{VerificationData: evidence("https://c.example/3")},
			},
			want: []string{
				"1. https://a.example/1",
				"2. https://b.example/2",
				"3. https://c.example/3",
			},
		},
		{
			name: "duplicates across records collapse with dense numbering",
			records: []types.VerificationRecord{
				{VerificationData: evidence("https://a.example/1", "https://b.example/2")},
				{VerificationData: evidence("https://b.example/2", "https://c.example/3")},
				{VerificationData: evidence("https://a.example/1")},
			},
			want: []string{
				"1. https://a.example/1",
				"2. https://b.example/2",
				"3. https://c.example/3",
			},
		},
		{
			name: "non-url sources are ignored",
			records: []types.VerificationRecord{
				{VerificationData: "Source: Unknown\nTitle: t\nContent: c\n\nSource: http://ok.example/x\nTitle: t\nContent: c"},
			},
			want: []string{"1. http://ok.example/x"},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := ExtractReferences(c.records)
			if len(got) != len(c.want) {
				t.Fatalf("got %v; want %v", got, c.want)
			}
			for i := range c.want {
				if got[i] != c.want[i] {
					t.Errorf("reference %d = %q; want %q", i, got[i], c.want[i])
				}
			}
		})
	}
}
