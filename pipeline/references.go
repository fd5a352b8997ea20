package pipeline

import (
	"fmt"
	"regexp"

	"deepresearch/types"
)

var sourceURLRe = regexp.MustCompile(`Source: (https?://[^\n]+)`)

// ExtractReferences scans each record's evidence text for URL-bearing
// "Source:" lines and builds the numbered citation list. Order follows
// record order, then in-text order. A URL already present in the list is
// skipped, so numbering is dense and strictly increasing from 1.
func ExtractReferences(results []types.VerificationRecord) []string {
	var references []string
	seen := make(map[string]struct{})

	for _, result := range results {
		for _, match := range sourceURLRe.FindAllStringSubmatch(result.VerificationData, -1) {
			url := match[1]
			if _, ok := seen[url]; ok {
				continue
			}
			seen[url] = struct{}{}
			references = append(references, fmt.Sprintf("%d. %s", len(references)+1, url))
		}
	}
	return references
}
