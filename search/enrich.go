package search

import (
	"log"
	"sync"
	"time"

	readability "github.com/go-shiori/go-readability"

	"deepresearch/config"
)

const enrichTimeout = 30 * time.Second

// EnrichResults fetches the page behind every thin result and replaces its
// snippet with the readable article text, using a small worker pool. Results
// with a usable snippet are left alone. Fetch failures keep the original
// snippet; enrichment is best-effort and never fails the caller.
func EnrichResults(results []Result) []Result {
	var wg sync.WaitGroup
	indexChan := make(chan int, len(results))

	for i := 0; i < config.EnrichWorkerCount; i++ {
		go func(workerID int) {
			for idx := range indexChan {
				if err := enrichResult(&results[idx]); err != nil {
					log.Printf("[Worker %d] Failed to enrich %s: %v", workerID, results[idx].URL, err)
				}
				wg.Done()
			}
		}(i)
	}

	for i := range results {
		if results[i].URL == "" || len(results[i].Content) >= config.MinContentLength {
			continue
		}
		wg.Add(1)
		indexChan <- i
	}

	wg.Wait()
	close(indexChan)
	return results
}

// enrichResult extracts readable text for a single result.
func enrichResult(r *Result) error {
	article, err := readability.FromURL(r.URL, enrichTimeout)
	if err != nil {
		return err
	}
	if article.TextContent != "" {
		r.Content = article.TextContent
	}
	if r.Title == "" {
		r.Title = article.Title
	}
	return nil
}
