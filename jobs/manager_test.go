package jobs

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deepresearch/llm"
	"deepresearch/pipeline"
	"deepresearch/search"
	"deepresearch/types"
)

type stubSearcher struct{}

func (stubSearcher) Search(ctx context.Context, query string, opts search.Options) ([]search.Result, error) {
	return []search.Result{{URL: "https://evidence.example/a", Title: "t", Content: "c"}}, nil
}

type fakeRegistry struct {
	ids map[string]bool
}

func (f *fakeRegistry) Has(id string) bool { return f.ids[id] }

type fakePublisher struct {
	mu     sync.Mutex
	events []string
	jobs   []types.Job
}

func (f *fakePublisher) Publish(event string, job types.Job) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
	f.jobs = append(f.jobs, job)
	return nil
}

func (f *fakePublisher) snapshot() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.events...)
}

func happyRunner() *pipeline.Runner {
	generation := llm.NewStubClient(func(prompt string) (string, error) {
		switch {
		case strings.Contains(prompt, "query optimization expert"):
			return "optimized", nil
		case strings.Contains(prompt, "generating a comprehensive verification report"):
			return "report", nil
		case strings.Contains(prompt, "create a"):
			return "draft body", nil
		}
		return "research summary", nil
	})
	verification := llm.NewStubClient(func(prompt string) (string, error) {
		if strings.Contains(prompt, "identifying factual claims") {
			return `[{"claim": "one fact", "importance": "high"}]`, nil
		}
		return `{"accuracy_score": 7, "confidence_level": 7, "corrected_claim": "one fact"}`, nil
	})
	models := &llm.Models{Generation: generation, Verification: verification}
	return pipeline.NewRunner(models, stubSearcher{})
}

func failingRunner() *pipeline.Runner {
	broken := llm.NewStubClient(func(string) (string, error) {
		return "", errors.New("model unavailable")
	})
	models := &llm.Models{Generation: broken, Verification: broken}
	return pipeline.NewRunner(models, stubSearcher{})
}

// waitTerminal polls until the job leaves its running states.
func waitTerminal(t *testing.T, m *Manager, id string) types.Job {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		job, err := m.Get(id)
		require.NoError(t, err)
		if job.Status.Terminal() {
			return job
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("job did not reach a terminal state")
	return types.Job{}
}

func TestSubmitValidation(t *testing.T) {
	registry := &fakeRegistry{ids: map[string]bool{"known": true}}
	m := NewManager(happyRunner(), nil, registry, nil)

	cases := []struct {
		name   string
		query  string
		style  int
		docs   []string
		reason string
	}{
		{"empty query", "   ", 1, nil, "query must not be empty"},
		{"style too low", "q", 0, nil, "style number must be between 1 and 3, got 0"},
		{"style too high", "q", 4, nil, "style number must be between 1 and 3, got 4"},
		{"unknown document", "q", 1, []string{"known", "missing"}, "unknown document id: missing"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := m.Submit(c.query, c.style, c.docs)
			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "want ValidationError, got %v", err)
			assert.Equal(t, c.reason, verr.Reason)
		})
	}

	// Rejected submissions never create jobs.
	assert.Equal(t, 0, m.Count())
}

func TestSubmitRunsJobToCompletion(t *testing.T) {
	publisher := &fakePublisher{}
	m := NewManager(happyRunner(), nil, nil, publisher)

	job, err := m.Submit("what is quantum computing", 1, nil)
	require.NoError(t, err)
	assert.Equal(t, types.JobQueued, job.Status)
	assert.NotEmpty(t, job.ID)
	assert.Equal(t, types.StyleBlogPost, job.Input.Style)

	final := waitTerminal(t, m, job.ID)
	require.Equal(t, types.JobCompleted, final.Status)
	require.NotNil(t, final.Result)
	assert.False(t, final.CompletedAt.IsZero())
	assert.False(t, final.ProcessingStartedAt.IsZero())

	result := final.Result
	assert.Equal(t, "what is quantum computing", result.Query)
	assert.Equal(t, "optimized", result.OptimizedQuery)
	assert.Equal(t, types.StyleBlogPost, result.ContentStyle)
	assert.Equal(t, "draft body", result.DraftContent)
	require.Len(t, result.VerificationResults, len(result.Claims))
	require.NotEmpty(t, result.References)
	assert.Equal(t, "1. https://evidence.example/a", result.References[0])

	assert.Equal(t, []string{"research.completed"}, publisher.snapshot())
}

func TestFailedJobKeepsPartialState(t *testing.T) {
	publisher := &fakePublisher{}
	m := NewManager(failingRunner(), nil, nil, publisher)

	job, err := m.Submit("doomed query", 2, nil)
	require.NoError(t, err)

	final := waitTerminal(t, m, job.ID)
	require.Equal(t, types.JobError, final.Status)
	assert.False(t, final.ErrorAt.IsZero())
	assert.Contains(t, final.ErrorMessage, "optimize query")

	// Partial workflow state survives the failure.
	require.NotNil(t, final.Result)
	assert.Equal(t, types.WorkflowError, final.Result.Status)
	assert.Equal(t, "doomed query", final.Result.Query)

	assert.Equal(t, []string{"research.error"}, publisher.snapshot())
}

func TestGetUnknownJob(t *testing.T) {
	m := NewManager(happyRunner(), nil, nil, nil)
	_, err := m.Get("no-such-id")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReapRemovesOnlyExpiredTerminalJobs(t *testing.T) {
	m := NewManager(happyRunner(), nil, nil, nil)
	now := time.Now()

	m.mu.Lock()
	m.jobs["expired-completed"] = &types.Job{
		ID: "expired-completed", Status: types.JobCompleted,
		CompletedAt: now.Add(-25 * time.Hour),
	}
	m.jobs["expired-error"] = &types.Job{
		ID: "expired-error", Status: types.JobError,
		ErrorAt: now.Add(-25 * time.Hour),
	}
	m.jobs["fresh-completed"] = &types.Job{
		ID: "fresh-completed", Status: types.JobCompleted,
		CompletedAt: now.Add(-1 * time.Hour),
	}
	m.jobs["old-but-running"] = &types.Job{
		ID: "old-but-running", Status: types.JobProcessing,
		CreatedAt: now.Add(-48 * time.Hour),
	}
	m.mu.Unlock()

	removed := m.Reap(now)
	assert.Equal(t, 2, removed)

	_, err := m.Get("expired-completed")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = m.Get("expired-error")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = m.Get("fresh-completed")
	assert.NoError(t, err)
	_, err = m.Get("old-but-running")
	assert.NoError(t, err)
}

func TestConcurrentSubmissionsReturnStableSnapshots(t *testing.T) {
	m := NewManager(happyRunner(), nil, nil, nil)

	const workers = 8
	const perWorker = 25

	var mu sync.Mutex
	var ids []string

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				job, err := m.Submit("concurrent query", 1, nil)
				if err != nil {
					t.Errorf("Submit failed: %v", err)
					return
				}
				// The returned copy is taken before the background
				// task starts, so it is always the queued state.
				if job.Status != types.JobQueued {
					t.Errorf("snapshot status = %q; want queued", job.Status)
				}
				if job.ID == "" || job.CreatedAt.IsZero() {
					t.Errorf("incomplete snapshot: %+v", job)
				}
				mu.Lock()
				ids = append(ids, job.ID)
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	require.Equal(t, workers*perWorker, m.Count())
	for _, id := range ids {
		final := waitTerminal(t, m, id)
		assert.Equal(t, types.JobCompleted, final.Status)
	}
}

type fakeRetriever struct {
	calls int
	text  string
}

func (f *fakeRetriever) RelevantContext(ctx context.Context, query string) (string, error) {
	f.calls++
	return f.text, nil
}

func TestDocumentContextOnlyGatheredWhenRequested(t *testing.T) {
	retriever := &fakeRetriever{text: "chunk text"}
	registry := &fakeRegistry{ids: map[string]bool{"doc-1": true}}
	m := NewManager(happyRunner(), retriever, registry, nil)

	job, err := m.Submit("plain query", 1, nil)
	require.NoError(t, err)
	waitTerminal(t, m, job.ID)
	assert.Equal(t, 0, retriever.calls, "retrieval must be skipped without document ids")

	job, err = m.Submit("document query", 1, []string{"doc-1"})
	require.NoError(t, err)
	final := waitTerminal(t, m, job.ID)
	assert.Equal(t, 1, retriever.calls)
	require.NotNil(t, final.Result)
	assert.Equal(t, "chunk text", final.Result.PDFContext)
}
