package jobs

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"deepresearch/config"
	"deepresearch/pipeline"
	"deepresearch/types"
)

// ErrNotFound is returned when a job id is unknown.
var ErrNotFound = errors.New("job not found")

// ValidationError rejects a submission before any job is created.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// ContextProvider supplies document-derived context for a query. A nil
// provider behaves as if it always returned empty text.
type ContextProvider interface {
	RelevantContext(ctx context.Context, query string) (string, error)
}

// DocumentRegistry answers whether an uploaded document id exists.
type DocumentRegistry interface {
	Has(id string) bool
}

// Publisher receives job lifecycle events. Implementations must be safe for
// concurrent use.
type Publisher interface {
	Publish(event string, job types.Job) error
}

// Manager owns the in-memory job table: it creates jobs, runs each one on
// its own goroutine, serves snapshot reads, and reaps expired terminal
// jobs. No job's fields are ever written by more than one goroutine; all
// access goes through the table lock.
type Manager struct {
	mu   sync.RWMutex
	jobs map[string]*types.Job

	runner    *pipeline.Runner
	retriever ContextProvider
	documents DocumentRegistry
	publisher Publisher

	retention time.Duration
	stopOnce  sync.Once
	stop      chan struct{}
}

// NewManager creates a job manager. retriever, documents and publisher may
// be nil to disable document context, document validation, and event
// publishing respectively.
func NewManager(runner *pipeline.Runner, retriever ContextProvider, documents DocumentRegistry, publisher Publisher) *Manager {
	return &Manager{
		jobs:      make(map[string]*types.Job),
		runner:    runner,
		retriever: retriever,
		documents: documents,
		publisher: publisher,
		retention: config.JobRetention,
		stop:      make(chan struct{}),
	}
}

// Submit validates the request, creates a queued job and starts its
// background task. Validation failures return a *ValidationError and no job
// is created.
func (m *Manager) Submit(query string, styleNumber int, documentIDs []string) (types.Job, error) {
	if strings.TrimSpace(query) == "" {
		return types.Job{}, &ValidationError{Reason: "query must not be empty"}
	}

	style, ok := types.StyleFromNumber(styleNumber)
	if !ok {
		return types.Job{}, &ValidationError{Reason: fmt.Sprintf("style number must be between 1 and 3, got %d", styleNumber)}
	}

	for _, id := range documentIDs {
		if m.documents == nil || !m.documents.Has(id) {
			return types.Job{}, &ValidationError{Reason: fmt.Sprintf("unknown document id: %s", id)}
		}
	}

	job := &types.Job{
		ID:     uuid.New().String(),
		Status: types.JobQueued,
		Input: types.JobInput{
			Query:       query,
			Style:       style,
			DocumentIDs: documentIDs,
		},
		CreatedAt: time.Now(),
	}

	// Snapshot before the background task starts so the returned copy
	// cannot be read while process writes the job's fields.
	m.mu.Lock()
	m.jobs[job.ID] = job
	snapshot := *job
	m.mu.Unlock()

	go m.process(job.ID)

	return snapshot, nil
}

// Get returns a consistent snapshot of a job, or ErrNotFound.
func (m *Manager) Get(id string) (types.Job, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	job, ok := m.jobs[id]
	if !ok {
		return types.Job{}, ErrNotFound
	}
	return *job, nil
}

// Count returns the number of jobs currently in the table.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.jobs)
}

// process is the background task for one job. A crash inside the workflow
// is caught here: the job is marked errored and other jobs are unaffected.
func (m *Manager) process(id string) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("Job %s crashed: %v", id, rec)
			m.fail(id, fmt.Sprintf("internal error: %v", rec), nil)
		}
	}()

	m.mu.Lock()
	job, ok := m.jobs[id]
	if !ok {
		m.mu.Unlock()
		return
	}
	job.Status = types.JobProcessing
	job.ProcessingStartedAt = time.Now()
	input := job.Input
	m.mu.Unlock()

	log.Printf("Processing research job %s: %q (%s)", id, input.Query, input.Style)

	ctx := context.Background()

	// Document context is gathered off the request path, before the
	// pipeline starts.
	pdfContext := ""
	if m.retriever != nil && len(input.DocumentIDs) > 0 {
		text, err := m.retriever.RelevantContext(ctx, input.Query)
		if err != nil {
			log.Printf("Job %s: retrieval context failed, continuing without documents: %v", id, err)
		} else {
			pdfContext = text
			log.Printf("Job %s: retrieved %d characters of document context", id, len(pdfContext))
		}
	}

	state, err := m.runner.Run(ctx, input.Query, input.Style, pdfContext)
	if err != nil {
		log.Printf("Job %s failed: %v", id, err)
		m.fail(id, err.Error(), state)
		return
	}

	m.mu.Lock()
	if job, ok := m.jobs[id]; ok {
		job.Status = types.JobCompleted
		job.CompletedAt = time.Now()
		job.Result = state
	}
	m.mu.Unlock()

	log.Printf("Research job %s completed", id)
	m.publish("research.completed", id)
}

// fail transitions a job to its terminal error state, preserving whatever
// partial state the workflow produced.
func (m *Manager) fail(id, message string, partial *types.WorkflowState) {
	m.mu.Lock()
	if job, ok := m.jobs[id]; ok {
		job.Status = types.JobError
		job.ErrorAt = time.Now()
		job.ErrorMessage = message
		job.Result = partial
	}
	m.mu.Unlock()

	m.publish("research.error", id)
}

func (m *Manager) publish(event string, id string) {
	if m.publisher == nil {
		return
	}
	snapshot, err := m.Get(id)
	if err != nil {
		return
	}
	if err := m.publisher.Publish(event, snapshot); err != nil {
		log.Printf("Failed to publish %s for job %s: %v", event, id, err)
	}
}

// StartReaper launches the background sweep that removes terminal jobs
// older than the retention window. Call Stop to end it.
func (m *Manager) StartReaper() {
	go func() {
		ticker := time.NewTicker(config.ReaperInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				removed := m.Reap(time.Now())
				if removed > 0 {
					log.Printf("Reaped %d expired research jobs", removed)
				}
			case <-m.stop:
				return
			}
		}
	}()
}

// Reap removes terminal jobs whose terminal timestamp is older than the
// retention window relative to now, returning how many were removed.
func (m *Manager) Reap(now time.Time) int {
	cutoff := now.Add(-m.retention)

	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for id, job := range m.jobs {
		if !job.Status.Terminal() {
			continue
		}
		terminalAt := job.CompletedAt
		if job.Status == types.JobError {
			terminalAt = job.ErrorAt
		}
		if terminalAt.Before(cutoff) {
			delete(m.jobs, id)
			removed++
		}
	}
	return removed
}

// Stop ends the reaper goroutine.
func (m *Manager) Stop() {
	m.stopOnce.Do(func() { close(m.stop) })
}
