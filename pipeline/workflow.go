package pipeline

import (
	"context"
	"fmt"
	"log"

	"deepresearch/llm"
	"deepresearch/search"
	"deepresearch/types"
)

// Runner executes the research workflow: query optimization, web research,
// claim extraction, claim verification, fact-check report, content draft.
// Stages run strictly in that order; each stage's output seeds the next.
type Runner struct {
	models   *llm.Models
	searcher search.Provider

	// EnrichResults toggles readability enrichment of thin search results.
	// Off by default; tests and callers without network keep it off.
	EnrichResults bool
}

// NewRunner creates a workflow runner.
func NewRunner(models *llm.Models, searcher search.Provider) *Runner {
	return &Runner{models: models, searcher: searcher}
}

// Run executes the complete workflow for one query. The returned state is
// always usable: on a fatal stage error the state carries status "error"
// and every field computed before the failure, and the error describes the
// triggering stage. pdfContext is optional document context gathered before
// the pipeline starts.
func (r *Runner) Run(ctx context.Context, query string, style types.ContentStyle, pdfContext string) (state *types.WorkflowState, err error) {
	state = &types.WorkflowState{
		Query:        query,
		PDFContext:   pdfContext,
		ContentStyle: style,
		Status:       types.WorkflowInProgress,
	}

	// A panic in any stage is absorbed into the error state; partial
	// results stay on the state.
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("workflow panic: %v", rec)
			state.Status = types.WorkflowError
		}
	}()

	log.Printf("Optimizing query...")
	if err := r.optimizeQuery(ctx, state); err != nil {
		state.Status = types.WorkflowError
		return state, fmt.Errorf("optimize query: %w", err)
	}

	log.Printf("Conducting research on: %s", state.OptimizedQuery)
	r.conductResearch(ctx, state)

	log.Printf("Extracting key claims from research output...")
	r.extractClaims(ctx, state)

	log.Printf("Verifying %d claims against search evidence...", len(state.Claims))
	r.verifyClaims(ctx, state)

	log.Printf("Generating fact-check report...")
	if err := r.generateFactCheckReport(ctx, state); err != nil {
		state.Status = types.WorkflowError
		return state, fmt.Errorf("generate fact-check report: %w", err)
	}

	log.Printf("Drafting content in %s style...", state.ContentStyle)
	if err := r.createDraftContent(ctx, state); err != nil {
		state.Status = types.WorkflowError
		return state, fmt.Errorf("create draft content: %w", err)
	}

	return state, nil
}
