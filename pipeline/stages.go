package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"deepresearch/config"
	"deepresearch/llm"
	"deepresearch/search"
	"deepresearch/types"
)

// optimizeQuery rewrites the query for downstream processing. Any model
// failure here is fatal to the pipeline.
func (r *Runner) optimizeQuery(ctx context.Context, state *types.WorkflowState) error {
	prompt, err := llm.OptimizeQuery.Render(map[string]interface{}{
		"Query": state.Query,
	})
	if err != nil {
		return err
	}

	optimized, err := r.models.Generation.Generate(ctx, prompt)
	if err != nil {
		return err
	}

	state.OptimizedQuery = strings.TrimSpace(llm.StripThinkTags(optimized))
	return nil
}

// conductResearch searches the web, summarizes the results and, when
// document context is present, merges it in. Every failure inside this
// stage is converted into a placeholder research output so the pipeline can
// continue; the stage never fails the workflow.
func (r *Runner) conductResearch(ctx context.Context, state *types.WorkflowState) {
	results, err := r.searcher.Search(ctx, state.OptimizedQuery, search.Options{
		Depth:      search.DepthBasic,
		MaxResults: config.ResearchMaxResults,
	})
	if err != nil {
		log.Printf("Search failed during research: %v", err)
		state.ResearchOutput = fmt.Sprintf("Research could not be completed due to an error: %v", err)
		return
	}
	if r.EnrichResults {
		results = search.EnrichResults(results)
	}

	prompt, err := llm.SummarizeResults.Render(map[string]interface{}{
		"Query":         state.OptimizedQuery,
		"SearchResults": search.FormatResults(results),
	})
	if err != nil {
		state.ResearchOutput = fmt.Sprintf("Research could not be completed due to an error: %v", err)
		return
	}

	summary, err := r.models.Generation.Generate(ctx, prompt)
	if err != nil {
		log.Printf("Summarization failed during research: %v", err)
		state.ResearchOutput = fmt.Sprintf("Could not summarize search results due to an error: %v", err)
		return
	}
	summary = llm.StripThinkTags(summary)

	if strings.TrimSpace(state.PDFContext) == "" {
		state.ResearchOutput = summary
		return
	}

	// Merge the web summary with the uploaded-document context, keeping
	// the two sources distinguishable.
	log.Printf("Enhancing research with document context...")
	prompt, err = llm.EnhanceWithDocuments.Render(map[string]interface{}{
		"Query":       state.OptimizedQuery,
		"WebResearch": summary,
		"PDFContext":  state.PDFContext,
	})
	if err != nil {
		state.ResearchOutput = summary
		return
	}

	enhanced, err := r.models.Generation.Generate(ctx, prompt)
	if err != nil {
		log.Printf("Document enhancement failed, keeping web summary: %v", err)
		state.ResearchOutput = summary
		return
	}
	state.ResearchOutput = llm.StripThinkTags(enhanced)
}

// extractClaims pulls the most significant factual claims out of the
// research output. Decode or model failures produce a single sentinel
// claim; this stage never fails the workflow.
func (r *Runner) extractClaims(ctx context.Context, state *types.WorkflowState) {
	prompt, err := llm.ExtractClaims.Render(map[string]interface{}{
		"ResearchOutput": state.ResearchOutput,
		"MinClaims":      config.MinClaims,
		"MaxClaims":      config.MaxClaims,
	})
	if err != nil {
		state.Claims = []types.Claim{{Claim: fmt.Sprintf("Error extracting claims: %v", err), Importance: types.ImportanceLow}}
		return
	}

	raw, err := r.models.Verification.Generate(ctx, prompt)
	if err != nil {
		log.Printf("Claim extraction failed: %v", err)
		state.Claims = []types.Claim{{Claim: fmt.Sprintf("Error extracting claims: %v", err), Importance: types.ImportanceLow}}
		return
	}

	var claims []types.Claim
	if err := llm.DecodeJSON(raw, &claims); err != nil {
		// The model sometimes returns a single object instead of an
		// array; wrap it before giving up.
		var single types.Claim
		if err := llm.DecodeJSON(raw, &single); err == nil && single.Claim != "" {
			state.Claims = []types.Claim{single}
			return
		}
		log.Printf("Claim extraction returned unusable output: %v", err)
		state.Claims = []types.Claim{{Claim: "No claims could be extracted", Importance: types.ImportanceLow}}
		return
	}
	if len(claims) == 0 {
		state.Claims = []types.Claim{{Claim: "No claims could be extracted", Importance: types.ImportanceLow}}
		return
	}
	state.Claims = claims
}

// claimAssessment is the structured shape demanded from the verification
// model for a single claim.
type claimAssessment struct {
	AccuracyScore   int      `json:"accuracy_score"`
	ConfidenceLevel int      `json:"confidence_level"`
	Inaccuracies    []string `json:"inaccuracies"`
	MissingContext  []string `json:"missing_context"`
	PotentialBiases []string `json:"potential_biases"`
	CorrectedClaim  string   `json:"corrected_claim"`
}

// verifyClaims checks every claim independently against fresh search
// evidence, then extracts the deduplicated reference list from the gathered
// evidence. Per-claim failures produce a neutral fallback record; this
// stage never fails the workflow and always emits one record per claim, in
// claim order.
func (r *Runner) verifyClaims(ctx context.Context, state *types.WorkflowState) {
	records := make([]types.VerificationRecord, 0, len(state.Claims))

	for _, claim := range state.Claims {
		record := r.verifyClaim(ctx, claim)
		records = append(records, record)
	}

	state.VerificationResults = records
	state.References = ExtractReferences(records)
}

// verifyClaim runs the verification-tuned search and structured assessment
// for one claim.
func (r *Runner) verifyClaim(ctx context.Context, claim types.Claim) types.VerificationRecord {
	record := types.VerificationRecord{
		Claim:      claim.Claim,
		Importance: claim.Importance,
	}

	results, err := r.searcher.Search(ctx, claim.Claim, search.Options{
		Depth:      search.DepthAdvanced,
		MaxResults: config.VerificationMaxResults,
	})
	if err != nil {
		log.Printf("Verification search failed for claim %q: %v", claim.Claim, err)
		return neutralFallback(record, err)
	}
	record.VerificationData = search.FormatResults(results)

	prompt, err := llm.VerifyClaim.Render(map[string]interface{}{
		"Claim":            claim.Claim,
		"VerificationData": record.VerificationData,
	})
	if err != nil {
		return neutralFallback(record, err)
	}

	raw, err := r.models.Verification.Generate(ctx, prompt)
	if err != nil {
		log.Printf("Verification model failed for claim %q: %v", claim.Claim, err)
		return neutralFallback(record, err)
	}

	var assessment claimAssessment
	if err := llm.DecodeJSON(raw, &assessment); err != nil {
		log.Printf("Error parsing fact-check response: %v", err)
		return neutralFallback(record, err)
	}

	record.AccuracyScore = clampScore(assessment.AccuracyScore)
	record.ConfidenceLevel = clampScore(assessment.ConfidenceLevel)
	record.Inaccuracies = assessment.Inaccuracies
	record.MissingContext = assessment.MissingContext
	record.PotentialBiases = assessment.PotentialBiases
	record.CorrectedClaim = assessment.CorrectedClaim
	if record.CorrectedClaim == "" {
		record.CorrectedClaim = claim.Claim
	}
	return record
}

// neutralFallback fills a record with the neutral verification outcome used
// when a claim could not be checked.
func neutralFallback(record types.VerificationRecord, cause error) types.VerificationRecord {
	record.AccuracyScore = config.NeutralScore
	record.ConfidenceLevel = config.NeutralScore
	record.Inaccuracies = []string{fmt.Sprintf("Could not properly verify: %v", cause)}
	record.MissingContext = []string{"Verification process failed"}
	record.PotentialBiases = []string{"Unable to assess due to verification failure"}
	record.CorrectedClaim = record.Claim
	return record
}

func clampScore(n int) int {
	if n < 0 {
		return 0
	}
	if n > 10 {
		return 10
	}
	return n
}

// generateFactCheckReport produces the overall verification report. Failure
// here is fatal: drafting depends on the report.
func (r *Runner) generateFactCheckReport(ctx context.Context, state *types.WorkflowState) error {
	// Evidence text is stripped from the prompt payload to control
	// prompt size.
	cleaned := make([]types.VerificationRecord, len(state.VerificationResults))
	copy(cleaned, state.VerificationResults)
	for i := range cleaned {
		cleaned[i].VerificationData = ""
	}
	resultsJSON, err := json.MarshalIndent(cleaned, "", "  ")
	if err != nil {
		return err
	}

	prompt, err := llm.FactCheckReport.Render(map[string]interface{}{
		"ResearchOutput":      state.ResearchOutput,
		"VerificationResults": string(resultsJSON),
		"References":          strings.Join(state.References, "\n"),
	})
	if err != nil {
		return err
	}

	report, err := r.models.Generation.Generate(ctx, prompt)
	if err != nil {
		return err
	}
	state.FactCheckReport = llm.StripThinkTags(report)
	return nil
}

// createDraftContent produces the styled artifact and completes the
// workflow. Failure here is fatal. The raw model output is sanitized of
// reasoning delimiters before storage.
func (r *Runner) createDraftContent(ctx context.Context, state *types.WorkflowState) error {
	prompt, err := llm.DraftContent.Render(map[string]interface{}{
		"Style":          string(state.ContentStyle),
		"StyleGuidance":  llm.StyleGuidance(string(state.ContentStyle)),
		"OptimizedQuery": state.OptimizedQuery,
		"Research":       state.ResearchOutput,
		"FactCheck":      state.FactCheckReport,
		"References":     strings.Join(state.References, "\n"),
	})
	if err != nil {
		return err
	}

	draft, err := r.models.Generation.Generate(ctx, prompt)
	if err != nil {
		return err
	}

	state.DraftContent = strings.TrimSpace(llm.StripThinkTags(draft))
	state.Status = types.WorkflowCompleted
	return nil
}
