package types

// ContentStyle is the output format requested at submission time.
type ContentStyle string

const (
	StyleBlogPost         ContentStyle = "blog post"
	StyleDetailedReport   ContentStyle = "detailed report"
	StyleExecutiveSummary ContentStyle = "executive summary"
)

// StyleFromNumber maps the numeric style selector (1-3) to a ContentStyle.
// Returns false for anything outside the valid range.
func StyleFromNumber(n int) (ContentStyle, bool) {
	switch n {
	case 1:
		return StyleBlogPost, true
	case 2:
		return StyleDetailedReport, true
	case 3:
		return StyleExecutiveSummary, true
	}
	return "", false
}

// Importance grades how much a claim matters to the research output.
type Importance string

const (
	ImportanceHigh   Importance = "high"
	ImportanceMedium Importance = "medium"
	ImportanceLow    Importance = "low"
)

// Claim is a discrete factual assertion extracted from the research
// narrative, tagged with how important it is to verify.
type Claim struct {
	Claim      string     `json:"claim"`
	Importance Importance `json:"importance"`
}

// VerificationRecord is the outcome of fact-checking one claim against
// fresh search evidence. Created by the verification stage and never
// mutated afterward.
type VerificationRecord struct {
	Claim            string     `json:"claim"`
	Importance       Importance `json:"importance"`
	AccuracyScore    int        `json:"accuracy_score"`
	ConfidenceLevel  int        `json:"confidence_level"`
	Inaccuracies     []string   `json:"inaccuracies"`
	MissingContext   []string   `json:"missing_context"`
	PotentialBiases  []string   `json:"potential_biases"`
	CorrectedClaim   string     `json:"corrected_claim"`
	// VerificationData holds the raw search evidence for reference
	// extraction. It is stripped from the record before the record is
	// rendered into any report prompt.
	VerificationData string `json:"verification_data,omitempty"`
}

// WorkflowStatus tracks a workflow run from start to finish.
type WorkflowStatus string

const (
	WorkflowInProgress WorkflowStatus = "in_progress"
	WorkflowCompleted  WorkflowStatus = "completed"
	WorkflowError      WorkflowStatus = "error"
)

// WorkflowState is the single record threaded through the pipeline. Each
// stage fills in its own fields; once written, a field is never invalidated
// by a downstream stage, and Query is immutable after creation.
type WorkflowState struct {
	Query               string               `json:"query"`
	OptimizedQuery      string               `json:"optimized_query"`
	PDFContext          string               `json:"pdf_context,omitempty"`
	ResearchOutput      string               `json:"research_output"`
	Claims              []Claim              `json:"claims"`
	VerificationResults []VerificationRecord `json:"verification_results"`
	References          []string             `json:"references"`
	FactCheckReport     string               `json:"fact_check_report"`
	ContentStyle        ContentStyle         `json:"content_style"`
	DraftContent        string               `json:"draft_content"`
	Status              WorkflowStatus       `json:"status"`
}
