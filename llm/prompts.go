package llm

import (
	"fmt"
	"strings"
	"text/template"
)

// Prompt is a named template contract. Stages render a prompt with their
// variables and hand the result to a model slot.
type Prompt struct {
	Name string
	tmpl *template.Template
}

func mustPrompt(name, text string) *Prompt {
	return &Prompt{
		Name: name,
		tmpl: template.Must(template.New(name).Parse(strings.TrimSpace(text))),
	}
}

// Render fills the template with the given variables.
func (p *Prompt) Render(vars map[string]interface{}) (string, error) {
	var b strings.Builder
	if err := p.tmpl.Execute(&b, vars); err != nil {
		return "", fmt.Errorf("render prompt %s: %w", p.Name, err)
	}
	return b.String(), nil
}

// OptimizeQuery rewrites a natural language query for downstream processing.
var OptimizeQuery = mustPrompt("optimize_query", `
You are a query optimization expert. Your task is to transform natural language queries into
detailed, domain-specific optimized queries that can be processed by specialized systems.

Original query: {{.Query}}

Please provide an optimized version of this query that:
1. Is more specific and detailed
2. Includes relevant domain terminology
3. Is structured for better processing by downstream systems
4. Maintains the original intent of the query

Respond with the optimized query only.
`)

// SummarizeResults turns formatted search results into a research narrative.
var SummarizeResults = mustPrompt("summarize_results", `
You are a research assistant that summarizes and structures search results.

Given the following raw search results:

{{.SearchResults}}

Please provide a well-structured summary that:
1. Extracts the key information
2. Organizes it in a clear, logical manner
3. Removes any redundant or irrelevant information
4. Cites sources appropriately
5. Presents a comprehensive overview of the topic

Your summary should be detailed enough to provide valuable insights on the query: {{.Query}}
`)

// EnhanceWithDocuments merges the web summary with retrieval context from
// uploaded documents.
var EnhanceWithDocuments = mustPrompt("enhance_with_documents", `
You are a research assistant combining web research with document analysis.

Original query: {{.Query}}

Web research findings:
{{.WebResearch}}

Additional context from uploaded documents:
{{.PDFContext}}

Please provide a comprehensive research output that:
1. Integrates insights from both web research and document context
2. Highlights how the document context supports or contradicts web findings
3. Provides a more complete picture by combining both sources
4. Maintains accuracy and cites sources appropriately

Your response should be thorough, well-organized, and clearly indicate when information comes from the uploaded documents vs. web sources.
`)

// ExtractClaims asks for the most significant factual claims as JSON.
var ExtractClaims = mustPrompt("extract_claims", `
You are an expert at identifying factual claims in text.
From the following research output, extract the {{.MinClaims}}-{{.MaxClaims}} most significant factual claims that should be verified.

Research output:
{{.ResearchOutput}}

For each claim, provide:
1. The claim statement
2. The importance of verifying this claim (high/medium/low)

Format your response as a JSON array of objects with "claim" and "importance" fields. Provide only valid JSON.
`)

// VerifyClaim asks for a structured assessment of a single claim against
// the supplied search evidence.
var VerifyClaim = mustPrompt("verify_claim", `
You are a critical fact-checker analyzing research content. Evaluate the following claim:

CLAIM: {{.Claim}}

Based on your analysis and the provided verification data:
{{.VerificationData}}

Please provide a detailed assessment with:
1. Accuracy score (0-10)
2. Confidence level (0-10)
3. Specific inaccuracies or misrepresentations (if any)
4. Missing context or nuance
5. Potential biases in the original claim

Format your response as a JSON object with the following structure:
{
    "accuracy_score": <score>,
    "confidence_level": <level>,
    "inaccuracies": ["<issue1>", "<issue2>", ...],
    "missing_context": ["<context1>", "<context2>", ...],
    "potential_biases": ["<bias1>", "<bias2>", ...],
    "corrected_claim": "<improved version of the claim>"
}

IMPORTANT: Do not include any <think> or </think> tags in your response. Provide only valid JSON.
`)

// FactCheckReport produces the overall verification report.
var FactCheckReport = mustPrompt("fact_check_report", `
You are a critical fact-checker generating a comprehensive verification report.

Original research output:
{{.ResearchOutput}}

Detailed verification results for key claims:
{{.VerificationResults}}

References used in verification:
{{.References}}

Please provide a comprehensive fact-check report that:
1. Summarizes the overall reliability of the research (with an overall score from 0-10)
2. Highlights the most significant accuracy issues
3. Provides context for any misleading or incomplete information
4. Suggests improvements to make the research more accurate and balanced
5. Includes a properly formatted "References" section at the end listing all sources used in verification

Your report should be detailed, fair, and constructive. Make sure to cite specific references by number when discussing claims.
`)

// DraftContent produces the styled content artifact.
var DraftContent = mustPrompt("draft_content", `
Based on the following research results, create a {{.Style}} about the query: {{.OptimizedQuery}}

Write only about the research findings, not about the process (fact checking, query optimization).

Research findings:
{{.Research}}

Fact-check report:
{{.FactCheck}}

Style guidance: {{.StyleGuidance}}

End the draft with this references list:
{{.References}}

The content should be informative, engaging, and suitable for the target audience.
Please structure the draft in a clear, engaging {{.Style}} format.
Do not include any <think> or </think> tags in your response.
`)

// StyleGuidance returns per-style drafting instructions.
func StyleGuidance(style string) string {
	switch style {
	case "detailed report":
		return "Structure a comprehensive report with executive summary, methodology, findings, analysis, and recommendations. Include relevant data points and cite sources appropriately."
	case "executive summary":
		return "Provide a concise executive summary highlighting key findings, implications, and recommended actions. Focus on business impact and strategic considerations."
	default:
		return "Create an engaging blog post that presents the research findings in a conversational tone with clear headings, examples, and actionable insights."
	}
}
