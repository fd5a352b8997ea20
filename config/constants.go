package config

import "time"

// Pipeline Constants
const (
	// MinClaims is the lower bound of claims the extraction stage asks for
	MinClaims = 3

	// MaxClaims is the upper bound of claims the extraction stage asks for
	MaxClaims = 5

	// NeutralScore is the accuracy/confidence score assigned when a claim
	// could not be verified
	NeutralScore = 5
)

// Search Constants
const (
	// ResearchMaxResults caps results for the initial research search
	ResearchMaxResults = 10

	// VerificationMaxResults caps results for per-claim verification searches
	VerificationMaxResults = 5

	// MinContentLength is the snippet length below which a search result is
	// considered thin and eligible for readability enrichment
	MinContentLength = 200

	// EnrichWorkerCount limits concurrent readability extractions
	EnrichWorkerCount = 5

	// SearchTimeout is the per-request timeout for the search provider
	SearchTimeout = 30 * time.Second
)

// LLM Constants
const (
	// GenerateTimeout is the per-call timeout for model completions
	GenerateTimeout = 120 * time.Second

	// DefaultCohereModel is the chat model used when COHERE_MODEL is unset
	DefaultCohereModel = "command-r-plus-08-2024"

	// DefaultGroqModel is the chat model used when GROQ_MODEL is unset
	DefaultGroqModel = "deepseek-r1-distill-llama-70b"
)

// Job Constants
const (
	// JobRetention is how long terminal jobs are kept before the reaper
	// removes them
	JobRetention = 24 * time.Hour

	// ReaperInterval is how often the reaper sweeps the job table
	ReaperInterval = 1 * time.Hour
)

// Retrieval Constants
const (
	// ChunkSize is the target character length of a document chunk
	ChunkSize = 1200

	// ChunkOverlap is the number of characters shared between adjacent chunks
	ChunkOverlap = 200

	// TopKChunks is how many chunks are concatenated into retrieval context
	TopKChunks = 4
)
