package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deepresearch/jobs"
	"deepresearch/llm"
	"deepresearch/pipeline"
	"deepresearch/retrieval"
	"deepresearch/search"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	m.Run()
}

type scriptedSearcher struct{}

func (scriptedSearcher) Search(ctx context.Context, query string, opts search.Options) ([]search.Result, error) {
	return []search.Result{{URL: "https://src.example/a", Title: "t", Content: "c"}}, nil
}

func testRouter() *gin.Engine {
	generation := llm.NewStubClient(func(prompt string) (string, error) {
		switch {
		case strings.Contains(prompt, "query optimization expert"):
			return "optimized", nil
		case strings.Contains(prompt, "generating a comprehensive verification report"):
			return "report text", nil
		case strings.Contains(prompt, "create a"):
			return "draft text", nil
		}
		return "summary text", nil
	})
	verification := llm.NewStubClient(func(prompt string) (string, error) {
		if strings.Contains(prompt, "identifying factual claims") {
			return `[{"claim": "a fact", "importance": "high"}]`, nil
		}
		return `{"accuracy_score": 9, "confidence_level": 8, "corrected_claim": "a fact"}`, nil
	})
	models := &llm.Models{Generation: generation, Verification: verification}
	runner := pipeline.NewRunner(models, scriptedSearcher{})
	manager := jobs.NewManager(runner, nil, nil, nil)

	return NewRouter(&Server{Jobs: manager})
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var reqBody *strings.Reader
	if body == "" {
		reqBody = strings.NewReader("")
	} else {
		reqBody = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var parsed map[string]interface{}
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &parsed))
	}
	return w, parsed
}

func TestStartResearchValidation(t *testing.T) {
	r := testRouter()

	w, _ := doJSON(t, r, http.MethodPost, "/research/start", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, resp := doJSON(t, r, http.MethodPost, "/research/start", `{"query": "q", "style": 7}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, resp["error"], "style number must be between 1 and 3")
}

func TestResearchLifecycle(t *testing.T) {
	r := testRouter()

	w, resp := doJSON(t, r, http.MethodPost, "/research/start", `{"query": "solar power trends"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "success", resp["status"])
	assert.Equal(t, "Research initiated successfully", resp["message"])

	id, _ := resp["research_id"].(string)
	require.NotEmpty(t, id)

	// Poll until the background job finishes.
	var final map[string]interface{}
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		w, body := doJSON(t, r, http.MethodGet, "/research/results/"+id, "")
		require.Equal(t, http.StatusOK, w.Code)
		status, _ := body["status"].(string)
		if status == "completed" || status == "error" {
			final = body
			break
		}
		time.Sleep(5 * time.Millisecond)
	}
	require.NotNil(t, final, "job never reached a terminal state")
	require.Equal(t, "completed", final["status"])

	query, ok := final["query"].(map[string]interface{})
	require.True(t, ok, "completed payload must nest the query: %v", final)
	assert.Equal(t, "solar power trends", query["original"])
	assert.Equal(t, "optimized", query["optimized"])

	content := final["content"].(map[string]interface{})
	assert.Equal(t, "blog post", content["style"])
	assert.Equal(t, "draft text", content["draft"])

	factCheck := final["fact_check"].(map[string]interface{})
	assert.Equal(t, "report text", factCheck["report"])
	assert.NotEmpty(t, factCheck["verification_results"])

	refs, _ := final["references"].([]interface{})
	require.NotEmpty(t, refs)
	assert.Equal(t, "1. https://src.example/a", refs[0])
}

func TestResearchResultsUnknownID(t *testing.T) {
	r := testRouter()

	w, resp := doJSON(t, r, http.MethodGet, "/research/results/nope", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Research ID not found", resp["error"])
}

type constantEmbedder struct{}

func (constantEmbedder) ModelName() string { return "test-embed" }

func (constantEmbedder) EmbedTexts(texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = []float32{1}
	}
	return out, nil
}

func TestQueryDocuments(t *testing.T) {
	r := testRouter()

	// Without a retrieval pipeline the endpoint is unavailable.
	w, resp := doJSON(t, r, http.MethodPost, "/documents/query", `{"query": "q"}`)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, resp["error"], "not configured")

	server := &Server{
		Jobs:      jobs.NewManager(nil, nil, nil, nil),
		Retrieval: retrieval.NewPipeline(constantEmbedder{}),
	}
	r = NewRouter(server)

	w, _ = doJSON(t, r, http.MethodPost, "/documents/query", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, resp = doJSON(t, r, http.MethodPost, "/documents/query", `{"query": "solar trends"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "solar trends", resp["query"])
	// Nothing has been ingested, so the context is empty.
	assert.Equal(t, "", resp["context"])
}

func TestDraftEndpointsUnavailableWithoutStore(t *testing.T) {
	r := testRouter()

	w, resp := doJSON(t, r, http.MethodGet, "/drafts", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, resp["error"], "not configured")
}
