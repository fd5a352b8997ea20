package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"deepresearch/jobs"
	"deepresearch/types"
)

// RegisterResearchRoutes registers research submission and polling
// endpoints.
func (s *Server) RegisterResearchRoutes(r *gin.Engine) {
	g := r.Group("/research")
	g.POST("/start", s.handleStartResearch)
	g.GET("/results/:id", s.handleResearchResults)
}

// StartResearchRequest is the request to initiate research.
type StartResearchRequest struct {
	Query  string   `json:"query" binding:"required"`
	Style  int      `json:"style"`
	PDFIDs []string `json:"pdf_ids"`
}

// StartResearchResponse acknowledges a queued research job.
type StartResearchResponse struct {
	Status         string `json:"status"`
	Message        string `json:"message"`
	ResearchID     string `json:"research_id"`
	ResearchStatus string `json:"research_status"`
	CreatedAt      string `json:"created_at"`
	PDFCount       int    `json:"pdf_count"`
}

// handleStartResearch validates the request and queues a background
// research job, returning its id immediately.
func (s *Server) handleStartResearch(c *gin.Context) {
	var req StartResearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Style == 0 {
		req.Style = 1
	}

	job, err := s.Jobs.Submit(req.Query, req.Style, req.PDFIDs)
	if err != nil {
		var verr *jobs.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": verr.Reason})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, StartResearchResponse{
		Status:         "success",
		Message:        "Research initiated successfully",
		ResearchID:     job.ID,
		ResearchStatus: string(job.Status),
		CreatedAt:      job.CreatedAt.Format(timeLayout),
		PDFCount:       len(req.PDFIDs),
	})
}

const timeLayout = "2006-01-02T15:04:05.000000"

// handleResearchResults returns the current view of a job: progress fields
// while it runs, the error payload when it failed, and the full structured
// result once completed.
func (s *Server) handleResearchResults(c *gin.Context) {
	id := c.Param("id")

	job, err := s.Jobs.Get(id)
	if err != nil {
		if errors.Is(err, jobs.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Research ID not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	switch job.Status {
	case types.JobQueued, types.JobProcessing:
		resp := gin.H{
			"research_id":   job.ID,
			"status":        job.Status,
			"message":       "Research is still in progress",
			"created_at":    job.CreatedAt.Format(timeLayout),
			"query":         job.Input.Query,
			"content_style": job.Input.Style,
			"pdf_ids":       job.Input.DocumentIDs,
		}
		if !job.ProcessingStartedAt.IsZero() {
			resp["processing_started"] = job.ProcessingStartedAt.Format(timeLayout)
		}
		c.JSON(http.StatusOK, resp)

	case types.JobError:
		c.JSON(http.StatusOK, gin.H{
			"research_id":   job.ID,
			"status":        job.Status,
			"message":       "An error occurred during research",
			"error":         job.ErrorMessage,
			"created_at":    job.CreatedAt.Format(timeLayout),
			"error_at":      job.ErrorAt.Format(timeLayout),
			"query":         job.Input.Query,
			"content_style": job.Input.Style,
			"pdf_ids":       job.Input.DocumentIDs,
		})

	default:
		result := job.Result
		c.JSON(http.StatusOK, gin.H{
			"research_id":  job.ID,
			"status":       job.Status,
			"created_at":   job.CreatedAt.Format(timeLayout),
			"completed_at": job.CompletedAt.Format(timeLayout),
			"query": gin.H{
				"original":  result.Query,
				"optimized": result.OptimizedQuery,
			},
			"research_output": result.ResearchOutput,
			"fact_check": gin.H{
				"report":               result.FactCheckReport,
				"verification_results": result.VerificationResults,
			},
			"content": gin.H{
				"style": result.ContentStyle,
				"draft": result.DraftContent,
			},
			"references": result.References,
			"pdf_ids":    job.Input.DocumentIDs,
		})
	}
}
