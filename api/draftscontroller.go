package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"deepresearch/jobs"
	"deepresearch/store"
	"deepresearch/types"
)

// RegisterDraftRoutes registers draft persistence endpoints. All of them
// require a configured draft store.
func (s *Server) RegisterDraftRoutes(r *gin.Engine) {
	g := r.Group("/drafts")
	g.POST("", s.handleSaveDraft)
	g.GET("", s.handleListDrafts)
	g.GET("/:id", s.handleGetDraft)
	g.DELETE("/:id", s.handleDeleteDraft)
}

// SaveDraftRequest saves the draft produced by a completed research job.
type SaveDraftRequest struct {
	ResearchID string   `json:"research_id" binding:"required"`
	Title      string   `json:"title" binding:"required"`
	Tags       []string `json:"tags"`
}

func (s *Server) requireDrafts(c *gin.Context) bool {
	if s.Drafts == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "draft persistence is not configured"})
		return false
	}
	return true
}

// handleSaveDraft snapshots a completed job's draft content into the draft
// store.
func (s *Server) handleSaveDraft(c *gin.Context) {
	if !s.requireDrafts(c) {
		return
	}

	var req SaveDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	job, err := s.Jobs.Get(req.ResearchID)
	if err != nil {
		if errors.Is(err, jobs.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Research ID not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if job.Status != types.JobCompleted || job.Result == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "research is not completed"})
		return
	}

	draft := types.Draft{
		ID:           uuid.New().String(),
		Title:        req.Title,
		Tags:         req.Tags,
		JobID:        job.ID,
		Query:        job.Result.Query,
		ContentStyle: job.Result.ContentStyle,
		Content:      job.Result.DraftContent,
		References:   job.Result.References,
		CreatedAt:    time.Now(),
	}

	if err := s.Drafts.Save(c.Request.Context(), draft); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save draft: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "draft": draft})
}

// handleListDrafts returns all saved drafts, newest first.
func (s *Server) handleListDrafts(c *gin.Context) {
	if !s.requireDrafts(c) {
		return
	}

	drafts, err := s.Drafts.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(drafts), "drafts": drafts})
}

// handleGetDraft returns one saved draft by id.
func (s *Server) handleGetDraft(c *gin.Context) {
	if !s.requireDrafts(c) {
		return
	}

	draft, err := s.Drafts.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrDraftNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Draft not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, draft)
}

// handleDeleteDraft removes a saved draft.
func (s *Server) handleDeleteDraft(c *gin.Context) {
	if !s.requireDrafts(c) {
		return
	}

	err := s.Drafts.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrDraftNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Draft not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Draft deleted"})
}
