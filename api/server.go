package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"deepresearch/common"
	"deepresearch/jobs"
	"deepresearch/retrieval"
	"deepresearch/store"
)

// Server bundles the collaborators the HTTP controllers need.
type Server struct {
	Jobs      *jobs.Manager
	Documents *store.Documents
	Retrieval *retrieval.Pipeline
	Drafts    *store.Drafts
	Archive   *common.Archive
	UploadDir string
}

// NewRouter constructs a Gin engine with registered routes.
func NewRouter(s *Server) *gin.Engine {
	r := gin.New()
	// Minimal middleware: recovery; logger optional to reduce verbosity
	r.Use(gin.Recovery())

	s.RegisterResearchRoutes(r)
	s.RegisterDocumentRoutes(r)
	s.RegisterDraftRoutes(r)
	RegisterHealthRoutes(r)
	return r
}

// RegisterHealthRoutes registers the health check endpoint.
func RegisterHealthRoutes(r *gin.Engine) {
	r.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
}
