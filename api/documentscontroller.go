package api

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"deepresearch/types"
)

// RegisterDocumentRoutes registers PDF upload and management endpoints.
func (s *Server) RegisterDocumentRoutes(r *gin.Engine) {
	g := r.Group("/documents")
	g.POST("/upload", s.handleUploadDocument)
	g.GET("", s.handleListDocuments)
	g.POST("/query", s.handleQueryDocuments)
	g.DELETE("/:id", s.handleDeleteDocument)
}

// QueryDocumentsRequest asks for document context matching a query.
type QueryDocumentsRequest struct {
	Query string `json:"query" binding:"required"`
}

// handleQueryDocuments runs a retrieval query directly against the
// uploaded documents, outside any research job.
func (s *Server) handleQueryDocuments(c *gin.Context) {
	if s.Retrieval == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "document retrieval is not configured"})
		return
	}

	var req QueryDocumentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	text, err := s.Retrieval.RelevantContext(c.Request.Context(), req.Query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "retrieval failed: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"query": req.Query, "context": text})
}

// UploadDocumentResponse describes a stored PDF.
type UploadDocumentResponse struct {
	Status   string         `json:"status"`
	Message  string         `json:"message"`
	Document types.Document `json:"document"`
}

// handleUploadDocument stores an uploaded PDF, ingests it into the
// retrieval index and optionally archives the file to S3.
func (s *Server) handleUploadDocument(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file part"})
		return
	}
	if !strings.EqualFold(filepath.Ext(file.Filename), ".pdf") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only PDF files are allowed"})
		return
	}

	id := uuid.New().String()
	filename := filepath.Base(file.Filename)
	path := filepath.Join(s.UploadDir, fmt.Sprintf("%s_%s", id, filename))

	if err := c.SaveUploadedFile(file, path); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save file: " + err.Error()})
		return
	}

	title := c.PostForm("title")
	if title == "" {
		title = filename
	}

	chunks := 0
	if s.Retrieval != nil {
		chunks, err = s.Retrieval.IngestPDF(c.Request.Context(), id, path)
		if err != nil {
			_ = os.Remove(path)
			c.JSON(http.StatusBadRequest, gin.H{"error": "failed to ingest PDF: " + err.Error()})
			return
		}
	} else {
		log.Printf("Retrieval not configured; stored %s without indexing", filename)
	}

	doc := types.Document{
		ID:         id,
		Filename:   filename,
		Title:      title,
		UploadedAt: time.Now(),
		Chunks:     chunks,
	}
	s.Documents.Put(doc, path)

	// Archive the original file off the request path; failures only log.
	if s.Archive != nil {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			f, err := os.Open(path)
			if err != nil {
				log.Printf("S3 archive failed for %s: %v", id, err)
				return
			}
			defer f.Close()
			key := "documents/" + id + "_" + filename
			if err := s.Archive.PutObject(ctx, key, f, "application/pdf"); err != nil {
				log.Printf("S3 archive failed for %s: %v", id, err)
			}
		}()
	}

	c.JSON(http.StatusOK, UploadDocumentResponse{
		Status:   "success",
		Message:  "PDF uploaded successfully",
		Document: doc,
	})
}

// handleListDocuments returns all uploaded documents, newest first.
func (s *Server) handleListDocuments(c *gin.Context) {
	docs := s.Documents.List()
	c.JSON(http.StatusOK, gin.H{
		"count":     len(docs),
		"documents": docs,
	})
}

// handleDeleteDocument removes a document from the registry, the retrieval
// index, disk and the archive.
func (s *Server) handleDeleteDocument(c *gin.Context) {
	id := c.Param("id")

	path, ok := s.Documents.Delete(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
		return
	}

	if s.Retrieval != nil {
		s.Retrieval.RemoveDocument(id)
	}
	if path != "" {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			log.Printf("Failed to remove %s: %v", path, err)
		}
	}
	if s.Archive != nil {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			key := "documents/" + filepath.Base(path)
			if err := s.Archive.DeleteObject(ctx, key); err != nil {
				log.Printf("S3 delete failed for %s: %v", id, err)
			}
		}()
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Document deleted"})
}
