package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"deepresearch/api"
	"deepresearch/common"
	"deepresearch/events"
	"deepresearch/jobs"
	"deepresearch/llm"
	"deepresearch/pipeline"
	"deepresearch/retrieval"
	"deepresearch/search"
	"deepresearch/store"
)

func main() {
	// Load environment variables from .env if present (non-fatal if missing)
	_ = godotenv.Load()

	port := flag.String("port", "", "HTTP API port (overrides PORT env var)")
	uploadDir := flag.String("upload-dir", "uploads", "directory for uploaded documents")
	flag.Parse()

	addr := ":8080"
	if v := os.Getenv("PORT"); v != "" {
		addr = ":" + v
	}
	if *port != "" {
		addr = ":" + *port
	}

	models := llm.NewDefaultModels()
	if models == nil {
		log.Fatalf("no LLM provider configured: set COHERE_API_KEY or GROQ_API_KEY")
	}
	log.Printf("Generation model: %s", models.Generation.ModelName())
	log.Printf("Verification model: %s", models.Verification.ModelName())

	searcher := search.NewDefaultProvider()
	if searcher == nil {
		log.Fatalf("no search provider configured: set TAVILY_API_KEY")
	}

	// Optional collaborators: each is skipped when its env vars are absent.
	var retriever *retrieval.Pipeline
	if embedder := retrieval.NewDefaultEmbeddingsProvider(os.Getenv("EMBEDDINGS_MODEL")); embedder != nil {
		retriever = retrieval.NewPipeline(embedder)
		log.Printf("Document retrieval enabled (embeddings: %s)", embedder.ModelName())
	} else {
		log.Println("Document retrieval disabled: no embeddings provider configured")
	}

	drafts, err := store.NewDraftsFromEnv()
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	if drafts == nil {
		log.Println("Draft persistence disabled: REDIS_ADDR not set")
	}

	archive := common.NewArchiveFromEnv(context.Background())
	if archive == nil {
		log.Println("S3 archiving disabled: S3_BUCKET not set")
	}

	publisher, err := events.NewKafkaPublisherFromEnv()
	if err != nil {
		log.Printf("Warning: Kafka publisher unavailable: %v (events disabled)", err)
	}
	if publisher == nil {
		log.Println("Event publishing disabled: KAFKA_BOOTSTRAP_SERVERS not set")
	}

	documents := store.NewDocuments()

	runner := pipeline.NewRunner(models, searcher)
	runner.EnrichResults = strings.EqualFold(os.Getenv("ENRICH_RESULTS"), "true")

	var publishers jobs.MultiPublisher
	if publisher != nil {
		publishers = append(publishers, publisher)
	}
	if archiver := events.NewResultArchiver(archive); archiver != nil {
		publishers = append(publishers, archiver)
	}
	var lifecycle jobs.Publisher
	if len(publishers) > 0 {
		lifecycle = publishers
	}

	manager := jobs.NewManager(runner, retriever, documents, lifecycle)
	manager.StartReaper()
	defer manager.Stop()

	if err := os.MkdirAll(*uploadDir, 0o755); err != nil {
		log.Fatalf("Failed to create upload directory: %v", err)
	}

	server := &api.Server{
		Jobs:      manager,
		Documents: documents,
		Retrieval: retriever,
		Drafts:    drafts,
		Archive:   archive,
		UploadDir: *uploadDir,
	}
	r := api.NewRouter(server)

	log.Printf("Starting API server on %s", addr)
	log.Println("API endpoints available:")
	log.Println("  GET    /api/health")
	log.Println("  POST   /research/start")
	log.Println("  GET    /research/results/:id")
	log.Println("  POST   /documents/upload")
	log.Println("  GET    /documents")
	log.Println("  POST   /documents/query")
	log.Println("  DELETE /documents/:id")
	log.Println("  POST   /drafts")
	log.Println("  GET    /drafts")
	log.Println("  GET    /drafts/:id")
	log.Println("  DELETE /drafts/:id")

	srv := &http.Server{Addr: addr, Handler: r}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Wait for shutdown signal, then drain in-flight requests.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
	if drafts != nil {
		drafts.Close()
	}
	if publisher != nil {
		publisher.Close()
	}
	log.Println("Server stopped")
}
