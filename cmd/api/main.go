package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"bharatlaw-ai/internal/config"
	"bharatlaw-ai/internal/embedcache"
	"bharatlaw-ai/internal/feedback"
	"bharatlaw-ai/internal/http"
	"bharatlaw-ai/internal/llm"
	"bharatlaw-ai/internal/metrics"
	"bharatlaw-ai/internal/rag"
	"bharatlaw-ai/internal/service"
	"bharatlaw-ai/internal/storage"
	"bharatlaw-ai/internal/vectorstore"
)

//go:generate swagger generate spec -o swagger.json

// General API information
//
// This API answers questions about Indian statutes using sections retrieved from a vector index.
//
// swagger:meta
//
// ---
// swagger: '2.0'
// info:
//   title: BharatLaw AI API
//   description: |
//     Retrieval-augmented legal assistant over the IPC, CrPC and related acts.
//     Answers cite the retrieved sections or fall back to the model's general knowledge.
//   version: 1.0.0
// schemes:
//   - http
//   - https
// consumes:
//   - application/json
// produces:
//   - application/json

const (
	embeddingCacheTTL = 7 * 24 * time.Hour
	shutdownTimeout   = 10 * time.Second
)

func main() {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
	slog.Debug("Logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat)

	metrics.Register()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := storage.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	if err := storage.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	slog.Info("Database initialized", "path", cfg.DBPath)
	sectionRepo := storage.NewSectionRepo(db)

	vectorStore, err := vectorstore.NewQdrantStore(cfg.QdrantURL)
	if err != nil {
		log.Fatalf("Failed to create Qdrant client: %v", err)
	}
	defer func() {
		_ = vectorStore.Close()
	}()

	// Queries against a missing collection fail, so an empty one is created up front.
	// cmd/ingest fills it.
	if err := vectorStore.EnsureCollection(ctx, cfg.QdrantCollection, cfg.QdrantVectorSize); err != nil {
		log.Fatalf("Failed to ensure Qdrant collection: %v", err)
	}
	slog.Info("Qdrant collection ready", "collection", cfg.QdrantCollection, "vector_size", cfg.QdrantVectorSize)

	var embedder rag.Embedder = llm.NewEmbeddingsClient(cfg.EmbeddingBaseURL, cfg.LLMAPIKey, cfg.EmbeddingModelName, cfg.QdrantVectorSize)
	if cfg.RedisURL != "" {
		cacheStore, err := embedcache.NewRedisStore(ctx, cfg.RedisURL, embeddingCacheTTL)
		if err != nil {
			log.Fatalf("Failed to connect embedding cache: %v", err)
		}
		defer func() {
			_ = cacheStore.Close()
		}()
		embedder = embedcache.New(embedder, cacheStore, cfg.EmbeddingModelName, metrics.EmbeddingCacheTotal)
		slog.Info("Embedding cache enabled", "ttl", embeddingCacheTTL)
	}

	// Validate embedding client vector size (fail-fast)
	testEmbeddings, err := embedder.EmbedTexts(ctx, []string{"test"})
	if err != nil {
		log.Fatalf("Failed to validate embedding client: %v", err)
	}
	if len(testEmbeddings) == 0 || len(testEmbeddings[0]) != cfg.QdrantVectorSize {
		log.Fatalf("Embedding vector size mismatch: expected %d", cfg.QdrantVectorSize)
	}
	slog.Info("Embedding client validated", "vector_size", cfg.QdrantVectorSize)

	llmClient := llm.NewClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModelName)

	engine := rag.NewEngine(
		rag.NewRetriever(embedder, vectorStore, cfg.QdrantCollection),
		llmClient,
		rag.EngineConfig{
			Threshold:      cfg.SimilarityThreshold,
			K:              cfg.RetrievalK,
			AugmentedModel: cfg.LLMModelName,
			FallbackModel:  cfg.LLMFallbackModel,
		},
	)
	slog.Info("RAG engine initialized", "threshold", cfg.SimilarityThreshold, "k", cfg.RetrievalK)

	deps := &http.Deps{
		ChatService:     service.NewChatService(engine),
		SectionService:  service.NewSectionService(engine, sectionRepo),
		FeedbackService: service.NewFeedbackService(feedback.NewLog(cfg.FeedbackLogPath)),
		CatalogService:  service.NewCatalogService(cfg.ActsFile),
		VectorStore:     vectorStore,
		Sections:        sectionRepo,
		Collection:      cfg.QdrantCollection,
		CORSOrigins:     cfg.CORSOrigins,
		MetricsHandler:  promhttp.Handler(),
	}

	server := &nethttp.Server{
		Addr:              ":" + cfg.APIPort,
		Handler:           http.NewRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Starting API server", "addr", server.Addr)
		slog.Debug("LLM configuration", "base_url", cfg.LLMBaseURL, "model", cfg.LLMModelName, "fallback_model", cfg.LLMFallbackModel)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, nethttp.ErrServerClosed) {
			log.Fatalf("API server failed: %v", err)
		}
	case <-ctx.Done():
		slog.Info("Shutting down API server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("Graceful shutdown failed", "error", err)
		}
	}
}
