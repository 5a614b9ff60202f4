package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/agentops/recall/internal/api"
	"github.com/agentops/recall/internal/config"
	"github.com/agentops/recall/internal/docsync"
	"github.com/agentops/recall/internal/embedding"
	"github.com/agentops/recall/internal/ingest"
	"github.com/agentops/recall/internal/memory"
	"github.com/agentops/recall/internal/search"
	"github.com/agentops/recall/internal/store"
	"github.com/agentops/recall/internal/vectorstore"
)

func main() {
	_ = godotenv.Load()

	logLevel := slog.LevelInfo
	if os.Getenv("LOG_LEVEL") == "debug" {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	cfg, err := config.Load(os.Getenv("RECALL_CONFIG"))
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// External services
	embedClient := embedding.NewClient(cfg.EmbeddingsURL)
	qdrantClient := vectorstore.NewQdrantClient(cfg.QdrantURL, cfg.Collection, cfg.EmbeddingDim)

	// Embedder, with SQLite cache when a cache path is configured
	var embedder memory.Embedder = embedClient
	if cfg.CacheDBPath != "" {
		db, err := store.Open(cfg.CacheDBPath)
		if err != nil {
			logger.Error("failed to open embedding cache", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		cacheStore := store.NewEmbeddingCacheStore(db)
		embedder = embedding.NewCachedEmbedder(embedClient, cacheStore, cfg.EmbeddingDim, logger)
	}

	// Core services
	svc := memory.NewService(embedder, qdrantClient, cfg.AgentID, logger)
	searcher := search.NewHybridSearcher(svc, cfg.DenseWeight, cfg.KeywordWeight, cfg.ScrollPageSize)
	engine := docsync.NewEngine(svc, logger)
	ingestor := ingest.NewIngestor(svc, logger)

	if err := qdrantClient.HealthCheck(); err != nil {
		logger.Warn("qdrant not available at startup, will retry on first use", "error", err)
	} else if err := qdrantClient.EnsureCollection(); err != nil {
		logger.Warn("failed to ensure collection", "error", err)
	}

	router := api.NewRouter(
		svc, searcher, engine, ingestor,
		embedClient, qdrantClient,
		cfg.MemoryFilePath, cfg.EffectiveLedgerPath(),
		logger,
	)

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("recall server starting", "addr", addr, "agent", cfg.AgentID)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-done
	logger.Info("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
	}

	logger.Info("server stopped")
}
