// Package cli implements the recall CLI commands.
package cli

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/agentops/recall/internal/config"
	"github.com/agentops/recall/internal/docsync"
	"github.com/agentops/recall/internal/embedding"
	"github.com/agentops/recall/internal/ingest"
	"github.com/agentops/recall/internal/memory"
	"github.com/agentops/recall/internal/search"
	"github.com/agentops/recall/internal/store"
	"github.com/agentops/recall/internal/vectorstore"
)

var (
	configPath string
	agentFlag  string
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "recall",
	Short: "Hybrid memory retrieval for AI agents",
	Long:  "Store, search, and sync agent memories backed by Qdrant with keyword re-ranking and markdown document sync.",
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path (default: $RECALL_CONFIG)")
	RootCmd.PersistentFlags().StringVarP(&agentFlag, "agent", "a", "", "Agent ID override")
}

// services bundles everything a command might need. Construction is lazy per
// invocation; the embedding cache handle must be closed by the caller.
type services struct {
	cfg      *config.Config
	svc      *memory.Service
	searcher *search.HybridSearcher
	engine   *docsync.Engine
	ingestor *ingest.Ingestor

	cacheDB *store.DB
}

func buildServices() (*services, error) {
	_ = godotenv.Load()

	path := configPath
	if path == "" {
		path = os.Getenv("RECALL_CONFIG")
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if agentFlag != "" {
		cfg.AgentID = agentFlag
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	embedClient := embedding.NewClient(cfg.EmbeddingsURL)
	qdrantClient := vectorstore.NewQdrantClient(cfg.QdrantURL, cfg.Collection, cfg.EmbeddingDim)

	s := &services{cfg: cfg}

	var embedder memory.Embedder = embedClient
	if cfg.CacheDBPath != "" {
		db, err := store.Open(cfg.CacheDBPath)
		if err != nil {
			return nil, fmt.Errorf("open embedding cache: %w", err)
		}
		s.cacheDB = db
		embedder = embedding.NewCachedEmbedder(embedClient, store.NewEmbeddingCacheStore(db), cfg.EmbeddingDim, logger)
	}

	s.svc = memory.NewService(embedder, qdrantClient, cfg.AgentID, logger)
	s.searcher = search.NewHybridSearcher(s.svc, cfg.DenseWeight, cfg.KeywordWeight, cfg.ScrollPageSize)
	s.engine = docsync.NewEngine(s.svc, logger)
	s.ingestor = ingest.NewIngestor(s.svc, logger)

	if err := qdrantClient.EnsureCollection(); err != nil {
		logger.Warn("ensure collection", "error", err)
	}
	return s, nil
}

func (s *services) Close() {
	if s.cacheDB != nil {
		s.cacheDB.Close()
	}
}

func printJSON(v any) {
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(b))
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
