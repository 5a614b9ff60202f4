// Package api exposes the memory service over HTTP.
package api

import (
	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/agentops/recall/internal/docsync"
	"github.com/agentops/recall/internal/embedding"
	"github.com/agentops/recall/internal/ingest"
	"github.com/agentops/recall/internal/memory"
	"github.com/agentops/recall/internal/search"
	"github.com/agentops/recall/internal/vectorstore"
)

// NewRouter creates the chi router with all routes and middleware.
func NewRouter(
	svc *memory.Service,
	searcher *search.HybridSearcher,
	engine *docsync.Engine,
	ingestor *ingest.Ingestor,
	embeddings *embedding.Client,
	qdrant *vectorstore.QdrantClient,
	docPath, ledgerPath string,
	logger *slog.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(RequestID)
	r.Use(Logger(logger))
	r.Use(Recovery(logger))

	healthH := NewHealthHandler(embeddings, qdrant, svc)
	memoryH := NewMemoryHandler(svc, searcher)
	syncH := NewSyncHandler(engine, docPath, ledgerPath)
	ingestH := NewIngestHandler(ingestor)

	r.Get("/health", healthH.Health)

	r.Route("/memories", func(r chi.Router) {
		r.Post("/", memoryH.Store)
		r.Post("/search", memoryH.Search)
		r.Get("/recent", memoryH.Recent)
		r.Post("/entities", memoryH.ByEntities)
		r.Get("/count", memoryH.Count)
	})

	r.Route("/sync", func(r chi.Router) {
		r.Post("/import", syncH.Import)
		r.Post("/export", syncH.Export)
	})

	r.Post("/ingest/turn", ingestH.Turn)

	return r
}
