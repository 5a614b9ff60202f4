package embedding

import (
	"fmt"
	"log/slog"

	"github.com/agentops/recall/internal/identity"
	"github.com/agentops/recall/internal/store"
)

// CachedEmbedder wraps a Client with content-hash caching via SQLite.
// Embeddings are computed once per distinct content; the content fingerprint
// is the cache key.
type CachedEmbedder struct {
	client *Client
	cache  *store.EmbeddingCacheStore
	dim    int
	logger *slog.Logger
}

func NewCachedEmbedder(client *Client, cache *store.EmbeddingCacheStore, dim int, logger *slog.Logger) *CachedEmbedder {
	return &CachedEmbedder{
		client: client,
		cache:  cache,
		dim:    dim,
		logger: logger,
	}
}

// Embed returns the embedding for text, using the cache when available.
// Cache write failures are non-fatal.
func (e *CachedEmbedder) Embed(text string) ([]float32, error) {
	id := identity.ContentID(text)

	entry, err := e.cache.Get(id)
	if err != nil {
		return nil, fmt.Errorf("cache lookup: %w", err)
	}
	if entry != nil {
		return BytesToFloat32(entry.Embedding), nil
	}

	vec, err := e.client.Embed(text)
	if err != nil {
		return nil, err
	}

	if err := e.cache.Put(&store.EmbeddingCacheEntry{
		ContentHash: id,
		Embedding:   Float32ToBytes(vec),
		Dimension:   e.dim,
	}); err != nil {
		e.logger.Warn("embedding cache write failed", "error", err)
	}

	return vec, nil
}
