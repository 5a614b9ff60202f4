package embedding

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/agentops/recall/internal/store"
)

func setupCache(t *testing.T) *store.EmbeddingCacheStore {
	t.Helper()
	db, err := store.Open(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("open cache db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return store.NewEmbeddingCacheStore(db)
}

func TestCachedEmbedder(t *testing.T) {
	gatewayCalls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gatewayCalls++
		w.Write([]byte(`[[0.25, 0.5, 0.75]]`))
	}))
	defer srv.Close()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	embedder := NewCachedEmbedder(NewClient(srv.URL), setupCache(t), 3, logger)

	t.Run("miss hits the gateway and populates the cache", func(t *testing.T) {
		vec, err := embedder.Embed("some content")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(vec) != 3 || vec[1] != 0.5 {
			t.Fatalf("vec = %v", vec)
		}
		if gatewayCalls != 1 {
			t.Fatalf("gateway calls = %d, want 1", gatewayCalls)
		}
	})

	t.Run("repeat content served from cache", func(t *testing.T) {
		vec, err := embedder.Embed("some content")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(vec) != 3 || vec[2] != 0.75 {
			t.Fatalf("vec = %v", vec)
		}
		if gatewayCalls != 1 {
			t.Fatalf("gateway calls = %d, cache should have served the repeat", gatewayCalls)
		}
	})

	t.Run("distinct content misses again", func(t *testing.T) {
		if _, err := embedder.Embed("different content"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if gatewayCalls != 2 {
			t.Fatalf("gateway calls = %d, want 2", gatewayCalls)
		}
	})
}
