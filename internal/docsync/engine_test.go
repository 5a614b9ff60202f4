package docsync

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/agentops/recall/internal/models"
)

type fakeService struct {
	stored    []*models.StoreRequest
	storeErr  error
	semantic  []models.SearchResult
	episodic  []models.SearchResult
	count     int
	failAfter int // stop accepting stores after this many, 0 disables
}

func (f *fakeService) Store(req *models.StoreRequest) (*models.StoreResponse, error) {
	if f.storeErr != nil && (f.failAfter == 0 || len(f.stored) >= f.failAfter) {
		return nil, f.storeErr
	}
	f.stored = append(f.stored, req)
	return &models.StoreResponse{ID: fmt.Sprintf("id-%d", len(f.stored))}, nil
}

func (f *fakeService) Search(query string, limit int, types []models.MemoryType, minImportance float64) ([]models.SearchResult, error) {
	return f.semantic, nil
}

func (f *fakeService) Recent(hours, limit int, memoryType models.MemoryType) ([]models.SearchResult, error) {
	return f.episodic, nil
}

func (f *fakeService) Count() (int, error) {
	return f.count, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

const testDoc = `# Agent Memory

## Preferences
The user prefers concise answers and tabs over spaces everywhere.

## Infrastructure
Qdrant runs on port 6333 behind the compose stack on the build host.

## Stub
too short
`

func TestImportDocument(t *testing.T) {
	t.Run("imports long sections, skips short ones", func(t *testing.T) {
		svc := &fakeService{}
		engine := NewEngine(svc, testLogger())
		ledger := LoadLedger(filepath.Join(t.TempDir(), "ledger.json"))

		resp, err := engine.ImportDocument(testDoc, ledger, "test")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.New != 2 {
			t.Fatalf("New = %d, want 2", resp.New)
		}
		if resp.Skipped != 0 {
			t.Fatalf("Skipped = %d, want 0", resp.Skipped)
		}
		if len(svc.stored) != 2 {
			t.Fatalf("stored %d records, want 2", len(svc.stored))
		}

		first := svc.stored[0]
		if !strings.HasPrefix(first.Content, "Preferences: ") {
			t.Errorf("content should be header-prefixed, got %q", first.Content)
		}
		if first.MemoryType != models.MemoryTypeSemantic {
			t.Errorf("MemoryType = %q, want semantic", first.MemoryType)
		}
		if first.Importance != 0.7 {
			t.Errorf("Importance = %v, want 0.7", first.Importance)
		}
		if len(first.Entities) != 1 || first.Entities[0] != "preferences" {
			t.Errorf("Entities = %v, want [preferences]", first.Entities)
		}
	})

	t.Run("second pass is a no-op", func(t *testing.T) {
		svc := &fakeService{}
		engine := NewEngine(svc, testLogger())
		ledger := LoadLedger(filepath.Join(t.TempDir(), "ledger.json"))

		if _, err := engine.ImportDocument(testDoc, ledger, "test"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		resp, err := engine.ImportDocument(testDoc, ledger, "test")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.New != 0 {
			t.Fatalf("New = %d on second pass, want 0", resp.New)
		}
		if resp.Skipped != 2 {
			t.Fatalf("Skipped = %d on second pass, want 2", resp.Skipped)
		}
		if len(svc.stored) != 2 {
			t.Fatalf("stored %d records total, want 2", len(svc.stored))
		}
	})

	t.Run("edited section imports as new", func(t *testing.T) {
		svc := &fakeService{}
		engine := NewEngine(svc, testLogger())
		ledger := LoadLedger(filepath.Join(t.TempDir(), "ledger.json"))

		engine.ImportDocument(testDoc, ledger, "test")
		edited := strings.Replace(testDoc, "tabs over spaces", "spaces over tabs", 1)
		resp, err := engine.ImportDocument(edited, ledger, "test")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.New != 1 || resp.Skipped != 1 {
			t.Fatalf("New/Skipped = %d/%d, want 1/1", resp.New, resp.Skipped)
		}
	})

	t.Run("store failure stops the pass and keeps progress", func(t *testing.T) {
		svc := &fakeService{storeErr: errors.New("qdrant down"), failAfter: 1}
		engine := NewEngine(svc, testLogger())
		ledger := LoadLedger(filepath.Join(t.TempDir(), "ledger.json"))

		resp, err := engine.ImportDocument(testDoc, ledger, "test")
		if err == nil {
			t.Fatal("expected error")
		}
		if resp.New != 1 {
			t.Fatalf("New = %d before failure, want 1", resp.New)
		}
		if ledger.Len() != 1 {
			t.Fatalf("ledger Len = %d, want 1 (progress kept)", ledger.Len())
		}
	})
}

func TestImportFile(t *testing.T) {
	dir := t.TempDir()
	docPath := filepath.Join(dir, "MEMORY.md")
	ledgerPath := filepath.Join(dir, "MEMORY.md.sync.json")
	if err := os.WriteFile(docPath, []byte(testDoc), 0o644); err != nil {
		t.Fatal(err)
	}

	svc := &fakeService{}
	engine := NewEngine(svc, testLogger())

	resp, err := engine.ImportFile(docPath, ledgerPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.New != 2 {
		t.Fatalf("New = %d, want 2", resp.New)
	}

	// Ledger persisted; rerun skips everything.
	resp, err = engine.ImportFile(docPath, ledgerPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.New != 0 || resp.Skipped != 2 {
		t.Fatalf("rerun New/Skipped = %d/%d, want 0/2", resp.New, resp.Skipped)
	}
}

func TestExport(t *testing.T) {
	t.Run("deduplicates with semantic precedence", func(t *testing.T) {
		shared := "the same content appears in both sets"
		svc := &fakeService{
			semantic: []models.SearchResult{
				{Content: shared, MemoryType: models.MemoryTypeSemantic, Importance: 0.9},
				{Content: "a unique fact", MemoryType: models.MemoryTypeSemantic, Importance: 0.8},
			},
			episodic: []models.SearchResult{
				{Content: shared, MemoryType: models.MemoryTypeEpisodic, Importance: 0.6},
				{Content: "[user] asked about deploys", MemoryType: models.MemoryTypeEpisodic, Importance: 0.6},
			},
		}
		engine := NewEngine(svc, testLogger())

		resp, err := engine.Export(0.5)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.Exported != 3 {
			t.Fatalf("Exported = %d, want 3 distinct", resp.Exported)
		}
		// The shared record renders once, under the semantic group.
		if strings.Count(resp.Document, shared[:30]) != 1 {
			t.Fatalf("shared content should appear once:\n%s", resp.Document)
		}
	})

	t.Run("non-episodic records filtered from recent set", func(t *testing.T) {
		svc := &fakeService{
			episodic: []models.SearchResult{
				{Content: "a semantic stray", MemoryType: models.MemoryTypeSemantic, Importance: 0.9},
				{Content: "[assistant] deployed the fix", MemoryType: models.MemoryTypeEpisodic, Importance: 0.65},
			},
		}
		engine := NewEngine(svc, testLogger())

		resp, err := engine.Export(0.5)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.Exported != 1 {
			t.Fatalf("Exported = %d, want 1", resp.Exported)
		}
		if strings.Contains(resp.Document, "a semantic stray") {
			t.Fatalf("stray semantic record leaked into recent group:\n%s", resp.Document)
		}
	})
}

func TestFullSync(t *testing.T) {
	dir := t.TempDir()
	docPath := filepath.Join(dir, "MEMORY.md")
	exportPath := filepath.Join(dir, "EXPORT.md")
	if err := os.WriteFile(docPath, []byte(testDoc), 0o644); err != nil {
		t.Fatal(err)
	}

	svc := &fakeService{
		semantic: []models.SearchResult{
			{Content: "a known fact", MemoryType: models.MemoryTypeSemantic, Importance: 0.8},
		},
		count: 42,
	}
	engine := NewEngine(svc, testLogger())

	stats, err := engine.FullSync(docPath, filepath.Join(dir, "ledger.json"), exportPath, 0.5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.Import.New != 2 {
		t.Fatalf("Import.New = %d, want 2", stats.Import.New)
	}
	if stats.Exported != 1 {
		t.Fatalf("Exported = %d, want 1", stats.Exported)
	}
	if stats.Total != 42 {
		t.Fatalf("Total = %d, want 42", stats.Total)
	}

	data, err := os.ReadFile(exportPath)
	if err != nil {
		t.Fatalf("export file not written: %v", err)
	}
	if !strings.Contains(string(data), "a known fact") {
		t.Fatalf("export file missing record:\n%s", data)
	}
}
