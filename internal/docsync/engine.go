package docsync

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/agentops/recall/internal/identity"
	"github.com/agentops/recall/internal/models"
)

const (
	// Sections with trimmed bodies below this are noise, silently dropped.
	minSectionLen = 30

	// Curated document content gets a flat trust level, distinct from
	// conversational ingestion.
	importImportance = 0.7

	semanticQuery    = "important facts knowledge preferences"
	semanticLimit    = 100
	episodicWindowHr = 168
	episodicLimit    = 50
)

// MemoryService is the slice of the memory facade the sync engine consumes.
type MemoryService interface {
	Store(req *models.StoreRequest) (*models.StoreResponse, error)
	Search(query string, limit int, types []models.MemoryType, minImportance float64) ([]models.SearchResult, error)
	Recent(hours, limit int, memoryType models.MemoryType) ([]models.SearchResult, error)
	Count() (int, error)
}

// Engine implements bidirectional sync between the vector store and a
// flat-text memory document.
type Engine struct {
	svc    MemoryService
	logger *slog.Logger
}

func NewEngine(svc MemoryService, logger *slog.Logger) *Engine {
	return &Engine{svc: svc, logger: logger}
}

// ImportDocument stores every sufficiently long section whose content
// identity is not yet in the ledger, mutating the ledger as it goes. A store
// failure stops the pass; progress already recorded in the ledger stands, so
// a rerun resumes safely (idempotence via content identity).
func (e *Engine) ImportDocument(docText string, ledger *Ledger, source string) (*models.ImportResponse, error) {
	resp := &models.ImportResponse{}

	for _, section := range ParseSections(docText) {
		if len(section.Body) < minSectionLen {
			continue
		}

		id := identity.ContentID(section.Body)
		if ledger.Has(id) {
			resp.Skipped++
			continue
		}

		content := section.Body
		var entities []string
		if section.Header != "" {
			content = section.Header + ": " + section.Body
			entities = []string{headerEntity(section.Header)}
		}

		_, err := e.svc.Store(&models.StoreRequest{
			Content:    content,
			MemoryType: models.MemoryTypeSemantic,
			Importance: importImportance,
			Entities:   entities,
			Metadata: map[string]any{
				"source":    source,
				"synced_at": time.Now().UTC().Format(time.RFC3339),
			},
		})
		if err != nil {
			return resp, fmt.Errorf("store section %q: %w", section.Header, err)
		}

		ledger.Add(id, section.Header)
		resp.New++
	}

	return resp, nil
}

// ImportFile imports the document at path against the ledger at ledgerPath.
// The ledger is persisted after the pass — also on a failed pass, so partial
// progress is kept and the rerun skips what already landed.
func (e *Engine) ImportFile(path, ledgerPath string) (*models.ImportResponse, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}

	ledger := LoadLedger(ledgerPath)
	resp, importErr := e.ImportDocument(string(data), ledger, path)

	if err := ledger.Save(); err != nil {
		if importErr != nil {
			return resp, fmt.Errorf("save ledger after failed import: %w", err)
		}
		return resp, err
	}
	if importErr != nil {
		return resp, importErr
	}

	e.logger.Info("import complete",
		"path", path,
		"new", resp.New,
		"skipped", resp.Skipped,
	)
	return resp, nil
}

// Export renders high-value records into document form: semantic records
// above minImportance via a broad relevance query, plus episodic records
// from the last week, deduplicated by content identity with semantic
// precedence.
func (e *Engine) Export(minImportance float64) (*models.ExportResponse, error) {
	semantic, err := e.svc.Search(semanticQuery, semanticLimit,
		[]models.MemoryType{models.MemoryTypeSemantic}, minImportance)
	if err != nil {
		return nil, fmt.Errorf("retrieve semantic records: %w", err)
	}

	episodic, err := e.svc.Recent(episodicWindowHr, episodicLimit, "")
	if err != nil {
		return nil, fmt.Errorf("retrieve episodic records: %w", err)
	}

	groups := map[string][]models.SearchResult{}
	seen := map[string]bool{}

	for _, rec := range semantic {
		id := identity.ContentID(rec.Content)
		if seen[id] {
			continue
		}
		seen[id] = true
		groups["Semantic Knowledge"] = append(groups["Semantic Knowledge"], rec)
	}
	for _, rec := range episodic {
		if rec.MemoryType != models.MemoryTypeEpisodic {
			continue
		}
		id := identity.ContentID(rec.Content)
		if seen[id] {
			continue
		}
		seen[id] = true
		groups["Recent Conversations"] = append(groups["Recent Conversations"], rec)
	}

	return &models.ExportResponse{
		Document: RenderExport(groups, minImportance, time.Now()),
		Exported: len(seen),
	}, nil
}

// ExportFile renders and writes the export document to path.
func (e *Engine) ExportFile(path string, minImportance float64) (*models.ExportResponse, error) {
	resp, err := e.Export(minImportance)
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(path, []byte(resp.Document), 0o644); err != nil {
		return nil, fmt.Errorf("write export: %w", err)
	}

	e.logger.Info("export complete", "path", path, "exported", resp.Exported)
	return resp, nil
}

// SyncStats aggregates a full bidirectional pass.
type SyncStats struct {
	Import   *models.ImportResponse `json:"import"`
	Exported int                    `json:"exported"`
	Total    int                    `json:"total"`
}

// FullSync imports new document content, optionally exports high-importance
// records back out, and reports the corpus size.
func (e *Engine) FullSync(docPath, ledgerPath, exportPath string, minImportance float64) (*SyncStats, error) {
	importResp, err := e.ImportFile(docPath, ledgerPath)
	if err != nil {
		return nil, err
	}

	stats := &SyncStats{Import: importResp}

	if exportPath != "" {
		exportResp, err := e.ExportFile(exportPath, minImportance)
		if err != nil {
			return nil, err
		}
		stats.Exported = exportResp.Exported
	}

	total, err := e.svc.Count()
	if err != nil {
		return nil, err
	}
	stats.Total = total

	return stats, nil
}

// headerEntity normalizes a section header into an entity tag.
func headerEntity(header string) string {
	return strings.ReplaceAll(strings.ToLower(header), " ", "-")
}
