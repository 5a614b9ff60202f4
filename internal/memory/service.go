// Package memory is the facade for record creation and retrieval against the
// external embedding gateway and vector store.
package memory

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/agentops/recall/internal/models"
	"github.com/agentops/recall/internal/vectorstore"
)

// Embedder produces a dense vector for arbitrary text.
type Embedder interface {
	Embed(text string) ([]float32, error)
}

// Store is the subset of vector store operations the service consumes.
type Store interface {
	Upsert(points []vectorstore.Point) error
	Search(vector []float32, limit int, filter vectorstore.Filter) ([]vectorstore.ScoredPoint, error)
	Scroll(filter vectorstore.Filter, limit int, offset vectorstore.ScrollOffset) ([]vectorstore.ScoredPoint, vectorstore.ScrollOffset, error)
	Count(filter vectorstore.Filter) (int, error)
}

// Service owns the record lifecycle for one agent: embed once at creation,
// upsert, and read many times. Records are never mutated or deleted here.
type Service struct {
	embedder Embedder
	store    Store
	agentID  string
	logger   *slog.Logger
}

func NewService(embedder Embedder, store Store, agentID string, logger *slog.Logger) *Service {
	return &Service{
		embedder: embedder,
		store:    store,
		agentID:  agentID,
		logger:   logger,
	}
}

// AgentID returns the agent this service is scoped to.
func (s *Service) AgentID() string {
	return s.agentID
}

// Store embeds the content and creates a new record. The embedding is
// computed exactly once from the content; the pair is immutable afterwards.
func (s *Service) Store(req *models.StoreRequest) (*models.StoreResponse, error) {
	memoryType := req.MemoryType
	if memoryType == "" {
		memoryType = models.MemoryTypeSemantic
	}
	importance := req.Importance
	if importance == 0 {
		importance = 0.7
	}

	vec, err := s.embedder.Embed(req.Content)
	if err != nil {
		return nil, fmt.Errorf("embed content: %w", err)
	}

	rec := &models.Record{
		ID:                uuid.New().String(),
		Content:           req.Content,
		MemoryType:        memoryType,
		AgentID:           s.agentID,
		Importance:        importance,
		InitialImportance: importance,
		Timestamp:         time.Now().UTC(),
		Entities:          req.Entities,
		SessionID:         req.SessionID,
		Metadata:          req.Metadata,
		Usage: models.UsageMeta{
			ImportanceHistory: []float64{importance},
		},
	}

	point := vectorstore.Point{
		ID:      rec.ID,
		Vector:  vec,
		Payload: payloadFromRecord(rec),
	}
	if err := s.store.Upsert([]vectorstore.Point{point}); err != nil {
		return nil, fmt.Errorf("upsert record: %w", err)
	}

	s.logger.Debug("stored memory",
		"id", rec.ID,
		"type", string(memoryType),
		"importance", importance,
	)
	return &models.StoreResponse{ID: rec.ID}, nil
}

// Search runs a dense similarity query scoped to this agent.
func (s *Service) Search(query string, limit int, types []models.MemoryType, minImportance float64) ([]models.SearchResult, error) {
	vec, err := s.embedder.Embed(query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	filter := vectorstore.Filter{
		AgentID:       s.agentID,
		MemoryTypes:   typeStrings(types),
		MinImportance: minImportance,
	}
	points, err := s.store.Search(vec, limit, filter)
	if err != nil {
		return nil, fmt.Errorf("similarity search: %w", err)
	}

	results := make([]models.SearchResult, len(points))
	for i, p := range points {
		results[i] = resultFromPoint(p)
	}
	return results, nil
}

// Recent returns records created within the trailing window, unordered.
func (s *Service) Recent(hours, limit int, memoryType models.MemoryType) ([]models.SearchResult, error) {
	filter := vectorstore.Filter{
		AgentID: s.agentID,
		Since:   time.Now().UTC().Add(-time.Duration(hours) * time.Hour),
	}
	if memoryType != "" {
		filter.MemoryTypes = []string{string(memoryType)}
	}

	points, _, err := s.store.Scroll(filter, limit, nil)
	if err != nil {
		return nil, fmt.Errorf("scroll recent: %w", err)
	}

	results := make([]models.SearchResult, len(points))
	for i, p := range points {
		results[i] = resultFromPoint(p)
	}
	return results, nil
}

// ByEntities returns records tagged with all the given entities.
func (s *Service) ByEntities(entities []string, limit int) ([]models.SearchResult, error) {
	filter := vectorstore.Filter{
		AgentID:  s.agentID,
		Entities: entities,
	}

	points, _, err := s.store.Scroll(filter, limit, nil)
	if err != nil {
		return nil, fmt.Errorf("scroll by entities: %w", err)
	}

	results := make([]models.SearchResult, len(points))
	for i, p := range points {
		results[i] = resultFromPoint(p)
	}
	return results, nil
}

// Count returns the corpus size for this agent.
func (s *Service) Count() (int, error) {
	n, err := s.store.Count(vectorstore.Filter{AgentID: s.agentID})
	if err != nil {
		return 0, fmt.Errorf("count records: %w", err)
	}
	return n, nil
}

// ScrollAll enumerates the agent's whole corpus in pages, invoking fn per
// batch until exhaustion or the first error. The scan is restartable in the
// sense that each page is independent; a failed scan can simply be rerun.
func (s *Service) ScrollAll(pageSize int, fn func(batch []models.SearchResult) error) error {
	filter := vectorstore.Filter{AgentID: s.agentID}
	var offset vectorstore.ScrollOffset

	for {
		points, next, err := s.store.Scroll(filter, pageSize, offset)
		if err != nil {
			return fmt.Errorf("scroll corpus: %w", err)
		}
		if len(points) > 0 {
			batch := make([]models.SearchResult, len(points))
			for i, p := range points {
				batch[i] = resultFromPoint(p)
			}
			if err := fn(batch); err != nil {
				return err
			}
		}
		if next == nil {
			return nil
		}
		offset = next
	}
}

func typeStrings(types []models.MemoryType) []string {
	if len(types) == 0 {
		return nil
	}
	out := make([]string, len(types))
	for i, t := range types {
		out[i] = string(t)
	}
	return out
}
