package memory

import (
	"time"

	"github.com/agentops/recall/internal/models"
	"github.com/agentops/recall/internal/vectorstore"
)

// payloadFromRecord flattens a record into the point payload written at
// creation. The reserved consolidation and usage fields are written with
// their zero values; external consolidation logic owns them afterwards.
func payloadFromRecord(rec *models.Record) map[string]any {
	entities := rec.Entities
	if entities == nil {
		entities = []string{}
	}
	metadata := rec.Metadata
	if metadata == nil {
		metadata = map[string]any{}
	}

	return map[string]any{
		"content":            rec.Content,
		"memory_type":        string(rec.MemoryType),
		"agent_id":           rec.AgentID,
		"importance":         rec.Importance,
		"initial_importance": rec.InitialImportance,
		"timestamp":          rec.Timestamp.UTC().Format(time.RFC3339),
		"entities":           entities,
		"session_id":         rec.SessionID,
		"metadata":           metadata,

		// Consolidation fields, owned externally.
		"consolidated":           rec.Consolidation.Consolidated,
		"consolidated_into":      rec.Consolidation.ConsolidatedInto,
		"consolidation_batch_id": rec.Consolidation.BatchID,

		// Usage tracking fields, owned externally.
		"retrieval_count":      rec.Usage.RetrievalCount,
		"utilization_count":    rec.Usage.UtilizationCount,
		"outcome_count":        rec.Usage.OutcomeCount,
		"last_retrieved":       rec.Usage.LastRetrieved,
		"last_utilized":        rec.Usage.LastUtilized,
		"last_boosted":         rec.Usage.LastBoosted,
		"importance_history":   rec.Usage.ImportanceHistory,
		"boost_cooldown_until": rec.Usage.BoostCooldownTill,
	}
}

// resultFromPoint reads the retrieval-relevant payload fields back out of a
// store hit. Missing fields fall back to the same defaults the store writes.
func resultFromPoint(p vectorstore.ScoredPoint) models.SearchResult {
	r := models.SearchResult{
		ID:         p.ID,
		Score:      p.Score,
		MemoryType: models.MemoryTypeSemantic,
		Importance: 0.7,
	}
	if v, ok := p.Payload["content"].(string); ok {
		r.Content = v
	}
	if v, ok := p.Payload["memory_type"].(string); ok {
		r.MemoryType = models.MemoryType(v)
	}
	if v, ok := p.Payload["importance"].(float64); ok {
		r.Importance = v
	}
	if v, ok := p.Payload["timestamp"].(string); ok {
		r.Timestamp = v
	}
	if raw, ok := p.Payload["entities"].([]any); ok {
		for _, e := range raw {
			if s, ok := e.(string); ok {
				r.Entities = append(r.Entities, s)
			}
		}
	}
	return r
}
