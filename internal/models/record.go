package models

import "time"

// MemoryType classifies a record at creation time.
type MemoryType string

const (
	MemoryTypeSemantic   MemoryType = "semantic"
	MemoryTypeEpisodic   MemoryType = "episodic"
	MemoryTypeProcedural MemoryType = "procedural"
)

// IsValid reports whether t is a known memory type.
func (t MemoryType) IsValid() bool {
	switch t {
	case MemoryTypeSemantic, MemoryTypeEpisodic, MemoryTypeProcedural:
		return true
	}
	return false
}

// Record is the unit of storage. Everything here is written once at creation
// and never edited in place; re-ingestion either dedups or creates a new
// record with a fresh ID.
type Record struct {
	ID         string         `json:"id"`
	Content    string         `json:"content"`
	MemoryType MemoryType     `json:"memory_type"`
	AgentID    string         `json:"agent_id"`
	Importance float64        `json:"importance"`
	Timestamp  time.Time      `json:"timestamp"`
	Entities   []string       `json:"entities"`
	SessionID  string         `json:"session_id,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`

	// InitialImportance preserves the creation-time score after external
	// consolidation revises Importance.
	InitialImportance float64 `json:"initial_importance"`

	Consolidation ConsolidationMeta `json:"consolidation"`
	Usage         UsageMeta         `json:"usage"`
}

// ConsolidationMeta is owned by the external consolidation subsystem. The
// core writes the zero value at creation and never mutates it.
type ConsolidationMeta struct {
	Consolidated     bool     `json:"consolidated"`
	ConsolidatedInto []string `json:"consolidated_into"`
	BatchID          string   `json:"consolidation_batch_id,omitempty"`
}

// UsageMeta tracks retrieval/utilization counters and boost cooldowns.
// Reserved for external importance-tracking logic; written once with zero
// values here.
type UsageMeta struct {
	RetrievalCount    int       `json:"retrieval_count"`
	UtilizationCount  int       `json:"utilization_count"`
	OutcomeCount      int       `json:"outcome_count"`
	LastRetrieved     string    `json:"last_retrieved,omitempty"`
	LastUtilized      string    `json:"last_utilized,omitempty"`
	LastBoosted       string    `json:"last_boosted,omitempty"`
	ImportanceHistory []float64 `json:"importance_history"`
	BoostCooldownTill string    `json:"boost_cooldown_until,omitempty"`
}
