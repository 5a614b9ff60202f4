package models

// StoreRequest creates a new memory record.
type StoreRequest struct {
	Content    string         `json:"content"`
	MemoryType MemoryType     `json:"memoryType"`
	Importance float64        `json:"importance"`
	Entities   []string       `json:"entities,omitempty"`
	SessionID  string         `json:"sessionId,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}

// StoreResponse reports the assigned record ID.
type StoreResponse struct {
	ID string `json:"id"`
}

// SearchRequest drives both dense and hybrid retrieval.
type SearchRequest struct {
	Query         string       `json:"query"`
	Limit         int          `json:"limit"`
	MemoryTypes   []MemoryType `json:"memoryTypes,omitempty"`
	MinImportance float64      `json:"minImportance"`
	// Mode selects "hybrid" (default) or "keyword" (scroll fallback for
	// exact-token queries).
	Mode string `json:"mode,omitempty"`
	// Fusion weights, used in hybrid mode only. Zero values fall back to
	// the configured defaults.
	DenseWeight   float64 `json:"denseWeight,omitempty"`
	KeywordWeight float64 `json:"keywordWeight,omitempty"`
}

// SearchResult is one dense-search candidate with its similarity score.
type SearchResult struct {
	ID         string     `json:"id"`
	Score      float64    `json:"score"`
	Content    string     `json:"content"`
	MemoryType MemoryType `json:"memoryType"`
	Importance float64    `json:"importance"`
	Entities   []string   `json:"entities,omitempty"`
	Timestamp  string     `json:"timestamp"`
}

// HybridResult carries the fused ranking scores alongside the candidate.
type HybridResult struct {
	SearchResult
	DenseScore    float64 `json:"denseScore"`
	KeywordScore  float64 `json:"keywordScore"`
	CombinedScore float64 `json:"combinedScore"`
	// MatchedKeywords is populated in keyword-only mode.
	MatchedKeywords []string `json:"matchedKeywords,omitempty"`
}

// HybridResponse is the ranked result set.
type HybridResponse struct {
	Results []HybridResult `json:"results"`
}

// RecentRequest retrieves records from a trailing time window.
type RecentRequest struct {
	Hours      int        `json:"hours"`
	Limit      int        `json:"limit"`
	MemoryType MemoryType `json:"memoryType,omitempty"`
}

// EntitiesRequest retrieves records tagged with all given entities.
type EntitiesRequest struct {
	Entities []string `json:"entities"`
	Limit    int      `json:"limit"`
}

// IngestRequest stores one conversation turn.
type IngestRequest struct {
	Content   string `json:"content"`
	Role      string `json:"role"`
	SessionID string `json:"sessionId,omitempty"`
}

// IngestResponse reports the outcome of a turn ingestion. Skipped turns
// (below the length floor) produce no record and no error.
type IngestResponse struct {
	ID      string `json:"id,omitempty"`
	Skipped bool   `json:"skipped"`
}

// ImportResponse reports sync-import counters.
type ImportResponse struct {
	New     int `json:"new"`
	Skipped int `json:"skipped"`
}

// ExportRequest renders high-value records to document form.
type ExportRequest struct {
	MinImportance float64 `json:"minImportance"`
}

// ExportResponse carries the rendered document and distinct record count.
type ExportResponse struct {
	Document string `json:"document"`
	Exported int    `json:"exported"`
}

// CountResponse is the corpus size for the configured agent.
type CountResponse struct {
	Count int `json:"count"`
}

// HealthResponse aggregates dependency checks.
type HealthResponse struct {
	Status     string       `json:"status"`
	Embeddings ServiceCheck `json:"embeddings"`
	Qdrant     ServiceCheck `json:"qdrant"`
	Memories   int          `json:"memories,omitempty"`
}

// ServiceCheck is one dependency probe outcome.
type ServiceCheck struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}
