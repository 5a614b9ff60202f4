package vectorstore

import "time"

// Filter expresses the payload conditions attached to every store operation.
// AgentID always scopes the query; the remaining fields are optional.
type Filter struct {
	AgentID       string
	MemoryTypes   []string
	MinImportance float64
	Entities      []string
	Since         time.Time
}

// encode renders the filter as a Qdrant must-clause list.
func (f Filter) encode() map[string]any {
	must := []map[string]any{
		{"key": "agent_id", "match": map[string]any{"value": f.AgentID}},
	}

	if len(f.MemoryTypes) == 1 {
		must = append(must, map[string]any{
			"key":   "memory_type",
			"match": map[string]any{"value": f.MemoryTypes[0]},
		})
	} else if len(f.MemoryTypes) > 1 {
		must = append(must, map[string]any{
			"key":   "memory_type",
			"match": map[string]any{"any": f.MemoryTypes},
		})
	}

	if f.MinImportance > 0 {
		must = append(must, map[string]any{
			"key":   "importance",
			"range": map[string]any{"gte": f.MinImportance},
		})
	}

	for _, e := range f.Entities {
		must = append(must, map[string]any{
			"key":   "entities",
			"match": map[string]any{"value": e},
		})
	}

	if !f.Since.IsZero() {
		must = append(must, map[string]any{
			"key":   "timestamp",
			"range": map[string]any{"gte": f.Since.UTC().Format(time.RFC3339)},
		})
	}

	return map[string]any{"must": must}
}
