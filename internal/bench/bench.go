// Package bench compares vector retrieval against flat-document keyword
// search over the same query.
package bench

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/agentops/recall/internal/docsync"
	"github.com/agentops/recall/internal/models"
)

var wordRe = regexp.MustCompile(`\w+`)

// Searcher is the dense retrieval side of the comparison.
type Searcher interface {
	Search(query string, limit int, types []models.MemoryType, minImportance float64) ([]models.SearchResult, error)
}

// MarkdownHit is one scored document section.
type MarkdownHit struct {
	Header  string  `json:"header"`
	Content string  `json:"content"`
	Score   float64 `json:"score"`
}

// Report holds both result sets with their wall-clock timings.
type Report struct {
	Query          string                `json:"query"`
	Vector         []models.SearchResult `json:"vector"`
	VectorTimeMs   int64                 `json:"vectorTimeMs"`
	Markdown       []MarkdownHit         `json:"markdown,omitempty"`
	MarkdownTimeMs int64                 `json:"markdownTimeMs,omitempty"`
}

// Run searches the vector store and, when docPath is non-empty, the flat
// document, timing each side.
func Run(svc Searcher, docPath, query string, limit int) (*Report, error) {
	if limit <= 0 {
		limit = 5
	}

	report := &Report{Query: query}

	start := time.Now()
	vector, err := svc.Search(query, limit, nil, 0)
	if err != nil {
		return nil, fmt.Errorf("vector search: %w", err)
	}
	report.Vector = vector
	report.VectorTimeMs = time.Since(start).Milliseconds()

	if docPath != "" {
		data, err := os.ReadFile(docPath)
		if err != nil {
			return nil, fmt.Errorf("read document: %w", err)
		}
		start = time.Now()
		report.Markdown = MarkdownSearch(string(data), query, limit)
		report.MarkdownTimeMs = time.Since(start).Milliseconds()
	}

	return report, nil
}

// MarkdownSearch scores document sections by word overlap with the query and
// returns the top limit sections with any overlap at all.
func MarkdownSearch(docText, query string, limit int) []MarkdownHit {
	queryWords := map[string]bool{}
	for _, w := range strings.Fields(strings.ToLower(query)) {
		queryWords[w] = true
	}
	if len(queryWords) == 0 {
		return nil
	}

	var hits []MarkdownHit
	for _, section := range docsync.ParseSections(docText) {
		text := strings.ToLower(section.Header + " " + section.Body)
		sectionWords := map[string]bool{}
		for _, w := range wordRe.FindAllString(text, -1) {
			sectionWords[w] = true
		}

		overlap := 0
		for w := range queryWords {
			if sectionWords[w] {
				overlap++
			}
		}
		if overlap == 0 {
			continue
		}

		content := section.Body
		if len(content) > 200 {
			content = content[:200]
		}
		hits = append(hits, MarkdownHit{
			Header:  section.Header,
			Content: content,
			Score:   float64(overlap) / float64(len(queryWords)),
		})
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Score > hits[j].Score
	})
	if len(hits) > limit {
		hits = hits[:limit]
	}
	return hits
}
