// Package search fuses dense similarity with keyword overlap into a single
// ranked result set.
package search

import (
	"fmt"
	"sort"

	"github.com/agentops/recall/internal/keywords"
	"github.com/agentops/recall/internal/models"
)

// Retriever is the slice of the memory service the ranker consumes: dense
// candidates for hybrid mode, full-corpus enumeration for keyword mode.
type Retriever interface {
	Search(query string, limit int, types []models.MemoryType, minImportance float64) ([]models.SearchResult, error)
	ScrollAll(pageSize int, fn func(batch []models.SearchResult) error) error
}

// HybridSearcher re-scores dense candidates with keyword overlap.
type HybridSearcher struct {
	retriever      Retriever
	denseWeight    float64
	keywordWeight  float64
	scrollPageSize int
}

func NewHybridSearcher(retriever Retriever, denseWeight, keywordWeight float64, scrollPageSize int) *HybridSearcher {
	return &HybridSearcher{
		retriever:      retriever,
		denseWeight:    denseWeight,
		keywordWeight:  keywordWeight,
		scrollPageSize: scrollPageSize,
	}
}

// HybridSearch fetches 2×limit dense candidates for re-ranking headroom,
// fuses each candidate's dense score with its keyword overlap against the
// query, and returns the top limit by combined score. Ties break by dense
// score; exact ties keep the store's candidate order. A short candidate set
// is returned as-is, never padded.
func (h *HybridSearcher) HybridSearch(query string, limit int, minImportance, denseWeight, keywordWeight float64) ([]models.HybridResult, error) {
	if limit <= 0 {
		limit = 5
	}
	if denseWeight == 0 && keywordWeight == 0 {
		denseWeight = h.denseWeight
		keywordWeight = h.keywordWeight
	}

	candidates, err := h.retriever.Search(query, limit*2, nil, minImportance)
	if err != nil {
		return nil, fmt.Errorf("dense search: %w", err)
	}

	queryKeywords := keywords.Extract(query)

	results := make([]models.HybridResult, len(candidates))
	for i, c := range candidates {
		keywordScore := keywords.Overlap(queryKeywords, keywords.Extract(c.Content))
		results[i] = models.HybridResult{
			SearchResult:  c,
			DenseScore:    c.Score,
			KeywordScore:  keywordScore,
			CombinedScore: denseWeight*c.Score + keywordWeight*keywordScore,
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].CombinedScore != results[j].CombinedScore {
			return results[i].CombinedScore > results[j].CombinedScore
		}
		return results[i].DenseScore > results[j].DenseScore
	})

	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// KeywordSearch is the scroll-based fallback for exact-token queries (error
// codes and the like). It scans the whole corpus page by page, scores every
// record by keyword overlap, and returns the top limit non-zero matches.
// Independent of the embedding gateway by construction.
func (h *HybridSearcher) KeywordSearch(query string, limit int, minImportance float64) ([]models.HybridResult, error) {
	if limit <= 0 {
		limit = 5
	}

	queryKeywords := keywords.Extract(query)

	var results []models.HybridResult
	err := h.retriever.ScrollAll(h.scrollPageSize, func(batch []models.SearchResult) error {
		for _, c := range batch {
			if minImportance > 0 && c.Importance < minImportance {
				continue
			}
			contentKeywords := keywords.Extract(c.Content)
			score := keywords.Overlap(queryKeywords, contentKeywords)
			if score == 0 {
				continue
			}
			matched := keywords.Matches(queryKeywords, contentKeywords)
			sort.Strings(matched)
			results = append(results, models.HybridResult{
				SearchResult:    c,
				KeywordScore:    score,
				CombinedScore:   score,
				MatchedKeywords: matched,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].KeywordScore > results[j].KeywordScore
	})

	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}
