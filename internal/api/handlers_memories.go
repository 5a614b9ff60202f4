package api

import (
	"net/http"
	"strconv"

	"github.com/agentops/recall/internal/memory"
	"github.com/agentops/recall/internal/models"
	"github.com/agentops/recall/internal/search"
)

type MemoryHandler struct {
	svc      *memory.Service
	searcher *search.HybridSearcher
}

func NewMemoryHandler(svc *memory.Service, searcher *search.HybridSearcher) *MemoryHandler {
	return &MemoryHandler{svc: svc, searcher: searcher}
}

// Store handles POST /memories
func (h *MemoryHandler) Store(w http.ResponseWriter, r *http.Request) {
	var req models.StoreRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Content == "" {
		writeError(w, http.StatusBadRequest, "content is required")
		return
	}
	if req.MemoryType != "" && !req.MemoryType.IsValid() {
		writeError(w, http.StatusBadRequest, "invalid memoryType")
		return
	}

	resp, err := h.svc.Store(&req)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

// Search handles POST /memories/search
func (h *MemoryHandler) Search(w http.ResponseWriter, r *http.Request) {
	var req models.SearchRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Query == "" {
		writeError(w, http.StatusBadRequest, "query is required")
		return
	}

	var results []models.HybridResult
	var err error
	if req.Mode == "keyword" {
		results, err = h.searcher.KeywordSearch(req.Query, req.Limit, req.MinImportance)
	} else {
		results, err = h.searcher.HybridSearch(req.Query, req.Limit, req.MinImportance, req.DenseWeight, req.KeywordWeight)
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, models.HybridResponse{Results: results})
}

// Recent handles GET /memories/recent
func (h *MemoryHandler) Recent(w http.ResponseWriter, r *http.Request) {
	hours, _ := strconv.Atoi(r.URL.Query().Get("hours"))
	if hours <= 0 {
		hours = 24
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 {
		limit = 20
	}
	memoryType := models.MemoryType(r.URL.Query().Get("type"))
	if memoryType != "" && !memoryType.IsValid() {
		writeError(w, http.StatusBadRequest, "invalid type")
		return
	}

	results, err := h.svc.Recent(hours, limit, memoryType)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"results": results})
}

// ByEntities handles POST /memories/entities
func (h *MemoryHandler) ByEntities(w http.ResponseWriter, r *http.Request) {
	var req models.EntitiesRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if len(req.Entities) == 0 {
		writeError(w, http.StatusBadRequest, "entities is required")
		return
	}
	if req.Limit <= 0 {
		req.Limit = 10
	}

	results, err := h.svc.ByEntities(req.Entities, req.Limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"results": results})
}

// Count handles GET /memories/count
func (h *MemoryHandler) Count(w http.ResponseWriter, r *http.Request) {
	count, err := h.svc.Count()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, models.CountResponse{Count: count})
}
