package api

import (
	"net/http"

	"github.com/agentops/recall/internal/embedding"
	"github.com/agentops/recall/internal/memory"
	"github.com/agentops/recall/internal/models"
	"github.com/agentops/recall/internal/vectorstore"
)

type HealthHandler struct {
	embeddings *embedding.Client
	qdrant     *vectorstore.QdrantClient
	svc        *memory.Service
}

func NewHealthHandler(embeddings *embedding.Client, qdrant *vectorstore.QdrantClient, svc *memory.Service) *HealthHandler {
	return &HealthHandler{embeddings: embeddings, qdrant: qdrant, svc: svc}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	resp := models.HealthResponse{Status: "ok"}

	if err := h.embeddings.HealthCheck(); err != nil {
		resp.Embeddings = models.ServiceCheck{Status: "error", Message: err.Error()}
		resp.Status = "degraded"
	} else {
		resp.Embeddings = models.ServiceCheck{Status: "ok"}
	}

	if err := h.qdrant.HealthCheck(); err != nil {
		resp.Qdrant = models.ServiceCheck{Status: "error", Message: err.Error()}
		resp.Status = "degraded"
	} else {
		resp.Qdrant = models.ServiceCheck{Status: "ok"}
		if count, err := h.svc.Count(); err == nil {
			resp.Memories = count
		}
	}

	status := http.StatusOK
	if resp.Status != "ok" {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, resp)
}
