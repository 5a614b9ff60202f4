package api

import (
	"net/http"

	"github.com/agentops/recall/internal/docsync"
	"github.com/agentops/recall/internal/ingest"
	"github.com/agentops/recall/internal/models"
)

type SyncHandler struct {
	engine     *docsync.Engine
	docPath    string
	ledgerPath string
}

func NewSyncHandler(engine *docsync.Engine, docPath, ledgerPath string) *SyncHandler {
	return &SyncHandler{engine: engine, docPath: docPath, ledgerPath: ledgerPath}
}

// Import handles POST /sync/import. The request may carry an inline document;
// otherwise the configured memory file is imported.
func (h *SyncHandler) Import(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Document string `json:"document,omitempty"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	var resp *models.ImportResponse
	var err error
	if req.Document != "" {
		ledger := docsync.LoadLedger(h.ledgerPath)
		resp, err = h.engine.ImportDocument(req.Document, ledger, "api")
		if err == nil {
			err = ledger.Save()
		}
	} else {
		resp, err = h.engine.ImportFile(h.docPath, h.ledgerPath)
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Export handles POST /sync/export and returns the rendered document.
func (h *SyncHandler) Export(w http.ResponseWriter, r *http.Request) {
	var req models.ExportRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.MinImportance == 0 {
		req.MinImportance = 0.5
	}

	resp, err := h.engine.Export(req.MinImportance)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

type IngestHandler struct {
	ingestor *ingest.Ingestor
}

func NewIngestHandler(ingestor *ingest.Ingestor) *IngestHandler {
	return &IngestHandler{ingestor: ingestor}
}

// Turn handles POST /ingest/turn
func (h *IngestHandler) Turn(w http.ResponseWriter, r *http.Request) {
	var req models.IngestRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Role == "" {
		req.Role = "user"
	}

	id, err := h.ingestor.IngestTurn(req.Content, req.Role, req.SessionID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if id == "" {
		writeJSON(w, http.StatusOK, models.IngestResponse{Skipped: true})
		return
	}
	writeJSON(w, http.StatusCreated, models.IngestResponse{ID: id})
}
