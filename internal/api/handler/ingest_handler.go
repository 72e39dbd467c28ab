package handler

import (
	"contest_catalog/internal/app/service"
	"contest_catalog/internal/common"
	"contest_catalog/internal/domain/model"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// MaxIngestBodyBytes caps the size of a single POSTed batch.
const MaxIngestBodyBytes = 8 << 20

type IngestHandler struct {
	ingestService *service.IngestService
}

func NewIngestHandler(is *service.IngestService) *IngestHandler {
	return &IngestHandler{ingestService: is}
}

func (h *IngestHandler) RegisterRoutes(r chi.Router) {
	r.Post("/", h.enqueueBatch) // POST /api/v1/ingest
}

func (h *IngestHandler) enqueueBatch(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxIngestBodyBytes)
	defer r.Body.Close()

	var batch model.IngestBatch
	if err := json.NewDecoder(r.Body).Decode(&batch); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			common.RespondWithError(w, http.StatusRequestEntityTooLarge, "Request body too large")
			return
		}
		err = common.Errorf("invalid ingest request: %w: %w", common.ErrBadRequest, err)
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	batch.Attempts = 0

	batchID, err := h.ingestService.Enqueue(r.Context(), &batch)
	if err != nil {
		log.Printf("ERROR: Ingest: failed to enqueue batch: %v", err)
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusAccepted, map[string]string{"batch_id": batchID})
}
