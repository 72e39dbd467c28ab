package handler

import (
	"contest_catalog/internal/app/service"
	"contest_catalog/internal/common"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type CatalogHandler struct {
	catalogService *service.CatalogService
}

func NewCatalogHandler(cs *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: cs}
}

func (h *CatalogHandler) RegisterRoutes(r chi.Router) {
	r.Get("/contests", h.listContests) // GET /api/v1/contests
	r.Get("/problems", h.listProblems) // GET /api/v1/problems?contest_id=abc001
}

func (h *CatalogHandler) listContests(w http.ResponseWriter, r *http.Request) {
	contests, err := h.catalogService.ListContests(r.Context())
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, contests)
}

func (h *CatalogHandler) listProblems(w http.ResponseWriter, r *http.Request) {
	contestID := r.URL.Query().Get("contest_id")

	problems, err := h.catalogService.ListProblems(r.Context(), contestID)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, problems)
}
