package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"leaseflow-backend/internal/domain"
	"leaseflow-backend/internal/service"
)

// AdminHandler serves leaser and commission level administration
type AdminHandler struct {
	leasers    service.LeaserService
	commission service.CommissionService
}

func NewAdminHandler(leasers service.LeaserService, commission service.CommissionService) *AdminHandler {
	return &AdminHandler{leasers: leasers, commission: commission}
}

func (h *AdminHandler) CreateLeaser(w http.ResponseWriter, r *http.Request) {
	var leaser domain.Leaser
	if !decodeBody(w, r, &leaser) {
		return
	}

	if err := h.leasers.CreateLeaser(r.Context(), &leaser); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, leaser)
}

func (h *AdminHandler) ListLeasers(w http.ResponseWriter, r *http.Request) {
	leasers, err := h.leasers.ListLeasers(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, leasers)
}

type replaceRangesRequest struct {
	Ranges []domain.Range `json:"ranges"`
}

func (h *AdminHandler) ReplaceRanges(w http.ResponseWriter, r *http.Request) {
	var req replaceRangesRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := h.leasers.ReplaceRanges(r.Context(), mux.Vars(r)["id"], req.Ranges); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusNoContent, nil)
}

func (h *AdminHandler) SetDefaultLeaser(w http.ResponseWriter, r *http.Request) {
	if err := h.leasers.SetDefault(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (h *AdminHandler) CreateCommissionLevel(w http.ResponseWriter, r *http.Request) {
	var level domain.CommissionLevel
	if !decodeBody(w, r, &level) {
		return
	}

	if err := h.commission.CreateLevel(r.Context(), &level); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, level)
}

func (h *AdminHandler) ListCommissionLevels(w http.ResponseWriter, r *http.Request) {
	levels, err := h.commission.ListLevels(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, levels)
}

type replaceRatesRequest struct {
	Rates []domain.CommissionRate `json:"rates"`
}

func (h *AdminHandler) ReplaceRates(w http.ResponseWriter, r *http.Request) {
	var req replaceRatesRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := h.commission.ReplaceRates(r.Context(), mux.Vars(r)["id"], req.Rates); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusNoContent, nil)
}
