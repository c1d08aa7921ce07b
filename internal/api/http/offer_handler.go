package http

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"leaseflow-backend/internal/domain"
	"leaseflow-backend/internal/service"
)

// OfferHandler serves the offer workflow endpoints
type OfferHandler struct {
	offers     service.OfferService
	documents  service.DocumentService
	commission service.CommissionService
}

func NewOfferHandler(offers service.OfferService, documents service.DocumentService, commission service.CommissionService) *OfferHandler {
	return &OfferHandler{
		offers:     offers,
		documents:  documents,
		commission: commission,
	}
}

type createOfferRequest struct {
	Type        string                 `json:"type"`
	ClientID    string                 `json:"client_id"`
	ClientEmail string                 `json:"client_email"`
	LeaserID    string                 `json:"leaser_id,omitempty"`
	Equipment   []domain.EquipmentLine `json:"equipment"`
	Discount    *domain.Discount       `json:"discount,omitempty"`
}

func (h *OfferHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, _ := ActorFromContext(r.Context())

	var req createOfferRequest
	if !decodeBody(w, r, &req) {
		return
	}

	offer := &domain.Offer{
		Type:        domain.OfferType(req.Type),
		ClientID:    req.ClientID,
		ClientEmail: req.ClientEmail,
		Equipment:   req.Equipment,
		Discount:    req.Discount,
	}
	if req.LeaserID != "" {
		offer.LeaserID = &req.LeaserID
	}

	created, err := h.offers.CreateOffer(r.Context(), actor, offer)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

func (h *OfferHandler) Get(w http.ResponseWriter, r *http.Request) {
	offer, err := h.offers.GetOffer(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, offer)
}

type listOffersResponse struct {
	Offers []domain.Offer `json:"offers"`
	Total  int32          `json:"total"`
}

func (h *OfferHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page := parseInt32(q.Get("page"), 1)
	pageSize := parseInt32(q.Get("page_size"), 20)

	offers, total, err := h.offers.ListOffers(r.Context(), q.Get("user_id"), q.Get("status"), page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, listOffersResponse{Offers: offers, Total: total})
}

type updateEquipmentRequest struct {
	Equipment []domain.EquipmentLine `json:"equipment"`
}

func (h *OfferHandler) UpdateEquipment(w http.ResponseWriter, r *http.Request) {
	actor, _ := ActorFromContext(r.Context())

	var req updateEquipmentRequest
	if !decodeBody(w, r, &req) {
		return
	}

	offer, err := h.offers.UpdateEquipment(r.Context(), actor, mux.Vars(r)["id"], req.Equipment)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, offer)
}

type transitionRequest struct {
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}

func (h *OfferHandler) Transition(w http.ResponseWriter, r *http.Request) {
	actor, _ := ActorFromContext(r.Context())

	var req transitionRequest
	if !decodeBody(w, r, &req) {
		return
	}

	result, err := h.offers.Transition(r.Context(), mux.Vars(r)["id"], domain.WorkflowStatus(req.Status), actor, req.Reason)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

type assignScoreRequest struct {
	Score         string   `json:"score"`
	Reason        string   `json:"reason,omitempty"`
	DocumentKinds []string `json:"document_kinds,omitempty"`
}

func (h *OfferHandler) AssignScore(w http.ResponseWriter, r *http.Request) {
	actor, _ := ActorFromContext(r.Context())

	var req assignScoreRequest
	if !decodeBody(w, r, &req) {
		return
	}

	kinds := make([]domain.DocumentKind, 0, len(req.DocumentKinds))
	for _, k := range req.DocumentKinds {
		kinds = append(kinds, domain.DocumentKind(k))
	}

	result, err := h.offers.AssignScore(r.Context(), mux.Vars(r)["id"], domain.Score(req.Score), req.Reason, kinds, actor)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

type requestDocumentsRequest struct {
	Kinds         []string `json:"kinds"`
	CustomMessage string   `json:"custom_message,omitempty"`
}

func (h *OfferHandler) RequestDocuments(w http.ResponseWriter, r *http.Request) {
	actor, _ := ActorFromContext(r.Context())

	var req requestDocumentsRequest
	if !decodeBody(w, r, &req) {
		return
	}

	kinds := make([]domain.DocumentKind, 0, len(req.Kinds))
	for _, k := range req.Kinds {
		kinds = append(kinds, domain.DocumentKind(k))
	}

	result, err := h.documents.RequestDocuments(r.Context(), mux.Vars(r)["id"], kinds, req.CustomMessage, actor)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *OfferHandler) MarkReceived(w http.ResponseWriter, r *http.Request) {
	actor, _ := ActorFromContext(r.Context())

	result, err := h.documents.MarkReceived(r.Context(), mux.Vars(r)["id"], actor)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *OfferHandler) History(w http.ResponseWriter, r *http.Request) {
	entries, err := h.offers.History(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// CommissionPreview resolves the commission for an offer's financed amount
// without persisting anything.
func (h *OfferHandler) CommissionPreview(w http.ResponseWriter, r *http.Request) {
	offer, err := h.offers.GetOffer(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}

	commission, err := h.commission.Preview(r.Context(), offer.FinancedAmount, r.URL.Query().Get("level_id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, commission)
}

func parseInt32(s string, fallback int32) int32 {
	if s == "" {
		return fallback
	}
	v, err := strconv.ParseInt(s, 10, 32)
	if err != nil || v <= 0 {
		return fallback
	}
	return int32(v)
}
