package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"leaseflow-backend/internal/service"
)

// ContractHandler serves the contract lifecycle endpoints
type ContractHandler struct {
	contracts service.ContractService
}

func NewContractHandler(contracts service.ContractService) *ContractHandler {
	return &ContractHandler{contracts: contracts}
}

func (h *ContractHandler) Get(w http.ResponseWriter, r *http.Request) {
	contract, err := h.contracts.GetContract(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, contract)
}

type terminateRequest struct {
	Reason string `json:"reason,omitempty"`
}

func (h *ContractHandler) Terminate(w http.ResponseWriter, r *http.Request) {
	actor, _ := ActorFromContext(r.Context())

	var req terminateRequest
	if !decodeBody(w, r, &req) {
		return
	}

	contract, err := h.contracts.Terminate(r.Context(), mux.Vars(r)["id"], req.Reason, actor)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, contract)
}

func (h *ContractHandler) Extend(w http.ResponseWriter, r *http.Request) {
	actor, _ := ActorFromContext(r.Context())

	contract, err := h.contracts.Extend(r.Context(), mux.Vars(r)["id"], actor)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, contract)
}

func (h *ContractHandler) Reactivate(w http.ResponseWriter, r *http.Request) {
	actor, _ := ActorFromContext(r.Context())

	contract, err := h.contracts.Reactivate(r.Context(), mux.Vars(r)["id"], actor)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, contract)
}

func (h *ContractHandler) Breakeven(w http.ResponseWriter, r *http.Request) {
	report, err := h.contracts.Breakeven(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (h *ContractHandler) History(w http.ResponseWriter, r *http.Request) {
	entries, err := h.contracts.History(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}
