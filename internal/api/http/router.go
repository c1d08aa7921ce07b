package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"leaseflow-backend/internal/security"
	"leaseflow-backend/internal/service"
	"leaseflow-backend/internal/storage"
)

// RouterDeps bundles the services the HTTP surface exposes
type RouterDeps struct {
	Offers     service.OfferService
	Documents  service.DocumentService
	Contracts  service.ContractService
	Commission service.CommissionService
	Leasers    service.LeaserService
	Auth       service.AuthService
	Tokens     security.TokenManager
	Storage    storage.StorageInterface
}

// NewRouter builds the API router with auth and logging middleware applied
func NewRouter(deps RouterDeps) *mux.Router {
	router := mux.NewRouter()
	router.Use(LoggingMiddleware)
	router.Use(AuthMiddleware(deps.Tokens))

	authHandler := NewAuthHandler(deps.Auth)
	offerHandler := NewOfferHandler(deps.Offers, deps.Documents, deps.Commission)
	contractHandler := NewContractHandler(deps.Contracts)
	adminHandler := NewAdminHandler(deps.Leasers, deps.Commission)
	uploadHandler := NewDocumentUploadHandler(deps.Documents, deps.Storage)

	api := router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/health", handleHealth).Methods(http.MethodGet)

	// Auth
	api.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)
	api.HandleFunc("/users", authHandler.CreateUser).Methods(http.MethodPost)

	// Offers
	api.HandleFunc("/offers", offerHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/offers", offerHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/offers/{id}", offerHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/offers/{id}/equipment", offerHandler.UpdateEquipment).Methods(http.MethodPut)
	api.HandleFunc("/offers/{id}/transition", offerHandler.Transition).Methods(http.MethodPost)
	api.HandleFunc("/offers/{id}/score", offerHandler.AssignScore).Methods(http.MethodPost)
	api.HandleFunc("/offers/{id}/documents/request", offerHandler.RequestDocuments).Methods(http.MethodPost)
	api.HandleFunc("/offers/{id}/documents/upload", uploadHandler.HandleUpload).Methods(http.MethodPost)
	api.HandleFunc("/offers/{id}/documents/mark-received", offerHandler.MarkReceived).Methods(http.MethodPost)
	api.HandleFunc("/offers/{id}/history", offerHandler.History).Methods(http.MethodGet)
	api.HandleFunc("/offers/{id}/commission", offerHandler.CommissionPreview).Methods(http.MethodGet)

	// Documents
	api.HandleFunc("/documents/download/{key}", uploadHandler.HandleDownload).Methods(http.MethodGet)

	// Contracts
	api.HandleFunc("/contracts/{id}", contractHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/contracts/{id}/terminate", contractHandler.Terminate).Methods(http.MethodPost)
	api.HandleFunc("/contracts/{id}/extend", contractHandler.Extend).Methods(http.MethodPost)
	api.HandleFunc("/contracts/{id}/reactivate", contractHandler.Reactivate).Methods(http.MethodPost)
	api.HandleFunc("/contracts/{id}/breakeven", contractHandler.Breakeven).Methods(http.MethodGet)
	api.HandleFunc("/contracts/{id}/history", contractHandler.History).Methods(http.MethodGet)

	// Leasers
	api.HandleFunc("/leasers", adminHandler.CreateLeaser).Methods(http.MethodPost)
	api.HandleFunc("/leasers", adminHandler.ListLeasers).Methods(http.MethodGet)
	api.HandleFunc("/leasers/{id}/ranges", adminHandler.ReplaceRanges).Methods(http.MethodPut)
	api.HandleFunc("/leasers/{id}/set-default", adminHandler.SetDefaultLeaser).Methods(http.MethodPost)

	// Commission levels
	api.HandleFunc("/commission-levels", adminHandler.CreateCommissionLevel).Methods(http.MethodPost)
	api.HandleFunc("/commission-levels", adminHandler.ListCommissionLevels).Methods(http.MethodGet)
	api.HandleFunc("/commission-levels/{id}/rates", adminHandler.ReplaceRates).Methods(http.MethodPut)

	return router
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
