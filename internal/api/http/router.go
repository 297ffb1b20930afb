package http

import (
	"context"
	"net/http"

	"github.com/harsh16kumar/apex-Caterpillar-Hackathon/internal/service"

	"github.com/gorilla/mux"
)

type Dependencies struct {
	Registry    service.RegistryService
	Sharing     service.SharingService
	Utilization service.UtilizationService
	// Health is polled by /healthz; nil always reports ok.
	Health func(ctx context.Context) error
}

// NewRouter registers the JSON API under /api/v1 and /healthz.
func NewRouter(deps Dependencies) *mux.Router {
	equipment := NewEquipmentHandler(deps.Registry, deps.Sharing)
	sites := NewSiteHandler(deps.Registry, deps.Sharing)
	requests := NewRequestHandler(deps.Sharing)
	utilization := NewUtilizationHandler(deps.Utilization)

	router := mux.NewRouter()
	router.Use(RequestID, AccessLog, Recover)
	router.HandleFunc("/healthz", healthHandler(deps.Health)).Methods(http.MethodGet)

	api := router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/equipment", equipment.List).Methods(http.MethodGet)
	api.HandleFunc("/equipment", equipment.Register).Methods(http.MethodPost)
	api.HandleFunc("/equipment/{id}", equipment.Get).Methods(http.MethodGet)
	api.HandleFunc("/equipment/{id}/rent", equipment.Rent).Methods(http.MethodPost)
	api.HandleFunc("/equipment/{id}/check-in", equipment.CheckIn).Methods(http.MethodPost)
	api.HandleFunc("/equipment/{id}/usage", equipment.Usage).Methods(http.MethodPost)
	api.HandleFunc("/equipment/{id}/fuel", equipment.Fuel).Methods(http.MethodPost)
	api.HandleFunc("/equipment/{id}/share", equipment.Share).Methods(http.MethodPut)
	api.HandleFunc("/claims", equipment.Claim).Methods(http.MethodPost)
	api.HandleFunc("/available/types", equipment.AvailableTypes).Methods(http.MethodGet)
	api.HandleFunc("/available/types/{type}", equipment.AvailableIDs).Methods(http.MethodGet)
	api.HandleFunc("/share-ready", equipment.ShareReady).Methods(http.MethodGet)

	api.HandleFunc("/sites", sites.Register).Methods(http.MethodPost)
	api.HandleFunc("/sites", sites.List).Methods(http.MethodGet)
	api.HandleFunc("/sites/{site_id}/requests/pending", sites.PendingForOwner).Methods(http.MethodGet)
	api.HandleFunc("/sites/{site_id}/requests", sites.ByRequester).Methods(http.MethodGet)

	api.HandleFunc("/requests", requests.Submit).Methods(http.MethodPost)
	api.HandleFunc("/requests/{id}/approve", requests.Approve).Methods(http.MethodPost)
	api.HandleFunc("/requests/{id}/status", requests.UpdateStatus).Methods(http.MethodPost)

	api.HandleFunc("/utilization", utilization.Summary).Methods(http.MethodGet)

	return router
}
