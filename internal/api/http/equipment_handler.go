package http

import (
	"net/http"
	"strings"

	"github.com/harsh16kumar/apex-Caterpillar-Hackathon/internal/domain"
	"github.com/harsh16kumar/apex-Caterpillar-Hackathon/internal/service"

	"github.com/gorilla/mux"
)

type EquipmentHandler struct {
	registry service.RegistryService
	sharing  service.SharingService
}

func NewEquipmentHandler(registry service.RegistryService, sharing service.SharingService) *EquipmentHandler {
	return &EquipmentHandler{registry: registry, sharing: sharing}
}

// List handles GET /api/v1/equipment?availability=&site_id=&type=&ready_to_share=
func (h *EquipmentHandler) List(w http.ResponseWriter, r *http.Request) {
	siteID, err := queryInt32(r, "site_id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	ready, err := queryBool(r, "ready_to_share")
	if err != nil {
		writeError(w, r, err)
		return
	}

	filter := domain.EquipmentFilter{
		Availability: domain.Availability(r.URL.Query().Get("availability")),
		SiteID:       siteID,
		Type:         strings.TrimSpace(r.URL.Query().Get("type")),
		ReadyToShare: ready,
	}
	units, err := h.registry.ListEquipment(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, orEmpty(units))
}

func (h *EquipmentHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterEquipmentRequest
	if err := decodeAndValidate(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	e := req.toDomain()
	if err := h.registry.RegisterEquipment(r.Context(), e); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, e)
}

func (h *EquipmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	e, err := h.registry.GetEquipment(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (h *EquipmentHandler) Rent(w http.ResponseWriter, r *http.Request) {
	var req RentRequest
	if err := decodeAndValidate(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	e, err := h.registry.RentEquipment(r.Context(), req.toCheckout(mux.Vars(r)["id"]))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

// Claim handles POST /api/v1/claims: rent the next N available units of a type.
func (h *EquipmentHandler) Claim(w http.ResponseWriter, r *http.Request) {
	var req ClaimRequest
	if err := decodeAndValidate(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	ids, err := h.registry.ClaimEquipment(r.Context(), req.Type, req.Quantity, req.toCheckout(""))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, ClaimResponse{Type: req.Type, EquipmentIDs: orEmpty(ids)})
}

func (h *EquipmentHandler) CheckIn(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := h.registry.CheckInEquipment(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	e, err := h.registry.GetEquipment(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (h *EquipmentHandler) Usage(w http.ResponseWriter, r *http.Request) {
	var req UsageRequest
	if err := decodeAndValidate(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	id := mux.Vars(r)["id"]
	applied, err := h.registry.UpdateUsage(r.Context(), id, req.EngineHoursDelta, req.IdleHoursDelta)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, AppliedResponse{EquipmentID: id, Applied: applied})
}

func (h *EquipmentHandler) Fuel(w http.ResponseWriter, r *http.Request) {
	var req FuelRequest
	if err := decodeAndValidate(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	id := mux.Vars(r)["id"]
	applied, err := h.registry.UpdateFuel(r.Context(), id, *req.Fuel)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, AppliedResponse{EquipmentID: id, Applied: applied})
}

func (h *EquipmentHandler) Share(w http.ResponseWriter, r *http.Request) {
	var req ShareRequest
	if err := decodeAndValidate(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	e, err := h.sharing.SetReadyToShare(r.Context(), req.toDomain(mux.Vars(r)["id"]))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (h *EquipmentHandler) AvailableTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.registry.ListAvailableTypes(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, orEmpty(types))
}

func (h *EquipmentHandler) AvailableIDs(w http.ResponseWriter, r *http.Request) {
	ids, err := h.registry.ListAvailableEquipmentIDs(r.Context(), mux.Vars(r)["type"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, orEmpty(ids))
}

// ShareReady handles GET /api/v1/share-ready?exclude_site_id=
func (h *EquipmentHandler) ShareReady(w http.ResponseWriter, r *http.Request) {
	exclude, err := queryInt32(r, "exclude_site_id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	units, err := h.sharing.ListShareReady(r.Context(), exclude)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, orEmpty(units))
}
