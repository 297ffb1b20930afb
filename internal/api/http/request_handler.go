package http

import (
	"net/http"

	"github.com/harsh16kumar/apex-Caterpillar-Hackathon/internal/domain"
	"github.com/harsh16kumar/apex-Caterpillar-Hackathon/internal/service"
)

// SiteHandler serves site registration and the per-site request inboxes.
type SiteHandler struct {
	registry service.RegistryService
	sharing  service.SharingService
}

func NewSiteHandler(registry service.RegistryService, sharing service.SharingService) *SiteHandler {
	return &SiteHandler{registry: registry, sharing: sharing}
}

func (h *SiteHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterSiteRequest
	if err := decodeAndValidate(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	site, err := h.registry.RegisterSite(r.Context(), req.SiteID, req.Location, req.ContactDetails)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, site)
}

func (h *SiteHandler) List(w http.ResponseWriter, r *http.Request) {
	siteID, err := queryInt32(r, "site_id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	sites, err := h.registry.ListSites(r.Context(), siteID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, orEmpty(sites))
}

func (h *SiteHandler) PendingForOwner(w http.ResponseWriter, r *http.Request) {
	siteID, err := pathInt32(r, "site_id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	reqs, err := h.sharing.ListPendingRequestsForOwner(r.Context(), siteID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, orEmpty(reqs))
}

func (h *SiteHandler) ByRequester(w http.ResponseWriter, r *http.Request) {
	siteID, err := pathInt32(r, "site_id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	reqs, err := h.sharing.ListRequestsByRequester(r.Context(), siteID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, orEmpty(reqs))
}

type RequestHandler struct {
	sharing service.SharingService
}

func NewRequestHandler(sharing service.SharingService) *RequestHandler {
	return &RequestHandler{sharing: sharing}
}

func (h *RequestHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req SubmitRequest
	if err := decodeAndValidate(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	created, err := h.sharing.SubmitRentalRequest(r.Context(), req.EquipmentID, req.RequesterSiteID, req.Location, req.TimeFrom, req.TimeTo)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *RequestHandler) Approve(w http.ResponseWriter, r *http.Request) {
	requestID, err := pathInt32(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req ApproveRequestBody
	if err := decodeAndValidate(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	decided, err := h.sharing.ApproveRequest(r.Context(), requestID, req.RequesterSiteID, req.EquipmentID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, decided)
}

func (h *RequestHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	requestID, err := pathInt32(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req StatusRequest
	if err := decodeAndValidate(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	decided, err := h.sharing.UpdateRequestStatus(r.Context(), requestID, domain.RequestStatus(req.Status), req.RequesterSiteID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, decided)
}
