package domain

import "time"

type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "Pending"
	RequestStatusApproved RequestStatus = "Approved"
	RequestStatusRejected RequestStatus = "Rejected"
)

// IsTerminal reports whether a request in this status can no longer change.
func (s RequestStatus) IsTerminal() bool {
	return s == RequestStatusApproved || s == RequestStatusRejected
}

// RentalRequest is one site's proposal to borrow another site's unit.
// OwnerSiteID is captured from the unit when the request is filed and does not
// follow later ownership changes.
type RentalRequest struct {
	RequestID       int32         `json:"request_id"`
	EquipmentID     string        `json:"equipment_id"`
	RequesterSiteID int32         `json:"requester_site_id"`
	OwnerSiteID     int32         `json:"owner_site_id"`
	Location        string        `json:"location"`
	TimeFrom        string        `json:"time_from"`
	TimeTo          string        `json:"time_to"`
	Status          RequestStatus `json:"status"`
	CreatedOn       time.Time     `json:"created_on"`
	DecidedOn       *time.Time    `json:"decided_on,omitempty"`
}
