package http

import (
	"github.com/harsh16kumar/apex-Caterpillar-Hackathon/internal/domain"
)

type RegisterEquipmentRequest struct {
	EquipmentID   string   `json:"equipment_id" validate:"required,max=32"`
	Type          string   `json:"type" validate:"required,max=64"`
	SiteID        *int32   `json:"site_id" validate:"omitempty,gt=0"`
	Availability  string   `json:"availability" validate:"omitempty,oneof=Available Rented"`
	RentalType    string   `json:"rental_type" validate:"omitempty,oneof=Rigid Flexible"`
	CheckOutDate  *string  `json:"check_out_date" validate:"omitempty,date"`
	OperatingDays *int32   `json:"operating_days" validate:"omitempty,gte=0"`
	Location      string   `json:"location" validate:"max=255"`
	EngineHourDay *float64 `json:"engine_hour_day" validate:"omitempty,gte=0,lt=24"`
	IdleHourDay   *float64 `json:"idle_hour_day" validate:"omitempty,gte=0,lt=24"`
	Fuel          *float64 `json:"fuel" validate:"omitempty,gte=0,lte=100"`
	ReadyToShare  bool     `json:"ready_to_share"`
}

func (r *RegisterEquipmentRequest) toDomain() *domain.Equipment {
	return &domain.Equipment{
		EquipmentID:   r.EquipmentID,
		Type:          r.Type,
		SiteID:        r.SiteID,
		Availability:  domain.Availability(r.Availability),
		RentalType:    domain.RentalType(r.RentalType),
		CheckOutDate:  r.CheckOutDate,
		OperatingDays: r.OperatingDays,
		Location:      r.Location,
		EngineHourDay: r.EngineHourDay,
		IdleHourDay:   r.IdleHourDay,
		Fuel:          r.Fuel,
		ReadyToShare:  r.ReadyToShare,
	}
}

// RentRequest is the occupancy a site writes when it takes a unit.
type RentRequest struct {
	SiteID        int32  `json:"site_id" validate:"required,gt=0"`
	OperatingDays int32  `json:"operating_days" validate:"gte=0"`
	Location      string `json:"location" validate:"max=255"`
	StartDate     string `json:"start_date" validate:"required,date"`
	RentalType    string `json:"rental_type" validate:"omitempty,oneof=Rigid Flexible"`
}

func (r *RentRequest) toCheckout(equipmentID string) domain.Checkout {
	return domain.Checkout{
		EquipmentID:   equipmentID,
		SiteID:        r.SiteID,
		OperatingDays: r.OperatingDays,
		Location:      r.Location,
		StartDate:     r.StartDate,
		RentalType:    domain.RentalType(r.RentalType),
	}
}

type ClaimRequest struct {
	Type     string `json:"type" validate:"required"`
	Quantity int    `json:"quantity" validate:"gt=0"`
	RentRequest
}

type ClaimResponse struct {
	Type         string   `json:"type"`
	EquipmentIDs []string `json:"equipment_ids"`
}

type UsageRequest struct {
	EngineHoursDelta float64 `json:"engine_hours_delta" validate:"gte=0,lte=24"`
	IdleHoursDelta   float64 `json:"idle_hours_delta" validate:"gte=0,lte=24"`
}

type FuelRequest struct {
	Fuel *float64 `json:"fuel" validate:"required,gte=0,lte=100"`
}

// AppliedResponse reports whether a usage or fuel write changed the unit.
// A unit that is not rented ignores the write.
type AppliedResponse struct {
	EquipmentID string `json:"equipment_id"`
	Applied     bool   `json:"applied"`
}

type ShareRequest struct {
	Ready          *bool  `json:"ready" validate:"required"`
	SharedBySiteID *int32 `json:"shared_by_site_id" validate:"omitempty,gt=0"`
	PreserveSharer bool   `json:"preserve_sharer"`
}

func (r *ShareRequest) toDomain(equipmentID string) domain.ShareUpdate {
	return domain.ShareUpdate{
		EquipmentID:    equipmentID,
		Ready:          *r.Ready,
		SharedBySiteID: r.SharedBySiteID,
		PreserveSharer: r.PreserveSharer,
	}
}

type RegisterSiteRequest struct {
	SiteID         int32  `json:"site_id" validate:"required,gt=0"`
	Location       string `json:"location" validate:"required,max=255"`
	ContactDetails string `json:"contact_details" validate:"required,max=255"`
}

type SubmitRequest struct {
	EquipmentID     string `json:"equipment_id" validate:"required"`
	RequesterSiteID int32  `json:"requester_site_id" validate:"required,gt=0"`
	Location        string `json:"location" validate:"max=255"`
	TimeFrom        string `json:"time_from" validate:"required"`
	TimeTo          string `json:"time_to" validate:"required"`
}

type ApproveRequestBody struct {
	RequesterSiteID int32  `json:"requester_site_id" validate:"required,gt=0"`
	EquipmentID     string `json:"equipment_id" validate:"required"`
}

type StatusRequest struct {
	Status          string `json:"status" validate:"required,oneof=Approved Rejected"`
	RequesterSiteID int32  `json:"requester_site_id" validate:"required,gt=0"`
}
