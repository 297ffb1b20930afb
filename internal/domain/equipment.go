package domain

import "time"

type Availability string

const (
	AvailabilityAvailable Availability = "Available"
	AvailabilityRented    Availability = "Rented"
)

func (a Availability) Valid() bool {
	return a == AvailabilityAvailable || a == AvailabilityRented
}

type RentalType string

const (
	RentalTypeUnset    RentalType = ""
	RentalTypeRigid    RentalType = "Rigid"
	RentalTypeFlexible RentalType = "Flexible"
)

func (t RentalType) Valid() bool {
	return t == RentalTypeUnset || t == RentalTypeRigid || t == RentalTypeFlexible
}

// DateLayout is the wire and storage format of check-out and check-in dates.
const DateLayout = "2006-01-02"

// HoursPerDay bounds the engine and idle hour gauges.
const HoursPerDay = 24.0

type Equipment struct {
	EquipmentID    string       `json:"equipment_id"`
	Type           string       `json:"type"`
	SiteID         *int32       `json:"site_id,omitempty"`
	Availability   Availability `json:"availability"`
	RentalType     RentalType   `json:"rental_type,omitempty"`
	CheckOutDate   *string      `json:"check_out_date,omitempty"`
	CheckInDate    *string      `json:"check_in_date,omitempty"`
	OperatingDays  *int32       `json:"operating_days,omitempty"`
	DaysLeft       *int32       `json:"days_left,omitempty"`
	Location       string       `json:"location"`
	EngineHourDay  *float64     `json:"engine_hour_day,omitempty"`
	IdleHourDay    *float64     `json:"idle_hour_day,omitempty"`
	Fuel           *float64     `json:"fuel,omitempty"`
	ReadyToShare   bool         `json:"ready_to_share"`
	SharedBySiteID *int32       `json:"shared_by_site_id,omitempty"`
	CreatedOn      time.Time    `json:"created_on"`
}

// IsOwnedBy reports whether the unit is currently assigned to siteID.
func (e *Equipment) IsOwnedBy(siteID int32) bool {
	return e.SiteID != nil && *e.SiteID == siteID
}

// Checkout carries the occupancy fields written when a unit is rented.
type Checkout struct {
	EquipmentID   string
	SiteID        int32
	OperatingDays int32
	Location      string
	StartDate     string
	RentalType    RentalType
	CheckInDate   string
	DaysLeft      int32
}

// EquipmentFilter narrows ListEquipment. Zero values do not filter.
type EquipmentFilter struct {
	Availability Availability
	SiteID       *int32
	Type         string
	ReadyToShare *bool
}

// ShareUpdate is the single contract for toggling a unit's ready-to-share flag.
// Disabling always clears the sharer. Enabling stamps SharedBySiteID; when it is
// nil the previous stamp is kept if PreserveSharer is set, otherwise the owning
// site is stamped.
type ShareUpdate struct {
	EquipmentID    string `json:"equipment_id"`
	Ready          bool   `json:"ready"`
	SharedBySiteID *int32 `json:"shared_by_site_id,omitempty"`
	PreserveSharer bool   `json:"preserve_sharer"`
}

// UtilizationSummary is the average daily engine plus idle hours of one site's
// units of one type.
type UtilizationSummary struct {
	SiteID         int32   `json:"site_id"`
	Type           string  `json:"type"`
	ContactDetails string  `json:"contact_details"`
	Units          int32   `json:"units"`
	AverageHours   float64 `json:"average_hours"`
}
