package domain

import "time"

type Site struct {
	ID             int64     `json:"id"`
	SiteID         int32     `json:"site_id"`
	EquipmentID    *string   `json:"equipment_id,omitempty"`
	Location       string    `json:"location"`
	ContactDetails string    `json:"contact_details"`
	CreatedOn      time.Time `json:"created_on"`
}
