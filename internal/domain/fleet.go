package domain

import "fmt"

// DefaultFleetTypes lists the equipment categories of the stock fleet, in seeding order.
var DefaultFleetTypes = []string{"Excavator", "Crane", "Bulldozer", "Grader"}

const (
	defaultFleetFirstID  = 1001
	defaultFleetPerType  = 25
	defaultFleetIDPrefix = "EQX"
)

// DefaultFleet returns the unassigned stock fleet EQX1001..EQX1100, 25 units per type.
func DefaultFleet() []Equipment {
	fleet := make([]Equipment, 0, len(DefaultFleetTypes)*defaultFleetPerType)
	n := defaultFleetFirstID
	for _, t := range DefaultFleetTypes {
		for i := 0; i < defaultFleetPerType; i++ {
			fleet = append(fleet, Equipment{
				EquipmentID:  fmt.Sprintf("%s%d", defaultFleetIDPrefix, n),
				Type:         t,
				Availability: AvailabilityAvailable,
			})
			n++
		}
	}
	return fleet
}
