package ingestion

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/harsh16kumar/apex-Caterpillar-Hackathon/internal/domain"
	"github.com/harsh16kumar/apex-Caterpillar-Hackathon/internal/logger"
	"github.com/harsh16kumar/apex-Caterpillar-Hackathon/internal/service"
)

// TelemetryMessage is one usage/fuel reading published by an equipment unit.
type TelemetryMessage struct {
	EquipmentID      string    `json:"equipment_id"`
	EngineHoursDelta float64   `json:"engine_hours_delta"`
	IdleHoursDelta   float64   `json:"idle_hours_delta"`
	Fuel             *float64  `json:"fuel,omitempty"`
	Timestamp        time.Time `json:"timestamp"`
}

// ParseTelemetry decodes a payload. When the payload carries no equipment id
// the last segment of topic is used.
func ParseTelemetry(topic string, payload []byte) (*TelemetryMessage, error) {
	var msg TelemetryMessage
	if err := json.Unmarshal(payload, &msg); err != nil {
		return nil, domain.NewValidationError("payload", fmt.Sprintf("invalid JSON: %v", err))
	}
	if msg.EquipmentID == "" {
		if i := strings.LastIndex(topic, "/"); i >= 0 && i < len(topic)-1 {
			msg.EquipmentID = topic[i+1:]
		}
	}
	if err := ValidateTelemetry(&msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

func ValidateTelemetry(msg *TelemetryMessage) error {
	if msg.EquipmentID == "" {
		return domain.NewValidationError("equipment_id", "equipment_id is required")
	}
	if msg.EngineHoursDelta < 0 || msg.EngineHoursDelta > domain.HoursPerDay {
		return domain.NewValidationError("engine_hours_delta", "engine_hours_delta must be between 0 and 24")
	}
	if msg.IdleHoursDelta < 0 || msg.IdleHoursDelta > domain.HoursPerDay {
		return domain.NewValidationError("idle_hours_delta", "idle_hours_delta must be between 0 and 24")
	}
	if msg.Fuel != nil && (*msg.Fuel < 0 || *msg.Fuel > 100) {
		return domain.NewValidationError("fuel", "fuel must be between 0 and 100")
	}
	if msg.EngineHoursDelta == 0 && msg.IdleHoursDelta == 0 && msg.Fuel == nil {
		return domain.NewValidationError("payload", "reading carries no usage or fuel")
	}
	return nil
}

// Processor applies telemetry readings through the registry's write operations.
type Processor struct {
	registry service.RegistryService
}

func NewProcessor(registry service.RegistryService) *Processor {
	return &Processor{registry: registry}
}

// Result reports which parts of a reading changed the unit.
type Result struct {
	UsageApplied bool
	FuelApplied  bool
}

func (p *Processor) Process(ctx context.Context, msg *TelemetryMessage) (Result, error) {
	var res Result

	if msg.EngineHoursDelta > 0 || msg.IdleHoursDelta > 0 {
		applied, err := p.registry.UpdateUsage(ctx, msg.EquipmentID, msg.EngineHoursDelta, msg.IdleHoursDelta)
		if err != nil {
			return res, fmt.Errorf("apply usage for %s: %w", msg.EquipmentID, err)
		}
		res.UsageApplied = applied
	}

	if msg.Fuel != nil {
		applied, err := p.registry.UpdateFuel(ctx, msg.EquipmentID, *msg.Fuel)
		if err != nil {
			return res, fmt.Errorf("apply fuel for %s: %w", msg.EquipmentID, err)
		}
		res.FuelApplied = applied
	}

	logger.Debug("Telemetry processed", "equipmentID", msg.EquipmentID, "usageApplied", res.UsageApplied, "fuelApplied", res.FuelApplied)
	return res, nil
}
