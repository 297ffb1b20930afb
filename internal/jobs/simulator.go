package jobs

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/harsh16kumar/apex-Caterpillar-Hackathon/internal/config"
	"github.com/harsh16kumar/apex-Caterpillar-Hackathon/internal/domain"
	"github.com/harsh16kumar/apex-Caterpillar-Hackathon/internal/logger"
	"github.com/harsh16kumar/apex-Caterpillar-Hackathon/internal/service"
)

const (
	fullTank      = 100.0
	refuelBelow   = 15.0
	idleHourShare = 0.5
)

// UsageSimulator produces synthetic usage and fuel readings for rented units.
// Its random source and per-unit fuel levels live and die with the value.
type UsageSimulator struct {
	registry      service.RegistryService
	maxHoursDelta float64
	maxFuelBurn   float64

	mu   sync.Mutex
	rng  *rand.Rand
	fuel map[string]float64
}

func NewUsageSimulator(registry service.RegistryService, cfg config.SimulationConfig) *UsageSimulator {
	seed := uint64(cfg.Seed)
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &UsageSimulator{
		registry:      registry,
		maxHoursDelta: cfg.MaxHoursDelta,
		maxFuelBurn:   cfg.MaxFuelBurn,
		rng:           rand.New(rand.NewPCG(seed, seed>>1)),
		fuel:          make(map[string]float64),
	}
}

// Reading is one simulated telemetry sample.
type Reading struct {
	EquipmentID string
	EngineDelta float64
	IdleDelta   float64
	Fuel        float64
}

// Step picks one rented unit at random and applies a reading to it. It returns
// nil when no unit is rented.
func (s *UsageSimulator) Step(ctx context.Context) (*Reading, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rented, err := s.registry.ListEquipment(ctx, domain.EquipmentFilter{Availability: domain.AvailabilityRented})
	if err != nil {
		return nil, fmt.Errorf("list rented units: %w", err)
	}
	s.forgetReturned(rented)
	if len(rented) == 0 {
		return nil, nil
	}

	unit := rented[s.rng.IntN(len(rented))]
	r := &Reading{
		EquipmentID: unit.EquipmentID,
		EngineDelta: s.rng.Float64() * s.maxHoursDelta,
		IdleDelta:   s.rng.Float64() * s.maxHoursDelta * idleHourShare,
		Fuel:        s.burn(unit),
	}

	if _, err := s.registry.UpdateUsage(ctx, r.EquipmentID, r.EngineDelta, r.IdleDelta); err != nil {
		return nil, fmt.Errorf("update usage of %s: %w", r.EquipmentID, err)
	}
	if _, err := s.registry.UpdateFuel(ctx, r.EquipmentID, r.Fuel); err != nil {
		return nil, fmt.Errorf("update fuel of %s: %w", r.EquipmentID, err)
	}
	s.fuel[r.EquipmentID] = r.Fuel

	logger.Debug("Simulated telemetry", "equipmentID", r.EquipmentID, "engineDelta", r.EngineDelta, "idleDelta", r.IdleDelta, "fuel", r.Fuel)
	return r, nil
}

func (s *UsageSimulator) burn(unit domain.Equipment) float64 {
	level, ok := s.fuel[unit.EquipmentID]
	if !ok {
		level = fullTank
		if unit.Fuel != nil {
			level = *unit.Fuel
		}
	}
	level -= s.rng.Float64() * s.maxFuelBurn
	if level < refuelBelow {
		level = fullTank
	}
	return level
}

// forgetReturned drops fuel levels of units that are no longer rented.
func (s *UsageSimulator) forgetReturned(rented []domain.Equipment) {
	active := make(map[string]struct{}, len(rented))
	for _, u := range rented {
		active[u.EquipmentID] = struct{}{}
	}
	for id := range s.fuel {
		if _, ok := active[id]; !ok {
			delete(s.fuel, id)
		}
	}
}

// FuelLevel reports the last simulated fuel level of a unit.
func (s *UsageSimulator) FuelLevel(equipmentID string) (float64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	level, ok := s.fuel[equipmentID]
	return level, ok
}
