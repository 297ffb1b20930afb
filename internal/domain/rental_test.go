package domain_test

import (
	"errors"
	"testing"
	"time"

	"github.com/harsh16kumar/apex-Caterpillar-Hackathon/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckInDate(t *testing.T) {
	got, err := domain.CheckInDate("2025-01-01", 10)
	require.NoError(t, err)
	assert.Equal(t, "2025-01-11", got)

	got, err = domain.CheckInDate("2024-02-25", 5)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01", got)

	_, err = domain.CheckInDate("01/01/2025", 10)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestDaysUntil(t *testing.T) {
	now := time.Date(2025, 1, 1, 17, 45, 0, 0, time.UTC)

	days, err := domain.DaysUntil("2025-01-11", now)
	require.NoError(t, err)
	assert.Equal(t, int32(10), days)

	days, err = domain.DaysUntil("2024-12-29", now)
	require.NoError(t, err)
	assert.Equal(t, int32(-3), days)

	days, err = domain.DaysUntil("2025-01-01", now)
	require.NoError(t, err)
	assert.Equal(t, int32(0), days)

	// 2025-01-02 01:00 in UTC+9 is still 2025-01-01 in UTC.
	tokyo := time.FixedZone("UTC+9", 9*60*60)
	days, err = domain.DaysUntil("2025-01-11", time.Date(2025, 1, 2, 1, 0, 0, 0, tokyo))
	require.NoError(t, err)
	assert.Equal(t, int32(10), days)
}

func TestAdvanceHourGauge(t *testing.T) {
	assert.InDelta(t, 1.0, domain.AdvanceHourGauge(23, 2), 1e-9)
	assert.InDelta(t, 5.5, domain.AdvanceHourGauge(3, 2.5), 1e-9)
	assert.InDelta(t, 0.0, domain.AdvanceHourGauge(12, 12), 1e-9)
	assert.InDelta(t, 22.0, domain.AdvanceHourGauge(1, -3), 1e-9)
}

func TestErrorTaxonomy(t *testing.T) {
	var err error = domain.NewValidationError("requester_site_id", "cannot request your own equipment")
	assert.True(t, errors.Is(err, domain.ErrValidation))
	assert.False(t, errors.Is(err, domain.ErrNotFound))

	err = domain.NewNotFoundError("equipment", "EQX9999")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	assert.Equal(t, "equipment EQX9999 not found", err.Error())

	wrapped := errors.Join(errors.New("claim failed"), domain.NewConflictError("equipment", "EQX1001", "not available"))
	assert.True(t, errors.Is(wrapped, domain.ErrConflict))
}

func TestDefaultFleet(t *testing.T) {
	fleet := domain.DefaultFleet()
	require.Len(t, fleet, 100)
	assert.Equal(t, "EQX1001", fleet[0].EquipmentID)
	assert.Equal(t, "Excavator", fleet[0].Type)
	assert.Equal(t, "EQX1026", fleet[25].EquipmentID)
	assert.Equal(t, "Crane", fleet[25].Type)
	assert.Equal(t, "EQX1100", fleet[99].EquipmentID)
	assert.Equal(t, "Grader", fleet[99].Type)
	for _, e := range fleet {
		assert.Nil(t, e.SiteID)
		assert.Equal(t, domain.AvailabilityAvailable, e.Availability)
	}
}
