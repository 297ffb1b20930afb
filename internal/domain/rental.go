package domain

import (
	"fmt"
	"math"
	"time"
)

// CheckInDate returns startDate plus operatingDays, both in DateLayout.
func CheckInDate(startDate string, operatingDays int32) (string, error) {
	start, err := time.Parse(DateLayout, startDate)
	if err != nil {
		return "", NewValidationError("start_date", fmt.Sprintf("must be YYYY-MM-DD, got %q", startDate))
	}
	return start.AddDate(0, 0, int(operatingDays)).Format(DateLayout), nil
}

// DaysUntil returns the whole days between today's date and checkInDate.
// The result is negative once the check-in date has passed.
func DaysUntil(checkInDate string, now time.Time) (int32, error) {
	end, err := time.Parse(DateLayout, checkInDate)
	if err != nil {
		return 0, NewValidationError("check_in_date", fmt.Sprintf("must be YYYY-MM-DD, got %q", checkInDate))
	}
	y, m, d := now.UTC().Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return int32(math.Floor(end.Sub(today).Hours() / 24)), nil
}

// AdvanceHourGauge adds delta to a daily hour gauge and wraps the result into [0, 24).
func AdvanceHourGauge(current, delta float64) float64 {
	v := math.Mod(current+delta, HoursPerDay)
	if v < 0 {
		v += HoursPerDay
	}
	return v
}
